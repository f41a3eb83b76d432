// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"time"

	"github.com/slectl/slectl/internal/config"
	"github.com/slectl/slectl/internal/osc"
	"github.com/slectl/slectl/internal/ui"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration and context along with the collaborators a command
// talks to. Nil collaborators fall back to the real implementations.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context

	// Runner executes the osc client.
	Runner osc.Runner
	// Prompter asks the interactive review questions.
	Prompter ui.Prompter
	// Now is the clock used for date validation and relative times.
	Now func() time.Time
}

// Clock returns the current time according to m.
func (m Meta) Clock() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}
