// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/meta"
)

// CommandBuilder constructs a cli.Command for the slectl subcommands using a
// consistent pattern. It wires metadata, applies the --debug switch before the
// action runs and, when Output is set, adds the --output flag.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Exclusive []cli.MutuallyExclusiveFlags
	Output    bool
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	flags := cb.Flags
	if cb.Output {
		flags = append(flags, NewOutputFlag(cb.Name, cb.Meta.Config.Source))
	}

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags:                  flags,
		MutuallyExclusiveFlags: cb.Exclusive,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: cb.Action,
	}
}
