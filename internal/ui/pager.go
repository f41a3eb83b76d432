// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"
)

// PagerNone as the pager command turns paging off, as do "off" and "false".
const PagerNone = "none"

func pagingOff(name string) bool {
	switch strings.ToLower(name) {
	case PagerNone, "off", "false":
		return true
	}
	return false
}

// Pager shows long output through an external pager.
type Pager struct {
	// Command is the pager and its arguments, e.g. "delta" or "less -R".
	Command string
	Out     io.Writer
}

// Show pipes content through the pager. Without a usable pager the content is
// written to Out as is.
func (p *Pager) Show(ctx context.Context, content []byte) error {
	args := strings.Fields(p.Command)
	if len(args) == 0 || pagingOff(args[0]) {
		_, err := p.Out.Write(content)
		return err
	}

	path, err := exec.LookPath(args[0])
	if err != nil {
		log.Debugf("pager %s not found, writing directly", args[0])
		_, err := p.Out.Write(content)
		return err
	}

	cmd := exec.CommandContext(ctx, path, args[1:]...)
	cmd.Stdin = bytes.NewReader(content)
	cmd.Stdout = p.Out
	if p.Out == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pager %s: %w", args[0], err)
	}
	return nil
}
