// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/cacheutil"
	"github.com/slectl/slectl/internal/config"
	"github.com/slectl/slectl/internal/meta"
	"github.com/slectl/slectl/internal/osc"
	"github.com/slectl/slectl/internal/output"
	"github.com/slectl/slectl/internal/smelt"
	"github.com/slectl/slectl/internal/ui"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// newOSC returns a client for the instance selected by --osc-instance.
func newOSC(cmd *cli.Command) *osc.Client {
	opts := []osc.Option{osc.WithCache(cacheutil.Open("osc"))}
	if f := cmd.String("osc-config"); f != "" {
		opts = append(opts, osc.WithConfigFile(f))
	}
	if r := GetMeta(cmd).Runner; r != nil {
		opts = append(opts, osc.WithRunner(r))
	}
	return osc.New(cmd.String("osc-instance"), opts...)
}

// newSmelt returns a client for --smelt-url.
func newSmelt(cmd *cli.Command) *smelt.Client {
	return smelt.New(cmd.String("smelt-url"))
}

// newPrompter returns the injected prompter or one on the terminal.
func newPrompter(cmd *cli.Command) ui.Prompter {
	if p := GetMeta(cmd).Prompter; p != nil {
		return p
	}
	return ui.NewPrompter(os.Stdin, writer(cmd))
}

// writer is where command output goes.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// outputOptions collects the presentation flags of cmd.
func outputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: 2, //nolint:mnd
	}
}

// requestURL is the web link of request id.
func requestURL(id string) string {
	return config.String("request_url", config.DefaultRequestURL) + id
}

// requireArgs fails when cmd got no positional arguments.
func requireArgs(cmd *cli.Command, what string) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one %s is required", what)
	}
	return args, nil
}
