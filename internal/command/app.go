// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/config"
	"github.com/slectl/slectl/internal/meta"
)

// InitApp loads the configuration and builds the command tree for args.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the slectl
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Debugf("config not loaded: %v", err)
	}
	cfg.Namespace = ns
	config.Config.Namespace = ns

	return NewApp(meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
	}), nil
}

// NewApp returns the root command with every subcommand bound to m.
func NewApp(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:  "slectl",
		Usage: "SLE release management tools",
		Flags: NewRootFlags(m.Config.Source),
	}

	app.Commands = append(app.Commands,
		reportCommandBuilder(m),
		stagingReportCommandBuilder(m),
		onlybuildCommandBuilder(m),
		stagingOnlybuildCommandBuilder(m),
		requestsCommandBuilder(m),
		acceptedCommandBuilder(m),
		reviewsCommandBuilder(m),
		bugownersCommandBuilder(m),
		artifactsCommandBuilder(m),
		packagesCommandBuilder(m),
		usersCommandBuilder(m),
		binaryCommandBuilder(m),
		incidentCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
