// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/meta"
	"github.com/slectl/slectl/internal/osc"
	"github.com/slectl/slectl/internal/output"
	"github.com/slectl/slectl/internal/ui"
)

// onlybuildCommandAction prints the onlybuild prjconf section of every
// repository of a project.
func onlybuildCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c := newOSC(cmd)
	project := cmd.String("project")

	rl, err := ui.Spin("Loading build results of "+project, func() (*osc.ResultList, error) {
		return c.BuildResults(ctx, project)
	})
	if err != nil {
		return err
	}

	repos := rl.OnlyBuild(cmd.StringSlice("skip")...)

	return output.Emit(writer(cmd), cmd.String("output"), repos, func(w io.Writer) error {
		for _, r := range repos {
			if _, err := fmt.Fprintf(w, "%%if \"%%_repository\" == \"%s\"\n", r.Repository); err != nil {
				return err
			}
			for _, p := range r.Packages {
				if _, err := fmt.Fprintf(w, "BuildFlags: onlybuild:%s\n", p); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "%endif\n\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// stagingOnlybuildCommandAction prints the onlybuild lines of the packages
// staged in a project, including their multibuild flavors.
func stagingOnlybuildCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c := newOSC(cmd)
	project := cmd.String("project")

	rl, err := ui.Spin("Loading build results of "+project, func() (*osc.ResultList, error) {
		return c.BuildResults(ctx, project)
	})
	if err != nil {
		return err
	}

	staged, err := c.List(ctx, project)
	if err != nil {
		return err
	}

	pkgs := rl.MatchingPackages(staged)

	return output.Emit(writer(cmd), cmd.String("output"), pkgs, func(w io.Writer) error {
		for _, p := range pkgs {
			if _, err := fmt.Fprintf(w, "BuildFlags: onlybuild:%s\n", p); err != nil {
				return err
			}
		}
		return nil
	})
}

func onlybuildCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "onlybuild",
		Usage:     "list the packages that build in each repository of a project",
		UsageText: "slectl onlybuild --project <project> [options]",
		Flags: []cli.Flag{
			NewProjectFlag("onlybuild", m.Config.Source, true),
			&cli.StringSliceFlag{
				Name:  "skip",
				Usage: "repositories to leave out",
				Value: []string{"ports"},
			},
		},
		Output: true,
		Action: onlybuildCommandAction,
		Meta:   m,
	}).Build()
}

func stagingOnlybuildCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "staging-onlybuild",
		Usage:     "list the staged packages for a test project prjconf",
		UsageText: "slectl staging-onlybuild --project <project> [options]",
		Flags: []cli.Flag{
			NewProjectFlag("staging-onlybuild", m.Config.Source, true),
		},
		Output: true,
		Action: stagingOnlybuildCommandAction,
		Meta:   m,
	}).Build()
}
