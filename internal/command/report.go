// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/differ"
	"github.com/slectl/slectl/internal/groups"
	"github.com/slectl/slectl/internal/meta"
	"github.com/slectl/slectl/internal/output"
	"github.com/slectl/slectl/internal/ui"
)

// reportFile receives the report when --debug is set.
const reportFile = "summary-report.txt"

// namedSnapshot is a loaded snapshot and the file it is dumped to.
type namedSnapshot struct {
	name string
	m    groups.Map
}

// reportCommandAction compares the package groups of two projects, each
// optionally pinned to a revision.
func reportCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c := newOSC(cmd)

	load := func(project, revision string) (groups.Map, error) {
		return ui.Spin("Loading "+project, func() (groups.Map, error) {
			return groups.LoadSnapshot(ctx, c, project, revision)
		})
	}

	from, err := load(cmd.String("from"), cmd.String("from-revision"))
	if err != nil {
		return err
	}
	to, err := load(cmd.String("to"), cmd.String("to-revision"))
	if err != nil {
		return err
	}

	return emitReport(cmd,
		namedSnapshot{cmd.String("from"), from},
		namedSnapshot{cmd.String("to"), to},
	)
}

// stagingReportCommandAction compares the package groups of a staging project
// with its product definition.
func stagingReportCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c := newOSC(cmd)
	project := cmd.String("project")

	load := func(pkg string) (groups.Map, error) {
		return ui.Spin("Loading "+pkg, func() (groups.Map, error) {
			return groups.LoadPackageSummary(ctx, c, project, pkg, "")
		})
	}

	pkgGroups, err := load(groups.GroupsPackage)
	if err != nil {
		return err
	}
	product, err := load(groups.ProductPackage)
	if err != nil {
		return err
	}

	return emitReport(cmd,
		namedSnapshot{groups.GroupsPackage, pkgGroups},
		namedSnapshot{groups.ProductPackage, product},
	)
}

// emitReport renders the movement from one snapshot to the other.
func emitReport(cmd *cli.Command, from, to namedSnapshot) error {
	w := writer(cmd)
	debug := cmd.Bool("debug")

	if debug {
		for _, s := range []namedSnapshot{from, to} {
			if err := dumpSnapshot(s); err != nil {
				return err
			}
		}
	}

	if cmd.Bool("delta") {
		if _, err := differ.Delta(w, from.m, to.m, cmd.Bool("color")); err != nil {
			return err
		}
	}

	diff := groups.Compare(from.m, to.m)
	log.Debugf("%d package(s) moved", diff.Packages())

	return output.Emit(w, cmd.String("output"), diff, func(w io.Writer) error {
		if diff.Empty() {
			_, err := fmt.Fprintln(w, "No package movement reported")
			return err
		}

		report := diff.Report()
		if debug {
			log.Debugf("Summary report saved in %s", reportFile)
			if err := os.WriteFile(reportFile, []byte(report+"\n"), 0o644); err != nil { //nolint:gosec
				return fmt.Errorf("failed to write %s: %w", reportFile, err)
			}
		}
		_, err := fmt.Fprintln(w, report)
		return err
	})
}

// dumpSnapshot writes s as "pkg:group" lines to a file named after it.
func dumpSnapshot(s namedSnapshot) error {
	log.Debugf("List of %s packages saved in %s", s.name, s.name)

	f, err := os.Create(s.name)
	if err != nil {
		return fmt.Errorf("failed to dump snapshot: %w", err)
	}
	return writeSnapshot(f, s.m)
}

// writeSnapshot dumps m to wc and closes it. The close error is reported when
// the dump itself succeeded.
func writeSnapshot(wc io.WriteCloser, m groups.Map) error {
	err := groups.Dump(wc, m)
	if cerr := wc.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to dump snapshot: %w", cerr)
	}
	return err
}

func reportCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "report",
		Usage:     "report package movements between two projects",
		UsageText: "slectl report --from <project> --to <project> [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Aliases:  []string{"f"},
				Usage:    "origin project",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Aliases:  []string{"t"},
				Usage:    "target project",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "from-revision",
				Usage: "origin revision number",
			},
			&cli.StringFlag{
				Name:  "to-revision",
				Usage: "target revision number",
			},
			&cli.BoolFlag{
				Name:  "delta",
				Usage: "also print the structural delta of both snapshots",
			},
			newColorFlag(),
		},
		Output: true,
		Action: reportCommandAction,
		Meta:   m,
	}).Build()
}

func stagingReportCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "staging-report",
		Usage:     "report package movements on a staging project",
		UsageText: "slectl staging-report --project <project> [options]",
		Flags: []cli.Flag{
			NewProjectFlag("staging-report", m.Config.Source, true),
			&cli.BoolFlag{
				Name:  "delta",
				Usage: "also print the structural delta of both snapshots",
			},
			newColorFlag(),
		},
		Output: true,
		Action: stagingReportCommandAction,
		Meta:   m,
	}).Build()
}
