// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/filters"
	"github.com/slectl/slectl/internal/meta"
	"github.com/slectl/slectl/internal/osc"
	"github.com/slectl/slectl/internal/output"
	"github.com/slectl/slectl/internal/ui"
)

// acceptedRow is one accepted request as it is printed.
type acceptedRow struct {
	ID      string    `json:"id" yaml:"id"`
	Package string    `json:"package" yaml:"package"`
	When    time.Time `json:"when" yaml:"when"`
	URL     string    `json:"url" yaml:"url"`
}

// acceptedRows lists the accepted requests of kind in project changed in the
// last days.
func acceptedRows(ctx context.Context, c *osc.Client, project, kind string, days int) ([]acceptedRow, error) {
	reqs, err := ui.Spin("Listing "+kind+" requests", func() ([]osc.Request, error) {
		return c.RequestList(ctx, project, kind, days, "accepted")
	})
	if err != nil {
		return nil, err
	}

	rows := make([]acceptedRow, 0, len(reqs))
	for _, r := range reqs {
		a, ok := r.First(kind)
		if !ok {
			log.Debugf("request %s has no %s action", r.ID, kind)
			continue
		}
		rows = append(rows, acceptedRow{
			ID:      r.ID,
			Package: a.Package(),
			When:    r.Changed,
			URL:     requestURL(r.ID),
		})
	}
	return rows, nil
}

// formatWhen renders t either as the timestamp or relative to now.
func formatWhen(t, now time.Time, ago bool) string {
	if ago {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return t.Format(osc.TimeLayout)
}

// requestsCommandAction lists the accepted submit or delete requests of a
// project over a number of days or since a date.
func requestsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	days := cmd.Int("days")
	if date := cmd.String("from-date"); date != "" {
		var err error
		if days, err = DaysSince(date, m.Clock()); err != nil {
			return err
		}
	}

	rows, err := acceptedRows(ctx, newOSC(cmd), cmd.String("project"), cmd.String("type"), days)
	if err != nil {
		return err
	}

	// Rows go through maps so --filter and --sort can address them by column
	// name.
	maps := make([]map[string]any, len(rows))
	for i, r := range rows {
		maps[i] = map[string]any{"id": r.ID, "package": r.Package, "when": r.When, "url": r.URL}
	}
	maps = filters.Apply(maps, cmd.String("filter"))
	output.SortRows(maps, cmd.String("sort"))

	now := m.Clock()
	return output.Emit(writer(cmd), cmd.String("output"), maps, func(w io.Writer) error {
		for _, r := range maps {
			when := formatWhen(r["when"].(time.Time), now, cmd.Bool("ago"))
			if _, err := fmt.Fprintf(w, "%s %s %s\n", when, r["package"], r["url"]); err != nil {
				return err
			}
		}
		return nil
	})
}

// acceptedCommandAction lists both the accepted submit and delete requests.
func acceptedCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c := newOSC(cmd)
	project := cmd.String("project")
	days := cmd.Int("days")

	submits, err := acceptedRows(ctx, c, project, "submit", days)
	if err != nil {
		return err
	}
	deletes, err := acceptedRows(ctx, c, project, "delete", days)
	if err != nil {
		return err
	}

	all := map[string][]acceptedRow{"submit": submits, "delete": deletes}
	now := m.Clock()

	return output.Emit(writer(cmd), cmd.String("output"), all, func(w io.Writer) error {
		const rule = "=============================="
		for _, section := range []struct {
			title string
			rows  []acceptedRow
		}{
			{"SUBMIT REQUESTS", submits},
			{"DELETE REQUESTS", deletes},
		} {
			if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n", rule, section.title, rule); err != nil {
				return err
			}
			for _, r := range section.rows {
				when := formatWhen(r.When, now, cmd.Bool("ago"))
				if _, err := fmt.Fprintf(w, "(%s) %s %s\n", when, r.Package, r.URL); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func newDaysFlag(required bool) *cli.IntFlag {
	return &cli.IntFlag{
		Name:     "days",
		Aliases:  []string{"d"},
		Usage:    "only list requests changed in the last DAYS",
		Required: required,
		Validator: func(value int) error {
			return FlagValidators(value, DaysValidator)
		},
	}
}

func newAgoFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "ago",
		Usage: "show times relative to now",
	}
}

func requestsCommandBuilder(m meta.Meta) *cli.Command {
	days := newDaysFlag(false)
	fromDate := &cli.StringFlag{
		Name:    "from-date",
		Aliases: []string{"f"},
		Usage:   "list requests changed since this YYYY-MM-DD date",
		Validator: func(value string) error {
			return FlagValidators(value, DateValidator(m.Clock))
		},
	}

	return (&CommandBuilder{
		Name:      "requests",
		Usage:     "list requests accepted in a given time",
		UsageText: "slectl requests --project <project> --type submit|delete (--days N | --from-date YYYY-MM-DD) [options]",
		Flags: []cli.Flag{
			NewProjectFlag("requests", m.Config.Source, true),
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Usage:    "request type (submit or delete)",
				Required: true,
				Validator: func(value string) error {
					return FlagValidators(value, RequestTypeValidator)
				},
			},
			&cli.StringFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "comma-separated list of columns (id, package, when) to sort by",
			},
			newAgoFlag(),
			newFilterFlag(),
		},
		Exclusive: []cli.MutuallyExclusiveFlags{{
			Flags:    [][]cli.Flag{{days}, {fromDate}},
			Required: true,
		}},
		Output: true,
		Action: requestsCommandAction,
		Meta:   m,
	}).Build()
}

func acceptedCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "accepted",
		Usage:     "list accepted submit and delete requests",
		UsageText: "slectl accepted --project <project> --days N [options]",
		Flags: []cli.Flag{
			NewProjectFlag("accepted", m.Config.Source, true),
			newDaysFlag(true),
			newAgoFlag(),
		},
		Output: true,
		Action: acceptedCommandAction,
		Meta:   m,
	}).Build()
}
