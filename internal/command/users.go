// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/meta"
	"github.com/slectl/slectl/internal/osc"
	"github.com/slectl/slectl/internal/output"
	"github.com/slectl/slectl/internal/ui"
)

// searchField returns the person field selected on the command line.
func searchField(cmd *cli.Command) osc.PersonField {
	switch {
	case cmd.Bool("email"):
		return osc.ByEmail
	case cmd.Bool("name"):
		return osc.ByName
	default:
		return osc.ByLogin
	}
}

// usersCommandAction looks up a group or users.
func usersCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if cmd.NArg() != 1 {
		return errors.New("exactly one search text is required")
	}
	text := cmd.Args().First()

	c := newOSC(cmd)
	opts := outputOptions(cmd)
	w := writer(cmd)

	if cmd.Bool("group") {
		g, err := ui.Spin("Looking up group "+text, func() (osc.GroupInfo, error) {
			return c.Group(ctx, text, true)
		})
		if err != nil {
			return err
		}
		return output.Emit(w, opts.Format, g, func(w io.Writer) error {
			output.KeyValueWriter(w, "", groupPairs(g), opts)
			return nil
		})
	}

	people, err := ui.Spin("Looking up "+text, func() ([]osc.Person, error) {
		return c.Persons(ctx, searchField(cmd), text)
	})
	if err != nil {
		return err
	}

	return output.Emit(w, opts.Format, people, func(w io.Writer) error {
		for i, p := range people {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			output.KeyValueWriter(w, "", personPairs(p), opts)
		}
		return nil
	})
}

func usersCommandBuilder(m meta.Meta) *cli.Command {
	flag := func(name, alias, usage string) []cli.Flag {
		return []cli.Flag{&cli.BoolFlag{Name: name, Aliases: []string{alias}, Usage: usage}}
	}

	return (&CommandBuilder{
		Name:      "users",
		Usage:     "search build service information for a user or group",
		UsageText: "slectl users (--group | --login | --email | --name) [options] <text>",
		Flags: []cli.Flag{
			newColorFlag(),
			newTitlesFlag(),
		},
		Exclusive: []cli.MutuallyExclusiveFlags{{
			Flags: [][]cli.Flag{
				flag("group", "g", "search for a group"),
				flag("login", "l", "search users by login"),
				flag("email", "e", "search users by email"),
				flag("name", "n", "search users by name"),
			},
			Required: true,
		}},
		Output: true,
		Action: usersCommandAction,
		Meta:   m,
	}).Build()
}
