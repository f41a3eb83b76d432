// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/meta"
	"github.com/slectl/slectl/internal/output"
	"github.com/slectl/slectl/internal/smelt"
	"github.com/slectl/slectl/internal/ui"
)

// binarySources are the channel sources of one binary.
type binarySources struct {
	Binary  string                `json:"binary" yaml:"binary"`
	Sources []smelt.ChannelSource `json:"sources" yaml:"sources"`
}

// incidentRepos are the repositories of one incident.
type incidentRepos struct {
	Incident     int      `json:"incident" yaml:"incident"`
	Repositories []string `json:"repositories" yaml:"repositories"`
}

// binaryCommandAction shows the channels each binary is shipped in.
func binaryCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	names, err := requireArgs(cmd, "binary name")
	if err != nil {
		return err
	}

	c := newSmelt(cmd)
	var all []binarySources
	for _, name := range names {
		srcs, err := ui.Spin("Querying "+name, func() ([]smelt.ChannelSource, error) {
			return c.BinarySources(ctx, name)
		})
		if err != nil {
			return err
		}
		all = append(all, binarySources{Binary: name, Sources: srcs})
	}

	return output.Emit(writer(cmd), cmd.String("output"), all, func(w io.Writer) error {
		for _, b := range all {
			if _, err := fmt.Fprintf(w, "%s:\n", b.Binary); err != nil {
				return err
			}
			for _, s := range b.Sources {
				if _, err := fmt.Fprintf(w, " %s: %s/%s\n", s.Channel, s.Project, s.Package); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// incidentCommandAction shows the repositories each incident touches.
func incidentCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	args, err := requireArgs(cmd, "incident number")
	if err != nil {
		return err
	}

	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid incident number %q", a)
		}
		ids = append(ids, id)
	}

	c := newSmelt(cmd)
	var all []incidentRepos
	for _, id := range ids {
		repos, err := ui.Spin("Querying incident "+strconv.Itoa(id), func() ([]string, error) {
			return c.IncidentRepositories(ctx, id)
		})
		if err != nil {
			return err
		}
		all = append(all, incidentRepos{Incident: id, Repositories: repos})
	}

	return output.Emit(writer(cmd), cmd.String("output"), all, func(w io.Writer) error {
		for _, inc := range all {
			if _, err := fmt.Fprintf(w, "%d:\n", inc.Incident); err != nil {
				return err
			}
			for _, r := range inc.Repositories {
				if _, err := fmt.Fprintf(w, "  * %s\n", r); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func binaryCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "binary",
		Usage:     "show the channels a binary is shipped in",
		UsageText: "slectl binary [options] <binary>...",
		Output:    true,
		Action:    binaryCommandAction,
		Meta:      m,
	}).Build()
}

func incidentCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "incident",
		Usage:     "show the repositories of maintenance incidents",
		UsageText: "slectl incident [options] <incident>...",
		Output:    true,
		Action:    incidentCommandAction,
		Meta:      m,
	}).Build()
}
