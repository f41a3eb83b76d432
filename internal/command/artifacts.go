// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/config"
	"github.com/slectl/slectl/internal/meta"
	"github.com/slectl/slectl/internal/osc"
	"github.com/slectl/slectl/internal/output"
)

// artifactSources are the repositories listed by artifacts, each with the
// default pattern selecting its packages.
var artifactSources = []struct {
	Repository string
	Pattern    string
}{
	{"images", `\b(kiwi-templates-Minimal|agama-installer-SLES)\b`},
	{"product", `\b(000productcompose:)\b`},
}

// artifactList is the listing of one package in one repository.
type artifactList struct {
	Repository string   `json:"repository" yaml:"repository"`
	Package    string   `json:"package" yaml:"package"`
	Artifacts  []string `json:"artifacts" yaml:"artifacts"`
}

// artifactsCommandAction lists the image and product artifacts of a project.
func artifactsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c := newOSC(cmd)
	project := cmd.String("project")

	pkgs, err := c.List(ctx, project)
	if err != nil {
		return err
	}

	var lists []artifactList
	for _, src := range artifactSources {
		pattern := config.String("artifacts."+src.Repository, src.Pattern)
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern for %s: %w", src.Repository, err)
		}

		for _, pkg := range pkgs {
			if !re.MatchString(pkg) {
				continue
			}
			out, err := c.ListBinaries(ctx, project, pkg, src.Repository)
			if err != nil {
				return err
			}
			lists = append(lists, artifactList{
				Repository: src.Repository,
				Package:    pkg,
				Artifacts:  osc.ParseBinaryListing(out),
			})
		}
	}

	return output.Emit(writer(cmd), cmd.String("output"), lists, func(w io.Writer) error {
		for _, l := range lists {
			for _, a := range l.Artifacts {
				if _, err := fmt.Fprintln(w, a); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func artifactsCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "artifacts",
		Usage:     "list the image and product artifacts of a project",
		UsageText: "slectl artifacts --project <project> [options]",
		Flags: []cli.Flag{
			NewProjectFlag("artifacts", m.Config.Source, true),
		},
		Output: true,
		Action: artifactsCommandAction,
		Meta:   m,
	}).Build()
}
