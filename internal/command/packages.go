// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/config"
	"github.com/slectl/slectl/internal/meta"
	"github.com/slectl/slectl/internal/osc"
	"github.com/slectl/slectl/internal/output"
	"github.com/slectl/slectl/internal/ui"
)

// packageInfo is what packages reports for one binary.
type packageInfo struct {
	Binary        string          `json:"binary" yaml:"binary"`
	SourcePackage string          `json:"source_package" yaml:"source_package"`
	Shipped       bool            `json:"shipped" yaml:"shipped"`
	Product       string          `json:"product,omitempty" yaml:"product,omitempty"`
	People        []osc.Person    `json:"people,omitempty" yaml:"people,omitempty"`
	Groups        []osc.GroupInfo `json:"groups,omitempty" yaml:"groups,omitempty"`
	Error         string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// pairs renders the info as table rows.
func (p packageInfo) pairs() []output.Pair {
	pairs := []output.Pair{{Key: "Source package", Value: p.SourcePackage}}
	if p.Shipped {
		pairs = append(pairs, output.Pair{Key: "Shipped", Value: "YES - " + p.Product})
	} else {
		pairs = append(pairs, output.Pair{Key: "Shipped", Value: "*** NO ***"})
	}
	for _, g := range p.Groups {
		pairs = append(pairs, groupPairs(g)...)
	}
	for _, person := range p.People {
		pairs = append(pairs, personPairs(person)...)
	}
	return pairs
}

func groupPairs(g osc.GroupInfo) []output.Pair {
	pairs := []output.Pair{
		{Key: "Group", Value: g.Title},
		{Key: "Email", Value: g.Email},
		{Key: "Maintainers", Value: g.Maintainers},
	}
	if len(g.Users) > 0 {
		pairs = append(pairs, output.Pair{Key: "Users", Value: g.Users})
	}
	return pairs
}

func personPairs(p osc.Person) []output.Pair {
	return []output.Pair{
		{Key: "User", Value: p.Login},
		{Key: "Email", Value: p.Email},
		{Key: "Name", Value: p.Realname},
		{Key: "State", Value: p.State},
	}
}

// buildProject is where the binaries of project are built. The configured
// build project applies to the configured default project only.
func buildProject(cmd *cli.Command) string {
	project := cmd.String("project")
	if b := cmd.String("build-project"); b != "" && project == config.String("project", "") {
		return b
	}
	return project + ":Build"
}

// lookupPackage resolves the source package, shipping state and bugowners of
// binary.
func lookupPackage(ctx context.Context, c *osc.Client, build string, composer []byte, binary string) (packageInfo, error) {
	info := packageInfo{Binary: binary}

	bse, err := ui.Spin("Searching "+binary, func() ([]byte, error) {
		return c.SearchBinary(ctx, binary)
	})
	if err != nil {
		return info, err
	}
	if info.SourcePackage, err = osc.ParseSourcePackage(bse, build, binary); err != nil {
		return info, err
	}

	shipped, line := osc.Shipped(composer, binary)
	info.Shipped = shipped
	if shipped {
		log.Debugf("%s shipped: %s", binary, line)
	}

	owners, err := ui.Spin("Looking up bugowner of "+info.SourcePackage, func() (osc.Owners, error) {
		return c.Owners(ctx, info.SourcePackage)
	})
	if err != nil {
		return info, err
	}

	names, isGroup := owners.Names()
	if len(names) == 0 {
		log.Debugf("no bugowner found for %s", info.SourcePackage)
	}
	for _, name := range names {
		if isGroup {
			g, err := c.Group(ctx, name, false)
			if err != nil {
				return info, err
			}
			info.Groups = append(info.Groups, g)
			continue
		}
		people, err := c.Persons(ctx, osc.ByLogin, name)
		if err != nil {
			return info, err
		}
		info.People = append(info.People, people[0])
	}
	return info, nil
}

// packagesCommandAction shows the source package, shipping state and
// bugowners of each binary.
func packagesCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	binaries, err := requireArgs(cmd, "binary name")
	if err != nil {
		return err
	}

	c := newOSC(cmd)
	build := buildProject(cmd)
	product := cmd.String("product")

	composer, err := ui.Spin("Loading product definition", func() ([]byte, error) {
		return c.CatPath(ctx, cmd.String("productcomposer"))
	})
	if err != nil {
		return err
	}

	var infos []packageInfo
	for _, binary := range binaries {
		info, err := lookupPackage(ctx, c, build, composer, binary)
		if err != nil {
			log.Error(err.Error())
			info.Error = err.Error()
		}
		info.Product = product
		infos = append(infos, info)
	}

	opts := outputOptions(cmd)
	return output.Emit(writer(cmd), opts.Format, infos, func(w io.Writer) error {
		for _, info := range infos {
			if info.Error != "" {
				continue
			}
			output.KeyValueWriter(w, info.Binary, info.pairs(), opts)
		}
		return nil
	})
}

func packagesCommandBuilder(m meta.Meta) *cli.Command {
	src := m.Config.Source
	return (&CommandBuilder{
		Name:      "packages",
		Usage:     "show build service information for binary packages",
		UsageText: "slectl packages [options] <binary>...",
		Flags: []cli.Flag{
			NewProjectFlag("packages", src, true),
			NameSpacedValueChainFlagFromConfigFile("packages", src, &cli.StringFlag{
				Name:    "product",
				Aliases: []string{"P"},
				Usage:   "product the binaries ship in",
				Sources: cli.NewValueSourceChain(cli.EnvVar("SLECTL_PRODUCT")),
			}),
			NameSpacedValueChainFlagFromConfigFile("packages", src, &cli.StringFlag{
				Name:    "build-project",
				Usage:   "project the default project builds in",
				Sources: cli.NewValueSourceChain(),
			}),
			NameSpacedValueChainFlagFromConfigFile("packages", src, &cli.StringFlag{
				Name:     "productcomposer",
				Usage:    "product definition as \"<project> <package> <file>\"",
				Required: true,
				Sources:  cli.NewValueSourceChain(),
			}),
			newColorFlag(),
			newTitlesFlag(),
		},
		Output: true,
		Action: packagesCommandAction,
		Meta:   m,
	}).Build()
}
