// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/config"
	"github.com/slectl/slectl/internal/output"
)

// newColorFlag constructs the --color flag.
func newColorFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Value:   false,
	}
}

// newTitlesFlag constructs the --titles flag.
func newTitlesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "titles",
		Usage: "show titles with text output",
		Value: false,
	}
}

// newFilterFlag constructs the --filter flag.
func newFilterFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"F"},
		Usage:   "comma-separated list of filters to apply to results",
	}
}

// NewRootFlags returns the flags shared by every subcommand. path is the
// config file used as the last value source.
func NewRootFlags(path string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "slectl version info",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"d"},
			Usage:   "debug output, also writes the compared snapshots to files",
			Sources: cli.EnvVars("SLECTL_DEBUG"),
		},
		ValueChainFlagFromConfigFile(path, &cli.StringFlag{
			Name:    "osc-instance",
			Aliases: []string{"A"},
			Usage:   "API URL of the build service instance",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SLECTL_API_URL")),
			Value:   config.DefaultAPIURL,
		}),
		ValueChainFlagFromConfigFile(path, &cli.StringFlag{
			Name:    "osc-config",
			Usage:   "oscrc to use instead of the default one",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SLECTL_OSC_CONFIG")),
		}),
		ValueChainFlagFromConfigFile(path, &cli.StringFlag{
			Name:    "smelt-url",
			Usage:   "SMELT GraphQL endpoint",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SLECTL_SMELT_URL")),
			Value:   config.DefaultSmeltURL,
		}),
	}
}

// NewProjectFlag constructs the --project flag namespaced to a command and
// config file. A required project must be given on the command line, from the
// environment or in the config file.
func NewProjectFlag(ns, path string, required bool) *cli.StringFlag {
	return NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
		Name:     "project",
		Aliases:  []string{"p"},
		Usage:    "build service project",
		Required: required,
		Sources:  cli.NewValueSourceChain(cli.EnvVar("SLECTL_PROJECT")),
	})
}

// NewOutputFlag constructs the --output flag.
func NewOutputFlag(ns, path string) *cli.StringFlag {
	return NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (" + strings.Join(output.Formats, ", ") + ")",
		Value:   "text",
		Sources: cli.NewValueSourceChain(),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	})
}

// NewPagerFlag constructs the --pager flag used to show request diffs.
func NewPagerFlag(ns, path string) *cli.StringFlag {
	return NameSpacedValueChainFlagFromConfigFile(ns, path, &cli.StringFlag{
		Name:    "pager",
		Usage:   "program used to show request diffs, \"none\" to disable",
		Value:   config.DefaultPager,
		Sources: cli.NewValueSourceChain(cli.EnvVar("SLECTL_PAGER")),
	})
}

// NewNoPagerFlag constructs the --no-pager switch. It wins over --pager.
func NewNoPagerFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "no-pager",
		Usage:   "write request diffs directly instead of through the pager",
		Sources: cli.EnvVars("SLECTL_NO_PAGER"),
	}
}

// pagerCommand returns the pager selected on cmd, empty when paging is off.
func pagerCommand(cmd *cli.Command) string {
	if cmd.Bool("no-pager") {
		return ""
	}
	return cmd.String("pager")
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	key := configKey(flag.Name)

	src := yaml.YAML(ns+"."+key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return ValueChainFlagFromConfigFile(path, flag)
}

// ValueChainFlagFromConfigFile adds the global config file source to the
// given flag's Sources chain.
func ValueChainFlagFromConfigFile(path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(configKey(flag.Name), altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)
	return flag
}

// configKey maps a flag name to its config file key, e.g. osc-instance to
// osc_instance.
func configKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
