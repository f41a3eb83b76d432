// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/config"
	"github.com/slectl/slectl/internal/meta"
	"github.com/slectl/slectl/internal/osc"
	"github.com/slectl/slectl/internal/review"
	"github.com/slectl/slectl/internal/ui"
)

// defaultBugownerGroups accept set_bugowner requests.
var defaultBugownerGroups = []string{"sle-release-managers", "sle-staging-managers"}

// runSession completes s with the command's collaborators and runs it.
func runSession(ctx context.Context, cmd *cli.Command, c *osc.Client, s review.Session) error {
	w := writer(cmd)
	s.Service = c
	s.Prompter = newPrompter(cmd)
	s.Pager = &ui.Pager{Command: pagerCommand(cmd), Out: w}
	s.Out = w
	return s.Run(ctx)
}

// reviewsCommandAction walks the submit and delete requests staged in one
// staging project that wait for the release managers.
func reviewsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c := newOSC(cmd)
	project := cmd.String("project")
	staging := project + ":Staging:" + cmd.String("staging")
	group := cmd.String("group")

	reqs, err := ui.Spin("Listing reviews of "+staging, func() ([]osc.Request, error) {
		return c.ReviewList(ctx, project, "-P", staging)
	})
	if err != nil {
		return err
	}

	s := review.ForStaging(staging)
	s.Items = review.FromRequests(osc.PendingFor(reqs, group), project)
	s.Groups = []string{group}
	return runSession(ctx, cmd, c, s)
}

// bugownersCommandAction walks the pending set_bugowner requests of a project
// and accepts them for every bugowner group.
func bugownersCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	c := newOSC(cmd)
	project := cmd.String("project")
	grps := cmd.StringSlice("groups")
	if len(grps) == 0 {
		return errors.New("at least one bugowner group is required")
	}

	reqs, err := ui.Spin("Listing bugowner reviews of "+project, func() ([]osc.Request, error) {
		return c.ReviewList(ctx, project, "--type", "set_bugowner")
	})
	if err != nil {
		return err
	}

	s := review.ForBugowners()
	s.Items = review.FromRequests(osc.PendingFor(reqs, grps[0]), project)
	s.Groups = grps
	return runSession(ctx, cmd, c, s)
}

func reviewsCommandBuilder(m meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "reviews",
		Usage:     "review submit and delete requests of a staging project",
		UsageText: "slectl reviews --project <project> --staging <letter> [options]",
		Flags: []cli.Flag{
			NewProjectFlag("reviews", m.Config.Source, true),
			&cli.StringFlag{
				Name:     "staging",
				Aliases:  []string{"s"},
				Usage:    "staging letter",
				Required: true,
				Validator: func(value string) error {
					return FlagValidators(value, StagingValidator)
				},
			},
			NameSpacedValueChainFlagFromConfigFile("reviews", m.Config.Source, &cli.StringFlag{
				Name:    "group",
				Aliases: []string{"g"},
				Usage:   "group the reviews are accepted for",
				Value:   config.DefaultReviewer,
				Sources: cli.NewValueSourceChain(cli.EnvVar("SLECTL_REVIEWER")),
			}),
			NewPagerFlag("reviews", m.Config.Source),
			NewNoPagerFlag(),
		},
		Action: reviewsCommandAction,
		Meta:   m,
	}).Build()
}

func bugownersCommandBuilder(m meta.Meta) *cli.Command {
	groups := config.Strings("bugowners.groups", defaultBugownerGroups)

	return (&CommandBuilder{
		Name:      "bugowners",
		Usage:     "review bugowner requests",
		UsageText: "slectl bugowners [--project <project>] [options]",
		Flags: []cli.Flag{
			NewProjectFlag("bugowners", m.Config.Source, true),
			&cli.StringSliceFlag{
				Name:  "groups",
				Usage: "groups the reviews are accepted for, the first one selects the pending requests",
				Value: groups,
			},
			NewPagerFlag("bugowners", m.Config.Source),
			NewNoPagerFlag(),
		},
		Action: bugownersCommandAction,
		Meta:   m,
	}).Build()
}
