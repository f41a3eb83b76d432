// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package review walks a release manager through a list of pending requests:
// show each diff, then accept the review on behalf of the configured groups.
package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"

	"github.com/slectl/slectl/internal/osc"
	"github.com/slectl/slectl/internal/ui"
)

// Item is one request waiting for review.
type Item struct {
	ID      string
	Package string
	Owner   string
}

func (i Item) String() string {
	parts := []string{i.ID, i.Package}
	if i.Owner != "" {
		parts = append(parts, i.Owner)
	}
	return strings.Join(parts, " - ")
}

// Service shows and accepts reviews. *osc.Client satisfies it.
type Service interface {
	ReviewShow(ctx context.Context, id string) ([]byte, error)
	ReviewAccept(ctx context.Context, id, group, message string) ([]byte, error)
}

// Shower displays a request diff.
type Shower interface {
	Show(ctx context.Context, content []byte) error
}

// Session is one interactive pass over Items.
type Session struct {
	// Empty, Heading and Start are the texts printed when there is nothing
	// to do, above the list and when asking to begin.
	Empty   string
	Heading string
	Start   string

	Items   []Item
	Groups  []string
	Message string

	Service  Service
	Prompter ui.Prompter
	Pager    Shower
	Out      io.Writer
}

// ForStaging returns a session with the texts of a staging project review.
func ForStaging(staging string) Session {
	return Session{
		Empty:   ">>> No pending reviews.",
		Heading: fmt.Sprintf(">>> Request(s) to be reviewed on %s:", staging),
		Start:   fmt.Sprintf(">>> Start the review of %s?", staging),
		Message: "OK",
	}
}

// ForBugowners returns a session with the texts of a bugowner review.
func ForBugowners() Session {
	return Session{
		Empty:   ">>> No pending bugowner reviews.",
		Heading: ">>> Bugowner request(s) to be reviewed:",
		Start:   ">>> Start the review?",
		Message: "OK",
	}
}

// Run lists the items and prompts through them. Answering "a" or
// interrupting a prompt ends the session early without an error.
func (s *Session) Run(ctx context.Context) error {
	if len(s.Items) == 0 {
		fmt.Fprintln(s.Out, s.Empty)
		return nil
	}

	fmt.Fprintln(s.Out, s.Heading)
	for _, item := range s.Items {
		fmt.Fprintln(s.Out, item)
	}

	answer, err := s.Prompter.Ask(ctx, s.Start, "y", "n")
	if err != nil || answer == "n" {
		return quiet(err)
	}

	for _, item := range s.Items {
		answer, err := s.Prompter.Ask(ctx, fmt.Sprintf(">>> Review %s - %s?", item.ID, item.Package), "y", "n", "a")
		if err != nil {
			return quiet(err)
		}
		switch answer {
		case "a":
			return nil
		case "n":
			continue
		}

		if err := s.show(ctx, item); err != nil {
			return err
		}

		answer, err = s.Prompter.Ask(ctx, fmt.Sprintf(">>> Approve %s - %s?", item.ID, item.Package), "y", "n")
		if err != nil {
			return quiet(err)
		}
		if answer == "y" {
			if err := s.approve(ctx, item); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(s.Out, ">>> All reviews done.")
	return nil
}

func (s *Session) show(ctx context.Context, item Item) error {
	diff, err := s.Service.ReviewShow(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("failed to show request %s: %w", item.ID, err)
	}
	return s.Pager.Show(ctx, diff)
}

func (s *Session) approve(ctx context.Context, item Item) error {
	for _, group := range s.Groups {
		out, err := s.Service.ReviewAccept(ctx, item.ID, group, s.Message)
		if err != nil {
			return fmt.Errorf("failed to accept request %s for %s: %w", item.ID, group, err)
		}
		log.Debugf("accepted %s for %s", item.ID, group)

		text := strings.TrimRight(string(out), "\n")
		if len(s.Groups) > 1 {
			text = group + ": " + text
		}
		fmt.Fprintln(s.Out, text)
	}
	return nil
}

func quiet(err error) error {
	if errors.Is(err, ui.ErrAborted) {
		return nil
	}
	return err
}

// FromRequests turns scraped requests into review items. The incident suffix
// that maintenance requests add to package names in project is dropped.
func FromRequests(reqs []osc.Request, project string) []Item {
	suffix := osc.IncidentSuffix(project)

	items := make([]Item, 0, len(reqs))
	for _, r := range reqs {
		item := Item{ID: r.ID}
		if a, ok := r.First(""); ok {
			item.Package = strings.TrimSuffix(a.Package(), suffix)
			item.Owner = a.Owner()
		}
		items = append(items, item)
	}
	return items
}
