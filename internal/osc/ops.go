// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package osc

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/apex/log"
)

// Cat returns a source file. Reads pinned to a revision never change, so they
// are served from the cache when one is configured.
func (c *Client) Cat(ctx context.Context, project, pkg, file, revision string) ([]byte, error) {
	args := []string{"cat", project, pkg, file}
	if revision != "" {
		args = append(args, "-r", revision)
	}

	key := strings.Join(c.Args(args...), " ")
	if revision != "" {
		if b, ok := c.cache.Get(key); ok {
			return b, nil
		}
	}

	out, err := c.Run(ctx, args...)
	if err != nil {
		return nil, err
	}

	if revision != "" {
		if err := c.cache.Put(key, out); err != nil {
			log.WithError(err).Warnf("cache write failed")
		}
	}
	return out, nil
}

// CatPath is Cat for a "project package file" triple as found in config.
func (c *Client) CatPath(ctx context.Context, spec string) ([]byte, error) {
	parts := strings.Fields(spec)
	if len(parts) != 3 { //nolint:mnd
		return nil, fmt.Errorf("expected \"<project> <package> <file>\", got %q", spec)
	}
	return c.Cat(ctx, parts[0], parts[1], parts[2], "")
}

// API performs a raw GET against path.
func (c *Client) API(ctx context.Context, path string) ([]byte, error) {
	return c.Run(ctx, "api", path)
}

// List returns the source packages of project.
func (c *Client) List(ctx context.Context, project string) ([]string, error) {
	out, err := c.Run(ctx, "ls", project)
	if err != nil {
		return nil, err
	}
	return strings.Fields(string(out)), nil
}

// ListBinaries returns the raw binary listing of pkg in repository.
func (c *Client) ListBinaries(ctx context.Context, project, pkg, repository string) ([]byte, error) {
	return c.Run(ctx, "ls", project, pkg, "-b", "-r", repository)
}

// SearchBinary returns the raw "bse" reply for a binary name.
func (c *Client) SearchBinary(ctx context.Context, name string) ([]byte, error) {
	return c.Run(ctx, "bse", name)
}

// RequestList lists requests of kind in project changed in the last days.
func (c *Client) RequestList(ctx context.Context, project, kind string, days int, state string) ([]Request, error) {
	args := []string{"request", "list"}
	if kind != "" {
		args = append(args, "-t", kind)
	}
	if days > 0 {
		args = append(args, "-D", strconv.Itoa(days))
	}
	if state != "" {
		args = append(args, "-s", state)
	}
	out, err := c.Run(ctx, append(args, project)...)
	if err != nil {
		return nil, err
	}
	return ParseRequests(out), nil
}

// ReviewList lists the open reviews of project. extra is passed through, for
// example "-P", "<staging project>" or "--type", "set_bugowner".
func (c *Client) ReviewList(ctx context.Context, project string, extra ...string) ([]Request, error) {
	args := append([]string{"review", "list"}, extra...)
	out, err := c.Run(ctx, append(args, project)...)
	if err != nil {
		return nil, err
	}
	return ParseRequests(out), nil
}

// ReviewShow returns the diff of a request.
func (c *Client) ReviewShow(ctx context.Context, id string) ([]byte, error) {
	return c.Run(ctx, "review", "show", "-d", id)
}

// ReviewAccept accepts the review of request id on behalf of group.
func (c *Client) ReviewAccept(ctx context.Context, id, group, message string) ([]byte, error) {
	return c.Run(ctx, "review", "accept", "-m", message, "-G", group, id)
}

// BuildResults returns the parsed build results of project.
func (c *Client) BuildResults(ctx context.Context, project string) (*ResultList, error) {
	out, err := c.API(ctx, "/build/"+project+"/_result")
	if err != nil {
		return nil, err
	}
	return ParseResultList(out)
}

// Owners returns the bugowners of a source package.
func (c *Client) Owners(ctx context.Context, pkg string) (Owners, error) {
	out, err := c.API(ctx, "/search/owner?package="+url.QueryEscape(pkg)+"&filter=bugowner")
	if err != nil {
		return Owners{}, fmt.Errorf("%s has no bugowner: %w", pkg, err)
	}
	return ParseOwners(out)
}

// Group returns the details of a group. Members are listed only when full.
func (c *Client) Group(ctx context.Context, name string, full bool) (GroupInfo, error) {
	out, err := c.API(ctx, "/group/"+url.PathEscape(name))
	if err != nil {
		return GroupInfo{}, fmt.Errorf("%s not found: %w", name, err)
	}
	return ParseGroup(out, full)
}

// PersonField selects the attribute a person search matches on.
type PersonField string

const (
	ByLogin PersonField = "login"
	ByEmail PersonField = "email"
	ByName  PersonField = "name"
)

// MatchExpr builds the search expression for text.
func (f PersonField) MatchExpr(text string) (string, error) {
	switch f {
	case ByLogin:
		return fmt.Sprintf("@login=%q", text), nil
	case ByEmail:
		return fmt.Sprintf("@email=%q", text), nil
	case ByName:
		return fmt.Sprintf("contains(@realname,%q)", text), nil
	default:
		return "", fmt.Errorf("invalid user search %q", string(f))
	}
}

// Persons searches the user database.
func (c *Client) Persons(ctx context.Context, field PersonField, text string) ([]Person, error) {
	expr, err := field.MatchExpr(text)
	if err != nil {
		return nil, err
	}
	out, err := c.API(ctx, "/search/person?match="+url.QueryEscape(expr))
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", text, err)
	}
	people, err := ParsePersons(out)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, fmt.Errorf("%s not found", text)
	}
	return people, nil
}
