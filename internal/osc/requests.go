// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package osc

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"time"
)

// TimeLayout is the layout of the When: field.
const TimeLayout = "2006-01-02T15:04:05"

// Request is one entry of a request or review listing.
type Request struct {
	ID      string    `json:"id" yaml:"id"`
	State   string    `json:"state" yaml:"state"`
	By      string    `json:"by" yaml:"by"`
	When    string    `json:"when" yaml:"when"`
	Changed time.Time `json:"-" yaml:"-"`
	Actions []Action  `json:"actions,omitempty" yaml:"actions,omitempty"`
	Reviews []Review  `json:"reviews,omitempty" yaml:"reviews,omitempty"`
}

// Action is one "<type>: <fields>" line of a request.
type Action struct {
	Type   string   `json:"type" yaml:"type"`
	Fields []string `json:"fields" yaml:"fields"`
}

// Review is one "Review by <kind> is <state>: <name>" line.
type Review struct {
	Kind     string `json:"kind" yaml:"kind"`
	State    string `json:"state" yaml:"state"`
	Name     string `json:"name" yaml:"name"`
	Reviewer string `json:"reviewer,omitempty" yaml:"reviewer,omitempty"`
}

var (
	headerRe = regexp.MustCompile(`^(\d+)\s+State:(\S+)\s+By:(\S+)\s+When:(\S+)`)
	actionRe = regexp.MustCompile(`^\s+(submit|delete|set_bugowner|add_role|change_devel|maintenance_incident|maintenance_release|release|group):\s+(.*)$`)
	reviewRe = regexp.MustCompile(`^\s+Review by\s+(\S+)\s+is\s+(\S+):\s+(\S+)`)
)

// ParseRequests scrapes the text of "request list" and "review list".
// Lines that belong to no recognised request are ignored.
func ParseRequests(data []byte) []Request {
	var (
		out     []Request
		cur     = -1
		inDescr bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) //nolint:mnd
	for scanner.Scan() {
		line := scanner.Text()

		if m := headerRe.FindStringSubmatch(line); m != nil {
			r := Request{ID: m[1], State: m[2], By: m[3], When: m[4]}
			if t, err := time.ParseInLocation(TimeLayout, m[4], time.Local); err == nil {
				r.Changed = t
			}
			out = append(out, r)
			cur = len(out) - 1
			inDescr = false
			continue
		}
		if cur < 0 {
			continue
		}

		// Description text runs until the next blank line.
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Descr:") || strings.HasPrefix(trimmed, "Comment:") {
			inDescr = true
			continue
		}
		if trimmed == "" {
			inDescr = false
			continue
		}
		if inDescr {
			continue
		}

		if m := actionRe.FindStringSubmatch(line); m != nil {
			out[cur].Actions = append(out[cur].Actions, Action{Type: m[1], Fields: strings.Fields(m[2])})
			continue
		}

		if m := reviewRe.FindStringSubmatch(line); m != nil {
			r := Review{Kind: m[1], State: m[2], Name: m[3]}
			if i := strings.IndexByte(r.Name, '('); i > 0 && strings.HasSuffix(r.Name, ")") {
				r.Reviewer = r.Name[i+1 : len(r.Name)-1]
				r.Name = r.Name[:i]
			}
			out[cur].Reviews = append(out[cur].Reviews, r)
		}
	}

	return out
}

// Package is the package the action works on: the source package of a
// submit, the target of a delete and the package of a set_bugowner.
func (a Action) Package() string {
	for _, f := range a.Fields {
		if strings.Contains(f, "/") {
			return packageOf(f)
		}
	}
	return ""
}

// Target is the destination of a submit ("project" or "project/package") or
// the object the other action types apply to.
func (a Action) Target() string {
	for i, f := range a.Fields {
		if f == "->" && i+1 < len(a.Fields) {
			return a.Fields[i+1]
		}
	}
	for _, f := range a.Fields {
		if strings.Contains(f, "/") {
			return f
		}
	}
	return ""
}

// Owner is the new bugowner of a set_bugowner action.
func (a Action) Owner() string {
	if a.Type != "set_bugowner" || len(a.Fields) < 2 { //nolint:mnd
		return ""
	}
	return a.Fields[0]
}

// First returns the first action of type kind, or any action when kind is "".
func (r Request) First(kind string) (Action, bool) {
	for _, a := range r.Actions {
		if kind == "" || a.Type == kind {
			return a, true
		}
	}
	return Action{}, false
}

// PendingFor returns the requests with a review by group that is not yet
// accepted.
func PendingFor(reqs []Request, group string) []Request {
	var out []Request
	for _, r := range reqs {
		for _, rv := range r.Reviews {
			if rv.Kind == "Group" && rv.Name == group && rv.State != "accepted" {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// IncidentSuffix is the suffix maintenance requests add to package names in
// project.
func IncidentSuffix(project string) string {
	return "." + strings.ReplaceAll(project, ":", "_")
}

// packageOf turns "project/package@rev" into "package".
func packageOf(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.IndexByte(path, '@'); i >= 0 {
		path = path[:i]
	}
	return path
}
