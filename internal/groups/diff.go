// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"slices"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/samber/lo"
)

const (
	wrapWidth = 90
	indent    = "   "
)

// Diff is the classified movement between two snapshots. Each map goes from a
// transition label to the packages sharing it.
type Diff struct {
	Removed map[string][]string `json:"removed,omitempty" yaml:"removed,omitempty"`
	Moved   map[string][]string `json:"moved,omitempty" yaml:"moved,omitempty"`
	Added   map[string][]string `json:"added,omitempty" yaml:"added,omitempty"`
}

// Compare classifies every package whose labels differ between from and to.
// Neither argument is modified.
func Compare(from, to Map) Diff {
	o, n := from.normalize(), to.normalize()

	for pkg, labels := range o {
		if slices.Equal(n[pkg], labels) {
			delete(o, pkg)
			delete(n, pkg)
		}
	}

	d := Diff{
		Removed: map[string][]string{},
		Moved:   map[string][]string{},
		Added:   map[string][]string{},
	}

	for pkg, labels := range o {
		if moved, ok := n[pkg]; ok {
			key := joinLabels(labels) + " to " + joinLabels(moved)
			d.Moved[key] = append(d.Moved[key], pkg)
			continue
		}
		key := joinLabels(labels)
		d.Removed[key] = append(d.Removed[key], pkg)
	}

	for pkg, labels := range n {
		if _, ok := o[pkg]; ok {
			continue
		}
		key := joinLabels(labels)
		d.Added[key] = append(d.Added[key], pkg)
	}

	for _, section := range []map[string][]string{d.Removed, d.Moved, d.Added} {
		for _, pkgs := range section {
			slices.Sort(pkgs)
		}
	}

	return d
}

// Empty reports whether no package moved.
func (d Diff) Empty() bool {
	return len(d.Removed) == 0 && len(d.Moved) == 0 && len(d.Added) == 0
}

// Packages returns how many packages the diff touches.
func (d Diff) Packages() int {
	total := 0
	for _, section := range []map[string][]string{d.Removed, d.Moved, d.Added} {
		for _, pkgs := range section {
			total += len(pkgs)
		}
	}
	return total
}

// Report renders the diff. It returns "" when the diff is empty.
func (d Diff) Report() string {
	var sb strings.Builder
	writeSection(&sb, "* Remove from ", d.Removed)
	writeSection(&sb, "* Move from ", d.Moved)
	writeSection(&sb, "* Add to ", d.Added)
	return strings.TrimSpace(sb.String())
}

// Report compares from and to and renders the result. The boolean is false
// when nothing moved.
func Report(from, to Map) (string, bool) {
	d := Compare(from, to)
	if d.Empty() {
		return "", false
	}
	return d.Report(), true
}

func writeSection(sb *strings.Builder, header string, section map[string][]string) {
	keys := lo.Keys(section)
	slices.Sort(keys)

	for _, key := range keys {
		sb.WriteString(header)
		sb.WriteString(key)
		sb.WriteString("\n")
		for _, line := range wrap(strings.Join(section[key], ", ")) {
			sb.WriteString(indent)
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
}

// wrap breaks a package list on spaces only. A single name wider than the
// limit stays whole on its own line.
func wrap(paragraph string) []string {
	return strings.Split(wordwrap.WrapString(paragraph, wrapWidth), "\n")
}
