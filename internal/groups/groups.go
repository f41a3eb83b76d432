// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// UnsortedLabel is the synthetic group given to packages that come from the
// reference-unsorted and unneeded lists.
const UnsortedLabel = "unsorted"

// Map is a snapshot: package name to group labels.
type Map map[string][]string

// Add appends group to the labels of pkg.
func (m Map) Add(pkg, group string) {
	m[pkg] = append(m[pkg], group)
}

// Packages returns the sorted package names.
func (m Map) Packages() []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

// normalize returns a copy of m with every label list sorted. Repeated labels
// are kept and empty ones dropped. Packages without labels are dropped.
func (m Map) normalize() Map {
	out := make(Map, len(m))
	for pkg, labels := range m {
		labels = lo.Compact(labels)
		if len(labels) == 0 {
			continue
		}
		slices.Sort(labels)
		out[pkg] = labels
	}
	return out
}

// Normalized returns the sorted copy Compare works on.
func (m Map) Normalized() Map {
	return m.normalize()
}

// Merge combines maps left to right. A package present in a later map replaces
// the labels it had in an earlier one.
func Merge(maps ...Map) Map {
	out := Map{}
	for _, m := range maps {
		for pkg, labels := range m {
			out[pkg] = slices.Clone(labels)
		}
	}
	return out
}

// Dump writes m as sorted "pkg:group" lines, the same shape ParseText reads.
func Dump(w io.Writer, m Map) error {
	bw := bufio.NewWriter(w)
	n := m.normalize()
	for _, pkg := range n.Packages() {
		for _, group := range n[pkg] {
			if _, err := fmt.Fprintf(bw, "%s:%s\n", pkg, group); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func joinLabels(labels []string) string {
	return strings.Join(labels, ",")
}
