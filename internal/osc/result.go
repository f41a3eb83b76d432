// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package osc

import (
	"encoding/xml"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ResultList is the reply of /build/<project>/_result.
type ResultList struct {
	XMLName xml.Name `xml:"resultlist"`
	Results []Result `xml:"result"`
}

// Result is the state of one repository/arch pair.
type Result struct {
	Project    string   `xml:"project,attr"`
	Repository string   `xml:"repository,attr"`
	Arch       string   `xml:"arch,attr"`
	Code       string   `xml:"code,attr"`
	State      string   `xml:"state,attr"`
	Statuses   []Status `xml:"status"`
}

// Status is the build state of one package.
type Status struct {
	Package string `xml:"package,attr"`
	Code    string `xml:"code,attr"`
}

// RepoPackages is the set of packages that build in one repository.
type RepoPackages struct {
	Repository string   `json:"repository" yaml:"repository"`
	Packages   []string `json:"packages" yaml:"packages"`
}

// Codes of packages that do not build at all.
var inactiveCodes = []string{"excluded", "disabled", "unknown"}

// ParseResultList decodes a build result reply.
func ParseResultList(data []byte) (*ResultList, error) {
	var rl ResultList
	if err := xml.Unmarshal(data, &rl); err != nil {
		return nil, fmt.Errorf("failed to parse build results: %w", err)
	}
	return &rl, nil
}

// OnlyBuild groups the active packages by repository. Repositories keep the
// order they first appear in; packages are sorted and unique. Repositories in
// skip are left out.
func (rl *ResultList) OnlyBuild(skip ...string) []RepoPackages {
	var out []RepoPackages
	index := map[string]int{}

	for _, r := range rl.Results {
		if slices.Contains(skip, r.Repository) {
			continue
		}
		i, ok := index[r.Repository]
		if !ok {
			i = len(out)
			index[r.Repository] = i
			out = append(out, RepoPackages{Repository: r.Repository})
		}
		for _, s := range r.Statuses {
			if slices.Contains(inactiveCodes, s.Code) {
				continue
			}
			out[i].Packages = append(out[i].Packages, s.Package)
		}
	}

	for i := range out {
		out[i].Packages = lo.Uniq(out[i].Packages)
		slices.Sort(out[i].Packages)
	}
	return out
}

// MatchingPackages returns the sorted, unique packages whose name contains one
// of names. Multibuild flavors of a staged package match this way.
func (rl *ResultList) MatchingPackages(names []string) []string {
	var out []string
	for _, r := range rl.Results {
		for _, s := range r.Statuses {
			if lo.SomeBy(names, func(n string) bool { return n != "" && strings.Contains(s.Package, n) }) {
				out = append(out, s.Package)
			}
		}
	}
	out = lo.Uniq(out)
	slices.Sort(out)
	return out
}
