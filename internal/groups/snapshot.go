// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"
)

// Well-known sources inside a project.
const (
	GroupsPackage  = "000package-groups"
	ProductPackage = "000product"
	SummaryFile    = "summary-staging.txt"
	ReferenceFile  = "reference-summary.yml"
	UnsortedFile   = "reference-unsorted.yml"
	UnneededFile   = "unneeded.yml"
)

// Catter fetches a file from a source package, optionally at a revision.
type Catter interface {
	Cat(ctx context.Context, project, pkg, file, revision string) ([]byte, error)
}

// LoadSnapshot returns the package groups of project. The staging summary is
// used when it exists and is not empty, otherwise the reference YAML lists are
// merged. A malformed summary or a failure while reading the reference lists
// is returned.
func LoadSnapshot(ctx context.Context, src Catter, project, revision string) (Map, error) {
	m, err := LoadPackageSummary(ctx, src, project, GroupsPackage, revision)
	if err == nil && len(m) > 0 {
		return m, nil
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		return nil, err
	}
	if err != nil {
		log.WithError(err).Debugf("no %s in %s, using reference lists", SummaryFile, project)
	} else {
		log.Debugf("empty %s in %s, using reference lists", SummaryFile, project)
	}

	sources := []struct {
		file  string
		label string
	}{
		{ReferenceFile, ""},
		{UnsortedFile, UnsortedLabel},
		{UnneededFile, UnsortedLabel},
	}

	parts := make([]Map, 0, len(sources))
	for _, s := range sources {
		data, err := src.Cat(ctx, project, GroupsPackage, s.file, revision)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s/%s/%s: %w", project, GroupsPackage, s.file, err)
		}
		part, err := ParseYAML(data, s.label)
		if err != nil {
			return nil, fmt.Errorf("%s/%s/%s: %w", project, GroupsPackage, s.file, err)
		}
		parts = append(parts, part)
	}

	return Merge(parts...), nil
}

// LoadPackageSummary reads the staging summary of pkg in project.
func LoadPackageSummary(ctx context.Context, src Catter, project, pkg, revision string) (Map, error) {
	data, err := src.Cat(ctx, project, pkg, SummaryFile, revision)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s/%s/%s: %w", project, pkg, SummaryFile, err)
	}
	m, err := ParseText(data)
	if err != nil {
		return nil, fmt.Errorf("%s/%s/%s: %w", project, pkg, SummaryFile, err)
	}
	return m, nil
}
