// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package osc

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/apex/log"
	"github.com/samber/lo"
)

// Files in a binary listing that are not deliverables.
var skipSuffixes = []string{
	"sha256", "report", "json", "milestone", "packages", "verified", "asc", "rpm",
}

// ParseBinaryListing returns the sorted deliverables of an "ls -b" reply.
// Header lines, "_" files and checksums, signatures, reports and rpms are
// dropped.
func ParseBinaryListing(data []byte) []string {
	var out []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, " ") {
			continue
		}
		name := strings.TrimSpace(line)
		if name == "" || strings.HasPrefix(name, "_") {
			continue
		}
		if lo.SomeBy(skipSuffixes, func(s string) bool { return strings.HasSuffix(name, s) }) {
			continue
		}
		out = append(out, name)
	}

	slices.Sort(out)
	return out
}

// ParseSourcePackage picks the source package that builds binary in project
// from a "bse" reply. When several match the first in sort order wins.
func ParseSourcePackage(data []byte, project, binary string) (string, error) {
	var found []string
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, project+" ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 { //nolint:mnd
			continue
		}
		pkg, _, _ := strings.Cut(fields[1], ":")
		if pkg != "" {
			found = append(found, pkg)
		}
	}

	found = lo.Uniq(found)
	if len(found) == 0 {
		return "", fmt.Errorf("no source package found for %s in %s", binary, project)
	}
	slices.Sort(found)
	if len(found) > 1 {
		log.Debugf("more than 1 source package found for %s in %s: %v", binary, project, found)
	}
	return found[0], nil
}

// Shipped reports whether binary is named as a whole word in the product
// definition. The matching line is returned for logging.
func Shipped(content []byte, binary string) (bool, string) {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(binary) + `\b`)
	for _, line := range strings.Split(string(content), "\n") {
		if re.MatchString(line) {
			return true, strings.TrimSpace(line)
		}
	}
	return false, ""
}
