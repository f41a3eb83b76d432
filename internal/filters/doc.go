// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows tabular command output with --filter expressions.
//
// Filters are key-operator-target expressions joined by a delimiter (default
// comma, SLECTL_FILTER_DELIM overrides it). The key names a column of the
// rows being filtered.
//
// Operators, each negated by a leading !:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than, numeric for numbers and lexical otherwise
//   - > : greater than
//   - @ : substring, or membership for list values
//   - / : regular expression match
//
// Examples:
//
//   - "package^lib" : packages starting with lib
//   - "package!@-devel" : packages not containing -devel
//   - "when>2025-02-07" : changed after February 7th
//
// Time values are compared as YYYY-MM-DDTHH:MM:SS strings.
package filters
