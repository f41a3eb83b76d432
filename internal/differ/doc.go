// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ renders a structural JSON delta between two package-group
// snapshots. It complements the categorized report of package groups with a
// raw view of every label that changed.
package differ
