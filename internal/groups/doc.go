// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package groups models package-group snapshots (package name to the group
// labels it is classified under) and reconciles two of them into a movement
// report.
//
// A report has up to three sections, always in this order:
//
//	* Remove from <old-labels>
//	   <packages>
//	* Move from <old-labels> to <new-labels>
//	   <packages>
//	* Add to <new-labels>
//	   <packages>
//
// Labels are sorted and comma-joined. Packages are sorted, comma-separated and
// wrapped at 90 columns with every line indented by three spaces.
package groups
