// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
	"time"
)

// SortRows orders rows by a comma separated list of keys. A key prefixed with
// "-" sorts descending, one prefixed with "!" compares case sensitively.
func SortRows(rows []map[string]any, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(rows, func(one, two int) bool {
		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := rows[one][field]
			twoValue := rows[two][field]

			if oneTime, ok := oneValue.(time.Time); ok {
				if twoTime, ok := twoValue.(time.Time); ok {
					if oneTime.Equal(twoTime) {
						continue
					}
					return oneTime.Before(twoTime) == ascending
				}
			}

			if oneInt, ok := oneValue.(int); ok {
				if twoInt, ok := twoValue.(int); ok {
					if oneInt == twoInt {
						continue
					}
					return (oneInt < twoInt) == ascending
				}
			}

			// Fall back to string comparison which can also handle bools.
			oneStr := InterfaceToString(oneValue)
			twoStr := InterfaceToString(twoValue)
			if !caseSensitive {
				oneStr = strings.ToLower(oneStr)
				twoStr = strings.ToLower(twoStr)
			}

			if oneStr != twoStr {
				return (oneStr < twoStr) == ascending
			}
		}
		return false
	})
}
