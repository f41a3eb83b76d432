// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/slectl/slectl/internal/groups"
)

// Delta writes the structural delta between two snapshots to w and reports
// whether anything changed. Both snapshots are normalized first so label
// order alone never shows up as a change.
func Delta(w io.Writer, from, to groups.Map, color bool) (bool, error) {
	log.Debugf(">> Delta()")

	if w == nil {
		w = os.Stdout
	}

	left, err := json.Marshal(from.Normalized())
	if err != nil {
		return false, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	right, err := json.Marshal(to.Normalized())
	if err != nil {
		return false, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	log.Debugf("len(snapshots): %d %d", len(left), len(right))

	delta, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return false, fmt.Errorf("failed to compare snapshots: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The snapshots are identical.")
		return false, nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(left, &jdoc); err != nil {
		return false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	}

	diffString, err := formatter.NewAsciiFormatter(jdoc, config).Format(delta)
	if err != nil {
		return false, err
	}

	fmt.Fprint(w, diffString)
	return true, nil
}
