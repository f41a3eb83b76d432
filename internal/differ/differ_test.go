// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slectl/slectl/internal/groups"
)

func TestDelta(t *testing.T) {
	tests := []struct {
		name     string
		from     groups.Map
		to       groups.Map
		changed  bool
		contains []string
	}{
		{
			name:     "identical",
			from:     groups.Map{"bash": {"sle-base"}},
			to:       groups.Map{"bash": {"sle-base"}},
			changed:  false,
			contains: []string{"The snapshots are identical."},
		},
		{
			name:     "label order ignored",
			from:     groups.Map{"vim": {"b", "a"}},
			to:       groups.Map{"vim": {"a", "b"}},
			changed:  false,
			contains: []string{"identical"},
		},
		{
			name:    "repeated label",
			from:    groups.Map{"vim": {"a"}},
			to:      groups.Map{"vim": {"a", "a"}},
			changed: true,
		},
		{
			name:     "package added",
			from:     groups.Map{"bash": {"sle-base"}},
			to:       groups.Map{"bash": {"sle-base"}, "zsh": {"sle-base"}},
			changed:  true,
			contains: []string{"+", "zsh"},
		},
		{
			name:     "package removed",
			from:     groups.Map{"bash": {"sle-base"}, "tcsh": {"legacy"}},
			to:       groups.Map{"bash": {"sle-base"}},
			changed:  true,
			contains: []string{"-", "tcsh"},
		},
		{
			name:     "label changed",
			from:     groups.Map{"vim": {"sle-base"}},
			to:       groups.Map{"vim": {"desktop"}},
			changed:  true,
			contains: []string{"vim", "sle-base", "desktop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			changed, err := Delta(&buf, tt.from, tt.to, false)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
			for _, c := range tt.contains {
				assert.Contains(t, buf.String(), c)
			}
		})
	}
}

func TestDelta_NilSnapshots(t *testing.T) {
	var buf bytes.Buffer
	changed, err := Delta(&buf, nil, nil, false)
	require.NoError(t, err)
	assert.False(t, changed)
}
