// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package groups

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatter serves files keyed "project/pkg/file@revision".
type fakeCatter struct {
	files map[string]string
	calls []string
}

func (f *fakeCatter) Cat(_ context.Context, project, pkg, file, revision string) ([]byte, error) {
	key := fmt.Sprintf("%s/%s/%s@%s", project, pkg, file, revision)
	f.calls = append(f.calls, key)
	if s, ok := f.files[key]; ok {
		return []byte(s), nil
	}
	return nil, errors.New("not found")
}

func TestLoadSnapshot_Summary(t *testing.T) {
	src := &fakeCatter{files: map[string]string{
		"SUSE:SLE-15-SP7:GA/000package-groups/summary-staging.txt@12": "bash:Module-Basesystem\n",
	}}

	m, err := LoadSnapshot(context.Background(), src, "SUSE:SLE-15-SP7:GA", "12")
	require.NoError(t, err)

	assert.Equal(t, Map{"bash": {"Module-Basesystem"}}, m)
	assert.Len(t, src.calls, 1)
}

func TestLoadSnapshot_FallsBackToReference(t *testing.T) {
	prj := "SUSE:SLE-15-SP7:GA"
	src := &fakeCatter{files: map[string]string{
		prj + "/000package-groups/reference-summary.yml@":  "Module-Basesystem: [bash, vim]\n",
		prj + "/000package-groups/reference-unsorted.yml@": "Module-X: [emacs]\n",
		prj + "/000package-groups/unneeded.yml@":           "Module-Y: [vim]\n",
	}}

	m, err := LoadSnapshot(context.Background(), src, prj, "")
	require.NoError(t, err)

	assert.Equal(t, Map{
		"bash":  {"Module-Basesystem"},
		"emacs": {UnsortedLabel},
		"vim":   {UnsortedLabel},
	}, m)
}

func TestLoadSnapshot_EmptySummaryFallsBack(t *testing.T) {
	prj := "SUSE:SLFO:Main"
	src := &fakeCatter{files: map[string]string{
		prj + "/000package-groups/summary-staging.txt@":    "\n",
		prj + "/000package-groups/reference-summary.yml@":  "Module-A: [a]\n",
		prj + "/000package-groups/reference-unsorted.yml@": "",
		prj + "/000package-groups/unneeded.yml@":           "",
	}}

	m, err := LoadSnapshot(context.Background(), src, prj, "")
	require.NoError(t, err)
	assert.Equal(t, Map{"a": {"Module-A"}}, m)
}

func TestLoadSnapshot_FallbackFailure(t *testing.T) {
	prj := "SUSE:SLFO:Main"
	src := &fakeCatter{files: map[string]string{
		prj + "/000package-groups/reference-summary.yml@": "Module-A: [a]\n",
	}}

	_, err := LoadSnapshot(context.Background(), src, prj, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), UnsortedFile)
}

func TestLoadSnapshot_MalformedSummary(t *testing.T) {
	prj := "SUSE:SLFO:Main"
	src := &fakeCatter{files: map[string]string{
		prj + "/000package-groups/summary-staging.txt@": "bash\n",
	}}

	_, err := LoadSnapshot(context.Background(), src, prj, "")

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Line)
	assert.Len(t, src.calls, 1)
}

func TestLoadPackageSummary(t *testing.T) {
	src := &fakeCatter{files: map[string]string{
		"P/000product/summary-staging.txt@": "bash:Module-Basesystem\n",
	}}

	m, err := LoadPackageSummary(context.Background(), src, "P", ProductPackage, "")
	require.NoError(t, err)
	assert.Equal(t, Map{"bash": {"Module-Basesystem"}}, m)

	_, err = LoadPackageSummary(context.Background(), src, "P", GroupsPackage, "")
	assert.Error(t, err)
}
