// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
api_url: https://api.example.org/
default_project: SUSE:SLFO:Main
cache:
  clean: 24
  ratio: 1.5
reviews:
  group: sle-release-managers
bugowners:
  groups:
    - sle-release-managers
    - sle-staging-managers
bad_slice:
  - one
  - 2
`

// withConfig writes content to a temp file, points SLECTL_CFG_FILE at it and
// loads it before running fn.
func withConfig(t *testing.T, content string, fn func(t *testing.T)) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "slectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SLECTL_CFG_FILE", path)

	Config = Type{}
	defer func() { Config = Type{} }()

	_, err := Load()
	require.NoError(t, err)
	fn(t)
}

func TestLoad(t *testing.T) {
	withConfig(t, sampleConfig, func(t *testing.T) {
		assert.NotEmpty(t, Config.Source)
		assert.Equal(t, "https://api.example.org/", Config.Data["api_url"])
	})
}

func TestLoad_EmptyFile(t *testing.T) {
	withConfig(t, "", func(t *testing.T) {
		assert.NotEmpty(t, Config.Source, "should have a source path")
		assert.Empty(t, Config.Data)
	})
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("SLECTL_CFG_FILE", "/nonexistent/path/slectl.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_IsDirectory(t *testing.T) {
	t.Setenv("SLECTL_CFG_FILE", t.TempDir())
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: [unterminated"), 0o600))
	t.Setenv("SLECTL_CFG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestGetString(t *testing.T) {
	withConfig(t, sampleConfig, func(t *testing.T) {
		tests := []struct {
			name    string
			key     string
			def     []string
			want    string
			wantErr bool
		}{
			{name: "top level", key: "api_url", want: "https://api.example.org/"},
			{name: "nested", key: "reviews.group", want: "sle-release-managers"},
			{name: "missing with default", key: "nope", def: []string{"x"}, want: "x"},
			{name: "missing without default", key: "nope", wantErr: true},
			{name: "not a string", key: "cache.clean", wantErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := GetString(tt.key, tt.def...)
				if tt.wantErr {
					assert.Error(t, err)
					return
				}
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})
}

func TestString_FallsBackOnTypeMismatch(t *testing.T) {
	withConfig(t, sampleConfig, func(t *testing.T) {
		assert.Equal(t, "fallback", String("cache.clean", "fallback"))
		assert.Equal(t, "SUSE:SLFO:Main", String("default_project", "fallback"))
	})
}

func TestGetInt(t *testing.T) {
	withConfig(t, sampleConfig, func(t *testing.T) {
		v, err := GetInt("cache.clean")
		assert.NoError(t, err)
		assert.Equal(t, 24, v)

		v, err = GetInt("cache.ratio")
		assert.NoError(t, err)
		assert.Equal(t, 1, v)

		v, err = GetInt("cache.missing", 7)
		assert.NoError(t, err)
		assert.Equal(t, 7, v)

		_, err = GetInt("api_url")
		assert.Error(t, err)
	})
}

func TestGetStringSlice(t *testing.T) {
	withConfig(t, sampleConfig, func(t *testing.T) {
		v, err := GetStringSlice("bugowners.groups")
		assert.NoError(t, err)
		assert.Equal(t, []string{"sle-release-managers", "sle-staging-managers"}, v)

		_, err = GetStringSlice("bad_slice")
		assert.Error(t, err)

		_, err = GetStringSlice("api_url")
		assert.Error(t, err)

		v, err = GetStringSlice("missing", []string{"a"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"a"}, v)
	})
}

func TestStrings(t *testing.T) {
	withConfig(t, sampleConfig, func(t *testing.T) {
		def := []string{"fallback"}
		assert.Equal(t, []string{"sle-release-managers", "sle-staging-managers"}, Strings("bugowners.groups", def))
		assert.Equal(t, def, Strings("bad_slice", def))
		assert.Equal(t, def, Strings("api_url", def))
		assert.Equal(t, def, Strings("missing", def))
	})
}

func TestNamespacePreferred(t *testing.T) {
	withConfig(t, sampleConfig, func(t *testing.T) {
		Config.Namespace = "reviews"
		v, err := GetString("group")
		assert.NoError(t, err)
		assert.Equal(t, "sle-release-managers", v)

		// Unnamespaced keys still resolve.
		v, err = GetString("default_project")
		assert.NoError(t, err)
		assert.Equal(t, "SUSE:SLFO:Main", v)
	})
}
