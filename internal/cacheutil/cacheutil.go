// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/slectl/slectl/internal/log"
)

// Store is a directory of immutable blobs keyed by the sha256 of a clear-text
// key. A nil *Store is valid and behaves as a disabled cache.
type Store struct {
	Base string
}

// Dir resolves the base cache directory.
// Precedence:
//  1. SLECTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/slectl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("SLECTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "slectl"), true
	}
	return "", false
}

// Enabled returns true unless SLECTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("SLECTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Open returns a Store rooted at the base directory joined with subdirs. It
// returns nil when caching is disabled or no base directory resolves.
func Open(subdirs ...string) *Store {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	return &Store{Base: filepath.Join(append([]string{base}, subdirs...)...)}
}

// Path returns where key would live and whether a file is there now.
func (s *Store) Path(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	p := filepath.Join(s.Base, encodeKey(key))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Get returns the cached bytes for key.
func (s *Store) Get(key string) ([]byte, bool) {
	p, ok := s.Path(key)
	if !ok {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", key)
	return b, true
}

// Put stores data for key, creating the directory as needed.
func (s *Store) Put(key string, data []byte) error {
	if s == nil {
		return nil
	}
	if err := os.MkdirAll(s.Base, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(s.Base, encodeKey(key))
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", key)
	return nil
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 it is a no-op.
func (s *Store) Purge(hours int) error {
	if s == nil {
		return nil
	}
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	err := filepath.Walk(s.Base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// sha256 returns a 32-byte digest.
func encodeKey(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
