// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package ui holds the small terminal interactions: yes/no prompts, the diff
// pager and a spinner for slow lookups.
package ui
