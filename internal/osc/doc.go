// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package osc wraps the osc command line client of the build service and
// scrapes its replies: request and review listings, binary listings, build
// results and the owner, group and person search endpoints.
//
// Nothing here talks to the build service directly. Every call is one osc
// invocation through a Runner, so tests substitute canned output.
package osc
