// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for slectl's user
// configuration. The configuration is a YAML document located in the user's
// configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/slectl.yaml or $HOME/.config/slectl.yaml
//
// SLECTL_CFG_FILE overrides the location. Top level keys are the flag names
// with "-" turned into "_". A key under a command name applies to that
// command only and wins over the top level one. A list under a command name
// is a flag set expanded by "@<set>" on the command line. A minimal document
// looks like:
//
//	osc_instance: https://api.suse.de/
//	project: SUSE:SLFO:Main
//	request_url: https://build.suse.de/request/show/
//	pager: delta
//	packages:
//	  product: SLES 16.0
//	  build_project: SUSE:SLFO:Main:Build
//	  productcomposer: SUSE:SLFO:Products:SLES:16.0 000productcompose default.productcompose
//	reviews:
//	  group: sle-release-managers
//	  weekly: ["--staging A"]
//	bugowners:
//	  groups: [sle-release-managers, sle-staging-managers]
//	artifacts:
//	  images: \b(kiwi-templates-Minimal|agama-installer-SLES)\b
//	cache:
//	  clean: 168
//	colors:
//	  title: "#f6be00"
package config
