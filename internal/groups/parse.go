// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package groups

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseError is a source line that is not "<package>:<group>".
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: expected <package>:<group>, got %q", e.Line, e.Text)
}

// ParseText reads the summary text format, one "<package>:<group>" per line. A
// package may repeat to collect several groups. Blank lines are skipped.
func ParseText(data []byte) (Map, error) {
	m := Map{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) //nolint:mnd

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" { //nolint:mnd
			return nil, &ParseError{Line: lineNo, Text: line}
		}
		m.Add(parts[0], parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}

	return m, nil
}

// ParseYAML reads a "group: [packages]" document. Every package is labelled
// with its group, or with label when label is non-empty. When a package is
// listed under several groups the last one in the document wins.
func ParseYAML(data []byte, label string) (Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse group list: %w", err)
	}

	m := Map{}
	if len(doc.Content) == 0 {
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("group list is not a mapping")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		group, packages := root.Content[i].Value, root.Content[i+1]

		switch packages.Kind {
		case yaml.SequenceNode:
		case yaml.ScalarNode:
			if packages.ShortTag() == "!!null" {
				continue
			}
			return nil, fmt.Errorf("group %q: line %d: expected a list of packages", group, packages.Line)
		default:
			return nil, fmt.Errorf("group %q: line %d: expected a list of packages", group, packages.Line)
		}

		target := group
		if label != "" {
			target = label
		}
		for _, p := range packages.Content {
			if p.Kind != yaml.ScalarNode || p.Value == "" {
				return nil, fmt.Errorf("group %q: line %d: package is not a name", group, p.Line)
			}
			m[p.Value] = []string{target}
		}
	}

	return m, nil
}
