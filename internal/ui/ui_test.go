// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package ui

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePrompter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		choices []string
		want    string
		wantErr error
		asked   int
	}{
		{"first answer", "y\n", []string{"y", "n"}, "y", nil, 1},
		{"case and space", "  N \n", []string{"y", "n"}, "n", nil, 1},
		{"repeats until valid", "maybe\n\nq\na\n", []string{"y", "n", "a"}, "a", nil, 4},
		{"last line without newline", "y", []string{"y", "n"}, "y", nil, 1},
		{"eof", "x\n", []string{"y", "n"}, "", ErrAborted, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &LinePrompter{In: bufio.NewReader(strings.NewReader(tt.input)), Out: &out}

			got, err := p.Ask(context.Background(), ">>> Approve?", tt.choices...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.asked, strings.Count(out.String(), ">>> Approve? ["+strings.Join(tt.choices, "/")+"]"))
		})
	}
}

func TestLinePrompter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &LinePrompter{In: bufio.NewReader(strings.NewReader("y\n")), Out: &bytes.Buffer{}}
	_, err := p.Ask(ctx, "?", "y")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewPrompter(t *testing.T) {
	orig := isTerminal
	defer func() { isTerminal = orig }()

	isTerminal = func(uintptr) bool { return false }
	_, ok := NewPrompter(nil, &bytes.Buffer{}).(*LinePrompter)
	assert.True(t, ok)
}

func TestPromptModel(t *testing.T) {
	m := newPromptModel("Start?", []string{"y", "n"})
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "[y/n]")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.Equal(t, "", next.(promptModel).choice)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")})
	assert.NotNil(t, cmd)
	assert.Equal(t, "y", next.(promptModel).choice)
	assert.True(t, strings.HasSuffix(next.View(), "y\n"))

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(promptModel).aborted)

	next, cmd = m.Update(tea.WindowSizeMsg{Width: 80})
	assert.Nil(t, cmd)
	assert.Equal(t, m, next)
}

func TestPager_Missing(t *testing.T) {
	var out bytes.Buffer
	p := &Pager{Command: "definitely-not-a-pager-xyz", Out: &out}

	require.NoError(t, p.Show(context.Background(), []byte("diff text")))
	assert.Equal(t, "diff text", out.String())
}

func TestPager_Empty(t *testing.T) {
	var out bytes.Buffer
	p := &Pager{Out: &out}

	require.NoError(t, p.Show(context.Background(), []byte("x")))
	assert.Equal(t, "x", out.String())
}

func TestPager_Off(t *testing.T) {
	for _, command := range []string{PagerNone, "off", "FALSE", "none -R"} {
		t.Run(command, func(t *testing.T) {
			var out bytes.Buffer
			p := &Pager{Command: command, Out: &out}

			require.NoError(t, p.Show(context.Background(), []byte("plain diff")))
			assert.Equal(t, "plain diff", out.String())
		})
	}
}

func TestPager_Pipes(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	var out bytes.Buffer
	p := &Pager{Command: "cat -", Out: &out}

	require.NoError(t, p.Show(context.Background(), []byte("through the pager\n")))
	assert.Equal(t, "through the pager\n", out.String())
}

func TestSpin_NoTerminal(t *testing.T) {
	orig := isTerminal
	defer func() { isTerminal = orig }()
	isTerminal = func(uintptr) bool { return false }

	v, err := Spin("working", func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = Spin("working", func() (string, error) { return "", errors.New("boom") })
	assert.EqualError(t, err, "boom")
}

func TestSpinModel(t *testing.T) {
	m := spinModel{title: "Looking up"}
	assert.Contains(t, m.View(), "Looking up")

	next, cmd := m.Update(doneMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, "", next.View())
}
