// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("aborted")

// Prompter asks a question and returns one of choices.
type Prompter interface {
	Ask(ctx context.Context, question string, choices ...string) (string, error)
}

// isTerminal is swapped in tests.
var isTerminal = func(fd uintptr) bool { return term.IsTerminal(int(fd)) }

// NewPrompter returns a single-key prompt when in is a terminal and a line
// prompt otherwise.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if in != nil && isTerminal(in.Fd()) {
		return &KeyPrompter{In: in, Out: out}
	}
	return &LinePrompter{In: bufio.NewReader(in), Out: out}
}

func hint(choices []string) string {
	return "[" + strings.Join(choices, "/") + "]"
}

// LinePrompter reads whole lines. It repeats the question until the answer is
// one of the choices.
type LinePrompter struct {
	In  *bufio.Reader
	Out io.Writer
}

func (p *LinePrompter) Ask(ctx context.Context, question string, choices ...string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintf(p.Out, "%s %s ", question, hint(choices))

		line, err := p.In.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if slices.Contains(choices, answer) {
			return answer, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.Out)
				return "", ErrAborted
			}
			return "", err
		}
	}
}

// KeyPrompter answers on a single key press.
type KeyPrompter struct {
	In  io.Reader
	Out io.Writer
}

func (p *KeyPrompter) Ask(ctx context.Context, question string, choices ...string) (string, error) {
	prog := tea.NewProgram(
		newPromptModel(question, choices),
		tea.WithContext(ctx),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
	)
	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return "", ErrAborted
		}
		return "", err
	}

	m := final.(promptModel)
	if m.aborted {
		return "", ErrAborted
	}
	return m.choice, nil
}

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

type promptModel struct {
	question string
	choices  []string
	choice   string
	aborted  bool
}

func newPromptModel(question string, choices []string) promptModel {
	return promptModel{question: question, choices: choices}
}

func (m promptModel) Init() tea.Cmd { return nil }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := strings.ToLower(key.String()); {
	case k == "ctrl+c" || k == "esc":
		m.aborted = true
		return m, tea.Quit
	case slices.Contains(m.choices, k):
		m.choice = k
		return m, tea.Quit
	}
	return m, nil
}

func (m promptModel) View() string {
	s := questionStyle.Render(m.question) + " " + hintStyle.Render(hint(m.choices)) + " "
	if m.choice != "" {
		s += m.choice + "\n"
	} else if m.aborted {
		s += "\n"
	}
	return s
}
