// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type doneMsg struct{}

type spinModel struct {
	spinner spinner.Model
	title   string
	done    bool
}

func (m spinModel) Init() tea.Cmd { return m.spinner.Tick }

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.title
}

// Spin runs fn while a spinner with title turns on stderr. Without a terminal
// fn simply runs.
func Spin[T any](title string, fn func() (T, error)) (T, error) {
	if !isTerminal(os.Stderr.Fd()) {
		return fn()
	}

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	prog := tea.NewProgram(
		spinModel{spinner: s, title: title},
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
	)
	finished := make(chan struct{})
	go func() {
		_, _ = prog.Run()
		close(finished)
	}()

	v, err := fn()
	prog.Send(doneMsg{})
	<-finished
	return v, err
}
