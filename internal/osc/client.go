// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package osc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/apex/log"

	"github.com/slectl/slectl/internal/cacheutil"
)

// Runner executes a program and returns its standard output. Failures that
// come from the program itself are reported as *CommandError.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandError is a non-zero exit of the client.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: exit status %d", shellescape.QuoteCommand(e.Args), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + firstLine(s)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), &CommandError{
			Args:     append([]string{name}, args...),
			ExitCode: exitErr.ExitCode(),
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return nil, fmt.Errorf("failed to run %s: %w", name, err)
}

// Client drives the osc command line client against one API instance.
type Client struct {
	APIURL     string
	binary     string
	configFile string
	runner     Runner
	cache      *cacheutil.Store
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the client executable (default "osc").
func WithBinary(path string) Option {
	return func(c *Client) { c.binary = path }
}

// WithConfigFile passes an explicit oscrc to every call.
func WithConfigFile(path string) Option {
	return func(c *Client) { c.configFile = path }
}

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.runner = r }
}

// WithCache keeps revision-pinned file reads in store.
func WithCache(store *cacheutil.Store) Option {
	return func(c *Client) { c.cache = store }
}

// New returns a Client for apiURL.
func New(apiURL string, opts ...Option) *Client {
	c := &Client{
		APIURL: apiURL,
		binary: "osc",
		runner: ExecRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Args returns the full argument list for a client call.
func (c *Client) Args(args ...string) []string {
	var full []string
	if c.configFile != "" {
		full = append(full, "--config", c.configFile)
	}
	if c.APIURL != "" {
		full = append(full, "-A", c.APIURL)
	}
	return append(full, args...)
}

// Run invokes the client with args and returns its standard output.
func (c *Client) Run(ctx context.Context, args ...string) ([]byte, error) {
	full := c.Args(args...)
	log.Debugf("exec: %s", shellescape.QuoteCommand(append([]string{c.binary}, full...)))

	out, err := c.runner.Run(ctx, c.binary, full...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
