// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package smelt queries the SMELT maintenance database over GraphQL.
package smelt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
)

const binariesQuery = `query {
  binaries(name_Iexact: %s) {
    edges { node { channelsources { edges { node {
      channel { name }
      package { name }
      project { name }
    } } } } }
  }
}`

const incidentQuery = `query {
  incidents(incidentId: %d) {
    edges { node { repositories { edges { node { name } } } } }
  }
}`

// Client posts GraphQL queries to one endpoint.
type Client struct {
	URL  string
	HTTP *retryablehttp.Client
}

// ChannelSource is where a binary is shipped from.
type ChannelSource struct {
	Channel string `json:"channel" yaml:"channel"`
	Project string `json:"project" yaml:"project"`
	Package string `json:"package" yaml:"package"`
}

// New returns a Client for url that retries transient failures.
func New(url string) *Client {
	hc := retryablehttp.NewClient()
	hc.RetryMax = 3
	hc.RetryWaitMin = 500 * time.Millisecond
	hc.RetryWaitMax = 5 * time.Second
	hc.Logger = nil
	hc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		log.Debugf("POST %s (attempt %d)", req.URL, attempt+1)
	}
	return &Client{URL: url, HTTP: hc}
}

// Query runs a GraphQL query and returns the "data" member of the reply.
func (c *Client) Query(ctx context.Context, query string) (gjson.Result, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return gjson.Result{}, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to query %s: %w", c.URL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read reply: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("%s: %s", c.URL, resp.Status)
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, errors.New("reply is not JSON")
	}

	reply := gjson.ParseBytes(raw)
	if errs := reply.Get("errors"); errs.Exists() && len(errs.Array()) > 0 {
		var msgs []string
		for _, e := range errs.Array() {
			msgs = append(msgs, e.Get("message").String())
		}
		return gjson.Result{}, fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
	}

	return reply.Get("data"), nil
}

// BinarySources returns the channels a binary is shipped in.
func (c *Client) BinarySources(ctx context.Context, name string) ([]ChannelSource, error) {
	quoted, err := json.Marshal(name)
	if err != nil {
		return nil, err
	}
	data, err := c.Query(ctx, fmt.Sprintf(binariesQuery, quoted))
	if err != nil {
		return nil, err
	}

	var out []ChannelSource
	data.Get("binaries.edges").ForEach(func(_, bin gjson.Result) bool {
		bin.Get("node.channelsources.edges").ForEach(func(_, src gjson.Result) bool {
			out = append(out, ChannelSource{
				Channel: src.Get("node.channel.name").String(),
				Project: src.Get("node.project.name").String(),
				Package: src.Get("node.package.name").String(),
			})
			return true
		})
		return true
	})
	return out, nil
}

// IncidentRepositories returns the sorted repositories of an incident.
func (c *Client) IncidentRepositories(ctx context.Context, id int) ([]string, error) {
	data, err := c.Query(ctx, fmt.Sprintf(incidentQuery, id))
	if err != nil {
		return nil, err
	}

	var repos []string
	for _, name := range data.Get("incidents.edges.#.node.repositories.edges.#.node.name").Array() {
		for _, r := range name.Array() {
			repos = append(repos, r.String())
		}
	}
	repos = lo.Uniq(repos)
	slices.Sort(repos)
	return repos, nil
}
