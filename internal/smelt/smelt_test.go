// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package smelt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, handler func(query string) (int, string)) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Query string `json:"query"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		status, reply := handler(body.Query)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	c.HTTP.RetryWaitMin = time.Millisecond
	c.HTTP.RetryWaitMax = 5 * time.Millisecond
	return c
}

const binariesReply = `{"data": {"binaries": {"edges": [
  {"node": {"channelsources": {"edges": [
    {"node": {"channel": {"name": "SLE-Module-Basesystem15-SP6-Updates"}, "package": {"name": "bash"}, "project": {"name": "SUSE:SLE-15-SP6:Update"}}},
    {"node": {"channel": {"name": "SLE-Module-Basesystem15-SP6-Pool"}, "package": {"name": "bash"}, "project": {"name": "SUSE:SLE-15-SP6:GA"}}}
  ]}}}
]}}}`

func TestBinarySources(t *testing.T) {
	c := newServer(t, func(query string) (int, string) {
		assert.Contains(t, query, `binaries(name_Iexact: "bash")`)
		return http.StatusOK, binariesReply
	})

	got, err := c.BinarySources(context.Background(), "bash")
	require.NoError(t, err)

	assert.Equal(t, []ChannelSource{
		{Channel: "SLE-Module-Basesystem15-SP6-Updates", Project: "SUSE:SLE-15-SP6:Update", Package: "bash"},
		{Channel: "SLE-Module-Basesystem15-SP6-Pool", Project: "SUSE:SLE-15-SP6:GA", Package: "bash"},
	}, got)
}

func TestBinarySources_QuotesName(t *testing.T) {
	c := newServer(t, func(query string) (int, string) {
		assert.Contains(t, query, `name_Iexact: "a\"b"`)
		return http.StatusOK, `{"data": {"binaries": {"edges": []}}}`
	})

	got, err := c.BinarySources(context.Background(), `a"b`)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIncidentRepositories(t *testing.T) {
	c := newServer(t, func(query string) (int, string) {
		assert.Contains(t, query, "incidents(incidentId: 1234)")
		return http.StatusOK, `{"data": {"incidents": {"edges": [
		  {"node": {"repositories": {"edges": [{"node": {"name": "SUSE_Updates_B"}}, {"node": {"name": "SUSE_Updates_A"}}]}}},
		  {"node": {"repositories": {"edges": [{"node": {"name": "SUSE_Updates_A"}}]}}}
		]}}}`
	})

	got, err := c.IncidentRepositories(context.Background(), 1234)
	require.NoError(t, err)
	assert.Equal(t, []string{"SUSE_Updates_A", "SUSE_Updates_B"}, got)
}

func TestQuery_GraphQLErrors(t *testing.T) {
	c := newServer(t, func(string) (int, string) {
		return http.StatusOK, `{"errors": [{"message": "bad field"}, {"message": "worse"}], "data": null}`
	})

	_, err := c.IncidentRepositories(context.Background(), 1)
	assert.EqualError(t, err, "graphql: bad field; worse")
}

func TestQuery_NotJSON(t *testing.T) {
	c := newServer(t, func(string) (int, string) {
		return http.StatusOK, `<html>`
	})

	_, err := c.Query(context.Background(), "query { x }")
	assert.EqualError(t, err, "reply is not JSON")
}

func TestQuery_ClientError(t *testing.T) {
	c := newServer(t, func(string) (int, string) {
		return http.StatusBadRequest, `{}`
	})

	_, err := c.Query(context.Background(), "query { x }")
	assert.ErrorContains(t, err, "400")
}

func TestQuery_Retries(t *testing.T) {
	var calls atomic.Int32
	c := newServer(t, func(string) (int, string) {
		if calls.Add(1) < 3 {
			return http.StatusServiceUnavailable, ""
		}
		return http.StatusOK, `{"data": {"ok": true}}`
	})

	data, err := c.Query(context.Background(), "query { ok }")
	require.NoError(t, err)
	assert.True(t, data.Get("ok").Bool())
	assert.Equal(t, int32(3), calls.Load())
}
