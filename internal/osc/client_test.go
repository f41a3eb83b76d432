// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package osc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slectl/slectl/internal/cacheutil"
)

// fakeRunner answers calls by their space-joined arguments.
type fakeRunner struct {
	replies map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, name+" "+key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if s, ok := f.replies[key]; ok {
		return []byte(s), nil
	}
	return nil, &CommandError{Args: append([]string{name}, args...), ExitCode: 1, Stderr: "not found\nmore"}
}

const api = "https://api.example.org/"

func newTestClient(replies map[string]string, opts ...Option) (*Client, *fakeRunner) {
	fr := &fakeRunner{replies: map[string]string{}}
	for k, v := range replies {
		fr.replies["-A "+api+" "+k] = v
	}
	return New(api, append([]Option{WithRunner(fr)}, opts...)...), fr
}

func TestArgs(t *testing.T) {
	c := New(api, WithConfigFile("/tmp/oscrc"), WithBinary("/usr/bin/osc"))
	assert.Equal(t, []string{"--config", "/tmp/oscrc", "-A", api, "ls", "P"}, c.Args("ls", "P"))

	c = New("")
	assert.Equal(t, []string{"ls"}, c.Args("ls"))
}

func TestCommandError(t *testing.T) {
	err := &CommandError{Args: []string{"osc", "cat", "a b"}, ExitCode: 2, Stderr: "boom\ntrace"}
	assert.Equal(t, "osc cat 'a b': exit status 2: boom", err.Error())

	wrapped := errors.Join(errors.New("ctx"), err)
	var ce *CommandError
	assert.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, 2, ce.ExitCode)
}

func TestCat(t *testing.T) {
	c, fr := newTestClient(map[string]string{
		"cat P 000package-groups summary-staging.txt":       "a:b\n",
		"cat P 000package-groups summary-staging.txt -r 42": "c:d\n",
	})

	out, err := c.Cat(context.Background(), "P", "000package-groups", "summary-staging.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "a:b\n", string(out))

	out, err = c.Cat(context.Background(), "P", "000package-groups", "summary-staging.txt", "42")
	require.NoError(t, err)
	assert.Equal(t, "c:d\n", string(out))
	assert.Len(t, fr.calls, 2)

	_, err = c.Cat(context.Background(), "P", "x", "y", "")
	var ce *CommandError
	assert.True(t, errors.As(err, &ce))
}

func TestCat_CachesRevisions(t *testing.T) {
	t.Setenv("SLECTL_CACHE_DIR", t.TempDir())
	t.Setenv("SLECTL_CACHE", "1")
	store := cacheutil.Open("cat")
	require.NotNil(t, store)

	c, fr := newTestClient(map[string]string{
		"cat P pkg f -r 7": "pinned",
		"cat P pkg f":      "head",
	}, WithCache(store))
	ctx := context.Background()

	for range 3 {
		out, err := c.Cat(ctx, "P", "pkg", "f", "7")
		require.NoError(t, err)
		assert.Equal(t, "pinned", string(out))
	}
	assert.Len(t, fr.calls, 1)

	for range 2 {
		_, err := c.Cat(ctx, "P", "pkg", "f", "")
		require.NoError(t, err)
	}
	assert.Len(t, fr.calls, 3, "unpinned reads always hit the client")
}

func TestCatPath(t *testing.T) {
	c, _ := newTestClient(map[string]string{"cat P pkg file": "x"})

	out, err := c.CatPath(context.Background(), "P pkg file")
	require.NoError(t, err)
	assert.Equal(t, "x", string(out))

	_, err = c.CatPath(context.Background(), "P pkg")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	c, _ := newTestClient(map[string]string{"ls P": "bash\nvim\n\n"})

	pkgs, err := c.List(context.Background(), "P")
	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "vim"}, pkgs)
}

func TestRequestList(t *testing.T) {
	c, fr := newTestClient(map[string]string{
		"request list -t submit -D 7 -s accepted P": requestListing,
	})

	reqs, err := c.RequestList(context.Background(), "P", "submit", 7, "accepted")
	require.NoError(t, err)
	assert.Len(t, reqs, 2)
	assert.Equal(t, "osc -A "+api+" request list -t submit -D 7 -s accepted P", fr.calls[0])
}

func TestReviewCalls(t *testing.T) {
	c, fr := newTestClient(map[string]string{
		"review list -P P:Staging:A P":                       reviewListing,
		"review show -d 100":                                 "diff",
		"review accept -m OK -G sle-release-managers 100":    "ok",
		"review list --type set_bugowner SUSE:SLFO:Main":     "",
		"api /build/P/_result":                               resultXML,
		"api /search/owner?package=bash&filter=bugowner":     ownerXML,
		"api /group/sle-release-managers":                    groupXML,
		"api /search/person?match=%40login%3D%22jdoe%22":     personXML,
		"api /search/person?match=%40email%3D%22x%40y.org%22": "<collection/>",
	})
	ctx := context.Background()

	reqs, err := c.ReviewList(ctx, "P", "-P", "P:Staging:A")
	require.NoError(t, err)
	assert.Len(t, reqs, 3)

	reqs, err = c.ReviewList(ctx, "SUSE:SLFO:Main", "--type", "set_bugowner")
	require.NoError(t, err)
	assert.Empty(t, reqs)

	out, err := c.ReviewShow(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "diff", string(out))

	out, err = c.ReviewAccept(ctx, "100", "sle-release-managers", "OK")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.Contains(t, fr.calls, "osc -A "+api+" review accept -m OK -G sle-release-managers 100")

	rl, err := c.BuildResults(ctx, "P")
	require.NoError(t, err)
	assert.NotEmpty(t, rl.Results)

	owners, err := c.Owners(ctx, "bash")
	require.NoError(t, err)
	assert.Equal(t, []string{"jdoe"}, owners.People)

	g, err := c.Group(ctx, "sle-release-managers", false)
	require.NoError(t, err)
	assert.Equal(t, "SLE Release Managers", g.Title)

	people, err := c.Persons(ctx, ByLogin, "jdoe")
	require.NoError(t, err)
	assert.Len(t, people, 1)

	_, err = c.Persons(ctx, ByEmail, "x@y.org")
	assert.ErrorContains(t, err, "x@y.org not found")

	_, err = c.Persons(ctx, PersonField("nope"), "x")
	assert.Error(t, err)

	_, err = c.Owners(ctx, "missing")
	assert.ErrorContains(t, err, "missing has no bugowner")
}

func TestMatchExpr(t *testing.T) {
	tests := []struct {
		field PersonField
		want  string
	}{
		{ByLogin, `@login="jdoe"`},
		{ByEmail, `@email="jdoe@example.org"`},
		{ByName, `contains(@realname,"John Doe")`},
	}
	texts := map[PersonField]string{ByLogin: "jdoe", ByEmail: "jdoe@example.org", ByName: "John Doe"}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			got, err := tt.field.MatchExpr(texts[tt.field])
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
