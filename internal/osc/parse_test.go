// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package osc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestListing = `000100  State:accepted   By:foo       When:2025-02-07T17:05:34
        delete:          SUSE:SLFO:Main/utempter
        Descr: drop it
               submit: not an action

000101  State:accepted   By:bar       When:2025-02-07T17:06:21
        submit:          openSUSE.org:openSUSE:Tools/product-composer@01bab0f7cdbfe17066156f2127b9da63 -> SUSE:SLFO:Main
        Review by Group      is accepted:  sle-release-managers(carol)
        Descr: update
`

const reviewListing = `100  State:review     By:foo       When:2025-02-14T15:29:41
        submit:          SUSE:SLFO:Main/libfoo.SUSE_SLFO_Main@3 -> SUSE:SLFO:Main
        Review by Group      is new:       sle-release-managers
        Review by User       is accepted:  foo

101  State:review     By:foo       When:2025-02-14T15:30:00
        delete:          SUSE:SLFO:Main/oldpkg
        Review by Group      is accepted:  sle-release-managers(carol)

102  State:review     By:dan       When:2025-03-20T18:20:31
        set_bugowner:    java-maintainers SUSE:SLFO:Main/picocli
        Review by Group      is new:       sle-staging-managers
        Review by Group      is new:       sle-release-managers
`

func TestParseRequests(t *testing.T) {
	reqs := ParseRequests([]byte(requestListing))
	require.Len(t, reqs, 2)

	del := reqs[0]
	assert.Equal(t, "000100", del.ID)
	assert.Equal(t, "accepted", del.State)
	assert.Equal(t, "foo", del.By)
	assert.Equal(t, "2025-02-07T17:05:34", del.When)
	assert.True(t, time.Date(2025, 2, 7, 17, 5, 34, 0, time.Local).Equal(del.Changed))
	require.Len(t, del.Actions, 1, "description lines are not actions")
	assert.Equal(t, "delete", del.Actions[0].Type)
	assert.Equal(t, "utempter", del.Actions[0].Package())
	assert.Equal(t, "SUSE:SLFO:Main/utempter", del.Actions[0].Target())

	sub := reqs[1]
	a, ok := sub.First("submit")
	require.True(t, ok)
	assert.Equal(t, "product-composer", a.Package())
	assert.Equal(t, "SUSE:SLFO:Main", a.Target())
	assert.Equal(t, "", a.Owner())
	require.Len(t, sub.Reviews, 1)
	assert.Equal(t, Review{Kind: "Group", State: "accepted", Name: "sle-release-managers", Reviewer: "carol"}, sub.Reviews[0])

	_, ok = sub.First("delete")
	assert.False(t, ok)
}

func TestParseRequests_Reviews(t *testing.T) {
	reqs := ParseRequests([]byte(reviewListing))
	require.Len(t, reqs, 3)

	bug, ok := reqs[2].First("set_bugowner")
	require.True(t, ok)
	assert.Equal(t, "picocli", bug.Package())
	assert.Equal(t, "java-maintainers", bug.Owner())

	pending := PendingFor(reqs, "sle-release-managers")
	require.Len(t, pending, 2)
	assert.Equal(t, "100", pending[0].ID)
	assert.Equal(t, "102", pending[1].ID)

	assert.Empty(t, PendingFor(reqs, "nobody"))
}

func TestParseRequests_Garbage(t *testing.T) {
	assert.Empty(t, ParseRequests([]byte("No results for package P\n")))
	assert.Empty(t, ParseRequests(nil))
}

func TestIncidentSuffix(t *testing.T) {
	assert.Equal(t, ".SUSE_SLFO_Main", IncidentSuffix("SUSE:SLFO:Main"))
}

func TestParseBinaryListing(t *testing.T) {
	data := `images/x86_64/kiwi-templates-Minimal:
  SLES-16.0-Minimal-VM.x86_64-kvm.qcow2
  SLES-16.0-Minimal-VM.x86_64-kvm.qcow2.sha256
  SLES-16.0-Minimal-VM.x86_64-kvm.qcow2.sha256.asc
  SLES-16.0-Minimal-VM.x86_64.packages
  SLES-16.0-Minimal-VM.x86_64.report
  SLES-16.0-Minimal-VM.x86_64.verified
  Agama.x86_64.iso
  _statistics
  _buildenv
  foo-1.0.x86_64.rpm
  build.json
`
	assert.Equal(t, []string{
		"Agama.x86_64.iso",
		"SLES-16.0-Minimal-VM.x86_64-kvm.qcow2",
	}, ParseBinaryListing([]byte(data)))
}

func TestParseSourcePackage(t *testing.T) {
	data := `SUSE:SLFO:Main:Build bash:bash-5.2 standard x86_64 bash-5.2-1.x86_64.rpm
SUSE:SLFO:Main:Build bash standard aarch64 bash-5.2-1.aarch64.rpm
SUSE:SLFO:Main:Build:Other zsh standard x86_64 zsh.rpm
SUSE:SLFO:Main bash2 standard x86_64 bash2.rpm
`
	pkg, err := ParseSourcePackage([]byte(data), "SUSE:SLFO:Main:Build", "bash")
	require.NoError(t, err)
	assert.Equal(t, "bash", pkg)

	pkg, err = ParseSourcePackage([]byte(data), "SUSE:SLFO:Main", "bash2")
	require.NoError(t, err)
	assert.Equal(t, "bash2", pkg)

	_, err = ParseSourcePackage([]byte(data), "SUSE:SLE-15:GA", "bash")
	assert.ErrorContains(t, err, "no source package found for bash in SUSE:SLE-15:GA")
}

func TestParseSourcePackage_Several(t *testing.T) {
	data := "P b:x\nP a:y\nP b\n"
	pkg, err := ParseSourcePackage([]byte(data), "P", "bin")
	require.NoError(t, err)
	assert.Equal(t, "a", pkg)
}

func TestShipped(t *testing.T) {
	content := []byte("packages:\n  - bash\n  - bash-completion\n  - libfoo1\n")

	tests := []struct {
		binary string
		want   bool
		line   string
	}{
		{"bash", true, "- bash"},
		{"bash-completion", true, "- bash-completion"},
		{"libfoo", false, ""},
		{"libfoo1", true, "- libfoo1"},
		{"zsh", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.binary, func(t *testing.T) {
			got, line := Shipped(content, tt.binary)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.line, line)
		})
	}
}

const resultXML = `<resultlist state="abc">
  <result project="P" repository="standard" arch="x86_64" code="published" state="published">
    <status package="vim" code="succeeded"/>
    <status package="bash" code="succeeded"/>
    <status package="gone" code="excluded"/>
  </result>
  <result project="P" repository="ports" arch="riscv64" code="published" state="published">
    <status package="bash" code="failed"/>
  </result>
  <result project="P" repository="images" arch="x86_64" code="published" state="published">
    <status package="kiwi-templates-Minimal:kvm" code="succeeded"/>
    <status package="off" code="disabled"/>
    <status package="what" code="unknown"/>
  </result>
  <result project="P" repository="standard" arch="aarch64" code="published" state="published">
    <status package="bash" code="failed"/>
    <status package="aarch-only" code="scheduled"/>
  </result>
</resultlist>`

func TestOnlyBuild(t *testing.T) {
	rl, err := ParseResultList([]byte(resultXML))
	require.NoError(t, err)

	got := rl.OnlyBuild("ports")
	assert.Equal(t, []RepoPackages{
		{Repository: "standard", Packages: []string{"aarch-only", "bash", "vim"}},
		{Repository: "images", Packages: []string{"kiwi-templates-Minimal:kvm"}},
	}, got)

	all := rl.OnlyBuild()
	require.Len(t, all, 3)
	assert.Equal(t, "ports", all[1].Repository)
}

func TestMatchingPackages(t *testing.T) {
	rl, err := ParseResultList([]byte(resultXML))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"bash", "kiwi-templates-Minimal:kvm"},
		rl.MatchingPackages([]string{"bash", "kiwi-templates-Minimal", ""}))
}

func TestParseResultList_Invalid(t *testing.T) {
	_, err := ParseResultList([]byte("<resultlist>"))
	assert.Error(t, err)
}

const ownerXML = `<collection>
  <owner rootproject="SUSE:SLFO:Main" project="SUSE:SLFO:Main" package="bash">
    <person name="jdoe" role="bugowner"/>
  </owner>
</collection>`

const groupOwnerXML = `<collection>
  <owner rootproject="SUSE:SLFO:Main" project="SUSE:SLFO:Main" package="java">
    <group name="java-maintainers" role="bugowner"/>
  </owner>
</collection>`

const groupXML = `<?xml version="1.0" encoding="UTF-8"?>
<group>
  <title>SLE Release Managers</title>
  <email>rm@example.org</email>
  <maintainer userid="alice"/>
  <maintainer userid="bob"/>
  <person>
    <person userid="alice"/>
    <person userid="carol"/>
  </person>
</group>`

const personXML = `<collection matches="1">
  <person>
    <login>jdoe</login>
    <email>jdoe@example.org</email>
    <realname>John Doe</realname>
    <state>confirmed</state>
  </person>
</collection>`

func TestParseOwners(t *testing.T) {
	o, err := ParseOwners([]byte(ownerXML))
	require.NoError(t, err)
	names, isGroup := o.Names()
	assert.Equal(t, []string{"jdoe"}, names)
	assert.False(t, isGroup)

	o, err = ParseOwners([]byte(groupOwnerXML))
	require.NoError(t, err)
	names, isGroup = o.Names()
	assert.Equal(t, []string{"java-maintainers"}, names)
	assert.True(t, isGroup)

	o, err = ParseOwners([]byte("<collection/>"))
	require.NoError(t, err)
	names, isGroup = o.Names()
	assert.Empty(t, names)
	assert.False(t, isGroup)
}

func TestParseGroup(t *testing.T) {
	g, err := ParseGroup([]byte(groupXML), false)
	require.NoError(t, err)
	assert.Equal(t, GroupInfo{
		Title:       "SLE Release Managers",
		Email:       "rm@example.org",
		Maintainers: []string{"alice", "bob"},
	}, g)

	g, err = ParseGroup([]byte(groupXML), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "carol"}, g.Users)

	_, err = ParseGroup([]byte("<status code=\"not_found\"/>"), false)
	assert.Error(t, err)
}

func TestParsePersons(t *testing.T) {
	people, err := ParsePersons([]byte(personXML))
	require.NoError(t, err)
	assert.Equal(t, []Person{{
		Login:    "jdoe",
		Email:    "jdoe@example.org",
		Realname: "John Doe",
		State:    "confirmed",
	}}, people)
}
