// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package osc

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Owners are the bugowners of a package, either people or groups.
type Owners struct {
	People []string
	Groups []string
}

// Names returns the people when there are any, otherwise the groups. The
// boolean is true when the names are groups.
func (o Owners) Names() ([]string, bool) {
	if len(o.People) > 0 {
		return o.People, false
	}
	return o.Groups, len(o.Groups) > 0
}

// GroupInfo describes a build service group.
type GroupInfo struct {
	Title       string   `json:"group" yaml:"group"`
	Email       string   `json:"email" yaml:"email"`
	Maintainers []string `json:"maintainers" yaml:"maintainers"`
	Users       []string `json:"users,omitempty" yaml:"users,omitempty"`
}

// Person describes a build service user.
type Person struct {
	Login    string `json:"user" yaml:"user"`
	Email    string `json:"email" yaml:"email"`
	Realname string `json:"name" yaml:"name"`
	State    string `json:"state" yaml:"state"`
}

func parseDoc(data []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse reply: %w", err)
	}
	return doc, nil
}

func attrs(sel *goquery.Selection, name string) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr(name); ok && v != "" {
			out = append(out, v)
		}
	})
	return out
}

// ParseOwners scrapes a /search/owner reply.
func ParseOwners(data []byte) (Owners, error) {
	doc, err := parseDoc(data)
	if err != nil {
		return Owners{}, err
	}
	return Owners{
		People: attrs(doc.Find("person"), "name"),
		Groups: attrs(doc.Find("group"), "name"),
	}, nil
}

// ParseGroup scrapes a /group/<name> reply. Members are read only when full.
func ParseGroup(data []byte, full bool) (GroupInfo, error) {
	doc, err := parseDoc(data)
	if err != nil {
		return GroupInfo{}, err
	}
	if doc.Find("group").Length() == 0 {
		return GroupInfo{}, errors.New("reply has no group")
	}

	info := GroupInfo{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Email:       strings.TrimSpace(doc.Find("email").First().Text()),
		Maintainers: attrs(doc.Find("maintainer"), "userid"),
	}
	if full {
		info.Users = attrs(doc.Find("person"), "userid")
	}
	return info, nil
}

// ParsePersons scrapes a /search/person reply.
func ParsePersons(data []byte) ([]Person, error) {
	doc, err := parseDoc(data)
	if err != nil {
		return nil, err
	}

	var out []Person
	doc.Find("person").Each(func(_ int, s *goquery.Selection) {
		text := func(tag string) string {
			return strings.TrimSpace(s.Find(tag).First().Text())
		}
		out = append(out, Person{
			Login:    text("login"),
			Email:    text("email"),
			Realname: text("realname"),
			State:    text("state"),
		})
	})
	return out, nil
}
