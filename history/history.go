// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package history keeps an advisory record of the usernames used with
// each domain, so that a user can look up which account they derived
// a password for. The record is never an input to derivation.
//
// The file format is JSON written by earlier versions of genpassword: an
// object keyed by domain whose values are sets encoded as
// {"__type__": "set", "value": [...]}.
package history

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gobwas/glob"
	"github.com/grailbio/genpassword/errors"
)

// Set is an unordered set of strings.
type Set map[string]struct{}

const setType = "set"

type taggedSet struct {
	Type  string   `json:"__type__"`
	Value []string `json:"value"`
}

// Sorted returns the members of s in lexical order.
func (s Set) Sorted() []string {
	v := make([]string, 0, len(s))
	for k := range s {
		v = append(v, k)
	}
	sort.Strings(v)
	return v
}

// MarshalJSON encodes s as a tagged set with sorted members.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(taggedSet{Type: setType, Value: s.Sorted()})
}

// UnmarshalJSON decodes a tagged set. A plain list is accepted as
// well.
func (s *Set) UnmarshalJSON(b []byte) error {
	var values []string
	if err := json.Unmarshal(b, &values); err != nil {
		var tagged taggedSet
		if err := json.Unmarshal(b, &tagged); err != nil {
			return err
		}
		if tagged.Type != setType {
			return fmt.Errorf("unsupported type %q", tagged.Type)
		}
		values = tagged.Value
	}
	*s = make(Set, len(values))
	for _, v := range values {
		(*s)[v] = struct{}{}
	}
	return nil
}

// History maps a normalized domain to the usernames used with it.
type History map[string]Set

// Add records that username was used with domain.
func (h History) Add(domain, username string) {
	users := h[domain]
	if users == nil {
		users = make(Set)
		h[domain] = users
	}
	users[username] = struct{}{}
}

// Users returns the usernames recorded for domain, sorted.
func (h History) Users(domain string) []string {
	return h[domain].Sorted()
}

// Domains returns the recorded domains, sorted.
func (h History) Domains() []string {
	domains := make([]string, 0, len(h))
	for d := range h {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// Match returns the recorded domains matching the glob pattern,
// sorted. In the pattern, '*' matches within one label of a domain
// and '**' matches across labels, so "*.com" matches "yahoo.com" but
// not "mail.google.com". An empty pattern matches every domain.
func (h History) Match(pattern string) ([]string, error) {
	if pattern == "" {
		return h.Domains(), nil
	}
	g, err := glob.Compile(pattern, '.')
	if err != nil {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("pattern %q", pattern), err)
	}
	var matched []string
	for _, d := range h.Domains() {
		if g.Match(d) {
			matched = append(matched, d)
		}
	}
	return matched, nil
}
