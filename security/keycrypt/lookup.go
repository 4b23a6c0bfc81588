// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package keycrypt

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/grailbio/genpassword/errors"
	"github.com/grailbio/genpassword/must"
)

var (
	mu           sync.Mutex
	resolvers    = map[string]Resolver{}
	localSchemes = []string{"keychain"}
)

// Register associates a Resolver with a scheme. A scheme may be
// registered only once.
func Register(scheme string, resolver Resolver) {
	mu.Lock()
	defer mu.Unlock()
	must.True(resolvers[scheme] == nil, fmt.Sprintf("keycrypt: scheme %q registered twice", scheme))
	resolvers[scheme] = resolver
}

// For testing.
func unregister(scheme string) {
	mu.Lock()
	delete(resolvers, scheme)
	mu.Unlock()
}

// RegisterFunc associates a Resolver (given by a func)
// with a scheme.
func RegisterFunc(scheme string, f func(string) Keycrypt) {
	Register(scheme, ResolverFunc(f))
}

// Lookup retrieves a secret based on a URL, in the standard form:
// scheme://namespace/name. The URL is interpreted according to the
// Resolver registered with the given scheme. The scheme "local"
// is a special scheme that resolves to the operating system's secret
// store ("keychain") and fails with kind Unavailable where there is
// none. It never falls back to "localfile", which keeps secrets in
// plain files; that must be asked for by name. Names may contain
// spaces; "local://genpassword/Password Generator" is a valid URL.
func Lookup(rawurl string) (Secret, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, errors.E(errors.Invalid, "secret url", err)
	}
	mu.Lock()
	defer mu.Unlock()
	var r Resolver
	if u.Scheme == "local" {
		for _, s := range localSchemes {
			r = resolvers[s]
			if r != nil {
				break
			}
		}
		if r == nil {
			return nil, errors.E(errors.Unavailable, fmt.Sprintf("no operating system secret store, tried: %s", strings.Join(localSchemes, ", ")))
		}
	} else {
		r = resolvers[u.Scheme]
	}
	if r == nil {
		return nil, errors.E(errors.NotSupported, fmt.Sprintf("unknown scheme \"%s\"", u.Scheme))
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("secret url %q names no secret", rawurl))
	}
	return r.Resolve(u.Host).Lookup(name), nil
}

// Get data from a keycrypt URL.
func Get(rawurl string) ([]byte, error) {
	s, err := Lookup(rawurl)
	if err != nil {
		return nil, err
	}
	return s.Get()
}

// Put writes data to a keycrypt URL.
func Put(rawurl string, data []byte) error {
	s, err := Lookup(rawurl)
	if err != nil {
		return err
	}
	return s.Put(data)
}
