// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package keycrypt implements an API for storing and retrieving
// secrets, such as the key passwords are derived from. Keycrypt
// multiplexes several local backends (the macOS Keychain, plain files)
// behind URLs of the form scheme://namespace/name.
package keycrypt

import (
	"sync"

	"github.com/grailbio/genpassword/errors"
)

// ErrNoSuchSecret is returned by Secret.Get when the secret has never
// been stored.
var ErrNoSuchSecret = errors.E(errors.NotExist, "no such secret")

// Secret represents a single object. Secret objects are
// uninterpreted bytes that are stored securely.
type Secret interface {
	// Retrieve the current value of this secret. If the secret does not
	// exist, Get returns ErrNoSuchSecret.
	Get() ([]byte, error)
	// Write a new value for this secret.
	Put([]byte) error
}

// Interface Keycrypt represents a secure secret storage.
type Keycrypt interface {
	// Look up the named secret. A secret is returned even if it does
	// not yet exist. In this case, Secret.Get will return
	// ErrNoSuchSecret.
	Lookup(name string) Secret
}

// Resolver returns the Keycrypt for a namespace.
type Resolver interface {
	Resolve(namespace string) Keycrypt
}

type funcResolver func(string) Keycrypt

func (f funcResolver) Resolve(namespace string) Keycrypt { return f(namespace) }

// ResolverFunc adapts a function to a Resolver.
func ResolverFunc(f func(string) Keycrypt) Resolver { return funcResolver(f) }

// GetString retrieves a secret as a string. The boolean is false if
// the secret does not exist or is empty; err reports any other
// failure.
func GetString(s Secret) (string, bool, error) {
	b, err := s.Get()
	if errors.Is(errors.NotExist, err) {
		return "", false, nil
	} else if err != nil {
		return "", false, err
	}
	return string(b), len(b) > 0, nil
}

// PutString stores the string v in a secret.
func PutString(s Secret, v string) error {
	return s.Put([]byte(v))
}

// Memory is a Keycrypt that keeps secrets in process memory. It is
// useful for composing programs in tests. The zero Memory is ready
// to use.
type Memory struct {
	mu      sync.Mutex
	secrets map[string][]byte
}

// Lookup implements Keycrypt.
func (m *Memory) Lookup(name string) Secret {
	return memorySecret{m, name}
}

type memorySecret struct {
	m    *Memory
	name string
}

func (s memorySecret) Get() ([]byte, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b, ok := s.m.secrets[s.name]
	if !ok {
		return nil, ErrNoSuchSecret
	}
	return append([]byte(nil), b...), nil
}

func (s memorySecret) Put(b []byte) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if s.m.secrets == nil {
		s.m.secrets = make(map[string][]byte)
	}
	s.m.secrets[s.name] = append([]byte(nil), b...)
	return nil
}
