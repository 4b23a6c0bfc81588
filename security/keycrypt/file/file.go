// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package file implements a file-based keycrypt. Importing it
// registers two schemes: "file", where the secret name is an absolute
// path, and "localfile", where secrets live under
// $HOME/.keycrypt/<namespace>. Secrets are written readable only by
// their owner, but they are not encrypted.
package file

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/grailbio/genpassword/errors"
	"github.com/grailbio/genpassword/security/keycrypt"
)

func init() {
	keycrypt.RegisterFunc("file", func(h string) keycrypt.Keycrypt {
		return New("/")
	})
	keycrypt.RegisterFunc("localfile", func(h string) keycrypt.Keycrypt {
		// h is taken to be a namespace
		return New(filepath.Join(os.Getenv("HOME"), ".keycrypt", h))
	})
}

// New returns a Keycrypt that stores each secret in a file named by
// the secret under dir.
func New(dir string) keycrypt.Keycrypt {
	return &crypt{dir}
}

type crypt struct{ path string }

func (c *crypt) Lookup(name string) keycrypt.Secret {
	return fileSecret(filepath.Join(c.path, name))
}

type fileSecret string

func (f fileSecret) Get() ([]byte, error) {
	b, err := ioutil.ReadFile(string(f))
	if os.IsNotExist(err) {
		return nil, keycrypt.ErrNoSuchSecret
	} else if err != nil {
		return nil, errors.E("read secret", err)
	}
	return b, nil
}

func (f fileSecret) Put(b []byte) (err error) {
	dir := filepath.Dir(string(f))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.E(errors.Unavailable, "store secret", err)
	}
	tmpfile, err := ioutil.TempFile(dir, ".keycrypt")
	if err != nil {
		return errors.E(errors.Unavailable, "store secret", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmpfile.Name())
		}
	}()
	// Best effort because it doesn't work on Windows.
	_ = tmpfile.Chmod(0600)
	if _, err := tmpfile.Write(b); err != nil {
		tmpfile.Close()
		return errors.E("store secret", err)
	}
	if err := tmpfile.Close(); err != nil {
		return errors.E("store secret", err)
	}
	return os.Rename(tmpfile.Name(), string(f))
}
