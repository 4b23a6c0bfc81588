// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package history

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/grailbio/genpassword/errors"
	"github.com/grailbio/genpassword/flock"
	"github.com/grailbio/genpassword/log"
	"github.com/grailbio/genpassword/must"
)

// DefaultFile is the name of the history file in the user's home
// directory.
const DefaultFile = ".genpassword.dat"

// DefaultPath returns the path of the history file in the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.E(errors.Unavailable, "history", err)
	}
	return filepath.Join(home, DefaultFile), nil
}

// Store is a history file. Writers in different processes are
// serialized by an advisory lock on the file Path + ".lock".
type Store struct {
	Path string
}

// Load returns the history in the store. A missing file is an empty
// history. A file that cannot be decoded is an Integrity error.
func (s *Store) Load(ctx context.Context) (History, error) {
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.read()
}

// Record adds username to the set of usernames recorded for domain
// and writes the history back. The file is replaced atomically; a
// corrupt file is left untouched.
func (s *Store) Record(ctx context.Context, domain, username string) error {
	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()
	h, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := h[domain][username]; ok {
		return nil
	}
	h.Add(domain, username)
	log.Debug.Printf("recording %s for %s in %s", username, domain, s.Path)
	return s.write(h)
}

func (s *Store) lock(ctx context.Context) (unlock func(), err error) {
	lock := flock.New(s.Path + ".lock")
	if err := lock.Lock(ctx); err != nil {
		return nil, errors.E("lock history", s.Path, err)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			log.Error.Printf("unlock history %s: %v", s.Path, err)
		}
	}, nil
}

func (s *Store) read() (History, error) {
	b, err := ioutil.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return make(History), nil
	} else if err != nil {
		return nil, errors.E("read history", s.Path, err)
	}
	h := make(History)
	if len(b) == 0 {
		return h, nil
	}
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, errors.E(errors.Integrity, "decode history", s.Path, err)
	}
	return h, nil
}

func (s *Store) write(h History) (err error) {
	b, err := json.MarshalIndent(h, "", "  ")
	must.Nil(err, "encode history")
	f, err := ioutil.TempFile(filepath.Dir(s.Path), filepath.Base(s.Path)+".")
	if err != nil {
		return errors.E("write history", s.Path, err)
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()
	_, err = f.Write(append(b, '\n'))
	errors.CleanUp(f.Close, &err)
	if err != nil {
		return errors.E("write history", s.Path, err)
	}
	if err := os.Rename(f.Name(), s.Path); err != nil {
		return errors.E("write history", s.Path, err)
	}
	return nil
}
