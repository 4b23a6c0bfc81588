// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package history

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-test/deep"
	"github.com/grailbio/genpassword/errors"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "history")
	defer cleanup()
	ctx := context.Background()
	s := &Store{Path: filepath.Join(dir, DefaultFile)}

	h, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, h)

	require.NoError(t, s.Record(ctx, "yahoo.com", "fred"))
	require.NoError(t, s.Record(ctx, "yahoo.com", "alice"))
	require.NoError(t, s.Record(ctx, "yahoo.com", "fred"))
	require.NoError(t, s.Record(ctx, "google.com", "fred"))

	h, err = s.Load(ctx)
	require.NoError(t, err)
	want := History{
		"yahoo.com":  Set{"fred": {}, "alice": {}},
		"google.com": Set{"fred": {}},
	}
	if diff := deep.Equal(h, want); diff != nil {
		t.Error(diff)
	}

	b, err := ioutil.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, `{
  "google.com": {
    "__type__": "set",
    "value": [
      "fred"
    ]
  },
  "yahoo.com": {
    "__type__": "set",
    "value": [
      "alice",
      "fred"
    ]
  }
}
`, string(b))
}

func TestStoreLegacyFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "history")
	defer cleanup()
	ctx := context.Background()
	s := &Store{Path: filepath.Join(dir, DefaultFile)}
	require.NoError(t, ioutil.WriteFile(s.Path, []byte(legacyFile), 0644))

	require.NoError(t, s.Record(ctx, "yahoo.com", "bob"))
	h, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "fred"}, h.Users("yahoo.com"))
	assert.Equal(t, []string{"fred"}, h.Users("mail.google.com"))
}

func TestStoreCorrupt(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "history")
	defer cleanup()
	ctx := context.Background()
	s := &Store{Path: filepath.Join(dir, DefaultFile)}
	corrupt := []byte(`{"yahoo.com": `)
	require.NoError(t, ioutil.WriteFile(s.Path, corrupt, 0644))

	_, err := s.Load(ctx)
	assert.True(t, errors.Is(errors.Integrity, err), "%v", err)
	err = s.Record(ctx, "yahoo.com", "fred")
	assert.True(t, errors.Is(errors.Integrity, err), "%v", err)
	b, err := ioutil.ReadFile(s.Path)
	require.NoError(t, err)
	assert.Equal(t, corrupt, b)
}

func TestStoreEmptyFile(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "history")
	defer cleanup()
	s := &Store{Path: filepath.Join(dir, DefaultFile)}
	require.NoError(t, ioutil.WriteFile(s.Path, nil, 0644))
	h, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestStoreConcurrent(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "history")
	defer cleanup()
	ctx := context.Background()
	path := filepath.Join(dir, DefaultFile)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Separate stores lock separate file descriptors, as
			// separate processes would.
			s := &Store{Path: path}
			if err := s.Record(ctx, "yahoo.com", fmt.Sprintf("user%02d", i)); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	h, err := (&Store{Path: path}).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, h.Users("yahoo.com"), n)
}

func TestStoreCanceled(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "history")
	defer cleanup()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &Store{Path: filepath.Join(dir, DefaultFile)}
	err := s.Record(ctx, "yahoo.com", "fred")
	// The lock may be acquired before cancellation is noticed.
	if err != nil {
		assert.True(t, errors.Is(errors.Canceled, err), "%v", err)
	}
}
