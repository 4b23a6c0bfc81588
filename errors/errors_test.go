// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package errors_test

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/grailbio/genpassword/errors"
)

func TestError(t *testing.T) {
	_, err := os.Open("/dev/notexist")
	e1 := errors.E(errors.NotExist, "opening file", err)
	if got, want := e1.Error(), "opening file: resource does not exist: open /dev/notexist: no such file or directory"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	e2 := errors.E(err)
	if got, want := e2.Error(), "resource does not exist: open /dev/notexist: no such file or directory"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	for _, e := range []error{e1, e2} {
		if !errors.Is(errors.NotExist, e) {
			t.Errorf("error %v should be NotExist", e)
		}
	}
}

func TestErrorChaining(t *testing.T) {
	_, err := os.Open("/dev/notexist")
	err = errors.E("failed to open file", err)
	err = errors.E(errors.Temporary, "cannot record history", err)
	if got, want := err.Error(), "cannot record history: resource does not exist (temporary):\n\tfailed to open file: open /dev/notexist: no such file or directory"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSeverity(t *testing.T) {
	for _, c := range []struct {
		err              error
		temporary, fatal bool
	}{
		{errors.E("no idea"), false, false},
		{goerrors.New("no idea"), false, false},
		{errors.E(errors.Temporary, "keychain locked"), true, false},
		{errors.E(errors.Fatal, "no terminal"), false, true},
		{errors.E("reading key", errors.E(errors.Fatal, "no terminal")), false, true},
		{errors.E(errors.Unavailable, "reading key", errors.E(errors.Fatal, "no terminal")), false, true},
	} {
		if got, want := errors.IsTemporary(c.err), c.temporary; got != want {
			t.Errorf("error %v: temporary: got %v, want %v", c.err, got, want)
		}
		if got, want := errors.IsFatal(c.err), c.fatal; got != want {
			t.Errorf("error %v: fatal: got %v, want %v", c.err, got, want)
		}
	}
	if errors.IsFatal(nil) {
		t.Error("nil error is not fatal")
	}
}

func TestMessage(t *testing.T) {
	for _, c := range []struct {
		err     error
		message string
	}{
		{errors.E("hello"), "hello"},
		{errors.E("hello", "world"), "hello world"},
		{errors.E(errors.Invalid, "missing username"), "missing username: invalid argument"},
		{errors.E(errors.Integrity, errors.Fatal, "corrupt history"), "corrupt history: integrity error (fatal)"},
		{errors.E(42), "unknown type int, value 42 in error call: invalid argument"},
	} {
		if got, want := c.err.Error(), c.message; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestMatch(t *testing.T) {
	err := errors.E(errors.Unavailable, "store secret", errors.E(errors.NotAllowed, "keychain"))
	if !errors.Match(errors.E(errors.Unavailable), err) {
		t.Error("kind should match")
	}
	if !errors.Match(errors.E(errors.Unavailable, "store secret", errors.E(errors.NotAllowed)), err) {
		t.Error("chain should match")
	}
	if errors.Match(errors.E(errors.Invalid), err) {
		t.Error("kind should not match")
	}
}

func TestStdInterop(t *testing.T) {
	tests := []struct {
		name    string
		makeErr func() (cleanUp func(), _ error)
		kind    errors.Kind
		target  error
	}{
		{
			"not exist",
			func() (cleanUp func(), _ error) {
				_, err := os.Open("/dev/notexist")
				return func() {}, err
			},
			errors.NotExist,
			os.ErrNotExist,
		},
		{
			"canceled",
			func() (cleanUp func(), _ error) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				<-ctx.Done()
				return func() {}, ctx.Err()
			},
			errors.Canceled,
			context.Canceled,
		},
		{
			"timeout",
			func() (cleanUp func(), _ error) {
				ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Minute))
				<-ctx.Done()
				return cancel, ctx.Err()
			},
			errors.Timeout,
			context.DeadlineExceeded,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cleanUp, err := test.makeErr()
			defer cleanUp()
			for errIdx, err := range []error{
				err,
				errors.E(err),
				errors.E(err, "wrapped", errors.Fatal),
				errors.E(fmt.Errorf("wrapped: %w", err)),
			} {
				t.Run(strconv.Itoa(errIdx), func(t *testing.T) {
					if got, want := errors.Is(test.kind, err), true; got != want {
						t.Errorf("got %v, want %v", got, want)
					}
					if got, want := goerrors.Is(err, test.target), true; got != want {
						t.Errorf("got %v, want %v", got, want)
					}
				})
			}
		})
	}
}

func TestCleanUp(t *testing.T) {
	closeErr := goerrors.New("close failed")
	run := func(ret, cleanup error) (err error) {
		defer errors.CleanUp(func() error { return cleanup }, &err)
		return ret
	}
	if err := run(nil, nil); err != nil {
		t.Errorf("got %v, want nil", err)
	}
	if got, want := run(nil, closeErr), closeErr; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	err := run(errors.E(errors.Integrity, "decode"), closeErr)
	if !errors.Is(errors.Integrity, err) {
		t.Errorf("error %v should keep its kind", err)
	}
	if got, want := err.Error(), "second error in clean up: close failed: integrity error:\n\tdecode"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
