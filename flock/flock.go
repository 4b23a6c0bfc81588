// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package flock implements a simple file-based advisory lock. It
// serializes writers of a file across processes, such as two
// genpassword invocations recording history at once.
package flock

import (
	"context"
)

// T is an exclusive advisory lock on a path. Within one process, a T
// also excludes other goroutines using the same T.
type T interface {
	// Lock blocks until the lock is held or ctx is done. Iff Lock
	// returns nil, the caller must call Unlock later.
	Lock(ctx context.Context) error
	Unlock() error
}

// New returns a lock on path. The file is created when first locked,
// and is never removed.
func New(path string) T {
	return newPlatformLock(path)
}

// lockCtx runs lock in a separate goroutine so that a blocked
// acquisition can be abandoned when ctx is done. The lock is released
// if it is eventually acquired after ctx is done.
func lockCtx(ctx context.Context, lock, unlock func() error) error {
	done := make(chan error, 1)
	go func() { done <- lock() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		go func() {
			if err := <-done; err == nil {
				_ = unlock()
			}
		}()
		return ctx.Err()
	}
}
