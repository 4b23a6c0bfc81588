// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

//go:build windows
// +build windows

package flock

import (
	"context"
	"io/fs"
	"sync"

	"golang.org/x/sys/windows"
)

const allBytes = ^uint32(0)

type winlock struct {
	path   string
	handle windows.Handle
	mu     sync.Mutex
}

func newPlatformLock(path string) T {
	return &winlock{path: path}
}

func (w *winlock) Lock(ctx context.Context) error {
	return lockCtx(ctx, w.doLock, w.Unlock)
}

func (w *winlock) Unlock() error {
	defer w.mu.Unlock()
	err := windows.UnlockFileEx(w.handle, 0, allBytes, allBytes, new(windows.Overlapped))
	windows.CloseHandle(w.handle)
	if err != nil {
		return &fs.PathError{Op: "unlock", Path: w.path, Err: err}
	}
	return nil
}

func (w *winlock) doLock() error {
	w.mu.Lock()
	handle, err := windows.Open(w.path, windows.O_CREAT|windows.O_RDWR, 0600)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.handle = handle
	// LockFileEx needs an OVERLAPPED for the offset of the locked
	// range; the zero value locks from the start of the file.
	err = windows.LockFileEx(w.handle, windows.LOCKFILE_EXCLUSIVE_LOCK, 0, allBytes, allBytes, new(windows.Overlapped))
	if err != nil {
		windows.CloseHandle(w.handle)
		w.mu.Unlock()
		return &fs.PathError{Op: "lock", Path: w.path, Err: err}
	}
	return nil
}
