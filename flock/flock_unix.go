// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

//go:build !windows
// +build !windows

package flock

import (
	"context"
	"sync"

	"github.com/grailbio/genpassword/log"
	"golang.org/x/sys/unix"
)

type unixlock struct {
	name string
	fd   int
	mu   sync.Mutex
}

func newPlatformLock(path string) T {
	return &unixlock{name: path}
}

func (f *unixlock) Lock(ctx context.Context) error {
	return lockCtx(ctx, f.doLock, f.Unlock)
}

func (f *unixlock) Unlock() error {
	err := unix.Flock(f.fd, unix.LOCK_UN)
	if err := unix.Close(f.fd); err != nil {
		log.Error.Printf("close %s: %v", f.name, err)
	}
	f.mu.Unlock()
	return err
}

func (f *unixlock) doLock() error {
	f.mu.Lock() // Serialize the lock within one process.

	fd, err := unix.Open(f.name, unix.O_CREAT|unix.O_RDWR|unix.O_CLOEXEC, 0600)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.fd = fd
	err = unix.Flock(f.fd, unix.LOCK_EX|unix.LOCK_NB)
	if err == unix.EWOULDBLOCK {
		log.Debug.Printf("waiting for lock %s", f.name)
		err = unix.Flock(f.fd, unix.LOCK_EX)
	}
	if err != nil {
		unix.Close(f.fd)
		f.mu.Unlock()
	}
	return err
}
