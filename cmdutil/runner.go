// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package cmdutil provides utility routines for implementing command line
// tools: a cmdline runner that routes log output to the command's
// environment, and helpers for terminals and secret prompts.
package cmdutil

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/grailbio/genpassword/log"
	"v.io/x/lib/cmdline"
)

var runnerOnce sync.Once

// RunnerFunc is an adapter that turns regular functions into cmdline.Runners.
type RunnerFunc func(*cmdline.Env, []string) error

// Run implements the cmdline.Runner interface method by calling f(env, args)
// after configuring the log package to write undecorated messages,
// prefixed by the program name, to env.Stderr.
func (f RunnerFunc) Run(env *cmdline.Env, args []string) error {
	runnerOnce.Do(func() {
		log.SetFlags(0)
		log.SetPrefix(filepath.Base(os.Args[0]) + ": ")
	})
	log.SetOutput(env.Stderr)
	return f(env, args)
}
