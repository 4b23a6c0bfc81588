// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/grailbio/genpassword/history"
	"v.io/x/lib/cmdline"
)

func listSites(ctx context.Context, env *cmdline.Env, opts *options, args []string) error {
	if len(args) > 1 {
		return env.UsageErrorf("-sites accepts at most one pattern")
	}
	if opts.historyPath == "" {
		return env.UsageErrorf("-sites needs a -history file")
	}
	var pattern string
	if len(args) == 1 {
		pattern = args[0]
	}
	h, err := (&history.Store{Path: opts.historyPath}).Load(ctx)
	if err != nil {
		return err
	}
	domains, err := h.Match(pattern)
	if err != nil {
		return err
	}
	for _, d := range domains {
		if _, err := fmt.Fprintf(env.Stdout, "%s: %s\n", d, strings.Join(h.Users(d), ", ")); err != nil {
			return err
		}
	}
	return nil
}
