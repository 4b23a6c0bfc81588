// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/grailbio/genpassword/cmdutil"
	"github.com/grailbio/genpassword/errors"
	"github.com/grailbio/genpassword/log"
	"github.com/grailbio/genpassword/security/keycrypt"
	"v.io/x/lib/cmdline"
)

const keyPrompt = "Encryption key: "

// readKey returns the key passwords are derived from. Unless
// opts.interactive is set, the key comes from the secret store; when
// the store has no key, the user is prompted and the answer is
// stored. Where there is no operating system secret store the key is
// prompted for on every run and never written anywhere. Secret store
// failures are reported and otherwise ignored: a prompted key is as
// good as a stored one. Only a failure to prompt is returned.
func readKey(env *cmdline.Env, opts *options) (string, error) {
	if opts.interactive {
		return cmdutil.ReadSecret(keyPrompt, env.Stdin, env.Stderr)
	}
	secret, err := keycrypt.Lookup(opts.secretURL)
	if errors.Is(errors.Unavailable, err) {
		log.Printf("the key will not be stored: %v", err)
		return cmdutil.ReadSecret(keyPrompt, env.Stdin, env.Stderr)
	} else if err != nil {
		log.Error.Printf("secret store %s: %v", opts.secretURL, err)
		return cmdutil.ReadSecret(keyPrompt, env.Stdin, env.Stderr)
	}
	key, ok, err := keycrypt.GetString(secret)
	switch {
	case err != nil:
		log.Error.Printf("reading key from %s: %v", opts.secretURL, err)
	case ok:
		log.Debug.Printf("using key from %s", opts.secretURL)
		return key, nil
	}
	key, err = cmdutil.ReadSecret(keyPrompt, env.Stdin, env.Stderr)
	if err != nil {
		return "", err
	}
	if err := keycrypt.PutString(secret, key); err != nil {
		log.Error.Printf("storing key in %s: %v", opts.secretURL, err)
		return key, nil
	}
	if cmdutil.IsTerminal(env.Stderr) {
		cmdutil.WriteWrappedMessage(env.Stderr, fmt.Sprintf(
			"The key was stored in %s and will be used from now on. Use -interactive to enter a different key.\n",
			opts.secretURL))
	}
	return key, nil
}
