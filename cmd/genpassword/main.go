// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// The following enables go generate to generate the doc.go file.
//go:generate go run v.io/x/lib/cmdline/gendoc "--build-cmd=go install" --copyright-notice= . -help
package main

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/grailbio/genpassword/cmdutil"
	"github.com/grailbio/genpassword/derive"
	"github.com/grailbio/genpassword/errors"
	"github.com/grailbio/genpassword/history"
	"github.com/grailbio/genpassword/log"
	_ "github.com/grailbio/genpassword/security/keycrypt/file"
	_ "github.com/grailbio/genpassword/security/keycrypt/keychain"
	"v.io/x/lib/cmdline"
)

const defaultSecretURL = "local://genpassword/Password Generator"

type options struct {
	interactive bool
	secretURL   string
	historyPath string
	sites       bool
}

func newCmdRoot() *cmdline.Command {
	opts := new(options)
	cmd := &cmdline.Command{
		Runner: cmdutil.RunnerFunc(func(env *cmdline.Env, args []string) error {
			return run(context.Background(), env, opts, args)
		}),
		Name:  "genpassword",
		Short: "Derive a site password from a domain, a username and a key",
		Long: `
Command genpassword derives the password for an account on a website from the
site's domain, the account's username and a secret key. The same inputs always
give the same password, so passwords never need to be stored.

The key is kept in the macOS Keychain. The first time genpassword runs it
prompts for the key and stores it. Where there is no Keychain the key is
prompted for every time; -secret=localfile://genpassword/key keeps it in an
unencrypted file under ~/.keycrypt instead, for those who accept that. With
-interactive, the key is prompted for every time and the store is not used.

The url may be a full URL or a bare domain; it is reduced to a lowercase domain
without "www.", so these all derive the same password:

  genpassword fred www.yahoo.com
  genpassword fred http://www.yahoo.com/mail
  genpassword fred YAHOO.COM

When standard output is a terminal the password is printed as

  Site: yahoo.com: Password: XXXX-XXXX-XXXX-XXXX

and otherwise the bare password is written with no trailing newline, so that
it can be piped to a clipboard tool.

Each username is recorded against its domain in ~/.genpassword.dat. With
-sites, genpassword lists the recorded domains and usernames instead,
optionally filtered by a glob pattern in which '*' matches within a domain
label and '**' across labels:

  genpassword -sites '**.google.com'
`,
		ArgsName: "<username> <url> | -sites [pattern]",
	}
	cmd.Flags.BoolVar(&opts.interactive, "interactive", false, "Prompt for the key instead of using the stored key.")
	cmd.Flags.BoolVar(&opts.interactive, "i", false, "Shorthand for -interactive.")
	cmd.Flags.StringVar(&opts.secretURL, "secret", defaultSecretURL, "Keycrypt URL of the stored key.")
	defaultHistory, err := history.DefaultPath()
	if err != nil {
		log.Debug.Printf("history disabled: %v", err)
	}
	cmd.Flags.StringVar(&opts.historyPath, "history", defaultHistory, "File recording the usernames used with each domain. Empty disables recording.")
	cmd.Flags.BoolVar(&opts.sites, "sites", false, "List recorded sites matching the optional pattern instead of deriving a password.")
	return cmd
}

func run(ctx context.Context, env *cmdline.Env, opts *options, args []string) error {
	if opts.sites {
		return listSites(ctx, env, opts, args)
	}
	if len(args) != 2 {
		return env.UsageErrorf("exactly two arguments are required: <username> <url>")
	}
	username, domain := args[0], derive.Normalize(args[1])
	key, err := readKey(env, opts)
	if err != nil {
		return errors.E("cannot obtain the key", err)
	}
	password := derive.Generate(domain, username, key)

	if opts.historyPath != "" {
		store := &history.Store{Path: opts.historyPath}
		if err := store.Record(ctx, domain, username); err != nil {
			log.Error.Printf("recording %s: %v", domain, err)
		}
	}

	if cmdutil.IsTerminal(env.Stdout) {
		_, err = fmt.Fprintf(env.Stdout, "Site: %s: Password: %s\n", domain, password)
	} else {
		_, err = io.WriteString(env.Stdout, password)
	}
	return err
}

func main() {
	log.AddFlags()
	cmdline.HideGlobalFlagsExcept(regexp.MustCompile(`^log$`))
	cmdline.Main(newCmdRoot())
}
