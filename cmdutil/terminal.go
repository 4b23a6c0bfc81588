// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmdutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grailbio/genpassword/errors"
	"golang.org/x/crypto/ssh/terminal"
)

// IsTerminal tells whether v is an *os.File connected to a terminal.
func IsTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && terminal.IsTerminal(int(f.Fd()))
}

// ReadSecret prompts for a secret on prompter and reads it from in.
// If in is a terminal, the secret is read without echo. Otherwise a
// single line is read and its line terminator removed, which lets
// scripts pipe a secret in. A failure to read is Fatal: there is no
// other way to obtain the secret.
func ReadSecret(prompt string, in io.Reader, prompter io.Writer) (string, error) {
	fmt.Fprint(prompter, prompt)
	if f, ok := in.(*os.File); ok && terminal.IsTerminal(int(f.Fd())) {
		b, err := terminal.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompter)
		if err != nil {
			return "", errors.E(errors.Fatal, "read secret from terminal", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", errors.E(errors.Fatal, errors.Invalid, "no secret on standard input")
		}
		return "", errors.E(errors.Fatal, "read secret", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
