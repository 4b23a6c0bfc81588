// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package cmdutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/genpassword/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSecret(t *testing.T) {
	for _, c := range []struct {
		in, want string
	}{
		{"testkey\n", "testkey"},
		{"testkey\r\n", "testkey"},
		{"testkey", "testkey"},
		{"first\nsecond\n", "first"},
		{"\n", ""},
		{"with spaces \n", "with spaces "},
	} {
		var prompt bytes.Buffer
		got, err := ReadSecret("Encryption key: ", strings.NewReader(c.in), &prompt)
		require.NoError(t, err, "%q", c.in)
		assert.Equal(t, c.want, got, "%q", c.in)
		assert.Equal(t, "Encryption key: ", prompt.String())
	}
}

func TestReadSecretEmpty(t *testing.T) {
	var prompt bytes.Buffer
	_, err := ReadSecret("Encryption key: ", strings.NewReader(""), &prompt)
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err), "%v", err)
	assert.True(t, errors.Is(errors.Invalid, err), "%v", err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(new(bytes.Buffer)))
	assert.False(t, IsTerminal(nil))
}

func TestWriteWrappedMessage(t *testing.T) {
	var b bytes.Buffer
	WriteWrappedMessage(&b, "the key is stored in local://genpassword/Password Generator\n")
	assert.Equal(t, "the key is stored in local://genpassword/Password Generator\n", b.String())
}
