// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package keychain implements a keycrypt backed by the macOS Keychain.
// Importing it registers the "keychain" scheme on darwin when cgo is
// enabled; elsewhere it registers nothing, and "local" URLs resolve to
// no store at all.
//
// Secrets are stored as generic passwords with the namespace as the
// service and the secret name as the account.
// They are not synchronized and are readable only while the keychain
// is unlocked.
package keychain
