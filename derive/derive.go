// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package derive computes site passwords deterministically from a
// domain, a username and a secret key. Nothing is stored: the same
// three inputs always produce the same password, so the password can
// be recomputed whenever it is needed.
//
// The derivation is:
//
//	seed     = hex(sha256(domain + key + username))
//	shuffled = shuffle(Alphabet) using a generator seeded with seed
//	password = shuffled[:Length], with '-' at every fifth position
//
// The generator and shuffle reproduce CPython 2.7's random module, so
// passwords match those produced by earlier versions of genpassword.
//
// Functions in this package are pure and safe for concurrent use.
package derive

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/grailbio/genpassword/internal/pyrand"
)

const (
	// Alphabet is the ordered set of characters passwords are drawn from.
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"
	// Length is the length of a derived password, separators included.
	Length = 19
	// Separator is placed at every GroupSize-th position.
	Separator = '-'
	// GroupSize is the period of separators in a password.
	GroupSize = 5
)

// Derive normalizes rawURL and returns the password for the
// resulting domain, username and key.
func Derive(rawURL, username, key string) string {
	return Generate(Normalize(rawURL), username, key)
}

// Seed returns the hex-encoded SHA-256 digest of domain, key and
// username concatenated in that order.
func Seed(domain, username, key string) string {
	sum := sha256.Sum256([]byte(domain + key + username))
	return hex.EncodeToString(sum[:])
}

// Generate returns the password for an already normalized domain.
// Generate is total: any three strings, including empty ones, produce
// a password.
func Generate(domain, username, key string) string {
	chars := []byte(Alphabet)
	pyrand.New(Seed(domain, username, key)).Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})
	password := make([]byte, Length)
	for i := range password {
		if (i+1)%GroupSize == 0 {
			password[i] = Separator
		} else {
			password[i] = chars[i]
		}
	}
	return string(password)
}
