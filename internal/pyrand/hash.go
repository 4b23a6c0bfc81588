// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pyrand

// Hash returns CPython 2.7's 64-bit hash of the byte string s, with
// hash randomization disabled, reinterpreted as an unsigned integer.
// This is the value random.seed uses when given a str.
func Hash(s string) uint64 {
	if len(s) == 0 {
		return 0
	}
	x := uint64(s[0]) << 7
	for i := 0; i < len(s); i++ {
		x = (1000003 * x) ^ uint64(s[i])
	}
	x ^= uint64(len(s))
	// -1 is reserved for errors in CPython.
	if x == ^uint64(0) {
		x = ^uint64(0) - 1
	}
	return x
}
