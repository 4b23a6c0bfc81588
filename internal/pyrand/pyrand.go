// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package pyrand implements the Mersenne Twister (MT19937) generator
// with the seeding, floating point and shuffling conventions of
// CPython 2.7's random module. Passwords derived by older versions of
// genpassword depend on these exact sequences, so every operation here
// must stay bit-for-bit compatible with that implementation.
//
// A Rand is not safe for concurrent use.
package pyrand

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Rand is a seeded MT19937 generator.
type Rand struct {
	mt  [n]uint32
	pos int
}

// New returns a generator seeded from the string s in the manner of
// random.seed(s) in CPython 2.7 on a 64-bit platform: the string is
// hashed with Hash and the hash is used as an integer seed.
func New(s string) *Rand {
	return NewFromUint64(Hash(s))
}

// NewFromUint64 returns a generator seeded with the integer v, as
// random.seed(v) does for a non-negative integer.
func NewFromUint64(v uint64) *Rand {
	var key []uint32
	for ; v != 0; v >>= 32 {
		key = append(key, uint32(v))
	}
	if len(key) == 0 {
		key = append(key, 0)
	}
	return NewFromKey(key)
}

// NewFromKey returns a generator initialized with init_by_array(key).
// NewFromKey panics if key is empty.
func NewFromKey(key []uint32) *Rand {
	if len(key) == 0 {
		panic("pyrand: empty key")
	}
	r := new(Rand)
	r.seed(19650218)
	mt := &r.mt
	i, j := 1, 0
	k := n
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		mt[i] = (mt[i] ^ ((mt[i-1] ^ (mt[i-1] >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= n {
			mt[0] = mt[n-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = n - 1; k > 0; k-- {
		mt[i] = (mt[i] ^ ((mt[i-1] ^ (mt[i-1] >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= n {
			mt[0] = mt[n-1]
			i = 1
		}
	}
	mt[0] = 0x80000000
	return r
}

func (r *Rand) seed(s uint32) {
	r.mt[0] = s
	for i := 1; i < n; i++ {
		r.mt[i] = 1812433253*(r.mt[i-1]^(r.mt[i-1]>>30)) + uint32(i)
	}
	r.pos = n
}

func (r *Rand) generate() {
	mt := &r.mt
	for k := 0; k < n; k++ {
		y := (mt[k] & upperMask) | (mt[(k+1)%n] & lowerMask)
		v := mt[(k+m)%n] ^ (y >> 1)
		if y&1 != 0 {
			v ^= matrixA
		}
		mt[k] = v
	}
	r.pos = 0
}

// Uint32 returns the next tempered 32-bit output of the generator.
func (r *Rand) Uint32() uint32 {
	if r.pos >= n {
		r.generate()
	}
	y := r.mt[r.pos]
	r.pos++
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 returns a float in [0, 1) with 53 bits of randomness built
// from two consecutive outputs, like random.random().
func (r *Rand) Float64() float64 {
	a := r.Uint32() >> 5
	b := r.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Shuffle permutes n elements in place with the Fisher-Yates variant
// of random.shuffle in CPython 2.7: for i from n-1 down to 1, element
// i is exchanged with element int(random() * (i+1)).
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(r.Float64() * float64(i+1))
		swap(i, j)
	}
}
