// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package derive_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/grailbio/genpassword/derive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolden(t *testing.T) {
	for _, c := range []struct {
		domain, username, key string
		want                  string
	}{
		{"yahoo.com", "fred", "testkey", "VqGZ-xaOL-7yhU-KR6l"},
		{"yahoo.com", "fred2", "testkey", "jG9L-wgki-clvb-16SC"},
		{"yahoo.com", "fred", "otherkey", "fU5d-HwaT-8CNr-3uF6"},
		{"google.com", "fred", "testkey", "N6Mm-G_bZ-crox-EBPS"},
		{"mail.google.com", "fred", "testkey", "54qC-U8_9-j3kK-x0nb"},
		{"example.com", "alice", "s3cret", "6m3I-j2ZQ-idkb-FwS_"},
		{"", "", "", "9hbF-3nsa-wfAg-0UcX"},
	} {
		assert.Equal(t, c.want, derive.Generate(c.domain, c.username, c.key),
			"domain=%q username=%q key=%q", c.domain, c.username, c.key)
	}
}

func TestSeed(t *testing.T) {
	assert.Equal(t,
		"586741d8071fbaac5c38b7ed1440621b7f8d0bc863fe55553fa4ba972987d71e",
		derive.Seed("yahoo.com", "fred", "testkey"))
	// The order is domain, key, username, with no separators.
	assert.Equal(t, derive.Seed("ab", "", "c"), derive.Seed("a", "", "bc"))
	assert.Equal(t, derive.Seed("yahoo.com", "fred", "testkey"), derive.Seed("yahoo.comtest", "fred", "key"))
}

func TestDerive(t *testing.T) {
	want := derive.Generate("yahoo.com", "fred", "testkey")
	for _, url := range []string{
		"yahoo.com",
		"YAHOO.COM",
		"www.yahoo.com",
		"http://www.yahoo.com",
		"https://Www.Yahoo.Com/login?next=/",
		"//yahoo.com",
	} {
		assert.Equal(t, want, derive.Derive(url, "fred", "testkey"), url)
	}
	assert.Equal(t, derive.Generate("myexample.com", "fred", "testkey"),
		derive.Derive("mywww.example.com", "fred", "testkey"))
}

func checkShape(t *testing.T, password string) {
	t.Helper()
	require.Len(t, password, derive.Length)
	for i := 0; i < len(password); i++ {
		if (i+1)%derive.GroupSize == 0 {
			require.Equal(t, byte(derive.Separator), password[i], "%s: position %d", password, i+1)
		} else {
			require.True(t, strings.IndexByte(derive.Alphabet, password[i]) >= 0, "%s: position %d", password, i+1)
		}
	}
}

func TestShape(t *testing.T) {
	f := fuzz.NewWithSeed(1).NilChance(0)
	for i := 0; i < 1000; i++ {
		var domain, username, key string
		f.Fuzz(&domain)
		f.Fuzz(&username)
		f.Fuzz(&key)
		checkShape(t, derive.Generate(domain, username, key))
	}
}

func TestDistinctCharacters(t *testing.T) {
	// Characters come from a permutation, so none repeats.
	p := strings.Replace(derive.Generate("yahoo.com", "fred", "testkey"), "-", "", -1)
	seen := make(map[rune]bool)
	for _, r := range p {
		assert.False(t, seen[r], "%c repeated in %s", r, p)
		seen[r] = true
	}
}

func TestDeterministic(t *testing.T) {
	f := fuzz.NewWithSeed(2).NilChance(0)
	for i := 0; i < 100; i++ {
		var domain, username, key string
		f.Fuzz(&domain)
		f.Fuzz(&username)
		f.Fuzz(&key)
		assert.Equal(t, derive.Generate(domain, username, key), derive.Generate(domain, username, key))
	}
}

func TestSensitivity(t *testing.T) {
	seen := make(map[string]string)
	add := func(domain, username, key string) {
		input := fmt.Sprintf("%q/%q/%q", domain, username, key)
		p := derive.Generate(domain, username, key)
		if prev, ok := seen[p]; ok {
			t.Errorf("%s and %s both derive %s", prev, input, p)
		}
		seen[p] = input
	}
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			for k := 0; k < 5; k++ {
				add(fmt.Sprintf("site%d.com", i), fmt.Sprintf("user%d", j), fmt.Sprintf("key%d", k))
			}
		}
	}
}

func TestConcurrent(t *testing.T) {
	want := derive.Generate("yahoo.com", "fred", "testkey")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := derive.Generate("yahoo.com", "fred", "testkey"); got != want {
					t.Errorf("got %v, want %v", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}
