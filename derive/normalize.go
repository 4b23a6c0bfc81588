// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package derive

import "strings"

const www = "www."

// Normalize returns the lowercase domain named by rawURL, which may be
// a full URL ("https://www.Example.com/login") or a bare host
// ("example.com"). The literal substring "www." is removed wherever it
// appears, not only as a prefix: "notwww.example.com" normalizes to
// "notexample.com". Passwords derived by earlier versions depend on
// this.
//
// rawURL is split the way earlier versions split it: nothing is
// percent-decoded, only ASCII letters are lowercased, and no input is
// rejected. Normalize(Normalize(s)) == Normalize(s) for all s.
func Normalize(rawURL string) string {
	s := normalize(rawURL)
	// A round that changes s drops part of it, so this terminates.
	// Only results that still look like URLs, such as "a:b@c" from
	// "http://a:b@c", take more than one round.
	for {
		next := normalize(s)
		if next == s {
			return s
		}
		s = next
	}
}

func normalize(rawURL string) string {
	s := lower(location(rawURL))
	for strings.Contains(s, www) {
		s = strings.Replace(s, www, "", -1)
	}
	return s
}

// location returns the network location of rawURL if it has one, and
// its path otherwise. The query, fragment and path parameters are
// not part of either.
func location(rawURL string) string {
	rest, scheme := rawURL, ""
	if i := strings.IndexByte(rest, ':'); i > 0 {
		// "example.com:8080" is a host and port, not a URL with scheme
		// "example.com".
		if rest[:i] == "http" || (isScheme(rest[:i]) && !isPort(rest[i+1:])) {
			scheme, rest = lower(rest[:i]), rest[i+1:]
		}
	}
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		if netloc := rest[:end]; netloc != "" {
			return netloc
		}
		rest = rest[end:]
	}
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest = rest[:i]
	}
	if paramSchemes[scheme] {
		rest = trimParams(rest)
	}
	return rest
}

// paramSchemes are the schemes whose paths may carry ";params".
var paramSchemes = map[string]bool{
	"": true, "ftp": true, "hdl": true, "prospero": true, "http": true,
	"imap": true, "https": true, "shttp": true, "rtsp": true, "rtspu": true,
	"sip": true, "sips": true, "mms": true, "sftp": true, "tel": true,
}

// trimParams removes the parameters of the last path segment.
func trimParams(path string) string {
	start := 0
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		start = i
	}
	if i := strings.IndexByte(path[start:], ';'); i >= 0 {
		return path[:start+i]
	}
	return path
}

func isScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '+', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}

func isPort(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// lower lowercases ASCII letters only; other bytes are kept as is.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
