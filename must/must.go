// Copyright 2019 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package must provides a handful of functions to express fatal
// assertions: conditions that only a programming error can violate,
// such as registering the same keycrypt scheme twice.
package must

import (
	"fmt"
	"os"

	"github.com/grailbio/genpassword/log"
)

// Func is the function called to report an error and interrupt
// execution. Func is passed the call depth of the caller of the must
// function, which can be used to annotate messages.
//
// The default implementation logs the message with
// github.com/grailbio/genpassword/log at the Error level and exits
// with status 1.
var Func func(int, ...interface{}) = func(depth int, v ...interface{}) {
	_ = log.Output(depth+1, log.Error, fmt.Sprint(v...))
	os.Exit(1)
}

// Nil asserts that v is nil; v is typically a value of type error.
// If v is not nil, Nil formats a message in the manner of fmt.Sprint
// and calls must.Func. Nil also suffixes the message with the
// fmt.Sprint-formatted value of v.
func Nil(v interface{}, args ...interface{}) {
	if v == nil {
		return
	}
	if len(args) == 0 {
		Func(2, v)
		return
	}
	Func(2, fmt.Sprint(args...), ": ", v)
}

// True is a no-op if the value b is true. If it is false, True
// formats a message in the manner of fmt.Sprint and calls Func.
func True(b bool, v ...interface{}) {
	if b {
		return
	}
	if len(v) == 0 {
		Func(2, "must: assertion failed")
		return
	}
	Func(2, v...)
}
