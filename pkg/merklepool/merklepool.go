// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package merklepool provides easy access to merkle tree builders
// managed as a resource pool. The pool bounds the number of in-flight
// builds and amortises the per-level hash state allocations.
package merklepool

import (
	"github.com/benvalle33/magenta/pkg/merkle"
)

// Capacity is the number of builders the pool holds, and with that the
// maximum number of concurrent builds served from it.
const Capacity = 32

var instance chan *merkle.Builder

func init() {
	instance = make(chan *merkle.Builder, Capacity)
	for i := 0; i < Capacity; i++ {
		instance <- merkle.NewBuilder()
	}
}

// Get a builder instance. Callers must Init the builder before use and
// are expected to return it with Put when the build is done or dropped.
func Get() *merkle.Builder {
	return <-instance
}

// Put returns a builder to the pool for reuse.
func Put(b *merkle.Builder) {
	instance <- b
}
