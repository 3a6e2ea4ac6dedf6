// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"errors"
)

var (
	// ErrInvalidArgs means a required buffer was nil or a digest input
	// has the wrong length.
	ErrInvalidArgs = errors.New("invalid arguments")

	// ErrBufferTooSmall means the tree buffer cannot hold every level of
	// the tree (retryable with a buffer of at least GetTreeLength bytes),
	// or an output buffer cannot hold a digest.
	ErrBufferTooSmall = errors.New("tree buffer too small")

	// ErrOutOfRange means an update or a requested range runs past the
	// declared payload length.
	ErrOutOfRange = errors.New("out of range")

	// ErrBadState means the streaming protocol was violated: Update or
	// Final without Init, or Final before the whole payload was written.
	ErrBadState = errors.New("bad builder state")

	// ErrDataIntegrity means a computed digest does not match the tree or
	// the trusted root. It is never returned for any other reason.
	ErrDataIntegrity = errors.New("data integrity violated")
)
