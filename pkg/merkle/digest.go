// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	// NodeSize is the number of payload bytes hashed into one digest.
	NodeSize = 4096

	// DigestLength is the byte length of a node digest.
	DigestLength = sha256.Size

	// digestsPerNode relates a node-aligned length in one level to the
	// digest-aligned length in the level above.
	digestsPerNode = NodeSize / DigestLength
)

// NewHasher returns the digest primitive the tree is built with.
var NewHasher = sha256.New

// Digest is the hash of a single tree node.
type Digest struct {
	b [DigestLength]byte
}

// NewDigest constructs a Digest from the first DigestLength bytes of b.
func NewDigest(b []byte) Digest {
	var d Digest
	copy(d.b[:], b)
	return d
}

// ParseHexDigest returns a Digest from its hex string representation.
func ParseHexDigest(s string) (d Digest, err error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, err
	}
	if len(b) != DigestLength {
		return d, fmt.Errorf("digest length %d: %w", len(b), ErrInvalidArgs)
	}
	copy(d.b[:], b)
	return d, nil
}

// MustParseHexDigest returns a Digest from its hex string representation,
// and panics if there is a parse error.
func MustParseHexDigest(s string) Digest {
	d, err := ParseHexDigest(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns a hex-encoded representation of the Digest.
func (d Digest) String() string {
	return hex.EncodeToString(d.b[:])
}

// Equal returns true if two digests are identical.
func (d Digest) Equal(other Digest) bool {
	return bytes.Equal(d.b[:], other.b[:])
}

// Bytes returns a copy of the digest bytes.
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestLength)
	copy(b, d.b[:])
	return b
}

// CopyTo writes the digest into out, which must hold at least
// DigestLength bytes.
func (d Digest) CopyTo(out []byte) error {
	if len(out) < DigestLength {
		return ErrBufferTooSmall
	}
	copy(out, d.b[:])
	return nil
}
