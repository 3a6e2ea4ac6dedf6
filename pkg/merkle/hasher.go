// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/binary"
	"hash"
)

// headerSize is the number of bytes hashed before the node data: the
// 8-byte locality tag and the 4-byte node length.
const headerSize = 12

// zeroNode is the shared source of node padding.
var zeroNode [NodeSize]byte

// nodeHasher computes the digest of a single tree node:
//
//	digest = H(locality || length || data || padding)
//
// where locality is the node's byte offset within its level OR-ed with
// the level index, length is the byte count of the node (NodeSize except
// possibly for the last node of a level), and padding is zeros up to
// NodeSize. Both header fields are hashed little endian.
type nodeHasher struct {
	h hash.Hash
}

func newNodeHasher() *nodeHasher {
	return &nodeHasher{h: NewHasher()}
}

// init primes the hasher for a new node, hashing the locality tag and the
// node length. remaining is the number of bytes left in the level; the
// node length is capped at NodeSize.
func (n *nodeHasher) init(locality, remaining uint64) {
	if remaining > NodeSize {
		remaining = NodeSize
	}
	var header [headerSize]byte
	binary.LittleEndian.PutUint64(header[:8], locality)
	binary.LittleEndian.PutUint32(header[8:], uint32(remaining))
	n.h.Reset()
	n.h.Write(header[:])
}

// update hashes data up to the next node boundary, as determined from
// offset, and returns the number of bytes consumed.
func (n *nodeHasher) update(data []byte, offset uint64) uint64 {
	length := uint64(len(data))
	if boundary := NodeSize - offset%NodeSize; length > boundary {
		length = boundary
	}
	n.h.Write(data[:length])
	return length
}

// final pads the hashed data with zeros up to a node boundary and returns
// the node digest.
func (n *nodeHasher) final(offset uint64) (d Digest) {
	if pad := offset % NodeSize; pad != 0 {
		n.h.Write(zeroNode[:NodeSize-pad])
	}
	n.h.Sum(d.b[:0])
	return d
}
