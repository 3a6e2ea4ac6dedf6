// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reference is a non-streaming implementation of the node-hashed
// Merkle tree, optimized for code simplicity and meant as a reference
// against which the streaming builder is tested. It materializes every
// level as a whole byte slice and shares no code with the production
// implementation beyond the hash primitive.
package reference

import (
	"crypto/sha256"
	"encoding/binary"
)

const nodeSize = 4096

// hashNode computes the digest of one node: the little endian locality
// (offset OR level) and length header, the node bytes, and zero padding
// up to nodeSize. An empty node is hashed as the header alone.
func hashNode(offset, level uint64, length uint32, node []byte) []byte {
	h := sha256.New()
	var header [12]byte
	binary.LittleEndian.PutUint64(header[:8], offset|level)
	binary.LittleEndian.PutUint32(header[8:], length)
	h.Write(header[:])
	h.Write(node)
	if len(node) > 0 {
		pad := make([]byte, nodeSize-len(node))
		h.Write(pad)
	}
	return h.Sum(nil)
}

// hashLevel returns the concatenated digests of every node of one level,
// padded with zeros to a whole number of nodes.
func hashLevel(data []byte, level uint64) []byte {
	var digests []byte
	for offset := 0; offset < len(data); offset += nodeSize {
		end := offset + nodeSize
		if end > len(data) {
			end = len(data)
		}
		d := hashNode(uint64(offset), level, uint32(end-offset), data[offset:end])
		digests = append(digests, d...)
	}
	for len(digests)%nodeSize != 0 {
		digests = append(digests, 0)
	}
	return digests
}

// Build returns the packed tree, the concatenation of every level above
// the payload, and the root digest of data.
func Build(data []byte) (tree, root []byte) {
	var level uint64
	for uint64(len(data)) > nodeSize {
		data = hashLevel(data, level)
		tree = append(tree, data...)
		level++
	}
	length := uint32(len(data))
	return tree, hashNode(0, level, length, data)
}
