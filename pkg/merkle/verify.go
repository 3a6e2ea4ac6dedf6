// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

// Verify authenticates the byte range [offset, offset+length) of data
// against the packed tree and the trusted root. The range is expanded
// outward to node boundaries before hashing; bytes outside the expanded
// range are not examined and a mismatch there goes undetected. A
// zero-length range checks only the path up to the root.
//
// len(data) stands in for the payload length and may be slightly shorter
// than the length the tree was created with, as long as every node the
// range touches still verifies. Excess tree bytes beyond the packed
// levels are ignored.
//
// Verify returns ErrDataIntegrity on any digest mismatch and writes to
// none of its inputs.
func Verify(data, tree []byte, offset, length uint64, root Digest) error {
	dataLen := uint64(len(data))
	treeLen := uint64(len(tree))
	var level uint64
	rootLen := dataLen
	for dataLen > NodeSize {
		if err := verifyLevel(data, dataLen, tree, offset, length, level); err != nil {
			return err
		}
		// Carry the node-aligned range up, so that the level above covers
		// every node whose digest was just checked.
		end := roundup(offset + length)
		offset -= offset % NodeSize
		length = end - offset
		// Ascend to the next level up.
		data = tree
		rootLen = nextLength(dataLen)
		dataLen = nextAligned(dataLen)
		if treeLen < dataLen {
			return ErrBufferTooSmall
		}
		tree = tree[dataLen:]
		treeLen -= dataLen
		offset /= digestsPerNode
		length /= digestsPerNode
		level++
	}
	return verifyRoot(data, rootLen, level, root)
}

// verifyRoot computes the digest of the top level, which is zero nodes
// for an empty payload and exactly one node otherwise, and compares it
// with the trusted root.
func verifyRoot(data []byte, rootLen, level uint64, expected Digest) error {
	if (data == nil && rootLen != 0) || rootLen > NodeSize {
		return ErrInvalidArgs
	}
	h := newNodeHasher()
	if rootLen == 0 {
		h.init(level, 0)
	} else {
		h.init(level, NodeSize)
	}
	h.update(data[:rootLen], 0)
	if actual := h.final(rootLen); !actual.Equal(expected) {
		return ErrDataIntegrity
	}
	return nil
}

// verifyLevel checks the nodes of one level covering [offset,
// offset+length) against the digests stored in the level above, which
// occupy the head of tree.
func verifyLevel(data []byte, dataLen uint64, tree []byte, offset, length, level uint64) error {
	if data == nil || dataLen <= NodeSize || tree == nil {
		return ErrInvalidArgs
	}
	if offset+length > dataLen {
		return ErrOutOfRange
	}
	// Align the range outward to node boundaries. The end may round up
	// past dataLen when the level's last node is short; the node hash
	// covers the missing bytes with zero padding.
	end := roundup(offset + length)
	offset -= offset % NodeSize
	length = end - offset
	if uint64(len(tree)) < end/digestsPerNode {
		return ErrBufferTooSmall
	}
	// The digests are in the next level up.
	expected := tree[offset/digestsPerNode:]
	h := newNodeHasher()
	for length > 0 {
		h.init(offset|level, dataLen-offset)
		avail := dataLen - offset
		if avail > NodeSize {
			avail = NodeSize
		}
		chunk := h.update(data[offset:offset+avail], offset)
		actual := h.final(offset + chunk)
		if !actual.Equal(NewDigest(expected[:DigestLength])) {
			return ErrDataIntegrity
		}
		expected = expected[DigestLength:]
		offset += NodeSize
		length -= NodeSize
	}
	return nil
}
