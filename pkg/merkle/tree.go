// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

// roundup rounds length up to the next multiple of NodeSize.
func roundup(length uint64) uint64 {
	return (length + NodeSize - 1) / NodeSize * NodeSize
}

// nextLength transforms a length in the current level to a length in the
// next level up. A level that fits in a single node is the top of the
// tree and has no next level.
func nextLength(length uint64) uint64 {
	if length > NodeSize {
		return roundup(length) / digestsPerNode
	}
	return 0
}

// nextAligned transforms a length in the current level to a node-aligned
// length in the next level up.
func nextAligned(length uint64) uint64 {
	return roundup(nextLength(length))
}

// GetTreeLength returns the size of the tree buffer needed to build a
// payload of dataLen bytes. Payloads up to one node need no tree.
func GetTreeLength(dataLen uint64) uint64 {
	next := nextAligned(dataLen)
	if next == 0 {
		return 0
	}
	return next + GetTreeLength(next)
}

// Builder incrementally computes the packed tree and root digest of a
// payload of predeclared length. Each Builder owns one level of the tree
// and the Builder of the level above, so the chain is as deep as the
// tree is high. A Builder must not be shared between goroutines.
//
// The zero value is ready for Init.
type Builder struct {
	initialized bool
	level       uint64
	offset      uint64
	length      uint64
	digest      *nodeHasher
	root        Digest
	next        *Builder
}

// NewBuilder returns a Builder for the leaf level.
func NewBuilder() *Builder {
	return &Builder{digest: newNodeHasher()}
}

// Init readies the Builder for a payload of dataLen bytes and a tree
// buffer of treeLen bytes. It returns ErrBufferTooSmall if the buffer
// cannot hold every level above the payload.
func (b *Builder) Init(dataLen, treeLen uint64) error {
	b.initialized = true
	b.offset = 0
	b.length = dataLen
	if b.digest == nil {
		b.digest = newNodeHasher()
	}
	// The data fits in a single node, making this the top level.
	if dataLen <= NodeSize {
		b.next = nil
		return nil
	}
	if b.next == nil {
		b.next = &Builder{level: b.level + 1, digest: newNodeHasher()}
	}
	// Ascend the tree.
	dataLen = nextAligned(dataLen)
	if treeLen < dataLen {
		return ErrBufferTooSmall
	}
	return b.next.Init(dataLen, treeLen-dataLen)
}

// Update feeds payload bytes into the Builder, emitting the digest of
// each completed node into tree and cascading it into the level above.
// tree must be the buffer validated by Init. The input may be split at
// any byte boundary without changing the resulting tree.
func (b *Builder) Update(data, tree []byte) error {
	if !b.initialized {
		return ErrBadState
	}
	length := uint64(len(data))
	if length == 0 {
		return nil
	}
	if b.offset+length > b.length {
		return ErrOutOfRange
	}
	if tree == nil && b.length > NodeSize {
		return ErrInvalidArgs
	}
	// Digests go into the slot of the node currently being hashed; the
	// level above consumes them from that very slot.
	treeOff := (b.offset - b.offset%NodeSize) / digestsPerNode
	for length > 0 {
		// Check if this is the start of a node.
		if b.offset%NodeSize == 0 {
			b.digest.init(b.offset|b.level, b.length-b.offset)
		}
		chunk := b.digest.update(data, b.offset)
		data = data[chunk:]
		b.offset += chunk
		length -= chunk
		// Done if not at the end of a node.
		if b.offset%NodeSize != 0 && b.offset != b.length {
			break
		}
		d := b.digest.final(b.offset)
		// Done if at the top of the tree.
		if b.length <= NodeSize {
			b.root = d
			break
		}
		// Tree nodes are zeroed when first entered so the tail beyond the
		// last digest of the level is deterministic.
		if treeOff%NodeSize == 0 {
			copy(tree[treeOff:treeOff+NodeSize], zeroNode[:])
		}
		copy(tree[treeOff:treeOff+DigestLength], d.b[:])
		if err := b.next.Update(tree[treeOff:treeOff+DigestLength], tree[nextAligned(b.length):]); err != nil {
			return err
		}
		treeOff += DigestLength
	}
	return nil
}

// Final closes the build and returns the root digest. The whole payload
// must have been written beforehand. The Builder needs a fresh Init
// before it can be reused.
func (b *Builder) Final(tree []byte) (Digest, error) {
	return b.final(nil, tree)
}

// final pads the level to its full length, cascading any remaining
// digests upward, and recurses into the level above. data is the storage
// of this level's own input: nil at the leaves, the previous level's
// slice of the tree buffer otherwise.
func (b *Builder) final(data, tree []byte) (Digest, error) {
	if !b.initialized || (b.level == 0 && b.offset != b.length) {
		return Digest{}, ErrBadState
	}
	if tree == nil && b.length > NodeSize {
		return Digest{}, ErrInvalidArgs
	}
	// Special case: the level is empty.
	if b.length == 0 {
		b.digest.init(0, 0)
		b.root = b.digest.final(0)
	}
	// Consume padding if needed. The padding bytes live in this level's
	// region of the tree buffer and are zero: nodes are zeroed on entry.
	if b.offset < b.length {
		if err := b.Update(data[b.offset:b.length], tree); err != nil {
			return Digest{}, err
		}
	}
	b.initialized = false
	// If the top, the digest is the Merkle tree root.
	if b.length <= NodeSize {
		return b.root, nil
	}
	// Finalize the next level up.
	return b.next.final(tree, tree[nextAligned(b.length):])
}

// Create builds the packed tree and root digest of data in one call.
// tree must hold at least GetTreeLength(len(data)) bytes; it may be nil
// for payloads up to one node.
func Create(data, tree []byte) (Digest, error) {
	var b Builder
	if err := b.Init(uint64(len(data)), uint64(len(tree))); err != nil {
		return Digest{}, err
	}
	if err := b.Update(data, tree); err != nil {
		return Digest{}, err
	}
	return b.Final(tree)
}
