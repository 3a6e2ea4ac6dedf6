// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package merkle implements a Merkle tree over a linear byte payload,
// hashed in fixed size nodes of 4096 bytes with SHA-256.
//
// Level 0 of the tree is the payload itself. Each higher level is the
// packed sequence of 32-byte digests of the nodes of the level below,
// padded with zeros to a whole number of nodes. Levels ascend until a
// level fits in a single node; the digest of that node is the root.
//
// Every node is hashed together with a locality tag (its byte offset
// within the level OR-ed with the level index, little endian), the node's
// byte count, and zero padding up to the node size, so that digests bind
// both position and length of their node.
//
// Two implementations of the construction are provided:
//
// Builder is a streaming builder. It is initialised with the payload
// length, fed the payload in chunks of any size, and emits the packed
// tree levels into a caller supplied buffer. Splitting the input
// differently never changes the resulting tree or root.
//
// Verify authenticates a contiguous byte range of a payload against the
// packed tree and a trusted root without touching nodes outside the
// paths from that range to the root.
package merkle
