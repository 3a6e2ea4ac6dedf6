// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/benvalle33/magenta/pkg/merkle"
	"gitlab.com/nolash/go-mockbytes"
	"golang.org/x/sync/errgroup"
)

// create builds data of length bytes of 0xff together with its tree and
// root, and returns a range near the end of the payload the way most
// verification tests here query it.
func create(t *testing.T, length uint64) (data, tree []byte, root merkle.Digest, offset, rangeLen uint64) {
	t.Helper()
	data = testData(length)
	tree = make([]byte, merkle.GetTreeLength(length))
	root, err := merkle.Create(data, tree)
	if err != nil {
		t.Fatal(err)
	}
	if length >= 3*nodeSize {
		return data, tree, root, length - 3*nodeSize, 2 * nodeSize
	}
	return data, tree, root, 0, length
}

func TestVerify(t *testing.T) {
	data, tree, root, offset, length := create(t, small)
	if err := merkle.Verify(data, tree, offset, length, root); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyFullRange(t *testing.T) {
	for _, tc := range rootVectors {
		t.Run(tc.name, func(t *testing.T) {
			data := testData(tc.dataLen)
			tree := make([]byte, merkle.GetTreeLength(tc.dataLen))
			root, err := merkle.Create(data, tree)
			if err != nil {
				t.Fatal(err)
			}
			if err := merkle.Verify(data, tree, 0, tc.dataLen, root); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestVerifyNodeByNode(t *testing.T) {
	data, tree, root, _, _ := create(t, small)
	for offset := uint64(0); offset < small; offset += nodeSize {
		if err := merkle.Verify(data, tree, offset, nodeSize, root); err != nil {
			t.Fatalf("node at %d: %v", offset, err)
		}
	}
}

func TestVerifyZeroLength(t *testing.T) {
	data, tree, root, offset, _ := create(t, small)
	if err := merkle.Verify(data, tree, offset, 0, root); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyUnalignedOffset(t *testing.T) {
	data, tree, root, offset, length := create(t, small)
	if err := merkle.Verify(data, tree, offset-1, length, root); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyUnalignedLength(t *testing.T) {
	data, tree, root, offset, length := create(t, small)
	if err := merkle.Verify(data, tree, offset, length-1, root); err != nil {
		t.Fatal(err)
	}
}

// TestVerifyUnalignedDataLength passes a payload one byte shorter than
// the one the tree was created with. The affected node is outside the
// queried range, so verification still passes.
func TestVerifyUnalignedDataLength(t *testing.T) {
	data, tree, root, offset, length := create(t, small)
	if err := merkle.Verify(data[:small-1], tree, offset, length, root); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyDataUnaligned(t *testing.T) {
	data, tree, root, offset, _ := create(t, unaligned)
	if err := merkle.Verify(data, tree, offset, unaligned-offset, root); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyOutOfBounds(t *testing.T) {
	data, tree, root, _, length := create(t, small)
	err := merkle.Verify(data, tree, small-nodeSize, length, root)
	if !errors.Is(err, merkle.ErrOutOfRange) {
		t.Fatalf("got %v, want %v", err, merkle.ErrOutOfRange)
	}
}

func TestVerifyMissingTree(t *testing.T) {
	data, _, root, offset, length := create(t, small)
	err := merkle.Verify(data, nil, offset, length, root)
	if !errors.Is(err, merkle.ErrInvalidArgs) {
		t.Fatalf("got %v, want %v", err, merkle.ErrInvalidArgs)
	}
}

func TestVerifyTreeTooSmall(t *testing.T) {
	data, tree, root, offset, length := create(t, small)
	err := merkle.Verify(data, tree[:len(tree)-1], offset, length, root)
	if !errors.Is(err, merkle.ErrBufferTooSmall) {
		t.Fatalf("got %v, want %v", err, merkle.ErrBufferTooSmall)
	}
}

func TestVerifyBadRoot(t *testing.T) {
	data, tree, root, offset, length := create(t, large)
	bad := root.Bytes()
	bad[0] ^= 1
	err := merkle.Verify(data, tree, offset, length, merkle.NewDigest(bad))
	if !errors.Is(err, merkle.ErrDataIntegrity) {
		t.Fatalf("got %v, want %v", err, merkle.ErrDataIntegrity)
	}
}

func TestVerifyBadTree(t *testing.T) {
	data, tree, root, offset, length := create(t, large)
	tree[offset/nodeSize*merkle.DigestLength] ^= 1
	err := merkle.Verify(data, tree, offset, length, root)
	if !errors.Is(err, merkle.ErrDataIntegrity) {
		t.Fatalf("got %v, want %v", err, merkle.ErrDataIntegrity)
	}
}

// TestVerifyGoodPartOfBadTree flips a tree digest whose node, at every
// level, stays outside the aligned image of the queried range, and
// expects the range to still verify. The payload spans more than one
// node of digests so that such a node exists.
func TestVerifyGoodPartOfBadTree(t *testing.T) {
	const huge = (2*digestsPerNode + 1) * nodeSize
	data, tree, root, offset, length := create(t, huge)
	tree[0] ^= 1
	if err := merkle.Verify(data, tree, offset, length, root); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyGoodPartOfBadLeaves(t *testing.T) {
	data, tree, root, offset, length := create(t, small)
	data[0] ^= 1
	if err := merkle.Verify(data, tree, offset, length, root); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyBadLeaves(t *testing.T) {
	data, tree, root, offset, length := create(t, small)
	data[offset] ^= 1
	err := merkle.Verify(data, tree, offset, length, root)
	if !errors.Is(err, merkle.ErrDataIntegrity) {
		t.Fatalf("got %v, want %v", err, merkle.ErrDataIntegrity)
	}
}

func TestVerifyEmpty(t *testing.T) {
	root, err := merkle.Create(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := merkle.Verify(nil, nil, 0, 0, root); err != nil {
		t.Fatal(err)
	}
	bad := root.Bytes()
	bad[merkle.DigestLength-1] ^= 0x80
	err = merkle.Verify(nil, nil, 0, 0, merkle.NewDigest(bad))
	if !errors.Is(err, merkle.ErrDataIntegrity) {
		t.Fatalf("got %v, want %v", err, merkle.ErrDataIntegrity)
	}
}

// TestCreateAndVerifyRandom sweeps payload sizes, creating and
// verifying pseudo-random data and expecting targeted bit flips in the
// root, the payload, and the tree digests to be detected.
func TestCreateAndVerifyRandom(t *testing.T) {
	g := mockbytes.New(1, mockbytes.MockTypeStandard)
	sizes := []uint64{nodeSize, 2 * nodeSize, 64 * nodeSize, 128 * nodeSize, 129 * nodeSize, 1 << 22}
	sizes = append(sizes, 129*nodeSize+2048, (1<<19)+1)
	for _, size := range sizes {
		t.Run(fmt.Sprintf("%d_bytes", size), func(t *testing.T) {
			data, err := g.RandomBytes(int(size))
			if err != nil {
				t.Fatal(err)
			}
			treeLen := merkle.GetTreeLength(size)
			tree := make([]byte, treeLen)
			root, err := merkle.Create(data, tree)
			if err != nil {
				t.Fatal(err)
			}
			if err := merkle.Verify(data, tree, 0, size, root); err != nil {
				t.Fatal(err)
			}

			// Flip a bit in the root.
			bad := root.Bytes()
			bad[7] ^= 0x10
			if err := merkle.Verify(data, tree, 0, size, merkle.NewDigest(bad)); !errors.Is(err, merkle.ErrDataIntegrity) {
				t.Fatalf("bad root: got %v, want %v", err, merkle.ErrDataIntegrity)
			}

			// Flip a bit in the payload.
			data[size/2] ^= 1
			if err := merkle.Verify(data, tree, 0, size, root); !errors.Is(err, merkle.ErrDataIntegrity) {
				t.Fatalf("bad data: got %v, want %v", err, merkle.ErrDataIntegrity)
			}
			data[size/2] ^= 1

			// Flip a bit in a tree digest, if the payload has a tree.
			if treeLen > 0 {
				tree[0] ^= 1
				if err := merkle.Verify(data, tree, 0, size, root); !errors.Is(err, merkle.ErrDataIntegrity) {
					t.Fatalf("bad tree: got %v, want %v", err, merkle.ErrDataIntegrity)
				}
				tree[0] ^= 1
			}

			// The build must still verify after the flips were undone.
			if err := merkle.Verify(data, tree, 0, size, root); err != nil {
				t.Fatal(err)
			}
		})
	}
}

// TestVerifyConcurrent verifies disjoint ranges of the same payload from
// multiple goroutines.
func TestVerifyConcurrent(t *testing.T) {
	data, tree, root, _, _ := create(t, large)
	var eg errgroup.Group
	for offset := uint64(0); offset < large; offset += 16 * nodeSize {
		offset := offset
		length := uint64(16 * nodeSize)
		if offset+length > large {
			length = large - offset
		}
		eg.Go(func() error {
			return merkle.Verify(data, tree, offset, length, root)
		})
	}
	if err := eg.Wait(); err != nil {
		t.Fatal(err)
	}
}
