// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package integrity seals files with a merkle tree sidecar and checks
// file contents against it. A sidecar holds the packed tree levels
// followed by the 32-byte root digest, so a file plus its sidecar is
// verifiable without any further state.
package integrity

import (
	"context"
	"fmt"
	"sync"

	"github.com/benvalle33/magenta/pkg/logging"
	"github.com/benvalle33/magenta/pkg/merkle"
	"github.com/benvalle33/magenta/pkg/merklepool"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// SidecarSuffix is appended to a file name to name its sidecar.
const SidecarSuffix = ".merkle"

// Service seals and checks files on a filesystem.
type Service struct {
	fs      afero.Fs
	logger  logging.Logger
	metrics metrics
}

// New constructs a Service on the given filesystem.
func New(fs afero.Fs, logger logging.Logger) *Service {
	return &Service{
		fs:      fs,
		logger:  logger,
		metrics: newMetrics(),
	}
}

// SidecarPath returns the sidecar file name for path.
func SidecarPath(path string) string {
	return path + SidecarSuffix
}

// Seal reads the file at path, builds its merkle tree, and writes the
// sidecar next to it. It returns the root digest.
func (s *Service) Seal(ctx context.Context, path string) (merkle.Digest, error) {
	if err := ctx.Err(); err != nil {
		return merkle.Digest{}, err
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return merkle.Digest{}, fmt.Errorf("read %s: %w", path, err)
	}
	tree := make([]byte, merkle.GetTreeLength(uint64(len(data))))
	b := merklepool.Get()
	defer merklepool.Put(b)
	if err := b.Init(uint64(len(data)), uint64(len(tree))); err != nil {
		return merkle.Digest{}, fmt.Errorf("init builder: %w", err)
	}
	if err := b.Update(data, tree); err != nil {
		return merkle.Digest{}, fmt.Errorf("update builder: %w", err)
	}
	root, err := b.Final(tree)
	if err != nil {
		return merkle.Digest{}, fmt.Errorf("final builder: %w", err)
	}
	sidecar := append(tree, root.Bytes()...)
	if err := afero.WriteFile(s.fs, SidecarPath(path), sidecar, 0644); err != nil {
		return merkle.Digest{}, fmt.Errorf("write sidecar: %w", err)
	}
	s.metrics.SealedCount.Inc()
	s.metrics.SealedBytes.Add(float64(len(data)))
	s.logger.Debugf("sealed %s: %d bytes, root %s", path, len(data), root)
	return root, nil
}

// Root returns the root digest recorded in the sidecar of path.
func (s *Service) Root(path string) (merkle.Digest, error) {
	sidecar, err := afero.ReadFile(s.fs, SidecarPath(path))
	if err != nil {
		return merkle.Digest{}, fmt.Errorf("read sidecar: %w", err)
	}
	if len(sidecar) < merkle.DigestLength {
		return merkle.Digest{}, fmt.Errorf("sidecar %s: %w", SidecarPath(path), merkle.ErrInvalidArgs)
	}
	return merkle.NewDigest(sidecar[len(sidecar)-merkle.DigestLength:]), nil
}

// Check verifies the byte range [offset, offset+length) of the file at
// path against its sidecar. A zero length with a zero offset checks the
// whole file. Digest mismatches surface as merkle.ErrDataIntegrity.
func (s *Service) Check(ctx context.Context, path string, offset, length uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	sidecar, err := afero.ReadFile(s.fs, SidecarPath(path))
	if err != nil {
		return fmt.Errorf("read sidecar: %w", err)
	}
	if len(sidecar) < merkle.DigestLength {
		return fmt.Errorf("sidecar %s: %w", SidecarPath(path), merkle.ErrInvalidArgs)
	}
	tree := sidecar[:len(sidecar)-merkle.DigestLength]
	root := merkle.NewDigest(sidecar[len(sidecar)-merkle.DigestLength:])
	if offset == 0 && length == 0 {
		length = uint64(len(data))
	}
	if err := merkle.Verify(data, tree, offset, length, root); err != nil {
		s.metrics.CheckFailedCount.Inc()
		s.logger.Errorf("check %s [%d, %d): %v", path, offset, offset+length, err)
		return fmt.Errorf("verify %s: %w", path, err)
	}
	s.metrics.CheckedCount.Inc()
	s.logger.Tracef("checked %s [%d, %d)", path, offset, offset+length)
	return nil
}

// CheckAll verifies the whole contents of every path concurrently and
// returns the collected failures, if any.
func (s *Service) CheckAll(ctx context.Context, paths ...string) error {
	var (
		mu     sync.Mutex
		result *multierror.Error
	)
	var eg errgroup.Group
	for _, path := range paths {
		path := path
		eg.Go(func() error {
			if err := s.Check(ctx, path, 0, 0); err != nil {
				mu.Lock()
				result = multierror.Append(result, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()
	return result.ErrorOrNil()
}
