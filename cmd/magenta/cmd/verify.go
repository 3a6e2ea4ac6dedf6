// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"

	"github.com/benvalle33/magenta/pkg/integrity"
	"github.com/benvalle33/magenta/pkg/merkle"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (c *command) initVerifyCmd() {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a byte range of a file against its merkle tree sidecar",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFileName, err := cmd.Flags().GetString(optionNameInputFile)
			if err != nil {
				return fmt.Errorf("get input file name: %w", err)
			}
			rootHex, err := cmd.Flags().GetString(optionNameRoot)
			if err != nil {
				return fmt.Errorf("get root: %w", err)
			}
			offset, err := cmd.Flags().GetUint64(optionNameOffset)
			if err != nil {
				return fmt.Errorf("get offset: %w", err)
			}
			length, err := cmd.Flags().GetUint64(optionNameLength)
			if err != nil {
				return fmt.Errorf("get length: %w", err)
			}
			v, err := cmd.Flags().GetString(optionNameVerbosity)
			if err != nil {
				return fmt.Errorf("get verbosity: %w", err)
			}
			logger, err := newLogger(cmd, v)
			if err != nil {
				return fmt.Errorf("new logger: %w", err)
			}

			fs := afero.NewOsFs()
			s := integrity.New(fs, logger)
			if rootHex != "" {
				// A trusted root overrides the one recorded in the sidecar.
				root, err := merkle.ParseHexDigest(rootHex)
				if err != nil {
					return fmt.Errorf("parse root: %w", err)
				}
				recorded, err := s.Root(inputFileName)
				if err != nil {
					return err
				}
				if !recorded.Equal(root) {
					return fmt.Errorf("sidecar root %s: %w", recorded, merkle.ErrDataIntegrity)
				}
			}
			if err := s.Check(context.Background(), inputFileName, offset, length); err != nil {
				return err
			}
			cmd.Println("OK")
			return nil
		},
	}

	cmd.Flags().String(optionNameInputFile, "", "input file")
	cmd.Flags().String(optionNameRoot, "", "trusted root digest, hex encoded")
	cmd.Flags().Uint64(optionNameOffset, 0, "byte offset of the range to verify")
	cmd.Flags().Uint64(optionNameLength, 0, "byte length of the range to verify, 0 with offset 0 for the whole file")
	_ = cmd.MarkFlagRequired(optionNameInputFile)

	c.root.AddCommand(cmd)
}
