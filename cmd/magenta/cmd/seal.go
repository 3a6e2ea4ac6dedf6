// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"

	"github.com/benvalle33/magenta/pkg/integrity"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (c *command) initSealCmd() {
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Build a merkle tree sidecar for a file. Prints the root hash",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFileName, err := cmd.Flags().GetString(optionNameInputFile)
			if err != nil {
				return fmt.Errorf("get input file name: %w", err)
			}
			v, err := cmd.Flags().GetString(optionNameVerbosity)
			if err != nil {
				return fmt.Errorf("get verbosity: %w", err)
			}
			logger, err := newLogger(cmd, v)
			if err != nil {
				return fmt.Errorf("new logger: %w", err)
			}

			s := integrity.New(afero.NewOsFs(), logger)
			root, err := s.Seal(context.Background(), inputFileName)
			if err != nil {
				return fmt.Errorf("seal: %w", err)
			}
			cmd.Println(root.String())
			return nil
		},
	}

	cmd.Flags().String(optionNameInputFile, "", "input file")
	_ = cmd.MarkFlagRequired(optionNameInputFile)

	c.root.AddCommand(cmd)
}
