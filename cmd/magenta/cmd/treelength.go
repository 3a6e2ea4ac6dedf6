// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/benvalle33/magenta/pkg/merkle"
	"github.com/spf13/cobra"
)

func (c *command) initTreeLengthCmd() {
	cmd := &cobra.Command{
		Use:   "tree-length <payload-size>",
		Short: "Print the tree buffer size needed for a payload size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse payload size: %w", err)
			}
			cmd.Println(merkle.GetTreeLength(size))
			return nil
		},
	}

	c.root.AddCommand(cmd)
}
