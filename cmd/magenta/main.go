// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/benvalle33/magenta/cmd/magenta/cmd"
	"github.com/benvalle33/magenta/pkg/merkle"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, merkle.ErrDataIntegrity) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
