// Copyright 2023 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benvalle33/magenta/cmd/magenta/cmd"
	"github.com/benvalle33/magenta/pkg/merkle"
)

func TestSealAndVerifyCmd(t *testing.T) {
	dir := t.TempDir()
	inputFileName := filepath.Join(dir, "blob")
	data := make([]byte, 5*merkle.NodeSize+7)
	for i := range data {
		data[i] = byte(i)
	}
	if err := os.WriteFile(inputFileName, data, 0644); err != nil {
		t.Fatal(err)
	}

	var sealBuf bytes.Buffer
	err := newCommand(t,
		cmd.WithArgs("seal", "--input-file", inputFileName, "--verbosity", "0"),
		cmd.WithOutput(&sealBuf),
	).Execute()
	if err != nil {
		t.Fatal(err)
	}

	tree := make([]byte, merkle.GetTreeLength(uint64(len(data))))
	want, err := merkle.Create(data, tree)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(sealBuf.String()); got != want.String() {
		t.Errorf("got root %q, want %q", got, want)
	}

	var verifyBuf bytes.Buffer
	err = newCommand(t,
		cmd.WithArgs("verify", "--input-file", inputFileName, "--root", want.String(), "--verbosity", "0"),
		cmd.WithOutput(&verifyBuf),
	).Execute()
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(verifyBuf.String()); got != "OK" {
		t.Errorf("got output %q, want OK", got)
	}
}

func TestVerifyCmdTamperedFile(t *testing.T) {
	dir := t.TempDir()
	inputFileName := filepath.Join(dir, "blob")
	data := make([]byte, 2*merkle.NodeSize)
	if err := os.WriteFile(inputFileName, data, 0644); err != nil {
		t.Fatal(err)
	}

	err := newCommand(t,
		cmd.WithArgs("seal", "--input-file", inputFileName, "--verbosity", "0"),
		cmd.WithOutput(new(bytes.Buffer)),
	).Execute()
	if err != nil {
		t.Fatal(err)
	}

	data[0] ^= 1
	if err := os.WriteFile(inputFileName, data, 0644); err != nil {
		t.Fatal(err)
	}

	err = newCommand(t,
		cmd.WithArgs("verify", "--input-file", inputFileName, "--verbosity", "0"),
		cmd.WithOutput(new(bytes.Buffer)),
	).Execute()
	if !errors.Is(err, merkle.ErrDataIntegrity) {
		t.Fatalf("got %v, want %v", err, merkle.ErrDataIntegrity)
	}
}
