//go:build mage

// Package main provides build targets for inktrace using Mage.
//
// Usage:
//
//	mage build      Compile the inktrace binary to bin/
//	mage buildTUI   Compile with the terminal UI (tui build tag)
//	mage test       Run all tests
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install inktrace to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "inktrace"
	binaryDir  = "bin"
	cmdDir     = "./cmd/inktrace"
)

// Build compiles the inktrace binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// BuildTUI compiles the binary with the tui subcommand.
func BuildTUI() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-tags", "tui", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests, including the tui-tagged command.
func Test() error {
	if err := sh.RunV("go", "test", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "vet", "-tags", "tui", cmdDir)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
