//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "cardcsv"

var Default = Build

// Build compiles the cardcsv binary
func Build() error {
	mg.Deps(Tidy)
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/cardcsv")
}

// Install puts cardcsv into $GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/cardcsv")
}

// Test runs all unit tests. The SQLite driver needs cgo.
func Test() error {
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "./...")
}

// Lint runs go vet
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Tidy runs go mod tidy
func Tidy() error {
	return sh.Run("go", "mod", "tidy")
}

// Clean removes the built binary
func Clean() error {
	return os.RemoveAll(binary)
}
