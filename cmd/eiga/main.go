// Package main is the eiga CLI entry point.
package main

import (
	"os"

	"github.com/hyperjump/eiga/cmd/eiga/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
