// Package main is the entry point for the sjq CLI tool.
package main

import (
	"os"

	"github.com/kompass-sh/sjq/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
