// Package main is the entry point for autocleaner. The same binary runs the
// tray agent, the folder editor and the maintenance commands, selected by
// its first argument.
package main

import (
	"os"

	"github.com/autocleaner/autocleaner/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
