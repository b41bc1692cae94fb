// Package main provides the entry point for the confedit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/0xalexb/confedit/cmd/confedit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
