// Command velac is a thin CLI layered on top of the Vela parser core: file
// I/O, lexer construction, listener selection, and diagnostic printing.
// None of this is part of the core (SPEC_FULL.md §1); it exists only to
// exercise parser.New end to end the way a real user would invoke it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
