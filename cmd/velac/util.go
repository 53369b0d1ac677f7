package main

import (
	"io"

	"github.com/fatih/color"
)

func readAll(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

// isNoColor mirrors fatih/color's own global NoColor switch, which
// root.go's init already sets from --no-color / isatty detection.
func isNoColor() bool {
	return color.NoColor
}
