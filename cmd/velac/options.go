package main

import (
	"github.com/spf13/viper"

	"github.com/vela-lang/vela/errors"
	"github.com/vela-lang/vela/parser"
)

// newParserFromFlags builds a Parser honoring the --strict and --horizon
// flags (bound through viper so a config file or VELAC_* env var can set
// the same defaults, per SPEC_FULL.md §3.3).
func newParserFromFlags(src, filename string) *parser.Parser {
	opts := []parser.Option{
		parser.WithFilename(filename),
		parser.WithHorizon(viper.GetInt("horizon")),
	}
	if viper.GetBool("strict") {
		opts = append(opts, parser.WithEmptyStatementShortcut(false))
	}
	return parser.New(src, opts...)
}

// errFormatter returns an errors.Formatter honoring the current color
// setting (--no-color, or auto-detected via isatty in root.go's init).
func errFormatter() *errors.Formatter {
	return errors.NewFormatter(!isNoColor())
}
