package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vela-lang/vela/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Vela source file and print its diagnostics",
	Long: `parse drives the parser core over a file (or stdin, with "-" or no
argument) and prints each recovered diagnostic in Rust-style
"--> file:line:col" form. A syntax error is recovered, never fatal,
which is the entire point of the core. The command fails only when the
source cannot be read or the lexer reports an error (an unexpected
character), which the token buffer treats as fatal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		src, filename, err := readSource(path)
		if err != nil {
			return fmt.Errorf("reading source: %w", err)
		}

		p := newParserFromFlags(string(src), filename)
		_, diags, err := p.Parse(context.Background())
		if err != nil {
			return err
		}

		if viper.GetString("format") == "json" {
			return printDiagnosticsJSON(diags)
		}

		formatter := errFormatter()
		for _, d := range diags {
			fmt.Println(formatter.Format(d))
		}
		if len(diags) == 0 {
			fmt.Println(color.GreenString("no diagnostics"))
		}
		return nil
	},
}
