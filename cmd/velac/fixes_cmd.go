package main

import (
	"context"
	"fmt"

	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vela-lang/vela/errors"
)

var fixesCmd = &cobra.Command{
	Use:   "fixes [file]",
	Short: "Summarize the INSERT/REMOVE fixes the recovery engine committed",
	Long: `fixes is a compact view of the same diagnostics "parse" prints,
one line per committed fix, tagged with the recovery action it
corresponds to (E1001 invalid-token -> REMOVE, E1002 missing-token ->
INSERT). Useful for scripting a count of how "broken" an input is
without parsing the full diagnostic rendering.`,
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

		fixes := make([]fixSummary, len(diags))
		for i, d := range diags {
			fixes[i] = fixSummary{
				Action:  actionForCode(d.Code),
				Line:    d.Line,
				Column:  d.Column,
				Message: d.Message,
			}
		}

		if viper.GetString("format") == "json" {
			formatter := prettyjson.NewFormatter()
			formatter.DisabledColor = isNoColor()
			b, err := formatter.Marshal(fixes)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}

		for _, f := range fixes {
			fmt.Printf("%s  %d:%d  %s\n", f.Action, f.Line, f.Column, f.Message)
		}
		fmt.Printf("%d fix(es)\n", len(fixes))
		return nil
	},
}

type fixSummary struct {
	Action  string `json:"action"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func actionForCode(code errors.ErrorCode) string {
	switch code {
	case errors.E1001:
		return "REMOVE"
	case errors.E1002:
		return "INSERT"
	case errors.E1003:
		return "REMOVE"
	default:
		return "UNKNOWN"
	}
}
