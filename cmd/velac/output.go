package main

import (
	"fmt"

	"github.com/hokaccha/go-prettyjson"

	"github.com/vela-lang/vela/errors"
)

// diagnosticJSON is the stable JSON shape for a single recovered
// diagnostic, independent of errors.FormattedError's richer rendering
// fields (EndColumn, SourceLines, Hint), which this shape leaves out.
type diagnosticJSON struct {
	Code    string `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func printDiagnosticsJSON(diags []*errors.FormattedError) error {
	out := make([]diagnosticJSON, len(diags))
	for i, d := range diags {
		out[i] = diagnosticJSON{
			Code:    d.Code.String(),
			Kind:    d.Kind,
			Message: d.Message,
			File:    d.Filename,
			Line:    d.Line,
			Column:  d.Column,
		}
	}
	formatter := prettyjson.NewFormatter()
	formatter.DisabledColor = isNoColor()
	b, err := formatter.Marshal(out)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
