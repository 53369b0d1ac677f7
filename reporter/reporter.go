// Package reporter adapts the recovery engine's diagnostics to this
// repository's shared errors.FormattedError type, so parse failures render
// with the same Rust-style --> file:line:col output as every other
// diagnostic surface in this codebase.
package reporter

import (
	"strings"

	"github.com/vela-lang/vela/errors"
	"github.com/vela-lang/vela/internal/token"
)

// Reporter is the narrow two-method reporting contract (spec.md §6):
// invalid token (E1001) and missing token (E1002). The recovery engine
// itself reports through recovery.Reporter, which adds
// ReportUnrecoverable (E1003); Collector satisfies both.
type Reporter interface {
	ReportInvalidToken(tok token.Token)
	ReportMissingTokenError(tok token.Token, message string)
}

// LineSource supplies the raw text of the source line a token sits on,
// for the formatter's source-context rendering. internal/lexer.Lexer
// satisfies this directly.
type LineSource interface {
	GetLineText(tok token.Token) string
}

// Collector is the default Reporter: it builds one errors.FormattedError
// per diagnostic and accumulates them in source order. It accepts every
// report; TooMany tells a caller when a cap has been reached (mirroring
// the teacher's MaxErrors/tooManyErrors cutoff).
type Collector struct {
	Filename string
	Source   LineSource

	Errors []*errors.FormattedError
}

// DefaultMaxDiagnostics is the cap TooMany applies when given max <= 0,
// and the parser's default. The parser drops reports past its cap and
// keeps recovering; the Collector itself never drops a report.
const DefaultMaxDiagnostics = 50

// NewCollector returns a Collector rendering diagnostics against source,
// identified by filename in location headers.
func NewCollector(filename string, source LineSource) *Collector {
	return &Collector{Filename: filename, Source: source}
}

func (c *Collector) lineText(tok token.Token) string {
	if c.Source == nil {
		return ""
	}
	return c.Source.GetLineText(tok)
}

// ReportInvalidToken records E1001: a token recovery deleted as spurious.
func (c *Collector) ReportInvalidToken(tok token.Token) {
	c.Errors = append(c.Errors, &errors.FormattedError{
		Code:      errors.E1001,
		Kind:      "parse error",
		Message:   "invalid token '" + tok.Text + "'",
		Filename:  c.Filename,
		Line:      tok.StartPosition.LineNumber(),
		Column:    tok.StartPosition.ColumnNumber(),
		EndColumn: tok.EndPosition.ColumnNumber(),
		SourceLines: []errors.SourceLineEntry{
			{Number: tok.StartPosition.LineNumber(), Text: c.lineText(tok), IsMain: true},
		},
	})
}

// ReportMissingTokenError records E1002: a synthetic node recovery
// inserted in place of a rule the input lacked. message is the
// human-readable description built by the recovery engine (e.g. "missing
// '{'"). When the missing rule is a type name and the token sitting in
// its place is an identifier, a near-miss against Vela's built-in types
// (e.g. "sting" for "string") is offered as a hint.
func (c *Collector) ReportMissingTokenError(tok token.Token, message string) {
	err := &errors.FormattedError{
		Code:     errors.E1002,
		Kind:     "parse error",
		Message:  message,
		Filename: c.Filename,
		Line:     tok.StartPosition.LineNumber(),
		Column:   tok.StartPosition.ColumnNumber(),
		SourceLines: []errors.SourceLineEntry{
			{Number: tok.StartPosition.LineNumber(), Text: c.lineText(tok), IsMain: true},
		},
	}
	if tok.Kind == token.IDENTIFIER && strings.Contains(message, "type") {
		if suggestions := errors.SuggestSimilar(tok.Text, token.KnownTypeNames()); len(suggestions) > 0 {
			err.Hint = errors.FormatSuggestions(suggestions)
		}
	}
	c.Errors = append(c.Errors, err)
}

// ReportUnrecoverable records E1003: no insertion or deletion within the
// lookahead horizon made progress, so recovery deleted the offending
// token only to move forward, and the driver retries the same rule.
func (c *Collector) ReportUnrecoverable(tok token.Token, message string) {
	c.Errors = append(c.Errors, &errors.FormattedError{
		Code:     errors.E1003,
		Kind:     "parse error",
		Message:  message,
		Filename: c.Filename,
		Line:     tok.StartPosition.LineNumber(),
		Column:   tok.StartPosition.ColumnNumber(),
		SourceLines: []errors.SourceLineEntry{
			{Number: tok.StartPosition.LineNumber(), Text: c.lineText(tok), IsMain: true},
		},
	})
}

// TooMany reports whether the collector has reached max diagnostics.
func (c *Collector) TooMany(max int) bool {
	if max <= 0 {
		max = DefaultMaxDiagnostics
	}
	return len(c.Errors) >= max
}
