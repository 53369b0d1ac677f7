package reporter

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/vela-lang/vela/errors"
	"github.com/vela-lang/vela/internal/token"
)

type fakeSource struct{ line string }

func (f fakeSource) GetLineText(tok token.Token) string { return f.line }

func TestReportInvalidTokenRecordsE1001(t *testing.T) {
	c := NewCollector("main.vela", fakeSource{line: "x ,, y;"})
	c.ReportInvalidToken(token.Token{Kind: token.COMMA, Text: ","})

	assert.Equal(t, len(c.Errors), 1)
	assert.Equal(t, c.Errors[0].Code, errors.E1001)
	assert.Equal(t, c.Errors[0].Message, "invalid token ','")
}

func TestReportMissingTokenErrorRecordsE1002(t *testing.T) {
	c := NewCollector("main.vela", fakeSource{line: "variable x 5;"})
	c.ReportMissingTokenError(token.Token{Kind: token.INT, Text: "5"}, "missing '='")

	assert.Equal(t, len(c.Errors), 1)
	assert.Equal(t, c.Errors[0].Code, errors.E1002)
	assert.Equal(t, c.Errors[0].Message, "missing '='")
}

func TestTooManyRespectsDefaultCap(t *testing.T) {
	c := NewCollector("", nil)
	for i := 0; i < DefaultMaxDiagnostics; i++ {
		c.ReportInvalidToken(token.Token{Kind: token.COMMA, Text: ","})
	}
	assert.True(t, c.TooMany(0), "collector should report too-many at the default cap")
}
