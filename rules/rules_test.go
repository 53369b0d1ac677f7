package rules

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/vela-lang/vela/internal/token"
)

func TestGraphDefLookup(t *testing.T) {
	g := New()
	d := g.Def(FunctionDef)
	assert.Equal(t, d.Kind, Production)
	assert.Equal(t, len(d.Seq), 4)
	assert.Equal(t, d.Seq[0], FunctionKw)
}

func TestGraphDefUnknownRulePanics(t *testing.T) {
	g := New()
	defer func() {
		r := recover()
		assert.True(t, r != nil, "expected Def of an unknown RuleId to panic")
	}()
	g.Def(RuleId(99999))
}

func TestFunctionBodyIsAlternatives(t *testing.T) {
	g := New()
	d := g.Def(FunctionBody)
	assert.Equal(t, d.Kind, Alternatives)
	assert.Equal(t, d.Alts, []RuleId{Block, External})
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches([]token.Kind{token.INT, token.FLOAT}, token.FLOAT), "FLOAT should match")
	assert.True(t, !Matches([]token.Kind{token.INT}, token.FLOAT), "FLOAT should not match INT-only set")
}

func TestContextStackSnapshotRestoreIsConstantSpace(t *testing.T) {
	s := NewContextStack()
	s.Push(CompilationUnit)
	s.Push(TopLevelNode)
	mark := s.Snapshot()

	s.Push(FunctionDef)
	s.Push(Signature)
	top, ok := s.Top()
	assert.True(t, ok, "stack should not be empty")
	assert.Equal(t, top, Signature)

	s.Restore(mark)
	assert.Equal(t, s.Len(), 2)
	top, ok = s.Top()
	assert.True(t, ok, "stack should not be empty after restore")
	assert.Equal(t, top, TopLevelNode)

	// Exploring again after restore must not see stale entries leak
	// through Contexts(); only the live portion is visible.
	assert.Equal(t, s.Contexts(), []RuleId{CompilationUnit, TopLevelNode})
}

func TestContextStackPopEmptyPanics(t *testing.T) {
	s := NewContextStack()
	defer func() {
		r := recover()
		assert.True(t, r != nil, "expected Pop of empty stack to panic")
	}()
	s.Pop()
}

func TestEndOfExpressionSetIncludesCanonicalTokens(t *testing.T) {
	assert.True(t, Matches(EndOfExpressionSet, token.RBRACE), "'}' must be in the expression sync set")
	assert.True(t, Matches(EndOfExpressionSet, token.COMMA), "',' must be in the expression sync set")
}
