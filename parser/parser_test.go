package parser_test

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/vela-lang/vela/ast"
	"github.com/vela-lang/vela/parser"
)

func parse(t *testing.T, src string, opts ...parser.Option) (*ast.CompilationUnit, []string) {
	t.Helper()
	p := parser.New(src, opts...)
	unit, diags, err := p.Parse(context.Background())
	assert.Equal(t, err, nil)
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.Message
	}
	return unit, msgs
}

// Scenario 1: a well-formed function produces no diagnostics and a tree
// shaped exactly as written.
func TestWellFormedFunction(t *testing.T) {
	unit, diags := parse(t, "function foo() returns int { int x = 1; }")
	assert.Equal(t, len(diags), 0)
	assert.Equal(t, len(unit.Decls), 1)

	fn, ok := unit.Decls[0].(*ast.FunctionDecl)
	assert.True(t, ok, "expected *ast.FunctionDecl")
	assert.Equal(t, fn.Name.String(), "foo")
	assert.Equal(t, len(fn.Params), 0)
	assert.Equal(t, fn.ReturnType.String(), "int")

	block, ok := fn.Body.(*ast.Block)
	assert.True(t, ok, "expected *ast.Block body")
	assert.Equal(t, len(block.Stmts), 1)

	decl, ok := block.Stmts[0].(*ast.VarDecl)
	assert.True(t, ok, "expected *ast.VarDecl statement")
	assert.Equal(t, decl.Type.String(), "int")
	assert.Equal(t, decl.Name.String(), "x")
	lit, ok := decl.Init.(*ast.Literal)
	assert.True(t, ok, "expected *ast.Literal initializer")
	assert.Equal(t, lit.Text, "1")
}

// Scenario 2: a missing opening brace is recovered with a synthetic '{'
// and the rest of the block still parses.
func TestMissingOpeningBrace(t *testing.T) {
	unit, diags := parse(t, "function foo() int x = 1; }")
	assert.True(t, len(diags) >= 1, "expected at least one diagnostic")
	assert.Equal(t, diags[0], "missing '{'")

	fn := unit.Decls[0].(*ast.FunctionDecl)
	block, ok := fn.Body.(*ast.Block)
	assert.True(t, ok, "expected *ast.Block body despite the missing brace")
	assert.Equal(t, len(block.Stmts), 1)
	decl := block.Stmts[0].(*ast.VarDecl)
	assert.Equal(t, decl.Name.String(), "x")
}

// Scenario 3: a missing semicolon before the closing brace is recovered
// without swallowing the brace itself.
func TestMissingSemicolon(t *testing.T) {
	unit, diags := parse(t, "function foo() { int x = 1 }")
	assert.True(t, len(diags) >= 1, "expected at least one diagnostic")

	fn := unit.Decls[0].(*ast.FunctionDecl)
	block := fn.Body.(*ast.Block)
	assert.Equal(t, len(block.Stmts), 1)
	decl := block.Stmts[0].(*ast.VarDecl)
	assert.Equal(t, decl.Name.String(), "x")

	found := false
	for _, m := range diags {
		if m == "missing ';'" {
			found = true
		}
	}
	assert.True(t, found, "expected a \"missing ';'\" diagnostic")
}

// Scenario 5: an external function body missing its 'external' keyword
// is still recognized as an external body, not a block.
func TestExternalBodyMissingKeyword(t *testing.T) {
	unit, diags := parse(t, "function foo() = ;")
	found := false
	for _, m := range diags {
		if m == "missing 'external'" {
			found = true
		}
	}
	assert.True(t, found, "expected a \"missing 'external'\" diagnostic")

	fn := unit.Decls[0].(*ast.FunctionDecl)
	_, ok := fn.Body.(*ast.ExternalBody)
	assert.True(t, ok, "expected *ast.ExternalBody despite the missing keyword")
}

// Scenario 6a/6b: the assignment and var-decl alternatives are each
// chosen correctly by their first token, with no spurious diagnostics.
func TestStatementAlternativesCleanInput(t *testing.T) {
	unit, diags := parse(t, "function f() { x = 1; }")
	assert.Equal(t, len(diags), 0)
	block := unit.Decls[0].(*ast.FunctionDecl).Body.(*ast.Block)
	_, ok := block.Stmts[0].(*ast.Assignment)
	assert.True(t, ok, "expected *ast.Assignment")

	unit2, diags2 := parse(t, "function f() { int x; }")
	assert.Equal(t, len(diags2), 0)
	block2 := unit2.Decls[0].(*ast.FunctionDecl).Body.(*ast.Block)
	_, ok2 := block2.Stmts[0].(*ast.VarDecl)
	assert.True(t, ok2, "expected *ast.VarDecl")
}

// Scenario 6c: "int = 1;" resolves to the var-decl alternative (its type
// name matches directly) with a missing-variable diagnostic, rather than
// being misparsed as an assignment.
func TestVarDeclWithMissingName(t *testing.T) {
	unit, diags := parse(t, "function f() { int = 1; }")
	block := unit.Decls[0].(*ast.FunctionDecl).Body.(*ast.Block)
	decl, ok := block.Stmts[0].(*ast.VarDecl)
	assert.True(t, ok, "expected *ast.VarDecl even with a missing name")
	_, missing := decl.Name.(*ast.Missing)
	assert.True(t, missing, "expected the variable name to be a *ast.Missing node")
	assert.True(t, len(diags) >= 1, "expected at least one diagnostic")
}

// Binary expressions respect operator precedence: multiplication binds
// tighter than addition.
func TestExpressionPrecedence(t *testing.T) {
	unit, diags := parse(t, "function f() { int x = 1 + 2 * 3; }")
	assert.Equal(t, len(diags), 0)
	block := unit.Decls[0].(*ast.FunctionDecl).Body.(*ast.Block)
	decl := block.Stmts[0].(*ast.VarDecl)
	bin, ok := decl.Init.(*ast.Binary)
	assert.True(t, ok, "expected a *ast.Binary initializer")
	assert.Equal(t, bin.Op, "+")
	_, lhsLit := bin.X.(*ast.Literal)
	assert.True(t, lhsLit, "left operand of + should be the literal 1")
	rhs, ok := bin.Y.(*ast.Binary)
	assert.True(t, ok, "right operand of + should be the nested * expression")
	assert.Equal(t, rhs.Op, "*")
}

// A stray leading comma in a parameter list carries no recognizable
// parameter around it — it is noise, not a hint that a parameter belongs
// there — so it resolves to a single "invalid token" diagnostic and an
// empty parameter list, per spec.md §8 scenario 4.
func TestStrayCommaInParamList(t *testing.T) {
	unit, diags := parse(t, "function foo ( , ) { }")
	assert.Equal(t, len(diags), 1)
	assert.Equal(t, diags[0], "invalid token ','")

	fn := unit.Decls[0].(*ast.FunctionDecl)
	assert.Equal(t, len(fn.Params), 0)

	_, ok := fn.Body.(*ast.Block)
	assert.True(t, ok, "expected the function body to still parse as a block")
}

// --strict (the empty-statement shortcut disabled) reports a diagnostic
// for a bare ';' instead of silently treating it as an empty statement.
func TestStrictModeReportsBareSemicolon(t *testing.T) {
	_, diags := parse(t, "function f() { ; }", parser.WithEmptyStatementShortcut(false))
	assert.True(t, len(diags) >= 1, "expected a diagnostic with the shortcut disabled")
}

// By default the shortcut silently consumes a bare ';' as an empty
// statement, contributing no statement and no diagnostic.
func TestDefaultEmptyStatementShortcut(t *testing.T) {
	unit, diags := parse(t, "function f() { ; int x = 1; }")
	assert.Equal(t, len(diags), 0)
	block := unit.Decls[0].(*ast.FunctionDecl).Body.(*ast.Block)
	assert.Equal(t, len(block.Stmts), 1)
}

// A cancelled context stops the parse and is reported as an error rather
// than recovered as a diagnostic.
func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := parser.New("function a() {} function b() {} function c() {}")
	_, _, err := p.Parse(ctx)
	assert.Equal(t, err, context.Canceled)
}

// The `public` modifier is recognized and attached to the declaration.
func TestPublicModifier(t *testing.T) {
	unit, diags := parse(t, "public function foo() {}")
	assert.Equal(t, len(diags), 0)
	fn := unit.Decls[0].(*ast.FunctionDecl)
	assert.Equal(t, fn.Public.String(), "public")
}

// Multiple top-level declarations parse in order.
func TestMultipleTopLevelDeclarations(t *testing.T) {
	unit, diags := parse(t, "function a() {} function b() {}")
	assert.Equal(t, len(diags), 0)
	assert.Equal(t, len(unit.Decls), 2)
	assert.Equal(t, unit.Decls[0].(*ast.FunctionDecl).Name.String(), "a")
	assert.Equal(t, unit.Decls[1].(*ast.FunctionDecl).Name.String(), "b")
}
