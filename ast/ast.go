// Package ast defines the concrete abstract syntax tree the reference
// listener builds for Vela source. The parser core (§1 of SPEC_FULL.md)
// treats tree-building as an external collaborator reached only through
// the listener.Listener contract; this package is the one concrete
// implementation used to exercise and test the core end to end.
package ast

import "github.com/vela-lang/vela/internal/token"

// Node is a portion of the syntax tree. Every node carries enough
// position information to slice the original source, including nodes
// synthesized by recovery.
type Node interface {
	Pos() token.Position
	End() token.Position
	String() string
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// CompilationUnit is the root of a parsed Vela source file.
type CompilationUnit struct {
	Decls []Decl
}

func (c *CompilationUnit) Pos() token.Position {
	if len(c.Decls) > 0 {
		return c.Decls[0].Pos()
	}
	return token.NoPos
}

func (c *CompilationUnit) End() token.Position {
	if len(c.Decls) > 0 {
		return c.Decls[len(c.Decls)-1].End()
	}
	return token.NoPos
}

func (c *CompilationUnit) String() string {
	s := ""
	for i, d := range c.Decls {
		if i > 0 {
			s += "\n"
		}
		s += d.String()
	}
	return s
}

// Missing is a synthetic node inserted by the recovery engine in place of
// a required rule that the input lacked. It always carries the RuleId
// name of what was expected, so downstream passes can explain the gap.
type Missing struct {
	At   token.Position
	Rule string // human-readable rule name, e.g. "{" or "function name"
}

func (m *Missing) declNode() {}
func (m *Missing) stmtNode() {}
func (m *Missing) exprNode() {}

func (m *Missing) Pos() token.Position { return m.At }
func (m *Missing) End() token.Position { return m.At }
func (m *Missing) String() string      { return "<missing " + m.Rule + ">" }

// Invalid preserves a token the recovery engine deleted from the input,
// so diagnostics and tree dumps can still show what was actually there.
type Invalid struct {
	Token token.Token
}

func (i *Invalid) declNode() {}
func (i *Invalid) stmtNode() {}
func (i *Invalid) exprNode() {}

func (i *Invalid) Pos() token.Position { return i.Token.StartPosition }
func (i *Invalid) End() token.Position { return i.Token.EndPosition }
func (i *Invalid) String() string      { return "<invalid " + i.Token.Text + ">" }

// Empty stands in for an optional rule that was absent from the input
// (not an error — the optional simply wasn't there).
type Empty struct {
	At token.Position
}

func (e *Empty) declNode() {}
func (e *Empty) stmtNode() {}
func (e *Empty) exprNode() {}

func (e *Empty) Pos() token.Position { return e.At }
func (e *Empty) End() token.Position { return e.At }
func (e *Empty) String() string      { return "" }
