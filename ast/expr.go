package ast

import "github.com/vela-lang/vela/internal/token"

// Ident is a bare identifier reference, or a type name / variable name
// appearing in a declaration position.
type Ident struct {
	NamePos token.Position
	Name    string
}

func (i *Ident) declNode() {}
func (i *Ident) stmtNode() {}
func (i *Ident) exprNode() {}

func (i *Ident) Pos() token.Position { return i.NamePos }
func (i *Ident) End() token.Position { return i.NamePos.Advance(len(i.Name)) }
func (i *Ident) String() string      { return i.Name }

// Literal is an INT, HEX, or FLOAT literal.
type Literal struct {
	ValuePos token.Position
	Kind     token.Kind
	Text     string
}

func (l *Literal) exprNode() {}

func (l *Literal) Pos() token.Position { return l.ValuePos }
func (l *Literal) End() token.Position { return l.ValuePos.Advance(len(l.Text)) }
func (l *Literal) String() string      { return l.Text }

// Paren is a parenthesized expression: ( expr ).
type Paren struct {
	LParen token.Position
	X      Expr
	RParen token.Position
}

func (p *Paren) exprNode() {}

func (p *Paren) Pos() token.Position { return p.LParen }
func (p *Paren) End() token.Position { return p.RParen }
func (p *Paren) String() string {
	s := "("
	if p.X != nil {
		s += p.X.String()
	}
	return s + ")"
}

// Binary is `X op Y`.
type Binary struct {
	X     Expr
	OpPos token.Position
	Op    string
	Y     Expr
}

func (b *Binary) exprNode() {}

func (b *Binary) Pos() token.Position {
	if b.X != nil {
		return b.X.Pos()
	}
	return b.OpPos
}

func (b *Binary) End() token.Position {
	if b.Y != nil {
		return b.Y.End()
	}
	return b.OpPos.Advance(len(b.Op))
}

func (b *Binary) String() string {
	s := "("
	if b.X != nil {
		s += b.X.String()
	}
	s += " " + b.Op + " "
	if b.Y != nil {
		s += b.Y.String()
	}
	return s + ")"
}
