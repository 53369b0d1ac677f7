package ast

import "github.com/vela-lang/vela/internal/token"

// FunctionDecl is a top-level function definition:
//
//	[public] function NAME ( params ) [returns TYPE] body
type FunctionDecl struct {
	FuncPos    token.Position
	Public     Node // *Empty when absent, an actual node when present
	Name       Node // Ident, or *Missing/*Invalid on recovery
	Params     []*Param
	ReturnType Node // Ident or *Empty when there is no returns clause
	Body       Node // *Block or *ExternalBody
}

func (f *FunctionDecl) declNode() {}

func (f *FunctionDecl) Pos() token.Position { return f.FuncPos }
func (f *FunctionDecl) End() token.Position {
	if f.Body != nil {
		return f.Body.End()
	}
	return f.FuncPos
}

func (f *FunctionDecl) String() string {
	s := "function "
	if f.Name != nil {
		s += f.Name.String()
	}
	s += "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	s += ")"
	if f.Body != nil {
		s += " " + f.Body.String()
	}
	return s
}

// Param is a single typed parameter in a function signature.
type Param struct {
	Type Node // Ident, or *Missing on recovery
	Name Node
}

func (p *Param) Pos() token.Position {
	if p.Type != nil {
		return p.Type.Pos()
	}
	return token.NoPos
}

func (p *Param) End() token.Position {
	if p.Name != nil {
		return p.Name.End()
	}
	return p.Pos()
}

func (p *Param) String() string {
	s := ""
	if p.Type != nil {
		s += p.Type.String()
	}
	if p.Name != nil {
		s += " " + p.Name.String()
	}
	return s
}

// Block is a `{ statements... }` function body.
type Block struct {
	LBrace token.Position
	Stmts  []Stmt
	RBrace token.Position
}

func (b *Block) declNode() {} // also usable wherever a function body is expected

func (b *Block) Pos() token.Position { return b.LBrace }
func (b *Block) End() token.Position { return b.RBrace }

func (b *Block) String() string {
	s := "{"
	for _, stmt := range b.Stmts {
		s += " " + stmt.String() + ";"
	}
	s += " }"
	return s
}

// ExternalBody is a `= external ;` function body, declaring that the
// function's implementation lives outside the source unit.
type ExternalBody struct {
	AssignPos token.Position
	Semi      token.Position
}

func (e *ExternalBody) declNode() {}

func (e *ExternalBody) Pos() token.Position { return e.AssignPos }
func (e *ExternalBody) End() token.Position { return e.Semi }
func (e *ExternalBody) String() string      { return "= external;" }
