package ast

import "github.com/vela-lang/vela/internal/token"

// VarDecl is `TYPE NAME [= expr] ;`.
type VarDecl struct {
	Type    Node
	Name    Node
	Init    Node // *Empty when absent
	SemiPos token.Position
}

func (v *VarDecl) stmtNode() {}

func (v *VarDecl) Pos() token.Position {
	if v.Type != nil {
		return v.Type.Pos()
	}
	return token.NoPos
}

func (v *VarDecl) End() token.Position { return v.SemiPos }

func (v *VarDecl) String() string {
	s := ""
	if v.Type != nil {
		s += v.Type.String() + " "
	}
	if v.Name != nil {
		s += v.Name.String()
	}
	if e, ok := v.Init.(Expr); ok {
		if _, empty := v.Init.(*Empty); !empty {
			s += " = " + e.String()
		}
	}
	return s + ";"
}

// Assignment is `NAME = expr ;`.
type Assignment struct {
	Name    Node
	EqPos   token.Position
	Value   Node
	SemiPos token.Position
}

func (a *Assignment) stmtNode() {}

func (a *Assignment) Pos() token.Position {
	if a.Name != nil {
		return a.Name.Pos()
	}
	return token.NoPos
}

func (a *Assignment) End() token.Position { return a.SemiPos }

func (a *Assignment) String() string {
	s := ""
	if a.Name != nil {
		s = a.Name.String()
	}
	s += " = "
	if a.Value != nil {
		s += a.Value.String()
	}
	return s + ";"
}
