package parser

import (
	"github.com/vela-lang/vela/ast"
	"github.com/vela-lang/vela/internal/token"
	"github.com/vela-lang/vela/rules"
)

// precedence ranks the binary operators spec.md §4.2 groups by
// "multiplicative > additive > comparison". The Rule Graph's
// BinaryRHS/BinaryRHSOpt only describe the shape recovery needs to
// recognize ("is the next token an operator"); the actual grouping of
// operators into a tree is this precedence-climbing table, the same
// separation of concerns the teacher's own Pratt-style expression parser
// draws between prefixParseFn/infixParseFn dispatch and precedence
// levels.
func precedence(kind token.Kind) int {
	switch kind {
	case token.ASTERISK, token.SLASH:
		return 3
	case token.PLUS, token.MINUS:
		return 2
	case token.LT, token.GT, token.EQ, token.SAME:
		return 1
	default:
		return 0
	}
}

// parseExpression implements Expression → ExprTerm BinaryRHSOpt via
// precedence climbing: minPrec is the lowest operator precedence this
// call is willing to absorb, so a recursive call for the right-hand side
// only consumes operators that bind tighter than the one that invoked it.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.maxDepth {
		return &ast.Missing{At: p.buf.Peek().StartPosition, Rule: "expression (max depth exceeded)"}
	}

	left := p.parseExprTerm()
	for {
		t := p.buf.Peek()
		if !rules.IsOperatorKind(t.Kind) {
			break
		}
		prec := precedence(t.Kind)
		if prec < minPrec {
			break
		}
		opTok, _ := p.expect(rules.Operator)
		right := p.parseExpression(prec + 1)
		left = &ast.Binary{X: left, OpPos: opTok.StartPosition, Op: opTok.Text, Y: right}
	}
	return left
}

// parseExprTerm implements the ExprTerm Alternatives rule: a literal, an
// identifier reference, or a parenthesized sub-expression.
func (p *Parser) parseExprTerm() ast.Expr {
	alt := p.dispatch(rules.ExprTerm)
	for alt == 0 {
		alt = p.dispatch(rules.ExprTerm)
	}
	switch alt {
	case rules.Literal:
		tok, ok := p.expect(rules.Literal)
		if !ok {
			return &ast.Missing{At: tok.StartPosition, Rule: rules.Literal.Name()}
		}
		return &ast.Literal{ValuePos: tok.StartPosition, Kind: tok.Kind, Text: tok.Text}
	case rules.IdentifierRef:
		tok, ok := p.expect(rules.IdentifierRef)
		if !ok {
			return &ast.Missing{At: tok.StartPosition, Rule: rules.IdentifierRef.Name()}
		}
		return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Text}
	case rules.ParenExpr:
		return p.parseParenExpr()
	default:
		return &ast.Missing{At: p.buf.Peek().StartPosition, Rule: "expression"}
	}
}

// parseParenExpr implements ParenExpr → ( Expression ).
func (p *Parser) parseParenExpr() ast.Expr {
	p.stack.Push(rules.ParenExpr)
	p.listener.EnterNode(rules.ParenExpr)

	lparen, _ := p.expect(rules.ParenOpen)
	inner := p.parseExpression(0)
	rparen, _ := p.expect(rules.ParenClose)

	p.listener.ExitNode(rules.ParenExpr, nil)
	p.stack.Pop()
	return &ast.Paren{LParen: lparen.StartPosition, X: inner, RParen: rparen.StartPosition}
}
