package parser

import (
	"context"

	"github.com/vela-lang/vela/ast"
	"github.com/vela-lang/vela/internal/token"
	"github.com/vela-lang/vela/recovery"
	"github.com/vela-lang/vela/rules"
)

// expect consumes the next token if it satisfies ruleId (a Terminal
// rule). On mismatch it delegates to the Recovery Engine: a REMOVE
// fix has already consumed the offending token by the time Recover
// returns, so expect simply retries; an INSERT fix means ruleId is
// treated as present and expect returns ok=false with a token
// synthesized at the mismatch position, so the caller can substitute a
// *ast.Missing node (spec.md §4.4 step 3: "using a synthesized token
// kind for branching decisions").
func (p *Parser) expect(ruleId rules.RuleId) (tok token.Token, ok bool) {
	for {
		before := p.buf.Consumed()
		t := p.buf.Peek()
		def := p.graph.Def(ruleId)
		if rules.Matches(def.TokenKinds, t.Kind) {
			return p.buf.Consume(), true
		}
		action, _ := p.engine.Recover(ruleId, p.stack)
		if action == recovery.Remove {
			if p.buf.Consumed() == before {
				// The engine made no progress (should not happen per
				// spec.md invariant 3, but the driver never trusts a
				// collaborator to keep it from looping); force it.
				p.buf.Consume()
			}
			continue
		}
		var kind token.Kind
		if len(def.TokenKinds) > 0 {
			kind = def.TokenKinds[0]
		}
		return token.Token{Kind: kind, StartPosition: t.StartPosition, EndPosition: t.StartPosition}, false
	}
}

// dispatch chooses which branch of an Alternatives rule to enter by a
// single token of lookahead against each candidate's first set. Only
// when no branch matches does it fall back to the Recovery Engine,
// which both picks the winning branch and emits whatever diagnostic the
// mismatch warrants (spec.md §4.4 step 2 / §4.3.3). A zero RuleId return
// means the engine resolved the mismatch by deleting the offending
// token entirely (e.g. the empty-statement shortcut); the caller should
// treat that as "no node produced" and loop.
func (p *Parser) dispatch(ruleId rules.RuleId) rules.RuleId {
	def := p.graph.Def(ruleId)
	t := p.buf.Peek()
	for _, alt := range def.Alts {
		if rules.Matches(p.graph.FirstSet(alt), t.Kind) {
			return alt
		}
	}
	action, resume := p.engine.Recover(ruleId, p.stack)
	if action == recovery.Remove {
		return 0
	}
	return resume
}

// ident builds an *ast.Ident from a successfully matched terminal, or an
// *ast.Missing placeholder when expect reports a synthetic match.
func (p *Parser) ident(ruleId rules.RuleId) ast.Node {
	tok, ok := p.expect(ruleId)
	if !ok {
		return &ast.Missing{At: tok.StartPosition, Rule: ruleId.Name()}
	}
	return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Text}
}

func (p *Parser) checkCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		if p.cancelled == nil {
			p.cancelled = ctx.Err()
		}
		return true
	default:
		return false
	}
}

// parseCompilationUnit implements the CompilationUnit production: a
// repeat of TopLevelNode until EOF (spec.md §4.2).
func (p *Parser) parseCompilationUnit(ctx context.Context) *ast.CompilationUnit {
	p.stack.Push(rules.CompilationUnit)
	p.listener.EnterNode(rules.CompilationUnit)

	var decls []ast.Decl
	for {
		if p.checkCancelled(ctx) {
			break
		}
		t := p.buf.Peek()
		if t.Kind == token.EOF {
			break
		}
		decls = append(decls, p.parseTopLevelNode(ctx))
	}

	p.listener.ExitNode(rules.CompilationUnit, nil)
	p.stack.Pop()
	return &ast.CompilationUnit{Decls: decls}
}

// parseTopLevelNode implements TopLevelNode → PublicOpt FunctionDef.
func (p *Parser) parseTopLevelNode(ctx context.Context) ast.Decl {
	p.stack.Push(rules.TopLevelNode)
	p.listener.EnterNode(rules.TopLevelNode)

	public := p.parsePublicOpt()
	fn := p.parseFunctionDef(ctx)
	fn.Public = public

	p.listener.ExitNode(rules.TopLevelNode, nil)
	p.stack.Pop()
	return fn
}

// parsePublicOpt implements the optional `public` keyword ahead of a
// function definition.
func (p *Parser) parsePublicOpt() ast.Node {
	t := p.buf.Peek()
	if t.Kind != token.PUBLIC {
		p.listener.AddEmptyNode(t.StartPosition)
		return &ast.Empty{At: t.StartPosition}
	}
	p.listener.EnterNode(rules.PublicKw)
	tok := p.buf.Consume()
	p.listener.ExitNode(rules.PublicKw, []token.Token{tok})
	return &ast.Ident{NamePos: tok.StartPosition, Name: tok.Text}
}

// parseFunctionDef implements FunctionDef → function NAME Signature Body.
func (p *Parser) parseFunctionDef(ctx context.Context) *ast.FunctionDecl {
	p.stack.Push(rules.FunctionDef)
	p.listener.EnterNode(rules.FunctionDef)

	funcTok, _ := p.expect(rules.FunctionKw)
	name := p.ident(rules.FunctionName)
	params, returnType := p.parseSignature(ctx)
	body := p.parseFunctionBody(ctx)

	p.listener.ExitNode(rules.FunctionDef, nil)
	p.stack.Pop()
	return &ast.FunctionDecl{
		FuncPos:    funcTok.StartPosition,
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
	}
}

// parseSignature implements Signature → ( ParamList ) ReturnClauseOpt.
func (p *Parser) parseSignature(ctx context.Context) ([]*ast.Param, ast.Node) {
	p.stack.Push(rules.Signature)
	p.listener.EnterNode(rules.Signature)

	p.expect(rules.LParen)
	params := p.parseParamList(ctx)
	p.expect(rules.RParen)
	returnType := p.parseReturnClauseOpt()

	p.listener.ExitNode(rules.Signature, nil)
	p.stack.Pop()
	return params, returnType
}

// parseParamList implements the comma-separated, RPAREN-terminated Param
// repetition. Before committing to a Param it checks, by a single token
// of lookahead against Param's first set, whether one can even start here
// — mirroring dispatch's first-set-then-engine pattern for Alternatives,
// generalized to a repeat element. A stray separator is dropped directly
// as an invalid token, without the Recovery Engine. Any other token that
// can't start a Param is routed to the engine: a REMOVE verdict means the
// token is noise and no Param is produced at all, while an INSERT verdict
// means a Param genuinely belongs here despite the missing lead token,
// and one is synthesized.
func (p *Parser) parseParamList(ctx context.Context) []*ast.Param {
	p.stack.Push(rules.ParamList)
	p.listener.EnterNode(rules.ParamList)

	var params []*ast.Param
	for {
		t := p.buf.Peek()
		if t.Kind == token.EOF || t.Kind == token.RPAREN {
			break
		}

		if !rules.Matches(p.graph.FirstSet(rules.Param), t.Kind) {
			// A token matching ParamList's own separator can never be
			// mistaken for the start of a Param: it is unambiguously
			// noise, not a hint that a parameter belongs here, so it is
			// dropped directly rather than put through the Recovery
			// Engine's insert-vs-remove scoring (which has no way to
			// know the separator it would credit an inserted Param's
			// continuation with matching is the very token in question).
			paramListDef := p.graph.Def(rules.ParamList)
			if paramListDef.RepeatSep != 0 && t.Kind == paramListDef.RepeatSep {
				if !p.collector.TooMany(p.maxDiagnostics) {
					tok := p.buf.Consume()
					p.listener.AddInvalidToken(tok)
					p.collector.ReportInvalidToken(tok)
				} else {
					p.buf.Consume()
				}
				continue
			}
			action, _ := p.engine.Recover(rules.Param, p.stack)
			if action == recovery.Remove {
				continue
			}
			params = append(params, p.synthesizeParam(t))
			if p.buf.Peek().Kind == token.COMMA {
				p.expect(rules.Comma)
			}
			continue
		}

		before := p.buf.Consumed()
		params = append(params, p.parseParam())
		if p.buf.Peek().Kind == token.COMMA {
			p.expect(rules.Comma)
			continue
		}
		if p.buf.Consumed() == before {
			// A Param that consumed nothing (every field resolved via
			// Insert) would otherwise spin forever on the same token.
			p.buf.Consume()
		}
		break
	}

	p.listener.ExitNode(rules.ParamList, nil)
	p.stack.Pop()
	return params
}

// synthesizeParam builds a Param whose type was already reported missing
// by the Recover call that routed here (so ParamType is built directly,
// without a second expect/Recover round that would double-report it),
// then resolves ParamName normally.
func (p *Parser) synthesizeParam(at token.Token) *ast.Param {
	p.stack.Push(rules.Param)
	p.listener.EnterNode(rules.Param)

	typ := &ast.Missing{At: at.StartPosition, Rule: rules.ParamType.Name()}
	name := p.ident(rules.ParamName)

	p.listener.ExitNode(rules.Param, nil)
	p.stack.Pop()
	return &ast.Param{Type: typ, Name: name}
}

// parseParam implements Param → ParamType ParamName.
func (p *Parser) parseParam() *ast.Param {
	p.stack.Push(rules.Param)
	p.listener.EnterNode(rules.Param)

	typ := p.ident(rules.ParamType)
	name := p.ident(rules.ParamName)

	p.listener.ExitNode(rules.Param, nil)
	p.stack.Pop()
	return &ast.Param{Type: typ, Name: name}
}

// parseReturnClauseOpt implements the optional `returns TYPE` clause.
func (p *Parser) parseReturnClauseOpt() ast.Node {
	t := p.buf.Peek()
	if t.Kind != token.RETURNS {
		p.listener.AddEmptyNode(t.StartPosition)
		return &ast.Empty{At: t.StartPosition}
	}
	p.stack.Push(rules.ReturnTypeDescriptor)
	p.listener.EnterNode(rules.ReturnTypeDescriptor)
	p.expect(rules.ReturnsKw)
	typ := p.ident(rules.ReturnType)
	p.listener.ExitNode(rules.ReturnTypeDescriptor, nil)
	p.stack.Pop()
	return typ
}

// parseFunctionBody implements the FunctionBody Alternatives rule: a
// Block or an External declaration.
func (p *Parser) parseFunctionBody(ctx context.Context) ast.Node {
	alt := p.dispatch(rules.FunctionBody)
	for alt == 0 {
		alt = p.dispatch(rules.FunctionBody)
	}
	switch alt {
	case rules.Block:
		return p.parseBlock(ctx)
	case rules.External:
		return p.parseExternal()
	default:
		return &ast.Empty{At: p.buf.Peek().StartPosition}
	}
}

// parseBlock implements Block → { StatementList }.
func (p *Parser) parseBlock(ctx context.Context) *ast.Block {
	p.stack.Push(rules.Block)
	p.listener.EnterNode(rules.Block)

	lbrace, _ := p.expect(rules.LBrace)
	stmts := p.parseStatementList(ctx)
	rbrace, _ := p.expect(rules.RBrace)

	p.listener.ExitNode(rules.Block, nil)
	p.stack.Pop()
	return &ast.Block{LBrace: lbrace.StartPosition, Stmts: stmts, RBrace: rbrace.StartPosition}
}

// parseExternal implements External → = external ;.
func (p *Parser) parseExternal() *ast.ExternalBody {
	p.stack.Push(rules.External)
	p.listener.EnterNode(rules.External)

	assignTok, _ := p.expect(rules.ExternalAssign)
	p.expect(rules.ExternalKw)
	semi, _ := p.expect(rules.ExternalSemicolon)

	p.listener.ExitNode(rules.External, nil)
	p.stack.Pop()
	return &ast.ExternalBody{AssignPos: assignTok.StartPosition, Semi: semi.StartPosition}
}

// parseStatementList implements the Statement repetition terminated by
// spec.md §4.2's end-of-block synchronization set.
func (p *Parser) parseStatementList(ctx context.Context) []ast.Stmt {
	p.stack.Push(rules.StatementList)
	p.listener.EnterNode(rules.StatementList)

	var stmts []ast.Stmt
	for {
		if p.checkCancelled(ctx) {
			break
		}
		t := p.buf.Peek()
		if t.Kind == token.EOF || rules.Matches(rules.EndOfBlockSet, t.Kind) {
			break
		}
		before := p.buf.Consumed()
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.buf.Consumed() == before {
			p.buf.Consume()
		}
	}

	p.listener.ExitNode(rules.StatementList, nil)
	p.stack.Pop()
	return stmts
}

// parseStatement implements the Statement Alternatives rule: var-decl vs
// assignment, with the empty-statement shortcut handled transparently by
// dispatch returning a zero RuleId.
func (p *Parser) parseStatement() ast.Stmt {
	p.stack.Push(rules.Statement)
	p.listener.EnterNode(rules.Statement)

	alt := p.dispatch(rules.Statement)
	var stmt ast.Stmt
	switch alt {
	case rules.VarDecl:
		stmt = p.parseVarDecl()
	case rules.Assignment:
		stmt = p.parseAssignment()
	}

	p.listener.ExitNode(rules.Statement, nil)
	p.stack.Pop()
	return stmt
}

// parseVarDecl implements VarDecl → TYPE NAME VarInitOpt ;.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	p.stack.Push(rules.VarDecl)
	p.listener.EnterNode(rules.VarDecl)

	typ := p.ident(rules.VarType)
	name := p.ident(rules.VarName)
	init := p.parseVarInitOpt()
	semi, _ := p.expect(rules.VarSemicolon)

	p.listener.ExitNode(rules.VarDecl, nil)
	p.stack.Pop()
	return &ast.VarDecl{Type: typ, Name: name, Init: init, SemiPos: semi.StartPosition}
}

// parseVarInitOpt implements the optional `= expr` initializer.
func (p *Parser) parseVarInitOpt() ast.Node {
	t := p.buf.Peek()
	if t.Kind != token.ASSIGN {
		p.listener.AddEmptyNode(t.StartPosition)
		return &ast.Empty{At: t.StartPosition}
	}
	p.stack.Push(rules.VarInitializer)
	p.listener.EnterNode(rules.VarInitializer)
	p.expect(rules.AssignOp)
	expr := p.parseExpression(0)
	p.listener.ExitNode(rules.VarInitializer, nil)
	p.stack.Pop()
	return expr
}

// parseAssignment implements Assignment → NAME = expr ;.
func (p *Parser) parseAssignment() *ast.Assignment {
	p.stack.Push(rules.Assignment)
	p.listener.EnterNode(rules.Assignment)

	name := p.ident(rules.AssignName)
	eqTok, _ := p.expect(rules.AssignEq)
	value := p.parseExpression(0)
	semi, _ := p.expect(rules.AssignSemicolon)

	p.listener.ExitNode(rules.Assignment, nil)
	p.stack.Pop()
	return &ast.Assignment{Name: name, EqPos: eqTok.StartPosition, Value: value, SemiPos: semi.StartPosition}
}
