// Package rules holds the static description of the Vela grammar consumed
// by the parser driver and the recovery engine: which rules are terminals,
// which are productions (ordered sequences of subrules, possibly
// repeating), which are alternatives (branch points selected by
// lookahead), and which are optional. It is a total, data-driven
// description rather than a graph of pointers, per the tagged-variant
// design favored throughout this codebase.
package rules

import (
	"fmt"

	"github.com/vela-lang/vela/internal/token"
)

// RuleId identifies a single grammar rule: a terminal, a production, an
// alternatives rule, or an optional rule.
type RuleId int

// Kind partitions RuleId into the four categories the spec names.
type Kind int

const (
	Terminal Kind = iota
	Production
	Alternatives
	Optional
)

func (k Kind) String() string {
	switch k {
	case Terminal:
		return "terminal"
	case Production:
		return "production"
	case Alternatives:
		return "alternatives"
	case Optional:
		return "optional"
	default:
		return "unknown"
	}
}

// The full rule set for the representative grammar in spec.md §4.2.
const (
	CompilationUnit RuleId = iota + 1
	TopLevelNode
	PublicOpt
	PublicKw

	FunctionDef
	FunctionKw
	FunctionName

	Signature
	LParen
	ParamList
	Param
	ParamType
	ParamName
	Comma
	RParen

	ReturnClauseOpt
	ReturnTypeDescriptor
	ReturnsKw
	ReturnType

	FunctionBody
	Block
	LBrace
	StatementList
	Statement
	RBrace

	External
	ExternalAssign
	ExternalKw
	ExternalSemicolon

	VarDecl
	VarType
	VarName
	VarInitOpt
	VarInitializer
	AssignOp
	VarSemicolon

	Assignment
	AssignName
	AssignEq
	AssignSemicolon

	Expression
	ExprTerm
	Literal
	IdentifierRef
	ParenExpr
	ParenOpen
	ParenClose
	BinaryRHSOpt
	BinaryRHS
	Operator
)

// Name returns a human-readable name for a rule, used in diagnostics
// ("missing '{'" style messages derive their noun from here).
func (id RuleId) Name() string {
	if name, ok := names[id]; ok {
		return name
	}
	return "rule"
}

var names = map[RuleId]string{
	CompilationUnit:      "compilation unit",
	TopLevelNode:         "top-level declaration",
	PublicOpt:            "public",
	PublicKw:             "public",
	FunctionDef:          "function definition",
	FunctionKw:           "function",
	FunctionName:         "function name",
	Signature:            "function signature",
	LParen:               "(",
	ParamList:            "parameter list",
	Param:                "parameter",
	ParamType:            "parameter type",
	ParamName:            "parameter name",
	Comma:                ",",
	RParen:               ")",
	ReturnClauseOpt:      "returns clause",
	ReturnTypeDescriptor: "return type descriptor",
	ReturnsKw:            "returns",
	ReturnType:           "return type",
	FunctionBody:         "function body",
	Block:                "block",
	LBrace:               "{",
	StatementList:        "statement list",
	Statement:            "statement",
	RBrace:               "}",
	External:             "external body",
	ExternalAssign:       "=",
	ExternalKw:           "external",
	ExternalSemicolon:    ";",
	VarDecl:              "variable declaration",
	VarType:              "type",
	VarName:              "variable",
	VarInitOpt:           "initializer",
	VarInitializer:       "initializer",
	AssignOp:             "=",
	VarSemicolon:         ";",
	Assignment:           "assignment",
	AssignName:           "variable",
	AssignEq:             "=",
	AssignSemicolon:      ";",
	Expression:           "expression",
	ExprTerm:             "expression",
	Literal:              "literal",
	IdentifierRef:        "identifier",
	ParenExpr:            "parenthesized expression",
	ParenOpen:            "(",
	ParenClose:           ")",
	BinaryRHSOpt:         "binary operator",
	BinaryRHS:            "binary expression",
	Operator:             "operator",
}

// Def is the static description of a single rule.
type Def struct {
	ID   RuleId
	Kind Kind

	// Terminal: the set of token kinds that satisfy this rule. More than
	// one entry means the terminal accepts any of several kinds (e.g.
	// Literal accepts INT, HEX, or FLOAT).
	TokenKinds []token.Kind

	// Production (non-repeating): the ordered sequence of subrules.
	Seq []RuleId

	// Production (repeating), e.g. ParamList, StatementList,
	// CompilationUnit's top-level loop.
	Repeat        bool
	RepeatElem    RuleId     // the subrule repeated
	RepeatSep     token.Kind // separator terminal between elements; 0 = none
	RepeatSepRule RuleId     // rule id naming RepeatSep in diagnostics, valid only if RepeatSep != 0
	RepeatUntil   []token.Kind

	// Alternatives: the candidate rules, in declaration-order precedence
	// for tie-breaking.
	Alts []RuleId

	// Optional: the inner rule, entered only if the lookahead token
	// matches one of Sentinel.
	Inner    RuleId
	Sentinel []token.Kind
}

// Graph is the total rule table for the Vela grammar.
type Graph struct {
	defs map[RuleId]Def
}

// New returns the Rule Graph for the representative Vela grammar described
// in spec.md §4.2.
func New() *Graph {
	g := &Graph{defs: make(map[RuleId]Def)}
	for _, d := range defTable {
		g.defs[d.ID] = d
	}
	return g
}

// Def returns the static definition for id. Panics if id is unknown —
// an unrecognized RuleId is an internal invariant violation, not a
// recoverable parse error.
func (g *Graph) Def(id RuleId) Def {
	d, ok := g.defs[id]
	if !ok {
		panic(fmt.Sprintf("rules: unknown RuleId %d", id))
	}
	return d
}

// Matches reports whether tok's kind is in kinds: a Terminal rule's
// TokenKinds, an Optional rule's Sentinel set, or a first set.
func Matches(kinds []token.Kind, tok token.Kind) bool {
	for _, k := range kinds {
		if k == tok {
			return true
		}
	}
	return false
}

// EndOfBlockSet is the synchronization set that terminates a block, per
// spec.md §4.2.
var EndOfBlockSet = []token.Kind{token.RBRACE, token.PUBLIC, token.FUNCTION, token.EOF}

// EndOfExpressionSet is the synchronization set for expressions: ")",
// ";", ",", "}", public, function and EOF. It does not contain "]": the
// token set has no "]" kind and the lexer does not recognize it.
var EndOfExpressionSet = []token.Kind{
	token.RPAREN, token.SEMICOLON, token.COMMA,
	token.RBRACE, token.PUBLIC, token.FUNCTION, token.EOF,
}

var defTable = []Def{
	{ID: CompilationUnit, Kind: Production, Repeat: true, RepeatElem: TopLevelNode, RepeatUntil: []token.Kind{token.EOF}},
	{ID: TopLevelNode, Kind: Production, Seq: []RuleId{PublicOpt, FunctionDef}},
	{ID: PublicOpt, Kind: Optional, Inner: PublicKw, Sentinel: []token.Kind{token.PUBLIC}},
	{ID: PublicKw, Kind: Terminal, TokenKinds: []token.Kind{token.PUBLIC}},

	{ID: FunctionDef, Kind: Production, Seq: []RuleId{FunctionKw, FunctionName, Signature, FunctionBody}},
	{ID: FunctionKw, Kind: Terminal, TokenKinds: []token.Kind{token.FUNCTION}},
	{ID: FunctionName, Kind: Terminal, TokenKinds: []token.Kind{token.IDENTIFIER}},

	{ID: Signature, Kind: Production, Seq: []RuleId{LParen, ParamList, RParen, ReturnClauseOpt}},
	{ID: LParen, Kind: Terminal, TokenKinds: []token.Kind{token.LPAREN}},
	{ID: ParamList, Kind: Production, Repeat: true, RepeatElem: Param,
		RepeatSep: token.COMMA, RepeatSepRule: Comma, RepeatUntil: []token.Kind{token.RPAREN}},
	{ID: Param, Kind: Production, Seq: []RuleId{ParamType, ParamName}},
	{ID: ParamType, Kind: Terminal, TokenKinds: []token.Kind{token.TYPE_NAME}},
	{ID: ParamName, Kind: Terminal, TokenKinds: []token.Kind{token.IDENTIFIER}},
	{ID: Comma, Kind: Terminal, TokenKinds: []token.Kind{token.COMMA}},
	{ID: RParen, Kind: Terminal, TokenKinds: []token.Kind{token.RPAREN}},

	{ID: ReturnClauseOpt, Kind: Optional, Inner: ReturnTypeDescriptor, Sentinel: []token.Kind{token.RETURNS}},
	{ID: ReturnTypeDescriptor, Kind: Production, Seq: []RuleId{ReturnsKw, ReturnType}},
	{ID: ReturnsKw, Kind: Terminal, TokenKinds: []token.Kind{token.RETURNS}},
	{ID: ReturnType, Kind: Terminal, TokenKinds: []token.Kind{token.TYPE_NAME}},

	{ID: FunctionBody, Kind: Alternatives, Alts: []RuleId{Block, External}},
	{ID: Block, Kind: Production, Seq: []RuleId{LBrace, StatementList, RBrace}},
	{ID: LBrace, Kind: Terminal, TokenKinds: []token.Kind{token.LBRACE}},
	{ID: StatementList, Kind: Production, Repeat: true, RepeatElem: Statement,
		RepeatUntil: EndOfBlockSet},
	{ID: Statement, Kind: Alternatives, Alts: []RuleId{VarDecl, Assignment}},
	{ID: RBrace, Kind: Terminal, TokenKinds: []token.Kind{token.RBRACE}},

	{ID: External, Kind: Production, Seq: []RuleId{ExternalAssign, ExternalKw, ExternalSemicolon}},
	{ID: ExternalAssign, Kind: Terminal, TokenKinds: []token.Kind{token.ASSIGN}},
	{ID: ExternalKw, Kind: Terminal, TokenKinds: []token.Kind{token.EXTERNAL}},
	{ID: ExternalSemicolon, Kind: Terminal, TokenKinds: []token.Kind{token.SEMICOLON}},

	{ID: VarDecl, Kind: Production, Seq: []RuleId{VarType, VarName, VarInitOpt, VarSemicolon}},
	{ID: VarType, Kind: Terminal, TokenKinds: []token.Kind{token.TYPE_NAME}},
	{ID: VarName, Kind: Terminal, TokenKinds: []token.Kind{token.IDENTIFIER}},
	{ID: VarInitOpt, Kind: Optional, Inner: VarInitializer, Sentinel: []token.Kind{token.ASSIGN}},
	{ID: VarInitializer, Kind: Production, Seq: []RuleId{AssignOp, Expression}},
	{ID: AssignOp, Kind: Terminal, TokenKinds: []token.Kind{token.ASSIGN}},
	{ID: VarSemicolon, Kind: Terminal, TokenKinds: []token.Kind{token.SEMICOLON}},

	{ID: Assignment, Kind: Production, Seq: []RuleId{AssignName, AssignEq, Expression, AssignSemicolon}},
	{ID: AssignName, Kind: Terminal, TokenKinds: []token.Kind{token.IDENTIFIER}},
	{ID: AssignEq, Kind: Terminal, TokenKinds: []token.Kind{token.ASSIGN}},
	{ID: AssignSemicolon, Kind: Terminal, TokenKinds: []token.Kind{token.SEMICOLON}},

	{ID: Expression, Kind: Production, Seq: []RuleId{ExprTerm, BinaryRHSOpt}},
	{ID: ExprTerm, Kind: Alternatives, Alts: []RuleId{Literal, IdentifierRef, ParenExpr}},
	{ID: Literal, Kind: Terminal, TokenKinds: []token.Kind{token.INT, token.HEX, token.FLOAT}},
	{ID: IdentifierRef, Kind: Terminal, TokenKinds: []token.Kind{token.IDENTIFIER}},
	{ID: ParenExpr, Kind: Production, Seq: []RuleId{ParenOpen, Expression, ParenClose}},
	{ID: ParenOpen, Kind: Terminal, TokenKinds: []token.Kind{token.LPAREN}},
	{ID: ParenClose, Kind: Terminal, TokenKinds: []token.Kind{token.RPAREN}},
	{ID: BinaryRHSOpt, Kind: Optional, Inner: BinaryRHS, Sentinel: operatorKinds},
	{ID: BinaryRHS, Kind: Production, Seq: []RuleId{Operator, Expression}},
	{ID: Operator, Kind: Terminal, TokenKinds: operatorKinds},
}

var operatorKinds = []token.Kind{
	token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
	token.LT, token.GT, token.EQ, token.SAME,
}

// IsOperatorKind reports whether kind is one of the binary operator
// tokens recognized by the Operator/BinaryRHSOpt rules.
func IsOperatorKind(kind token.Kind) bool {
	return Matches(operatorKinds, kind)
}

// FirstSet returns the set of token kinds that can legally begin id,
// computed recursively from the rule table. The parser driver uses this
// to choose a branch of an Alternatives rule by a single token of
// lookahead before ever consulting the Recovery Engine — the engine is
// only asked to adjudicate when no branch's first set matches, which is
// precisely a grammar mismatch (spec.md §4.4 step 2).
func (g *Graph) FirstSet(id RuleId) []token.Kind {
	def := g.Def(id)
	switch def.Kind {
	case Terminal:
		return def.TokenKinds
	case Alternatives:
		var out []token.Kind
		for _, alt := range def.Alts {
			out = append(out, g.FirstSet(alt)...)
		}
		return out
	case Optional:
		return g.FirstSet(def.Inner)
	case Production:
		if def.Repeat {
			return g.FirstSet(def.RepeatElem)
		}
		if len(def.Seq) == 0 {
			return nil
		}
		return g.FirstSet(def.Seq[0])
	default:
		return nil
	}
}
