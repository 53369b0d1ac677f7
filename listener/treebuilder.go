package listener

import (
	"github.com/vela-lang/vela/internal/token"
	"github.com/vela-lang/vela/rules"
)

// TreeNode is a generic, untyped tree node reconstructed purely from the
// listener event stream. It exists to demonstrate — and let tests assert
// — that the event stream alone carries enough information to rebuild a
// total tree (spec.md §7: "the partial tree is always complete").
type TreeNode struct {
	Rule     rules.RuleId
	Tokens   []token.Token
	Children []*TreeNode
	Missing  bool
	Invalid  bool
	Empty    bool
}

// TreeBuilder is a Listener that materializes a TreeNode tree as events
// arrive. It is the reference "AST-building" implementation at the
// generic-node level; the parser package separately builds a richly typed
// ast.Node tree using the same recursive-descent structure.
type TreeBuilder struct {
	stack []*TreeNode
	roots []*TreeNode
}

// NewTreeBuilder returns an empty TreeBuilder.
func NewTreeBuilder() *TreeBuilder { return &TreeBuilder{} }

// Roots returns the top-level nodes built so far, in source order.
func (b *TreeBuilder) Roots() []*TreeNode { return b.roots }

func (b *TreeBuilder) attach(n *TreeNode) {
	if len(b.stack) == 0 {
		b.roots = append(b.roots, n)
		return
	}
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, n)
}

func (b *TreeBuilder) EnterNode(rule rules.RuleId) {
	n := &TreeNode{Rule: rule}
	b.attach(n)
	b.stack = append(b.stack, n)
}

func (b *TreeBuilder) ExitNode(rule rules.RuleId, tokens []token.Token) {
	if len(b.stack) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1]
	top.Tokens = append(top.Tokens, tokens...)
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *TreeBuilder) AddMissingNode(rule rules.RuleId, at token.Position) {
	b.attach(&TreeNode{Rule: rule, Missing: true})
}

func (b *TreeBuilder) AddInvalidToken(tok token.Token) {
	b.attach(&TreeNode{Tokens: []token.Token{tok}, Invalid: true})
}

func (b *TreeBuilder) AddEmptyNode(at token.Position) {
	b.attach(&TreeNode{Empty: true})
}
