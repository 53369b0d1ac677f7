package listener

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/vela-lang/vela/internal/token"
	"github.com/vela-lang/vela/rules"
)

func TestRecorderOrdersEventsAsEmitted(t *testing.T) {
	r := NewRecorder()
	r.EnterNode(rules.Block)
	r.AddMissingNode(rules.LBrace, token.Position{Line: 0})
	r.ExitNode(rules.Block, nil)

	assert.Equal(t, len(r.Events), 3)
	assert.Equal(t, r.Events[0].Kind, Enter)
	assert.Equal(t, r.Events[1].Kind, Missing)
	assert.Equal(t, r.Events[2].Kind, Exit)
}

func TestTreeBuilderNestsChildrenUnderEnteredNode(t *testing.T) {
	b := NewTreeBuilder()
	b.EnterNode(rules.Block)
	b.EnterNode(rules.Statement)
	b.ExitNode(rules.Statement, nil)
	b.AddEmptyNode(token.Position{})
	b.ExitNode(rules.Block, nil)

	roots := b.Roots()
	assert.Equal(t, len(roots), 1)
	assert.Equal(t, roots[0].Rule, rules.Block)
	assert.Equal(t, len(roots[0].Children), 2)
	assert.Equal(t, roots[0].Children[0].Rule, rules.Statement)
	assert.True(t, roots[0].Children[1].Empty, "second child should be the empty node")
}

func TestTreeBuilderTotalTreeIncludesMissingAndInvalid(t *testing.T) {
	b := NewTreeBuilder()
	b.EnterNode(rules.FunctionDef)
	b.AddMissingNode(rules.LBrace, token.Position{})
	b.AddInvalidToken(token.Token{Kind: token.COMMA, Text: ","})
	b.ExitNode(rules.FunctionDef, nil)

	root := b.Roots()[0]
	assert.Equal(t, len(root.Children), 2)
	assert.True(t, root.Children[0].Missing, "first child should be missing")
	assert.True(t, root.Children[1].Invalid, "second child should be invalid")
}
