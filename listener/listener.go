// Package listener defines the Listener Sink contract (spec.md §4.5): the
// ordered stream of tree-building events the parser driver emits as it
// works. The core treats the listener as an opaque collaborator; this
// package also ships two concrete implementations — a generic TreeBuilder
// that proves the event stream alone is sufficient to reconstruct a total
// tree, and a Recorder that tests use to assert on event ordering
// directly.
package listener

import (
	"github.com/vela-lang/vela/internal/token"
	"github.com/vela-lang/vela/rules"
)

// Listener receives ordered tree-building events from the parser driver.
// Implementations are opaque to the core: one builds a real AST, another
// might just record calls for a test assertion.
type Listener interface {
	// EnterNode announces that rule has begun.
	EnterNode(rule rules.RuleId)

	// ExitNode announces that rule completed normally. tokens holds raw
	// tokens the rule consumed directly (not tokens consumed by child
	// rules). parser.Parser fills it only for the `public` keyword; for
	// every other rule it passes nil.
	ExitNode(rule rules.RuleId, tokens []token.Token)

	// AddMissingNode announces a synthetic node inserted by recovery in
	// place of a required rule the input lacked.
	AddMissingNode(rule rules.RuleId, at token.Position)

	// AddInvalidToken announces an input token recovery deleted as
	// spurious; the token is preserved here for diagnostics.
	AddInvalidToken(tok token.Token)

	// AddEmptyNode announces an optional rule that was legitimately
	// absent from the input (not an error).
	AddEmptyNode(at token.Position)
}

// Event is a single recorded listener call, used by Recorder.
type Event struct {
	Kind   EventKind
	Rule   rules.RuleId
	Tokens []token.Token
	Token  token.Token
	At     token.Position
}

// EventKind discriminates the five listener calls.
type EventKind int

const (
	Enter EventKind = iota
	Exit
	Missing
	Invalid
	EmptyNode
)

func (k EventKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	case Missing:
		return "missing"
	case Invalid:
		return "invalid"
	case EmptyNode:
		return "empty"
	default:
		return "unknown"
	}
}

// Recorder is a pure event-recording Listener used by tests asserting on
// the exact order diagnostics and tree events are emitted in (spec.md §5:
// "diagnostics and tree events are emitted in strict input order").
type Recorder struct {
	Events []Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) EnterNode(rule rules.RuleId) {
	r.Events = append(r.Events, Event{Kind: Enter, Rule: rule})
}

func (r *Recorder) ExitNode(rule rules.RuleId, tokens []token.Token) {
	r.Events = append(r.Events, Event{Kind: Exit, Rule: rule, Tokens: tokens})
}

func (r *Recorder) AddMissingNode(rule rules.RuleId, at token.Position) {
	r.Events = append(r.Events, Event{Kind: Missing, Rule: rule, At: at})
}

func (r *Recorder) AddInvalidToken(tok token.Token) {
	r.Events = append(r.Events, Event{Kind: Invalid, Token: tok})
}

func (r *Recorder) AddEmptyNode(at token.Position) {
	r.Events = append(r.Events, Event{Kind: EmptyNode, At: at})
}
