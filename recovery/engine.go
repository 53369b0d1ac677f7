// Package recovery implements the bounded-lookahead error-recovery engine
// described in spec.md §4.3: given a mismatch between the rule the parser
// driver currently expects and the next token, it explores a small
// horizon of hypothetical insertions and deletions, scores them, and
// returns the single best fix.
package recovery

import (
	"fmt"

	"github.com/vela-lang/vela/internal/token"
	"github.com/vela-lang/vela/rules"
	"go.uber.org/zap"
)

// Horizon is the maximum depth of hypothetical rule traversal during
// recovery, fixed at 5 by spec.md's glossary.
const Horizon = 5

// Buffer is the subset of tokbuf.Buffer the engine needs: peeking ahead
// without consuming, and consuming exactly the fix it commits to.
type Buffer interface {
	PeekAt(k int) token.Token
	Consume() token.Token
}

// Listener receives the missing-node / invalid-token events the engine
// emits while committing a fix. Satisfied by listener.Listener.
type Listener interface {
	AddMissingNode(rule rules.RuleId, at token.Position)
	AddInvalidToken(tok token.Token)
}

// Reporter is the error-reporting contract from spec.md §6.
type Reporter interface {
	ReportInvalidToken(tok token.Token)
	ReportMissingTokenError(tok token.Token, message string)
	ReportUnrecoverable(tok token.Token, message string)
}

// Engine is the bounded-lookahead recovery engine.
type Engine struct {
	buf      Buffer
	graph    *rules.Graph
	listener Listener
	reporter Reporter
	logger   *zap.Logger

	horizon           int
	emptyStmtShortcut bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithHorizon overrides the lookahead horizon H, clamped to [1,5] — the
// spec fixes H at 5, but a smaller value is useful for comparing recovery
// quality at reduced search depth.
func WithHorizon(h int) Option {
	return func(e *Engine) {
		if h < 1 {
			h = 1
		}
		if h > Horizon {
			h = Horizon
		}
		e.horizon = h
	}
}

// WithEmptyStatementShortcut enables or disables the empty-statement
// shortcut (spec.md §4.3.2, left open by §9): a bare ';' at a statement
// position is treated as an empty statement rather than a missing one.
// Enabled by default.
func WithEmptyStatementShortcut(enabled bool) Option {
	return func(e *Engine) { e.emptyStmtShortcut = enabled }
}

// WithLogger attaches a structured logger used only to trace the
// lookahead search at Debug level. Purely observational: disabling it
// (the default, a no-op logger) changes no parse result.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an Engine reading lookahead from buf, using graph for rule
// definitions, and reporting through reporter/listener.
func New(buf Buffer, graph *rules.Graph, reporter Reporter, listener Listener, opts ...Option) *Engine {
	e := &Engine{
		buf:               buf,
		graph:             graph,
		reporter:          reporter,
		listener:          listener,
		logger:            zap.NewNop(),
		horizon:           Horizon,
		emptyStmtShortcut: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recover is called by the driver after a mismatch between current and
// the buffer's next token. It reports diagnostics and tree events as a
// side effect, consumes zero or one token, and returns the action the
// driver should take plus the rule the driver should resume at — equal
// to current except when current is an Alternatives rule and recovery
// found a specific branch worth entering (spec.md §4.3.3: "re-enter the
// driver at the matched alternative").
//
// stack must reflect the live context at the point of the mismatch;
// Recover explores hypothetically on it and restores it before returning
// (spec.md §5: exploration never leaves observable changes on the live
// stack).
func (e *Engine) Recover(current rules.RuleId, stack *rules.ContextStack) (Action, rules.RuleId) {
	mark := stack.Snapshot()
	defer stack.Restore(mark)

	nextToken := e.buf.PeekAt(1)

	if nextToken.Kind == token.EOF {
		e.logger.Debug("recovery: EOF reached, inserting missing node",
			zap.Int("rule", int(current)))
		e.reporter.ReportMissingTokenError(nextToken, missingMessage(current))
		e.listener.AddMissingNode(current, nextToken.StartPosition)
		return Insert, current
	}

	if e.emptyStmtShortcut && current == rules.Statement && nextToken.Kind == token.SEMICOLON {
		tok := e.buf.Consume()
		e.listener.AddInvalidToken(tok)
		e.logger.Debug("recovery: empty-statement shortcut consumed ';'")
		return Remove, current
	}

	def := e.graph.Def(current)
	continuation := e.contFor(current, stack)

	var out SearchResult
	resume := current
	if def.Kind == rules.Alternatives {
		var winner rules.RuleId
		out, winner = e.seekAlternatives(def, 1, 0, stack, continuation)
		resume = winner
	} else {
		out = e.seekRule(current, 1, 0, stack, continuation)
	}

	if len(out.Fixes) == 0 {
		if out.Matches > 0 {
			// current actually parses cleanly within the horizon (for an
			// Alternatives rule, via resume) and the mismatch that
			// triggered Recover resolves itself with no edit needed.
			e.logger.Debug("recovery: no fix needed, rule matches within horizon")
			return Insert, resume
		}
		tok := e.buf.Consume()
		e.listener.AddInvalidToken(tok)
		e.reporter.ReportUnrecoverable(tok, "no insertion or deletion within the lookahead horizon recovers "+current.Name())
		e.logger.Debug("recovery: exploration exhausted without progress, deleting token",
			zap.String("token", tok.Text))
		return Remove, current
	}

	front := out.Fixes[0]
	e.logger.Debug("recovery: committing fix",
		zap.String("action", front.Action.String()),
		zap.Int("rule", int(front.Rule)),
		zap.Int("matches", out.Matches))

	switch front.Action {
	case Remove:
		tok := e.buf.Consume()
		e.listener.AddInvalidToken(tok)
		e.reporter.ReportInvalidToken(tok)
		return Remove, current
	default: // Insert
		e.listener.AddMissingNode(front.Rule, nextToken.StartPosition)
		e.reporter.ReportMissingTokenError(nextToken, missingMessage(front.Rule))
		if def.Kind == rules.Alternatives {
			return Insert, resume
		}
		return Insert, front.Rule
	}
}

func missingMessage(id rules.RuleId) string {
	return fmt.Sprintf("missing '%s'", id.Name())
}
