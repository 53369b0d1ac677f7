// Package tokbuf implements the pull-based token buffer that sits between
// the lexer and the parser core. It materializes tokens lazily from the
// lexer, skips trivia for logical reads, and retains a bounded lookahead
// ring of non-trivia tokens so the recovery engine can peek several tokens
// ahead without consuming them.
package tokbuf

import (
	"fmt"

	"github.com/vela-lang/vela/internal/token"
)

// Lexer is the contract the buffer pulls tokens from. internal/lexer.Lexer
// satisfies it; a fake implementation can be substituted in tests.
type Lexer interface {
	Next() (token.Token, error)
}

// DefaultCapacity is the minimum ring capacity, set to the recovery
// engine's lookahead horizon (spec.md §3: "Capacity must be ≥ the
// lookahead horizon (5)").
const DefaultCapacity = 5

// Buffer is a bounded FIFO of pre-fetched non-trivia tokens, fed lazily
// from a Lexer. peek(k) is deterministic and idempotent until consume
// advances the head.
type Buffer struct {
	lexer    Lexer
	capacity int

	ring     []token.Token // non-trivia tokens, ring[0] is the next unread token
	head     token.Token   // last consumed token; zero value before the first consume
	eof      bool          // true once EOF has been pulled into the ring
	fault    error         // sticky lexer I/O fault, if any
	consumed int           // total non-trivia tokens consumed, used by the driver to detect zero-progress recovery loops
}

// New returns a Buffer pulling from lexer with the default capacity.
func New(lexer Lexer) *Buffer {
	return NewWithCapacity(lexer, DefaultCapacity)
}

// NewWithCapacity returns a Buffer with a lookahead ring of at least
// DefaultCapacity slots, regardless of the requested capacity — shrinking
// below the lookahead horizon would violate the buffer's own invariant.
func NewWithCapacity(lexer Lexer, capacity int) *Buffer {
	if capacity < DefaultCapacity {
		capacity = DefaultCapacity
	}
	return &Buffer{lexer: lexer, capacity: capacity}
}

// fill ensures the ring holds at least n non-trivia tokens, pulling and
// skipping trivia tokens from the lexer as needed.
func (b *Buffer) fill(n int) {
	if b.fault != nil {
		return
	}
	if n > b.capacity {
		panic(fmt.Sprintf("tokbuf: peek(%d) exceeds buffer capacity %d", n, b.capacity))
	}
	for len(b.ring) < n {
		if b.eof {
			// EOF is sticky: pad the ring with EOF tokens rather than
			// re-querying a lexer that has nothing left to say.
			var last token.Token
			if len(b.ring) > 0 {
				last = b.ring[len(b.ring)-1]
			}
			b.ring = append(b.ring, eofLike(last))
			continue
		}
		tok, err := b.lexer.Next()
		if err != nil {
			b.fault = err
			return
		}
		if token.IsTrivia(tok.Kind) {
			continue
		}
		if tok.Kind == token.EOF {
			b.eof = true
		}
		b.ring = append(b.ring, tok)
	}
}

func eofLike(prev token.Token) token.Token {
	pos := prev.EndPosition
	return token.Token{Kind: token.EOF, StartPosition: pos, EndPosition: pos}
}

// Peek returns the next upcoming non-trivia token without consuming it.
// Equivalent to Peek(1).
func (b *Buffer) Peek() token.Token { return b.PeekAt(1) }

// PeekAt returns the k-th upcoming non-trivia token (1-indexed), triggering
// lexer reads as needed. A fault from the lexer is fatal and panics; an
// attempt to peek beyond capacity is an internal logic error and panics
// too (see fill).
func (b *Buffer) PeekAt(k int) token.Token {
	if k < 1 {
		panic("tokbuf: PeekAt requires k >= 1")
	}
	b.fill(k)
	if b.fault != nil {
		panic(fmt.Sprintf("tokbuf: lexer fault: %v", b.fault))
	}
	return b.ring[k-1]
}

// Consume removes and returns the next non-trivia token, advancing the
// head. Once EOF has been consumed, further calls keep returning EOF.
func (b *Buffer) Consume() token.Token {
	tok := b.PeekAt(1)
	if len(b.ring) > 0 {
		b.ring = b.ring[1:]
	}
	b.head = tok
	b.consumed++
	return tok
}

// Consumed returns the total number of non-trivia tokens consumed so far.
// The parser driver uses this as a monotonic progress marker: if a whole
// production's recovery attempts leave it unchanged, the driver forces a
// single token deletion to guarantee termination (spec.md §3 invariant 3).
func (b *Buffer) Consumed() int { return b.consumed }

// Head returns the last token consumed, or the zero Token before the
// first call to Consume.
func (b *Buffer) Head() token.Token { return b.head }

// ConsumeNonTrivia is an alias for Consume kept for symmetry with the
// spec's naming of the trivia-skipping consume operation; the buffer
// never exposes a trivia-including read path.
func (b *Buffer) ConsumeNonTrivia() token.Token { return b.Consume() }

// Fault returns the sticky lexer error, if one occurred.
func (b *Buffer) Fault() error { return b.fault }
