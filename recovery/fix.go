package recovery

import "github.com/vela-lang/vela/rules"

// Action tells the parser driver how to proceed after a call to Recover.
type Action int

const (
	// Insert means: treat the expected rule as present (synthetically),
	// consume no input, and proceed to the rule's successor.
	Insert Action = iota
	// Remove means: the offending token was spurious and has already
	// been consumed; retry the same rule.
	Remove
)

func (a Action) String() string {
	if a == Remove {
		return "REMOVE"
	}
	return "INSERT"
}

// Fix describes one edit the engine is willing to commit: inserting a
// synthetic node for a missing rule, or deleting a spurious input token.
type Fix struct {
	Action        Action
	Rule          rules.RuleId
	EnclosingRule rules.RuleId
	TokenText     string
}

// SearchResult is the outcome of exploring one hypothetical path: how many
// rules matched cleanly, and the ordered fixes required along the way.
// Fixes[0] is the earliest fix on the path (the one the engine commits).
type SearchResult struct {
	Matches int
	Fixes   []Fix
	// NextK is the lookahead index exploration reached; internal to the
	// search, not part of the public contract, but exported for tests
	// that want to assert on how far a hypothesis advanced.
	NextK int
	// Stopped marks that exploration along this path hit EOF, where
	// seekTerminal ends the path with an Insert fix. Scoring (pickBest,
	// seekAlternatives) does not read it.
	Stopped bool
}
