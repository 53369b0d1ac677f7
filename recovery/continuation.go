package recovery

import "github.com/vela-lang/vela/rules"

// contFor builds the continuation representing "once id is satisfied,
// what comes next in the grammar", given the live context stack at the
// moment of a mismatch. It climbs the stack from innermost enclosing
// context outward, asking each one what follows id within it, until a
// frame supplies a real successor or the stack is exhausted — at the
// root there is nothing left to match, and exploration simply stops.
//
// This replaces a truncated continuation that would otherwise report
// zero matches for everything reachable past id, regardless of how well
// an insertion or deletion hypothesis actually resolves the input: the
// top-level call into seekRule/seekAlternatives needs to know what real
// grammar comes after current, not just that current itself is satisfied.
func (e *Engine) contFor(id rules.RuleId, stack *rules.ContextStack) cont {
	frames := stack.Contexts()
	return e.contForFrames(id, frames, len(frames), stack)
}

// contForFrames returns the continuation for id given frames[:n], the
// live context stack truncated to its first n entries (outermost first).
// frames[n-1], if present, is id's immediate enclosing rule.
func (e *Engine) contForFrames(id rules.RuleId, frames []rules.RuleId, n int, stack *rules.ContextStack) cont {
	if n == 0 {
		return func(k, depth int) SearchResult { return SearchResult{NextK: k} }
	}
	parent := frames[n-1]
	outer := e.contForFrames(parent, frames, n-1, stack)
	return e.successorWithin(parent, id, stack, outer)
}

// successorWithin returns the continuation for "after id, within parent",
// falling back to outer (what follows parent itself) when parent has no
// further subrule after id — a Production's last Seq element, an
// Alternatives or Optional rule (which have no internal sequencing of
// their own), or any rule id isn't actually found in.
func (e *Engine) successorWithin(parent, id rules.RuleId, stack *rules.ContextStack, outer cont) cont {
	def := e.graph.Def(parent)
	if def.Kind != rules.Production {
		return outer
	}
	if def.Repeat {
		return func(k, depth int) SearchResult {
			return e.seekRepeatAfterElem(def, k, depth, stack, outer)
		}
	}
	idx := seqIndex(def.Seq, id)
	if idx < 0 || idx+1 >= len(def.Seq) {
		return outer
	}
	return func(k, depth int) SearchResult {
		return e.seekSeq(def.Seq, idx+1, k, depth, stack, outer)
	}
}

func seqIndex(seq []rules.RuleId, id rules.RuleId) int {
	for i, r := range seq {
		if r == id {
			return i
		}
	}
	return -1
}
