// Package lr1 builds the LR(1) canonical collection, the resulting
// shift/reduce/goto parse table, and the driver that runs it over a token
// stream. Ported from cmaj/parser/closure.py, cmaj/parser/graph.py,
// cmaj/parser/table.py, and cmaj/parser/lr1.py.
package lr1

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kestrelparse/cmaj/internal/grammar"
)

// RuleState is an LR(1) item: a dotted rule (by rule index and dot
// position) annotated with the set of terminals that may legally follow a
// reduction of that rule. Lookaheads must be non-empty.
type RuleState struct {
	RuleIndex   int
	DotPosition int
	Lookaheads  map[string]struct{}
}

// NewRuleState builds a RuleState. Panics if lookaheads is empty or
// contains an empty string, mirroring cmaj/parser/closure.py's assertions.
func NewRuleState(ruleIndex, dotPosition int, lookaheads map[string]struct{}) RuleState {
	if len(lookaheads) == 0 {
		panic("lr1: rule state must have at least one lookahead")
	}
	for la := range lookaheads {
		if la == "" {
			panic("lr1: rule state lookahead must not be empty")
		}
	}
	cp := make(map[string]struct{}, len(lookaheads))
	for la := range lookaheads {
		cp[la] = struct{}{}
	}
	return RuleState{RuleIndex: ruleIndex, DotPosition: dotPosition, Lookaheads: cp}
}

// StartState returns the initial item for an augmented grammar: the
// augmented start rule with the dot at position 0 and a lookahead set of
// just the end-of-input terminal.
func StartState(g grammar.Grammar) RuleState {
	if !g.IsAugmented() {
		panic("lr1: grammar must be augmented before computing its start state")
	}
	return NewRuleState(g.Len()-1, 0, map[string]struct{}{grammar.AugmentedEOF: {}})
}

// resolved is the per-rule view of a RuleState: which symbols come before
// and after the dot. Ported from cmaj/parser/closure.py ResolvedRuleState.
type resolved struct {
	key                string
	unprocessedSymbols []string
}

func resolve(state RuleState, g grammar.Grammar) resolved {
	rule := g.RuleAt(state.RuleIndex)
	return resolved{
		key:                rule.Key,
		unprocessedSymbols: rule.Symbols[state.DotPosition:],
	}
}

func (r resolved) reducible() bool {
	return len(r.unprocessedSymbols) == 0
}

func (r resolved) nextSymbol() string {
	return r.unprocessedSymbols[0]
}

func (r resolved) followSymbols() []string {
	if len(r.unprocessedSymbols) <= 1 {
		return nil
	}
	return r.unprocessedSymbols[1:]
}

// followStates returns the RuleStates reachable by expanding the
// nonterminal immediately after state's dot: empty if state is reducible or
// the symbol after the dot is a terminal (that successor edge is computed
// separately, in SuccessorsFor). Ported from
// cmaj/parser/closure.py RuleState.follow_states.
func followStates(state RuleState, g grammar.Grammar) []RuleState {
	res := resolve(state, g)
	if res.reducible() {
		return nil
	}
	next := res.nextSymbol()
	if g.IsTerminal(next) {
		return nil
	}

	followLookaheads := g.First(res.followSymbols())
	if len(followLookaheads) == 0 {
		followLookaheads = state.Lookaheads
	}

	var out []RuleState
	for _, idx := range g.IndexesOf(next) {
		out = append(out, NewRuleState(idx, 0, followLookaheads))
	}
	return out
}

func (s RuleState) sortedLookaheads() []string {
	out := make([]string, 0, len(s.Lookaheads))
	for la := range s.Lookaheads {
		out = append(out, la)
	}
	sort.Strings(out)
	return out
}

func (s RuleState) String() string {
	return fmt.Sprintf("(%d, %d, {%s})", s.RuleIndex, s.DotPosition, strings.Join(s.sortedLookaheads(), ", "))
}
