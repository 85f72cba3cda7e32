package lr1

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kestrelparse/cmaj/internal/grammar"
)

// Closure is an LR(1) item set, canonicalized so that every (ruleIndex,
// dotPosition) pair appears at most once — lookaheads for items that agree
// on those two fields are merged into one item. Ported from
// cmaj/parser/closure.py closure_for/_simplify_lookaheads.
type Closure struct {
	states []RuleState
}

// States returns the closure's items, sorted by (ruleIndex, dotPosition)
// for determinism.
func (c Closure) States() []RuleState {
	out := make([]RuleState, len(c.states))
	copy(out, c.states)
	return out
}

// Key returns a string that uniquely identifies this closure's canonical
// content; two closures with the same Key are the same set of items.
func (c Closure) Key() string {
	parts := make([]string, len(c.states))
	for i, s := range c.states {
		parts[i] = s.String()
	}
	return strings.Join(parts, ";")
}

func (c Closure) String() string {
	var sb strings.Builder
	for i, s := range c.states {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

func stateFullKey(s RuleState) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(s.RuleIndex))
	sb.WriteRune('|')
	sb.WriteString(strconv.Itoa(s.DotPosition))
	sb.WriteRune('|')
	sb.WriteString(strings.Join(s.sortedLookaheads(), ","))
	return sb.String()
}

// ClosureFor computes the closure of the given seed states: the fixed point
// of repeatedly adding followStates of every state currently in the set,
// then canonicalizing by merging lookaheads across items that agree on
// (ruleIndex, dotPosition).
func ClosureFor(g grammar.Grammar, seeds ...RuleState) Closure {
	all := closureFixpoint(g, seeds)
	return canonicalize(all)
}

func closureFixpoint(g grammar.Grammar, seeds []RuleState) map[string]RuleState {
	all := make(map[string]RuleState, len(seeds))
	for _, s := range seeds {
		all[stateFullKey(s)] = s
	}

	visited := map[string]RuleState{}
	frontier := seeds

	for len(frontier) > 0 {
		newSet := map[string]RuleState{}
		for _, s := range frontier {
			for _, fs := range followStates(s, g) {
				k := stateFullKey(fs)
				if _, ok := visited[k]; ok {
					continue
				}
				if _, ok := newSet[k]; ok {
					continue
				}
				newSet[k] = fs
			}
		}
		if len(newSet) == 0 {
			break
		}

		var next []RuleState
		for k, v := range newSet {
			all[k] = v
			visited[k] = v
			next = append(next, v)
		}
		frontier = next
	}

	return all
}

func canonicalize(states map[string]RuleState) Closure {
	type coreKey struct {
		ruleIndex, dotPosition int
	}
	merged := map[coreKey]map[string]struct{}{}
	order := []coreKey{}
	for _, s := range states {
		ck := coreKey{s.RuleIndex, s.DotPosition}
		if merged[ck] == nil {
			merged[ck] = map[string]struct{}{}
			order = append(order, ck)
		}
		for la := range s.Lookaheads {
			merged[ck][la] = struct{}{}
		}
	}

	result := make([]RuleState, 0, len(order))
	for _, ck := range order {
		result = append(result, NewRuleState(ck.ruleIndex, ck.dotPosition, merged[ck]))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RuleIndex != result[j].RuleIndex {
			return result[i].RuleIndex < result[j].RuleIndex
		}
		return result[i].DotPosition < result[j].DotPosition
	})
	return Closure{states: result}
}

// SuccessorsFor returns, for every symbol X that appears immediately after a
// dot in some item of closure, the closure reached by advancing the dot of
// every such item past X and taking the closure of the result. Ported from
// cmaj/parser/closure.py successors_for.
func SuccessorsFor(g grammar.Grammar, closure Closure) map[string]Closure {
	groups := map[string][]RuleState{}
	for _, state := range closure.states {
		res := resolve(state, g)
		if res.reducible() {
			continue
		}
		symbol := res.nextSymbol()
		groups[symbol] = append(groups[symbol], RuleState{
			RuleIndex:   state.RuleIndex,
			DotPosition: state.DotPosition + 1,
			Lookaheads:  state.Lookaheads,
		})
	}

	out := make(map[string]Closure, len(groups))
	for symbol, states := range groups {
		out[symbol] = ClosureFor(g, states...)
	}
	return out
}
