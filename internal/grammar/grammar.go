// Package grammar holds the grammar representation: rules, symbol
// classification, FIRST sets, and start-symbol augmentation. Ported from
// cmaj/parser/grammar.py.
package grammar

import (
	"fmt"
	"strings"

	"github.com/kestrelparse/cmaj/internal/uset"
)

const (
	// AugmentedStart is the reserved nonterminal name of the synthetic start
	// rule added by Augment.
	AugmentedStart = "⟪start⟫"

	// AugmentedEOF is the reserved terminal name appended to the input to
	// trigger acceptance.
	AugmentedEOF = "⟪eof⟫"
)

// Rule is a single production key -> symbols. symbols must be non-empty, and
// the immediately-cycling unit production key = [key] is forbidden.
type Rule struct {
	Key     string
	Symbols []string
}

// NewRule builds a Rule, panicking on the programmer errors spec.md assigns
// to assertion failures: empty key, empty symbol list, an empty symbol name,
// or the self-cycling unit production key = [key].
func NewRule(key string, symbols []string) Rule {
	if key == "" {
		panic("grammar: rule key must not be empty")
	}
	if len(symbols) == 0 {
		panic("grammar: rule symbols must not be empty")
	}
	for _, s := range symbols {
		if s == "" {
			panic("grammar: rule symbols must not contain an empty name")
		}
	}
	if len(symbols) == 1 && symbols[0] == key {
		return panicSelfCycle(key)
	}
	cp := make([]string, len(symbols))
	copy(cp, symbols)
	return Rule{Key: key, Symbols: cp}
}

func panicSelfCycle(key string) Rule {
	panic(fmt.Sprintf("grammar: rule %q cannot immediately cycle to itself", key))
}

func (r Rule) String() string {
	return fmt.Sprintf("%s = %s", r.Key, strings.Join(r.Symbols, " "))
}

// ruleSet is an insertion-order-preserving set of Rules with duplicates
// removed. Rule is not comparable (it holds a []string), so it can't be
// stored in uset.Ordered[Rule] the way Grammar.Symbols stores its strings;
// this keys each rule by its String() form instead, the same hand-built-
// string-key approach internal/lr1/closure.go uses to canonicalize a
// Closure by its items.
type ruleSet struct {
	values  []Rule
	indexes map[string]int
}

func (s *ruleSet) Add(r Rule) {
	if s.indexes == nil {
		s.indexes = make(map[string]int)
	}
	key := r.String()
	if _, ok := s.indexes[key]; ok {
		return
	}
	s.indexes[key] = len(s.values)
	s.values = append(s.values, r)
}

func (s *ruleSet) AddAll(rules ...Rule) {
	for _, r := range rules {
		s.Add(r)
	}
}

func (s ruleSet) Len() int {
	return len(s.values)
}

func (s ruleSet) At(i int) Rule {
	return s.values[i]
}

func (s ruleSet) Slice() []Rule {
	out := make([]Rule, len(s.values))
	copy(out, s.values)
	return out
}

// Grammar is an ordered, deduplicated set of rules. It is immutable once
// built: all mutating operations (Augment) return a new Grammar.
type Grammar struct {
	rules ruleSet
}

// New builds a Grammar from rules, preserving insertion order and removing
// duplicates.
func New(rules ...Rule) Grammar {
	var g Grammar
	g.rules.AddAll(rules...)
	return g
}

// Len returns the number of rules in the grammar.
func (g Grammar) Len() int {
	return g.rules.Len()
}

// RuleAt returns the rule at index.
func (g Grammar) RuleAt(index int) Rule {
	return g.rules.At(index)
}

// Rules returns all rules, in insertion order.
func (g Grammar) Rules() []Rule {
	return g.rules.Slice()
}

// RulesOf returns every rule whose key is key, in insertion order.
func (g Grammar) RulesOf(key string) []Rule {
	var out []Rule
	for _, r := range g.rules.Slice() {
		if r.Key == key {
			out = append(out, r)
		}
	}
	return out
}

// IndexesOf returns the indexes of every rule whose key is key, in insertion
// order.
func (g Grammar) IndexesOf(key string) []int {
	var out []int
	for i, r := range g.rules.Slice() {
		if r.Key == key {
			out = append(out, i)
		}
	}
	return out
}

// IsAugmented returns whether the grammar's last rule is the reserved start
// rule, i.e. whether Augment has already been applied.
func (g Grammar) IsAugmented() bool {
	if g.rules.Len() == 0 {
		return false
	}
	return g.rules.At(g.rules.Len() - 1).Key == AugmentedStart
}

// IsTerminal returns whether symbol has no rule defining it.
func (g Grammar) IsTerminal(symbol string) bool {
	return len(g.RulesOf(symbol)) == 0
}

// Symbols returns every distinct symbol mentioned anywhere in the grammar,
// on either side of a rule.
func (g Grammar) Symbols() []string {
	var seen uset.Ordered[string]
	for _, r := range g.rules.Slice() {
		seen.Add(r.Key)
	}
	for _, r := range g.rules.Slice() {
		for _, s := range r.Symbols {
			seen.Add(s)
		}
	}
	return seen.Slice()
}

// First returns the set of terminals that can appear as the first symbol of
// any expansion of symbols. Since epsilon productions are not representable,
// First(symbols) == First(symbols[0]) alone; callers needing FIRST(alpha
// beta) should pass the full remaining sequence. Ported from
// cmaj/parser/grammar.py Grammar.first/_first.
func (g Grammar) First(symbols []string) map[string]struct{} {
	if len(symbols) == 0 {
		return map[string]struct{}{}
	}
	return g.first(symbols, map[string]struct{}{})
}

func (g Grammar) first(symbols []string, visited map[string]struct{}) map[string]struct{} {
	symbol := symbols[0]
	if _, ok := visited[symbol]; ok {
		return map[string]struct{}{}
	}
	if g.IsTerminal(symbol) {
		return map[string]struct{}{symbol: {}}
	}
	nextVisited := make(map[string]struct{}, len(visited)+1)
	for k := range visited {
		nextVisited[k] = struct{}{}
	}
	nextVisited[symbol] = struct{}{}

	result := map[string]struct{}{}
	for _, rule := range g.RulesOf(symbol) {
		for t := range g.first(rule.Symbols, nextVisited) {
			result[t] = struct{}{}
		}
	}
	return result
}

// Augment returns a new grammar equal to g plus a synthetic start rule
// ⟪start⟫ = [start], appended last. Panics if start is a terminal in g, or
// if either reserved symbol already appears in g — these are programmer
// errors, per spec.md §7.
func Augment(g Grammar, start string) Grammar {
	if g.IsTerminal(start) {
		panic(fmt.Sprintf("grammar: cannot augment on terminal symbol %q", start))
	}
	for _, s := range g.Symbols() {
		if s == AugmentedStart || s == AugmentedEOF {
			panic("grammar: reserved symbol already present in grammar")
		}
	}
	rules := append(g.Rules(), Rule{Key: AugmentedStart, Symbols: []string{start}})
	return New(rules...)
}
