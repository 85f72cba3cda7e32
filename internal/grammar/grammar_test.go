package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewRule_PanicsOnSelfCycle(t *testing.T) {
	assert.Panics(t, func() {
		NewRule("A", []string{"A"})
	})
}

func Test_Grammar_RuleLookup(t *testing.T) {
	g := New(
		NewRule("ADD", []string{"ADD", "+", "MUL"}),
		NewRule("ADD", []string{"MUL"}),
		NewRule("MUL", []string{"MUL", "*", "1"}),
		NewRule("MUL", []string{"1"}),
	)

	require.Equal(t, 4, g.Len())
	assert.Equal(t, []int{0, 1}, g.IndexesOf("ADD"))
	assert.Len(t, g.RulesOf("MUL"), 2)
	assert.True(t, g.IsTerminal("+"))
	assert.True(t, g.IsTerminal("1"))
	assert.False(t, g.IsTerminal("ADD"))
}

func Test_Grammar_DeduplicatesRules(t *testing.T) {
	r := NewRule("A", []string{"a"})
	g := New(r, r)
	assert.Equal(t, 1, g.Len())
}

func Test_Grammar_First(t *testing.T) {
	g := New(
		NewRule("ADD", []string{"ADD", "+", "MUL"}),
		NewRule("ADD", []string{"MUL"}),
		NewRule("MUL", []string{"MUL", "*", "1"}),
		NewRule("MUL", []string{"1"}),
	)

	first := g.First([]string{"ADD"})
	assert.Equal(t, map[string]struct{}{"1": {}}, first)
}

func Test_Grammar_First_LeftRecursionDoesNotLoop(t *testing.T) {
	g := New(
		NewRule("X", []string{"X", "a"}),
		NewRule("X", []string{"b"}),
	)

	first := g.First([]string{"X"})
	assert.Equal(t, map[string]struct{}{"b": {}}, first)
}

func Test_Augment(t *testing.T) {
	g := New(NewRule("A", []string{"a"}))
	augmented := Augment(g, "A")

	require.True(t, augmented.IsAugmented())
	last := augmented.RuleAt(augmented.Len() - 1)
	assert.Equal(t, AugmentedStart, last.Key)
	assert.Equal(t, []string{"A"}, last.Symbols)
}

func Test_Augment_PanicsOnTerminalStart(t *testing.T) {
	g := New(NewRule("A", []string{"a"}))
	assert.Panics(t, func() {
		Augment(g, "a")
	})
}
