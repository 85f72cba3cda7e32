package lr1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelparse/cmaj/internal/ast"
	"github.com/kestrelparse/cmaj/internal/grammar"
)

func leaf(key string) ast.Node {
	return ast.Leaf(key, ast.Token{Value: key})
}

func Test_SingleRuleGrammar(t *testing.T) {
	g := grammar.Augment(grammar.New(
		grammar.NewRule("A", []string{"a"}),
	), "A")

	graph := GraphFor(g)
	require.Equal(t, 3, graph.NumClosures())

	table, err := TableFor(g, graph)
	require.NoError(t, err)

	tree, err := Parse([]ast.Node{leaf("a")}, g, table)
	require.NoError(t, err)
	assert.Equal(t, "A", tree.Key())
	require.Len(t, tree.Children(), 1)
	assert.Equal(t, "a", tree.Children()[0].Key())
}

func Test_BalancedZerosAndOnes(t *testing.T) {
	g := grammar.Augment(grammar.New(
		grammar.NewRule("X", []string{"0", "X", "1"}),
		grammar.NewRule("X", []string{"0", "1"}),
	), "X")

	graph := GraphFor(g)
	table, err := TableFor(g, graph)
	require.NoError(t, err)

	tree, err := Parse([]ast.Node{leaf("0"), leaf("0"), leaf("1"), leaf("1")}, g, table)
	require.NoError(t, err)
	assert.Equal(t, "X", tree.Key())
}

func Test_LeftAssociativeArithmetic(t *testing.T) {
	g := grammar.Augment(grammar.New(
		grammar.NewRule("ADD", []string{"ADD", "+", "MUL"}),
		grammar.NewRule("ADD", []string{"MUL"}),
		grammar.NewRule("MUL", []string{"MUL", "*", "1"}),
		grammar.NewRule("MUL", []string{"1"}),
	), "ADD")

	graph := GraphFor(g)
	table, err := TableFor(g, graph)
	require.NoError(t, err)

	tree, err := Parse([]ast.Node{leaf("1"), leaf("+"), leaf("1"), leaf("*"), leaf("1")}, g, table)
	require.NoError(t, err)
	assert.Equal(t, "ADD", tree.Key())

	left := tree.Children()[0]
	assert.Equal(t, "ADD", left.Key())
	right := tree.Children()[2]
	assert.Equal(t, "MUL", right.Key())
	require.Len(t, right.Children(), 3)
}

func Test_AmbiguousPalindromeGrammar_Conflicts(t *testing.T) {
	g := grammar.Augment(grammar.New(
		grammar.NewRule("X", []string{"0", "X", "0"}),
		grammar.NewRule("X", []string{"1", "X", "1"}),
		grammar.NewRule("X", []string{"0"}),
		grammar.NewRule("X", []string{"1"}),
	), "X")

	graph := GraphFor(g)
	_, err := TableFor(g, graph)
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func Test_UnexpectedToken(t *testing.T) {
	g := grammar.Augment(grammar.New(
		grammar.NewRule("A", []string{"a"}),
	), "A")

	graph := GraphFor(g)
	table, err := TableFor(g, graph)
	require.NoError(t, err)

	_, err = Parse([]ast.Node{leaf("b")}, g, table)
	require.Error(t, err)

	var perr *ParserError
	require.ErrorAs(t, err, &perr)
}

func Test_GraphFor_PanicsOnUnaugmentedGrammar(t *testing.T) {
	g := grammar.New(grammar.NewRule("A", []string{"a"}))
	assert.Panics(t, func() {
		GraphFor(g)
	})
}
