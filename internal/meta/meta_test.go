package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelparse/cmaj/internal/ast"
	"github.com/kestrelparse/cmaj/internal/grammar"
	"github.com/kestrelparse/cmaj/internal/lr1"
)

func Test_Table_IsConflictFree(t *testing.T) {
	_, err := Table()
	require.NoError(t, err)
}

func Test_CompileSource(t *testing.T) {
	lines := SplitLines("x = c , \"0\" | c\nc = \"0\" | \"1\"\n")

	g, err := CompileSource(lines)
	require.NoError(t, err)
	require.Equal(t, 4, g.Len())

	rules := g.Rules()
	assert.Equal(t, grammar.NewRule("x", []string{"c", "0"}), rules[0])
	assert.Equal(t, grammar.NewRule("x", []string{"c"}), rules[1])
	assert.Equal(t, grammar.NewRule("c", []string{"0"}), rules[2])
	assert.Equal(t, grammar.NewRule("c", []string{"1"}), rules[3])
}

func Test_CompiledGrammar_Parses(t *testing.T) {
	lines := SplitLines("x = c , \"0\" | c\nc = \"0\" | \"1\"\n")
	g, err := CompileSource(lines)
	require.NoError(t, err)

	augmented := grammar.Augment(g, "x")
	graph := lr1.GraphFor(augmented)
	table, err := lr1.TableFor(augmented, graph)
	require.NoError(t, err)

	tok1 := ast.Leaf("1", ast.Token{Value: "1"})
	tok0 := ast.Leaf("0", ast.Token{Value: "0"})
	tree, err := lr1.Parse([]ast.Node{tok1, tok0}, augmented, table)
	require.NoError(t, err)
	assert.Equal(t, "x", tree.Key())

	var leaves []string
	var collect func(ast.Node)
	collect = func(n ast.Node) {
		if tok, ok := n.Token(); ok {
			leaves = append(leaves, tok.Value)
			return
		}
		for _, c := range n.Children() {
			collect(c)
		}
	}
	collect(tree)
	assert.Equal(t, []string{"1", "0"}, leaves)
}

func Test_Parse_DropsSpaceTokens(t *testing.T) {
	lines := SplitLines("a = \"x\"\n")
	tree, err := Parse(lines)
	require.NoError(t, err)
	assert.Equal(t, "GRAMMAR", tree.Key())
}
