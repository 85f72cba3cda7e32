package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func leaf(key, value string) Node {
	return Leaf(key, NewToken(0, 0, value))
}

func Test_Leaf_PanicsOnEmptyKey(t *testing.T) {
	assert.Panics(t, func() { Leaf("", NewToken(0, 0, "x")) })
}

func Test_Internal_PanicsOnEmptyKey(t *testing.T) {
	assert.Panics(t, func() { Internal("") })
}

func Test_AddChild_PanicsOnLeafParent(t *testing.T) {
	n := leaf("a", "x")
	assert.Panics(t, func() { n.AddChild(leaf("b", "y")) })
}

func Test_Len_LeafIsTokenLength(t *testing.T) {
	assert.Equal(t, 3, leaf("a", "abc").Len())
}

func Test_Equal(t *testing.T) {
	a := Internal("X", leaf("a", "1"), leaf("b", "2"))
	b := Internal("X", leaf("a", "1"), leaf("b", "2"))
	c := Internal("X", leaf("a", "1"), leaf("b", "3"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func Test_Squash_CollapsesChainOfSameKey(t *testing.T) {
	tree := Internal("OPTION",
		Internal("SEQUENCE", leaf("a", "1")),
		Internal("OPTION",
			Internal("SEQUENCE", leaf("a", "2")),
			Internal("OPTION", Internal("SEQUENCE", leaf("a", "3"))),
		),
	)

	got := Squash(tree, "OPTION")
	assert.Equal(t, 3, len(got.Children()))
}

func Test_Prune_RemovesNamedNodesAndCascades(t *testing.T) {
	tree := Internal("LINE", leaf("comment", "# hi"), leaf("eol", "\n"))
	got := Prune(tree, "comment", "eol")
	assert.Equal(t, 0, got.Len())
}

func Test_Skip_InlinesNonLeafNode(t *testing.T) {
	tree := Internal("SEQUENCE",
		Internal("ANCHOR", leaf("string", "\"a\"")),
		Internal("ANCHOR", leaf("identifier", "b")),
	)

	got := Skip(tree, "ANCHOR")
	children := got.Children()
	assert.Equal(t, 2, len(children))
	assert.Equal(t, "string", children[0].Key())
	assert.Equal(t, "identifier", children[1].Key())
}
