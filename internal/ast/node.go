package ast

import (
	"fmt"
	"strings"
)

// Node is a parse-tree node: either a leaf carrying a Token and a terminal
// symbol name, or an internal node carrying a nonterminal symbol name and an
// ordered list of children. A Node never carries both a token and children.
// Nodes are value-equal by structure and are built fresh by the scanner and
// the LR(1) driver; trees are never shared or mutated in place once returned
// from a builder.
type Node struct {
	key      string
	token    *Token
	children []Node
}

// Leaf builds a terminal Node for key carrying tok as its source token. key
// must be non-empty.
func Leaf(key string, tok Token) Node {
	if key == "" {
		panic("ast: leaf node requires a non-empty key")
	}
	t := tok
	return Node{key: key, token: &t}
}

// Internal builds a nonterminal Node for key with the given children (which
// may be none), added via AddChildren; AddChild/AddChildren append further
// children. The LR(1) driver only ever returns
// Internal nodes that have at least one child.
func Internal(key string, children ...Node) Node {
	if key == "" {
		panic("ast: internal node requires a non-empty key")
	}
	n := Node{key: key}
	n.AddChildren(children...)
	return n
}

// Key returns the node's terminal or nonterminal symbol name.
func (n Node) Key() string {
	return n.key
}

// IsLeaf returns whether the node carries a token (as opposed to children).
func (n Node) IsLeaf() bool {
	return n.token != nil
}

// Token returns the node's token and true if this is a leaf node, else the
// zero Token and false.
func (n Node) Token() (Token, bool) {
	if n.token == nil {
		return Token{}, false
	}
	return *n.token, true
}

// Children returns a copy of the node's child list. Leaf nodes return nil.
func (n Node) Children() []Node {
	if n.children == nil {
		return nil
	}
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

// AddChild appends child to n's child list. Panics if n is a leaf (already
// carries a token) or if child has zero length, mirroring the assertions in
// cmaj/ast/node.py's Node.add_child.
func (n *Node) AddChild(child Node) {
	if n.token != nil {
		panic("ast: cannot add a child to a leaf node")
	}
	if child.Len() == 0 {
		panic("ast: cannot add a zero-length child")
	}
	n.children = append(n.children, child)
}

// AddChildren adds each child in order via AddChild.
func (n *Node) AddChildren(children ...Node) {
	for _, c := range children {
		n.AddChild(c)
	}
}

// Len returns the token length for leaves; for internal nodes it is the
// column span of the node's last line, derived from begin/end. An internal
// node with no children has length 0.
func (n Node) Len() int {
	if n.token != nil {
		return len(n.token.Value)
	}
	if len(n.children) == 0 {
		return 0
	}
	_, beginCol := begin(n)
	endLine, endCol := end(n)
	_ = endLine
	return endCol - beginCol
}

// begin returns the (line, column) of the earliest-starting leaf on the
// node's last line, ported from cmaj/ast/node.py's module-level begin().
func begin(n Node) (line, column int) {
	if n.token != nil {
		return n.token.Line, n.token.Column
	}
	maxLine := 0
	first := true
	for _, c := range n.children {
		l, _ := begin(c)
		if first || l > maxLine {
			maxLine = l
			first = false
		}
	}
	minCol := 0
	first = true
	for _, c := range n.children {
		l, col := begin(c)
		if l == maxLine && (first || col < minCol) {
			minCol = col
			first = false
		}
	}
	return maxLine, minCol
}

// end returns the (line, column) immediately past the node, ported from
// cmaj/ast/node.py's module-level end().
func end(n Node) (line, column int) {
	if n.token != nil {
		return n.token.End()
	}
	maxLine := 0
	first := true
	for _, c := range n.children {
		l, _ := end(c)
		if first || l > maxLine {
			maxLine = l
			first = false
		}
	}
	maxCol := 0
	first = true
	for _, c := range n.children {
		l, col := end(c)
		if l == maxLine && (first || col > maxCol) {
			maxCol = col
			first = false
		}
	}
	return maxLine, maxCol
}

// Equal returns whether n and other have the same structure: equal keys,
// equal tokens (or both absent), and equal children in order.
func (n Node) Equal(other Node) bool {
	if n.key != other.key {
		return false
	}
	if (n.token == nil) != (other.token == nil) {
		return false
	}
	if n.token != nil && *n.token != *other.token {
		return false
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

func (n Node) String() string {
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n Node) writeTo(sb *strings.Builder) {
	if n.token != nil {
		fmt.Fprintf(sb, "(%s %q)", n.key, n.token.Value)
		return
	}
	fmt.Fprintf(sb, "(%s", n.key)
	for _, c := range n.children {
		sb.WriteRune(' ')
		c.writeTo(sb)
	}
	sb.WriteRune(')')
}
