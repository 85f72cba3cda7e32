// Package ast holds the parse-tree data model shared by the meta front-end
// and the LR(1) driver, plus the squash/prune/skip transforms used to turn a
// raw parse tree into one usable by a caller.
//
// This is a port of cmaj/ast/node.py and cmaj/ast/simplify.py.
package ast

import "fmt"

// Token is an immutable lexeme read from source text: the zero-based line and
// column it starts at, plus the exact substring matched there. Two tokens are
// equal iff all three fields match.
type Token struct {
	Line   int
	Column int
	Value  string
}

// NewToken builds a Token. It does not check that Value is non-empty; the
// scanner checks that itself and panics on a zero-length match.
func NewToken(line, column int, value string) Token {
	return Token{Line: line, Column: column, Value: value}
}

// End returns the (line, column) immediately past the token, i.e. where the
// next token on the same line would begin.
func (t Token) End() (line, column int) {
	return t.Line, t.Column + len(t.Value)
}

func (t Token) String() string {
	return fmt.Sprintf("Token(line: %d, column: %d, value: %q)", t.Line, t.Column, t.Value)
}
