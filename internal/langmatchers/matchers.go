// Package langmatchers is a ready-made lexical.Matcher set for a small
// C-like expression language: identifiers, capitalized type names, line
// comments, keywords, and operator/punctuation symbols. It exists to give
// callers of internal/lexical something non-trivial to scan without writing
// their own matcher list from scratch. Ported from cmaj/lang/matchers.py,
// a feature the distilled spec dropped but the original source carries.
package langmatchers

import "github.com/kestrelparse/cmaj/internal/lexical"

// Identifiers matches a lowercase-headed identifier: a letter, then any run
// of letters/digits/underscore, optionally closed by one more
// letter-or-digit.
func Identifiers() lexical.Matcher {
	alpha := lexical.ExpandAsRegex('a', 'z')
	digits := lexical.ExpandAsRegex('0', '9')

	head := alpha
	body := lexical.NewFirstOf(alpha, digits, "_")
	tail := lexical.NewFirstOf(alpha, digits)

	regex := lexical.NewSeq(head, lexical.NewRepeat(body, 0), lexical.NewMaybe(tail))
	return lexical.NewMatcher("identifier", regex)
}

// Types matches an uppercase-headed type name: a capital letter followed by
// any run of letters/digits.
func Types() lexical.Matcher {
	upper := lexical.ExpandAsRegex('A', 'Z')
	lower := lexical.ExpandAsRegex('a', 'z')
	digits := lexical.ExpandAsRegex('0', '9')

	head := upper
	body := lexical.NewFirstOf(upper, lower, digits)

	regex := lexical.NewSeq(head, lexical.NewRepeat(body, 0))
	return lexical.NewMatcher("type", regex)
}

// Comments matches a "#" followed by zero or more printable characters,
// running to the end of the line.
func Comments() lexical.Matcher {
	visible := lexical.ExpandAsRegex(' ', '~')
	regex := lexical.NewSeq("#", lexical.NewRepeat(visible, 0))
	return lexical.NewMatcher("comment", regex)
}

// Keywords returns one Matcher per reserved word.
func Keywords() []lexical.Matcher {
	words := []string{"return"}
	out := make([]lexical.Matcher, len(words))
	for i, w := range words {
		out[i] = lexical.NewMatcher(w, lexical.Eq(w))
	}
	return out
}

// Symbols returns one Matcher per operator/punctuation token, in the order
// longer tokens must be tried before their prefixes (e.g. "<=" before "<").
func Symbols() []lexical.Matcher {
	values := []string{
		"not", "or", "and", "xor",
		"[", "]",
		"(", ",", ")", "->",
		"<=", "==", "!=", "=>", "<", ">",
		"//", "+", "-", "*", "/", "mod",
	}
	out := make([]lexical.Matcher, len(values))
	for i, v := range values {
		out[i] = lexical.NewMatcher(v, lexical.Eq(v))
	}
	return out
}

// Space matches one or more literal spaces, the conventional matcher for
// whitespace callers drop before parsing.
func Space() lexical.Matcher {
	return lexical.NewMatcher("space", lexical.NewRepeat(" ", 1))
}

// Matchers returns the complete ordered matcher list: comments, keywords,
// types, identifiers, symbols, space. Keywords are tried before the
// identifier matcher, and multi-character operators before the
// single-character operators that are their prefixes. The word-like symbols
// (not, or, and, xor, mod) come after the identifier matcher, so those words
// scan as identifiers.
func Matchers() []lexical.Matcher {
	var out []lexical.Matcher
	out = append(out, Comments())
	out = append(out, Keywords()...)
	out = append(out, Types())
	out = append(out, Identifiers())
	out = append(out, Symbols()...)
	out = append(out, Space())
	return out
}
