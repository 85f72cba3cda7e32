// Package meta is the bootstrap front-end: a fixed, hand-written LR(1)
// grammar and scanner that compile a user-supplied grammar-definition text
// into an internal/grammar.Grammar. Ported from cmaj/meta/matchers.py,
// cmaj/meta/parser.py, and cmaj/meta/compiler.py.
package meta

import "github.com/kestrelparse/cmaj/internal/lexical"

const (
	printableFirst = ' '
	printableLast  = '~'
)

// Matchers returns the meta-scanner's ordered matcher list. Ported from
// cmaj/meta/matchers.py matchers.
func Matchers() []lexical.Matcher {
	printable := lexical.ExpandAsRegex(printableFirst, printableLast)
	lower := lexical.NewFirstOf(lexical.ExpandAsRegex('a', 'z'), "_")
	upper := lexical.NewFirstOf(lexical.ExpandAsRegex('A', 'Z'), "_")

	singleQuoted := lexical.NewSeq("'", lexical.NewRepeat(lexical.ExpandAsRegex(printableFirst, printableLast, '\''), 1), "'")
	doubleQuoted := lexical.NewSeq(`"`, lexical.NewRepeat(lexical.ExpandAsRegex(printableFirst, printableLast, '"'), 1), `"`)

	return []lexical.Matcher{
		lexical.NewMatcher("comment", lexical.NewSeq("# ", lexical.NewRepeat(printable, 1))),
		lexical.NewMatcher("string", lexical.NewFirstOf(singleQuoted, doubleQuoted)),
		lexical.NewMatcher("identifier", lexical.NewFirstOf(lexical.NewRepeat(lower, 1), lexical.NewRepeat(upper, 1))),
		lexical.NewMatcher("space", lexical.NewRepeat(" ", 1)),
		lexical.NewMatcher("=", lexical.Eq("=")),
		lexical.NewMatcher("|", lexical.Eq("|")),
		lexical.NewMatcher(",", lexical.Eq(",")),
		lexical.NewMatcher("eol", lexical.Eq("\n")),
	}
}
