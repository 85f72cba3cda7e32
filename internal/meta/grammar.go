package meta

import "github.com/kestrelparse/cmaj/internal/grammar"

// Ported from the meta-grammar in spec.md §6:
//
//	GRAMMAR    = LINE, GRAMMAR | LINE
//	LINE       = DEFINITION, eol | comment, eol | eol
//	DEFINITION = identifier, "=", OPTION
//	OPTION     = SEQUENCE, "|", OPTION | SEQUENCE
//	SEQUENCE   = ANCHOR, SEQUENCE | ANCHOR
//	ANCHOR     = string | identifier
//
// The "," between GRAMMAR/LINE/DEFINITION/OPTION/SEQUENCE elements above is
// the spec's own EBNF concatenation notation, except for SEQUENCE: the
// worked example in spec.md §8 ("x = c , \"0\" | c") shows anchors within a
// sequence separated by a literal comma token, so SEQUENCE's production
// carries one.
const (
	symGrammar    = "GRAMMAR"
	symLine       = "LINE"
	symDefinition = "DEFINITION"
	symOption     = "OPTION"
	symSequence   = "SEQUENCE"
	symAnchor     = "ANCHOR"
)

// Grammar returns the bootstrap meta-grammar, augmented and ready for
// GraphFor/TableFor.
func Grammar() grammar.Grammar {
	g := grammar.New(
		grammar.NewRule(symGrammar, []string{symLine, symGrammar}),
		grammar.NewRule(symGrammar, []string{symLine}),
		grammar.NewRule(symLine, []string{symDefinition, "eol"}),
		grammar.NewRule(symLine, []string{"comment", "eol"}),
		grammar.NewRule(symLine, []string{"eol"}),
		grammar.NewRule(symDefinition, []string{"identifier", "=", symOption}),
		grammar.NewRule(symOption, []string{symSequence, "|", symOption}),
		grammar.NewRule(symOption, []string{symSequence}),
		grammar.NewRule(symSequence, []string{symAnchor, ",", symSequence}),
		grammar.NewRule(symSequence, []string{symAnchor}),
		grammar.NewRule(symAnchor, []string{"string"}),
		grammar.NewRule(symAnchor, []string{"identifier"}),
	)
	return grammar.Augment(g, symGrammar)
}
