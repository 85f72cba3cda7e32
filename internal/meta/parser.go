package meta

import (
	"sync"

	"github.com/kestrelparse/cmaj/internal/ast"
	"github.com/kestrelparse/cmaj/internal/grammar"
	"github.com/kestrelparse/cmaj/internal/lexical"
	"github.com/kestrelparse/cmaj/internal/lr1"
)

var (
	tableOnce sync.Once
	table     lr1.Table
	tableErr  error
)

// Table returns the meta-grammar's parse table, building it once and
// caching the result — the grammar is fixed at compile time, so this never
// changes between calls.
func Table() (lr1.Table, error) {
	tableOnce.Do(func() {
		graph := lr1.GraphFor(Grammar())
		table, tableErr = lr1.TableFor(Grammar(), graph)
	})
	return table, tableErr
}

// mustTable panics if the bootstrap grammar itself is not LR(1) — that would
// be a defect in this package, not a caller error.
func mustTable() lr1.Table {
	t, err := Table()
	if err != nil {
		panic("meta: bootstrap grammar is not LR(1): " + err.Error())
	}
	return t
}

// SplitLines splits source the way the meta-scanner expects: each returned
// line keeps its trailing "\n" (the eol matcher consumes it), except a
// final line with no trailing newline.
func SplitLines(source string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, source[start:i+1])
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, source[start:])
	}
	return lines
}

// Parse scans and parses grammar-definition source text against the
// bootstrap meta-grammar, returning the raw (unsimplified) parse tree.
func Parse(lines []string) (ast.Node, error) {
	nodes, err := lexical.Scan(lines, Matchers())
	if err != nil {
		return ast.Node{}, err
	}

	tokens := make([]ast.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Key() == "space" {
			continue
		}
		tokens = append(tokens, n)
	}

	return lr1.Parse(tokens, Grammar(), mustTable())
}

// Compile reduces a raw meta-grammar parse tree to a Grammar: squash
// GRAMMAR/OPTION/SEQUENCE, prune punctuation and comments, skip LINE and
// ANCHOR, then emit one Rule per SEQUENCE per DEFINITION. Ported from
// cmaj/meta/compiler.py compile.
func Compile(tree ast.Node) grammar.Grammar {
	tree = ast.Squash(tree, symGrammar, symOption, symSequence)
	tree = ast.Prune(tree, "comment", "=", "|", ",", "eol")
	tree = ast.Skip(tree, symLine, symAnchor)

	var rules []grammar.Rule
	for _, def := range tree.Children() {
		children := def.Children()
		nameTok, _ := children[0].Token()
		option := children[1]

		for _, seq := range option.Children() {
			symbols := make([]string, 0, len(seq.Children()))
			for _, anchor := range seq.Children() {
				tok, _ := anchor.Token()
				value := tok.Value
				if anchor.Key() == "string" {
					value = value[1 : len(value)-1]
				}
				symbols = append(symbols, value)
			}
			rules = append(rules, grammar.NewRule(nameTok.Value, symbols))
		}
	}

	return grammar.New(rules...)
}

// CompileSource scans, parses, and compiles grammar-definition source text
// in one step.
func CompileSource(lines []string) (grammar.Grammar, error) {
	tree, err := Parse(lines)
	if err != nil {
		return grammar.Grammar{}, err
	}
	return Compile(tree), nil
}
