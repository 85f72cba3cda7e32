package lexical

import (
	"fmt"

	"github.com/kestrelparse/cmaj/internal/ast"
)

// ScannerError is raised when no matcher matches at a source position. It
// names the offending position and character, per spec §7.
type ScannerError struct {
	Line   int
	Column int
	Char   rune
}

func (e *ScannerError) Error() string {
	return fmt.Sprintf("%d:%d unexpected token: %q", e.Line, e.Column, e.Char)
}

// Matcher pairs a terminal symbol name with the regex that recognizes it.
type Matcher struct {
	Key   string
	Regex Regex
}

// NewMatcher builds a Matcher. arg may be a string literal or a Regex.
func NewMatcher(key string, arg strOrRegex) Matcher {
	return Matcher{Key: key, Regex: unpackArg(arg)}
}

// match attempts to recognize sequence (the remainder of the current line)
// at (lineIndex, columnIndex), returning a leaf ast.Node on success.
func (m Matcher) match(lineIndex, columnIndex int, sequence string) (ast.Node, bool) {
	result, ok := m.Regex.Match(sequence)
	if !ok {
		return ast.Node{}, false
	}
	tok := ast.NewToken(lineIndex, columnIndex, result)
	return ast.Leaf(m.Key, tok), true
}

// Scan tokenizes lines against an ordered list of matchers. For each line,
// starting at column 0, the first matcher whose regex matches the remaining
// line wins; the cursor advances by the matched length. Scanning proceeds
// line by line independently, with no cross-line state. Ported from
// cmaj/lexical/scanner.py scan/scan_line/scan_next.
func Scan(lines []string, matchers []Matcher) ([]ast.Node, error) {
	var nodes []ast.Node
	for lineIndex, line := range lines {
		lineNodes, err := scanLine(lineIndex, line, matchers)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, lineNodes...)
	}
	return nodes, nil
}

func scanLine(lineIndex int, line string, matchers []Matcher) ([]ast.Node, error) {
	var nodes []ast.Node
	columnIndex := 0
	for columnIndex < len(line) {
		node, err := scanNext(lineIndex, columnIndex, line[columnIndex:], matchers)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
		columnIndex += node.Len()
	}
	return nodes, nil
}

func scanNext(lineIndex, columnIndex int, sequence string, matchers []Matcher) (ast.Node, error) {
	for _, m := range matchers {
		if node, ok := m.match(lineIndex, columnIndex, sequence); ok {
			if node.Len() == 0 {
				panic("lexical: matcher " + m.Key + " produced a zero-length match")
			}
			return node, nil
		}
	}
	return ast.Node{}, &ScannerError{Line: lineIndex, Column: columnIndex, Char: rune(sequence[0])}
}
