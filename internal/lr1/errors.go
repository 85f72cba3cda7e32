package lr1

import "fmt"

// ConflictError reports that two different actions were both legally
// derivable for the same (state, symbol) table cell — the table cannot
// unambiguously drive a shift/reduce parse. Ported from
// cmaj/parser/table.py TableConflictError.
type ConflictError struct {
	State  int
	Symbol string
	First  Action
	Second Action
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("lr1: conflict in state %d on symbol %q: %s vs %s", e.State, e.Symbol, e.First, e.Second)
}

// ParserError reports a failure encountered while driving a token stream
// through a parse table: an unexpected token, a malformed reduction, or
// leftover state at end of input. Ported from cmaj/parser/lr1.py ParseError.
type ParserError struct {
	msg string
}

func (e *ParserError) Error() string {
	return e.msg
}

func newParserError(format string, args ...interface{}) *ParserError {
	return &ParserError{msg: fmt.Sprintf(format, args...)}
}
