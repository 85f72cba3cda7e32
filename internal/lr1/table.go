package lr1

import (
	"fmt"

	"github.com/kestrelparse/cmaj/internal/grammar"
)

// ActionKind distinguishes the four legal table-cell actions.
type ActionKind int

const (
	// ActionShift consumes the current token and moves to Index.
	ActionShift ActionKind = iota
	// ActionReduce pops len(rule.Symbols) stack entries, applies the rule at
	// Index, and pushes the result.
	ActionReduce
	// ActionGoto moves to Index after a reduction exposes a nonterminal.
	ActionGoto
	// ActionAccept ends a successful parse; Index is the augmented start
	// rule's index.
	ActionAccept
)

func (k ActionKind) String() string {
	switch k {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionGoto:
		return "goto"
	case ActionAccept:
		return "accept"
	default:
		return "unknown"
	}
}

// Action is a single parse table cell.
type Action struct {
	Kind  ActionKind
	Index int
}

// Equal reports whether two actions are the identical action — used to tell
// a conflict (same cell, different action) from a harmless repeat write.
func (a Action) Equal(other Action) bool {
	return a.Kind == other.Kind && a.Index == other.Index
}

func (a Action) String() string {
	return fmt.Sprintf("%s %d", a.Kind, a.Index)
}

// Table is an LR(1) parse table: rows are closure-graph states, columns are
// grammar symbols (terminals and nonterminals, plus the end-of-input
// marker). Ported from cmaj/parser/table.py ParseTable.
type Table struct {
	numRows int
	columns map[string][]*Action
}

func newTable(numRows int, symbols []string) Table {
	columns := make(map[string][]*Action)
	addColumn := func(symbol string) {
		if symbol == grammar.AugmentedStart {
			return
		}
		if _, ok := columns[symbol]; ok {
			return
		}
		columns[symbol] = make([]*Action, numRows)
	}
	for _, s := range symbols {
		addColumn(s)
	}
	addColumn(grammar.AugmentedEOF)
	return Table{numRows: numRows, columns: columns}
}

// NumRows returns the number of states in the table.
func (t Table) NumRows() int {
	return t.numRows
}

// NumColumns returns the number of distinct symbols the table has a column
// for.
func (t Table) NumColumns() int {
	return len(t.columns)
}

// Action returns the action for (row, column), if one has been set.
func (t Table) Action(row int, column string) (Action, bool) {
	col, ok := t.columns[column]
	if !ok || row < 0 || row >= len(col) || col[row] == nil {
		return Action{}, false
	}
	return *col[row], true
}

func (t *Table) setAction(row int, column string, action Action) error {
	col, ok := t.columns[column]
	if !ok {
		panic(fmt.Sprintf("lr1: table has no column for symbol %q", column))
	}
	if current := col[row]; current != nil {
		if current.Equal(action) {
			return nil
		}
		return &ConflictError{State: row, Symbol: column, First: *current, Second: action}
	}
	a := action
	col[row] = &a
	return nil
}

// TableFor derives the parse table implied by graph. Returns a
// *ConflictError if the grammar is not LR(1): some state requires two
// different actions on the same symbol. Ported from
// cmaj/parser/table.py table_for.
func TableFor(g grammar.Grammar, graph Graph) (Table, error) {
	table := newTable(graph.NumClosures(), g.Symbols())

	for row, closure := range graph.Closures() {
		for _, state := range closure.States() {
			res := resolve(state, g)

			if res.reducible() {
				if res.key == grammar.AugmentedStart {
					if err := table.setAction(row, grammar.AugmentedEOF, Action{Kind: ActionAccept, Index: state.RuleIndex}); err != nil {
						return Table{}, err
					}
					continue
				}
				for la := range state.Lookaheads {
					if err := table.setAction(row, la, Action{Kind: ActionReduce, Index: state.RuleIndex}); err != nil {
						return Table{}, err
					}
				}
				continue
			}

			symbol := res.nextSymbol()
			target, ok := graph.Successor(row, symbol)
			if !ok {
				panic(fmt.Sprintf("lr1: closure graph has no successor for state %d on symbol %q", row, symbol))
			}

			kind := ActionGoto
			if g.IsTerminal(symbol) {
				kind = ActionShift
			}
			if err := table.setAction(row, symbol, Action{Kind: kind, Index: target}); err != nil {
				return Table{}, err
			}
		}
	}

	return table, nil
}
