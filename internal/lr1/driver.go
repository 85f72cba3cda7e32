package lr1

import (
	"github.com/kestrelparse/cmaj/internal/ast"
	"github.com/kestrelparse/cmaj/internal/grammar"
)

type frame struct {
	row  int
	node ast.Node
}

// Parse drives tokens through table according to g's rules, shifting and
// reducing until the augmented start rule accepts. tokens must already be
// leaf Nodes (as produced by the lexical scanner); Parse appends the
// end-of-input sentinel itself. Ported from cmaj/parser/lr1.py parse.
func Parse(tokens []ast.Node, g grammar.Grammar, table Table) (ast.Node, error) {
	input := make([]ast.Node, 0, len(tokens)+1)
	input = append(input, tokens...)
	input = append(input, ast.Leaf(grammar.AugmentedEOF, ast.Token{}))

	stack := []frame{{row: 0}}
	idx := 0

	for {
		top := stack[len(stack)-1]
		cur := input[idx]

		action, ok := table.Action(top.row, cur.Key())
		if !ok {
			return ast.Node{}, newParserError("unexpected token %s in state %d", cur, top.row)
		}

		switch action.Kind {
		case ActionShift:
			stack = append(stack, frame{row: action.Index, node: cur})
			idx++

		case ActionReduce:
			rule := g.RuleAt(action.Index)
			n := len(rule.Symbols)
			if len(stack)-1 < n {
				return ast.Node{}, newParserError("stack underflow reducing rule %s", rule)
			}

			base := len(stack) - n
			children := make([]ast.Node, n)
			for i := 0; i < n; i++ {
				f := stack[base+i]
				if f.node.Key() != rule.Symbols[i] {
					return ast.Node{}, newParserError("symbol mismatch reducing rule %s: expected %q at position %d, got %q", rule, rule.Symbols[i], i, f.node.Key())
				}
				children[i] = f.node
			}
			stack = stack[:base]

			newNode := ast.Internal(rule.Key, children...)
			gotoRow := stack[len(stack)-1].row
			gotoAction, ok := table.Action(gotoRow, rule.Key)
			if !ok || gotoAction.Kind != ActionGoto {
				panic("lr1: table has no goto entry after reducing rule " + rule.String())
			}
			stack = append(stack, frame{row: gotoAction.Index, node: newNode})

		case ActionAccept:
			if len(stack) != 2 {
				return ast.Node{}, newParserError("parse accepted with %d node(s) left on the stack", len(stack)-1)
			}
			return stack[1].node, nil

		default:
			panic("lr1: unknown action kind")
		}
	}
}
