package lr1

import (
	"fmt"
	"sort"

	"github.com/kestrelparse/cmaj/internal/grammar"
)

// Graph is the canonical collection of LR(1) closures and the transitions
// between them. The initial closure is always index 0, per spec.md's graph
// determinism requirement. Ported from cmaj/parser/graph.py.
type Graph struct {
	closures []Closure
	index    map[string]int
	edges    []map[string]int
}

// NumClosures returns the number of closures in the graph.
func (g Graph) NumClosures() int {
	return len(g.closures)
}

// Closures returns the graph's closures, indexed by their graph position.
func (g Graph) Closures() []Closure {
	out := make([]Closure, len(g.closures))
	copy(out, g.closures)
	return out
}

// ClosureAt returns the closure at index.
func (g Graph) ClosureAt(index int) Closure {
	return g.closures[index]
}

// IndexOf returns the graph index of closure, if present.
func (g Graph) IndexOf(closure Closure) (int, bool) {
	idx, ok := g.index[closure.Key()]
	return idx, ok
}

// Successor returns the index reached from the closure at sourceIndex by
// shifting/going to on symbol, if such an edge exists.
func (g Graph) Successor(sourceIndex int, symbol string) (int, bool) {
	idx, ok := g.edges[sourceIndex][symbol]
	return idx, ok
}

func (g *Graph) addClosure(c Closure) int {
	if idx, ok := g.IndexOf(c); ok {
		return idx
	}
	idx := len(g.closures)
	g.closures = append(g.closures, c)
	g.index[c.Key()] = idx
	g.edges = append(g.edges, map[string]int{})
	return idx
}

func (g *Graph) addEdge(sourceIndex int, symbol string, targetIndex int) {
	if existing, ok := g.edges[sourceIndex][symbol]; ok {
		if existing == targetIndex {
			return
		}
		panic(fmt.Sprintf("lr1: duplicate outgoing edge for symbol %q from closure %d", symbol, sourceIndex))
	}
	g.edges[sourceIndex][symbol] = targetIndex
}

// GraphFor builds the canonical LR(1) closure graph for g, starting from the
// closure of g's augmented start item. Panics if g is not augmented — that
// precondition is a programmer error, not a data error. Ported from
// cmaj/parser/graph.py graph_for.
func GraphFor(g grammar.Grammar) Graph {
	if !g.IsAugmented() {
		panic("lr1: grammar must be augmented before building a closure graph")
	}

	graph := Graph{index: map[string]int{}}
	start := ClosureFor(g, StartState(g))
	graph.addClosure(start)

	queue := []Closure{start}
	for len(queue) > 0 {
		source := queue[0]
		queue = queue[1:]
		sourceIdx, _ := graph.IndexOf(source)

		successors := SuccessorsFor(g, source)
		symbols := make([]string, 0, len(successors))
		for sym := range successors {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)

		for _, sym := range symbols {
			target := successors[sym]
			_, alreadyPresent := graph.IndexOf(target)
			targetIdx := graph.addClosure(target)
			graph.addEdge(sourceIdx, sym, targetIdx)
			if !alreadyPresent {
				queue = append(queue, target)
			}
		}
	}

	return graph
}
