package ast

// Squash collapses chains of same-key nodes for each key in keys, applied
// bottom-up and in the order the keys are given. A K-node with exactly one
// K-child becomes that child; a K-node some of whose children are K-nodes has
// those children's children inlined in their place. Ported from
// cmaj/ast/simplify.py squash/_squash.
func Squash(n Node, keys ...string) Node {
	for _, key := range keys {
		n = squashOne(n, key)
	}
	return n
}

func squashOne(parent Node, key string) Node {
	newChildren := make([]Node, len(parent.children))
	for i, c := range parent.children {
		newChildren[i] = squashOne(c, key)
	}

	if len(newChildren) == 0 || parent.key != key {
		return rebuild(parent, newChildren)
	}

	if len(newChildren) == 1 && newChildren[0].key == key {
		return newChildren[0]
	}

	flattened := make([]Node, 0, len(newChildren))
	for _, c := range newChildren {
		if c.key != key || len(c.children) == 0 {
			flattened = append(flattened, c)
		} else {
			flattened = append(flattened, c.children...)
		}
	}
	return rebuild(parent, flattened)
}

// Prune removes every node whose key is in keys, and also removes any node
// that becomes a zero-length leaf as a result (cascading). Ported from
// cmaj/ast/simplify.py prune.
func Prune(n Node, keys ...string) Node {
	skip := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		skip[k] = struct{}{}
	}
	return prune(n, skip)
}

func prune(parent Node, skip map[string]struct{}) Node {
	kept := make([]Node, 0, len(parent.children))
	for _, c := range parent.children {
		if _, excluded := skip[c.key]; excluded {
			continue
		}
		pruned := prune(c, skip)
		if pruned.Len() > 0 {
			kept = append(kept, pruned)
		}
	}
	return rebuild(parent, kept)
}

// Skip first squashes over keys, then for each key in turn removes every
// K-node that has children by inlining those children into its parent,
// keeping any K-node that carries a token. Ported from
// cmaj/ast/simplify.py skip/_skip.
func Skip(n Node, keys ...string) Node {
	n = Squash(n, keys...)
	for _, key := range keys {
		n = skipOne(n, key)
	}
	return n
}

func skipOne(parent Node, key string) Node {
	newChildren := make([]Node, len(parent.children))
	for i, c := range parent.children {
		newChildren[i] = skipOne(c, key)
	}

	flattened := make([]Node, 0, len(newChildren))
	for _, c := range newChildren {
		if c.key != key || len(c.children) == 0 {
			flattened = append(flattened, c)
		} else {
			flattened = append(flattened, c.children...)
		}
	}
	return rebuild(parent, flattened)
}

// rebuild returns a fresh node with parent's key/token and the given
// children, preserving leaf-ness (a leaf parent is returned unchanged since
// it never has children to rebuild from).
func rebuild(parent Node, children []Node) Node {
	if parent.token != nil {
		return parent
	}
	n := Node{key: parent.key}
	n.children = children
	return n
}
