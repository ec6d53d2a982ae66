// Package link chains nodes into loops and open chains through
// previous/next relations, and pairs nodes that share an edge with opposite
// direction through the negate relation.
//
// Nodes live in an arena owned by Graph and are addressed by ID. Relations
// are plain IDs, so a node never owns its neighbours.
package link

// ID addresses a node in a Graph.
type ID int

// None is the absent relation.
const None ID = -1

type node[T any] struct {
	value  T
	prev   ID
	next   ID
	negate ID
}

// Graph is an arena of linked nodes carrying values of type T.
type Graph[T any] struct {
	nodes []node[T]
}

// New returns an empty graph.
func New[T any]() *Graph[T] {
	return &Graph[T]{}
}

// Add appends an unlinked node holding v.
func (g *Graph[T]) Add(v T) ID {
	g.nodes = append(g.nodes, node[T]{value: v, prev: None, next: None, negate: None})
	return ID(len(g.nodes) - 1)
}

// Len returns the number of nodes.
func (g *Graph[T]) Len() int { return len(g.nodes) }

// IDs returns every node id in insertion order.
func (g *Graph[T]) IDs() []ID {
	ids := make([]ID, len(g.nodes))
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Contains reports whether id addresses a node of g.
func (g *Graph[T]) Contains(id ID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Value returns the node's value.
func (g *Graph[T]) Value(id ID) T { return g.nodes[id].value }

// Ptr returns a pointer to the node's value, valid until the next Add.
func (g *Graph[T]) Ptr(id ID) *T { return &g.nodes[id].value }

// Set replaces the node's value.
func (g *Graph[T]) Set(id ID, v T) { g.nodes[id].value = v }

// ============================================================
// Relations
// ============================================================

// SetPrevious records b as the predecessor of a. The reverse relation is not
// touched.
func (g *Graph[T]) SetPrevious(a, b ID) { g.nodes[a].prev = b }

// SetNext records b as the successor of a. The reverse relation is not
// touched.
func (g *Graph[T]) SetNext(a, b ID) { g.nodes[a].next = b }

// SetNegate records b as the negate partner of a, in one direction only.
func (g *Graph[T]) SetNegate(a, b ID) { g.nodes[a].negate = b }

// PairNegate records a and b as each other's negate partner.
func (g *Graph[T]) PairNegate(a, b ID) {
	g.nodes[a].negate = b
	g.nodes[b].negate = a
}

func (g *Graph[T]) Previous(id ID) (ID, bool) { return g.rel(g.nodes[id].prev) }
func (g *Graph[T]) Next(id ID) (ID, bool)     { return g.rel(g.nodes[id].next) }
func (g *Graph[T]) Negate(id ID) (ID, bool)   { return g.rel(g.nodes[id].negate) }

func (g *Graph[T]) rel(id ID) (ID, bool) {
	if id == None {
		return None, false
	}
	return id, true
}

// Detach clears every relation of id. Neighbours still pointing at id are
// left as they are.
func (g *Graph[T]) Detach(id ID) {
	n := &g.nodes[id]
	n.prev, n.next, n.negate = None, None, None
}

// ReverseConnect swaps the previous and next relations of id.
func (g *Graph[T]) ReverseConnect(id ID) {
	n := &g.nodes[id]
	n.prev, n.next = n.next, n.prev
}

// ============================================================
// Loops
// ============================================================

// ConnectLoop links ids into one closed loop in the given order: each node's
// next is the following id and the last wraps to the first. Geometric
// adjacency is not checked.
func (g *Graph[T]) ConnectLoop(ids []ID) {
	n := len(ids)
	for i, id := range ids {
		nx := ids[(i+1)%n]
		g.nodes[id].next = nx
		g.nodes[nx].prev = id
	}
}

// ConnectChain links ids into an open chain in the given order.
func (g *Graph[T]) ConnectChain(ids []ID) {
	for i := 0; i+1 < len(ids); i++ {
		g.nodes[ids[i]].next = ids[i+1]
		g.nodes[ids[i+1]].prev = ids[i]
	}
}

// Loop returns the loop or chain containing start.
//
// For a closed loop start comes first and the members follow next. For an
// open chain the members reached backwards from start through previous are
// prepended, so the result runs from the chain head to its tail. A malformed
// relation that re-enters a member stops the walk at the first repeat.
func (g *Graph[T]) Loop(start ID) []ID {
	seen := map[ID]struct{}{start: {}}
	forward := []ID{start}

	cur := start
	for {
		nx, ok := g.Next(cur)
		if !ok {
			break
		}
		if nx == start {
			return forward
		}
		if _, dup := seen[nx]; dup {
			return forward
		}
		seen[nx] = struct{}{}
		forward = append(forward, nx)
		cur = nx
	}

	var backward []ID
	cur = start
	for {
		pv, ok := g.Previous(cur)
		if !ok {
			break
		}
		if _, dup := seen[pv]; dup {
			break
		}
		seen[pv] = struct{}{}
		backward = append(backward, pv)
		cur = pv
	}
	if len(backward) == 0 {
		return forward
	}

	out := make([]ID, 0, len(backward)+len(forward))
	for i := len(backward) - 1; i >= 0; i-- {
		out = append(out, backward[i])
	}
	return append(out, forward...)
}

// IsClosed reports whether following next from start returns to start.
func (g *Graph[T]) IsClosed(start ID) bool {
	seen := map[ID]struct{}{start: {}}
	cur := start
	for {
		nx, ok := g.Next(cur)
		if !ok {
			return false
		}
		if nx == start {
			return true
		}
		if _, dup := seen[nx]; dup {
			return false
		}
		seen[nx] = struct{}{}
		cur = nx
	}
}

// Loops partitions ids into the loops and chains the relations induce, in
// the order their first member appears in ids. Members outside ids that a
// relation reaches are kept, so every loop is complete.
func (g *Graph[T]) Loops(ids []ID) [][]ID {
	visited := make(map[ID]struct{}, len(ids))
	var loops [][]ID
	for _, id := range ids {
		if _, ok := visited[id]; ok {
			continue
		}
		loop := g.Loop(id)
		for _, m := range loop {
			visited[m] = struct{}{}
		}
		loops = append(loops, loop)
	}
	return loops
}

// ReverseLoop reverses the traversal direction of the loop containing start
// by swapping the relations of each member.
func (g *Graph[T]) ReverseLoop(start ID) {
	for _, id := range g.Loop(start) {
		g.ReverseConnect(id)
	}
}
