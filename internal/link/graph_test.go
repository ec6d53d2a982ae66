package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGraph(n int) (*Graph[string], []ID) {
	g := New[string]()
	ids := make([]ID, n)
	for i := range ids {
		ids[i] = g.Add(string(rune('a' + i)))
	}
	return g, ids
}

func TestAddStartsUnlinked(t *testing.T) {
	g, ids := newGraph(2)
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, ids, g.IDs())
	assert.Equal(t, "b", g.Value(ids[1]))

	_, ok := g.Next(ids[0])
	assert.False(t, ok)
	_, ok = g.Previous(ids[0])
	assert.False(t, ok)
	_, ok = g.Negate(ids[0])
	assert.False(t, ok)

	assert.True(t, g.Contains(ids[1]))
	assert.False(t, g.Contains(None))
	assert.False(t, g.Contains(ID(2)))
}

func TestSetAndPtr(t *testing.T) {
	g, ids := newGraph(1)
	g.Set(ids[0], "z")
	assert.Equal(t, "z", g.Value(ids[0]))
	*g.Ptr(ids[0]) = "y"
	assert.Equal(t, "y", g.Value(ids[0]))
}

func TestConnectLoopVisitsEveryMemberOnce(t *testing.T) {
	for n := 1; n <= 6; n++ {
		g, ids := newGraph(n)
		g.ConnectLoop(ids)

		for _, start := range ids {
			loop := g.Loop(start)
			require.Len(t, loop, n)
			assert.Equal(t, start, loop[0])
			assert.ElementsMatch(t, ids, loop)
			assert.True(t, g.IsClosed(start))

			// Following next n times returns to the start.
			cur := start
			for range n {
				cur, _ = g.Next(cur)
			}
			assert.Equal(t, start, cur)
		}
	}
}

func TestLoopStartsAtStart(t *testing.T) {
	g, ids := newGraph(4)
	g.ConnectLoop(ids)
	assert.Equal(t, []ID{ids[2], ids[3], ids[0], ids[1]}, g.Loop(ids[2]))
}

func TestLoopOpenChainPrependsBackwardWalk(t *testing.T) {
	g, ids := newGraph(5)
	g.ConnectChain(ids)

	for _, start := range ids {
		assert.Equal(t, ids, g.Loop(start))
		assert.False(t, g.IsClosed(start))
	}

	head := 0
	tail := 0
	for _, id := range ids {
		if _, ok := g.Previous(id); !ok {
			head++
		}
		if _, ok := g.Next(id); !ok {
			tail++
		}
	}
	assert.Equal(t, 1, head)
	assert.Equal(t, 1, tail)
}

func TestLoopSingleUnlinkedNode(t *testing.T) {
	g, ids := newGraph(1)
	assert.Equal(t, []ID{ids[0]}, g.Loop(ids[0]))
}

func TestLoopStopsOnMalformedRelation(t *testing.T) {
	g, ids := newGraph(3)
	// a -> b -> c -> b never returns to a.
	g.SetNext(ids[0], ids[1])
	g.SetNext(ids[1], ids[2])
	g.SetNext(ids[2], ids[1])
	assert.Equal(t, []ID{ids[0], ids[1], ids[2]}, g.Loop(ids[0]))
	assert.False(t, g.IsClosed(ids[0]))
}

func TestLoopsPartition(t *testing.T) {
	g, ids := newGraph(8)
	g.ConnectLoop([]ID{ids[0], ids[2], ids[4]})
	g.ConnectChain([]ID{ids[1], ids[3]})
	g.ConnectLoop([]ID{ids[5], ids[6]})
	// ids[7] stays alone.

	shuffled := []ID{ids[3], ids[7], ids[4], ids[0], ids[6], ids[1], ids[2], ids[5]}
	loops := g.Loops(shuffled)

	require.Len(t, loops, 4)
	assert.Equal(t, []ID{ids[1], ids[3]}, loops[0])
	assert.Equal(t, []ID{ids[7]}, loops[1])
	assert.Equal(t, []ID{ids[4], ids[0], ids[2]}, loops[2])
	assert.Equal(t, []ID{ids[6], ids[5]}, loops[3])

	seen := map[ID]int{}
	for _, l := range loops {
		for _, id := range l {
			seen[id]++
		}
	}
	assert.Len(t, seen, len(ids))
	for id, n := range seen {
		assert.Equal(t, 1, n, "node %d", id)
	}
}

func TestLoopsEmpty(t *testing.T) {
	g, _ := newGraph(0)
	assert.Empty(t, g.Loops(nil))
}

func TestReverseConnect(t *testing.T) {
	g, ids := newGraph(3)
	g.SetPrevious(ids[1], ids[0])
	g.SetNext(ids[1], ids[2])

	g.ReverseConnect(ids[1])
	pv, _ := g.Previous(ids[1])
	nx, _ := g.Next(ids[1])
	assert.Equal(t, ids[2], pv)
	assert.Equal(t, ids[0], nx)
}

func TestReverseLoop(t *testing.T) {
	g, ids := newGraph(4)
	g.ConnectLoop(ids)
	g.ReverseLoop(ids[0])

	assert.Equal(t, []ID{ids[0], ids[3], ids[2], ids[1]}, g.Loop(ids[0]))
	assert.True(t, g.IsClosed(ids[0]))
}

func TestNegate(t *testing.T) {
	g, ids := newGraph(3)
	g.SetNegate(ids[0], ids[1])
	got, ok := g.Negate(ids[0])
	assert.True(t, ok)
	assert.Equal(t, ids[1], got)
	_, ok = g.Negate(ids[1])
	assert.False(t, ok)

	g.PairNegate(ids[1], ids[2])
	a, _ := g.Negate(ids[1])
	b, _ := g.Negate(ids[2])
	assert.Equal(t, ids[2], a)
	assert.Equal(t, ids[1], b)

	// Negate plays no part in traversal.
	assert.Equal(t, []ID{ids[1]}, g.Loop(ids[1]))
}

func TestDetach(t *testing.T) {
	g, ids := newGraph(3)
	g.ConnectLoop(ids)
	g.PairNegate(ids[0], ids[1])
	g.Detach(ids[0])

	_, ok := g.Next(ids[0])
	assert.False(t, ok)
	_, ok = g.Previous(ids[0])
	assert.False(t, ok)
	_, ok = g.Negate(ids[0])
	assert.False(t, ok)
	assert.Equal(t, []ID{ids[0]}, g.Loop(ids[0]))
}
