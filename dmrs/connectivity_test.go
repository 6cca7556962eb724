package dmrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func chain(t *testing.T) *Graph {
	t.Helper()
	g := NewGraph()
	g.Nodes["A"] = &Node{NodeID: "A"}
	g.Nodes["B"] = &Node{NodeID: "B"}
	g.Nodes["C"] = &Node{NodeID: "C"}
	g.Edges = []*Edge{
		{From: "A", To: "B", Label: "X"},
		{From: "B", To: "C", Label: "Y"},
	}
	return g
}

func TestConnectedChain(t *testing.T) {
	g := chain(t)
	assert.True(t, Connected(g, nil, nil))
}

func TestDisconnectedWhenMiddleRemoved(t *testing.T) {
	g := chain(t)
	removed := map[string]bool{"B": true}
	assert.False(t, Connected(g, removed, nil))
}

func TestIgnoreMasksUnreachable(t *testing.T) {
	g := chain(t)
	removed := map[string]bool{"B": true}
	ignore := map[string]bool{"C": true}
	assert.True(t, Connected(g, removed, ignore))
}
