package gpredfilter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// chain builds A(10) -- B(20, gpred) -- C(30), the spec.md scenario S2
// topology: B is the sole filterable node and sits on the only path
// between A and C.
func chain(t *testing.T) *dmrs.Graph {
	t.Helper()
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", Real: dmrs.RealPred{Lemma: "a", Pos: "n"}}
	g.Nodes["20"] = &dmrs.Node{NodeID: "20", IsGPred: true, GPred: dmrs.GPred{Name: "def_q"}}
	g.Nodes["30"] = &dmrs.Node{NodeID: "30", Real: dmrs.RealPred{Lemma: "c", Pos: "n"}}
	g.Edges = []*dmrs.Edge{
		{From: "10", To: "20", Label: "RSTR_H"},
		{From: "20", To: "30", Label: "BV_NEQ"},
	}
	g.LTop = "10"
	return g
}

func TestFilterRejectsUnsafeRemoval(t *testing.T) {
	g := chain(t)
	removed := Filter(g, Options{Set: Set{"def_q": true}})
	assert.Empty(t, removed)
	assert.Len(t, g.Nodes, 3, "disconnecting removal must be refused")
}

func TestFilterAllowDisconnectedRemovesAnyway(t *testing.T) {
	g := chain(t)
	removed := Filter(g, Options{Set: Set{"def_q": true}, AllowDisconnected: true})
	assert.True(t, removed["20"])
	assert.Len(t, g.Nodes, 2)
	assert.Empty(t, g.Edges, "both edges were incident to the removed node")
	_, stillThere := g.Nodes["20"]
	assert.False(t, stillThere)
}

func TestFilterRemovesIsolatedFilterableNode(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", Real: dmrs.RealPred{Lemma: "a", Pos: "n"}}
	g.Nodes["20"] = &dmrs.Node{NodeID: "20", IsGPred: true, GPred: dmrs.GPred{Name: "def_q"}}
	// No edge at all: removing the unconnected filterable node 20 cannot
	// make the rest of the graph any less connected, so it is accepted
	// even without AllowDisconnected.
	g.LTop = "10"

	removed := Filter(g, Options{Set: Set{"def_q": true}})
	assert.True(t, removed["20"])
	assert.Len(t, g.Nodes, 1)
}

func TestFilterReassignsLTopToSoleChild(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", IsGPred: true, GPred: dmrs.GPred{Name: "def_q"}}
	g.Nodes["20"] = &dmrs.Node{NodeID: "20", Real: dmrs.RealPred{Lemma: "x", Pos: "v"}}
	g.Edges = []*dmrs.Edge{
		{From: "10", To: "20", Label: "ARG1_NEQ"},
	}
	g.LTop = "10"
	g.Index = "-1"

	removed := Filter(g, Options{Set: Set{"def_q": true}, HandleLTop: true, AllowDisconnected: true})
	require.True(t, removed["10"])
	assert.Equal(t, "20", g.LTop)
}

func TestParseFilterFileAndFilterIntegration(t *testing.T) {
	set, err := ParseFilterFile(strings.NewReader("def_q\tno\nproper_q\tyes\n# comment\n\nudef_q\tno\n"))
	require.NoError(t, err)
	assert.True(t, set["def_q"])
	assert.True(t, set["udef_q"])
	assert.False(t, set["proper_q"])
}
