package cyclebreak

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

func node(id, pos string) *dmrs.Node {
	return &dmrs.Node{NodeID: id, Real: dmrs.RealPred{Lemma: id, Pos: pos}}
}

func TestDetectNoCycleOnChain(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = node("10", "v")
	g.Nodes["20"] = node("20", "n")
	g.Edges = []*dmrs.Edge{{From: "10", To: "20", Label: "ARG1_NEQ"}}

	assert.Nil(t, Detect(g))
}

func TestDetectDirectedCycle(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = node("10", "v")
	g.Nodes["20"] = node("20", "v")
	g.Edges = []*dmrs.Edge{
		{From: "10", To: "20", Label: "ARG1_NEQ"},
		{From: "20", To: "10", Label: "ARG2_NEQ"},
	}

	c := Detect(g)
	assert.True(t, bool(c["10"]))
	assert.True(t, bool(c["20"]))
}

func TestDetectUndirectedCycleWhenNoDirectedOne(t *testing.T) {
	// A triangle whose edges (10->20, 10->30, 20->30) form no directed
	// cycle is still a 3-node undirected cycle.
	g := dmrs.NewGraph()
	g.Nodes["10"] = node("10", "v")
	g.Nodes["20"] = node("20", "n")
	g.Nodes["30"] = node("30", "n")
	g.Edges = []*dmrs.Edge{
		{From: "10", To: "20", Label: "ARG1_NEQ"},
		{From: "10", To: "30", Label: "ARG2_NEQ"},
		{From: "20", To: "30", Label: "EQ"},
	}

	c := Detect(g)
	assert.Len(t, c, 3)
}

func TestProcessEQBreaksCycle(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = node("10", "v")
	g.Nodes["20"] = node("20", "n")
	g.Nodes["30"] = node("30", "n")
	g.Edges = []*dmrs.Edge{
		{From: "10", To: "20", Label: "ARG1_NEQ"},
		{From: "10", To: "30", Label: "ARG2_NEQ"},
		{From: "20", To: "30", Label: "EQ"},
	}

	stats := Remove(g)
	assert.Nil(t, Detect(g))
	assert.Equal(t, 1, stats.EQ)
	assert.Equal(t, 1, stats.Cycle)
}

func TestRemoveDefaultFallback(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", Real: dmrs.RealPred{Lemma: "a", Pos: "n"}, TokAlign: []int{0}}
	g.Nodes["20"] = &dmrs.Node{NodeID: "20", Real: dmrs.RealPred{Lemma: "b", Pos: "n"}, TokAlign: []int{5}}
	g.Edges = []*dmrs.Edge{
		{From: "10", To: "20", Label: "ARG1_NEQ"},
		{From: "20", To: "10", Label: "ARG2_NEQ"},
	}

	stats := Remove(g)
	assert.Nil(t, Detect(g))
	assert.Equal(t, 1, stats.Default)
	assert.True(t, stats.DefOrNotBroken)
}

func TestRemoveGivesUpWhenNoTokenAlignmentAvailable(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = node("10", "n")
	g.Nodes["20"] = node("20", "n")
	g.Edges = []*dmrs.Edge{
		{From: "10", To: "20", Label: "ARG1_NEQ"},
		{From: "20", To: "10", Label: "ARG2_NEQ"},
	}

	stats := Remove(g)
	assert.NotNil(t, Detect(g), "no pattern can match, default also can't cut without alignment")
	assert.Equal(t, 1, stats.NoneDetected)
	assert.True(t, stats.DefOrNotBroken)
}
