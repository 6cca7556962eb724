package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ldemailly/dmrspreprocess/dmrs"
	"github.com/ldemailly/dmrspreprocess/gpredfilter"
	"github.com/ldemailly/dmrspreprocess/label"
	"github.com/ldemailly/dmrspreprocess/wordmap"
)

// buildGraph constructs: node 10 (verb "run", pos v) -ARG1_NEQ-> node 20
// (noun "dog"), rooted by a ghost LTOP link into 10, both tokens aligned.
func buildGraph() *dmrs.Graph {
	g := dmrs.NewGraph()
	// untok will be "dog runs": d(0)o(1)g(2) (3)r(4)u(5)n(6)s(7)
	g.Nodes["10"] = &dmrs.Node{
		NodeID: "10", HasSpan: true, CFrom: 4, CTo: 7,
		Real: dmrs.RealPred{Lemma: "run", Pos: "v"},
	}
	g.Nodes["20"] = &dmrs.Node{
		NodeID: "20", HasSpan: true, CFrom: 0, CTo: 2,
		Real: dmrs.RealPred{Lemma: "dog", Pos: "n"},
	}
	g.Edges = []*dmrs.Edge{
		{From: "0", To: "10", Arg: "", Post: ""},
		{From: "10", To: "20", Arg: "ARG1", Post: "NEQ", Label: "ARG1_NEQ"},
	}
	g.LTop = "-1"
	return g
}

func TestProcessRunsFullPipelineAndLabelsNodes(t *testing.T) {
	g := buildGraph()
	tok := []string{"dog", "runs"}

	stats := Process(g, "dog runs", tok, AllStages(), Resources{
		LabelOptions: label.Options{CargClean: true},
		LabelWMap:    wordmap.NewWMap(),
		TokWMap:      wordmap.NewWMap(),
	})

	assert.Equal(t, "10", g.LTop, "the ghost LTOP link is resolved to a real node id")
	assert.Equal(t, "_run_v", g.Nodes["10"].Label)
	assert.Equal(t, "_dog_n_3_sg", g.Nodes["20"].Label)
	assert.NotEmpty(t, g.Nodes["10"].LabelIdx)
	assert.Equal(t, "dog runs", g.Untok)
	assert.Equal(t, "dog runs", g.Tok)
	assert.False(t, stats.CycleBreak.HasCycle)
}

func TestProcessHonorsDisabledStages(t *testing.T) {
	g := buildGraph()

	Process(g, "", nil, Stages{}, Resources{})

	assert.Equal(t, "", g.Nodes["10"].Label, "labeler did not run")
	assert.Equal(t, "-1", g.LTop, "ltop handling did not run")
}

func TestProcessAppliesGpredFilterWhenSetProvided(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", Real: dmrs.RealPred{Pos: "n"}}
	g.Nodes["20"] = &dmrs.Node{NodeID: "20", IsGPred: true, GPred: dmrs.GPred{Name: "def_q"}}
	g.Edges = []*dmrs.Edge{{From: "20", To: "10", Label: "RSTR_H"}}
	g.LTop = "-1"

	Process(g, "", nil, Stages{GpredFilter: true}, Resources{
		GpredFilterSet:    gpredfilter.Set{"def_q": true},
		AllowDisconnected: true,
	})

	_, ok := g.Nodes["20"]
	assert.False(t, ok, "the filterable gpred node was removed")
}
