package dmrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBasic(t *testing.T) {
	xmlDoc := []byte(`<dmrs cfrom="0" cto="10">
<node nodeid="10" cfrom="0" cto="3" tokalign="0"><realpred lemma="cat" pos="n"/><sortinfo num="sg" pers="3"/></node>
<node nodeid="20" cfrom="4" cto="10"><gpred>def_q</gpred></node>
<link from="20" to="10" label="RSTR_H"><rargname>RSTR</rargname><post>H</post></link>
</dmrs>`)

	g, err := Load(xmlDoc)
	require.NoError(t, err)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)

	n10 := g.Nodes["10"]
	require.NotNil(t, n10)
	assert.False(t, n10.IsGPred)
	assert.Equal(t, "cat", n10.Lemma())
	assert.Equal(t, "n", n10.Pos())
	assert.Equal(t, []int{0}, n10.TokAlign)

	n20 := g.Nodes["20"]
	require.NotNil(t, n20)
	assert.True(t, n20.IsGPred)
	assert.Equal(t, "def_q", n20.GpredName())

	e := g.Edges[0]
	assert.Equal(t, "20", e.From)
	assert.Equal(t, "10", e.To)
	assert.Equal(t, "RSTR_H", e.Label)
	assert.Equal(t, "RSTR", e.Arg)
	assert.Equal(t, "H", e.Post)
}

func TestLoadMissingRequiredAttribute(t *testing.T) {
	_, err := Load([]byte(`<dmrs><node cfrom="0" cto="1"><realpred lemma="x" pos="n"/></node></dmrs>`))
	require.Error(t, err)
	var missing *ErrMissingAttribute
	assert.ErrorAs(t, err, &missing)
}

func TestLoadMalformedXML(t *testing.T) {
	_, err := Load([]byte(`<dmrs><node`))
	require.Error(t, err)
	var malformed *ErrMalformedXML
	assert.ErrorAs(t, err, &malformed)
}

func TestEmptyGraphPassesThrough(t *testing.T) {
	g, err := Load([]byte(`<dmrs cfrom="0" cto="0"></dmrs>`))
	require.NoError(t, err)
	assert.True(t, g.Empty())
}

func TestDumpRoundTripOrdering(t *testing.T) {
	g := NewGraph()
	g.ExtraAttrs["cfrom"] = "0"
	g.ExtraAttrs["cto"] = "5"
	g.LTop = "-1"
	g.Nodes["20"] = &Node{NodeID: "20", HasSpan: true, CFrom: 1, CTo: 2, Real: RealPred{Lemma: "b", Pos: "n"}}
	g.Nodes["10"] = &Node{NodeID: "10", HasSpan: true, CFrom: 0, CTo: 1, Real: RealPred{Lemma: "a", Pos: "n"}}
	g.Edges = []*Edge{
		{From: "20", To: "10", Label: "ARG1_NEQ"},
		{From: "10", To: "20", Label: "ARG1_NEQ"},
	}

	out := Dump(g)
	reloaded, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, out, Dump(reloaded), "dump(load(dump(g))) must equal dump(g)")

	ids := g.SortedNodeIDs()
	assert.Equal(t, []string{"10", "20"}, ids)
}

func TestHandleLTop(t *testing.T) {
	g := NewGraph()
	g.Nodes["10"] = &Node{NodeID: "10", HasSpan: true}
	g.Nodes["20"] = &Node{NodeID: "20", HasSpan: true}
	g.Edges = []*Edge{
		{From: "0", To: "10"},
		{From: "10", To: "20"},
	}

	HandleLTop(g)

	assert.Equal(t, "10", g.LTop)
	assert.Equal(t, "-1", g.Index)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "10", g.Edges[0].From)
}
