package mtprep

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

func TestApplyRewriteTable(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", IsGPred: true, GPred: dmrs.GPred{Name: "discourse_x"}}
	g.Nodes["20"] = &dmrs.Node{NodeID: "20", IsGPred: true, GPred: dmrs.GPred{Name: "proper_q"}}
	g.Nodes["30"] = &dmrs.Node{NodeID: "30", Real: dmrs.RealPred{Lemma: "dog", Pos: "n"}}

	table := MapRewriteTable{"discourse_x": "discourse"}
	ApplyRewriteTable(g, table)

	assert.Equal(t, "discourse", g.Nodes["10"].GPred.Name)
	assert.Equal(t, "proper_q", g.Nodes["20"].GPred.Name, "names absent from the table are untouched")
	assert.Equal(t, "dog", g.Nodes["30"].Lemma(), "realpred nodes are never rewritten")
}

func TestApplyRewriteTableNilIsNoop(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", IsGPred: true, GPred: dmrs.GPred{Name: "def_q"}}
	ApplyRewriteTable(g, nil)
	assert.Equal(t, "def_q", g.Nodes["10"].GPred.Name)
}
