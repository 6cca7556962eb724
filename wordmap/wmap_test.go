package wordmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

func TestGetOrAddIsStable(t *testing.T) {
	w := NewWMap()
	first := w.GetOrAdd("dog")
	second := w.GetOrAdd("cat")
	assert.Equal(t, first, w.GetOrAdd("dog"))
	assert.NotEqual(t, first, second)
}

func TestWriteSortsByID(t *testing.T) {
	w := NewWMap()
	w.GetOrAdd("b")
	w.GetOrAdd("a")

	var buf strings.Builder
	require.NoError(t, w.Write(&buf))
	assert.Equal(t, "0\tb\n1\ta\n", buf.String())
}

func TestLoadWMapRoundTrip(t *testing.T) {
	w := NewWMap()
	w.GetOrAdd("x")
	w.GetOrAdd("y")
	var buf strings.Builder
	require.NoError(t, w.Write(&buf))

	reloaded, err := LoadWMap(strings.NewReader(buf.String()))
	require.NoError(t, err)
	id, ok := reloaded.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, 1, id)

	assert.Equal(t, 2, reloaded.GetOrAdd("z"), "new values continue from the loaded max id")
}

func TestBuildFromVocabOrdersByDescendingFrequencyThenAlpha(t *testing.T) {
	w, err := BuildFromVocab(strings.NewReader("_dog_n_3_sg\t5\n_cat_n_3_sg\t5\n_run_v\t2\n"))
	require.NoError(t, err)

	dog, ok := w.Lookup("_dog_n_3_sg")
	require.True(t, ok)
	cat, ok := w.Lookup("_cat_n_3_sg")
	require.True(t, ok)
	run, ok := w.Lookup("_run_v")
	require.True(t, ok)

	assert.Equal(t, 0, cat, "tied frequency is broken alphabetically")
	assert.Equal(t, 1, dog)
	assert.Equal(t, 2, run, "lower frequency sorts last")
}

func TestBuildFromVocabSkipsMalformedLines(t *testing.T) {
	w, err := BuildFromVocab(strings.NewReader("\n_dog_n_3_sg\t5\nmalformed\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, w.Len())
}

func TestLabelWMapAnnotatesNodesAndEdges(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", Label: "_dog_n_3_sg"}
	g.Edges = []*dmrs.Edge{{From: "10", To: "10", Label: "ARG1_NEQ"}}

	w := NewWMap()
	LabelWMap(g, w)

	assert.Equal(t, "0", g.Nodes["10"].LabelIdx)
	assert.Equal(t, "1", g.Edges[0].LabelIdx)
}
