package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

func TestGetUnalignedTokensFindsGapsAroundAlignedSpans(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", TokAlign: []int{1}}

	unaligned, toksToNodes := GetUnalignedTokens(g, 3)

	assert.Equal(t, []int{0, 2}, unaligned)
	_, ok := toksToNodes[1]
	assert.True(t, ok, "the claimed token keeps its node for the strategies to scan")
	_, ok = toksToNodes[0]
	assert.False(t, ok)
}

func TestGetUnalignedTokensShortSpanTakesPriorityOverWideOne(t *testing.T) {
	g := dmrs.NewGraph()
	// "10" is a narrow elementary node covering token 0; "20" is a wide
	// general-predicate node whose span also covers 0 and 1. The shorter
	// span is subtracted first, so once token 0 is claimed, node 20's
	// two-token span no longer appears as a contiguous run of still-
	// unclaimed tokens and token 1 stays unaligned.
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", TokAlign: []int{0}}
	g.Nodes["20"] = &dmrs.Node{NodeID: "20", TokAlign: []int{0, 1}}

	unaligned, _ := GetUnalignedTokens(g, 2)

	assert.Equal(t, []int{1}, unaligned)
}

func TestAlignResolvesFunctionWordToNearbyVerb(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", Real: dmrs.RealPred{Pos: "v"}, Sortinfo: dmrs.Sortinfo{Tense: "pres"}, TokAlign: []int{2}}
	tok := []string{"I", "do", "run"}

	table := Table{
		"do": []Strategy{{Func: "nearest_right", Constraints: Constraints{Realpred: true, Pos: StringList{"v"}, Tense: "pres"}}},
	}

	Align(g, tok, table)

	assert.Equal(t, []int{1, 2}, g.Nodes["10"].TokAlign)
}

func TestAlignLeavesTokenUnalignedWhenNoHeuristicMatches(t *testing.T) {
	g := dmrs.NewGraph()
	g.Nodes["10"] = &dmrs.Node{NodeID: "10", TokAlign: []int{1}}
	tok := []string{"hm", "dog"}

	table, err := DefaultTable()
	require.NoError(t, err)

	Align(g, tok, table)

	assert.Equal(t, []int{1}, g.Nodes["10"].TokAlign)
}

func TestDefaultTableLoadsAndMatchesDoEntry(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)

	strategies, ok := table.Lookup("do")
	require.True(t, ok)
	require.Len(t, strategies, 1)
	assert.Equal(t, "nearest_right", strategies[0].Func)
	assert.True(t, strategies[0].Realpred)
	assert.Equal(t, StringList{"v"}, strategies[0].Pos)
	assert.Equal(t, "pres", strategies[0].Tense)
}

func TestDefaultTableLoadsPosListEntry(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)

	strategies, ok := table.Lookup("is")
	require.True(t, ok)
	require.Len(t, strategies, 2)
	assert.Equal(t, StringList{"v", "a", "p"}, strategies[0].Pos)
	assert.True(t, strategies[1].Gpred)
	assert.Contains(t, strategies[1].GpredRel, "prednom_state_rel")
}

func TestDefaultTableLoadsMultiWordKey(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)

	strategies, ok := table.Lookup("not only")
	require.True(t, ok)
	assert.Equal(t, 15, strategies[0].Limit)
}

func TestDefaultTableLoadsSenseListEntry(t *testing.T) {
	table, err := DefaultTable()
	require.NoError(t, err)

	strategies, ok := table.Lookup("upon")
	require.True(t, ok)
	require.Len(t, strategies, 1)
	assert.Equal(t, "-?upon(-[^_]+)?", strategies[0].SenseRegex)
}
