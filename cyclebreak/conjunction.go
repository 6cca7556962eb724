package cyclebreak

import (
	"sort"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// processConjunctionVerbOrAdj matches a conjunction node joining exactly
// two verb-or-adjective nodes that in turn share at least one common
// outgoing neighbor within the cycle. Across all shared neighbors, it
// ranks the conjuncts' edges into them by token distance, keeps the single
// closest edge and cuts the rest. A conjunction with fewer than two such
// aligned edges does not match.
func processConjunctionVerbOrAdj(g *dmrs.Graph, cycle Cycle) bool {
	for _, id := range cycleNodeIDs(g, cycle) {
		n := g.Nodes[id]
		if !isConj(n) {
			continue
		}

		seen := make(map[string]bool)
		var verbOrAdj []string
		for _, e := range outgoingWithin(g, id, cycle) {
			target := g.Nodes[e.To]
			if target == nil || target.IsGPred {
				continue
			}
			if (target.Real.Pos == "v" || target.Real.Pos == "a") && !seen[e.To] {
				seen[e.To] = true
				verbOrAdj = append(verbOrAdj, e.To)
			}
		}
		if len(verbOrAdj) != 2 {
			continue
		}

		adj0 := neighborSet(g, verbOrAdj[0], cycle)
		adj1 := neighborSet(g, verbOrAdj[1], cycle)
		var common []string
		for node := range adj0 {
			if adj1[node] {
				common = append(common, node)
			}
		}
		if len(common) == 0 {
			continue
		}
		sort.Strings(common)

		type scored struct {
			dist int
			edge *dmrs.Edge
		}
		var candidates []scored
		verbSet := map[string]bool{verbOrAdj[0]: true, verbOrAdj[1]: true}
		for _, target := range common {
			for _, e := range incomingWithin(g, target, cycle) {
				if !verbSet[e.From] {
					continue
				}
				from := g.Nodes[e.From]
				to := g.Nodes[e.To]
				if from == nil || to == nil || len(from.TokAlign) == 0 || len(to.TokAlign) == 0 {
					continue
				}
				candidates = append(candidates, scored{dist: minTokDistance(from.TokAlign, to.TokAlign), edge: e})
			}
		}
		if len(candidates) < 2 {
			continue
		}

		sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
		for _, c := range candidates[1:] {
			g.RemoveEdge(c.edge.From, c.edge.To, c.edge.Label)
		}
		return true
	}
	return false
}

func neighborSet(g *dmrs.Graph, nodeID string, cycle Cycle) map[string]bool {
	out := make(map[string]bool)
	for _, e := range outgoingWithin(g, nodeID, cycle) {
		out[e.To] = true
	}
	return out
}

func minTokDistance(a, b []int) int {
	best := -1
	for _, x := range a {
		for _, y := range b {
			d := x - y
			if d < 0 {
				d = -d
			}
			if best == -1 || d < best {
				best = d
			}
		}
	}
	return best
}

// processDefault cuts the cycle edge with the longest token distance
// between its endpoints' alignments; edges whose endpoints are
// unaligned are skipped. It matches (returns true) iff at least one
// cycle edge has both endpoints aligned.
func processDefault(g *dmrs.Graph, cycle Cycle) bool {
	type scored struct {
		dist int
		edge *dmrs.Edge
	}
	var candidates []scored
	for _, id := range cycleNodeIDs(g, cycle) {
		for _, e := range outgoingWithin(g, id, cycle) {
			from := g.Nodes[e.From]
			to := g.Nodes[e.To]
			if from == nil || to == nil || len(from.TokAlign) == 0 || len(to.TokAlign) == 0 {
				continue
			}
			candidates = append(candidates, scored{dist: minTokDistance(from.TokAlign, to.TokAlign), edge: e})
		}
	}
	if len(candidates) == 0 {
		return false
	}

	worst := candidates[0]
	for _, c := range candidates[1:] {
		if c.dist > worst.dist {
			worst = c
		}
	}
	g.RemoveEdge(worst.edge.From, worst.edge.To, worst.edge.Label)
	return true
}
