package cyclebreak

import (
	"strings"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// cycleNodeIDs returns the cycle's node ids in ascending order, so every
// pattern scans in the same deterministic order the rest of the pipeline
// uses.
func cycleNodeIDs(g *dmrs.Graph, cycle Cycle) []string {
	var out []string
	for _, id := range g.SortedNodeIDs() {
		if cycle[id] {
			out = append(out, id)
		}
	}
	return out
}

func isConj(n *dmrs.Node) bool {
	if !n.IsGPred {
		return n.Real.Pos == "c"
	}
	return strings.HasPrefix(n.GPred.Name, "implicit_conj")
}

// matchARG23H reports whether e is an ARG2_H or ARG3_H edge, including
// the HEQ post-form of either (ARG2_HEQ, ARG3_HEQ).
func matchARG23H(e *dmrs.Edge) bool {
	return strings.HasPrefix(e.Label, "ARG2_H") || strings.HasPrefix(e.Label, "ARG3_H")
}

// processConjunctionIndex matches a conjunction node whose R-/L- INDEX
// and HNDL edges (within the cycle) point at different nodes, and cuts
// the mismatched INDEX edge.
func processConjunctionIndex(g *dmrs.Graph, cycle Cycle) bool {
	for _, id := range cycleNodeIDs(g, cycle) {
		n := g.Nodes[id]
		if !isConj(n) {
			continue
		}
		byArg := make(map[string]*dmrs.Edge)
		for _, e := range outgoingWithin(g, id, cycle) {
			byArg[e.Arg] = e
		}

		detected := false
		if idx, ok1 := byArg["R-INDEX"]; ok1 {
			if hndl, ok2 := byArg["R-HNDL"]; ok2 && idx.To != hndl.To {
				g.RemoveEdge(idx.From, idx.To, idx.Label)
				detected = true
			}
		}
		if idx, ok1 := byArg["L-INDEX"]; ok1 {
			if hndl, ok2 := byArg["L-HNDL"]; ok2 && idx.To != hndl.To {
				g.RemoveEdge(idx.From, idx.To, idx.Label)
				detected = true
			}
		}
		if detected {
			return true
		}
	}
	return false
}

// processEQ matches a node with an outgoing bare EQ edge within the
// cycle and cuts it.
func processEQ(g *dmrs.Graph, cycle Cycle) bool {
	for _, id := range cycleNodeIDs(g, cycle) {
		for _, e := range outgoingWithin(g, id, cycle) {
			if e.Label == "EQ" {
				g.RemoveEdge(e.From, e.To, e.Label)
				return true
			}
		}
	}
	return false
}

// processControl matches a verb node that is either the target of an
// ARG2_H/ARG3_H edge, or the target of an ARG1_H edge from a neg_rel
// node that is itself targeted by an ARG2_H/ARG3_H edge, and has an
// outgoing ARG1_NEQ edge within the cycle; it cuts that ARG1_NEQ edge.
func processControl(g *dmrs.Graph, cycle Cycle) bool {
	for _, id := range cycleNodeIDs(g, cycle) {
		n := g.Nodes[id]
		if n.IsGPred || n.Real.Pos != "v" {
			continue
		}

		incoming := incomingWithin(g, id, cycle)
		byLabel := make(map[string]*dmrs.Edge)
		for _, e := range incoming {
			byLabel[e.Label] = e
		}

		controlled := false
		for _, e := range incoming {
			if matchARG23H(e) {
				controlled = true
				break
			}
		}
		if !controlled {
			arg1h, ok := byLabel["ARG1_H"]
			if !ok {
				continue
			}
			fromNode := g.Nodes[arg1h.From]
			if fromNode == nil || !fromNode.IsGPred || fromNode.GPred.Name != "neg_rel" {
				continue
			}
			for _, e := range incomingWithin(g, arg1h.From, cycle) {
				if matchARG23H(e) {
					controlled = true
					break
				}
			}
			if !controlled {
				continue
			}
		}

		for _, e := range outgoingWithin(g, id, cycle) {
			if e.Label == "ARG1_NEQ" {
				g.RemoveEdge(e.From, e.To, e.Label)
				return true
			}
		}
	}
	return false
}

// processSmallClause matches a verb with an outgoing ARG3_H edge to a
// preposition node that itself has an outgoing ARG1_NEQ edge within the
// cycle, and cuts the verb's ARG2_NEQ edge, or its ARG2_EQ edge to a
// noun, if present.
func processSmallClause(g *dmrs.Graph, cycle Cycle) bool {
	for _, id := range cycleNodeIDs(g, cycle) {
		n := g.Nodes[id]
		if n.IsGPred || n.Real.Pos != "v" {
			continue
		}

		outgoing := outgoingWithin(g, id, cycle)
		byLabel := make(map[string]*dmrs.Edge)
		for _, e := range outgoing {
			byLabel[e.Label] = e
		}

		arg3h, ok := byLabel["ARG3_H"]
		if !ok {
			continue
		}
		prep := g.Nodes[arg3h.To]
		if prep == nil || prep.IsGPred || prep.Real.Pos != "p" {
			continue
		}

		hasArg1NEQ := false
		for _, e := range outgoingWithin(g, arg3h.To, cycle) {
			if e.Label == "ARG1_NEQ" {
				hasArg1NEQ = true
				break
			}
		}
		if !hasArg1NEQ {
			continue
		}

		if e, ok := byLabel["ARG2_NEQ"]; ok {
			g.RemoveEdge(e.From, e.To, e.Label)
			return true
		}
		if e, ok := byLabel["ARG2_EQ"]; ok {
			target := g.Nodes[e.To]
			if target != nil && !target.IsGPred && target.Real.Pos == "n" {
				g.RemoveEdge(e.From, e.To, e.Label)
				return true
			}
		}
	}
	return false
}
