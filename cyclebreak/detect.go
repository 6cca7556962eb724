// Package cyclebreak implements cycle detection and the ordered
// pattern-based cycle removal loop (spec.md §4.4): directed cycles take
// priority over undirected ones, and each detected cycle is broken by
// the first pattern that matches it, falling back to a default
// longest-token-distance cut when none do.
package cyclebreak

import "github.com/ldemailly/dmrspreprocess/dmrs"

// Cycle is the set of node ids participating in a detected cycle.
type Cycle map[string]bool

// Detect returns the node set of a cycle in g, directed cycles taking
// priority over undirected ones, or nil if the graph has neither.
func Detect(g *dmrs.Graph) Cycle {
	if c := directedCycle(g); c != nil {
		return c
	}
	return undirectedCycle(g)
}

// directedCycle peels nodes with no surviving children or no surviving
// parents until nothing more can be removed; whatever remains is the
// cycle (or nil if everything peeled away).
func directedCycle(g *dmrs.Graph) Cycle {
	children := make(map[string]map[string]bool)
	parents := make(map[string]map[string]bool)
	for id := range g.Nodes {
		children[id] = make(map[string]bool)
		parents[id] = make(map[string]bool)
	}
	for _, e := range g.Edges {
		if children[e.From] == nil || parents[e.To] == nil {
			continue // endpoint outside g.Nodes (e.g. the LTOP ghost "0")
		}
		children[e.From][e.To] = true
		parents[e.To][e.From] = true
	}

	remaining := make(map[string]bool, len(g.Nodes))
	for id := range g.Nodes {
		remaining[id] = true
	}

	for {
		removedAny := false
		for id := range remaining {
			if countSurviving(children[id], remaining) == 0 || countSurviving(parents[id], remaining) == 0 {
				delete(remaining, id)
				removedAny = true
				break
			}
		}
		if !removedAny {
			break
		}
	}

	if len(remaining) == 0 {
		return nil
	}
	return Cycle(remaining)
}

// undirectedCycle peels nodes with at most one surviving adjacent node
// (treating edges as undirected) until nothing more can be removed.
func undirectedCycle(g *dmrs.Graph) Cycle {
	adjacent := make(map[string]map[string]bool)
	for id := range g.Nodes {
		adjacent[id] = make(map[string]bool)
	}
	for _, e := range g.Edges {
		if adjacent[e.From] == nil || adjacent[e.To] == nil {
			continue
		}
		adjacent[e.From][e.To] = true
		adjacent[e.To][e.From] = true
	}

	remaining := make(map[string]bool, len(g.Nodes))
	for id := range g.Nodes {
		remaining[id] = true
	}

	for {
		removedAny := false
		for id := range remaining {
			if countSurviving(adjacent[id], remaining) <= 1 {
				delete(remaining, id)
				removedAny = true
				break
			}
		}
		if !removedAny {
			break
		}
	}

	if len(remaining) == 0 {
		return nil
	}
	return Cycle(remaining)
}

func countSurviving(set, remaining map[string]bool) int {
	n := 0
	for id := range set {
		if remaining[id] {
			n++
		}
	}
	return n
}

// outgoingWithin returns g's edges out of nodeID whose To lands in cycle.
func outgoingWithin(g *dmrs.Graph, nodeID string, cycle Cycle) []*dmrs.Edge {
	var out []*dmrs.Edge
	for _, e := range g.OutgoingEdges(nodeID) {
		if cycle[e.To] {
			out = append(out, e)
		}
	}
	return out
}

// incomingWithin returns g's edges into nodeID whose From lands in cycle.
func incomingWithin(g *dmrs.Graph, nodeID string, cycle Cycle) []*dmrs.Edge {
	var in []*dmrs.Edge
	for _, e := range g.IncomingEdges(nodeID) {
		if cycle[e.From] {
			in = append(in, e)
		}
	}
	return in
}
