package gpredfilter

import (
	"fortio.org/log"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// Options configures a single Filter call (spec.md §4.3).
type Options struct {
	Set               Set
	HandleLTop        bool
	AllowDisconnected bool
}

// Filter removes filterable gpred nodes from g according to Options,
// mutating g in place. It returns the set of node ids actually removed.
func Filter(g *dmrs.Graph, opts Options) map[string]bool {
	filterable := make(map[string]bool)
	for id, n := range g.Nodes {
		if n.IsGPred && opts.Set[n.GpredName()] {
			filterable[id] = true
		}
	}
	if len(filterable) == 0 {
		return map[string]bool{}
	}

	alreadyDisconnected := !dmrs.Connected(g, nil, filterable)

	var removed map[string]bool
	if opts.AllowDisconnected || alreadyDisconnected {
		removed = filterable
	} else {
		removed = acceptSafeRemovals(g, filterable)
	}

	if opts.HandleLTop && removed[g.LTop] {
		reassignLTop(g, removed)
	}

	for id := range removed {
		g.RemoveNode(id)
	}
	log.LogVf("gpredfilter: removed %d of %d filterable nodes", len(removed), len(filterable))
	return removed
}

// acceptSafeRemovals implements spec.md §4.3 step 3: iterate filterable
// nodes in ascending node-id order, accepting each into the growing
// removed set iff doing so keeps the graph connected given every prior
// acceptance.
func acceptSafeRemovals(g *dmrs.Graph, filterable map[string]bool) map[string]bool {
	var ordered []string
	for _, id := range g.SortedNodeIDs() {
		if filterable[id] {
			ordered = append(ordered, id)
		}
	}

	removed := make(map[string]bool)
	for _, candidate := range ordered {
		trial := make(map[string]bool, len(removed)+1)
		for id := range removed {
			trial[id] = true
		}
		trial[candidate] = true

		ignore := make(map[string]bool)
		for id := range filterable {
			if !trial[id] {
				ignore[id] = true
			}
		}

		if dmrs.Connected(g, trial, ignore) {
			removed[candidate] = true
		}
	}
	return removed
}

// reassignLTop implements spec.md §4.3 step 4's ordered rule.
func reassignLTop(g *dmrs.Graph, removed map[string]bool) {
	ltop := g.LTop
	for {
		children := childIDs(g, ltop)
		parents := parentIDs(g, ltop, children)

		if len(children) == 1 && !removed[children[0]] {
			g.LTop = children[0]
			return
		}
		if contains(children, g.Index) && !removed[g.Index] {
			g.LTop = g.Index
			return
		}
		if len(parents) == 1 && !removed[parents[0]] {
			g.LTop = parents[0]
			return
		}
		if len(children) == 1 {
			ltop = children[0]
			continue
		}
		if len(parents) == 1 {
			ltop = parents[0]
			continue
		}

		g.LTop = pickSurvivor(g, removed)
		return
	}
}

func childIDs(g *dmrs.Graph, nodeID string) []string {
	var out []string
	for _, e := range g.OutgoingEdges(nodeID) {
		out = append(out, e.To)
	}
	return out
}

// parentIDs returns undirected neighbors of nodeID minus its children.
func parentIDs(g *dmrs.Graph, nodeID string, children []string) []string {
	childSet := make(map[string]bool, len(children))
	for _, c := range children {
		childSet[c] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, e := range g.IncomingEdges(nodeID) {
		if !childSet[e.From] && !seen[e.From] {
			seen[e.From] = true
			out = append(out, e.From)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// pickSurvivor returns the smallest surviving node id, or "-1" if none.
func pickSurvivor(g *dmrs.Graph, removed map[string]bool) string {
	for _, id := range g.SortedNodeIDs() {
		if !removed[id] {
			return id
		}
	}
	return "-1"
}
