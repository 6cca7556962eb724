package dmrs

// HandleLTop removes the ghost LTOP link (the edge with From "0") and
// records its target as the graph's LTop attribute, defaulting Index to
// "-1" if it was never set. This is the "most complete" variant pydmrs
// keeps in handle_ltop.py, as opposed to the bare-stripping
// remove_ltop.py variant spec.md §1 excludes (see SPEC_FULL.md Open
// Question Decisions).
func HandleLTop(g *Graph) {
	ltop := "-1"
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if e.From == "0" {
			ltop = e.To
			continue
		}
		kept = append(kept, e)
	}
	g.Edges = kept
	g.LTop = ltop
	if g.Index == "" {
		g.Index = "-1"
	}
}
