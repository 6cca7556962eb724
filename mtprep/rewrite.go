package mtprep

import "github.com/ldemailly/dmrspreprocess/dmrs"

// RewriteTable is the transfer-MT gpred rewriting table: a pure lookup
// from one gpred name to another (jaen_transfer_mt_prep.py's gpred_map;
// the structural "ja:"-prefixed, "_rel"-suffixed, and def_q/pron
// conversions are handled directly by Normalize, since they aren't a
// plain name->name lookup). spec.md §1 keeps the table itself — its
// language-pair-specific contents and the decision of which names to
// rewrite — out of scope as an external collaborator; this package only
// owns the mechanical act of applying whatever table it is given.
type RewriteTable interface {
	// Rewrite returns the replacement gpred name for name and true if
	// the table has an entry for it, or ("", false) otherwise.
	Rewrite(name string) (string, bool)
}

// MapRewriteTable is a RewriteTable backed by a plain map, the simplest
// concrete form the external table takes on the wire (a loaded
// name->name lookup, analogous to the hardcoded gpred_map).
type MapRewriteTable map[string]string

func (t MapRewriteTable) Rewrite(name string) (string, bool) {
	v, ok := t[name]
	return v, ok
}

// ApplyRewriteTable rewrites every gpred node's name using table,
// leaving names the table doesn't cover untouched.
func ApplyRewriteTable(g *dmrs.Graph, table RewriteTable) {
	if table == nil {
		return
	}
	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if !n.IsGPred {
			continue
		}
		if replacement, ok := table.Rewrite(n.GPred.Name); ok {
			n.GPred.Name = replacement
		}
	}
}
