// Package lemma implements the unknown-word rewrite stage
// (handle_unknown_nodes): a real-pred node the parser could not assign
// a part of speech encodes it instead as an inline Penn-Treebank tag
// packed into its lemma ("jumped/VBD"). This stage converts that
// encoding into a standard (lemma, pos) pair using an external
// lemmatizer oracle (spec.md §1), which this package treats as an
// interface rather than an implementation.
package lemma

import (
	"strings"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// Oracle is the unknown-word lemmatizer: given a surface form, each
// method returns its canonical lemma for that part of speech. spec.md
// §1 keeps its implementation out of scope.
type Oracle interface {
	Noun(surface string) string
	Verb(surface string) string
	Adj(surface string) string
}

// RewriteUnknown converts every pos="u" node's lemma from its inline
// "surface/TAG" encoding into a canonical (lemma, pos) pair, dropping
// sense (handle_unknown_nodes).
func RewriteUnknown(g *dmrs.Graph, oracle Oracle) {
	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if n.IsGPred || n.Real.Pos != "u" {
			continue
		}

		packed := strings.ReplaceAll(n.Real.Lemma, "//", "/")
		parts := strings.Split(packed, "/")
		tag := parts[len(parts)-1]
		surface := strings.Join(parts[:len(parts)-1], "/")

		pos := convertPOS(tag)
		lemma := surface
		switch pos {
		case "n":
			lemma = oracle.Noun(surface)
		case "a":
			lemma = oracle.Adj(surface)
		case "v":
			lemma = oracle.Verb(surface)
		}

		n.Real.Lemma = lemma
		n.Real.Pos = pos
		n.Real.Sense = ""
	}
}

// convertPOS maps a Penn-Treebank tag to a DMRS coarse part of speech.
func convertPOS(tag string) string {
	switch {
	case strings.HasPrefix(tag, "N"), tag == "FW":
		return "n"
	case strings.HasPrefix(tag, "J"), tag == "RB":
		return "a"
	case strings.HasPrefix(tag, "V"):
		return "v"
	default:
		return "u"
	}
}
