// Package label implements the canonical node and link label construction
// (spec.md §4.7): a deterministic, idempotent string built from each
// node's kind-specific features, and from each link's argument/post pair.
package label

import (
	"strings"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// Options configures Label.
type Options struct {
	// CargClean strips the surrounding quotes pydmrs stores CARG with
	// ("\"Paris\"" -> "Paris") before it is folded into the gpred label.
	CargClean bool
}

// Label assigns the label attribute to every node and link in g.
func Label(g *dmrs.Graph, opts Options) {
	for _, id := range g.SortedNodeIDs() {
		g.Nodes[id].Label = nodeLabel(g.Nodes[id], opts)
	}
	for _, e := range g.Edges {
		e.Label = join(e.Arg, e.Post)
	}
}

func join(fields ...string) string {
	var kept []string
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, "_")
}

func normalizedTense(t string) string {
	if strings.ToLower(t) == "untensed" {
		return ""
	}
	return t
}

func normalizedSF(sf string) string {
	if sf == "prop" || sf == "prop-or-ques" {
		return ""
	}
	return sf
}

func nodeLabel(n *dmrs.Node, opts Options) string {
	if n.IsGPred {
		carg := n.CARG
		if opts.CargClean {
			carg = stripQuotes(carg)
		}
		return join(carg, n.GPred.Name, n.Sortinfo.Pers, n.Sortinfo.Num, n.Sortinfo.Gend)
	}

	switch n.Real.Pos {
	case "n":
		pers := n.Sortinfo.Pers
		if pers == "" {
			pers = "3"
		}
		num := n.Sortinfo.Num
		if num == "" {
			num = "sg"
		}
		return "_" + join(n.Real.Lemma, "n", n.Real.Sense, pers, num)
	case "v":
		return "_" + join(n.Real.Lemma, "v", n.Real.Sense, normalizedTense(n.Sortinfo.Tense), normalizedSF(n.Sortinfo.SF))
	default:
		return "_" + join(n.Real.Lemma, n.Real.Pos, n.Real.Sense)
	}
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
