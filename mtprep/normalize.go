// Package mtprep implements the MT-prep normalization stage
// (jaen_transfer_mt_prep.py): a small set of placeholder sortinfo and
// realpred values the upstream parser emits get rewritten to their
// concrete defaults, and a handful of structural gpred conversions are
// applied, before any later stage (labeler, cycle breaker) sees the
// graph.
package mtprep

import (
	"strings"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// Normalize rewrites placeholder feature values and structural gpred
// shapes in place:
//
//	num  == "number" -> "sg"
//	sf   == "sforce" -> "prop"
//	pers == "person" -> "3"
//	sense == "0"     -> "1"
//	perf/prog missing on a verb node -> "-"
//	gpred name trailing "_rel" stripped
//	"ja:_lemma_pos[_sense]" gpred -> realpred lemma "_ja_lemma", carg lemma
//	"ja:name" gpred -> "name"
//	"def_udef_a_q"/"def_q" gpred -> realpred "the"/"q"
//	pron, pers 2, with gend -> gend cleared
//	pron, pers 3, no num -> num "pl"
func Normalize(g *dmrs.Graph) {
	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		normalizeSortinfo(n)
		if n.IsGPred {
			normalizeGpredStructure(n)
		}
	}
}

func normalizeSortinfo(n *dmrs.Node) {
	if n.Sortinfo.Num == "number" {
		n.Sortinfo.Num = "sg"
	}
	if n.Sortinfo.SF == "sforce" {
		n.Sortinfo.SF = "prop"
	}
	if n.Sortinfo.Pers == "person" {
		n.Sortinfo.Pers = "3"
	}
	if n.Real.Sense == "0" {
		n.Real.Sense = "1"
	}
	if n.Sortinfo.Perf == "luk" || (n.Real.Pos == "v" && n.Sortinfo.Perf == "") {
		n.Sortinfo.Perf = "-"
	}
	if n.Sortinfo.Prog == "luk" || (n.Real.Pos == "v" && n.Sortinfo.Prog == "") {
		n.Sortinfo.Prog = "-"
	}
}

// normalizeGpredStructure applies the structural gpred rewrites that
// aren't a plain name->name lookup (jaen_transfer_mt_prep.py lines
// 50-96).
func normalizeGpredStructure(n *dmrs.Node) {
	name := strings.TrimSuffix(n.GPred.Name, "_rel")
	n.GPred.Name = name

	if jaPred, ok := strings.CutPrefix(name, "ja:_"); ok {
		parts := strings.Split(jaPred, "_")
		lemma := parts[0]
		realpred := dmrs.RealPred{Lemma: "_ja_" + lemma}
		if len(parts) > 1 {
			realpred.Pos = parts[1]
		}
		if len(parts) > 2 {
			realpred.Sense = parts[2]
		}
		n.IsGPred = false
		n.GPred = dmrs.GPred{}
		n.Real = realpred
		n.CARG = `"` + lemma + `"`
		return
	}

	if jaGpred, ok := strings.CutPrefix(name, "ja:"); ok {
		name = jaGpred
		n.GPred.Name = name
	}

	switch {
	case name == "def_udef_a_q" || name == "def_q":
		n.IsGPred = false
		n.GPred = dmrs.GPred{}
		n.Real = dmrs.RealPred{Lemma: "the", Pos: "q"}
	case name == "pron" && n.Sortinfo.Pers == "2" && n.Sortinfo.Gend != "":
		n.Sortinfo.Gend = ""
	case name == "pron" && n.Sortinfo.Pers == "3" && n.Sortinfo.Num == "":
		n.Sortinfo.Num = "pl"
	}
}
