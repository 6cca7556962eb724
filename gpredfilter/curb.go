package gpredfilter

import "github.com/ldemailly/dmrspreprocess/dmrs"

// CurbSpans clears the token alignment of any general-predicate node
// whose tokalign spans more than maxTokens tokens, back to unaligned
// (dmrs_preprocess.py's span-curb CLI option). Real-pred nodes are left
// untouched; maxTokens <= 0 disables it.
func CurbSpans(g *dmrs.Graph, maxTokens int) {
	if maxTokens <= 0 {
		return
	}
	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if !n.IsGPred {
			continue
		}
		if len(n.TokAlign) > maxTokens {
			n.TokAlign = nil
		}
	}
}
