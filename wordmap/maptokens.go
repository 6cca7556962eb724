package wordmap

import (
	"strconv"
	"strings"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// MapTokens annotates every aligned node with the surface tokens it
// covers, as written (Tok), and the tokWMap ids of their lowercased forms
// (TokIdx), both joined with a single space (map_tokens.py).
func MapTokens(g *dmrs.Graph, tok []string, tokWMap *WMap) {
	idx := make([]int, len(tok))
	for i, t := range tok {
		idx[i] = tokWMap.GetOrAdd(strings.ToLower(t))
	}

	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if len(n.TokAlign) == 0 {
			continue
		}
		nodeTok := make([]string, len(n.TokAlign))
		nodeIdx := make([]string, len(n.TokAlign))
		for i, tokenIndex := range n.TokAlign {
			if tokenIndex < 0 || tokenIndex >= len(tok) {
				continue
			}
			nodeTok[i] = tok[tokenIndex]
			nodeIdx[i] = strconv.Itoa(idx[tokenIndex])
		}
		n.Tok = strings.Join(nodeTok, " ")
		n.TokIdx = strings.Join(nodeIdx, " ")
	}
}
