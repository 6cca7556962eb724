package heuristics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// Align attempts to attach every currently-unaligned token to a nearby DMRS
// node using table, mutating each resolved node's TokAlign in place
// (unaligned_tokens_align.py's align). Tokens a heuristic can't resolve
// stay unaligned.
func Align(g *dmrs.Graph, tok []string, table Table) {
	unaligned, toksToNodes := GetUnalignedTokens(g, len(tok))

	tokToNode := make(map[int]string)
	nodeToToks := make(map[string][]int)

	for i := 0; i+1 < len(unaligned); i++ {
		a, b := unaligned[i], unaligned[i+1]
		if a+1 != b {
			continue
		}
		if id, ok := AlignUnalignedToken([2]int{a, b}, tok, toksToNodes, table); ok {
			tokToNode[a] = id
			tokToNode[b] = id
			nodeToToks[id] = append(nodeToToks[id], a, b)
		}
	}

	for _, ti := range unaligned {
		if _, done := tokToNode[ti]; done {
			continue
		}
		if id, ok := AlignUnalignedToken([2]int{ti, ti}, tok, toksToNodes, table); ok {
			tokToNode[ti] = id
			nodeToToks[id] = append(nodeToToks[id], ti)
		}
	}

	for nodeID, newToks := range nodeToToks {
		n := g.Nodes[nodeID]
		if n == nil {
			continue
		}
		merged := append(append([]int{}, n.TokAlign...), newToks...)
		sort.Ints(merged)
		n.TokAlign = merged
	}
}

// AlignUnalignedToken looks up the space-joined, lowercased surface text of
// the token range in table and returns the first strategy match, if any.
func AlignUnalignedToken(rng [2]int, tok []string, toksToNodes ToksToNodes, table Table) (string, bool) {
	words := make([]string, 0, rng[1]-rng[0]+1)
	for i := rng[0]; i <= rng[1]; i++ {
		words = append(words, strings.ToLower(tok[i]))
	}
	surface := strings.Join(words, " ")

	strategies, ok := table.Lookup(surface)
	if !ok {
		return "", false
	}
	for _, s := range strategies {
		if id, ok := Run(s, rng, len(tok), toksToNodes); ok {
			return id, true
		}
	}
	return "", false
}

// GetUnalignedTokens finds every token index with no node covering it and,
// for the ones that do have coverage, builds the index the strategies scan
// (get_unaligned_tokens). A node's own tokAlign span only "claims" its
// tokens if that exact span survives as a contiguous run of still-unclaimed
// tokens once shorter spans have already claimed theirs, so a long general
// predicate's wide span never preempts the narrower nodes inside it.
func GetUnalignedTokens(g *dmrs.Graph, numTokens int) ([]int, ToksToNodes) {
	nodeArgs := getNodeArguments(g)
	toksToNodes := make(ToksToNodes)

	type aligned struct {
		nodeID string
		toks   []int
	}
	var alignedList []aligned

	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if len(n.TokAlign) == 0 {
			continue
		}
		toks := append([]int{}, n.TokAlign...)
		alignedList = append(alignedList, aligned{id, toks})
		for _, ti := range toks {
			toksToNodes[ti] = append(toksToNodes[ti], AlignedNode{NodeID: id, Node: n, Args: nodeArgs[id]})
		}
	}

	sort.SliceStable(alignedList, func(i, j int) bool {
		return len(alignedList[i].toks) < len(alignedList[j].toks)
	})

	unaligned := make([]int, numTokens)
	for i := range unaligned {
		unaligned[i] = i
	}

	for _, a := range alignedList {
		if idx, ok := containsSublist(unaligned, a.toks); ok {
			unaligned = append(append([]int{}, unaligned[:idx]...), unaligned[idx+len(a.toks):]...)
		}
	}

	unalignedSet := make(map[int]bool, len(unaligned))
	for _, ti := range unaligned {
		unalignedSet[ti] = true
	}
	for ti := range toksToNodes {
		if unalignedSet[ti] {
			delete(toksToNodes, ti)
		}
	}

	return unaligned, toksToNodes
}

// containsSublist reports whether sub appears as a contiguous run within
// lst, returning the index it starts at.
func containsSublist(lst, sub []int) (int, bool) {
	n := len(sub)
	if n == 0 || n > len(lst) {
		return 0, false
	}
	for i := 0; i+n <= len(lst); i++ {
		if intsEqual(lst[i:i+n], sub) {
			return i, true
		}
	}
	return 0, false
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// getNodeArguments builds each node's outgoing argument list, labeled
// "rarg/post" before the labeler stage has assigned final edge labels.
func getNodeArguments(g *dmrs.Graph) map[string][]NodeArg {
	args := make(map[string][]NodeArg)
	for _, e := range g.Edges {
		to := g.Nodes[e.To]
		if to == nil {
			continue
		}
		label := fmt.Sprintf("%s/%s", e.Arg, e.Post)
		args[e.From] = append(args[e.From], NodeArg{Label: label, Node: to})
	}
	return args
}
