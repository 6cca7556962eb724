package heuristics

import "github.com/ldemailly/dmrspreprocess/dmrs"

// AlignedNode is an already-aligned node reachable from a given token index,
// together with the arguments needed to evaluate args_or constraints,
// mirroring the (node_index, node, node_args) tuples toks_to_nodes holds.
type AlignedNode struct {
	NodeID string
	Node   *dmrs.Node
	Args   []NodeArg
}

// ToksToNodes maps a token index to every node aligned to it.
type ToksToNodes map[int][]AlignedNode

// Strategy is one (function, params) entry from the heuristic table: a scan
// direction plus the constraints a candidate node must satisfy.
type Strategy struct {
	Func        string `yaml:"strategy"`
	Limit       int    `yaml:"limit,omitempty"`
	Constraints `yaml:",inline"`
}

const (
	defaultLimitAdjacent = 7
	defaultLimitNearest  = 5
)

// scan tries every candidate node aligned to token index ti, in the order
// toksToNodes holds them, returning the first one whose node matches.
func scan(ti int, toksToNodes ToksToNodes, c Constraints) (string, bool) {
	for _, an := range toksToNodes[ti] {
		if MatchNode(an.Node, an.Args, c) {
			return an.NodeID, true
		}
	}
	return "", false
}

// nearestRight scans rightward starting just past the unaligned token range.
func nearestRight(rng [2]int, numTokens int, toksToNodes ToksToNodes, s Strategy) (string, bool) {
	limit := s.Limit
	if limit == 0 {
		limit = defaultLimitAdjacent
	}
	start := rng[1] + 1
	end := start + limit
	if end > numTokens {
		end = numTokens
	}
	for ti := start; ti < end; ti++ {
		if id, ok := scan(ti, toksToNodes, s.Constraints); ok {
			return id, true
		}
	}
	return "", false
}

// nearestLeft scans leftward starting just before the unaligned token range.
func nearestLeft(rng [2]int, toksToNodes ToksToNodes, s Strategy) (string, bool) {
	limit := s.Limit
	if limit == 0 {
		limit = defaultLimitAdjacent
	}
	end := rng[0]
	start := end - limit
	if start < 0 {
		start = 0
	}
	for ti := end - 1; ti >= start; ti-- {
		if id, ok := scan(ti, toksToNodes, s.Constraints); ok {
			return id, true
		}
	}
	return "", false
}

// nearest interleaves a leftward and a rightward scan, closest token first
// on each side, alternating sides (izip_longest over the two ranges).
func nearest(rng [2]int, numTokens int, toksToNodes ToksToNodes, s Strategy) (string, bool) {
	limit := s.Limit
	if limit == 0 {
		limit = defaultLimitNearest
	}

	endLeft := rng[0]
	startLeft := endLeft - limit
	if startLeft < 0 {
		startLeft = 0
	}
	var left []int
	for ti := endLeft - 1; ti >= startLeft; ti-- {
		left = append(left, ti)
	}

	startRight := rng[1] + 1
	endRight := startRight + limit
	if endRight > numTokens {
		endRight = numTokens
	}
	var right []int
	for ti := startRight; ti < endRight; ti++ {
		right = append(right, ti)
	}

	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	for i := 0; i < n; i++ {
		if i < len(left) {
			if id, ok := scan(left[i], toksToNodes, s.Constraints); ok {
				return id, true
			}
		}
		if i < len(right) {
			if id, ok := scan(right[i], toksToNodes, s.Constraints); ok {
				return id, true
			}
		}
	}
	return "", false
}

// Run dispatches a strategy by name and applies it over the given unaligned
// token range.
func Run(s Strategy, rng [2]int, numTokens int, toksToNodes ToksToNodes) (string, bool) {
	switch s.Func {
	case "nearest_right":
		return nearestRight(rng, numTokens, toksToNodes, s)
	case "nearest_left":
		return nearestLeft(rng, toksToNodes, s)
	case "nearest":
		return nearest(rng, numTokens, toksToNodes, s)
	default:
		return "", false
	}
}
