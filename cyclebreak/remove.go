package cyclebreak

import "github.com/ldemailly/dmrspreprocess/dmrs"

// Stats tallies which pattern broke each cycle encountered, mirroring
// cycle_remove.py's debug Counter. Remove always returns a populated
// Stats; callers uninterested in the breakdown can ignore it.
type Stats struct {
	Cycle          int
	ConjIndex      int
	EQ             int
	Control        int
	SmallClause    int
	ConjVerbOrAdj  int
	Default        int
	NoneDetected   int
	HasCycle       bool
	DefOrNotBroken bool
}

// Remove iteratively detects and breaks cycles in g until none remain or
// a cycle resists every pattern, in which case it stops without looping
// forever (the "unbroken cycle" outcome is non-fatal: spec.md §4.4).
//
// process_object_control from the original pattern set is intentionally
// not implemented here: it only ever returns a match verdict and never
// cuts an edge, so wiring it into this loop would be a silent no-op.
func Remove(g *dmrs.Graph) Stats {
	var stats Stats
	for {
		cycle := Detect(g)
		if cycle == nil {
			break
		}
		stats.Cycle++
		stats.HasCycle = true

		switch {
		case processConjunctionIndex(g, cycle):
			stats.ConjIndex++
		case processEQ(g, cycle):
			stats.EQ++
		case processControl(g, cycle):
			stats.Control++
		case processSmallClause(g, cycle):
			stats.SmallClause++
		case processConjunctionVerbOrAdj(g, cycle):
			stats.ConjVerbOrAdj++
		case processDefault(g, cycle):
			stats.Default++
			stats.DefOrNotBroken = true
		default:
			stats.NoneDetected++
			stats.DefOrNotBroken = true
			return stats
		}
	}
	return stats
}
