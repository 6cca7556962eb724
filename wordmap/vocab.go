package wordmap

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// Vocab counts how often each distinct value occurs across a corpus of
// graphs, the common shape behind the source-graph label vocabulary and
// the CARG vocabulary (spec.md §4.8).
type Vocab struct {
	freq map[string]int
}

// NewVocab returns an empty vocabulary counter.
func NewVocab() *Vocab {
	return &Vocab{freq: make(map[string]int)}
}

// Add increments value's count by n.
func (v *Vocab) Add(value string, n int) {
	v.freq[value] += n
}

// Freq returns value's current count.
func (v *Vocab) Freq(value string) int { return v.freq[value] }

// ExtractLabels counts every node and link label in g, the
// SourceGraphVocab behavior.
func (v *Vocab) ExtractLabels(g *dmrs.Graph) {
	for _, id := range g.SortedNodeIDs() {
		if n := g.Nodes[id]; n.Label != "" {
			v.Add(n.Label, 1)
		}
	}
	for _, e := range g.SortedEdges() {
		if e.Label != "" {
			v.Add(e.Label, 1)
		}
	}
}

// ExtractCargs counts every node's CARG value in g, the
// SourceGraphCargVocab behavior.
func (v *Vocab) ExtractCargs(g *dmrs.Graph) {
	for _, id := range g.SortedNodeIDs() {
		if n := g.Nodes[id]; n.CARG != "" {
			v.Add(n.CARG, 1)
		}
	}
}

// Write persists the vocabulary sorted by descending frequency, ties
// broken alphabetically for determinism (Counter.most_common() leaves
// ties in insertion order, which Go maps don't preserve).
func (v *Vocab) Write(w io.Writer) error {
	type entry struct {
		value string
		freq  int
	}
	entries := make([]entry, 0, len(v.freq))
	for val, f := range v.freq {
		entries = append(entries, entry{val, f})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].freq != entries[j].freq {
			return entries[i].freq > entries[j].freq
		}
		return entries[i].value < entries[j].value
	})

	buf := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(buf, "%s\t%d\n", e.value, e.freq); err != nil {
			return err
		}
	}
	return buf.Flush()
}
