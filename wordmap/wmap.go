// Package wordmap implements the word-map bijection and persistence
// (spec.md §4.8), the vocabulary extractor it is built from, and the
// map_tokens token-id annotation stage.
package wordmap

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"fortio.org/log"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// WMap is a deterministic value<->id bijection: every new value is
// assigned the next sequential id, and an existing value always maps
// back to its original id.
type WMap struct {
	ids    map[string]int
	nextID int
}

// NewWMap returns an empty word-map.
func NewWMap() *WMap {
	return &WMap{ids: make(map[string]int)}
}

// LoadWMap reads a persisted "id\tvalue" word-map, one entry per line.
func LoadWMap(r io.Reader) (*WMap, error) {
	w := NewWMap()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		w.ids[fields[1]] = id
		if id >= w.nextID {
			w.nextID = id + 1
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.LogVf("wordmap: loaded %d entries", len(w.ids))
	return w, nil
}

// GetOrAdd returns value's id, assigning the next sequential id the
// first time value is seen.
func (w *WMap) GetOrAdd(value string) int {
	if id, ok := w.ids[value]; ok {
		return id
	}
	id := w.nextID
	w.ids[value] = id
	w.nextID++
	return id
}

// Lookup returns value's id without adding it.
func (w *WMap) Lookup(value string) (int, bool) {
	id, ok := w.ids[value]
	return id, ok
}

// Len reports the number of entries in the map.
func (w *WMap) Len() int { return len(w.ids) }

// Write persists the map as "id\tvalue" lines, sorted ascending by id.
func (w *WMap) Write(wr io.Writer) error {
	type entry struct {
		id    int
		value string
	}
	entries := make([]entry, 0, len(w.ids))
	for v, id := range w.ids {
		entries = append(entries, entry{id, v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	buf := bufio.NewWriter(wr)
	for _, e := range entries {
		if _, err := fmt.Fprintf(buf, "%d\t%s\n", e.id, e.value); err != nil {
			return err
		}
	}
	return buf.Flush()
}

// BuildFromVocab reads a persisted vocabulary file (as Vocab.Write
// produces) and assigns each value the next sequential id in descending
// frequency order, ties broken alphabetically, so the resulting id
// assignment is deterministic regardless of map iteration order.
func BuildFromVocab(r io.Reader) (*WMap, error) {
	type entry struct {
		value string
		freq  int
	}
	var entries []entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			continue
		}
		freq, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		entries = append(entries, entry{fields[0], freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].freq != entries[j].freq {
			return entries[i].freq > entries[j].freq
		}
		return entries[i].value < entries[j].value
	})

	w := NewWMap()
	for _, e := range entries {
		w.GetOrAdd(e.value)
	}
	log.LogVf("wordmap: built %d entries from vocabulary", w.Len())
	return w, nil
}

// LabelWMap annotates every node and link with a label_idx drawn from
// the word-map, adding new labels as they're encountered (spec.md §4.8
// SourceGraphWMAP behavior).
func LabelWMap(g *dmrs.Graph, w *WMap) {
	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if n.Label != "" {
			n.LabelIdx = strconv.Itoa(w.GetOrAdd(n.Label))
		}
	}
	for _, e := range g.SortedEdges() {
		if e.Label != "" {
			e.LabelIdx = strconv.Itoa(w.GetOrAdd(e.Label))
		}
	}
}
