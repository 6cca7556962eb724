package heuristics

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed data/heuristics.yaml
var heuristicsYAML []byte

// Table maps a lowercased, space-joined surface form to the ordered list of
// strategies tried for it, stopping at the first that resolves a node.
type Table map[string][]Strategy

// DefaultTable loads the built-in heuristic table (HEURISTIC_DICT plus the
// auto-generated particle-sense entries).
func DefaultTable() (Table, error) {
	var t Table
	if err := yaml.Unmarshal(heuristicsYAML, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the strategies registered for a surface form, if any.
func (t Table) Lookup(surface string) ([]Strategy, bool) {
	s, ok := t[surface]
	return s, ok
}
