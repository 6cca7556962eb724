// Package dmrs implements the Dependency Minimal Recursion Semantics
// graph data model: nodes, directed labeled edges, and the document-level
// attributes (ltop, index, untok, tok) that sit around them.
package dmrs

import (
	"sort"
	"strconv"
)

// Sortinfo holds the morphosyntactic features DMRS attaches to a node.
// Every field is optional; an empty string means the feature was absent.
type Sortinfo struct {
	Num   string
	Pers  string
	Gend  string
	Tense string
	SF    string
	Perf  string
	Prog  string
}

// Empty reports whether every field of the sortinfo is unset.
func (s *Sortinfo) Empty() bool {
	return s == nil || (s.Num == "" && s.Pers == "" && s.Gend == "" &&
		s.Tense == "" && s.SF == "" && s.Perf == "" && s.Prog == "")
}

// RealPred is a node tied to a surface lexeme: lemma, part of speech, and
// an optional word sense.
type RealPred struct {
	Lemma string
	Pos   string
	Sense string // empty if absent
}

// GPred is a grammatical predicate node, named rather than lexicalized
// (e.g. "def_q", "neg_rel").
type GPred struct {
	Name string
}

// Node is the closed tagged variant pydmrs calls a node: either a
// RealPred or a GPred, never both. Dispatch on IsGPred rather than a
// type hierarchy.
type Node struct {
	NodeID   string
	IsGPred  bool
	Real     RealPred
	GPred    GPred
	CARG     string // empty if absent
	Sortinfo Sortinfo

	HasSpan bool
	CFrom   int
	CTo     int

	// TokAlign holds the token indices this node covers, ascending.
	// nil/empty means unaligned (the "-1" sentinel on the wire).
	TokAlign []int

	Label    string
	LabelIdx string
	Tok      string
	TokIdx   string

	// ExtraAttrs preserves attributes on the <node> element that this
	// model doesn't own, so untouched subtrees round-trip.
	ExtraAttrs map[string]string
}

// Unaligned reports whether the node has no token alignment.
func (n *Node) Unaligned() bool {
	return len(n.TokAlign) == 0
}

// Lemma/Pos/Sense are convenience accessors that are empty for gpred nodes.
func (n *Node) Lemma() string { return n.Real.Lemma }
func (n *Node) Pos() string   { return n.Real.Pos }
func (n *Node) Sense() string { return n.Real.Sense }

// GpredName returns the gpred name, or "" for real-pred nodes.
func (n *Node) GpredName() string {
	if !n.IsGPred {
		return ""
	}
	return n.GPred.Name
}

// Edge is a directed labeled edge between two node ids. A "0" From
// denotes the ghost LTOP link (spec.md §3): the graph's root has no
// corresponding Node.
type Edge struct {
	From     string
	To       string
	Arg      string // rargname text, e.g. "ARG1"
	Post     string // post text, e.g. "NEQ"
	Label    string // Arg + "_" + Post, e.g. "ARG1_NEQ", or bare "EQ"
	LabelIdx string

	ExtraAttrs map[string]string
}

// Identity returns the (from,to,label) triple edges are keyed by.
func (e *Edge) Identity() (string, string, string) {
	return e.From, e.To, e.Label
}

// Graph is the in-memory DMRS graph: nodes and edges owned by the graph,
// plus document-level attributes. Consumers reference nodes by NodeID;
// references must not outlive the graph.
type Graph struct {
	Nodes map[string]*Node
	Edges []*Edge

	LTop  string // node id, or "-1"
	Index string // node id, or "-1"
	Untok string
	Tok   string

	// ExtraAttrs preserves root <dmrs> attributes this model doesn't own.
	ExtraAttrs map[string]string
}

// NewGraph returns an empty graph with LTop and Index defaulted to "-1".
func NewGraph() *Graph {
	return &Graph{
		Nodes:      make(map[string]*Node),
		LTop:       "-1",
		Index:      "-1",
		ExtraAttrs: make(map[string]string),
	}
}

// Empty reports whether the graph has no nodes and no edges.
func (g *Graph) Empty() bool {
	return len(g.Nodes) == 0 && len(g.Edges) == 0
}

// SortedNodeIDs returns node ids ordered ascending by their integer value,
// the ordering spec.md §4.1 requires for dump and for deterministic
// traversal elsewhere in the pipeline.
func (g *Graph) SortedNodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return nodeIDLess(ids[i], ids[j]) })
	return ids
}

// SortedEdges returns a copy of the edge slice ordered by (from_id,
// to_id, label), as spec.md §4.1 requires for dump.
func (g *Graph) SortedEdges() []*Edge {
	edges := make([]*Edge, len(g.Edges))
	copy(edges, g.Edges)
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return nodeIDLess(a.From, b.From)
		}
		if a.To != b.To {
			return nodeIDLess(a.To, b.To)
		}
		return a.Label < b.Label
	})
	return edges
}

func parseNodeID(id string) (int, error) {
	return strconv.Atoi(id)
}

func nodeIDLess(a, b string) bool {
	ai, aerr := parseNodeID(a)
	bi, berr := parseNodeID(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

// OutgoingEdges returns edges whose From matches nodeID, in the graph's
// current edge insertion order.
func (g *Graph) OutgoingEdges(nodeID string) []*Edge {
	var out []*Edge
	for _, e := range g.Edges {
		if e.From == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// IncomingEdges returns edges whose To matches nodeID, in the graph's
// current edge insertion order.
func (g *Graph) IncomingEdges(nodeID string) []*Edge {
	var in []*Edge
	for _, e := range g.Edges {
		if e.To == nodeID {
			in = append(in, e)
		}
	}
	return in
}

// RemoveEdge removes the first edge matching (from,to,label) identity.
func (g *Graph) RemoveEdge(from, to, label string) bool {
	for i, e := range g.Edges {
		if e.From == from && e.To == to && e.Label == label {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveNode deletes a node and every edge incident to it.
func (g *Graph) RemoveNode(nodeID string) {
	delete(g.Nodes, nodeID)
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if e.From == nodeID || e.To == nodeID {
			continue
		}
		kept = append(kept, e)
	}
	g.Edges = kept
}
