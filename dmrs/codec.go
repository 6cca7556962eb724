package dmrs

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"fortio.org/log"
)

// ErrMalformedXML wraps the underlying XML decode error for a graph that
// could not be parsed (spec.md §7 "Malformed XML").
type ErrMalformedXML struct {
	Err error
}

func (e *ErrMalformedXML) Error() string { return fmt.Sprintf("malformed dmrs xml: %v", e.Err) }
func (e *ErrMalformedXML) Unwrap() error { return e.Err }

// ErrMissingAttribute is returned when a required attribute (nodeid,
// from, to, cfrom, cto) is absent (spec.md §7).
type ErrMissingAttribute struct {
	Element, Attribute string
}

func (e *ErrMissingAttribute) Error() string {
	return fmt.Sprintf("missing required attribute %q on <%s>", e.Attribute, e.Element)
}

// rawElement mirrors the generic XML shape used to load a <dmrs> document
// without committing to a fixed attribute set, so unrecognized attributes
// on every element can be preserved for round-tripping.
type rawElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content []byte     `xml:",innerxml"`
	Nodes   []rawElement `xml:",any"`
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

func takeKnown(m map[string]string, keys ...string) map[string]string {
	extra := make(map[string]string, len(m))
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
	}
	for k, v := range m {
		if !known[k] {
			extra[k] = v
		}
	}
	return extra
}

// Load parses a single <dmrs> XML document into a Graph.
func Load(data []byte) (*Graph, error) {
	var root rawElement
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, &ErrMalformedXML{Err: err}
	}
	if root.XMLName.Local != "" && root.XMLName.Local != "dmrs" {
		return nil, &ErrMalformedXML{Err: fmt.Errorf("root element is <%s>, want <dmrs>", root.XMLName.Local)}
	}

	rootAttrs := attrMap(root.Attrs)
	g := NewGraph()
	if v, ok := rootAttrs["ltop"]; ok {
		g.LTop = v
	}
	if v, ok := rootAttrs["index"]; ok {
		g.Index = v
	}
	g.Untok = rootAttrs["untok"]
	g.Tok = rootAttrs["tok"]
	g.ExtraAttrs = takeKnown(rootAttrs, "ltop", "index", "untok", "tok", "cfrom", "cto")
	if cf, ok := rootAttrs["cfrom"]; ok {
		g.ExtraAttrs["cfrom"] = cf
	}
	if ct, ok := rootAttrs["cto"]; ok {
		g.ExtraAttrs["cto"] = ct
	}

	for _, child := range root.Nodes {
		switch child.XMLName.Local {
		case "node":
			n, err := decodeNode(child)
			if err != nil {
				return nil, err
			}
			g.Nodes[n.NodeID] = n
		case "link":
			e, err := decodeLink(child)
			if err != nil {
				return nil, err
			}
			g.Edges = append(g.Edges, e)
		default:
			log.LogVf("dmrs.Load: ignoring unrecognized root child <%s>", child.XMLName.Local)
		}
	}

	return g, nil
}

func decodeNode(el rawElement) (*Node, error) {
	attrs := attrMap(el.Attrs)
	nodeID, ok := attrs["nodeid"]
	if !ok || nodeID == "" {
		return nil, &ErrMissingAttribute{Element: "node", Attribute: "nodeid"}
	}
	cfromStr, ok := attrs["cfrom"]
	if !ok {
		return nil, &ErrMissingAttribute{Element: "node", Attribute: "cfrom"}
	}
	ctoStr, ok := attrs["cto"]
	if !ok {
		return nil, &ErrMissingAttribute{Element: "node", Attribute: "cto"}
	}
	cfrom, err := strconv.Atoi(cfromStr)
	if err != nil {
		return nil, fmt.Errorf("node %s: bad cfrom %q: %w", nodeID, cfromStr, err)
	}
	cto, err := strconv.Atoi(ctoStr)
	if err != nil {
		return nil, fmt.Errorf("node %s: bad cto %q: %w", nodeID, ctoStr, err)
	}

	n := &Node{
		NodeID:  nodeID,
		HasSpan: true,
		CFrom:   cfrom,
		CTo:     cto,
		CARG:    attrs["carg"],
	}
	n.TokAlign = parseTokAlign(attrs["tokalign"])
	n.Label = attrs["label"]
	n.LabelIdx = attrs["label_idx"]
	n.Tok = attrs["tok"]
	n.TokIdx = attrs["tok_idx"]
	n.ExtraAttrs = takeKnown(attrs, "nodeid", "cfrom", "cto", "carg", "tokalign", "label", "label_idx", "tok", "tok_idx")

	for _, sub := range el.Nodes {
		subAttrs := attrMap(sub.Attrs)
		switch sub.XMLName.Local {
		case "realpred":
			n.IsGPred = false
			n.Real = RealPred{
				Lemma: subAttrs["lemma"],
				Pos:   subAttrs["pos"],
				Sense: subAttrs["sense"],
			}
		case "gpred":
			n.IsGPred = true
			n.GPred = GPred{Name: strings.TrimSpace(string(sub.Content))}
		case "sortinfo":
			n.Sortinfo = Sortinfo{
				Num:   subAttrs["num"],
				Pers:  subAttrs["pers"],
				Gend:  subAttrs["gend"],
				Tense: subAttrs["tense"],
				SF:    subAttrs["sf"],
				Perf:  subAttrs["perf"],
				Prog:  subAttrs["prog"],
			}
		default:
			log.LogVf("dmrs.Load: node %s has unrecognized child <%s>", nodeID, sub.XMLName.Local)
		}
	}

	return n, nil
}

func decodeLink(el rawElement) (*Edge, error) {
	attrs := attrMap(el.Attrs)
	from, ok := attrs["from"]
	if !ok {
		return nil, &ErrMissingAttribute{Element: "link", Attribute: "from"}
	}
	to, ok := attrs["to"]
	if !ok {
		return nil, &ErrMissingAttribute{Element: "link", Attribute: "to"}
	}

	e := &Edge{From: from, To: to, Label: attrs["label"], LabelIdx: attrs["label_idx"]}
	e.ExtraAttrs = takeKnown(attrs, "from", "to", "label", "label_idx")

	for _, sub := range el.Nodes {
		switch sub.XMLName.Local {
		case "rargname":
			e.Arg = strings.TrimSpace(string(sub.Content))
		case "post":
			e.Post = strings.TrimSpace(string(sub.Content))
		}
	}
	return e, nil
}

func parseTokAlign(s string) []int {
	s = strings.TrimSpace(s)
	if s == "" || s == "-1" {
		return nil
	}
	var out []int
	for _, f := range strings.Fields(s) {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			continue
		}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

func formatTokAlign(toks []int) string {
	if len(toks) == 0 {
		return "-1"
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, " ")
}

// Dump serializes a Graph back into <dmrs> XML, with nodes sorted by
// integer nodeid and edges sorted by (from,to,label) per spec.md §4.1.
func Dump(g *Graph) []byte {
	var b strings.Builder
	b.WriteString("<dmrs")
	writeAttr(&b, "cfrom", g.ExtraAttrs["cfrom"])
	writeAttr(&b, "cto", g.ExtraAttrs["cto"])
	writeAttr(&b, "ltop", g.LTop)
	writeAttr(&b, "index", g.Index)
	if g.Untok != "" {
		writeAttr(&b, "untok", g.Untok)
	}
	if g.Tok != "" {
		writeAttr(&b, "tok", g.Tok)
	}
	for _, k := range sortedExtraKeys(g.ExtraAttrs, "cfrom", "cto") {
		writeAttr(&b, k, g.ExtraAttrs[k])
	}
	b.WriteString(">\n")

	for _, id := range g.SortedNodeIDs() {
		writeNode(&b, g.Nodes[id])
	}
	for _, e := range g.SortedEdges() {
		writeEdge(&b, e)
	}

	b.WriteString("</dmrs>")
	return []byte(b.String())
}

func sortedExtraKeys(m map[string]string, skip ...string) []string {
	skipSet := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipSet[s] = true
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		if !skipSet[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func writeAttr(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, " %s=%q", name, value)
}

func writeNode(b *strings.Builder, n *Node) {
	b.WriteString("<node")
	writeAttr(b, "nodeid", n.NodeID)
	writeAttr(b, "cfrom", strconv.Itoa(n.CFrom))
	writeAttr(b, "cto", strconv.Itoa(n.CTo))
	if n.CARG != "" {
		writeAttr(b, "carg", n.CARG)
	}
	writeAttr(b, "tokalign", formatTokAlign(n.TokAlign))
	if n.Label != "" {
		writeAttr(b, "label", n.Label)
	}
	if n.LabelIdx != "" {
		writeAttr(b, "label_idx", n.LabelIdx)
	}
	if n.Tok != "" {
		writeAttr(b, "tok", n.Tok)
	}
	if n.TokIdx != "" {
		writeAttr(b, "tok_idx", n.TokIdx)
	}
	for _, k := range sortedExtraKeys(n.ExtraAttrs) {
		writeAttr(b, k, n.ExtraAttrs[k])
	}
	b.WriteString(">")

	if n.IsGPred {
		b.WriteString("<gpred>")
		xml.EscapeText(b2w{b}, []byte(n.GPred.Name))
		b.WriteString("</gpred>")
	} else {
		b.WriteString("<realpred")
		writeAttr(b, "lemma", n.Real.Lemma)
		if n.Real.Sense != "" {
			writeAttr(b, "sense", n.Real.Sense)
		}
		writeAttr(b, "pos", n.Real.Pos)
		b.WriteString("/>")
	}

	if !n.Sortinfo.Empty() {
		b.WriteString("<sortinfo")
		writeOptAttr(b, "num", n.Sortinfo.Num)
		writeOptAttr(b, "pers", n.Sortinfo.Pers)
		writeOptAttr(b, "gend", n.Sortinfo.Gend)
		writeOptAttr(b, "tense", n.Sortinfo.Tense)
		writeOptAttr(b, "sf", n.Sortinfo.SF)
		writeOptAttr(b, "perf", n.Sortinfo.Perf)
		writeOptAttr(b, "prog", n.Sortinfo.Prog)
		b.WriteString("/>")
	}

	b.WriteString("</node>\n")
}

func writeOptAttr(b *strings.Builder, name, value string) {
	if value != "" {
		writeAttr(b, name, value)
	}
}

func writeEdge(b *strings.Builder, e *Edge) {
	b.WriteString("<link")
	writeAttr(b, "from", e.From)
	writeAttr(b, "to", e.To)
	if e.Label != "" {
		writeAttr(b, "label", e.Label)
	}
	if e.LabelIdx != "" {
		writeAttr(b, "label_idx", e.LabelIdx)
	}
	for _, k := range sortedExtraKeys(e.ExtraAttrs) {
		writeAttr(b, k, e.ExtraAttrs[k])
	}
	b.WriteString(">")
	if e.Arg != "" {
		b.WriteString("<rargname>")
		xml.EscapeText(b2w{b}, []byte(e.Arg))
		b.WriteString("</rargname>")
	}
	if e.Post != "" {
		b.WriteString("<post>")
		xml.EscapeText(b2w{b}, []byte(e.Post))
		b.WriteString("</post>")
	}
	b.WriteString("</link>\n")
}

// b2w adapts strings.Builder to io.Writer for xml.EscapeText.
type b2w struct{ b *strings.Builder }

func (w b2w) Write(p []byte) (int, error) { return w.b.Write(p) }
