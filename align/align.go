// Package align implements the basic and compound character-span token
// aligner (spec.md §4.5): it maps each node's (cfrom, cto) span onto the
// token indices of a pre-tokenized sentence, using exact, normalized,
// and Levenshtein-fuzzy string matching.
package align

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// levenshteinRatio is the similarity threshold above which two strings
// are considered a fuzzy match (token_align.py's LEVENSHTEIN_RATIO).
const levenshteinRatio = 0.90

// levenshteinParams matches python-Levenshtein's ratio(): substitutions
// cost twice an insertion/deletion, which is what lets the (len1+len2-dist)
// over (len1+len2) formula below behave as the Sorensen-style ratio
// spec.md §4.5 names, rather than the package's own Match/Similarity
// normalization.
var levenshteinParams = levenshtein.NewParams().SubCost(2)

// levenshteinRatioScore reproduces python-Levenshtein's ratio(): edit
// distance with substitution cost 2, normalized by the sum of the two
// string lengths.
func levenshteinRatioScore(a, b string) float64 {
	l1, l2 := len([]rune(a)), len([]rune(b))
	if l1 == 0 && l2 == 0 {
		return 1
	}
	dist := levenshtein.Distance(a, b, levenshteinParams)
	return float64(l1+l2-dist) / float64(l1+l2)
}

type span struct {
	from, to int
}

// charSpans groups every node's (cfrom, cto) span under its start
// offset, ascending-(cto) sorted, mirroring get_node_strings.
type charSpans map[int][]spanString

type spanString struct {
	to   int
	text string
}

// Align computes token alignment for every node in g against untok (the
// untokenized sentence) and tok (its tokens), writing the result into
// each node's TokAlign field. Nodes without a span are left untouched.
func Align(g *dmrs.Graph, untok string, tok []string) {
	spans := collectSpans(g, untok)
	matches := matchBasicTokens(spans, tok)
	matchCompoundTokens(spans, matches)
	attachTokenInfo(g, matches)
}

func collectSpans(g *dmrs.Graph, untok string) charSpans {
	runes := []rune(untok)
	spans := make(charSpans)
	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if !n.HasSpan {
			continue
		}
		text := ""
		if n.CFrom >= 0 && n.CTo+1 <= len(runes) && n.CFrom <= n.CTo {
			text = string(runes[n.CFrom : n.CTo+1])
		}
		spans[n.CFrom] = append(spans[n.CFrom], spanString{to: n.CTo, text: text})
	}
	for start := range spans {
		list := spans[start]
		sort.Slice(list, func(i, j int) bool {
			if list[i].to != list[j].to {
				return list[i].to < list[j].to
			}
			return list[i].text < list[j].text
		})
		spans[start] = list
	}
	return spans
}

func sortedStarts(spans charSpans) []int {
	starts := make([]int, 0, len(spans))
	for s := range spans {
		starts = append(starts, s)
	}
	sort.Ints(starts)
	return starts
}

// matchBasicTokens assigns each span's elementary (first) string a
// contiguous run of one or two tokens, scanning tok left to right and
// never reusing a token already consumed by an earlier span.
func matchBasicTokens(spans charSpans, tok []string) map[span][]int {
	matches := make(map[span][]int)
	tokPointer := 0

	for _, start := range sortedStarts(spans) {
		first := spans[start][0]
		untokString := strings.TrimSpace(first.text)
		key := span{start, first.to}

		found := false
		for i := tokPointer; i < len(tok); i++ {
			if matchToken(untokString, tok[i]) {
				matches[key] = []int{i}
				tokPointer = i + 1
				found = true
				break
			}
		}
		if found {
			continue
		}

		for i := tokPointer; i+1 < len(tok); i++ {
			if match2Token(untokString, tok[i], tok[i+1]) {
				matches[key] = []int{i, i + 1}
				tokPointer = i + 2
				break
			}
		}
	}
	return matches
}

// matchCompoundTokens fills in spans whose elementary string didn't
// match on its own but whose start and end elementary spans both did,
// by spanning every token between them.
func matchCompoundTokens(spans charSpans, matches map[span][]int) {
	for _, start := range sortedStarts(spans) {
		for _, entry := range spans[start] {
			key := span{start, entry.to}
			if _, ok := matches[key]; ok {
				continue
			}

			startElem := span{start, spans[start][0].to}
			startToks, ok := matches[startElem]
			if !ok {
				continue
			}

			endElem := findEnd(entry.to, spans)
			if endElem == nil {
				continue
			}
			endToks, ok := matches[*endElem]
			if !ok {
				continue
			}

			first, last := startToks[0], endToks[len(endToks)-1]
			toks := make([]int, 0, last-first+1)
			for i := first; i <= last; i++ {
				toks = append(toks, i)
			}
			matches[key] = toks
		}
	}
}

func findEnd(targetEnd int, spans charSpans) *span {
	for _, start := range sortedStarts(spans) {
		if start >= targetEnd {
			break
		}
		end := spans[start][0].to
		if end == targetEnd {
			return &span{start, end}
		}
	}
	return nil
}

func attachTokenInfo(g *dmrs.Graph, matches map[span][]int) {
	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if !n.HasSpan {
			continue
		}
		if toks, ok := matches[span{n.CFrom, n.CTo}]; ok {
			sorted := append([]int(nil), toks...)
			sort.Ints(sorted)
			n.TokAlign = sorted
		} else {
			n.TokAlign = nil
		}
	}
}

var stripPunctuation = "'\"-,.:;!?"

func matchToken(untokString, tok string) bool {
	untokString = strings.TrimSpace(untokString)
	untokNoPunc := strings.TrimRight(untokString, stripPunctuation)

	if untokString == tok || strings.ToLower(untokString) == tok {
		return true
	}
	if untokNoPunc == tok || strings.ToLower(untokNoPunc) == tok {
		return true
	}
	if levenshteinRatioScore(untokString, tok) > levenshteinRatio {
		return true
	}
	return false
}

func match2Token(untokString, tok1, tok2 string) bool {
	return matchToken(untokString, tok1+" "+tok2) || matchToken(untokString, tok1+tok2)
}
