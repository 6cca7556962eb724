// Package heuristics implements the unaligned-token alignment heuristics
// (unaligned_tokens_heuristics.py / unaligned_tokens_align.py): once token
// alignment (package align) has run, some tokens still have no node -
// function words like "do", "is", "who" rarely correspond to a DMRS node of
// their own. This package looks them up in a per-surface-form table of
// strategies, each of which scans nearby already-aligned nodes for one
// matching a small set of constraints, and attaches the token to the first
// match.
package heuristics

import (
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/ldemailly/dmrspreprocess/dmrs"
)

// StringList unmarshals from either a single YAML scalar or a sequence,
// since the original table's "pos"/"gpred_rel" fields mix both forms.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for the scalar-or-sequence shape.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	var single string
	if err := value.Decode(&single); err == nil {
		*s = StringList{single}
		return nil
	}
	var multi []string
	if err := value.Decode(&multi); err != nil {
		return err
	}
	*s = multi
	return nil
}

// Contains reports whether v is present in the list.
func (s StringList) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Constraints is a constraint-satisfaction check against a node and its
// outgoing arguments (match_node): every non-empty field here must be
// consumed by a matching fact on the node for the whole set to match.
type Constraints struct {
	Realpred   bool        `yaml:"realpred,omitempty"`
	Pos        StringList  `yaml:"pos,omitempty"`
	Lemma      string      `yaml:"lemma,omitempty"`
	Sense      string      `yaml:"sense,omitempty"`
	SenseRegex string      `yaml:"sense_regex,omitempty"`
	Tense      string      `yaml:"tense,omitempty"`
	Perf       string      `yaml:"perf,omitempty"`
	Prog       string      `yaml:"prog,omitempty"`
	Gpred      bool        `yaml:"gpred,omitempty"`
	GpredRel   StringList  `yaml:"gpred_rel,omitempty"`
	ArgsOr     []ArgMatch  `yaml:"args_or,omitempty"`
}

// ArgMatch is one branch of an args_or constraint: an outgoing edge must
// carry Label and its target node must satisfy Constraints.
type ArgMatch struct {
	Label       string `yaml:"label"`
	Constraints `yaml:",inline"`
}

// NodeArg is one outgoing argument of a node: the "rarg/post" edge label and
// the node it points to, built before the labeler stage has run.
type NodeArg struct {
	Label string
	Node  *dmrs.Node
}

func (c Constraints) isEmpty() bool {
	return !c.Realpred && len(c.Pos) == 0 && c.Lemma == "" && c.Sense == "" &&
		c.SenseRegex == "" && c.Tense == "" && c.Perf == "" && c.Prog == "" &&
		!c.Gpred && len(c.GpredRel) == 0 && len(c.ArgsOr) == 0
}

// MatchNode reports whether node (with its outgoing arguments args)
// satisfies every field of c, consuming matched fields from a working copy
// exactly as the original match_node deletes satisfied keys from params.
func MatchNode(node *dmrs.Node, args []NodeArg, c Constraints) bool {
	remaining := c

	if !node.IsGPred {
		real := node.Real
		if remaining.Realpred {
			remaining.Realpred = false
		}
		if len(remaining.Pos) > 0 && remaining.Pos.Contains(real.Pos) {
			remaining.Pos = nil
		}
		if remaining.Lemma != "" && remaining.Lemma == real.Lemma {
			remaining.Lemma = ""
		}
		if remaining.Sense != "" && remaining.Sense == real.Sense {
			remaining.Sense = ""
		}
		if remaining.SenseRegex != "" && real.Sense != "" && matchAnchored(remaining.SenseRegex, real.Sense) {
			remaining.SenseRegex = ""
		}
	}

	si := node.Sortinfo
	if remaining.Tense != "" && remaining.Tense == si.Tense {
		remaining.Tense = ""
	}
	if remaining.Perf != "" && remaining.Perf == si.Perf {
		remaining.Perf = ""
	}
	if remaining.Prog != "" && remaining.Prog == si.Prog {
		remaining.Prog = ""
	}

	if remaining.Gpred && node.IsGPred {
		remaining.Gpred = false
		if len(remaining.GpredRel) > 0 && remaining.GpredRel.Contains(node.GPred.Name) {
			remaining.GpredRel = nil
		}
	}

	if len(remaining.ArgsOr) > 0 && matchArg(remaining.ArgsOr, args) {
		remaining.ArgsOr = nil
	}

	return remaining.isEmpty()
}

// matchArg reports whether any of node's outgoing args matches one of the
// args_or branches, with the branch's own constraints checked without
// recursing into that target's own arguments (match_arg).
func matchArg(branches []ArgMatch, args []NodeArg) bool {
	for _, arg := range args {
		for _, branch := range branches {
			if arg.Label == branch.Label && MatchNode(arg.Node, nil, branch.Constraints) {
				return true
			}
		}
	}
	return false
}

// matchAnchored mirrors Python's re.match: the pattern need only match a
// prefix of s, not the whole string.
func matchAnchored(pattern, s string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}
