// Package pipeline wires every preprocessing stage into the fixed order
// spec.md §4.8 mandates: MT-prep, ltop, gpred filter, token align,
// unaligned align, span curb, unknown-word rewrite, labeler, cycle
// remover, map_tokens, attach untok/tok. This is the only place that
// knows that order.
package pipeline

import (
	"strings"

	"fortio.org/log"

	"github.com/ldemailly/dmrspreprocess/align"
	"github.com/ldemailly/dmrspreprocess/cyclebreak"
	"github.com/ldemailly/dmrspreprocess/dmrs"
	"github.com/ldemailly/dmrspreprocess/gpredfilter"
	"github.com/ldemailly/dmrspreprocess/heuristics"
	"github.com/ldemailly/dmrspreprocess/label"
	"github.com/ldemailly/dmrspreprocess/lemma"
	"github.com/ldemailly/dmrspreprocess/mtprep"
	"github.com/ldemailly/dmrspreprocess/wordmap"
)

// Stages toggles which stages a Process call runs, so a caller can drive
// only the parts it needs (e.g. the idmap CLIs only need labels, not a
// full rewrite).
type Stages struct {
	MTPrep         bool
	LTop           bool
	GpredFilter    bool
	TokenAlign     bool
	UnalignedAlign bool
	SpanCurb       bool
	UnknownRewrite bool
	Label          bool
	CycleBreak     bool
	MapTokens      bool
}

// AllStages enables every stage, the orchestrator's default full run.
func AllStages() Stages {
	return Stages{
		MTPrep:         true,
		LTop:           true,
		GpredFilter:    true,
		TokenAlign:     true,
		UnalignedAlign: true,
		SpanCurb:       true,
		UnknownRewrite: true,
		Label:          true,
		CycleBreak:     true,
		MapTokens:      true,
	}
}

// Resources bundles the inputs the MT-prep, gpred filter, unaligned
// align, span curb, unknown-word rewrite, labeler and map_tokens stages
// consult. Per spec.md §5 these are read once at startup and shared
// read-only across workers; LabelWMap and TokWMap hold the exclusive-write label/token
// word-maps, so a single orchestrator instance is not safe to share
// across goroutines while they are being built.
type Resources struct {
	GpredFilterSet    gpredfilter.Set
	MaxSpanTokens     int
	RewriteTable      mtprep.RewriteTable
	HeuristicTable    heuristics.Table
	Oracle            lemma.Oracle
	LabelOptions      label.Options
	LabelWMap         *wordmap.WMap
	TokWMap           *wordmap.WMap
	AllowDisconnected bool
}

// Stats reports the per-graph outcome of the stages that can produce a
// non-fatal, observable result (spec.md §7's cycle-remover counters).
type Stats struct {
	CycleBreak cyclebreak.Stats
}

// Process runs the requested stages over g, its untokenized sentence
// untok, and its tokenization tok, mutating g in place and returning the
// stages' observable stats. Input not required by an enabled stage (tok,
// for instance, when neither alignment stage runs) may be empty.
func Process(g *dmrs.Graph, untok string, tok []string, stages Stages, res Resources) Stats {
	var stats Stats

	if stages.MTPrep {
		mtprep.Normalize(g)
		if res.RewriteTable != nil {
			mtprep.ApplyRewriteTable(g, res.RewriteTable)
		}
	}

	if stages.LTop {
		dmrs.HandleLTop(g)
	}

	if stages.GpredFilter && res.GpredFilterSet != nil {
		gpredfilter.Filter(g, gpredfilter.Options{
			Set:               res.GpredFilterSet,
			HandleLTop:        stages.LTop,
			AllowDisconnected: res.AllowDisconnected,
		})
	}

	if stages.TokenAlign {
		align.Align(g, untok, tok)
	}

	if stages.UnalignedAlign && res.HeuristicTable != nil {
		heuristics.Align(g, tok, res.HeuristicTable)
	}

	if stages.SpanCurb && res.MaxSpanTokens > 0 {
		gpredfilter.CurbSpans(g, res.MaxSpanTokens)
	}

	if stages.UnknownRewrite && res.Oracle != nil {
		lemma.RewriteUnknown(g, res.Oracle)
	}

	if stages.Label {
		label.Label(g, res.LabelOptions)
	}

	if stages.CycleBreak {
		stats.CycleBreak = cyclebreak.Remove(g)
		if stats.CycleBreak.NoneDetected > 0 {
			log.LogVf("pipeline: graph left with an unbroken cycle")
		}
	}

	if stages.MapTokens {
		if res.LabelWMap != nil {
			wordmap.LabelWMap(g, res.LabelWMap)
		}
		if res.TokWMap != nil {
			wordmap.MapTokens(g, tok, res.TokWMap)
		}
	}

	g.Untok = untok
	if len(tok) > 0 {
		g.Tok = strings.Join(tok, " ")
	}

	return stats
}
