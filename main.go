// dmrspreprocess reads a stream of DMRS XML graphs plus their matching
// untokenized-sentence and tokenization files, runs the enabled
// preprocessing stages in the fixed order spec.md §4.8 defines, and writes
// the normalized graphs back out. The unknown-word rewrite stage is never
// run: no lemmatizer oracle is wired in.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/ldemailly/dmrspreprocess/dmrs"
	"github.com/ldemailly/dmrspreprocess/gpredfilter"
	"github.com/ldemailly/dmrspreprocess/heuristics"
	"github.com/ldemailly/dmrspreprocess/label"
	"github.com/ldemailly/dmrspreprocess/mtprep"
	"github.com/ldemailly/dmrspreprocess/pipeline"
	"github.com/ldemailly/dmrspreprocess/wordmap"
)

var (
	inputFile  = flag.String("input", "-", "DMRS XML stream to process (\"-\" for stdin)")
	outputFile = flag.String("output", "-", "Where to write the processed DMRS stream (\"-\" for stdout)")
	untokFile  = flag.String("untok", "", "File with one untokenized sentence per line, matching the DMRS stream")
	tokFile    = flag.String("tok", "", "File with one space-tokenized sentence per line, matching the DMRS stream")

	filterFile        = flag.String("filter-file", "", "Gpred filter file (lines of \"name\\t(yes|no)\")")
	allowDisconnected = flag.Bool("allow-disconnected", false, "Let the gpred filter remove nodes even if that disconnects the graph")
	maxSpanTokens     = flag.Int("max-span-tokens", 0, "Clear alignment on gpred nodes whose span covers more tokens than this (0 disables)")
	cargClean         = flag.Bool("carg-clean", false, "Strip quotes from carg when labeling gpred nodes")

	labelWMapFile = flag.String("label-wmap", "", "Word-map file for node/link labels (read if present, rewritten on exit)")
	tokWMapFile   = flag.String("tok-wmap", "", "Word-map file for tokens (read if present, rewritten on exit)")

	mtPrepStage         = flag.Bool("mt-prep", true, "Run the MT-prep normalization stage")
	ltopStage           = flag.Bool("ltop", true, "Run the LTOP ghost-link resolution stage")
	gpredFilterStage    = flag.Bool("gpred-filter", true, "Run the gpred filter stage (needs -filter-file)")
	tokenAlignStage     = flag.Bool("token-align", true, "Run the token alignment stage (needs -untok and -tok)")
	unalignedAlignStage = flag.Bool("unaligned-align", true, "Run the unaligned-token heuristic alignment stage")
	spanCurbStage       = flag.Bool("span-curb", true, "Run the span-curb stage (needs -max-span-tokens)")
	labelStage          = flag.Bool("label", true, "Run the labeler stage")
	cycleBreakStage     = flag.Bool("cycle-break", true, "Run the cycle remover stage")
	mapTokensStage      = flag.Bool("map-tokens", true, "Run the word-map annotation stage")
)

func main() {
	cli.ArgsHelp = ""
	cli.MinArgs = 0
	cli.MaxArgs = 0
	cli.Main()

	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	input, err := openReader(*inputFile)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer input.Close()

	out, err := openWriter(*outputFile)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer out.Close()

	untokLines, err := readLines(*untokFile)
	if err != nil {
		return fmt.Errorf("reading -untok: %w", err)
	}
	tokLines, err := readLines(*tokFile)
	if err != nil {
		return fmt.Errorf("reading -tok: %w", err)
	}

	res, err := loadResources()
	if err != nil {
		return err
	}
	stages := pipeline.Stages{
		MTPrep:         *mtPrepStage,
		LTop:           *ltopStage,
		GpredFilter:    *gpredFilterStage,
		TokenAlign:     *tokenAlignStage,
		UnalignedAlign: *unalignedAlignStage,
		SpanCurb:       *spanCurbStage,
		UnknownRewrite: false,
		Label:          *labelStage,
		CycleBreak:     *cycleBreakStage,
		MapTokens:      *mapTokensStage,
	}

	data, err := readAll(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	writer := bufio.NewWriter(out)
	defer writer.Flush()

	for i, chunk := range splitGraphs(data) {
		g, err := dmrs.Load(chunk)
		if err != nil {
			log.Errf("graph %d: %v, skipping", i, err)
			continue
		}

		untok := lineAt(untokLines, i)
		tok := tokensAt(tokLines, i)

		stats := pipeline.Process(g, untok, tok, stages, res)
		if stats.CycleBreak.NoneDetected > 0 {
			log.Warnf("graph %d: left with an unbroken cycle", i)
		}

		writer.Write(dmrs.Dump(g))
		writer.WriteString("\n")
	}

	return writeResources(res)
}

func loadResources() (pipeline.Resources, error) {
	res := pipeline.Resources{
		MaxSpanTokens:     *maxSpanTokens,
		AllowDisconnected: *allowDisconnected,
		LabelOptions:      label.Options{CargClean: *cargClean},
	}

	if *filterFile != "" {
		f, err := os.Open(*filterFile)
		if err != nil {
			return res, fmt.Errorf("opening -filter-file: %w", err)
		}
		defer f.Close()
		set, err := gpredfilter.ParseFilterFile(f)
		if err != nil {
			return res, fmt.Errorf("parsing -filter-file: %w", err)
		}
		res.GpredFilterSet = set
	}

	table, err := heuristics.DefaultTable()
	if err != nil {
		return res, fmt.Errorf("loading heuristic table: %w", err)
	}
	res.HeuristicTable = table

	res.LabelWMap, err = loadWMapFile(*labelWMapFile)
	if err != nil {
		return res, err
	}
	res.TokWMap, err = loadWMapFile(*tokWMapFile)
	if err != nil {
		return res, err
	}

	return res, nil
}

func loadWMapFile(path string) (*wordmap.WMap, error) {
	if path == "" {
		return wordmap.NewWMap(), nil
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return wordmap.NewWMap(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening word-map %q: %w", path, err)
	}
	defer f.Close()
	w, err := wordmap.LoadWMap(f)
	if err != nil {
		return nil, fmt.Errorf("loading word-map %q: %w", path, err)
	}
	return w, nil
}

func writeResources(res pipeline.Resources) error {
	if err := writeWMapFile(*labelWMapFile, res.LabelWMap); err != nil {
		return err
	}
	return writeWMapFile(*tokWMapFile, res.TokWMap)
}

func writeWMapFile(path string, w *wordmap.WMap) error {
	if path == "" || w == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing word-map %q: %w", path, err)
	}
	defer f.Close()
	if err := w.Write(f); err != nil {
		return fmt.Errorf("writing word-map %q: %w", path, err)
	}
	return nil
}

// splitGraphs breaks a concatenated DMRS stream into one chunk per
// "<dmrs" delimiter (spec.md §6), each chunk running to the next
// delimiter or EOF.
func splitGraphs(data []byte) [][]byte {
	const marker = "<dmrs"
	var chunks [][]byte
	start := bytes.Index(data, []byte(marker))
	for start != -1 {
		rest := data[start+len(marker):]
		next := bytes.Index(rest, []byte(marker))
		if next == -1 {
			chunks = append(chunks, data[start:])
			break
		}
		chunks = append(chunks, data[start:start+len(marker)+next])
		start = start + len(marker) + next
	}
	return chunks
}

func readAll(f *os.File) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(f)
	return buf.Bytes(), err
}

func readLines(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

func tokensAt(lines []string, i int) []string {
	line := lineAt(lines, i)
	if line == "" {
		return nil
	}
	return strings.Fields(line)
}

func openReader(path string) (*os.File, error) {
	if path == "-" || path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func openWriter(path string) (*os.File, error) {
	if path == "-" || path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
