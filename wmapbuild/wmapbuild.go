// wmapbuild builds the deterministic label word-map from a vocabulary
// file (vocabextract's output) and applies it, together with a token
// word-map built on the fly, to a DMRS stream, the dmrs_idmap.py step
// that runs independently of the rest of the preprocessing pipeline
// (spec.md §4.8).
package main

import (
	"bufio"
	"bytes"
	"flag"
	"os"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/ldemailly/dmrspreprocess/dmrs"
	"github.com/ldemailly/dmrspreprocess/wordmap"
)

var (
	inputFile  = flag.String("input", "-", "DMRS XML stream to annotate (\"-\" for stdin)")
	outputFile = flag.String("output", "-", "Where to write the annotated DMRS stream (\"-\" for stdout)")
	tokFile    = flag.String("tok", "", "File with one space-tokenized sentence per line, matching the DMRS stream")

	vocabFile     = flag.String("vocab", "", "Vocabulary file (vocabextract's output) to build the label word-map from")
	labelWMapFile = flag.String("label-wmap", "", "Where to write the built label word-map")
	tokWMapFile   = flag.String("tok-wmap", "", "Token word-map file (read if present, rewritten on exit)")
)

func main() {
	cli.ArgsHelp = ""
	cli.MinArgs = 0
	cli.MaxArgs = 0
	cli.Main()

	labelWMap, err := loadLabelWMap()
	if err != nil {
		log.Fatalf("building label word-map: %v", err)
	}
	tokWMap, err := loadWMapFile(*tokWMapFile)
	if err != nil {
		log.Fatalf("loading -tok-wmap: %v", err)
	}

	input, err := openReader(*inputFile)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}
	defer input.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(input); err != nil {
		log.Fatalf("reading input: %v", err)
	}
	tokLines, err := readLines(*tokFile)
	if err != nil {
		log.Fatalf("reading -tok: %v", err)
	}

	out, err := openWriter(*outputFile)
	if err != nil {
		log.Fatalf("opening output: %v", err)
	}
	defer out.Close()
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	for i, chunk := range splitGraphs(buf.Bytes()) {
		g, err := dmrs.Load(chunk)
		if err != nil {
			log.Errf("graph %d: %v, skipping", i, err)
			continue
		}

		wordmap.LabelWMap(g, labelWMap)
		if tok := tokensAt(tokLines, i); len(tok) > 0 {
			wordmap.MapTokens(g, tok, tokWMap)
		}

		writer.Write(dmrs.Dump(g))
		writer.WriteString("\n")
	}

	if err := writeWMapFile(*labelWMapFile, labelWMap); err != nil {
		log.Fatalf("writing -label-wmap: %v", err)
	}
	if err := writeWMapFile(*tokWMapFile, tokWMap); err != nil {
		log.Fatalf("writing -tok-wmap: %v", err)
	}
}

func loadLabelWMap() (*wordmap.WMap, error) {
	if *vocabFile == "" {
		return loadWMapFile(*labelWMapFile)
	}
	f, err := os.Open(*vocabFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wordmap.BuildFromVocab(f)
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
		return nil, err
	}
	defer f.Close()
	return wordmap.LoadWMap(f)
}

func writeWMapFile(path string, w *wordmap.WMap) error {
	if path == "" || w == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return w.Write(f)
}

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

func tokensAt(lines []string, i int) []string {
	if i < 0 || i >= len(lines) || lines[i] == "" {
		return nil
	}
	return strings.Fields(lines[i])
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
