// vocabextract scans a DMRS XML stream and writes a vocabulary file
// counting every node and link label, or with -cargs every carg instead, the
// -v/-c flags of dmrs_idmap.py (spec.md §4.8).
package main

import (
	"bufio"
	"bytes"
	"flag"
	"os"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/ldemailly/dmrspreprocess/dmrs"
	"github.com/ldemailly/dmrspreprocess/wordmap"
)

var (
	inputFile    = flag.String("input", "-", "DMRS XML stream to scan (\"-\" for stdin)")
	outputFile   = flag.String("output", "-", "Where to write the vocabulary file (\"-\" for stdout)")
	extractCargs = flag.Bool("cargs", false, "Count cargs instead of labels")
)

func main() {
	cli.ArgsHelp = ""
	cli.MinArgs = 0
	cli.MaxArgs = 0
	cli.Main()

	input, err := openReader(*inputFile)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}
	defer input.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(input); err != nil {
		log.Fatalf("reading input: %v", err)
	}

	v := wordmap.NewVocab()
	for i, chunk := range splitGraphs(buf.Bytes()) {
		g, err := dmrs.Load(chunk)
		if err != nil {
			log.Errf("graph %d: %v, skipping", i, err)
			continue
		}
		if *extractCargs {
			v.ExtractCargs(g)
		} else {
			v.ExtractLabels(g)
		}
	}

	out, err := openWriter(*outputFile)
	if err != nil {
		log.Fatalf("opening output: %v", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	defer w.Flush()
	if err := v.Write(w); err != nil {
		log.Fatalf("writing vocabulary: %v", err)
	}
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
