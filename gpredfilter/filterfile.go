// Package gpredfilter implements the connectivity-preserving gpred
// filter (spec.md §4.3): it removes grammatical-predicate nodes named in
// a filter set, refusing any individual removal that would disconnect
// the graph, and reassigns the ltop root if it was removed.
package gpredfilter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fortio.org/log"
)

// ErrFilterFileParse is returned for a malformed filter file line
// (spec.md §7 "Filter file parse error", fatal at startup).
type ErrFilterFileParse struct {
	Line int
	Text string
}

func (e *ErrFilterFileParse) Error() string {
	return fmt.Sprintf("gpred filter file: line %d: malformed entry %q (want \"<gpred>\\t(yes|no)\")", e.Line, e.Text)
}

// Set is the set of gpred names the filter removes ("no" entries in the
// filter file — spec.md §6).
type Set map[string]bool

// ParseFilterFile reads a gpred filter file: lines of the form
// "<gpred_name>\t(yes|no)"; blank or "#" lines are comments; "no"
// entries form the filter-out set the filter acts on. "yes" entries
// (filter-in) are collected but unused, per spec.md §6.
func ParseFilterFile(r io.Reader) (Set, error) {
	out := make(Set)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, &ErrFilterFileParse{Line: lineNo, Text: line}
		}
		name, verdict := fields[0], fields[1]
		switch verdict {
		case "no":
			out[name] = true
		case "yes":
			// filter-in, collected but unused per spec.md §6.
		default:
			return nil, &ErrFilterFileParse{Line: lineNo, Text: line}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.LogVf("gpredfilter: parsed %d filter-out entries", len(out))
	return out, nil
}
