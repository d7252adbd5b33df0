// Package epd reads perft suites and checks them against the move generator.
//
// A suite line holds a FEN followed by expected leaf counts:
//
//	rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 ;D1 20 ;D2 400
package epd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrMalformedLine = errors.New("epd: malformed line")

// Entry is one position of a suite.
type Entry struct {
	Line   int
	FEN    string
	Depths map[int]uint64
}

// SortedDepths returns the depths of e in increasing order.
func (e Entry) SortedDepths() []int {
	d := maps.Keys(e.Depths)
	slices.Sort(d)
	return d
}

// LineError reports where a suite failed to parse.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *LineError) Unwrap() error { return e.Err }

// Parse reads a suite. Blank lines and lines starting with '#' are skipped.
// Only the shape of each line is checked here; FEN errors surface when the
// entry is run.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, &LineError{Line: lineNo, Text: line, Err: err}
		}
		e.Line = lineNo
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseLine(line string) (Entry, error) {
	parts := strings.Split(line, ";")
	fen := strings.TrimSpace(parts[0])
	if fen == "" || len(parts) < 2 {
		return Entry{}, ErrMalformedLine
	}
	e := Entry{FEN: fen, Depths: make(map[int]uint64, len(parts)-1)}
	for _, p := range parts[1:] {
		fields := strings.Fields(p)
		if len(fields) != 2 || len(fields[0]) < 2 || (fields[0][0] != 'D' && fields[0][0] != 'd') {
			return Entry{}, fmt.Errorf("%w: bad depth field %q", ErrMalformedLine, strings.TrimSpace(p))
		}
		depth, err := strconv.Atoi(fields[0][1:])
		if err != nil || depth < 1 {
			return Entry{}, fmt.Errorf("%w: bad depth %q", ErrMalformedLine, fields[0])
		}
		nodes, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: bad node count %q", ErrMalformedLine, fields[1])
		}
		if _, dup := e.Depths[depth]; dup {
			return Entry{}, fmt.Errorf("%w: depth %d repeated", ErrMalformedLine, depth)
		}
		e.Depths[depth] = nodes
	}
	return e, nil
}
