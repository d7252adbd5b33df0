package epd

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func loadSuite(t *testing.T) []Entry {
	t.Helper()
	f, err := os.Open("testdata/standard.epd")
	if err != nil {
		t.Fatalf("open suite: %v", err)
	}
	defer f.Close()
	entries, err := Parse(f)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return entries
}

func TestParse(t *testing.T) {
	in := "# comment\n\nk7/8/8/8/8/8/8/7K w - - 0 1 ;D1 3 ; D2 9\n"
	entries, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Entry{{Line: 3, FEN: "k7/8/8/8/8/8/8/7K w - - 0 1", Depths: map[int]uint64{1: 3, 2: 9}}}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("entries (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, entries[0].SortedDepths()); diff != "" {
		t.Fatalf("depth order (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"k7/8/8/8/8/8/8/7K w - - 0 1",
		"k7/8/8/8/8/8/8/7K w - - 0 1 ;X1 3",
		"k7/8/8/8/8/8/8/7K w - - 0 1 ;D0 3",
		"k7/8/8/8/8/8/8/7K w - - 0 1 ;D1 many",
		"k7/8/8/8/8/8/8/7K w - - 0 1 ;D1 3 ;D1 3",
		" ;D1 3",
	}
	for _, line := range cases {
		_, err := Parse(strings.NewReader(line))
		var le *LineError
		if !errors.As(err, &le) || !errors.Is(err, ErrMalformedLine) || le.Line != 1 {
			t.Fatalf("%q: got %v", line, err)
		}
	}
}

func TestRunSuite(t *testing.T) {
	entries := loadSuite(t)
	var seen int32
	results, err := Run(context.Background(), entries,
		WithWorkers(3),
		WithProgress(func(Result) { atomic.AddInt32(&seen, 1) }),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f := Failures(results); len(f) != 0 {
		t.Fatalf("failures: %+v", f)
	}
	if int(seen) != len(results) || len(results) != 14 {
		t.Fatalf("results: %d, progress calls: %d", len(results), seen)
	}
	for i := 1; i < len(results); i++ {
		a, b := results[i-1], results[i]
		if a.Index > b.Index || (a.Index == b.Index && a.Depth >= b.Depth) {
			t.Fatalf("results out of order at %d", i)
		}
	}
}

func TestRunMaxDepthAndBadFEN(t *testing.T) {
	entries := []Entry{
		{Line: 1, FEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", Depths: map[int]uint64{1: 20, 2: 400, 5: 4865609}},
		{Line: 2, FEN: "bogus", Depths: map[int]uint64{1: 1}},
		{Line: 3, FEN: "k7/8/8/8/8/8/8/7K w - - 0 1", Depths: map[int]uint64{1: 4}},
	}
	results, err := Run(context.Background(), entries, WithMaxDepth(2))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("results: %+v", results)
	}
	fails := Failures(results)
	if len(fails) != 2 || fails[0].Err == nil || fails[1].Got != 3 {
		t.Fatalf("failures: %+v", fails)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, loadSuite(t), WithWorkers(1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}
