package epd

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/exp/slices"

	mg "ndjin/ndjinmg"
)

// Result is the outcome of one depth of one entry.
type Result struct {
	Index   int // position of the entry in the suite
	Line    int
	FEN     string
	Depth   int
	Want    uint64
	Got     uint64
	Elapsed time.Duration
	Err     error
}

// Passed reports whether the entry parsed and matched.
func (r Result) Passed() bool { return r.Err == nil && r.Got == r.Want }

type runner struct {
	workers  int
	maxDepth int
	progress func(Result)
}

// Option configures Run.
type Option func(*runner)

// WithWorkers sets the number of goroutines. The default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *runner) {
		if n >= 1 {
			r.workers = n
		}
	}
}

// WithMaxDepth skips expected counts deeper than d. Zero runs every depth.
func WithMaxDepth(d int) Option {
	return func(r *runner) {
		if d >= 0 {
			r.maxDepth = d
		}
	}
}

// WithProgress calls fn for each result as it completes. fn is called from
// worker goroutines one at a time.
func WithProgress(fn func(Result)) Option {
	return func(r *runner) { r.progress = fn }
}

// Run computes perft for every entry and depth, spread over a pool of
// workers. Results come back ordered by entry then depth. When ctx is
// cancelled, pending entries are dropped and ctx.Err() is returned with the
// results gathered so far.
func Run(ctx context.Context, entries []Entry, opts ...Option) ([]Result, error) {
	r := runner{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&r)
	}

	work := make(chan int)
	var (
		mu      sync.Mutex
		results []Result
		wg      sync.WaitGroup
	)
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				for _, res := range r.runEntry(ctx, idx, entries[idx]) {
					mu.Lock()
					results = append(results, res)
					if r.progress != nil {
						r.progress(res)
					}
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for i := range entries {
		select {
		case work <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	slices.SortFunc(results, func(a, b Result) int {
		if a.Index != b.Index {
			return a.Index - b.Index
		}
		return a.Depth - b.Depth
	})
	return results, ctx.Err()
}

func (r *runner) runEntry(ctx context.Context, idx int, e Entry) []Result {
	pos, err := mg.ParseFEN(e.FEN)
	if err != nil {
		return []Result{{Index: idx, Line: e.Line, FEN: e.FEN, Err: err}}
	}
	var out []Result
	for _, depth := range e.SortedDepths() {
		if r.maxDepth > 0 && depth > r.maxDepth {
			break
		}
		if ctx.Err() != nil {
			break
		}
		start := time.Now()
		got := mg.Perft(pos, depth)
		out = append(out, Result{
			Index:   idx,
			Line:    e.Line,
			FEN:     e.FEN,
			Depth:   depth,
			Want:    e.Depths[depth],
			Got:     got,
			Elapsed: time.Since(start),
		})
	}
	return out
}

// Failures returns the results that did not pass.
func Failures(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}
