// Command perftsuite runs an EPD perft suite and reports mismatches.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"ndjin/epd"
)

func main() {
	file := flag.String("file", "epd/testdata/standard.epd", "EPD suite to run")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "Parallel workers")
	maxDepth := flag.Int("maxdepth", 0, "Skip expected counts deeper than this (0 = all)")
	verbose := flag.Bool("v", false, "Log every result, not only failures")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("open suite")
	}
	entries, err := epd.Parse(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("parse suite")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := epd.Run(ctx, entries,
		epd.WithWorkers(*workers),
		epd.WithMaxDepth(*maxDepth),
		epd.WithProgress(func(r epd.Result) {
			switch {
			case r.Err != nil:
				log.Error().Err(r.Err).Int("line", r.Line).Msg("bad entry")
			case !r.Passed():
				log.Error().Int("line", r.Line).Int("depth", r.Depth).
					Uint64("want", r.Want).Uint64("got", r.Got).Str("fen", r.FEN).Msg("mismatch")
			case *verbose:
				log.Info().Int("line", r.Line).Int("depth", r.Depth).
					Uint64("nodes", r.Got).Dur("elapsed", r.Elapsed).Msg("ok")
			}
		}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("suite interrupted")
	}

	var nodes uint64
	for _, r := range results {
		nodes += r.Got
	}
	failed := len(epd.Failures(results))
	fmt.Printf("%d entries, %d checks, %d failed, %d nodes in %s\n",
		len(entries), len(results), failed, nodes, time.Since(start).Round(time.Millisecond))
	if failed > 0 || err != nil {
		os.Exit(1)
	}
}
