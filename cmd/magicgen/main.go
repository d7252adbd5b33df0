// Command magicgen searches for bishop and rook magic multipliers and writes
// them as Go source in the layout of ndjinmg/magics.go.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	mg "ndjin/ndjinmg"
)

func main() {
	out := flag.String("out", "", "Output file (defaults to stdout)")
	seed := flag.Uint64("seed", mg.MagicSeed, "xorshift64 seed for the search")
	current := flag.Bool("current", false, "Emit the multipliers in use instead of searching")
	verify := flag.Bool("verify", false, "Only verify the multipliers in use against every blocker subset")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	bishopBits, rookBits := mg.IndexBits()

	if *verify {
		bishop, rook := mg.Magics()
		bad := 0
		for sq := mg.A1; sq <= mg.H8; sq++ {
			if !mg.VerifyMagic(sq, bishop[sq], bishopBits[sq], true) {
				log.Error().Str("square", sq.String()).Msg("bishop magic collides")
				bad++
			}
			if !mg.VerifyMagic(sq, rook[sq], rookBits[sq], false) {
				log.Error().Str("square", sq.String()).Msg("rook magic collides")
				bad++
			}
		}
		if bad > 0 {
			os.Exit(1)
		}
		log.Info().Msg("all magics verified")
		return
	}

	var bishop, rook [64]uint64
	if *current {
		bishop, rook = mg.Magics()
	} else {
		rng := mg.NewMagicRNGSeed(*seed)
		start := time.Now()
		var err error
		for sq := mg.A1; sq <= mg.H8; sq++ {
			if bishop[sq], err = mg.FindMagic(sq, bishopBits[sq], true, rng); err != nil {
				log.Fatal().Err(err).Str("square", sq.String()).Msg("bishop search failed")
			}
		}
		for sq := mg.A1; sq <= mg.H8; sq++ {
			if rook[sq], err = mg.FindMagic(sq, rookBits[sq], false, rng); err != nil {
				log.Fatal().Err(err).Str("square", sq.String()).Msg("rook search failed")
			}
		}
		log.Info().Dur("elapsed", time.Since(start)).Uint64("seed", *seed).Msg("search done")
	}

	src, err := render(bishopBits, rookBits, bishop, rook)
	if err != nil {
		log.Fatal().Err(err).Msg("format source")
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("create output")
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(src); err != nil {
		log.Fatal().Err(err).Msg("write output")
	}
}

func render(bishopBits, rookBits [64]int, bishop, rook [64]uint64) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("// Code generated by cmd/magicgen; DO NOT EDIT.\n\npackage ndjinmg\n\n")
	b.WriteString("// Relevant-occupancy bit counts per square; the magic index is that many bits wide.\n")
	writeBits(&b, "bishopBits", bishopBits)
	b.WriteString("\n")
	writeBits(&b, "rookBits", rookBits)
	b.WriteString("\n")
	writeMagics(&b, "embeddedBishopMagics", bishop)
	b.WriteString("\n")
	writeMagics(&b, "embeddedRookMagics", rook)
	return format.Source(b.Bytes())
}

func writeBits(b *bytes.Buffer, name string, bits [64]int) {
	fmt.Fprintf(b, "var %s = [64]int{\n", name)
	for rank := 0; rank < 8; rank++ {
		b.WriteString("\t")
		for file := 0; file < 8; file++ {
			if file > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(b, "%d,", bits[rank*8+file])
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
}

func writeMagics(b *bytes.Buffer, name string, magics [64]uint64) {
	fmt.Fprintf(b, "var %s = [64]uint64{\n", name)
	for _, m := range magics {
		fmt.Fprintf(b, "\t%d,\n", m)
	}
	b.WriteString("}\n")
}
