package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"ndjin/engine"
	mg "ndjin/ndjinmg"
	"ndjin/session"
)

const consoleHelp = `commands:
  position startpos [moves ...]   load the start position
  position fen <fen> [moves ...]  load a FEN
  move <m> [m ...]                play moves in coordinate notation (e2e4, e7e8q)
  undo                            take back one move
  moves                           list legal moves
  eval                            material, score and game state
  see <m>                         static exchange value of a capture
  perft <depth>                   count leaf nodes
  divide <depth>                  perft per root move
  d                               draw the board
  fen                             print the FEN
  quit`

// consoleLoop reads one command per line from in and writes replies to out.
func consoleLoop(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	game, _ := session.New("")
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "quit", "exit":
			return
		case "help":
			fmt.Fprintln(out, consoleHelp)
		case "position":
			handlePosition(out, game, tokens[1:])
		case "move":
			playMoves(out, game, tokens[1:])
		case "undo":
			if m, err := game.Undo(); err != nil {
				fmt.Fprintln(out, "error:", err)
			} else {
				fmt.Fprintln(out, "undone", m)
			}
		case "moves":
			fmt.Fprintln(out, strings.Join(game.LegalMoves(), " "))
		case "eval":
			printEval(out, game)
		case "see":
			if len(tokens) < 2 {
				fmt.Fprintln(out, "error: see needs a move")
				continue
			}
			pos := game.Snapshot()
			m, err := mg.ParseMove(&pos, tokens[1])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			fmt.Fprintf(out, "see %s = %.1f\n", m, engine.ExchangeGain(&pos, m))
		case "perft", "divide":
			depth, err := depthArg(tokens)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			pos := game.Snapshot()
			if strings.EqualFold(tokens[0], "perft") {
				fmt.Fprintf(out, "perft(%d) = %d\n", depth, mg.Perft(&pos, depth))
				continue
			}
			printDivide(out, &pos, depth)
		case "d":
			fmt.Fprintln(out, game)
		case "fen":
			fmt.Fprintln(out, game.FEN())
		default:
			fmt.Fprintf(out, "unknown command %q (try help)\n", tokens[0])
		}
	}
}

func handlePosition(out io.Writer, game *session.Game, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(out, "error: position needs startpos or fen")
		return
	}
	var fen string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = mg.FENStartPos
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		fen = strings.Join(rest[:i], " ")
		rest = rest[i:]
	default:
		fmt.Fprintf(out, "error: unknown position subcommand %q\n", args[0])
		return
	}
	if err := game.Reset(fen); err != nil {
		fmt.Fprintln(out, "error:", err)
		return
	}
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		playMoves(out, game, rest[1:])
	}
}

// playMoves stops at the first move that cannot be played.
func playMoves(out io.Writer, game *session.Game, moves []string) {
	for _, text := range moves {
		if _, err := game.Apply(text); err != nil {
			fmt.Fprintf(out, "error: %v (in %s)\n", err, game.FEN())
			return
		}
	}
	if st := game.Outcome(); st.Result != engine.Ongoing || st.Draw {
		fmt.Fprintln(out, "game over:", st.Text)
	}
}

func printEval(out io.Writer, game *session.Game) {
	pos := game.Snapshot()
	st := game.Outcome()
	score := game.Evaluate()
	if engine.IsTerminal(score) {
		fmt.Fprintf(out, "material %.1f, no legal moves, %s\n", engine.MaterialScore(&pos), st.Text)
		return
	}
	fmt.Fprintf(out, "material %.1f, score %.1f, %s\n", engine.MaterialScore(&pos), score, st.Text)
}

func printDivide(out io.Writer, pos *mg.Position, depth int) {
	div := make(map[string]uint64)
	for m, n := range mg.PerftDivide(pos, depth) {
		div[m.String()] = n
	}
	keys := maps.Keys(div)
	slices.Sort(keys)
	var sum uint64
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %d\n", k, div[k])
		sum += div[k]
	}
	fmt.Fprintf(out, "Total: %d\n", sum)
}

func depthArg(tokens []string) (int, error) {
	if len(tokens) < 2 {
		return 0, fmt.Errorf("%s needs a depth", tokens[0])
	}
	d, err := strconv.Atoi(tokens[1])
	if err != nil || d < 1 {
		return 0, fmt.Errorf("bad depth %q", tokens[1])
	}
	return d, nil
}
