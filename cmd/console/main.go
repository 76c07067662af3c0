package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// main - plays one game in the terminal against the engine.
func main() {
	side := flag.String("side", "X", "side played by the human: X or O")
	debug := flag.Bool("debug", false, "log engine choices")
	flag.Parse()

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	human := tictactoe.X
	switch strings.ToUpper(*side) {
	case "X":
	case "O":
		human = tictactoe.O
	default:
		fmt.Fprintf(os.Stderr, "unknown side %q\n", *side)
		os.Exit(2)
	}

	if err := play(logger, bufio.NewReader(os.Stdin), os.Stdout, human); err != nil {
		fmt.Fprintf(os.Stderr, "game aborted: %v\n", err)
		os.Exit(1)
	}
}

func play(logger *slog.Logger, in *bufio.Reader, out io.Writer, human tictactoe.Side) error {
	game := tictactoe.NewGame()
	fmt.Fprint(out, game.Board())

	for game.Board().Outcome() == tictactoe.Ongoing {
		if game.Board().SideToMove() == human {
			fmt.Fprintf(out, "%s to move, cell 0-8: ", human)
			line, err := in.ReadString('\n')
			if err != nil && (!errors.Is(err, io.EOF) || line == "") {
				return fmt.Errorf("failed to read move: %w", err)
			}

			cell, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				fmt.Fprintln(out, "enter a number from 0 to 8")
				continue
			}

			if err = game.ApplyHumanMove(cell); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
		} else {
			cell, err := game.ApplyEngineMove()
			if err != nil {
				return err
			}
			logger.Debug("engine moved", "side", human.Other(), "cell", cell)
		}

		fmt.Fprint(out, "\n", game.Board())
	}

	switch game.Board().Outcome() {
	case tictactoe.XWins:
		fmt.Fprintln(out, "Game over, X has won!")
	case tictactoe.OWins:
		fmt.Fprintln(out, "Game over, O has won!")
	default:
		fmt.Fprintln(out, "Game over, result is draw!")
	}

	return nil
}
