package tictactoe

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxScore is the value of a won position for X; O wins score -MaxScore.
const MaxScore = math.MaxFloat64

// Engine searches the full game tree below one position. X maximizes.
type Engine struct {
	board Board
}

func NewEngine(board Board) *Engine {
	return &Engine{board: board}
}

// BestMove returns the successor with the best minimax value for the side to
// move, preferring the lowest cell on ties. It returns false when the board
// has no empty cell.
func (that *Engine) BestMove() (Board, bool) {
	successors := that.board.Successors()
	if len(successors) == 0 {
		return Board{}, false
	}

	side := that.board.SideToMove()
	scores := make([]float64, len(successors))
	for i, next := range successors {
		scores[i] = Minimax(next, side == O)
	}

	if side == X {
		return successors[floats.MaxIdx(scores)], true
	}
	return successors[floats.MinIdx(scores)], true
}

// Minimax scores board with maximize telling whether X is the one to place
// the next mark. Wins are checked before the full board.
func Minimax(board Board, maximize bool) float64 {
	switch {
	case board.IsWinning(X):
		return MaxScore
	case board.IsWinning(O):
		return -MaxScore
	case board.EmptyCells() == 0:
		return 0
	}

	mover := O
	if maximize {
		mover = X
	}

	best := math.Inf(1)
	if maximize {
		best = math.Inf(-1)
	}

	for _, next := range board.successorsFor(mover) {
		score := Minimax(next, !maximize)
		if maximize {
			best = math.Max(best, score)
		} else {
			best = math.Min(best, score)
		}
	}

	return best
}
