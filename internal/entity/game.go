package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// State is the snapshot of a game handed to transports and listeners.
type State struct {
	ID     string       `json:"id"`
	Board  [3][3]string `json:"board"`
	Winner string       `json:"winner"`
	Status string       `json:"status"`
	Turn   string       `json:"player_turn"`
}

func (that *State) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *State) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// Cells flattens the board in row-major order.
func (that *State) Cells() [9]string {
	var cells [9]string
	for row := range that.Board {
		for col, mark := range that.Board[row] {
			cells[3*row+col] = mark
		}
	}
	return cells
}

// ConfirmOngoingState returns ErrGameFinished for a finished game.
func (that *State) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
