package tictactoe

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Game holds the current position of one session. It is not safe for
// concurrent use; callers serialize access.
type Game struct {
	id    string
	board Board
}

// NewGame returns a started game.
func NewGame() *Game {
	game := &Game{}
	game.Start()
	return game
}

// Start resets to the empty board under a new id.
func (that *Game) Start() {
	that.id = uuid.NewString()
	that.board = NewBoard()
}

func (that *Game) ID() string {
	return that.id
}

func (that *Game) Board() Board {
	return that.board
}

func (that *Game) ApplyHumanMove(cell int) error {
	next, err := that.board.Play(cell)
	if err != nil {
		return err
	}

	that.board = next
	return nil
}

// ApplyEngineMove plays the engine's choice for the side to move and returns
// the cell it took. ErrNoAvailableMoves means the board is full.
func (that *Game) ApplyEngineMove() (int, error) {
	next, ok := NewEngine(that.board).BestMove()
	if !ok {
		return -1, ErrNoAvailableMoves
	}

	cell, err := playedCell(that.board, next)
	if err != nil {
		return -1, err
	}

	that.board = next
	return cell, nil
}

// State returns a serializable snapshot of the game.
func (that *Game) State() *entity.State {
	state := &entity.State{
		ID:    that.id,
		Board: that.board.Grid(),
	}

	switch that.board.Outcome() {
	case XWins:
		state.Status, state.Winner = entity.StatusFinished, entity.PlayerX
	case OWins:
		state.Status, state.Winner = entity.StatusFinished, entity.PlayerO
	case Draw:
		state.Status, state.Winner = entity.StatusFinished, entity.PlayerTie
	default:
		state.Status, state.Turn = entity.StatusOngoing, that.board.SideToMove().Mark()
	}

	return state
}

func playedCell(before, after Board) (int, error) {
	added := after.x.Union(after.o) &^ before.x.Union(before.o)
	if added.Count() != 1 {
		return -1, fmt.Errorf("%w: positions differ by %d cells", ErrInvalidCell, added.Count())
	}
	return bits.TrailingZeros16(uint16(added)), nil
}
