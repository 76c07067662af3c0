package tictactoe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var (
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidMark  = errors.New("invalid mark")
)

// Side is one of the two players.
type Side uint8

const (
	X Side = iota
	O
)

func (s Side) Other() Side {
	if s == X {
		return O
	}
	return X
}

// Mark returns the symbol used for the side on the wire.
func (s Side) Mark() string {
	if s == X {
		return entity.PlayerX
	}
	return entity.PlayerO
}

func (s Side) String() string {
	return s.Mark()
}

// WinLines are the rows, columns and diagonals as cell masks.
var WinLines = [8]BitBoard{
	0b000_000_111, // 0 1 2
	0b000_111_000, // 3 4 5
	0b111_000_000, // 6 7 8
	0b001_001_001, // 0 3 6
	0b010_010_010, // 1 4 7
	0b100_100_100, // 2 5 8
	0b100_010_001, // 0 4 8
	0b001_010_100, // 2 4 6
}

// Outcome of a position.
type Outcome uint8

const (
	Ongoing Outcome = iota
	XWins
	OWins
	Draw
)

// Board is a position. The zero value is the empty board with X to move.
type Board struct {
	x BitBoard
	o BitBoard
}

func NewBoard() Board {
	return Board{}
}

// FromCells builds a position from row-major marks ("X", "O" or "").
func FromCells(cells [CellCount]string) (Board, error) {
	var board Board
	for n, mark := range cells {
		switch mark {
		case entity.PlayerX:
			board.x = board.x.With(n)
		case entity.PlayerO:
			board.o = board.o.With(n)
		case entity.EmptyCell:
		default:
			return Board{}, fmt.Errorf("%w: %q at cell %d", ErrInvalidMark, mark, n)
		}
	}

	return board, nil
}

// Side returns the cells held by side.
func (that Board) Side(side Side) BitBoard {
	if side == X {
		return that.x
	}
	return that.o
}

// SideToMove is X on an even number of occupied cells and O otherwise.
func (that Board) SideToMove() Side {
	if that.x.Union(that.o).Count()%2 == 0 {
		return X
	}
	return O
}

func (that Board) EmptyCells() BitBoard {
	return that.x.ComplementWithin(that.o)
}

// Play returns the position after the side to move takes cell.
// An illegal move returns the board unchanged together with the error.
func (that Board) Play(cell int) (Board, error) {
	if cell < 0 || cell >= CellCount {
		return that, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if !that.EmptyCells().Occupied(cell) {
		return that, fmt.Errorf("%w: cell %d", ErrCellOccupied, cell)
	}

	return that.place(that.SideToMove(), cell), nil
}

func (that Board) place(side Side, cell int) Board {
	if side == X {
		that.x = that.x.With(cell)
	} else {
		that.o = that.o.With(cell)
	}
	return that
}

func (that Board) IsWinning(side Side) bool {
	bb := that.Side(side)
	for _, line := range WinLines {
		if bb.Contains(line) {
			return true
		}
	}
	return false
}

// Successors returns one position per empty cell, in ascending cell order.
// Positions that already have a winner still produce successors.
func (that Board) Successors() []Board {
	return that.successorsFor(that.SideToMove())
}

func (that Board) successorsFor(side Side) []Board {
	empty := that.EmptyCells().Cells()
	next := make([]Board, 0, len(empty))
	for _, cell := range empty {
		next = append(next, that.place(side, cell))
	}
	return next
}

// Outcome checks X, then O, then a full board.
func (that Board) Outcome() Outcome {
	switch {
	case that.IsWinning(X):
		return XWins
	case that.IsWinning(O):
		return OWins
	case that.EmptyCells() == 0:
		return Draw
	default:
		return Ongoing
	}
}

func (that Board) Mark(cell int) string {
	switch {
	case that.x.Occupied(cell):
		return entity.PlayerX
	case that.o.Occupied(cell):
		return entity.PlayerO
	default:
		return entity.EmptyCell
	}
}

// Grid returns the marks row by row.
func (that Board) Grid() [3][3]string {
	var grid [3][3]string
	for n := range CellCount {
		grid[n/3][n%3] = that.Mark(n)
	}
	return grid
}

func (that Board) String() string {
	var sb strings.Builder
	for row := range 3 {
		for col := range 3 {
			mark := that.Mark(3*row + col)
			if mark == entity.EmptyCell {
				mark = "_"
			}
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(mark)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
