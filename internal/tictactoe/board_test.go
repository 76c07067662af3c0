package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func mustBoard(t *testing.T, cells [CellCount]string) Board {
	t.Helper()

	board, err := FromCells(cells)
	require.NoError(t, err)

	return board
}

// reachable walks every position reachable by legal play, stopping at wins.
func reachable() []Board {
	seen := map[Board]bool{NewBoard(): true}
	queue := []Board{NewBoard()}
	for len(queue) > 0 {
		board := queue[0]
		queue = queue[1:]
		if board.Outcome() != Ongoing {
			continue
		}
		for _, next := range board.Successors() {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	boards := make([]Board, 0, len(seen))
	for board := range seen {
		boards = append(boards, board)
	}
	return boards
}

func TestBitBoard(t *testing.T) {
	t.Run("Occupied reports set cells only", func(t *testing.T) {
		// Given: a set with cells 0 and 8
		bb := BitBoard(0).With(0).With(8)

		// Then: only those cells are occupied and out-of-range cells never are
		assert.True(t, bb.Occupied(0))
		assert.True(t, bb.Occupied(8))
		assert.False(t, bb.Occupied(4))
		assert.False(t, bb.Occupied(-1))
		assert.False(t, bb.Occupied(9))
	})

	t.Run("ComplementWithin excludes both operands even when they overlap", func(t *testing.T) {
		// Given: two overlapping sets
		a := BitBoard(0b000_000_111)
		b := BitBoard(0b000_000_110)

		// When: taking the complement of their union
		rest := a.ComplementWithin(b)

		// Then: only cells 3-8 remain
		assert.Equal(t, BitBoard(0b111_111_000), rest)
		assert.Equal(t, []int{3, 4, 5, 6, 7, 8}, rest.Cells())
	})

	t.Run("Union never sets bits above the board", func(t *testing.T) {
		// Given: a value with stray high bits
		stray := BitBoard(0xFE00)

		// When: combining it with a board set
		bb := BitBoard(1).Union(stray)

		// Then: the high bits are dropped
		assert.Equal(t, BitBoard(1), bb)
		assert.Equal(t, 1, bb.Count())
	})
}

func TestBoard_Play(t *testing.T) {
	t.Run("Moves alternate starting with X", func(t *testing.T) {
		// Given: the empty board
		board := NewBoard()
		require.Equal(t, X, board.SideToMove())

		// When: two moves are played
		board, err := board.Play(4)
		require.NoError(t, err)
		assert.Equal(t, O, board.SideToMove())

		board, err = board.Play(0)
		require.NoError(t, err)

		// Then: X holds 4, O holds 0 and X is to move again
		assert.Equal(t, x, board.Mark(4))
		assert.Equal(t, o, board.Mark(0))
		assert.Equal(t, X, board.SideToMove())
	})

	t.Run("Error on cell already occupied leaves the board unchanged", func(t *testing.T) {
		// Given: a board where X holds cell 4
		board, err := NewBoard().Play(4)
		require.NoError(t, err)

		// When: O tries cell 4
		after, err := board.Play(4)

		// Then: ErrCellOccupied is returned and nothing changed
		require.ErrorIs(t, err, ErrCellOccupied)
		assert.Equal(t, board, after)
		assert.Equal(t, O, after.SideToMove())
	})

	t.Run("Error on invalid cell index", func(t *testing.T) {
		for _, cell := range []int{-1, 9, 20} {
			_, err := NewBoard().Play(cell)
			assert.ErrorIs(t, err, ErrInvalidCell, "cell %d", cell)
		}
	})
}

func TestBoard_IsWinning(t *testing.T) {
	t.Run("No winner on the empty board", func(t *testing.T) {
		board := NewBoard()

		assert.False(t, board.IsWinning(X))
		assert.False(t, board.IsWinning(O))
	})

	t.Run("Every line wins and two cells of a line do not", func(t *testing.T) {
		for _, line := range WinLines {
			// Given: X holding exactly one full line
			board := Board{x: line}

			// Then: X wins, O does not
			assert.True(t, board.IsWinning(X))
			assert.False(t, board.IsWinning(O))

			// Given: O holding the line minus its lowest cell
			partial := Board{o: line & (line - 1)}

			// Then: no win
			assert.False(t, partial.IsWinning(O))
		}
	})

	t.Run("Win matches one of the eight lines on every reachable board", func(t *testing.T) {
		for _, board := range reachable() {
			for _, side := range []Side{X, O} {
				want := false
				for _, line := range WinLines {
					if board.Side(side)&line == line {
						want = true
					}
				}
				assert.Equal(t, want, board.IsWinning(side))
			}
		}
	})
}

func TestBoard_Successors(t *testing.T) {
	t.Run("One successor per empty cell for O with O to move", func(t *testing.T) {
		checked := 0
		for _, board := range reachable() {
			if board.SideToMove() != O || board.Outcome() != Ongoing {
				continue
			}
			checked++

			successors := board.Successors()
			require.Len(t, successors, board.EmptyCells().Count())

			for i, next := range successors {
				// Then: each differs by exactly one new O, in ascending cell order
				added := next.o &^ board.o
				assert.Equal(t, 1, added.Count())
				assert.Equal(t, board.EmptyCells().Cells()[i], added.Cells()[0])
				assert.Equal(t, board.x, next.x)
				assert.Equal(t, X, next.SideToMove())
			}
		}
		assert.Positive(t, checked)
	})

	t.Run("Full board has no successors", func(t *testing.T) {
		// Given: a drawn full board
		board := mustBoard(t, [CellCount]string{
			x, o, x,
			x, o, o,
			o, x, x,
		})

		// Then: nothing to generate
		assert.Empty(t, board.Successors())
		assert.Equal(t, Draw, board.Outcome())
	})

	t.Run("Won board still produces successors", func(t *testing.T) {
		board := mustBoard(t, [CellCount]string{
			x, x, x,
			o, o, e,
			e, e, e,
		})

		assert.Len(t, board.Successors(), 4)
	})
}

func TestBoard_Outcome(t *testing.T) {
	t.Run("Win takes precedence over a full board", func(t *testing.T) {
		// Given: a full board where X completed the top row
		board := mustBoard(t, [CellCount]string{
			x, x, x,
			o, o, x,
			x, o, o,
		})

		// Then: X wins rather than draw
		assert.Equal(t, XWins, board.Outcome())
	})

	t.Run("O wins", func(t *testing.T) {
		board := mustBoard(t, [CellCount]string{
			o, x, x,
			x, o, e,
			e, e, o,
		})

		assert.Equal(t, OWins, board.Outcome())
	})

	t.Run("Ongoing game", func(t *testing.T) {
		board := mustBoard(t, [CellCount]string{
			x, o, e,
			e, x, e,
			e, e, o,
		})

		assert.Equal(t, Ongoing, board.Outcome())
	})
}

func TestBoard_Display(t *testing.T) {
	// Given: X in the center, O in the corner
	board := mustBoard(t, [CellCount]string{
		o, e, e,
		e, x, e,
		e, e, e,
	})

	// Then: grid and text agree with the cells
	assert.Equal(t, [3][3]string{{o, e, e}, {e, x, e}, {e, e, e}}, board.Grid())
	assert.Equal(t, "O _ _\n_ X _\n_ _ _\n", board.String())
}

func TestFromCells(t *testing.T) {
	t.Run("Rejects unknown marks", func(t *testing.T) {
		_, err := FromCells([CellCount]string{"Z"})

		assert.ErrorIs(t, err, ErrInvalidMark)
	})
}
