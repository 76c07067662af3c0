package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimax(t *testing.T) {
	t.Run("Terminal positions score by winner", func(t *testing.T) {
		xWon := mustBoard(t, [CellCount]string{
			x, x, x,
			o, o, e,
			e, e, e,
		})
		oWon := mustBoard(t, [CellCount]string{
			x, x, o,
			x, o, e,
			o, e, e,
		})
		drawn := mustBoard(t, [CellCount]string{
			x, o, x,
			x, o, o,
			o, x, x,
		})

		assert.Equal(t, MaxScore, Minimax(xWon, false))
		assert.Equal(t, -MaxScore, Minimax(oWon, true))
		assert.Zero(t, Minimax(drawn, true))
	})

	t.Run("X win on a full board beats the draw check", func(t *testing.T) {
		board := mustBoard(t, [CellCount]string{
			x, x, x,
			o, o, x,
			x, o, o,
		})

		assert.Equal(t, MaxScore, Minimax(board, true))
	})

	t.Run("Empty board is a draw", func(t *testing.T) {
		assert.Zero(t, Minimax(NewBoard(), true))
	})

	t.Run("Swapping sides and the flag negates the score", func(t *testing.T) {
		for _, board := range reachable() {
			if board.x.Union(board.o).Count() < 2 {
				continue
			}

			maximize := board.SideToMove() == X
			swapped := Board{x: board.o, o: board.x}

			assert.Equal(t, -Minimax(board, maximize), Minimax(swapped, !maximize), "\n%s", board)
		}
	})
}

func TestEngine_BestMove(t *testing.T) {
	t.Run("No move on a full board", func(t *testing.T) {
		// Given: a drawn full board
		board := mustBoard(t, [CellCount]string{
			x, o, x,
			x, o, o,
			o, x, x,
		})

		// When: searching
		_, ok := NewEngine(board).BestMove()

		// Then: no move is available
		assert.False(t, ok)
	})

	t.Run("O takes the immediate win", func(t *testing.T) {
		// Given: O can complete the middle row at 5 and X threatens 1
		board := mustBoard(t, [CellCount]string{
			x, e, x,
			o, o, e,
			e, x, e,
		})
		require.Equal(t, O, board.SideToMove())

		// When: searching for O
		next, ok := NewEngine(board).BestMove()

		// Then: O plays 5 and wins
		require.True(t, ok)
		assert.Equal(t, o, next.Mark(5))
		assert.True(t, next.IsWinning(O))
	})

	t.Run("X blocks the only threat", func(t *testing.T) {
		// Given: O threatens the top row at 2
		board := mustBoard(t, [CellCount]string{
			o, o, e,
			e, x, e,
			e, x, e,
		})
		require.Equal(t, X, board.SideToMove())

		// When: searching for X
		next, ok := NewEngine(board).BestMove()

		// Then: X takes 2
		require.True(t, ok)
		assert.Equal(t, x, next.Mark(2))
	})

	t.Run("Ties go to the lowest cell", func(t *testing.T) {
		// Given: the empty board, where every opening draws
		next, ok := NewEngine(NewBoard()).BestMove()

		// Then: X opens in the corner 0
		require.True(t, ok)
		assert.Equal(t, x, next.Mark(0))
	})
}
