package tictactoe

import "math/bits"

// CellCount is the number of cells on the board.
const CellCount = 9

// BitBoard is a set of cells; bit n is cell n in row-major order.
type BitBoard uint16

// FullBoard has every cell set.
const FullBoard BitBoard = 1<<CellCount - 1

// Occupied reports whether cell n is in the set.
func (b BitBoard) Occupied(n int) bool {
	if n < 0 || n >= CellCount {
		return false
	}
	return b&(1<<n) != 0
}

// With returns the set plus cell n.
func (b BitBoard) With(n int) BitBoard {
	return (b | 1<<n) & FullBoard
}

func (b BitBoard) Union(other BitBoard) BitBoard {
	return (b | other) & FullBoard
}

// ComplementWithin returns the cells in neither b nor other.
func (b BitBoard) ComplementWithin(other BitBoard) BitBoard {
	return FullBoard &^ (b | other)
}

// Contains reports whether every cell of mask is in b.
func (b BitBoard) Contains(mask BitBoard) bool {
	return b&mask == mask
}

func (b BitBoard) Count() int {
	return bits.OnesCount16(uint16(b & FullBoard))
}

// Cells lists the set cells in ascending order.
func (b BitBoard) Cells() []int {
	cells := make([]int, 0, b.Count())
	for rest := b & FullBoard; rest != 0; rest &= rest - 1 {
		cells = append(cells, bits.TrailingZeros16(uint16(rest)))
	}
	return cells
}
