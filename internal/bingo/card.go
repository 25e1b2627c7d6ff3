package bingo

import (
	"github.com/flashport/dicebingo/internal/amount"
	"github.com/flashport/dicebingo/internal/engine"
)

const (
	// GridSize is the side length of a card.
	GridSize = 5
	// Cells is the total cell count.
	Cells = GridSize * GridSize
	// FreeIndex is the fixed free cell (row 2, col 2).
	FreeIndex = 12
	// FreeValue is the sentinel stored in the free cell.
	FreeValue = 0

	poolMin = 4
	poolMax = 24
	poolLen = poolMax - poolMin + 1 // 21
)

// Card is a 5x5 bingo card holding dice-sum values 4-24 in row-major order.
// The center cell is free (value 0, pre-marked). The 21-value pool fills 24
// cells with wraparound, so at least three values repeat on every card;
// that duplication is part of the game's odds and is preserved on purpose.
type Card struct {
	ID            uint64        `json:"id"`
	Numbers       [Cells]uint8  `json:"numbers"`
	Marked        [Cells]bool   `json:"marked"`
	RollsCount    uint32        `json:"rolls_count"`
	BetAmount     amount.Amount `json:"bet_amount_atto"`
	TotalRollFees amount.Amount `json:"total_roll_fees_atto"`
	PrizeClaimed  bool          `json:"prize_claimed"`
}

// NewCard generates a card from a 64-bit seed. The pool [4..24] is
// Fisher-Yates shuffled with a MINSTD stream, then laid out row-major with
// wraparound past the 21st value.
func NewCard(id, seed uint64) *Card {
	var pool [poolLen]uint8
	for i := range pool {
		pool[i] = poolMin + uint8(i)
	}

	state := seed
	for i := len(pool) - 1; i >= 1; i-- {
		state = engine.NextMinstd(state)
		j := state % uint64(i+1)
		pool[i], pool[j] = pool[j], pool[i]
	}

	c := &Card{ID: id}
	poolIdx := 0
	for i := 0; i < Cells; i++ {
		if i == FreeIndex {
			c.Numbers[i] = FreeValue
			c.Marked[i] = true
			continue
		}
		c.Numbers[i] = pool[poolIdx%poolLen]
		poolIdx++
	}
	return c
}

// Number returns the value at (row, col).
func (c *Card) Number(row, col int) uint8 {
	return c.Numbers[row*GridSize+col]
}

// IsMarked reports whether (row, col) is marked.
func (c *Card) IsMarked(row, col int) bool {
	return c.Marked[row*GridSize+col]
}

// MarkAll marks every unmarked cell equal to sum. It returns whether any
// cell matched, the position of the last match, and the match count (a
// count above one is a "lucky" roll).
func (c *Card) MarkAll(sum uint8) (matched bool, lastRow, lastCol uint8, count int) {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			idx := row*GridSize + col
			if c.Numbers[idx] == sum && !c.Marked[idx] {
				c.Marked[idx] = true
				matched = true
				lastRow, lastCol = uint8(row), uint8(col)
				count++
			}
		}
	}
	return matched, lastRow, lastCol, count
}
