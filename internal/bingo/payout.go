package bingo

import "github.com/flashport/dicebingo/internal/amount"

// Tier is the payout multiplier for a winning roll count, kept as an
// integer fraction so settlement never touches floating point.
type Tier struct {
	Num     uint64 `json:"numerator"`
	Denom   uint64 `json:"denominator"`
	Display string `json:"display"`
	Name    string `json:"name"`
}

// MultiplierFor maps a roll count (after incrementing for the winning roll)
// to its payout tier. Fewer rolls pay better.
func MultiplierFor(rolls uint32) Tier {
	switch {
	case rolls <= 9:
		return Tier{10, 1, "10x", "LEGENDARY"}
	case rolls <= 14:
		return Tier{5, 1, "5x", "EPIC"}
	case rolls <= 19:
		return Tier{3, 1, "3x", "RARE"}
	case rolls <= 24:
		return Tier{2, 1, "2x", "GOOD"}
	case rolls <= 34:
		return Tier{12, 10, "1.2x", "NORMAL"}
	case rolls <= 44:
		return Tier{8, 10, "0.8x", "REDUCED"}
	default:
		return Tier{2, 10, "0.2x", "MINIMAL"}
	}
}

// Payout computes floor(bet * num / denom) with saturating multiplication.
func Payout(bet amount.Amount, rolls uint32) amount.Amount {
	t := MultiplierFor(rolls)
	return bet.MulDiv(t.Num, t.Denom)
}
