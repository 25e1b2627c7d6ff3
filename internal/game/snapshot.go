package game

import (
	"github.com/flashport/dicebingo/internal/bingo"
	"github.com/flashport/dicebingo/internal/ledger"
	"github.com/flashport/dicebingo/internal/session"
)

// Read-only projections over the state aggregate. Nothing here mutates;
// the host serves these without persisting afterwards.

// Stats is the cumulative statistics summary.
type Stats struct {
	TotalGames       uint64  `json:"total_games"`
	TotalWins        uint64  `json:"total_wins"`
	CurrentGameRolls uint32  `json:"current_game_rolls"`
	WinRate          float64 `json:"win_rate"`
	BalanceAtto      string  `json:"balance_atto"`
	BalanceDisplay   float64 `json:"balance_display"`
}

// PotentialPayout is what a claim would pay at the current roll count.
type PotentialPayout struct {
	BetAmountAtto          string  `json:"bet_amount_atto"`
	BetAmountDisplay       float64 `json:"bet_amount_display"`
	RollsCount             uint32  `json:"rolls_count"`
	Multiplier             string  `json:"multiplier"`
	PotentialPayoutAtto    string  `json:"potential_payout_atto"`
	PotentialPayoutDisplay float64 `json:"potential_payout_display"`
	TierName               string  `json:"tier_name"`
}

// FeeSchedule exposes the fixed fee constants.
type FeeSchedule struct {
	MinBetAtto      string  `json:"min_bet_atto"`
	MaxBetAtto      string  `json:"max_bet_atto"`
	RollCostAtto    string  `json:"roll_cost_atto"`
	MinBetDisplay   float64 `json:"min_bet_display"`
	MaxBetDisplay   float64 `json:"max_bet_display"`
	RollCostDisplay float64 `json:"roll_cost_display"`
}

// LastRoll is the most recent history entry plus the game-over flag.
type LastRoll struct {
	Dice      [4]uint8 `json:"dice"`
	Sum       uint8    `json:"sum"`
	Matched   bool     `json:"matched"`
	Timestamp uint64   `json:"timestamp_micros"`
	GameOver  bool     `json:"game_over"`
	IsLucky   bool     `json:"is_lucky"`
}

// Session returns the active session, or nil.
func (s *State) Session() *session.Session {
	return s.Sessions.Active
}

// CurrentCard returns the active card, or nil.
func (s *State) CurrentCard() *bingo.Card {
	return s.Card
}

// Drawn returns the unique dice sums observed this game, in draw order.
func (s *State) Drawn() DrawnNumbers {
	out := make(DrawnNumbers, len(s.DrawnNumbers))
	copy(out, s.DrawnNumbers)
	return out
}

// LedgerSnapshot returns a copy of the balance ledger.
func (s *State) LedgerSnapshot() ledger.Balance {
	return s.Balance
}

// WinRate returns the win percentage over all games, 0-100.
func (s *State) WinRate() float64 {
	if s.TotalGames == 0 {
		return 0
	}
	return float64(s.TotalWins) / float64(s.TotalGames) * 100
}

// StatsSnapshot builds the cumulative statistics summary.
func (s *State) StatsSnapshot() Stats {
	var rolls uint32
	if s.Card != nil {
		rolls = s.Card.RollsCount
	}
	return Stats{
		TotalGames:       s.TotalGames,
		TotalWins:        s.TotalWins,
		CurrentGameRolls: rolls,
		WinRate:          s.WinRate(),
		BalanceAtto:      s.Balance.Available.String(),
		BalanceDisplay:   s.Balance.Available.DisplayFloat(),
	}
}

// PotentialPayoutNow computes what ClaimPrize would pay at the card's
// current roll count, or nil when no priced game is in flight.
func (s *State) PotentialPayoutNow() *PotentialPayout {
	if s.Card == nil || s.Card.BetAmount.IsZero() {
		return nil
	}
	tier := bingo.MultiplierFor(s.Card.RollsCount)
	payout := bingo.Payout(s.Card.BetAmount, s.Card.RollsCount)
	return &PotentialPayout{
		BetAmountAtto:          s.Card.BetAmount.String(),
		BetAmountDisplay:       s.Card.BetAmount.DisplayFloat(),
		RollsCount:             s.Card.RollsCount,
		Multiplier:             tier.Display,
		PotentialPayoutAtto:    payout.String(),
		PotentialPayoutDisplay: payout.DisplayFloat(),
		TierName:               tier.Name,
	}
}

// Fees returns the fixed fee schedule.
func Fees() FeeSchedule {
	return FeeSchedule{
		MinBetAtto:      MinBet.String(),
		MaxBetAtto:      MaxBet.String(),
		RollCostAtto:    RollCost.String(),
		MinBetDisplay:   MinBet.DisplayFloat(),
		MaxBetDisplay:   MaxBet.DisplayFloat(),
		RollCostDisplay: RollCost.DisplayFloat(),
	}
}

// LastRollSnapshot returns the most recent roll for display, or nil.
func (s *State) LastRollSnapshot() *LastRoll {
	rec, ok := s.History.Last()
	if !ok {
		return nil
	}
	return &LastRoll{
		Dice:      rec.Dice,
		Sum:       rec.Sum,
		Matched:   rec.Matched,
		Timestamp: rec.Timestamp,
		GameOver:  s.HasUnclaimedPrize,
		IsLucky:   rec.IsLucky,
	}
}
