package game

import (
	"errors"
	"fmt"

	"github.com/flashport/dicebingo/internal/amount"
)

// Game-state and claim errors. Every failure is reported as a result value
// and leaves the persisted state untouched.
var (
	ErrNoActiveGame        = errors.New("no active game - call NewGame first")
	ErrGameAlreadyComplete = errors.New("game already completed - start a new game")
	ErrBingoPendingClaim   = errors.New("bingo achieved - claim your prize or start a new game")
	ErrNoUnclaimedPrize    = errors.New("no unclaimed prize - win a bingo first")
	ErrPrizeAlreadyClaimed = errors.New("prize already claimed")
	ErrInvalidStoredBet    = errors.New("invalid bet amount stored in game")
)

// BetOutOfRangeError rejects bets outside [MinBet, MaxBet].
type BetOutOfRangeError struct {
	Bet     amount.Amount
	TooHigh bool
}

func (e *BetOutOfRangeError) Error() string {
	if e.TooHigh {
		return fmt.Sprintf("bet too high: maximum is %s atto, got %s", MaxBet, e.Bet)
	}
	return fmt.Sprintf("bet too low: minimum is %s atto, got %s", MinBet, e.Bet)
}
