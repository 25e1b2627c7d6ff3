package game

import (
	"github.com/flashport/dicebingo/internal/amount"
	"github.com/flashport/dicebingo/internal/bingo"
	"github.com/flashport/dicebingo/internal/engine"
)

// MaxAutoRolls caps a single AutoRoll request.
const MaxAutoRolls = 100

// SessionStarted is the result of StartSession.
type SessionStarted struct {
	SessionID       uint64 `json:"session_id"`
	ExpiresAtMicros uint64 `json:"expires_at_micros"`
}

// GameStarted is the result of NewGame.
type GameStarted struct {
	GameID       uint64        `json:"game_id"`
	Card         *bingo.Card   `json:"card"`
	EntryFeePaid amount.Amount `json:"entry_fee_paid"`
	PrizePool    amount.Amount `json:"prize_pool"`
}

// RollResult is the result of one RollAndMatch.
type RollResult struct {
	Dice          [4]uint8       `json:"dice"`
	Sum           uint8          `json:"sum"`
	Matched       bool           `json:"matched"`
	MatchRow      *uint8         `json:"match_row,omitempty"`
	MatchCol      *uint8         `json:"match_col,omitempty"`
	BingoType     *bingo.Pattern `json:"bingo_type,omitempty"`
	GameOver      bool           `json:"game_over"`
	RollsCount    uint32         `json:"rolls_count"`
	RollFeePaid   amount.Amount  `json:"roll_fee_paid"`
	TotalRollFees amount.Amount  `json:"total_roll_fees"`
	IsLucky       bool           `json:"is_lucky"`
}

// PrizeClaimed is the result of ClaimPrize.
type PrizeClaimed struct {
	BetAmount         amount.Amount `json:"bet_amount"`
	RollsCount        uint32        `json:"rolls_count"`
	MultiplierDisplay string        `json:"multiplier_display"`
	PayoutAmount      amount.Amount `json:"payout_amount"`
	NewBalance        amount.Amount `json:"new_balance"`
}

// DepositReceived is the result of Deposit.
type DepositReceived struct {
	Amount     amount.Amount `json:"amount"`
	NewBalance amount.Amount `json:"new_balance"`
}

// WithdrawalProcessed is the result of Withdraw.
type WithdrawalProcessed struct {
	Amount           amount.Amount `json:"amount"`
	RemainingBalance amount.Amount `json:"remaining_balance"`
}

// StartSession opens a session for ttlSeconds, replacing any existing one.
// Game state is untouched; only EndSession resets it.
func (s *State) StartSession(env Env, ttlSeconds uint64) *SessionStarted {
	sess := s.Sessions.Start(env.NowMicros, ttlSeconds)
	return &SessionStarted{SessionID: sess.ID, ExpiresAtMicros: sess.ExpiresAt}
}

// EndSession wipes the session and all per-game state including history.
func (s *State) EndSession() {
	s.Sessions.End()
	s.resetGame()
	s.History.Clear()
}

// Deposit credits the player balance. Not session gated.
func (s *State) Deposit(amt amount.Amount) (*DepositReceived, error) {
	newBalance, err := s.Balance.Deposit(amt)
	if err != nil {
		return nil, err
	}
	return &DepositReceived{Amount: amt, NewBalance: newBalance}, nil
}

// Withdraw debits the player balance. Not session gated.
func (s *State) Withdraw(amt amount.Amount) (*WithdrawalProcessed, error) {
	remaining, err := s.Balance.Withdraw(amt)
	if err != nil {
		return nil, err
	}
	return &WithdrawalProcessed{Amount: amt, RemainingBalance: remaining}, nil
}

// NewGame escrows the bet and deals a fresh card, overwriting any prior
// game. An unfinished game's escrowed bet is abandoned without refund.
func (s *State) NewGame(env Env, bet amount.Amount) (*GameStarted, error) {
	if err := s.Sessions.Validate(env.NowMicros); err != nil {
		return nil, err
	}
	if MinBet.GreaterThan(bet) {
		return nil, &BetOutOfRangeError{Bet: bet}
	}
	if bet.GreaterThan(MaxBet) {
		return nil, &BetOutOfRangeError{Bet: bet, TooHigh: true}
	}
	if err := s.Balance.ChargeFee(bet); err != nil {
		return nil, err
	}

	gameID := s.GameCounter + 1
	s.GameCounter = gameID

	seed := engine.CardSeed(env.Height, env.NowMicros, gameID, s.GameCounter)
	card := bingo.NewCard(gameID, seed)
	card.BetAmount = bet

	s.Card = card
	s.DrawnNumbers = nil
	s.HasUnclaimedPrize = false
	s.History.Clear()
	s.PrizePool = bet
	s.TotalGames++
	s.Sessions.CountOp()

	return &GameStarted{
		GameID:       gameID,
		Card:         card,
		EntryFeePaid: bet,
		PrizePool:    bet,
	}, nil
}

// RollAndMatch is the atomic core transaction: charge the roll fee, draw
// four dice, mark the sum, detect bingo, log the roll. All checks that can
// fail run before any mutation; once the fee is charged nothing later in
// the transaction can fail.
func (s *State) RollAndMatch(env Env) (*RollResult, error) {
	if err := s.Sessions.Validate(env.NowMicros); err != nil {
		return nil, err
	}
	if s.Card == nil {
		return nil, ErrNoActiveGame
	}
	if s.Card.PrizeClaimed {
		return nil, ErrGameAlreadyComplete
	}
	if s.HasUnclaimedPrize {
		return nil, ErrBingoPendingClaim
	}
	if err := s.Balance.ChargeFee(RollCost); err != nil {
		return nil, err
	}

	// Fee is debited before the dice are drawn; from here the transaction
	// always completes.
	rollIndex := uint64(s.Card.RollsCount)
	seed := engine.DiceSeed(env.Height, env.NowMicros, rollIndex, s.GameCounter, s.TotalGames)
	dice := engine.Dice(seed)
	sum := dice[0] + dice[1] + dice[2] + dice[3]

	if !s.DrawnNumbers.Contains(sum) {
		s.DrawnNumbers = append(s.DrawnNumbers, sum)
	}

	matched, row, col, matchCount := s.Card.MarkAll(sum)
	isLucky := matchCount > 1

	var bingoType *bingo.Pattern
	pattern, gameOver := bingo.Detect(&s.Card.Marked)
	if gameOver {
		bingoType = &pattern
		s.TotalWins++
		s.HasUnclaimedPrize = true
	}

	s.Card.RollsCount++
	s.Card.TotalRollFees = s.Card.TotalRollFees.Add(RollCost)
	s.Sessions.CountOp()

	s.History.Push(RollRecord{
		Dice:      dice,
		Sum:       sum,
		Matched:   matched,
		Timestamp: env.NowMicros,
		FeePaid:   RollCost,
		IsLucky:   isLucky,
	})

	res := &RollResult{
		Dice:          dice,
		Sum:           sum,
		Matched:       matched,
		BingoType:     bingoType,
		GameOver:      gameOver,
		RollsCount:    s.Card.RollsCount,
		RollFeePaid:   RollCost,
		TotalRollFees: s.Card.TotalRollFees,
		IsLucky:       isLucky,
	}
	if matched {
		r, c := row, col
		res.MatchRow, res.MatchCol = &r, &c
	}
	return res, nil
}

// AutoRoll performs up to min(count, MaxAutoRolls) rolls, stopping at the
// first bingo or error. Results for completed rolls are always returned;
// the error is non-nil only when the very first roll fails.
func (s *State) AutoRoll(env Env, count uint32) ([]*RollResult, error) {
	if count > MaxAutoRolls {
		count = MaxAutoRolls
	}
	var results []*RollResult
	for i := uint32(0); i < count; i++ {
		res, err := s.RollAndMatch(env)
		if err != nil {
			if len(results) == 0 {
				return nil, err
			}
			break
		}
		results = append(results, res)
		if res.GameOver {
			break
		}
	}
	return results, nil
}

// ClaimPrize pays out a pending bingo at the tier for the card's final roll
// count and closes the game.
func (s *State) ClaimPrize(env Env) (*PrizeClaimed, error) {
	if err := s.Sessions.Validate(env.NowMicros); err != nil {
		return nil, err
	}
	if !s.HasUnclaimedPrize {
		return nil, ErrNoUnclaimedPrize
	}
	if s.Card == nil {
		return nil, ErrNoActiveGame
	}
	if s.Card.PrizeClaimed {
		return nil, ErrPrizeAlreadyClaimed
	}
	if s.Card.BetAmount.IsZero() {
		return nil, ErrInvalidStoredBet
	}

	tier := bingo.MultiplierFor(s.Card.RollsCount)
	payout := bingo.Payout(s.Card.BetAmount, s.Card.RollsCount)
	newBalance := s.Balance.CreditPayout(payout)

	s.Card.PrizeClaimed = true
	s.HasUnclaimedPrize = false
	s.PrizePool = amount.Zero()
	s.Sessions.CountOp()

	return &PrizeClaimed{
		BetAmount:         s.Card.BetAmount,
		RollsCount:        s.Card.RollsCount,
		MultiplierDisplay: tier.Display,
		PayoutAmount:      payout,
		NewBalance:        newBalance,
	}, nil
}
