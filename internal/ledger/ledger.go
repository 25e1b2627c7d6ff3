package ledger

import (
	"errors"
	"fmt"

	"github.com/flashport/dicebingo/internal/amount"
)

// ErrZeroAmount rejects zero-value deposits.
var ErrZeroAmount = errors.New("deposit amount must be greater than 0")

// InsufficientBalanceError reports a debit that exceeds the available
// balance. The failed debit mutates nothing.
type InsufficientBalanceError struct {
	Available amount.Amount
	Requested amount.Amount
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s atto, requested %s atto",
		e.Available, e.Requested)
}

// Balance is the player's economic state. Available may move both ways;
// the three totals only grow. All arithmetic saturates, and every debit is
// validated before it is applied so Available never goes negative.
type Balance struct {
	Available      amount.Amount `json:"available_atto"`
	TotalDeposited amount.Amount `json:"total_deposited_atto"`
	TotalWon       amount.Amount `json:"total_won_atto"`
	TotalSpent     amount.Amount `json:"total_spent_atto"`
}

// Deposit credits the available balance and returns the new value.
func (b *Balance) Deposit(amt amount.Amount) (amount.Amount, error) {
	if amt.IsZero() {
		return amount.Zero(), ErrZeroAmount
	}
	b.Available = b.Available.Add(amt)
	b.TotalDeposited = b.TotalDeposited.Add(amt)
	return b.Available, nil
}

// Withdraw debits the available balance and returns the remainder.
func (b *Balance) Withdraw(amt amount.Amount) (amount.Amount, error) {
	if amt.GreaterThan(b.Available) {
		return amount.Zero(), &InsufficientBalanceError{Available: b.Available, Requested: amt}
	}
	b.Available = b.Available.Sub(amt)
	return b.Available, nil
}

// ChargeFee is the sole debit path used by gameplay (bet escrow and roll
// cost). It behaves like Withdraw but also accrues TotalSpent.
func (b *Balance) ChargeFee(fee amount.Amount) error {
	if fee.GreaterThan(b.Available) {
		return &InsufficientBalanceError{Available: b.Available, Requested: fee}
	}
	b.Available = b.Available.Sub(fee)
	b.TotalSpent = b.TotalSpent.Add(fee)
	return nil
}

// CreditPayout adds winnings to the available balance. Used only by prize
// claims; it cannot fail.
func (b *Balance) CreditPayout(amt amount.Amount) amount.Amount {
	b.Available = b.Available.Add(amt)
	b.TotalWon = b.TotalWon.Add(amt)
	return b.Available
}
