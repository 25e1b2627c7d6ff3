package api

// EngineError is the structured error response surfaced for every failed
// operation. Type is the stable taxonomy tag; Message is human-readable.
type EngineError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

// Error implements the error interface.
func (e EngineError) Error() string {
	return e.Message
}

// Error type tags, one per result variant of the engine's taxonomy.
const (
	ErrTypeNoActiveSession     = "no_active_session"
	ErrTypeSessionExpired      = "session_expired"
	ErrTypeZeroAmount          = "zero_amount"
	ErrTypeInsufficientBalance = "insufficient_balance"
	ErrTypeBetTooLow           = "bet_too_low"
	ErrTypeBetTooHigh          = "bet_too_high"
	ErrTypeNoActiveGame        = "no_active_game"
	ErrTypeGameAlreadyComplete = "game_already_complete"
	ErrTypeBingoPendingClaim   = "bingo_pending_claim"
	ErrTypeNoUnclaimedPrize    = "no_unclaimed_prize"
	ErrTypePrizeAlreadyClaimed = "prize_already_claimed"
	ErrTypeInvalidStoredBet    = "invalid_stored_bet"
	ErrTypeValidation          = "validation_error"
	ErrTypeInternal            = "internal_error"
)

// Response is the tagged envelope returned by every mutating operation.
type Response struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// StartSessionRequest opens a session.
type StartSessionRequest struct {
	ExpiresInSecs uint64 `json:"expires_in_secs"`
}

// NewGameRequest stakes a bet.
type NewGameRequest struct {
	BetAmountAtto string `json:"bet_amount_atto"`
}

// AutoRollRequest performs up to Count rolls in one call.
type AutoRollRequest struct {
	Count uint32 `json:"count"`
}

// AmountRequest carries a single atto amount (deposit/withdraw).
type AmountRequest struct {
	AmountAtto string `json:"amount_atto"`
}

// VersionInfo reports build metadata.
type VersionInfo struct {
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildTime     string `json:"build_time,omitempty"`
}
