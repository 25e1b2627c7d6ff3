package api

import (
	"errors"
	"net/http"

	"github.com/flashport/dicebingo/internal/game"
	"github.com/flashport/dicebingo/internal/ledger"
	"github.com/flashport/dicebingo/internal/session"
)

// classify maps an engine error onto an HTTP status, a taxonomy tag and
// optional context fields. Unknown errors fall through as internal.
func classify(err error) (int, string, map[string]any) {
	switch {
	case errors.Is(err, session.ErrNoActiveSession):
		return http.StatusUnauthorized, ErrTypeNoActiveSession, nil
	case errors.Is(err, session.ErrSessionExpired):
		return http.StatusUnauthorized, ErrTypeSessionExpired, nil
	case errors.Is(err, ledger.ErrZeroAmount):
		return http.StatusBadRequest, ErrTypeZeroAmount, nil
	case errors.Is(err, game.ErrNoActiveGame):
		return http.StatusConflict, ErrTypeNoActiveGame, nil
	case errors.Is(err, game.ErrGameAlreadyComplete):
		return http.StatusConflict, ErrTypeGameAlreadyComplete, nil
	case errors.Is(err, game.ErrBingoPendingClaim):
		return http.StatusConflict, ErrTypeBingoPendingClaim, nil
	case errors.Is(err, game.ErrNoUnclaimedPrize):
		return http.StatusConflict, ErrTypeNoUnclaimedPrize, nil
	case errors.Is(err, game.ErrPrizeAlreadyClaimed):
		return http.StatusConflict, ErrTypePrizeAlreadyClaimed, nil
	case errors.Is(err, game.ErrInvalidStoredBet):
		return http.StatusInternalServerError, ErrTypeInvalidStoredBet, nil
	}

	var insufficient *ledger.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		return http.StatusPaymentRequired, ErrTypeInsufficientBalance, map[string]any{
			"available_atto": insufficient.Available.String(),
			"requested_atto": insufficient.Requested.String(),
		}
	}

	var betRange *game.BetOutOfRangeError
	if errors.As(err, &betRange) {
		tag := ErrTypeBetTooLow
		if betRange.TooHigh {
			tag = ErrTypeBetTooHigh
		}
		return http.StatusBadRequest, tag, map[string]any{
			"bet_atto":     betRange.Bet.String(),
			"min_bet_atto": game.MinBet.String(),
			"max_bet_atto": game.MaxBet.String(),
		}
	}

	return http.StatusInternalServerError, ErrTypeInternal, nil
}

// handleEngineError writes the structured response for a failed operation.
func (s *Server) handleEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, tag, ctx := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("operation failed", "error", err, "path", r.URL.Path)
	}
	s.writeError(w, r, status, tag, err.Error(), ctx)
}

// handleValidationError rejects a malformed request before it reaches
// the engine.
func (s *Server) handleValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, message, map[string]any{
		"field": field,
	})
}
