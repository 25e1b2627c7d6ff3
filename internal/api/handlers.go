package api

import (
	"encoding/json"
	"net/http"

	"github.com/flashport/dicebingo/internal/amount"
	"github.com/flashport/dicebingo/internal/config"
	"github.com/flashport/dicebingo/internal/game"
)

// Mutating operations funnel through Host.Execute so each one is applied
// atomically and journaled before the response is written.

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleValidationError(w, r, "body", "invalid JSON request body")
		return
	}
	ttl := req.ExpiresInSecs
	if ttl == 0 {
		ttl = config.DefaultSessionTTLSeconds
	}

	result, err := s.host.Execute(r.Context(), "start_session", req,
		func(st *game.State, env game.Env) (any, error) {
			return st.StartSession(env, ttl), nil
		})
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Response{Type: "session_started", Data: result})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	_, err := s.host.Execute(r.Context(), "end_session", struct{}{},
		func(st *game.State, env game.Env) (any, error) {
			st.EndSession()
			return struct{}{}, nil
		})
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Response{Type: "session_ended"})
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	amt, req, ok := s.decodeAmount(w, r)
	if !ok {
		return
	}
	result, err := s.host.Execute(r.Context(), "deposit", req,
		func(st *game.State, env game.Env) (any, error) {
			return st.Deposit(amt)
		})
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Response{Type: "deposit_received", Data: result})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	amt, req, ok := s.decodeAmount(w, r)
	if !ok {
		return
	}
	result, err := s.host.Execute(r.Context(), "withdraw", req,
		func(st *game.State, env game.Env) (any, error) {
			return st.Withdraw(amt)
		})
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Response{Type: "withdrawal_processed", Data: result})
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleValidationError(w, r, "body", "invalid JSON request body")
		return
	}
	bet, err := amount.Parse(req.BetAmountAtto)
	if err != nil {
		s.handleValidationError(w, r, "bet_amount_atto", "not a valid atto amount")
		return
	}

	result, err := s.host.Execute(r.Context(), "new_game", req,
		func(st *game.State, env game.Env) (any, error) {
			return st.NewGame(env, bet)
		})
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Response{Type: "game_started", Data: result})
}

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	result, err := s.host.Execute(r.Context(), "roll", struct{}{},
		func(st *game.State, env game.Env) (any, error) {
			return st.RollAndMatch(env)
		})
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Response{Type: "roll_result", Data: result})
}

func (s *Server) handleAutoRoll(w http.ResponseWriter, r *http.Request) {
	var req AutoRollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleValidationError(w, r, "body", "invalid JSON request body")
		return
	}
	if req.Count == 0 {
		s.handleValidationError(w, r, "count", "count must be at least 1")
		return
	}

	result, err := s.host.Execute(r.Context(), "auto_roll", req,
		func(st *game.State, env game.Env) (any, error) {
			return st.AutoRoll(env, req.Count)
		})
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Response{Type: "auto_roll_result", Data: result})
}

func (s *Server) handleClaimPrize(w http.ResponseWriter, r *http.Request) {
	result, err := s.host.Execute(r.Context(), "claim_prize", struct{}{},
		func(st *game.State, env game.Env) (any, error) {
			return st.ClaimPrize(env)
		})
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Response{Type: "prize_claimed", Data: result})
}

// decodeAmount parses the shared deposit/withdraw request shape.
func (s *Server) decodeAmount(w http.ResponseWriter, r *http.Request) (amount.Amount, AmountRequest, bool) {
	var req AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.handleValidationError(w, r, "body", "invalid JSON request body")
		return amount.Zero(), req, false
	}
	amt, err := amount.Parse(req.AmountAtto)
	if err != nil {
		s.handleValidationError(w, r, "amount_atto", "not a valid atto amount")
		return amount.Zero(), req, false
	}
	return amt, req, true
}
