package api

import (
	"net/http"
	"strconv"

	"github.com/flashport/dicebingo/internal/game"
	"github.com/flashport/dicebingo/internal/store"
)

// Read endpoints observe the persisted state through Host.View without
// journaling anything.

func (s *Server) view(w http.ResponseWriter, r *http.Request, fn func(*game.State) any) {
	var out any
	err := s.host.View(r.Context(), func(st *game.State) error {
		out = fn(st)
		return nil
	})
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(st *game.State) any {
		sess := st.Session()
		return map[string]any{"session": sess, "has_session": sess != nil}
	})
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(st *game.State) any {
		return st.LedgerSnapshot()
	})
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(st *game.State) any {
		return map[string]any{
			"card":                st.CurrentCard(),
			"has_unclaimed_prize": st.HasUnclaimedPrize,
			"prize_pool_atto":     st.PrizePool.String(),
		}
	})
}

func (s *Server) handleGetDrawn(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(st *game.State) any {
		return map[string]any{"drawn_numbers": st.Drawn()}
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(st *game.State) any {
		rolls := st.History.All()
		return map[string]any{"rolls": rolls, "count": len(rolls)}
	})
}

func (s *Server) handleGetLastRoll(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(st *game.State) any {
		return map[string]any{"last_roll": st.LastRollSnapshot()}
	})
}

func (s *Server) handleGetPotentialPayout(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(st *game.State) any {
		return map[string]any{"potential_payout": st.PotentialPayoutNow()}
	})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(st *game.State) any {
		return st.StatsSnapshot()
	})
}

func (s *Server) handleGetFees(w http.ResponseWriter, r *http.Request) {
	s.view(w, r, func(st *game.State) any {
		return game.Fees()
	})
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > store.MaxJournalLimit {
			s.handleValidationError(w, r, "limit", "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	entries, err := s.host.Journal(r.Context(), limit)
	if err != nil {
		s.handleEngineError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
