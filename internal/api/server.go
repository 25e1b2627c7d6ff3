package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flashport/dicebingo/internal/store"
)

// Server handles HTTP requests against a single engine host.
type Server struct {
	host      *store.Host
	logger    *slog.Logger
	startTime time.Time
}

// NewServer creates a new API server
func NewServer(host *store.Host) *Server {
	return &Server{
		host:      host,
		logger:    slog.Default().With("component", "api"),
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with proper middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverPanics)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health and monitoring endpoints
	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/ready", s.handleReadiness)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		// Mutating operations
		r.Post("/session/start", s.handleStartSession)
		r.Post("/session/end", s.handleEndSession)
		r.Post("/wallet/deposit", s.handleDeposit)
		r.Post("/wallet/withdraw", s.handleWithdraw)
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/roll", s.handleRoll)
		r.Post("/game/autoroll", s.handleAutoRoll)
		r.Post("/game/claim", s.handleClaimPrize)

		// Read projections
		r.Get("/session", s.handleGetSession)
		r.Get("/wallet/balance", s.handleGetBalance)
		r.Get("/game/card", s.handleGetCard)
		r.Get("/game/drawn", s.handleGetDrawn)
		r.Get("/game/history", s.handleGetHistory)
		r.Get("/game/last-roll", s.handleGetLastRoll)
		r.Get("/game/potential-payout", s.handleGetPotentialPayout)
		r.Get("/stats", s.handleGetStats)
		r.Get("/fees", s.handleGetFees)
		r.Get("/journal", s.handleGetJournal)
	})

	return r
}

// recoverPanics converts handler panics into a structured 500.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic in handler",
					"path", r.URL.Path,
					"panic", rec,
					"request_id", middleware.GetReqID(r.Context()))
				s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal,
					"internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeError writes a structured error response
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string, context map[string]any) {
	s.writeJSON(w, status, EngineError{
		Type:      errType,
		Message:   message,
		Context:   context,
		RequestID: middleware.GetReqID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
