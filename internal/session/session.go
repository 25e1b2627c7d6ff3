package session

import "errors"

// Errors returned by Gate.Validate. They are surfaced verbatim to callers
// as tagged error responses, never thrown as control flow.
var (
	ErrNoActiveSession = errors.New("no active session - call StartSession first")
	ErrSessionExpired  = errors.New("session expired - start a new session")
)

const microsPerSecond = 1_000_000

// Session authorizes a burst of gated operations until it expires.
type Session struct {
	ID        uint64 `json:"session_id"`
	CreatedAt uint64 `json:"created_at_micros"`
	ExpiresAt uint64 `json:"expires_at_micros"`
	OpCount   uint64 `json:"operations_count"`
}

// Gate holds the single active session and the monotonic id counter. The
// counter outlives sessions so ids never repeat.
type Gate struct {
	Active  *Session `json:"active_session,omitempty"`
	Counter uint64   `json:"session_counter"`
}

// Start opens a new session, replacing any existing one. Starting a session
// does not clear game state; only End does that at the orchestrator level.
func (g *Gate) Start(nowMicros, ttlSeconds uint64) *Session {
	g.Counter++
	g.Active = &Session{
		ID:        g.Counter,
		CreatedAt: nowMicros,
		ExpiresAt: nowMicros + ttlSeconds*microsPerSecond,
	}
	return g.Active
}

// End clears the active session.
func (g *Gate) End() {
	g.Active = nil
}

// Validate checks that a session exists and has not expired. Expiry is
// strict: a session is invalid the instant now reaches ExpiresAt.
func (g *Gate) Validate(nowMicros uint64) error {
	if g.Active == nil {
		return ErrNoActiveSession
	}
	if nowMicros >= g.Active.ExpiresAt {
		return ErrSessionExpired
	}
	return nil
}

// CountOp increments the active session's operation counter, if any.
func (g *Gate) CountOp() {
	if g.Active != nil {
		g.Active.OpCount++
	}
}
