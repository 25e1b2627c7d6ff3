package session

import (
	"errors"
	"testing"
)

func TestValidateWithoutSession(t *testing.T) {
	var g Gate
	if err := g.Validate(0); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestStartAssignsMonotonicIDs(t *testing.T) {
	var g Gate
	s1 := g.Start(1000, 60)
	s2 := g.Start(2000, 60)
	if s1.ID != 1 || s2.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", s1.ID, s2.ID)
	}
	if g.Active != s2 {
		t.Error("second start must replace the first session")
	}

	g.End()
	s3 := g.Start(3000, 60)
	if s3.ID != 3 {
		t.Errorf("counter must survive End, got id %d", s3.ID)
	}
}

func TestExpiryComputation(t *testing.T) {
	var g Gate
	s := g.Start(1_000_000, 3600)
	if s.CreatedAt != 1_000_000 {
		t.Errorf("created at = %d", s.CreatedAt)
	}
	if s.ExpiresAt != 1_000_000+3600*1_000_000 {
		t.Errorf("expires at = %d", s.ExpiresAt)
	}
	if s.ExpiresAt <= s.CreatedAt {
		t.Error("positive TTL must give expires_at > created_at")
	}
}

func TestValidateExpiryBoundary(t *testing.T) {
	var g Gate
	s := g.Start(0, 10) // expires at 10_000_000

	if err := g.Validate(s.ExpiresAt - 1); err != nil {
		t.Errorf("one micro before expiry should pass, got %v", err)
	}
	if err := g.Validate(s.ExpiresAt); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("validate at expiry must fail, got %v", err)
	}
	if err := g.Validate(s.ExpiresAt + 1); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("after expiry must fail, got %v", err)
	}
}

func TestCountOp(t *testing.T) {
	var g Gate
	g.CountOp() // no session: no-op
	s := g.Start(0, 1)
	g.CountOp()
	g.CountOp()
	if s.OpCount != 2 {
		t.Errorf("op count = %d, want 2", s.OpCount)
	}
}
