package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"

	"github.com/flashport/dicebingo/internal/game"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Host owns the persistent engine state and enforces the host contract:
// one operation at a time, run to completion; a monotonically non-decreasing
// height and timestamp recorded per call; mutated state persisted only when
// the operation returns without a fatal error.
type Host struct {
	db *sql.DB
	mu sync.Mutex

	now func() time.Time // test hook
}

// Open opens (or creates) the SQLite database at path, enables WAL mode and
// applies migrations. Opening retries briefly when another process holds
// the database lock.
func Open(ctx context.Context, path string) (*Host, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single writer at a time; the mutex serializes operations anyway.
	db.SetMaxOpenConns(1)

	backoff := retry.WithMaxRetries(5, retry.NewExponential(50*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			if isBusy(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to enable WAL mode: %w", err), db.Close())
	}

	if err := Migrate(db); err != nil {
		return nil, multierr.Append(err, db.Close())
	}

	return &Host{db: db, now: time.Now}, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func isBusy(err error) bool {
	return err != nil && strings.Contains(err.Error(), "database is locked")
}

// Close closes the database.
func (h *Host) Close() error {
	return h.db.Close()
}

// JournalEntry is one applied operation with its recorded inputs. Replaying
// the journal against a fresh state reproduces the persisted snapshot.
type JournalEntry struct {
	ID        string          `json:"id"`
	Seq       uint64          `json:"seq"`
	Op        string          `json:"op"`
	Request   json.RawMessage `json:"request"`
	Response  json.RawMessage `json:"response"`
	Height    uint64          `json:"height"`
	Timestamp uint64          `json:"timestamp_micros"`
}

// Execute runs one mutating operation to completion. fn receives the loaded
// state and the recorded env; when it succeeds the new snapshot and a
// journal row are committed together. When fn fails the transaction is
// rolled back and the persisted state is untouched.
func (h *Host) Execute(ctx context.Context, op string, request any, fn func(*game.State, game.Env) (any, error)) (any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	state, height, lastMicros, err := loadState(tx)
	if err != nil {
		return nil, err
	}

	// Height advances per call; the timestamp never runs backwards even if
	// the wall clock does.
	env := game.Env{Height: height + 1, NowMicros: uint64(h.now().UnixMicro())}
	if env.NowMicros < lastMicros {
		env.NowMicros = lastMicros
	}

	response, opErr := fn(state, env)
	if opErr != nil {
		// Gating checks guarantee fn left the state unmutated; nothing is
		// persisted for a failed operation.
		return nil, opErr
	}

	if err := saveState(tx, state, env); err != nil {
		return nil, err
	}
	if err := appendJournal(tx, env, op, request, response); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return response, nil
}

// View runs a read-only projection over the current state.
func (h *Host) View(ctx context.Context, fn func(*game.State) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	state, _, _, err := loadState(tx)
	if err != nil {
		return err
	}
	return fn(state)
}

// MaxJournalLimit caps how many entries one Journal call returns.
const MaxJournalLimit = 500

// Journal returns the most recent journal entries, newest first. A
// non-positive limit falls back to 50; anything above MaxJournalLimit is
// clamped to it.
func (h *Host) Journal(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > MaxJournalLimit {
		limit = MaxJournalLimit
	}
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, seq, op, request, response, height, timestamp_micros
		 FROM op_journal ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var req, resp string
		if err := rows.Scan(&e.ID, &e.Seq, &e.Op, &req, &resp, &e.Height, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.Request = json.RawMessage(req)
		e.Response = json.RawMessage(resp)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func loadState(tx *sql.Tx) (*game.State, uint64, uint64, error) {
	var snapshot string
	var height, updated uint64
	err := tx.QueryRow(
		`SELECT snapshot, height, updated_at_micros FROM engine_state WHERE id = 1`,
	).Scan(&snapshot, &height, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return game.NewState(), 0, 0, nil
	}
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to load state: %w", err)
	}

	state := game.NewState()
	if err := json.Unmarshal([]byte(snapshot), state); err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt state snapshot: %w", err)
	}
	return state, height, updated, nil
}

func saveState(tx *sql.Tx, state *game.State, env game.Env) error {
	snapshot, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO engine_state (id, snapshot, height, updated_at_micros)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   snapshot = excluded.snapshot,
		   height = excluded.height,
		   updated_at_micros = excluded.updated_at_micros`,
		string(snapshot), env.Height, env.NowMicros,
	)
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func appendJournal(tx *sql.Tx, env game.Env, op string, request, response any) error {
	reqJSON, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	respJSON, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO op_journal (id, seq, op, request, response, height, timestamp_micros)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), env.Height, op, string(reqJSON), string(respJSON),
		env.Height, env.NowMicros,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal: %w", err)
	}
	return nil
}
