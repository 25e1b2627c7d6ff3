package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashport/dicebingo/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	host, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { host.Close() })

	ts := httptest.NewServer(NewServer(host).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func getJSON(t *testing.T, ts *httptest.Server, path string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestFullGameFlow(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts, "/api/v1/session/start", StartSessionRequest{ExpiresInSecs: 3600})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `"session_started"`, string(body["type"]))

	resp, _ = postJSON(t, ts, "/api/v1/wallet/deposit", AmountRequest{AmountAtto: "8000000000000000000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = postJSON(t, ts, "/api/v1/game/new", NewGameRequest{BetAmountAtto: "1000000000000000000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `"game_started"`, string(body["type"]))

	var started struct {
		GameID uint64 `json:"game_id"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &started))
	require.Equal(t, uint64(1), started.GameID)

	resp, body = postJSON(t, ts, "/api/v1/game/roll", struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `"roll_result"`, string(body["type"]))

	var roll struct {
		Dice       [4]uint8 `json:"dice"`
		Sum        uint8    `json:"sum"`
		RollsCount uint32   `json:"rolls_count"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &roll))
	require.Equal(t, uint32(1), roll.RollsCount)
	var sum uint8
	for _, d := range roll.Dice {
		require.GreaterOrEqual(t, d, uint8(1))
		require.LessOrEqual(t, d, uint8(6))
		sum += d
	}
	require.Equal(t, sum, roll.Sum)

	resp, _ = getJSON(t, ts, "/api/v1/game/card")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = getJSON(t, ts, "/api/v1/stats")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `1`, string(body["total_games"]))
}

func TestDrawnNumbersWireFormat(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts, "/api/v1/session/start", StartSessionRequest{})
	postJSON(t, ts, "/api/v1/wallet/deposit", AmountRequest{AmountAtto: "8000000000000000000"})
	postJSON(t, ts, "/api/v1/game/new", NewGameRequest{BetAmountAtto: "1000000000000000000"})

	resp, body := postJSON(t, ts, "/api/v1/game/roll", struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var roll struct {
		Sum uint8 `json:"sum"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &roll))

	// Drawn sums must come back as a JSON integer array, not a base64
	// string.
	resp, body = getJSON(t, ts, "/api/v1/game/drawn")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var drawn []int
	require.NoError(t, json.Unmarshal(body["drawn_numbers"], &drawn))
	require.Equal(t, []int{int(roll.Sum)}, drawn)
}

func TestRollWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts, "/api/v1/game/roll", struct{}{})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.JSONEq(t, `"no_active_session"`, string(body["type"]))
}

func TestRollWithoutGame(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := postJSON(t, ts, "/api/v1/session/start", StartSessionRequest{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := postJSON(t, ts, "/api/v1/game/roll", struct{}{})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.JSONEq(t, `"no_active_game"`, string(body["type"]))
}

func TestBetOutOfRange(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts, "/api/v1/session/start", StartSessionRequest{})
	postJSON(t, ts, "/api/v1/wallet/deposit", AmountRequest{AmountAtto: "500000000000000000000"})

	resp, body := postJSON(t, ts, "/api/v1/game/new", NewGameRequest{BetAmountAtto: "1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `"bet_too_low"`, string(body["type"]))

	resp, body = postJSON(t, ts, "/api/v1/game/new", NewGameRequest{BetAmountAtto: "200000000000000000000"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `"bet_too_high"`, string(body["type"]))
}

func TestInsufficientBalanceContext(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts, "/api/v1/session/start", StartSessionRequest{})

	resp, body := postJSON(t, ts, "/api/v1/game/new", NewGameRequest{BetAmountAtto: "1000000000000000000"})
	require.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	require.JSONEq(t, `"insufficient_balance"`, string(body["type"]))

	var ctx map[string]string
	require.NoError(t, json.Unmarshal(body["context"], &ctx))
	require.Equal(t, "0", ctx["available_atto"])
	require.Equal(t, "1000000000000000000", ctx["requested_atto"])
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/game/new", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out EngineError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, ErrTypeValidation, out.Type)
}

func TestFailedOpNotJournaled(t *testing.T) {
	ts := newTestServer(t)

	// Rejected roll must not append to the journal.
	postJSON(t, ts, "/api/v1/game/roll", struct{}{})

	resp, body := getJSON(t, ts, "/api/v1/journal")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `0`, string(body["count"]))
}

func TestHealthAndVersion(t *testing.T) {
	ts := newTestServer(t)

	resp, body := getJSON(t, ts, "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `"healthy"`, string(body["status"]))

	resp, body = getJSON(t, ts, "/version")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `"dev"`, string(body["engine_version"]))

	resp, _ = getJSON(t, ts, "/health/live")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJournalLimitBounds(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts, "/api/v1/session/start", StartSessionRequest{})

	// The handler's accepted range matches what the store honors; above it
	// the request is rejected instead of silently truncated.
	resp, body := getJSON(t, ts, "/api/v1/journal?limit=500")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `1`, string(body["count"]))

	resp, body = getJSON(t, ts, "/api/v1/journal?limit=501")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `"validation_error"`, string(body["type"]))

	resp, body = getJSON(t, ts, "/api/v1/journal?limit=0")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.JSONEq(t, `"validation_error"`, string(body["type"]))
}

func TestJournalRecordsOps(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts, "/api/v1/session/start", StartSessionRequest{})
	postJSON(t, ts, "/api/v1/wallet/deposit", AmountRequest{AmountAtto: "8000000000000000000"})
	postJSON(t, ts, "/api/v1/game/new", NewGameRequest{BetAmountAtto: "1000000000000000000"})

	resp, body := getJSON(t, ts, "/api/v1/journal")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `3`, string(body["count"]))

	var entries []store.JournalEntry
	require.NoError(t, json.Unmarshal(body["entries"], &entries))
	// Newest first.
	require.Equal(t, "new_game", entries[0].Op)
	require.Equal(t, uint64(3), entries[0].Seq)
	require.Equal(t, "start_session", entries[2].Op)
}
