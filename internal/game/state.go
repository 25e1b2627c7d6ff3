package game

import (
	"encoding/json"

	"github.com/flashport/dicebingo/internal/amount"
	"github.com/flashport/dicebingo/internal/bingo"
	"github.com/flashport/dicebingo/internal/ledger"
	"github.com/flashport/dicebingo/internal/session"
)

// Fee constants in atto-units (1 unit = 10^18 atto).
var (
	MinBet   = amount.MustParse("1000000000000000000")   // 1 unit
	MaxBet   = amount.MustParse("100000000000000000000") // 100 units
	RollCost = amount.MustParse("50000000000000000")     // 0.05 unit
)

// HistoryLimit bounds the roll history to the 50 most recent records.
const HistoryLimit = 50

// Env carries the host-recorded inputs for one operation. The host
// guarantees Height and NowMicros are monotonically non-decreasing across
// calls; together with the state counters they are the engine's only
// entropy source.
type Env struct {
	Height    uint64
	NowMicros uint64
}

// DrawnNumbers holds the unique dice sums observed this game, in draw
// order. A plain []uint8 would marshal as a base64 string; the wire format
// is an integer array, so the type carries its own codec.
type DrawnNumbers []uint8

// MarshalJSON emits the sums as a JSON integer array.
func (d DrawnNumbers) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("[]"), nil
	}
	out := make([]uint16, len(d))
	for i, v := range d {
		out[i] = uint16(v)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a JSON integer array.
func (d *DrawnNumbers) UnmarshalJSON(data []byte) error {
	var raw []uint16
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(DrawnNumbers, len(raw))
	for i, v := range raw {
		out[i] = uint8(v)
	}
	*d = out
	return nil
}

// Contains reports whether sum has already been drawn.
func (d DrawnNumbers) Contains(sum uint8) bool {
	for _, v := range d {
		if v == sum {
			return true
		}
	}
	return false
}

// RollRecord is one entry of the audit history.
type RollRecord struct {
	Dice      [4]uint8      `json:"dice"`
	Sum       uint8         `json:"sum"`
	Matched   bool          `json:"matched"`
	Timestamp uint64        `json:"timestamp_micros"`
	FeePaid   amount.Amount `json:"fee_paid_atto"`
	IsLucky   bool          `json:"is_lucky"`
}

// History is a bounded FIFO of recent rolls, oldest evicted first.
type History struct {
	records []RollRecord
}

// Push appends a record, evicting the oldest past HistoryLimit.
func (h *History) Push(r RollRecord) {
	h.records = append(h.records, r)
	if len(h.records) > HistoryLimit {
		h.records = h.records[len(h.records)-HistoryLimit:]
	}
}

// Len returns the number of retained records.
func (h *History) Len() int { return len(h.records) }

// Last returns the most recent record, if any.
func (h *History) Last() (RollRecord, bool) {
	if len(h.records) == 0 {
		return RollRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// All returns the retained records, oldest first.
func (h *History) All() []RollRecord {
	out := make([]RollRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Clear drops every record.
func (h *History) Clear() { h.records = nil }

// MarshalJSON persists the ring as a plain array, oldest first.
func (h History) MarshalJSON() ([]byte, error) {
	if h.records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.records)
}

func (h *History) UnmarshalJSON(data []byte) error {
	var recs []RollRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return err
	}
	if len(recs) > HistoryLimit {
		recs = recs[len(recs)-HistoryLimit:]
	}
	h.records = recs
	return nil
}

// State is the single persistent aggregate. The host loads it before an
// operation, hands the orchestrator an exclusive reference, and persists it
// only if the operation completes without a fatal error. There is exactly
// one card and one session in flight at a time.
type State struct {
	Sessions session.Gate `json:"sessions"`

	Card              *bingo.Card  `json:"current_card,omitempty"`
	GameCounter       uint64       `json:"game_counter"`
	DrawnNumbers      DrawnNumbers `json:"drawn_numbers"`
	HasUnclaimedPrize bool         `json:"has_unclaimed_prize"`

	Balance   ledger.Balance `json:"balance"`
	PrizePool amount.Amount  `json:"current_prize_pool"`

	TotalGames uint64  `json:"total_games"`
	TotalWins  uint64  `json:"total_wins"`
	History    History `json:"roll_history"`
}

// NewState returns an empty aggregate.
func NewState() *State {
	return &State{}
}

// resetGame clears the per-game state. Called by EndSession; NewGame
// overwrites the card and clears history itself.
func (s *State) resetGame() {
	s.Card = nil
	s.DrawnNumbers = nil
	s.HasUnclaimedPrize = false
	s.PrizePool = amount.Zero()
}
