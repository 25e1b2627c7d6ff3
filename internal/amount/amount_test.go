package amount

import (
	"encoding/json"
	"testing"
)

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "abc", "-5", "1.5"} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}

func TestAddSaturates(t *testing.T) {
	max := MustParse("340282366920938463463374607431768211455") // 2^128-1
	got := max.Add(FromUint64(1))
	if got.Cmp(max) != 0 {
		t.Errorf("Add past max should clamp, got %s", got)
	}
}

func TestSubFloorsAtZero(t *testing.T) {
	got := FromUint64(5).Sub(FromUint64(7))
	if !got.IsZero() {
		t.Errorf("Sub below zero should floor, got %s", got)
	}
}

func TestMulDivFloors(t *testing.T) {
	// 7 * 12 / 10 = 8.4 -> 8
	got := FromUint64(7).MulDiv(12, 10)
	if got.String() != "8" {
		t.Errorf("Expected 8, got %s", got)
	}

	// 2e18 * 3 / 1 = 6e18
	bet := MustParse("2000000000000000000")
	if payout := bet.MulDiv(3, 1); payout.String() != "6000000000000000000" {
		t.Errorf("Expected 6000000000000000000, got %s", payout)
	}
}

func TestZeroValueIsUsable(t *testing.T) {
	var a Amount
	if !a.IsZero() {
		t.Error("zero value should be zero")
	}
	if a.String() != "0" {
		t.Errorf("zero value String() = %s", a.String())
	}
	if got := a.Add(FromUint64(3)); got.String() != "3" {
		t.Errorf("0+3 = %s", got)
	}
}

func TestDisplay(t *testing.T) {
	cases := map[string]string{
		"0":                   "0",
		"1000000000000000000": "1",
		"1050000000000000000": "1.05",
		"50000000000000000":   "0.05",
	}
	for atto, want := range cases {
		if got := MustParse(atto).Display(); got != want {
			t.Errorf("Display(%s) = %s, want %s", atto, got, want)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := MustParse("100000000000000000000")
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"100000000000000000000"` {
		t.Errorf("Marshal = %s", data)
	}

	var back Amount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Cmp(a) != 0 {
		t.Errorf("round trip changed value: %s != %s", back, a)
	}

	if err := json.Unmarshal([]byte("42"), &back); err == nil {
		t.Error("bare number should be rejected")
	}
}
