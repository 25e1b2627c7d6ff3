package game

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDrawnNumbersMarshalAsIntegerArray(t *testing.T) {
	d := DrawnNumbers{10, 17, 4}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "[10,17,4]" {
		t.Errorf("DrawnNumbers wire format = %s, want [10,17,4]", data)
	}

	var back DrawnNumbers
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(back) != 3 || back[0] != 10 || back[1] != 17 || back[2] != 4 {
		t.Errorf("round trip = %v, want [10 17 4]", back)
	}
}

func TestDrawnNumbersEmptyMarshalsAsEmptyArray(t *testing.T) {
	var d DrawnNumbers
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("empty DrawnNumbers = %s, want []", data)
	}
}

func TestStateSnapshotEncodesDrawnNumbersAsIntegers(t *testing.T) {
	s := NewState()
	s.DrawnNumbers = DrawnNumbers{10}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"drawn_numbers":[10]`) {
		t.Errorf("snapshot encodes drawn numbers as %s, want integer array", data)
	}

	restored := NewState()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(restored.DrawnNumbers) != 1 || restored.DrawnNumbers[0] != 10 {
		t.Errorf("restored drawn numbers = %v, want [10]", restored.DrawnNumbers)
	}
}
