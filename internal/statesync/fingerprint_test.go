package statesync

import (
	"math"
	"testing"
)

func TestFingerprintScalars(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		same bool
	}{
		{"equal ints", 42, 42, true},
		{"different ints", 42, 43, false},
		{"int vs float of same magnitude", 42, 42.0, false},
		{"equal strings", "dock", "dock", true},
		{"string vs bool", "true", true, false},
		{"equal bools", true, true, true},
		{"nil vs nil", nil, nil, true},
		{"nil vs zero", nil, 0, false},
		{"nil vs absent", nil, Absent, false},
		{"absent vs absent", Absent, Absent, true},
		{"NaN vs NaN", math.NaN(), math.NaN(), true},
		{"NaN vs zero", math.NaN(), 0.0, false},
		{"float32 NaN vs float64 NaN", float32(math.NaN()), math.NaN(), true},
		{"numeric string vs number", "42", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := Fingerprint(tt.a), Fingerprint(tt.b)
			if (a == b) != tt.same {
				t.Errorf("Fingerprint(%v)=%q, Fingerprint(%v)=%q, want same=%v",
					tt.a, a, tt.b, b, tt.same)
			}
		})
	}
}

func TestFingerprintStructured(t *testing.T) {
	// Map key order must not matter; encoding/json sorts keys.
	a := map[string]any{"mode": "vacuum", "areas": []int{1, 2}}
	b := map[string]any{"areas": []int{1, 2}, "mode": "vacuum"}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("equivalent maps produced different fingerprints")
	}

	// Array order must matter.
	c := map[string]any{"areas": []int{2, 1}, "mode": "vacuum"}
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("reordered array produced the same fingerprint")
	}

	// Struct values go through the canonical JSON path too.
	type selection struct {
		Areas []int  `json:"areas"`
		Mode  string `json:"mode"`
	}
	if Fingerprint(selection{Areas: []int{1}, Mode: "mop"}) ==
		Fingerprint(selection{Areas: []int{1}, Mode: "vacuum"}) {
		t.Error("distinct structs produced the same fingerprint")
	}
}

func TestFingerprintUnserialisableFallsBack(t *testing.T) {
	// A self-referencing map cannot be marshalled; the fallback must be a
	// type tag, not a panic or an error surfaced to the caller.
	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	got := Fingerprint(cyclic)
	if got != "opaque:map[string]interface {}" {
		t.Errorf("fallback fingerprint = %q", got)
	}

	// Channels are unserialisable too; same-type collision is accepted.
	if Fingerprint(make(chan int)) != Fingerprint(make(chan int)) {
		t.Error("same-type unserialisable values expected to collide by design")
	}
}
