package gameid

import (
	"strings"
	"testing"
	"time"
)

type fixedRand struct{ v int }

func (f fixedRand) Intn(n int) int { return f.v % n }

func TestGenerateProducesValidIDs(t *testing.T) {
	t.Parallel()
	for i := 0; i < 100; i++ {
		id := Generate()
		if err := Validate(id); err != nil {
			t.Fatalf("generated invalid id %q: %v", id, err)
		}
	}
}

func TestGenerateIsUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := Generate()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestGenerateWithFixedRandSourceSharesSuffix(t *testing.T) {
	t.Parallel()
	gen := NewGenerator(fixedRand{v: 7})
	a := gen.Generate()
	b := gen.Generate()
	// Timestamp prefix may differ; the random tail must not.
	if a[16:] != b[16:] {
		t.Errorf("fixed rand source gave different tails: %q vs %q", a, b)
	}
}

func TestIDsSortByCreationTime(t *testing.T) {
	t.Parallel()
	// Millisecond timestamps are the most significant bits, so IDs created
	// in later milliseconds never sort before earlier ones.
	prev := Generate()
	for i := 0; i < 20; i++ {
		time.Sleep(2 * time.Millisecond)
		next := Generate()
		if strings.Compare(next, prev) < 0 {
			t.Fatalf("id %q sorts before earlier id %q", next, prev)
		}
		prev = next
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		id      string
		wantErr bool
	}{
		{strings.Repeat("0", 26), false},
		{"7" + strings.Repeat("z", 25), false},
		{strings.Repeat("0", 25), true},             // too short
		{strings.Repeat("0", 27), true},             // too long
		{"8" + strings.Repeat("0", 25), true},       // first char over 7
		{"0" + strings.Repeat("0", 24) + "u", true}, // u not in alphabet
		{strings.Repeat("0", 25) + "I", true},       // uppercase
	}
	for _, tt := range tests {
		err := Validate(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}
