package deck

import (
	"testing"
)

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		rank Rank
		suit Suit
	}{
		{"Ah", Ace, Hearts},
		{"Td", Ten, Diamonds},
		{"2c", Two, Clubs},
		{"Ks", King, Spades},
		{"9h", Nine, Hearts},
	}
	for _, tt := range tests {
		card, err := ParseCard(tt.in)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", tt.in, err)
		}
		if card.Rank != tt.rank || card.Suit != tt.suit {
			t.Errorf("ParseCard(%q) = %v, want %v%v", tt.in, card, tt.rank, tt.suit)
		}
		if card.String() != tt.in {
			t.Errorf("round trip %q = %q", tt.in, card.String())
		}
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"", "A", "Ahh", "1h", "Ax", "10d", "ah"} {
		if _, err := ParseCard(in); err == nil {
			t.Errorf("ParseCard(%q) accepted invalid input", in)
		}
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	cards, err := ParseCards("Ah Kd Qc")
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[1].String() != "Kd" {
		t.Errorf("second card = %s, want Kd", cards[1])
	}
	if _, err := ParseCards("Ah Xx"); err == nil {
		t.Error("expected error for invalid card in list")
	}
}

func TestCardIndexIsUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[int]Card)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			card := Card{Rank: rank, Suit: suit}
			idx := card.Index()
			if idx < 0 || idx > 51 {
				t.Fatalf("index %d out of range for %s", idx, card)
			}
			if prev, dup := seen[idx]; dup {
				t.Fatalf("index %d shared by %s and %s", idx, prev, card)
			}
			seen[idx] = card
		}
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 distinct indexes, got %d", len(seen))
	}
}
