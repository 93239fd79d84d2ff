package ai

import (
	"github.com/cardroom/holdem/internal/deck"
)

// PreflopStrength maps hole cards to a heuristic strength in [0,1], keyed by
// rank pair and suitedness. Pocket pairs scale linearly from 0.50 (deuces)
// to 1.00 (aces); unpaired hands weight the high card most, with bonuses for
// suitedness, connectedness and two broadway cards.
func PreflopStrength(c1, c2 deck.Card) float64 {
	high, low := c1.Rank, c2.Rank
	if low > high {
		high, low = low, high
	}

	if high == low {
		return 0.50 + 0.50*float64(high-deck.Two)/12.0
	}

	hf := float64(high-deck.Two) / 12.0
	lf := float64(low-deck.Two) / 12.0
	strength := 0.12 + 0.38*hf + 0.16*lf

	if c1.Suit == c2.Suit {
		strength += 0.05
	}
	switch gap := int(high-low) - 1; {
	case gap == 0:
		strength += 0.04
	case gap == 1:
		strength += 0.02
	case gap == 2:
		strength += 0.01
	case gap >= 3:
		strength -= 0.02
	}
	if low >= deck.Ten {
		strength += 0.05
	}

	return clamp01(strength)
}
