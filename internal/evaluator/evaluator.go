// Package evaluator ranks poker hands and estimates win probabilities.
// Hands are reduced to per-suit rank bitmasks; category and kickers are read
// off the masks without enumerating 5-card combinations.
package evaluator

import (
	"math/bits"

	"github.com/cardroom/holdem/internal/deck"
)

// HandRank is a totally ordered hand score. Higher is stronger. Two hands of
// the same category compare by kickers according to standard poker rules.
type HandRank uint32

// Category enumerates poker hand categories from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Category extracts the hand category from a rank score.
func (hr HandRank) Category() Category {
	return Category(hr >> 20)
}

// Compare returns 1 if hr is stronger, -1 if other is stronger, 0 on tie.
func (hr HandRank) Compare(other HandRank) int {
	if hr > other {
		return 1
	} else if hr < other {
		return -1
	}
	return 0
}

// Rank scores the best 5-card hand available in 5 to 7 cards.
// The score packs the category in the top bits and up to five kicker ranks
// below it, so integer comparison resolves ties exactly.
func Rank(cards []deck.Card) HandRank {
	var suitMasks [4]uint16
	for _, c := range cards {
		suitMasks[c.Suit] |= 1 << uint(c.Rank-deck.Two)
	}
	rankMask := suitMasks[0] | suitMasks[1] | suitMasks[2] | suitMasks[3]

	// Flushes first. With seven cards at most one suit can hold five.
	for _, sm := range suitMasks {
		if bits.OnesCount16(sm) >= 5 {
			if high := straightHigh(sm); high > 0 {
				return pack(StraightFlush, high)
			}
			return pack(Flush, topRanks(sm, 5)...)
		}
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quadsMask := s0 & s1 & s2 & s3
	tripCandidates := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	tripsMask := tripCandidates &^ quadsMask
	pairsMask := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripCandidates

	if quad := highest(quadsMask); quad >= 0 {
		kicker := highest(rankMask &^ (1 << uint(quad)))
		return pack(FourOfAKind, quad, kicker)
	}

	if trip := highest(tripsMask); trip >= 0 {
		// A second trip plays as the pair of a full house.
		pairCandidates := pairsMask | (tripsMask &^ (1 << uint(trip)))
		if pair := highest(pairCandidates); pair >= 0 {
			return pack(FullHouse, trip, pair)
		}
	}

	if high := straightHigh(rankMask); high > 0 {
		return pack(Straight, high)
	}

	if trip := highest(tripsMask); trip >= 0 {
		kickers := topRanks(rankMask&^(1<<uint(trip)), 2)
		return pack(ThreeOfAKind, trip, kickers[0], kickers[1])
	}

	if hiPair := highest(pairsMask); hiPair >= 0 {
		if loPair := highest(pairsMask &^ (1 << uint(hiPair))); loPair >= 0 {
			kicker := highest(rankMask &^ (1 << uint(hiPair)) &^ (1 << uint(loPair)))
			return pack(TwoPair, hiPair, loPair, kicker)
		}
		kickers := topRanks(rankMask&^(1<<uint(hiPair)), 3)
		return pack(Pair, hiPair, kickers[0], kickers[1], kickers[2])
	}

	k := topRanks(rankMask, 5)
	return pack(HighCard, k[0], k[1], k[2], k[3], k[4])
}

// pack builds the score: category in bits 20+, then kicker ranks in
// descending significance, four bits each.
func pack(cat Category, tiebreaks ...int) HandRank {
	score := HandRank(cat) << 20
	shift := 16
	for _, t := range tiebreaks {
		score |= HandRank(t) << uint(shift)
		shift -= 4
	}
	return score
}

// highest returns the highest rank bit set in the mask, or -1 when empty.
func highest(mask uint16) int {
	if mask == 0 {
		return -1
	}
	return bits.Len16(mask) - 1
}

// topRanks returns the n highest ranks present in the mask, descending.
// Missing positions are filled with zero, which cannot occur with valid input.
func topRanks(mask uint16, n int) []int {
	out := make([]int, 0, n)
	for len(out) < n {
		if mask == 0 {
			out = append(out, 0)
			continue
		}
		top := bits.Len16(mask) - 1
		out = append(out, top)
		mask &^= 1 << uint(top)
	}
	return out
}

// straightHigh returns the high rank of the best straight in the mask
// (0 if none). The wheel reports 3, the rank bit of the five.
func straightHigh(mask uint16) int {
	const wheel = 0x100F // A-2-3-4-5
	mask &= 0x1FFF

	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return bits.Len16(seq) - 1 + 4
	}
	if mask&wheel == wheel {
		return 3
	}
	return 0
}
