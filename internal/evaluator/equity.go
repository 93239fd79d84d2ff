package evaluator

import (
	rand "math/rand/v2"

	"github.com/cardroom/holdem/internal/deck"
)

// DefaultSamples is the Monte-Carlo sample count used when the caller does
// not configure one.
const DefaultSamples = 200

// exactLimit bounds the number of (runout x opponent-hole) combinations we
// are willing to enumerate exactly before falling back to sampling.
const exactLimit = 10000

// CardSet is a 52-bit set keyed by deck.Card.Index, used to exclude seen
// cards without allocation.
type CardSet uint64

// Add inserts a card into the set.
func (cs *CardSet) Add(card deck.Card) {
	*cs |= 1 << uint(card.Index())
}

// Contains reports whether the card is in the set.
func (cs CardSet) Contains(card deck.Card) bool {
	return cs&(1<<uint(card.Index())) != 0
}

// WinProbability estimates the probability that hole wins at showdown
// against `opponents` random hands drawn from the unseen cards, given 0-4
// community cards. Ties are credited as 1/(number tied).
//
// Heads-up spots with few runouts are enumerated exactly; everything else is
// Monte-Carlo with the given sample count (DefaultSamples when <= 0). The
// result is deterministic for a fixed rng state.
func WinProbability(hole, board []deck.Card, opponents, samples int, rng *rand.Rand) float64 {
	if len(hole) != 2 || len(board) > 5 || opponents < 1 {
		return 0
	}
	if samples <= 0 {
		samples = DefaultSamples
	}

	var seen CardSet
	for _, c := range hole {
		seen.Add(c)
	}
	for _, c := range board {
		seen.Add(c)
	}

	unseen := make([]deck.Card, 0, 52-len(hole)-len(board))
	for suit := deck.Clubs; suit <= deck.Spades; suit++ {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			c := deck.NewCard(rank, suit)
			if !seen.Contains(c) {
				unseen = append(unseen, c)
			}
		}
	}

	need := 5 - len(board)
	// Multiway equity is always sampled; the exact combination count is
	// far too large with two or more opponents on any street.
	if opponents == 1 && exactCombos(len(unseen), need) <= exactLimit {
		return exactHeadsUp(hole, board, unseen, need)
	}
	return sampled(hole, board, unseen, need, opponents, samples, rng)
}

// exactCombos counts runout x single-opponent-hole combinations.
func exactCombos(unseen, need int) int {
	total := binomial(unseen, need)
	if total <= 0 {
		return exactLimit + 1
	}
	holes := binomial(unseen-need, 2)
	if holes <= 0 || total > exactLimit/holes {
		return exactLimit + 1
	}
	return total * holes
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	result := 1
	for i := 0; i < k; i++ {
		result = result * (n - i) / (i + 1)
	}
	return result
}

// exactHeadsUp enumerates every board completion and opponent hole pair.
func exactHeadsUp(hole, board, unseen []deck.Card, need int) float64 {
	fullBoard := make([]deck.Card, len(board), 5)
	copy(fullBoard, board)

	var share, count float64
	runout := make([]int, need)
	enumerate(len(unseen), need, runout, func(boardIdx []int) {
		fullBoard = fullBoard[:len(board)]
		var used CardSet
		for _, i := range boardIdx {
			fullBoard = append(fullBoard, unseen[i])
			used.Add(unseen[i])
		}
		myRank := Rank(append(append(make([]deck.Card, 0, 7), hole...), fullBoard...))

		for i := 0; i < len(unseen); i++ {
			if used.Contains(unseen[i]) {
				continue
			}
			for j := i + 1; j < len(unseen); j++ {
				if used.Contains(unseen[j]) {
					continue
				}
				oppRank := Rank(append(append(make([]deck.Card, 0, 7), unseen[i], unseen[j]), fullBoard...))
				switch myRank.Compare(oppRank) {
				case 1:
					share++
				case 0:
					share += 0.5
				}
				count++
			}
		}
	})

	if count == 0 {
		return 0
	}
	return share / count
}

// enumerate visits every k-combination of [0,n) in lexicographic order.
func enumerate(n, k int, idx []int, visit func([]int)) {
	if k == 0 {
		visit(idx[:0])
		return
	}
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			visit(idx)
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}

// sampled runs Monte-Carlo showdowns against random opponent hands.
func sampled(hole, board, unseen []deck.Card, need, opponents, samples int, rng *rand.Rand) float64 {
	draw := need + 2*opponents
	if draw > len(unseen) {
		return 0
	}

	pool := make([]deck.Card, len(unseen))
	fullBoard := make([]deck.Card, 0, 5)
	mine := make([]deck.Card, 0, 7)
	theirs := make([]deck.Card, 0, 7)

	var share float64
	for s := 0; s < samples; s++ {
		copy(pool, unseen)
		// Partial Fisher-Yates: only the cards we draw get placed.
		for i := 0; i < draw; i++ {
			j := i + rng.IntN(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
		}

		fullBoard = append(fullBoard[:0], board...)
		fullBoard = append(fullBoard, pool[:need]...)

		mine = append(mine[:0], hole...)
		mine = append(mine, fullBoard...)
		myRank := Rank(mine)

		best := true
		tied := 1
		for o := 0; o < opponents; o++ {
			theirs = append(theirs[:0], pool[need+2*o], pool[need+2*o+1])
			theirs = append(theirs, fullBoard...)
			switch myRank.Compare(Rank(theirs)) {
			case -1:
				best = false
			case 0:
				tied++
			}
			if !best {
				break
			}
		}
		if best {
			share += 1.0 / float64(tied)
		}
	}
	return share / float64(samples)
}
