package deck

import (
	rand "math/rand/v2"
)

// Deck is a standard 52-card deck consumed front-to-back. A fresh deck is
// created for every hand; cards are never recycled within a hand.
type Deck struct {
	cards [52]Card
	next  int
}

// New creates a freshly shuffled deck using the provided RNG. The RNG is
// required so that callers control determinism; production sessions seed it
// from a cryptographic source.
func New(rng *rand.Rand) *Deck {
	d := &Deck{}
	i := 0
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.shuffle(rng)
	return d
}

// shuffle applies a uniform Fisher-Yates permutation.
func (d *Deck) shuffle(rng *rand.Rand) {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// DealOne removes and returns the top card. ok is false on overdraw, which
// indicates a bug in the caller; the deck never reshuffles mid-hand.
func (d *Deck) DealOne() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// DealN deals n cards from the top of the deck, or nil on overdraw.
func (d *Deck) DealN(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
