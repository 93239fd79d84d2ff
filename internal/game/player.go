package game

import (
	"github.com/cardroom/holdem/internal/deck"
)

// Personality selects the AI strategy for a seat. None marks a human seat.
type Personality string

const (
	PersonalityNone         Personality = ""
	PersonalityConservative Personality = "conservative"
	PersonalityAggressive   Personality = "aggressive"
	PersonalityMathematical Personality = "mathematical"
)

// Player is a seat at the table. All chip mutations go through the hand
// state machine; the methods here are the only primitives it uses.
type Player struct {
	ID          string
	Name        string
	Human       bool
	Personality Personality

	Stack         int
	HoleCards     []deck.Card
	CurrentBet    int // chips committed this street
	TotalInvested int // chips committed this hand
	Active        bool
	AllIn         bool
	HasActed      bool
}

// InHand reports whether the seat has not folded this hand.
func (p *Player) InHand() bool {
	return p.Active
}

// CanAct reports whether the seat may still take actions this hand.
func (p *Player) CanAct() bool {
	return p.Active && !p.AllIn
}

// Commit moves up to amount chips from the stack into the seat's street and
// hand commitments, clamping to the stack. When the clamp engages the seat
// is all-in. Returns the chips actually committed.
func (p *Player) Commit(amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.CurrentBet += amount
	p.TotalInvested += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}

// Fold removes the seat from the hand.
func (p *Player) Fold() {
	p.Active = false
	p.HasActed = true
}

// MarkActed records that the seat has acted this street.
func (p *Player) MarkActed() {
	p.HasActed = true
}

// BeginStreet resets per-street state.
func (p *Player) BeginStreet() {
	p.CurrentBet = 0
	p.HasActed = false
}

// BeginHand resets per-hand state. The stack carries over; a seat with no
// chips left sits out (Active stays false, no cards dealt).
func (p *Player) BeginHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalInvested = 0
	p.AllIn = false
	p.HasActed = false
	p.Active = p.Stack > 0
}
