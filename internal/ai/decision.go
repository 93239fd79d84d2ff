// Package ai implements the rule-based strategies that drive non-human
// seats. Every strategy consumes the same situation snapshot and produces a
// decision with its telemetry; randomness comes only from the session RNG so
// play is reproducible under a fixed seed.
package ai

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/evaluator"
	"github.com/cardroom/holdem/internal/game"
)

// Decision is the record a strategy emits. The field set is fixed: extra
// telemetry belongs in the event log, not here.
type Decision struct {
	Action       game.Action `json:"action"`
	Amount       int         `json:"amount"` // raise-to total; 0 otherwise
	Reasoning    string      `json:"reasoning"`
	HandStrength float64     `json:"hand_strength"`
	PotOdds      float64     `json:"pot_odds"`
	SPR          float64     `json:"spr"`
	Confidence   float64     `json:"confidence"`
}

// Situation is everything a strategy may look at when deciding.
type Situation struct {
	Street         game.Street
	Hole           []deck.Card
	Board          []deck.Card
	Pot            int
	CurrentBet     int
	AmountToCall   int
	Stack          int
	EffectiveStack int
	Opponents      int
	BigBlind       int

	// Legality envelope from the state machine. When CanRaise is false the
	// seat may not raise regardless of intent (short all-in, no reopen).
	CanRaise   bool
	MinRaiseTo int
	MaxRaiseTo int

	// EquitySamples caps Monte-Carlo work per decision.
	EquitySamples int
}

// Strategy decides one action for a situation.
type Strategy interface {
	Name() string
	Decide(sit Situation, rng *rand.Rand) Decision
}

// ForPersonality maps a seat personality to its strategy.
func ForPersonality(p game.Personality) (Strategy, error) {
	switch p {
	case game.PersonalityConservative:
		return Conservative{}, nil
	case game.PersonalityAggressive:
		return Aggressive{}, nil
	case game.PersonalityMathematical:
		return Mathematical{}, nil
	default:
		return nil, fmt.Errorf("%w: no strategy for personality %q", game.ErrInvalidAction, p)
	}
}

// handStrength is the shared strength input: the preflop chart before the
// flop, win probability against the live opponent count after it.
func (s Situation) handStrength(rng *rand.Rand) float64 {
	if s.Street == game.Preflop || len(s.Board) == 0 {
		return PreflopStrength(s.Hole[0], s.Hole[1])
	}
	return evaluator.WinProbability(s.Hole, s.Board, s.Opponents, s.EquitySamples, rng)
}

// potOdds is amountToCall / (pot + amountToCall), zero when nothing is owed.
func (s Situation) potOdds() float64 {
	if s.AmountToCall <= 0 {
		return 0
	}
	return float64(s.AmountToCall) / float64(s.Pot+s.AmountToCall)
}

// spr is the stack-to-pot ratio on the effective stack.
func (s Situation) spr() float64 {
	pot := s.Pot
	if pot < 1 {
		pot = 1
	}
	return float64(s.EffectiveStack) / float64(pot)
}

// raiseOrFallback clamps an intended raise-to total into the legal range.
// When raising is closed the intent degrades to a call (or a check when
// nothing is owed), per the legality rules.
func (s Situation) raiseOrFallback(target int, d Decision, why string) Decision {
	if s.CanRaise {
		if target < s.MinRaiseTo {
			target = s.MinRaiseTo
		}
		if target > s.MaxRaiseTo {
			target = s.MaxRaiseTo
		}
		d.Action = game.Raise
		d.Amount = target
		d.Reasoning = why
		return d
	}
	if s.AmountToCall > 0 {
		d.Action = game.Call
		d.Reasoning = why + " (raise not available, calling)"
		return d
	}
	d.Action = game.Check
	d.Reasoning = why + " (raise not available, checking)"
	return d
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// lerp interpolates between a and b as t goes 0 to 1, clamping t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp01(t)
}
