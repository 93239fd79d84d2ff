package ai

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/cardroom/holdem/internal/game"
)

// Aggressive plays loose-aggressive with bluffs. Shallow stacks play
// push-or-fold; deeper stacks raise wide and bluff more often as the
// stack-to-pot ratio grows. Bluff probability is hard-capped.
type Aggressive struct{}

const maxBluffProbability = 0.40

func (Aggressive) Name() string { return "aggressive" }

func (Aggressive) Decide(sit Situation, rng *rand.Rand) Decision {
	hs := sit.handStrength(rng)
	odds := sit.potOdds()
	spr := sit.spr()

	d := Decision{
		HandStrength: hs,
		PotOdds:      odds,
		SPR:          spr,
		Confidence:   clamp01(0.4 + hs/2),
	}

	if spr <= 3 {
		// Push-or-fold territory.
		bluff := rng.Float64() < bluffProb(0.10)
		if hs >= 0.40 || bluff {
			why := fmt.Sprintf("SPR %.1f, committed with %.2f, shove", spr, hs)
			if bluff && hs < 0.40 {
				why = fmt.Sprintf("SPR %.1f, shoving as a bluff", spr)
			}
			return sit.raiseOrFallback(sit.MaxRaiseTo, d, why)
		}
		if sit.AmountToCall == 0 {
			d.Action = game.Check
			d.Reasoning = fmt.Sprintf("SPR %.1f, too weak to shove (%.2f), free check", spr, hs)
			return d
		}
		d.Action = game.Fold
		d.Reasoning = fmt.Sprintf("SPR %.1f, push-or-fold and %.2f is a fold", spr, hs)
		return d
	}

	raiseThr, callThr, bluffP := 0.45, 0.30, 0.15
	if spr >= 7 {
		raiseThr, callThr, bluffP = 0.55, 0.35, 0.25
	}

	if bluff := rng.Float64() < bluffProb(bluffP); hs >= raiseThr || bluff {
		mult := 2.0 + rng.Float64() // 2-3x pot
		target := sit.CurrentBet + int(float64(sit.Pot)*mult)
		why := fmt.Sprintf("applying pressure with %.2f at SPR %.1f", hs, spr)
		if bluff && hs < raiseThr {
			why = fmt.Sprintf("bluff-raising at SPR %.1f", spr)
		}
		return sit.raiseOrFallback(target, d, why)
	}

	if sit.AmountToCall == 0 {
		d.Action = game.Check
		d.Reasoning = fmt.Sprintf("nothing worth betting (%.2f), checking", hs)
		return d
	}

	if hs >= callThr {
		d.Action = game.Call
		d.Reasoning = fmt.Sprintf("calling loose with %.2f at SPR %.1f", hs, spr)
		return d
	}

	d.Action = game.Fold
	d.Reasoning = fmt.Sprintf("even loose play folds %.2f here", hs)
	return d
}

// bluffProb caps the configured bluff probability.
func bluffProb(p float64) float64 {
	if p > maxBluffProbability {
		return maxBluffProbability
	}
	return p
}
