package ai

import (
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/cardroom/holdem/internal/game"
)

// Mathematical plays pure pot odds: call when equity covers the price,
// raise with a clear equity edge, never bluff.
type Mathematical struct{}

func (Mathematical) Name() string { return "mathematical" }

func (Mathematical) Decide(sit Situation, rng *rand.Rand) Decision {
	hs := sit.handStrength(rng)
	odds := sit.potOdds()
	spr := sit.spr()

	d := Decision{
		HandStrength: hs,
		PotOdds:      odds,
		SPR:          spr,
		Confidence:   clamp01(0.5 + (hs-odds)*1.5),
	}

	if sit.AmountToCall == 0 {
		switch {
		case hs >= 0.65:
			return sit.raiseOrFallback(sit.CurrentBet+sit.Pot, d,
				fmt.Sprintf("equity %.2f, betting full pot", hs))
		case hs >= 0.40:
			return sit.raiseOrFallback(sit.CurrentBet+sit.Pot/2, d,
				fmt.Sprintf("equity %.2f, betting half pot", hs))
		default:
			d.Action = game.Check
			d.Reasoning = fmt.Sprintf("equity %.2f, nothing to bet", hs)
			return d
		}
	}

	if hs >= odds+0.20 {
		target := sit.CurrentBet + int(math.Round(float64(sit.Pot)*(hs-0.25)))
		return sit.raiseOrFallback(target, d,
			fmt.Sprintf("equity %.2f well over pot odds %.2f, raising for value", hs, odds))
	}

	if hs >= odds {
		d.Action = game.Call
		d.Reasoning = fmt.Sprintf("equity %.2f covers pot odds %.2f, call", hs, odds)
		return d
	}

	d.Action = game.Fold
	d.Reasoning = fmt.Sprintf("equity %.2f under pot odds %.2f, fold", hs, odds)
	return d
}
