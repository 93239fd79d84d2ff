package ai

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/cardroom/holdem/internal/game"
)

// Conservative plays tight-passive: fold by default, call only strong
// hands, raise only premium ones, never bluff. Thresholds tighten as the
// stack-to-pot ratio grows, since deep stacks punish thin value.
type Conservative struct{}

func (Conservative) Name() string { return "conservative" }

func (Conservative) Decide(sit Situation, rng *rand.Rand) Decision {
	hs := sit.handStrength(rng)
	odds := sit.potOdds()
	spr := sit.spr()

	// spr <= 3: committed, call 0.55 / raise 0.75.
	// spr >= 7: deep, call 0.70 / raise 0.85. Linear in between.
	t := (spr - 3.0) / 4.0
	callThr := lerp(0.55, 0.70, t)
	raiseThr := lerp(0.75, 0.85, t)

	d := Decision{
		HandStrength: hs,
		PotOdds:      odds,
		SPR:          spr,
		Confidence:   clamp01(0.5 + (hs-callThr)*2),
	}

	if hs >= raiseThr {
		sizing := min(sit.Pot, sit.Stack)
		if sizing < sit.BigBlind {
			sizing = sit.BigBlind
		}
		return sit.raiseOrFallback(sit.CurrentBet+sizing, d,
			fmt.Sprintf("premium hand (%.2f) at SPR %.1f, value raise", hs, spr))
	}

	if sit.AmountToCall == 0 {
		d.Action = game.Check
		d.Reasoning = fmt.Sprintf("hand %.2f below raising range, check for free", hs)
		return d
	}

	if hs >= callThr {
		d.Action = game.Call
		d.Reasoning = fmt.Sprintf("strong enough to call: %.2f vs threshold %.2f at SPR %.1f", hs, callThr, spr)
		return d
	}

	d.Action = game.Fold
	d.Reasoning = fmt.Sprintf("hand %.2f under call threshold %.2f, folding", hs, callThr)
	return d
}
