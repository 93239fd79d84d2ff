package ai

import (
	"testing"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
)

func preflopSituation(hole string) Situation {
	return Situation{
		Street:         game.Preflop,
		Hole:           deck.MustParseCards(hole),
		Pot:            15,
		CurrentBet:     10,
		AmountToCall:   10,
		Stack:          1000,
		EffectiveStack: 1000,
		Opponents:      2,
		BigBlind:       10,
		CanRaise:       true,
		MinRaiseTo:     20,
		MaxRaiseTo:     1010,
		EquitySamples:  100,
	}
}

func TestForPersonality(t *testing.T) {
	t.Parallel()
	tests := []struct {
		personality game.Personality
		name        string
	}{
		{game.PersonalityConservative, "conservative"},
		{game.PersonalityAggressive, "aggressive"},
		{game.PersonalityMathematical, "mathematical"},
	}
	for _, tt := range tests {
		strat, err := ForPersonality(tt.personality)
		if err != nil {
			t.Fatalf("%s: %v", tt.personality, err)
		}
		if strat.Name() != tt.name {
			t.Errorf("strategy name = %q, want %q", strat.Name(), tt.name)
		}
	}
	if _, err := ForPersonality(game.PersonalityNone); err == nil {
		t.Error("human personality should have no strategy")
	}
	if _, err := ForPersonality(game.Personality("wild")); err == nil {
		t.Error("unknown personality should error")
	}
}

func TestPreflopStrengthOrdering(t *testing.T) {
	t.Parallel()
	aa := PreflopStrength(deck.MustParseCards("Ah Ad")[0], deck.MustParseCards("Ah Ad")[1])
	kk := PreflopStrength(deck.MustParseCards("Kh Kd")[0], deck.MustParseCards("Kh Kd")[1])
	aks := PreflopStrength(deck.MustParseCards("Ah Kh")[0], deck.MustParseCards("Ah Kh")[1])
	ako := PreflopStrength(deck.MustParseCards("Ah Kd")[0], deck.MustParseCards("Ah Kd")[1])
	trash := PreflopStrength(deck.MustParseCards("7h 2c")[0], deck.MustParseCards("7h 2c")[1])

	if aa != 1.0 {
		t.Errorf("aces = %.3f, want 1.0", aa)
	}
	if aa <= kk {
		t.Errorf("AA (%.3f) should beat KK (%.3f)", aa, kk)
	}
	if aks <= ako {
		t.Errorf("AKs (%.3f) should beat AKo (%.3f)", aks, ako)
	}
	if ako <= trash {
		t.Errorf("AKo (%.3f) should beat 72o (%.3f)", ako, trash)
	}
	// Order of the two cards must not matter.
	cards := deck.MustParseCards("Kd Ah")
	if got := PreflopStrength(cards[0], cards[1]); got != ako {
		t.Errorf("argument order changed the score: %.3f vs %.3f", got, ako)
	}
}

func TestDecisionsAreSeedDeterministic(t *testing.T) {
	t.Parallel()
	sit := Situation{
		Street:         game.Flop,
		Hole:           deck.MustParseCards("Ah Kh"),
		Board:          deck.MustParseCards("Qh Jh 2c"),
		Pot:            60,
		CurrentBet:     20,
		AmountToCall:   20,
		Stack:          900,
		EffectiveStack: 900,
		Opponents:      1,
		BigBlind:       10,
		CanRaise:       true,
		MinRaiseTo:     40,
		MaxRaiseTo:     920,
		EquitySamples:  200,
	}
	for _, strat := range []Strategy{Conservative{}, Aggressive{}, Mathematical{}} {
		a := strat.Decide(sit, randutil.New(5))
		b := strat.Decide(sit, randutil.New(5))
		if a != b {
			t.Errorf("%s: same seed gave %+v then %+v", strat.Name(), a, b)
		}
	}
}

func TestConservativeFoldsTrashRaisesAces(t *testing.T) {
	t.Parallel()
	strat := Conservative{}

	d := strat.Decide(preflopSituation("7h 2c"), randutil.New(1))
	if d.Action != game.Fold {
		t.Errorf("72o facing a bet should fold, got %s", d.Action)
	}

	d = strat.Decide(preflopSituation("Ah Ad"), randutil.New(1))
	if d.Action != game.Raise {
		t.Errorf("aces should raise, got %s", d.Action)
	}
	if d.Amount < 20 || d.Amount > 1010 {
		t.Errorf("raise amount %d outside legal envelope", d.Amount)
	}
}

func TestConservativeChecksWeakHandsForFree(t *testing.T) {
	t.Parallel()
	sit := preflopSituation("7h 2c")
	sit.AmountToCall = 0
	d := Conservative{}.Decide(sit, randutil.New(1))
	if d.Action != game.Check {
		t.Errorf("free look with trash should check, got %s", d.Action)
	}
}

func TestAggressiveShovesShortStacks(t *testing.T) {
	t.Parallel()
	sit := preflopSituation("Ah Qh")
	sit.Stack = 30
	sit.EffectiveStack = 30
	sit.MaxRaiseTo = 40
	sit.MinRaiseTo = 20
	d := Aggressive{}.Decide(sit, randutil.New(1))
	if d.Action != game.Raise || d.Amount != 40 {
		t.Errorf("short stack with AQs should shove to 40, got %s %d", d.Action, d.Amount)
	}
	if d.SPR > 3 {
		t.Errorf("SPR = %.2f, expected push-or-fold range", d.SPR)
	}
}

func TestMathematicalFollowsPotOdds(t *testing.T) {
	t.Parallel()
	// Strong equity, cheap price: never fold.
	sit := Situation{
		Street:         game.River,
		Hole:           deck.MustParseCards("Ah Ad"),
		Board:          deck.MustParseCards("Ac As Kd Kc 2h"),
		Pot:            100,
		CurrentBet:     10,
		AmountToCall:   10,
		Stack:          500,
		EffectiveStack: 500,
		Opponents:      1,
		BigBlind:       10,
		CanRaise:       true,
		MinRaiseTo:     20,
		MaxRaiseTo:     510,
		EquitySamples:  200,
	}
	d := Mathematical{}.Decide(sit, randutil.New(3))
	if d.Action == game.Fold {
		t.Errorf("quad aces folded to a 10-into-100 bet: %+v", d)
	}
	if d.HandStrength < 0.9 {
		t.Errorf("hand strength %.3f, expected near 1.0", d.HandStrength)
	}

	// Hopeless equity, expensive price: fold.
	sit.Hole = deck.MustParseCards("7h 6h")
	sit.Board = deck.MustParseCards("Ac As Kd Kc 2d")
	sit.AmountToCall = 400
	sit.CurrentBet = 400
	sit.MinRaiseTo = 800
	sit.MaxRaiseTo = 900
	d = Mathematical{}.Decide(sit, randutil.New(3))
	if d.Action != game.Fold {
		t.Errorf("no-pair hand facing a pot-sized river bet should fold, got %s", d.Action)
	}
}

func TestRaiseFallbackDegradesWhenRaisingClosed(t *testing.T) {
	t.Parallel()
	sit := preflopSituation("Ah Ad")
	sit.CanRaise = false
	d := Conservative{}.Decide(sit, randutil.New(1))
	if d.Action != game.Call {
		t.Errorf("raise intent with raising closed should call, got %s", d.Action)
	}

	sit.AmountToCall = 0
	d = Conservative{}.Decide(sit, randutil.New(1))
	if d.Action != game.Check {
		t.Errorf("raise intent with nothing owed should check, got %s", d.Action)
	}
}

func TestRaiseAmountsStayInsideEnvelope(t *testing.T) {
	t.Parallel()
	// Huge intended sizing must clamp to the all-in maximum.
	sit := preflopSituation("Ah Ad")
	sit.Pot = 5000
	sit.MaxRaiseTo = 300
	sit.MinRaiseTo = 20
	sit.Stack = 290
	sit.EffectiveStack = 290
	for _, strat := range []Strategy{Conservative{}, Aggressive{}, Mathematical{}} {
		d := strat.Decide(sit, randutil.New(2))
		if d.Action == game.Raise && (d.Amount < sit.MinRaiseTo || d.Amount > sit.MaxRaiseTo) {
			t.Errorf("%s: raise to %d outside [%d, %d]", strat.Name(), d.Amount, sit.MinRaiseTo, sit.MaxRaiseTo)
		}
	}
}
