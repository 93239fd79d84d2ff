package game

import (
	"reflect"
	"testing"
)

func seatWith(invested int, active bool) *Player {
	return &Player{TotalInvested: invested, Active: active}
}

func TestBuildSidePotsThreeWayAllIn(t *testing.T) {
	t.Parallel()
	// Stacks 100 / 500 / 1000, everyone all-in.
	players := []*Player{
		seatWith(100, true),
		seatWith(500, true),
		seatWith(1000, true),
	}
	// Seat 2's overage has no caller; it forms a layer only seat 2 can win.
	players[2].TotalInvested = 1000

	pots := BuildSidePots(players)
	if len(pots) != 3 {
		t.Fatalf("expected 3 pot layers, got %d", len(pots))
	}

	if pots[0].Amount != 300 || !reflect.DeepEqual(pots[0].Eligible, []int{0, 1, 2}) {
		t.Errorf("main pot = %d %v, want 300 [0 1 2]", pots[0].Amount, pots[0].Eligible)
	}
	if pots[1].Amount != 800 || !reflect.DeepEqual(pots[1].Eligible, []int{1, 2}) {
		t.Errorf("first side pot = %d %v, want 800 [1 2]", pots[1].Amount, pots[1].Eligible)
	}
	if pots[2].Amount != 500 || !reflect.DeepEqual(pots[2].Eligible, []int{2}) {
		t.Errorf("second side pot = %d %v, want 500 [2]", pots[2].Amount, pots[2].Eligible)
	}
	if potTotal(pots) != 1600 {
		t.Errorf("pot layers sum to %d, want 1600", potTotal(pots))
	}
}

func TestBuildSidePotsFoldedChipsStayInButCannotWin(t *testing.T) {
	t.Parallel()
	players := []*Player{
		seatWith(50, false), // folded after committing 50
		seatWith(200, true),
		seatWith(200, true),
	}
	pots := BuildSidePots(players)
	if potTotal(pots) != 450 {
		t.Fatalf("folded chips missing: total %d, want 450", potTotal(pots))
	}
	for _, pot := range pots {
		for _, seat := range pot.Eligible {
			if seat == 0 {
				t.Error("folded seat is eligible for a pot layer")
			}
		}
	}
}

func TestBuildSidePotsEqualCommitmentsSinglePot(t *testing.T) {
	t.Parallel()
	players := []*Player{seatWith(100, true), seatWith(100, true), seatWith(100, true)}
	pots := BuildSidePots(players)
	if len(pots) != 1 {
		t.Fatalf("expected a single pot, got %d layers", len(pots))
	}
	if pots[0].Amount != 300 || len(pots[0].Eligible) != 3 {
		t.Errorf("pot = %d with %d eligible, want 300 with 3", pots[0].Amount, len(pots[0].Eligible))
	}
}

func TestSplitPotEvenSplit(t *testing.T) {
	t.Parallel()
	payouts := splitPot(100, []int{0, 2}, 1, 4)
	if payouts[0] != 50 || payouts[2] != 50 {
		t.Errorf("even split wrong: %v", payouts)
	}
}

func TestSplitPotOddChipsGoLeftOfDealer(t *testing.T) {
	t.Parallel()
	// Dealer is seat 2: seat order left of the dealer is 3, 0, 1.
	payouts := splitPot(101, []int{0, 1, 3}, 2, 4)
	if payouts[3] != 34 {
		t.Errorf("seat 3 (first left of dealer) should get the odd chip: %v", payouts)
	}
	if payouts[0] != 34 || payouts[1] != 33 {
		t.Errorf("remainder order wrong: %v", payouts)
	}

	// Two odd chips: first two seats in order each get one.
	payouts = splitPot(11, []int{0, 1, 3}, 2, 4)
	if payouts[3] != 4 || payouts[0] != 4 || payouts[1] != 3 {
		t.Errorf("two-chip remainder wrong: %v", payouts)
	}
}
