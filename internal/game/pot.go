package game

import "sort"

// SidePot is one layer of the pot at showdown. Eligible lists the seats
// (not folded) that can win it; folded contributions are included in Amount
// but never in Eligible.
type SidePot struct {
	Amount   int
	Eligible []int
}

// BuildSidePots layers the pot from per-seat hand commitments. Each distinct
// positive commitment level, folded seats included, forms one layer: the
// layer holds (level - previous) chips from every seat that committed at
// least that much.
func BuildSidePots(players []*Player) []SidePot {
	levels := make([]int, 0, len(players))
	seen := make(map[int]bool, len(players))
	for _, p := range players {
		if p.TotalInvested > 0 && !seen[p.TotalInvested] {
			seen[p.TotalInvested] = true
			levels = append(levels, p.TotalInvested)
		}
	}
	sort.Ints(levels)

	var pots []SidePot
	prev := 0
	for _, level := range levels {
		pot := SidePot{}
		contributors := 0
		for seat, p := range players {
			if p.TotalInvested >= level {
				contributors++
				if p.InHand() {
					pot.Eligible = append(pot.Eligible, seat)
				}
			}
		}
		pot.Amount = (level - prev) * contributors
		pots = append(pots, pot)
		prev = level
	}
	return pots
}

// potTotal sums the layered pots; it must equal the sum of hand commitments.
func potTotal(pots []SidePot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

// splitPot divides amount equally among winners, handing any remainder out
// one chip at a time in seat order starting left of the dealer. Returns the
// payout per winning seat.
func splitPot(amount int, winners []int, dealer, numSeats int) map[int]int {
	payouts := make(map[int]int, len(winners))
	if len(winners) == 0 || amount <= 0 {
		return payouts
	}

	ordered := append([]int(nil), winners...)
	sort.Slice(ordered, func(i, j int) bool {
		return seatDistance(dealer, ordered[i], numSeats) < seatDistance(dealer, ordered[j], numSeats)
	})

	share := amount / len(ordered)
	remainder := amount % len(ordered)
	for i, seat := range ordered {
		payouts[seat] = share
		if i < remainder {
			payouts[seat]++
		}
	}
	return payouts
}

// seatDistance is the clockwise distance from the seat left of the dealer.
func seatDistance(dealer, seat, numSeats int) int {
	return ((seat-dealer-1)%numSeats + numSeats) % numSeats
}
