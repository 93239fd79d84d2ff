package game

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/evaluator"
)

// HandState drives one hand of no-limit hold'em from blinds to resolution.
// It owns every mutable datum for the hand; callers interact only through
// ProcessAction and the read accessors.
type HandState struct {
	Players    []*Player
	Dealer     int
	SmallBlind int
	BigBlind   int
	HandNumber int

	Street     Street
	Board      []deck.Card
	Deck       *deck.Deck
	CurrentBet int
	MinRaise   int
	LastRaiser int // -1 when no raise has occurred this street
	Current    int // -1 when no seat may act

	Events   *EventLog
	Complete bool
	Aborted  bool
	Winners  []Winner

	sbSeat        int
	bbSeat        int
	lastVoluntary int // last seat to take a voluntary action this hand
	startTotal    int // chips in play at hand start, for the conservation audit
}

// Winner records one seat's share of the resolved pot.
type Winner struct {
	Seat     int    `json:"seat"`
	PlayerID string `json:"player_id"`
	Amount   int    `json:"amount"`
	HandName string `json:"hand_name,omitempty"`
}

// NewHand deals a fresh hand: per-hand state reset, a newly shuffled deck,
// two hole cards per funded seat, blinds posted, first-to-act selected.
// The dealer seat must be funded; the orchestrator rotates it past busted
// seats before calling.
func NewHand(rng *rand.Rand, players []*Player, dealer, smallBlind, bigBlind, handNumber int, events *EventLog) (*HandState, error) {
	if len(players) < 2 || len(players) > 4 {
		return nil, fmt.Errorf("%w: need 2-4 seats, have %d", ErrInvalidAction, len(players))
	}

	h := &HandState{
		Players:       players,
		Dealer:        dealer,
		SmallBlind:    smallBlind,
		BigBlind:      bigBlind,
		HandNumber:    handNumber,
		Street:        Preflop,
		Deck:          deck.New(rng),
		LastRaiser:    -1,
		Current:       -1,
		Events:        events,
		lastVoluntary: -1,
	}

	for _, p := range players {
		p.BeginHand()
	}
	if h.inHandCount() < 2 {
		return nil, fmt.Errorf("%w: fewer than two funded seats", ErrGameOver)
	}
	if !players[dealer].InHand() {
		return nil, fmt.Errorf("%w: dealer seat %d has no chips", ErrInternalConsistency, dealer)
	}
	for _, p := range players {
		h.startTotal += p.Stack
	}

	events.BeginHand()

	// Hole cards, two per funded seat in seat order left of the dealer.
	dealt := 0
	for i := 1; i <= len(players); i++ {
		seat := (dealer + i) % len(players)
		p := players[seat]
		if !p.InHand() {
			continue
		}
		cards := h.Deck.DealN(2)
		if cards == nil {
			return nil, fmt.Errorf("%w: deck overdraw dealing hole cards", ErrInternalConsistency)
		}
		p.HoleCards = cards
		dealt++
	}
	h.appendEvent(Event{
		Kind:        EventDeal,
		Description: fmt.Sprintf("hand #%d: dealt 2 hole cards to %d players", handNumber, dealt),
	})

	// Blind positions. Heads-up the dealer posts the small blind.
	if h.inHandCount() == 2 {
		h.sbSeat = dealer
		h.bbSeat = h.nextInHand(dealer + 1)
	} else {
		h.sbSeat = h.nextInHand(dealer + 1)
		h.bbSeat = h.nextInHand(h.sbSeat + 1)
	}

	h.postBlind(h.sbSeat, smallBlind, "small blind")
	h.postBlind(h.bbSeat, bigBlind, "big blind")

	h.CurrentBet = bigBlind
	h.MinRaise = bigBlind
	h.LastRaiser = h.bbSeat // grants the BB its preflop option

	// First to act: the dealer heads-up, otherwise left of the big blind.
	var first int
	if h.inHandCount() == 2 {
		first = dealer
	} else {
		first = h.bbSeat + 1
	}
	h.Current = h.nextCanAct(first)
	if h.Current == -1 {
		// Blinds put everyone all-in; run the board out.
		if err := h.fastForward(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *HandState) postBlind(seat, amount int, name string) {
	paid := h.Players[seat].Commit(amount)
	h.appendEvent(Event{
		Kind:        EventBlindPost,
		PlayerID:    h.Players[seat].ID,
		Amount:      paid,
		Description: fmt.Sprintf("%s posts %s %d", h.Players[seat].Name, name, paid),
	})
}

// Pot returns the live pot: the sum of all hand commitments. Once the hand
// resolves the pot has been paid out and reads zero.
func (h *HandState) Pot() int {
	if h.Complete {
		return 0
	}
	total := 0
	for _, p := range h.Players {
		total += p.TotalInvested
	}
	return total
}

// ValidActions returns the legal action envelope for the given seat, or a
// zero value when the seat is not due to act.
func (h *HandState) ValidActions(seat int) ValidActions {
	if h.Current != seat || h.Complete {
		return ValidActions{}
	}
	p := h.Players[seat]
	owed := h.CurrentBet - p.CurrentBet

	va := ValidActions{CanFold: true}
	if owed == 0 {
		va.CanCheck = true
	} else {
		va.CanCall = true
		va.CallAmount = min(owed, p.Stack)
	}

	maxTo := p.CurrentBet + p.Stack
	minTo := h.CurrentBet + h.MinRaise
	// A seat that already acted at the prior bet may not raise again unless
	// a full raise reopened the action.
	if !p.HasActed && maxTo > h.CurrentBet {
		va.CanRaise = true
		va.MinRaiseTo = min(minTo, maxTo)
		va.MaxRaiseTo = maxTo
	}
	return va
}

// ProcessAction validates and applies one action for the given seat.
// User errors leave the hand untouched. amount is the raise-to total for
// Raise and ignored otherwise.
func (h *HandState) ProcessAction(seat int, action Action, amount int) error {
	if h.Complete || h.Aborted {
		return fmt.Errorf("%w: hand is over", ErrInvalidAction)
	}
	if seat != h.Current {
		return ErrNotYourTurn
	}
	p := h.Players[seat]

	switch action {
	case Fold:
		p.Fold()
		h.recordAction(p, "fold", 0, fmt.Sprintf("%s folds", p.Name))

	case Check:
		if h.CurrentBet != p.CurrentBet {
			return fmt.Errorf("%w: cannot check, %d to call", ErrInvalidAction, h.CurrentBet-p.CurrentBet)
		}
		p.MarkActed()
		h.recordAction(p, "check", 0, fmt.Sprintf("%s checks", p.Name))

	case Call:
		owed := h.CurrentBet - p.CurrentBet
		if owed <= 0 {
			// Calling nothing is a check.
			p.MarkActed()
			h.recordAction(p, "check", 0, fmt.Sprintf("%s checks", p.Name))
			break
		}
		paid := p.Commit(owed)
		p.MarkActed()
		desc := fmt.Sprintf("%s calls %d", p.Name, paid)
		if p.AllIn && paid < owed {
			desc = fmt.Sprintf("%s calls %d and is all-in", p.Name, paid)
		}
		h.recordAction(p, "call", paid, desc)

	case Raise:
		if err := h.applyRaise(p, amount); err != nil {
			return err
		}

	case AllIn:
		target := p.CurrentBet + p.Stack
		if target > h.CurrentBet {
			if err := h.applyRaise(p, target); err != nil {
				return err
			}
		} else {
			paid := p.Commit(p.Stack)
			p.MarkActed()
			h.recordAction(p, "allin", paid, fmt.Sprintf("%s is all-in for %d", p.Name, paid))
		}

	default:
		return fmt.Errorf("%w: unknown action", ErrInvalidAction)
	}

	h.lastVoluntary = seat
	return h.advance(seat)
}

// applyRaise handles Raise and raising all-ins. target is the seat's total
// street commitment after the raise.
func (h *HandState) applyRaise(p *Player, target int) error {
	maxTo := p.CurrentBet + p.Stack
	if target <= 0 {
		return fmt.Errorf("%w: raise amount must be positive", ErrBadAmount)
	}
	if target > maxTo {
		return fmt.Errorf("%w: raise to %d exceeds stack", ErrInsufficientFunds, target)
	}
	if target <= h.CurrentBet {
		return fmt.Errorf("%w: raise to %d does not exceed current bet %d", ErrBadAmount, target, h.CurrentBet)
	}
	if p.HasActed {
		return fmt.Errorf("%w: raising is not reopened for this seat", ErrInvalidAction)
	}
	isAllIn := target == maxTo
	fullRaise := target >= h.CurrentBet+h.MinRaise
	if !fullRaise && !isAllIn {
		return fmt.Errorf("%w: minimum raise is to %d", ErrBadAmount, h.CurrentBet+h.MinRaise)
	}

	p.Commit(target - p.CurrentBet)
	if fullRaise {
		// A full raise resets the increment and reopens action.
		h.MinRaise = target - h.CurrentBet
		h.LastRaiser = h.seatOf(p)
		for _, other := range h.Players {
			if other != p && other.CanAct() {
				other.HasActed = false
			}
		}
	}
	// A short all-in moves the price without reopening action or
	// changing the live increment.
	h.CurrentBet = target
	p.MarkActed()

	verb := "raises to"
	if isAllIn {
		verb = "raises all-in to"
	}
	h.recordAction(p, "raise", target, fmt.Sprintf("%s %s %d", p.Name, verb, target))
	return nil
}

// advance moves the turn after an applied action, transitioning streets or
// resolving the hand as needed.
func (h *HandState) advance(acted int) error {
	if h.inHandCount() == 1 {
		return h.resolveDefaultWin()
	}
	if h.roundComplete() {
		if h.Street == River {
			return h.resolveShowdown()
		}
		if err := h.nextStreet(); err != nil {
			return err
		}
		return h.audit()
	}
	h.Current = h.nextCanAct(acted + 1)
	if h.Current == -1 {
		// Everyone left standing is all-in; run the board out.
		return h.fastForward()
	}
	return h.audit()
}

// roundComplete reports whether the betting round is closed: every seat that
// can still act has acted at the current price. Blinds are not marked acted
// when posted, which is what grants the big blind its preflop option.
func (h *HandState) roundComplete() bool {
	for _, p := range h.Players {
		if p.CanAct() && (!p.HasActed || p.CurrentBet != h.CurrentBet) {
			return false
		}
	}
	return true
}

// nextStreet transitions to the following street, dealing its community
// cards and resetting per-street betting state.
func (h *HandState) nextStreet() error {
	h.Street++
	if err := h.dealBoard(); err != nil {
		return err
	}
	for _, p := range h.Players {
		if p.InHand() {
			p.BeginStreet()
		}
	}
	h.CurrentBet = 0
	h.MinRaise = h.BigBlind
	h.LastRaiser = -1
	h.appendEvent(Event{
		Kind:        EventStreet,
		Description: fmt.Sprintf("%s: [%s]", h.Street, strings.Join(deck.Strings(h.Board), " ")),
	})
	h.Current = h.nextCanAct(h.Dealer + 1)
	if h.Current == -1 {
		return h.fastForward()
	}
	return nil
}

// dealBoard brings the board up to the card count the street requires.
func (h *HandState) dealBoard() error {
	want := h.Street.boardCards()
	for len(h.Board) < want {
		card, ok := h.Deck.DealOne()
		if !ok {
			return fmt.Errorf("%w: deck overdraw dealing board", ErrInternalConsistency)
		}
		h.Board = append(h.Board, card)
	}
	return nil
}

// fastForward deals all remaining community cards and resolves showdown.
// Used when no seat can act: everyone left in the hand is all-in.
func (h *HandState) fastForward() error {
	h.Current = -1
	for h.Street < River {
		h.Street++
		if err := h.dealBoard(); err != nil {
			return err
		}
		h.appendEvent(Event{
			Kind:        EventStreet,
			Description: fmt.Sprintf("%s: [%s]", h.Street, strings.Join(deck.Strings(h.Board), " ")),
		})
	}
	return h.resolveShowdown()
}

// resolveDefaultWin awards the pot to the last seat standing after all
// others folded.
func (h *HandState) resolveDefaultWin() error {
	winner := -1
	for seat, p := range h.Players {
		if p.InHand() {
			winner = seat
			break
		}
	}
	pot := h.Pot()
	if winner == -1 {
		// All seats folded out; award to the last voluntary actor.
		winner = h.lastVoluntary
		if winner == -1 {
			return h.abort(fmt.Errorf("%w: no winner for default award", ErrInternalConsistency))
		}
	}
	p := h.Players[winner]
	p.Stack += pot
	h.Winners = []Winner{{Seat: winner, PlayerID: p.ID, Amount: pot}}
	h.Complete = true
	h.Current = -1
	h.appendEvent(Event{
		Kind:        EventPotAward,
		PlayerID:    p.ID,
		Amount:      pot,
		Description: fmt.Sprintf("%s wins %d uncontested", p.Name, pot),
	})
	return h.audit()
}

// resolveShowdown builds side pots from hand commitments, compares the
// remaining seats' best five-card hands, and pays each pot layer out.
func (h *HandState) resolveShowdown() error {
	h.Street = Showdown
	h.Current = -1

	invested := 0
	for _, p := range h.Players {
		invested += p.TotalInvested
	}
	pots := BuildSidePots(h.Players)
	if potTotal(pots) != invested {
		return h.abort(fmt.Errorf("%w: side pots sum %d, invested %d", ErrInternalConsistency, potTotal(pots), invested))
	}

	// Rank every seat still in the hand.
	ranks := make(map[int]evaluator.HandRank)
	for seat, p := range h.Players {
		if !p.InHand() {
			continue
		}
		ranks[seat] = evaluator.Rank(append(append(make([]deck.Card, 0, 7), p.HoleCards...), h.Board...))
		_, name := evaluator.Strength(ranks[seat])
		h.appendEvent(Event{
			Kind:        EventShowdown,
			PlayerID:    p.ID,
			Description: fmt.Sprintf("%s shows [%s] (%s)", p.Name, strings.Join(deck.Strings(p.HoleCards), " "), name),
		})
	}

	totals := make(map[int]int)
	for _, pot := range pots {
		best := make([]int, 0, len(pot.Eligible))
		var bestRank evaluator.HandRank
		for _, seat := range pot.Eligible {
			r := ranks[seat]
			if len(best) == 0 || r > bestRank {
				best = best[:0]
				best = append(best, seat)
				bestRank = r
			} else if r == bestRank {
				best = append(best, seat)
			}
		}
		if len(best) == 0 {
			// Every contributor at this layer folded; default to the last
			// voluntary actor per the all-fold rule.
			if h.lastVoluntary == -1 {
				return h.abort(fmt.Errorf("%w: pot layer with no eligible seats", ErrInternalConsistency))
			}
			best = append(best, h.lastVoluntary)
		}
		for seat, amount := range splitPot(pot.Amount, best, h.Dealer, len(h.Players)) {
			totals[seat] += amount
		}
	}

	h.Complete = true
	h.Winners = h.Winners[:0]
	for seat, p := range h.Players {
		amount, won := totals[seat]
		if !won || amount == 0 {
			continue
		}
		p.Stack += amount
		_, name := evaluator.Strength(ranks[seat])
		h.Winners = append(h.Winners, Winner{Seat: seat, PlayerID: p.ID, Amount: amount, HandName: name})
		h.appendEvent(Event{
			Kind:        EventPotAward,
			PlayerID:    p.ID,
			Amount:      amount,
			Description: fmt.Sprintf("%s wins %d with %s", p.Name, amount, name),
		})
	}
	return h.audit()
}

// audit verifies chip conservation after every externally observable
// mutation. A breach aborts the hand.
func (h *HandState) audit() error {
	total := h.Pot()
	for _, p := range h.Players {
		total += p.Stack
		if p.CurrentBet > p.TotalInvested || p.TotalInvested < 0 {
			return h.abort(fmt.Errorf("%w: seat %s bet accounting", ErrInternalConsistency, p.ID))
		}
	}
	if total != h.startTotal {
		return h.abort(fmt.Errorf("%w: %d chips in play, expected %d", ErrInternalConsistency, total, h.startTotal))
	}
	if h.Current != -1 && !h.Players[h.Current].CanAct() {
		return h.abort(fmt.Errorf("%w: acting seat %d cannot act", ErrInternalConsistency, h.Current))
	}
	return nil
}

func (h *HandState) abort(err error) error {
	h.Aborted = true
	h.Current = -1
	return err
}

func (h *HandState) recordAction(p *Player, action string, amount int, desc string) {
	h.appendEvent(Event{
		Kind:        EventAction,
		PlayerID:    p.ID,
		Action:      action,
		Amount:      amount,
		Description: desc,
	})
}

func (h *HandState) appendEvent(e Event) {
	e.Pot = h.Pot()
	e.Street = h.Street.String()
	h.Events.Append(e)
}

// nextInHand finds the next not-folded seat at or after from, wrapping.
func (h *HandState) nextInHand(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := ((from+i)%n + n) % n
		if h.Players[seat].InHand() {
			return seat
		}
	}
	return -1
}

// nextCanAct finds the next seat at or after from that may still act.
func (h *HandState) nextCanAct(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := ((from+i)%n + n) % n
		if h.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

func (h *HandState) inHandCount() int {
	count := 0
	for _, p := range h.Players {
		if p.InHand() {
			count++
		}
	}
	return count
}

func (h *HandState) seatOf(p *Player) int {
	for seat, other := range h.Players {
		if other == p {
			return seat
		}
	}
	return -1
}

// BBSeat exposes the big blind position for the current hand.
func (h *HandState) BBSeat() int {
	return h.bbSeat
}

// SBSeat exposes the small blind position for the current hand.
func (h *HandState) SBSeat() int {
	return h.sbSeat
}
