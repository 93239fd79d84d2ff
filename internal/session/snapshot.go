package session

import (
	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
)

// SeatSnapshot is a copy of one seat's state.
type SeatSnapshot struct {
	Seat          int
	ID            string
	Name          string
	Human         bool
	Personality   game.Personality
	Stack         int
	CurrentBet    int
	TotalInvested int
	Active        bool
	AllIn         bool
	HoleCards     []deck.Card
}

// Snapshot is a point-in-time copy of the full session state. The read side
// builds external views from it without holding the session mutex.
type Snapshot struct {
	ID         string
	HandNumber int
	Dealer     int
	SmallBlind int
	BigBlind   int

	Street     string
	Board      []deck.Card
	Pot        int
	CurrentBet int
	Current    int // acting seat, -1 when none
	Complete   bool
	Aborted    bool
	GameOver   bool
	WinnerID   string

	Seats   []SeatSnapshot
	Winners []game.Winner
	Events  []game.Event
	Valid   game.ValidActions // envelope for the acting seat
	AIMoves []AIMove          // decisions taken so far this hand
}

// Snapshot copies the current state under the session mutex.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:         s.id,
		HandNumber: s.handNumber,
		Dealer:     s.dealer,
		SmallBlind: s.smallBlind,
		BigBlind:   s.bigBlind,
		Current:    -1,
		GameOver:   s.gameOver,
		WinnerID:   s.winnerID,
		Events:     s.events.HandEvents(),
		AIMoves:    append([]AIMove(nil), s.lastMoves...),
	}

	for i, p := range s.players {
		snap.Seats = append(snap.Seats, SeatSnapshot{
			Seat:          i,
			ID:            p.ID,
			Name:          p.Name,
			Human:         p.Human,
			Personality:   p.Personality,
			Stack:         p.Stack,
			CurrentBet:    p.CurrentBet,
			TotalInvested: p.TotalInvested,
			Active:        p.Active,
			AllIn:         p.AllIn,
			HoleCards:     append([]deck.Card(nil), p.HoleCards...),
		})
	}

	if h := s.hand; h != nil {
		snap.Street = h.Street.String()
		snap.Board = append([]deck.Card(nil), h.Board...)
		snap.Pot = h.Pot()
		snap.CurrentBet = h.CurrentBet
		snap.Current = h.Current
		snap.Complete = h.Complete
		snap.Aborted = h.Aborted
		snap.Winners = append([]game.Winner(nil), h.Winners...)
		if h.Current != -1 {
			snap.Valid = h.ValidActions(h.Current)
		}
	}
	return snap
}
