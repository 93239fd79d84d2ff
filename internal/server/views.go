package server

import (
	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/session"
)

// SeatView is the external projection of one seat.
type SeatView struct {
	Seat          int      `json:"seat"`
	PlayerID      string   `json:"player_id"`
	Name          string   `json:"name"`
	Human         bool     `json:"human"`
	Personality   string   `json:"personality,omitempty"`
	Stack         int      `json:"stack"`
	CurrentBet    int      `json:"current_bet"`
	TotalInvested int      `json:"total_invested"`
	Folded        bool     `json:"folded"`
	AllIn         bool     `json:"all_in"`
	HoleCards     []string `json:"hole_cards,omitempty"`
}

// GameStateView is the external projection of a game returned by the HTTP
// API and pushed over the event stream. Hole cards are filtered per viewer.
type GameStateView struct {
	GameID          string             `json:"game_id"`
	HandNumber      int                `json:"hand_number"`
	Dealer          int                `json:"dealer"`
	SmallBlind      int                `json:"small_blind"`
	BigBlind        int                `json:"big_blind"`
	Street          string             `json:"street"`
	Board           []string           `json:"board"`
	Pot             int                `json:"pot"`
	CurrentBet      int                `json:"current_bet"`
	CurrentSeat     int                `json:"current_seat"`
	CurrentPlayerID string             `json:"current_player_id,omitempty"`
	HandComplete    bool               `json:"hand_complete"`
	GameOver        bool               `json:"game_over"`
	WinnerID        string             `json:"winner_id,omitempty"`
	Seats           []SeatView         `json:"seats"`
	Winners         []game.Winner      `json:"winners,omitempty"`
	ValidActions    *game.ValidActions `json:"valid_actions,omitempty"`
	Events          []game.Event       `json:"events"`
	AIThinking      []session.AIMove   `json:"ai_thinking,omitempty"`
}

// BuildGameView projects a snapshot for one viewer. viewerID selects whose
// hole cards are visible before showdown; the empty string is a spectator.
// showThinking additionally exposes the AI decision records for the hand.
func BuildGameView(snap session.Snapshot, viewerID string, showThinking bool) GameStateView {
	view := GameStateView{
		GameID:       snap.ID,
		HandNumber:   snap.HandNumber,
		Dealer:       snap.Dealer,
		SmallBlind:   snap.SmallBlind,
		BigBlind:     snap.BigBlind,
		Street:       snap.Street,
		Board:        deck.Strings(snap.Board),
		Pot:          snap.Pot,
		CurrentBet:   snap.CurrentBet,
		CurrentSeat:  snap.Current,
		HandComplete: snap.Complete,
		GameOver:     snap.GameOver,
		WinnerID:     snap.WinnerID,
		Winners:      snap.Winners,
		Events:       snap.Events,
	}

	// Showdown reached when the hand resolved with more than one seat left in.
	inHand := 0
	for _, seat := range snap.Seats {
		if seat.Active {
			inHand++
		}
	}
	showdown := snap.Complete && inHand > 1

	for _, seat := range snap.Seats {
		sv := SeatView{
			Seat:          seat.Seat,
			PlayerID:      seat.ID,
			Name:          seat.Name,
			Human:         seat.Human,
			Personality:   string(seat.Personality),
			Stack:         seat.Stack,
			CurrentBet:    seat.CurrentBet,
			TotalInvested: seat.TotalInvested,
			Folded:        !seat.Active && len(seat.HoleCards) > 0,
			AllIn:         seat.AllIn,
		}
		// Folded cards stay hidden even at showdown.
		if seat.ID == viewerID || (showdown && seat.Active) {
			sv.HoleCards = deck.Strings(seat.HoleCards)
		}
		view.Seats = append(view.Seats, sv)
	}

	if snap.Current != -1 {
		view.CurrentPlayerID = snap.Seats[snap.Current].ID
		va := snap.Valid
		view.ValidActions = &va
	}
	if showThinking {
		view.AIThinking = snap.AIMoves
	}
	return view
}
