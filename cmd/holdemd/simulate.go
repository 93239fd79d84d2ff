package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
	"github.com/cardroom/holdem/internal/session"
)

// SimulateCmd plays AI-only hands under a fixed seed. The same seed and
// flags reproduce the same hands, which makes it the quickest way to shake
// out strategy or engine changes.
type SimulateCmd struct {
	Hands         int    `short:"n" default:"100" help:"Number of hands to play"`
	Seats         int    `default:"3" help:"Number of seats (2-4)"`
	Seed          int64  `help:"RNG seed (0 picks a random seed)"`
	SmallBlind    int    `default:"5" help:"Small blind"`
	BigBlind      int    `default:"10" help:"Big blind"`
	Stack         int    `default:"1000" help:"Starting stack per seat"`
	Samples       int    `default:"200" help:"Monte-Carlo samples per AI decision"`
	Personalities string `default:"conservative,aggressive,mathematical" help:"Comma-separated personalities, cycled across seats"`
	LogLevel      string `default:"warn" help:"Log level during simulation"`
}

func (s *SimulateCmd) Run() error {
	if s.Seats < 2 || s.Seats > 4 {
		return fmt.Errorf("seats must be 2-4, got %d", s.Seats)
	}
	if s.Hands < 1 {
		return fmt.Errorf("hands must be positive, got %d", s.Hands)
	}

	level, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	personalities := strings.Split(s.Personalities, ",")
	seats := make([]session.SeatSpec, s.Seats)
	for i := range seats {
		p := strings.TrimSpace(personalities[i%len(personalities)])
		seats[i] = session.SeatSpec{
			ID:          fmt.Sprintf("seat-%d", i),
			Name:        fmt.Sprintf("%s-%d", p, i),
			Personality: game.Personality(p),
			Stack:       s.Stack,
		}
	}

	seed := s.Seed
	if seed == 0 {
		seed = randutil.CryptoSeed()
	}

	sess, err := session.New("simulation", seats,
		session.WithSeed(seed),
		session.WithBlinds(s.SmallBlind, s.BigBlind),
		session.WithEquitySamples(s.Samples),
		session.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Printf("simulating %d hands, %d seats, seed %d\n", s.Hands, s.Seats, seed)
	startTotal := s.Stack * s.Seats

	if err := sess.StartHand(); err != nil {
		return err
	}
	played := 1
	for played < s.Hands {
		if err := sess.NextHand(); err != nil {
			if errors.Is(err, game.ErrGameOver) {
				fmt.Printf("game over after %d hands\n", played)
				break
			}
			return err
		}
		played++
	}

	total := 0
	for _, seat := range sess.Snapshot().Seats {
		fmt.Printf("  %-18s %6d chips\n", seat.Name, seat.Stack)
		total += seat.Stack
	}
	if total != startTotal {
		return fmt.Errorf("chip conservation violated: %d in play, started with %d", total, startTotal)
	}

	aborted := 0
	for _, summary := range sess.Summaries() {
		if summary.Aborted {
			aborted++
		}
	}
	fmt.Printf("played %d hands, %d aborted, %d chips conserved\n", played, aborted, total)
	if aborted > 0 {
		return fmt.Errorf("%d hands aborted on consistency failures", aborted)
	}
	return nil
}
