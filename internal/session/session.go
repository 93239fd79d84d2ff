// Package session orchestrates a table across hands: it owns the seats, the
// event log, the per-session RNG and the AI strategies, drives AI turns, and
// rotates the button between hands. All state is guarded by a single mutex;
// a session is safe for concurrent use from transport handlers.
package session

import (
	"fmt"
	rand "math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroom/holdem/internal/ai"
	"github.com/cardroom/holdem/internal/deck"
	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/randutil"
)

// SeatSpec configures one seat at session creation.
type SeatSpec struct {
	ID          string
	Name        string
	Human       bool
	Personality game.Personality
	Stack       int
}

// AIMove records one strategy decision, kept for the current hand so views
// can expose AI reasoning when asked.
type AIMove struct {
	Seat     int         `json:"seat"`
	PlayerID string      `json:"player_id"`
	Strategy string      `json:"strategy"`
	Decision ai.Decision `json:"decision"`
}

// HandSummary is the exportable record of one finished hand.
type HandSummary struct {
	HandNumber int            `json:"hand_number"`
	Board      []string       `json:"board"`
	Winners    []game.Winner  `json:"winners"`
	Stacks     map[string]int `json:"stacks"`
	Events     []game.Event   `json:"events"`
	Aborted    bool           `json:"aborted"`
}

// Hooks are optional callbacks fired while the session mutex is held; they
// must not call back into the session. OnStateChanged receives a full
// snapshot after every mutation: each deal, each applied action, and each
// hand resolution.
type Hooks struct {
	OnAIMove       func(AIMove)
	OnStateChanged func(Snapshot)
	OnHandComplete func(HandSummary)
	OnGameOver     func(winnerID string)
}

// Session runs one table. Create with New, then StartHand.
type Session struct {
	mu sync.Mutex

	id            string
	seed          int64
	rng           *rand.Rand
	clock         quartz.Clock
	logger        *log.Logger
	hooks         Hooks
	smallBlind    int
	bigBlind      int
	samples       int
	aiDelay       time.Duration
	autoPlay      bool
	eventCap      int
	stackOverride []int

	players    []*game.Player
	strategies []ai.Strategy // nil for human seats
	events     *game.EventLog
	hand       *game.HandState
	dealer     int
	handNumber int
	lastMoves  []AIMove
	summaries  []HandSummary
	gameOver   bool
	winnerID   string
}

// Option configures a Session at creation.
type Option func(*Session)

// WithSeed fixes the session RNG seed. Identical seeds, seats and action
// sequences replay identically.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// WithBlinds sets the small and big blind. Blinds do not escalate.
func WithBlinds(small, big int) Option {
	return func(s *Session) { s.smallBlind, s.bigBlind = small, big }
}

// WithStacks overrides seat starting stacks in seat order. Zero entries
// keep the stack from the seat spec.
func WithStacks(stacks ...int) Option {
	return func(s *Session) { s.stackOverride = stacks }
}

// WithAutoPlay controls whether AI turns run automatically after each state
// change. When disabled, callers drive AI seats with Step.
func WithAutoPlay(on bool) Option {
	return func(s *Session) { s.autoPlay = on }
}

// WithAIDelay inserts a pause before each AI action, for human-facing pacing.
func WithAIDelay(d time.Duration) Option {
	return func(s *Session) { s.aiDelay = d }
}

// WithEquitySamples caps Monte-Carlo samples per AI decision.
func WithEquitySamples(n int) Option {
	return func(s *Session) { s.samples = n }
}

// WithClock substitutes the clock, letting tests control AI pacing.
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) { s.clock = clock }
}

// WithLogger substitutes the session logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithHooks installs observer callbacks.
func WithHooks(h Hooks) Option {
	return func(s *Session) { s.hooks = h }
}

// WithEventCap bounds the retained event history.
func WithEventCap(n int) Option {
	return func(s *Session) { s.eventCap = n }
}

// New creates a session with the given seats. Seats keep their order; seat 0
// holds the button for the first hand.
func New(id string, seats []SeatSpec, opts ...Option) (*Session, error) {
	if len(seats) < 2 || len(seats) > 4 {
		return nil, fmt.Errorf("%w: need 2-4 seats, have %d", game.ErrInvalidAction, len(seats))
	}

	s := &Session{
		id:         id,
		seed:       randutil.CryptoSeed(),
		clock:      quartz.NewReal(),
		logger:     log.Default(),
		smallBlind: 5,
		bigBlind:   10,
		samples:    200,
		autoPlay:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("session").With("game", id)
	s.rng = randutil.New(s.seed)
	s.events = game.NewEventLog(s.eventCap)

	for i, spec := range seats {
		if i < len(s.stackOverride) && s.stackOverride[i] > 0 {
			spec.Stack = s.stackOverride[i]
		}
		if spec.Stack <= 0 {
			return nil, fmt.Errorf("%w: seat %d starting stack must be positive", game.ErrBadAmount, i)
		}
		playerID := spec.ID
		if playerID == "" {
			playerID = fmt.Sprintf("seat-%d", i)
		}
		name := spec.Name
		if name == "" {
			name = playerID
		}
		p := &game.Player{
			ID:          playerID,
			Name:        name,
			Human:       spec.Human,
			Personality: spec.Personality,
			Stack:       spec.Stack,
		}
		var strat ai.Strategy
		if !spec.Human {
			var err error
			strat, err = ai.ForPersonality(spec.Personality)
			if err != nil {
				return nil, fmt.Errorf("seat %d: %w", i, err)
			}
		}
		s.players = append(s.players, p)
		s.strategies = append(s.strategies, strat)
	}

	s.logger.Info("session created", "seats", len(seats), "seed", s.seed)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Seed returns the RNG seed the session was created with.
func (s *Session) Seed() int64 { return s.seed }

// StartHand deals the first hand or, after NextHand rotated the button, the
// following one. It fails when a hand is still live or the game is over.
func (s *Session) StartHand() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startHandLocked()
}

func (s *Session) startHandLocked() error {
	if s.gameOver {
		return fmt.Errorf("%w: the game has been decided", game.ErrGameOver)
	}
	if s.hand != nil && !s.hand.Complete && !s.hand.Aborted {
		return fmt.Errorf("%w: hand #%d still in progress", game.ErrInvalidAction, s.handNumber)
	}

	s.handNumber++
	s.lastMoves = s.lastMoves[:0]
	hand, err := game.NewHand(s.rng, s.players, s.dealer, s.smallBlind, s.bigBlind, s.handNumber, s.events)
	if err != nil {
		s.handNumber--
		return err
	}
	s.hand = hand
	s.logger.Info("hand started", "hand", s.handNumber, "dealer", s.dealer)
	s.notifyStateLocked()

	if hand.Complete || hand.Aborted {
		s.finishHandLocked()
		return nil
	}
	if s.autoPlay {
		return s.runAILocked()
	}
	return nil
}

// ApplyAction applies one action on behalf of the identified player. The
// hand state machine enforces turn order and legality; on success AI seats
// act until the hand needs human input or resolves.
func (s *Session) ApplyAction(playerID string, action game.Action, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seat, err := s.seatByID(playerID)
	if err != nil {
		return err
	}
	if s.hand == nil || s.hand.Complete || s.hand.Aborted {
		return fmt.Errorf("%w: no live hand", game.ErrInvalidAction)
	}

	if err := s.hand.ProcessAction(seat, action, amount); err != nil {
		if s.hand.Aborted {
			s.finishHandLocked()
		}
		return err
	}
	if s.hand.Complete {
		s.finishHandLocked()
		return nil
	}
	s.notifyStateLocked()
	if s.autoPlay {
		return s.runAILocked()
	}
	return nil
}

// Step runs exactly one AI action when autoplay is off. It reports whether
// an AI seat acted.
func (s *Session) Step() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hand == nil || s.hand.Complete || s.hand.Aborted || s.hand.Current == -1 {
		return false, nil
	}
	if s.strategies[s.hand.Current] == nil {
		return false, nil
	}
	if err := s.stepAILocked(); err != nil {
		return false, err
	}
	if s.hand.Complete || s.hand.Aborted {
		s.finishHandLocked()
	}
	return true, nil
}

// NextHand rotates the button to the next funded seat and deals. The
// current hand must be resolved first.
func (s *Session) NextHand() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hand == nil {
		return fmt.Errorf("%w: no hand has been dealt", game.ErrInvalidAction)
	}
	if !s.hand.Complete && !s.hand.Aborted {
		return fmt.Errorf("%w: hand #%d still in progress", game.ErrInvalidAction, s.handNumber)
	}
	if s.gameOver {
		return fmt.Errorf("%w: the game has been decided", game.ErrGameOver)
	}

	next, err := s.nextFundedSeat(s.dealer + 1)
	if err != nil {
		return err
	}
	s.dealer = next
	return s.startHandLocked()
}

// runAILocked lets AI seats act until a human is due, nobody may act, or the
// hand resolves.
func (s *Session) runAILocked() error {
	for s.hand != nil && !s.hand.Complete && !s.hand.Aborted && s.hand.Current != -1 {
		if s.strategies[s.hand.Current] == nil {
			return nil // waiting on a human
		}
		if err := s.stepAILocked(); err != nil {
			return err
		}
	}
	if s.hand != nil && (s.hand.Complete || s.hand.Aborted) {
		s.finishHandLocked()
	}
	return nil
}

// stepAILocked decides and applies one action for the current AI seat.
func (s *Session) stepAILocked() error {
	seat := s.hand.Current
	p := s.players[seat]
	strat := s.strategies[seat]

	if s.aiDelay > 0 {
		timer := s.clock.NewTimer(s.aiDelay)
		<-timer.C
	}

	sit := s.situationFor(seat)
	d := strat.Decide(sit, s.rng)
	move := AIMove{Seat: seat, PlayerID: p.ID, Strategy: strat.Name(), Decision: d}
	s.lastMoves = append(s.lastMoves, move)
	s.logger.Debug("ai decision",
		"hand", s.handNumber,
		"seat", seat,
		"strategy", strat.Name(),
		"action", d.Action,
		"amount", d.Amount,
		"strength", d.HandStrength,
		"reason", d.Reasoning)

	err := s.hand.ProcessAction(seat, d.Action, d.Amount)
	if err != nil {
		// Strategies clamp into the legal envelope; a rejection here is a
		// strategy bug. Degrade to the safest legal action rather than
		// stalling the table.
		s.logger.Warn("ai action rejected", "seat", seat, "action", d.Action, "error", err)
		for _, fallback := range []game.Action{game.Call, game.Check, game.Fold} {
			if err = s.hand.ProcessAction(seat, fallback, 0); err == nil {
				break
			}
		}
	}
	if err != nil {
		return err
	}

	if s.hooks.OnAIMove != nil {
		s.hooks.OnAIMove(move)
	}
	if !s.hand.Complete && !s.hand.Aborted {
		s.notifyStateLocked()
	}
	return nil
}

// situationFor builds the read-only snapshot a strategy decides from.
func (s *Session) situationFor(seat int) ai.Situation {
	h := s.hand
	p := s.players[seat]
	va := h.ValidActions(seat)

	opponents := 0
	largestOther := 0
	for i, other := range s.players {
		if i == seat || !other.InHand() {
			continue
		}
		opponents++
		if other.Stack > largestOther {
			largestOther = other.Stack
		}
	}

	return ai.Situation{
		Street:         h.Street,
		Hole:           p.HoleCards,
		Board:          h.Board,
		Pot:            h.Pot(),
		CurrentBet:     h.CurrentBet,
		AmountToCall:   va.CallAmount,
		Stack:          p.Stack,
		EffectiveStack: min(p.Stack, largestOther),
		Opponents:      opponents,
		BigBlind:       s.bigBlind,
		CanRaise:       va.CanRaise,
		MinRaiseTo:     va.MinRaiseTo,
		MaxRaiseTo:     va.MaxRaiseTo,
		EquitySamples:  s.samples,
	}
}

// finishHandLocked records the summary for a resolved or aborted hand and
// checks whether the game is decided.
func (s *Session) finishHandLocked() {
	h := s.hand
	summary := HandSummary{
		HandNumber: h.HandNumber,
		Board:      deck.Strings(h.Board),
		Winners:    append([]game.Winner(nil), h.Winners...),
		Stacks:     make(map[string]int, len(s.players)),
		Events:     s.events.HandEvents(),
		Aborted:    h.Aborted,
	}
	for _, p := range s.players {
		summary.Stacks[p.ID] = p.Stack
	}
	s.summaries = append(s.summaries, summary)

	if h.Aborted {
		s.logger.Error("hand aborted", "hand", h.HandNumber)
	} else {
		s.logger.Info("hand complete", "hand", h.HandNumber, "winners", len(h.Winners))
	}

	// The game ends when fewer than two seats hold chips, or when a human
	// seat busts even though AI seats could keep playing each other. The
	// winner is the chip leader.
	funded := 0
	humanBusted := false
	leader := -1
	for i, p := range s.players {
		if p.Stack > 0 {
			funded++
		} else if p.Human {
			humanBusted = true
		}
		if leader == -1 || p.Stack > s.players[leader].Stack {
			leader = i
		}
	}
	if (funded < 2 || humanBusted) && !h.Aborted {
		s.gameOver = true
		s.winnerID = s.players[leader].ID
		s.logger.Info("game over", "winner", s.winnerID)
	}
	if s.hooks.OnHandComplete != nil {
		s.hooks.OnHandComplete(summary)
	}
	s.notifyStateLocked()
	if s.gameOver && s.hooks.OnGameOver != nil {
		s.hooks.OnGameOver(s.winnerID)
	}
}

// notifyStateLocked publishes a snapshot to the OnStateChanged hook.
func (s *Session) notifyStateLocked() {
	if s.hooks.OnStateChanged != nil {
		s.hooks.OnStateChanged(s.snapshotLocked())
	}
}

func (s *Session) seatByID(playerID string) (int, error) {
	for i, p := range s.players {
		if p.ID == playerID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no seat for player %q", game.ErrGameNotFound, playerID)
}

// nextFundedSeat finds the next seat at or after from with chips, wrapping.
func (s *Session) nextFundedSeat(from int) (int, error) {
	n := len(s.players)
	for i := 0; i < n; i++ {
		seat := ((from+i)%n + n) % n
		if s.players[seat].Stack > 0 {
			return seat, nil
		}
	}
	return -1, fmt.Errorf("%w: no funded seats", game.ErrGameOver)
}

// Summaries returns the finished-hand records, oldest first.
func (s *Session) Summaries() []HandSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]HandSummary(nil), s.summaries...)
}

// LastSummary returns the most recent finished hand, if any.
func (s *Session) LastSummary() (HandSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.summaries) == 0 {
		return HandSummary{}, false
	}
	return s.summaries[len(s.summaries)-1], true
}
