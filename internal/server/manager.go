package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/gameid"
	"github.com/cardroom/holdem/internal/session"
)

// Manager owns the live games: it creates sessions with the configured
// defaults, hands out IDs, and wires each session's hooks into metrics and
// the event stream.
type Manager struct {
	mu     sync.Mutex
	games  map[string]*gameEntry
	cfg    GameSettings
	gen    *gameid.Generator
	logger *log.Logger
	metric *Metrics
	hub    *Hub
}

type gameEntry struct {
	sess         *session.Session
	showThinking bool
}

// NewManager creates a game manager.
func NewManager(cfg GameSettings, logger *log.Logger, metrics *Metrics, hub *Hub) *Manager {
	return &Manager{
		games:  make(map[string]*gameEntry),
		cfg:    cfg,
		gen:    gameid.NewGenerator(nil),
		logger: logger.WithPrefix("manager"),
		metric: metrics,
		hub:    hub,
	}
}

// CreateGameParams are the per-game settings a client may set at creation.
// Zero values fall back to the server's configured defaults.
type CreateGameParams struct {
	Seats          []session.SeatSpec
	Seed           *int64
	SmallBlind     int
	BigBlind       int
	AIDelay        time.Duration
	ShowAIThinking *bool
}

// Create builds a session, starts its first hand, and registers it.
func (m *Manager) Create(params CreateGameParams) (*session.Session, error) {
	id := m.gen.Generate()

	small, big := m.cfg.SmallBlind, m.cfg.BigBlind
	if params.SmallBlind > 0 {
		small = params.SmallBlind
	}
	if params.BigBlind > 0 {
		big = params.BigBlind
	}
	if big <= small {
		return nil, fmt.Errorf("%w: big blind %d must exceed small blind %d", game.ErrBadAmount, big, small)
	}

	seats := make([]session.SeatSpec, len(params.Seats))
	copy(seats, params.Seats)
	for i := range seats {
		if seats[i].Stack == 0 {
			seats[i].Stack = m.cfg.StartingStack
		}
	}

	aiDelay := params.AIDelay
	if aiDelay == 0 {
		aiDelay = time.Duration(m.cfg.AIDelayMS) * time.Millisecond
	}

	opts := []session.Option{
		session.WithBlinds(small, big),
		session.WithEquitySamples(m.cfg.EquitySamples),
		session.WithAIDelay(aiDelay),
		session.WithEventCap(m.cfg.EventCap),
		session.WithLogger(m.logger),
		session.WithHooks(m.hooks(id)),
	}
	if params.Seed != nil {
		opts = append(opts, session.WithSeed(*params.Seed))
	}

	sess, err := session.New(id, seats, opts...)
	if err != nil {
		return nil, err
	}
	if err := sess.StartHand(); err != nil {
		return nil, err
	}

	showThinking := m.cfg.ShowAIThinking
	if params.ShowAIThinking != nil {
		showThinking = *params.ShowAIThinking
	}

	m.mu.Lock()
	m.games[id] = &gameEntry{sess: sess, showThinking: showThinking}
	m.mu.Unlock()
	m.metric.ActiveGames.Inc()
	m.logger.Info("game created", "game", id, "seats", len(seats), "seed", sess.Seed())
	return sess, nil
}

// hooks wires one session's callbacks to metrics and the event stream. The
// callbacks run under the session mutex, so they must not call back into it.
func (m *Manager) hooks(id string) session.Hooks {
	return session.Hooks{
		OnAIMove: func(move session.AIMove) {
			m.metric.AIDecisions.WithLabelValues(move.Strategy).Inc()
			m.hub.Broadcast(id, FrameAIAction, move)
		},
		OnStateChanged: func(snap session.Snapshot) {
			m.hub.Broadcast(id, FrameStateUpdate, BuildGameView(snap, "", m.ShowThinking(id)))
		},
		OnHandComplete: func(summary session.HandSummary) {
			m.metric.HandsCompleted.Inc()
		},
		OnGameOver: func(winnerID string) {
			m.metric.ActiveGames.Dec()
			m.hub.Broadcast(id, FrameGameOver, map[string]string{
				"game_id":   id,
				"winner_id": winnerID,
			})
		},
	}
}

// Get looks up a live game.
func (m *Manager) Get(id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", game.ErrGameNotFound, id)
	}
	return entry.sess, nil
}

// ShowThinking reports whether a game exposes AI reasoning in its views.
func (m *Manager) ShowThinking(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.games[id]
	return ok && entry.showThinking
}

// Remove drops a game from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	entry, ok := m.games[id]
	if ok {
		delete(m.games, id)
	}
	m.mu.Unlock()
	if ok && !entry.sess.Snapshot().GameOver {
		m.metric.ActiveGames.Dec()
	}
}

// Count returns the number of registered games.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}
