package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cardroom/holdem/internal/game"
	"github.com/cardroom/holdem/internal/gameid"
	"github.com/cardroom/holdem/internal/session"
)

// API exposes the game manager over HTTP and WebSocket.
type API struct {
	manager  *Manager
	hub      *Hub
	metrics  *Metrics
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewAPI creates the HTTP layer.
func NewAPI(manager *Manager, hub *Hub, metrics *Metrics, logger *log.Logger) *API {
	return &API{
		manager: manager,
		hub:     hub,
		metrics: metrics,
		logger:  logger.WithPrefix("http"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Router builds the gin engine with all routes attached.
func (a *API) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", a.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.metrics.Registry, promhttp.HandlerOpts{})))

	router.POST("/games", a.handleCreateGame)
	router.GET("/games/:id/state", a.handleGetState)
	router.POST("/games/:id/actions", a.handleAction)
	router.POST("/games/:id/next-hand", a.handleNextHand)
	router.GET("/games/:id/summary", a.handleSummary)
	router.GET("/ws/:id", a.handleWebSocket)

	return router
}

type seatRequest struct {
	Name        string `json:"name"`
	Human       bool   `json:"human"`
	Personality string `json:"personality"`
	Stack       int    `json:"stack"`
}

// createGameRequest accepts either an explicit seat list or the shorthand
// human_name + ai_count form, which seats one human against 1-3 AI opponents
// with personalities assigned in order.
type createGameRequest struct {
	Seats          []seatRequest `json:"seats"`
	HumanName      string        `json:"human_name"`
	AICount        int           `json:"ai_count"`
	Seed           *int64        `json:"seed"`
	SmallBlind     int           `json:"small_blind"`
	BigBlind       int           `json:"big_blind"`
	ShowAIThinking *bool         `json:"show_ai_thinking"`
}

var defaultPersonalities = []game.Personality{
	game.PersonalityConservative,
	game.PersonalityAggressive,
	game.PersonalityMathematical,
}

func (r createGameRequest) seatSpecs() ([]session.SeatSpec, error) {
	if len(r.Seats) > 0 {
		seats := make([]session.SeatSpec, len(r.Seats))
		for i, sr := range r.Seats {
			seats[i] = session.SeatSpec{
				Name:        sr.Name,
				Human:       sr.Human,
				Personality: game.Personality(sr.Personality),
				Stack:       sr.Stack,
			}
		}
		return seats, nil
	}
	if r.HumanName == "" || r.AICount < 1 || r.AICount > 3 {
		return nil, fmt.Errorf("%w: need seats, or human_name with ai_count 1-3", game.ErrInvalidAction)
	}
	seats := []session.SeatSpec{{Name: r.HumanName, Human: true}}
	for i := 0; i < r.AICount; i++ {
		p := defaultPersonalities[i]
		seats = append(seats, session.SeatSpec{
			Name:        string(p),
			Personality: p,
		})
	}
	return seats, nil
}

type actionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
	Amount   int    `json:"amount"`
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "games": a.manager.Count()})
}

func (a *API) handleCreateGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	seats, err := req.seatSpecs()
	if err != nil {
		a.writeError(c, "", err)
		return
	}

	sess, err := a.manager.Create(CreateGameParams{
		Seats:          seats,
		Seed:           req.Seed,
		SmallBlind:     req.SmallBlind,
		BigBlind:       req.BigBlind,
		ShowAIThinking: req.ShowAIThinking,
	})
	if err != nil {
		a.writeError(c, "", err)
		return
	}

	view := BuildGameView(sess.Snapshot(), "", a.manager.ShowThinking(sess.ID()))
	c.JSON(http.StatusCreated, view)
}

func (a *API) handleGetState(c *gin.Context) {
	sess, err := a.manager.Get(c.Param("id"))
	if err != nil {
		a.writeError(c, c.Param("id"), err)
		return
	}
	showThinking := a.manager.ShowThinking(sess.ID())
	if v, ok := c.GetQuery("thinking"); ok {
		showThinking = v == "true" || v == "1"
	}
	view := BuildGameView(sess.Snapshot(), c.Query("player_id"), showThinking)
	c.JSON(http.StatusOK, view)
}

func (a *API) handleAction(c *gin.Context) {
	id := c.Param("id")
	sess, err := a.manager.Get(id)
	if err != nil {
		a.writeError(c, id, err)
		return
	}

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	action, ok := game.ParseAction(req.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + req.Action})
		return
	}

	if err := sess.ApplyAction(req.PlayerID, action, req.Amount); err != nil {
		a.writeError(c, id, err)
		return
	}
	a.metrics.ActionsApplied.WithLabelValues(action.String()).Inc()
	c.JSON(http.StatusOK, BuildGameView(sess.Snapshot(), req.PlayerID, a.manager.ShowThinking(id)))
}

func (a *API) handleNextHand(c *gin.Context) {
	id := c.Param("id")
	sess, err := a.manager.Get(id)
	if err != nil {
		a.writeError(c, id, err)
		return
	}
	if err := sess.NextHand(); err != nil {
		a.writeError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, BuildGameView(sess.Snapshot(), c.Query("player_id"), a.manager.ShowThinking(id)))
}

func (a *API) handleSummary(c *gin.Context) {
	sess, err := a.manager.Get(c.Param("id"))
	if err != nil {
		a.writeError(c, c.Param("id"), err)
		return
	}
	summary, ok := sess.LastSummary()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no completed hands yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"game_id":   sess.ID(),
		"summary":   summary,
		"summaries": len(sess.Summaries()),
	})
}

func (a *API) handleWebSocket(c *gin.Context) {
	id := c.Param("id")
	if _, err := a.manager.Get(id); err != nil {
		a.writeError(c, id, err)
		return
	}
	conn, err := a.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.Warn("websocket upgrade failed", "game", id, "error", err)
		return
	}
	a.hub.Attach(id, conn) // blocks until disconnect
}

// writeError maps the error taxonomy onto HTTP statuses. Rejected actions
// also produce an error frame on the game's event stream. Internal
// consistency failures get a correlation id and the full hand record in the
// server log; the client only sees the id.
func (a *API) writeError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		a.streamError(id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrNotYourTurn), errors.Is(err, game.ErrGameOver):
		a.streamError(id, err)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrInvalidAction),
		errors.Is(err, game.ErrBadAmount),
		errors.Is(err, game.ErrInsufficientFunds):
		a.streamError(id, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		correlation := gameid.Generate()
		fields := []any{"correlation", correlation, "game", id, "error", err}
		if id != "" {
			if sess, getErr := a.manager.Get(id); getErr == nil {
				fields = append(fields, "events", sess.Snapshot().Events)
			}
		}
		a.logger.Error("internal error", fields...)
		if id != "" {
			a.hub.Broadcast(id, FrameError, gin.H{"correlation": correlation})
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":       "internal error",
			"correlation": correlation,
		})
	}
}

// streamError mirrors a rejected request onto the game's WebSocket stream.
func (a *API) streamError(id string, err error) {
	if id == "" {
		return
	}
	a.hub.Broadcast(id, FrameError, gin.H{"message": err.Error()})
}
