package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(DefaultConfig(), log.NewWithOptions(io.Discard, log.Options{}))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeView(t *testing.T, resp *http.Response) GameStateView {
	t.Helper()
	defer resp.Body.Close()
	var view GameStateView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "holdem_active_games")
}

func TestCreateAIOnlyGamePlaysFirstHand(t *testing.T) {
	ts := newTestServer(t)
	seed := int64(42)
	resp := postJSON(t, ts.URL+"/games", createGameRequest{
		Seats: []seatRequest{
			{Name: "Rocky", Personality: "conservative"},
			{Name: "Maniac", Personality: "aggressive"},
			{Name: "Calc", Personality: "mathematical"},
		},
		Seed: &seed,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	view := decodeView(t, resp)

	assert.NotEmpty(t, view.GameID)
	assert.Equal(t, 1, view.HandNumber)
	assert.True(t, view.HandComplete, "all-AI hand should resolve on creation")
	assert.NotEmpty(t, view.Events)

	total := 0
	for _, seat := range view.Seats {
		total += seat.Stack
	}
	assert.Equal(t, 3000, total)
}

func TestCreateGameShorthandSeatsHumanAgainstAIs(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/games", createGameRequest{
		HumanName: "Dana",
		AICount:   3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	view := decodeView(t, resp)

	require.Len(t, view.Seats, 4)
	assert.Equal(t, "Dana", view.Seats[0].Name)
	assert.True(t, view.Seats[0].Human)
	assert.Equal(t, "conservative", view.Seats[1].Personality)
	assert.Equal(t, "aggressive", view.Seats[2].Personality)
	assert.Equal(t, "mathematical", view.Seats[3].Personality)
	for _, seat := range view.Seats {
		assert.Equal(t, 1000, seat.Stack+seat.TotalInvested)
	}

	resp = postJSON(t, ts.URL+"/games", createGameRequest{HumanName: "Dana", AICount: 4})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/games", createGameRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateGameRejectsBadRequests(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/games", createGameRequest{
		Seats: []seatRequest{{Name: "Solo", Personality: "conservative"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/games", createGameRequest{
		Seats: []seatRequest{
			{Name: "A", Personality: "telepath"},
			{Name: "B", Personality: "conservative"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestGetStateUnknownGameIs404(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/games/0000000000000000000000000x/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHumanGameFlow(t *testing.T) {
	ts := newTestServer(t)
	seed := int64(7)
	resp := postJSON(t, ts.URL+"/games", createGameRequest{
		Seats: []seatRequest{
			{Name: "Human", Human: true},
			{Name: "Bot", Personality: "conservative"},
		},
		Seed: &seed,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeView(t, resp)
	gameID := created.GameID

	// Heads-up the dealer acts first: the hand waits on the human.
	require.False(t, created.HandComplete)
	require.Equal(t, "seat-0", created.CurrentPlayerID)
	require.NotNil(t, created.ValidActions)

	// Spectator state hides everyone's cards; the human sees their own.
	resp2, err := http.Get(ts.URL + "/games/" + gameID + "/state")
	require.NoError(t, err)
	spectator := decodeView(t, resp2)
	for _, seat := range spectator.Seats {
		assert.Empty(t, seat.HoleCards)
	}

	resp2, err = http.Get(ts.URL + "/games/" + gameID + "/state?player_id=seat-0")
	require.NoError(t, err)
	own := decodeView(t, resp2)
	assert.Len(t, own.Seats[0].HoleCards, 2)
	assert.Empty(t, own.Seats[1].HoleCards)

	// Acting out of turn conflicts; acting in turn resolves the hand.
	resp = postJSON(t, ts.URL+"/games/"+gameID+"/actions", actionRequest{
		PlayerID: "seat-1", Action: "call",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/games/"+gameID+"/actions", actionRequest{
		PlayerID: "seat-0", Action: "fold",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	after := decodeView(t, resp)
	assert.True(t, after.HandComplete)
	assert.Equal(t, 995, after.Seats[0].Stack)
	assert.Equal(t, 1005, after.Seats[1].Stack)

	// Summary exists once a hand completed.
	resp2, err = http.Get(ts.URL + "/games/" + gameID + "/summary")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	resp2.Body.Close()

	// Next hand rotates the button and deals again.
	resp = postJSON(t, ts.URL+"/games/"+gameID+"/next-hand", struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	next := decodeView(t, resp)
	assert.Equal(t, 2, next.HandNumber)
	assert.Equal(t, 1, next.Dealer)
}

func TestActionValidationErrors(t *testing.T) {
	ts := newTestServer(t)
	seed := int64(7)
	resp := postJSON(t, ts.URL+"/games", createGameRequest{
		Seats: []seatRequest{
			{Name: "Human", Human: true},
			{Name: "Bot", Personality: "mathematical"},
		},
		Seed: &seed,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeView(t, resp)

	resp = postJSON(t, ts.URL+"/games/"+created.GameID+"/actions", actionRequest{
		PlayerID: "seat-0", Action: "levitate",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/games/"+created.GameID+"/actions", actionRequest{
		PlayerID: "seat-0", Action: "raise", Amount: 999999,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/games/"+created.GameID+"/actions", actionRequest{
		PlayerID: "ghost", Action: "fold",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
