package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/boggle-go/internal/api"
	"github.com/mcoot/boggle-go/internal/api/apierr"
	"github.com/mcoot/boggle-go/internal/api/response"
	"github.com/mcoot/boggle-go/internal/factory"
	"github.com/mcoot/boggle-go/internal/testutil"
)

// C A T S
// D O G S
// B I R D
// F I S H
const testBoard = "CATSDOGSBIRDFISH"

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger: testutil.NopLogger(),
		Engine: app.Engine,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	switch b := body.(type) {
	case nil:
	case string:
		reqBody.WriteString(b)
	default:
		data, _ := json.Marshal(b)
		reqBody.Write(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) register(t *testing.T, nickname string) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/users", map[string]string{"nickname": nickname}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.UserTokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.UserToken)
	return resp.UserToken
}

func (ts *testServer) join(t *testing.T, token string, limit int) (string, int) {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"user_token": token, "time_limit": limit}, "")
	require.Contains(t, []int{http.StatusCreated, http.StatusAccepted}, rr.Code, rr.Body.String())

	var resp response.GameIDResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.GameID, rr.Code
}

// startGame pairs two players on the test board
func (ts *testServer) startGame(t *testing.T) (string, string, string) {
	t.Helper()
	ts.app.QueueBoard(testBoard)
	alice := ts.register(t, "Alice")
	bob := ts.register(t, "Bob")
	id, _ := ts.join(t, alice, 30)
	_, code := ts.join(t, bob, 50)
	require.Equal(t, http.StatusCreated, code)
	return id, alice, bob
}

func (ts *testServer) play(token, id, word string) *httptest.ResponseRecorder {
	return ts.request(http.MethodPut, "/api/v1/games/"+id, map[string]string{"user_token": token, "word": word}, "")
}

func (ts *testServer) status(t *testing.T, id string, brief bool) map[string]any {
	t.Helper()
	path := "/api/v1/games/" + id
	if brief {
		path += "?brief=yes"
	}
	rr := ts.request(http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

// User tests

func TestRegisterUser(t *testing.T) {
	ts := newTestServer(t)

	token := ts.register(t, "Alice")
	assert.NotEqual(t, token, ts.register(t, "Alice"))
}

func TestRegisterUserBlankNickname(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []any{map[string]string{"nickname": "   "}, map[string]string{}, nil} {
		rr := ts.request(http.MethodPost, "/api/v1/users", body, "")
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, apierr.CodeNicknameRequired, errorCode(t, rr))
	}
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/users", "{nickname", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, errorCode(t, rr))
}

// Join tests

func TestJoinAcceptedThenCreated(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "Alice")
	bob := ts.register(t, "Bob")

	id1, code := ts.join(t, alice, 30)
	assert.Equal(t, http.StatusAccepted, code)

	id2, code := ts.join(t, bob, 30)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, id1, id2)

	// The next join lands in a new game
	carol := ts.register(t, "Carol")
	id3, code := ts.join(t, carol, 30)
	assert.Equal(t, http.StatusAccepted, code)
	assert.NotEqual(t, id1, id3)
}

func TestJoinWithBearerToken(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "Alice")

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]int{"time_limit": 30}, alice)
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestJoinErrors(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "Alice")

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"limit too small", map[string]any{"user_token": alice, "time_limit": 4}, http.StatusForbidden, apierr.CodeInvalidTimeLimit},
		{"limit too large", map[string]any{"user_token": alice, "time_limit": 121}, http.StatusForbidden, apierr.CodeInvalidTimeLimit},
		{"bad limit bad token", map[string]any{"user_token": "nope", "time_limit": 0}, http.StatusForbidden, apierr.CodeInvalidTimeLimit},
		{"unknown token", map[string]any{"user_token": "nope", "time_limit": 30}, http.StatusForbidden, apierr.CodeUnknownUser},
		{"missing token", map[string]any{"time_limit": 30}, http.StatusForbidden, apierr.CodeUnknownUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/games", tt.body, "")
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, errorCode(t, rr))
		})
	}
}

func TestJoinTwiceConflict(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "Alice")
	ts.join(t, alice, 30)

	rr := ts.request(http.MethodPost, "/api/v1/games", map[string]any{"user_token": alice, "time_limit": 30}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeAlreadySeated, errorCode(t, rr))
}

// Cancel tests

func TestCancelJoin(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "Alice")
	id, _ := ts.join(t, alice, 30)

	rr := ts.request(http.MethodPut, "/api/v1/games", map[string]string{"user_token": alice}, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPut, "/api/v1/games", map[string]string{"user_token": alice}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotSeated, errorCode(t, rr))

	// Rejoining goes back into the same pending game
	again, code := ts.join(t, alice, 30)
	assert.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, id, again)
}

func TestCancelUnknownToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/api/v1/games", map[string]string{"user_token": "nope"}, "")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// Play tests

func TestPlayWord(t *testing.T) {
	ts := newTestServer(t)
	id, alice, bob := ts.startGame(t)

	rr := ts.play(alice, id, "fishdr")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"score":3}`, rr.Body.String())

	rr = ts.play(bob, id, "FISHDR")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"score":3}`, rr.Body.String())

	rr = ts.play(alice, id, "ZEBRA")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"score":0}`, rr.Body.String())
}

func TestPlayErrors(t *testing.T) {
	ts := newTestServer(t)
	id, alice, _ := ts.startGame(t)
	carol := ts.register(t, "Carol")
	pending, _ := ts.join(t, carol, 30)

	tests := []struct {
		name   string
		token  string
		id     string
		word   string
		status int
		code   string
	}{
		{"empty word", alice, id, "  ", http.StatusForbidden, apierr.CodeWordRequired},
		{"unknown token", "nope", id, "CAT", http.StatusForbidden, apierr.CodeUnknownUser},
		{"not a participant", carol, id, "CAT", http.StatusForbidden, apierr.CodeNotParticipant},
		{"game pending", carol, pending, "CAT", http.StatusConflict, apierr.CodeMatchNotActive},
		{"unknown game", alice, "999", "CAT", http.StatusNotFound, apierr.CodeMatchNotFound},
		{"malformed game id", alice, "abc", "CAT", http.StatusNotFound, apierr.CodeMatchNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.play(tt.token, tt.id, tt.word)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, errorCode(t, rr))
		})
	}
}

func TestPlayAfterTimeout(t *testing.T) {
	ts := newTestServer(t)
	id, alice, _ := ts.startGame(t)
	ts.app.MockClock.Advance(40 * time.Second)

	rr := ts.play(alice, id, "CAT")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "complete", ts.status(t, id, true)["game_state"])
}

// Status tests

func TestStatusPending(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.register(t, "Alice")
	id, _ := ts.join(t, alice, 30)

	assert.Equal(t, map[string]any{"game_state": "pending"}, ts.status(t, id, false))
	assert.Equal(t, map[string]any{"game_state": "pending"}, ts.status(t, id, true))
}

func TestStatusActive(t *testing.T) {
	ts := newTestServer(t)
	id, alice, _ := ts.startGame(t)
	ts.play(alice, id, "CATS")
	ts.app.MockClock.Advance(15 * time.Second)

	brief := ts.status(t, id, true)
	assert.Equal(t, map[string]any{
		"game_state": "active",
		"time_left":  float64(25),
		"player1":    map[string]any{"score": float64(1)},
		"player2":    map[string]any{"score": float64(0)},
	}, brief)

	full := ts.status(t, id, false)
	assert.Equal(t, map[string]any{
		"game_state": "active",
		"board":      testBoard,
		"time_limit": float64(40),
		"time_left":  float64(25),
		"player1":    map[string]any{"nickname": "Alice", "score": float64(1)},
		"player2":    map[string]any{"nickname": "Bob", "score": float64(0)},
	}, full)
}

func TestStatusComplete(t *testing.T) {
	ts := newTestServer(t)
	id, alice, bob := ts.startGame(t)
	ts.play(alice, id, "FISHDR")
	ts.play(bob, id, "FISHDR")
	ts.play(bob, id, "AT")
	ts.app.MockClock.Advance(time.Minute)

	full := ts.status(t, id, false)
	assert.Equal(t, "complete", full["game_state"])
	assert.Equal(t, float64(0), full["time_left"])
	assert.Equal(t, testBoard, full["board"])
	assert.Equal(t, map[string]any{
		"nickname":     "Alice",
		"score":        float64(0),
		"words_played": []any{map[string]any{"word": "FISHDR", "score": float64(0)}},
	}, full["player1"])
	assert.Equal(t, map[string]any{
		"nickname": "Bob",
		"score":    float64(3),
		"words_played": []any{
			map[string]any{"word": "AT", "score": float64(0)},
			map[string]any{"word": "FISHDR", "score": float64(3)},
		},
	}, full["player2"])

	brief := ts.status(t, id, true)
	assert.Equal(t, map[string]any{"score": float64(0)}, brief["player1"])
	assert.NotContains(t, brief, "board")
}

func TestStatusCompleteWithNoWords(t *testing.T) {
	ts := newTestServer(t)
	id, _, _ := ts.startGame(t)
	ts.app.MockClock.Advance(time.Minute)

	full := ts.status(t, id, false)
	assert.Equal(t, []any{}, full["player1"].(map[string]any)["words_played"])
}

func TestStatusUnknownGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/42", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeMatchNotFound, errorCode(t, rr))
}

// Routing tests

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeRouteNotFound, errorCode(t, rr))
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodDelete, "/api/v1/games", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, apierr.CodeMethodNotAllowed, errorCode(t, rr))
}

func TestMethodNotAllowedOnGameRoute(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/games/1", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, apierr.CodeMethodNotAllowed, errorCode(t, rr))

	rr = ts.request(http.MethodDelete, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestUnknownRouteOutsideAPIPrefix(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeRouteNotFound, errorCode(t, rr))
}
