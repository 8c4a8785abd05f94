package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/boggle-go/internal/api/middleware"
	"github.com/mcoot/boggle-go/internal/api/request"
	"github.com/mcoot/boggle-go/internal/api/response"
	"github.com/mcoot/boggle-go/internal/model"
	"github.com/mcoot/boggle-go/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	engine game.EngineInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(engine game.EngineInterface) *GameHandler {
	return &GameHandler{
		engine: engine,
	}
}

// Join handles POST /api/v1/games
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req request.JoinGameRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	token := middleware.ResolveToken(r.Context(), req.UserToken)
	result, err := h.engine.JoinMatch(r.Context(), token, req.TimeLimit)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusAccepted
	if result.Activated {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.GameIDFromModel(result.MatchID))
}

// Cancel handles PUT /api/v1/games
func (h *GameHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req request.CancelJoinRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	token := middleware.ResolveToken(r.Context(), req.UserToken)
	if err := h.engine.CancelJoin(r.Context(), token); err != nil {
		WriteError(w, err)
		return
	}

	response.Empty(w, http.StatusOK)
}

// Play handles PUT /api/v1/games/{id}
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(r)
	if !ok {
		WriteError(w, model.ErrMatchNotFound)
		return
	}

	var req request.PlayWordRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	token := middleware.ResolveToken(r.Context(), req.UserToken)
	score, err := h.engine.PlayWord(r.Context(), id, token, req.Word)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreResponse{Score: score})
}

// Status handles GET /api/v1/games/{id}?brief=yes
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := matchID(r)
	if !ok {
		WriteError(w, model.ErrMatchNotFound)
		return
	}

	brief := r.URL.Query().Get("brief") == "yes"
	view, err := h.engine.MatchStatus(r.Context(), id, brief)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStatusFromModel(view))
}

// matchID parses the {id} path variable. Ids that cannot name a match are reported
// the same way as unknown ones.
func matchID(r *http.Request) (model.MatchID, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return model.MatchID(id), true
}
