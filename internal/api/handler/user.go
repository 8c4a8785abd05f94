package handler

import (
	"net/http"

	"github.com/mcoot/boggle-go/internal/api/request"
	"github.com/mcoot/boggle-go/internal/api/response"
	"github.com/mcoot/boggle-go/internal/services/game"
)

// UserHandler handles user endpoints
type UserHandler struct {
	engine game.EngineInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(engine game.EngineInterface) *UserHandler {
	return &UserHandler{
		engine: engine,
	}
}

// Register handles POST /api/v1/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterUserRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	token, err := h.engine.RegisterUser(r.Context(), req.Nickname)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.UserTokenResponse{UserToken: string(token)})
}
