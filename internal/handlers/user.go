package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/recipe-api/internal/httpx"
	"github.com/diewo77/recipe-api/internal/repository"
	"github.com/diewo77/recipe-api/internal/serializers"
	"go.uber.org/zap"
)

type UserHandler struct {
	users  *repository.UserStore
	tokens *repository.TokenStore
	log    *zap.Logger
}

func NewUserHandler(repo *repository.Repository, log *zap.Logger) *UserHandler {
	return &UserHandler{users: repo.Users, tokens: repo.Tokens, log: log}
}

// Create handles POST /user/create.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req serializers.UserRequest
	if !decode(w, r, &req) {
		return
	}
	if v := req.Validate(false); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	u, err := h.users.Create(r.Context(), strings.TrimSpace(*req.Email), *req.Password, req.Fields())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.log.Info("user created", zap.Uint("user_id", u.ID))
	httpx.JSON(w, http.StatusCreated, serializers.NewUserResponse(u))
}

// Token handles POST /user/token.
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req serializers.TokenRequest
	if !decode(w, r, &req) {
		return
	}
	if v := req.Validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	tok, err := h.tokens.Issue(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.TokenResponse{Token: tok.Key})
}

// Me handles GET /user/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.NewUserResponse(u))
}

// UpdateMe handles PUT and PATCH /user/me.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req serializers.UserRequest
	if !decode(w, r, &req) {
		return
	}
	if v := req.Validate(isPartial(r)); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	u, err := h.users.Update(r.Context(), currentUser(r), req.ToPatch())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.NewUserResponse(u))
}
