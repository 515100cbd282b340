package handlers

import (
	"net/http"

	"github.com/diewo77/recipe-api/internal/httpx"
	"github.com/diewo77/recipe-api/internal/repository"
	"github.com/diewo77/recipe-api/internal/serializers"
	"go.uber.org/zap"
)

type RecipeHandler struct {
	recipes *repository.RecipeStore
	log     *zap.Logger
}

func NewRecipeHandler(repo *repository.Repository, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: repo.Recipes, log: log}
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.List(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.NewRecipeList(recipes))
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req serializers.RecipeRequest
	if !decode(w, r, &req) {
		return
	}
	if v := req.Validate(false); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	recipe, err := h.recipes.Create(r.Context(), currentUser(r), req.ToInput())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, serializers.NewRecipeResponse(recipe))
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.NewRecipeDetailResponse(recipe))
}

// Update handles PUT (full) and PATCH (partial).
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req serializers.RecipeRequest
	if !decode(w, r, &req) {
		return
	}
	if v := req.Validate(isPartial(r)); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	recipe, err := h.recipes.Update(r.Context(), currentUser(r), id, req.ToPatch())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.NewRecipeDetailResponse(recipe))
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.recipes.Delete(r.Context(), currentUser(r), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.NoContent(w)
}
