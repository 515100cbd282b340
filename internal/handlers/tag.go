package handlers

import (
	"net/http"

	"github.com/diewo77/recipe-api/internal/httpx"
	"github.com/diewo77/recipe-api/internal/models"
	"github.com/diewo77/recipe-api/internal/repository"
	"github.com/diewo77/recipe-api/internal/serializers"
	"go.uber.org/zap"
)

type TagHandler struct {
	tags *repository.TagStore
	log  *zap.Logger
}

func NewTagHandler(repo *repository.Repository, log *zap.Logger) *TagHandler {
	return &TagHandler{tags: repo.Tags, log: log}
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.NewTagList(tags))
}

func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tag, err := h.tags.Get(r.Context(), currentUser(r), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.NewTagResponse(tag))
}

// Update renames a tag (PUT or PATCH). A PATCH without a name returns the tag unchanged.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req serializers.TagRequest
	if !decode(w, r, &req) {
		return
	}
	if v := req.Validate(isPartial(r)); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, httpx.CodeValidationFailed, v)
		return
	}
	userID := currentUser(r)
	var tag *models.Tag
	var err error
	if name := req.NewName(); name != nil {
		tag, err = h.tags.Update(r.Context(), userID, id, *name)
	} else {
		tag, err = h.tags.Get(r.Context(), userID, id)
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.NewTagResponse(tag))
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.tags.Delete(r.Context(), currentUser(r), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.NoContent(w)
}

type IngredientHandler struct {
	ingredients *repository.IngredientStore
	log         *zap.Logger
}

func NewIngredientHandler(repo *repository.Repository, log *zap.Logger) *IngredientHandler {
	return &IngredientHandler{ingredients: repo.Ingredients, log: log}
}

func (h *IngredientHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.ingredients.List(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, serializers.NewIngredientList(items))
}
