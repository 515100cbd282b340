package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/recipe-api/internal/serializers"
)

func TestTagList(t *testing.T) {
	repo := setupRepo(t)
	u := createUser(t, repo, "tags@example.com")
	other := createUser(t, repo, "other@example.com")
	ctx := context.Background()
	for _, name := range []string{"Dessert", "Vegan"} {
		if _, err := repo.Tags.GetOrCreate(ctx, u.ID, name); err != nil {
			t.Fatalf("tag: %v", err)
		}
	}
	if _, err := repo.Tags.GetOrCreate(ctx, other.ID, "Fruity"); err != nil {
		t.Fatalf("tag: %v", err)
	}
	h := NewTagHandler(repo, nopLogger())

	w := httptest.NewRecorder()
	h.List(w, newRequest(http.MethodGet, "/recipe/tags/", "", u.ID, ""))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var tags []serializers.LabelResponse
	decodeBody(t, w, &tags)
	if len(tags) != 2 || tags[0].Name != "Vegan" || tags[1].Name != "Dessert" {
		t.Fatalf("unexpected tags %+v", tags)
	}
}

func TestTagUpdateAndDelete(t *testing.T) {
	repo := setupRepo(t)
	u := createUser(t, repo, "tagupd@example.com")
	other := createUser(t, repo, "other@example.com")
	tag, err := repo.Tags.GetOrCreate(context.Background(), u.ID, "After Dinner")
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	h := NewTagHandler(repo, nopLogger())
	id := idStr(tag.ID)

	w := httptest.NewRecorder()
	h.Update(w, newRequest(http.MethodPatch, "/", `{"name":"Dessert"}`, u.ID, id))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", w.Code, w.Body.String())
	}
	var got serializers.LabelResponse
	decodeBody(t, w, &got)
	if got.Name != "Dessert" || got.ID != tag.ID {
		t.Fatalf("unexpected tag %+v", got)
	}

	w = httptest.NewRecorder()
	h.Update(w, newRequest(http.MethodPatch, "/", `{}`, u.ID, id))
	if w.Code != http.StatusOK {
		t.Fatalf("empty patch: expected 200 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Update(w, newRequest(http.MethodPut, "/", `{"name":""}`, u.ID, id))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank name: expected 400 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Get(w, newRequest(http.MethodGet, "/", "", other.ID, id))
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-user get: expected 404 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Delete(w, newRequest(http.MethodDelete, "/", "", other.ID, id))
	if w.Code != http.StatusNotFound {
		t.Fatalf("cross-user delete: expected 404 got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Delete(w, newRequest(http.MethodDelete, "/", "", u.ID, id))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", w.Code)
	}
	tags, _ := repo.Tags.List(context.Background(), u.ID)
	if len(tags) != 0 {
		t.Fatalf("tag not deleted: %+v", tags)
	}
}

func TestIngredientList(t *testing.T) {
	repo := setupRepo(t)
	u := createUser(t, repo, "ing@example.com")
	other := createUser(t, repo, "other@example.com")
	ctx := context.Background()
	for _, name := range []string{"Kale", "Vanilla"} {
		if _, err := repo.Ingredients.GetOrCreate(ctx, u.ID, name); err != nil {
			t.Fatalf("ingredient: %v", err)
		}
	}
	if _, err := repo.Ingredients.GetOrCreate(ctx, other.ID, "Salt"); err != nil {
		t.Fatalf("ingredient: %v", err)
	}
	h := NewIngredientHandler(repo, nopLogger())

	w := httptest.NewRecorder()
	h.List(w, newRequest(http.MethodGet, "/recipe/ingredients/", "", u.ID, ""))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var items []serializers.LabelResponse
	decodeBody(t, w, &items)
	if len(items) != 2 || items[0].Name != "Vanilla" || items[1].Name != "Kale" {
		t.Fatalf("unexpected ingredients %+v", items)
	}
}
