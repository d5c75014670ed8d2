package handler

import (
	"net/http"

	"github.com/dukerupert/schompf/internal/store"
	"github.com/dukerupert/schompf/internal/websocket"
)

type CategoryHandler struct {
	Deps
	categories *store.CategoryStore
}

func NewCategoryHandler(deps Deps, cs *store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{Deps: deps, categories: cs}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context(), r.URL.Query().Get("vendorId"))
	if err != nil {
		h.writeError(w, r, err, "failed to list categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "failed to get category")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req store.CategoryInput
	if !h.decode(w, r, &req) {
		return
	}
	category, err := h.categories.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, "failed to create category")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityCategory, "created", category.ID, nil))
	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req store.CategoryInput
	if !h.decode(w, r, &req) {
		return
	}
	category, err := h.categories.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, r, err, "failed to update category")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityCategory, "updated", category.ID, nil))
	writeJSON(w, http.StatusOK, category)
}

type reorderRequest struct {
	VendorID    string   `json:"vendorId" validate:"required"`
	CategoryIDs []string `json:"categoryIds" validate:"required"`
}

func (h *CategoryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !h.decode(w, r, &req) {
		return
	}
	categories, err := h.categories.Reorder(r.Context(), req.VendorID, req.CategoryIDs)
	if err != nil {
		h.writeError(w, r, err, "failed to reorder categories")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityCategory, "reordered", "", map[string]any{"vendorId": req.VendorID}))
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.categories.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "failed to delete category")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityCategory, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
