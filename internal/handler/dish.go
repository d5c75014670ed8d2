package handler

import (
	"net/http"

	"github.com/dukerupert/schompf/internal/model"
	"github.com/dukerupert/schompf/internal/store"
	"github.com/dukerupert/schompf/internal/websocket"
)

type DishHandler struct {
	Deps
	dishes *store.DishStore
}

func NewDishHandler(deps Deps, ds *store.DishStore) *DishHandler {
	return &DishHandler{Deps: deps, dishes: ds}
}

func (h *DishHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dishes, err := h.dishes.List(r.Context(), store.DishFilter{
		Search: q.Get("search"),
		Type:   model.DishType(q.Get("type")),
	})
	if err != nil {
		h.writeError(w, r, err, "failed to list dishes")
		return
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *DishHandler) Get(w http.ResponseWriter, r *http.Request) {
	dish, err := h.dishes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "failed to get dish")
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *DishHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req store.DishInput
	if !h.decode(w, r, &req) {
		return
	}
	dish, err := h.dishes.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, "failed to create dish")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityDish, "created", dish.ID, nil))
	writeJSON(w, http.StatusCreated, dish)
}

func (h *DishHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req store.DishInput
	if !h.decode(w, r, &req) {
		return
	}
	dish, err := h.dishes.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, r, err, "failed to update dish")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityDish, "updated", dish.ID, nil))
	writeJSON(w, http.StatusOK, dish)
}

func (h *DishHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.dishes.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "failed to delete dish")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityDish, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
