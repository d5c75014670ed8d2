package handler

import (
	"context"
	"net/http"

	"github.com/dukerupert/schompf/internal/model"
	"github.com/dukerupert/schompf/internal/store"
	"github.com/dukerupert/schompf/internal/websocket"
)

type MealHandler struct {
	Deps
	meals *store.MealStore
}

func NewMealHandler(deps Deps, ms *store.MealStore) *MealHandler {
	return &MealHandler{Deps: deps, meals: ms}
}

// List accepts optional from and to query parameters (YYYY-MM-DD, inclusive).
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	meals, err := h.meals.List(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.writeError(w, r, err, "failed to list meals")
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

func (h *MealHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	meals, err := h.meals.ListByDate(r.Context(), r.PathValue("date"))
	if err != nil {
		h.writeError(w, r, err, "failed to list meals")
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	meal, err := h.meals.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "failed to get meal")
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req store.MealInput
	if !h.decode(w, r, &req) {
		return
	}
	meal, err := h.meals.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, "failed to create meal")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityMeal, "created", meal.ID, nil))
	writeJSON(w, http.StatusCreated, meal)
}

// Entries are not validated here: the store skips invalid ones so one bad
// entry does not drop the rest of the batch.
type bulkMealRequest struct {
	Meals []store.MealInput `json:"meals" validate:"required"`
}

func (h *MealHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req bulkMealRequest
	if !h.decode(w, r, &req) {
		return
	}
	meals, err := h.meals.BulkCreate(r.Context(), req.Meals)
	if err != nil {
		h.writeError(w, r, err, "failed to create meals")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityMeal, "created", "", map[string]any{"count": len(meals)}))
	writeJSON(w, http.StatusCreated, meals)
}

func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req store.MealInput
	if !h.decode(w, r, &req) {
		return
	}
	meal, err := h.meals.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, r, err, "failed to update meal")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityMeal, "updated", meal.ID, nil))
	writeJSON(w, http.StatusOK, meal)
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.meals.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "failed to delete meal")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityMeal, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type commitRequest struct {
	MealIDs []string `json:"mealIds" validate:"required,min=1"`
}

func (h *MealHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req commitRequest
	if !h.decode(w, r, &req) {
		return
	}
	meals, err := h.meals.Commit(r.Context(), req.MealIDs)
	if err != nil {
		h.writeError(w, r, err, "failed to commit meals")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityMeal, "committed", "", map[string]any{"count": len(meals)}))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "updatedMeals": meals})
}

func (h *MealHandler) MarkPrepared(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.meals.MarkPrepared, "prepared")
}

func (h *MealHandler) ResetToCommitted(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.meals.ResetToCommitted, "reset")
}

func (h *MealHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) (*model.Meal, error), action string) {
	meal, err := fn(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "failed to update meal status")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityMeal, action, meal.ID, map[string]any{"status": meal.Status}))
	writeJSON(w, http.StatusOK, meal)
}
