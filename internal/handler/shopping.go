package handler

import (
	"net/http"

	"github.com/dukerupert/schompf/internal/model"
	"github.com/dukerupert/schompf/internal/shopping"
	"github.com/dukerupert/schompf/internal/websocket"
)

type ShoppingHandler struct {
	Deps
	service *shopping.Service
}

func NewShoppingHandler(deps Deps, svc *shopping.Service) *ShoppingHandler {
	return &ShoppingHandler{Deps: deps, service: svc}
}

// Current responds with null when there is no list or it has no items.
func (h *ShoppingHandler) Current(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Current(r.Context())
	if err != nil {
		h.writeError(w, r, err, "failed to load shopping list")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type generateRequest struct {
	FromDate     string  `json:"fromDate" validate:"required,datetime=2006-01-02"`
	ToDate       string  `json:"toDate" validate:"required,datetime=2006-01-02"`
	ShoppingDate *string `json:"shoppingDate" validate:"omitempty,datetime=2006-01-02"`
}

func (h *ShoppingHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !h.decode(w, r, &req) {
		return
	}
	list, err := h.service.Generate(r.Context(), shopping.GenerateRequest{
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		ShoppingDate: req.ShoppingDate,
	})
	if err != nil {
		h.writeError(w, r, err, "failed to generate shopping list")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityShoppingList, "generated", list.ID, map[string]any{"items": len(list.Items)}))
	writeJSON(w, http.StatusOK, list)
}

type addItemRequest struct {
	ProductName string                 `json:"productName" validate:"required,max=200"`
	Amount      *float64               `json:"amount" validate:"omitempty,gt=0"`
	Unit        *string                `json:"unit" validate:"omitempty,max=50"`
	CategoryID  model.Nullable[string] `json:"categoryId"`
}

func (h *ShoppingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.service.AddManualItem(r.Context(), shopping.ManualItem{
		ProductName: req.ProductName,
		Amount:      req.Amount,
		Unit:        req.Unit,
		CategorySet: req.CategoryID.Set,
		CategoryID:  req.CategoryID.Value,
	})
	if err != nil {
		h.writeError(w, r, err, "failed to add item")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityShoppingItem, "added", item.ID, nil))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ShoppingHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.ToggleItemChecked(r.Context(), r.PathValue("itemId"))
	if err != nil {
		h.writeError(w, r, err, "failed to toggle item")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityShoppingItem, "toggled", item.ID, map[string]any{"checked": item.Checked}))
	writeJSON(w, http.StatusOK, item)
}

func (h *ShoppingHandler) RemoveChecked(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.RemoveCheckedItems(r.Context())
	if err != nil {
		h.writeError(w, r, err, "failed to remove checked items")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityShoppingList, "checked_removed", "", map[string]any{"removed": removed}))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "removed": removed})
}

type updateItemRequest struct {
	Amount     *float64               `json:"amount" validate:"omitempty,gte=0"`
	Unit       *string                `json:"unit" validate:"omitempty,max=50"`
	CategoryID model.Nullable[string] `json:"categoryId"`
}

func (h *ShoppingHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.service.UpdateItem(r.Context(), r.PathValue("itemId"), shopping.ItemUpdate{
		Amount:      req.Amount,
		Unit:        req.Unit,
		CategorySet: req.CategoryID.Set,
		CategoryID:  req.CategoryID.Value,
	})
	if err != nil {
		h.writeError(w, r, err, "failed to update item")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityShoppingItem, "updated", item.ID, nil))
	writeJSON(w, http.StatusOK, item)
}

func (h *ShoppingHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("itemId")
	soft, err := h.service.DeleteItem(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err, "failed to delete item")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityShoppingItem, "deleted", id, map[string]any{"soft": soft}))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ShoppingHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearList(r.Context()); err != nil {
		h.writeError(w, r, err, "failed to clear shopping list")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityShoppingList, "cleared", "", nil))
	w.WriteHeader(http.StatusNoContent)
}
