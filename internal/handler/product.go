package handler

import (
	"net/http"

	"github.com/dukerupert/schompf/internal/store"
	"github.com/dukerupert/schompf/internal/websocket"
)

type ProductHandler struct {
	Deps
	products *store.ProductStore
}

func NewProductHandler(deps Deps, ps *store.ProductStore) *ProductHandler {
	return &ProductHandler{Deps: deps, products: ps}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.products.List(r.Context(), store.ProductFilter{
		CategoryID: q.Get("categoryId"),
		Search:     q.Get("search"),
	})
	if err != nil {
		h.writeError(w, r, err, "failed to list products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "failed to get product")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req store.ProductInput
	if !h.decode(w, r, &req) {
		return
	}
	product, err := h.products.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, "failed to create product")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityProduct, "created", product.ID, nil))
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req store.ProductInput
	if !h.decode(w, r, &req) {
		return
	}
	product, err := h.products.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, r, err, "failed to update product")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityProduct, "updated", product.ID, nil))
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.products.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "failed to delete product")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityProduct, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
