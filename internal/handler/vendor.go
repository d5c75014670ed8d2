package handler

import (
	"net/http"

	"github.com/dukerupert/schompf/internal/store"
	"github.com/dukerupert/schompf/internal/websocket"
)

type VendorHandler struct {
	Deps
	vendors *store.VendorStore
}

func NewVendorHandler(deps Deps, vs *store.VendorStore) *VendorHandler {
	return &VendorHandler{Deps: deps, vendors: vs}
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.vendors.List(r.Context())
	if err != nil {
		h.writeError(w, r, err, "failed to list vendors")
		return
	}
	writeJSON(w, http.StatusOK, vendors)
}

func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.vendors.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err, "failed to get vendor")
		return
	}
	writeJSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req store.VendorInput
	if !h.decode(w, r, &req) {
		return
	}
	vendor, err := h.vendors.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, "failed to create vendor")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityVendor, "created", vendor.ID, nil))
	writeJSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req store.VendorInput
	if !h.decode(w, r, &req) {
		return
	}
	vendor, err := h.vendors.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeError(w, r, err, "failed to update vendor")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityVendor, "updated", vendor.ID, nil))
	writeJSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.vendors.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err, "failed to delete vendor")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityVendor, "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
