package handler

import (
	"net/http"

	"github.com/dukerupert/schompf/internal/store"
	"github.com/dukerupert/schompf/internal/websocket"
)

type SettingsHandler struct {
	Deps
	settings *store.SettingsStore
}

func NewSettingsHandler(deps Deps, ss *store.SettingsStore) *SettingsHandler {
	return &SettingsHandler{Deps: deps, settings: ss}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.writeError(w, r, err, "failed to get settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req store.SettingsInput
	if !h.decode(w, r, &req) {
		return
	}
	settings, err := h.settings.Update(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err, "failed to update settings")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntitySettings, "updated", "", nil))
	writeJSON(w, http.StatusOK, settings)
}
