package handler

import (
	"errors"
	"net/http"

	"github.com/dukerupert/schompf/internal/backup"
	"github.com/dukerupert/schompf/internal/websocket"
)

type BackupHandler struct {
	Deps
	manager *backup.Manager
}

func NewBackupHandler(deps Deps, mgr *backup.Manager) *BackupHandler {
	return &BackupHandler{Deps: deps, manager: mgr}
}

func (h *BackupHandler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, backup.ErrDisabled) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	h.writeError(w, r, err, msg)
}

func (h *BackupHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.Status())
}

func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.manager.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "failed to list backups")
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	info, err := h.manager.RunNow(r.Context())
	if err != nil {
		h.fail(w, r, err, "backup failed")
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

type restoreRequest struct {
	Key string `json:"key" validate:"required"`
}

func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.manager.Restore(r.Context(), req.Key); err != nil {
		h.fail(w, r, err, "restore failed")
		return
	}
	h.broadcast(websocket.NewMessage(websocket.EntityDocument, "restored", "", map[string]any{"key": req.Key}))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
