// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/caregivers/middleware"
	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/store"
)

// SnapshotHandler serves bulk read-all and replace-all. Snapshots carry
// user passwords so they can be restored as-is.
type SnapshotHandler struct {
	st *store.Store
}

func NewSnapshotHandler(st *store.Store) *SnapshotHandler {
	return &SnapshotHandler{st: st}
}

func pathTable(w http.ResponseWriter, r *http.Request) (store.Table, bool) {
	t, err := store.ParseTable(r.PathValue("table"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return t, true
}

// GetAll handles GET /snapshot
func (h *SnapshotHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	snap, err := h.st.ReadAll(r.Context())
	if err != nil {
		writeStoreError(w, r, "read snapshot", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// ReplaceAll handles PUT /snapshot
func (h *SnapshotHandler) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	var snap models.Snapshot
	if !parseBody(w, r, &snap) {
		return
	}

	if err := h.st.ReplaceAll(r.Context(), snap); err != nil {
		writeStoreError(w, r, "replace snapshot", err)
		return
	}

	slog.Info("snapshot replaced",
		"users", len(snap.Users),
		"jobs", len(snap.Jobs),
		"appointments", len(snap.Appointments),
		"request_id", middleware.RequestID(r.Context()),
	)
	h.GetAll(w, r)
}

// GetTable handles GET /snapshot/{table}
func (h *SnapshotHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	t, ok := pathTable(w, r)
	if !ok {
		return
	}

	snap, err := h.st.ReadTable(r.Context(), t)
	if err != nil {
		writeStoreError(w, r, "read "+string(t), err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// ReplaceTable handles PUT /snapshot/{table}. Only the matching field of
// the body is used.
func (h *SnapshotHandler) ReplaceTable(w http.ResponseWriter, r *http.Request) {
	t, ok := pathTable(w, r)
	if !ok {
		return
	}
	var snap models.Snapshot
	if !parseBody(w, r, &snap) {
		return
	}

	if err := h.st.ReplaceTable(r.Context(), t, snap); err != nil {
		writeStoreError(w, r, "replace "+string(t), err)
		return
	}

	slog.Info("table replaced", "table", t, "request_id", middleware.RequestID(r.Context()))
	out, err := h.st.ReadTable(r.Context(), t)
	if err != nil {
		writeStoreError(w, r, "read "+string(t), err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}
