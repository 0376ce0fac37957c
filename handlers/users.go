// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/caregivers/middleware"
	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/store"
)

type UserHandler struct {
	st *store.Store
}

func NewUserHandler(st *store.Store) *UserHandler {
	return &UserHandler{st: st}
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.st.ListUsers(r.Context())
	if err != nil {
		writeStoreError(w, r, "list users", err)
		return
	}
	for i := range users {
		users[i] = users[i].Redacted()
	}
	middleware.JSONResponse(w, http.StatusOK, users)
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.User
	if !parseBody(w, r, &req) {
		return
	}

	user, err := h.st.CreateUser(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create user", err)
		return
	}

	slog.Info("user created", "user_id", user.UserID)
	middleware.JSONResponse(w, http.StatusCreated, user.Redacted())
}

// Get handles GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.st.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "get user", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user.Redacted())
}

// Update handles PUT /users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.User
	if !parseBody(w, r, &req) {
		return
	}

	user, err := h.st.UpdateUser(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, "update user", err)
		return
	}

	slog.Info("user updated", "user_id", id)
	middleware.JSONResponse(w, http.StatusOK, user.Redacted())
}

// Delete handles DELETE /users/{id}. With ?cascade=true every dependent
// row goes too; otherwise a user that is still a caregiver or member is refused.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cascade, _ := strconv.ParseBool(r.URL.Query().Get("cascade"))

	var (
		deleted []models.DeletedRows
		err     error
	)
	if cascade {
		deleted, err = h.st.PurgeUser(r.Context(), id)
	} else {
		deleted, err = h.st.DeleteUser(r.Context(), id)
	}
	if err != nil {
		writeStoreError(w, r, "delete user", err)
		return
	}

	slog.Info("user deleted", "user_id", id, "cascade", cascade)
	writeDeleted(w, deleted)
}
