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

// CaregiverHandler serves /caregivers
type CaregiverHandler struct {
	st *store.Store
}

func NewCaregiverHandler(st *store.Store) *CaregiverHandler {
	return &CaregiverHandler{st: st}
}

// List handles GET /caregivers (?raw=true skips the user join)
func (h *CaregiverHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		out any
		err error
	)
	if rawRequested(r) {
		out, err = h.st.ListCaregivers(r.Context())
	} else {
		out, err = h.st.ListCaregiverListings(r.Context())
	}
	if err != nil {
		writeStoreError(w, r, "list caregivers", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// Create handles POST /caregivers
func (h *CaregiverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Caregiver
	if !parseBody(w, r, &req) {
		return
	}

	c, err := h.st.CreateCaregiver(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create caregiver", err)
		return
	}

	slog.Info("caregiver created", "caregiver_user_id", c.CaregiverUserID, "caregiving_type", c.CaregivingType)
	middleware.JSONResponse(w, http.StatusCreated, c)
}

// Get handles GET /caregivers/{id}
func (h *CaregiverHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.st.GetCaregiver(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "get caregiver", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// Update handles PUT /caregivers/{id}
func (h *CaregiverHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.Caregiver
	if !parseBody(w, r, &req) {
		return
	}

	c, err := h.st.UpdateCaregiver(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, "update caregiver", err)
		return
	}

	slog.Info("caregiver updated", "caregiver_user_id", id)
	middleware.JSONResponse(w, http.StatusOK, c)
}

// Delete handles DELETE /caregivers/{id}
func (h *CaregiverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.st.DeleteCaregiver(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "delete caregiver", err)
		return
	}

	slog.Info("caregiver deleted", "caregiver_user_id", id)
	writeDeleted(w, deleted)
}

// MemberHandler serves /members
type MemberHandler struct {
	st *store.Store
}

func NewMemberHandler(st *store.Store) *MemberHandler {
	return &MemberHandler{st: st}
}

// List handles GET /members (?raw=true skips the user join)
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		out any
		err error
	)
	if rawRequested(r) {
		out, err = h.st.ListMembers(r.Context())
	} else {
		out, err = h.st.ListMemberListings(r.Context())
	}
	if err != nil {
		writeStoreError(w, r, "list members", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// Create handles POST /members
func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Member
	if !parseBody(w, r, &req) {
		return
	}

	m, err := h.st.CreateMember(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create member", err)
		return
	}

	slog.Info("member created", "member_user_id", m.MemberUserID)
	middleware.JSONResponse(w, http.StatusCreated, m)
}

// Get handles GET /members/{id}
func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	m, err := h.st.GetMember(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "get member", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, m)
}

// Update handles PUT /members/{id}
func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.Member
	if !parseBody(w, r, &req) {
		return
	}

	m, err := h.st.UpdateMember(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, "update member", err)
		return
	}

	slog.Info("member updated", "member_user_id", id)
	middleware.JSONResponse(w, http.StatusOK, m)
}

// Delete handles DELETE /members/{id}, cascading to the member's jobs,
// their applications, appointments and address.
func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.st.DeleteMember(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "delete member", err)
		return
	}

	slog.Info("member deleted", "member_user_id", id, "steps", len(deleted))
	writeDeleted(w, deleted)
}

// AddressHandler serves /addresses, keyed by member_user_id
type AddressHandler struct {
	st *store.Store
}

func NewAddressHandler(st *store.Store) *AddressHandler {
	return &AddressHandler{st: st}
}

// List handles GET /addresses (?raw=true skips the member join)
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		out any
		err error
	)
	if rawRequested(r) {
		out, err = h.st.ListAddresses(r.Context())
	} else {
		out, err = h.st.ListAddressListings(r.Context())
	}
	if err != nil {
		writeStoreError(w, r, "list addresses", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// Create handles POST /addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Address
	if !parseBody(w, r, &req) {
		return
	}

	a, err := h.st.CreateAddress(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create address", err)
		return
	}

	slog.Info("address created", "member_user_id", a.MemberUserID)
	middleware.JSONResponse(w, http.StatusCreated, a)
}

// Get handles GET /addresses/{id}
func (h *AddressHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	a, err := h.st.GetAddress(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "get address", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, a)
}

// Update handles PUT /addresses/{id}
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.Address
	if !parseBody(w, r, &req) {
		return
	}

	a, err := h.st.UpdateAddress(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, "update address", err)
		return
	}

	slog.Info("address updated", "member_user_id", id)
	middleware.JSONResponse(w, http.StatusOK, a)
}

// Delete handles DELETE /addresses/{id}
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.st.DeleteAddress(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "delete address", err)
		return
	}

	slog.Info("address deleted", "member_user_id", id)
	writeDeleted(w, deleted)
}
