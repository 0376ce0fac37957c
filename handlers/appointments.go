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

type AppointmentHandler struct {
	st *store.Store
}

func NewAppointmentHandler(st *store.Store) *AppointmentHandler {
	return &AppointmentHandler{st: st}
}

// List handles GET /appointments, optionally filtered with ?status=
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		out any
		err error
	)
	status := r.URL.Query().Get("status")
	switch {
	case status != "":
		out, err = h.st.ListAppointmentsByStatus(r.Context(), status)
	case rawRequested(r):
		out, err = h.st.ListAppointments(r.Context())
	default:
		out, err = h.st.ListAppointmentListings(r.Context())
	}
	if err != nil {
		writeStoreError(w, r, "list appointments", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// Create handles POST /appointments. status defaults to pending.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Appointment
	if !parseBody(w, r, &req) {
		return
	}

	appt, err := h.st.CreateAppointment(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create appointment", err)
		return
	}

	slog.Info("appointment created",
		"appointment_id", appt.AppointmentID,
		"caregiver_user_id", appt.CaregiverUserID,
		"member_user_id", appt.MemberUserID,
	)
	middleware.JSONResponse(w, http.StatusCreated, appt)
}

// Get handles GET /appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	appt, err := h.st.GetAppointment(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "get appointment", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, appt)
}

// Update handles PUT /appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.Appointment
	if !parseBody(w, r, &req) {
		return
	}

	appt, err := h.st.UpdateAppointment(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, "update appointment", err)
		return
	}

	slog.Info("appointment updated", "appointment_id", id, "status", appt.Status)
	middleware.JSONResponse(w, http.StatusOK, appt)
}

// Delete handles DELETE /appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.st.DeleteAppointment(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "delete appointment", err)
		return
	}

	slog.Info("appointment deleted", "appointment_id", id)
	writeDeleted(w, deleted)
}
