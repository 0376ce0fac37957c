// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/caregivers/middleware"
	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/store"
)

// DefaultReportStatus is used by status-scoped reports when ?status= is absent.
const DefaultReportStatus = models.StatusAccepted

// ReportHandler serves the read-only /reports endpoints.
type ReportHandler struct {
	st *store.Store
}

func NewReportHandler(st *store.Store) *ReportHandler {
	return &ReportHandler{st: st}
}

func reportStatus(r *http.Request) string {
	if s := r.URL.Query().Get("status"); s != "" {
		return s
	}
	return DefaultReportStatus
}

// Applicants handles GET /reports/applicants
func (h *ReportHandler) Applicants(w http.ResponseWriter, r *http.Request) {
	counts, err := h.st.ApplicantCounts(r.Context())
	if err != nil {
		writeStoreError(w, r, "count applicants", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, counts)
}

// Hours handles GET /reports/hours?status=
func (h *ReportHandler) Hours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.st.HoursByCaregiver(r.Context(), reportStatus(r))
	if err != nil {
		writeStoreError(w, r, "sum caregiver hours", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, hours)
}

// AverageRate handles GET /reports/average-rate?status=. The average is
// null when no caregiver has an appointment with the status.
func (h *ReportHandler) AverageRate(w http.ResponseWriter, r *http.Request) {
	status := reportStatus(r)
	avg, ok, err := h.st.AverageHourlyRate(r.Context(), status)
	if err != nil {
		writeStoreError(w, r, "compute average rate", err)
		return
	}

	resp := models.AverageRateResponse{Status: status}
	if ok {
		resp.AverageHourlyRate = &avg
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// AboveAverage handles GET /reports/above-average?status=
func (h *ReportHandler) AboveAverage(w http.ResponseWriter, r *http.Request) {
	rates, err := h.st.CaregiversAboveAverage(r.Context(), reportStatus(r))
	if err != nil {
		writeStoreError(w, r, "list caregivers above average", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rates)
}

// TotalCost handles GET /reports/total-cost?status=
func (h *ReportHandler) TotalCost(w http.ResponseWriter, r *http.Request) {
	costs, err := h.st.TotalCostByCaregiver(r.Context(), reportStatus(r))
	if err != nil {
		writeStoreError(w, r, "compute total cost", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, costs)
}

// JobApplications handles GET /reports/job-applications
func (h *ReportHandler) JobApplications(w http.ResponseWriter, r *http.Request) {
	rows, err := h.st.ListJobApplicationsView(r.Context())
	if err != nil {
		writeStoreError(w, r, "read job applications view", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rows)
}

// Jobs handles GET /reports/jobs?q=
func (h *ReportHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.st.SearchJobsByRequirement(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeStoreError(w, r, "search jobs", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, jobs)
}

// Members handles GET /reports/members?type=&city=&rule=
func (h *ReportHandler) Members(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	members, err := h.st.SearchMembers(r.Context(), q.Get("type"), q.Get("city"), q.Get("rule"))
	if err != nil {
		writeStoreError(w, r, "search members", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, members)
}

// WorkHours handles GET /reports/work-hours?type=
func (h *ReportHandler) WorkHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.st.WorkHoursByCaregivingType(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeStoreError(w, r, "list work hours", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, hours)
}
