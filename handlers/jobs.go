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

type JobHandler struct {
	st *store.Store
}

func NewJobHandler(st *store.Store) *JobHandler {
	return &JobHandler{st: st}
}

// List handles GET /jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		out any
		err error
	)
	if rawRequested(r) {
		out, err = h.st.ListJobs(r.Context())
	} else {
		out, err = h.st.ListJobListings(r.Context())
	}
	if err != nil {
		writeStoreError(w, r, "list jobs", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// Create handles POST /jobs. date_posted defaults to today.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.Job
	if !parseBody(w, r, &req) {
		return
	}

	job, err := h.st.CreateJob(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create job", err)
		return
	}

	slog.Info("job created", "job_id", job.JobID, "member_user_id", job.MemberUserID)
	middleware.JSONResponse(w, http.StatusCreated, job)
}

// Get handles GET /jobs/{id}
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	job, err := h.st.GetJob(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "get job", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, job)
}

// Update handles PUT /jobs/{id}
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.Job
	if !parseBody(w, r, &req) {
		return
	}

	job, err := h.st.UpdateJob(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, r, "update job", err)
		return
	}

	slog.Info("job updated", "job_id", id)
	middleware.JSONResponse(w, http.StatusOK, job)
}

// Delete handles DELETE /jobs/{id}, removing applications first
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.st.DeleteJob(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "delete job", err)
		return
	}

	slog.Info("job deleted", "job_id", id)
	writeDeleted(w, deleted)
}

type JobApplicationHandler struct {
	st *store.Store
}

func NewJobApplicationHandler(st *store.Store) *JobApplicationHandler {
	return &JobApplicationHandler{st: st}
}

func applicationKey(w http.ResponseWriter, r *http.Request) (caregiverID, jobID int64, ok bool) {
	if caregiverID, ok = pathID(w, r, "caregiver_id"); !ok {
		return 0, 0, false
	}
	if jobID, ok = pathID(w, r, "job_id"); !ok {
		return 0, 0, false
	}
	return caregiverID, jobID, true
}

// List handles GET /job-applications
func (h *JobApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		out any
		err error
	)
	if rawRequested(r) {
		out, err = h.st.ListJobApplications(r.Context())
	} else {
		out, err = h.st.ListJobApplicationListings(r.Context())
	}
	if err != nil {
		writeStoreError(w, r, "list job applications", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// Create handles POST /job-applications
func (h *JobApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.JobApplication
	if !parseBody(w, r, &req) {
		return
	}

	app, err := h.st.CreateJobApplication(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, "create job application", err)
		return
	}

	slog.Info("job application created", "caregiver_user_id", app.CaregiverUserID, "job_id", app.JobID)
	middleware.JSONResponse(w, http.StatusCreated, app)
}

// Get handles GET /job-applications/{caregiver_id}/{job_id}
func (h *JobApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	caregiverID, jobID, ok := applicationKey(w, r)
	if !ok {
		return
	}

	app, err := h.st.GetJobApplication(r.Context(), caregiverID, jobID)
	if err != nil {
		writeStoreError(w, r, "get job application", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, app)
}

// Update handles PUT /job-applications/{caregiver_id}/{job_id}
func (h *JobApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	caregiverID, jobID, ok := applicationKey(w, r)
	if !ok {
		return
	}
	var req models.JobApplication
	if !parseBody(w, r, &req) {
		return
	}

	app, err := h.st.UpdateJobApplication(r.Context(), caregiverID, jobID, req)
	if err != nil {
		writeStoreError(w, r, "update job application", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, app)
}

// Delete handles DELETE /job-applications/{caregiver_id}/{job_id}
func (h *JobApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caregiverID, jobID, ok := applicationKey(w, r)
	if !ok {
		return
	}

	deleted, err := h.st.DeleteJobApplication(r.Context(), caregiverID, jobID)
	if err != nil {
		writeStoreError(w, r, "delete job application", err)
		return
	}

	slog.Info("job application deleted", "caregiver_user_id", caregiverID, "job_id", jobID)
	writeDeleted(w, deleted)
}
