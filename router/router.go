// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/caregivers/cliparse"
	"github.com/danielhkuo/caregivers/handlers"
	"github.com/danielhkuo/caregivers/middleware"
	"github.com/danielhkuo/caregivers/store"
)

// crud is the handler set registered for one resource.
type crud interface {
	List(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func handleCRUD(mux *http.ServeMux, collection, item string, h crud) {
	mux.HandleFunc("GET "+collection, middleware.WithLogging(h.List))
	mux.HandleFunc("POST "+collection, middleware.WithLogging(h.Create))
	mux.HandleFunc("GET "+item, middleware.WithLogging(h.Get))
	mux.HandleFunc("PUT "+item, middleware.WithLogging(h.Update))
	mux.HandleFunc("DELETE "+item, middleware.WithLogging(h.Delete))
}

func NewRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(st)
	snapshotHandler := handlers.NewSnapshotHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Entities
	handleCRUD(mux, "/users", "/users/{id}", handlers.NewUserHandler(st))
	handleCRUD(mux, "/caregivers", "/caregivers/{id}", handlers.NewCaregiverHandler(st))
	handleCRUD(mux, "/members", "/members/{id}", handlers.NewMemberHandler(st))
	handleCRUD(mux, "/addresses", "/addresses/{id}", handlers.NewAddressHandler(st))
	handleCRUD(mux, "/jobs", "/jobs/{id}", handlers.NewJobHandler(st))
	handleCRUD(mux, "/job-applications", "/job-applications/{caregiver_id}/{job_id}", handlers.NewJobApplicationHandler(st))
	handleCRUD(mux, "/appointments", "/appointments/{id}", handlers.NewAppointmentHandler(st))

	// Reports (read-only)
	mux.HandleFunc("GET /reports/applicants", middleware.WithLogging(reportHandler.Applicants))
	mux.HandleFunc("GET /reports/hours", middleware.WithLogging(reportHandler.Hours))
	mux.HandleFunc("GET /reports/average-rate", middleware.WithLogging(reportHandler.AverageRate))
	mux.HandleFunc("GET /reports/above-average", middleware.WithLogging(reportHandler.AboveAverage))
	mux.HandleFunc("GET /reports/total-cost", middleware.WithLogging(reportHandler.TotalCost))
	mux.HandleFunc("GET /reports/job-applications", middleware.WithLogging(reportHandler.JobApplications))
	mux.HandleFunc("GET /reports/jobs", middleware.WithLogging(reportHandler.Jobs))
	mux.HandleFunc("GET /reports/members", middleware.WithLogging(reportHandler.Members))
	mux.HandleFunc("GET /reports/work-hours", middleware.WithLogging(reportHandler.WorkHours))

	// Bulk read-all / replace-all
	mux.HandleFunc("GET /snapshot", middleware.WithLogging(snapshotHandler.GetAll))
	mux.HandleFunc("PUT /snapshot", middleware.WithLogging(snapshotHandler.ReplaceAll))
	mux.HandleFunc("GET /snapshot/{table}", middleware.WithLogging(snapshotHandler.GetTable))
	mux.HandleFunc("PUT /snapshot/{table}", middleware.WithLogging(snapshotHandler.ReplaceTable))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("caregivers API v1 (" + string(cfg.Dialect()) + ")"))
	})

	return mux
}
