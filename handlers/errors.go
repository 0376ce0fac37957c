// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/caregivers/middleware"
	"github.com/danielhkuo/caregivers/models"
	"github.com/danielhkuo/caregivers/store"
)

// statusFor maps a store error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyExists), errors.Is(err, store.ErrReferentialIntegrity):
		return http.StatusConflict
	case errors.Is(err, store.ErrTransientConnection):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeStoreError logs err and writes the matching error response.
// Unclassified errors are reported as a generic failure.
func writeStoreError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status := statusFor(err)
	requestID := middleware.RequestID(r.Context())

	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		slog.Error("failed to "+action, "error", err, "request_id", requestID)
	} else {
		slog.Info(action+" rejected", "error", err, "status", status, "request_id", requestID)
	}

	if status == http.StatusInternalServerError {
		middleware.ErrorResponse(w, status, "Failed to "+action)
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}

// pathID parses a positive integer path parameter.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// parseBody decodes the JSON body into v, writing 400 on failure.
func parseBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}

func rawRequested(r *http.Request) bool {
	raw, _ := strconv.ParseBool(r.URL.Query().Get("raw"))
	return raw
}

func writeDeleted(w http.ResponseWriter, deleted []models.DeletedRows) {
	middleware.JSONResponse(w, http.StatusOK, models.DeleteResponse{Deleted: deleted})
}
