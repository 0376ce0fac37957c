// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /jobs", middleware.WithLogging(jobHandler.List))

Each request gets an id, taken from X-Request-ID or generated as a UUID.
The id is echoed in the response header, stored in the request context
(see RequestID) and logged with request start (method, path, remote) and
completion (status, duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var job models.Job
	if err := middleware.ParseJSONBody(r, &job); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

GetClientIP returns the original client IP (X-Forwarded-For, X-Real-IP,
then RemoteAddr). It is the "remote" field of request logs.
*/
package middleware
