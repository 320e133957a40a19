// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/status", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Device Identity

WithDeviceID resolves the requester's device id from the X-Device-ID
header or the device_id cookie, minting a fresh id on first contact,
and makes it available via the request context:

	handler := middleware.WithDeviceID(cfg, h.EnterCode)
	...
	deviceID := middleware.DeviceID(r)

New ids are issued as an http-only cookie whose Secure, SameSite and
Max-Age attributes come from the configuration.

# CORS Middleware

CORS enforces the configured origin allowlist:

	server := http.Server{
		Handler: middleware.CORS(cfg, mux),
	}

An empty allowlist disables CORS entirely; a "*" allowlist never allows
credentials.

# JSON Helpers

Write JSON responses and the {ok:false, reason} error envelope:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.Reject(w, http.StatusConflict, models.ReasonAlreadyWon)

Parse JSON request bodies:

	var req models.EnterCodeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Reject(w, http.StatusBadRequest, models.ReasonInvalidFormat)
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used as one of the actor fingerprint signals.
*/
package middleware
