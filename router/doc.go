// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the code-hunt API.

# Routes

	GET  /health             → liveness check
	GET  /api/status         → contest open/closed
	POST /api/enter-code     → code submission
	POST /api/submit-contact → claim token redemption
	POST /api/admin/reset    → test-mode reset

# Middleware Stack

Public contest routes run through WithLogging and WithDeviceID; the
whole mux is wrapped by the CORS middleware so preflight requests are
answered for every route. Routing uses Go 1.22+ method patterns on the
standard ServeMux.
*/
package router
