// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/gymkompaniet/code-hunt/cliparse"
	"github.com/gymkompaniet/code-hunt/handlers"
	"github.com/gymkompaniet/code-hunt/mailer"
	"github.com/gymkompaniet/code-hunt/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, mail mailer.Sender) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	statusHandler := handlers.NewStatusHandler(db, cfg)
	codeHandler := handlers.NewCodeHandler(db, cfg)
	contactHandler := handlers.NewContactHandler(db, cfg, mail)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Contest operations (public). Each resolves the caller's device
	// identity so the cookie is issued on first contact.
	mux.HandleFunc("GET /api/status", middleware.WithLogging(middleware.WithDeviceID(cfg, statusHandler.Status)))
	mux.HandleFunc("POST /api/enter-code", middleware.WithLogging(middleware.WithDeviceID(cfg, codeHandler.EnterCode)))
	mux.HandleFunc("POST /api/submit-contact", middleware.WithLogging(middleware.WithDeviceID(cfg, contactHandler.SubmitContact)))

	// Test/ops only; hidden outside TEST_MODE
	mux.HandleFunc("POST /api/admin/reset", middleware.WithLogging(adminHandler.Reset))

	return middleware.CORS(cfg, mux)
}
