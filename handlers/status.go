// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gymkompaniet/code-hunt/auth"
	"github.com/gymkompaniet/code-hunt/cliparse"
	"github.com/gymkompaniet/code-hunt/middleware"
	"github.com/gymkompaniet/code-hunt/models"
)

type StatusHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewStatusHandler(db *sql.DB, cfg cliparse.Config) *StatusHandler {
	return &StatusHandler{db: db, cfg: cfg}
}

// Status handles GET /api/status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	closed, err := ContestClosed(h.db)
	if err != nil {
		slog.Error("failed to read contest status", "error", err)
		middleware.Reject(w, http.StatusInternalServerError, models.ReasonServerError)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{OK: true, Closed: closed})
}

// actorFromRequest derives the caller's actor hash from the client IP,
// user agent and the device id resolved by the device middleware.
func actorFromRequest(r *http.Request, cfg cliparse.Config) string {
	return auth.ActorHash(
		middleware.GetClientIP(r),
		r.UserAgent(),
		middleware.DeviceID(r),
		cfg.ActorPepper,
	)
}
