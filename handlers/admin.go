// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"crypto/hmac"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gymkompaniet/code-hunt/cliparse"
	"github.com/gymkompaniet/code-hunt/middleware"
	"github.com/gymkompaniet/code-hunt/models"
)

// ResetKeyHeader carries the admin reset secret.
const ResetKeyHeader = "X-Reset-Key"

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// Reset handles POST /api/admin/reset
// Outside test mode the endpoint pretends not to exist.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.TestMode {
		middleware.Reject(w, http.StatusNotFound, models.ReasonNotFound)
		return
	}

	key := r.Header.Get(ResetKeyHeader)
	if key == "" || !hmac.Equal([]byte(key), []byte(h.cfg.AdminResetKey)) {
		middleware.Reject(w, http.StatusUnauthorized, models.ReasonUnauthorized)
		return
	}

	if err := ResetContest(h.db); err != nil {
		slog.Error("admin reset failed", "error", err)
		middleware.Reject(w, http.StatusInternalServerError, models.ReasonServerError)
		return
	}

	slog.Info("contest reset")

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{OK: true, Reset: true})
}
