// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gymkompaniet/code-hunt/cliparse"
	"github.com/gymkompaniet/code-hunt/middleware"
	"github.com/gymkompaniet/code-hunt/models"
)

type CodeHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCodeHandler(db *sql.DB, cfg cliparse.Config) *CodeHandler {
	return &CodeHandler{db: db, cfg: cfg}
}

// EnterCode handles POST /api/enter-code
func (h *CodeHandler) EnterCode(w http.ResponseWriter, r *http.Request) {
	var req models.EnterCodeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Reject(w, http.StatusBadRequest, models.ReasonInvalidFormat)
		return
	}

	// Shape check happens before any datastore work.
	code := strings.TrimSpace(req.Code)
	if !h.cfg.CodeRE.MatchString(code) {
		middleware.Reject(w, http.StatusBadRequest, models.ReasonInvalidFormat)
		return
	}

	actorHash := actorFromRequest(r, h.cfg)

	outcome, err := EnterCode(h.db, h.cfg, actorHash, code, time.Now().UTC())
	if err != nil {
		slog.Error("enter-code transaction failed", "error", err)
		middleware.Reject(w, http.StatusInternalServerError, models.ReasonServerError)
		return
	}

	switch outcome.Kind {
	case models.EnterConflict:
		middleware.Reject(w, http.StatusConflict, models.ReasonAlreadyWon)

	case models.EnterBlocked:
		middleware.JSONResponse(w, http.StatusTooManyRequests, models.BlockedResponse{
			OK:           false,
			Reason:       models.ReasonBlocked,
			BlockedUntil: outcome.BlockedUntil.UTC().Format(time.RFC3339),
		})

	case models.EnterWrongCode:
		middleware.JSONResponse(w, http.StatusUnauthorized, models.WrongCodeResponse{
			OK:        false,
			Reason:    models.ReasonWrongCode,
			Remaining: outcome.Remaining,
		})

	case models.EnterWon:
		slog.Info("contest won", "actor_hash", actorHash)
		middleware.JSONResponse(w, http.StatusOK, models.EnterCodeResponse{
			OK:         true,
			ClaimToken: outcome.ClaimToken,
		})
	}
}
