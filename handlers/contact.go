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
	"github.com/gymkompaniet/code-hunt/mailer"
	"github.com/gymkompaniet/code-hunt/middleware"
	"github.com/gymkompaniet/code-hunt/models"
)

type ContactHandler struct {
	db   *sql.DB
	cfg  cliparse.Config
	mail mailer.Sender // nil when SMTP is not configured
}

func NewContactHandler(db *sql.DB, cfg cliparse.Config, mail mailer.Sender) *ContactHandler {
	return &ContactHandler{db: db, cfg: cfg, mail: mail}
}

// SubmitContact handles POST /api/submit-contact
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.Reject(w, http.StatusBadRequest, models.ReasonInvalidPayload)
		return
	}

	req.ClaimToken = strings.TrimSpace(req.ClaimToken)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.ClaimToken == "" || req.Name == "" || req.Email == "" {
		middleware.Reject(w, http.StatusBadRequest, models.ReasonInvalidPayload)
		return
	}

	actorHash := actorFromRequest(r, h.cfg)

	outcome, err := RedeemToken(h.db, h.cfg, actorHash, req, time.Now().UTC())
	if err != nil {
		slog.Error("submit-contact transaction failed", "error", err)
		middleware.Reject(w, http.StatusInternalServerError, models.ReasonServerError)
		return
	}

	if outcome.Kind == models.RedeemUnauthorized {
		middleware.Reject(w, http.StatusUnauthorized, models.ReasonUnauthorized)
		return
	}

	// The redemption is committed; notification is best-effort and must
	// never turn the request into a failure.
	emailSent := false
	if h.mail != nil {
		err := h.mail.Send(mailer.WinnerSubject, mailer.WinnerBody(req.Name, req.Email, req.Phone))
		if err != nil {
			slog.Warn("winner notification failed", "error", err)
		} else {
			emailSent = true
		}
	}

	slog.Info("winner contact collected", "email_sent", emailSent)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitContactResponse{
		OK:        true,
		EmailSent: emailSent,
	})
}
