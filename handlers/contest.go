// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gymkompaniet/code-hunt/auth"
	"github.com/gymkompaniet/code-hunt/cliparse"
	"github.com/gymkompaniet/code-hunt/models"
)

// EnterCode runs the winner-determination transaction for one code
// submission. Locking order: contest_state singleton first, then the
// actor's throttle row, so two concurrent submissions serialize on the
// singleton and two guesses from the same actor serialize on the
// throttle row. Non-winning outcomes that mutate the counter still
// commit; every unexpected failure rolls back entirely.
func EnterCode(db *sql.DB, cfg cliparse.Config, actorHash, code string, now time.Time) (models.EnterOutcome, error) {
	tx, err := db.Begin()
	if err != nil {
		return models.EnterOutcome{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the singleton. Whoever holds this lock decides the contest.
	var winner sql.NullString
	err = tx.QueryRow(`
		SELECT winner_actor_hash FROM contest_state WHERE id = 1 FOR UPDATE
	`).Scan(&winner)
	if err != nil {
		return models.EnterOutcome{}, fmt.Errorf("failed to lock contest state: %w", err)
	}
	if winner.Valid {
		return models.EnterOutcome{Kind: models.EnterConflict}, nil
	}

	// Lock the actor's throttle row if it exists. A missing row means
	// the actor has never failed, hence is not blocked.
	var blockedUntil sql.NullTime
	err = tx.QueryRow(`
		SELECT blocked_until FROM attempt_locks WHERE actor_hash = $1 FOR UPDATE
	`, actorHash).Scan(&blockedUntil)
	if err != nil && err != sql.ErrNoRows {
		return models.EnterOutcome{}, fmt.Errorf("failed to lock attempt row: %w", err)
	}

	if blockedUntil.Valid && blockedUntil.Time.After(now) {
		return models.EnterOutcome{Kind: models.EnterBlocked, BlockedUntil: blockedUntil.Time}, nil
	}

	ok, err := auth.VerifyCode(cfg.CodeHash, code)
	if err != nil {
		return models.EnterOutcome{}, fmt.Errorf("failed to verify code: %w", err)
	}

	if !ok {
		// The upsert serializes two first-failure races on the unique
		// key instead of surfacing a duplicate insert.
		var failed int
		err = tx.QueryRow(`
			INSERT INTO attempt_locks (actor_hash, failed_count) VALUES ($1, 1)
			ON CONFLICT (actor_hash) DO UPDATE SET failed_count = attempt_locks.failed_count + 1
			RETURNING failed_count
		`, actorHash).Scan(&failed)
		if err != nil {
			return models.EnterOutcome{}, fmt.Errorf("failed to record attempt: %w", err)
		}

		if failed >= cfg.MaxAttempts {
			until := now.Add(time.Duration(cfg.BlockMinutes) * time.Minute)
			_, err = tx.Exec(`
				UPDATE attempt_locks SET failed_count = 0, blocked_until = $2 WHERE actor_hash = $1
			`, actorHash, until)
			if err != nil {
				return models.EnterOutcome{}, fmt.Errorf("failed to impose block: %w", err)
			}

			if err := tx.Commit(); err != nil {
				return models.EnterOutcome{}, fmt.Errorf("failed to commit block: %w", err)
			}
			return models.EnterOutcome{Kind: models.EnterBlocked, BlockedUntil: until}, nil
		}

		if err := tx.Commit(); err != nil {
			return models.EnterOutcome{}, fmt.Errorf("failed to commit attempt: %w", err)
		}
		return models.EnterOutcome{Kind: models.EnterWrongCode, Remaining: cfg.MaxAttempts - failed}, nil
	}

	// Correct code while the state is still open: assign the winner and
	// issue the claim token in the same transaction.
	rawToken, err := auth.GenerateClaimToken()
	if err != nil {
		return models.EnterOutcome{}, err
	}

	_, err = tx.Exec(`
		UPDATE contest_state SET winner_actor_hash = $1, winner_claimed_at = $2 WHERE id = 1
	`, actorHash, now)
	if err != nil {
		return models.EnterOutcome{}, fmt.Errorf("failed to assign winner: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO winner_claim_tokens (token_hash, actor_hash, expires_at) VALUES ($1, $2, $3)
	`, auth.HashToken(rawToken), actorHash, now.Add(time.Duration(cfg.ClaimTokenTTLMin)*time.Minute))
	if err != nil {
		return models.EnterOutcome{}, fmt.Errorf("failed to store claim token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.EnterOutcome{}, fmt.Errorf("failed to commit win: %w", err)
	}

	return models.EnterOutcome{Kind: models.EnterWon, ClaimToken: rawToken}, nil
}

// RedeemToken runs the contact-submission transaction. The token row is
// locked so a replayed token waits for the first redemption to commit
// and then sees used_at set. Unknown, used, expired and foreign tokens
// are indistinguishable to the caller.
func RedeemToken(db *sql.DB, cfg cliparse.Config, actorHash string, req models.SubmitContactRequest, now time.Time) (models.RedeemOutcome, error) {
	tokenHash := auth.HashToken(req.ClaimToken)

	tx, err := db.Begin()
	if err != nil {
		return models.RedeemOutcome{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var owner string
	var usedAt sql.NullTime
	var expiresAt time.Time
	err = tx.QueryRow(`
		SELECT actor_hash, used_at, expires_at FROM winner_claim_tokens WHERE token_hash = $1 FOR UPDATE
	`, tokenHash).Scan(&owner, &usedAt, &expiresAt)
	if err == sql.ErrNoRows {
		return models.RedeemOutcome{Kind: models.RedeemUnauthorized}, nil
	}
	if err != nil {
		return models.RedeemOutcome{}, fmt.Errorf("failed to lock claim token: %w", err)
	}

	if usedAt.Valid || expiresAt.Before(now) {
		return models.RedeemOutcome{Kind: models.RedeemUnauthorized}, nil
	}
	if cfg.BindTokenToActor && owner != actorHash {
		return models.RedeemOutcome{Kind: models.RedeemUnauthorized}, nil
	}

	var phone sql.NullString
	if req.Phone != "" {
		phone = sql.NullString{String: req.Phone, Valid: true}
	}
	_, err = tx.Exec(`
		INSERT INTO winner_contacts (actor_hash, name, email, phone) VALUES ($1, $2, $3, $4)
	`, owner, req.Name, req.Email, phone)
	if err != nil {
		return models.RedeemOutcome{}, fmt.Errorf("failed to insert contact: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE winner_claim_tokens SET used_at = $2 WHERE token_hash = $1
	`, tokenHash, now)
	if err != nil {
		return models.RedeemOutcome{}, fmt.Errorf("failed to mark token used: %w", err)
	}

	_, err = tx.Exec(`UPDATE contest_state SET contact_submitted = true WHERE id = 1`)
	if err != nil {
		return models.RedeemOutcome{}, fmt.Errorf("failed to update contest state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.RedeemOutcome{}, fmt.Errorf("failed to commit redemption: %w", err)
	}

	return models.RedeemOutcome{Kind: models.RedeemOK}, nil
}

// ResetContest returns the system to its provisioned state: winner
// fields nulled, all per-contest tables cleared, atomically.
func ResetContest(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE contest_state
		SET winner_actor_hash = NULL, winner_claimed_at = NULL, contact_submitted = false
		WHERE id = 1
	`)
	if err != nil {
		return fmt.Errorf("failed to reset contest state: %w", err)
	}

	for _, table := range []string{"winner_claim_tokens", "winner_contacts", "attempt_locks"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

// ContestClosed reports whether the winner slot is taken. Read-only, no
// lock needed.
func ContestClosed(db *sql.DB) (bool, error) {
	var winner sql.NullString
	err := db.QueryRow(`SELECT winner_actor_hash FROM contest_state WHERE id = 1`).Scan(&winner)
	if err != nil {
		return false, fmt.Errorf("failed to query contest state: %w", err)
	}
	return winner.Valid, nil
}
