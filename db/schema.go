// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application and seeds
// the contest_state singleton. Safe to call multiple times.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Global contest status. Exactly one row; every enter-code transaction
-- serializes on it via SELECT ... FOR UPDATE.
CREATE TABLE IF NOT EXISTS contest_state (
    id INT PRIMARY KEY CHECK (id = 1),
    winner_actor_hash TEXT,
    winner_claimed_at TIMESTAMPTZ,
    contact_submitted BOOLEAN NOT NULL DEFAULT false
);

INSERT INTO contest_state (id) VALUES (1) ON CONFLICT (id) DO NOTHING;

-- Per-actor failure counter and temporary block. Rows are created
-- lazily on first failure; blocks expire lazily at blocked_until.
CREATE TABLE IF NOT EXISTS attempt_locks (
    actor_hash TEXT PRIMARY KEY,
    failed_count INT NOT NULL DEFAULT 0 CHECK (failed_count >= 0),
    blocked_until TIMESTAMPTZ
);

-- One-time winner claim tokens. Only the SHA-256 digest of the raw
-- token is ever stored.
CREATE TABLE IF NOT EXISTS winner_claim_tokens (
    token_hash TEXT PRIMARY KEY,
    actor_hash TEXT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    used_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_claim_tokens_actor ON winner_claim_tokens(actor_hash);

-- Contact details submitted by the winner. Append-only.
CREATE TABLE IF NOT EXISTS winner_contacts (
    id BIGSERIAL PRIMARY KEY,
    actor_hash TEXT NOT NULL,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
