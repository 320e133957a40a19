// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
seeds the contest_state singleton idempotently.

# Tables

  - contest_state: Single-row global contest status (the winner slot)
  - attempt_locks: Per-actor failure counters and temporary blocks
  - winner_claim_tokens: One-time claim token digests with expiry
  - winner_contacts: Contact details submitted by the winner

# Locking

contest_state and attempt_locks rows are always read with
SELECT ... FOR UPDATE inside the enter-code transaction, so concurrent
requests serialize on the contested row instead of racing in memory.
winner_claim_tokens rows are locked the same way during redemption.
Requests for distinct actors only share the contest_state lock.
*/
package db
