// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the code-hunt API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - StatusHandler: Contest open/closed status
  - CodeHandler: Secret code submission (the winner race)
  - ContactHandler: Claim token redemption and contact collection
  - AdminHandler: Test-mode full reset

Handlers are created via constructor functions that accept *sql.DB and
Config:

	codeHandler := handlers.NewCodeHandler(db, cfg)

# Contest Flow

	GET  /api/status         → Status ({ok, closed})
	POST /api/enter-code     → EnterCode (400/409/429/401/200)
	POST /api/submit-contact → SubmitContact (400/401/200)
	POST /api/admin/reset    → Reset (404/401/200)

# State Machine

contest.go holds the transactional core. EnterCode and RedeemToken
return explicit outcome variants (models.EnterOutcome,
models.RedeemOutcome); the handlers only translate variants to HTTP
responses. All cross-request coordination happens through Postgres row
locks:

	BEGIN
	  SELECT ... FROM contest_state WHERE id = 1 FOR UPDATE
	  SELECT ... FROM attempt_locks WHERE actor_hash = $1 FOR UPDATE
	  verify code → throttle update | winner assignment + token issue
	COMMIT

Two concurrent correct submissions serialize on the contest_state row;
the loser observes the committed winner and gets already_won. Wrong
guesses commit their counter increments even though the request fails
from the client's perspective.

# Actor Identity

actorFromRequest combines the client IP, user agent and the device id
resolved by middleware.WithDeviceID into the peppered actor hash that
keys throttling and winner attribution.
*/
package handlers
