// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request/response types and contest domain types.

# Response Envelope

Every error response uses the same shape:

	{"ok": false, "reason": "wrong_code"}

with reason drawn from the Reason* constants. Throttle responses add
blockedUntil (RFC 3339) and wrong-code responses add remaining.

# Outcome Variants

EnterOutcome and RedeemOutcome are the explicit results of the contest
state machine. Conflict, blocked and wrong-code are business outcomes,
not errors; handlers switch on Kind to pick the HTTP status.

# Domain Types

ContestState, AttemptLock, WinnerClaimToken and WinnerContact mirror the
database rows. Nullable columns map to pointer fields.
*/
package models
