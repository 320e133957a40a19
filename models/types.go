package models

import "time"

// Machine-readable reason strings returned in the error envelope.
const (
	ReasonInvalidFormat  = "invalid_format"
	ReasonAlreadyWon     = "already_won"
	ReasonBlocked        = "blocked"
	ReasonWrongCode      = "wrong_code"
	ReasonInvalidPayload = "invalid_payload"
	ReasonUnauthorized   = "unauthorized"
	ReasonNotFound       = "not_found"
	ReasonServerError    = "server_error"
)

// Request types

type EnterCodeRequest struct {
	Code string `json:"code"`
}

type SubmitContactRequest struct {
	ClaimToken string `json:"claimToken"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
}

// Response types

type StatusResponse struct {
	OK     bool `json:"ok"`
	Closed bool `json:"closed"`
}

type EnterCodeResponse struct {
	OK         bool   `json:"ok"`
	ClaimToken string `json:"claimToken"`
}

type SubmitContactResponse struct {
	OK        bool `json:"ok"`
	EmailSent bool `json:"emailSent"`
}

type ResetResponse struct {
	OK    bool `json:"ok"`
	Reset bool `json:"reset"`
}

// ErrorResponse is the envelope for every non-2xx response.
type ErrorResponse struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason"`
}

// WrongCodeResponse carries the attempts left before a block is imposed.
type WrongCodeResponse struct {
	OK        bool   `json:"ok"`
	Reason    string `json:"reason"`
	Remaining int    `json:"remaining"`
}

// BlockedResponse carries the RFC 3339 instant the block lapses.
type BlockedResponse struct {
	OK           bool   `json:"ok"`
	Reason       string `json:"reason"`
	BlockedUntil string `json:"blockedUntil"`
}

// State machine outcomes
//
// Throttle and conflict results are expected business outcomes, not errors.
// The contest transaction returns one of these variants and the handler
// translates it to an HTTP response.

type EnterOutcomeKind int

const (
	// EnterWon: first correct submission; the caller now holds the single
	// winner slot.
	EnterWon EnterOutcomeKind = iota
	// EnterConflict: someone else already won.
	EnterConflict
	// EnterBlocked: the actor is throttled until BlockedUntil.
	EnterBlocked
	// EnterWrongCode: incorrect code, Remaining attempts left before a block.
	EnterWrongCode
)

type EnterOutcome struct {
	Kind         EnterOutcomeKind
	ClaimToken   string    // EnterWon only; the raw token, surfaced exactly once
	Remaining    int       // EnterWrongCode only
	BlockedUntil time.Time // EnterBlocked only
}

type RedeemOutcomeKind int

const (
	RedeemOK RedeemOutcomeKind = iota
	// RedeemUnauthorized covers every rejection: unknown token, already used,
	// expired, or bound to a different actor. Callers never learn which.
	RedeemUnauthorized
)

type RedeemOutcome struct {
	Kind      RedeemOutcomeKind
	EmailSent bool // RedeemOK only, set by the handler after notification
}

// Domain types

type ContestState struct {
	WinnerActorHash  *string
	WinnerClaimedAt  *time.Time
	ContactSubmitted bool
}

type AttemptLock struct {
	ActorHash    string
	FailedCount  int
	BlockedUntil *time.Time
}

type WinnerClaimToken struct {
	TokenHash string
	ActorHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
}

type WinnerContact struct {
	ActorHash string
	Name      string
	Email     string
	Phone     *string
	CreatedAt time.Time
}
