// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gymkompaniet/code-hunt/auth"
	"github.com/gymkompaniet/code-hunt/cliparse"
	"github.com/gymkompaniet/code-hunt/models"
	"github.com/gymkompaniet/code-hunt/testutil"
)

const testUserAgent = "code-hunt-test/1.0"

// submitCode posts a code as the actor identified by ip
func submitCode(t *testing.T, h *CodeHandler, code, ip string) *httptest.ResponseRecorder {
	t.Helper()

	req := testutil.MakeRequest("POST", "/api/enter-code", models.EnterCodeRequest{Code: code}, map[string]string{
		"X-Forwarded-For": ip,
		"User-Agent":      testUserAgent,
	})
	w := httptest.NewRecorder()
	h.EnterCode(w, req)
	return w
}

// testActorHash mirrors what actorFromRequest computes for submitCode
// requests (no device middleware runs in direct handler tests)
func testActorHash(cfg cliparse.Config, ip string) string {
	return auth.ActorHash(ip, testUserAgent, "", cfg.ActorPepper)
}

func TestEnterCodeInvalidFormat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewCodeHandler(db, cfg)

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"too short", "742"},
		{"too long", "74210"},
		{"lowercase", "7a2b"},
		{"punctuation", "74-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submitCode(t, h, tt.code, "203.0.113.1")
			testutil.AssertStatus(t, w, 400)

			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Reason != models.ReasonInvalidFormat {
				t.Errorf("reason = %q, want invalid_format", resp.Reason)
			}
		})
	}

	// Shape failures never touch the throttle
	if n := testutil.FailedCount(t, db, testActorHash(cfg, "203.0.113.1")); n != 0 {
		t.Errorf("failed_count = %d after format rejections, want 0", n)
	}
}

func TestEnterCodeWrongGuessSequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewCodeHandler(db, cfg)
	ip := "203.0.113.2"
	actorHash := testActorHash(cfg, ip)

	// First two wrong guesses count down
	for i, want := range []int{2, 1} {
		w := submitCode(t, h, []string{"0000", "1111"}[i], ip)
		testutil.AssertStatus(t, w, 401)

		var resp models.WrongCodeResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Reason != models.ReasonWrongCode {
			t.Errorf("reason = %q, want wrong_code", resp.Reason)
		}
		if resp.Remaining != want {
			t.Errorf("remaining = %d, want %d", resp.Remaining, want)
		}
	}

	// Third wrong guess imposes the block
	w := submitCode(t, h, "2222", ip)
	testutil.AssertStatus(t, w, 429)

	var blocked models.BlockedResponse
	testutil.AssertJSON(t, w, &blocked)
	if blocked.Reason != models.ReasonBlocked {
		t.Errorf("reason = %q, want blocked", blocked.Reason)
	}
	until, err := time.Parse(time.RFC3339, blocked.BlockedUntil)
	if err != nil {
		t.Fatalf("blockedUntil %q is not RFC 3339: %v", blocked.BlockedUntil, err)
	}
	if !until.After(time.Now()) {
		t.Errorf("blockedUntil %v is not in the future", until)
	}

	// Counter resets to 0 when the block lands
	if n := testutil.FailedCount(t, db, actorHash); n != 0 {
		t.Errorf("failed_count = %d after block, want 0", n)
	}

	// Further attempts are rejected without mutating the counter,
	// even with the correct code
	w = submitCode(t, h, testutil.TestCode, ip)
	testutil.AssertStatus(t, w, 429)

	var stillBlocked models.BlockedResponse
	testutil.AssertJSON(t, w, &stillBlocked)
	if stillBlocked.BlockedUntil != blocked.BlockedUntil {
		t.Errorf("blockedUntil changed from %q to %q", blocked.BlockedUntil, stillBlocked.BlockedUntil)
	}
	if n := testutil.FailedCount(t, db, actorHash); n != 0 {
		t.Errorf("failed_count = %d during block, want 0", n)
	}
}

func TestEnterCodeBlockExpiresLazily(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewCodeHandler(db, cfg)
	ip := "203.0.113.3"
	actorHash := testActorHash(cfg, ip)

	// A block in the past is simply ignored on the next attempt
	testutil.SeedBlock(t, db, actorHash, time.Now().Add(-time.Minute))

	w := submitCode(t, h, "0000", ip)
	testutil.AssertStatus(t, w, 401)

	var resp models.WrongCodeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Remaining != 2 {
		t.Errorf("remaining = %d, want fresh countdown of 2", resp.Remaining)
	}
}

func TestEnterCodeCorrect(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewCodeHandler(db, cfg)
	winnerIP := "203.0.113.4"

	w := submitCode(t, h, testutil.TestCode, winnerIP)
	testutil.AssertStatus(t, w, 200)

	var resp models.EnterCodeResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.OK {
		t.Error("ok = false on win")
	}
	if len(resp.ClaimToken) != 64 {
		t.Errorf("claimToken length = %d, want 64", len(resp.ClaimToken))
	}

	// The winner slot and the token digest are committed together
	var winner string
	err := db.QueryRow(`SELECT winner_actor_hash FROM contest_state WHERE id = 1`).Scan(&winner)
	if err != nil {
		t.Fatalf("failed to read contest state: %v", err)
	}
	if winner != testActorHash(cfg, winnerIP) {
		t.Error("winner_actor_hash does not match the submitting actor")
	}

	var owner string
	var expiresAt time.Time
	err = db.QueryRow(`
		SELECT actor_hash, expires_at FROM winner_claim_tokens WHERE token_hash = $1
	`, auth.HashToken(resp.ClaimToken)).Scan(&owner, &expiresAt)
	if err != nil {
		t.Fatalf("claim token digest not stored: %v", err)
	}
	if owner != winner {
		t.Error("token is not bound to the winning actor")
	}
	if remaining := time.Until(expiresAt); remaining < 14*time.Minute || remaining > 16*time.Minute {
		t.Errorf("token expiry %v from now, want ~15m", remaining)
	}

	// Anyone after the winner is conflicted out, correct code or not
	for _, code := range []string{testutil.TestCode, "0000"} {
		w := submitCode(t, h, code, "203.0.113.5")
		testutil.AssertStatus(t, w, 409)

		var conflict models.ErrorResponse
		testutil.AssertJSON(t, w, &conflict)
		if conflict.Reason != models.ReasonAlreadyWon {
			t.Errorf("reason = %q, want already_won", conflict.Reason)
		}
	}

	// The loser's throttle row is untouched by conflict rejections
	if n := testutil.FailedCount(t, db, testActorHash(cfg, "203.0.113.5")); n != 0 {
		t.Errorf("failed_count = %d after conflicts, want 0", n)
	}
}

func TestEnterCodeSuccessBypassesThrottle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewCodeHandler(db, cfg)
	ip := "203.0.113.6"
	actorHash := testActorHash(cfg, ip)

	submitCode(t, h, "0000", ip)
	submitCode(t, h, "1111", ip)

	w := submitCode(t, h, testutil.TestCode, ip)
	testutil.AssertStatus(t, w, 200)

	// A correct submission neither increments nor clears the counter
	if n := testutil.FailedCount(t, db, actorHash); n != 2 {
		t.Errorf("failed_count = %d after win, want 2", n)
	}
}

func TestEnterCodeMalformedBody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	h := NewCodeHandler(db, cfg)

	req := httptest.NewRequest("POST", "/api/enter-code", nil)
	w := httptest.NewRecorder()
	h.EnterCode(w, req)

	testutil.AssertStatus(t, w, 400)
}
