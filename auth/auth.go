// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// deviceIDRe matches the only device ids we trust: the alphanumeric,
// hyphen and underscore alphabet, 16-128 chars. Anything else is
// treated as absent and a fresh id is minted.
var deviceIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{16,128}$`)

// ActorHash derives the stable, privacy-preserving fingerprint used for
// rate-limiting and winner attribution. Identical (ip, ua, device)
// triples always map to the same hash; the server-side pepper keeps the
// digest from being reversible by anyone who knows the inputs' shape.
func ActorHash(ip, userAgent, deviceID, pepper string) string {
	sum := sha256.Sum256([]byte(ip + "|" + userAgent + "|" + deviceID + "|" + pepper))
	return hex.EncodeToString(sum[:])
}

// NormalizeDeviceID trims and validates a client-supplied device id.
// Returns "" when the value is missing or malformed.
func NormalizeDeviceID(value string) string {
	value = strings.TrimSpace(value)
	if !deviceIDRe.MatchString(value) {
		return ""
	}
	return value
}

// GenerateDeviceID mints a fresh device id for first-contact clients.
func GenerateDeviceID() string {
	return uuid.NewString()
}

// GenerateClaimToken creates the raw winner claim token: 32 random
// bytes, hex encoded. Only its digest is ever persisted.
func GenerateClaimToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate claim token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashToken produces the one-way digest under which a claim token is
// stored and looked up.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
