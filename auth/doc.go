// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides actor fingerprinting, token generation and secret
code verification.

# Actor Hashes

An actor hash identifies a requester by network and device signals,
salted with a server-side pepper:

	hash := auth.ActorHash(ip, userAgent, deviceID, pepper)

The hash is deterministic, so the same browser keeps the same identity,
but one-way, so the raw signals never reach the database.

# Device IDs

Client-supplied device ids are accepted only when they match
[A-Za-z0-9_-]{16,128}:

	id := auth.NormalizeDeviceID(r.Header.Get("X-Device-ID"))

Anything else is treated as absent and a fresh UUID is minted with
GenerateDeviceID.

# Claim Tokens

Claim tokens are random 32-byte (256-bit) secrets:

	raw, err := auth.GenerateClaimToken()
	digest := auth.HashToken(raw)

Only the SHA-256 digest is stored; the raw token is returned to the
winner exactly once.

# Code Hashing

The secret contest code is configured as an encoded argon2id hash,
produced with HashCode and checked with VerifyCode:

	hash, err := auth.HashCode("7421")
	ok, err := auth.VerifyCode(hash, submitted)

VerifyCode compares in constant time and treats a mismatch as a normal
false result, never an error.
*/
package auth
