// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the code-hunt API server.

code-hunt is a single-winner contest backend: visitors submit a secret
code, the first correct submission wins and receives a short-lived
claim token to submit contact details. At most one winner ever exists,
enforced with Postgres row locks, and code guessing is throttled per
actor fingerprint.

# Starting the Server

The server reads environment variables (optionally from a .env file)
or CLI flags:

	DATABASE_URL=postgres://... CODE_HASH='$argon2id$...' ACTOR_PEPPER=... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..." -code-hash '$argon2id$...' -actor-pepper secret

Generate a CODE_HASH value for deployment:

	go run main.go -hash-code 7421

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - CODE_HASH (-code-hash): Argon2id hash of the secret code
  - ACTOR_PEPPER (-actor-pepper): Secret salt for actor fingerprints

See the cliparse package for the full surface (throttle policy, CORS,
cookies, SMTP, test mode).

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers and the transactional contest core
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, device cookie, logging, JSON helpers
  - models: Request/response types and state machine outcomes
  - auth: Actor fingerprinting, claim tokens, argon2id code hashing
  - mailer: Best-effort winner notification over SMTP
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
