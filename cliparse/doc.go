// Copyright (c) 2025 Gymkompaniet AB.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

CLI flags take precedence over environment variables. main loads a
.env file (via godotenv) before calling ParseFlags, so a local .env
behaves like exported variables.

# Required Settings

  - DATABASE_URL (-d): PostgreSQL connection string
  - CODE_HASH (--code-hash): Argon2id hash of the secret code
  - ACTOR_PEPPER (--actor-pepper): Secret salt for actor fingerprints
  - ADMIN_RESET_KEY: Required only when TEST_MODE=true

# Optional Settings

  - PORT (-p): Server port (default: 8000)
  - CODE_PATTERN: Regexp a submitted code must match (default: ^[0-9A-Z]{4}$)
  - MAX_ATTEMPTS: Wrong guesses before a block (default: 3)
  - BLOCK_MINUTES: Block duration (default: 10)
  - CLAIM_TOKEN_TTL_MINUTES: Claim token lifetime (default: 15)
  - BIND_TOKEN_TO_ACTOR: Require redemption by the winning actor (default: true)
  - TEST_MODE: Enables the admin reset endpoint (default: false)
  - CORS_ORIGINS: Comma-separated origin allowlist (empty disables CORS)
  - CORS_ALLOW_CREDENTIALS: Default true; forced false for a "*" allowlist
  - COOKIE_SECURE: Default true, false under TEST_MODE
  - COOKIE_SAMESITE: lax (default), strict or none
  - DEVICE_COOKIE_MAX_AGE_DAYS: Device cookie lifetime (default: 365)
  - SMTP_HOST/PORT/USER/PASSWORD/FROM/TO/TLS: Winner notification mail

# Utility Mode

	code-hunt -hash-code 7421

prints the argon2id hash for CODE_HASH and exits without starting the
server.
*/
package cliparse
