package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
)

type Config struct {
	Port        int
	DatabaseURL string

	// Contest policy
	CodeHash         string         // encoded argon2id hash of the secret code
	CodePattern      string         // shape a submitted code must match
	CodeRE           *regexp.Regexp // compiled CodePattern
	ActorPepper      string
	MaxAttempts      int
	BlockMinutes     int
	ClaimTokenTTLMin int
	BindTokenToActor bool

	// Test/ops
	TestMode      bool
	AdminResetKey string

	// Browser surface
	CORSOrigins          []string
	CORSAllowCredentials bool
	CookieSecure         bool
	CookieSameSite       http.SameSite
	DeviceCookieMaxAge   int // seconds

	// Outbound mail
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPTo       string
	SMTPTLS      bool

	// Utility mode: hash a code for CODE_HASH and exit
	HashCode string
}

const defaultCodePattern = `^[0-9A-Z]{4}$`

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("code-hunt", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CodeHash, "code-hash", "", "Argon2id hash of the secret code (prefer env)")
	fs.StringVar(&cfg.ActorPepper, "actor-pepper", "", "Actor fingerprint pepper (prefer env)")

	// Utility
	fs.StringVar(&cfg.HashCode, "hash-code", "", "Print the argon2id hash of the given code and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.HashCode != "" {
		return cfg, nil
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.CodeHash == "" {
		cfg.CodeHash = os.Getenv("CODE_HASH")
	}
	if cfg.CodeHash == "" {
		return Config{}, errors.New("CODE_HASH required")
	}

	if cfg.ActorPepper == "" {
		cfg.ActorPepper = os.Getenv("ACTOR_PEPPER")
	}
	if cfg.ActorPepper == "" {
		return Config{}, errors.New("ACTOR_PEPPER required")
	}

	cfg.CodePattern = envString("CODE_PATTERN", defaultCodePattern)
	re, err := regexp.Compile(cfg.CodePattern)
	if err != nil {
		return Config{}, fmt.Errorf("invalid CODE_PATTERN: %w", err)
	}
	cfg.CodeRE = re

	cfg.MaxAttempts, err = envInt("MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, err
	}
	cfg.BlockMinutes, err = envInt("BLOCK_MINUTES", 10)
	if err != nil {
		return Config{}, err
	}
	cfg.ClaimTokenTTLMin, err = envInt("CLAIM_TOKEN_TTL_MINUTES", 15)
	if err != nil {
		return Config{}, err
	}
	cfg.BindTokenToActor = envBool("BIND_TOKEN_TO_ACTOR", true)

	cfg.TestMode = envBool("TEST_MODE", false)
	cfg.AdminResetKey = os.Getenv("ADMIN_RESET_KEY")
	if cfg.TestMode && cfg.AdminResetKey == "" {
		return Config{}, errors.New("TEST_MODE=true requires ADMIN_RESET_KEY")
	}

	for _, o := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	cfg.CORSAllowCredentials = envBool("CORS_ALLOW_CREDENTIALS", true)
	// Browsers refuse credentialed requests against a wildcard origin
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		cfg.CORSAllowCredentials = false
	}

	cfg.CookieSecure = envBool("COOKIE_SECURE", !cfg.TestMode)
	cfg.CookieSameSite = parseSameSite(os.Getenv("COOKIE_SAMESITE"))
	days, err := envInt("DEVICE_COOKIE_MAX_AGE_DAYS", 365)
	if err != nil {
		return Config{}, err
	}
	cfg.DeviceCookieMaxAge = days * 24 * 60 * 60

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort, err = envInt("SMTP_PORT", 587)
	if err != nil {
		return Config{}, err
	}
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPFrom = envString("SMTP_FROM", cfg.SMTPUser)
	cfg.SMTPTo = os.Getenv("SMTP_TO")
	cfg.SMTPTLS = envBool("SMTP_TLS", true)

	return cfg, nil
}

// MailConfigured reports whether enough SMTP settings are present to
// attempt winner notifications.
func (c Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPFrom != "" && c.SMTPTo != ""
}

func envString(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func envInt(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", name, err)
	}
	return n, nil
}

func envBool(name string, def bool) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
