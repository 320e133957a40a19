package cliparse

import (
	"net/http"
	"testing"
)

// clearEnv blanks every variable ParseFlags reads so ambient settings
// can't leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT", "DATABASE_URL", "CODE_HASH", "CODE_PATTERN", "ACTOR_PEPPER",
		"MAX_ATTEMPTS", "BLOCK_MINUTES", "CLAIM_TOKEN_TTL_MINUTES",
		"BIND_TOKEN_TO_ACTOR", "TEST_MODE", "ADMIN_RESET_KEY",
		"CORS_ORIGINS", "CORS_ALLOW_CREDENTIALS",
		"COOKIE_SECURE", "COOKIE_SAMESITE", "DEVICE_COOKIE_MAX_AGE_DAYS",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD",
		"SMTP_FROM", "SMTP_TO", "SMTP_TLS",
	} {
		t.Setenv(name, "")
	}
}

func baseArgs() []string {
	return []string{
		"-d", "postgres://localhost/contest",
		"-code-hash", "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		"-actor-pepper", "pepper",
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseFlags(baseArgs())
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.BlockMinutes != 10 {
		t.Errorf("BlockMinutes = %d, want 10", cfg.BlockMinutes)
	}
	if cfg.ClaimTokenTTLMin != 15 {
		t.Errorf("ClaimTokenTTLMin = %d, want 15", cfg.ClaimTokenTTLMin)
	}
	if !cfg.BindTokenToActor {
		t.Error("BindTokenToActor should default to true")
	}
	if cfg.TestMode {
		t.Error("TestMode should default to false")
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure should default to true outside test mode")
	}
	if cfg.CookieSameSite != http.SameSiteLaxMode {
		t.Errorf("CookieSameSite = %v, want lax", cfg.CookieSameSite)
	}
	if cfg.DeviceCookieMaxAge != 365*24*60*60 {
		t.Errorf("DeviceCookieMaxAge = %d, want one year", cfg.DeviceCookieMaxAge)
	}
	if cfg.CodePattern != defaultCodePattern {
		t.Errorf("CodePattern = %q, want %q", cfg.CodePattern, defaultCodePattern)
	}
	if cfg.CodeRE == nil || !cfg.CodeRE.MatchString("7A2B") || cfg.CodeRE.MatchString("7a2b") {
		t.Error("CodeRE does not enforce the default pattern")
	}
	if cfg.MailConfigured() {
		t.Error("MailConfigured() should be false without SMTP settings")
	}
}

func TestParseFlagsRequiredSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing database url", []string{"-code-hash", "x", "-actor-pepper", "y"}},
		{"missing code hash", []string{"-d", "postgres://localhost/c", "-actor-pepper", "y"}},
		{"missing actor pepper", []string{"-d", "postgres://localhost/c", "-code-hash", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("ParseFlags() expected error, got nil")
			}
		})
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9001")
	t.Setenv("DATABASE_URL", "postgres://localhost/env")
	t.Setenv("CODE_HASH", "$argon2id$...")
	t.Setenv("ACTOR_PEPPER", "env-pepper")
	t.Setenv("CODE_PATTERN", `^[0-9]{3}$`)
	t.Setenv("BLOCK_MINUTES", "5")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if cfg.Port != 9001 {
		t.Errorf("Port = %d, want 9001", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/env" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.BlockMinutes != 5 {
		t.Errorf("BlockMinutes = %d, want 5", cfg.BlockMinutes)
	}
	if !cfg.CodeRE.MatchString("742") || cfg.CodeRE.MatchString("7421") {
		t.Error("CODE_PATTERN env override not applied")
	}
}

func TestParseFlagsTestModeRequiresResetKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_MODE", "true")

	if _, err := ParseFlags(baseArgs()); err == nil {
		t.Error("ParseFlags() expected error when TEST_MODE is set without ADMIN_RESET_KEY")
	}

	t.Setenv("ADMIN_RESET_KEY", "reset-me")
	cfg, err := ParseFlags(baseArgs())
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if !cfg.TestMode {
		t.Error("TestMode should be true")
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure should default to false under TEST_MODE")
	}
}

func TestParseFlagsWildcardOriginDisablesCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	cfg, err := ParseFlags(baseArgs())
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if cfg.CORSAllowCredentials {
		t.Error("credentials must be disabled for a wildcard origin allowlist")
	}
}

func TestParseFlagsCORSOriginList(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com ,")

	cfg, err := ParseFlags(baseArgs())
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.CORSOrigins, want)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.CORSOrigins[i], want[i])
		}
	}
	if !cfg.CORSAllowCredentials {
		t.Error("explicit allowlist should keep credentials enabled")
	}
}

func TestParseFlagsSameSite(t *testing.T) {
	tests := []struct {
		value string
		want  http.SameSite
	}{
		{"lax", http.SameSiteLaxMode},
		{"strict", http.SameSiteStrictMode},
		{"none", http.SameSiteNoneMode},
		{"", http.SameSiteLaxMode},
		{"bogus", http.SameSiteLaxMode},
	}

	for _, tt := range tests {
		t.Run("samesite "+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("COOKIE_SAMESITE", tt.value)

			cfg, err := ParseFlags(baseArgs())
			if err != nil {
				t.Fatalf("ParseFlags() error = %v", err)
			}
			if cfg.CookieSameSite != tt.want {
				t.Errorf("CookieSameSite = %v, want %v", cfg.CookieSameSite, tt.want)
			}
		})
	}
}

func TestParseFlagsInvalidCodePattern(t *testing.T) {
	clearEnv(t)
	t.Setenv("CODE_PATTERN", "[")

	if _, err := ParseFlags(baseArgs()); err == nil {
		t.Error("ParseFlags() expected error for invalid CODE_PATTERN")
	}
}

func TestParseFlagsHashCodeMode(t *testing.T) {
	clearEnv(t)

	// Utility mode skips all required-setting validation
	cfg, err := ParseFlags([]string{"-hash-code", "7421"})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if cfg.HashCode != "7421" {
		t.Errorf("HashCode = %q, want %q", cfg.HashCode, "7421")
	}
}
