// utils/preflight.go
package utils

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
)

// minServiceTokenLength below which the signing secret draws a warning.
const minServiceTokenLength = 32

// PreflightResult separates hard violations (the process must not start) from
// warnings (logged, startup continues).
type PreflightResult struct {
	Errors   []string
	Warnings []string
}

func (r *PreflightResult) errf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *PreflightResult) warnf(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateDatabaseURL checks presence and shape of the connection string.
func ValidateDatabaseURL(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") &&
		!strings.Contains(dsn, "host=") {
		return fmt.Errorf("DATABASE_URL does not look like a postgres connection string")
	}
	return nil
}

// ValidateCron parses a standard 5-field cron expression.
func ValidateCron(expr string) error {
	if expr == "" {
		return nil // unset means the caller falls back to a default
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return nil
}

// CheckEnvironment validates the full startup surface against an env lookup.
// Injected lookup keeps this testable without touching the process env.
func CheckEnvironment(getenv func(string) string) PreflightResult {
	var r PreflightResult

	if err := ValidateDatabaseURL(getenv("DATABASE_URL")); err != nil {
		r.errf("%v", err)
	}

	token := getenv("GAMIFICATION_SERVICE_TOKEN")
	if token == "" {
		r.errf("GAMIFICATION_SERVICE_TOKEN is not set — service cannot authenticate the gateway")
	} else if len(token) < minServiceTokenLength {
		r.warnf("GAMIFICATION_SERVICE_TOKEN is shorter than %d characters — use a longer secret", minServiceTokenLength)
	}

	if getenv("APP_ENV") == "production" {
		origins := getenv("ALLOWED_ORIGINS")
		if origins == "" {
			r.errf("ALLOWED_ORIGINS must be set in production")
		} else if strings.Contains(origins, "*") {
			r.errf("ALLOWED_ORIGINS must not contain a wildcard in production")
		}
	}

	for _, key := range []string{"RESET_WEEKLY_CRON", "RESET_MONTHLY_CRON", "TWITCH_SWEEP_CRON"} {
		if err := ValidateCron(getenv(key)); err != nil {
			r.errf("%s: %v", key, err)
		}
	}

	return r
}

// Preflight runs the environment check and fails closed: any hard violation
// exits non-zero before the server binds.
func Preflight() {
	result := CheckEnvironment(os.Getenv)
	for _, w := range result.Warnings {
		log.Printf("⚠️  [PREFLIGHT] %s", w)
	}
	for _, e := range result.Errors {
		log.Printf("❌ [PREFLIGHT] %s", e)
	}
	if len(result.Errors) > 0 {
		log.Printf("❌ [PREFLIGHT] %d hard violation(s) — refusing to start", len(result.Errors))
		os.Exit(1)
	}
	log.Println("✅ [PREFLIGHT] Environment OK")
}
