package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func envFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestValidateDatabaseURL(t *testing.T) {
	assert.Error(t, ValidateDatabaseURL(""))
	assert.Error(t, ValidateDatabaseURL("mysql://nope"))
	assert.NoError(t, ValidateDatabaseURL("postgres://user:pw@localhost:5432/gamification"))
	assert.NoError(t, ValidateDatabaseURL("postgresql://user:pw@localhost/db"))
	assert.NoError(t, ValidateDatabaseURL("host=localhost user=postgres dbname=gamification"))
}

func TestValidateCron(t *testing.T) {
	assert.NoError(t, ValidateCron(""), "unset expression falls back to default")
	assert.NoError(t, ValidateCron("0 0 * * 0"))
	assert.NoError(t, ValidateCron("0 0 1 * *"))
	assert.Error(t, ValidateCron("every sunday"))
	assert.Error(t, ValidateCron("99 99 * * *"))
}

func TestCheckEnvironment_HappyPath(t *testing.T) {
	result := CheckEnvironment(envFrom(map[string]string{
		"DATABASE_URL":               "postgres://localhost/db",
		"GAMIFICATION_SERVICE_TOKEN": strings.Repeat("x", 48),
		"RESET_WEEKLY_CRON":          "0 0 * * 0",
		"RESET_MONTHLY_CRON":         "0 0 1 * *",
	}))
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestCheckEnvironment_ShortSecretWarns(t *testing.T) {
	result := CheckEnvironment(envFrom(map[string]string{
		"DATABASE_URL":               "postgres://localhost/db",
		"GAMIFICATION_SERVICE_TOKEN": "short",
	}))
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Warnings, 1)
}

func TestCheckEnvironment_ProductionRequiresOrigins(t *testing.T) {
	env := map[string]string{
		"DATABASE_URL":               "postgres://localhost/db",
		"GAMIFICATION_SERVICE_TOKEN": strings.Repeat("x", 48),
		"APP_ENV":                    "production",
	}
	result := CheckEnvironment(envFrom(env))
	assert.Len(t, result.Errors, 1)

	env["ALLOWED_ORIGINS"] = "*"
	result = CheckEnvironment(envFrom(env))
	assert.Len(t, result.Errors, 1, "wildcard origin rejected in production")

	env["ALLOWED_ORIGINS"] = "https://app.example.com"
	result = CheckEnvironment(envFrom(env))
	assert.Empty(t, result.Errors)
}

func TestCheckEnvironment_BadCronFailsClosed(t *testing.T) {
	result := CheckEnvironment(envFrom(map[string]string{
		"DATABASE_URL":               "postgres://localhost/db",
		"GAMIFICATION_SERVICE_TOKEN": strings.Repeat("x", 48),
		"RESET_WEEKLY_CRON":          "not a cron",
	}))
	assert.Len(t, result.Errors, 1)
}
