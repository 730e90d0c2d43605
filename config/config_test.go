package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "AUTH_PROVIDER", "SESSION_TTL", "MAIL_PROVIDER", "NOTIFICATION_EMAILS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "local", cfg.AuthProvider)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "none", cfg.MailProvider)
	assert.Empty(t, cfg.NotificationEmails)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("NOTIFICATION_EMAILS", " ops@example.com, ,dispatch@example.com ")
	t.Setenv("AUTH_SERVICE_KEY", "service-secret")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"ops@example.com", "dispatch@example.com"}, cfg.NotificationEmails)
	assert.False(t, strings.Contains(cfg.String(), "service-secret"))
	assert.Contains(t, cfg.String(), "ServiceKey:***")
}

func TestLocation_FallsBackToJST(t *testing.T) {
	loc := AppConfig{Timezone: "Nowhere/Invalid"}.Location()
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 9*60*60, offset)
}
