package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv isolates a test from the variables Load reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GO_ENV", "PORT", "CONTENT_DIR", "PRESENTATIONS_DIR", "PAGES_DIR", "STATIC_DIR",
		"MAILCHIMP_API_KEY", "MAILCHIMP_BASE_URL", "MAILCHIMP_TIMEOUT", "MAILCHIMP_MAX_RETRIES",
		"MAILCHIMP_RETRY_BASE_DELAY", "EMAIL_PROVIDER", "CSRF_KEY", "ALLOWED_ORIGINS",
		"REGISTRATION_RATE_LIMIT", "TRUST_PROXY", "SITE_CONFIG", "SITE_BASE_URL",
	} {
		t.Setenv(k, "")
	}
	// Keep a developer's .env out of the test.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.Production())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data", cfg.ContentDir)
	assert.Equal(t, "pres", cfg.PresentationsDir)
	assert.Equal(t, 5*time.Second, cfg.Mailchimp.Timeout)
	assert.Equal(t, uint64(2), cfg.Mailchimp.MaxRetries)
	assert.Equal(t, 10, cfg.RegistrationRateLimit)
	assert.False(t, cfg.TrustProxy, "proxy headers are ignored unless enabled")
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Len(t, cfg.CSRFKey, 32)
	assert.Equal(t, DefaultSite(), cfg.Site)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("MAILCHIMP_API_KEY", "abc-us6")
	t.Setenv("MAILCHIMP_TIMEOUT", "3s")
	t.Setenv("MAILCHIMP_MAX_RETRIES", "0")
	t.Setenv("ALLOWED_ORIGINS", "https://a.test, https://b.test/ ,")
	t.Setenv("CSRF_KEY", strings.Repeat("k", 32))
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "abc-us6", cfg.Mailchimp.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Mailchimp.Timeout)
	assert.Equal(t, uint64(0), cfg.Mailchimp.MaxRetries)
	assert.Equal(t, []string{"https://a.test", "https://b.test/"}, cfg.AllowedOrigins)
	assert.Equal(t, []byte(strings.Repeat("k", 32)), cfg.CSRFKey)
	assert.True(t, cfg.TrustProxy)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad timeout", map[string]string{"MAILCHIMP_TIMEOUT": "soon"}},
		{"negative retries", map[string]string{"MAILCHIMP_MAX_RETRIES": "-1"}},
		{"bad trust proxy", map[string]string{"TRUST_PROXY": "sometimes"}},
		{"short csrf key", map[string]string{"CSRF_KEY": "short"}},
		{"production without csrf key", map[string]string{"GO_ENV": "production"}},
		{"missing site file", map[string]string{"SITE_CONFIG": "/does/not/exist.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_SiteYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: Web Standards Days
base_url: https://wsd.events
messages:
  already_registered: "Адрес электронной почты {email} уже зарегистрирован"
  unexpected_error: "Возникла непредвиденная ошибка"
  months: [января, февраля, марта, апреля, мая, июня, июля, августа, сентября, октября, ноября, декабря]
`), 0o644))
	t.Setenv("SITE_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://wsd.events", cfg.Site.BaseURL)
	assert.Equal(t, "Адрес электронной почты {email} уже зарегистрирован", cfg.Site.Messages.AlreadyRegistered)
	assert.Equal(t, "марта", cfg.Site.Messages.Months[2])
	assert.Equal(t, DefaultSite().Messages.RegistrationThanks, cfg.Site.Messages.RegistrationThanks, "unset keys keep defaults")
}

func TestLoad_SiteYAMLWrongMonths(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("messages:\n  months: [jan]\n"), 0o644))
	t.Setenv("SITE_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])

	buf.Reset()
	newLogger(&buf, "development", "").Debug("hidden")
	assert.Empty(t, buf.String())
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
}
