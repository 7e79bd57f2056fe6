package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
app:
  name: mundolaboral-api
  environment: test
server:
  port: 9090
mail:
  provider: smtp
  from_email: no-reply@mundolaboral.example
  recipient: talento.mundolaboral@gmail.com
  smtp:
    host: smtp.gmail.com
    username: bot@gmail.com
    password: app-password
    use_tls: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.SMTP.Host)
	assert.True(t, cfg.Mail.SMTP.UseTLS)

	// defaults fill what the file leaves out
	assert.Equal(t, 587, cfg.Mail.SMTP.Port)
	assert.Equal(t, int64(5*1024*1024), cfg.Uploads.MaxFileSize)
	assert.Equal(t, 6, cfg.Registration.MinPasswordLength)
	assert.Equal(t, 3000, cfg.Registration.RedirectDelay)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFileExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_SMTP_PASSWORD", "expanded-secret")

	path := writeConfig(t, `
mail:
  provider: smtp
  from_email: no-reply@mundolaboral.example
  recipient: talento.mundolaboral@gmail.com
  smtp:
    host: smtp.gmail.com
    password: ${TEST_SMTP_PASSWORD}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "expanded-secret", cfg.Mail.SMTP.Password)
}

func TestLoadFromFileCredentialFallback(t *testing.T) {
	t.Setenv("GMAIL_USER", "fallback@gmail.com")
	t.Setenv("GMAIL_PASSWORD", "fallback-password")

	path := writeConfig(t, `
mail:
  provider: smtp
  recipient: talento.mundolaboral@gmail.com
  smtp:
    host: smtp.gmail.com
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "fallback@gmail.com", cfg.Mail.SMTP.Username)
	assert.Equal(t, "fallback-password", cfg.Mail.SMTP.Password)
	// from_email inherits the SMTP account when unset
	assert.Equal(t, "fallback@gmail.com", cfg.Mail.FromEmail)
}

func TestLoadFromFileRejectsBadProvider(t *testing.T) {
	path := writeConfig(t, `
mail:
  provider: carrier-pigeon
  from_email: a@b.co
  recipient: c@d.co
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail.provider")
}

func TestLoadFromFileRequiresSMTPHost(t *testing.T) {
	path := writeConfig(t, `
mail:
  provider: smtp
  from_email: a@b.co
  recipient: c@d.co
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail.smtp.host")
}

func TestLoadFromFileRequiresSESRegion(t *testing.T) {
	path := writeConfig(t, `
mail:
  provider: ses
  from_email: a@b.co
  recipient: c@d.co
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail.ses.region")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, GetDuration(3000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
