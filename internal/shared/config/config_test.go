package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SMTP_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "GEOLABS, INC.", cfg.Organization)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.5-pro", cfg.ActiveModel())
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.True(t, cfg.SMTPUseTLS)
	assert.Equal(t, 20*time.Second, cfg.SMTPDialTimeout)
	assert.Contains(t, cfg.CORSAllowOrigin, "http://localhost:5173")
	assert.False(t, cfg.ModelConfigured())
	assert.False(t, cfg.MailConfigured())
	assert.False(t, cfg.ArchiveEnabled())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoadOpenAIProvider(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.ModelConfigured())
	assert.Equal(t, "gpt-4o", cfg.ActiveModel())
	assert.Equal(t, "sk-test", cfg.ModelAPIKey())
}

func TestLoadRejectsInvalidRecipient(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APPLICATION_MAIL_TO", "not-an-address")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRequiresBucketForS3Archive(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ARCHIVE_STORE", "s3")
	t.Setenv("S3_BUCKET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsPlainTextSMTPCredentials(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_USE_TLS", "false")
	t.Setenv("SMTP_PORT", "587")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_USE_TLS")

	t.Setenv("SMTP_PORT", "465")
	_, err = Load()
	require.NoError(t, err)

	t.Setenv("SMTP_PORT", "25")
	t.Setenv("SMTP_HOST", "localhost")
	_, err = Load()
	require.NoError(t, err)
}

func TestLoadTrustedProxies(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, 192.0.2.10 ")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.10"}, cfg.TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "not-an-ip")
	_, err = Load()
	require.Error(t, err)
}

func TestLoadEnvFilesDoesNotOverrideProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nSMTP_HOST=smtp.from-file\nexport SMTP_USER=\"file-user\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("SMTP_HOST", "smtp.from-env")
	t.Setenv("SMTP_USER", "")
	os.Unsetenv("SMTP_USER")

	loadEnvFiles(path)
	t.Cleanup(func() { os.Unsetenv("SMTP_USER") })

	assert.Equal(t, "smtp.from-env", os.Getenv("SMTP_HOST"))
	assert.Equal(t, "file-user", os.Getenv("SMTP_USER"))
}
