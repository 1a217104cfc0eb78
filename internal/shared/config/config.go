package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Provider names accepted in LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds application configuration. It is loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	Env          string `env:"ENV" envDefault:"dev"`
	Port         string `env:"PORT" envDefault:"8080"`
	Organization string `env:"ORGANIZATION_NAME" envDefault:"GEOLABS, INC."`

	CORSAllowOrigin []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"https://www.geolabs-employment.net,https://geolabs-employment.net,http://localhost:5173,http://127.0.0.1:5173"`
	TrustedProxies  []string `env:"TRUSTED_PROXIES" envSeparator:"," validate:"dive,cidr|ip"`

	LLMProvider   string `env:"LLM_PROVIDER" envDefault:"gemini" validate:"oneof=gemini openai"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-pro"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1" validate:"url"`

	MailTo          string        `env:"APPLICATION_MAIL_TO" envDefault:"hr@example.com" validate:"required,email"`
	MailFrom        string        `env:"APPLICATION_MAIL_FROM" envDefault:"no-reply@example.com" validate:"required,email"`
	SMTPHost        string        `env:"SMTP_HOST"`
	SMTPPort        int           `env:"SMTP_PORT" envDefault:"587" validate:"min=1,max=65535"`
	SMTPUser        string        `env:"SMTP_USER"`
	SMTPPass        string        `env:"SMTP_PASS"`
	SMTPUseTLS      bool          `env:"SMTP_USE_TLS" envDefault:"true"`
	SMTPDialTimeout time.Duration `env:"SMTP_DIAL_TIMEOUT" envDefault:"20s"`

	MaxUploadMB     int64 `env:"MAX_UPLOAD_MB" envDefault:"10" validate:"min=1"`
	RateLimitPerMin int   `env:"RATE_LIMIT_PER_MIN" envDefault:"30" validate:"min=0"`

	ArchiveStore string `env:"ARCHIVE_STORE" validate:"omitempty,oneof=local s3"`
	ArchiveDir   string `env:"ARCHIVE_DIR" envDefault:"./data"`
	AWSRegion    string `env:"AWS_REGION"`
	S3Bucket     string `env:"S3_BUCKET" validate:"required_if=ArchiveStore s3"`
	S3Prefix     string `env:"S3_PREFIX"`
	SSEKMSKeyID  string `env:"SSE_KMS_KEY_ID"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.ArchiveStore = strings.ToLower(strings.TrimSpace(cfg.ArchiveStore))
	cfg.CORSAllowOrigin = trimAll(cfg.CORSAllowOrigin)
	cfg.TrustedProxies = trimAll(cfg.TrustedProxies)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	if cfg.plainTextCredentials() {
		return Config{}, fmt.Errorf("validate config: SMTP_USER requires SMTP_USE_TLS=true or SMTP_PORT=465 unless SMTP_HOST is localhost")
	}
	return cfg, nil
}

// plainTextCredentials reports settings under which net/smtp refuses to send
// the password: credentials over an unencrypted link to a remote host.
func (c Config) plainTextCredentials() bool {
	if !c.MailConfigured() || c.SMTPUser == "" || c.SMTPUseTLS || c.SMTPPort == 465 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(c.SMTPHost)) {
	case "localhost", "127.0.0.1", "::1":
		return false
	}
	return true
}

// ModelConfigured reports whether the active provider has an API credential.
func (c Config) ModelConfigured() bool {
	return strings.TrimSpace(c.ModelAPIKey()) != ""
}

// ModelAPIKey returns the credential for the active provider.
func (c Config) ModelAPIKey() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// ActiveModel returns the model name for the active provider.
func (c Config) ActiveModel() string {
	if c.LLMProvider == ProviderOpenAI {
		return c.OpenAIModel
	}
	return c.GeminiModel
}

// MailConfigured reports whether an SMTP endpoint is set.
func (c Config) MailConfigured() bool {
	return strings.TrimSpace(c.SMTPHost) != ""
}

// ArchiveEnabled reports whether rendered submissions are archived.
func (c Config) ArchiveEnabled() bool {
	return c.ArchiveStore != ""
}

// MaxUploadBytes returns the request body cap for uploads.
func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func trimAll(in []string) []string {
	var out []string
	for _, p := range in {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "test":
		return "test"
	default:
		return "dev"
	}
}
