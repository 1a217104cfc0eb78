package bootstrap

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"application-backend/internal/applications"
	"application-backend/internal/forms/build"
	"application-backend/internal/forms/render"
	"application-backend/internal/llm"
	"application-backend/internal/llm/gemini"
	"application-backend/internal/llm/openai"
	"application-backend/internal/mailer"
	"application-backend/internal/resumes"
	"application-backend/internal/services/health"
	"application-backend/internal/shared/config"
	"application-backend/internal/shared/server"
	"application-backend/internal/shared/storage/object"
	localstore "application-backend/internal/shared/storage/object/local"
	s3store "application-backend/internal/shared/storage/object/s3"
	"application-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	Generator          llm.Generator
	Archive            object.ObjectStore
	Mailer             *mailer.SMTPSender
	Builder            *build.Builder
	ResumeService      *resumes.Service
	ApplicationService *applications.Service
	HealthService      *health.Service

	closers []io.Closer
}

// Build prepares every dependency and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	gen, err := app.buildGenerator(ctx)
	if err != nil {
		return nil, err
	}
	app.Generator = gen

	archive, err := buildArchive(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Archive = archive

	app.Mailer = mailer.NewSMTP(mailer.Config{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		User:        cfg.SMTPUser,
		Pass:        cfg.SMTPPass,
		UseTLS:      cfg.SMTPUseTLS,
		DialTimeout: cfg.SMTPDialTimeout,
	})
	app.Builder = build.New(render.New(), build.Options{Organization: cfg.Organization})
	app.ResumeService = resumes.NewService(gen)
	app.ApplicationService = applications.NewService(app.Builder, app.Mailer, archive, cfg.MailFrom, cfg.MailTo)
	app.HealthService = health.NewService(health.Probes{
		Provider:       cfg.LLMProvider,
		Model:          cfg.ActiveModel(),
		MailTo:         cfg.MailTo,
		ModelReady:     cfg.ModelConfigured,
		SMTPReady:      app.Mailer.Configured,
		ArchiveEnabled: archive != nil,
	})

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		ResumeHandler:      resumes.NewHandler(app.ResumeService, cfg.MaxUploadBytes()),
		ApplicationHandler: applications.NewHandler(app.ApplicationService, cfg.MaxUploadBytes()),
		Health:             app.HealthService,
	})

	logStartup(cfg)
	return app, nil
}

// Close releases provider clients.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// buildGenerator picks the model client for the configured provider. A
// missing key yields llm.Unconfigured so parsing always falls back.
func (a *App) buildGenerator(ctx context.Context) (llm.Generator, error) {
	cfg := a.Config
	if !cfg.ModelConfigured() {
		return llm.Unconfigured{Model: cfg.ActiveModel()}, nil
	}
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client)
		return client, nil
	}
}

func buildArchive(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ArchiveStore {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "local":
		return localstore.New(cfg.ArchiveDir), nil
	default:
		return nil, nil
	}
}

func logStartup(cfg config.Config) {
	fields := map[string]any{
		"env":             cfg.Env,
		"provider":        cfg.LLMProvider,
		"model":           cfg.ActiveModel(),
		"autofill_ready":  cfg.ModelConfigured(),
		"smtp_ready":      cfg.MailConfigured(),
		"archive_enabled": cfg.ArchiveEnabled(),
		"archive_store":   cfg.ArchiveStore,
		"mail_to":         cfg.MailTo,
		"allowed_origins": strings.Join(cfg.CORSAllowOrigin, ","),
	}
	telemetry.Info("bootstrap.ready", fields)
	if !cfg.ModelConfigured() {
		telemetry.Warn("bootstrap.model_not_configured", map[string]any{
			"provider": cfg.LLMProvider,
			"detail":   "resume autofill will use the regex fallback",
		})
	}
	if !cfg.MailConfigured() {
		telemetry.Warn("bootstrap.smtp_not_configured", map[string]any{
			"detail": "application submissions will fail until SMTP_HOST is set",
		})
	}
}
