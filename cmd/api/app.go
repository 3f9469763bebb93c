package main

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/config"
	"github.com/xavierca1/leadmail/internal/infra/http/handlers"
	"github.com/xavierca1/leadmail/internal/infra/http/middleware"
	"github.com/xavierca1/leadmail/internal/infra/http/router"
	"github.com/xavierca1/leadmail/internal/infra/integration/openrouter"
	"github.com/xavierca1/leadmail/internal/infra/mail"
	"github.com/xavierca1/leadmail/internal/infra/memory"
	"github.com/xavierca1/leadmail/internal/infra/queue"
	"github.com/xavierca1/leadmail/internal/usecase"
	"github.com/xavierca1/leadmail/web"
)

// app owns every long-lived dependency of the server.
type app struct {
	cfg *config.Config
	log *zap.Logger

	repo       *memory.EmailRepository
	completion *openrouter.Client
	broker     *queue.RabbitMQ
	events     queue.Publisher
	mailer     usecase.ExportMailer
	limiter    *middleware.RateLimiter

	generateUC   *usecase.GenerateEmailsUseCase
	regenerateUC *usecase.RegenerateContentUseCase
	listUC       *usecase.ListEmailsUseCase
	updateUC     *usecase.UpdateEmailUseCase
	deleteUC     *usecase.DeleteEmailUseCase
	exportUC     *usecase.ExportEmailsUseCase
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, events: queue.NoopPublisher{}}

	// 1. Store
	a.repo = memory.NewEmailRepository()

	// 2. Integrations
	a.completion = openrouter.NewClient(openrouter.Config{
		APIKey:   cfg.Completion.APIKey,
		BaseURL:  cfg.Completion.BaseURL,
		Model:    cfg.Completion.Model,
		Timeout:  cfg.Completion.Timeout,
		SiteURL:  cfg.Completion.SiteURL,
		SiteName: cfg.Completion.SiteName,
		Observe:  middleware.ObserveCompletion,
	})

	if cfg.MQ.URL != "" {
		broker, err := queue.NewRabbitMQ(cfg.MQ.URL)
		if err != nil {
			return nil, err
		}
		a.broker = broker
		a.events = queue.NewProducer(broker.Ch)
		log.Info("publishing email events", zap.String("exchange", queue.ExchangeName))
	}

	if cfg.Mail.Enabled() {
		a.mailer = mail.NewEmailSender(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From)
	}

	if cfg.Server.GenerateRateLimit > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.Server.GenerateRateLimit, time.Minute)
	}

	// 3. Use cases
	a.generateUC = usecase.NewGenerateEmailsUseCase(a.repo, a.completion, a.events, middleware.GenerationMetrics{}, log, cfg.Generation.Concurrency)
	a.regenerateUC = usecase.NewRegenerateContentUseCase(a.repo, a.completion, a.events, log)
	a.listUC = usecase.NewListEmailsUseCase(a.repo)
	a.updateUC = usecase.NewUpdateEmailUseCase(a.repo, a.events, log)
	a.deleteUC = usecase.NewDeleteEmailUseCase(a.repo, a.events, log)
	a.exportUC = usecase.NewExportEmailsUseCase(a.repo, a.mailer, log)

	return a, nil
}

func (a *app) handler() (http.Handler, error) {
	page, err := handlers.NewPageHandler(web.Assets, a.exportUC.MailEnabled(), a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to load page assets: %w", err)
	}

	var broker handlers.BrokerStatus
	if a.broker != nil {
		broker = a.broker
	}

	return router.New(router.Handlers{
		Email: &handlers.EmailHandler{
			GenerateUC:   a.generateUC,
			RegenerateUC: a.regenerateUC,
			ListUC:       a.listUC,
			UpdateUC:     a.updateUC,
			DeleteUC:     a.deleteUC,
			ExportUC:     a.exportUC,
			Logger:       a.log,
		},
		Lead:   handlers.NewLeadHandler(a.log),
		Upload: handlers.NewUploadHandler(a.log),
		Health: handlers.NewHealthHandler(broker, a.repo, a.completion.Model(), a.exportUC.MailEnabled()),
		Page:   page,
	}, router.Options{
		AllowedOrigins:  a.cfg.Server.CORSAllowedOrigins,
		GenerateLimiter: a.limiter,
		Logger:          a.log,
	}), nil
}

func (a *app) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			a.log.Warn("failed to close broker connection", zap.Error(err))
		}
	}
}
