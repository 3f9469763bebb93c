package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/infra/integration/openrouter"
	"github.com/xavierca1/leadmail/internal/infra/queue"
)

const (
	generationTemperature = 0.85
	generationMaxTokens   = 1000
)

// Stages at which a lead can be skipped.
const (
	StagePrompt     = "prompt"
	StageCompletion = "completion"
	StageStorage    = "storage"
)

type skipError struct {
	stage string
	err   error
}

func (e *skipError) Error() string {
	return e.stage + " failed: " + e.err.Error()
}

func (e *skipError) Unwrap() error {
	return e.err
}

type GenerateEmailsUseCase struct {
	Repo        entity.EmailRepositoryInterface
	Completion  CompletionClient
	Events      EventPublisher
	Metrics     GenerationMetrics
	Logger      *zap.Logger
	Concurrency int

	newBatchID func() string
}

func NewGenerateEmailsUseCase(
	repo entity.EmailRepositoryInterface,
	completion CompletionClient,
	events EventPublisher,
	metrics GenerationMetrics,
	logger *zap.Logger,
	concurrency int,
) *GenerateEmailsUseCase {
	if events == nil {
		events = queue.NoopPublisher{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &GenerateEmailsUseCase{
		Repo:        repo,
		Completion:  completion,
		Events:      events,
		Metrics:     metrics,
		Logger:      logger,
		Concurrency: concurrency,
		newBatchID:  func() string { return uuid.New().String() },
	}
}

// Execute drafts one email per lead. A lead that fails is logged, left out of
// Emails and listed in Skipped; the other leads carry on. Emails keeps the
// order of input.Leads.
func (uc *GenerateEmailsUseCase) Execute(ctx context.Context, input GenerateEmailsInput) (*GenerateEmailsOutput, error) {
	if errs := ValidateGenerateEmailsInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	sender := input.SenderDetails.WithDefaults()
	batchID := uc.newBatchID()
	log := uc.Logger.With(zap.String("batch_id", batchID))
	log.Info("generating emails", zap.Int("leads", len(input.Leads)), zap.Int("concurrency", uc.Concurrency))

	results := make([]*entity.GeneratedEmail, len(input.Leads))
	failures := make([]error, len(input.Leads))

	var g errgroup.Group
	g.SetLimit(uc.Concurrency)
	for i, lead := range input.Leads {
		g.Go(func() error {
			email, err := uc.generateOne(ctx, batchID, sender, lead)
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = email
			return nil
		})
	}
	_ = g.Wait()

	out := &GenerateEmailsOutput{
		BatchID: batchID,
		Emails:  make([]entity.GeneratedEmail, 0, len(input.Leads)),
		Skipped: []SkippedLead{},
	}
	for i, lead := range input.Leads {
		if err := failures[i]; err != nil {
			log.Warn("lead skipped",
				zap.Int("index", i),
				zap.String("recipient", lead.Name),
				zap.Error(err),
			)
			uc.Metrics.RecordLeadSkipped(skipStage(err))
			out.Skipped = append(out.Skipped, SkippedLead{Index: i, RecipientName: lead.Name, Reason: err.Error()})
			continue
		}
		out.Emails = append(out.Emails, *results[i])
	}

	log.Info("generation finished", zap.Int("generated", len(out.Emails)), zap.Int("skipped", len(out.Skipped)))
	return out, nil
}

func (uc *GenerateEmailsUseCase) generateOne(ctx context.Context, batchID string, sender entity.SenderDetails, lead entity.Lead) (*entity.GeneratedEmail, error) {
	prompt, err := BuildEmailPrompt(sender, lead)
	if err != nil {
		return nil, &skipError{StagePrompt, err}
	}

	reply, err := uc.Completion.Complete(ctx, openrouter.CompletionInput{
		Prompt:      prompt,
		Temperature: generationTemperature,
		MaxTokens:   generationMaxTokens,
	})
	if err != nil {
		return nil, &skipError{StageCompletion, err}
	}

	content := ExtractEmailContent(reply, sender, lead)
	if content.Source == SourceTemplate {
		uc.Logger.Debug("reply not usable, template content stored",
			zap.String("batch_id", batchID),
			zap.String("recipient", lead.Name),
		)
	}

	email := entity.NewGeneratedEmail(lead, content.Subject, content.Body)
	if err := uc.Repo.Create(ctx, email); err != nil {
		return nil, &skipError{StageStorage, err}
	}
	uc.Metrics.RecordEmailGenerated(content.Source)

	publish(ctx, uc.Events, uc.Logger, queue.EmailEvent{
		Type:             queue.EventEmailGenerated,
		EmailID:          email.ID,
		RecipientName:    email.RecipientName,
		RecipientCompany: email.RecipientCompany,
		BatchID:          batchID,
	})

	return email, nil
}

func skipStage(err error) string {
	if se, ok := err.(*skipError); ok {
		return se.stage
	}
	return "unknown"
}

// publish sends event and only logs a failure.
func publish(ctx context.Context, events EventPublisher, log *zap.Logger, event queue.EmailEvent) {
	if err := events.Publish(ctx, event); err != nil {
		log.Warn("failed to publish event",
			zap.String("type", event.Type),
			zap.Int("email_id", event.EmailID),
			zap.Error(err),
		)
	}
}

func ptr[T any](v T) *T { return &v }

