package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/infra/integration/openrouter"
	"github.com/xavierca1/leadmail/internal/infra/queue"
)

const subjectMaxTokens = 100

var errEmptyReply = errors.New("completion returned empty content")

// RegenerateContentUseCase rewrites the subject or body of a stored email.
// Any failure leaves the stored email untouched.
type RegenerateContentUseCase struct {
	Repo       entity.EmailRepositoryInterface
	Completion CompletionClient
	Events     EventPublisher
	Logger     *zap.Logger
}

func NewRegenerateContentUseCase(
	repo entity.EmailRepositoryInterface,
	completion CompletionClient,
	events EventPublisher,
	logger *zap.Logger,
) *RegenerateContentUseCase {
	if events == nil {
		events = queue.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegenerateContentUseCase{
		Repo:       repo,
		Completion: completion,
		Events:     events,
		Logger:     logger,
	}
}

func (uc *RegenerateContentUseCase) Execute(ctx context.Context, input RegenerateContentInput) (*RegenerateContentOutput, error) {
	if errs := ValidateRegenerateContentInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}
	sender := input.SenderDetails.WithDefaults()

	existing, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, storeError(err)
	}

	prompt, err := BuildRegeneratePrompt(input.Part, sender, *existing)
	if err != nil {
		return nil, &TechnicalError{Code: CodeCompletionFailed, Message: "Error building prompt", Err: err}
	}

	maxTokens := generationMaxTokens
	if input.Part == PartSubject {
		maxTokens = subjectMaxTokens
	}

	reply, err := uc.Completion.Complete(ctx, openrouter.CompletionInput{
		Prompt:      prompt,
		Temperature: generationTemperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		uc.Logger.Error("regeneration failed", zap.Int("email_id", input.ID), zap.String("part", string(input.Part)), zap.Error(err))
		return nil, &TechnicalError{Code: CodeCompletionFailed, Message: "Error regenerating email content", Err: err}
	}

	content := strings.TrimSpace(reply)
	if input.Part == PartSubject {
		content = CleanSubject(content)
	}
	if content == "" {
		return nil, &TechnicalError{Code: CodeCompletionFailed, Message: "Error regenerating email content", Err: errEmptyReply}
	}

	patch := entity.EmailPatch{IsEdited: ptr(true)}
	if input.Part == PartSubject {
		patch.Subject = &content
	} else {
		patch.Body = &content
	}

	updated, err := uc.Repo.Update(ctx, input.ID, patch)
	if err != nil {
		return nil, storeError(err)
	}

	publish(ctx, uc.Events, uc.Logger, queue.EmailEvent{
		Type:             queue.EventEmailRegenerated,
		EmailID:          updated.ID,
		RecipientName:    updated.RecipientName,
		RecipientCompany: updated.RecipientCompany,
		Part:             string(input.Part),
	})

	return &RegenerateContentOutput{Email: *updated, RegeneratedContent: content}, nil
}

// storeError classifies an error returned by the email repository.
func storeError(err error) error {
	if errors.Is(err, entity.ErrEmailNotFound) {
		return newNotFoundError(err)
	}
	return &TechnicalError{Code: CodeStorageFailed, Message: "Error accessing email store", Err: err}
}
