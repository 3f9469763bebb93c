package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/infra/queue"
)

type ListEmailsUseCase struct {
	Repo entity.EmailRepositoryInterface
}

func NewListEmailsUseCase(repo entity.EmailRepositoryInterface) *ListEmailsUseCase {
	return &ListEmailsUseCase{Repo: repo}
}

func (uc *ListEmailsUseCase) Execute(ctx context.Context) ([]entity.GeneratedEmail, error) {
	emails, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	if emails == nil {
		emails = []entity.GeneratedEmail{}
	}
	return emails, nil
}

// UpdateEmailUseCase applies a user edit or review toggle.
type UpdateEmailUseCase struct {
	Repo   entity.EmailRepositoryInterface
	Events EventPublisher
	Logger *zap.Logger
}

func NewUpdateEmailUseCase(repo entity.EmailRepositoryInterface, events EventPublisher, logger *zap.Logger) *UpdateEmailUseCase {
	if events == nil {
		events = queue.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdateEmailUseCase{Repo: repo, Events: events, Logger: logger}
}

func (uc *UpdateEmailUseCase) Execute(ctx context.Context, input UpdateEmailInput) (*entity.GeneratedEmail, error) {
	updated, err := uc.Repo.Update(ctx, input.ID, input.Patch)
	if err != nil {
		return nil, storeError(err)
	}

	if !input.Patch.IsEmpty() {
		publish(ctx, uc.Events, uc.Logger, queue.EmailEvent{
			Type:             queue.EventEmailUpdated,
			EmailID:          updated.ID,
			RecipientName:    updated.RecipientName,
			RecipientCompany: updated.RecipientCompany,
		})
	}

	return updated, nil
}

type DeleteEmailUseCase struct {
	Repo   entity.EmailRepositoryInterface
	Events EventPublisher
	Logger *zap.Logger
}

func NewDeleteEmailUseCase(repo entity.EmailRepositoryInterface, events EventPublisher, logger *zap.Logger) *DeleteEmailUseCase {
	if events == nil {
		events = queue.NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeleteEmailUseCase{Repo: repo, Events: events, Logger: logger}
}

func (uc *DeleteEmailUseCase) Execute(ctx context.Context, id int) error {
	removed, err := uc.Repo.Delete(ctx, id)
	if err != nil {
		return storeError(err)
	}
	if !removed {
		return newNotFoundError(entity.ErrEmailNotFound)
	}

	publish(ctx, uc.Events, uc.Logger, queue.EmailEvent{Type: queue.EventEmailDeleted, EmailID: id})
	return nil
}
