package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/infra/integration/openrouter"
	"github.com/xavierca1/leadmail/internal/infra/queue"
)

// MockCompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, input openrouter.CompletionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

// MockEventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event queue.EmailEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockExportMailer
type MockExportMailer struct {
	mock.Mock
}

func (m *MockExportMailer) SendExport(ctx context.Context, to, filename string, csv []byte, count int) error {
	args := m.Called(ctx, to, filename, csv, count)
	return args.Error(0)
}

// MockEmailRepository
type MockEmailRepository struct {
	mock.Mock
}

func (m *MockEmailRepository) Create(ctx context.Context, email *entity.GeneratedEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockEmailRepository) List(ctx context.Context) ([]entity.GeneratedEmail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.GeneratedEmail), args.Error(1)
}

func (m *MockEmailRepository) FindByID(ctx context.Context, id int) (*entity.GeneratedEmail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GeneratedEmail), args.Error(1)
}

func (m *MockEmailRepository) Update(ctx context.Context, id int, patch entity.EmailPatch) (*entity.GeneratedEmail, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.GeneratedEmail), args.Error(1)
}

func (m *MockEmailRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// recordingMetrics counts calls; safe for concurrent use.
type recordingMetrics struct {
	mock.Mock
}

func (m *recordingMetrics) RecordEmailGenerated(source string) { m.Called(source) }
func (m *recordingMetrics) RecordLeadSkipped(reason string)    { m.Called(reason) }

func validSender() entity.SenderDetails {
	return entity.SenderDetails{
		Name:               "Alex Doe",
		Company:            "Acme Analytics",
		ProductDescription: "Predictive analytics for supply chains",
		EmailTone:          entity.ToneFriendly,
	}
}
