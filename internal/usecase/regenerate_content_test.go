package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/infra/integration/openrouter"
	"github.com/xavierca1/leadmail/internal/infra/memory"
	"github.com/xavierca1/leadmail/internal/infra/queue"
)

func seededRepo(t *testing.T) (*memory.EmailRepository, *entity.GeneratedEmail) {
	t.Helper()
	repo := memory.NewEmailRepository()
	email := entity.NewGeneratedEmail(entity.Lead{Name: "Jane", Company: "XYZ", Product: "Cloud"}, "Old subject", "Old body")
	require.NoError(t, repo.Create(context.Background(), email))
	return repo, email
}

func TestRegenerateSubject(t *testing.T) {
	repo, email := seededRepo(t)
	completion := new(MockCompletionClient)
	completion.On("Complete", mock.Anything, mock.MatchedBy(func(in openrouter.CompletionInput) bool {
		return in.MaxTokens == 100
	})).Return("  Subject: \"Fresh angle for XYZ\"\n", nil)

	uc := NewRegenerateContentUseCase(repo, completion, nil, nil)
	out, err := uc.Execute(context.Background(), RegenerateContentInput{ID: email.ID, Part: PartSubject, SenderDetails: validSender()})

	require.NoError(t, err)
	assert.Equal(t, "Fresh angle for XYZ", out.RegeneratedContent)
	assert.Equal(t, "Fresh angle for XYZ", out.Email.Subject)
	assert.Equal(t, "Old body", out.Email.Body)
	assert.True(t, out.Email.IsEdited)

	stored, _ := repo.FindByID(context.Background(), email.ID)
	assert.Equal(t, out.Email, *stored)
}

func TestRegenerateBody(t *testing.T) {
	repo, email := seededRepo(t)
	completion := new(MockCompletionClient)
	completion.On("Complete", mock.Anything, mock.MatchedBy(func(in openrouter.CompletionInput) bool {
		return in.MaxTokens == 1000 && in.Temperature == 0.85
	})).Return("\n  Dear Jane,\n\nNew body.  \n", nil)

	events := new(MockEventPublisher)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e queue.EmailEvent) bool {
		return e.Type == queue.EventEmailRegenerated && e.Part == "body" && e.EmailID == email.ID
	})).Return(nil)

	uc := NewRegenerateContentUseCase(repo, completion, events, nil)
	out, err := uc.Execute(context.Background(), RegenerateContentInput{ID: email.ID, Part: PartBody, SenderDetails: validSender()})

	require.NoError(t, err)
	assert.Equal(t, "Dear Jane,\n\nNew body.", out.Email.Body)
	assert.Equal(t, "Old subject", out.Email.Subject)
	assert.True(t, out.Email.IsEdited)
	events.AssertExpectations(t)
}

func TestRegenerateFailsFast(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{"completion error", "", errors.New("upstream 502")},
		{"empty reply", "   \n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, email := seededRepo(t)
			before, _ := repo.FindByID(context.Background(), email.ID)

			completion := new(MockCompletionClient)
			completion.On("Complete", mock.Anything, mock.Anything).Return(tt.reply, tt.err)

			uc := NewRegenerateContentUseCase(repo, completion, nil, nil)
			_, err := uc.Execute(context.Background(), RegenerateContentInput{ID: email.ID, Part: PartBody, SenderDetails: validSender()})

			require.Error(t, err)
			assert.True(t, IsTechnicalError(err))
			assert.Equal(t, CodeCompletionFailed, ErrorCode(err))

			after, _ := repo.FindByID(context.Background(), email.ID)
			assert.Equal(t, before, after)
		})
	}
}

func TestRegenerateUnknownEmail(t *testing.T) {
	completion := new(MockCompletionClient)
	uc := NewRegenerateContentUseCase(memory.NewEmailRepository(), completion, nil, nil)

	_, err := uc.Execute(context.Background(), RegenerateContentInput{ID: 9, Part: PartSubject, SenderDetails: validSender()})

	assert.Equal(t, CodeEmailNotFound, ErrorCode(err))
	assert.ErrorIs(t, err, entity.ErrEmailNotFound)
	completion.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestRegenerateRejectsBadPart(t *testing.T) {
	repo, email := seededRepo(t)
	uc := NewRegenerateContentUseCase(repo, new(MockCompletionClient), nil, nil)

	_, err := uc.Execute(context.Background(), RegenerateContentInput{ID: email.ID, Part: "signature", SenderDetails: validSender()})

	assert.Equal(t, CodeValidation, ErrorCode(err))
}
