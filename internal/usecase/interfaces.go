package usecase

import (
	"context"

	"github.com/xavierca1/leadmail/internal/infra/integration/openrouter"
	"github.com/xavierca1/leadmail/internal/infra/queue"
)

// CompletionClient sends one prompt to the chat-completion API and returns
// the text of the first choice.
type CompletionClient interface {
	Complete(ctx context.Context, input openrouter.CompletionInput) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event queue.EmailEvent) error
}

type ExportMailer interface {
	SendExport(ctx context.Context, to, filename string, csv []byte, count int) error
}

// GenerationMetrics receives one call per lead processed by a batch.
type GenerationMetrics interface {
	RecordEmailGenerated(source string)
	RecordLeadSkipped(reason string)
}

type noopMetrics struct{}

func (noopMetrics) RecordEmailGenerated(string) {}
func (noopMetrics) RecordLeadSkipped(string)    {}
