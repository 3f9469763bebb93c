package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/infra/leadcsv"
)

const ExportFilename = "generated-emails.csv"

// ExportEmailsUseCase renders stored emails as CSV and optionally mails them.
type ExportEmailsUseCase struct {
	Repo   entity.EmailRepositoryInterface
	Mailer ExportMailer
	Logger *zap.Logger
}

// NewExportEmailsUseCase accepts a nil mailer; Mail then reports that mail
// delivery is not configured.
func NewExportEmailsUseCase(repo entity.EmailRepositoryInterface, mailer ExportMailer, logger *zap.Logger) *ExportEmailsUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportEmailsUseCase{Repo: repo, Mailer: mailer, Logger: logger}
}

func (uc *ExportEmailsUseCase) Execute(ctx context.Context, input ExportEmailsInput) (*ExportEmailsOutput, error) {
	filter := input.Filter
	if filter == "" {
		filter = entity.FilterAll
	}
	if !filter.Valid() {
		return nil, newValidationError(ValidationErrors{{"filter", "must be all, reviewed or edited"}})
	}

	emails, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	selected := entity.FilterEmails(emails, filter)

	return &ExportEmailsOutput{
		Filename: ExportFilename,
		CSV:      leadcsv.FormatEmails(selected),
		Count:    len(selected),
	}, nil
}

func (uc *ExportEmailsUseCase) MailEnabled() bool {
	return uc.Mailer != nil
}

// Mail sends the export to input.To as an attachment.
func (uc *ExportEmailsUseCase) Mail(ctx context.Context, input ExportMailInput) (*ExportMailOutput, error) {
	if uc.Mailer == nil {
		return nil, &DomainError{Code: CodeMailNotEnabled, Message: "Mail delivery is not configured"}
	}
	if errs := ValidateExportMailInput(input); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	export, err := uc.Execute(ctx, ExportEmailsInput{Filter: input.Filter})
	if err != nil {
		return nil, err
	}

	if err := uc.Mailer.SendExport(ctx, input.To, export.Filename, export.CSV, export.Count); err != nil {
		uc.Logger.Error("failed to mail export", zap.String("to", input.To), zap.Error(err))
		return nil, &TechnicalError{Code: CodeMailFailed, Message: "Error sending export", Err: err}
	}

	uc.Logger.Info("export mailed", zap.String("to", input.To), zap.Int("emails", export.Count))
	return &ExportMailOutput{To: input.To, Count: export.Count}, nil
}
