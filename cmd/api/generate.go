package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/infra/http/middleware"
	"github.com/xavierca1/leadmail/internal/infra/integration/openrouter"
	"github.com/xavierca1/leadmail/internal/infra/leadcsv"
	"github.com/xavierca1/leadmail/internal/infra/memory"
	"github.com/xavierca1/leadmail/internal/usecase"
)

type generateOptions struct {
	csvPath string
	outPath string
	sender  entity.SenderDetails
	tone    string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate emails for a CSV of leads and write them as CSV",
		Example: `  leadmail generate --csv leads.csv --sender-name "Alex Doe" --sender-company Acme \
    --product "Predictive analytics for supply chains" --out emails.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.csvPath, "csv", "", "lead CSV file (required)")
	f.StringVar(&opts.outPath, "out", "-", "output CSV file, - for stdout")
	f.StringVar(&opts.sender.Name, "sender-name", "", "sender name (required)")
	f.StringVar(&opts.sender.Company, "sender-company", "", "sender company (required)")
	f.StringVar(&opts.sender.ProductDescription, "product", "", "description of the product or service (required)")
	f.StringVar(&opts.tone, "tone", string(entity.ToneProfessional), "email tone: professional, friendly, persuasive or urgent")
	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("sender-name")
	_ = cmd.MarkFlagRequired("sender-company")
	_ = cmd.MarkFlagRequired("product")

	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	data, err := os.ReadFile(opts.csvPath)
	if err != nil {
		return err
	}

	parsed, err := usecase.ParseLeads(usecase.ParseLeadsInput{CSV: string(data)})
	if err != nil {
		return err
	}

	cfg := root.cfg
	completion := openrouter.NewClient(openrouter.Config{
		APIKey:   cfg.Completion.APIKey,
		BaseURL:  cfg.Completion.BaseURL,
		Model:    cfg.Completion.Model,
		Timeout:  cfg.Completion.Timeout,
		SiteURL:  cfg.Completion.SiteURL,
		SiteName: cfg.Completion.SiteName,
	})

	opts.sender.EmailTone = entity.EmailTone(opts.tone)
	uc := usecase.NewGenerateEmailsUseCase(memory.NewEmailRepository(), completion, nil, middleware.GenerationMetrics{}, root.log, cfg.Generation.Concurrency)

	out, err := uc.Execute(cmd.Context(), usecase.GenerateEmailsInput{SenderDetails: opts.sender, Leads: parsed.Leads})
	if err != nil {
		return err
	}
	for _, s := range out.Skipped {
		root.log.Warn("no email generated", zap.Int("index", s.Index), zap.String("recipient", s.RecipientName), zap.String("reason", s.Reason))
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.outPath != "-" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := leadcsv.WriteEmails(w, out.Emails); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d emails generated, %d leads skipped\n", len(out.Emails), len(out.Skipped))
	return nil
}
