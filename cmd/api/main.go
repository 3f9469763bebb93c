package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/config"
	"github.com/xavierca1/leadmail/internal/infra/http/handlers"
	"github.com/xavierca1/leadmail/internal/logger"
)

type rootOptions struct {
	configPath string

	cfg *config.Config
	log *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "leadmail",
		Short:         "Draft personalized cold emails from a CSV of leads",
		Version:       handlers.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (default $LEADMAIL_CONFIG or ./config.yaml)")

	root.AddCommand(newServeCmd(opts), newGenerateCmd(opts))
	return root
}

// load reads .env, the config file and the environment, then validates the
// result. A missing API key stops every command here.
func (o *rootOptions) load() error {
	_ = godotenv.Load()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.log = log
	return nil
}
