// Command padelmatch serves the match planner over HTTP and prints roster
// reports.
//
// Usage:
//
//	padelmatch serve
//	padelmatch recommend --limit 10
//	padelmatch pairs --limit 20 --json
//	padelmatch players
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/padelmatch/internal/config"
	"github.com/okian/padelmatch/pkg/logger"
	"github.com/okian/padelmatch/pkg/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// cli carries what every subcommand needs after the root pre-run.
type cli struct {
	envFile    string
	configPath string
	cfg        *config.Config
	log        logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "padelmatch",
		Short:        "Padel pair rankings and balanced match recommendations",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "YAML config file (overrides "+config.EnvFile+")")

	root.AddCommand(serveCmd(c))
	root.AddCommand(recommendCmd(c))
	root.AddCommand(pairsCmd(c))
	root.AddCommand(playersCmd(c))
	return root
}

// setup loads .env, the configuration, the logger and the metrics names.
func (c *cli) setup(cmd *cobra.Command) error {
	// A missing .env file is normal.
	_ = godotenv.Load(c.envFile)
	if c.configPath != "" {
		if err := os.Setenv(config.EnvFile, c.configPath); err != nil {
			return fmt.Errorf("set %s: %w", config.EnvFile, err)
		}
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.log = logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	metrics.Configure(
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithSubsystem(cfg.MetricsSubsystem),
		metrics.WithHistogramBuckets(cfg.MetricsHTTPBuckets),
	)
	c.cfg = cfg
	return nil
}
