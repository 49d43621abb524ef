// Command session-sim drives a planning session against a running padelmatch
// server and fails when the server breaks a session invariant.
//
// Usage:
//
//	session-sim --url http://localhost:9080 --rounds 12 --readers 4
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/padelmatch/internal/sessionsim"
	"github.com/okian/padelmatch/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &sessionsim.Config{}
	var (
		logFile string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:          "session-sim",
		Short:        "Drive a planning session over HTTP and verify its invariants",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			closer, err := sessionsim.SetupLogging(logFile, verbose)
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			// The token may come from the same .env file the server reads.
			_ = godotenv.Load()
			if cfg.Token == "" {
				cfg.Token = os.Getenv("PADEL_API_TOKEN")
			}
			if _, err := sessionsim.Run(cmd.Context(), cfg); err != nil {
				logger.Get().Error(cmd.Context(), "session simulation failed", logger.Error(err))
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the service")
	f.StringVar(&cfg.Token, "token", "", "bearer token (default $PADEL_API_TOKEN)")
	f.IntVar(&cfg.Rounds, "rounds", sessionsim.DefaultRounds, "number of accept/skip decisions")
	f.Float64Var(&cfg.SkipRatio, "skip-ratio", sessionsim.DefaultSkipRatio, "share of rounds that skip")
	f.Uint64Var(&cfg.Seed, "seed", 1, "seed for the decision sequence")
	f.IntVar(&cfg.Readers, "readers", 2, "concurrent read-only clients")
	f.Float64Var(&cfg.ReadRate, "read-rate", sessionsim.DefaultReadRate, "requests per second shared by the readers")
	f.IntVar(&cfg.Retries, "retries", sessionsim.DefaultRetries, "retries of a rate limited driver request")
	f.DurationVar(&cfg.Timeout, "timeout", sessionsim.DefaultTimeout, "HTTP request timeout")
	f.StringVar(&cfg.Court, "court", "Pista 1", "court written into created matches")
	f.StringVar(&logFile, "log", "", `also log to this file ("auto" for a timestamped name)`)
	f.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}
