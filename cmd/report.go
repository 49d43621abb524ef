package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	app "github.com/okian/padelmatch/internal/app"
)

// withService starts a service for one report and stops it afterwards.
func withService(ctx context.Context, c *cli, opts []app.Option, fn func(*app.Service) error) error {
	svc := newService(c.cfg, c.log, opts...)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()
	return fn(svc)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func recommendCmd(c *cli) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print the recommended matchups for the roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []app.Option
			if limit > 0 {
				opts = append(opts, app.WithCandidateLimit(limit))
			}
			return withService(cmd.Context(), c, opts, func(svc *app.Service) error {
				cands, err := svc.Recommendations(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return printJSON(out, cands)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "#\tMATCH\tFAIRNESS\tDIFF\tGAMES\tHIGHLIGHT")
				for i, cand := range cands {
					fmt.Fprintf(tw, "%d\t%s vs %s\t%.1f\t%.1f\t%d\t%d\n",
						i+1, cand.Strong.Label, cand.Underdog.Label,
						cand.Fairness, cand.Diff, cand.ExpectedGames, cand.Highlight)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of recommendations (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func pairsCmd(c *cli) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "pairs",
		Short: "Print the pair ranking",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), c, nil, func(svc *app.Service) error {
				entries, err := svc.Pairs(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return printJSON(out, entries)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RANK\tPAIR\tSCORE\tTIER\tSYNERGY\tWIN RATE")
				for _, e := range entries {
					fmt.Fprintf(tw, "%d\t%s\t%.1f\t%s\t%.1f\t%.0f%%\n",
						e.Rank, e.Pair.Label, e.Pair.Score, e.Pair.Tier,
						e.Pair.Synergy, e.Pair.WinRate*100)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of pairs (default max_pair_limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func playersCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Print the individual ranking",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withService(cmd.Context(), c, nil, func(svc *app.Service) error {
				players, err := svc.Players(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					return printJSON(out, players)
				}
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RANK\tID\tNAME\tRATING\tFORM")
				for _, p := range players {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.1f\n",
						p.Rank, p.ID, strings.TrimSpace(p.Name), p.Rating, p.Form)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
