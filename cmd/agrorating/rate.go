package main

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/ougirez/agrorating/internal/service/market"
	"github.com/spf13/cobra"
)

func newRateCommand(a *app) *cobra.Command {
	var orgID, yearID string

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Print the full report of one harvest year as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			org, err := uuid.Parse(orgID)
			if err != nil {
				return fmt.Errorf("--org: %w", err)
			}
			year, err := uuid.Parse(yearID)
			if err != nil {
				return fmt.Errorf("--harvest-year: %w", err)
			}

			st, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			svc, err := a.projectionService(st, nil)
			if err != nil {
				return err
			}

			report, err := svc.Report(cmd.Context(), org, year)
			if err != nil {
				return err
			}

			return printJSON(cmd, report)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization id")
	cmd.Flags().StringVar(&yearID, "harvest-year", "", "harvest year id")
	_ = cmd.MarkFlagRequired("org")
	_ = cmd.MarkFlagRequired("harvest-year")

	return cmd
}

func newBackfillCommand(a *app) *cobra.Command {
	var orgID, mainURL string

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Refresh commodity prices and exchange rates from the quotes page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			org, err := uuid.Parse(orgID)
			if err != nil {
				return fmt.Errorf("--org: %w", err)
			}
			if mainURL == "" {
				mainURL = a.cfg.Market.URL
			}
			if mainURL == "" {
				return fmt.Errorf("--url is required when market.url is not set")
			}

			st, closeStore, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			res, err := market.NewMarketService(st, nil, a.cfg.Market.MaxRetries, nil).Backfill(cmd.Context(), org, mainURL)
			if err != nil {
				return err
			}

			return printJSON(cmd, res)
		},
	}

	cmd.Flags().StringVar(&orgID, "org", "", "organization id")
	cmd.Flags().StringVar(&mainURL, "url", "", "quotes page, defaults to market.url")
	_ = cmd.MarkFlagRequired("org")

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("sonic.MarshalIndent: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
