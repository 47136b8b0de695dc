package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

func addStats(topLevel *cobra.Command, opts *globalOptions) {
	var from, to string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show streaks, mood distribution, top tags and word counts.",
		Long: `Show journaling statistics.

--from and --to restrict the mood, tag and word figures to a window. Streaks and
the first and last entry dates always cover the whole journal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "stats", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				window, err := parseWindow(from, to, time.Now())
				if err != nil {
					return err
				}

				dashboard, err := svc.Analytics.Dashboard(ctx, session.UserID, window)
				if err != nil {
					return err
				}

				printDashboard(dashboard)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day, inclusive (YYYY-MM-DD).")
	cmd.Flags().StringVar(&to, "to", "", "Last day, inclusive (YYYY-MM-DD).")

	topLevel.AddCommand(cmd)
}
