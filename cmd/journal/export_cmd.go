package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"journal/internal/errors"
	"journal/internal/util"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addExport(topLevel *cobra.Command, opts *globalOptions) {
	var from, to, out string
	var store bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render entries as a Markdown document.",
		Example: `
journal export --from 2024-01-01 > 2024.md
journal export --out june.md --from 2024-06-01 --to 2024-06-30
journal export --store
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "export", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				window, err := parseWindow(from, to, time.Now())
				if err != nil {
					return err
				}

				if store {
					result, err := svc.Exports.ExportToStorage(ctx, session.UserID, window)
					if err != nil {
						return err
					}

					_, _ = fmt.Fprintf(color.Output, "Exported %d entries to %s\n", result.Entries, result.Location)

					return nil
				}

				doc, err := svc.Exports.Export(ctx, session.UserID, window)
				if err != nil {
					return err
				}
				if out == "" {
					_, err = os.Stdout.Write(doc)

					return err
				}
				if err := os.WriteFile(out, doc, 0o600); err != nil {
					return errors.Wrapf(err, "write %s", out)
				}

				_, _ = fmt.Fprintf(color.Output, "Wrote %s (%s)\n", out, util.FormatBytes(int64(len(doc))))

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day, inclusive (YYYY-MM-DD).")
	cmd.Flags().StringVar(&to, "to", "", "Last day, inclusive (YYYY-MM-DD).")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout.")
	cmd.Flags().BoolVar(&store, "store", false, "Save to the configured export bucket.")
	cmd.MarkFlagsMutuallyExclusive("out", "store")

	topLevel.AddCommand(cmd)
}
