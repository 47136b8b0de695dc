package main

import (
	"context"
	"fmt"
	"strconv"

	"journal/internal/domain/entity"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addCatalogCommands(topLevel *cobra.Command, opts *globalOptions) {
	addMoods(topLevel, opts)
	addTags(topLevel, opts)
}

func addMoods(topLevel *cobra.Command, opts *globalOptions) {
	var category string

	cmd := &cobra.Command{
		Use:   "moods",
		Short: "List the moods an entry can carry.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "moods", func(ctx context.Context, svc services) error {
				moods, err := svc.Catalog.ListMoodsByCategory(ctx, category)
				if err != nil {
					return err
				}

				printMoods(moods)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only moods of this category: Positive, Neutral or Negative.")

	topLevel.AddCommand(cmd)
}

func addTags(topLevel *cobra.Command, opts *globalOptions) {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List and manage tags.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var predefined bool
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List predefined tags first, then custom tags.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "tags list", func(ctx context.Context, svc services) error {
				var tags []*entity.Tag
				var err error
				if predefined {
					tags, err = svc.Catalog.ListPredefinedTags(ctx)
				} else {
					tags, err = svc.Catalog.ListTags(ctx)
				}
				if err != nil {
					return err
				}

				printTags(tags)

				return nil
			})
		},
	}
	list.Flags().BoolVar(&predefined, "predefined", false, "Only predefined tags.")

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a custom tag, or show the existing tag with that name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "tags add", func(ctx context.Context, svc services) error {
				tag, err := svc.Catalog.CreateOrGetTag(ctx, args[0])
				if err != nil {
					return err
				}

				printTags([]*entity.Tag{tag})

				return nil
			})
		},
	}

	remove := &cobra.Command{
		Use:   "rm <name|id>",
		Short: "Delete a custom tag that no entry uses.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "tags rm", func(ctx context.Context, svc services) error {
				var tag *entity.Tag
				var err error
				if id, convErr := strconv.ParseUint(args[0], 10, 64); convErr == nil {
					tag, err = svc.Catalog.GetTag(ctx, uint(id))
				} else {
					tag, err = svc.Catalog.FindTagByName(ctx, args[0])
				}
				if err != nil {
					return err
				}

				if err := svc.Catalog.DeleteTag(ctx, tag.ID); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(color.Output, "Deleted tag %s.\n", tag.Name)

				return nil
			})
		},
	}

	cmd.AddCommand(list, add, remove)
	topLevel.AddCommand(cmd)
}
