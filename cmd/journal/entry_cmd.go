package main

import (
	"context"
	"fmt"
	"time"

	"journal/internal/domain/entity"
	"journal/internal/usecase"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// entryOptions are the flags that describe an entry's content.
type entryOptions struct {
	Date      string
	Title     string
	Content   string
	Mood      string
	Secondary []string
	Tags      []string
}

func (o *entryOptions) addFlags(cmd *cobra.Command, withDate bool) {
	if withDate {
		cmd.Flags().StringVarP(&o.Date, "date", "d", "today", "Calendar day of the entry (YYYY-MM-DD).")
	}
	cmd.Flags().StringVarP(&o.Title, "title", "t", "", "Entry title.")
	cmd.Flags().StringVarP(&o.Content, "content", "c", "", "Entry text.")
	cmd.Flags().StringVarP(&o.Mood, "mood", "m", "", "Primary mood name, as listed by the moods command.")
	cmd.Flags().StringSliceVar(&o.Secondary, "also", nil, "Up to two secondary moods.")
	cmd.Flags().StringSliceVar(&o.Tags, "tag", nil, "Tags; unknown names become custom tags.")
}

// input resolves names to catalog IDs. Fields whose flags were not set keep
// the values of base, when given.
func (o *entryOptions) input(ctx context.Context, cmd *cobra.Command, svc services, base *entity.Entry) (usecase.EntryInput, error) {
	input := usecase.EntryInput{Title: o.Title, Content: o.Content}
	if base != nil {
		if !cmd.Flags().Changed("title") {
			input.Title = base.Title
		}
		if !cmd.Flags().Changed("content") {
			input.Content = base.Content
		}
		input.PrimaryMoodID = base.PrimaryMoodID
		input.SecondaryMoodIDs = base.SecondaryMoodIDs
		input.TagIDs = base.TagIDs
	}

	moods, err := svc.Catalog.ListMoods(ctx)
	if err != nil {
		return input, err
	}
	if base == nil || cmd.Flags().Changed("mood") {
		ids, err := moodIDs(moods, []string{o.Mood})
		if err != nil {
			return input, err
		}
		input.PrimaryMoodID = 0
		if len(ids) == 1 {
			input.PrimaryMoodID = ids[0]
		}
	}
	if base == nil || cmd.Flags().Changed("also") {
		if input.SecondaryMoodIDs, err = moodIDs(moods, o.Secondary); err != nil {
			return input, err
		}
	}
	if base == nil || cmd.Flags().Changed("tag") {
		input.TagIDs = make([]uint, 0, len(o.Tags))
		for _, name := range o.Tags {
			tag, err := svc.Catalog.CreateOrGetTag(ctx, name)
			if err != nil {
				return input, err
			}
			input.TagIDs = append(input.TagIDs, tag.ID)
		}
	}

	return input, nil
}

func addEntryCommands(topLevel *cobra.Command, opts *globalOptions) {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Write, read and find journal entries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEntryAdd(cmd, opts)
	addEntryEdit(cmd, opts)
	addEntryShow(cmd, opts)
	addEntryRemove(cmd, opts)
	addEntryList(cmd, opts)
	addEntrySearch(cmd, opts)
	addEntryFilter(cmd, opts)

	topLevel.AddCommand(cmd)
}

func addEntryAdd(parent *cobra.Command, opts *globalOptions) {
	eo := &entryOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write the entry for a day.",
		Example: `
journal entry add --title "Quiet Sunday" --mood calm --tag family --content "Long walk by the river."
journal entry add --date 2024-06-01 --title "Launch" --mood excited --also anxious --tag work,career
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "entry add", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				input, err := eo.input(ctx, cmd, svc, nil)
				if err != nil {
					return err
				}
				if input.Date, err = parseDay(eo.Date, time.Now()); err != nil {
					return err
				}

				entry, err := svc.Entries.Create(ctx, session.UserID, input)
				if err != nil {
					return err
				}

				printEntry(entry)

				return nil
			})
		},
	}

	eo.addFlags(cmd, true)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("mood")

	parent.AddCommand(cmd)
}

func addEntryEdit(parent *cobra.Command, opts *globalOptions) {
	eo := &entryOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id|date>",
		Short: "Change an entry. Flags left out keep their current value.",
		Example: `
journal entry edit 2024-06-01 --mood happy
journal entry edit today --tag reading --tag music
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "entry edit", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				ref, err := parseEntryRef(args[0], time.Now())
				if err != nil {
					return err
				}
				existing, err := ref.resolve(ctx, svc, session.UserID)
				if err != nil {
					return err
				}

				input, err := eo.input(ctx, cmd, svc, existing)
				if err != nil {
					return err
				}

				entry, err := svc.Entries.Update(ctx, existing.ID, input)
				if err != nil {
					return err
				}

				printEntry(entry)

				return nil
			})
		},
	}

	eo.addFlags(cmd, false)

	parent.AddCommand(cmd)
}

func addEntryShow(parent *cobra.Command, opts *globalOptions) {
	cmd := &cobra.Command{
		Use:   "show <id|date>",
		Short: "Print one entry.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "entry show", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				ref, err := parseEntryRef(args[0], time.Now())
				if err != nil {
					return err
				}
				entry, err := ref.resolve(ctx, svc, session.UserID)
				if err != nil {
					return err
				}

				printEntry(entry)

				return nil
			})
		},
	}

	parent.AddCommand(cmd)
}

func addEntryRemove(parent *cobra.Command, opts *globalOptions) {
	cmd := &cobra.Command{
		Use:     "rm <id|date>",
		Aliases: []string{"delete"},
		Short:   "Delete an entry.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "entry rm", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				ref, err := parseEntryRef(args[0], time.Now())
				if err != nil {
					return err
				}
				entry, err := ref.resolve(ctx, svc, session.UserID)
				if err != nil {
					return err
				}

				deleted, err := svc.Entries.Delete(ctx, entry.ID)
				if err != nil {
					return err
				}
				if deleted {
					_, _ = fmt.Fprintf(color.Output, "Deleted the entry of %s.\n", entry.EntryDate.Format(time.DateOnly))
				}

				return nil
			})
		},
	}

	parent.AddCommand(cmd)
}

func addEntryList(parent *cobra.Command, opts *globalOptions) {
	var page, size int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries, newest first.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "entry list", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				result, err := svc.Entries.List(ctx, session.UserID, page, size)
				if err != nil {
					return err
				}

				printEntries(result.Entries)
				_, _ = faint.Fprintf(color.Output, "page %d, %d of %d entries\n", result.Page, len(result.Entries), result.Total)

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1.")
	cmd.Flags().IntVar(&size, "size", 0, "Entries per page; 0 uses the configured default.")

	parent.AddCommand(cmd)
}

func addEntrySearch(parent *cobra.Command, opts *globalOptions) {
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Find entries whose title or text contains term, ignoring case.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "entry search", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				term := ""
				if len(args) == 1 {
					term = args[0]
				}
				entries, err := svc.Entries.Search(ctx, session.UserID, term)
				if err != nil {
					return err
				}

				printEntries(entries)

				return nil
			})
		},
	}

	parent.AddCommand(cmd)
}

func addEntryFilter(parent *cobra.Command, opts *globalOptions) {
	var from, to, term string
	var moods, tags []string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List entries matching every given criterion.",
		Example: `
journal entry filter --from 2024-06-01 --to 2024-06-30 --mood happy --mood excited
journal entry filter --tag work --term deadline
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "entry filter", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				window, err := parseWindow(from, to, time.Now())
				if err != nil {
					return err
				}
				input := usecase.EntryFilterInput{Start: window.Start, End: window.End, Term: term}

				if len(moods) > 0 {
					catalog, err := svc.Catalog.ListMoods(ctx)
					if err != nil {
						return err
					}
					if input.MoodIDs, err = moodIDs(catalog, moods); err != nil {
						return err
					}
				}
				for _, name := range tags {
					tag, err := svc.Catalog.FindTagByName(ctx, name)
					if err != nil {
						return err
					}
					input.TagIDs = append(input.TagIDs, tag.ID)
				}

				entries, err := svc.Entries.Filter(ctx, session.UserID, input)
				if err != nil {
					return err
				}

				printEntries(entries)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day, inclusive (YYYY-MM-DD).")
	cmd.Flags().StringVar(&to, "to", "", "Last day, inclusive (YYYY-MM-DD).")
	cmd.Flags().StringSliceVar(&moods, "mood", nil, "Match entries with any of these moods, primary or secondary.")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Match entries with any of these tags.")
	cmd.Flags().StringVar(&term, "term", "", "Match title or text, ignoring case.")

	parent.AddCommand(cmd)
}
