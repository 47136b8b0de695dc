package main

import (
	"context"
	"fmt"

	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/errors"
	"journal/internal/usecase"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addSessionCommands(topLevel *cobra.Command, opts *globalOptions) {
	addRegister(topLevel, opts)
	addLogin(topLevel, opts)
	addLogout(topLevel, opts)
	addWhoami(topLevel, opts)
	addPasswd(topLevel, opts)
}

// currentSession resumes the remembered session or explains how to create one.
func currentSession(ctx context.Context, svc services) (*entity.Session, error) {
	session, err := svc.Sessions.Restore(ctx)
	if errors.Is(err, domainerrors.ErrSessionNotFound) {
		return nil, domainerrors.ErrSessionNotFound.WithDetails("run `journal login` first")
	}

	return session, err
}

func addRegister(topLevel *cobra.Command, opts *globalOptions) {
	input := usecase.RegisterInput{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a journal account.",
		Example: `
journal register --username alice --password 'correct horse'
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "register", func(ctx context.Context, svc services) error {
				user, err := svc.Sessions.Register(ctx, input)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(color.Output, "Registered %s.\n", color.New(color.Bold).Sprint(user.Username))

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&input.Username, "username", "u", "", "Account name.")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "Account password.")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	topLevel.AddCommand(cmd)
}

func addLogin(topLevel *cobra.Command, opts *globalOptions) {
	input := usecase.LoginInput{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session for later commands.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "login", func(ctx context.Context, svc services) error {
				session, err := svc.Sessions.Login(ctx, input)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(color.Output, "Signed in as %s.\n", color.New(color.Bold).Sprint(session.Username))
				if !input.Remember {
					_, _ = fmt.Fprintln(color.Output, color.New(color.Faint).Sprint("Session not remembered; later commands will ask you to log in."))
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&input.Username, "username", "u", "", "Account name.")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "Account password.")
	cmd.Flags().BoolVar(&input.Remember, "remember", true, "Keep the session for later commands.")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command, opts *globalOptions) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "logout", func(ctx context.Context, svc services) error {
				session, err := svc.Sessions.Restore(ctx)
				if err != nil && !errors.Is(err, domainerrors.ErrSessionNotFound) {
					return err
				}
				if err := svc.Sessions.Logout(ctx, session); err != nil {
					return err
				}

				_, _ = fmt.Fprintln(color.Output, "Signed out.")

				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoami(topLevel *cobra.Command, opts *globalOptions) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "whoami", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				count, err := svc.Entries.CountForUser(ctx, session.UserID)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(color.Output, "%s %s\n", color.New(color.Bold).Sprint(session.Username), color.New(color.Faint).Sprintf("(%d entries)", count))

				return nil
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addPasswd(topLevel *cobra.Command, opts *globalOptions) {
	var oldPassword, newPassword string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the signed in account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, "passwd", func(ctx context.Context, svc services) error {
				session, err := currentSession(ctx, svc)
				if err != nil {
					return err
				}

				changed, err := svc.Sessions.ChangePassword(ctx, session.UserID, oldPassword, newPassword)
				if err != nil {
					return err
				}
				if !changed {
					return domainerrors.ErrInvalidCredentials.WithDetails("current password does not match")
				}

				_, _ = fmt.Fprintln(color.Output, "Password changed.")

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&oldPassword, "old", "", "Current password.")
	cmd.Flags().StringVar(&newPassword, "new", "", "New password.")
	_ = cmd.MarkFlagRequired("old")
	_ = cmd.MarkFlagRequired("new")

	topLevel.AddCommand(cmd)
}
