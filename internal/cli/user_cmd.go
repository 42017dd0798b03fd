package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage local users",
	}
	cmd.AddCommand(newUserCreateCmd(a), newUserListCmd(a))
	return cmd
}

func newUserCreateCmd(a *App) *cobra.Command {
	var email, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.services(ctx)
			if err != nil {
				return err
			}
			u := &domain.User{Email: email, DisplayName: name}
			if err := c.Users.Create(ctx, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created user %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(u.Email), formatter.TruncID(u.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUserListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := a.services(ctx)
			if err != nil {
				return err
			}
			users, err := c.Users.List(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{formatter.TruncID(u.ID), u.Email, u.DisplayName})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "EMAIL", "NAME"}, rows))
			return nil
		},
	}
}

func newTokenCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, u, err := a.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			if c.Tokens == nil {
				return fmt.Errorf("auth.jwt_secret must be set (at least 16 characters) to issue tokens")
			}
			token, err := c.Tokens.Issue(u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
