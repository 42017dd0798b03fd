package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSessionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"sessions"},
		Short:   "View and complete study sessions",
	}
	cmd.AddCommand(
		newSessionListCmd(a),
		newSessionWeekCmd(a),
		newSessionToggleCmd(a),
		newSessionCompleteCmd(a),
	)
	return cmd
}

func newSessionListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upcoming sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			list, err := c.Sessions.ListUpcoming(ctx, u.ID, c.Now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessions(list, c.Location))
			return nil
		},
	}
}

func newSessionWeekCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week containing --date (default today)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			day := c.Now().In(c.Location)
			if date != "" {
				day, err = time.ParseInLocation(time.DateOnly, date, c.Location)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD")
				}
			}
			week, err := c.Sessions.ListWeek(ctx, u.ID, day, c.Location)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(week, c.Location))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Any day in the week, YYYY-MM-DD")
	return cmd
}

func newSessionToggleCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <session-id>",
		Short: "Flip a session between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := resolveSessionID(ctx, c, u.ID, args[0])
			if err != nil {
				return err
			}
			s, err := c.Sessions.ToggleComplete(ctx, u.ID, id)
			if err != nil {
				return err
			}
			state := "not done"
			if s.Completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s marked %s\n", formatter.CheckMark(s.Completed), formatter.Bold(s.SubjectName), state)
			return nil
		},
	}
}

func newSessionCompleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <session-id>",
		Short: "Mark a session done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := resolveSessionID(ctx, c, u.ID, args[0])
			if err != nil {
				return err
			}
			if err := c.Sessions.MarkComplete(ctx, u.ID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Session %s completed\n", formatter.CheckMark(true), formatter.TruncID(id))
			return nil
		},
	}
}

func newStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's progress and upcoming exams",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			d, err := c.Dashboard.Get(ctx, u.ID, c.Now(), c.Location)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(d, c.Location))
			return nil
		},
	}
}
