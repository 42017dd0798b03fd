package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSettingsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change study settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			s, err := c.Settings.Get(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}

	var sessionMin, breakMin int
	var notifications bool
	var bio, goal string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the flags given are updated",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			s, err := c.Settings.Get(ctx, u.ID)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("session") {
				s.SessionDurationMin = sessionMin
			}
			if flags.Changed("break") {
				s.BreakDurationMin = breakMin
			}
			if flags.Changed("notifications") {
				s.NotificationsEnabled = notifications
			}
			if flags.Changed("bio") {
				s.Bio = bio
			}
			if flags.Changed("goal") {
				s.AcademicGoal = goal
			}
			if err := c.Settings.Save(ctx, s); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}
	set.Flags().IntVar(&sessionMin, "session", 60, "Session length in minutes (15-240)")
	set.Flags().IntVar(&breakMin, "break", 10, "Break length in minutes (0-60)")
	set.Flags().BoolVar(&notifications, "notifications", true, "Enable reminders")
	set.Flags().StringVar(&bio, "bio", "", "Short bio")
	set.Flags().StringVar(&goal, "goal", "", "Academic goal")

	cmd.AddCommand(show, set)
	return cmd
}
