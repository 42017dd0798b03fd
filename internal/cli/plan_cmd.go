package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate study schedules",
	}

	var sessionMin, breakMin int
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Ask the planner for a new schedule, replacing pending sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			settings, err := c.Settings.Get(ctx, u.ID)
			if err != nil {
				return err
			}

			stop := func() {}
			if a.interactive() {
				stop = formatter.StartSpinner(os.Stderr, "Planning your week...")
			}
			var result *service.ReconcileResult
			flags := cmd.Flags()
			if anyChanged(flags, "session", "break") {
				if flags.Changed("session") {
					settings.SessionDurationMin = sessionMin
				}
				if flags.Changed("break") {
					settings.BreakDurationMin = breakMin
				}
				result, err = c.Planner.GenerateWithSettings(ctx, settings, c.Now(), c.Location)
			} else {
				result, err = c.Planner.RunReconciliation(ctx, service.ReconcileRequest{
					UserID:   u.ID,
					Config:   settings.ScheduleConfig(),
					Now:      c.Now(),
					Location: c.Location,
				})
			}
			stop()

			if result != nil {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReconcile(result, c.Location))
			}
			return err
		},
	}
	generate.Flags().IntVar(&sessionMin, "session", 60, "Session length in minutes; saved to settings")
	generate.Flags().IntVar(&breakMin, "break", 10, "Break length in minutes; saved to settings")

	cmd.AddCommand(generate)
	return cmd
}
