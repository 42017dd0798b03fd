package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/spf13/cobra"
)

func newSubjectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Manage subjects",
	}
	cmd.AddCommand(newSubjectAddCmd(a), newSubjectListCmd(a), newSubjectRemoveCmd(a))
	return cmd
}

func newSubjectAddCmd(a *App) *cobra.Command {
	var difficulty, description, exam string
	var importance int

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a subject (interactive form when no name is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}

			v := subjectFormValues{
				Description: description,
				Difficulty:  domain.DifficultyMedium,
				Importance:  domain.Importance(importance),
				Exam:        exam,
			}
			if difficulty != "" {
				d, ok := domain.ParseDifficulty(difficulty)
				if !ok {
					return fmt.Errorf("difficulty must be easy, medium or hard")
				}
				v.Difficulty = d
			}
			if len(args) == 1 {
				v.Name = args[0]
			} else {
				if !a.interactive() {
					return fmt.Errorf("subject name required")
				}
				if err := subjectForm(&v).Run(); err != nil {
					return err
				}
			}

			examAt, err := parseExam(v.Exam, c.Location)
			if err != nil {
				return err
			}
			s := &domain.Subject{
				UserID:      u.ID,
				Name:        v.Name,
				Description: v.Description,
				Difficulty:  v.Difficulty,
				Importance:  v.Importance,
				ExamAt:      examAt,
			}
			if err := c.Subjects.Create(ctx, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(s.Name), formatter.TruncID(s.ID))
			return nil
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium or hard (default medium)")
	cmd.Flags().IntVar(&importance, "importance", int(domain.ImportanceMedium), "1 (low) to 3 (high)")
	cmd.Flags().StringVar(&exam, "exam", "", "Exam date, YYYY-MM-DD or YYYY-MM-DD HH:MM")
	cmd.Flags().StringVar(&description, "description", "", "Free-text description")
	return cmd
}

func newSubjectListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			subjects, err := c.Subjects.List(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubjects(subjects, c.Now(), c.Location))
			return nil
		},
	}
}

func newSubjectRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name-or-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a subject and its sessions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			id, err := resolveSubjectID(ctx, c, u.ID, args[0])
			if err != nil {
				return err
			}
			if err := c.Subjects.Delete(ctx, u.ID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s\n", formatter.StyleGreen.Render("✔"), formatter.TruncID(id))
			return nil
		},
	}
}

func newAvailabilityCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Manage weekly free hours",
	}

	set := &cobra.Command{
		Use:   "set <day:hours>...",
		Short: "Replace availability, e.g. mon:9-12 wed:14 sat:10,15",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			slots, err := parseSlotSpecs(args)
			if err != nil {
				return err
			}
			if err := c.Availability.Replace(ctx, u.ID, slots); err != nil {
				return err
			}
			stored, err := c.Availability.List(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAvailability(stored))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			slots, err := c.Availability.List(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAvailability(slots))
			return nil
		},
	}

	cmd.AddCommand(set, list)
	return cmd
}
