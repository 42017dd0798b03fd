package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newSummaryCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "AI study notes for sessions",
	}

	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show the summary for a session, generating it on first use",
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
			stop := func() {}
			if a.interactive() {
				stop = formatter.StartSpinner(os.Stderr, "Writing study notes...")
			}
			summary, err := c.Tutor.SessionSummary(ctx, u.ID, id)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(summary))
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored summaries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			summaries, err := c.Tutor.ListSummaries(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummaries(summaries, c.Location))
			return nil
		},
	}

	cmd.AddCommand(show, list)
	return cmd
}

func newQuizCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Practice quizzes for sessions",
	}

	var answers string
	take := &cobra.Command{
		Use:   "take <session-id>",
		Short: "Generate a quiz for a session and answer it",
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
			stop := func() {}
			if a.interactive() {
				stop = formatter.StartSpinner(os.Stderr, "Writing questions...")
			}
			draft, err := c.Tutor.SessionQuiz(ctx, u.ID, id)
			stop()
			if err != nil {
				return err
			}

			var picked []*int
			switch {
			case cmd.Flags().Changed("answers"):
				if picked, err = parseAnswers(answers, len(draft.Questions)); err != nil {
					return err
				}
			case a.interactive():
				final, err := tea.NewProgram(newQuizModel(draft.Questions), tea.WithContext(ctx)).Run()
				if err != nil {
					return err
				}
				m := final.(quizModel)
				if m.aborted {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Quiz abandoned; nothing saved."))
					return nil
				}
				picked = m.answers
			default:
				return fmt.Errorf("pass --answers when not running in a terminal")
			}

			result, err := c.Tutor.SubmitQuiz(ctx, u.ID, id, draft.Questions, picked)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuizResult(result))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Result "+result.ID))
			return nil
		},
	}
	take.Flags().StringVar(&answers, "answers", "", "Comma-separated answers, e.g. A,C,-,B")

	show := &cobra.Command{
		Use:   "show <result-id>",
		Short: "Show a stored quiz result with solutions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			result, err := c.Tutor.GetResult(ctx, u.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuizResult(result))
			return nil
		},
	}

	cmd.AddCommand(take, show)
	return cmd
}
