package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Loader builds the service container for a config path.
type Loader func(ctx context.Context, configPath string) (*app.Container, error)

// App is the state shared by every command: how to load services, which
// user to act for and whether a terminal is attached.
type App struct {
	Load          Loader
	IsInteractive func() bool

	configPath string
	userRef    string
	container  *app.Container
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// services loads the container on first use.
func (a *App) services(ctx context.Context) (*app.Container, error) {
	if a.container != nil {
		return a.container, nil
	}
	if a.Load == nil {
		return nil, fmt.Errorf("no service loader configured")
	}
	c, err := a.Load(ctx, a.configPath)
	if err != nil {
		return nil, err
	}
	a.container = c
	return c, nil
}

func (a *App) close() error {
	if a.container == nil {
		return nil
	}
	err := a.container.Close()
	a.container = nil
	return err
}

// NewRootCmd creates the top-level "studyplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyplan",
		Short:         "AI study planner: schedules, summaries, quizzes and calendar sync",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config.yaml (default ./config/config.yaml or ./config.yaml)")
	root.PersistentFlags().StringVar(&a.userRef, "user", os.Getenv("STUDYPLAN_USER"), "User email or id to act for")

	root.AddCommand(
		newServeCmd(a),
		newUserCmd(a),
		newTokenCmd(a),
		newSubjectCmd(a),
		newAvailabilityCmd(a),
		newSettingsCmd(a),
		newPlanCmd(a),
		newSessionCmd(a),
		newStatusCmd(a),
		newSummaryCmd(a),
		newQuizCmd(a),
		newCalendarCmd(a),
		newExportCmd(a),
	)
	return root
}

// Execute runs the root command and maps service errors to user messages.
func Execute(ctx context.Context, a *App, args []string) error {
	root := NewRootCmd(a)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return friendlyError(err)
}

// anyChanged reports whether the user set at least one of the named flags.
func anyChanged(flags *pflag.FlagSet, names ...string) bool {
	for _, n := range names {
		if flags.Changed(n) {
			return true
		}
	}
	return false
}
