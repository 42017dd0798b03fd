package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errCalendarDisabled = fmt.Errorf("google calendar is not configured: set google.client_id and google.client_secret")

func requireCalendar(c *app.Container) error {
	if c.Sync == nil || c.Connector == nil {
		return errCalendarDisabled
	}
	return nil
}

func newCalendarCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Connect and sync Google Calendar",
	}
	cmd.AddCommand(
		newCalendarConnectCmd(a),
		newCalendarCompleteCmd(a),
		newCalendarSyncCmd(a),
	)
	return cmd
}

func newCalendarConnectCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Authorize access to Google Calendar and push pending sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			if err := requireCalendar(c); err != nil {
				return err
			}
			authURL, err := c.Connector.AuthURL(ctx, u.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Open this link to grant calendar access:"))
			fmt.Fprintln(out, authURL)
			if !a.interactive() {
				fmt.Fprintln(out, formatter.Dim("Then run: studyplan calendar complete --state <state> --code <code>"))
				return nil
			}
			fmt.Fprintln(out, formatter.Dim("After consenting, copy the code parameter from the redirect address."))

			var code string
			if err := codeForm(&code).RunWithContext(ctx); err != nil {
				return err
			}
			state, err := stateFromURL(authURL)
			if err != nil {
				return err
			}
			return completeAndSync(cmd, c, state, strings.TrimSpace(code))
		},
	}
}

func newCalendarCompleteCmd(a *App) *cobra.Command {
	var state, code string
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Finish authorization with the state and code from the redirect",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.services(cmd.Context())
			if err != nil {
				return err
			}
			if err := requireCalendar(c); err != nil {
				return err
			}
			return completeAndSync(cmd, c, state, code)
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "State parameter from the redirect")
	cmd.Flags().StringVar(&code, "code", "", "Code parameter from the redirect")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func completeAndSync(cmd *cobra.Command, c *app.Container, state, code string) error {
	ctx := cmd.Context()
	userID, err := c.Connector.Complete(ctx, state, code)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Calendar connected."))
	report, err := c.Sync.RunCalendarSync(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), report.Message)
	return nil
}

func newCalendarSyncCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push sessions that are not on the calendar yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			if err := requireCalendar(c); err != nil {
				return err
			}
			report, err := c.Sync.RunCalendarSync(ctx, u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report.Message)
			return nil
		},
	}
}

// stateFromURL recovers the state a consent link was issued with.
func stateFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing consent link: %w", err)
	}
	state := u.Query().Get("state")
	if state == "" {
		return "", fmt.Errorf("consent link has no state parameter")
	}
	return state, nil
}
