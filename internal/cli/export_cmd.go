package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/studyplan/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sessions as an iCalendar feed or a spreadsheet",
	}

	var out string
	ics := &cobra.Command{
		Use:   "ics",
		Short: "Write sessions as .ics (stdout unless --out is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			sessions, err := c.Sessions.ListAll(ctx, u.ID)
			if err != nil {
				return err
			}
			return writeTo(cmd, out, func(w io.Writer) error {
				return export.WriteICS(w, sessions, c.Location, c.Config.ExportOptions())
			})
		},
	}
	ics.Flags().StringVarP(&out, "out", "o", "", "Output file")

	var xlsxOut string
	xlsx := &cobra.Command{
		Use:   "xlsx",
		Short: "Write sessions as an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, u, err := a.currentUser(ctx)
			if err != nil {
				return err
			}
			sessions, err := c.Sessions.ListAll(ctx, u.ID)
			if err != nil {
				return err
			}
			if err := writeTo(cmd, xlsxOut, func(w io.Writer) error {
				return export.WriteXLSX(w, sessions, c.Location)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sessions to %s\n", len(sessions), xlsxOut)
			return nil
		},
	}
	xlsx.Flags().StringVarP(&xlsxOut, "out", "o", "studyplan.xlsx", "Output file")

	cmd.AddCommand(ics, xlsx)
	return cmd
}

// writeTo sends output to path, or to the command's stdout when path is empty.
func writeTo(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
