package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// SheetName is the worksheet holding the schedule.
const SheetName = "Schedule"

var xlsxHeader = []any{"Subject", "Date", "Start", "End", "Topic", "Completed"}

// WriteXLSX writes sessions as a spreadsheet, one row per session.
func WriteXLSX(w io.Writer, sessions []*domain.StudySession, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	_ = f.SetCellStyle(SheetName, "A1", "F1", headerStyle)
	_ = f.SetColWidth(SheetName, "A", "A", 24)
	_ = f.SetColWidth(SheetName, "B", "D", 12)
	_ = f.SetColWidth(SheetName, "E", "E", 40)

	for i, s := range sessions {
		start, end := s.StartAt.In(loc), s.EndAt.In(loc)
		done := "No"
		if s.Completed {
			done = "Yes"
		}
		row := []any{
			s.SubjectName,
			start.Format("2006-01-02"),
			start.Format("15:04"),
			end.Format("15:04"),
			s.Topic,
			done,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}
