// Package timesheet renders reconstructed work sessions as an Excel workbook.
package timesheet

import (
	"fmt"
	"io"

	"github.com/MSc1-Epitech2025/Time-manager-TD-Epitech-sub001/internal/pkg/timemetrics"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Sessions"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Row is one closed session.
type Row struct {
	Date    string
	Start   string
	End     string
	Seconds int64
}

// Sheet is the content of one exported timesheet.
type Sheet struct {
	UserID       string
	From         string
	To           string
	Rows         []Row
	OpenSince    string
	TotalSeconds int64
}

// Filename returns the attachment name for the sheet.
func (s Sheet) Filename() string {
	return fmt.Sprintf("timesheet_%s_%s.xlsx", s.From, s.To)
}

// Write renders the sheet as xlsx into w.
func Write(w io.Writer, s Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := []any{"Date", "Start", "End", "Hours", "Seconds"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "E1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	for _, r := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{r.Date, r.Start, r.End, timemetrics.FormatHours(r.Seconds), r.Seconds}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	if s.OpenSince != "" {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		open := []any{"Open since", s.OpenSince}
		if err := f.SetSheetRow(SheetName, cell, &open); err != nil {
			return fmt.Errorf("failed to write open session: %w", err)
		}
		row++
	}

	cell, _ := excelize.CoordinatesToCellName(1, row+1)
	total := []any{"Total", s.From, s.To, timemetrics.FormatHours(s.TotalSeconds), s.TotalSeconds}
	if err := f.SetSheetRow(SheetName, cell, &total); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	if err := f.SetColWidth(SheetName, "A", "C", 20); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
