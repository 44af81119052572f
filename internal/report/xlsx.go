// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders scoring results: the feedback spreadsheet, the
// printed score report, and JSON/YAML exports.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

const (
	// DefaultOutput is the spreadsheet written when no path is configured.
	DefaultOutput = "feedback.xlsx"

	// DefaultSheet names the feedback worksheet.
	DefaultSheet = "Slide Feedback"
)

// FeedbackHeader is the fixed first row of the feedback spreadsheet.
var FeedbackHeader = []string{
	"Slide Number",
	"Clarity of Content",
	"Strategy Alignment",
	"Outcome Focus",
	"Data Descriptors",
	"Analyses and Insights",
	"Recommendations",
}

// WriteFeedbackXLSX writes rows to a new workbook at path, replacing any
// existing file. The sheet gets the fixed header row followed by one row
// per slide.
func WriteFeedbackXLSX(path, sheet string, rows []types.FeedbackRow) error {
	if path == "" {
		path = DefaultOutput
	}
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, FeedbackHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(FeedbackHeader), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r.Cells()); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "G", 48); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
