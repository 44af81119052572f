// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slide-scorer/internal/report"
	"github.com/pdiddy/slide-scorer/internal/score"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback [deck]",
	Short: "Write a feedback spreadsheet with one row per slide",
	Long: `Feedback reviews every slide for clarity (bullets and word count),
strategy alignment, outcome focus, data descriptors (charts), analyses, and
recommendations, and writes the comments to an .xlsx workbook.`,
	Args: cobra.ExactArgs(1),
	RunE: runFeedback,
}

func init() {
	feedbackCmd.Flags().StringP("output", "o", "", "spreadsheet path (default feedback.xlsx)")
	feedbackCmd.Flags().String("sheet", "", "worksheet name (default \"Slide Feedback\")")
	addDeckFlags(feedbackCmd)

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.Report.Output
	}
	sheet, _ := cmd.Flags().GetString("sheet")
	if sheet == "" {
		sheet = cfg.Report.Sheet
	}

	d, err := loadDeck(context.Background(), cmd, args[0])
	if err != nil {
		return err
	}

	rows := score.New(cfg.Scoring, logger).FeedbackRows(d)
	if err := report.WriteFeedbackXLSX(output, sheet, rows); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintf(out, "No slides found in %s.\n", args[0])
	}
	fmt.Fprintf(out, "Feedback saved to '%s' (%d slides).\n", output, len(rows))
	return nil
}
