// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/slide-scorer/internal/history"
	"github.com/pdiddy/slide-scorer/internal/report"
	"github.com/pdiddy/slide-scorer/internal/score"
)

var scoreCmd = &cobra.Command{
	Use:   "score [deck]",
	Short: "Print weighted checklist scores for every slide",
	Long: `Score evaluates each slide against the checklist criteria (structure,
attribution, brevity, outcome, analysis, recommendation), weights each
criterion, and prints per-slide scores and the overall average.

Weights come from scoring.weights in the config file and can be overridden
with --weight name=value. Use --record to keep the run in the history
database.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	scoreCmd.Flags().StringArray("weight", nil, "override a criterion weight, e.g. --weight brevity=0.5 (repeatable)")
	scoreCmd.Flags().Bool("record", false, "record the run in the history database")
	addDeckFlags(scoreCmd)

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	format, _ := cmd.Flags().GetString("format")
	pairs, _ := cmd.Flags().GetStringArray("weight")
	record, _ := cmd.Flags().GetBool("record")

	overrides, err := parseWeights(pairs)
	if err != nil {
		return err
	}
	weights := mergeWeights(cfg.Scoring.Weights, overrides)

	d, err := loadDeck(ctx, cmd, args[0])
	if err != nil {
		return err
	}

	scorer := score.New(cfg.Scoring, logger)
	result, err := scorer.Score(d, weights)
	if err != nil && !errors.Is(err, score.ErrEmptyDeck) {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.Write(out, result, report.Format(format)); err != nil {
		return err
	}

	if record {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Record(ctx, result)
		if err != nil {
			return err
		}
		logger.Debug("recorded run", zap.String("id", run.ID))
		fmt.Fprintf(os.Stderr, "Recorded run %s\n", run.ID)
	}
	return nil
}
