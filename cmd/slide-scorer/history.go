// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/slide-scorer/internal/history"
	"github.com/pdiddy/slide-scorer/internal/report"
	"github.com/pdiddy/slide-scorer/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded scoring runs",
	Long: `History lists and shows runs recorded with "score --record". Runs are
kept in a local SQLite database (history.db in the config, default
.slide-scorer/history.db).`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	deckFilter, _ := cmd.Flags().GetString("deck")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), deckFilter, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-8s  %-20s  %-6s  %-7s  %s\n", "ID", "Scored", "Slides", "Average", "Deck")
	fmt.Fprintln(out, strings.Repeat("-", 80))
	for _, r := range runs {
		fmt.Fprintf(out, "%-8s  %-20s  %-6d  %-7.2f  %s\n",
			shortID(r.ID), r.ScoredAt.Local().Format(time.DateTime), r.SlideCount, r.AverageScore, r.Deck)
	}
	fmt.Fprintf(out, "\n%d runs\n", len(runs))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show the per-slide scores of a recorded run",
	Long:  `Show prints a recorded run. The ID may be any unique prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	fmt.Fprintf(out, "Run %s\nDeck: %s\nScored: %s\n\n", run.ID, run.Deck, run.ScoredAt.Local().Format(time.DateTime))
	report.PrintScores(out, types.AggregateReport{
		Source:       run.Deck,
		SlideScores:  run.Slides,
		AverageScore: run.AverageScore,
	})
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyListCmd.Flags().String("deck", "", "only list runs for this deck path or URL")
	historyListCmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	historyShowCmd.Flags().Bool("json", false, "output the run as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)

	rootCmd.AddCommand(historyCmd)
}
