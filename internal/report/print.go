// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

// PrintScores writes the per-slide and overall scores to w. Criteria are
// listed in report order. An empty report prints a "no slides" line.
func PrintScores(w io.Writer, r types.AggregateReport) {
	if r.Empty() {
		fmt.Fprintf(w, "No slides found in %s.\n", r.Source)
		return
	}

	for _, s := range r.SlideScores {
		fmt.Fprintf(w, "Slide %d: %.2f\n", s.Number, s.Weighted)
		for _, name := range types.CriterionNames {
			e, ok := s.Report[name]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %-15s %2d  x %.2f  %s\n", name, e.Score, e.Weight, e.Comment)
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Overall average score: %.2f (%d slides)\n", r.AverageScore, len(r.SlideScores))
}

// PrintCriteria writes the active criteria and their weights to w.
func PrintCriteria(w io.Writer, criteria []types.Criterion) {
	fmt.Fprintf(w, "%-15s  %s\n", "Criterion", "Weight")
	fmt.Fprintln(w, strings.Repeat("-", 24))
	var total float64
	for _, c := range criteria {
		fmt.Fprintf(w, "%-15s  %.2f\n", c.Name, c.Weight)
		total += c.Weight
	}
	fmt.Fprintf(w, "\n%-15s  %.2f\n", "total", total)
}
