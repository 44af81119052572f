// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"fmt"
	"strings"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

// Feedback builds the qualitative spreadsheet row for a slide.
func (s *Scorer) Feedback(slide types.Slide) types.FeedbackRow {
	outcome := "Focus on outcomes. No outcome identified."
	if HasMarker(slide, s.outcomeMarker) {
		outcome = "Focus on outcomes. Yes, outcome identified."
	}

	return types.FeedbackRow{
		Slide:          fmt.Sprintf("Slide %d", slide.Number),
		Clarity:        fmt.Sprintf("%d bullet points found. Total words: %d.", BulletCount(slide), WordCount(slide)),
		Strategy:       fmt.Sprintf("Slide %d: Ensure messaging aligns with overall strategy.", slide.Number),
		Outcome:        outcome,
		Descriptors:    fmt.Sprintf("%d charts found. Ensure data is clearly described.", ChartCount(slide)),
		Analysis:       fmt.Sprintf("%d insights identified.", CountMatches(slide, s.keywords[types.CriterionAnalysis])),
		Recommendation: fmt.Sprintf("%d recommendations found.", CountMatches(slide, s.keywords[types.CriterionRecommendation])),
	}
}

// FeedbackRows builds one row per slide in deck order.
func (s *Scorer) FeedbackRows(deck types.Deck) []types.FeedbackRow {
	rows := make([]types.FeedbackRow, len(deck.Slides))
	for i, slide := range deck.Slides {
		if slide.Number == 0 {
			slide.Number = i + 1
		}
		rows[i] = s.Feedback(slide)
	}
	return rows
}

// HasMarker reports whether any text shape contains marker. The match is
// case-sensitive.
func HasMarker(slide types.Slide, marker string) bool {
	for _, sh := range slide.Shapes {
		if sh.HasText() && strings.Contains(*sh.Text, marker) {
			return true
		}
	}
	return false
}

// BulletCount counts non-blank paragraphs in text shapes other than the
// title. Tables are not bullets.
func BulletCount(slide types.Slide) int {
	n := 0
	for _, sh := range slide.Shapes {
		if !sh.HasText() || sh.Kind == types.ShapeTitle || sh.Kind == types.ShapeTable {
			continue
		}
		for _, line := range strings.Split(*sh.Text, "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
	}
	return n
}

// ChartCount counts shapes that embed a chart.
func ChartCount(slide types.Slide) int {
	n := 0
	for _, sh := range slide.Shapes {
		if sh.HasChart() {
			n++
		}
	}
	return n
}
