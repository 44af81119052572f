// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Built-in criterion names. Order here is the order criteria are evaluated
// and reported.
const (
	CriterionStructure      = "structure"
	CriterionAttribution    = "attribution"
	CriterionBrevity        = "brevity"
	CriterionOutcome        = "outcome"
	CriterionAnalysis       = "analysis"
	CriterionRecommendation = "recommendation"
)

// CriterionNames lists every built-in criterion in report order.
var CriterionNames = []string{
	CriterionStructure,
	CriterionAttribution,
	CriterionBrevity,
	CriterionOutcome,
	CriterionAnalysis,
	CriterionRecommendation,
}

// Criterion is a named, weighted heuristic check applied per slide.
// Weights are expected in [0,1]; they are not required to sum to 1.
type Criterion struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// ScoreEntry is the outcome of one criterion on one slide.
type ScoreEntry struct {
	Score   int     `json:"score" yaml:"score"`
	Comment string  `json:"comment" yaml:"comment"`
	Weight  float64 `json:"weight" yaml:"weight"`
}

// Weighted returns Score multiplied by Weight.
func (e ScoreEntry) Weighted() float64 {
	return float64(e.Score) * e.Weight
}

// SlideReport maps criterion name to its ScoreEntry for one slide.
type SlideReport map[string]ScoreEntry

// SlideScore is the weighted result for a single slide.
type SlideScore struct {
	Number   int         `json:"number" yaml:"number"`
	Weighted float64     `json:"weighted" yaml:"weighted"`
	Report   SlideReport `json:"report" yaml:"report"`
}

// AggregateReport holds per-slide weighted scores in deck order and the
// overall average rounded to two decimals.
type AggregateReport struct {
	Source       string       `json:"source" yaml:"source"`
	SlideScores  []SlideScore `json:"slide_scores" yaml:"slide_scores"`
	AverageScore float64      `json:"average_score" yaml:"average_score"`
}

// Empty reports whether the scored deck had no slides.
func (r AggregateReport) Empty() bool { return len(r.SlideScores) == 0 }

// FeedbackRow is one row of the qualitative feedback spreadsheet.
type FeedbackRow struct {
	Slide          string `json:"slide" yaml:"slide"`
	Clarity        string `json:"clarity" yaml:"clarity"`
	Strategy       string `json:"strategy" yaml:"strategy"`
	Outcome        string `json:"outcome" yaml:"outcome"`
	Descriptors    string `json:"descriptors" yaml:"descriptors"`
	Analysis       string `json:"analysis" yaml:"analysis"`
	Recommendation string `json:"recommendation" yaml:"recommendation"`
}

// Cells returns the row values in spreadsheet column order.
func (r FeedbackRow) Cells() []string {
	return []string{r.Slide, r.Clarity, r.Strategy, r.Outcome, r.Descriptors, r.Analysis, r.Recommendation}
}
