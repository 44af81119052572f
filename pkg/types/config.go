package types

import "time"

// HTTPConfig holds HTTP settings used when a deck source is a URL.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "slide-scorer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// Token is an optional bearer token sent with deck downloads.
	Token string `json:"-" yaml:"-" mapstructure:"-"`

	// MaxRetries bounds retries on HTTP 429 (0 uses the default).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ScoringConfig holds the heuristics used by the slide scorer.
type ScoringConfig struct {
	// Weights maps criterion name to weight. Criteria absent from the map
	// are evaluated with weight 0.
	Weights map[string]float64 `json:"weights" yaml:"weights" mapstructure:"weights"`

	// AuthorMarker is the substring that marks authorship in speaker notes.
	AuthorMarker string `json:"author_marker" yaml:"author_marker" mapstructure:"author_marker"`

	// OutcomeMarker is the case-sensitive substring the feedback sheet looks
	// for when reporting outcome focus. The outcome criterion uses Keywords.
	OutcomeMarker string `json:"outcome_marker" yaml:"outcome_marker" mapstructure:"outcome_marker"`

	// MaxWords is the word limit for the brevity criterion (default 50).
	MaxWords int `json:"max_words" yaml:"max_words" mapstructure:"max_words"`

	// Keywords maps a keyword criterion (outcome, analysis, recommendation)
	// to the lowercase substrings it looks for.
	Keywords map[string][]string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// DefaultScoringConfig returns the built-in checklist settings.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: map[string]float64{
			CriterionStructure:      0.2,
			CriterionAttribution:    0.1,
			CriterionBrevity:        0.2,
			CriterionOutcome:        0.2,
			CriterionAnalysis:       0.15,
			CriterionRecommendation: 0.15,
		},
		AuthorMarker:  "Author:",
		OutcomeMarker: "Outcome:",
		MaxWords:      50,
		Keywords: map[string][]string{
			CriterionOutcome:        {"outcome", "result", "impact"},
			CriterionAnalysis:       {"analyze", "insight"},
			CriterionRecommendation: {"recommend", "next step"},
		},
	}
}

// ConvertConfig holds settings for converting legacy .ppt files.
type ConvertConfig struct {
	// Image is the container image that reads .ppt on stdin and writes
	// .pptx on stdout.
	Image string `json:"image" yaml:"image" mapstructure:"image"`
}

// ReportConfig holds settings for the feedback spreadsheet.
type ReportConfig struct {
	// Output is the spreadsheet path (default "feedback.xlsx").
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Sheet is the worksheet name (default "Slide Feedback").
	Sheet string `json:"sheet" yaml:"sheet" mapstructure:"sheet"`
}

// HistoryConfig holds settings for the scoring history database.
type HistoryConfig struct {
	// DBPath is the SQLite database file (default ".slide-scorer/history.db").
	DBPath string `json:"db" yaml:"db" mapstructure:"db"`
}

// Config groups all settings read from slide-scorer.yaml.
type Config struct {
	Scoring ScoringConfig `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Convert ConvertConfig `json:"convert" yaml:"convert" mapstructure:"convert"`
	Report  ReportConfig  `json:"report" yaml:"report" mapstructure:"report"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
