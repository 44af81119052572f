// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score evaluates slides against a fixed checklist of heuristics and
// computes weighted per-slide and aggregate scores.
package score

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

// Points awarded when a criterion passes.
const (
	structurePoints   = 5
	attributionPoints = 4
	brevityPoints     = 4
	keywordPoints     = 3
)

var (
	// ErrEmptyDeck is returned with a zero report when the deck has no slides.
	ErrEmptyDeck = errors.New("no slides")

	// ErrUnknownCriterion is returned when a weight names no built-in criterion.
	ErrUnknownCriterion = errors.New("unknown criterion")

	// ErrInvalidWeight is returned when a weight is NaN or infinite.
	ErrInvalidWeight = errors.New("invalid weight")
)

// Scorer applies the slide checklist. A Scorer holds no per-run state and
// may be reused across decks.
type Scorer struct {
	marker        string
	outcomeMarker string
	maxWords      int
	keywords map[string][]string
	logger   *zap.Logger
}

// New creates a Scorer from cfg. Zero-valued settings fall back to
// types.DefaultScoringConfig. A nil logger is replaced by a no-op logger.
func New(cfg types.ScoringConfig, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := types.DefaultScoringConfig()

	s := &Scorer{
		marker:        cfg.AuthorMarker,
		outcomeMarker: cfg.OutcomeMarker,
		maxWords:      cfg.MaxWords,
		keywords:      make(map[string][]string, len(def.Keywords)),
		logger:        logger,
	}
	if s.marker == "" {
		s.marker = def.AuthorMarker
	}
	if s.outcomeMarker == "" {
		s.outcomeMarker = def.OutcomeMarker
	}
	if s.maxWords <= 0 {
		s.maxWords = def.MaxWords
	}
	for name, words := range def.Keywords {
		if custom, ok := cfg.Keywords[name]; ok && len(custom) > 0 {
			words = custom
		}
		lowered := make([]string, 0, len(words))
		for _, w := range words {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				lowered = append(lowered, w)
			}
		}
		s.keywords[name] = lowered
	}
	return s
}

// Criteria resolves a weight map into the built-in criteria in report order.
// Criteria missing from weights get weight 0. Weights outside [0,1] are
// accepted with a warning; NaN and infinite weights are rejected.
func (s *Scorer) Criteria(weights map[string]float64) ([]types.Criterion, error) {
	for name, w := range weights {
		if !isCriterion(name) {
			return nil, fmt.Errorf("%w %q: valid criteria are %s",
				ErrUnknownCriterion, name, strings.Join(types.CriterionNames, ", "))
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidWeight, name, w)
		}
	}

	criteria := make([]types.Criterion, len(types.CriterionNames))
	for i, name := range types.CriterionNames {
		w := weights[name]
		if w < 0 || w > 1 {
			s.logger.Warn("criterion weight outside [0,1]",
				zap.String("criterion", name), zap.Float64("weight", w))
		}
		criteria[i] = types.Criterion{Name: name, Weight: w}
	}
	return criteria, nil
}

// Score evaluates every slide of deck and returns the aggregate report.
// For an empty deck it returns a zero report together with ErrEmptyDeck.
func (s *Scorer) Score(deck types.Deck, weights map[string]float64) (types.AggregateReport, error) {
	criteria, err := s.Criteria(weights)
	if err != nil {
		return types.AggregateReport{}, err
	}

	report := types.AggregateReport{
		Source:      deck.Source,
		SlideScores: make([]types.SlideScore, 0, deck.Len()),
	}
	if deck.Len() == 0 {
		s.logger.Warn("deck has no slides", zap.String("source", deck.Source))
		return report, ErrEmptyDeck
	}

	var total float64
	for i, slide := range deck.Slides {
		number := slide.Number
		if number == 0 {
			number = i + 1
		}
		sr := s.ScoreSlide(slide, criteria)

		var weighted float64
		for _, c := range criteria {
			weighted += sr[c.Name].Weighted()
		}
		total += weighted

		s.logger.Debug("scored slide",
			zap.Int("slide", number), zap.Float64("weighted", weighted))
		report.SlideScores = append(report.SlideScores, types.SlideScore{
			Number:   number,
			Weighted: weighted,
			Report:   sr,
		})
	}

	report.AverageScore = round2(total / float64(len(report.SlideScores)))
	return report, nil
}

// ScoreSlide evaluates every criterion against a single slide.
func (s *Scorer) ScoreSlide(slide types.Slide, criteria []types.Criterion) types.SlideReport {
	sr := make(types.SlideReport, len(criteria))
	for _, c := range criteria {
		entry := s.evaluate(c.Name, slide)
		entry.Weight = c.Weight
		sr[c.Name] = entry
	}
	return sr
}

func (s *Scorer) evaluate(name string, slide types.Slide) types.ScoreEntry {
	switch name {
	case types.CriterionStructure:
		if slide.HasTitle() {
			return types.ScoreEntry{
				Score:   structurePoints,
				Comment: fmt.Sprintf("Title present: %q.", strings.TrimSpace(slide.TitleValue())),
			}
		}
		return types.ScoreEntry{Comment: "No title found. Add a title that states the slide's message."}

	case types.CriterionAttribution:
		if strings.Contains(slide.Notes, s.marker) {
			return types.ScoreEntry{Score: attributionPoints, Comment: "Author identified in speaker notes."}
		}
		return types.ScoreEntry{Comment: fmt.Sprintf("No %q marker in speaker notes.", s.marker)}

	case types.CriterionBrevity:
		words := WordCount(slide)
		if words <= s.maxWords {
			return types.ScoreEntry{
				Score:   brevityPoints,
				Comment: fmt.Sprintf("%d words, within the %d word limit.", words, s.maxWords),
			}
		}
		return types.ScoreEntry{Comment: fmt.Sprintf("%d words exceeds the %d word limit.", words, s.maxWords)}

	case types.CriterionOutcome, types.CriterionAnalysis, types.CriterionRecommendation:
		n := CountMatches(slide, s.keywords[name])
		entry := types.ScoreEntry{Comment: keywordComment(name, n)}
		if n > 0 {
			entry.Score = keywordPoints
		}
		return entry
	}
	return types.ScoreEntry{}
}

func keywordComment(name string, n int) string {
	switch name {
	case types.CriterionOutcome:
		return fmt.Sprintf("%d outcome statements found.", n)
	case types.CriterionAnalysis:
		return fmt.Sprintf("%d insights identified.", n)
	default:
		return fmt.Sprintf("%d recommendations found.", n)
	}
}

// WordCount sums whitespace-separated words across all text-bearing shapes.
func WordCount(slide types.Slide) int {
	total := 0
	for _, sh := range slide.Shapes {
		if !sh.HasText() {
			continue
		}
		total += len(strings.Fields(*sh.Text))
	}
	return total
}

// CountMatches counts text-bearing shapes whose lowercased text contains
// any of keywords. Keywords must already be lowercase.
func CountMatches(slide types.Slide, keywords []string) int {
	n := 0
	for _, sh := range slide.Shapes {
		if !sh.HasText() {
			continue
		}
		text := strings.ToLower(*sh.Text)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				n++
				break
			}
		}
	}
	return n
}

func isCriterion(name string) bool {
	for _, n := range types.CriterionNames {
		if n == name {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
