// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/slide-scorer/internal/convert"
	"github.com/pdiddy/slide-scorer/internal/history"
	"github.com/pdiddy/slide-scorer/internal/report"
	"github.com/pdiddy/slide-scorer/pkg/types"
)

// setDefaults registers built-in settings so that a partial config file
// only overrides what it names.
func setDefaults(v *viper.Viper) {
	def := types.DefaultScoringConfig()
	for name, w := range def.Weights {
		v.SetDefault("scoring.weights."+name, w)
	}
	for name, words := range def.Keywords {
		v.SetDefault("scoring.keywords."+name, words)
	}
	v.SetDefault("scoring.author_marker", def.AuthorMarker)
	v.SetDefault("scoring.outcome_marker", def.OutcomeMarker)
	v.SetDefault("scoring.max_words", def.MaxWords)

	v.SetDefault("http.timeout", "60s")
	v.SetDefault("http.user_agent", "slide-scorer/"+version)
	v.SetDefault("http.max_retries", 3)

	v.SetDefault("convert.image", convert.DefaultImage)
	v.SetDefault("report.output", report.DefaultOutput)
	v.SetDefault("report.sheet", report.DefaultSheet)
	v.SetDefault("history.db", history.DefaultDBPath)
}

// loadConfig merges defaults, the config file, and SLIDE_SCORER_* variables.
func loadConfig(v *viper.Viper) (types.Config, error) {
	setDefaults(v)
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	return c, nil
}

// parseWeights turns repeated name=value flags into a weight override map.
func parseWeights(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		name, raw, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q: use name=value", p)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		out[strings.TrimSpace(name)] = w
	}
	return out, nil
}

// mergeWeights returns base with overrides applied; base is not modified.
func mergeWeights(base, overrides map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
