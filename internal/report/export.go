// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

// Format selects how a score report is written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Write renders r to w in the given format.
func Write(w io.Writer, r types.AggregateReport, format Format) error {
	switch format {
	case FormatText, "":
		PrintScores(w, r)
		return nil
	case FormatJSON:
		return ExportJSON(w, r)
	case FormatYAML:
		return ExportYAML(w, r)
	}
	return fmt.Errorf("unsupported format %q: use text, json, or yaml", format)
}

// ExportJSON writes r as indented JSON.
func ExportJSON(w io.Writer, r types.AggregateReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// ExportYAML writes r as YAML.
func ExportYAML(w io.Writer, r types.AggregateReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
