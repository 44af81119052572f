// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

// ParseYAML reads a deck description:
//
//	slides:
//	  - title: Quarterly Review
//	    notes: "Author: J. Smith"
//	    shapes:
//	      - kind: body
//	        text: "Outcome: revenue up 12%"
//	      - chart: {part: ppt/charts/chart1.xml, type: barChart}
//
// Slides without a number are numbered by position. Shapes without a kind
// get one from their capabilities.
func ParseYAML(data []byte) (types.Deck, error) {
	var d types.Deck
	if err := yaml.Unmarshal(data, &d); err != nil {
		return types.Deck{}, fmt.Errorf("parsing deck YAML: %w", err)
	}

	for i := range d.Slides {
		s := &d.Slides[i]
		if s.Number == 0 {
			s.Number = i + 1
		} else if s.Number != i+1 {
			return types.Deck{}, fmt.Errorf("slide at position %d has number %d", i+1, s.Number)
		}
		for j := range s.Shapes {
			sh := &s.Shapes[j]
			if sh.Kind != "" {
				continue
			}
			switch {
			case sh.HasChart():
				sh.Kind = types.ShapeChart
			case sh.HasText():
				sh.Kind = types.ShapeBody
			default:
				sh.Kind = types.ShapeOther
			}
		}
	}
	return d, nil
}
