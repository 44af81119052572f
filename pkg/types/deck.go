// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ShapeKind tags the kind of drawing object a Shape was read from.
type ShapeKind string

const (
	ShapeTitle     ShapeKind = "title"
	ShapeBody      ShapeKind = "body"
	ShapeTextBox   ShapeKind = "textbox"
	ShapeAutoShape ShapeKind = "autoshape"
	ShapePicture   ShapeKind = "picture"
	ShapeChart     ShapeKind = "chart"
	ShapeTable     ShapeKind = "table"
	ShapeGroup     ShapeKind = "group"
	ShapeConnector ShapeKind = "connector"
	ShapeOther     ShapeKind = "other"
)

// ChartRef points at the chart part a graphic frame embeds.
type ChartRef struct {
	// Part is the package path of the chart XML (e.g. "ppt/charts/chart1.xml").
	Part string `json:"part" yaml:"part"`

	// Type is the chart element name when known (e.g. "barChart").
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Shape is a single drawing object on a slide. Text and Chart are optional
// capabilities; a nil field means the shape does not carry that feature.
type Shape struct {
	Name  string    `json:"name,omitempty" yaml:"name,omitempty"`
	Kind  ShapeKind `json:"kind" yaml:"kind"`
	Text  *string   `json:"text,omitempty" yaml:"text,omitempty"`
	Chart *ChartRef `json:"chart,omitempty" yaml:"chart,omitempty"`
}

// HasText reports whether the shape carries a text frame.
func (s Shape) HasText() bool { return s.Text != nil }

// HasChart reports whether the shape embeds a chart.
func (s Shape) HasChart() bool { return s.Chart != nil }

// TextValue returns the shape text, or "" when the shape has none.
func (s Shape) TextValue() string {
	if s.Text == nil {
		return ""
	}
	return *s.Text
}

// Slide is one slide of a Deck.
type Slide struct {
	// Number is the 1-based position of the slide in the deck.
	Number int `json:"number" yaml:"number"`

	Shapes []Shape `json:"shapes" yaml:"shapes"`

	// Title is the text of the title placeholder, nil when the slide has none.
	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	// Notes is the speaker notes text. Slides without notes have "".
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// HasTitle reports whether the slide has a non-blank title.
func (s Slide) HasTitle() bool {
	return s.Title != nil && strings.TrimSpace(*s.Title) != ""
}

// TitleValue returns the title text, or "" when the slide has none.
func (s Slide) TitleValue() string {
	if s.Title == nil {
		return ""
	}
	return *s.Title
}

// Deck is a loaded presentation. It is treated as read-only once loaded.
type Deck struct {
	// Source is the path or URL the deck was loaded from.
	Source string `json:"source" yaml:"source"`

	Slides []Slide `json:"slides" yaml:"slides"`
}

// Len returns the number of slides.
func (d Deck) Len() int { return len(d.Slides) }

// Text returns a pointer to s, for building optional text fields.
func Text(s string) *string { return &s }
