// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/slide-scorer/pkg/types"
)

// ParsePPTX reads an OOXML presentation from data.
func ParsePPTX(data []byte) (types.Deck, error) {
	return ReadPPTX(bytes.NewReader(data), int64(len(data)))
}

// ReadPPTX reads an OOXML presentation. Slides are returned in the order of
// the presentation's slide list and numbered from 1.
func ReadPPTX(r io.ReaderAt, size int64) (types.Deck, error) {
	p, err := openPackage(r, size)
	if err != nil {
		return types.Deck{}, err
	}
	if !p.has(presentationPart) {
		return types.Deck{}, fmt.Errorf("not a presentation: missing %s", presentationPart)
	}

	pres, err := p.root(presentationPart)
	if err != nil {
		return types.Deck{}, err
	}
	presRels, err := p.rels(presentationPart)
	if err != nil {
		return types.Deck{}, err
	}

	var d types.Deck
	list := pres.child("sldIdLst")
	if list == nil {
		return d, nil
	}
	for i, id := range list.children("sldId") {
		rel, ok := presRels[id.relID()]
		if !ok || !strings.HasSuffix(rel.Type, relTypeSlide) {
			return types.Deck{}, fmt.Errorf("slide %d: unresolved relationship %q", i+1, id.relID())
		}
		slide, err := p.readSlide(rel.Target)
		if err != nil {
			return types.Deck{}, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slide.Number = i + 1
		d.Slides = append(d.Slides, slide)
	}
	return d, nil
}

func (p *pkg) readSlide(part string) (types.Slide, error) {
	root, err := p.root(part)
	if err != nil {
		return types.Slide{}, err
	}
	rels, err := p.rels(part)
	if err != nil {
		return types.Slide{}, err
	}

	var slide types.Slide
	if tree := root.find("cSld", "spTree"); tree != nil {
		slide.Shapes = p.readShapes(tree, rels, nil)
	}
	for _, sh := range slide.Shapes {
		if sh.Kind == types.ShapeTitle && sh.HasText() {
			slide.Title = types.Text(*sh.Text)
			break
		}
	}

	if rel, ok := firstRel(rels, relTypeNotesSlide); ok {
		notes, err := p.readNotes(rel.Target)
		if err != nil {
			return types.Slide{}, err
		}
		slide.Notes = notes
	}
	return slide, nil
}

// readShapes flattens the shape tree into a list of shapes in z-order.
func (p *pkg) readShapes(tree *node, rels map[string]relationship, out []types.Shape) []types.Shape {
	for i := range tree.Nodes {
		el := &tree.Nodes[i]
		switch el.name() {
		case "sp":
			out = append(out, readTextShape(el))
		case "graphicFrame":
			out = append(out, p.readGraphicFrame(el, rels))
		case "pic":
			out = append(out, types.Shape{Name: shapeName(el, "nvPicPr"), Kind: types.ShapePicture})
		case "cxnSp":
			out = append(out, types.Shape{Name: shapeName(el, "nvCxnSpPr"), Kind: types.ShapeConnector})
		case "grpSp":
			out = p.readShapes(el, rels, out)
		case "AlternateContent":
			if choice := el.child("Choice"); choice != nil {
				out = p.readShapes(choice, rels, out)
			} else if fb := el.child("Fallback"); fb != nil {
				out = p.readShapes(fb, rels, out)
			}
		}
	}
	return out
}

func shapeName(el *node, nvPr string) string {
	if c := el.find(nvPr, "cNvPr"); c != nil {
		return c.attr("name")
	}
	return ""
}

func readTextShape(el *node) types.Shape {
	sh := types.Shape{Name: shapeName(el, "nvSpPr"), Kind: types.ShapeAutoShape}

	if ph := el.find("nvSpPr", "nvPr", "ph"); ph != nil {
		switch ph.attr("type") {
		case "title", "ctrTitle":
			sh.Kind = types.ShapeTitle
		case "dt", "ftr", "sldNum", "hdr":
			sh.Kind = types.ShapeOther
		default:
			sh.Kind = types.ShapeBody
		}
	} else if c := el.find("nvSpPr", "cNvSpPr"); c != nil && isTrue(c.attr("txBox")) {
		sh.Kind = types.ShapeTextBox
	}

	if body := el.child("txBody"); body != nil {
		sh.Text = types.Text(paragraphText(body))
	}
	return sh
}

// paragraphText joins the paragraphs of a text body with newlines.
func paragraphText(body *node) string {
	paras := body.children("p")
	lines := make([]string, len(paras))
	for i, para := range paras {
		var b strings.Builder
		para.collect(&b)
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (p *pkg) readGraphicFrame(el *node, rels map[string]relationship) types.Shape {
	sh := types.Shape{Name: shapeName(el, "nvGraphicFramePr"), Kind: types.ShapeOther}
	data := el.find("graphic", "graphicData")
	if data == nil {
		return sh
	}

	uri := data.attr("uri")
	switch {
	case strings.HasSuffix(uri, "/chart"):
		sh.Kind = types.ShapeChart
		ref := &types.ChartRef{}
		if c := data.child("chart"); c != nil {
			if rel, ok := rels[c.relID()]; ok && strings.HasSuffix(rel.Type, relTypeChart) {
				ref.Part = rel.Target
				ref.Type = p.chartType(rel.Target)
			}
		}
		sh.Chart = ref
	case strings.HasSuffix(uri, "/table"):
		sh.Kind = types.ShapeTable
		if tbl := data.child("tbl"); tbl != nil {
			sh.Text = types.Text(tableText(tbl))
		}
	}
	return sh
}

// chartType returns the first plot element name of a chart part, or "" if
// the part cannot be read.
func (p *pkg) chartType(part string) string {
	root, err := p.root(part)
	if err != nil {
		return ""
	}
	plot := root.find("chart", "plotArea")
	if plot == nil {
		return ""
	}
	for i := range plot.Nodes {
		if name := plot.Nodes[i].name(); strings.HasSuffix(name, "Chart") {
			return name
		}
	}
	return ""
}

// tableText renders a table as rows separated by newlines and cells by tabs.
func tableText(tbl *node) string {
	var rows []string
	for _, tr := range tbl.children("tr") {
		var cells []string
		for _, tc := range tr.children("tc") {
			var text string
			if body := tc.child("txBody"); body != nil {
				text = strings.ReplaceAll(paragraphText(body), "\n", " ")
			}
			cells = append(cells, text)
		}
		rows = append(rows, strings.Join(cells, "\t"))
	}
	return strings.Join(rows, "\n")
}

func (p *pkg) readNotes(part string) (string, error) {
	root, err := p.root(part)
	if err != nil {
		return "", err
	}
	tree := root.find("cSld", "spTree")
	if tree == nil {
		return "", nil
	}
	var parts []string
	for _, sp := range tree.children("sp") {
		ph := sp.find("nvSpPr", "nvPr", "ph")
		if ph == nil || ph.attr("type") != "body" {
			continue
		}
		if body := sp.child("txBody"); body != nil {
			parts = append(parts, paragraphText(body))
		}
	}
	return strings.Join(parts, "\n"), nil
}

func isTrue(v string) bool {
	return v == "1" || v == "true"
}
