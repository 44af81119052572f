// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

const (
	presentationPart = "ppt/presentation.xml"

	relTypeSlide      = "/slide"
	relTypeNotesSlide = "/notesSlide"
	relTypeChart      = "/chart"
)

// node is a generic XML element that keeps children in document order.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []node     `xml:",any"`
	Text    string     `xml:",chardata"`
}

func (n *node) name() string { return n.XMLName.Local }

// attr returns the value of the unqualified attribute local.
func (n *node) attr(local string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// relID returns the r:id attribute that links the element to a relationship.
func (n *node) relID() string {
	for _, a := range n.Attrs {
		if a.Name.Local == "id" && strings.HasSuffix(a.Name.Space, "relationships") {
			return a.Value
		}
	}
	return ""
}

func (n *node) child(local string) *node {
	for i := range n.Nodes {
		if n.Nodes[i].name() == local {
			return &n.Nodes[i]
		}
	}
	return nil
}

// find descends through the named children and returns nil when any step
// is missing.
func (n *node) find(locals ...string) *node {
	cur := n
	for _, l := range locals {
		if cur = cur.child(l); cur == nil {
			return nil
		}
	}
	return cur
}

// children returns all direct children with the given local name.
func (n *node) children(local string) []*node {
	var out []*node
	for i := range n.Nodes {
		if n.Nodes[i].name() == local {
			out = append(out, &n.Nodes[i])
		}
	}
	return out
}

// collect appends the text of every descendant "t" element, turning line
// breaks into vertical tabs.
func (n *node) collect(b *strings.Builder) {
	for i := range n.Nodes {
		c := &n.Nodes[i]
		switch c.name() {
		case "t":
			b.WriteString(c.Text)
		case "br":
			b.WriteString("\v")
		default:
			c.collect(b)
		}
	}
}

// relationship is one entry of a .rels part.
type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

type relationships struct {
	Items []relationship `xml:"Relationship"`
}

// pkg is an opened OOXML package.
type pkg struct {
	files map[string]*zip.File
}

func openPackage(r io.ReaderAt, size int64) (*pkg, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening package: %w", err)
	}
	p := &pkg{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		p.files[strings.TrimPrefix(f.Name, "/")] = f
	}
	return p, nil
}

func (p *pkg) has(part string) bool {
	_, ok := p.files[part]
	return ok
}

func (p *pkg) decode(part string, v any) error {
	f, ok := p.files[part]
	if !ok {
		return fmt.Errorf("missing part %s", part)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening part %s: %w", part, err)
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("parsing part %s: %w", part, err)
	}
	return nil
}

func (p *pkg) root(part string) (*node, error) {
	var n node
	if err := p.decode(part, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// rels returns the relationships of part keyed by ID with targets resolved
// to package paths. A part without a .rels file has no relationships.
func (p *pkg) rels(part string) (map[string]relationship, error) {
	relsPart := path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
	out := make(map[string]relationship)
	if !p.has(relsPart) {
		return out, nil
	}
	var rs relationships
	if err := p.decode(relsPart, &rs); err != nil {
		return nil, err
	}
	for _, r := range rs.Items {
		if r.TargetMode == "External" {
			continue
		}
		r.Target = resolveTarget(part, r.Target)
		out[r.ID] = r
	}
	return out, nil
}

// firstRel returns the relationship with the lowest ID whose type ends with
// suffix. IDs compare by numeric suffix, so rId2 precedes rId10.
func firstRel(rels map[string]relationship, suffix string) (relationship, bool) {
	var best relationship
	found := false
	for _, r := range rels {
		if !strings.HasSuffix(r.Type, suffix) {
			continue
		}
		if !found || relIDLess(r.ID, best.ID) {
			best, found = r, true
		}
	}
	return best, found
}

// relIDLess orders relationship IDs by their trailing number, falling back to
// string order when the numbers tie or are absent.
func relIDLess(a, b string) bool {
	pa, na, okA := splitRelID(a)
	pb, nb, okB := splitRelID(b)
	if okA && okB && pa == pb && na != nb {
		return na < nb
	}
	return a < b
}

func splitRelID(id string) (string, int, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return id, 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return id, 0, false
	}
	return id[:i], n, true
}

func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}
