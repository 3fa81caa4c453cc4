// Package page holds the HTML document the scenes draw into. The document is
// kept as a goquery DOM so renderers can clear and append nodes the same way
// a browser would.
package page

import (
	_ "embed"
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Element ids of the external collaborators
const (
	MountID    = "viz"
	SelectorID = "jobSelector"
	PrevID     = "prevButton"
	NextID     = "nextButton"
)

//go:embed index.html
var skeleton string

// Page is the document plus typed handles to its controls.
// It is not safe for concurrent use.
type Page struct {
	doc *goquery.Document
}

// New parses the embedded skeleton
func New() (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(skeleton))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page skeleton: %w", err)
	}
	p := &Page{doc: doc}
	for _, id := range []string{MountID, SelectorID, PrevID, NextID} {
		if p.byID(id).Length() != 1 {
			return nil, fmt.Errorf("page skeleton is missing #%s", id)
		}
	}
	return p, nil
}

func (p *Page) byID(id string) *goquery.Selection {
	return p.doc.Find("#" + id)
}

// Mount returns the container the active scene owns
func (p *Page) Mount() Mount {
	return Mount{sel: p.byID(MountID)}
}

// JobSelector returns the dropdown used by the experience scene
func (p *Page) JobSelector() JobSelector {
	return JobSelector{sel: p.byID(SelectorID)}
}

// Prev returns the "previous" navigation button
func (p *Page) Prev() Control {
	return Control{sel: p.byID(PrevID)}
}

// Next returns the "next" navigation button
func (p *Page) Next() Control {
	return Control{sel: p.byID(NextID)}
}

// SetHeading replaces the page heading and the document title
func (p *Page) SetHeading(text string) {
	p.doc.Find("header h1").SetText(text)
	p.doc.Find("title").SetText(text + " | salaryscenes")
}

// HTML serializes the whole document
func (p *Page) HTML() (string, error) {
	return p.doc.Html()
}

// Mount is the chart container
type Mount struct {
	sel *goquery.Selection
}

// Clear removes everything inside the mount point
func (m Mount) Clear() {
	m.sel.Empty()
}

// AppendFigure adds a chart figure with its annotation
func (m Mount) AppendFigure(f Figure) {
	m.sel.AppendHtml(f.html())
}

// RemoveFigure drops the figure with the given id, leaving siblings alone
func (m Mount) RemoveFigure(id string) {
	m.sel.Find("figure#" + id).Remove()
}

// ShowMessage replaces the mount contents with a single status line
func (m Mount) ShowMessage(class, text string) {
	m.sel.Empty()
	m.sel.AppendHtml(fmt.Sprintf(`<p class="%s">%s</p>`, class, html.EscapeString(text)))
}

// Figures returns the ids of the figures currently mounted
func (m Mount) Figures() []string {
	var ids []string
	m.sel.ChildrenFiltered("figure").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids = append(ids, id)
	})
	return ids
}

// ChildCount is the number of direct child nodes
func (m Mount) ChildCount() int {
	return m.sel.Children().Length()
}

// HTML returns the inner markup of the mount point
func (m Mount) HTML() (string, error) {
	return m.sel.Html()
}

// Figure is one scene's chart plus its side annotation
type Figure struct {
	ID    string
	SVG   []byte
	Notes Annotation
}

// Annotation is a block of explanatory text placed next to the chart
type Annotation struct {
	X, Y, Width int
	// HTML is trusted markup
	HTML string
}

func (f Figure) html() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<figure class="chart" id="%s">`, html.EscapeString(f.ID))
	b.Write(f.SVG)
	if f.Notes.HTML != "" {
		fmt.Fprintf(&b, `<div class="annotation" style="left:%dpx;top:%dpx;width:%dpx">%s</div>`,
			f.Notes.X, f.Notes.Y, f.Notes.Width, f.Notes.HTML)
	}
	b.WriteString(`</figure>`)
	return b.String()
}

// Control is a show/hide-able widget
type Control struct {
	sel *goquery.Selection
}

// SetVisible shows or hides the control
func (c Control) SetVisible(visible bool) {
	if visible {
		c.sel.SetAttr("style", "display:inline-block")
		return
	}
	c.sel.SetAttr("style", "display:none")
}

// Visible reports whether the control is displayed
func (c Control) Visible() bool {
	style, _ := c.sel.Attr("style")
	return !strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none")
}

// JobSelector is the job title dropdown
type JobSelector struct {
	sel *goquery.Selection
}

// Show displays the dropdown
func (j JobSelector) Show() { Control(j).SetVisible(true) }

// Hide removes the dropdown from view
func (j JobSelector) Hide() { Control(j).SetVisible(false) }

// Visible reports whether the dropdown is displayed
func (j JobSelector) Visible() bool { return Control(j).Visible() }

// SetOptions replaces the options and marks selected
func (j JobSelector) SetOptions(jobs []string, selected string) {
	j.sel.Empty()
	var b strings.Builder
	for _, job := range jobs {
		esc := html.EscapeString(job)
		if job == selected {
			fmt.Fprintf(&b, `<option value="%s" selected>%s</option>`, esc, esc)
			continue
		}
		fmt.Fprintf(&b, `<option value="%s">%s</option>`, esc, esc)
	}
	j.sel.AppendHtml(b.String())
}

// Select marks job as the chosen option without rebuilding the list
func (j JobSelector) Select(job string) {
	j.sel.Find("option").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("value"); v == job {
			s.SetAttr("selected", "")
		} else {
			s.RemoveAttr("selected")
		}
	})
}

// Options returns the option values in order
func (j JobSelector) Options() []string {
	var out []string
	j.sel.Find("option").Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("value")
		out = append(out, v)
	})
	return out
}

// Selected returns the value of the selected option, if any
func (j JobSelector) Selected() string {
	v, _ := j.sel.Find("option[selected]").First().Attr("value")
	return v
}
