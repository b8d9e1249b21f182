// Package layout turns an SRS record into positioned drawing calls on a paginated page.
//
// The engine walks the document outline (see Sections) top to bottom with a vertical cursor.
// Before anything is drawn it checks that the block fits above the bottom limit of the page and
// starts a new page when it does not, so no text ever crosses the limit. The actual drawing
// surface is a Sink: the PDF writer in production, a Recorder in tests.
package layout

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dpshade/srs-wizard/internal/models"
)

// Document text
const (
	DocumentTitle       = "Software Requirements Specification"
	DefaultFallbackName = "SRS Generator Pro"
	DefaultDateFormat   = "January 2, 2006"
	bullet              = "• "
	maxSubtitleLines    = 3
)

// Font sizes in points
const (
	sizeHeader    = 12
	sizeSmall     = 10
	sizeTitle     = 24
	sizeSubtitle  = 16
	sizeHeading   = 18
	sizeBody      = 12
	ruleWidthMM   = 0.5
	accentWidthMM = 2
)

var (
	colorText   = Color{0, 0, 0}
	colorLabel  = Color{66, 139, 202}
	colorMuted  = Gray(100)
	colorSub    = Gray(60)
	colorRule   = Gray(200)
	colorAccent = Color{66, 139, 202}
)

// Options control the header, footer and date of a document
type Options struct {
	// FallbackName heads every page when the record has no company name
	FallbackName string
	// Date printed in the footer; zero means now
	Date       time.Time
	DateFormat string
}

// Stats describes a finished layout
type Stats struct {
	Pages int
}

type engine struct {
	sink   Sink
	geo    Geometry
	m      metrics
	header string
	y      float64
	page   int
}

// Render lays out the record on the sink. The record is not validated: whatever is non-blank is
// printed. The returned error is the sink's.
func Render(sink Sink, record models.Record, geo Geometry, opts Options) (Stats, error) {
	if err := geo.Validate(); err != nil {
		return Stats{}, err
	}
	m, err := newMetrics(geo.Unit)
	if err != nil {
		return Stats{}, err
	}

	e := &engine{sink: sink, geo: geo, m: m}
	e.header = strings.TrimSpace(record.ProjectInfo.CompanyName)
	if e.header == "" {
		e.header = opts.FallbackName
		if e.header == "" {
			e.header = DefaultFallbackName
		}
	}

	e.newPage()
	e.titleBlock(strings.TrimSpace(record.ProjectInfo.Name))
	for _, section := range Sections(record) {
		if sink.Err() != nil {
			break
		}
		e.section(section)
	}
	e.footer(opts)

	if err := sink.Err(); err != nil {
		return Stats{Pages: e.page}, err
	}
	return Stats{Pages: e.page}, nil
}

// limit is the lowest cursor position content may reach on a page
func (e *engine) limit() float64 {
	return e.geo.Height - e.m.bottom
}

// capacity is the vertical space available to content on a fresh page
func (e *engine) capacity() float64 {
	return e.limit() - e.m.top
}

func (e *engine) fits(h float64) bool {
	return e.y+h <= e.limit()
}

// ensure makes room for a block of height full whose first line needs lead. A block that fits
// on a fresh page moves there whole; a taller one starts where it is as long as its lead fits
// and is broken per line while drawing.
func (e *engine) ensure(full, lead float64) {
	if e.fits(full) {
		return
	}
	if full > e.capacity() && e.fits(lead) {
		return
	}
	if e.y > e.m.top {
		e.newPage()
	}
}

func (e *engine) newPage() {
	e.sink.AddPage()
	e.page++
	e.y = e.m.top

	right := e.geo.Width - e.geo.Margin

	e.sink.SetFont(StyleBold, sizeHeader)
	e.sink.SetTextColor(colorText)
	e.textRight(right, e.m.headerY, e.fit(e.header, e.geo.ContentWidth()))

	if e.page > 1 {
		e.sink.SetFont(StyleRegular, sizeSmall)
		e.sink.SetTextColor(colorMuted)
		e.textRight(right, e.geo.Height-e.m.pageNumberUp, fmt.Sprintf("Page %d", e.page))
	}

	e.sink.SetDrawColor(colorRule)
	e.sink.SetLineWidth(ruleWidthMM * e.m.k)
	e.sink.Line(e.geo.Margin, e.m.ruleY, right, e.m.ruleY)

	e.body()
}

func (e *engine) titleBlock(projectName string) {
	e.sink.SetFont(StyleBold, sizeTitle)
	e.sink.SetTextColor(colorText)
	e.textCenter(e.y, DocumentTitle)
	e.y += 10 * e.m.k

	if projectName != "" {
		e.sink.SetFont(StyleRegular, sizeSubtitle)
		e.sink.SetTextColor(colorSub)
		lines := e.wrap("Project: "+projectName, e.geo.ContentWidth())
		if len(lines) > maxSubtitleLines {
			lines = append(lines[:maxSubtitleLines-1], lines[maxSubtitleLines-1]+"...")
		}
		for _, line := range lines {
			e.textCenter(e.y, line)
			e.y += e.m.lineHeight(sizeSubtitle)
		}
		e.y += 15*e.m.k - e.m.lineHeight(sizeSubtitle)
	}

	x1 := e.geo.Margin + e.m.titleInset
	x2 := e.geo.Width - e.geo.Margin - e.m.titleInset
	if x2 > x1 {
		e.sink.SetDrawColor(colorAccent)
		e.sink.SetLineWidth(accentWidthMM * e.m.k)
		e.sink.Line(x1, e.y, x2, e.y)
	}
	e.y += 25 * e.m.k
	e.sink.SetTextColor(colorText)
}

// prepared is a block with its text already wrapped: one line set for an inline or paragraph
// block, one per entry for a bullet list
type prepared struct {
	block Block
	x     float64
	lines [][]string
}

func (e *engine) prepare(b Block) prepared {
	p := prepared{block: b, x: e.geo.Margin}

	switch b.Kind {
	case BlockInline:
		e.sink.SetFont(StyleBold, sizeBody)
		column := math.Max(e.m.inlineColumn, e.sink.StringWidth(b.Label+":")+3*e.m.k)
		p.x = e.geo.Margin + column
		e.body()
		p.lines = [][]string{e.wrap(b.Text, e.geo.Width-e.geo.Margin-p.x)}
	case BlockParagraph:
		e.body()
		p.lines = [][]string{e.wrap(b.Text, e.geo.ContentWidth())}
	case BlockBulletList:
		e.body()
		p.x = e.geo.Margin + e.m.bulletIndent
		for _, item := range b.Items {
			p.lines = append(p.lines, e.wrap(bullet+item, e.geo.ContentWidth()-2*e.m.bulletIndent))
		}
	}
	return p
}

// heights returns the height of the block's first unit (the whole block, or the label with the
// first list entry) and of its label with one line
func (e *engine) heights(p prepared) (full, lead float64) {
	lh := e.m.lineHeight(sizeBody)
	first := float64(len(p.lines[0])) * lh
	if p.block.Kind == BlockInline {
		return first, lh
	}
	return e.m.labelAdvance + first, e.m.labelAdvance + lh
}

func (e *engine) section(s Section) {
	blocks := make([]prepared, len(s.Blocks))
	for i, b := range s.Blocks {
		blocks[i] = e.prepare(b)
	}

	// A heading never ends a page on its own: it moves together with the start of its first block.
	full, lead := e.heights(blocks[0])
	e.ensure(e.m.headingAdvance+full, e.m.headingAdvance+lead)

	e.sink.SetFont(StyleBold, sizeHeading)
	e.sink.SetTextColor(colorText)
	e.sink.Text(e.geo.Margin, e.y, s.Heading())
	e.y += e.m.headingAdvance

	for i, p := range blocks {
		if i > 0 {
			full, lead := e.heights(p)
			e.ensure(full, lead)
		}
		e.draw(p)
	}
	e.y += e.m.sectionGap
}

func (e *engine) draw(p prepared) {
	lh := e.m.lineHeight(sizeBody)
	label := p.block.Label + ":"

	switch p.block.Kind {
	case BlockInline:
		e.label(label)
		e.body()
		e.lines(p.lines[0], p.x, lh)
		e.y += e.m.inlineGap

	case BlockParagraph:
		e.label(label)
		e.y += e.m.labelAdvance
		e.body()
		e.lines(p.lines[0], p.x, lh)
		e.y += e.m.paragraphGap

	case BlockBulletList:
		e.label(label)
		e.y += e.m.labelAdvance
		e.body()
		for i, item := range p.lines {
			if i > 0 {
				e.ensure(float64(len(item))*lh, lh)
			}
			e.lines(item, p.x, lh)
			e.y += e.m.bulletGap
		}
		e.y += e.m.listGap
	}
}

func (e *engine) label(text string) {
	e.sink.SetFont(StyleBold, sizeBody)
	e.sink.SetTextColor(colorLabel)
	e.sink.Text(e.geo.Margin, e.y, text)
}

func (e *engine) body() {
	e.sink.SetFont(StyleRegular, sizeBody)
	e.sink.SetTextColor(colorText)
}

// lines draws wrapped lines at one line height each, starting at the cursor. The block has
// already been placed; a new page starts here only for a block taller than the page.
func (e *engine) lines(lines []string, x, lh float64) {
	for _, line := range lines {
		if !e.fits(lh) {
			e.newPage()
		}
		e.sink.Text(x, e.y, line)
		e.y += lh
	}
}

func (e *engine) footer(opts Options) {
	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}
	format := opts.DateFormat
	if format == "" {
		format = DefaultDateFormat
	}

	e.sink.SetFont(StyleRegular, sizeSmall)
	e.sink.SetTextColor(colorMuted)
	e.textCenter(e.geo.Height-e.m.footerUp, e.fit("Generated by "+e.header, e.geo.ContentWidth()))
	e.textCenter(e.geo.Height-e.m.dateUp, date.Format(format))
}

func (e *engine) wrap(text string, width float64) []string {
	return Wrap(text, width, e.sink.StringWidth)
}

// fit shortens s with an ellipsis so it is no wider than width in the current font
func (e *engine) fit(s string, width float64) string {
	if e.sink.StringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		short := strings.TrimRight(string(runes), " ") + "..."
		if e.sink.StringWidth(short) <= width {
			return short
		}
	}
	return "..."
}

func (e *engine) textRight(right, y float64, s string) {
	e.sink.Text(right-e.sink.StringWidth(s), y, s)
}

func (e *engine) textCenter(y float64, s string) {
	e.sink.Text((e.geo.Width-e.sink.StringWidth(s))/2, y, s)
}
