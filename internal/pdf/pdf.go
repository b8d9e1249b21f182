// Package pdf writes SRS documents as PDF files using go-pdf/fpdf. The page layout itself comes
// from internal/layout; this package only provides the drawing surface and the file naming.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/layout"
	"github.com/dpshade/srs-wizard/internal/models"
)

const (
	fontFamily = "Helvetica"
	// DefaultFileName is used when the project has no name
	DefaultFileName = "SRS_Document.pdf"
	fileSuffix      = "_SRS.pdf"
)

// Sink draws on an fpdf document. Core fonts are single-byte, so every string goes through the
// cp1252 translator before it is measured or drawn.
type Sink struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

// NewSink creates an empty document with the given page geometry. Automatic page breaks are off:
// the layout engine decides where pages end.
func NewSink(g layout.Geometry) *Sink {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        g.Unit,
		Size:           fpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	doc.SetMargins(g.Margin, g.Margin, g.Margin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetFont(fontFamily, "", 12)

	return &Sink{
		doc: doc,
		tr:  doc.UnicodeTranslatorFromDescriptor(""),
	}
}

func (s *Sink) AddPage() { s.doc.AddPage() }

func (s *Sink) SetFont(style string, size float64) {
	s.doc.SetFont(fontFamily, style, size)
}

func (s *Sink) SetTextColor(c layout.Color) { s.doc.SetTextColor(c.R, c.G, c.B) }
func (s *Sink) SetDrawColor(c layout.Color) { s.doc.SetDrawColor(c.R, c.G, c.B) }
func (s *Sink) SetLineWidth(w float64)      { s.doc.SetLineWidth(w) }

func (s *Sink) StringWidth(text string) float64 {
	return s.doc.GetStringWidth(s.tr(text))
}

func (s *Sink) Text(x, y float64, text string) {
	s.doc.Text(x, y, s.tr(text))
}

func (s *Sink) Line(x1, y1, x2, y2 float64) {
	s.doc.Line(x1, y1, x2, y2)
}

func (s *Sink) Err() error { return s.doc.Error() }

// SetMetadata fills the document information dictionary
func (s *Sink) SetMetadata(title, author string, created time.Time) {
	s.doc.SetTitle(title, true)
	s.doc.SetAuthor(author, true)
	s.doc.SetCreator("srs-wizard", false)
	s.doc.SetSubject(layout.DocumentTitle, false)
	if !created.IsZero() {
		s.doc.SetCreationDate(created)
	}
}

// Output writes the finished document
func (s *Sink) Output(w io.Writer) error {
	return s.doc.Output(w)
}

// Document is a rendered PDF
type Document struct {
	FileName string
	Data     []byte
	Pages    int
}

// Render lays out the record and returns the PDF bytes. Any failure, including a panic inside
// the PDF writer, comes back as one RENDER_FAILED error and no bytes.
func Render(record models.Record, g layout.Geometry, opts layout.Options) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = errors.RenderError(fmt.Errorf("panic: %v", r))
		}
	}()

	if err := g.Validate(); err != nil {
		return nil, errors.RenderError(err)
	}

	sink := NewSink(g)
	title := strings.TrimSpace(record.ProjectInfo.Name)
	if title == "" {
		title = layout.DocumentTitle
	}
	sink.SetMetadata(title, strings.TrimSpace(record.ProjectInfo.CompanyName), opts.Date)

	stats, err := layout.Render(sink, record, g, opts)
	if err != nil {
		return nil, errors.RenderError(err)
	}

	var buf bytes.Buffer
	if err := sink.Output(&buf); err != nil {
		return nil, errors.RenderError(err)
	}

	return &Document{
		FileName: FileName(record.ProjectInfo.Name),
		Data:     buf.Bytes(),
		Pages:    stats.Pages,
	}, nil
}

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// FileName derives the download name from the project name: every run of characters outside
// [A-Za-z0-9] becomes one underscore, then "_SRS.pdf" is appended. A blank name gives
// SRS_Document.pdf.
func FileName(projectName string) string {
	if models.IsBlank(projectName) {
		return DefaultFileName
	}
	return nonAlphanumeric.ReplaceAllString(projectName, "_") + fileSuffix
}
