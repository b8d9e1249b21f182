package layout

import (
	"strings"
	"unicode/utf8"
)

// InstructionKind identifies a recorded drawing call
type InstructionKind int

const (
	InstrPage InstructionKind = iota
	InstrText
	InstrLine
)

// Instruction is one recorded drawing call
type Instruction struct {
	Kind   InstructionKind
	Page   int
	X, Y   float64
	X2, Y2 float64
	Text   string
	Style  string
	Size   float64
	Color  Color
}

// Recorder is a Sink that keeps every call in memory. Text width is modelled as half an em per
// rune, close enough to Helvetica for layout decisions to match the PDF in shape.
type Recorder struct {
	Instructions []Instruction

	unitPerPt float64
	page      int
	style     string
	size      float64
	color     Color
	err       error
}

// NewRecorder returns a recorder measuring in the geometry's unit
func NewRecorder(g Geometry) *Recorder {
	k, err := unitsPerMM(g.Unit)
	return &Recorder{unitPerPt: k * 25.4 / 72, err: err}
}

// Fail makes every following call a no-op and Err report err
func (r *Recorder) Fail(err error) {
	r.err = err
}

func (r *Recorder) AddPage() {
	if r.err != nil {
		return
	}
	r.page++
	r.Instructions = append(r.Instructions, Instruction{Kind: InstrPage, Page: r.page})
}

func (r *Recorder) SetFont(style string, size float64) {
	r.style, r.size = style, size
}

func (r *Recorder) SetTextColor(c Color) { r.color = c }
func (r *Recorder) SetDrawColor(Color)   {}
func (r *Recorder) SetLineWidth(float64) {}

func (r *Recorder) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * r.size * 0.5 * r.unitPerPt
}

func (r *Recorder) Text(x, y float64, s string) {
	if r.err != nil {
		return
	}
	r.Instructions = append(r.Instructions, Instruction{
		Kind: InstrText, Page: r.page, X: x, Y: y, Text: s,
		Style: r.style, Size: r.size, Color: r.color,
	})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	if r.err != nil {
		return
	}
	r.Instructions = append(r.Instructions, Instruction{Kind: InstrLine, Page: r.page, X: x1, Y: y1, X2: x2, Y2: y2})
}

func (r *Recorder) Err() error { return r.err }

// Pages returns the number of pages started
func (r *Recorder) Pages() int { return r.page }

// Texts returns the recorded text calls in order
func (r *Recorder) Texts() []Instruction {
	var out []Instruction
	for _, in := range r.Instructions {
		if in.Kind == InstrText {
			out = append(out, in)
		}
	}
	return out
}

// StringWidthAt measures a recorded text call in the font it was drawn with
func (r *Recorder) StringWidthAt(in Instruction) float64 {
	return float64(utf8.RuneCountInString(in.Text)) * in.Size * 0.5 * r.unitPerPt
}

// Find returns the first text call whose text starts with prefix
func (r *Recorder) Find(prefix string) (Instruction, bool) {
	for _, in := range r.Texts() {
		if strings.HasPrefix(in.Text, prefix) {
			return in, true
		}
	}
	return Instruction{}, false
}

// Index returns the position of the first text call starting with prefix among Texts, or -1
func (r *Recorder) Index(prefix string) int {
	for i, in := range r.Texts() {
		if strings.HasPrefix(in.Text, prefix) {
			return i
		}
	}
	return -1
}
