package layout

import (
	"strings"
	"unicode/utf8"
)

// Color is an RGB triple, 0..255 per channel
type Color struct {
	R, G, B int
}

// Gray returns the gray level v on all channels
func Gray(v int) Color { return Color{v, v, v} }

// Font styles understood by every sink
const (
	StyleRegular = ""
	StyleBold    = "B"
)

// Sink is the drawing surface the layout engine writes to. Coordinates are in the geometry unit
// with the origin at the top-left corner; Text draws with y as the baseline. A sink that fails
// reports it through Err; the engine stops at the first error it sees.
type Sink interface {
	AddPage()
	SetFont(style string, size float64)
	SetTextColor(c Color)
	SetDrawColor(c Color)
	SetLineWidth(w float64)
	// StringWidth measures s in the current font
	StringWidth(s string) float64
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	Err() error
}

// Wrap splits text into lines no wider than width as measured by measure. Explicit line breaks
// are kept; runs of spaces collapse; a word wider than the line is broken between runes.
func Wrap(text string, width float64, measure func(string) float64) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= width {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			if measure(word) <= width {
				current = word
				continue
			}
			chunks := breakWord(word, width, measure)
			lines = append(lines, chunks[:len(chunks)-1]...)
			current = chunks[len(chunks)-1]
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}

func breakWord(word string, width float64, measure func(string) float64) []string {
	var chunks []string
	start := 0
	for i := range word {
		if i > start && measure(word[start:i+runeLen(word[i:])]) > width {
			chunks = append(chunks, word[start:i])
			start = i
		}
	}
	return append(chunks, word[start:])
}

func runeLen(s string) int {
	_, size := utf8.DecodeRuneInString(s)
	return size
}
