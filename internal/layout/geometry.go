package layout

import (
	"fmt"
	"strings"
)

// Geometry is the page size and horizontal margin, all in Unit
type Geometry struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Margin float64 `json:"margin" yaml:"margin"`
	Unit   string  `json:"unit" yaml:"unit"`
}

var pageSizesMM = map[string][2]float64{
	"a4":     {210, 297},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

// unitsPerMM converts millimetres into the named unit
func unitsPerMM(unit string) (float64, error) {
	switch strings.ToLower(unit) {
	case "mm", "":
		return 1, nil
	case "cm":
		return 0.1, nil
	case "in", "inch":
		return 1 / 25.4, nil
	case "pt", "point":
		return 72 / 25.4, nil
	}
	return 0, fmt.Errorf("unsupported unit %q", unit)
}

// A4 is the default geometry: 210 x 297 mm with 20 mm margins
func A4() Geometry {
	return Geometry{Width: 210, Height: 297, Margin: 20, Unit: "mm"}
}

// NewGeometry builds a geometry for a named page size in the given unit, with the margin given
// in millimetres
func NewGeometry(size, unit string, marginMM float64) (Geometry, error) {
	dims, ok := pageSizesMM[strings.ToLower(size)]
	if !ok {
		return Geometry{}, fmt.Errorf("unsupported page size %q (supported: %s)", size, strings.Join(PageSizes(), ", "))
	}
	k, err := unitsPerMM(unit)
	if err != nil {
		return Geometry{}, err
	}
	if unit == "" {
		unit = "mm"
	}
	g := Geometry{Width: dims[0] * k, Height: dims[1] * k, Margin: marginMM * k, Unit: strings.ToLower(unit)}
	return g, g.Validate()
}

// PageSizes lists the supported page size names
func PageSizes() []string {
	return []string{"A4", "Letter", "Legal"}
}

// Validate rejects geometries the layout cannot fill
func (g Geometry) Validate() error {
	k, err := unitsPerMM(g.Unit)
	if err != nil {
		return err
	}
	if g.Margin <= 0 {
		return fmt.Errorf("margin must be positive")
	}
	if g.Width-2*g.Margin < 40*k {
		return fmt.Errorf("page width %.1f%s leaves no room for text", g.Width, g.Unit)
	}
	if g.Height < 200*k {
		return fmt.Errorf("page height %.1f%s is too small", g.Height, g.Unit)
	}
	return nil
}

// ContentWidth is the width between the margins
func (g Geometry) ContentWidth() float64 {
	return g.Width - 2*g.Margin
}

// metrics are the fixed vertical offsets and gaps of the document, defined in millimetres and
// scaled into the geometry unit
type metrics struct {
	k float64 // units per mm

	top          float64 // first baseline of body content on every page
	bottom       float64 // distance from the bottom edge that content may not cross
	headerY      float64
	ruleY        float64
	pageNumberUp float64 // page marker distance from the bottom edge
	footerUp     float64 // "Generated by" distance from the bottom edge
	dateUp       float64

	headingAdvance float64
	labelAdvance   float64
	inlineGap      float64
	paragraphGap   float64
	bulletGap      float64
	listGap        float64
	sectionGap     float64
	bulletIndent   float64
	inlineColumn   float64
	titleInset     float64
}

func newMetrics(unit string) (metrics, error) {
	k, err := unitsPerMM(unit)
	if err != nil {
		return metrics{}, err
	}
	return metrics{
		k:              k,
		top:            40 * k,
		bottom:         40 * k,
		headerY:        15 * k,
		ruleY:          25 * k,
		pageNumberUp:   10 * k,
		footerUp:       15 * k,
		dateUp:         5 * k,
		headingAdvance: 15 * k,
		labelAdvance:   8 * k,
		inlineGap:      4 * k,
		paragraphGap:   6 * k,
		bulletGap:      3 * k,
		listGap:        5 * k,
		sectionGap:     5 * k,
		bulletIndent:   5 * k,
		inlineColumn:   35 * k,
		titleInset:     50 * k,
	}, nil
}

// lineHeight for a font size in points: half a millimetre per point
func (m metrics) lineHeight(size float64) float64 {
	return size * 0.5 * m.k
}
