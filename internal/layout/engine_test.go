package layout

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/dpshade/srs-wizard/internal/models"
)

var fixedDate = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func render(t *testing.T, r models.Record, g Geometry) *Recorder {
	t.Helper()
	rec := NewRecorder(g)
	stats, err := Render(rec, r, g, Options{Date: fixedDate})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if stats.Pages != rec.Pages() {
		t.Errorf("Expected stats to report %d pages, got %d", rec.Pages(), stats.Pages)
	}
	return rec
}

func portalRecord() models.Record {
	r := models.NewRecord()
	r.ProjectInfo.CompanyName = "Acme"
	r.ProjectInfo.Name = "Portal"
	r.ProjectInfo.Description = "Customer portal"
	r.FunctionalRequirements.UserStories = []string{"As a user I log in", ""}
	r.FunctionalRequirements.SystemFeatures = []string{"Login"}
	return r
}

func TestRenderPortalDocument(t *testing.T) {
	rec := render(t, portalRecord(), A4())

	if rec.Pages() != 1 {
		t.Fatalf("Expected a single page, got %d", rec.Pages())
	}

	header, _ := rec.Find("Acme")
	if header.Y != 15 || header.Style != StyleBold {
		t.Errorf("Expected bold header at y=15, got %+v", header)
	}
	width := 4 * 12 * 0.5 * 25.4 / 72
	if right := header.X + width; right < 189.9 || right > 190.1 {
		t.Errorf("Expected header right-aligned at 190, ends at %.2f", right)
	}

	order := []string{
		DocumentTitle,
		"Project: Portal",
		"1. Project Information",
		"Company Name:",
		"Project Name:",
		"Version:",
		"Description:",
		"Customer portal",
		"2. Functional Requirements",
		"User Stories:",
		"• As a user I log in",
		"System Features:",
		"• Login",
		"Generated by Acme",
	}
	last := -1
	for _, text := range order {
		idx := rec.Index(text)
		if idx < 0 {
			t.Fatalf("Expected %q in the document", text)
		}
		if idx <= last {
			t.Errorf("Expected %q after the previous entry", text)
		}
		last = idx
	}

	for _, absent := range []string{"Stakeholders:", "Scope:", "Business Rules:", "3. ", "4. ", "5. ", "Page "} {
		if _, ok := rec.Find(absent); ok {
			t.Errorf("Expected %q to be absent", absent)
		}
	}

	bullets := 0
	for _, in := range rec.Texts() {
		if strings.HasPrefix(in.Text, bullet) {
			bullets++
		}
	}
	if bullets != 2 {
		t.Errorf("Expected exactly two bullets (blank entries skipped), got %d", bullets)
	}

	date, ok := rec.Find("October 19, 2026")
	if !ok || date.Y != 292 {
		t.Errorf("Expected footer date at y=292, got %+v", date)
	}
}

// scenarioRecord is project info plus the first functional requirements, everything else blank.
func scenarioRecord() models.Record {
	r := models.NewRecord()
	r.ProjectInfo = models.ProjectInfo{
		CompanyName:  "Acme",
		Name:         "Portal",
		Version:      "1.0",
		Description:  "A portal.",
		Stakeholders: "",
		Scope:        "Internal use.",
	}
	r.FunctionalRequirements.UserStories = []string{"As a user, I want to log in."}
	r.FunctionalRequirements.SystemFeatures = []string{"Login"}
	return r
}

func TestRenderPartialRecord(t *testing.T) {
	rec := render(t, scenarioRecord(), A4())

	headings := 0
	for _, in := range rec.Texts() {
		if in.Size == sizeHeading {
			headings++
		}
	}
	if headings != 2 {
		t.Errorf("Expected exactly 2 numbered sections, got %d", headings)
	}

	for _, present := range []string{"1. Project Information", "2. Functional Requirements", "Scope:", "Internal use.", "A portal.", "• As a user, I want to log in.", "• Login"} {
		if _, ok := rec.Find(present); !ok {
			t.Errorf("Expected %q in the document", present)
		}
	}
	for _, absent := range []string{"Stakeholders:", "3. ", "4. ", "5. "} {
		if _, ok := rec.Find(absent); ok {
			t.Errorf("Expected %q to be absent", absent)
		}
	}
}

func TestLongCompanyNameStaysOnPage(t *testing.T) {
	r := portalRecord()
	r.ProjectInfo.CompanyName = strings.Repeat("Globex ", 40) + "Holdings"
	g := A4()
	rec := render(t, r, g)

	header, ok := rec.Find("Globex")
	if !ok {
		t.Fatal("Expected a page header")
	}
	if header.X < g.Margin-0.01 || !strings.HasSuffix(header.Text, "...") {
		t.Errorf("Expected the header shortened within the margin, got x=%.2f %q", header.X, header.Text)
	}
	if header.X+rec.StringWidthAt(header) > g.Width-g.Margin+0.01 {
		t.Errorf("Expected the header to end at the right margin, got %+v", header)
	}

	footer, ok := rec.Find("Generated by Globex")
	if !ok {
		t.Fatal("Expected the footer")
	}
	if footer.X < g.Margin-0.01 || !strings.HasSuffix(footer.Text, "...") {
		t.Errorf("Expected the footer shortened within the margin, got x=%.2f %q", footer.X, footer.Text)
	}
}

func TestSectionWithOnlyBlankFieldsIsSkipped(t *testing.T) {
	r := models.NewRecord()
	r.ProjectInfo.Version = ""
	r.SystemArchitecture.Overview = "Three tiers"
	r.SystemArchitecture.Components = []string{"", "  "}

	rec := render(t, r, A4())

	headings := 0
	for _, in := range rec.Texts() {
		if in.Size == sizeHeading {
			headings++
			if in.Text != "4. System Architecture" {
				t.Errorf("Unexpected heading %q", in.Text)
			}
		}
	}
	if headings != 1 {
		t.Errorf("Expected one heading, got %d", headings)
	}
	if _, ok := rec.Find("System Components:"); ok {
		t.Error("Expected a list of blank entries to be skipped")
	}
	if _, ok := rec.Find("Project:"); ok {
		t.Error("Expected no project subtitle without a project name")
	}
}

func TestEmptyRecordRendersVersionOnly(t *testing.T) {
	rec := render(t, models.NewRecord(), A4())

	if _, ok := rec.Find(DefaultFallbackName); !ok {
		t.Error("Expected the fallback name in the header")
	}
	if _, ok := rec.Find("1. Project Information"); !ok {
		t.Error("Expected section 1 for the default version")
	}
	if _, ok := rec.Find("2. "); ok {
		t.Error("Expected section 2 to be skipped")
	}
	if _, ok := rec.Find("Generated by " + DefaultFallbackName); !ok {
		t.Error("Expected footer with the fallback name")
	}
}

func TestFieldMovesToNextPageWhole(t *testing.T) {
	var lines []string
	for i := 1; i <= 25; i++ {
		lines = append(lines, fmt.Sprintf("Line %d of the description", i))
	}
	r := portalRecord()
	r.ProjectInfo.Description = strings.Join(lines, "\n")

	rec := render(t, r, A4())

	if rec.Pages() < 2 {
		t.Fatalf("Expected a page break, got %d pages", rec.Pages())
	}
	label, _ := rec.Find("Description:")
	if label.Page != 2 || label.Y != 40 {
		t.Errorf("Expected description to start at the top of page 2, got page %d y=%.1f", label.Page, label.Y)
	}
	first, _ := rec.Find("Line 1 of")
	lastLine, _ := rec.Find("Line 25 of")
	if first.Page != 2 || lastLine.Page != 2 {
		t.Errorf("Expected the whole description on page 2, got pages %d..%d", first.Page, lastLine.Page)
	}

	var headerOnPage2, markerOnPage2 bool
	for _, in := range rec.Texts() {
		if in.Page == 2 && in.Text == "Acme" && in.Y == 15 {
			headerOnPage2 = true
		}
		if in.Page == 2 && in.Text == "Page 2" {
			markerOnPage2 = true
		}
	}
	if !headerOnPage2 || !markerOnPage2 {
		t.Errorf("Expected header and page marker on page 2 (header=%v marker=%v)", headerOnPage2, markerOnPage2)
	}
}

func TestOversizedFieldBreaksPerLine(t *testing.T) {
	var lines []string
	for i := 1; i <= 90; i++ {
		lines = append(lines, fmt.Sprintf("Scope line %03d", i))
	}
	r := portalRecord()
	r.ProjectInfo.Scope = strings.Join(lines, "\n")

	g := A4()
	rec := render(t, r, g)

	if rec.Pages() < 3 {
		t.Fatalf("Expected at least 3 pages, got %d", rec.Pages())
	}
	prev := 0
	for i := 1; i <= 90; i++ {
		idx := rec.Index(fmt.Sprintf("Scope line %03d", i))
		if idx <= prev {
			t.Fatalf("Expected scope line %d in order", i)
		}
		prev = idx
	}
	assertWithinLimit(t, rec, g)
}

func TestFooterOnFinalPageOnly(t *testing.T) {
	r := portalRecord()
	r.ProjectInfo.Scope = strings.Repeat("scope words ", 900)

	rec := render(t, r, A4())

	count := 0
	for _, in := range rec.Texts() {
		if strings.HasPrefix(in.Text, "Generated by") {
			count++
			if in.Page != rec.Pages() {
				t.Errorf("Expected footer on page %d, got page %d", rec.Pages(), in.Page)
			}
		}
	}
	if count != 1 {
		t.Errorf("Expected one footer, got %d", count)
	}
}

func TestPaginationNeverOverflows(t *testing.T) {
	letter, err := NewGeometry("Letter", "pt", 20)
	if err != nil {
		t.Fatal(err)
	}
	geometries := []Geometry{A4(), letter}

	for seed := int64(1); seed <= 40; seed++ {
		for _, g := range geometries {
			r := randomRecord(rand.New(rand.NewSource(seed)))
			rec := render(t, r, g)
			assertWithinLimit(t, rec, g)
			assertNoOrphanHeadings(t, rec)
		}
	}
}

func TestSinkErrorIsReturned(t *testing.T) {
	rec := NewRecorder(A4())
	rec.Fail(errors.New("disk full"))

	if _, err := Render(rec, portalRecord(), A4(), Options{}); err == nil || err.Error() != "disk full" {
		t.Errorf("Expected sink error, got %v", err)
	}
}

func TestInvalidGeometry(t *testing.T) {
	if _, err := Render(NewRecorder(A4()), portalRecord(), Geometry{Width: 210, Height: 297, Margin: 20, Unit: "furlong"}, Options{}); err == nil {
		t.Error("Expected an unknown unit to be rejected")
	}
	if _, err := NewGeometry("A7", "mm", 20); err == nil {
		t.Error("Expected an unknown page size to be rejected")
	}
	if _, err := NewGeometry("A4", "mm", 0); err == nil {
		t.Error("Expected a zero margin to be rejected")
	}
}

func assertWithinLimit(t *testing.T, rec *Recorder, g Geometry) {
	t.Helper()
	k, _ := unitsPerMM(g.Unit)
	limit := g.Height - 40*k
	for _, in := range rec.Texts() {
		if in.Size == sizeSmall {
			continue // page marker and footer sit below the content area
		}
		if in.Y > limit+1e-9 {
			t.Fatalf("Text %q on page %d at y=%.2f crosses the limit %.2f", in.Text, in.Page, in.Y, limit)
		}
		if in.Y < 0 {
			t.Fatalf("Text %q on page %d at negative y", in.Text, in.Page)
		}
	}
}

func assertNoOrphanHeadings(t *testing.T, rec *Recorder) {
	t.Helper()
	var lastOnPage = map[int]Instruction{}
	for _, in := range rec.Texts() {
		if in.Size == sizeSmall || in.Size == sizeHeader && in.Style == StyleBold && in.Y < 20 {
			continue
		}
		lastOnPage[in.Page] = in
	}
	for page, in := range lastOnPage {
		if in.Size == sizeHeading {
			t.Errorf("Heading %q is the last text on page %d", in.Text, page)
		}
	}
}

func randomText(rng *rand.Rand, maxWords int) string {
	if rng.Intn(4) == 0 {
		return ""
	}
	words := []string{"system", "user", "data", "secure", "fast", "invoice", "report", "latency", "throughput",
		"supercalifragilisticexpialidociousandthensomemoretomakeitlongerthanaline"}
	n := 1 + rng.Intn(maxWords)
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			if rng.Intn(15) == 0 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(words[rng.Intn(len(words))])
	}
	return b.String()
}

func randomRecord(rng *rand.Rand) models.Record {
	r := models.NewRecord()
	for _, f := range models.TextFields() {
		r.SetText(f, randomText(rng, 400))
	}
	for _, f := range models.ListFields() {
		items := make([]string, 1+rng.Intn(12))
		for i := range items {
			items[i] = randomText(rng, 120)
		}
		r.SetList(f, items)
	}
	return r
}
