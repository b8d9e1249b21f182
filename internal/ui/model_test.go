package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dpshade/srs-wizard/internal/catalog"
	"github.com/dpshade/srs-wizard/internal/config"
	"github.com/dpshade/srs-wizard/internal/models"
	"github.com/dpshade/srs-wizard/internal/service"
)

func newTestModel(t *testing.T, record *models.Record) Model {
	t.Helper()
	t.Setenv("GLAMOUR_STYLE", "dark")

	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.OutputDir = t.TempDir()

	m, err := NewModel(service.NewService(cfg), Options{Record: record})
	if err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}
	return *m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func sampleRecord(t *testing.T) *models.Record {
	t.Helper()
	e, err := catalog.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	r := catalog.SampleRecord(e)
	return &r
}

func TestStepFormWritesBack(t *testing.T) {
	record := models.NewRecord()
	form := NewStepForm(0, record, 60, 0)

	record, _ = form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Acme")}, record)
	if record.ProjectInfo.CompanyName != "Acme" {
		t.Errorf("Expected company name 'Acme', got '%s'", record.ProjectInfo.CompanyName)
	}

	record, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab}, record)
	if form.Focused() != 1 {
		t.Errorf("Expected focus on the second field, got %d", form.Focused())
	}
	record, _ = form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Portal")}, record)
	if record.ProjectInfo.Name != "Portal" || record.ProjectInfo.CompanyName != "Acme" {
		t.Errorf("Expected both fields set, got %+v", record.ProjectInfo)
	}

	record, _ = form.Update(tea.KeyMsg{Type: tea.KeyShiftTab}, record)
	record, _ = form.Update(tea.KeyMsg{Type: tea.KeyShiftTab}, record)
	if form.Focused() != form.Len()-1 {
		t.Errorf("Expected focus to wrap to the last field, got %d", form.Focused())
	}
}

func TestStepFormListEntries(t *testing.T) {
	record := models.NewRecord()
	record.Constraints.Business = []string{"Budget", "Timeline"}

	form := NewStepForm(models.ReviewStep-1, record, 60, 1)
	field, index, ok := form.FocusedList()
	if !ok || field != models.ListBusiness || index != 0 {
		t.Errorf("Expected the first business constraint focused, got %v %d %v", field, index, ok)
	}
	if form.Len() != 4 {
		t.Errorf("Expected one entry per list item, got %d", form.Len())
	}
	if !strings.Contains(form.View(0), "Business Constraints") {
		t.Error("Expected the field label in the form view")
	}
}

func TestNextIsGatedByValidation(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.Current() != 0 {
		t.Errorf("Expected to stay on step 0, got %d", m.Current())
	}
	if !strings.Contains(m.statusMsg, "Incomplete Section") {
		t.Errorf("Expected an Incomplete Section notification, got '%s'", m.statusMsg)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2"), Alt: true})
	if m.Current() != 0 {
		t.Errorf("Expected jump to an incomplete step to be refused, got %d", m.Current())
	}
}

func TestWizardFlowToReview(t *testing.T) {
	m := newTestModel(t, sampleRecord(t))

	for i := 0; i < models.ReviewStep; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	}
	if m.Current() != models.ReviewStep {
		t.Fatalf("Expected the review step, got %d", m.Current())
	}
	if !strings.Contains(m.View(), "Review & Generate") {
		t.Error("Expected the review step title in the view")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1"), Alt: true})
	if m.Current() != 0 {
		t.Errorf("Expected jump back to step 0, got %d", m.Current())
	}
}

func TestAddAndRemoveEntries(t *testing.T) {
	m := newTestModel(t, sampleRecord(t))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.Current() != 1 {
		t.Fatalf("Expected step 1, got %d", m.Current())
	}

	before := len(m.Record().FunctionalRequirements.UserStories)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlA})
	stories := m.Record().FunctionalRequirements.UserStories
	if len(stories) != before+1 || stories[len(stories)-1] != "" {
		t.Fatalf("Expected a blank entry appended, got %d entries", len(stories))
	}
	if _, index, _ := m.form.FocusedList(); index != before {
		t.Errorf("Expected focus on the new entry %d, got %d", before, index)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if n := len(m.Record().FunctionalRequirements.UserStories); n != before {
		t.Errorf("Expected %d entries after remove, got %d", before, n)
	}
}

func TestRemoveKeepsLastEntry(t *testing.T) {
	record := sampleRecord(t)
	record.FunctionalRequirements.UserStories = []string{"Only story"}
	m := newTestModel(t, record)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if stories := m.Record().FunctionalRequirements.UserStories; len(stories) != 1 || stories[0] != "Only story" {
		t.Errorf("Expected the last entry to be kept, got %v", stories)
	}
	if strings.Contains(m.wizardHelp(), "remove entry") {
		t.Error("Expected the remove action to be hidden with one entry left")
	}
}

func TestGenerateIgnoredWhileInFlight(t *testing.T) {
	m := newTestModel(t, sampleRecord(t))

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if m.generating || !strings.Contains(m.statusMsg, "Finish the wizard") {
		t.Error("Expected generation to wait for the review step")
	}

	for i := 0; i < models.ReviewStep; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	}
	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	if !m.generating || cmd == nil {
		t.Fatal("Expected a generation command")
	}
	if _, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlG}); cmd != nil {
		t.Error("Expected a second generate to be ignored while one is in flight")
	}

	m, _ = send(t, m, generateDoneMsg{result: &service.Result{FileName: "E_SRS.pdf", Path: "/tmp/E_SRS.pdf", Pages: 3, Mode: "download"}})
	if m.generating || !strings.Contains(m.statusMsg, "/tmp/E_SRS.pdf") {
		t.Errorf("Expected a success notification, got '%s'", m.statusMsg)
	}
}

func TestExamplesBrowser(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if m.viewMode != ViewExamples {
		t.Fatalf("Expected the examples view, got %v", m.viewMode)
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.viewMode != ViewExampleDetail || m.selectedExample == nil {
		t.Fatal("Expected an example detail view")
	}
	if m.selectedExample.Name != catalog.All()[0].Name {
		t.Errorf("Expected the first example, got %s", m.selectedExample.Name)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.viewMode != ViewWizard {
		t.Errorf("Expected to return to the wizard, got %v", m.viewMode)
	}
}

type clipboard struct {
	text string
}

func (c *clipboard) Open(string) error  { return nil }
func (c *clipboard) Print(string) error { return nil }
func (c *clipboard) Copy(text string) error {
	c.text = text
	return nil
}

func TestCopyReviewOnReviewStep(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "dark")
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	cb := &clipboard{}

	model, err := NewModel(service.NewService(cfg).WithLauncher(cb), Options{Record: sampleRecord(t)})
	if err != nil {
		t.Fatal(err)
	}
	m := *model

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if cb.text != "" {
		t.Error("Expected copy to be ignored before the review step")
	}

	for i := 0; i < models.ReviewStep; i++ {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if !strings.Contains(cb.text, "# Software Requirements Specification") {
		t.Errorf("Expected the review Markdown on the clipboard, got %q", cb.text)
	}
	if !strings.Contains(m.statusMsg, "Copied") {
		t.Errorf("Expected a copy notification, got '%s'", m.statusMsg)
	}
}
