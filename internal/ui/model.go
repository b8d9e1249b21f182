package ui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dpshade/srs-wizard/internal/catalog"
	"github.com/dpshade/srs-wizard/internal/editor"
	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
	"github.com/dpshade/srs-wizard/internal/renderer"
	"github.com/dpshade/srs-wizard/internal/service"
	"github.com/dpshade/srs-wizard/internal/wizard"
)

// createGlamourRenderer creates a glamour renderer with improved contrast handling
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()

	var styleOption glamour.TermRendererOption
	switch {
	case profile != termenv.TrueColor && profile != termenv.ANSI256:
		// Fallback to auto-style for limited color terminals
		styleOption = glamour.WithAutoStyle()
	case lipgloss.HasDarkBackground():
		styleOption = glamour.WithStandardStyle("dark")
	default:
		styleOption = glamour.WithStandardStyle("light")
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// KeyMap defines all key bindings
type KeyMap struct {
	Next        key.Binding
	Previous    key.Binding
	Jump        key.Binding
	AddEntry    key.Binding
	RemoveEntry key.Binding
	Generate    key.Binding
	Print       key.Binding
	Save        key.Binding
	CopyReview  key.Binding
	Examples    key.Binding
	Enter       key.Binding
	Back        key.Binding
	Download    key.Binding
	PrintSample key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to show in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Help, k.Quit}
}

// FullHelp returns keybindings to show in the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.Jump},
		{k.AddEntry, k.RemoveEntry, k.Save},
		{k.Generate, k.Print, k.CopyReview, k.Examples},
		{k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "next step"),
	),
	Previous: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "previous step"),
	),
	Jump: key.NewBinding(
		key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5", "alt+6"),
		key.WithHelp("alt+1..6", "jump to step"),
	),
	AddEntry: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("ctrl+a", "add entry"),
	),
	RemoveEntry: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "remove entry"),
	),
	Generate: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "generate PDF"),
	),
	Print: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "generate and print"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save record"),
	),
	CopyReview: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy review"),
	),
	Examples: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "examples"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Download: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "download sample"),
	),
	PrintSample: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "print sample"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewWizard ViewMode = iota
	ViewExamples
	ViewExampleDetail
)

// Options seeds a new wizard
type Options struct {
	// Record is the starting record; nil starts from a blank record
	Record *models.Record
	// RecordPath is where ctrl+s saves the record; empty disables saving
	RecordPath string
}

// generateDoneMsg carries the outcome of a generation command
type generateDoneMsg struct {
	result *service.Result
	err    error
}

// tickMsg is sent to clear the status message
type tickMsg time.Time

// clearStatusCmd returns a command that clears the status message after a delay
func clearStatusCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// generateCmd runs a generation off the UI loop
func generateCmd(svc *service.Service, record models.Record, mode service.Mode) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.Generate(context.Background(), record, mode)
		return generateDoneMsg{result: result, err: err}
	}
}

// generateSampleCmd renders a catalog example off the UI loop
func generateSampleCmd(svc *service.Service, e models.Example, mode service.Mode) tea.Cmd {
	return func() tea.Msg {
		result, err := svc.GenerateSample(context.Background(), e, mode)
		return generateDoneMsg{result: result, err: err}
	}
}

// Model represents the TUI application state
type Model struct {
	service      *service.Service
	errorHandler *errors.TUIErrorHandler
	viewMode     ViewMode

	// Wizard state
	record     models.Record
	nav        *wizard.Navigator
	form       *StepForm
	recordPath string

	// UI components
	progress    progress.Model
	viewport    viewport.Model
	exampleList list.Model
	help        help.Model
	keys        KeyMap

	selectedExample *models.Example
	glamourRenderer *glamour.TermRenderer

	// Window dimensions
	width  int
	height int

	// Status messages
	statusMsg     string
	statusType    string
	statusTimeout int

	// A generation command is in flight
	generating bool

	showExpandedHelp bool
}

// NewModel creates the wizard at step 0
func NewModel(svc *service.Service, opts Options) (*Model, error) {
	// Initialize adaptive colors based on terminal background
	initializeColors()

	record := models.NewRecord()
	if opts.Record != nil {
		record = opts.Record.Clone()
		record.Normalize()
	}

	items := make([]list.Item, 0, len(catalog.All()))
	for _, e := range catalog.All() {
		items = append(items, e)
	}
	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	r, err := createGlamourRenderer(76)
	if err != nil {
		return nil, fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	m := &Model{
		service:         svc,
		errorHandler:    errors.NewTUIErrorHandler(false, svc.Config().LogDir()),
		viewMode:        ViewWizard,
		record:          record,
		nav:             wizard.NewNavigator(),
		recordPath:      opts.RecordPath,
		progress:        progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		viewport:        vp,
		exampleList:     l,
		help:            help.New(),
		keys:            keys,
		glamourRenderer: r,
		width:           100,
		height:          30,
	}
	m.rebuildStep(0)
	return m, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Record returns the record being edited
func (m Model) Record() models.Record {
	return m.record.Clone()
}

// Current returns the wizard step on screen
func (m Model) Current() int {
	return m.nav.Current()
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.statusTimeout > 0 {
			m.statusTimeout--
			if m.statusTimeout == 0 {
				m.statusMsg = ""
			} else {
				return m, clearStatusCmd()
			}
		}
		return m, nil

	case generateDoneMsg:
		m.generating = false
		return m, m.finishGeneration(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.viewMode {
		case ViewExamples:
			return m.updateExamples(msg)
		case ViewExampleDetail:
			return m.updateExampleDetail(msg)
		default:
			return m.updateWizard(msg)
		}
	}

	return m.forward(msg)
}

// forward passes non-key messages such as cursor blinks to the active component
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewExamples:
		m.exampleList, cmd = m.exampleList.Update(msg)
	case ViewExampleDetail:
		m.viewport, cmd = m.viewport.Update(msg)
	default:
		if m.nav.IsTerminal() {
			m.viewport, cmd = m.viewport.Update(msg)
		} else if m.form != nil {
			m.record, cmd = m.form.Update(msg, m.record)
		}
	}
	return m, cmd
}

func (m Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		if err := m.nav.Next(m.record); err != nil {
			return m, m.setError(err)
		}
		m.rebuildStep(0)
		return m, nil

	case key.Matches(msg, m.keys.Previous):
		if m.nav.Current() > 0 {
			m.nav.Previous()
			m.rebuildStep(0)
		}
		return m, nil

	case key.Matches(msg, m.keys.Jump):
		step := int(msg.String()[len(msg.String())-1]-'0') - 1
		if !m.nav.JumpTo(step) {
			return m, m.setStatus(fmt.Sprintf("Complete the earlier steps before opening step %d", step+1), "warning", 3)
		}
		m.rebuildStep(0)
		return m, nil

	case key.Matches(msg, m.keys.AddEntry):
		field, _, ok := m.focusedList()
		if !ok {
			return m, nil
		}
		m.record = editor.Append(m.record, field)
		m.rebuildStep(m.form.Focused() + m.entriesAfter(field) + 1)
		return m, nil

	case key.Matches(msg, m.keys.RemoveEntry):
		field, index, ok := m.focusedList()
		if !ok || !editor.CanRemove(m.record, field) {
			return m, nil
		}
		record, err := editor.Remove(m.record, field, index)
		if err != nil {
			return m, m.setError(err)
		}
		m.record = record
		focus := m.form.Focused()
		if index == len(m.record.List(field)) {
			focus--
		}
		m.rebuildStep(focus)
		return m, nil

	case key.Matches(msg, m.keys.Generate):
		return m, m.startGeneration(service.ModeDownload)

	case key.Matches(msg, m.keys.Print):
		return m, m.startGeneration(service.ModePrint)

	case key.Matches(msg, m.keys.Save):
		return m, m.saveRecord()

	case key.Matches(msg, m.keys.CopyReview):
		if !m.nav.IsTerminal() {
			return m, nil
		}
		if err := m.service.CopyReview(m.record); err != nil {
			return m, m.setError(err)
		}
		return m, m.setStatus("✓ Copied the review to the clipboard", "success", 3)

	case key.Matches(msg, m.keys.Examples):
		m.viewMode = ViewExamples
		m.exampleList.ResetFilter()
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showExpandedHelp = !m.showExpandedHelp
		return m, nil
	}

	if m.nav.IsTerminal() {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.form != nil {
		m.record, cmd = m.form.Update(msg, m.record)
	}
	return m, cmd
}

func (m Model) updateExamples(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.exampleList.SettingFilter() {
		var cmd tea.Cmd
		m.exampleList, cmd = m.exampleList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.exampleList.IsFiltered() {
			m.exampleList.ResetFilter()
			return m, nil
		}
		m.viewMode = ViewWizard
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if e, ok := m.exampleList.SelectedItem().(models.Example); ok {
			m.selectedExample = &e
			m.viewMode = ViewExampleDetail
			m.resize()
			m.renderExample()
			m.viewport.GotoTop()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.exampleList, cmd = m.exampleList.Update(msg)
	return m, cmd
}

func (m Model) updateExampleDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewExamples
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Download):
		return m, m.startSample(service.ModeDownload)
	case key.Matches(msg, m.keys.PrintSample):
		return m, m.startSample(service.ModePrint)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// startGeneration launches a generation unless one is already running
func (m *Model) startGeneration(mode service.Mode) tea.Cmd {
	if m.generating {
		return nil
	}
	if !m.nav.IsTerminal() {
		return m.setStatus("Finish the wizard to generate the document", "info", 3)
	}
	m.generating = true
	return tea.Batch(
		m.setStatus("Generating PDF...", "info", 30),
		generateCmd(m.service, m.record.Clone(), mode),
	)
}

func (m *Model) startSample(mode service.Mode) tea.Cmd {
	if m.generating || m.selectedExample == nil {
		return nil
	}
	m.generating = true
	return tea.Batch(
		m.setStatus("Generating sample PDF...", "info", 30),
		generateSampleCmd(m.service, *m.selectedExample, mode),
	)
}

func (m *Model) finishGeneration(msg generateDoneMsg) tea.Cmd {
	if msg.err != nil {
		if msg.result != nil {
			// The file is on disk even though the print or open step failed
			m.errorHandler.HandleError(msg.err)
			return m.setStatus(fmt.Sprintf("Saved %s, but %s", msg.result.Path, m.errorHandler.FormatError(msg.err)), "warning", 5)
		}
		return m.setError(msg.err)
	}

	r := msg.result
	pages := "pages"
	if r.Pages == 1 {
		pages = "page"
	}
	text := fmt.Sprintf("✓ Saved %s (%d %s)", r.Path, r.Pages, pages)
	if r.Mode == service.ModePrint.String() {
		text = fmt.Sprintf("✓ Sent %s to the printer", r.FileName)
	}
	return m.setStatus(text, "success", 4)
}

func (m *Model) saveRecord() tea.Cmd {
	if m.recordPath == "" {
		return m.setStatus("Start with --input FILE to save the record", "info", 3)
	}
	if err := m.service.SaveRecord(m.recordPath, m.record); err != nil {
		return m.setError(err)
	}
	return m.setStatus("✓ Saved record to "+m.recordPath, "success", 3)
}

// setError logs the error and shows it as a notification styled by severity
func (m *Model) setError(err error) tea.Cmd {
	m.errorHandler.HandleError(err)
	icon, _ := m.errorHandler.GetErrorStyle(err)

	statusType := "error"
	appErr := errors.GetAppError(err)
	if appErr.Severity == errors.SeverityWarning {
		statusType = "warning"
	}

	text := icon + " " + m.errorHandler.FormatError(err)
	if appErr.Code == errors.ErrCodeIncompleteSection && appErr.Details != "" {
		text += " (" + appErr.Details + ")"
	}
	return m.setStatus(text, statusType, 4)
}

func (m *Model) setStatus(text, statusType string, seconds int) tea.Cmd {
	running := m.statusTimeout > 0
	m.statusMsg = text
	m.statusType = statusType
	m.statusTimeout = seconds
	if running {
		return nil
	}
	return clearStatusCmd()
}

func (m *Model) focusedList() (models.ListField, int, bool) {
	if m.form == nil || m.nav.IsTerminal() {
		return 0, 0, false
	}
	return m.form.FocusedList()
}

// entriesAfter counts the entries of field that follow the focused one
func (m *Model) entriesAfter(field models.ListField) int {
	_, index, _ := m.form.FocusedList()
	return len(m.record.List(field)) - 2 - index
}

// rebuildStep rebuilds the screen for the current step
func (m *Model) rebuildStep(focus int) {
	if m.nav.IsTerminal() {
		m.form = nil
		m.resize()
		m.renderReview()
		m.viewport.GotoTop()
		return
	}
	m.form = NewStepForm(m.nav.Current(), m.record, m.contentWidth(), focus)
}

func (m *Model) renderReview() {
	m.setMarkdown(renderer.NewRenderer(m.record).RenderMarkdown())
}

func (m *Model) renderExample() {
	if m.selectedExample == nil {
		return
	}
	e := *m.selectedExample

	var b strings.Builder
	fmt.Fprintf(&b, "_%s_\n\n", e.Summary)
	fmt.Fprintf(&b, "**Category:** %s  \n**Complexity:** %s  \n**Pages:** %d\n\n", e.Category, e.Complexity, e.Pages)
	b.WriteString("**Key features:**\n\n")
	for _, f := range e.Features {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(renderer.NewRenderer(catalog.SampleRecord(e)).RenderMarkdown())
	m.setMarkdown(b.String())
}

func (m *Model) setMarkdown(content string) {
	formatted, err := m.glamourRenderer.Render(content)
	if err != nil {
		formatted = content
	}
	m.viewport.SetContent(formatted)
}

func (m *Model) contentWidth() int {
	w := m.width - sidebarWidth - 12
	if w < 30 {
		w = 30
	}
	return w
}

const sidebarWidth = 36

// resize applies the window size to the component of the current view
func (m *Model) resize() {
	// Reserve space for: header (2), progress (2), help (2), status (1), margins (3)
	const reservedHeight = 10
	available := m.height - reservedHeight
	if available < 5 {
		available = 5
	}

	switch m.viewMode {
	case ViewExamples:
		m.exampleList.SetSize(m.width-4, available)
	case ViewExampleDetail, ViewWizard:
		width := m.width - 8
		if m.viewMode == ViewWizard {
			width = m.contentWidth()
		}
		if width < 30 {
			width = 30
		}
		m.viewport.Width = width
		m.viewport.Height = available - 2
		if r, err := createGlamourRenderer(width - 4); err == nil {
			m.glamourRenderer = r
		}
		if m.viewMode == ViewExampleDetail {
			m.renderExample()
		} else if m.nav.IsTerminal() {
			m.renderReview()
		} else if m.form != nil {
			m.form.Resize(width)
		}
	}
	m.progress.Width = m.width - sidebarWidth - 20
	if m.progress.Width < 20 {
		m.progress.Width = 20
	}
}

// View renders the current view
func (m Model) View() string {
	var mainView string
	switch m.viewMode {
	case ViewExamples:
		mainView = m.renderExamplesView()
	case ViewExampleDetail:
		mainView = m.renderExampleDetailView()
	default:
		mainView = m.renderWizardView()
	}

	if m.statusMsg != "" {
		mainView = lipgloss.JoinVertical(lipgloss.Left, mainView, CreateStatus(m.statusMsg, m.statusType))
	}
	return AddMainPadding(mainView)
}

func (m Model) renderWizardView() string {
	step := m.nav.CurrentStep()

	header := lipgloss.JoinVertical(lipgloss.Left,
		CreateMainHeader("SRS Generator"),
		CreateMetadata(fmt.Sprintf("Step %d of %d • %s", step.Index+1, models.StepCount, step.Description)),
	)
	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		m.progress.ViewAs(float64(m.nav.Progress())/100),
		StyleTextMuted.Render(fmt.Sprintf("  %d%% complete", m.nav.Progress())),
	)

	var body string
	if m.nav.IsTerminal() {
		top, bottom := CreateScrollIndicators(!m.viewport.AtTop(), !m.viewport.AtBottom())
		body = lipgloss.JoinVertical(lipgloss.Left,
			StyleSubtitle.Render(step.Title),
			top, m.viewport.View(), bottom,
		)
	} else {
		formHeight := m.height - 12
		body = lipgloss.JoinVertical(lipgloss.Left,
			StyleSubtitle.Render(step.Title),
			"",
			m.form.View(formHeight),
		)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), body)
	return lipgloss.JoinVertical(lipgloss.Left, header, bar, "", content, m.wizardHelp())
}

func (m Model) renderSidebar() string {
	rows := []string{StyleTextMuted.Render("Steps"), ""}
	for _, s := range wizard.Steps() {
		rows = append(rows, CreateStepItem(s.Index+1, s.Title,
			s.Index == m.nav.Current(), m.nav.IsCompleted(s.Index), m.nav.CanJumpTo(s.Index)))
	}
	return StyleSidebar.Width(sidebarWidth).Render(strings.Join(rows, "\n"))
}

func (m Model) wizardHelp() string {
	essential := []string{"tab next field", "ctrl+n next", "ctrl+p back"}
	if m.nav.IsTerminal() {
		essential = []string{"ctrl+g generate PDF", "ctrl+o print", "ctrl+y copy", "ctrl+p back"}
		if m.generating {
			essential[0] = "generating..."
		}
	} else if field, _, ok := m.focusedList(); ok {
		essential = append(essential, "ctrl+a add entry")
		if editor.CanRemove(m.record, field) {
			essential = append(essential, "ctrl+x remove entry")
		}
	}

	if !m.showExpandedHelp {
		return CreateContextualHelp(essential, []string{"more"}, false, m.width)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		CreateContextualHelp(essential, nil, false, m.width),
		m.help.FullHelpView(m.keys.FullHelp()),
	)
}

func (m Model) renderExamplesView() string {
	header := CreateSubPageHeader("SRS Examples")
	meta := CreateMetadata(strconv.Itoa(len(catalog.All())) + " sample documents • / to search")
	help := CreateContextualHelp([]string{"enter view", "/ search", "esc back"}, nil, false, m.width)
	return lipgloss.JoinVertical(lipgloss.Left, header, meta, m.exampleList.View(), help)
}

func (m Model) renderExampleDetailView() string {
	if m.selectedExample == nil {
		return "No example selected"
	}

	header := CreateSubPageHeader(m.selectedExample.Name)
	meta := CreateMetadata(m.selectedExample.Description())
	top, bottom := CreateScrollIndicators(!m.viewport.AtTop(), !m.viewport.AtBottom())
	content := StyleContentContainer.Render(lipgloss.JoinVertical(lipgloss.Left, top, m.viewport.View(), bottom))

	essential := []string{"d download PDF", "p print", "esc back"}
	if m.generating {
		essential[0] = "generating..."
	}
	help := CreateContextualHelp(essential, nil, false, m.width)
	return lipgloss.JoinVertical(lipgloss.Left, header, meta, content, help)
}
