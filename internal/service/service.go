package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dpshade/srs-wizard/internal/catalog"
	"github.com/dpshade/srs-wizard/internal/config"
	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/launcher"
	"github.com/dpshade/srs-wizard/internal/models"
	"github.com/dpshade/srs-wizard/internal/pdf"
	"github.com/dpshade/srs-wizard/internal/renderer"
	"github.com/dpshade/srs-wizard/internal/storage"
	"github.com/dpshade/srs-wizard/internal/validation"
	"github.com/dpshade/srs-wizard/internal/wizard"
)

// Mode is what happens to a document once it has been written
type Mode int

const (
	// ModeDownload saves the PDF to the output directory
	ModeDownload Mode = iota
	// ModePrint saves the PDF and sends it to the default printer
	ModePrint
	// ModeOpen saves the PDF and shows it in the default viewer
	ModeOpen
)

func (m Mode) String() string {
	switch m {
	case ModePrint:
		return "print"
	case ModeOpen:
		return "open"
	}
	return "download"
}

// Launcher hands a saved document to the desktop
type Launcher interface {
	Open(path string) error
	Print(path string) error
	Copy(text string) error
}

// Result describes a generated document
type Result struct {
	FileName string `json:"fileName"`
	Path     string `json:"path"`
	Size     int    `json:"size"`
	Pages    int    `json:"pages"`
	Mode     string `json:"mode"`
}

// Service provides business logic for document generation
type Service struct {
	cfg       *config.Config
	storage   *storage.Storage
	launcher  Launcher
	rendering atomic.Bool
	now       func() time.Time
}

// NewService creates a new service instance
func NewService(cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Service{
		cfg:      cfg,
		storage:  storage.NewStorage(cfg.OutputDir),
		launcher: launcher.New(),
		now:      time.Now,
	}
}

// WithLauncher replaces the desktop launcher
func (s *Service) WithLauncher(l Launcher) *Service {
	s.launcher = l
	return s
}

// Config returns the configuration the service was built with
func (s *Service) Config() *config.Config {
	return s.cfg
}

// Storage returns the file storage used for documents and record files
func (s *Service) Storage() *storage.Storage {
	return s.storage
}

// IsRendering reports whether a generation started through Generate is still running
func (s *Service) IsRendering() bool {
	return s.rendering.Load()
}

// Document renders a record to PDF bytes without touching the file system. The returned name
// falls back to the configured default when the project has no name.
func (s *Service) Document(record models.Record) ([]byte, string, error) {
	doc, err := s.render(record)
	if err != nil {
		return nil, "", err
	}
	return doc.Data, doc.FileName, nil
}

// SampleDocument renders the sample document of a catalog example
func (s *Service) SampleDocument(e models.Example) ([]byte, string, error) {
	doc, err := s.render(catalog.SampleRecord(e))
	if err != nil {
		return nil, "", err
	}
	return doc.Data, catalog.SampleFileName(e), nil
}

// Generate renders the record, writes it to the output directory and then applies the mode.
// Only one generation runs at a time; a second call while one is in flight fails fast with
// RENDER_IN_PROGRESS. When the file was written but the print or open step failed, both the
// result and the error are returned.
func (s *Service) Generate(ctx context.Context, record models.Record, mode Mode) (*Result, error) {
	return s.generate(ctx, mode, func() (*pdf.Document, error) {
		return s.render(record)
	})
}

// GenerateSample is Generate for a catalog example, saved under the sample file name
func (s *Service) GenerateSample(ctx context.Context, e models.Example, mode Mode) (*Result, error) {
	return s.generate(ctx, mode, func() (*pdf.Document, error) {
		doc, err := s.render(catalog.SampleRecord(e))
		if err != nil {
			return nil, err
		}
		doc.FileName = catalog.SampleFileName(e)
		return doc, nil
	})
}

func (s *Service) generate(ctx context.Context, mode Mode, build func() (*pdf.Document, error)) (*Result, error) {
	if !s.rendering.CompareAndSwap(false, true) {
		return nil, errors.RenderInProgressError()
	}
	defer s.rendering.Store(false)

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "PDF Generation Failed")
	}

	doc, err := build()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRenderFailed, "PDF Generation Failed")
	}

	path, err := s.storage.SaveDocument(doc.FileName, doc.Data)
	if err != nil {
		return nil, errors.StorageError("save document", err).WithContext("file", doc.FileName)
	}

	result := &Result{
		FileName: doc.FileName,
		Path:     path,
		Size:     len(doc.Data),
		Pages:    doc.Pages,
		Mode:     mode.String(),
	}

	switch mode {
	case ModePrint:
		if err := s.launcher.Print(path); err != nil {
			return result, launchError("print", err)
		}
	case ModeOpen:
		if err := s.launcher.Open(path); err != nil {
			return result, launchError("open", err)
		}
	}

	return result, nil
}

func launchError(action string, err error) *errors.AppError {
	if launcher.IsUnavailable(err) {
		return errors.Wrap(err, errors.ErrCodeLauncherUnavailable, fmt.Sprintf("Cannot %s the document on this system", action))
	}
	return errors.CommandError(action, err)
}

func (s *Service) render(record models.Record) (*pdf.Document, error) {
	g, err := s.cfg.Geometry()
	if err != nil {
		return nil, errors.RenderError(err)
	}

	doc, err := pdf.Render(record, g, s.cfg.LayoutOptions(s.now()))
	if err != nil {
		return nil, err
	}
	if models.IsBlank(record.ProjectInfo.Name) {
		doc.FileName = s.cfg.Document.DefaultFileName
	}
	return doc, nil
}

// CopyReview puts the Markdown review of the record on the clipboard
func (s *Service) CopyReview(record models.Record) error {
	if err := s.launcher.Copy(renderer.NewRenderer(record).RenderMarkdown()); err != nil {
		return launchError("copy", err)
	}
	return nil
}

// ValidateAll checks every step gate in wizard order and reports the first incomplete step
func (s *Service) ValidateAll(record models.Record) error {
	for _, step := range wizard.Steps() {
		result := validation.CheckStep(step.Index, record)
		if !result.Valid {
			return validation.IncompleteSectionError(step.Index, result).
				WithContext("step_title", step.Title)
		}
	}
	return nil
}

// Examples returns the catalog, or the fuzzy matches for a non-empty query
func (s *Service) Examples(query string) []models.Example {
	return catalog.Search(query)
}

// LoadRecord reads a record file from disk
func (s *Service) LoadRecord(path string) (models.Record, error) {
	file, err := s.storage.LoadRecordFile(path)
	if err != nil {
		return models.Record{}, errors.Wrap(err, errors.ErrCodeInvalidInput, "Could not load record").
			WithContext("path", path)
	}
	return file.Record, nil
}

// SaveRecord writes a record file, choosing YAML or JSON from the extension
func (s *Service) SaveRecord(path string, record models.Record) error {
	if err := s.storage.SaveRecordFile(path, &storage.RecordFile{Record: record}); err != nil {
		return errors.StorageError("save record", err).WithContext("path", path)
	}
	return nil
}
