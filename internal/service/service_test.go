package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dpshade/srs-wizard/internal/catalog"
	"github.com/dpshade/srs-wizard/internal/config"
	apperrors "github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/launcher"
	"github.com/dpshade/srs-wizard/internal/models"
)

type fakeLauncher struct {
	printed []string
	opened  []string
	copied  []string
	err     error
	block   chan struct{}
	started chan struct{}
}

func (f *fakeLauncher) Open(path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

func (f *fakeLauncher) Print(path string) error {
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	f.printed = append(f.printed, path)
	return f.err
}

func (f *fakeLauncher) Copy(text string) error {
	f.copied = append(f.copied, text)
	return f.err
}

func newTestService(t *testing.T) (*Service, *fakeLauncher) {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.OutputDir = t.TempDir()

	fake := &fakeLauncher{}
	svc := NewService(cfg).WithLauncher(fake)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) }
	return svc, fake
}

func portal() models.Record {
	r := models.NewRecord()
	r.ProjectInfo.CompanyName = "Acme"
	r.ProjectInfo.Name = "Customer Portal"
	r.ProjectInfo.Description = "Self-service portal"
	r.ProjectInfo.Scope = "Customer accounts"
	return r
}

func TestGenerateDownload(t *testing.T) {
	svc, fake := newTestService(t)

	result, err := svc.Generate(context.Background(), portal(), ModeDownload)
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}

	if result.FileName != "Customer_Portal_SRS.pdf" {
		t.Errorf("Unexpected file name %q", result.FileName)
	}
	if result.Pages != 1 {
		t.Errorf("Expected 1 page, got %d", result.Pages)
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("Expected the document on disk: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) || len(data) != result.Size {
		t.Errorf("Expected a PDF of %d bytes, got %d", result.Size, len(data))
	}
	if len(fake.printed) != 0 || len(fake.opened) != 0 {
		t.Error("Expected download mode not to launch anything")
	}
	if svc.IsRendering() {
		t.Error("Expected the guard to be released")
	}
}

func TestGeneratePrintAndOpen(t *testing.T) {
	svc, fake := newTestService(t)

	result, err := svc.Generate(context.Background(), portal(), ModePrint)
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}
	if len(fake.printed) != 1 || fake.printed[0] != result.Path {
		t.Errorf("Expected %s to be printed, got %v", result.Path, fake.printed)
	}

	if _, err := svc.Generate(context.Background(), portal(), ModeOpen); err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}
	if len(fake.opened) != 1 {
		t.Errorf("Expected one open, got %v", fake.opened)
	}
}

func TestGeneratePrintUnavailable(t *testing.T) {
	svc, fake := newTestService(t)
	fake.err = &launcher.LauncherError{OS: "linux", Action: "print", Message: "no print utility found"}

	result, err := svc.Generate(context.Background(), portal(), ModePrint)
	if !apperrors.HasCode(err, apperrors.ErrCodeLauncherUnavailable) {
		t.Fatalf("Expected LAUNCHER_UNAVAILABLE, got %v", err)
	}
	if result == nil || result.Path == "" {
		t.Fatal("Expected the saved document to be reported even though printing failed")
	}

	fake.err = errors.New("lp: printer on fire")
	if _, err := svc.Generate(context.Background(), portal(), ModePrint); !apperrors.HasCode(err, apperrors.ErrCodeCommandFailed) {
		t.Errorf("Expected COMMAND_FAILED, got %v", err)
	}
}

func TestGenerateGuard(t *testing.T) {
	svc, fake := newTestService(t)
	fake.block = make(chan struct{})
	fake.started = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), portal(), ModePrint)
		done <- err
	}()
	<-fake.started

	if _, err := svc.Generate(context.Background(), portal(), ModeDownload); !apperrors.HasCode(err, apperrors.ErrCodeRenderInProgress) {
		t.Errorf("Expected RENDER_IN_PROGRESS while a generation is running, got %v", err)
	}

	close(fake.block)
	if err := <-done; err != nil {
		t.Fatalf("First generation failed: %v", err)
	}

	fake.started = nil
	if _, err := svc.Generate(context.Background(), portal(), ModeDownload); err != nil {
		t.Errorf("Expected generation to work again once the first returned, got %v", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Generate(ctx, portal(), ModeDownload); !apperrors.HasCode(err, apperrors.ErrCodeRenderFailed) {
		t.Errorf("Expected RENDER_FAILED for a cancelled context, got %v", err)
	}
	entries, _ := os.ReadDir(svc.Config().OutputDir)
	if len(entries) != 0 {
		t.Errorf("Expected nothing written, got %d files", len(entries))
	}
}

func TestGenerateRenderFailure(t *testing.T) {
	svc, _ := newTestService(t)
	svc.cfg.Document.Unit = "furlong"

	_, err := svc.Generate(context.Background(), portal(), ModeDownload)
	appErr := apperrors.GetAppError(err)
	if appErr.Code != apperrors.ErrCodeRenderFailed || appErr.Message != "PDF Generation Failed" {
		t.Errorf("Expected PDF Generation Failed, got %v", err)
	}
}

func TestDocumentDefaultFileName(t *testing.T) {
	svc, _ := newTestService(t)
	svc.cfg.Document.DefaultFileName = "Untitled.pdf"

	data, name, err := svc.Document(models.NewRecord())
	if err != nil {
		t.Fatal(err)
	}
	if name != "Untitled.pdf" {
		t.Errorf("Expected configured default name, got %q", name)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("Expected PDF bytes")
	}
}

func TestGenerateSample(t *testing.T) {
	svc, _ := newTestService(t)
	e, _ := catalog.Get(1)

	result, err := svc.GenerateSample(context.Background(), e, ModeDownload)
	if err != nil {
		t.Fatalf("Failed to generate sample: %v", err)
	}
	if filepath.Base(result.Path) != "Mobile_Banking_App_SRS_SRS.pdf" {
		t.Errorf("Unexpected sample path %s", result.Path)
	}

	data, name, err := svc.SampleDocument(e)
	if err != nil || name != result.FileName || len(data) == 0 {
		t.Errorf("Expected the same sample through SampleDocument, got %q %v", name, err)
	}
}

func TestValidateAll(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.ValidateAll(portal())
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.Code != apperrors.ErrCodeIncompleteSection {
		t.Fatalf("Expected INCOMPLETE_SECTION, got %v", err)
	}
	if appErr.Context["step"] != 1 {
		t.Errorf("Expected the functional requirements step to fail first, got %v", appErr.Context["step"])
	}

	e, _ := catalog.Get(0)
	if err := svc.ValidateAll(catalog.SampleRecord(e)); err != nil {
		t.Errorf("Expected a sample record to pass, got %v", err)
	}
}

func TestRecordFiles(t *testing.T) {
	svc, _ := newTestService(t)
	path := filepath.Join(t.TempDir(), "portal.yaml")

	if err := svc.SaveRecord(path, portal()); err != nil {
		t.Fatal(err)
	}
	record, err := svc.LoadRecord(path)
	if err != nil {
		t.Fatal(err)
	}
	if record.ProjectInfo.Name != "Customer Portal" {
		t.Errorf("Expected the saved record back, got %q", record.ProjectInfo.Name)
	}

	if _, err := svc.LoadRecord(filepath.Join(t.TempDir(), "missing.yaml")); !apperrors.HasCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("Expected INVALID_INPUT for a missing file, got %v", err)
	}
}

func TestCopyReview(t *testing.T) {
	svc, fake := newTestService(t)

	if err := svc.CopyReview(portal()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(fake.copied) != 1 || !strings.Contains(fake.copied[0], "Customer Portal") {
		t.Errorf("Expected the review Markdown on the clipboard, got %v", fake.copied)
	}

	fake.err = &launcher.LauncherError{OS: "linux", Action: "copy", Message: "no clipboard utility found"}
	if err := svc.CopyReview(portal()); !apperrors.HasCode(err, apperrors.ErrCodeLauncherUnavailable) {
		t.Errorf("Expected LAUNCHER_UNAVAILABLE, got %v", err)
	}
}
