package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/layout"
	"github.com/dpshade/srs-wizard/internal/models"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Portal", "Portal_SRS.pdf"},
		{"Customer Portal v2", "Customer_Portal_v2_SRS.pdf"},
		{"A & B -- C", "A_B_C_SRS.pdf"},
		{"Café", "Caf__SRS.pdf"},
		{"", "SRS_Document.pdf"},
		{"   ", "SRS_Document.pdf"},
	}

	for _, tt := range tests {
		if got := FileName(tt.name); got != tt.want {
			t.Errorf("FileName(%q): expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := models.NewRecord()
	r.ProjectInfo.CompanyName = "Acme"
	r.ProjectInfo.Name = "Portal"
	r.ProjectInfo.Description = "Customer portal with “smart” quotes"
	r.FunctionalRequirements.UserStories = []string{"As a user I log in"}

	doc, err := Render(r, layout.A4(), layout.Options{Date: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF-")) {
		t.Errorf("Expected PDF header, got %q", doc.Data[:8])
	}
	if doc.FileName != "Portal_SRS.pdf" {
		t.Errorf("Expected Portal_SRS.pdf, got %s", doc.FileName)
	}
	if doc.Pages != 1 {
		t.Errorf("Expected 1 page, got %d", doc.Pages)
	}
}

func TestRenderLongDocumentPaginates(t *testing.T) {
	r := models.NewRecord()
	r.ProjectInfo.Scope = strings.Repeat("The system shall scale horizontally. ", 400)

	g, err := layout.NewGeometry("Letter", "pt", 20)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Render(r, g, layout.Options{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if doc.Pages < 2 {
		t.Errorf("Expected several pages, got %d", doc.Pages)
	}
}

func TestRenderFailureIsReported(t *testing.T) {
	bad := layout.Geometry{Width: 210, Height: 297, Margin: 20, Unit: "furlong"}

	doc, err := Render(models.NewRecord(), bad, layout.Options{})
	if doc != nil {
		t.Error("Expected no document on failure")
	}
	if !errors.HasCode(err, errors.ErrCodeRenderFailed) {
		t.Errorf("Expected RENDER_FAILED, got %v", err)
	}
}

func TestRenderPartialRecordFileName(t *testing.T) {
	r := models.NewRecord()
	r.ProjectInfo.CompanyName = "Acme"
	r.ProjectInfo.Name = "Portal"
	r.ProjectInfo.Description = "A portal."
	r.ProjectInfo.Scope = "Internal use."
	r.FunctionalRequirements.UserStories = []string{"As a user, I want to log in."}
	r.FunctionalRequirements.SystemFeatures = []string{"Login"}

	doc, err := Render(r, layout.A4(), layout.Options{})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if doc.FileName != "Portal_SRS.pdf" {
		t.Errorf("Expected Portal_SRS.pdf, got %s", doc.FileName)
	}
	if doc.Pages != 1 {
		t.Errorf("Expected 1 page, got %d", doc.Pages)
	}
}
