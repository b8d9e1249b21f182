package catalog

import (
	"strings"
	"testing"

	"github.com/dpshade/srs-wizard/internal/models"
	"github.com/dpshade/srs-wizard/internal/validation"
)

func TestCatalogContents(t *testing.T) {
	all := All()
	if len(all) != 6 {
		t.Fatalf("Expected 6 examples, got %d", len(all))
	}
	for _, e := range all {
		if len(e.Features) != 5 {
			t.Errorf("%s: expected 5 features, got %d", e.Name, len(e.Features))
		}
		if e.Pages <= 0 {
			t.Errorf("%s: expected a page estimate", e.Name)
		}
	}

	all[0].Name = "changed"
	if All()[0].Name == "changed" {
		t.Error("Expected All to return a copy")
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"2", "Mobile Banking App SRS"},
		{"chat application srs", "Chat Application SRS"},
		{"Hospital Management System", "Hospital Management System SRS"},
	}
	for _, tt := range tests {
		got, err := Find(tt.ref)
		if err != nil {
			t.Errorf("Find(%q): unexpected error %v", tt.ref, err)
			continue
		}
		if got.Name != tt.want {
			t.Errorf("Find(%q): expected %q, got %q", tt.ref, tt.want, got.Name)
		}
	}

	if _, err := Find("7"); err == nil {
		t.Error("Expected example 7 to be missing")
	}
	if _, err := Find("Nope"); err == nil {
		t.Error("Expected an unknown title to be missing")
	}
}

func TestSearch(t *testing.T) {
	if got := Search(""); len(got) != 6 {
		t.Errorf("Expected the whole catalog for an empty query, got %d", len(got))
	}

	got := Search("banking")
	if len(got) == 0 || got[0].Name != "Mobile Banking App SRS" {
		t.Errorf("Expected Mobile Banking first, got %+v", got)
	}

	if got := Search("zzqqxx"); len(got) != 0 {
		t.Errorf("Expected no matches, got %d", len(got))
	}
}

func TestSampleRecordPassesEveryStep(t *testing.T) {
	for _, e := range All() {
		r := SampleRecord(e)
		for step := 0; step < models.StepCount; step++ {
			if !validation.IsStepComplete(step, r) {
				t.Errorf("%s: step %d incomplete", e.Name, step)
			}
		}
		if r.ProjectInfo.CompanyName != SampleCompany {
			t.Errorf("%s: unexpected company %q", e.Name, r.ProjectInfo.CompanyName)
		}
		if len(r.FunctionalRequirements.SystemFeatures) != len(e.Features) {
			t.Errorf("%s: expected one system feature per catalog feature", e.Name)
		}
		if strings.HasSuffix(r.ProjectInfo.Name, "SRS") {
			t.Errorf("%s: project name should drop the SRS suffix, got %q", e.Name, r.ProjectInfo.Name)
		}
	}
}

func TestSampleFileName(t *testing.T) {
	e, _ := Get(0)
	if got := SampleFileName(e); got != "E-Commerce_Platform_SRS_SRS.pdf" {
		t.Errorf("Unexpected sample file name %q", got)
	}
}
