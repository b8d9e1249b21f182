package wizard

import (
	"testing"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
)

func step0Record() models.Record {
	r := models.NewRecord()
	r.ProjectInfo.CompanyName = "Acme"
	r.ProjectInfo.Name = "Portal"
	r.ProjectInfo.Description = "Customer portal"
	r.ProjectInfo.Scope = "Internal use"
	return r
}

func TestNextRefusedOnIncompleteStep(t *testing.T) {
	n := NewNavigator()

	err := n.Next(models.NewRecord())
	if !errors.HasCode(err, errors.ErrCodeIncompleteSection) {
		t.Fatalf("Expected INCOMPLETE_SECTION, got %v", err)
	}
	if n.Current() != 0 {
		t.Errorf("Expected to stay on step 0, got %d", n.Current())
	}
	if len(n.Completed()) != 0 {
		t.Errorf("Expected no completed steps, got %v", n.Completed())
	}
}

func TestNextAdvancesAndCompletes(t *testing.T) {
	n := NewNavigator()

	if err := n.Next(step0Record()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n.Current() != 1 {
		t.Errorf("Expected step 1, got %d", n.Current())
	}
	if !n.IsCompleted(0) {
		t.Error("Expected step 0 to be completed")
	}
	if n.Progress() != 20 {
		t.Errorf("Expected progress 20, got %d", n.Progress())
	}
}

func TestJumpGating(t *testing.T) {
	n := NewNavigator()
	_ = n.Next(step0Record())

	if n.JumpTo(3) {
		t.Error("Expected jump to step 3 to be refused")
	}
	if n.Current() != 1 {
		t.Errorf("Expected to stay on step 1, got %d", n.Current())
	}

	if !n.JumpTo(0) {
		t.Error("Expected jump back to step 0 to be allowed")
	}
	if n.JumpTo(1) {
		t.Error("Expected jump to step 1 to be refused: it is neither completed nor behind the current step")
	}
	if n.JumpTo(7) || n.JumpTo(-1) {
		t.Error("Expected out-of-range jumps to be refused")
	}
}

func TestJumpToCompletedStepAhead(t *testing.T) {
	n := Restore(1, []int{0, 1, 2})
	if !n.JumpTo(2) {
		t.Error("Expected jump forward to a completed step to be allowed")
	}
	if n.JumpTo(4) {
		t.Error("Expected jump to an unvisited, incomplete step to be refused")
	}
}

func TestPreviousNeverValidates(t *testing.T) {
	n := Restore(3, []int{0, 1, 2})
	n.Previous()
	if n.Current() != 2 {
		t.Errorf("Expected step 2, got %d", n.Current())
	}

	n = NewNavigator()
	n.Previous()
	if n.Current() != 0 {
		t.Errorf("Expected Previous at step 0 to be a no-op, got %d", n.Current())
	}
}

func TestTerminalStepIsNeverCompleted(t *testing.T) {
	n := Restore(models.ReviewStep, []int{0, 1, 2, 3, 4})
	if err := n.Next(models.NewRecord()); err != nil {
		t.Fatalf("Expected Next at the review step to be a no-op, got %v", err)
	}
	if n.IsCompleted(models.ReviewStep) {
		t.Error("Expected the review step to never be completed")
	}
	if n.Progress() != 100 {
		t.Errorf("Expected progress 100, got %d", n.Progress())
	}
}

func TestProgressRounding(t *testing.T) {
	tests := []struct {
		completed []int
		want      int
	}{
		{nil, 0},
		{[]int{0}, 20},
		{[]int{0, 1, 2}, 60},
		{[]int{0, 1, 2, 3, 4}, 100},
	}
	for _, tt := range tests {
		if got := Restore(0, tt.completed).Progress(); got != tt.want {
			t.Errorf("Completed %v: expected %d, got %d", tt.completed, tt.want, got)
		}
	}
}

func TestZeroValueNavigator(t *testing.T) {
	var n Navigator
	if err := n.Next(step0Record()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n.Current() != 1 || !n.IsCompleted(0) {
		t.Errorf("Expected zero-value navigator to work, got current=%d completed=%v", n.Current(), n.Completed())
	}
}

func TestStepsCatalogue(t *testing.T) {
	s := Steps()
	if len(s) != models.StepCount {
		t.Fatalf("Expected %d steps, got %d", models.StepCount, len(s))
	}
	if s[5].Title != "Review & Generate" {
		t.Errorf("Unexpected last step title %q", s[5].Title)
	}
	for i := 0; i < models.ReviewStep; i++ {
		if s[i].Title != models.Sections()[i].Title() {
			t.Errorf("Step %d title %q does not match section title %q", i, s[i].Title, models.Sections()[i].Title())
		}
	}
	if got := s[3].Required; len(got) != 2 || got[0] != "systemArchitecture.overview" || got[1] != "systemArchitecture.dataFlow" {
		t.Errorf("Expected the architecture gate fields, got %v", got)
	}
	if s[5].Required != nil {
		t.Errorf("Expected no gate fields on the review step, got %v", s[5].Required)
	}
}
