// Package wizard tracks where the user is in the six-step SRS wizard and which steps have passed
// their validation gate.
package wizard

import (
	"math"
	"sort"

	"github.com/dpshade/srs-wizard/internal/models"
	"github.com/dpshade/srs-wizard/internal/validation"
)

// Step describes one wizard step
type Step struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Required lists the wire names of the fields the step gate checks
	Required []string `json:"required,omitempty"`
}

var steps = []Step{
	{Index: 0, Title: "Project Information", Description: "Basic project details and scope"},
	{Index: 1, Title: "Functional Requirements", Description: "User stories, features, and business rules"},
	{Index: 2, Title: "Non-Functional Requirements", Description: "Performance, security, and quality attributes"},
	{Index: 3, Title: "System Architecture", Description: "System design and technical architecture"},
	{Index: 4, Title: "Constraints & Dependencies", Description: "Technical, business, and regulatory constraints"},
	{Index: 5, Title: "Review & Generate", Description: "Review your SRS and generate PDF"},
}

// Steps returns the static step catalogue
func Steps() []Step {
	out := append([]Step(nil), steps...)
	for i := range out {
		out[i].Required = validation.RequiredFields(out[i].Index)
	}
	return out
}

// Navigator holds the current step and the set of completed steps. The zero value is a wizard at
// step 0 with nothing completed. Not safe for concurrent use; callers serialise access.
type Navigator struct {
	current   int
	completed map[int]bool
}

// NewNavigator returns a navigator at step 0
func NewNavigator() *Navigator {
	return &Navigator{completed: make(map[int]bool)}
}

// Restore rebuilds a navigator from a saved position. Out-of-range values are dropped.
func Restore(current int, completed []int) *Navigator {
	n := NewNavigator()
	if current >= 0 && current < models.StepCount {
		n.current = current
	}
	for _, step := range completed {
		if step >= 0 && step < models.ReviewStep {
			n.completed[step] = true
		}
	}
	return n
}

// Current returns the index of the step being shown
func (n *Navigator) Current() int {
	return n.current
}

// CurrentStep returns the catalogue entry of the current step
func (n *Navigator) CurrentStep() Step {
	return steps[n.current]
}

// IsTerminal reports whether the current step is the review step
func (n *Navigator) IsTerminal() bool {
	return n.current == models.ReviewStep
}

// Completed returns the completed steps in ascending order
func (n *Navigator) Completed() []int {
	out := make([]int, 0, len(n.completed))
	for step := range n.completed {
		out = append(out, step)
	}
	sort.Ints(out)
	return out
}

// IsCompleted reports whether the step has passed its gate
func (n *Navigator) IsCompleted(step int) bool {
	return n.completed[step]
}

// Next validates the current step against the record. On success the step is marked complete and
// the wizard advances; on failure nothing changes and the incomplete-section error is returned.
// At the review step Next does nothing: generation is a separate action.
func (n *Navigator) Next(record models.Record) error {
	if n.IsTerminal() {
		return nil
	}

	result := validation.CheckStep(n.current, record)
	if !result.Valid {
		return validation.IncompleteSectionError(n.current, result)
	}

	if n.completed == nil {
		n.completed = make(map[int]bool)
	}
	n.completed[n.current] = true
	n.current++
	return nil
}

// Previous moves back one step; it never validates
func (n *Navigator) Previous() {
	if n.current > 0 {
		n.current--
	}
}

// CanJumpTo reports whether a direct jump to step is allowed: completed steps and steps at or
// before the current one are reachable
func (n *Navigator) CanJumpTo(step int) bool {
	if step < 0 || step >= models.StepCount {
		return false
	}
	return n.completed[step] || step <= n.current
}

// JumpTo moves to step when allowed and reports whether it did
func (n *Navigator) JumpTo(step int) bool {
	if !n.CanJumpTo(step) {
		return false
	}
	n.current = step
	return true
}

// Progress is the share of completed steps out of the five gated ones, as a whole percentage
func (n *Navigator) Progress() int {
	return int(math.Round(100 * float64(len(n.completed)) / float64(models.ReviewStep)))
}

// Snapshot is the serialisable view of a navigator
type Snapshot struct {
	Current   int   `json:"current"`
	Completed []int `json:"completed"`
	Progress  int   `json:"progress"`
	Step      Step  `json:"step"`
}

// Snapshot captures the navigator state
func (n *Navigator) Snapshot() Snapshot {
	return Snapshot{
		Current:   n.current,
		Completed: n.Completed(),
		Progress:  n.Progress(),
		Step:      n.CurrentStep(),
	}
}
