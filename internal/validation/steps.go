package validation

import (
	"fmt"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
)

// Messages shown when a wizard step gate refuses to advance
const (
	IncompleteTitle   = "Incomplete Section"
	IncompleteMessage = "Please fill in all required fields before proceeding."
)

// requirement is one condition of a step gate. A step passes when every requirement is met;
// a requirement is met when ANY of its fields holds non-blank content.
type requirement struct {
	text []models.TextField
	list []models.ListField
}

func (q requirement) met(r *models.Record) bool {
	for _, f := range q.text {
		if !models.IsBlank(r.Text(f)) {
			return true
		}
	}
	for _, f := range q.list {
		if len(models.NonBlank(r.List(f))) > 0 {
			return true
		}
	}
	return false
}

func (q requirement) fieldName() string {
	if len(q.text) == 1 && len(q.list) == 0 {
		return q.text[0].Name()
	}
	if len(q.list) == 1 && len(q.text) == 0 {
		return q.list[0].Name()
	}
	return q.list[0].Section().Name()
}

func (q requirement) label() string {
	if len(q.text) > 0 {
		return q.text[0].Label()
	}
	if len(q.list) == 1 {
		return q.list[0].Label()
	}
	return "At least one constraint"
}

var stepRequirements = [models.StepCount][]requirement{
	0: {
		{text: []models.TextField{models.FieldCompanyName}},
		{text: []models.TextField{models.FieldProjectName}},
		{text: []models.TextField{models.FieldDescription}},
		{text: []models.TextField{models.FieldScope}},
	},
	1: {
		{list: []models.ListField{models.ListUserStories}},
		{list: []models.ListField{models.ListSystemFeatures}},
	},
	2: {
		{text: []models.TextField{models.FieldPerformance}},
		{text: []models.TextField{models.FieldSecurity}},
	},
	3: {
		{text: []models.TextField{models.FieldOverview}},
		{text: []models.TextField{models.FieldDataFlow}},
	},
	4: {
		{list: []models.ListField{models.ListTechnical, models.ListBusiness, models.ListRegulatory}},
	},
	5: nil,
}

// IsStepComplete reports whether the record satisfies the gate of the given step. Steps outside
// 0..5 are never complete; the review step always is.
func IsStepComplete(step int, record models.Record) bool {
	if step < 0 || step >= models.StepCount {
		return false
	}
	for _, q := range stepRequirements[step] {
		if !q.met(&record) {
			return false
		}
	}
	return true
}

// CheckStep evaluates the gate of a step and lists every requirement that is not met
func CheckStep(step int, record models.Record) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if step < 0 || step >= models.StepCount {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "step",
			Code:    "INVALID_STEP",
			Message: fmt.Sprintf("Step %d does not exist", step),
			Value:   step,
		})
		return result
	}

	for _, q := range stepRequirements[step] {
		if q.met(&record) {
			continue
		}
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   q.fieldName(),
			Code:    "REQUIRED_FIELD_MISSING",
			Message: fmt.Sprintf("%s is required", q.label()),
		})
	}
	return result
}

// IncompleteSectionError is what a refused step transition reports to the user
func IncompleteSectionError(step int, result *ValidationResult) *errors.AppError {
	appErr := errors.NewAppError(errors.ErrCodeIncompleteSection, IncompleteTitle+": "+IncompleteMessage)
	appErr.WithContext("step", step)
	if result != nil && len(result.Errors) > 0 {
		appErr.WithDetails(result.summary())
		appErr.WithContext("validation_errors", result.Errors)
	}
	return appErr
}

// RequiredFields lists the wire names of the fields a step gate looks at
func RequiredFields(step int) []string {
	if step < 0 || step >= models.StepCount {
		return nil
	}
	var names []string
	for _, q := range stepRequirements[step] {
		for _, f := range q.text {
			names = append(names, f.Name())
		}
		for _, f := range q.list {
			names = append(names, f.Name())
		}
	}
	return names
}
