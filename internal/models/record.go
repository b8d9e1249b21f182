package models

import "strings"

// DefaultVersion is the version a new record starts with
const DefaultVersion = "1.0"

// Record is the SRS document being authored: five sections filled in by the wizard steps
type Record struct {
	ProjectInfo               ProjectInfo               `json:"projectInfo" yaml:"projectInfo"`
	FunctionalRequirements    FunctionalRequirements    `json:"functionalRequirements" yaml:"functionalRequirements"`
	NonFunctionalRequirements NonFunctionalRequirements `json:"nonFunctionalRequirements" yaml:"nonFunctionalRequirements"`
	SystemArchitecture        SystemArchitecture        `json:"systemArchitecture" yaml:"systemArchitecture"`
	Constraints               Constraints               `json:"constraints" yaml:"constraints"`
}

// ProjectInfo holds the basic project details (step 1)
type ProjectInfo struct {
	CompanyName  string `json:"companyName" yaml:"companyName"`
	Name         string `json:"name" yaml:"name"`
	Version      string `json:"version" yaml:"version"`
	Description  string `json:"description" yaml:"description"`
	Stakeholders string `json:"stakeholders" yaml:"stakeholders"`
	Scope        string `json:"scope" yaml:"scope"`
}

// FunctionalRequirements holds user stories, features and business rules (step 2)
type FunctionalRequirements struct {
	UserStories    []string `json:"userStories" yaml:"userStories"`
	SystemFeatures []string `json:"systemFeatures" yaml:"systemFeatures"`
	BusinessRules  []string `json:"businessRules" yaml:"businessRules"`
}

// NonFunctionalRequirements holds the quality attributes (step 3)
type NonFunctionalRequirements struct {
	Performance string `json:"performance" yaml:"performance"`
	Security    string `json:"security" yaml:"security"`
	Usability   string `json:"usability" yaml:"usability"`
	Reliability string `json:"reliability" yaml:"reliability"`
	Scalability string `json:"scalability" yaml:"scalability"`
}

// SystemArchitecture holds the design overview (step 4)
type SystemArchitecture struct {
	Overview   string   `json:"overview" yaml:"overview"`
	Components []string `json:"components" yaml:"components"`
	DataFlow   string   `json:"dataFlow" yaml:"dataFlow"`
	Interfaces string   `json:"interfaces" yaml:"interfaces"`
}

// Constraints holds technical, business and regulatory constraints (step 5)
type Constraints struct {
	Technical  []string `json:"technical" yaml:"technical"`
	Business   []string `json:"business" yaml:"business"`
	Regulatory []string `json:"regulatory" yaml:"regulatory"`
}

// NewRecord returns an empty record: version "1.0" and one blank entry in every list
func NewRecord() Record {
	r := Record{}
	r.ProjectInfo.Version = DefaultVersion
	r.Normalize()
	return r
}

// Normalize gives every empty list its single blank entry. Decoded records go through it so
// the one-entry floor holds no matter where a record came from.
func (r *Record) Normalize() {
	for _, f := range ListFields() {
		if len(r.List(f)) == 0 {
			r.SetList(f, []string{""})
		}
	}
}

// Clone returns a deep copy; list slices are never shared between copies
func (r Record) Clone() Record {
	c := r
	for _, f := range ListFields() {
		c.SetList(f, append([]string(nil), r.List(f)...))
	}
	return c
}

// Text returns the value of a flat text field
func (r *Record) Text(f TextField) string {
	if p := r.textPtr(f); p != nil {
		return *p
	}
	return ""
}

// SetText replaces the value of a flat text field in place
func (r *Record) SetText(f TextField, value string) {
	if p := r.textPtr(f); p != nil {
		*p = value
	}
}

// List returns the entries of a list field. The slice is the record's own; use Clone before
// mutating.
func (r *Record) List(f ListField) []string {
	if p := r.listPtr(f); p != nil {
		return *p
	}
	return nil
}

// SetList replaces a list field in place
func (r *Record) SetList(f ListField, items []string) {
	if p := r.listPtr(f); p != nil {
		*p = items
	}
}

func (r *Record) textPtr(f TextField) *string {
	switch f {
	case FieldCompanyName:
		return &r.ProjectInfo.CompanyName
	case FieldProjectName:
		return &r.ProjectInfo.Name
	case FieldVersion:
		return &r.ProjectInfo.Version
	case FieldDescription:
		return &r.ProjectInfo.Description
	case FieldStakeholders:
		return &r.ProjectInfo.Stakeholders
	case FieldScope:
		return &r.ProjectInfo.Scope
	case FieldPerformance:
		return &r.NonFunctionalRequirements.Performance
	case FieldSecurity:
		return &r.NonFunctionalRequirements.Security
	case FieldUsability:
		return &r.NonFunctionalRequirements.Usability
	case FieldReliability:
		return &r.NonFunctionalRequirements.Reliability
	case FieldScalability:
		return &r.NonFunctionalRequirements.Scalability
	case FieldOverview:
		return &r.SystemArchitecture.Overview
	case FieldDataFlow:
		return &r.SystemArchitecture.DataFlow
	case FieldInterfaces:
		return &r.SystemArchitecture.Interfaces
	}
	return nil
}

func (r *Record) listPtr(f ListField) *[]string {
	switch f {
	case ListUserStories:
		return &r.FunctionalRequirements.UserStories
	case ListSystemFeatures:
		return &r.FunctionalRequirements.SystemFeatures
	case ListBusinessRules:
		return &r.FunctionalRequirements.BusinessRules
	case ListComponents:
		return &r.SystemArchitecture.Components
	case ListTechnical:
		return &r.Constraints.Technical
	case ListBusiness:
		return &r.Constraints.Business
	case ListRegulatory:
		return &r.Constraints.Regulatory
	}
	return nil
}

// IsBlank reports whether s is empty or whitespace only
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NonBlank returns the entries of items that are not blank, in order
func NonBlank(items []string) []string {
	var out []string
	for _, item := range items {
		if !IsBlank(item) {
			out = append(out, item)
		}
	}
	return out
}
