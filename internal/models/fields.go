package models

import "fmt"

// Section identifies one of the five record sections
type Section int

const (
	SectionProjectInfo Section = iota
	SectionFunctional
	SectionNonFunctional
	SectionArchitecture
	SectionConstraints
)

var sectionNames = [...]string{"projectInfo", "functionalRequirements", "nonFunctionalRequirements", "systemArchitecture", "constraints"}

var sectionTitles = [...]string{
	"Project Information",
	"Functional Requirements",
	"Non-Functional Requirements",
	"System Architecture",
	"Constraints & Dependencies",
}

// Sections returns the sections in document order
func Sections() []Section {
	return []Section{SectionProjectInfo, SectionFunctional, SectionNonFunctional, SectionArchitecture, SectionConstraints}
}

// Name is the wire key of the section
func (s Section) Name() string { return sectionNames[s] }

// Title is the human title, shared by the wizard step and the document heading
func (s Section) Title() string { return sectionTitles[s] }

// Step is the wizard step that edits the section
func (s Section) Step() int { return int(s) }

// TextField addresses a flat string field of the record
type TextField int

const (
	FieldCompanyName TextField = iota
	FieldProjectName
	FieldVersion
	FieldDescription
	FieldStakeholders
	FieldScope
	FieldPerformance
	FieldSecurity
	FieldUsability
	FieldReliability
	FieldScalability
	FieldOverview
	FieldDataFlow
	FieldInterfaces
)

// ListField addresses a string-list field of the record
type ListField int

const (
	ListUserStories ListField = iota
	ListSystemFeatures
	ListBusinessRules
	ListComponents
	ListTechnical
	ListBusiness
	ListRegulatory
)

type fieldInfo struct {
	section     Section
	key         string
	label       string
	placeholder string
}

var textFields = [...]fieldInfo{
	FieldCompanyName:  {SectionProjectInfo, "companyName", "Company Name", "Enter your company name"},
	FieldProjectName:  {SectionProjectInfo, "name", "Project Name", "Enter project name"},
	FieldVersion:      {SectionProjectInfo, "version", "Version", "1.0"},
	FieldDescription:  {SectionProjectInfo, "description", "Description", "Describe the project purpose and goals"},
	FieldStakeholders: {SectionProjectInfo, "stakeholders", "Stakeholders", "List key stakeholders and their roles"},
	FieldScope:        {SectionProjectInfo, "scope", "Scope", "Define what is included and excluded from the project"},
	FieldPerformance:  {SectionNonFunctional, "performance", "Performance Requirements", "Response time, throughput, resource usage..."},
	FieldSecurity:     {SectionNonFunctional, "security", "Security Requirements", "Authentication, authorization, data protection..."},
	FieldUsability:    {SectionNonFunctional, "usability", "Usability Requirements", "User experience, accessibility, learnability..."},
	FieldReliability:  {SectionNonFunctional, "reliability", "Reliability Requirements", "Uptime, error handling, recovery..."},
	FieldScalability:  {SectionNonFunctional, "scalability", "Scalability Requirements", "Growth in users, data volume, load..."},
	FieldOverview:     {SectionArchitecture, "overview", "Architecture Overview", "High-level description of the system design"},
	FieldDataFlow:     {SectionArchitecture, "dataFlow", "Data Flow", "How data moves through the system"},
	FieldInterfaces:   {SectionArchitecture, "interfaces", "External Interfaces", "APIs, third-party services, integrations"},
}

var listFields = [...]fieldInfo{
	ListUserStories:    {SectionFunctional, "userStories", "User Stories", "User Story %d: As a user, I want to..."},
	ListSystemFeatures: {SectionFunctional, "systemFeatures", "System Features", "Feature %d: Authentication system, Data export, etc."},
	ListBusinessRules:  {SectionFunctional, "businessRules", "Business Rules", "Business Rule %d: Users must verify email before..."},
	ListComponents:     {SectionArchitecture, "components", "System Components", "Component %d: Frontend Web App, Authentication Service, Database Layer, etc."},
	ListTechnical:      {SectionConstraints, "technical", "Technical Constraints", "Technical constraint %d: Must run on existing infrastructure..."},
	ListBusiness:       {SectionConstraints, "business", "Business Constraints", "Business constraint %d: Budget, timeline, staffing..."},
	ListRegulatory:     {SectionConstraints, "regulatory", "Regulatory Constraints", "Regulatory constraint %d: GDPR, HIPAA, PCI-DSS..."},
}

// TextFields returns every flat field in document order
func TextFields() []TextField {
	out := make([]TextField, len(textFields))
	for i := range textFields {
		out[i] = TextField(i)
	}
	return out
}

// ListFields returns every list field in document order
func ListFields() []ListField {
	out := make([]ListField, len(listFields))
	for i := range listFields {
		out[i] = ListField(i)
	}
	return out
}

func (f TextField) Section() Section { return textFields[f].section }
func (f TextField) Label() string    { return textFields[f].label }

// Placeholder is the hint shown in an empty input
func (f TextField) Placeholder() string { return textFields[f].placeholder }

// Name is the dotted wire path, e.g. "projectInfo.companyName"
func (f TextField) Name() string {
	info := textFields[f]
	return info.section.Name() + "." + info.key
}

func (f TextField) String() string { return f.Name() }

func (f ListField) Section() Section { return listFields[f].section }
func (f ListField) Label() string    { return listFields[f].label }

// Placeholder is the hint for the entry at index i (0-based)
func (f ListField) Placeholder(i int) string { return fmt.Sprintf(listFields[f].placeholder, i+1) }

// Name is the dotted wire path, e.g. "functionalRequirements.userStories"
func (f ListField) Name() string {
	info := listFields[f]
	return info.section.Name() + "." + info.key
}

func (f ListField) String() string { return f.Name() }

// ParseTextField resolves a dotted wire path to a flat field
func ParseTextField(name string) (TextField, error) {
	for _, f := range TextFields() {
		if f.Name() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown text field %q", name)
}

// ParseListField resolves a dotted wire path to a list field
func ParseListField(name string) (ListField, error) {
	for _, f := range ListFields() {
		if f.Name() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown list field %q", name)
}

// Wizard step indices. Steps 0..4 edit the sections of the same index, the last step reviews
// and generates.
const (
	StepCount  = 6
	ReviewStep = StepCount - 1
)
