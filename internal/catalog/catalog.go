// Package catalog holds the built-in sample SRS documents. A sample is turned into an ordinary
// record, so it prints through the same layout as anything authored in the wizard.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
)

// SampleCompany is the fictional author of every sample document
const SampleCompany = "TechCorp Solutions Ltd."

var examples = []models.Example{
	{
		Name:       "E-Commerce Platform SRS",
		Summary:    "Complete requirements specification for an online shopping platform with user management, product catalog, and payment processing.",
		Category:   "Web Application",
		Features:   []string{"User Authentication", "Product Management", "Payment Gateway", "Order Tracking", "Admin Dashboard"},
		Complexity: "High",
		Pages:      45,
	},
	{
		Name:       "Mobile Banking App SRS",
		Summary:    "Comprehensive requirements for a secure mobile banking application with account management and transaction features.",
		Category:   "Mobile Application",
		Features:   []string{"Biometric Authentication", "Fund Transfer", "Bill Payment", "Account Statements", "Security Features"},
		Complexity: "High",
		Pages:      52,
	},
	{
		Name:       "Employee Management System SRS",
		Summary:    "Requirements specification for an HR management system handling employee records, payroll, and performance tracking.",
		Category:   "Enterprise Software",
		Features:   []string{"Employee Records", "Payroll Management", "Performance Tracking", "Leave Management", "Reporting"},
		Complexity: "Medium",
		Pages:      38,
	},
	{
		Name:       "Hospital Management System SRS",
		Summary:    "Detailed requirements for a comprehensive hospital management system covering patient care and administrative functions.",
		Category:   "Healthcare Software",
		Features:   []string{"Patient Registration", "Appointment Scheduling", "Medical Records", "Billing System", "Inventory Management"},
		Complexity: "High",
		Pages:      67,
	},
	{
		Name:       "Event Management Platform SRS",
		Summary:    "Requirements for an event planning and management platform with booking, scheduling, and attendee management.",
		Category:   "Web Application",
		Features:   []string{"Event Creation", "Ticket Booking", "Venue Management", "Speaker Management", "Analytics Dashboard"},
		Complexity: "Medium",
		Pages:      32,
	},
	{
		Name:       "Chat Application SRS",
		Summary:    "Simple requirements specification for a real-time messaging application with basic chat functionality.",
		Category:   "Mobile/Web App",
		Features:   []string{"Real-time Messaging", "User Profiles", "Group Chats", "File Sharing", "Push Notifications"},
		Complexity: "Low",
		Pages:      24,
	},
}

// All returns every example in catalog order
func All() []models.Example {
	out := make([]models.Example, len(examples))
	copy(out, examples)
	return out
}

// Get returns the example at index (0-based)
func Get(index int) (models.Example, error) {
	if index < 0 || index >= len(examples) {
		return models.Example{}, errors.NotFoundError(fmt.Sprintf("Example %d", index))
	}
	return examples[index], nil
}

// Find resolves an example by 1-based number or by case-insensitive title
func Find(ref string) (models.Example, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		return Get(n - 1)
	}
	for _, e := range examples {
		if strings.EqualFold(e.Name, ref) || strings.EqualFold(e.ProjectName(), ref) {
			return e, nil
		}
	}
	return models.Example{}, errors.NotFoundError(fmt.Sprintf("Example %q", ref))
}

// Search ranks the examples against a fuzzy query over title, category, description and
// features. An empty query returns the whole catalog.
func Search(query string) []models.Example {
	query = strings.TrimSpace(query)
	if query == "" {
		return All()
	}

	var searchStrings []string
	for _, e := range examples {
		searchStrings = append(searchStrings, fmt.Sprintf("%s %s %s %s",
			e.Name,
			e.Category,
			strings.Join(e.Features, " "),
			e.Summary))
	}

	matches := fuzzy.Find(query, searchStrings)

	var results []models.Example
	for _, match := range matches {
		results = append(results, examples[match.Index])
	}
	return results
}

// SampleFileName is the download name of a sample: whitespace runs become underscores
func SampleFileName(e models.Example) string {
	return strings.Join(strings.Fields(e.Name), "_") + "_SRS.pdf"
}

// SampleRecord fills a record from an example so that every wizard step is complete
func SampleRecord(e models.Example) models.Record {
	category := strings.ToLower(e.Category)
	name := e.ProjectName()

	r := models.NewRecord()
	r.ProjectInfo.CompanyName = SampleCompany
	r.ProjectInfo.Name = name
	r.ProjectInfo.Description = fmt.Sprintf(
		"This document specifies the requirements for the %s. It provides a comprehensive overview of the system's functionality, performance criteria, and design constraints.",
		e.Name)
	r.ProjectInfo.Stakeholders = fmt.Sprintf(
		"Product owner, %s development team, quality assurance, operations, and the end users of the %s.",
		SampleCompany, category)
	r.ProjectInfo.Scope = fmt.Sprintf(
		"The %s is a %s designed to provide %s The system will include the following key features: %s.",
		e.Name, category, strings.ToLower(e.Summary), strings.Join(e.Features, ", "))

	r.FunctionalRequirements.UserStories = nil
	r.FunctionalRequirements.SystemFeatures = nil
	for _, feature := range e.Features {
		lower := strings.ToLower(feature)
		r.FunctionalRequirements.UserStories = append(r.FunctionalRequirements.UserStories,
			fmt.Sprintf("As a user, I want %s so that I can rely on the %s for my daily work.", lower, name))
		r.FunctionalRequirements.SystemFeatures = append(r.FunctionalRequirements.SystemFeatures,
			fmt.Sprintf("%s: This feature provides comprehensive %s functionality with user-friendly interface and robust security measures.", feature, lower))
	}
	r.FunctionalRequirements.BusinessRules = []string{
		"Users must verify their email address before accessing protected features.",
		"All changes to user data are recorded in an audit log.",
	}

	r.NonFunctionalRequirements.Performance = "Interactive pages respond within 2 seconds for 95% of requests under expected peak load."
	r.NonFunctionalRequirements.Security = "All traffic is encrypted with TLS 1.2 or later; credentials are stored with a salted adaptive hash; access follows least privilege."
	r.NonFunctionalRequirements.Usability = "Core tasks can be completed by a first-time user without training and the interface meets WCAG 2.1 AA."
	r.NonFunctionalRequirements.Reliability = "The service targets 99.9% monthly availability with daily backups and a recovery point objective of 24 hours."
	r.NonFunctionalRequirements.Scalability = "The system scales horizontally to ten times the launch user base without architectural change."

	r.SystemArchitecture.Overview = fmt.Sprintf(
		"The %s is a standalone %s that will operate independently while integrating with existing systems as needed.",
		e.Name, category)
	r.SystemArchitecture.Components = []string{
		"Client application",
		"API gateway and authentication service",
		"Core domain services",
		"Relational database and object storage",
	}
	r.SystemArchitecture.DataFlow = "Clients call the API gateway, which authenticates the request and routes it to the domain services; services persist state in the database and publish events for reporting."
	r.SystemArchitecture.Interfaces = "REST/JSON API for clients, e-mail and push notification providers, and the organisation's identity provider."

	r.Constraints.Technical = []string{"Must be deployable on the existing cloud infrastructure."}
	r.Constraints.Business = []string{fmt.Sprintf("Delivery within the approved budget for a %s complexity project.", strings.ToLower(e.Complexity))}
	r.Constraints.Regulatory = []string{"Personal data is processed in accordance with GDPR."}
	return r
}
