package models

import (
	"fmt"
	"strings"
)

// Example describes one of the built-in sample SRS documents
type Example struct {
	Name       string   `json:"title" yaml:"title"`
	Summary    string   `json:"description" yaml:"description"`
	Category   string   `json:"category" yaml:"category"`
	Features   []string `json:"features" yaml:"features"`
	Complexity string   `json:"complexity" yaml:"complexity"`
	Pages      int      `json:"pages" yaml:"pages"`
}

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (e Example) FilterValue() string {
	return e.Name + " " + e.Category
}

// Title satisfies the list.Item interface
func (e Example) Title() string {
	return e.Name
}

// Description satisfies the list.Item interface
func (e Example) Description() string {
	return fmt.Sprintf("%s • %s • %d pages", e.Category, e.Complexity, e.Pages)
}

// ProjectName strips the trailing "SRS" from the title
func (e Example) ProjectName() string {
	return strings.TrimSpace(strings.TrimSuffix(e.Name, "SRS"))
}
