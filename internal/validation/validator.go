// Package validation decides whether wizard steps are complete and validates request input.
//
// SYSTEM ARCHITECTURE ROLE:
// Two kinds of checks live here. Step gates (steps.go) look at the SRS record and decide whether
// the navigator may leave a step. Schemas (this file) check loosely typed input coming from the
// HTTP API and the CLI before it is turned into typed editor calls.
//
// INTEGRATION POINTS:
// - internal/wizard: Navigator.Next consults IsStepComplete / CheckStep
// - internal/api: request bodies are validated against the built-in schemas
// - internal/cli: `validate` prints CheckStep results for every step
// - internal/errors: ValidationResult.ToAppError() converts failures to AppError format
//
// SCHEMA SYSTEM:
// - Field validators: type, length, options and custom checks per field
// - Schema rules: cross-field checks on the complete input
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
)

// Schema names registered by NewValidator
const (
	SchemaSetText    = "set_text"
	SchemaListAppend = "list_append"
	SchemaListItem   = "list_item"
	SchemaListRemove = "list_remove"
	SchemaJump       = "jump"
	SchemaSearch     = "search_examples"
)

// FieldValidator provides validation rules for individual fields
type FieldValidator struct {
	Name      string
	Required  bool
	Type      string
	MinLength int
	MaxLength int
	Min       *int
	Max       *int
	Options   []string
	Custom    func(interface{}) error
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid  bool                   `json:"valid"`
	Errors []ValidationError      `json:"errors,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Schema represents a validation schema
type Schema struct {
	Name   string
	Fields map[string]FieldValidator
	Rules  []func(map[string]interface{}) error
}

// Validator provides centralized validation functionality
type Validator struct {
	schemas map[string]*Schema
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := &Validator{
		schemas: make(map[string]*Schema),
	}
	v.registerBuiltinSchemas()
	return v
}

// RegisterSchema registers a validation schema
func (v *Validator) RegisterSchema(schema *Schema) {
	v.schemas[schema.Name] = schema
}

// Validate validates data against a schema
func (v *Validator) Validate(schemaName string, data map[string]interface{}) *ValidationResult {
	schema, exists := v.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "schema",
				Code:    "SCHEMA_NOT_FOUND",
				Message: fmt.Sprintf("Validation schema '%s' not found", schemaName),
			}},
		}
	}

	result := &ValidationResult{
		Valid: true,
		Data:  make(map[string]interface{}),
	}

	for fieldName, validator := range schema.Fields {
		v.validateField(fieldName, validator, data, result)
	}

	if !result.Valid {
		return result
	}

	for _, rule := range schema.Rules {
		if err := rule(result.Data); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "schema",
				Code:    "SCHEMA_RULE_VIOLATION",
				Message: err.Error(),
			})
		}
	}

	return result
}

func (v *Validator) validateField(fieldName string, validator FieldValidator, data map[string]interface{}, result *ValidationResult) {
	value, exists := data[fieldName]

	if validator.Required && (!exists || value == nil || (validator.Type != "string" && value == "")) {
		result.addError(fieldName, "REQUIRED_FIELD_MISSING", fmt.Sprintf("Field '%s' is required", fieldName), nil)
		return
	}

	if !exists || value == nil {
		return
	}

	convertedValue, err := v.validateAndConvertType(fieldName, validator.Type, value)
	if err != nil {
		result.addError(fieldName, "INVALID_TYPE", err.Error(), value)
		return
	}
	result.Data[fieldName] = convertedValue

	switch val := convertedValue.(type) {
	case string:
		if validator.MinLength > 0 && len(val) < validator.MinLength {
			result.addError(fieldName, "MIN_LENGTH_VIOLATION",
				fmt.Sprintf("Field '%s' must be at least %d characters long", fieldName, validator.MinLength), val)
		}
		if validator.MaxLength > 0 && len(val) > validator.MaxLength {
			result.addError(fieldName, "MAX_LENGTH_VIOLATION",
				fmt.Sprintf("Field '%s' must be at most %d characters long", fieldName, validator.MaxLength), nil)
		}
		if len(validator.Options) > 0 && !contains(validator.Options, val) {
			result.addError(fieldName, "INVALID_OPTION",
				fmt.Sprintf("Field '%s' must be one of: %s", fieldName, strings.Join(validator.Options, ", ")), val)
		}
	case int:
		if validator.Min != nil && val < *validator.Min {
			result.addError(fieldName, "OUT_OF_RANGE", fmt.Sprintf("Field '%s' must be at least %d", fieldName, *validator.Min), val)
		}
		if validator.Max != nil && val > *validator.Max {
			result.addError(fieldName, "OUT_OF_RANGE", fmt.Sprintf("Field '%s' must be at most %d", fieldName, *validator.Max), val)
		}
	}

	if validator.Custom != nil {
		if err := validator.Custom(convertedValue); err != nil {
			result.addError(fieldName, "CUSTOM_VALIDATION_FAILED", fmt.Sprintf("Field '%s': %s", fieldName, err.Error()), convertedValue)
		}
	}
}

func (v *Validator) validateAndConvertType(fieldName, expectedType string, value interface{}) (interface{}, error) {
	switch expectedType {
	case "string":
		if str, ok := value.(string); ok {
			return str, nil
		}
		return nil, fmt.Errorf("field '%s' must be a string", fieldName)

	case "int":
		switch val := value.(type) {
		case int:
			return val, nil
		case float64:
			if val != float64(int(val)) {
				return nil, fmt.Errorf("field '%s' must be an integer", fieldName)
			}
			return int(val), nil
		case string:
			if intVal, err := strconv.Atoi(val); err == nil {
				return intVal, nil
			}
		}
		return nil, fmt.Errorf("field '%s' must be an integer", fieldName)

	default:
		return value, nil
	}
}

func (v *Validator) registerBuiltinSchemas() {
	zero := 0
	lastStep := models.ReviewStep

	textField := FieldValidator{
		Name:     "field",
		Type:     "string",
		Required: true,
		Custom: func(value interface{}) error {
			_, err := models.ParseTextField(value.(string))
			return err
		},
	}
	listField := FieldValidator{
		Name:     "field",
		Type:     "string",
		Required: true,
		Custom: func(value interface{}) error {
			_, err := models.ParseListField(value.(string))
			return err
		},
	}
	index := FieldValidator{Name: "index", Type: "int", Required: true, Min: &zero}
	// Plain text only, kept within what a document section can reasonably hold.
	value := FieldValidator{Name: "value", Type: "string", Required: true, MaxLength: 20000}

	v.RegisterSchema(&Schema{
		Name:   SchemaSetText,
		Fields: map[string]FieldValidator{"field": textField, "value": value},
	})
	v.RegisterSchema(&Schema{
		Name:   SchemaListAppend,
		Fields: map[string]FieldValidator{"field": listField},
	})
	v.RegisterSchema(&Schema{
		Name:   SchemaListItem,
		Fields: map[string]FieldValidator{"field": listField, "index": index, "value": value},
	})
	v.RegisterSchema(&Schema{
		Name:   SchemaListRemove,
		Fields: map[string]FieldValidator{"field": listField, "index": index},
	})
	v.RegisterSchema(&Schema{
		Name: SchemaJump,
		Fields: map[string]FieldValidator{
			"step": {Name: "step", Type: "int", Required: true, Min: &zero, Max: &lastStep},
		},
	})
	v.RegisterSchema(&Schema{
		Name: SchemaSearch,
		Fields: map[string]FieldValidator{
			"q": {Name: "q", Type: "string", MaxLength: 200},
		},
	})
}

func (result *ValidationResult) addError(field, code, message string, value interface{}) {
	result.Valid = false
	result.Errors = append(result.Errors, ValidationError{
		Field:   field,
		Code:    code,
		Message: message,
		Value:   value,
	})
}

func (result *ValidationResult) summary() string {
	var details []string
	for _, validationErr := range result.Errors {
		details = append(details, fmt.Sprintf("%s: %s", validationErr.Field, validationErr.Message))
	}
	return strings.Join(details, "; ")
}

// ToAppError converts validation result to AppError
func (result *ValidationResult) ToAppError() *errors.AppError {
	if result.Valid {
		return nil
	}

	if len(result.Errors) == 0 {
		return errors.ValidationError("Validation failed")
	}

	appErr := errors.ValidationError(result.Errors[0].Message)
	appErr.WithDetails(result.summary())
	appErr.WithContext("validation_errors", result.Errors)

	return appErr
}

// String reads a validated string value
func (result *ValidationResult) String(key string) string {
	s, _ := result.Data[key].(string)
	return s
}

// Int reads a validated integer value
func (result *ValidationResult) Int(key string) int {
	i, _ := result.Data[key].(int)
	return i
}

func contains(options []string, s string) bool {
	for _, option := range options {
		if option == s {
			return true
		}
	}
	return false
}
