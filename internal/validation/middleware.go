// HTTP request validation.
//
// HTTP VALIDATION FLOW:
// 1. A handler asks the RequestValidator to check the request against a schema
// 2. Query parameters and the JSON body are merged into one parameter map
// 3. The map is validated; failures become a 400 with per-field details
// 4. Valid requests continue with typed values read from the ValidationResult
package validation

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/dpshade/srs-wizard/internal/errors"
)

// maxBodyBytes bounds request bodies; an SRS record is a few dozen kilobytes at most.
const maxBodyBytes = 1 << 20

// RequestValidator validates HTTP requests against the registered schemas
type RequestValidator struct {
	validator *Validator
}

// NewRequestValidator creates a new request validator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validator: NewValidator(),
	}
}

// Check extracts the request parameters and validates them against the schema. The returned
// error is an AppError ready for HTTPErrorHandler.
func (rv *RequestValidator) Check(r *http.Request, schemaName string) (*ValidationResult, error) {
	data, err := rv.extractRequestData(r)
	if err != nil {
		return nil, err
	}

	result := rv.validator.Validate(schemaName, data)
	if !result.Valid {
		return result, result.ToAppError()
	}
	return result, nil
}

func (rv *RequestValidator) extractRequestData(r *http.Request) (map[string]interface{}, error) {
	data := make(map[string]interface{})

	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			data[key] = values[0]
		}
	}

	if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodDelete {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" || strings.Contains(contentType, "application/json") {
			bodyData, err := extractJSONBody(r)
			if err != nil {
				return nil, err
			}
			for key, value := range bodyData {
				data[key] = value
			}
		}
	}

	return data, nil
}

func extractJSONBody(r *http.Request) (map[string]interface{}, error) {
	if r.Body == nil {
		return map[string]interface{}{}, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.ValidationError("Failed to read request body")
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return map[string]interface{}{}, nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.ValidationError("Invalid JSON in request body")
	}

	return data, nil
}

// SanitizeString removes null bytes and control characters but keeps line breaks and tabs, which
// are meaningful inside multi-line fields.
func SanitizeString(input string) string {
	var result strings.Builder
	for _, r := range input {
		if r == '\n' || r == '\t' || r == '\r' || (r >= 32 && r != 127) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
