package errors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCategorization(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		category ErrorCategory
		severity ErrorSeverity
	}{
		{ErrCodeIncompleteSection, CategoryValidation, SeverityWarning},
		{ErrCodeInvalidInput, CategoryValidation, SeverityWarning},
		{ErrCodeRenderFailed, CategoryDocument, SeverityError},
		{ErrCodeRenderInProgress, CategoryDocument, SeverityInfo},
		{ErrCodeInternalError, CategoryService, SeverityCritical},
		{ErrorCode("SOMETHING_ELSE"), CategorySystem, SeverityError},
	}

	for _, tt := range tests {
		err := NewAppError(tt.code, "x")
		if err.Category != tt.category {
			t.Errorf("%s: expected category %s, got %s", tt.code, tt.category, err.Category)
		}
		if err.Severity != tt.severity {
			t.Errorf("%s: expected severity %s, got %s", tt.code, tt.severity, err.Severity)
		}
	}
}

func TestRenderErrorIsNotRetryable(t *testing.T) {
	err := RenderError(fmt.Errorf("font missing"))
	if err.IsRetryable() {
		t.Error("Expected render failures to not be retryable")
	}
	if err.Message != "PDF Generation Failed" {
		t.Errorf("Expected message 'PDF Generation Failed', got %q", err.Message)
	}
	if err.Details != "font missing" {
		t.Errorf("Expected cause in details, got %q", err.Details)
	}
}

func TestGetAppErrorUnwraps(t *testing.T) {
	inner := InvalidInputError("bad index")
	wrapped := fmt.Errorf("editing: %w", inner)

	if !IsAppError(wrapped) {
		t.Fatal("Expected wrapped AppError to be detected")
	}
	if got := GetAppError(wrapped); got != inner {
		t.Errorf("Expected the inner AppError, got %v", got)
	}
	if !HasCode(wrapped, ErrCodeInvalidInput) {
		t.Error("Expected HasCode to match INVALID_INPUT")
	}

	plain := GetAppError(fmt.Errorf("boom"))
	if plain.Code != ErrCodeInternalError {
		t.Errorf("Expected INTERNAL_ERROR for plain errors, got %s", plain.Code)
	}
}

func TestWriteHTTPError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NewAppError(ErrCodeIncompleteSection, "Incomplete Section"), http.StatusBadRequest},
		{NotFoundError("session"), http.StatusNotFound},
		{RenderInProgressError(), http.StatusConflict},
		{RenderError(fmt.Errorf("x")), http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(false)
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.WriteHTTPError(rec, tt.err)
		if rec.Code != tt.status {
			t.Errorf("%v: expected status %d, got %d", tt.err, tt.status, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"success":false`) {
			t.Errorf("Expected error envelope, got %s", rec.Body.String())
		}
	}
}

func TestTUIErrorHandlerLogsToFile(t *testing.T) {
	dir := t.TempDir()
	handler := NewTUIErrorHandler(true, dir)

	handler.HandleError(RenderError(fmt.Errorf("disk full")).WithContext("file", "Portal_SRS.pdf"))

	data, err := os.ReadFile(filepath.Join(dir, "error.log"))
	if err != nil {
		t.Fatalf("Expected error log to be written: %v", err)
	}
	if !strings.Contains(string(data), "RENDER_FAILED") || !strings.Contains(string(data), "Portal_SRS.pdf") {
		t.Errorf("Unexpected log entry: %s", data)
	}

	msg := handler.FormatError(RenderError(fmt.Errorf("disk full")))
	if !strings.Contains(msg, "Details: disk full") {
		t.Errorf("Expected details in TUI message, got %q", msg)
	}
}
