// Interface-specific error handling.
//
// ERROR FLOW:
// 1. Core logic (editor, validation, layout, service) returns an AppError
// 2. The front end's handler formats it (terminal line, JSON body, notification)
// 3. The handler logs it (stderr for CLI/HTTP, error.log for the TUI)
//
// INTEGRATION POINTS:
// - internal/cli: CLIErrorHandler
// - internal/api: HTTPErrorHandler.WriteHTTPError
// - internal/ui: TUIErrorHandler.GetErrorStyle and the error.log file
package errors

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for CLI interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{
		Verbose: verbose,
	}
}

// HandleError handles errors for CLI interface
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	if h.Verbose {
		log.Printf("[%s] %s: %s", appErr.Severity, appErr.Code, appErr.Error())
		if appErr.Cause != nil {
			log.Printf("Caused by: %v", appErr.Cause)
		}
	}

	return fmt.Errorf("%s", h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if h.Verbose && appErr.Details != "" {
		message = fmt.Sprintf("%s (%s)", message, appErr.Details)
	}

	switch appErr.Severity {
	case SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprintf("CRITICAL: %s", message)
	case SeverityError:
		return color.RedString("ERROR: %s", message)
	case SeverityWarning:
		return color.YellowString("WARNING: %s", message)
	case SeverityInfo:
		return color.CyanString("INFO: %s", message)
	default:
		return color.RedString("%s", message)
	}
}

// HTTPErrorHandler handles errors for HTTP interface
type HTTPErrorHandler struct {
	IncludeDetails bool
}

// NewHTTPErrorHandler creates a new HTTP error handler
func NewHTTPErrorHandler(includeDetails bool) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		IncludeDetails: includeDetails,
	}
}

// HandleError handles errors for HTTP interface
func (h *HTTPErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	log.Printf("[HTTP] [%s] %s: %s", appErr.Severity, appErr.Code, appErr.Error())
	if appErr.Cause != nil {
		log.Printf("Caused by: %v", appErr.Cause)
	}

	return appErr
}

type httpErrorBody struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp interface{}            `json:"timestamp"`
}

// FormatError formats an error for HTTP response
func (h *HTTPErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	body := httpErrorBody{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Timestamp: appErr.Timestamp,
	}
	if h.IncludeDetails {
		body.Details = appErr.Details
		body.Context = appErr.Context
	}

	jsonBytes, _ := json.Marshal(map[string]interface{}{"success": false, "error": body})
	return string(jsonBytes)
}

// WriteHTTPError writes an error response to HTTP
func (h *HTTPErrorHandler) WriteHTTPError(w http.ResponseWriter, err error) {
	appErr := GetAppError(err)

	h.HandleError(appErr)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatusCode(appErr))
	w.Write([]byte(h.FormatError(appErr)))
}

// HTTPStatusCode maps error codes to HTTP status codes
func HTTPStatusCode(appErr *AppError) int {
	switch appErr.Code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInvalidFormat, ErrCodeIncompleteSection:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeFileNotFound:
		return http.StatusNotFound
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrCodeRenderInProgress:
		return http.StatusConflict
	case ErrCodeNotImplemented, ErrCodeLauncherUnavailable:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// TUIErrorHandler handles errors for TUI interface
type TUIErrorHandler struct {
	ShowDetails bool
	LogDir      string
}

// NewTUIErrorHandler creates a new TUI error handler that appends to <logDir>/error.log
func NewTUIErrorHandler(showDetails bool, logDir string) *TUIErrorHandler {
	return &TUIErrorHandler{
		ShowDetails: showDetails,
		LogDir:      logDir,
	}
}

// HandleError handles errors for TUI interface
func (h *TUIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)
	logToFile(h.LogDir, appErr)
	return appErr
}

// FormatError formats an error for TUI display
func (h *TUIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if h.ShowDetails && appErr.Details != "" {
		message = fmt.Sprintf("%s\nDetails: %s", message, appErr.Details)
	}

	return message
}

// GetErrorStyle returns an icon and a colour for the error's severity
func (h *TUIErrorHandler) GetErrorStyle(err error) (string, string) {
	appErr := GetAppError(err)

	switch appErr.Severity {
	case SeverityCritical:
		return "✖", "#ff0000"
	case SeverityError:
		return "✖", "#ff6b6b"
	case SeverityWarning:
		return "!", "#feca57"
	case SeverityInfo:
		return "i", "#48cae4"
	default:
		return "✖", "#ff6b6b"
	}
}

func logToFile(logDir string, appErr *AppError) {
	if logDir == "" {
		return
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return
	}

	file, err := os.OpenFile(filepath.Join(logDir, "error.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer file.Close()

	logEntry := fmt.Sprintf("[%s] [%s] [%s] %s",
		appErr.Timestamp.Format("2006-01-02 15:04:05"),
		appErr.Severity,
		appErr.Category,
		appErr.Error())

	if appErr.Context != nil {
		contextJSON, _ := json.Marshal(appErr.Context)
		logEntry += fmt.Sprintf(" | Context: %s", string(contextJSON))
	}

	file.WriteString(logEntry + "\n")
}
