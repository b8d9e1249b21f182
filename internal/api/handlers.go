package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dpshade/srs-wizard/internal/catalog"
	"github.com/dpshade/srs-wizard/internal/editor"
	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
	"github.com/dpshade/srs-wizard/internal/session"
	"github.com/dpshade/srs-wizard/internal/validation"
	"github.com/dpshade/srs-wizard/internal/wizard"
)

const maxRecordBytes = 1 << 20

// stepStatus is one row of the sidebar: where the step stands for this session
type stepStatus struct {
	wizard.Step
	Current   bool `json:"current"`
	Completed bool `json:"completed"`
	Reachable bool `json:"reachable"`
}

type sessionResponse struct {
	ID        string          `json:"id"`
	Record    models.Record   `json:"record"`
	Wizard    wizard.Snapshot `json:"wizard"`
	Steps     []stepStatus    `json:"steps"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type stepValidation struct {
	Step   int                          `json:"step"`
	Title  string                       `json:"title"`
	Valid  bool                         `json:"valid"`
	Errors []validation.ValidationError `json:"errors,omitempty"`
}

func newSessionResponse(v session.View) sessionResponse {
	nav := wizard.Restore(v.Snapshot.Current, v.Snapshot.Completed)

	resp := sessionResponse{
		ID:        v.ID,
		Record:    v.Record,
		Wizard:    v.Snapshot,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	for _, step := range wizard.Steps() {
		resp.Steps = append(resp.Steps, stepStatus{
			Step:      step,
			Current:   step.Index == v.Snapshot.Current,
			Completed: nav.IsCompleted(step.Index),
			Reachable: nav.CanJumpTo(step.Index),
		})
	}
	return resp
}

func validateAll(record models.Record) []stepValidation {
	var out []stepValidation
	for _, step := range wizard.Steps() {
		result := validation.CheckStep(step.Index, record)
		out = append(out, stepValidation{
			Step:   step.Index,
			Title:  step.Title,
			Valid:  result.Valid,
			Errors: result.Errors,
		})
	}
	return out
}

// handleSteps handles GET /api/v1/steps
func (s *APIServer) handleSteps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}
	s.writeResponse(w, wizard.Steps(), "", http.StatusOK)
}

// handleSessions handles POST /api/v1/sessions with an optional {"record": {...}} body
func (s *APIServer) handleSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	var body struct {
		Record *models.Record `json:"record"`
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxRecordBytes))
	if err != nil {
		s.writeError(w, errors.ValidationError("Failed to read request body"))
		return
	}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &body); err != nil {
			s.writeError(w, errors.ValidationError("Invalid JSON in request body").WithDetails(err.Error()))
			return
		}
	}

	v := s.sessions.Create(body.Record)
	s.writeResponse(w, newSessionResponse(v), "Session created", http.StatusCreated)
}

// handleSessionWithID routes /api/v1/sessions/{id} and /api/v1/sessions/{id}/{action}
func (s *APIServer) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/sessions/"), "/")
	parts := strings.Split(path, "/")
	if path == "" || len(parts) > 2 {
		s.writeError(w, errors.NotFoundError("Resource"))
		return
	}

	id := parts[0]
	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}

	switch action {
	case "":
		s.handleSession(w, r, id)
	case "fields":
		s.handleFields(w, r, id)
	case "items":
		s.handleItems(w, r, id)
	case "validation":
		s.handleValidation(w, r, id)
	case "next", "previous", "jump":
		s.handleNavigation(w, r, id, action)
	case "document":
		s.handleSessionDocument(w, r, id)
	default:
		s.writeError(w, errors.NotFoundError("Resource"))
	}
}

// handleSession handles GET and DELETE /api/v1/sessions/{id}
func (s *APIServer) handleSession(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		v, err := s.sessions.Get(id)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, newSessionResponse(v), "", http.StatusOK)
	case http.MethodDelete:
		if err := s.sessions.Delete(id); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeResponse(w, map[string]string{"id": id}, "Session deleted", http.StatusOK)
	default:
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
	}
}

// handleFields handles PUT /api/v1/sessions/{id}/fields {field, value}
func (s *APIServer) handleFields(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	params, err := s.validator.Check(r, validation.SchemaSetText)
	if err != nil {
		s.writeError(w, err)
		return
	}
	field, _ := models.ParseTextField(params.String("field"))
	value := validation.SanitizeString(params.String("value"))

	v, err := s.sessions.Update(id, func(sess *session.Session) error {
		sess.Record = editor.SetText(sess.Record, field, value)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, newSessionResponse(v), "", http.StatusOK)
}

// handleItems handles POST (append), PUT (replace) and DELETE (remove) on a list field
func (s *APIServer) handleItems(w http.ResponseWriter, r *http.Request, id string) {
	var (
		schema string
		edit   func(params *validation.ValidationResult, field models.ListField) func(*session.Session) error
	)
	message := ""

	switch r.Method {
	case http.MethodPost:
		schema = validation.SchemaListAppend
		edit = func(_ *validation.ValidationResult, field models.ListField) func(*session.Session) error {
			return func(sess *session.Session) error {
				sess.Record = editor.Append(sess.Record, field)
				return nil
			}
		}
	case http.MethodPut:
		schema = validation.SchemaListItem
		edit = func(params *validation.ValidationResult, field models.ListField) func(*session.Session) error {
			value := validation.SanitizeString(params.String("value"))
			return func(sess *session.Session) error {
				record, err := editor.Replace(sess.Record, field, params.Int("index"), value)
				sess.Record = record
				return err
			}
		}
	case http.MethodDelete:
		schema = validation.SchemaListRemove
		edit = func(params *validation.ValidationResult, field models.ListField) func(*session.Session) error {
			return func(sess *session.Session) error {
				if !editor.CanRemove(sess.Record, field) {
					message = "A list keeps at least one entry"
				}
				record, err := editor.Remove(sess.Record, field, params.Int("index"))
				sess.Record = record
				return err
			}
		}
	default:
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	params, err := s.validator.Check(r, schema)
	if err != nil {
		s.writeError(w, err)
		return
	}
	field, _ := models.ParseListField(params.String("field"))

	v, err := s.sessions.Update(id, edit(params, field))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, newSessionResponse(v), message, http.StatusOK)
}

// handleValidation handles GET /api/v1/sessions/{id}/validation
func (s *APIServer) handleValidation(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	v, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, validateAll(v.Record), "", http.StatusOK)
}

// handleNavigation handles POST /api/v1/sessions/{id}/next, /previous and /jump {step}
func (s *APIServer) handleNavigation(w http.ResponseWriter, r *http.Request, id, action string) {
	if r.Method != http.MethodPost {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	var fn func(sess *session.Session) error
	switch action {
	case "next":
		fn = func(sess *session.Session) error {
			return sess.Navigator.Next(sess.Record)
		}
	case "previous":
		fn = func(sess *session.Session) error {
			sess.Navigator.Previous()
			return nil
		}
	case "jump":
		params, err := s.validator.Check(r, validation.SchemaJump)
		if err != nil {
			s.writeError(w, err)
			return
		}
		step := params.Int("step")
		fn = func(sess *session.Session) error {
			if !sess.Navigator.JumpTo(step) {
				return errors.InvalidInputError("Step is not reachable yet").
					WithContext("step", step).
					WithContext("current", sess.Navigator.Current())
			}
			return nil
		}
	}

	v, err := s.sessions.Update(id, fn)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, newSessionResponse(v), "", http.StatusOK)
}

// handleSessionDocument handles POST /api/v1/sessions/{id}/document. One render per session
// runs at a time; a concurrent request gets 409.
func (s *APIServer) handleSessionDocument(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	record, err := s.sessions.Acquire(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer s.sessions.Release(id)

	data, fileName, err := s.service.Document(record)
	if err != nil {
		log.Printf("[HTTP] render failed for session %s: %v", id, err)
		s.writeError(w, err)
		return
	}
	s.writeDocument(w, data, fileName)
}

// handleExamples handles GET /api/v1/examples?q=
func (s *APIServer) handleExamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	params, err := s.validator.Check(r, validation.SchemaSearch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, s.service.Examples(params.String("q")), "", http.StatusOK)
}

// handleExampleDocument handles GET /api/v1/examples/{number}/document
func (s *APIServer) handleExampleDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/examples/"), "/")
	ref, rest, _ := strings.Cut(path, "/")
	if ref == "" || rest != "document" {
		s.writeError(w, errors.NotFoundError("Resource"))
		return
	}

	example, err := catalog.Find(ref)
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, fileName, err := s.service.SampleDocument(example)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeDocument(w, data, fileName)
}
