package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
)

// handleOpenAPI serves the OpenAPI documentation interface
func (s *APIServer) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	html := `<!DOCTYPE html>
<html>
<head>
    <title>SRS Wizard API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui.css" />
    <style>
        html { box-sizing: border-box; overflow: -moz-scrollbars-vertical; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin:0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({
                url: '/api/openapi.json',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.presets.standalone],
                plugins: [SwaggerUIBundle.plugins.DownloadUrl],
                layout: "StandaloneLayout"
            });
        };
    </script>
</body>
</html>`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// handleOpenAPISpec serves the OpenAPI JSON specification
func (s *APIServer) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, errors.MethodNotAllowedError(r.Method))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(getOpenAPISpec(s.version))
}

type object = map[string]interface{}

func ref(name string) object {
	return object{"$ref": "#/components/schemas/" + name}
}

func jsonBody(schema object) object {
	return object{"content": object{"application/json": object{"schema": schema}}}
}

func response(description, schema string) object {
	return object{"description": description, "content": object{"application/json": object{"schema": ref(schema)}}}
}

var pdfResponse = object{
	"description": "PDF document, sent as an attachment named after the project",
	"content":     object{"application/pdf": object{"schema": object{"type": "string", "format": "binary"}}},
}

var sessionID = object{
	"name": "id", "in": "path", "required": true,
	"schema": object{"type": "string", "format": "uuid"},
}

func operation(summary string, responses object, extra object) object {
	op := object{"summary": summary, "responses": responses}
	for k, v := range extra {
		op[k] = v
	}
	return op
}

func errorResponses(codes ...string) object {
	descriptions := map[string]string{
		"400": "Validation failed (INCOMPLETE_SECTION, VALIDATION_ERROR, INVALID_INPUT)",
		"404": "Session or example not found",
		"409": "A document for this session is already being generated",
		"500": "PDF Generation Failed",
	}
	out := object{}
	for _, code := range codes {
		out[code] = response(descriptions[code], "ErrorResponse")
	}
	return out
}

func merge(objs ...object) object {
	out := object{}
	for _, o := range objs {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

func fieldNames(list bool) []string {
	var names []string
	if list {
		for _, f := range models.ListFields() {
			names = append(names, f.Name())
		}
		return names
	}
	for _, f := range models.TextFields() {
		names = append(names, f.Name())
	}
	return names
}

// getOpenAPISpec returns the OpenAPI 3.0 specification
func getOpenAPISpec(version string) object {
	sessionOK := object{"200": response("Updated session", "SessionResponse")}

	return object{
		"openapi": "3.0.3",
		"info": object{
			"title":       "SRS Wizard API",
			"description": "Author a Software Requirements Specification step by step and download it as a PDF.",
			"version":     version,
		},
		"servers": []object{{"url": "/", "description": "This server"}},
		"paths": object{
			"/api/v1/health": object{
				"get": operation("Service health", object{"200": response("Service is healthy", "APIResponse")}, nil),
			},
			"/api/v1/steps": object{
				"get": operation("Wizard step catalogue", object{"200": response("The six wizard steps", "APIResponse")}, nil),
			},
			"/api/v1/sessions": object{
				"post": operation("Create a wizard session",
					object{"201": response("New session at step 0", "SessionResponse")},
					object{"requestBody": merge(object{"required": false}, jsonBody(object{
						"type":       "object",
						"properties": object{"record": ref("Record")},
					}))}),
			},
			"/api/v1/sessions/{id}": object{
				"parameters": []object{sessionID},
				"get":        operation("Session snapshot", merge(sessionOK, errorResponses("404")), nil),
				"delete":     operation("Discard a session", merge(object{"200": response("Deleted", "APIResponse")}, errorResponses("404")), nil),
			},
			"/api/v1/sessions/{id}/fields": object{
				"parameters": []object{sessionID},
				"put": operation("Replace a text field", merge(sessionOK, errorResponses("400", "404")),
					object{"requestBody": jsonBody(object{
						"type":     "object",
						"required": []string{"field", "value"},
						"properties": object{
							"field": object{"type": "string", "enum": fieldNames(false)},
							"value": object{"type": "string", "maxLength": 20000},
						},
					})}),
			},
			"/api/v1/sessions/{id}/items": object{
				"parameters": []object{sessionID},
				"post": operation("Append a blank entry to a list field", merge(sessionOK, errorResponses("400", "404")),
					object{"requestBody": jsonBody(ref("ListItem"))}),
				"put": operation("Replace a list entry", merge(sessionOK, errorResponses("400", "404")),
					object{"requestBody": jsonBody(ref("ListItem"))}),
				"delete": operation("Remove a list entry; the last remaining entry is kept",
					merge(sessionOK, errorResponses("400", "404")),
					object{"requestBody": jsonBody(ref("ListItem"))}),
			},
			"/api/v1/sessions/{id}/validation": object{
				"parameters": []object{sessionID},
				"get":        operation("Validate every step", merge(object{"200": response("Per-step validation", "APIResponse")}, errorResponses("404")), nil),
			},
			"/api/v1/sessions/{id}/next": object{
				"parameters": []object{sessionID},
				"post":       operation("Validate the current step and advance", merge(sessionOK, errorResponses("400", "404")), nil),
			},
			"/api/v1/sessions/{id}/previous": object{
				"parameters": []object{sessionID},
				"post":       operation("Go back one step", merge(sessionOK, errorResponses("404")), nil),
			},
			"/api/v1/sessions/{id}/jump": object{
				"parameters": []object{sessionID},
				"post": operation("Jump to a completed or earlier step", merge(sessionOK, errorResponses("400", "404")),
					object{"requestBody": jsonBody(object{
						"type":       "object",
						"required":   []string{"step"},
						"properties": object{"step": object{"type": "integer", "minimum": 0, "maximum": models.ReviewStep}},
					})}),
			},
			"/api/v1/sessions/{id}/document": object{
				"parameters": []object{sessionID},
				"post":       operation("Render the session record as PDF", merge(object{"200": pdfResponse}, errorResponses("404", "409", "500")), nil),
			},
			"/api/v1/examples": object{
				"get": operation("Sample catalogue with optional fuzzy search",
					object{"200": response("Matching examples", "APIResponse")},
					object{"parameters": []object{{
						"name": "q", "in": "query", "required": false,
						"schema": object{"type": "string", "maxLength": 200},
					}}}),
			},
			"/api/v1/examples/{number}/document": object{
				"get": operation("Render a sample SRS as PDF", merge(object{"200": pdfResponse}, errorResponses("404", "500")),
					object{"parameters": []object{{
						"name": "number", "in": "path", "required": true,
						"description": "1-based catalogue number or the example title",
						"schema":      object{"type": "string"},
					}}}),
			},
		},
		"components": object{
			"schemas": object{
				"APIResponse": object{
					"type": "object",
					"properties": object{
						"success":   object{"type": "boolean"},
						"data":      object{"description": "Response payload"},
						"message":   object{"type": "string"},
						"timestamp": object{"type": "string", "format": "date-time"},
					},
					"required": []string{"success", "timestamp"},
				},
				"SessionResponse": object{
					"allOf": []object{
						ref("APIResponse"),
						{"type": "object", "properties": object{"data": object{
							"type": "object",
							"properties": object{
								"id":     object{"type": "string"},
								"record": ref("Record"),
								"wizard": object{
									"type": "object",
									"properties": object{
										"current":   object{"type": "integer"},
										"completed": object{"type": "array", "items": object{"type": "integer"}},
										"progress":  object{"type": "integer", "minimum": 0, "maximum": 100},
									},
								},
								"steps": object{"type": "array", "items": object{"type": "object"}},
							},
						}}},
					},
				},
				"ListItem": object{
					"type":     "object",
					"required": []string{"field"},
					"properties": object{
						"field": object{"type": "string", "enum": fieldNames(true)},
						"index": object{"type": "integer", "minimum": 0},
						"value": object{"type": "string"},
					},
				},
				"Record": recordSchema(),
				"ErrorResponse": object{
					"type": "object",
					"properties": object{
						"success": object{"type": "boolean"},
						"error": object{
							"type": "object",
							"properties": object{
								"code":      object{"type": "string"},
								"message":   object{"type": "string"},
								"details":   object{"type": "string"},
								"context":   object{"type": "object"},
								"timestamp": object{"type": "string", "format": "date-time"},
							},
							"required": []string{"code", "message", "timestamp"},
						},
					},
					"required": []string{"success", "error"},
				},
			},
		},
	}
}

// recordSchema describes the record with one property per section
func recordSchema() object {
	sections := object{}
	for _, section := range models.Sections() {
		props := object{}
		for _, f := range models.TextFields() {
			if f.Section() == section {
				props[leaf(f.Name())] = object{"type": "string", "description": f.Label()}
			}
		}
		for _, f := range models.ListFields() {
			if f.Section() == section {
				props[leaf(f.Name())] = object{"type": "array", "items": object{"type": "string"}, "minItems": 1, "description": f.Label()}
			}
		}
		sections[section.Name()] = object{"type": "object", "properties": props}
	}
	return object{"type": "object", "properties": sections}
}

func leaf(name string) string {
	return name[strings.LastIndexByte(name, '.')+1:]
}
