package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dpshade/srs-wizard/internal/models"
)

// Format is a record serialization format
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// RecordFile is a record loaded from disk
type RecordFile struct {
	Path   string
	Format Format
	Record models.Record
}

// ParseFormat accepts "yaml", "yml" and "json" in any case
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format %q (use yaml or json)", s)
}

// FormatFromPath picks JSON for .json files and YAML for everything else
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// DecodeRecord parses a record. Keys missing from the input keep their defaults, so a partial
// file still yields version "1.0" and one entry per list. Unknown keys are rejected.
func DecodeRecord(data []byte, format Format) (models.Record, error) {
	record := models.NewRecord()

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&record); err != nil && err != io.EOF {
			return models.Record{}, fmt.Errorf("invalid JSON record: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&record); err != nil && err != io.EOF {
			return models.Record{}, fmt.Errorf("invalid YAML record: %w", err)
		}
	}

	record.Normalize()
	return record, nil
}

// EncodeRecord serializes a record, keeping list order and blank entries
func EncodeRecord(record models.Record, format Format) ([]byte, error) {
	record.Normalize()

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
		return append(data, '\n'), nil
	default:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(record); err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode record: %w", err)
		}
		return buf.Bytes(), nil
	}
}
