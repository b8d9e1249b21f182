// Package editor edits the SRS record. Every operation takes a record by value and returns a new
// one; the caller's record is never mutated, so a refused or failed edit leaves it as it was.
package editor

import (
	"fmt"

	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
)

// SetText replaces a flat text field verbatim
func SetText(r models.Record, field models.TextField, value string) models.Record {
	out := r.Clone()
	out.SetText(field, value)
	return out
}

// Append adds a blank entry to the end of a list field
func Append(r models.Record, field models.ListField) models.Record {
	out := r.Clone()
	out.SetList(field, append(out.List(field), ""))
	return out
}

// Replace sets the entry at index to value, stored verbatim
func Replace(r models.Record, field models.ListField, index int, value string) (models.Record, error) {
	items := r.List(field)
	if err := checkIndex(field, index, len(items)); err != nil {
		return r, err
	}

	out := r.Clone()
	out.List(field)[index] = value
	return out, nil
}

// Remove deletes the entry at index. A list never drops below one entry: removing the last
// remaining entry is refused and the record comes back unchanged with a nil error.
func Remove(r models.Record, field models.ListField, index int) (models.Record, error) {
	items := r.List(field)
	if err := checkIndex(field, index, len(items)); err != nil {
		return r, err
	}
	if !CanRemove(r, field) {
		return r, nil
	}

	out := r.Clone()
	list := out.List(field)
	out.SetList(field, append(list[:index], list[index+1:]...))
	return out, nil
}

// CanRemove reports whether the list has more than one entry, which is when front ends offer a
// remove action at all
func CanRemove(r models.Record, field models.ListField) bool {
	return len(r.List(field)) > 1
}

func checkIndex(field models.ListField, index, length int) error {
	if index < 0 || index >= length {
		return errors.InvalidInputError(fmt.Sprintf("index %d out of range for %s", index, field.Label())).
			WithContext("field", field.Name()).
			WithContext("length", length)
	}
	return nil
}
