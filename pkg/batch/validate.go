package batch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/model"
)

// ErrValidation is returned when headers or rows are not valid for a model
var ErrValidation = errors.New("validation failed")

// DefaultExceptions are headers which are never required, and always accepted
var DefaultExceptions = []string{"record_created", "record_lastmod", "files"}

// HeaderError lists the problems of a header line
type HeaderError struct {
	Missing []string
	Unknown []string
}

func (e *HeaderError) Error() string {
	var msgs []string
	if len(e.Missing) > 0 {
		msgs = append(msgs, "missing required headers: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		msgs = append(msgs, "unknown headers: "+strings.Join(e.Unknown, ", "))
	}
	return strings.Join(msgs, "; ")
}

// ValidationError locates an invalid value
type ValidationError struct {
	Row    int
	Field  string
	Value  string
	Valid  []string
	Reason string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("row %d: %s: invalid value %q", e.Row, e.Field, e.Value)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	if len(e.Valid) > 0 {
		msg += ", valid values: " + strings.Join(e.Valid, ", ")
	}
	return msg
}

// ValidateHeaders checks that headers hold every required field and nothing outside the schema.
// Exceptions are never required and always accepted.
func ValidateHeaders(schema *model.Schema, headers []string, exceptions []string) error {
	except := toSet(exceptions)
	present := toSet(headers)

	herr := &HeaderError{}
	for _, name := range schema.Required() {
		if _, ok := except[name]; ok {
			continue
		}
		if _, ok := present[name]; !ok {
			herr.Missing = append(herr.Missing, name)
		}
	}
	for _, h := range headers {
		if _, ok := except[h]; ok {
			continue
		}
		if !schema.Has(h) {
			herr.Unknown = append(herr.Unknown, h)
		}
	}
	if len(herr.Missing) == 0 && len(herr.Unknown) == 0 {
		return nil
	}
	sort.Strings(herr.Unknown)
	return ErrValidation.Wrap(herr)
}

// ValidateRows loads every cell of every row with its field transform, then checks it.
// All invalid values are collected before returning.
func ValidateRows(schema *model.Schema, rows []Row, vocab Vocab) error {
	var errs error
	for _, row := range rows {
		for _, f := range schema.Fields {
			text, ok := row.Values[f.Name]
			if !ok {
				continue
			}
			if f.Name == "id" {
				errs = errors.Append(errs, validateID(row, schema.Model))
				continue
			}
			v, err := f.Load(text)
			if err != nil {
				errs = errors.Append(errs, &ValidationError{Row: row.Number, Field: f.Name, Value: text, Reason: err.Error()})
				continue
			}
			valid := vocab.Values(f.Vocab)
			if !f.Valid(v, valid) {
				verr := &ValidationError{Row: row.Number, Field: f.Name, Value: text, Valid: valid}
				if f.Required() && strings.TrimSpace(text) == "" {
					verr.Reason = "required"
				}
				errs = errors.Append(errs, verr)
			}
		}
	}
	if errs != nil {
		return ErrValidation.Wrap(errs)
	}
	return nil
}

// ValidateIDs checks that the id of every row is an identifier of the expected model
func ValidateIDs(rows []Row, m identifier.Model) error {
	var errs error
	for _, row := range rows {
		errs = errors.Append(errs, validateID(row, m))
	}
	if errs != nil {
		return ErrValidation.Wrap(errs)
	}
	return nil
}

func validateID(row Row, m identifier.Model) error {
	text := row.Values["id"]
	id, err := identifier.FromID(text)
	if err != nil {
		return &ValidationError{Row: row.Number, Field: "id", Value: text, Reason: "not an identifier"}
	}
	if id.Model != m {
		return &ValidationError{Row: row.Number, Field: "id", Value: text, Reason: fmt.Sprintf("model %s, expected %s", id.Model, m)}
	}
	return nil
}

// Failures extracts the invalid values reported by a validation error
func Failures(err error) []*ValidationError {
	var res []*ValidationError
	for _, e := range errors.Errors(errors.Unwrap(err)) {
		var verr *ValidationError
		if errors.As(e, &verr) {
			res = append(res, verr)
		}
	}
	return res
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
