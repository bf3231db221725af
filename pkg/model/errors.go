package model

import "github.com/oneconcern/ddr/pkg/errors"

var (
	// ErrSchema indicates a schema declaration which cannot be used
	ErrSchema = errors.New("invalid schema")

	// ErrNoClass indicates a model without registered schema, such as a file-role stub
	ErrNoClass = errors.New("no object class for model")

	// ErrUnknownField is returned when setting a field the schema doesn't declare
	ErrUnknownField = errors.New("unknown field")

	// ErrMalformedDocument indicates a json metadata document that is not a list of single-key objects
	ErrMalformedDocument = errors.New("malformed metadata document")

	// ErrTransform is returned when a value cannot be converted
	ErrTransform = errors.New("cannot transform value")
)
