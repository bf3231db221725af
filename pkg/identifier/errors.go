package identifier

import "github.com/oneconcern/ddr/pkg/errors"

var (
	// ErrMalformedInput is returned when an id, path or url matches no known pattern
	ErrMalformedInput = errors.New("malformed input")

	// ErrMalformedID indicates that an id string matches no id pattern
	ErrMalformedID = ErrMalformedInput.Sub("malformed id")

	// ErrMalformedPath indicates that a filesystem path matches no path pattern
	ErrMalformedPath = ErrMalformedInput.Sub("malformed path")

	// ErrMalformedURL indicates that a url matches no url pattern
	ErrMalformedURL = ErrMalformedInput.Sub("malformed url")

	// ErrMalformedParts indicates that components are missing or do not have the expected type
	ErrMalformedParts = ErrMalformedInput.Sub("malformed parts")

	// ErrUnknownModel is returned when a model name is not part of the hierarchy
	ErrUnknownModel = errors.New("unknown model")

	// ErrMissingBasePath is returned when a path is requested from an identifier without base path
	ErrMissingBasePath = errors.New("missing base path")

	// ErrIllegalNavigation is returned when walking the hierarchy in a direction the model does not support
	ErrIllegalNavigation = errors.New("illegal navigation")

	// ErrUnknownAppend is returned when an additional path name is not known at all
	ErrUnknownAppend = errors.New("unknown additional path")
)
