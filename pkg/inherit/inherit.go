// Package inherit pushes the inheritable field values of an object down to its descendants.
package inherit

import (
	"context"
	"strings"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/model"
	"github.com/oneconcern/ddr/pkg/storage"
	"github.com/spf13/cast"
)

var (
	// ErrPropagation is returned when some descendants could not be loaded or written
	ErrPropagation = errors.New("inheritance propagation failed")

	// ErrNotInheritable is returned when asked to propagate a field which is not inheritable
	ErrNotInheritable = errors.New("field is not inheritable")
)

// FlagSuffix marks the companion flag of an inheritable field, e.g. "public_inherit"
const FlagSuffix = "_inherit"

// Inheritable fields of a schema
func Inheritable(schema *model.Schema) []string {
	return schema.Inheritable()
}

// Selected returns the inheritable fields for which data holds a set companion flag
func Selected(schema *model.Schema, data map[string]interface{}) []string {
	var selected []string
	for _, name := range schema.Inheritable() {
		if isSet(data[name+FlagSuffix]) {
			selected = append(selected, name)
		}
	}
	return selected
}

func isSet(flag interface{}) bool {
	if flag == nil {
		return false
	}
	if s, ok := flag.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "on", "yes", "y":
			return true
		}
	}
	return cast.ToBool(flag)
}

// Change records a descendant which was rewritten
type Change struct {
	ID     string
	Path   string
	Fields []string
}

// Failure records a descendant which could not be updated
type Failure struct {
	Path string
	Err  error
}

// Result of a propagation
type Result struct {
	Changed  []Change
	Failures []Failure
}

// IDs of the changed descendants
func (r Result) IDs() []string {
	ids := make([]string, 0, len(r.Changed))
	for _, c := range r.Changed {
		ids = append(ids, c.ID)
	}
	return ids
}

// Paths of the rewritten metadata documents
func (r Result) Paths() []string {
	paths := make([]string, 0, len(r.Changed))
	for _, c := range r.Changed {
		paths = append(paths, c.Path)
	}
	return paths
}

// Option for Propagate
type Option func(*options)

type options struct {
	registry *model.Registry
	header   model.Header
	dryRun   bool
}

// WithRegistry sets the object classes used to load descendants
func WithRegistry(r *model.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithHeader sets the header of rewritten documents
func WithHeader(h model.Header) Option {
	return func(o *options) {
		o.header = h
	}
}

// DryRun reports changes without writing them
func DryRun(enabled bool) Option {
	return func(o *options) {
		o.dryRun = enabled
	}
}

// Propagate copies the values of fields from parent to every descendant document which
// holds a different value. The parent value always wins.
//
// Descendants are independent: a failure on one does not stop the others.
// All failures are reported at the end, wrapped in ErrPropagation.
func Propagate(ctx context.Context, store storage.Store, parent *model.Object, fields []string, descendants []string, opts ...Option) (Result, error) {
	o := options{}
	for _, apply := range opts {
		apply(&o)
	}
	if o.registry == nil {
		r, err := model.DefaultRegistry()
		if err != nil {
			return Result{}, err
		}
		o.registry = r
	}
	if o.header.Timestamp.IsZero() {
		o.header = model.NewHeader("", "", "", "", nil)
	}

	values := make(map[string]interface{}, len(fields))
	for _, name := range fields {
		f, ok := parent.Schema().Field(name)
		if !ok || !f.Inheritable {
			return Result{}, ErrNotInheritable.Wrapf("%s.%s", parent.Model(), name)
		}
		values[name], _ = parent.Get(name)
	}

	var (
		result Result
		errs   error
	)
	for _, p := range descendants {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		change, err := propagateOne(ctx, store, p, fields, values, o)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Path: p, Err: err})
			errs = errors.Append(errs, ErrPropagation.Wrapf("%s: %v", p, err))
			continue
		}
		if len(change.Fields) > 0 {
			result.Changed = append(result.Changed, change)
		}
	}
	if errs != nil {
		return result, ErrPropagation.Wrap(errs)
	}
	return result, nil
}

func propagateOne(ctx context.Context, store storage.Store, p string, fields []string, values map[string]interface{}, o options) (Change, error) {
	obj, err := o.registry.Read(ctx, store, p)
	if err != nil {
		return Change{}, err
	}
	change := Change{ID: obj.ID(), Path: p}
	for _, name := range fields {
		if !obj.Schema().Has(name) {
			continue
		}
		current, _ := obj.Get(name)
		if model.Equal(current, values[name]) {
			continue
		}
		if err = obj.Set(name, values[name]); err != nil {
			return Change{}, err
		}
		change.Fields = append(change.Fields, name)
	}
	if len(change.Fields) == 0 || o.dryRun {
		return change, nil
	}
	if _, err = model.Write(ctx, store, obj, o.header); err != nil {
		return Change{}, err
	}
	return change, nil
}
