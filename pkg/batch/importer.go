package batch

import (
	"context"
	"time"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/model"
	"github.com/oneconcern/ddr/pkg/storage"
	"github.com/oneconcern/ddr/pkg/storage/status"
)

// Option for importers
type Option func(*Importer)

// WithRegistry sets the object classes
func WithRegistry(r *model.Registry) Option {
	return func(i *Importer) {
		i.registry = r
	}
}

// WithVocab sets the controlled vocabularies used to validate values
func WithVocab(v Vocab) Option {
	return func(i *Importer) {
		i.vocab = v
	}
}

// WithExceptions replaces DefaultExceptions
func WithExceptions(exceptions []string) Option {
	return func(i *Importer) {
		i.exceptions = exceptions
	}
}

// WithHeader sets the header of written documents
func WithHeader(h model.Header) Option {
	return func(i *Importer) {
		i.header = h
	}
}

// WithClock sets the clock used to stamp record creation and modification
func WithClock(clock model.Clock) Option {
	return func(i *Importer) {
		i.clock = clock
	}
}

// Importer loads csv rows into the metadata documents of one model
type Importer struct {
	store      storage.Store
	model      identifier.Model
	basepath   string
	registry   *model.Registry
	schema     *model.Schema
	vocab      Vocab
	exceptions []string
	header     model.Header
	clock      model.Clock
}

// ImportResult lists the documents written by an import
type ImportResult struct {
	Created []string
	Updated []string
}

// Paths of all written documents
func (r ImportResult) Paths() []string {
	return append(append([]string{}, r.Created...), r.Updated...)
}

// NewImporter for objects of model m, stored below basepath
func NewImporter(store storage.Store, m identifier.Model, basepath string, opts ...Option) (*Importer, error) {
	i := &Importer{
		store:      store,
		model:      m,
		basepath:   basepath,
		exceptions: DefaultExceptions,
		clock:      time.Now,
	}
	for _, apply := range opts {
		apply(i)
	}
	if i.registry == nil {
		r, err := model.DefaultRegistry()
		if err != nil {
			return nil, err
		}
		i.registry = r
	}
	schema, err := i.registry.Schema(m)
	if err != nil {
		return nil, err
	}
	i.schema = schema
	if i.header.Timestamp.IsZero() {
		i.header = model.NewHeader("", "", "", "", i.clock)
	}
	return i, nil
}

// Schema of imported objects
func (i *Importer) Schema() *model.Schema {
	return i.schema
}

// Validate checks the headers, then every row of the table
func (i *Importer) Validate(t Table) error {
	if err := ValidateHeaders(i.schema, t.Headers, i.exceptions); err != nil {
		return err
	}
	if !i.schema.Has("id") {
		if err := ValidateIDs(t.Rows, i.model); err != nil {
			return err
		}
	}
	return ValidateRows(i.schema, t.Rows, i.vocab)
}

// Import validates the table, then creates or updates one document per row.
//
// Nothing is written unless the whole table is valid.
func (i *Importer) Import(ctx context.Context, t Table) (ImportResult, error) {
	if err := i.Validate(t); err != nil {
		return ImportResult{}, err
	}

	now := i.clock().UTC().Format(model.DatetimeFormat)
	var result ImportResult
	for _, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		obj, created, err := i.load(ctx, row)
		if err != nil {
			return result, err
		}
		if err = obj.LoadRow(row.Values); err != nil {
			return result, err
		}
		if created && i.schema.Has("record_created") {
			if v, _ := obj.Get("record_created"); v == "" {
				_ = obj.Set("record_created", now)
			}
		}
		if i.schema.Has("record_lastmod") {
			_ = obj.Set("record_lastmod", now)
		}
		p, err := model.Write(ctx, i.store, obj, i.header)
		if err != nil {
			return result, err
		}
		if created {
			result.Created = append(result.Created, p)
		} else {
			result.Updated = append(result.Updated, p)
		}
	}
	return result, nil
}

// load reads the existing document of a row, or builds a new object
func (i *Importer) load(ctx context.Context, row Row) (*model.Object, bool, error) {
	id, err := identifier.FromID(row.Values["id"], identifier.BasePath(i.basepath))
	if err != nil {
		return nil, false, err
	}
	jsonPath, err := id.PathAbs(identifier.AddJSON)
	if err != nil {
		return nil, false, err
	}
	obj, err := i.registry.Read(ctx, i.store, jsonPath)
	switch {
	case err == nil:
		return obj, false, nil
	case errors.Is(err, status.ErrNotExists):
		obj, err = i.registry.New(id)
		return obj, true, err
	default:
		return nil, false, err
	}
}
