package model

import (
	"bytes"
	"context"
	"embed"
	"path"
	"path/filepath"
	"sync"

	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/storage"
	"github.com/spf13/afero"
)

//go:embed schemas/*.yaml
var embedded embed.FS

// Constructor builds a new object of a model
type Constructor func(identifier.Identifier, *Schema) *Object

// Class binds a model to its schema and constructor
type Class struct {
	Model     identifier.Model
	Schema    *Schema
	construct Constructor
}

// New object of this class
func (c Class) New(id identifier.Identifier) *Object {
	return c.construct(id, c.Schema)
}

// constructors is the closed set of models which have metadata documents.
// File-role stubs are never persisted.
var constructors = map[identifier.Model]Constructor{
	identifier.Repository:   New,
	identifier.Organization: New,
	identifier.Collection:   New,
	identifier.Entity:       New,
	identifier.File:         newFile,
}

// newFile copies the role and hash of the identifier into the metadata
func newFile(id identifier.Identifier, schema *Schema) *Object {
	o := New(id, schema)
	if schema.Has("role") {
		o.values["role"] = id.Parts.Role
	}
	if schema.Has("sha1") {
		o.values["sha1"] = id.Parts.SHA1
	}
	return o
}

// Registry maps models to their object class
type Registry struct {
	classes map[identifier.Model]Class
}

var (
	defaultRegistry     *Registry
	defaultRegistryErr  error
	defaultRegistryOnce sync.Once
)

// DefaultRegistry knows the schemas shipped with this package
func DefaultRegistry() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = LoadRegistry(nil, "")
	})
	return defaultRegistry, defaultRegistryErr
}

// MustDefaultRegistry panics if the embedded schemas are broken
func MustDefaultRegistry() *Registry {
	r, err := DefaultRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// LoadRegistry builds a registry from the embedded schemas.
//
// When dir is set, a {model}.yaml file found there replaces the embedded schema for that model.
func LoadRegistry(fs afero.Fs, dir string) (*Registry, error) {
	transforms := DefaultTransforms()
	r := &Registry{classes: make(map[identifier.Model]Class, len(constructors))}
	for _, m := range identifier.Models() {
		construct, ok := constructors[m]
		if !ok {
			continue
		}
		data, err := readSchema(fs, dir, m)
		if err != nil {
			return nil, err
		}
		schema, err := ParseSchema(data, transforms)
		if err != nil {
			return nil, err
		}
		if schema.Model != m {
			return nil, ErrSchema.Wrapf("schema for %s declares model %s", m, schema.Model)
		}
		r.classes[m] = Class{Model: m, Schema: schema, construct: construct}
	}
	return r, nil
}

func readSchema(fs afero.Fs, dir string, m identifier.Model) ([]byte, error) {
	name := string(m) + ".yaml"
	if dir != "" {
		if fs == nil {
			fs = afero.NewOsFs()
		}
		override := filepath.Join(dir, name)
		exists, err := afero.Exists(fs, override)
		if err != nil {
			return nil, ErrSchema.Wrap(err)
		}
		if exists {
			data, err := afero.ReadFile(fs, override)
			if err != nil {
				return nil, ErrSchema.Wrap(err)
			}
			return data, nil
		}
	}
	data, err := embedded.ReadFile(path.Join("schemas", name))
	if err != nil {
		return nil, ErrSchema.Wrap(err)
	}
	return data, nil
}

// Class of a model
func (r *Registry) Class(m identifier.Model) (Class, error) {
	c, ok := r.classes[m]
	if !ok {
		return Class{}, ErrNoClass.Wrapf("%q", m)
	}
	return c, nil
}

// Schema of a model
func (r *Registry) Schema(m identifier.Model) (*Schema, error) {
	c, err := r.Class(m)
	if err != nil {
		return nil, err
	}
	return c.Schema, nil
}

// New object for an identifier
func (r *Registry) New(id identifier.Identifier) (*Object, error) {
	c, err := r.Class(id.Model)
	if err != nil {
		return nil, err
	}
	return c.New(id), nil
}

// Read loads the object stored at a metadata document path
func (r *Registry) Read(ctx context.Context, store storage.Store, jsonPath string) (*Object, error) {
	id, err := identifier.FromPath(jsonPath)
	if err != nil {
		return nil, err
	}
	o, err := r.New(id)
	if err != nil {
		return nil, err
	}
	data, err := storage.ReadAll(ctx, store, jsonPath)
	if err != nil {
		return nil, err
	}
	if err = o.Load(data); err != nil {
		return nil, ErrMalformedDocument.Wrapf("%s: %v", jsonPath, err)
	}
	return o, nil
}

// Write stores the metadata document of an object and returns its path
func Write(ctx context.Context, store storage.Store, o *Object, h Header) (string, error) {
	jsonPath, err := o.JSONPath()
	if err != nil {
		return "", err
	}
	data, err := o.Dump(h)
	if err != nil {
		return "", err
	}
	if err = store.Put(ctx, jsonPath, bytes.NewReader(data), storage.OverWrite); err != nil {
		return "", err
	}
	return jsonPath, nil
}
