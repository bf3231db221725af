package model

import (
	"github.com/oneconcern/ddr/pkg/identifier"
)

// Value is a named field value
type Value struct {
	Name  string
	Value interface{}
}

// Object is the metadata of an archive object, bound to the schema of its model.
//
// Objects are independent values: loading or updating one never affects another.
type Object struct {
	Identifier identifier.Identifier

	// Files lists the descriptors of the files attached to an entity
	Files []map[string]interface{}

	schema *Schema
	values map[string]interface{}
	extra  map[string]interface{}
}

// New object with all fields set to their defaults.
//
// The id field, when declared, always holds the identifier's id.
func New(id identifier.Identifier, schema *Schema) *Object {
	o := &Object{
		Identifier: id,
		schema:     schema,
		values:     make(map[string]interface{}, len(schema.Fields)),
	}
	o.reset()
	return o
}

func (o *Object) reset() {
	o.extra = make(map[string]interface{})
	for _, f := range o.schema.Fields {
		o.values[f.Name] = f.DefaultValue()
	}
	if o.schema.Has("id") {
		o.values["id"] = o.Identifier.ID
	}
	if o.Identifier.Model == identifier.Entity {
		o.Files = []map[string]interface{}{}
	}
}

// ID of the object
func (o *Object) ID() string {
	return o.Identifier.ID
}

// Model of the object
func (o *Object) Model() identifier.Model {
	return o.Identifier.Model
}

// Schema the object is bound to
func (o *Object) Schema() *Schema {
	return o.schema
}

// Get the value of a field
func (o *Object) Get(name string) (interface{}, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Set the value of a declared field
func (o *Object) Set(name string, value interface{}) error {
	if !o.schema.Has(name) {
		return ErrUnknownField.Wrapf("%s has no field %q", o.schema.Model, name)
	}
	o.values[name] = copyValue(value)
	return nil
}

// Fields returns the values of all fields in schema order
func (o *Object) Fields() []Value {
	res := make([]Value, 0, len(o.schema.Fields))
	for _, f := range o.schema.Fields {
		res = append(res, Value{Name: f.Name, Value: o.values[f.Name]})
	}
	return res
}

// Dict flattens the fields into a single map
func (o *Object) Dict() map[string]interface{} {
	res := make(map[string]interface{}, len(o.values))
	for _, f := range o.schema.Fields {
		res[f.Name] = copyValue(o.values[f.Name])
	}
	return res
}

// Extra returns the entries of the last loaded document which are not declared fields,
// such as the "<field>_inherit" flags set by editors.
func (o *Object) Extra() map[string]interface{} {
	res := make(map[string]interface{}, len(o.extra))
	for k, v := range o.extra {
		res[k] = copyValue(v)
	}
	return res
}

// Display renders a field for humans
func (o *Object) Display(name string) (string, error) {
	f, ok := o.schema.Field(name)
	if !ok {
		return "", ErrUnknownField.Wrapf("%s has no field %q", o.schema.Model, name)
	}
	return f.Show(o.values[name]), nil
}

// LoadRow sets fields from a csv row keyed by header.
//
// Columns which are not declared fields are ignored. The id column never overrides the identifier.
func (o *Object) LoadRow(row map[string]string) error {
	for _, f := range o.schema.Fields {
		text, ok := row[f.Name]
		if !ok || f.Name == "id" {
			continue
		}
		v, err := f.Load(text)
		if err != nil {
			return err
		}
		o.values[f.Name] = v
	}
	return nil
}

// Row dumps the fields named by headers as csv text.
//
// Headers which are not declared fields yield empty cells.
func (o *Object) Row(headers []string) ([]string, error) {
	res := make([]string, len(headers))
	for i, h := range headers {
		f, ok := o.schema.Field(h)
		if !ok {
			continue
		}
		s, err := f.Dump(o.values[h])
		if err != nil {
			return nil, err
		}
		res[i] = s
	}
	return res, nil
}

// JSONPath is the absolute path of the metadata document
func (o *Object) JSONPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddJSON)
}

// ChangelogPath is the absolute path of the changelog
func (o *Object) ChangelogPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddChangelog)
}

// ControlPath is the absolute path of the control file
func (o *Object) ControlPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddControl)
}

// AccessPath is the absolute path of the access copy of a file
func (o *Object) AccessPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddAccess)
}

// MetsPath is the absolute path of the METS document of an entity
func (o *Object) MetsPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddMets)
}

// EADPath is the absolute path of the EAD document of a collection
func (o *Object) EADPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddEAD)
}

// LockPath is the absolute path of the lock file of a collection
func (o *Object) LockPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddLock)
}

// GitignorePath is the absolute path of a collection .gitignore
func (o *Object) GitignorePath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddGitignore)
}

// AnnexPath is the absolute path of a collection annex directory
func (o *Object) AnnexPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddAnnex)
}

// GitPath is the absolute path of a collection git directory
func (o *Object) GitPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddGit)
}

// FilesPath is the absolute path of the directory of children objects
func (o *Object) FilesPath() (string, error) {
	return o.Identifier.PathAbs(identifier.AddFiles)
}
