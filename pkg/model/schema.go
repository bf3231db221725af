package model

import (
	"reflect"
	"strings"

	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// Form holds the presentation attributes of a field
type Form struct {
	Label    string `yaml:"label" json:"label"`
	Required bool   `yaml:"required" json:"required"`
}

// FieldSpec is the declaration of a field, as found in a schema file.
//
// Transforms are referred to by name: see DefaultTransforms.
type FieldSpec struct {
	Name        string      `yaml:"name" json:"name"`
	Default     interface{} `yaml:"default,omitempty" json:"default,omitempty"`
	Form        Form        `yaml:"form" json:"form"`
	Inheritable bool        `yaml:"inheritable,omitempty" json:"inheritable,omitempty"`
	Vocab       string      `yaml:"vocab,omitempty" json:"vocab,omitempty"`
	CSVLoad     string      `yaml:"csvload,omitempty" json:"csvload,omitempty"`
	CSVDump     string      `yaml:"csvdump,omitempty" json:"csvdump,omitempty"`
	CSVValidate string      `yaml:"csvvalidate,omitempty" json:"csvvalidate,omitempty"`
	Display     string      `yaml:"display,omitempty" json:"display,omitempty"`
}

// Field is a declared field with its transforms resolved
type Field struct {
	FieldSpec

	load     LoadFunc
	dump     DumpFunc
	validate ValidateFunc
	display  DisplayFunc
}

// Required tells if the field must have a value
func (f *Field) Required() bool {
	return f.Form.Required
}

// Label of the field, defaults to its name
func (f *Field) Label() string {
	if f.Form.Label == "" {
		return f.Name
	}
	return f.Form.Label
}

// DefaultValue returns a copy of the declared default
func (f *Field) DefaultValue() interface{} {
	return copyValue(f.Default)
}

// Load converts csv text into a value for this field
func (f *Field) Load(text string) (interface{}, error) {
	v, err := f.load(text)
	if err != nil {
		return nil, ErrTransform.Wrapf("field %s: %v", f.Name, err)
	}
	return v, nil
}

// Dump converts a value of this field into csv text
func (f *Field) Dump(v interface{}) (string, error) {
	s, err := f.dump(v)
	if err != nil {
		return "", ErrTransform.Wrapf("field %s: %v", f.Name, err)
	}
	return s, nil
}

// Valid checks a loaded value: required fields may not be empty,
// and values must pass the declared validation against the vocabulary.
func (f *Field) Valid(v interface{}, vocab []string) bool {
	if f.Required() && isEmpty(v) {
		return false
	}
	if f.validate == nil {
		return true
	}
	return f.validate(v, vocab)
}

// Show renders a value for humans
func (f *Field) Show(v interface{}) string {
	return f.display(v)
}

// Schema is the ordered list of fields of an object model
type Schema struct {
	Model  identifier.Model
	Fields []*Field

	index map[string]int
}

type schemaFile struct {
	Model  string      `yaml:"model"`
	Fields []FieldSpec `yaml:"fields"`
}

// ParseSchema reads a yaml schema declaration and resolves its transforms
func ParseSchema(data []byte, transforms Transforms) (*Schema, error) {
	var decl schemaFile
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, ErrSchema.Wrap(err)
	}
	m, err := identifier.ParseModel(decl.Model)
	if err != nil {
		return nil, ErrSchema.Wrap(err)
	}
	return NewSchema(m, decl.Fields, transforms)
}

// NewSchema builds a schema from field declarations.
//
// Transform names are resolved once here: an unknown name is an error.
func NewSchema(m identifier.Model, specs []FieldSpec, transforms Transforms) (*Schema, error) {
	s := &Schema{
		Model:  m,
		Fields: make([]*Field, 0, len(specs)),
		index:  make(map[string]int, len(specs)),
	}
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, ErrSchema.Wrapf("%s: field without a name", m)
		}
		if _, dup := s.index[name]; dup {
			return nil, ErrSchema.Wrapf("%s: duplicate field %s", m, name)
		}
		spec.Name = name
		spec.Default = normalize(spec.Default)
		if spec.Default == nil {
			spec.Default = ""
		}
		f := &Field{FieldSpec: spec}

		var ok bool
		if f.load, ok = transforms.Load[orText(spec.CSVLoad)]; !ok {
			return nil, ErrSchema.Wrapf("%s.%s: unknown csvload transform %q", m, name, spec.CSVLoad)
		}
		if f.dump, ok = transforms.Dump[orText(spec.CSVDump)]; !ok {
			return nil, ErrSchema.Wrapf("%s.%s: unknown csvdump transform %q", m, name, spec.CSVDump)
		}
		if f.display, ok = transforms.Display[orText(spec.Display)]; !ok {
			return nil, ErrSchema.Wrapf("%s.%s: unknown display transform %q", m, name, spec.Display)
		}
		if spec.CSVValidate != "" {
			if f.validate, ok = transforms.Validate[spec.CSVValidate]; !ok {
				return nil, ErrSchema.Wrapf("%s.%s: unknown csvvalidate transform %q", m, name, spec.CSVValidate)
			}
		}
		s.index[name] = len(s.Fields)
		s.Fields = append(s.Fields, f)
	}
	return s, nil
}

func orText(name string) string {
	if name == "" {
		return TransformText
	}
	return name
}

// Field looks up a field by name
func (s *Schema) Field(name string) (*Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.Fields[i], true
}

// Has tells if the schema declares a field
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names of all fields, in declaration order
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// Required field names, in declaration order
func (s *Schema) Required() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required() {
			names = append(names, f.Name)
		}
	}
	return names
}

// Inheritable field names, in declaration order
func (s *Schema) Inheritable() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Inheritable {
			names = append(names, f.Name)
		}
	}
	return names
}

// normalize converts the maps decoded from yaml into string-keyed maps
func normalize(v interface{}) interface{} {
	switch value := v.(type) {
	case map[interface{}]interface{}:
		res := make(map[string]interface{}, len(value))
		for k, val := range value {
			res[cast.ToString(k)] = normalize(val)
		}
		return res
	case map[string]interface{}:
		res := make(map[string]interface{}, len(value))
		for k, val := range value {
			res[k] = normalize(val)
		}
		return res
	case []interface{}:
		res := make([]interface{}, len(value))
		for i, val := range value {
			res[i] = normalize(val)
		}
		return res
	default:
		return v
	}
}

// copyValue deep-copies maps and lists so that objects never share defaults
func copyValue(v interface{}) interface{} {
	return normalize(v)
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	}
	return false
}
