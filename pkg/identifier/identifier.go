package identifier

import (
	"net/url"
	"path/filepath"
	"strings"
)

// Method tells how an Identifier was constructed
type Method string

// Construction methods
const (
	MethodID    Method = "id"
	MethodParts Method = "parts"
	MethodPath  Method = "path"
	MethodURL   Method = "url"
)

// Identifier is the parsed, canonical form of an object address.
//
// Identifiers are values: navigation returns new Identifiers and never alters the receiver.
type Identifier struct {
	Raw      interface{} // the string or map this identifier was built from
	Method   Method
	Model    Model
	Parts    Parts
	ID       string // always formatted from Model and Parts
	BasePath string // root directory of the repository checkout, may be empty
	Ext      string // extension captured from a path or url, if any
	Pattern  string // label of the matched pattern, empty when built from parts
}

// Option configures the construction of an Identifier
type Option func(*options)

type options struct {
	basepath string
}

// BasePath sets the root directory under which objects live.
// A base path captured from a parsed path always takes precedence.
func BasePath(basepath string) Option {
	return func(o *options) {
		o.basepath = basepath
	}
}

func makeOptions(opts []Option) options {
	var o options
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func cleanBasePath(basepath string) string {
	if basepath == "" {
		return ""
	}
	return filepath.Clean(basepath)
}

func build(raw interface{}, method Method, m Model, values map[string]interface{}, basepath, ext, label string) (Identifier, error) {
	parts, err := partsFor(m, values)
	if err != nil {
		return Identifier{}, err
	}
	id, err := formatID(m, parts)
	if err != nil {
		return Identifier{}, err
	}
	return Identifier{
		Raw:      raw,
		Method:   method,
		Model:    m,
		Parts:    parts,
		ID:       id,
		BasePath: cleanBasePath(basepath),
		Ext:      ext,
		Pattern:  label,
	}, nil
}

// FromID parses an id string such as "ddr-test-123-1"
func FromID(id string, opts ...Option) (Identifier, error) {
	o := makeOptions(opts)
	m, ok := matchFirst(idPatterns, strings.TrimSpace(id))
	if !ok {
		return Identifier{}, ErrMalformedID.Wrapf("%q", id)
	}
	return build(id, MethodID, m.model, m.values, o.basepath, "", m.label)
}

// FromParts builds an identifier from a model and its component values.
//
// Keys other than components are ignored. Numeric components may be given as
// integers or decimal strings.
func FromParts(m Model, parts map[string]interface{}, opts ...Option) (Identifier, error) {
	if !m.Valid() {
		return Identifier{}, ErrUnknownModel.Wrapf("%q", m)
	}
	o := makeOptions(opts)
	values := make(map[string]interface{}, len(parts))
	for k, v := range parts {
		if Component(k).known() {
			values[k] = v
		}
	}
	return build(parts, MethodParts, m, values, o.basepath, "", "")
}

// FromPath parses an absolute path to an object or to one of its additional files.
//
// The base path captured from p overrides any BasePath option.
func FromPath(p string, _ ...Option) (Identifier, error) {
	cleaned := filepath.ToSlash(filepath.Clean(strings.TrimSpace(p)))
	if !strings.HasPrefix(cleaned, "/") {
		return Identifier{}, ErrMalformedPath.Wrapf("%q is not absolute", p)
	}
	m, ok := matchFirst(pathPatterns, cleaned)
	if !ok {
		return Identifier{}, ErrMalformedPath.Wrapf("%q", p)
	}
	basepath := m.basepath
	if basepath == "" {
		basepath = "/"
	}
	return build(p, MethodPath, m.model, m.values, basepath, m.ext, m.label)
}

// FromURL parses the path of an editor or public url
func FromURL(u string, opts ...Option) (Identifier, error) {
	o := makeOptions(opts)
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return Identifier{}, ErrMalformedURL.Wrap(err)
	}
	m, ok := matchFirst(urlPatterns, parsed.Path)
	if !ok {
		return Identifier{}, ErrMalformedURL.Wrapf("%q", u)
	}
	return build(u, MethodURL, m.model, m.values, o.basepath, m.ext, m.label)
}

// New dispatches on the shape of its input:
//   - a map with a "model" key holds parts
//   - a string with a scheme, or a "/ui/" path, is a url
//   - a string starting and ending with "/" is a public url when it matches one
//   - any other string starting with "/" is a path
//   - any other string is an id
func New(v interface{}, opts ...Option) (Identifier, error) {
	switch raw := v.(type) {
	case Identifier:
		return raw, nil
	case map[string]interface{}:
		name, _ := raw["model"].(string)
		m, err := ParseModel(name)
		if err != nil {
			return Identifier{}, err
		}
		return FromParts(m, raw, opts...)
	case string:
		s := strings.TrimSpace(raw)
		switch {
		case strings.Contains(s, "://"), strings.HasPrefix(s, "/ui/"):
			return FromURL(s, opts...)
		case strings.HasPrefix(s, "/"):
			if strings.HasSuffix(s, "/") {
				if i, err := FromURL(s, opts...); err == nil {
					return i, nil
				}
			}
			return FromPath(s, opts...)
		default:
			return FromID(s, opts...)
		}
	default:
		return Identifier{}, ErrMalformedInput.Wrapf("cannot build an identifier from %T", v)
	}
}

// MustNew builds an identifier or panics. Use with literal values only.
func MustNew(v interface{}, opts ...Option) Identifier {
	i, err := New(v, opts...)
	if err != nil {
		panic(err)
	}
	return i
}

// IsAccess tells if the identifier was parsed from the path of the access copy of a file,
// rather than from the file itself. Both carry the extension of the copy in Ext.
func (i Identifier) IsAccess() bool {
	return i.Pattern == patternFileAccess
}

func (i Identifier) String() string {
	return i.ID
}

// Equal tells if two identifiers address the same object, whatever their base path.
func (i Identifier) Equal(other Identifier) bool {
	return i.Model == other.Model && i.Parts.trim(i.Model) == other.Parts.trim(other.Model)
}

// PathAbs returns the absolute path of the object, or of one of its additional files.
//
// It returns "" when the model has no such path. It fails with ErrMissingBasePath
// when the model has a location but no base path is known.
func (i Identifier) PathAbs(additional ...string) (string, error) {
	tpl, ok := pathTemplates[pathKey{i.Model, Abs}]
	if !ok {
		return "", nil
	}
	if i.BasePath == "" {
		return "", ErrMissingBasePath.Wrapf("%s %s", i.Model, i.ID)
	}
	return i.path(tpl, additional)
}

// PathRel returns the path of the object relative to its collection root.
//
// It returns "" when the model has no such path.
func (i Identifier) PathRel(additional ...string) (string, error) {
	tpl, ok := pathTemplates[pathKey{i.Model, Rel}]
	if !ok {
		return "", nil
	}
	return i.path(tpl, additional)
}

func (i Identifier) path(tpl string, additional []string) (string, error) {
	values := i.Parts.strings(i.Model)
	values["basepath"] = i.BasePath
	values["id"] = i.ID
	p, err := format(tpl, values)
	if err != nil {
		return "", err
	}
	p = filepath.Clean(p)
	if len(additional) == 0 || additional[0] == "" {
		return p, nil
	}
	name := additional[0]
	if _, known := additionalNames[name]; !known {
		return "", ErrUnknownAppend.Wrapf("%q", name)
	}
	extra, ok := additionalPaths[i.Model][name]
	if !ok {
		return "", nil
	}
	if fileNamed(i.Model) {
		fileName, err := format(extra, values)
		if err != nil {
			return "", err
		}
		return filepath.Join(filepath.Dir(p), fileName), nil
	}
	return filepath.Join(p, extra), nil
}

// URL returns the url path of the object in an editor or public context, or "" when there is none.
func (i Identifier) URL(context Context) string {
	tpl, ok := urlTemplates[urlKey{i.Model, context}]
	if !ok {
		return ""
	}
	u, err := format(tpl, i.Parts.strings(i.Model))
	if err != nil {
		return ""
	}
	return u
}
