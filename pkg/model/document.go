package model

import (
	"time"

	"github.com/oneconcern/ddr/pkg/identifier"

	jsoniter "github.com/json-iterator/go"
)

// codec writes documents with sorted keys and keeps numbers as they were read
var codec = jsoniter.Config{
	EscapeHTML:    false,
	SortMapKeys:   true,
	UseNumber:     true,
	CaseSensitive: true,
}.Froze()

const (
	indent   = "    "
	filesKey = "files"
)

// Header is the leading entry of a metadata document. It describes the software which wrote it.
type Header struct {
	Application  string
	AppCommit    string
	AppRelease   string
	AnnexVersion string
	Timestamp    time.Time
}

// Clock returns the current time. Tests inject a fixed one.
type Clock func() time.Time

// NewHeader stamps a header with the time given by clock, or the current time
func NewHeader(application, commit, release, annex string, clock Clock) Header {
	if clock == nil {
		clock = time.Now
	}
	return Header{
		Application:  application,
		AppCommit:    commit,
		AppRelease:   release,
		AnnexVersion: annex,
		Timestamp:    clock().UTC(),
	}
}

func (h Header) entry() map[string]interface{} {
	return map[string]interface{}{
		"application":       h.Application,
		"app_commit":        h.AppCommit,
		"app_release":       h.AppRelease,
		"git-annex version": h.AnnexVersion,
		"timestamp":         h.Timestamp.Format(DatetimeFormat),
	}
}

// Dump serializes the object as a list of single-key objects, in schema order,
// after the header. Entities carry a trailing files entry.
func (o *Object) Dump(h Header) ([]byte, error) {
	doc := make([]interface{}, 0, len(o.schema.Fields)+2)
	doc = append(doc, h.entry())
	for _, f := range o.schema.Fields {
		doc = append(doc, map[string]interface{}{f.Name: o.values[f.Name]})
	}
	if o.Identifier.Model == identifier.Entity {
		files := make([]interface{}, 0, len(o.Files))
		for _, file := range o.Files {
			files = append(files, file)
		}
		doc = append(doc, map[string]interface{}{filesKey: files})
	}
	b, err := codec.MarshalIndent(doc, "", indent)
	if err != nil {
		return nil, ErrMalformedDocument.Wrap(err)
	}
	return b, nil
}

// Load sets the object fields from a metadata document.
//
// Declared fields absent from the document get their default value. Unknown keys are kept
// apart, see Extra, and never dumped.
// The header is skipped.
func (o *Object) Load(data []byte) error {
	var doc []map[string]interface{}
	if err := codec.Unmarshal(data, &doc); err != nil {
		return ErrMalformedDocument.Wrap(err)
	}
	o.reset()
	for i, entry := range doc {
		if i == 0 && o.isHeader(entry) {
			continue
		}
		for k, v := range entry {
			switch {
			case k == filesKey && o.Identifier.Model == identifier.Entity:
				files, err := fileDescriptors(v)
				if err != nil {
					return err
				}
				o.Files = files
			case k == "id":
				// the identifier always wins
			case o.schema.Has(k):
				o.values[k] = v
			default:
				o.extra[k] = v
			}
		}
	}
	return nil
}

// isHeader tells if the first entry of a document is the software header rather than a field
func (o *Object) isHeader(entry map[string]interface{}) bool {
	if len(entry) != 1 {
		return true
	}
	for k := range entry {
		return !o.schema.Has(k) && k != filesKey
	}
	return true
}

func fileDescriptors(v interface{}) ([]map[string]interface{}, error) {
	list, ok := v.([]interface{})
	if !ok {
		if v == nil {
			return []map[string]interface{}{}, nil
		}
		return nil, ErrMalformedDocument.Wrapf("files should be a list, got %T", v)
	}
	res := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, ErrMalformedDocument.Wrapf("file descriptor should be an object, got %T", item)
		}
		res = append(res, m)
	}
	return res, nil
}

// Equal tells if two field values serialize the same way
func Equal(a, b interface{}) bool {
	ja, erra := codec.Marshal(a)
	jb, errb := codec.Marshal(b)
	if erra != nil || errb != nil {
		return false
	}
	return string(ja) == string(jb)
}
