// Package index flattens objects into the documents consumed by a search index.
package index

import (
	"io"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/model"

	jsoniter "github.com/json-iterator/go"
)

// ErrIndex is returned when a document cannot be written
var ErrIndex = errors.New("cannot write index document")

var codec = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

// Document flattens the fields of an object, with fields derived from its identifier:
// model, parent_id, collection_id and signature_file.
func Document(o *model.Object) map[string]interface{} {
	doc := o.Dict()
	id := o.Identifier
	doc["id"] = id.ID
	doc["model"] = id.Model.String()
	doc["parent_id"] = id.ParentID(false)
	if cid, err := id.CollectionID(); err == nil {
		doc["collection_id"] = cid
	} else {
		doc["collection_id"] = ""
	}
	doc["signature_file"] = signature(o)
	return doc
}

// signature is the file chosen to represent an object, if any
func signature(o *model.Object) string {
	if v, ok := o.Get("signature_id"); ok {
		if s, isString := v.(string); isString && s != "" {
			return s
		}
	}
	if o.Model() == identifier.File {
		return o.ID()
	}
	return ""
}

// Action line of a bulk request
type action struct {
	Index actionMeta `json:"index"`
}

type actionMeta struct {
	Index string `json:"_index"`
	ID    string `json:"_id"`
}

// Writer writes documents as newline-delimited json bulk requests
type Writer struct {
	stream *jsoniter.Stream
	index  string
	count  int
}

// NewWriter for bulk requests targeting an index
func NewWriter(w io.Writer, index string) *Writer {
	return &Writer{
		stream: jsoniter.NewStream(codec, w, 4096),
		index:  index,
	}
}

// Write the action line and document of an object
func (w *Writer) Write(o *model.Object) error {
	w.stream.WriteVal(action{Index: actionMeta{Index: w.index, ID: o.ID()}})
	w.stream.WriteRaw("\n")
	w.stream.WriteVal(Document(o))
	w.stream.WriteRaw("\n")
	if w.stream.Error != nil {
		return ErrIndex.Wrap(w.stream.Error)
	}
	w.count++
	return nil
}

// Flush buffered documents
func (w *Writer) Flush() error {
	if err := w.stream.Flush(); err != nil {
		return ErrIndex.Wrap(err)
	}
	return nil
}

// Count of written documents
func (w *Writer) Count() int {
	return w.count
}
