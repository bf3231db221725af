// Package model binds the metadata of archive objects to the field schemas of their models.
//
// Each model which is persisted (repository, organization, collection, entity, file)
// declares an ordered list of fields in a yaml schema. The schemas shipped with this
// package are embedded and may be replaced from a directory with LoadRegistry.
//
// Objects are stored as a json list of single-key objects, one per field in schema order,
// after a header describing the software which wrote the document:
//
//	[
//	    {"application": "...", "app_commit": "...", ...},
//	    {"id": "ddr-test-123"},
//	    {"record_created": "2019-01-02T03:04:05"},
//	    ...
//	]
//
// This keeps successive versions of a document easy to diff.
//
// Fields may declare transforms by name, to load and dump csv cells, validate values
// against a controlled vocabulary, or render values for humans. Names are resolved
// once when the schema is loaded.
package model
