// Package identifier converts between the textual forms of archive object identifiers.
//
// Every object in a repository is addressed by a dash-delimited id such as
// "ddr-test-123-1-master-a1b2c3d4e5". The same object can also be reached by its
// location on disk or by a URL. This package parses any of these forms into an
// Identifier, and formats an Identifier back into any of them:
//
//	id:   ddr-test-123-1
//	path: {basepath}/ddr-test-123/files/ddr-test-123-1
//	url:  /ui/ddr-test-123-1/ or /ddr/test/123/1/
//
// The object models form a fixed linear hierarchy:
//
//	repository > organization > collection > entity > file-role > file
//
// A file-role is a stub for a file which has no content hash yet. Navigation
// methods take a stubs flag to decide whether stubs (and the levels above a
// collection checkout) are part of the walk.
//
// Parsing tries the patterns of a table in order and keeps the first match:
// the most specific patterns are listed first.
package identifier
