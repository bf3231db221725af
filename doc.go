/*
Package ddr provides tooling to manage the metadata of a digital archive.

Objects of the archive are organized as repository > organization > collection > entity > file.
Each collection is a version controlled checkout holding one json document per object.

The main packages are:

  - pkg/identifier parses and formats the ids, paths and urls of objects
  - pkg/model binds documents to the fields declared by schemas
  - pkg/inherit propagates inheritable fields down the hierarchy
  - pkg/batch validates and imports csv files

The ddr command line tool is in cmd/ddr.
*/
package ddr
