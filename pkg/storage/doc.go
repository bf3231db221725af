// Package storage provides the interface to read and write repository files.
//
// Keys are absolute, slash-separated paths as produced by the identifier package.
// The localfs subpackage implements the interface over an afero file system.
package storage
