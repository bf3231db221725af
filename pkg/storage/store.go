package storage

import (
	"context"
	"io"
	"io/ioutil"
)

// Put modes
const (
	OverWrite   = false
	NoOverWrite = true
)

// Store implementations know how to read and write files of a repository checkout.
//
// Implementations of this interface are assumed to be fairly simple.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	// Put writes an object. With exclusive set, it fails with status.ErrExists when the key is present.
	Put(context.Context, string, io.Reader, bool) error
	Delete(context.Context, string) error
	// Keys lists all object keys below a prefix directory, in lexicographic order.
	Keys(context.Context, string) ([]string, error)
}

// ReadAll fetches the full content of an object
func ReadAll(ctx context.Context, store Store, key string) ([]byte, error) {
	reader, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return ioutil.ReadAll(reader)
}
