// Package lister discovers the metadata documents of the descendants of an object.
package lister

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/spf13/afero"
)

// ErrList is returned when a directory cannot be walked
var ErrList = errors.New("cannot list metadata files")

// MetadataFiles walks the directory of the object at root and returns the paths of the
// json metadata documents of its descendants, sorted.
//
// root is the path of an object or of its metadata document. Its own document is not listed.
// Files which are not metadata documents of a known model are skipped.
func MetadataFiles(ctx context.Context, fs afero.Fs, root string) ([]string, error) {
	id, err := identifier.FromPath(root)
	if err != nil {
		return nil, err
	}
	dir, err := id.PathAbs()
	if err != nil {
		return nil, err
	}
	own, err := id.PathAbs(identifier.AddJSON)
	if err != nil {
		return nil, err
	}

	var res []string
	e := afero.Walk(fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err = ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		p = filepath.ToSlash(p)
		if p == own || !strings.HasSuffix(p, ".json") {
			return nil
		}
		found, err := identifier.FromPath(p)
		if err != nil {
			return nil
		}
		if found.Model == identifier.File && found.Ext != "json" {
			return nil
		}
		res = append(res, p)
		return nil
	})
	if e != nil {
		if os.IsNotExist(e) {
			return nil, nil
		}
		return nil, ErrList.Wrap(e)
	}
	sort.Strings(res)
	return res, nil
}

// Cache remembers listings. It is safe for concurrent use.
type Cache struct {
	fs      afero.Fs
	mx      sync.Mutex
	entries map[string][]string
}

// NewCache builds an empty listing cache over a file system
func NewCache(fs afero.Fs) *Cache {
	return &Cache{
		fs:      fs,
		entries: make(map[string][]string),
	}
}

// Get the listing below root. With refresh set, the directory is walked again.
func (c *Cache) Get(ctx context.Context, root string, refresh bool) ([]string, error) {
	key := filepath.ToSlash(filepath.Clean(root))
	c.mx.Lock()
	defer c.mx.Unlock()

	if cached, ok := c.entries[key]; ok && !refresh {
		return append([]string(nil), cached...), nil
	}
	files, err := MetadataFiles(ctx, c.fs, root)
	if err != nil {
		return nil, err
	}
	c.entries[key] = files
	return append([]string(nil), files...), nil
}

// Invalidate forgets all listings
func (c *Cache) Invalidate() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.entries = make(map[string][]string)
}
