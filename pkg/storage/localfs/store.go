package localfs

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oneconcern/ddr/pkg/storage"
	"github.com/oneconcern/ddr/pkg/storage/status"
	"github.com/spf13/afero"
)

// New creates a new local file system backed store.
//
// When fs is nil, the OS file system is used.
func New(fs afero.Fs) storage.Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &localFS{
		fs: fs,
	}
}

type localFS struct {
	fs afero.Fs
}

func maybeInvalidKey(key string) error {
	if key == "" || !filepath.IsAbs(key) || filepath.Clean(key) != key {
		return status.ErrInvalidKey.Wrapf("%q", key)
	}
	return nil
}

func (l *localFS) Has(ctx context.Context, key string) (bool, error) {
	if err := maybeInvalidKey(key); err != nil {
		return false, err
	}
	fi, err := l.fs.Stat(key)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, status.ErrStorage.Wrap(err)
	}
	return !fi.IsDir(), nil
}

func (l *localFS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	has, err := l.Has(ctx, key)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, status.ErrNotExists.Wrapf("%q", key)
	}
	f, err := l.fs.Open(key)
	if err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}
	return f, nil
}

// Put writes the whole content in a staging file next to the target, then renames it into place.
// Exclusive puts create the target directly with O_EXCL.
func (l *localFS) Put(ctx context.Context, key string, source io.Reader, exclusive bool) error {
	if err := maybeInvalidKey(key); err != nil {
		return err
	}
	if err := l.fs.MkdirAll(filepath.Dir(key), 0755); err != nil {
		return status.ErrStorage.Wrapf("ensuring directories for %q: %v", key, err)
	}
	if exclusive {
		target, err := l.fs.OpenFile(key, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
		if err != nil {
			if os.IsExist(err) {
				return status.ErrExists.Wrapf("%q", key)
			}
			return status.ErrStorage.Wrapf("create record for %q: %v", key, err)
		}
		if _, err = io.Copy(target, source); err != nil {
			_ = target.Close()
			return status.ErrStorage.Wrapf("write record for %q: %v", key, err)
		}
		return target.Close()
	}

	stage := key + ".put-stage"
	target, err := l.fs.OpenFile(stage, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return status.ErrStorage.Wrapf("create record for %q: %v", key, err)
	}
	if _, err = io.Copy(target, source); err != nil {
		_ = target.Close()
		_ = l.fs.Remove(stage)
		return status.ErrStorage.Wrapf("write record for %q: %v", key, err)
	}
	if err = target.Close(); err != nil {
		return status.ErrStorage.Wrap(err)
	}
	if err = l.fs.Rename(stage, key); err != nil {
		return status.ErrStorage.Wrapf("rename record for %q: %v", key, err)
	}
	return nil
}

func (l *localFS) Delete(ctx context.Context, key string) error {
	if err := maybeInvalidKey(key); err != nil {
		return err
	}
	if err := l.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return status.ErrStorage.Wrapf("removing %q: %v", key, err)
	}
	return nil
}

// Keys walks the prefix directory. A missing directory yields no keys.
func (l *localFS) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := maybeInvalidKey(prefix); err != nil {
		return nil, err
	}
	exists, err := afero.DirExists(l.fs, prefix)
	if err != nil {
		return nil, status.ErrStorage.Wrap(err)
	}
	if !exists {
		return nil, nil
	}
	var res []string
	e := afero.Walk(l.fs, prefix, func(path string, info os.FileInfo, err error) error {
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
		if strings.HasSuffix(path, ".put-stage") {
			return nil
		}
		res = append(res, filepath.ToSlash(path))
		return nil
	})
	if e != nil {
		return nil, status.ErrStorage.Wrap(e)
	}
	sort.Strings(res)
	return res, nil
}

func (l *localFS) String() string {
	const localfs = "localfs"
	switch fs := l.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("/")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	case *afero.MemMapFs:
		return localfs + "@memory"
	default:
		return localfs
	}
}

// WriteString is a convenience used by tests and tools
func WriteString(ctx context.Context, store storage.Store, key, content string) error {
	return store.Put(ctx, key, bytes.NewBufferString(content), storage.OverWrite)
}
