// Package lock implements the advisory lock of a collection checkout.
//
// A collection is locked by creating its lock file with some text, and unlocked by
// removing this file when it still holds the same text. Locks are cooperative: nothing
// prevents a process which ignores them from writing to the collection.
// A stale lock must be removed by hand.
package lock

import (
	"bytes"
	"context"
	"sort"
	"strings"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/storage"
	"github.com/oneconcern/ddr/pkg/storage/status"
	"github.com/segmentio/ksuid"
)

var (
	// ErrLocked is returned when acquiring a lock which is already held
	ErrLocked = errors.New("collection is locked")

	// ErrNotLocked is returned when releasing a lock which is not held, or held by someone else
	ErrNotLocked = errors.New("collection is not locked with this text")
)

// NewToken generates a unique lock text
func NewToken() string {
	return ksuid.New().String()
}

func lockPath(id identifier.Identifier) (string, error) {
	c, err := id.Collection()
	if err != nil {
		return "", err
	}
	return c.PathAbs(identifier.AddLock)
}

// Lock the collection of id with some text. An empty text is replaced by a new token.
// The text which holds the lock is returned.
func Lock(ctx context.Context, store storage.Store, id identifier.Identifier, text string) (string, error) {
	p, err := lockPath(id)
	if err != nil {
		return "", err
	}
	if text == "" {
		text = NewToken()
	}
	err = store.Put(ctx, p, bytes.NewBufferString(text), storage.NoOverWrite)
	if err != nil {
		if errors.Is(err, status.ErrExists) {
			held, _ := Locked(ctx, store, id)
			return "", ErrLocked.Wrapf("%s held by %q", p, held)
		}
		return "", err
	}
	return text, nil
}

// Unlock the collection of id, if the lock holds text
func Unlock(ctx context.Context, store storage.Store, id identifier.Identifier, text string) error {
	p, err := lockPath(id)
	if err != nil {
		return err
	}
	held, err := Locked(ctx, store, id)
	if err != nil {
		return err
	}
	if held == "" || held != strings.TrimSpace(text) {
		return ErrNotLocked.Wrapf("%s", p)
	}
	return store.Delete(ctx, p)
}

// Locked returns the text of the lock of the collection of id, or "" when it is not locked
func Locked(ctx context.Context, store storage.Store, id identifier.Identifier) (string, error) {
	p, err := lockPath(id)
	if err != nil {
		return "", err
	}
	b, err := storage.ReadAll(ctx, store, p)
	if err != nil {
		if errors.Is(err, status.ErrNotExists) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// collections returns the distinct collections of ids, sorted by id
func collections(ids []identifier.Identifier) ([]identifier.Identifier, error) {
	seen := make(map[string]struct{}, len(ids))
	res := make([]identifier.Identifier, 0, len(ids))
	for _, id := range ids {
		c, err := id.Collection()
		if err != nil {
			return nil, err
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

// LockAll locks every collection of ids with the same text, in id order.
// When one collection cannot be locked, the locks acquired so far are released.
func LockAll(ctx context.Context, store storage.Store, ids []identifier.Identifier, text string) (string, error) {
	targets, err := collections(ids)
	if err != nil {
		return "", err
	}
	if text == "" {
		text = NewToken()
	}
	for i, c := range targets {
		if _, err = Lock(ctx, store, c, text); err != nil {
			for _, acquired := range targets[:i] {
				_ = Unlock(ctx, store, acquired, text)
			}
			return "", err
		}
	}
	return text, nil
}

// UnlockAll releases the locks of every collection of ids held with text.
// All collections are attempted: failures are reported together.
func UnlockAll(ctx context.Context, store storage.Store, ids []identifier.Identifier, text string) error {
	targets, err := collections(ids)
	if err != nil {
		return err
	}
	var errs error
	for _, c := range targets {
		errs = errors.Append(errs, Unlock(ctx, store, c, text))
	}
	return errs
}
