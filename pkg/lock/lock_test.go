package lock

import (
	"context"
	"testing"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/storage"
	"github.com/oneconcern/ddr/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockCycle(t *testing.T) {
	ctx := context.Background()
	store := localfs.New(afero.NewMemMapFs())
	entity := identifier.MustNew("ddr-test-123-1", identifier.BasePath("/base"))

	held, err := Locked(ctx, store, entity)
	require.NoError(t, err)
	assert.Empty(t, held)

	text, err := Lock(ctx, store, entity, "batch import")
	require.NoError(t, err)
	assert.Equal(t, "batch import", text)

	b, err := storage.ReadAll(ctx, store, "/base/ddr-test-123/lock")
	require.NoError(t, err)
	assert.Equal(t, "batch import", string(b), "the lock belongs to the collection")

	_, err = Lock(ctx, store, identifier.MustNew("ddr-test-123", identifier.BasePath("/base")), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked))
	assert.Contains(t, err.Error(), "batch import")

	err = Unlock(ctx, store, entity, "someone else")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotLocked))

	require.NoError(t, Unlock(ctx, store, entity, "batch import"))
	held, err = Locked(ctx, store, entity)
	require.NoError(t, err)
	assert.Empty(t, held)

	err = Unlock(ctx, store, entity, "batch import")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotLocked))
}

func TestLockToken(t *testing.T) {
	ctx := context.Background()
	store := localfs.New(afero.NewMemMapFs())
	c := identifier.MustNew("ddr-test-123", identifier.BasePath("/base"))

	token, err := Lock(ctx, store, c, "")
	require.NoError(t, err)
	assert.Len(t, token, 27)

	held, err := Locked(ctx, store, c)
	require.NoError(t, err)
	assert.Equal(t, token, held)
	require.NoError(t, Unlock(ctx, store, c, token))
	assert.NotEqual(t, NewToken(), NewToken())
}

func TestLockAboveCollection(t *testing.T) {
	ctx := context.Background()
	store := localfs.New(afero.NewMemMapFs())

	_, err := Lock(ctx, store, identifier.MustNew("ddr-test", identifier.BasePath("/base")), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, identifier.ErrIllegalNavigation))

	_, err = Lock(ctx, store, identifier.MustNew("ddr-test-123"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, identifier.ErrMissingBasePath))
}

func TestLockAll(t *testing.T) {
	ctx := context.Background()
	store := localfs.New(afero.NewMemMapFs())
	ids := []identifier.Identifier{
		identifier.MustNew("ddr-test-124-1", identifier.BasePath("/base")),
		identifier.MustNew("ddr-test-123-1", identifier.BasePath("/base")),
		identifier.MustNew("ddr-test-123-2", identifier.BasePath("/base")),
	}

	token, err := LockAll(ctx, store, ids, "")
	require.NoError(t, err)
	for _, cid := range []string{"ddr-test-123", "ddr-test-124"} {
		held, err := Locked(ctx, store, identifier.MustNew(cid, identifier.BasePath("/base")))
		require.NoError(t, err)
		assert.Equal(t, token, held, "every collection is locked")
	}

	require.NoError(t, UnlockAll(ctx, store, ids, token))
	held, err := Locked(ctx, store, ids[0])
	require.NoError(t, err)
	assert.Empty(t, held)
}

func TestLockAllReleasesOnConflict(t *testing.T) {
	ctx := context.Background()
	store := localfs.New(afero.NewMemMapFs())
	first := identifier.MustNew("ddr-test-123-1", identifier.BasePath("/base"))
	second := identifier.MustNew("ddr-test-124-1", identifier.BasePath("/base"))

	_, err := Lock(ctx, store, second, "someone else")
	require.NoError(t, err)

	_, err = LockAll(ctx, store, []identifier.Identifier{first, second}, "batch")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked))

	held, err := Locked(ctx, store, first)
	require.NoError(t, err)
	assert.Empty(t, held, "locks acquired before the conflict are released")
	held, err = Locked(ctx, store, second)
	require.NoError(t, err)
	assert.Equal(t, "someone else", held)

	err = UnlockAll(ctx, store, []identifier.Identifier{first, second}, "someone else")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotLocked), "the unlocked collection is reported")
	held, err = Locked(ctx, store, second)
	require.NoError(t, err)
	assert.Empty(t, held, "other collections are still released")
}
