package lister

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupTree(t testing.TB) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range []string{
		"/base/ddr-test-1/collection.json",
		"/base/ddr-test-1/changelog",
		"/base/ddr-test-1/.git/config.json",
		"/base/ddr-test-1/files/ddr-test-1-1/entity.json",
		"/base/ddr-test-1/files/ddr-test-1-1/mets.xml",
		"/base/ddr-test-1/files/ddr-test-1-1/files/ddr-test-1-1-master-a1b2c3.json",
		"/base/ddr-test-1/files/ddr-test-1-1/files/ddr-test-1-1-master-a1b2c3",
		"/base/ddr-test-1/files/ddr-test-1-1/files/ddr-test-1-1-master-a1b2c3-a.jpg",
		"/base/ddr-test-1/files/ddr-test-1-2/entity.json",
		"/base/ddr-test-1/files/ddr-test-1-2/notes.json",
		"/base/ddr-test-2/collection.json",
	} {
		require.NoError(t, afero.WriteFile(fs, p, []byte("[]"), 0644))
	}
	return fs
}

func TestMetadataFiles(t *testing.T) {
	fs := setupTree(t)
	ctx := context.Background()

	files, err := MetadataFiles(ctx, fs, "/base/ddr-test-1/collection.json")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/base/ddr-test-1/files/ddr-test-1-1/entity.json",
		"/base/ddr-test-1/files/ddr-test-1-1/files/ddr-test-1-1-master-a1b2c3.json",
		"/base/ddr-test-1/files/ddr-test-1-2/entity.json",
	}, files)

	files, err = MetadataFiles(ctx, fs, "/base/ddr-test-1/files/ddr-test-1-1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/base/ddr-test-1/files/ddr-test-1-1/files/ddr-test-1-1-master-a1b2c3.json",
	}, files)

	files, err = MetadataFiles(ctx, fs, "/base/ddr-test-3")
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = MetadataFiles(ctx, fs, "relative")
	require.Error(t, err)
}

func TestCache(t *testing.T) {
	fs := setupTree(t)
	ctx := context.Background()
	c := NewCache(fs)

	files, err := c.Get(ctx, "/base/ddr-test-1", false)
	require.NoError(t, err)
	require.Len(t, files, 3)

	require.NoError(t, afero.WriteFile(fs, "/base/ddr-test-1/files/ddr-test-1-3/entity.json", []byte("[]"), 0644))

	files, err = c.Get(ctx, "/base/ddr-test-1", false)
	require.NoError(t, err)
	assert.Len(t, files, 3, "cached listing")

	files, err = c.Get(ctx, "/base/ddr-test-1", true)
	require.NoError(t, err)
	assert.Len(t, files, 4, "refreshed listing")

	require.NoError(t, fs.Remove("/base/ddr-test-1/files/ddr-test-1-3/entity.json"))
	c.Invalidate()
	files, err = c.Get(ctx, "/base/ddr-test-1/", false)
	require.NoError(t, err)
	assert.Len(t, files, 3)
}
