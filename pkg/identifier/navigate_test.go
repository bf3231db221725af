package identifier

import (
	"sort"
	"testing"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParent(t *testing.T) {
	i, err := FromID("ddr-test-123-1-master-abc1234567", BasePath("/tmp"))
	require.NoError(t, err)

	assert.Equal(t, "ddr-test-123-1", i.ParentID(false))

	stub, ok := i.Parent(true)
	require.True(t, ok)
	assert.Equal(t, "ddr-test-123-1-master", stub.ID)
	assert.Equal(t, FileRole, stub.Model)
	assert.Equal(t, "/tmp", stub.BasePath)
	assert.Equal(t, "ddr-test-123-1", stub.ParentID(true))
	assert.Equal(t, "ddr-test-123-1", stub.ParentID(false))

	parentPath, err := i.ParentPath(false)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ddr-test-123/files/ddr-test-123-1", parentPath)

	c, err := FromID("ddr-test-123")
	require.NoError(t, err)
	_, ok = c.Parent(false)
	assert.False(t, ok)
	assert.Empty(t, c.ParentID(false))
	assert.Equal(t, "ddr-test", c.ParentID(true))

	p, err := c.ParentPath(false)
	require.NoError(t, err)
	assert.Empty(t, p)

	r, err := FromID("ddr")
	require.NoError(t, err)
	assert.Empty(t, r.ParentID(true))
}

func TestLineage(t *testing.T) {
	i, err := FromID("ddr-test-123-1-master-abc1234567")
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"ddr-test-123-1-master-abc1234567", "ddr-test-123-1", "ddr-test-123"},
		Identifiers(i.Lineage(false)).IDs())

	assert.Equal(t,
		[]string{"ddr-test-123-1-master-abc1234567", "ddr-test-123-1-master", "ddr-test-123-1", "ddr-test-123", "ddr-test", "ddr"},
		Identifiers(i.Lineage(true)).IDs())

	r, err := FromID("ddr")
	require.NoError(t, err)
	assert.Len(t, r.Lineage(true), 1)
}

func TestChild(t *testing.T) {
	c, err := FromID("ddr-test-123", BasePath("/tmp"))
	require.NoError(t, err)

	e, err := c.Child(Entity, map[string]interface{}{"eid": 5})
	require.NoError(t, err)
	assert.Equal(t, "ddr-test-123-5", e.ID)
	assert.Equal(t, "/tmp", e.BasePath)
	assert.Equal(t, "ddr-test-123", c.ID, "receiver is left untouched")

	_, err = c.Child(File, map[string]interface{}{"eid": 5, "role": "master", "sha1": "abc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalNavigation))

	_, err = c.Child(Model("folder"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownModel))

	f, err := e.Child(File, map[string]interface{}{"role": "master", "sha1": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "ddr-test-123-5-master-abc", f.ID)

	stub, err := e.Child(FileRole, map[string]interface{}{"role": "mezzanine"})
	require.NoError(t, err)
	assert.Equal(t, "ddr-test-123-5-mezzanine", stub.ID)

	f, err = stub.Child(File, map[string]interface{}{"sha1": "def"})
	require.NoError(t, err)
	assert.Equal(t, "ddr-test-123-5-mezzanine-def", f.ID)

	_, err = e.Child(Entity, map[string]interface{}{"eid": 6})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalNavigation))

	_, err = f.Child(File, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIllegalNavigation))

	_, err = e.Child(File, map[string]interface{}{"role": "master"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedParts))
}

func TestCollection(t *testing.T) {
	for _, id := range []string{"ddr-test-123", "ddr-test-123-1", "ddr-test-123-1-master", "ddr-test-123-1-master-abc"} {
		i, err := FromID(id, BasePath("/tmp"))
		require.NoError(t, err)
		cid, err := i.CollectionID()
		require.NoError(t, err)
		assert.Equal(t, "ddr-test-123", cid)
		p, err := i.CollectionPath()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/ddr-test-123", p)
	}

	for _, id := range []string{"ddr-test", "ddr"} {
		i, err := FromID(id, BasePath("/tmp"))
		require.NoError(t, err)
		_, err = i.CollectionID()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIllegalNavigation))
		_, err = i.CollectionPath()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIllegalNavigation))
	}
}

func TestModelHierarchy(t *testing.T) {
	assert.Equal(t, []Model{Organization}, Repository.Children())
	assert.Equal(t, []Model{Collection}, Organization.Children())
	assert.Equal(t, []Model{Entity}, Collection.Children())
	assert.Equal(t, []Model{FileRole, File}, Entity.Children())
	assert.Equal(t, []Model{File}, FileRole.Children())
	assert.Empty(t, File.Children())

	assert.True(t, FileRole.IsStub())
	assert.False(t, File.IsStub())
	assert.Equal(t, []Component{Repo, Org, CID, EID}, Entity.Components())

	_, err := ParseModel("item")
	require.Error(t, err)
	m, err := ParseModel("file-role")
	require.NoError(t, err)
	assert.Equal(t, FileRole, m)
}

func TestSort(t *testing.T) {
	var ids []Identifier
	for _, s := range []string{"ddr-test-123-10", "ddr-test-123-2", "ddr-test-123", "ddr-test-123-2-master-abc", "ddr-test-12"} {
		i, err := FromID(s)
		require.NoError(t, err)
		ids = append(ids, i)
	}
	Sort(ids)
	assert.True(t, sort.IsSorted(Identifiers(ids)))
	assert.Equal(t,
		[]string{"ddr-test-12", "ddr-test-123", "ddr-test-123-2", "ddr-test-123-2-master-abc", "ddr-test-123-10"},
		Identifiers(ids).IDs())
}
