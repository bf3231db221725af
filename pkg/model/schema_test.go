package model

import (
	"testing"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := DefaultRegistry()
	require.NoError(t, err)

	for _, m := range []identifier.Model{
		identifier.Repository, identifier.Organization, identifier.Collection, identifier.Entity, identifier.File,
	} {
		c, err := r.Class(m)
		require.NoErrorf(t, err, "for %s", m)
		assert.Equal(t, m, c.Schema.Model)
		assert.Equal(t, "id", c.Schema.Fields[0].Name)
	}

	_, err = r.Class(identifier.FileRole)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoClass))

	_, err = r.New(identifier.MustNew("ddr-test-123-1-master"))
	require.Error(t, err)
}

func TestSchemaQueries(t *testing.T) {
	s, err := MustDefaultRegistry().Schema(identifier.Collection)
	require.NoError(t, err)

	assert.Equal(t, []string{"status", "public", "rights"}, s.Inheritable())
	assert.Equal(t, []string{"id", "status", "public", "title", "rights"}, s.Required())

	f, ok := s.Field("public")
	require.True(t, ok)
	assert.Equal(t, "Privacy level", f.Label())
	assert.Equal(t, "public", f.Vocab)
	assert.True(t, f.Valid(1, []string{"0", "1"}))
	assert.False(t, f.Valid(2, []string{"0", "1"}))
	assert.False(t, f.Valid("", nil), "required")

	_, ok = s.Field("nope")
	assert.False(t, ok)
}

func TestParseSchemaErrors(t *testing.T) {
	for _, toPin := range []struct {
		name string
		yaml string
	}{
		{name: "bad model", yaml: "model: volume\nfields: []"},
		{name: "no name", yaml: "model: collection\nfields:\n  - default: x"},
		{name: "duplicate", yaml: "model: collection\nfields:\n  - name: id\n  - name: id"},
		{name: "unknown csvload", yaml: "model: collection\nfields:\n  - name: id\n    csvload: magic"},
		{name: "unknown csvdump", yaml: "model: collection\nfields:\n  - name: id\n    csvdump: magic"},
		{name: "unknown csvvalidate", yaml: "model: collection\nfields:\n  - name: id\n    csvvalidate: magic"},
		{name: "unknown display", yaml: "model: collection\nfields:\n  - name: id\n    display: magic"},
		{name: "not yaml", yaml: "model: [collection"},
	} {
		testcase := toPin
		t.Run(testcase.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(testcase.yaml), DefaultTransforms())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchema))
		})
	}
}

func TestSchemaDefaults(t *testing.T) {
	s, err := ParseSchema([]byte(`
model: entity
fields:
  - name: id
  - name: extra
    default:
      nested:
        key: value
`), DefaultTransforms())
	require.NoError(t, err)

	f, _ := s.Field("id")
	assert.Equal(t, "", f.DefaultValue())

	f, _ = s.Field("extra")
	assert.Equal(t, map[string]interface{}{"nested": map[string]interface{}{"key": "value"}}, f.DefaultValue())
}

func TestLoadRegistryOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/schemas/collection.yaml", []byte(`
model: collection
fields:
  - name: id
  - name: title
    inheritable: true
`), 0644))

	r, err := LoadRegistry(fs, "/schemas")
	require.NoError(t, err)

	s, err := r.Schema(identifier.Collection)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "title"}, s.Names())

	s, err = r.Schema(identifier.Entity)
	require.NoError(t, err)
	assert.Contains(t, s.Names(), "genre", "other models keep the embedded schema")

	require.NoError(t, afero.WriteFile(fs, "/mismatch/entity.yaml", []byte("model: collection\nfields: []"), 0644))
	_, err = LoadRegistry(fs, "/mismatch")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchema))
}
