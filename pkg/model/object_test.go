package model

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "/var/www/media/ddr"

func fixedClock() time.Time {
	return time.Date(2019, 3, 4, 5, 6, 7, 0, time.UTC)
}

func testHeader() Header {
	return NewHeader("https://github.com/oneconcern/ddr", "abc123", "0.1.0", "8.20200226", fixedClock)
}

func testObject(t testing.TB, id string) *Object {
	t.Helper()
	o, err := MustDefaultRegistry().New(identifier.MustNew(id, identifier.BasePath(testBase)))
	require.NoError(t, err)
	return o
}

func TestNewObject(t *testing.T) {
	o := testObject(t, "ddr-test-123")

	id, ok := o.Get("id")
	require.True(t, ok)
	assert.Equal(t, "ddr-test-123", id)

	status, _ := o.Get("status")
	assert.Equal(t, "inprocess", status)
	public, _ := o.Get("public")
	assert.Equal(t, 0, public)
	language, _ := o.Get("language")
	assert.Equal(t, []interface{}{}, language)

	f := testObject(t, "ddr-test-123-1-master-a1b2c3d4e5")
	role, _ := f.Get("role")
	sha1, _ := f.Get("sha1")
	assert.Equal(t, "master", role)
	assert.Equal(t, "a1b2c3d4e5", sha1)

	e := testObject(t, "ddr-test-123-1")
	assert.NotNil(t, e.Files)
	assert.Empty(t, e.Files)
}

func TestDefaultsAreNotShared(t *testing.T) {
	a := testObject(t, "ddr-test-123-1")
	b := testObject(t, "ddr-test-123-2")

	la, _ := a.Get("language")
	la = append(la.([]interface{}), "en")
	require.NoError(t, a.Set("language", la))

	lb, _ := b.Get("language")
	assert.Empty(t, lb)
}

func TestSet(t *testing.T) {
	o := testObject(t, "ddr-test-123")

	require.NoError(t, o.Set("title", "A collection"))
	v, _ := o.Get("title")
	assert.Equal(t, "A collection", v)

	err := o.Set("nope", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestFields(t *testing.T) {
	o := testObject(t, "ddr-test-123")
	fields := o.Fields()
	require.Len(t, fields, len(o.Schema().Fields))
	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, "record_created", fields[1].Name)

	d := o.Dict()
	assert.Len(t, d, len(fields))
	assert.Equal(t, "ddr-test-123", d["id"])
}

func TestDumpOrder(t *testing.T) {
	o := testObject(t, "ddr-test-123")
	require.NoError(t, o.Set("title", "A collection"))

	b, err := o.Dump(testHeader())
	require.NoError(t, err)
	doc := string(b)

	assert.True(t, strings.HasPrefix(doc, "[\n    {\n        \"app_commit\": \"abc123\","), doc)
	assert.Contains(t, doc, `"timestamp": "2019-03-04T05:06:07"`)

	last := -1
	for _, name := range o.Schema().Names() {
		pos := strings.Index(doc, `"`+name+`":`)
		require.Truef(t, pos > last, "field %s is out of order", name)
		last = pos
	}
}

func TestDumpIdempotence(t *testing.T) {
	for _, id := range []string{"ddr-test-123", "ddr-test-123-1", "ddr-test-123-1-master-a1b2c3d4e5"} {
		o := testObject(t, id)
		require.NoError(t, o.Set("public", 1))
		if o.Schema().Has("title") {
			require.NoError(t, o.Set("title", "Café <Nikkei> & co"))
		}
		if o.Schema().Has("language") {
			require.NoError(t, o.Set("language", []string{"eng", "jpn"}))
		}
		if o.Schema().Has("creators") {
			require.NoError(t, o.Set("creators", []interface{}{
				map[string]interface{}{"namepart": "Doe, Jane", "role": "author"},
			}))
		}
		if o.Model() == identifier.Entity {
			o.Files = append(o.Files, map[string]interface{}{"id": id + "-master-a1b2c3d4e5", "size": 1024})
		}

		first, err := o.Dump(testHeader())
		require.NoError(t, err)

		reloaded := testObject(t, id)
		require.NoError(t, reloaded.Load(first))
		second, err := reloaded.Dump(testHeader())
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))

		again := testObject(t, id)
		require.NoError(t, again.Load(second))
		third, err := again.Dump(testHeader())
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, third))
	}
}

func TestLoad(t *testing.T) {
	const doc = `[
  {"application": "somewhere", "git-annex version": "5"},
  {"id": "ddr-other-1"},
  {"title": "Loaded"},
  {"unexpected": "ignored"},
  {"public": 1}
]`
	o := testObject(t, "ddr-test-123")
	require.NoError(t, o.Load([]byte(doc)))

	id, _ := o.Get("id")
	assert.Equal(t, "ddr-test-123", id, "the identifier wins over the document")
	title, _ := o.Get("title")
	assert.Equal(t, "Loaded", title)
	status, _ := o.Get("status")
	assert.Equal(t, "inprocess", status, "missing fields get their default")
	_, ok := o.Get("unexpected")
	assert.False(t, ok)
	assert.Equal(t, map[string]interface{}{"unexpected": "ignored"}, o.Extra())
	assert.NotContains(t, o.Dict(), "unexpected")
	public, _ := o.Get("public")
	assert.True(t, Equal(1, public))

	err := o.Load([]byte(`{"id": "not a list"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))
}

func TestLoadInheritFlags(t *testing.T) {
	const doc = `[
  {"application": "somewhere"},
  {"public": 1},
  {"public_inherit": true},
  {"rights": "pcc"},
  {"rights_inherit": "on"}
]`
	o := testObject(t, "ddr-test-123")
	require.NoError(t, o.Load([]byte(doc)))
	assert.Equal(t, map[string]interface{}{"public_inherit": true, "rights_inherit": "on"}, o.Extra())

	dumped, err := o.Dump(Header{})
	require.NoError(t, err)
	assert.NotContains(t, string(dumped), "_inherit")

	require.NoError(t, o.Load([]byte(`[{"title": "Reloaded"}]`)))
	assert.Empty(t, o.Extra(), "loading again forgets previous entries")
}

func TestLoadWithoutHeader(t *testing.T) {
	o := testObject(t, "ddr-test-123")
	require.NoError(t, o.Load([]byte(`[{"title": "No header"}]`)))
	title, _ := o.Get("title")
	assert.Equal(t, "No header", title)
}

func TestEntityFiles(t *testing.T) {
	const doc = `[
  {"application": "somewhere"},
  {"title": "An entity"},
  {"files": [{"id": "ddr-test-123-1-master-a1b2c3d4e5", "role": "master"}]}
]`
	o := testObject(t, "ddr-test-123-1")
	require.NoError(t, o.Load([]byte(doc)))
	require.Len(t, o.Files, 1)
	assert.Equal(t, "master", o.Files[0]["role"])

	b, err := o.Dump(testHeader())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"files": [`)
	assert.True(t, strings.LastIndex(string(b), `"files"`) > strings.Index(string(b), `"notes"`), "files come last")

	err = o.Load([]byte(`[{"files": "nope"}]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDocument))
}

func TestPaths(t *testing.T) {
	c := testObject(t, "ddr-test-123")
	p, err := c.JSONPath()
	require.NoError(t, err)
	assert.Equal(t, testBase+"/ddr-test-123/collection.json", p)
	p, err = c.LockPath()
	require.NoError(t, err)
	assert.Equal(t, testBase+"/ddr-test-123/lock", p)
	p, err = c.AnnexPath()
	require.NoError(t, err)
	assert.Equal(t, testBase+"/ddr-test-123/.git/annex", p)

	e := testObject(t, "ddr-test-123-1")
	p, err = e.MetsPath()
	require.NoError(t, err)
	assert.Equal(t, testBase+"/ddr-test-123/files/ddr-test-123-1/mets.xml", p)

	f := testObject(t, "ddr-test-123-1-master-a1b2c3d4e5")
	p, err = f.JSONPath()
	require.NoError(t, err)
	assert.Equal(t, testBase+"/ddr-test-123/files/ddr-test-123-1/files/ddr-test-123-1-master-a1b2c3d4e5.json", p)
	p, err = f.AccessPath()
	require.NoError(t, err)
	assert.Equal(t, testBase+"/ddr-test-123/files/ddr-test-123-1/files/ddr-test-123-1-master-a1b2c3d4e5-a.jpg", p)
	p, err = f.MetsPath()
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestReadWrite(t *testing.T) {
	ctx := context.Background()
	store := localfs.New(afero.NewMemMapFs())

	o := testObject(t, "ddr-test-123-1-master-a1b2c3d4e5")
	require.NoError(t, o.Set("label", "Page 1"))
	p, err := Write(ctx, store, o, testHeader())
	require.NoError(t, err)
	assert.Equal(t, testBase+"/ddr-test-123/files/ddr-test-123-1/files/ddr-test-123-1-master-a1b2c3d4e5.json", p)

	read, err := MustDefaultRegistry().Read(ctx, store, p)
	require.NoError(t, err)
	assert.Equal(t, identifier.File, read.Model())
	assert.Equal(t, o.ID(), read.ID())
	label, _ := read.Get("label")
	assert.Equal(t, "Page 1", label)

	_, err = MustDefaultRegistry().Read(ctx, store, testBase+"/ddr-test-123/collection.json")
	require.Error(t, err)
}

func TestRowBinding(t *testing.T) {
	o := testObject(t, "ddr-test-123-1")
	require.NoError(t, o.LoadRow(map[string]string{
		"id":            "ddr-test-123-9",
		"title":         "  Loaded from csv ",
		"public":        "1",
		"language":      "eng; jpn;",
		"creators":      "namepart:Doe, Jane|role:author; namepart:Roe|role:editor",
		"digitize_date": "2018-01-02 03:04:05",
		"not_a_field":   "ignored",
	}))

	id, _ := o.Get("id")
	assert.Equal(t, "ddr-test-123-1", id)
	title, _ := o.Get("title")
	assert.Equal(t, "Loaded from csv", title)
	public, _ := o.Get("public")
	assert.Equal(t, 1, public)
	language, _ := o.Get("language")
	assert.Equal(t, []interface{}{"eng", "jpn"}, language)
	date, _ := o.Get("digitize_date")
	assert.Equal(t, "2018-01-02T03:04:05", date)

	row, err := o.Row([]string{"id", "title", "public", "language", "creators", "not_a_field"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ddr-test-123-1",
		"Loaded from csv",
		"1",
		"eng; jpn",
		"namepart:Doe, Jane|role:author; namepart:Roe|role:editor",
		"",
	}, row)

	err = o.LoadRow(map[string]string{"public": "one"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransform))

	shown, err := o.Display("public")
	require.NoError(t, err)
	assert.Equal(t, "yes", shown)
	shown, err = o.Display("language")
	require.NoError(t, err)
	assert.Equal(t, "eng, jpn", shown)
}
