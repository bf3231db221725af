package batch

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/model"
	"github.com/oneconcern/ddr/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "/var/www/media/ddr"

func testClock() time.Time {
	return time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)
}

const validCSV = `id,status,public,title,genre,format,rights,language
ddr-test-123-1,completed,1,First,photograph,img,cc,eng
ddr-test-123-2,inprocess,0,Second,letter,doc,pcc,eng;jpn
`

func TestImport(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := localfs.New(fs)

	imp, err := NewImporter(store, identifier.Entity, base, WithVocab(testVocab()), WithClock(testClock))
	require.NoError(t, err)

	table, err := ReadCSV(strings.NewReader(validCSV))
	require.NoError(t, err)
	result, err := imp.Import(ctx, table)
	require.NoError(t, err)
	assert.Equal(t, []string{
		base + "/ddr-test-123/files/ddr-test-123-1/entity.json",
		base + "/ddr-test-123/files/ddr-test-123-2/entity.json",
	}, result.Created)
	assert.Empty(t, result.Updated)

	o, err := model.MustDefaultRegistry().Read(ctx, store, result.Created[1])
	require.NoError(t, err)
	title, _ := o.Get("title")
	assert.Equal(t, "Second", title)
	created, _ := o.Get("record_created")
	assert.Equal(t, "2021-06-07T08:09:10", created)
	language, _ := o.Get("language")
	assert.Equal(t, []interface{}{"eng", "jpn"}, language)

	table, err = ReadCSV(strings.NewReader("id,status,public,title,genre,format,rights\nddr-test-123-1,completed,1,Renamed,photograph,img,cc\n"))
	require.NoError(t, err)
	result, err = imp.Import(ctx, table)
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Len(t, result.Updated, 1)
	assert.Len(t, result.Paths(), 1)

	o, err = model.MustDefaultRegistry().Read(ctx, store, result.Updated[0])
	require.NoError(t, err)
	title, _ = o.Get("title")
	assert.Equal(t, "Renamed", title)
	language, _ = o.Get("language")
	assert.Equal(t, []interface{}{"eng"}, language, "columns absent from the csv are kept")
}

func TestImportAbortsOnInvalidInput(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := localfs.New(fs)

	imp, err := NewImporter(store, identifier.Entity, base, WithVocab(testVocab()))
	require.NoError(t, err)

	table, err := ReadCSV(strings.NewReader(validCSV + "ddr-test-123-3,bogus,1,Third,photograph,img,cc,eng\n"))
	require.NoError(t, err)
	_, err = imp.Import(ctx, table)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	require.Len(t, Failures(err), 1)

	exists, err := afero.DirExists(fs, base)
	require.NoError(t, err)
	assert.False(t, exists, "nothing is written")

	table, err = ReadCSV(strings.NewReader("id,title\nddr-test-123-1,x\n"))
	require.NoError(t, err)
	_, err = imp.Import(ctx, table)
	require.Error(t, err)
	var herr *HeaderError
	require.True(t, errors.As(err, &herr))
}

func TestNewImporterWithoutClass(t *testing.T) {
	_, err := NewImporter(localfs.New(afero.NewMemMapFs()), identifier.FileRole, base)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNoClass))
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	store := localfs.New(afero.NewMemMapFs())

	imp, err := NewImporter(store, identifier.Entity, base, WithVocab(testVocab()), WithClock(testClock))
	require.NoError(t, err)
	table, err := ReadCSV(strings.NewReader(validCSV))
	require.NoError(t, err)
	result, err := imp.Import(ctx, table)
	require.NoError(t, err)

	paths := append([]string{base + "/ddr-test-123/collection.json"}, result.Created...)
	paths[1], paths[2] = paths[2], paths[1]
	objects, err := ReadObjects(ctx, store, model.MustDefaultRegistry(), paths, identifier.Entity)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "ddr-test-123-1", objects[0].ID())

	headers, rows, err := Export(objects, imp.Schema())
	require.NoError(t, err)
	assert.Equal(t, imp.Schema().Names(), headers)
	require.Len(t, rows, 2)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, headers, rows))

	reread, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.NoError(t, imp.Validate(reread), "exported csv can be imported back")
	assert.Equal(t, "eng; jpn", reread.Rows[1].Values["language"])
	assert.Equal(t, "2021-06-07T08:09:10", reread.Rows[0].Values["record_created"])
}
