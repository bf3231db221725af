package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestWrapDoesNotMutateSentinel(t *testing.T) {
	sentinel := New("malformed")
	a := sentinel.Wrap(New("first"))
	b := sentinel.Wrapf("second %d", 2)

	assert.Nil(t, sentinel.Unwrap())
	assert.Equal(t, "malformed", sentinel.Error())
	assert.Equal(t, "malformed: first", a.Error())
	assert.Equal(t, "malformed: second 2", b.Error())
	assert.True(t, Is(a, sentinel))
	assert.True(t, Is(b, sentinel))
	assert.False(t, Is(a, New("malformed")))
}

func TestAppend(t *testing.T) {
	var err error
	err = Append(err, nil)
	require.NoError(t, err)

	err = Append(err, New("one"))
	err = Append(err, New("two"))
	require.Error(t, err)
	assert.Len(t, Errors(err), 2)
}

func TestSub(t *testing.T) {
	input := New("malformed input")
	id := input.Sub("malformed id")
	path := input.Sub("malformed path")

	err := id.Wrapf("%q", "ddr-")
	assert.True(t, Is(err, id))
	assert.True(t, Is(err, input))
	assert.False(t, Is(err, path))
	assert.False(t, Is(input, id))
	assert.Equal(t, `malformed id: "ddr-"`, err.Error())
}
