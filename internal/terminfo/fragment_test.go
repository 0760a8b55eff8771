package terminfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragment_AddDelete(t *testing.T) {
	f := NewFragment("foot", "foot terminal")

	require.NoError(t, f.Add(NewBool("am")))
	require.NoError(t, f.Add(NewInt("colors", 8)))

	err := f.Add(NewString("am", "x"))
	assert.ErrorIs(t, err, ErrDuplicateCapability)

	require.NoError(t, f.Delete("am"))
	assert.False(t, f.Has("am"))
	assert.ErrorIs(t, f.Delete("am"), ErrUnknownCapability)

	// A deleted name can be added again.
	require.NoError(t, f.Add(NewBool("am")))
	assert.Equal(t, 2, f.Len())
}

func TestFragment_InsertionAndSortedOrder(t *testing.T) {
	f := NewFragment("t", "test")
	for _, c := range []Capability{NewBool("z"), NewInt("a", 1), NewString("M", "m"), NewBool("b")} {
		require.NoError(t, f.Add(c))
	}

	names := func(caps []Capability) []string {
		out := make([]string, 0, len(caps))
		for _, c := range caps {
			out = append(out, c.Name())
		}
		return out
	}
	assert.Equal(t, []string{"z", "a", "M", "b"}, names(f.Capabilities()))
	assert.Equal(t, []string{"M", "a", "b", "z"}, names(f.Sorted()))
}

func TestFragment_SetReplaces(t *testing.T) {
	f := NewFragment("t", "test")
	f.Set(NewInt("Co", 8))
	f.Set(NewInt("Co", 256))

	c, ok := f.Get("Co")
	require.True(t, ok)
	assert.Equal(t, int64(256), c.Int())
	assert.Equal(t, 1, f.Len())
	assert.Len(t, f.Capabilities(), 1)
}

func TestSet(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Add(NewFragment("b", "second")))
	require.NoError(t, s.Add(NewFragment("a", "first")))
	assert.ErrorIs(t, s.Add(NewFragment("a", "again")), ErrDuplicateEntry)

	assert.Equal(t, []string{"b", "a"}, s.Names())
	assert.Equal(t, 2, s.Len())

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownEntry)

	_, ok := s.Lookup("a")
	assert.True(t, ok)
}
