package disp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadArrayListEmptyPathSelectsAll(t *testing.T) {
	mask, err := ReadArrayList(3, "", []uint32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true}, mask)
}

func TestReadArrayList(t *testing.T) {
	path := writeTextFile(t, "array.list", "12\nfoo\n\n30\n99\n")
	mask, err := ReadArrayList(4, path, []uint32{10, 12, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false, true}, mask)
}

func TestReadArrayListMissingFile(t *testing.T) {
	_, err := ReadArrayList(2, filepath.Join(t.TempDir(), "nope"), []uint32{1, 2})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNewArrayConfig(t *testing.T) {
	_, err := NewArrayConfig(nil, nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	tels := []*TelescopeConfig{{Ordinal: 0, TelType: 1}, {Ordinal: 1, TelType: 2}}
	_, err = NewArrayConfig(tels, []bool{true})
	assert.ErrorIs(t, err, ErrConfiguration)

	array, err := NewArrayConfig(tels, []bool{true, false})
	require.NoError(t, err)
	assert.Equal(t, 2, array.NTel())
}

func TestArrayConfigSelection(t *testing.T) {
	tels := []*TelescopeConfig{
		{Ordinal: 0, TelType: 1},
		{Ordinal: 1, TelType: 2},
		{Ordinal: 2, TelType: 1},
	}
	array, err := NewArrayConfig(tels, []bool{true, true, false})
	require.NoError(t, err)

	assert.True(t, array.MatchesType(2, 0))
	assert.True(t, array.MatchesType(2, 1))
	assert.False(t, array.MatchesType(1, 1))

	assert.True(t, array.Selected(0, 1))
	assert.False(t, array.Selected(2, 1))
	assert.Equal(t, 1, array.SelectedTelescopes(1))
	assert.Equal(t, 2, array.SelectedTelescopes(0))
}
