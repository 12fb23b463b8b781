package disp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTextFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadInputFileList(t *testing.T) {
	path := writeTextFile(t, "files.list", "/data/run1.h5\n\n  /data/run2.h5  \n")
	files, err := ReadInputFileList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/data/run1.h5", "/data/run2.h5"}, files)
}

func TestReadInputFileListEmpty(t *testing.T) {
	path := writeTextFile(t, "files.list", "\n\n")
	_, err := ReadInputFileList(path)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestReadInputFileListMissing(t *testing.T) {
	_, err := ReadInputFileList(filepath.Join(t.TempDir(), "nope.list"))
	assert.ErrorIs(t, err, ErrConfiguration)
	var openErr *ErrOpenFile
	assert.ErrorAs(t, err, &openErr)
}
