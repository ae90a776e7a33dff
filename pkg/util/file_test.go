package util

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "maillog")
	require.NoError(t, os.WriteFile(name, []byte("line\n"), 0o644))

	f, err := OpenFile(name)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	assert.NoError(t, err)
	assert.NoError(t, f.Close())
	assert.Equal(t, "line\n", string(data))

	assert.EqualValues(t, 5, ReadSize(name))
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.EqualValues(t, -1, ReadSize(filepath.Join(t.TempDir(), "missing")))
}

func TestReadSizeUnknown(t *testing.T) {
	assert.EqualValues(t, -1, ReadSize(Stdin))
	assert.EqualValues(t, -1, ReadSize("maillog.1.gz"))
}
