package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	w := Memory()

	require.NoError(t, w.CreateDir("/ws/pack/data"))
	assert.True(t, w.PathAccessible("/ws/pack/data"))
	assert.True(t, w.IsDir("/ws/pack/data"))

	require.NoError(t, w.CreateFile("/ws/pack/pack.mcmeta", []byte("{}")))
	assert.True(t, w.PathAccessible("/ws/pack/pack.mcmeta"))
	assert.False(t, w.IsDir("/ws/pack/pack.mcmeta"))

	data, err := w.ReadFile("/ws/pack/pack.mcmeta")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestCreateDirIsIdempotent(t *testing.T) {
	w := Memory()
	require.NoError(t, w.CreateDir("/a/b"))
	require.NoError(t, w.CreateDir("/a/b"))
	assert.True(t, w.IsDir("/a/b"))
}

func TestCreateFileRefusesExisting(t *testing.T) {
	w := Memory()
	require.NoError(t, w.CreateDir("/a"))
	require.NoError(t, w.CreateFile("/a/f.txt", []byte("one")))

	err := w.CreateFile("/a/f.txt", []byte("two"))
	require.Error(t, err)

	data, err := w.ReadFile("/a/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestReadFileMissing(t *testing.T) {
	_, err := Memory().ReadFile("/nope")
	assert.Error(t, err)
}

func TestReadDir(t *testing.T) {
	w := Memory()
	require.NoError(t, w.CreateDir("/root/one"))
	require.NoError(t, w.CreateDir("/root/two"))
	require.NoError(t, w.CreateFile("/root/file", nil))

	dirs, err := w.ReadDir("/root")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, dirs)

	dirs, err = w.ReadDir("/missing")
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestOSFilesystem(t *testing.T) {
	dir := t.TempDir()
	w := OS()

	target := filepath.Join(dir, "nested", "dir")
	require.NoError(t, w.CreateDir(target))
	require.NoError(t, w.CreateFile(filepath.Join(target, "x.json"), []byte(`{"a":1}`)))

	data, err := os.ReadFile(filepath.Join(target, "x.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
	assert.True(t, w.PathAccessible(target))
	assert.False(t, w.PathAccessible(filepath.Join(dir, "absent")))
}

func TestWriteFileReplaces(t *testing.T) {
	w := Memory()
	require.NoError(t, w.WriteFile("/state/cache.json", []byte("first")))
	require.NoError(t, w.WriteFile("/state/cache.json", []byte("2nd")))

	data, err := w.ReadFile("/state/cache.json")
	require.NoError(t, err)
	assert.Equal(t, "2nd", string(data))
}
