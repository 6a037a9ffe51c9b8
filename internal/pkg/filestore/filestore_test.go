package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestSaveUploadAndExists(t *testing.T) {
	store := newTestStore(t)

	name, err := store.SaveUpload(strings.NewReader("workbook bytes"), "users.xlsx")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, "_users.xlsx"))
	assert.True(t, store.Exists(name))

	path, err := store.Path(name)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "workbook bytes", string(content))
}

func TestPath_RejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"", "..", "../etc/passwd", "a/b.xlsx", `a\b.xlsx`} {
		_, err := store.Path(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	name, err := store.SaveUpload(strings.NewReader("x"), "tmp.xlsx")
	require.NoError(t, err)

	store.Remove(name)
	assert.False(t, store.Exists(name))

	// Removing an already-removed file is a no-op.
	store.Remove(name)
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"users.xlsx":          "users.xlsx",
		"my users.xlsx":       "my_users.xlsx",
		"../../../etc/passwd": "passwd",
		`C:\temp\users.xlsx`:  "users.xlsx",
		"":                    "upload.xlsx",
		"..":                  "upload.xlsx",
	}

	for input, want := range tests {
		assert.Equal(t, want, SanitizeName(input), "input %q", input)
	}
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "workdir")
	_, err := NewStore(dir, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
