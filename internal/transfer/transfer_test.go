package transfer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRelocateDuplicateMovesFile(t *testing.T) {
	src := t.TempDir()
	dupDir := filepath.Join(t.TempDir(), "dupes")

	path := writeTempFile(t, src, "a.jpg", "hello")

	tr := New(Config{Mode: ModeMove, DuplicatesDir: dupDir})
	dest, err := tr.RelocateDuplicate(path)
	require.NoError(t, err)

	assert.FileExists(t, dest)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRelocateDuplicateCopyKeepsSource(t *testing.T) {
	src := t.TempDir()
	dupDir := filepath.Join(t.TempDir(), "dupes")

	path := writeTempFile(t, src, "a.jpg", "hello")

	tr := New(Config{Mode: ModeCopy, DuplicatesDir: dupDir})
	dest, err := tr.RelocateDuplicate(path)
	require.NoError(t, err)

	assert.FileExists(t, dest)
	assert.FileExists(t, path)
}

func TestRelocateNoOpWhenDirEmpty(t *testing.T) {
	src := t.TempDir()
	path := writeTempFile(t, src, "a.jpg", "hello")

	tr := New(Config{Mode: ModeMove})
	dest, err := tr.RelocateDuplicate(path)
	require.NoError(t, err)
	assert.Equal(t, path, dest)
}

func TestRelocateResolvesNameConflict(t *testing.T) {
	src := t.TempDir()
	dupDir := t.TempDir()
	writeTempFile(t, dupDir, "a.jpg", "existing")
	path := writeTempFile(t, src, "a.jpg", "new")

	tr := New(Config{Mode: ModeCopy, DuplicatesDir: dupDir})
	dest, err := tr.RelocateDuplicate(path)
	require.NoError(t, err)
	assert.NotEqual(t, filepath.Join(dupDir, "a.jpg"), dest)
	assert.FileExists(t, dest)
}

func TestPathTemplateExpandsDateAndCamera(t *testing.T) {
	tmpl := NewPathTemplate("{{year}}/{{month}}/{{camera}}")
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	out := tmpl.Expand(date, "Canon EOS")
	assert.Equal(t, filepath.Clean("2024/03/Canon EOS"), out)
}

func TestPathTemplateHandlesMissingMetadata(t *testing.T) {
	tmpl := NewPathTemplate("{{year}}/{{camera}}")
	out := tmpl.Expand(time.Time{}, "")
	assert.Equal(t, filepath.Clean("unknown_date/unknown_camera"), out)
}

func TestPathTemplateSanitizesTraversal(t *testing.T) {
	tmpl := NewPathTemplate("{{camera}}")
	out := tmpl.Expand(time.Now(), "../../etc")
	assert.NotContains(t, out, "..")
}
