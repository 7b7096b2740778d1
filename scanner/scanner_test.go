package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
}

func TestProjectScanner(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{
		"file1.js":                      "const a = 1;",
		"file2.TSX":                     "export default () => null;",
		"file3.txt":                     "This is a text file",
		"subdir/file4.mjs":              "export {};",
		"node_modules/pkg/index.js":     "module.exports = {};",
		"subdir/node_modules/x/deep.js": "module.exports = {};",
	})

	scannedFiles, err := New(tempDir, ".js", ".mjs", ".tsx").SkipDirs("node_modules").Scan()
	require.NoError(t, err)

	paths := make([]string, 0, len(scannedFiles))
	for _, file := range scannedFiles {
		paths = append(paths, file.Path)
		assert.Greater(t, file.Size, int64(0), "File size should be greater than 0")
	}
	assert.Equal(t, []string{
		filepath.Join(tempDir, "file1.js"),
		filepath.Join(tempDir, "file2.TSX"),
		filepath.Join(tempDir, "subdir", "file4.mjs"),
	}, paths)
}

func TestScannerAllFiles(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	writeTree(t, tempDir, map[string]string{"a.txt": "a", "b/c.md": "c"})

	files, err := New(tempDir).Scan()
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestScannerMissingRoot(t *testing.T) {
	t.Parallel()
	_, err := New(filepath.Join(t.TempDir(), "missing"), ".js").Scan()
	assert.Error(t, err)
}
