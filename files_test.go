package gitignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func writeIgnoreFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".gitignore")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompileFile(t *testing.T) {
	path := writeIgnoreFile(t, "*.log\n!important.log\n")

	rs, err := CompileFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.PatternCount())
	assert.True(t, rs.Denies("debug.log"))
	assert.True(t, rs.Accepts("important.log"))
}

func TestCompileFile_Missing(t *testing.T) {
	rs, err := CompileFile(filepath.Join(t.TempDir(), "no-such-file"))
	require.Error(t, err)
	assert.Nil(t, rs)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "missing file should be detectable with errors.Is")
}

func TestCompileFileEncoding_UTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	raw, err := enc.NewEncoder().Bytes([]byte("*.log\nbuild/\n"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ".gitignore")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	rs, err := CompileFileEncoding(path, enc)
	require.NoError(t, err)
	assert.Equal(t, 2, rs.PatternCount())
	assert.True(t, rs.Denies("debug.log"))
	assert.True(t, rs.Denies("build"))
}

func TestCompileFileEncoding_NilMeansUTF8(t *testing.T) {
	path := writeIgnoreFile(t, "*.tmp\n")
	rs, err := CompileFileEncoding(path, nil)
	require.NoError(t, err)
	assert.True(t, rs.Denies("scratch.tmp"))
}

func TestFilterAcceptedDenied(t *testing.T) {
	rs := Compile([]byte("*.log\n!important.log\nbuild/\n"))
	paths := []string{
		"src/main.go",
		"debug.log",
		"important.log",
		"build/out.js",
		"README.md",
	}

	assert.Equal(t,
		[]string{"src/main.go", "important.log", "README.md"},
		rs.FilterAccepted(paths), "input order is preserved")
	assert.Equal(t,
		[]string{"debug.log", "build/out.js"},
		rs.FilterDenied(paths))
}

func TestFilter_EmptyInput(t *testing.T) {
	rs := Compile([]byte("*.log\n"))
	assert.Empty(t, rs.FilterAccepted(nil))
	assert.Empty(t, rs.FilterDenied([]string{}))
}

func TestAcceptedDeniedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a/b.log":     &fstest.MapFile{Data: []byte("x")},
		"a/keep.log":  &fstest.MapFile{Data: []byte("x")},
		"src/main.go": &fstest.MapFile{Data: []byte("x")},
	}
	rs := Compile([]byte("*.log\n!keep.log\n"))

	accepted, err := rs.AcceptedFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/", "a/keep.log", "src/", "src/main.go"}, accepted)

	denied, err := rs.DeniedFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b.log"}, denied)
}

func TestAcceptedFiles_DeniedDirStillWalked(t *testing.T) {
	// Walking does not prune: a re-included file inside a denied directory
	// still shows up in the accepted listing.
	fsys := fstest.MapFS{
		"node_modules/lodash/index.js": &fstest.MapFile{Data: []byte("x")},
		"node_modules/keep/mod.js":     &fstest.MapFile{Data: []byte("x")},
	}
	rs := Compile([]byte("node_modules/\n!node_modules/keep\n"))

	accepted, err := rs.AcceptedFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"node_modules/keep/", "node_modules/keep/mod.js"}, accepted)

	denied, err := rs.DeniedFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"node_modules/",
		"node_modules/lodash/",
		"node_modules/lodash/index.js",
	}, denied)
}

func TestAcceptedFiles_EmptyRuleSet(t *testing.T) {
	fsys := fstest.MapFS{
		"a/b.txt": &fstest.MapFile{Data: []byte("x")},
	}
	rs := Compile(nil)

	accepted, err := rs.AcceptedFiles(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/", "a/b.txt"}, accepted)

	denied, err := rs.DeniedFiles(fsys)
	require.NoError(t, err)
	assert.Empty(t, denied)
}
