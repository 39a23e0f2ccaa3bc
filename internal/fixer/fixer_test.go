package fixer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	before = `class T {
    boolean m(boolean a) {
        return !!a;
    }
}
`
	after = `class T {
    boolean m(boolean a) {
        return a;
    }
}
`
)

func writeTemp(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "T.java")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestFix(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, before, 0o600)
	var out bytes.Buffer

	changed, err := New(false, &out).Fix(path, []byte(before), []byte(after))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, out.String(), "Refactored "+path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, after, string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestFixUnchanged(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, before, 0o644)
	var out bytes.Buffer

	changed, err := New(false, &out).Fix(path, []byte(before), []byte(before))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, out.String())
}

func TestFixModifiedOnDisk(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, "class T {}\n", 0o644)

	_, err := New(false, &bytes.Buffer{}).Fix(path, []byte(before), []byte(after))
	assert.ErrorIs(t, err, ErrModified)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "class T {}\n", string(got))
}

func TestFixMissingFile(t *testing.T) {
	t.Parallel()
	_, err := New(false, &bytes.Buffer{}).Fix(filepath.Join(t.TempDir(), "Missing.java"), []byte(before), []byte(after))
	assert.Error(t, err)
}

func TestFixDryRun(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, before, 0o644)
	var out bytes.Buffer

	changed, err := New(true, &out).Fix(path, []byte(before), []byte(after))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, out.String(), "-        return !!a;\n")
	assert.Contains(t, out.String(), "+        return a;\n")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, string(got), "dry run must not write")
}

func TestDiff(t *testing.T) {
	t.Parallel()
	diff, err := Diff("src/T.java", []byte(before), []byte(after), 1)
	require.NoError(t, err)

	expected := `--- a/src/T.java
+++ b/src/T.java
@@ -2,3 +2,3 @@
     boolean m(boolean a) {
-        return !!a;
+        return a;
     }
`
	assert.Equal(t, expected, diff)

	empty, err := Diff("T.java", []byte(before), []byte(before), 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// Not parallel: it flips the global color switch.
func TestColorize(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	diff := "--- a/T.java\n+++ b/T.java\n@@ -1 +1 @@\n-x\n+y\n z\n"

	color.NoColor = true
	assert.Equal(t, diff, Colorize(diff))

	color.NoColor = false
	colored := Colorize(diff)
	assert.NotEqual(t, diff, colored)
	assert.Contains(t, colored, addedColor.Sprint("+y")+"\n")
	assert.Contains(t, colored, removedColor.Sprint("-x")+"\n")
	assert.Contains(t, colored, " z\n")
}
