package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestChangeFilenames checks that every change names the file it was found
// in, across passes and engine reuse.
func TestChangeFilenames(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "filename_test")

	file1 := filepath.Join(tempDir, "A.java")
	require.NoError(t, os.WriteFile(file1, []byte(`class A {
    boolean f(boolean a) {
        return !!a;
    }
}
`), 0o644))

	file2 := filepath.Join(tempDir, "sub", "B.java")
	require.NoError(t, os.MkdirAll(filepath.Dir(file2), 0o755))
	require.NoError(t, os.WriteFile(file2, []byte(equalsSource), 0o644))

	e := NewEngine(nil, nil)
	for _, file := range []string{file1, file2} {
		res, err := e.Run(context.Background(), file)
		require.NoError(t, err)
		assert.Equal(t, file, res.Filename)
		require.NotEmpty(t, res.Changes)
		for _, c := range res.Changes {
			assert.Equal(t, file, c.Filename)
			assert.Equal(t, file, c.Start.Filename)
		}
	}
}
