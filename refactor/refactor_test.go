package refactor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/autorefactor/autorefactor/internal"
	"github.com/autorefactor/autorefactor/internal/frontend"
)

const doubleNegation = `class T%d {
    boolean m(boolean a) {
        return !!a;
    }
}
`

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "Valid",
			content: `name: project
language_level: 5
locale: fr
exclude:
  - "gen/**"
rules:
  string:
    enabled: false
`,
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "project", c.Name)
				assert.Equal(t, 5, c.LanguageLevel)
				assert.Equal(t, "fr", c.Locale)
				assert.Equal(t, []string{"gen/**"}, c.Exclude)
				assert.False(t, c.RuleEnabled("string"))
				assert.True(t, c.RuleEnabled("double-negation"))
			},
		},
		{
			name:    "Empty",
			content: "",
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultConfig(), c)
			},
		},
		{name: "UnknownRule", content: "rules:\n  no-such-rule:\n    enabled: true\n", wantErr: true},
		{name: "UnknownField", content: "colour: red\n", wantErr: true},
		{name: "BadExclude", content: "exclude:\n  - \"[\"\n", wantErr: true},
		{name: "Malformed", content: "rules: [", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(dir, tc.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			c, err := LoadConfig(path)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, c)
		})
	}

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestWriteConfigRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	want := DefaultConfig()
	want.LanguageLevel = 7
	require.NoError(t, WriteConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b/B.java":       fmt.Sprintf(doubleNegation, 1),
		"a/A.java":       fmt.Sprintf(doubleNegation, 2),
		"gen/G.java":     fmt.Sprintf(doubleNegation, 3),
		"Skip.java":      fmt.Sprintf(doubleNegation, 4),
		"README.md":      "not java",
		"broken/X.java":  "class X {",
		"clean/C.java":   "class C {}\n",
	})

	engine, _, err := New("", zaptest.NewLogger(t))
	require.NoError(t, err)

	results, err := ProcessPath(context.Background(), zaptest.NewLogger(t), engine, dir,
		[]string{"gen", "Skip.java"}, ProcessFile)
	require.NoError(t, err)

	names := make([]string, 0, len(results))
	for _, r := range results {
		rel, err := filepath.Rel(dir, r.Filename)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"a/A.java", "b/B.java", "clean/C.java"}, names)
	assert.True(t, results[0].Changed())
	assert.False(t, results[2].Changed())
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"T.java":   fmt.Sprintf(doubleNegation, 0),
		"Bad.java": "class Bad {",
		"notes.md": "x",
	})
	engine, _, err := New("", nil)
	require.NoError(t, err)
	ctx := context.Background()

	results, err := ProcessPath(ctx, nil, engine, filepath.Join(dir, "T.java"), nil, ProcessFile)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, results[0].Changes, 1)

	results, err = ProcessPath(ctx, nil, engine, filepath.Join(dir, "notes.md"), nil, ProcessFile)
	assert.NoError(t, err)
	assert.Empty(t, results)

	_, err = ProcessPath(ctx, nil, engine, filepath.Join(dir, "Bad.java"), nil, ProcessFile)
	var syntax *frontend.SyntaxError
	assert.ErrorAs(t, err, &syntax)

	_, err = ProcessPath(ctx, nil, engine, filepath.Join(dir, "Missing.java"), nil, ProcessFile)
	assert.Error(t, err)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 10 {
		files[fmt.Sprintf("T%d.java", i)] = fmt.Sprintf(doubleNegation, i)
	}
	writeFiles(t, dir, files)

	engine, _, err := New("", nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ProcessPath(ctx, nil, engine, dir, nil, ProcessFile)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"one/A.java": fmt.Sprintf(doubleNegation, 1),
		"two/B.java": fmt.Sprintf(doubleNegation, 2),
	})
	engine, _, err := New("", nil)
	require.NoError(t, err)

	var seen []string
	processor := func(ctx context.Context, e Engine, path string) (*internal.Result, error) {
		seen = append(seen, filepath.Base(path))
		return ProcessFile(ctx, e, path)
	}
	results, err := ProcessFiles(context.Background(), nil, engine,
		[]string{filepath.Join(dir, "one"), filepath.Join(dir, "two")}, nil, processor)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"A.java", "B.java"}, seen)

	_, err = ProcessFiles(context.Background(), nil, engine,
		[]string{filepath.Join(dir, "missing")}, nil, processor)
	assert.Error(t, err)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()
	engine, _, err := New("", nil)
	require.NoError(t, err)

	res, err := ProcessSource(context.Background(), engine, "T.java", []byte(fmt.Sprintf(doubleNegation, 0)))
	require.NoError(t, err)
	assert.Contains(t, string(res.Output), "return a;")
}

func TestHasDesiredExtension(t *testing.T) {
	t.Parallel()
	assert.True(t, hasDesiredExtension("src/T.java"))
	assert.False(t, hasDesiredExtension("src/T.jav"))
	assert.False(t, hasDesiredExtension("T.class"))
}
