package rules_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"github.com/autorefactor/autorefactor/internal"
	"github.com/autorefactor/autorefactor/internal/rules"
	tt "github.com/autorefactor/autorefactor/internal/types"
)

// fixture is one before/after pair. A missing after.java means the source
// must come out unchanged.
type fixture struct {
	opts   *tt.Options
	before []byte
	after  []byte
}

func loadFixture(t *testing.T, path string) fixture {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	fx := fixture{opts: &tt.Options{}}
	for _, f := range ar.Files {
		switch f.Name {
		case "before.java":
			fx.before = f.Data
		case "after.java":
			fx.after = f.Data
		case "config.yaml":
			require.NoError(t, yaml.Unmarshal(f.Data, fx.opts))
		default:
			t.Fatalf("%s: unexpected file %s", path, f.Name)
		}
	}
	require.NotEmpty(t, fx.before, "%s has no before.java", path)
	if fx.after == nil {
		fx.after = fx.before
	}
	return fx
}

func TestFixtures(t *testing.T) {
	t.Parallel()
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			fx := loadFixture(t, path)
			e := internal.NewEngine(fx.opts, zaptest.NewLogger(t))

			res, err := e.RunSource(context.Background(), "T.java", fx.before)
			require.NoError(t, err)
			assert.Equal(t, string(fx.after), string(res.Output))
			assert.Equal(t, string(fx.before) != string(fx.after), res.Changed())

			again, err := e.RunSource(context.Background(), "T.java", res.Output)
			require.NoError(t, err)
			assert.Empty(t, again.Changes, "second run must find nothing")
		})
	}
}

func TestAllNamesAreUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for _, r := range rules.All() {
		assert.False(t, seen[r.Name()], r.Name())
		seen[r.Name()] = true
		assert.NotEmpty(t, r.Doc(), r.Name())
		assert.Equal(t, r.Name(), rules.ByName(r.Name()).Name())
	}
	assert.Nil(t, rules.ByName("no-such-rule"))
}

func TestEnabled(t *testing.T) {
	t.Parallel()
	off := false
	on := true
	isEmpty := rules.ByName("is-empty-rather-than-length")
	require.NotNil(t, isEmpty)
	plain := rules.ByName("double-negation")
	require.NotNil(t, plain)

	tests := []struct {
		name  string
		opts  *tt.Options
		rule  rules.Rule
		wants bool
	}{
		{"Defaults", nil, isEmpty, true},
		{"Disabled", &tt.Options{Rules: map[string]tt.ConfigRule{"double-negation": {Enabled: &off}}}, plain, false},
		{"ExplicitlyEnabled", &tt.Options{Rules: map[string]tt.ConfigRule{"double-negation": {Enabled: &on}}}, plain, true},
		{"LevelTooLow", &tt.Options{LanguageLevel: 5}, isEmpty, false},
		{"LevelHighEnough", &tt.Options{LanguageLevel: 6}, isEmpty, true},
		{"FeatureForcedOn", &tt.Options{LanguageLevel: 5, Features: map[string]bool{"String.isEmpty": true}}, isEmpty, true},
		{"FeatureForcedOff", &tt.Options{Features: map[string]bool{"String.isEmpty": false}}, isEmpty, false},
		{"UngatedIgnoresLevel", &tt.Options{LanguageLevel: 1}, plain, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctx := rules.NewContext(nil, tc.opts, nil)
			assert.Equal(t, tc.wants, rules.Enabled(tc.rule, ctx))
		})
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()
	r := rules.ByName("double-negation")
	require.NotNil(t, r)

	c := rules.NewCatalog(map[string]map[string]string{
		"de": {"double-negation": "Doppelte Verneinung entfernt"},
		"en": {"string": "custom"},
	})
	tests := []struct {
		locale string
		want   string
	}{
		{"", "Removed a double negation"},
		{"en-US", "Removed a double negation"},
		{"fr-CA", "Suppression d'une double négation"},
		{"de", "Doppelte Verneinung entfernt"},
		{"ja", "Removed a double negation"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, c.Message(r, tc.locale), tc.locale)
	}
	assert.Equal(t, "custom", c.Message(rules.ByName("string"), "en"))

	var nilCatalog *rules.Catalog
	assert.Equal(t, r.Doc(), nilCatalog.Message(r, "en"))
}
