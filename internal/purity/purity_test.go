package purity_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorefactor/autorefactor/internal/frontend"
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/purity"
)

// parseStmts resolves statements inside a method of a class with an int
// field f, where x is an int parameter, s a String, o an Object and i a
// local int.
func parseStmts(t *testing.T, stmts ...string) []jast.Stmt {
	t.Helper()
	src := fmt.Sprintf(`class T {
    int f;
    void m(int x, String s, Object o, Integer boxed) {
        int i = 0;
        %s
    }
}
`, strings.Join(stmts, "\n        "))
	u, err := frontend.New(nil).Parse("T.java", []byte(src))
	require.NoError(t, err)
	for _, member := range u.File.Types[0].Members {
		if m, ok := member.(*jast.MethodDecl); ok {
			require.Len(t, m.Body.Stmts, len(stmts)+1)
			return m.Body.Stmts[1:]
		}
	}
	t.Fatal("no method")
	return nil
}

func TestClassify(t *testing.T) {
	t.Parallel()
	tests := []struct {
		stmt      string
		passive   purity.Class
		whitelist purity.Class // with i whitelisted
	}{
		{"boolean b = x > 0 && s == null;", purity.Pure, purity.Pure},
		{"i = x + 1;", purity.Impure, purity.Pure},
		{"i++;", purity.Impure, purity.Pure},
		{"--i;", purity.Impure, purity.Pure},
		{"i += 2;", purity.Impure, purity.Pure},
		{"x = 1;", purity.Impure, purity.Impure},
		{"f = 1;", purity.Impure, purity.Impure},
		{"this.f = 1;", purity.Impure, purity.Impure},
		{"s.length();", purity.Impure, purity.Impure},
		{"Object n = new Object();", purity.Impure, purity.Impure},
		{"throw new RuntimeException();", purity.Impure, purity.Impure},
		{`String c = "a" + x + s + boxed;`, purity.Pure, purity.Pure},
		{`String c = "a" + o;`, purity.Impure, purity.Impure},
		{`String c = "a" + (x + 1);`, purity.Pure, purity.Pure},
		{"if (x > 0) { i = 1; }", purity.Impure, purity.Pure},
	}
	for _, tc := range tests {
		t.Run(tc.stmt, func(t *testing.T) {
			t.Parallel()
			stmt := parseStmts(t, tc.stmt)[0]
			assert.Equal(t, tc.passive, purity.Classify(stmt, nil))
			assert.Equal(t, tc.passive == purity.Pure, purity.IsPassive(stmt))
			w := purity.NewWhitelist("i")
			assert.Equal(t, tc.whitelist, purity.Classify(stmt, w))
			assert.Equal(t, tc.whitelist == purity.Pure, purity.IsSideEffectFree(stmt, w))
		})
	}
}

func TestClassifyStringAppend(t *testing.T) {
	t.Parallel()
	stmts := parseStmts(t, `String acc = "";`, "acc += x;", "acc += boxed;", "acc += s;", "acc += o;")
	w := purity.NewWhitelist("acc")
	assert.Equal(t, purity.Pure, purity.Classify(stmts[1], w))
	assert.Equal(t, purity.Pure, purity.Classify(stmts[2], w))
	assert.Equal(t, purity.Pure, purity.Classify(stmts[3], w))
	assert.Equal(t, purity.Impure, purity.Classify(stmts[4], w), "appending an Object calls its toString")
	assert.False(t, purity.IsSideEffectFree(stmts[4], w))
}

func TestUnresolvedIsUnknown(t *testing.T) {
	t.Parallel()
	stmt := parseStmts(t, "undeclared = 1;")[0]
	assert.Equal(t, purity.Unknown, purity.Classify(stmt, purity.NewWhitelist("undeclared")))
	assert.False(t, purity.IsSideEffectFree(stmt, purity.NewWhitelist("undeclared")))
}

func TestWhitelistAdd(t *testing.T) {
	t.Parallel()
	stmts := parseStmts(t, "int a = 1, b = 2;", "a = b;")
	decl, ok := stmts[0].(*jast.LocalVarDecl)
	require.True(t, ok)

	w := purity.NewWhitelist()
	assert.False(t, purity.IsSideEffectFree(stmts[1], w))
	w.Add(decl)
	assert.True(t, w["a"])
	assert.True(t, w["b"])
	assert.True(t, purity.IsSideEffectFree(stmts[1], w))
}

func TestArePassive(t *testing.T) {
	t.Parallel()
	a := jast.Binary(jast.Add, jast.IntLiteral(1), jast.IntLiteral(2))
	call := jast.Call(nil, &jast.MethodBinding{Name: "f"})
	assert.True(t, purity.ArePassive(a, nil))
	assert.False(t, purity.ArePassive(a, call))
}

func TestClassString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Pure", purity.Pure.String())
	assert.Equal(t, "Impure", purity.Impure.String())
	assert.Equal(t, "Unknown", purity.Unknown.String())
}
