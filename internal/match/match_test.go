package match_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorefactor/autorefactor/internal/frontend"
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
)

// parseExprs resolves each source expression inside a method where x, y
// are ints, a, b booleans, s a String, d a double and K the constant 3.
func parseExprs(t *testing.T, exprs ...string) []jast.Expr {
	t.Helper()
	var body strings.Builder
	for i, e := range exprs {
		fmt.Fprintf(&body, "        Object e%d = %s;\n", i, e)
	}
	src := fmt.Sprintf(`class T {
    static final int K = 3;
    void m(int x, int y, boolean a, boolean b, String s, double d) {
%s    }
}
`, body.String())
	u, err := frontend.New(nil).Parse("T.java", []byte(src))
	require.NoError(t, err)

	var out []jast.Expr
	jast.Inspect(u.File, func(n jast.Node) bool {
		if v, ok := n.(*jast.VarDeclarator); ok && v.Init != nil {
			out = append(out, v.Init)
		}
		return true
	})
	require.Len(t, out, len(exprs))
	return out
}

func parseExpr(t *testing.T, expr string) jast.Expr {
	t.Helper()
	return parseExprs(t, expr)[0]
}

func TestConstant(t *testing.T) {
	t.Parallel()
	tests := []struct {
		expr string
		want string // constant.Value.String(), empty when not constant
	}{
		{"1 + 2", "3"},
		{"K * 2", "6"},
		{"(K)", "3"},
		{"10 / 3", "3"},
		{"-7 / 2", "-3"},
		{"-7 % 2", "-1"},
		{"2147483647 + 1", "-2147483648"},
		{"0x7fffffff + 1", "-2147483648"},
		{"010", "8"},
		{"1_000", "1000"},
		{"1L << 40", "1099511627776"},
		{"-1 >>> 28", "15"},
		{"1 << 33", "2"},
		{"~0", "-1"},
		{"'a' + 1", "98"},
		{"(int) 3.9", "3"},
		{"1.5 + 1", "2.5"},
		{`"a" + 1 + 'b'`, `"a1b"`},
		{`"a" == "a"`, "true"},
		{"true && !false", "true"},
		{"1 < 2 ? 5 : 6", "5"},
		{"1 / 0", ""},
		{"1.0 % 2", ""},
		{"1e308 * 10 > 0", ""},
		{"(float) 1e39 > 0", ""},
		{"-(1e308 * 10)", ""},
		{`"a" + 1.5`, ""},
		{"x + 1", ""},
		{"s.length()", ""},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()
			v, ok := match.Constant(parseExpr(t, tc.expr))
			if tc.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.want, v.String())
		})
	}
}

func TestTypedConstants(t *testing.T) {
	t.Parallel()
	es := parseExprs(t, "!true", "K + 1", `"x" + K`, "x")

	b, ok := match.BoolConstant(es[0])
	assert.True(t, ok)
	assert.False(t, b)
	_, ok = match.BoolConstant(es[1])
	assert.False(t, ok)

	n, ok := match.IntConstant(es[1])
	assert.True(t, ok)
	assert.Equal(t, int64(4), n)

	s, ok := match.StringConstant(es[2])
	assert.True(t, ok)
	assert.Equal(t, "x3", s)

	_, ok = match.IntConstant(es[3])
	assert.False(t, ok)
}

func TestStructuralEquality(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b       string
		structural bool
		anyOrder   bool
	}{
		{"a && b", "(a && b)", true, true},
		{"x + y", "x + y", true, true},
		{"x + y", "y + x", false, true},
		{"s + x", "x + s", false, false},
		{"x < y", "y > x", false, true},
		{"x <= y", "y >= x", false, true},
		{"x < y", "y < x", false, false},
		{"x == y", "y == x", false, true},
		{"a || b", "b || a", false, true},
		{"x - y", "y - x", false, false},
		{"s.length()", "s.length()", true, true},
		{"s.equals(\"k\")", "s.equals(\"j\")", false, false},
		{"0x10", "16", true, true},
		{"x", "y", false, false},
		{"d > 0 ? x : y", "d > 0 ? x : y", true, true},
	}
	for _, tc := range tests {
		t.Run(tc.a+" vs "+tc.b, func(t *testing.T) {
			t.Parallel()
			es := parseExprs(t, tc.a, tc.b)
			assert.Equal(t, tc.structural, match.StructurallyEqual(es[0], es[1]))
			assert.Equal(t, tc.anyOrder, match.EqualIgnoringOperandOrder(es[0], es[1]))
		})
	}
}

func TestStructurallyOpposite(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want bool
	}{
		{"a", "!a", true},
		{"!(a && b)", "a && b", true},
		{"x < y", "x >= y", true},
		{"x < y", "y <= x", true},
		{"x == y", "x != y", true},
		{"x == y", "y != x", true},
		{"true", "false", true},
		{"true", "true", false},
		{"d < 1.0", "d >= 1.0", false},
		{"a", "b", false},
		{"x < y", "x > y", false},
	}
	for _, tc := range tests {
		t.Run(tc.a+" vs "+tc.b, func(t *testing.T) {
			t.Parallel()
			es := parseExprs(t, tc.a, tc.b)
			assert.Equal(t, tc.want, match.StructurallyOpposite(es[0], es[1]))
			assert.Equal(t, tc.want, match.StructurallyOpposite(es[1], es[0]))
		})
	}
}

func TestComplement(t *testing.T) {
	t.Parallel()
	pairs := map[jast.BinaryOp]jast.BinaryOp{
		jast.Eql: jast.Neq, jast.Lss: jast.Geq, jast.Gtr: jast.Leq,
	}
	for op, want := range pairs {
		got, ok := match.Complement(op)
		assert.True(t, ok)
		assert.Equal(t, want, got)
		back, ok := match.Complement(want)
		assert.True(t, ok)
		assert.Equal(t, op, back)
	}
	_, ok := match.Complement(jast.Add)
	assert.False(t, ok)
}

func TestMatchesSignature(t *testing.T) {
	t.Parallel()
	es := parseExprs(t, `s.equals("k")`, "s.indexOf('c')", "s.indexOf(\"c\", 1)", "s.length()")

	tests := []struct {
		name   string
		expr   jast.Expr
		typ    string
		member string
		params []string
		want   bool
	}{
		{"Exact", es[0], "java.lang.String", "equals", []string{"java.lang.Object"}, true},
		{"WrongParam", es[0], "java.lang.String", "equals", []string{"java.lang.String"}, false},
		{"WrongName", es[0], "java.lang.String", "equalsIgnoreCase", []string{"java.lang.Object"}, false},
		{"PrimitiveParam", es[1], "java.lang.String", "indexOf", []string{"int"}, true},
		{"BoxedParam", es[1], "java.lang.String", "indexOf", []string{"java.lang.Integer"}, true},
		{"Overload", es[2], "java.lang.String", "indexOf", []string{"java.lang.String", "int"}, true},
		{"Arity", es[2], "java.lang.String", "indexOf", []string{"java.lang.String"}, false},
		{"NoParams", es[3], "java.lang.String", "length", nil, true},
		{"OtherType", es[3], "java.util.List", "length", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, match.MatchesSignature(tc.expr, tc.typ, tc.member, tc.params...))
		})
	}
}

func TestPredicates(t *testing.T) {
	t.Parallel()
	es := parseExprs(t, "null", "(null)", `"k" + x`, "s", "x", "new Object()", "K + 1", "x++")

	assert.True(t, match.IsNull(es[0]))
	assert.True(t, match.IsNull(es[1]))
	assert.False(t, match.IsNull(es[3]))

	assert.True(t, match.IsNonNull(es[2]))
	assert.False(t, match.IsNonNull(es[3]))
	assert.True(t, match.IsNonNull(es[4]))
	assert.True(t, match.IsNonNull(es[5]))

	assert.True(t, match.HasType(es[3], "java.lang.String"))
	assert.True(t, match.IsPrimitive(es[4], "int", "long"))
	assert.False(t, match.IsPrimitive(es[3]))

	assert.True(t, match.IsHardCoded(es[6]))
	assert.False(t, match.IsHardCoded(es[4]))
	assert.False(t, match.IsHardCoded(es[7]))
}
