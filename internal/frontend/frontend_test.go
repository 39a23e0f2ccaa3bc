package frontend

import (
	"errors"
	"go/constant"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorefactor/autorefactor/internal/jast"
)

const sample = `package demo;

import java.io.IOException;

public class Sample {
    static final int LIMIT = 10;
    private String name;

    // counts down
    int count(int[] xs, String s) throws IOException {
        int n = 0;
        for (int i = 0; i < xs.length; i++) {
            if (s.equals("x")) {
                n += xs[i];
            }
        }
        while (n > LIMIT) n--;
        try {
            read();
        } catch (IOException e) {
            return -1;
        }
        return n;
    }

    void read() throws IOException {
        System.out.println(name.length());
    }
}
`

func parseSample(t *testing.T) *jast.Unit {
	t.Helper()
	u, err := New(nil).Parse("Sample.java", []byte(sample))
	require.NoError(t, err)
	return u
}

func method(t *testing.T, u *jast.Unit, name string) *jast.MethodDecl {
	t.Helper()
	for _, m := range u.File.Types[0].Members {
		if md, ok := m.(*jast.MethodDecl); ok && md.Name == name {
			return md
		}
	}
	t.Fatalf("no method %s", name)
	return nil
}

func TestParseStructure(t *testing.T) {
	t.Parallel()
	u := parseSample(t)

	assert.Equal(t, "demo", u.File.Package)
	assert.Equal(t, []string{"java.io.IOException"}, u.File.Imports)
	require.Len(t, u.File.Types, 1)
	cls := u.File.Types[0]
	assert.Equal(t, "Sample", cls.Name)
	assert.Equal(t, "demo.Sample", cls.Type.QualifiedName)
	assert.Len(t, cls.Members, 4)

	require.Len(t, u.Comments, 1)
	assert.Equal(t, "// counts down", u.Comments[0].Text)

	count := method(t, u, "count")
	assert.Equal(t, []string{"IOException"}, count.Throws)
	require.Len(t, count.Body.Stmts, 5)
	assert.IsType(t, &jast.LocalVarDecl{}, count.Body.Stmts[0])
	assert.IsType(t, &jast.ForStmt{}, count.Body.Stmts[1])
	assert.IsType(t, &jast.WhileStmt{}, count.Body.Stmts[2])
	assert.IsType(t, &jast.TryStmt{}, count.Body.Stmts[3])
	assert.IsType(t, &jast.ReturnStmt{}, count.Body.Stmts[4])
	assert.Equal(t, "while (n > LIMIT) n--;", u.Text(count.Body.Stmts[2]))
}

func TestParseBindings(t *testing.T) {
	t.Parallel()
	u := parseSample(t)
	count := method(t, u, "count")

	loop := count.Body.Stmts[1].(*jast.ForStmt)
	require.Len(t, loop.Init, 1)
	cond := loop.Cond.(*jast.BinaryExpr)
	length := cond.Y.(*jast.FieldAccess)
	assert.Equal(t, jast.Int, length.Type)
	assert.True(t, length.X.(*jast.Ident).Var.Param)

	inner := loop.Body.(*jast.Block).Stmts[0].(*jast.IfStmt)
	equals := inner.Cond.(*jast.CallExpr)
	require.NotNil(t, equals.Method)
	assert.Equal(t, "java.lang.String.equals(java.lang.Object)", equals.Method.String())
	assert.Equal(t, jast.Boolean, equals.Type)

	while := count.Body.Stmts[2].(*jast.WhileStmt)
	limit := while.Cond.(*jast.BinaryExpr).Y.(*jast.Ident)
	require.NotNil(t, limit.Var)
	assert.True(t, limit.Var.Field)
	require.NotNil(t, limit.Var.Constant)
	assert.True(t, constant.Compare(limit.Var.Constant, token.EQL, constant.MakeInt64(10)))

	try := count.Body.Stmts[3].(*jast.TryStmt)
	read := try.Body.Stmts[0].(*jast.ExprStmt).X.(*jast.CallExpr)
	require.NotNil(t, read.Method)
	require.Len(t, read.Method.Exceptions, 1)
	assert.Equal(t, "java.io.IOException", read.Method.Exceptions[0].QualifiedName)
	require.Len(t, try.Catches, 1)
	assert.True(t, try.Catches[0].Types[0].Checked)

	println := method(t, u, "read").Body.Stmts[0].(*jast.ExprStmt).X.(*jast.CallExpr)
	require.NotNil(t, println.Method)
	assert.Equal(t, "java.io.PrintStream.println(int)", println.Method.String())
	assert.IsType(t, &jast.TypeRef{}, println.Recv.(*jast.FieldAccess).X)
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := New(nil).Parse("Broken.java", []byte("class Broken {\n    void m( {\n}\n"))
	var syntax *SyntaxError
	require.True(t, errors.As(err, &syntax))
	assert.Equal(t, "Broken.java", syntax.Pos.Filename)
	assert.Positive(t, syntax.Pos.Line)
}

func TestParseUnresolved(t *testing.T) {
	t.Parallel()
	src := "class U {\n    void m(Foo f) {\n        f.bar();\n    }\n}\n"
	u, err := New(nil).Parse("U.java", []byte(src))
	require.NoError(t, err)
	m := u.File.Types[0].Members[0].(*jast.MethodDecl)
	call := m.Body.Stmts[0].(*jast.ExprStmt).X.(*jast.CallExpr)
	assert.Nil(t, call.Method)
	assert.Nil(t, jast.TypeOf(call.Recv))
}

func TestSelectOverload(t *testing.T) {
	t.Parallel()
	lib := JDK()
	str, _ := lib.Type("java.lang.String")
	intLit := &jast.Literal{LitKind: jast.IntLit, Raw: "1", Type: jast.Int}
	strLit := &jast.Literal{LitKind: jast.StringLit, Raw: `"a"`, Type: str}
	unknown := &jast.Ident{Name: "x"}

	tests := []struct {
		name string
		args []jast.Expr
		want string
	}{
		{"Char", []jast.Expr{intLit}, "java.lang.String.indexOf(int)"},
		{"String", []jast.Expr{strLit}, "java.lang.String.indexOf(java.lang.String)"},
		{"StringFrom", []jast.Expr{strLit, intLit}, "java.lang.String.indexOf(java.lang.String, int)"},
		{"Ambiguous", []jast.Expr{unknown}, "<unresolved>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := selectOverload(lib.Methods(str, "indexOf"), tt.args)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestStaticImports(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		imp    string
		want   string
		assert string
	}{
		{"Single", "import static org.assertj.core.api.Assertions.assertThat;", "org.assertj.core.api.Assertions.assertThat(boolean)", "org.assertj.core.api.AbstractBooleanAssert.isTrue()"},
		{"OnDemand", "import static org.assertj.core.api.Assertions.*;", "org.assertj.core.api.Assertions.assertThat(boolean)", "org.assertj.core.api.AbstractBooleanAssert.isTrue()"},
		{"Missing", "import java.util.List;", "<unresolved>", "<unresolved>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := tt.imp + "\n\nclass U {\n    void m(boolean b) {\n        assertThat(b).isTrue();\n    }\n}\n"
			u, err := New(nil).Parse("U.java", []byte(src))
			require.NoError(t, err)
			m := u.File.Types[0].Members[0].(*jast.MethodDecl)
			isTrue := m.Body.Stmts[0].(*jast.ExprStmt).X.(*jast.CallExpr)
			call := isTrue.Recv.(*jast.CallExpr)
			assert.Nil(t, call.Recv)
			assert.Equal(t, tt.want, call.Method.String())
			assert.Equal(t, tt.assert, isTrue.Method.String())
		})
	}
}
