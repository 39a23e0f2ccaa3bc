package jast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/jast/jasttest"
)

func TestLayout(t *testing.T) {
	t.Parallel()
	x := jasttest.Int("x")
	ifStmt := jast.If(
		jast.Binary(jast.Gtr, jast.Name(x), jast.IntLiteral(0)),
		jast.BlockOf(jasttest.Assign(x, jast.IntLiteral(2))),
		nil,
	)
	u, m := jasttest.Method(jast.Declare("int", x, jast.IntLiteral(1)), ifStmt)

	assert.Equal(t, `class T {
    void m() {
        int x = 1;
        if (x > 0) {
            x = 2;
        }
    }
}
`, string(u.Src))

	pos := u.Position(ifStmt.Pos())
	assert.Equal(t, 4, pos.Line)
	assert.Equal(t, 9, pos.Column)
	assert.Equal(t, "x > 0", u.Text(ifStmt.Cond))
	assert.Equal(t, "if (x > 0) {\n            x = 2;\n        }", u.Text(ifStmt))
	assert.Same(t, m.Body, u.Parent(ifStmt))
	assert.Same(t, m, u.EnclosingMethod(ifStmt.Cond))
}

func TestLayoutOptions(t *testing.T) {
	t.Parallel()
	x := jasttest.Int("x")
	stmt := jasttest.Inc(x)
	m := &jast.MethodDecl{ReturnType: "void", Name: "m", Body: jast.BlockOf(stmt)}
	cls := &jast.ClassDecl{Name: "T", Members: []jast.Node{m}}
	u := jast.Layout("T.java", &jast.File{Types: []*jast.ClassDecl{cls}},
		jast.WithIndent("\t"),
		jast.WithLeadingComment(stmt, "// count"),
	)

	assert.Equal(t, "class T {\n\tvoid m() {\n\t\t// count\n\t\tx++;\n\t}\n}\n", string(u.Src))
	assert.Equal(t, "\t", u.IndentUnit())
	assert.Equal(t, "\t\t", u.LineIndent(stmt.Pos()))

	require.Len(t, u.Comments, 1)
	c := u.Comments[0]
	assert.Equal(t, "// count", c.Text)
	assert.Equal(t, c.From, u.LeadingStart(stmt))
	assert.Len(t, u.CommentsIn(m.Pos(), m.End()), 1)
	assert.Empty(t, u.CommentsIn(stmt.Pos(), stmt.End()))
}

func TestPrintSynthesized(t *testing.T) {
	t.Parallel()
	a, b, c := jasttest.Int("a"), jasttest.Int("b"), jasttest.Int("c")
	p, q := jasttest.Bool("p"), jasttest.Bool("q")
	name := jast.Name

	tests := []struct {
		name string
		node jast.Node
		want string
	}{
		{"LooserLeft", jast.Binary(jast.Mul, jast.Binary(jast.Add, name(a), name(b)), name(c)), "(a + b) * c"},
		{"TighterLeft", jast.Binary(jast.Add, jast.Binary(jast.Mul, name(a), name(b)), name(c)), "a * b + c"},
		{"SameRight", jast.Binary(jast.Sub, name(a), jast.Binary(jast.Sub, name(b), name(c))), "a - (b - c)"},
		{"SameLeft", jast.Binary(jast.Sub, jast.Binary(jast.Sub, name(a), name(b)), name(c)), "a - b - c"},
		{"Not", jast.Negate(jast.Binary(jast.LAnd, name(p), name(q))), "!(p && q)"},
		{"DoubleNot", jast.Negate(jast.Negate(name(p))), "!!p"},
		{"DoubleMinus", &jast.UnaryExpr{Op: jast.Neg, X: &jast.UnaryExpr{Op: jast.Neg, X: name(a)}}, "-(-a)"},
		{"Assign", jast.AssignTo(name(a), jast.Binary(jast.Add, name(b), jast.IntLiteral(1))), "a = b + 1"},
		{"String", jast.StringLiteral("hi\n"), `"hi\n"`},
		{"Return", jast.Return(jast.BoolLiteral(true)), "return true;"},
		{"Break", jast.Break(), "break;"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, jast.Print(nil, tc.node, ""))
		})
	}
}

func TestPrintBlockIndent(t *testing.T) {
	t.Parallel()
	x := jasttest.Int("x")
	s := jast.If(jast.Binary(jast.Lss, jast.Name(x), jast.IntLiteral(0)),
		jast.BlockOf(jasttest.Assign(x, jast.IntLiteral(0))),
		jast.BlockOf(jast.Return(nil)))
	assert.Equal(t, "if (x < 0) {\n        x = 0;\n    } else {\n        return;\n    }", jast.Print(nil, s, "    "))
}

func TestPrintOriginal(t *testing.T) {
	t.Parallel()
	x := jasttest.Int("x")
	ifStmt := jast.If(
		jast.Binary(jast.Gtr, jast.Name(x), jast.IntLiteral(0)),
		jast.BlockOf(jasttest.Assign(x, jast.IntLiteral(2))),
		nil,
	)
	u, _ := jasttest.Method(ifStmt)

	assert.Equal(t, "if (x > 0) {\n        x = 2;\n    }", jast.Print(u, ifStmt, "    "))

	// a synthesized parent keeps its original children verbatim
	wrapped := jast.BlockOf(ifStmt)
	assert.Equal(t, "{\n    if (x > 0) {\n        x = 2;\n    }\n}", jast.Print(u, wrapped, ""))
}

func TestFit(t *testing.T) {
	t.Parallel()
	x, y, z := jasttest.Int("x"), jasttest.Int("y"), jasttest.Int("z")
	mul := jast.Binary(jast.Mul, jast.Name(x), jast.Name(y))
	assign := jast.AssignTo(jast.Name(z), mul)
	u, _ := jasttest.Method(jast.Statement(assign))

	sum := func() jast.Expr { return jast.Binary(jast.Add, jast.Name(x), jast.Name(y)) }
	product := func() jast.Expr { return jast.Binary(jast.Mul, jast.Name(x), jast.Name(y)) }

	_, ok := jast.Fit(u, mul.X, sum()).(*jast.ParenExpr)
	assert.True(t, ok, "sum as left operand of *")
	_, ok = jast.Fit(u, mul.X, product()).(*jast.ParenExpr)
	assert.False(t, ok, "product as left operand of *")
	_, ok = jast.Fit(u, mul.Y, product()).(*jast.ParenExpr)
	assert.True(t, ok, "product as right operand of *")
	_, ok = jast.Fit(u, mul, sum()).(*jast.ParenExpr)
	assert.False(t, ok, "sum as assigned value")

	id := jast.Name(z)
	assert.Same(t, id, jast.Fit(u, mul.X, id))
}
