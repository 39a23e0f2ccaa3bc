package rewrite

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/jast/jasttest"
)

type fixture struct {
	unit      *jast.Unit
	a, b      *jast.ExprStmt
	ifStmt    *jast.IfStmt
	whileStmt *jast.WhileStmt
}

// newFixture lays out:
//
//	class T {
//	    void m() {
//	        // first
//	        a++;
//	        b++;
//	        if (true) {
//	            // keep
//	            a++;
//	        } else {
//	            // gone
//	            b++;
//	        }
//	        while (c) {
//	            a++;
//	        }
//	    }
//	}
func newFixture() *fixture {
	va, vb, vc := jasttest.Int("a"), jasttest.Int("b"), jasttest.Bool("c")
	f := &fixture{a: jasttest.Inc(va), b: jasttest.Inc(vb)}
	kept, gone := jasttest.Inc(va), jasttest.Inc(vb)
	f.ifStmt = jast.If(jast.BoolLiteral(true), jast.BlockOf(kept), jast.BlockOf(gone))
	f.whileStmt = &jast.WhileStmt{Cond: jast.Name(vc), Body: jast.BlockOf(jasttest.Inc(va))}
	m := &jast.MethodDecl{
		ReturnType: "void",
		Name:       "m",
		Body:       jast.BlockOf(f.a, f.b, f.ifStmt, f.whileStmt),
	}
	cls := &jast.ClassDecl{Name: "T", Members: []jast.Node{m}}
	f.unit = jast.Layout("T.java", &jast.File{Types: []*jast.ClassDecl{cls}},
		jast.WithLeadingComment(f.a, "// first"),
		jast.WithLeadingComment(kept, "// keep"),
		jast.WithLeadingComment(gone, "// gone"),
	)
	return f
}

const fixtureSource = `class T {
    void m() {
        // first
        a++;
        b++;
        if (true) {
            // keep
            a++;
        } else {
            // gone
            b++;
        }
        while (c) {
            a++;
        }
    }
}
`

func TestFixtureLayout(t *testing.T) {
	t.Parallel()
	f := newFixture()
	assert.Equal(t, fixtureSource, string(f.unit.Src))
}

func TestMaterialize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		edit     func(f *fixture, b *Batch)
		expected string
	}{
		{
			name:     "NoEdits",
			edit:     func(f *fixture, b *Batch) {},
			expected: fixtureSource,
		},
		{
			name: "RemoveWithLeadingComment",
			edit: func(f *fixture, b *Batch) {
				b.Remove(f.a, "remove a")
			},
			expected: `class T {
    void m() {
        b++;
        if (true) {
            // keep
            a++;
        } else {
            // gone
            b++;
        }
        while (c) {
            a++;
        }
    }
}
`,
		},
		{
			name: "ReplaceWithMovedBranch",
			edit: func(f *fixture, b *Batch) {
				then := f.ifStmt.Then.(*jast.Block)
				b.Replace(f.ifStmt, b.Move(jast.NodesOf(then.Stmts)...), "inline")
			},
			expected: `class T {
    void m() {
        // first
        a++;
        b++;
        // keep
        a++;
        while (c) {
            a++;
        }
    }
}
`,
		},
		{
			name: "MoveAfterSibling",
			edit: func(f *fixture, b *Batch) {
				b.InsertAfter(f.b, b.Move(f.a), "swap")
			},
			expected: `class T {
    void m() {
        b++;
        // first
        a++;
        if (true) {
            // keep
            a++;
        } else {
            // gone
            b++;
        }
        while (c) {
            a++;
        }
    }
}
`,
		},
		{
			name: "InsertBeforeAndLast",
			edit: func(f *fixture, b *Batch) {
				b.InsertLast(f.whileStmt.Body.(*jast.Block), jast.Break(), "break")
				b.InsertBefore(f.whileStmt, jasttest.Assign(jasttest.Int("b"), jast.IntLiteral(0)), "reset")
			},
			expected: `class T {
    void m() {
        // first
        a++;
        b++;
        if (true) {
            // keep
            a++;
        } else {
            // gone
            b++;
        }
        b = 0;
        while (c) {
            a++;
            break;
        }
    }
}
`,
		},
		{
			name: "ReplaceCondition",
			edit: func(f *fixture, b *Batch) {
				b.Replace(f.whileStmt.Cond, jast.Negate(f.whileStmt.Cond), "negate")
			},
			expected: `class T {
    void m() {
        // first
        a++;
        b++;
        if (true) {
            // keep
            a++;
        } else {
            // gone
            b++;
        }
        while (!c) {
            a++;
        }
    }
}
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			b := New(f.unit)
			tt.edit(f, b)
			out, err := b.Materialize()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		edit func(f *fixture, b *Batch)
	}{
		{
			name: "SameTarget",
			edit: func(f *fixture, b *Batch) {
				b.Remove(f.a, "remove")
				b.Replace(f.a, jast.Statement(jast.IntLiteral(1)), "replace")
			},
		},
		{
			name: "NestedTargets",
			edit: func(f *fixture, b *Batch) {
				b.Remove(f.ifStmt, "remove if")
				b.Replace(f.ifStmt.Cond, jast.BoolLiteral(false), "replace cond")
			},
		},
		{
			name: "InsertInsideRemoved",
			edit: func(f *fixture, b *Batch) {
				b.Remove(f.whileStmt, "remove loop")
				b.InsertLast(f.whileStmt.Body.(*jast.Block), jast.Break(), "break")
			},
		},
		{
			name: "MovedTwice",
			edit: func(f *fixture, b *Batch) {
				b.InsertAfter(f.b, b.Move(f.a), "first")
				b.InsertLast(f.whileStmt.Body.(*jast.Block), b.Move(f.a), "second")
			},
		},
		{
			name: "MovePartlyRemoved",
			edit: func(f *fixture, b *Batch) {
				b.Remove(f.b, "remove b")
				b.InsertLast(f.whileStmt.Body.(*jast.Block), b.Move(f.a, f.b), "move")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			b := New(f.unit)
			tt.edit(f, b)
			_, err := b.Materialize()
			var conflict *ConflictingEditError
			require.True(t, errors.As(err, &conflict), "got %v", err)
			assert.True(t, conflict.Position.IsValid())
		})
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()
	f := newFixture()

	unit := New(f.unit)
	first := New(f.unit)
	first.Remove(f.a, "remove a")
	require.NoError(t, unit.Merge(first))

	second := New(f.unit)
	second.Replace(f.a, jast.Statement(jast.IntLiteral(1)), "replace a")
	second.Remove(f.b, "remove b")
	err := unit.Merge(second)
	var conflict *ConflictingEditError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, unit.Len(), "a conflicting merge must leave the batch unchanged")

	assert.NoError(t, unit.Merge(nil))
	assert.True(t, unit.Touches(f.a))
	assert.False(t, unit.Touches(f.b))
}
