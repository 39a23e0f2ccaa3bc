package branch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorefactor/autorefactor/internal/branch"
	"github.com/autorefactor/autorefactor/internal/frontend"
	"github.com/autorefactor/autorefactor/internal/jast"
)

const source = `class T {
    int m(int x, boolean a) {
        return x;
        throw new IllegalStateException();
        x++;
        ;
        if (a) { return 1; } else { return 2; }
        if (a) { return 1; } else { throw new RuntimeException(); }
        if (a) { return 1; }
        if (a) { x = 1; } else { return 2; }
        { int y = 1; continue; }
        { break; }
        System.exit(1);
        {}
    }
}
`

func statements(t *testing.T) []jast.Stmt {
	t.Helper()
	u, err := frontend.New(nil).Parse("T.java", []byte(source))
	require.NoError(t, err)
	m, ok := u.File.Types[0].Members[0].(*jast.MethodDecl)
	require.True(t, ok)
	return m.Body.Stmts
}

func TestStmtBranch(t *testing.T) {
	t.Parallel()
	stmts := statements(t)

	tests := []struct {
		kind     branch.BranchKind
		exits    bool
		hasDecls bool
	}{
		{branch.Return, true, false},
		{branch.Throw, true, false},
		{branch.Regular, false, false},
		{branch.Empty, false, false},
		{branch.Return, true, false},
		{branch.Throw, true, false},
		{branch.Regular, false, false},
		{branch.Regular, false, false},
		{branch.Continue, false, true},
		{branch.Break, false, false},
		{branch.Exit, false, false},
		{branch.Empty, false, false},
	}
	require.Len(t, stmts, len(tests))
	for i, tc := range tests {
		b := branch.StmtBranch(stmts[i])
		assert.Equal(t, tc.kind, b.BranchKind, "statement %d", i)
		assert.Equal(t, tc.exits, branch.AlwaysExits(stmts[i]), "statement %d", i)
		assert.Equal(t, tc.hasDecls, b.HasDecls, "statement %d", i)
	}

	exit := branch.StmtBranch(stmts[10])
	assert.Equal(t, branch.Call{Type: "java.lang.System", Name: "exit"}, exit.Call)
}

func TestBranchKind(t *testing.T) {
	t.Parallel()
	assert.True(t, branch.Empty.IsEmpty())
	assert.True(t, branch.Return.Returns())
	assert.True(t, branch.Break.Deviates())
	assert.True(t, branch.Exit.Deviates())
	assert.False(t, branch.Regular.Deviates())
	assert.False(t, branch.Continue.Exits())
	assert.Equal(t, "... return", branch.Return.String())
	assert.Equal(t, "", branch.Empty.String())
}

func TestDeclarations(t *testing.T) {
	t.Parallel()
	u, err := frontend.New(nil).Parse("T.java", []byte(`class T {
    void m() {
        int a = 1, b = 2;
        String s = "";
        try {
            int inner = 0;
        } catch (RuntimeException e) {
        }
    }
}
`))
	require.NoError(t, err)
	m := u.File.Types[0].Members[0].(*jast.MethodDecl)

	assert.Equal(t, []string{"a", "b", "s"}, branch.DeclaredNames(m.Body.Stmts))
	try := m.Body.Stmts[2]
	assert.True(t, branch.DeclaresAny(try, []string{"inner"}))
	assert.True(t, branch.DeclaresAny(try, []string{"e"}))
	assert.False(t, branch.DeclaresAny(try, []string{"a"}))
	assert.False(t, branch.DeclaresAny(try, nil))
}
