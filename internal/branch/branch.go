// Package branch classifies how control leaves a statement.
package branch

import "github.com/autorefactor/autorefactor/internal/jast"

// Branch stores how a statement or the last statement of a block completes.
type Branch struct {
	BranchKind
	Call
	HasDecls bool
}

func BlockBranch(block *jast.Block) Branch {
	blockLen := len(block.Stmts)
	if blockLen == 0 {
		return Empty.Branch()
	}

	branch := StmtBranch(block.Stmts[blockLen-1])
	branch.HasDecls = hasDecls(block.Stmts)

	return branch
}

func StmtBranch(stmt jast.Stmt) Branch {
	switch stmt := stmt.(type) {
	case *jast.ReturnStmt:
		return Return.Branch()
	case *jast.ThrowStmt:
		return Throw.Branch()
	case *jast.Block:
		return BlockBranch(stmt)
	case *jast.StmtList:
		return BlockBranch(&jast.Block{Stmts: stmt.Stmts})
	case *jast.BranchStmt:
		if stmt.Continue {
			return Continue.Branch()
		}
		return Break.Branch()
	case *jast.IfStmt:
		// both arms must leave the same way
		if stmt.Else == nil {
			break
		}
		then, els := StmtBranch(stmt.Then), StmtBranch(stmt.Else)
		if then.Exits() && els.Exits() {
			if then.BranchKind == els.BranchKind {
				return then.BranchKind.Branch()
			}
			return Throw.Branch()
		}
	case *jast.ExprStmt:
		fn, ok := ExprCall(stmt)
		if !ok {
			break
		}
		if kind, ok := DeviatingFuncs[fn]; ok {
			return Branch{BranchKind: kind, Call: fn}
		}
	case *jast.EmptyStmt:
		return Empty.Branch()
	case nil:
		return Empty.Branch()
	}

	return Regular.Branch()
}

// AlwaysExits reports whether every path through stmt ends in a return or
// a throw.
func AlwaysExits(stmt jast.Stmt) bool {
	return StmtBranch(stmt).Exits()
}

func hasDecls(stmts []jast.Stmt) bool {
	for _, stmt := range stmts {
		if _, ok := stmt.(*jast.LocalVarDecl); ok {
			return true
		}
	}

	return false
}

// DeclaredNames returns the names of the locals declared directly in stmts.
func DeclaredNames(stmts []jast.Stmt) []string {
	var names []string
	for _, stmt := range stmts {
		if decl, ok := stmt.(*jast.LocalVarDecl); ok {
			for _, v := range decl.Vars {
				names = append(names, v.Name)
			}
		}
	}
	return names
}

// DeclaresAny reports whether a local named in names is declared anywhere
// inside n, nested scopes and catch parameters included.
func DeclaresAny(n jast.Node, names []string) bool {
	if len(names) == 0 {
		return false
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return jast.Any(n, func(c jast.Node) bool {
		switch c := c.(type) {
		case *jast.VarDeclarator:
			return set[c.Name]
		case *jast.CatchClause:
			return set[c.Name]
		}
		return false
	})
}
