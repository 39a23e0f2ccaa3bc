package rules

import (
	"github.com/autorefactor/autorefactor/internal/branch"
	"github.com/autorefactor/autorefactor/internal/jast"
)

// NewRemoveUselessTry inlines try statements whose body cannot throw, so
// that their catch clauses are dead.
func NewRemoveUselessTry() Rule {
	return &rule{
		name:     "remove-useless-try",
		doc:      "Removes try statements whose body cannot throw any exception.",
		handlers: Handlers{jast.KindTry: removeUselessTry},
	}
}

func removeUselessTry(ctx *Context, n jast.Node) Outcome {
	s := n.(*jast.TryStmt)
	if len(s.Resources) > 0 || len(s.Catches) == 0 {
		return Continue
	}
	m := ctx.Unit.EnclosingMethod(s)
	if m == nil {
		return Continue
	}
	for _, st := range s.Body.Stmts {
		if !simpleStatement(st) {
			return Continue
		}
	}
	flow := ctx.Flow(m)
	for _, blk := range flow.Graph.BlocksIn(s.Body) {
		if flow.Throwers.ThrownBy(blk) != nil {
			return Continue
		}
	}

	list, idx, ok := ctx.Unit.Siblings(s)
	if !ok {
		return Continue
	}
	stmts := append([]jast.Stmt{}, s.Body.Stmts...)
	var finally []jast.Stmt
	if s.Finally != nil {
		finally = s.Finally.Stmts
	}
	names := branch.DeclaredNames(append(stmts, finally...))
	if len(names) > 0 {
		for _, other := range list[idx+1:] {
			if branch.DeclaresAny(other, names) {
				return Continue
			}
		}
		if branch.DeclaresAny(jast.BlockOf(finally...), branch.DeclaredNames(stmts)) {
			return Continue
		}
	}

	b := ctx.Batch
	const desc = "inline try body"
	var moved []jast.Stmt
	if len(stmts) > 0 {
		moved = append(moved, b.Move(jast.NodesOf(stmts)...))
	}
	if len(finally) > 0 {
		moved = append(moved, b.Move(jast.NodesOf(finally)...))
	}
	if len(moved) == 0 {
		b.Remove(s, desc)
	} else {
		b.Replace(s, &jast.StmtList{Stmts: moved}, desc)
	}
	return Skip
}

// simpleStatement reports whether s completes normally without leaving its
// statement list.
func simpleStatement(s jast.Stmt) bool {
	switch s := s.(type) {
	case *jast.ExprStmt, *jast.LocalVarDecl, *jast.EmptyStmt:
		return true
	case *jast.Block:
		for _, c := range s.Stmts {
			if !simpleStatement(c) {
				return false
			}
		}
		return true
	case *jast.IfStmt:
		return simpleStatement(s.Then) && (s.Else == nil || simpleStatement(s.Else))
	}
	return false
}
