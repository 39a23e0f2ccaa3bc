package rules

import (
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
	"github.com/autorefactor/autorefactor/internal/purity"
)

// NewBreakRatherThanPassiveIterations adds a break to loops whose remaining
// iterations cannot change anything once a final if statement has run.
//
//	for (int i = 0; i < xs.length; i++) {
//	    if (xs[i] == 0) {
//	        found = true;
//	    }
//	}
//
// becomes the same loop with a break after found = true.
func NewBreakRatherThanPassiveIterations() Rule {
	return &rule{
		name: "break-rather-than-passive-iterations",
		doc:  "Stops a loop with a break once the assignments of its last if statement have run.",
		handlers: Handlers{
			jast.KindFor:     breakFor,
			jast.KindForEach: breakForEach,
		},
	}
}

func breakFor(ctx *Context, n jast.Node) Outcome {
	s := n.(*jast.ForStmt)
	whitelist := purity.NewWhitelist()
	for _, init := range s.Init {
		decl, ok := init.(*jast.LocalVarDecl)
		if !ok {
			return Continue
		}
		whitelist.Add(decl)
	}
	if s.Cond != nil && !purity.IsSideEffectFree(s.Cond, whitelist) {
		return Continue
	}
	for _, update := range s.Update {
		if !purity.IsSideEffectFree(update, whitelist) {
			return Continue
		}
	}
	return addBreak(ctx, s.Body, whitelist)
}

func breakForEach(ctx *Context, n jast.Node) Outcome {
	s := n.(*jast.ForEachStmt)
	if t := jast.TypeOf(s.X); !t.IsArray() || !purity.IsPassive(s.X) {
		return Continue
	}
	return addBreak(ctx, s.Body, purity.NewWhitelist(s.Var.Name))
}

func addBreak(ctx *Context, body jast.Stmt, whitelist purity.Whitelist) Outcome {
	stmts := jast.StmtsOf(body)
	if len(stmts) == 0 {
		return Continue
	}
	for _, st := range stmts {
		if decl, ok := st.(*jast.LocalVarDecl); ok {
			whitelist.Add(decl)
		}
	}
	for _, st := range stmts[:len(stmts)-1] {
		if !passiveIteration(st, whitelist) {
			return Continue
		}
	}

	last, ok := stmts[len(stmts)-1].(*jast.IfStmt)
	if !ok || last.Else != nil || !purity.IsSideEffectFree(last.Cond, whitelist) {
		return Continue
	}
	assignments := jast.StmtsOf(last.Then)
	if len(assignments) == 0 {
		return Continue
	}
	for _, st := range assignments {
		if !hardCodedAssignment(st, whitelist) {
			return Continue
		}
	}

	const desc = "break once the result is known"
	b := ctx.Batch
	if _, isBlock := last.Then.(*jast.Block); isBlock {
		b.InsertAfter(assignments[len(assignments)-1], jast.Break(), desc)
	} else {
		b.Replace(last, jast.If(last.Cond, jast.BlockOf(b.Move(last.Then), jast.Break()), nil), desc)
	}
	return Continue
}

// passiveIteration reports whether s only touches whitelisted locals and
// completes normally.
func passiveIteration(s jast.Stmt, whitelist purity.Whitelist) bool {
	if jast.Any(s, leavesStatement) {
		return false
	}
	return purity.IsSideEffectFree(s, whitelist)
}

func leavesStatement(n jast.Node) bool {
	switch n.(type) {
	case *jast.BranchStmt, *jast.ReturnStmt, *jast.ThrowStmt, *jast.LabeledStmt:
		return true
	}
	return false
}

// hardCodedAssignment reports whether s is a declaration, or assigns a
// constant value to a variable living outside the loop.
func hardCodedAssignment(s jast.Stmt, whitelist purity.Whitelist) bool {
	switch s := s.(type) {
	case *jast.LocalVarDecl:
		return purity.IsSideEffectFree(s, whitelist)
	case *jast.ExprStmt:
		a, ok := s.X.(*jast.AssignExpr)
		if !ok || a.Op != jast.Assign || !match.IsHardCoded(a.RHS) {
			return false
		}
		switch lhs := jast.Unparen(a.LHS).(type) {
		case *jast.Ident:
			return lhs.Var != nil && !whitelist[lhs.Name]
		case *jast.FieldAccess:
			_, onThis := jast.Unparen(lhs.X).(*jast.ThisExpr)
			return onThis
		}
	}
	return false
}
