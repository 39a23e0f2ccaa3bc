package rules

import (
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/purity"
	"github.com/autorefactor/autorefactor/internal/reach"
)

// NewRemoveEmptyStatement removes statements that do nothing.
func NewRemoveEmptyStatement() Rule {
	return &rule{
		name: "remove-empty-statement",
		doc:  "Removes empty statements, empty blocks and control statements with empty bodies.",
		handlers: Handlers{
			jast.KindEmpty: removeEmptyStatement,
			jast.KindBlock: removeEmptyStatement,
			jast.KindIf:    removeEmptyIf,
			jast.KindWhile: removeEmptyLoop,
			jast.KindDo:    removeEmptyLoop,
			jast.KindFor:   removeEmptyLoop,
		},
	}
}

const removeEmptyDesc = "remove empty statement"

func removeEmptyStatement(ctx *Context, n jast.Node) Outcome {
	s := n.(jast.Stmt)
	if !jast.IsEmptyStmt(s) || commented(ctx, s) {
		return Continue
	}
	if _, _, ok := ctx.Unit.Siblings(s); ok {
		ctx.Batch.Remove(s, removeEmptyDesc)
		return Skip
	}
	return Continue
}

func removeEmptyIf(ctx *Context, n jast.Node) Outcome {
	s := n.(*jast.IfStmt)
	if !purity.IsPassive(s.Cond) {
		return Continue
	}
	switch {
	case jast.IsEmptyStmt(s.Then) && jast.IsEmptyStmt(s.Else) && !commented(ctx, s):
		removeStatement(ctx, s)
		return Skip
	case s.Else != nil && jast.IsEmptyStmt(s.Else) && !commented(ctx, s.Else):
		ctx.Batch.Replace(s, jast.If(s.Cond, s.Then, nil), removeEmptyDesc)
		return Skip
	}
	return Continue
}

func removeEmptyLoop(ctx *Context, n jast.Node) Outcome {
	s := n.(jast.Stmt)
	var body jast.Stmt
	var cond jast.Expr
	switch s := s.(type) {
	case *jast.WhileStmt:
		body, cond = s.Body, s.Cond
	case *jast.DoStmt:
		body, cond = s.Body, s.Cond
	case *jast.ForStmt:
		for _, init := range s.Init {
			if !purity.IsPassive(init) {
				return Continue
			}
		}
		if s.Cond == nil {
			return Continue
		}
		body, cond = s.Body, s.Cond
	}
	if !jast.IsEmptyStmt(body) || !purity.IsPassive(cond) || commented(ctx, s) {
		return Continue
	}
	// an empty loop only does nothing when it stops right away
	if reach.AlwaysEvaluatesTo(ctx.Unit, s, cond) != reach.False {
		return Continue
	}
	removeStatement(ctx, s)
	return Skip
}

// commented reports whether comments lie inside s; they would be lost.
func commented(ctx *Context, s jast.Stmt) bool {
	return len(ctx.Unit.CommentsIn(s.Pos(), s.End())) > 0
}

// removeStatement deletes s, leaving an empty block where a statement is
// required, and dropping the else branch s forms.
func removeStatement(ctx *Context, s jast.Stmt) {
	u, b := ctx.Unit, ctx.Batch
	if _, _, ok := u.Siblings(s); ok {
		b.Remove(s, removeEmptyDesc)
		return
	}
	if parent, ok := u.Parent(s).(*jast.IfStmt); ok && parent.Else == s {
		b.Replace(parent, jast.If(parent.Cond, parent.Then, nil), removeEmptyDesc)
		return
	}
	b.Replace(s, jast.BlockOf(), removeEmptyDesc)
}
