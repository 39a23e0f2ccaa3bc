package rules

import (
	"github.com/autorefactor/autorefactor/internal/branch"
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/purity"
	"github.com/autorefactor/autorefactor/internal/reach"
)

// NewPeremptoryCondition removes the branch of an if statement that can
// never run, along with the code a live branch ending in return or throw
// makes unreachable.
func NewPeremptoryCondition() Rule {
	return &rule{
		name:     "peremptory-condition",
		doc:      "Removes dead branches of if statements whose condition always has the same value.",
		handlers: Handlers{jast.KindIf: peremptoryCondition},
	}
}

func peremptoryCondition(ctx *Context, n jast.Node) Outcome {
	s := n.(*jast.IfStmt)
	if !purity.IsPassive(s.Cond) {
		return Continue
	}
	_, live, ok := reach.DeadBranch(ctx.Unit, s)
	if !ok {
		return Continue
	}
	u, b := ctx.Unit, ctx.Batch
	const desc = "inline live branch"

	if parent, ok := u.Parent(s).(*jast.IfStmt); ok && parent.Else == jast.Stmt(s) && live == nil {
		b.Replace(parent, jast.If(parent.Cond, parent.Then, nil), desc)
		return Skip
	}

	list, idx, inList := u.Siblings(s)
	if !inList {
		if live == nil {
			b.Replace(s, jast.BlockOf(), desc)
		} else {
			b.Replace(s, b.Move(live), desc)
		}
		return Skip
	}

	stmts := jast.StmtsOf(live)
	if names := branch.DeclaredNames(stmts); len(names) > 0 {
		// inlined declarations must not clash with later ones in the same scope
		for _, later := range list[idx+1:] {
			if branch.DeclaresAny(later, names) {
				return Continue
			}
		}
	}
	if len(stmts) == 0 {
		b.Remove(s, desc)
	} else {
		b.Replace(s, b.Move(jast.NodesOf(stmts)...), desc)
	}
	if live != nil && branch.AlwaysExits(live) {
		for _, dead := range reach.TrailingDeadCode(u, s) {
			b.Remove(dead, "remove unreachable code")
		}
	}
	return Skip
}
