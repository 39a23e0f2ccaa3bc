package rules

import (
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
	"github.com/autorefactor/autorefactor/internal/purity"
	"github.com/autorefactor/autorefactor/internal/rewrite"
)

// NewOppositeCondition reorders an if/else-if chain whose second condition
// repeats an operand of the first, or its negation, so that the shared
// operand is tested only once:
//
//	if (a && b) A else if (a) B else C
//
// becomes
//
//	if (!a) C else if (b) A else B
//
// and
//
//	if (a && b) A else if (!a) B else C
//
// becomes
//
//	if (!a) B else if (b) A else C
func NewOppositeCondition() Rule {
	return &rule{
		name:     "opposite-condition",
		doc:      "Tests the condition shared by an if/else-if chain first.",
		handlers: Handlers{jast.KindIf: oppositeCondition},
	}
}

func oppositeCondition(ctx *Context, n jast.Node) Outcome {
	s := n.(*jast.IfStmt)
	and, ok := jast.Unparen(s.Cond).(*jast.BinaryExpr)
	if !ok || and.Op != jast.LAnd {
		return Continue
	}
	inner, ok := s.Else.(*jast.IfStmt)
	if !ok || inner.Else == nil {
		return Continue
	}
	// the shared operand is evaluated once instead of twice, and possibly
	// before the other one
	if !purity.ArePassive(and.X, and.Y) {
		return Continue
	}
	var shared, other jast.Expr
	positive, negative := inner.Then, inner.Else
	switch {
	case match.EqualIgnoringOperandOrder(and.X, inner.Cond):
		shared, other = and.X, and.Y
	case match.EqualIgnoringOperandOrder(and.Y, inner.Cond):
		shared, other = and.Y, and.X
	case match.StructurallyOpposite(and.X, inner.Cond):
		shared, other = and.X, and.Y
		positive, negative = inner.Else, inner.Then
	case match.StructurallyOpposite(and.Y, inner.Cond):
		shared, other = and.Y, and.X
		positive, negative = inner.Else, inner.Then
	default:
		return Continue
	}

	b := ctx.Batch
	var second jast.Stmt
	if not, ok := jast.Unparen(other).(*jast.UnaryExpr); ok && not.Op == jast.Not {
		second = jast.If(b.Move(not.X), standalone(b, positive), b.Move(s.Then))
	} else {
		second = jast.If(b.Move(other), standalone(b, s.Then), b.Move(positive))
	}
	repl := jast.If(negation(b, shared), standalone(b, negative), second)
	b.Replace(s, repl, "test the shared condition first")
	return Skip
}

// negation returns the negated form of x built from its moved operands.
func negation(b *rewrite.Batch, x jast.Expr) jast.Expr {
	switch x := jast.Unparen(x).(type) {
	case *jast.UnaryExpr:
		if x.Op == jast.Not {
			return b.Move(x.X)
		}
	case *jast.BinaryExpr:
		if comp, ok := match.Complement(x.Op); ok && match.CanNegateComparison(x) {
			return &jast.BinaryExpr{Op: comp, X: b.Move(x.X), Y: b.Move(x.Y), Type: jast.Boolean}
		}
	}
	return jast.Negate(b.Move(x))
}

// standalone moves s, wrapped in a block when it is an if statement that
// would capture a following else.
func standalone(b *rewrite.Batch, s jast.Stmt) jast.Stmt {
	if _, ok := s.(*jast.IfStmt); ok {
		return jast.BlockOf(b.Move(s))
	}
	return b.Move(s)
}
