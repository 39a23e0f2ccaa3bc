package rules

import (
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
)

// NewInvertEquals calls equals on the constant side of a comparison, which
// cannot be null.
func NewInvertEquals() Rule {
	return &rule{
		name:     "invert-equals",
		doc:      "Calls equals() and equalsIgnoreCase() on the constant operand to avoid a NullPointerException.",
		handlers: Handlers{jast.KindCall: invertEquals},
	}
}

func invertEquals(ctx *Context, n jast.Node) Outcome {
	c := n.(*jast.CallExpr)
	if !match.MatchesSignature(c, "java.lang.Object", "equals", "java.lang.Object") &&
		!match.MatchesSignature(c, "java.lang.String", "equalsIgnoreCase", "java.lang.String") {
		return Continue
	}
	if c.Recv == nil || c.Super || len(c.Args) != 1 {
		return Continue
	}
	recv, arg := jast.Unparen(c.Recv), c.Args[0]
	if _, this := recv.(*jast.ThisExpr); this {
		return Continue
	}
	if _, ok := match.Constant(recv); ok {
		return Continue
	}
	if _, ok := match.Constant(arg); !ok || match.IsPrimitive(arg) {
		return Continue
	}
	b := ctx.Batch
	b.Replace(c, &jast.CallExpr{
		Recv:   b.Move(arg),
		Name:   c.Name,
		Args:   []jast.Expr{b.Move(recv)},
		Method: c.Method,
		Type:   c.Type,
	}, "call equals on the constant")
	return Skip
}
