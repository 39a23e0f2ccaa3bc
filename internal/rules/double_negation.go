package rules

import (
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
)

// NewDoubleNegation removes negations that cancel out or that a comparison
// operator can absorb.
func NewDoubleNegation() Rule {
	return &rule{
		name:     "double-negation",
		doc:      "Removes double negations and negated comparisons.",
		handlers: Handlers{jast.KindUnary: doubleNegation},
	}
}

func doubleNegation(ctx *Context, n jast.Node) Outcome {
	e := n.(*jast.UnaryExpr)
	if e.Op != jast.Not {
		return Continue
	}
	b := ctx.Batch
	switch x := jast.Unparen(e.X).(type) {
	case *jast.UnaryExpr:
		if x.Op != jast.Not {
			return Continue
		}
		b.Replace(e, jast.Fit(ctx.Unit, e, b.Move(x.X)), "remove double negation")
		return Skip
	case *jast.BinaryExpr:
		comp, ok := match.Complement(x.Op)
		if !ok || !match.CanNegateComparison(x) {
			return Continue
		}
		repl := &jast.BinaryExpr{Op: comp, X: b.Move(x.X), Y: b.Move(x.Y), Type: jast.Boolean}
		b.Replace(e, jast.Fit(ctx.Unit, e, repl), "negate comparison")
		return Skip
	}
	return Continue
}
