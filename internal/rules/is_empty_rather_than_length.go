package rules

import (
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
)

// NewIsEmptyRatherThanLength replaces comparisons of a String length with
// zero by isEmpty(), which appeared in Java 6.
func NewIsEmptyRatherThanLength() Rule {
	return &gatedRule{
		rule: rule{
			name:     "is-empty-rather-than-length",
			doc:      "Replaces s.length() == 0 by s.isEmpty().",
			handlers: Handlers{jast.KindBinary: isEmptyRatherThanLength},
		},
		minLevel:   6,
		capability: "String.isEmpty",
	}
}

var isEmptyMethod = &jast.MethodBinding{
	DeclaringType: jast.StringType,
	Name:          "isEmpty",
	Return:        jast.Boolean,
}

// emptyWhen maps a comparison of length() with zero, length on the left,
// to whether it holds for an empty string.
var emptyWhen = map[jast.BinaryOp]bool{
	jast.Eql: true,
	jast.Leq: true,
	jast.Neq: false,
	jast.Gtr: false,
}

// mirrored maps the operator of 0 op length() to length() op' 0.
var mirrored = map[jast.BinaryOp]jast.BinaryOp{
	jast.Eql: jast.Eql,
	jast.Neq: jast.Neq,
	jast.Lss: jast.Gtr,
	jast.Geq: jast.Leq,
}

func isEmptyRatherThanLength(ctx *Context, n jast.Node) Outcome {
	e := n.(*jast.BinaryExpr)
	length, zero, op := e.X, e.Y, e.Op
	if !stringLength(length) {
		var ok bool
		if op, ok = mirrored[e.Op]; !ok {
			return Continue
		}
		length, zero = e.Y, e.X
	}
	if !stringLength(length) {
		return Continue
	}
	if v, ok := match.IntConstant(zero); !ok || v != 0 {
		return Continue
	}
	empty, ok := emptyWhen[op]
	if !ok {
		return Continue
	}

	b := ctx.Batch
	call := jast.Unparen(length).(*jast.CallExpr)
	var repl jast.Expr = jast.Call(b.Move(call.Recv), isEmptyMethod)
	if !empty {
		repl = jast.Negate(repl)
	}
	b.Replace(e, jast.Fit(ctx.Unit, e, repl), "use isEmpty()")
	return Skip
}

func stringLength(e jast.Expr) bool {
	c, ok := jast.Unparen(e).(*jast.CallExpr)
	return ok && c.Recv != nil && match.MatchesSignature(c, "java.lang.String", "length")
}
