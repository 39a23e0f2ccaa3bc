package rules

import (
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
	"github.com/autorefactor/autorefactor/internal/purity"
)

// NewStringBuilder lets StringBuilder and StringBuffer do the work of the
// String operations passed to append:
//
//	sb.append(s.substring(a, b))  becomes  sb.append(s, a, b)
//	sb.append("x" + i + c)        becomes  sb.append("x").append(i).append(c)
//	sb.append(o.toString())       becomes  sb.append(o)
func NewStringBuilder() Rule {
	return &rule{
		name:     "string-builder",
		doc:      "Appends the operands of a String operation directly to a StringBuilder.",
		handlers: Handlers{jast.KindCall: stringBuilderAppend},
	}
}

func stringBuilderAppend(ctx *Context, n jast.Node) Outcome {
	c := n.(*jast.CallExpr)
	if c.Recv == nil || c.Super || len(c.Args) != 1 || !builderAppend(c) {
		return Continue
	}
	arg := c.Args[0]
	if sub, ok := jast.Unparen(arg).(*jast.CallExpr); ok {
		switch {
		case match.MatchesSignature(sub, "java.lang.String", "substring", "int", "int"):
			return appendRange(ctx, c, sub)
		default:
			return appendConverted(ctx, c, sub)
		}
	}
	if e, ok := jast.Unparen(arg).(*jast.BinaryExpr); ok && e.Op == jast.Add && jast.IsStringType(e.Type) {
		return appendOperands(ctx, c, e)
	}
	return Continue
}

// builderAppend reports whether c is one of the single argument append
// methods of StringBuilder or StringBuffer.
func builderAppend(c *jast.CallExpr) bool {
	if c.Name != "append" || c.Method == nil || len(c.Method.Params) != 1 {
		return false
	}
	t := c.Method.DeclaringType
	return t.Is("java.lang.StringBuilder") || t.Is("java.lang.StringBuffer")
}

// appendRange appends a range of the String rather than a copy of it. A null
// String would be appended as "null" rather than throw.
func appendRange(ctx *Context, c, sub *jast.CallExpr) Outcome {
	if sub.Recv == nil || !nonNull(sub.Recv) {
		return Continue
	}
	b := ctx.Batch
	m := &jast.MethodBinding{
		DeclaringType: c.Method.DeclaringType,
		Name:          "append",
		Params:        []*jast.TypeBinding{sub.Method.DeclaringType, jast.Int, jast.Int},
		Return:        c.Method.Return,
	}
	b.Replace(c, jast.Call(b.Move(c.Recv), m, b.Move(sub.Recv), b.Move(sub.Args[0]), b.Move(sub.Args[1])),
		"append a range of the String")
	return Skip
}

// appendConverted drops a conversion to String that append does itself.
func appendConverted(ctx *Context, c, conv *jast.CallExpr) Outcome {
	x, ok := convertedOperand(conv)
	if !ok {
		return Continue
	}
	t := jast.TypeOf(x)
	if !appendsAsString(t) {
		return Continue
	}
	b := ctx.Batch
	b.Replace(c.Args[0], b.Move(x), "remove useless String conversion")
	return Continue
}

// appendOperands appends each operand of a String concatenation in turn.
// Only the operands left of and including the first String are split: the
// rest of the left spine may be numeric addition.
func appendOperands(ctx *Context, c *jast.CallExpr, e *jast.BinaryExpr) Outcome {
	operands := concatOperands(e)
	if !purity.ArePassive(operands...) {
		return Continue
	}
	for _, x := range operands {
		if !appendsAsString(jast.TypeOf(x)) || match.IsNull(x) {
			return Continue
		}
	}

	b := ctx.Batch
	chain := jast.Expr(b.Move(c.Recv))
	for _, x := range operands {
		m := &jast.MethodBinding{
			DeclaringType: c.Method.DeclaringType,
			Name:          "append",
			Params:        []*jast.TypeBinding{jast.TypeOf(x)},
			Return:        c.Method.Return,
		}
		chain = jast.Call(chain, m, b.Move(x))
	}
	b.Replace(c, chain, "append each operand")
	return Skip
}

// concatOperands flattens the left spine of a String concatenation.
func concatOperands(e *jast.BinaryExpr) []jast.Expr {
	var rev []jast.Expr
	var x jast.Expr = e
	for {
		bin, ok := jast.Unparen(x).(*jast.BinaryExpr)
		if !ok || bin.Op != jast.Add || !jast.IsStringType(bin.Type) {
			break
		}
		rev = append(rev, bin.Y)
		x = bin.X
	}
	rev = append(rev, x)
	out := make([]jast.Expr, len(rev))
	for i, x := range rev {
		out[len(rev)-1-i] = x
	}
	return out
}

// appendsAsString reports whether append converts a value of type t the
// way String conversion does. Arrays of char are appended by content.
func appendsAsString(t *jast.TypeBinding) bool {
	return t != nil && !t.IsArray() && !t.Is("null")
}
