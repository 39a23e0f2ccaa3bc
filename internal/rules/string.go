package rules

import (
	"unicode/utf8"

	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
)

// NewStringRule removes String calls that do not change the result.
func NewStringRule() Rule {
	return &rule{
		name: "string",
		doc:  "Removes useless String conversions and case changes, and searches single characters as chars.",
		handlers: Handlers{
			jast.KindBinary: stringConcatenation,
			jast.KindCall:   stringCall,
		},
	}
}

var equalsIgnoreCase = &jast.MethodBinding{
	DeclaringType: jast.StringType,
	Name:          "equalsIgnoreCase",
	Params:        []*jast.TypeBinding{jast.StringType},
	Return:        jast.Boolean,
}

// stringConcatenation drops toString() and String.valueOf() calls whose
// result is concatenated to a String, which converts it anyway.
func stringConcatenation(ctx *Context, n jast.Node) Outcome {
	e := n.(*jast.BinaryExpr)
	if e.Op != jast.Add || !jast.IsStringType(e.Type) {
		return Continue
	}
	b := ctx.Batch
	operands := [2]jast.Expr{e.X, e.Y}
	for i, operand := range operands {
		other := operands[1-i]
		if !jast.IsStringType(jast.TypeOf(other)) {
			continue
		}
		if x, ok := convertedOperand(operand); ok {
			// the other operand may only have been a String through this one
			b.Replace(operand, jast.Fit(ctx.Unit, operand, b.Move(x)), "remove useless String conversion")
			return Continue
		}
	}
	return Continue
}

// convertedOperand returns x when e is x.toString() with x never null,
// String.valueOf(x), or a wrapper's static toString(x) of a matching
// primitive.
func convertedOperand(e jast.Expr) (jast.Expr, bool) {
	c, ok := jast.Unparen(e).(*jast.CallExpr)
	if !ok || c.Method == nil {
		return nil, false
	}
	switch {
	case match.MatchesSignature(c, "java.lang.Object", "toString"):
		if c.Recv != nil && !c.Super && nonNull(c.Recv) {
			return c.Recv, true
		}
	case c.Method.Static && c.Method.DeclaringType.Is("java.lang.String") &&
		c.Name == "valueOf" && len(c.Args) == 1:
		// valueOf(char[]) builds a String from the array contents
		if t := jast.TypeOf(c.Args[0]); t != nil && !t.IsArray() {
			return c.Args[0], true
		}
	case c.Method.Static && c.Name == "toString" && len(c.Args) == 1 && len(c.Method.Params) == 1:
		// Integer.toString(c) of a char prints its code, not the char
		prim, ok := jast.UnboxedType(c.Method.DeclaringType)
		if ok && prim.Is(c.Method.Params[0].QualifiedName) && jast.TypeOf(c.Args[0]).Is(prim.QualifiedName) {
			return c.Args[0], true
		}
	}
	return nil, false
}

// nonNull reports whether x is never null: a StringBuilder chain started
// by a constructor returns its receiver at each append.
func nonNull(x jast.Expr) bool {
	if match.IsNonNull(x) {
		return true
	}
	c, ok := jast.Unparen(x).(*jast.CallExpr)
	if !ok || c.Recv == nil || c.Method == nil || c.Name != "append" {
		return false
	}
	if !c.Method.DeclaringType.Is("java.lang.StringBuilder") && !c.Method.DeclaringType.Is("java.lang.StringBuffer") {
		return false
	}
	return nonNull(c.Recv)
}

func stringCall(ctx *Context, n jast.Node) Outcome {
	c := n.(*jast.CallExpr)
	switch {
	case match.MatchesSignature(c, "java.lang.Object", "equals", "java.lang.Object"):
		return caseInsensitiveEquals(ctx, c)
	case match.MatchesSignature(c, "java.lang.String", "equalsIgnoreCase", "java.lang.String"):
		return redundantCaseChange(ctx, c)
	case match.MatchesSignature(c, "java.lang.String", "indexOf", "java.lang.String"),
		match.MatchesSignature(c, "java.lang.String", "indexOf", "java.lang.String", "int"),
		match.MatchesSignature(c, "java.lang.String", "lastIndexOf", "java.lang.String"),
		match.MatchesSignature(c, "java.lang.String", "lastIndexOf", "java.lang.String", "int"):
		return singleCharSearch(ctx, c)
	}
	return Continue
}

// caseInsensitiveEquals rewrites a.toLowerCase().equals(b.toLowerCase()).
func caseInsensitiveEquals(ctx *Context, c *jast.CallExpr) Outcome {
	if c.Recv == nil || len(c.Args) != 1 {
		return Continue
	}
	recv, ok1 := caseChange(c.Recv)
	arg, ok2 := caseChange(c.Args[0])
	if !ok1 || !ok2 || recv.Name != arg.Name || !match.IsNonNull(arg.Recv) {
		return Continue
	}
	b := ctx.Batch
	b.Replace(c, jast.Call(b.Move(recv.Recv), equalsIgnoreCase, b.Move(arg.Recv)), "use equalsIgnoreCase")
	return Skip
}

// redundantCaseChange drops case changes of equalsIgnoreCase operands.
func redundantCaseChange(ctx *Context, c *jast.CallExpr) Outcome {
	if c.Recv == nil || len(c.Args) != 1 {
		return Continue
	}
	b := ctx.Batch
	const desc = "remove useless case change"
	if recv, ok := caseChange(c.Recv); ok {
		b.Replace(c.Recv, b.Move(recv.Recv), desc)
	}
	if arg, ok := caseChange(c.Args[0]); ok && match.IsNonNull(arg.Recv) {
		b.Replace(c.Args[0], b.Move(arg.Recv), desc)
	}
	return Continue
}

// caseChange matches x.toLowerCase() and x.toUpperCase().
func caseChange(e jast.Expr) (*jast.CallExpr, bool) {
	c, ok := jast.Unparen(e).(*jast.CallExpr)
	if !ok || c.Recv == nil {
		return nil, false
	}
	if match.MatchesSignature(c, "java.lang.String", "toLowerCase") ||
		match.MatchesSignature(c, "java.lang.String", "toUpperCase") {
		return c, true
	}
	return nil, false
}

// singleCharSearch replaces a one character String argument by a char.
func singleCharSearch(ctx *Context, c *jast.CallExpr) Outcome {
	lit, ok := jast.Unparen(c.Args[0]).(*jast.Literal)
	if !ok || lit.LitKind != jast.StringLit {
		return Continue
	}
	s, err := jast.Unquote(lit.Raw)
	if err != nil || utf8.RuneCountInString(s) != 1 {
		return Continue
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || r > 0xFFFF {
		return Continue
	}
	ctx.Batch.Replace(c.Args[0], jast.CharLiteral(r), "search a char")
	return Continue
}
