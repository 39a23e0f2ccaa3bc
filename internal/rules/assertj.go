package rules

import (
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
	"github.com/autorefactor/autorefactor/internal/purity"
	"github.com/autorefactor/autorefactor/internal/rewrite"
)

const (
	assertions    = "org.assertj.core.api.Assertions"
	booleanAssert = "org.assertj.core.api.AbstractBooleanAssert"
)

// NewAssertJ replaces AssertJ assertions on a computed boolean by the
// dedicated assertion, whose failure message shows the values involved:
//
//	assertThat(x == null).isTrue()   becomes  assertThat(x).isNull()
//	assertThat(!b).isFalse()         becomes  assertThat(b).isTrue()
//	assertThat(i < j).isFalse()      becomes  assertThat(i).isGreaterThanOrEqualTo(j)
//	assertThat(a.equals(b)).isTrue() becomes  assertThat(a).isEqualTo(b)
func NewAssertJ() Rule {
	return &rule{
		name:     "assertj",
		doc:      "Uses the dedicated AssertJ assertion rather than asserting a computed boolean.",
		handlers: Handlers{jast.KindCall: assertJ},
	}
}

// assertion is a rewritten assertThat(actual).method(args) chain.
type assertion struct {
	actual jast.Expr
	method string
	args   []jast.Expr
}

func assertJ(ctx *Context, n jast.Node) Outcome {
	c := n.(*jast.CallExpr)
	expected, normalize, ok := assertedBoolean(c)
	if !ok {
		return Continue
	}
	described, start := assertThatChain(c.Recv)
	if start == nil {
		return Continue
	}
	if described != nil && !purity.ArePassive(described.Args...) {
		return Continue
	}

	actual := start.Args[0]
	negated := false
	for {
		not, ok := jast.Unparen(actual).(*jast.UnaryExpr)
		if !ok || not.Op != jast.Not {
			break
		}
		actual, expected, negated = not.X, !expected, true
	}

	a, ok := dedicatedAssertion(actual, expected)
	switch {
	case ok:
	case negated || normalize:
		a = assertion{actual: actual, method: "isFalse"}
		if expected {
			a.method = "isTrue"
		}
	default:
		return Continue
	}
	// the description is evaluated between the operands
	if described != nil && !purity.ArePassive(a.args...) {
		return Continue
	}

	b := ctx.Batch
	var chain jast.Expr = &jast.CallExpr{
		Recv:   moveOrNil(b, start.Recv),
		Name:   start.Name,
		Args:   []jast.Expr{b.Move(a.actual)},
		Method: &jast.MethodBinding{DeclaringType: start.Method.DeclaringType, Name: start.Name, Static: true},
	}
	if described != nil {
		args := make([]jast.Expr, len(described.Args))
		for i, arg := range described.Args {
			args[i] = b.Move(arg)
		}
		chain = &jast.CallExpr{Recv: chain, Name: described.Name, Args: args, Method: described.Method}
	}
	args := make([]jast.Expr, len(a.args))
	for i, arg := range a.args {
		args[i] = b.Move(arg)
	}
	chain = &jast.CallExpr{Recv: chain, Name: a.method, Args: args, Method: &jast.MethodBinding{Name: a.method}}
	b.Replace(c, chain, "use a dedicated assertion")
	return Skip
}

// moveOrNil moves x, keeping an absent qualifier absent.
func moveOrNil(b *rewrite.Batch, x jast.Expr) jast.Expr {
	if x == nil {
		return nil
	}
	return b.Move(x)
}

// assertedBoolean returns the value c asserts its boolean actual to have,
// and whether c compares with a literal rather than calling isTrue() or
// isFalse().
func assertedBoolean(c *jast.CallExpr) (expected, literal, ok bool) {
	switch {
	case match.MatchesSignature(c, booleanAssert, "isTrue"):
		return true, false, true
	case match.MatchesSignature(c, booleanAssert, "isFalse"):
		return false, false, true
	case match.MatchesSignature(c, booleanAssert, "isEqualTo", "boolean"),
		match.MatchesSignature(c, booleanAssert, "isNotEqualTo", "boolean"):
		lit, isLit := jast.Unparen(c.Args[0]).(*jast.Literal)
		if !isLit || lit.LitKind != jast.BoolLit {
			return false, false, false
		}
		v, _ := match.BoolConstant(lit)
		return v == (c.Name == "isEqualTo"), true, true
	}
	return false, false, false
}

// assertThatChain matches assertThat(actual) optionally followed by a
// description, and returns both calls.
func assertThatChain(x jast.Expr) (described, start *jast.CallExpr) {
	c, ok := jast.Unparen(x).(*jast.CallExpr)
	if !ok {
		return nil, nil
	}
	if match.MatchesSignature(c, booleanAssert, "as", "java.lang.String") ||
		match.MatchesSignature(c, booleanAssert, "describedAs", "java.lang.String") {
		described = c
		if c, ok = jast.Unparen(c.Recv).(*jast.CallExpr); !ok {
			return nil, nil
		}
	}
	if c.Method == nil || !c.Method.Static || !c.Method.DeclaringType.Is(assertions) ||
		c.Name != "assertThat" || len(c.Args) != 1 {
		return nil, nil
	}
	return described, c
}

// comparisons names the assertion equivalent to actual op other.
var comparisons = map[jast.BinaryOp]string{
	jast.Eql: "isEqualTo",
	jast.Neq: "isNotEqualTo",
	jast.Lss: "isLessThan",
	jast.Leq: "isLessThanOrEqualTo",
	jast.Gtr: "isGreaterThan",
	jast.Geq: "isGreaterThanOrEqualTo",
}

// dedicatedAssertion finds the assertion equivalent to asserting that
// actual is expected.
func dedicatedAssertion(actual jast.Expr, expected bool) (assertion, bool) {
	switch x := jast.Unparen(actual).(type) {
	case *jast.BinaryExpr:
		return comparisonAssertion(x, expected)
	case *jast.CallExpr:
		return equalsAssertion(x, expected)
	}
	return assertion{}, false
}

func comparisonAssertion(x *jast.BinaryExpr, expected bool) (assertion, bool) {
	op := x.Op
	if _, ok := comparisons[op]; !ok {
		return assertion{}, false
	}
	if !expected {
		comp, ok := match.Complement(op)
		if !ok || !match.CanNegateComparison(x) {
			return assertion{}, false
		}
		op = comp
	}
	equality := op == jast.Eql || op == jast.Neq

	xt, yt := jast.TypeOf(x.X), jast.TypeOf(x.Y)
	switch {
	case equality && match.IsNull(x.Y) && !match.IsNull(x.X):
		return nullAssertion(x.X, op), true
	case equality && match.IsNull(x.X) && !match.IsNull(x.Y):
		return nullAssertion(x.Y, op), true
	case xt == nil || yt == nil:
		return assertion{}, false
	case xt.Primitive && yt.Primitive:
		if xt.QualifiedName != yt.QualifiedName {
			return assertion{}, false
		}
		switch {
		case xt.Is("int"), xt.Is("long"):
		case xt.Is("boolean") && equality:
		default:
			return assertion{}, false
		}
		return assertion{actual: x.X, method: comparisons[op], args: []jast.Expr{x.Y}}, true
	case equality && !xt.Primitive && !yt.Primitive:
		// references compare by identity
		method := "isSameAs"
		if op == jast.Neq {
			method = "isNotSameAs"
		}
		return assertion{actual: x.X, method: method, args: []jast.Expr{x.Y}}, true
	}
	return assertion{}, false
}

func nullAssertion(x jast.Expr, op jast.BinaryOp) assertion {
	if op == jast.Eql {
		return assertion{actual: x, method: "isNull"}
	}
	return assertion{actual: x, method: "isNotNull"}
}

// equalsAssertion handles a.equals(b). AssertJ compares with a.equals(b)
// too, but reports a null a as a failure instead of throwing.
func equalsAssertion(c *jast.CallExpr, expected bool) (assertion, bool) {
	if !match.MatchesSignature(c, "java.lang.Object", "equals", "java.lang.Object") ||
		c.Recv == nil || c.Super || len(c.Args) != 1 {
		return assertion{}, false
	}
	recv, arg := c.Recv, c.Args[0]
	if t := jast.TypeOf(recv); t == nil || t.IsArray() {
		return assertion{}, false
	}
	method := "isNotEqualTo"
	if expected {
		method = "isEqualTo"
	}
	// String.equals is symmetric, so the constant becomes the expected value
	if _, ok := match.StringConstant(recv); ok && jast.IsStringType(jast.TypeOf(arg)) && !match.IsNull(arg) {
		return assertion{actual: arg, method: method, args: []jast.Expr{recv}}, true
	}
	if !nonNull(recv) {
		return assertion{}, false
	}
	return assertion{actual: recv, method: method, args: []jast.Expr{arg}}, true
}
