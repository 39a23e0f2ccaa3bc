// Package match answers semantic questions about resolved syntax: which
// method a call resolves to, what value an expression always has, and
// whether two expressions are the same or opposite conditions.
package match

import (
	"go/constant"
	"go/token"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// MatchesSignature reports whether n is a call, constructor call or method
// declaration bound to member of declaringType (or of a subtype) taking
// exactly paramTypes. A primitive parameter type matches its wrapper class
// and the other way around. Unresolved nodes never match.
func MatchesSignature(n jast.Node, declaringType, member string, paramTypes ...string) bool {
	m := jast.MethodOf(n)
	if m == nil || m.DeclaringType == nil {
		return false
	}
	if m.Name != member || len(m.Params) != len(paramTypes) {
		return false
	}
	if !m.DeclaringType.IsSubtypeOf(declaringType) {
		return false
	}
	for i, p := range m.Params {
		if !sameType(p, paramTypes[i]) {
			return false
		}
	}
	return true
}

func sameType(t *jast.TypeBinding, name string) bool {
	if t == nil {
		return false
	}
	if t.QualifiedName == name {
		return true
	}
	if boxed, ok := jast.BoxedName(t); ok {
		return boxed == name
	}
	if prim, ok := jast.UnboxedType(t); ok {
		return prim.QualifiedName == name
	}
	return false
}

// Unparen strips enclosing parentheses.
func Unparen(e jast.Expr) jast.Expr { return jast.Unparen(e) }

// HasType reports whether the static type of e is one of qualifiedNames.
func HasType(e jast.Expr, qualifiedNames ...string) bool {
	t := jast.TypeOf(e)
	if t == nil {
		return false
	}
	for _, n := range qualifiedNames {
		if t.QualifiedName == n {
			return true
		}
	}
	return false
}

// IsPrimitive reports whether e has a primitive type, restricted to names
// when any are given.
func IsPrimitive(e jast.Expr, names ...string) bool {
	t := jast.TypeOf(e)
	if t == nil || !t.Primitive {
		return false
	}
	return len(names) == 0 || HasType(e, names...)
}

// IsBoxed reports whether e has one of the eight wrapper class types.
func IsBoxed(e jast.Expr) bool {
	return jast.IsBoxedType(jast.TypeOf(e))
}

// Boxed returns the wrapper class name for a primitive expression type.
func Boxed(e jast.Expr) (string, bool) {
	return jast.BoxedName(jast.TypeOf(e))
}

// Unboxed returns the primitive type behind a wrapper class expression type.
func Unboxed(e jast.Expr) (*jast.TypeBinding, bool) {
	return jast.UnboxedType(jast.TypeOf(e))
}

// IsNull reports whether e is the null literal.
func IsNull(e jast.Expr) bool {
	l, ok := jast.Unparen(e).(*jast.Literal)
	return ok && l.LitKind == jast.NullLit
}

// IsHardCoded reports whether e is built only from literals and constants.
func IsHardCoded(e jast.Expr) bool {
	if _, ok := Constant(e); ok {
		return true
	}
	switch e := jast.Unparen(e).(type) {
	case *jast.Literal:
		return true
	case *jast.UnaryExpr:
		return e.Op != jast.PreInc && e.Op != jast.PreDec && IsHardCoded(e.X)
	case *jast.BinaryExpr:
		return IsHardCoded(e.X) && IsHardCoded(e.Y)
	case *jast.CastExpr:
		return IsHardCoded(e.X)
	}
	return false
}

// IsNonNull reports whether e can be shown never to evaluate to null
// without looking beyond the expression itself.
func IsNonNull(e jast.Expr) bool {
	switch e := jast.Unparen(e).(type) {
	case *jast.Literal:
		return e.LitKind != jast.NullLit
	case *jast.ThisExpr, *jast.NewExpr:
		return true
	case *jast.BinaryExpr:
		return e.Op == jast.Add && jast.IsStringType(e.Type)
	}
	if t := jast.TypeOf(e); t != nil && t.Primitive {
		return true
	}
	if _, ok := Constant(e); ok {
		return true
	}
	return false
}

// StructurallyEqual reports whether a and b are the same expression,
// ignoring parentheses. Identifiers are compared by binding when both are
// resolved.
func StructurallyEqual(a, b jast.Expr) bool {
	return equal(a, b, false)
}

// EqualIgnoringOperandOrder is StructurallyEqual, but also matches operands
// of commutative operators in swapped order and mirrored comparisons
// (a < b against b > a).
func EqualIgnoringOperandOrder(a, b jast.Expr) bool {
	return equal(a, b, true)
}

func equal(a, b jast.Expr, anyOrder bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	a, b = jast.Unparen(a), jast.Unparen(b)
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *jast.Ident:
		b := b.(*jast.Ident)
		if a.Var != nil || b.Var != nil {
			return a.Var == b.Var
		}
		return a.Name == b.Name
	case *jast.TypeRef:
		return a.Name == b.(*jast.TypeRef).Name
	case *jast.ThisExpr:
		return true
	case *jast.Literal:
		b := b.(*jast.Literal)
		if a.LitKind != b.LitKind {
			return false
		}
		av, aok := Constant(a)
		bv, bok := Constant(b)
		if aok && bok {
			return constant.Compare(av, token.EQL, bv)
		}
		return a.Raw == b.Raw
	case *jast.UnaryExpr:
		b := b.(*jast.UnaryExpr)
		return a.Op == b.Op && equal(a.X, b.X, anyOrder)
	case *jast.PostfixExpr:
		b := b.(*jast.PostfixExpr)
		return a.Op == b.Op && equal(a.X, b.X, anyOrder)
	case *jast.BinaryExpr:
		b := b.(*jast.BinaryExpr)
		if a.Op == b.Op && equal(a.X, b.X, anyOrder) && equal(a.Y, b.Y, anyOrder) {
			return true
		}
		if !anyOrder {
			return false
		}
		if mirrored, ok := mirror(a.Op); ok && mirrored == b.Op {
			return equal(a.X, b.Y, anyOrder) && equal(a.Y, b.X, anyOrder)
		}
		if a.Op == b.Op && commutative(a) {
			return equal(a.X, b.Y, anyOrder) && equal(a.Y, b.X, anyOrder)
		}
		return false
	case *jast.AssignExpr:
		b := b.(*jast.AssignExpr)
		return a.Op == b.Op && equal(a.LHS, b.LHS, anyOrder) && equal(a.RHS, b.RHS, anyOrder)
	case *jast.CallExpr:
		b := b.(*jast.CallExpr)
		if a.Name != b.Name || a.Super != b.Super || len(a.Args) != len(b.Args) {
			return false
		}
		if a.Method != nil && b.Method != nil && a.Method.String() != b.Method.String() {
			return false
		}
		if !equal(a.Recv, b.Recv, anyOrder) {
			return false
		}
		return equalList(a.Args, b.Args, anyOrder)
	case *jast.NewExpr:
		b := b.(*jast.NewExpr)
		return a.TypeName == b.TypeName && equalList(a.Args, b.Args, anyOrder)
	case *jast.FieldAccess:
		b := b.(*jast.FieldAccess)
		if a.Var != nil && b.Var != nil && a.Var != b.Var {
			return false
		}
		return a.Name == b.Name && equal(a.X, b.X, anyOrder)
	case *jast.CastExpr:
		b := b.(*jast.CastExpr)
		return a.TypeName == b.TypeName && equal(a.X, b.X, anyOrder)
	case *jast.CondExpr:
		b := b.(*jast.CondExpr)
		return equal(a.Cond, b.Cond, anyOrder) && equal(a.Then, b.Then, anyOrder) && equal(a.Else, b.Else, anyOrder)
	case *jast.IndexExpr:
		b := b.(*jast.IndexExpr)
		return equal(a.X, b.X, anyOrder) && equal(a.Index, b.Index, anyOrder)
	case *jast.InstanceOfExpr:
		b := b.(*jast.InstanceOfExpr)
		return a.TypeName == b.TypeName && equal(a.X, b.X, anyOrder)
	}
	return false
}

func equalList(a, b []jast.Expr, anyOrder bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i], anyOrder) {
			return false
		}
	}
	return true
}

func commutative(e *jast.BinaryExpr) bool {
	switch e.Op {
	case jast.Eql, jast.Neq, jast.Mul, jast.LAnd, jast.LOr, jast.And, jast.Or, jast.Xor:
		return true
	case jast.Add:
		return jast.IsNumericType(jast.TypeOf(e.X)) && jast.IsNumericType(jast.TypeOf(e.Y))
	}
	return false
}

func mirror(op jast.BinaryOp) (jast.BinaryOp, bool) {
	switch op {
	case jast.Lss:
		return jast.Gtr, true
	case jast.Gtr:
		return jast.Lss, true
	case jast.Leq:
		return jast.Geq, true
	case jast.Geq:
		return jast.Leq, true
	}
	return "", false
}

// Complement returns the comparison operator yielding the opposite result.
// Relational operators only have a complement for operands that cannot be
// NaN, which callers check with CanNegateComparison.
func Complement(op jast.BinaryOp) (jast.BinaryOp, bool) {
	switch op {
	case jast.Eql:
		return jast.Neq, true
	case jast.Neq:
		return jast.Eql, true
	case jast.Lss:
		return jast.Geq, true
	case jast.Geq:
		return jast.Lss, true
	case jast.Gtr:
		return jast.Leq, true
	case jast.Leq:
		return jast.Gtr, true
	}
	return "", false
}

// CanNegateComparison reports whether !(x op y) equals x op' y where op' is
// the complement of op. Equality always qualifies; relational operators need
// operands of a known non floating point type.
func CanNegateComparison(e *jast.BinaryExpr) bool {
	switch e.Op {
	case jast.Eql, jast.Neq:
		return true
	case jast.Lss, jast.Leq, jast.Gtr, jast.Geq:
		xt, yt := jast.TypeOf(e.X), jast.TypeOf(e.Y)
		return jast.IsIntegralType(xt) && jast.IsIntegralType(yt)
	}
	return false
}

// StructurallyOpposite reports whether b is the negation of a: one is the
// other prefixed by !, they are complementary comparisons of the same
// operands, or they are opposite boolean literals.
func StructurallyOpposite(a, b jast.Expr) bool {
	if a == nil || b == nil {
		return false
	}
	a, b = jast.Unparen(a), jast.Unparen(b)
	if n, ok := a.(*jast.UnaryExpr); ok && n.Op == jast.Not && StructurallyEqual(n.X, b) {
		return true
	}
	if n, ok := b.(*jast.UnaryExpr); ok && n.Op == jast.Not && StructurallyEqual(n.X, a) {
		return true
	}
	if av, ok := BoolConstant(a); ok {
		if bv, ok := BoolConstant(b); ok {
			_, aLit := a.(*jast.Literal)
			_, bLit := b.(*jast.Literal)
			return aLit && bLit && av != bv
		}
	}
	x, ok1 := a.(*jast.BinaryExpr)
	y, ok2 := b.(*jast.BinaryExpr)
	if !ok1 || !ok2 || !CanNegateComparison(x) || !CanNegateComparison(y) {
		return false
	}
	comp, ok := Complement(x.Op)
	if !ok {
		return false
	}
	if comp == y.Op && StructurallyEqual(x.X, y.X) && StructurallyEqual(x.Y, y.Y) {
		return true
	}
	if m, ok := mirror(comp); ok && m == y.Op {
		return StructurallyEqual(x.X, y.Y) && StructurallyEqual(x.Y, y.X)
	}
	if (comp == jast.Eql || comp == jast.Neq) && comp == y.Op {
		return StructurallyEqual(x.X, y.Y) && StructurallyEqual(x.Y, y.X)
	}
	return false
}
