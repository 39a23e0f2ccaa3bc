// Package reach decides which branches of a statement can execute and which
// statements can no longer be reached once a branch always exits.
package reach

import (
	"go/constant"
	"go/token"

	"github.com/autorefactor/autorefactor/internal/analysis/lattice"
	"github.com/autorefactor/autorefactor/internal/jast"
	"github.com/autorefactor/autorefactor/internal/match"
	"github.com/autorefactor/autorefactor/internal/purity"
)

// Tristate is the known value of a condition.
type Tristate = lattice.Truth

const (
	Unknown = lattice.Unknown
	True    = lattice.True
	False   = lattice.False
)

// maxDepth bounds the chain of reaching definitions followed.
const maxDepth = 16

// AlwaysEvaluatesTo reports the value cond always has when it is evaluated
// as part of statement at.
func AlwaysEvaluatesTo(u *jast.Unit, at jast.Stmt, cond jast.Expr) Tristate {
	e := &evaluator{u: u}
	return e.truth(at, cond, 0)
}

type evaluator struct {
	u *jast.Unit
}

func (e *evaluator) truth(at jast.Stmt, x jast.Expr, depth int) Tristate {
	if x == nil || depth > maxDepth {
		return Unknown
	}
	if v, ok := match.BoolConstant(x); ok {
		return lattice.Of(v)
	}
	switch x := jast.Unparen(x).(type) {
	case *jast.Ident:
		def, defAt := e.reachingDefinition(at, x)
		if def == nil {
			return Unknown
		}
		return e.truth(defAt, def, depth+1)
	case *jast.UnaryExpr:
		if x.Op == jast.Not {
			return lattice.Not(e.truth(at, x.X, depth+1))
		}
	case *jast.BinaryExpr:
		switch x.Op {
		case jast.LAnd, jast.And:
			if !jast.IsBooleanType(jast.AsPrimitive(x.Type)) {
				return Unknown
			}
			return lattice.And(e.operands(at, x, depth)...)
		case jast.LOr, jast.Or:
			if !jast.IsBooleanType(jast.AsPrimitive(x.Type)) {
				return Unknown
			}
			return lattice.Or(e.operands(at, x, depth)...)
		}
		if x.Op.IsComparison() {
			return e.comparison(at, x, depth)
		}
	case *jast.CondExpr:
		switch e.truth(at, x.Cond, depth+1) {
		case True:
			return e.truth(at, x.Then, depth+1)
		case False:
			return e.truth(at, x.Else, depth+1)
		}
		return lattice.Join(e.truth(at, x.Then, depth+1), e.truth(at, x.Else, depth+1))
	}
	return Unknown
}

// operands evaluates every operand of a chain of the same operator.
func (e *evaluator) operands(at jast.Stmt, x *jast.BinaryExpr, depth int) []Tristate {
	var out []Tristate
	var flatten func(y jast.Expr)
	flatten = func(y jast.Expr) {
		if b, ok := jast.Unparen(y).(*jast.BinaryExpr); ok && b.Op == x.Op {
			flatten(b.X)
			flatten(b.Y)
			return
		}
		out = append(out, e.truth(at, y, depth+1))
	}
	flatten(x)
	return out
}

var comparisonTokens = map[jast.BinaryOp]token.Token{
	jast.Eql: token.EQL,
	jast.Neq: token.NEQ,
	jast.Lss: token.LSS,
	jast.Leq: token.LEQ,
	jast.Gtr: token.GTR,
	jast.Geq: token.GEQ,
}

func (e *evaluator) comparison(at jast.Stmt, x *jast.BinaryExpr, depth int) Tristate {
	xv, xok := e.value(at, x.X, depth+1)
	yv, yok := e.value(at, x.Y, depth+1)
	if xok && yok && comparable(xv, yv) {
		return lattice.Of(constant.Compare(xv, comparisonTokens[x.Op], yv))
	}

	if !purity.ArePassive(x.X, x.Y) {
		return Unknown
	}
	if match.StructurallyEqual(x.X, x.Y) && !mayBeNaN(x.X) {
		switch x.Op {
		case jast.Eql, jast.Leq, jast.Geq:
			return True
		case jast.Neq, jast.Lss, jast.Gtr:
			return False
		}
	}
	if (x.Op == jast.Eql || x.Op == jast.Neq) &&
		jast.IsBooleanType(jast.TypeOf(x.X)) && jast.IsBooleanType(jast.TypeOf(x.Y)) &&
		match.StructurallyOpposite(x.X, x.Y) {
		return lattice.Of(x.Op == jast.Neq)
	}
	return Unknown
}

func comparable(x, y constant.Value) bool {
	numeric := func(v constant.Value) bool {
		return v.Kind() == constant.Int || v.Kind() == constant.Float
	}
	if numeric(x) && numeric(y) {
		return true
	}
	return x.Kind() == constant.Bool && y.Kind() == constant.Bool
}

// mayBeNaN reports whether x may hold a floating point value, for which
// x == x does not hold.
func mayBeNaN(x jast.Expr) bool {
	t := jast.TypeOf(x)
	if t == nil {
		return true
	}
	return jast.IsFloatingType(jast.AsPrimitive(t))
}

// value returns the constant value of x, following reaching definitions of
// local variables. Strings are left out: their comparison is by identity.
func (e *evaluator) value(at jast.Stmt, x jast.Expr, depth int) (constant.Value, bool) {
	if depth > maxDepth {
		return nil, false
	}
	if v, ok := match.Constant(x); ok {
		if v.Kind() == constant.String {
			return nil, false
		}
		return v, true
	}
	if id, ok := jast.Unparen(x).(*jast.Ident); ok {
		def, defAt := e.reachingDefinition(at, id)
		if def == nil {
			return nil, false
		}
		t := jast.AsPrimitive(jast.TypeOf(id))
		if !jast.IsNumericType(t) && !jast.IsBooleanType(t) {
			return nil, false
		}
		return e.value(defAt, def, depth+1)
	}
	return nil, false
}

// reachingDefinition looks among the statements preceding at for the one
// defining the local variable id. It gives up when a statement between the
// two reads or writes the variable, when the definition also reads it, or
// when at itself may write it before the read.
func (e *evaluator) reachingDefinition(at jast.Stmt, id *jast.Ident) (jast.Expr, jast.Stmt) {
	v := id.Var
	if v == nil || !v.Local || v.Param {
		return nil, nil
	}
	if writes(header(at), v) {
		return nil, nil
	}
	list, idx, ok := e.u.Siblings(at)
	if !ok {
		return nil, nil
	}
	for i := idx - 1; i >= 0; i-- {
		s := list[i]
		if def, ok := definition(s, v); ok {
			if def == nil || mentions(def, v) {
				return nil, nil
			}
			return def, s
		}
		if mentions(s, v) {
			return nil, nil
		}
	}
	return nil, nil
}

// definition reports whether s is a statement that does nothing but define
// v, and the value it assigns. A declaration without initializer defines v
// with no known value.
func definition(s jast.Stmt, v *jast.VariableBinding) (jast.Expr, bool) {
	switch s := s.(type) {
	case *jast.LocalVarDecl:
		for _, d := range s.Vars {
			if d.Var == v {
				return d.Init, true
			}
		}
	case *jast.ExprStmt:
		a, ok := s.X.(*jast.AssignExpr)
		if !ok {
			return nil, false
		}
		if id, ok := jast.Unparen(a.LHS).(*jast.Ident); ok && id.Var == v {
			if a.Op != jast.Assign {
				return nil, true
			}
			return a.RHS, true
		}
	}
	return nil, false
}

// header returns the part of s evaluated before its nested statements. A
// loop is returned whole since its body runs before the condition again.
func header(s jast.Stmt) jast.Node {
	switch s := s.(type) {
	case *jast.IfStmt:
		return s.Cond
	case *jast.SwitchStmt:
		return s.Tag
	}
	return s
}

// writes reports whether n assigns or increments v.
func writes(n jast.Node, v *jast.VariableBinding) bool {
	is := func(x jast.Expr) bool {
		id, ok := jast.Unparen(x).(*jast.Ident)
		return ok && (id.Var == v || (id.Var == nil && id.Name == v.Name))
	}
	return jast.Any(n, func(c jast.Node) bool {
		switch c := c.(type) {
		case *jast.AssignExpr:
			return is(c.LHS)
		case *jast.PostfixExpr:
			return is(c.X)
		case *jast.UnaryExpr:
			return (c.Op == jast.PreInc || c.Op == jast.PreDec) && is(c.X)
		}
		return false
	})
}

func mentions(n jast.Node, v *jast.VariableBinding) bool {
	return jast.Any(n, func(c jast.Node) bool {
		switch c := c.(type) {
		case *jast.Ident:
			return c.Var == v || (c.Var == nil && c.Name == v.Name)
		case *jast.VarDeclarator:
			return c.Var == v
		}
		return false
	})
}

// DeadBranch returns the branch of s that can never execute and the one
// that always does, when the condition of s has a known value. Either may
// be nil when s has no else branch.
func DeadBranch(u *jast.Unit, s *jast.IfStmt) (dead, live jast.Stmt, ok bool) {
	switch AlwaysEvaluatesTo(u, s, s.Cond) {
	case True:
		return s.Else, s.Then, true
	case False:
		return s.Then, s.Else, true
	}
	return nil, nil, false
}
