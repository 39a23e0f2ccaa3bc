// Package purity classifies syntax trees by whether evaluating them can have
// an observable side effect.
package purity

import (
	"github.com/autorefactor/autorefactor/internal/jast"
)

// Class is the outcome of a classification.
type Class int

const (
	Pure Class = iota
	Impure
	Unknown // not enough binding information; callers treat it as impure
)

func (c Class) String() string {
	switch c {
	case Pure:
		return "Pure"
	case Impure:
		return "Impure"
	case Unknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// Whitelist names local variables that a tree may assign without counting
// as a side effect.
type Whitelist map[string]bool

// NewWhitelist returns a whitelist holding names.
func NewWhitelist(names ...string) Whitelist {
	w := make(Whitelist, len(names))
	for _, n := range names {
		w[n] = true
	}
	return w
}

// Add inserts the names declared by decl.
func (w Whitelist) Add(decl *jast.LocalVarDecl) {
	for _, v := range decl.Vars {
		w[v.Name] = true
	}
}

// IsSideEffectFree reports whether evaluating n has no side effect other
// than assigning whitelisted locals.
func IsSideEffectFree(n jast.Node, whitelist Whitelist) bool {
	return Classify(n, whitelist) == Pure
}

// IsPassive reports whether evaluating n has no side effect at all.
func IsPassive(n jast.Node) bool {
	return Classify(n, nil) == Pure
}

// ArePassive reports whether every expression of xs is passive.
func ArePassive(xs ...jast.Expr) bool {
	for _, x := range xs {
		if x != nil && !IsPassive(x) {
			return false
		}
	}
	return true
}

// Classify walks n and stops at the first node that disqualifies it.
func Classify(n jast.Node, whitelist Whitelist) Class {
	result := Pure
	jast.Any(n, func(c jast.Node) bool {
		result = classifyNode(c, whitelist)
		return result != Pure
	})
	return result
}

func classifyNode(n jast.Node, whitelist Whitelist) Class {
	switch n := n.(type) {
	case *jast.AssignExpr:
		if n.Op == jast.AddAssign && jast.IsStringType(jast.TypeOf(n.LHS)) {
			if c := concatOperand(n.RHS); c != Pure {
				return c
			}
		}
		return target(n.LHS, whitelist)
	case *jast.UnaryExpr:
		if n.Op == jast.PreInc || n.Op == jast.PreDec {
			return target(n.X, whitelist)
		}
	case *jast.PostfixExpr:
		return target(n.X, whitelist)
	case *jast.CallExpr, *jast.NewExpr, *jast.ThrowStmt:
		return Impure
	case *jast.OpaqueExpr, *jast.OpaqueStmt:
		return Unknown
	case *jast.BinaryExpr:
		if n.Op != jast.Add {
			break
		}
		t := n.Type
		if t == nil {
			return Unknown
		}
		if jast.IsStringType(t) {
			for _, operand := range []jast.Expr{n.X, n.Y} {
				if c := concatOperand(operand); c != Pure {
					return c
				}
			}
		}
	}
	return Pure
}

// target classifies an assignment or increment of x.
func target(x jast.Expr, whitelist Whitelist) Class {
	id, ok := jast.Unparen(x).(*jast.Ident)
	if !ok {
		return Impure
	}
	if id.Var == nil {
		return Unknown
	}
	if !id.Var.Local || !whitelist[id.Name] {
		return Impure
	}
	return Pure
}

// concatOperand classifies an operand of string concatenation, which may
// call an arbitrary toString.
func concatOperand(x jast.Expr) Class {
	switch jast.Unparen(x).(type) {
	case *jast.UnaryExpr, *jast.BinaryExpr, *jast.PostfixExpr:
		return Pure
	}
	t := jast.TypeOf(x)
	if t == nil {
		return Unknown
	}
	if t.Primitive || jast.IsBoxedType(t) || jast.IsStringType(t) || t.Is("null") {
		return Pure
	}
	return Impure
}
