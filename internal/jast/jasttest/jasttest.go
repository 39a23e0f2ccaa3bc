// Package jasttest builds laid out compilation units for tests.
package jasttest

import (
	"github.com/autorefactor/autorefactor/internal/jast"
)

// Method lays out a class T holding a method void m() with the given body
// and returns the unit and the method.
func Method(stmts ...jast.Stmt) (*jast.Unit, *jast.MethodDecl) {
	m := &jast.MethodDecl{
		ReturnType: "void",
		Name:       "m",
		Body:       jast.BlockOf(stmts...),
		Method:     &jast.MethodBinding{Name: "m", Return: jast.Void},
	}
	u := Class(m)
	return u, m
}

// Class lays out a class T holding members.
func Class(members ...jast.Node) *jast.Unit {
	cls := &jast.ClassDecl{Name: "T", Members: members}
	return jast.Layout("T.java", &jast.File{Types: []*jast.ClassDecl{cls}})
}

// Int declares a local int variable.
func Int(name string) *jast.VariableBinding { return jast.NewLocal(name, jast.Int) }

// Bool declares a local boolean variable.
func Bool(name string) *jast.VariableBinding { return jast.NewLocal(name, jast.Boolean) }

// Double declares a local double variable.
func Double(name string) *jast.VariableBinding { return jast.NewLocal(name, jast.Double) }

// Str declares a local String variable.
func Str(name string) *jast.VariableBinding { return jast.NewLocal(name, jast.StringType) }

// Assign builds the statement v = x;
func Assign(v *jast.VariableBinding, x jast.Expr) *jast.ExprStmt {
	return jast.Statement(jast.AssignTo(jast.Name(v), x))
}

// Inc builds the statement v++;
func Inc(v *jast.VariableBinding) *jast.ExprStmt {
	return jast.Statement(&jast.PostfixExpr{Op: jast.PostInc, X: jast.Name(v), Type: v.Type})
}

// Throw builds throw new <typ>();
func Throw(typ *jast.TypeBinding) *jast.ThrowStmt {
	return &jast.ThrowStmt{X: &jast.NewExpr{
		TypeName: typ.SimpleName(),
		Ctor:     &jast.MethodBinding{DeclaringType: typ, Name: "<init>", Constructor: true},
		Type:     typ,
	}}
}

// Exception declares an unchecked exception type.
func Exception(qualifiedName string) *jast.TypeBinding {
	runtime := &jast.TypeBinding{
		QualifiedName: "java.lang.RuntimeException",
		Supers: []*jast.TypeBinding{{
			QualifiedName: "java.lang.Exception",
			Supers:        []*jast.TypeBinding{{QualifiedName: "java.lang.Throwable"}},
		}},
	}
	if qualifiedName == runtime.QualifiedName {
		return runtime
	}
	return &jast.TypeBinding{QualifiedName: qualifiedName, Supers: []*jast.TypeBinding{runtime}}
}
