package jast

import (
	"fmt"
	"go/constant"
	"strings"
)

// TypeBinding is the resolved identity of a type. Two bindings denote the same
// type when their qualified names are equal.
type TypeBinding struct {
	QualifiedName string
	Primitive     bool
	Elem          *TypeBinding // element type of an array
	Supers        []*TypeBinding
	Checked       bool // checked exception type
}

func (t *TypeBinding) IsArray() bool { return t != nil && t.Elem != nil }

// Is reports whether t is the type named qualifiedName.
func (t *TypeBinding) Is(qualifiedName string) bool {
	return t != nil && t.QualifiedName == qualifiedName
}

// SimpleName returns the last dotted component of the qualified name.
func (t *TypeBinding) SimpleName() string {
	if t == nil {
		return ""
	}
	if i := strings.LastIndexByte(t.QualifiedName, '.'); i >= 0 {
		return t.QualifiedName[i+1:]
	}
	return t.QualifiedName
}

// IsSubtypeOf reports whether t is qualifiedName or has it among its
// transitive supertypes.
func (t *TypeBinding) IsSubtypeOf(qualifiedName string) bool {
	return t.isSubtypeOf(qualifiedName, 0)
}

func (t *TypeBinding) isSubtypeOf(name string, depth int) bool {
	if t == nil || depth > 32 {
		return false
	}
	if t.QualifiedName == name {
		return true
	}
	if !t.Primitive && name == "java.lang.Object" {
		return true
	}
	for _, s := range t.Supers {
		if s.isSubtypeOf(name, depth+1) {
			return true
		}
	}
	return false
}

func (t *TypeBinding) String() string {
	if t == nil {
		return "<unresolved>"
	}
	return t.QualifiedName
}

// Predeclared types.
var (
	Boolean = &TypeBinding{QualifiedName: "boolean", Primitive: true}
	Byte    = &TypeBinding{QualifiedName: "byte", Primitive: true}
	Char    = &TypeBinding{QualifiedName: "char", Primitive: true}
	Short   = &TypeBinding{QualifiedName: "short", Primitive: true}
	Int     = &TypeBinding{QualifiedName: "int", Primitive: true}
	Long    = &TypeBinding{QualifiedName: "long", Primitive: true}
	Float   = &TypeBinding{QualifiedName: "float", Primitive: true}
	Double  = &TypeBinding{QualifiedName: "double", Primitive: true}
	Void    = &TypeBinding{QualifiedName: "void", Primitive: true}
	Null    = &TypeBinding{QualifiedName: "null"}

	ObjectType = &TypeBinding{QualifiedName: "java.lang.Object"}
	StringType = &TypeBinding{
		QualifiedName: "java.lang.String",
		Supers:        []*TypeBinding{ObjectType},
	}
)

var primitives = map[string]*TypeBinding{
	"boolean": Boolean,
	"byte":    Byte,
	"char":    Char,
	"short":   Short,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"void":    Void,
}

// PrimitiveType returns the predeclared primitive type with the given name.
func PrimitiveType(name string) (*TypeBinding, bool) {
	t, ok := primitives[name]
	return t, ok
}

// ArrayOf returns the array type with element type elem.
func ArrayOf(elem *TypeBinding) *TypeBinding {
	return &TypeBinding{
		QualifiedName: elem.QualifiedName + "[]",
		Elem:          elem,
		Supers:        []*TypeBinding{ObjectType},
	}
}

// MethodBinding is the resolved identity of a method or constructor.
type MethodBinding struct {
	DeclaringType *TypeBinding
	Name          string
	Params        []*TypeBinding
	Return        *TypeBinding
	Static        bool
	Constructor   bool
	Exceptions    []*TypeBinding
}

func (m *MethodBinding) String() string {
	if m == nil {
		return "<unresolved>"
	}
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s.%s(%s)", m.DeclaringType, m.Name, strings.Join(params, ", "))
}

// VariableBinding is the resolved identity of a local, parameter or field.
// Bindings are compared by pointer.
type VariableBinding struct {
	Name     string
	Type     *TypeBinding
	Local    bool
	Param    bool
	Field    bool
	Final    bool
	Constant constant.Value // non-nil for compile-time constant variables
}

func (v *VariableBinding) String() string {
	if v == nil {
		return "<unresolved>"
	}
	return v.Name
}

// UnresolvedBindingError is raised, as a panic value, by the Require helpers
// when a node the caller needs to be resolved is not.
type UnresolvedBindingError struct {
	Node Node
	What string
}

func (e *UnresolvedBindingError) Error() string {
	return fmt.Sprintf("unresolved %s binding for %s node at offset %d", e.What, e.Node.Kind(), e.Node.Pos())
}

// RequireType returns the static type of e or panics with an
// *UnresolvedBindingError.
func RequireType(e Expr) *TypeBinding {
	if t := TypeOf(e); t != nil {
		return t
	}
	panic(&UnresolvedBindingError{Node: e, What: "type"})
}

// RequireMethod returns the method binding of a call, constructor call or
// method declaration, or panics with an *UnresolvedBindingError.
func RequireMethod(n Node) *MethodBinding {
	if m := MethodOf(n); m != nil {
		return m
	}
	panic(&UnresolvedBindingError{Node: n, What: "method"})
}

// MethodOf returns the method binding of n, if any.
func MethodOf(n Node) *MethodBinding {
	switch n := n.(type) {
	case *CallExpr:
		return n.Method
	case *NewExpr:
		return n.Ctor
	case *MethodDecl:
		return n.Method
	}
	return nil
}

// VarOf returns the variable binding referenced or declared by n, if any.
func VarOf(n Node) *VariableBinding {
	switch n := n.(type) {
	case *Ident:
		return n.Var
	case *FieldAccess:
		return n.Var
	case *VarDeclarator:
		return n.Var
	case *Param:
		return n.Var
	case *ParenExpr:
		return VarOf(n.X)
	}
	return nil
}
