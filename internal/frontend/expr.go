package frontend

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// arrayLength is the binding of the length field of every array.
var arrayLength = &jast.VariableBinding{Name: "length", Type: jast.Int, Field: true, Final: true}

func (c *converter) opaqueExpr(n *sitter.Node, t *jast.TypeBinding) jast.Expr {
	return &jast.OpaqueExpr{Range: c.rng(n), Type: t}
}

func (c *converter) exprs(n *sitter.Node) []jast.Expr {
	var out []jast.Expr
	for _, a := range named(n) {
		out = append(out, c.expr(a))
	}
	return out
}

func (c *converter) expr(n *sitter.Node) jast.Expr {
	if n == nil {
		return nil
	}
	r := c.rng(n)
	switch kind := n.Kind(); kind {
	case "parenthesized_expression":
		parts := named(n)
		if len(parts) != 1 {
			return c.opaqueExpr(n, nil)
		}
		return &jast.ParenExpr{Range: r, X: c.expr(parts[0])}
	case "identifier":
		return c.ident(n)
	case "this":
		return &jast.ThisExpr{Range: r, Type: c.thisType()}
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		raw := c.text(n)
		if strings.HasSuffix(raw, "l") || strings.HasSuffix(raw, "L") {
			return &jast.Literal{Range: r, LitKind: jast.LongLit, Raw: raw, Type: jast.Long}
		}
		return &jast.Literal{Range: r, LitKind: jast.IntLit, Raw: raw, Type: jast.Int}
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		raw := c.text(n)
		if strings.HasSuffix(raw, "f") || strings.HasSuffix(raw, "F") {
			return &jast.Literal{Range: r, LitKind: jast.FloatLit, Raw: raw, Type: jast.Float}
		}
		return &jast.Literal{Range: r, LitKind: jast.DoubleLit, Raw: raw, Type: jast.Double}
	case "true", "false":
		return &jast.Literal{Range: r, LitKind: jast.BoolLit, Raw: kind, Type: jast.Boolean}
	case "null_literal":
		return &jast.Literal{Range: r, LitKind: jast.NullLit, Raw: "null", Type: jast.Null}
	case "character_literal":
		return &jast.Literal{Range: r, LitKind: jast.CharLit, Raw: c.text(n), Type: jast.Char}
	case "string_literal":
		if strings.HasPrefix(c.text(n), `"""`) {
			return c.opaqueExpr(n, c.stringType())
		}
		return &jast.Literal{Range: r, LitKind: jast.StringLit, Raw: c.text(n), Type: c.stringType()}
	case "unary_expression":
		op := jast.UnaryOp(c.text(n.ChildByFieldName("operator")))
		x := c.expr(n.ChildByFieldName("operand"))
		return &jast.UnaryExpr{Range: r, Op: op, X: x, Type: unaryType(op, jast.TypeOf(x))}
	case "update_expression":
		return c.update(n)
	case "binary_expression":
		op := jast.BinaryOp(c.text(n.ChildByFieldName("operator")))
		x, y := c.expr(n.ChildByFieldName("left")), c.expr(n.ChildByFieldName("right"))
		return &jast.BinaryExpr{Range: r, Op: op, X: x, Y: y, Type: jast.BinaryResultType(op, jast.TypeOf(x), jast.TypeOf(y))}
	case "assignment_expression":
		lhs := c.expr(n.ChildByFieldName("left"))
		return &jast.AssignExpr{
			Range: r,
			Op:    jast.AssignOp(c.text(n.ChildByFieldName("operator"))),
			LHS:   lhs,
			RHS:   c.expr(n.ChildByFieldName("right")),
			Type:  jast.TypeOf(lhs),
		}
	case "instanceof_expression":
		right := n.ChildByFieldName("right")
		if right == nil || n.ChildByFieldName("name") != nil || n.ChildByFieldName("pattern") != nil {
			// pattern matching declares a variable
			return c.opaqueExpr(n, jast.Boolean)
		}
		return &jast.InstanceOfExpr{Range: r, X: c.expr(n.ChildByFieldName("left")), TypeName: c.text(right)}
	case "method_invocation":
		return c.call(n)
	case "object_creation_expression":
		return c.newExpr(n)
	case "field_access":
		return c.fieldAccess(n)
	case "array_access":
		x := c.expr(n.ChildByFieldName("array"))
		e := &jast.IndexExpr{Range: r, X: x, Index: c.expr(n.ChildByFieldName("index"))}
		if t := jast.TypeOf(x); t.IsArray() {
			e.Type = t.Elem
		}
		return e
	case "cast_expression":
		typeName := c.text(n.ChildByFieldName("type"))
		return &jast.CastExpr{
			Range:    r,
			TypeName: typeName,
			X:        c.expr(n.ChildByFieldName("value")),
			Type:     c.res.typeNamed(typeName),
		}
	case "ternary_expression":
		e := &jast.CondExpr{
			Range: r,
			Cond:  c.expr(n.ChildByFieldName("condition")),
			Then:  c.expr(n.ChildByFieldName("consequence")),
			Else:  c.expr(n.ChildByFieldName("alternative")),
		}
		e.Type = condType(jast.TypeOf(e.Then), jast.TypeOf(e.Else))
		return e
	case "array_creation_expression":
		return c.opaqueExpr(n, c.arrayCreationType(n))
	case "class_literal":
		t, _ := c.res.lib.Type("java.lang.Class")
		return c.opaqueExpr(n, t)
	}
	return c.opaqueExpr(n, nil)
}

func (c *converter) stringType() *jast.TypeBinding {
	if t, ok := c.res.lib.Type("java.lang.String"); ok {
		return t
	}
	return jast.StringType
}

func (c *converter) thisType() *jast.TypeBinding {
	if c.class == nil {
		return nil
	}
	return c.class.typ
}

func unaryType(op jast.UnaryOp, t *jast.TypeBinding) *jast.TypeBinding {
	switch op {
	case jast.Not:
		return jast.Boolean
	case jast.PreInc, jast.PreDec:
		return t
	}
	if !jast.IsNumericType(t) {
		return nil
	}
	return jast.PromoteNumeric(t, t)
}

func condType(a, b *jast.TypeBinding) *jast.TypeBinding {
	switch {
	case a == nil || b == nil:
		return nil
	case a.QualifiedName == b.QualifiedName:
		return a
	case jast.IsNumericType(a) && jast.IsNumericType(b):
		return jast.PromoteNumeric(a, b)
	case a.Is("null") && !b.Primitive:
		return b
	case b.Is("null") && !a.Primitive:
		return a
	}
	return nil
}

func (c *converter) update(n *sitter.Node) jast.Expr {
	parts := named(n)
	if len(parts) != 1 || n.ChildCount() != 2 {
		return c.opaqueExpr(n, nil)
	}
	x := c.expr(parts[0])
	first := n.Child(0)
	if !first.IsNamed() {
		return &jast.UnaryExpr{Range: c.rng(n), Op: jast.UnaryOp(first.Kind()), X: x, Type: jast.TypeOf(x)}
	}
	op := jast.PostfixOp(n.Child(1).Kind())
	return &jast.PostfixExpr{Range: c.rng(n), Op: op, X: x, Type: jast.TypeOf(x)}
}

// ident resolves a simple name to a variable, a field of an enclosing
// class or a type.
func (c *converter) ident(n *sitter.Node) jast.Expr {
	name, r := c.text(n), c.rng(n)
	if v := c.scope.lookup(name); v != nil {
		return &jast.Ident{Range: r, Name: name, Var: v, Type: v.Type}
	}
	for cl := c.class; cl != nil; cl = cl.outer {
		if v := c.res.field(cl.typ, name); v != nil {
			return &jast.Ident{Range: r, Name: name, Var: v, Type: v.Type}
		}
	}
	if t := c.res.typeNamed(name); t != nil {
		return &jast.TypeRef{Range: r, Name: name, Type: t}
	}
	return &jast.Ident{Range: r, Name: name}
}

func (c *converter) superType() *jast.TypeBinding {
	if c.class == nil || len(c.class.typ.Supers) == 0 {
		return nil
	}
	return c.class.typ.Supers[0]
}

func (c *converter) call(n *sitter.Node) jast.Expr {
	e := &jast.CallExpr{
		Range: c.rng(n),
		Name:  c.text(n.ChildByFieldName("name")),
		Args:  c.exprs(n.ChildByFieldName("arguments")),
	}
	obj := n.ChildByFieldName("object")
	switch {
	case obj == nil:
		for cl := c.class; cl != nil && e.Method == nil; cl = cl.outer {
			e.Method = c.res.method(cl.typ, e.Name, e.Args)
		}
		if e.Method == nil {
			e.Method = c.res.staticMethod(e.Name, e.Args)
		}
	case obj.Kind() == "super":
		e.Super = true
		e.Method = c.res.method(c.superType(), e.Name, e.Args)
	default:
		e.Recv = c.expr(obj)
		t := jast.TypeOf(e.Recv)
		if t != nil && !t.Primitive {
			e.Method = c.res.method(t, e.Name, e.Args)
		}
		if _, static := e.Recv.(*jast.TypeRef); static && e.Method != nil && !e.Method.Static {
			e.Method = nil
		}
	}
	if e.Method != nil {
		e.Type = e.Method.Return
	}
	return e
}

func (c *converter) newExpr(n *sitter.Node) jast.Expr {
	typeName := c.text(n.ChildByFieldName("type"))
	t := c.res.typeNamed(typeName)
	if childOfKind(n, "class_body") != nil || n.ChildByFieldName("object") != nil {
		// anonymous and inner class creations
		return c.opaqueExpr(n, t)
	}
	e := &jast.NewExpr{
		Range:    c.rng(n),
		TypeName: typeName,
		Args:     c.exprs(n.ChildByFieldName("arguments")),
		Type:     t,
	}
	e.Ctor = c.res.constructor(t, e.Args)
	return e
}

func (c *converter) fieldAccess(n *sitter.Node) jast.Expr {
	r := c.rng(n)
	obj, field := n.ChildByFieldName("object"), n.ChildByFieldName("field")
	if qualifiedName(obj) {
		if t := c.res.typeNamed(c.text(n)); t != nil {
			return &jast.TypeRef{Range: r, Name: c.text(n), Type: t}
		}
	}
	e := &jast.FieldAccess{Range: r, Name: c.text(field)}
	if obj.Kind() == "super" {
		e.X = &jast.ThisExpr{Range: c.rng(obj), Type: c.superType()}
	} else {
		e.X = c.expr(obj)
	}
	t := jast.TypeOf(e.X)
	switch {
	case t.IsArray() && e.Name == "length":
		e.Var = arrayLength
	case t != nil:
		e.Var = c.res.field(t, e.Name)
	}
	if e.Var != nil {
		e.Type = e.Var.Type
	}
	return e
}

// qualifiedName reports whether n is a dotted chain of identifiers.
func qualifiedName(n *sitter.Node) bool {
	switch n.Kind() {
	case "identifier":
		return true
	case "field_access":
		return qualifiedName(n.ChildByFieldName("object"))
	}
	return false
}

func (c *converter) arrayCreationType(n *sitter.Node) *jast.TypeBinding {
	t := c.res.typeNamed(c.text(n.ChildByFieldName("type")))
	if t == nil {
		return nil
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		ch := n.Child(i)
		if ch == nil {
			continue
		}
		switch ch.Kind() {
		case "dimensions_expr":
			t = jast.ArrayOf(t)
		case "dimensions":
			for j := uint(0); j < ch.ChildCount(); j++ {
				if d := ch.Child(j); d != nil && d.Kind() == "[" {
					t = jast.ArrayOf(t)
				}
			}
		}
	}
	return t
}
