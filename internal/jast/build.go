package jast

import (
	"fmt"
	"strconv"
	"strings"
)

// Helpers to construct synthesized nodes.

func NewLocal(name string, typ *TypeBinding) *VariableBinding {
	return &VariableBinding{Name: name, Type: typ, Local: true}
}

func NewField(name string, typ *TypeBinding) *VariableBinding {
	return &VariableBinding{Name: name, Type: typ, Field: true}
}

func Name(v *VariableBinding) *Ident {
	return &Ident{Name: v.Name, Var: v}
}

func IntLiteral(v int64) *Literal {
	return &Literal{LitKind: IntLit, Raw: strconv.FormatInt(v, 10), Type: Int}
}

func LongLiteral(v int64) *Literal {
	return &Literal{LitKind: LongLit, Raw: strconv.FormatInt(v, 10) + "L", Type: Long}
}

func BoolLiteral(v bool) *Literal {
	return &Literal{LitKind: BoolLit, Raw: strconv.FormatBool(v), Type: Boolean}
}

func NullLiteral() *Literal {
	return &Literal{LitKind: NullLit, Raw: "null", Type: Null}
}

func StringLiteral(s string) *Literal {
	return &Literal{LitKind: StringLit, Raw: QuoteString(s), Type: StringType}
}

func CharLiteral(r rune) *Literal {
	return &Literal{LitKind: CharLit, Raw: QuoteChar(r), Type: Char}
}

func Paren(x Expr) *ParenExpr { return &ParenExpr{X: x} }

func Negate(x Expr) *UnaryExpr {
	return &UnaryExpr{Op: Not, X: x, Type: Boolean}
}

func Binary(op BinaryOp, x, y Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, X: x, Y: y, Type: BinaryResultType(op, TypeOf(x), TypeOf(y))}
}

func AssignTo(lhs Expr, rhs Expr) *AssignExpr {
	return &AssignExpr{Op: Assign, LHS: lhs, RHS: rhs, Type: TypeOf(lhs)}
}

func Call(recv Expr, m *MethodBinding, args ...Expr) *CallExpr {
	c := &CallExpr{Recv: recv, Args: args, Method: m}
	if m != nil {
		c.Name = m.Name
		c.Type = m.Return
	}
	return c
}

func Statement(x Expr) *ExprStmt { return &ExprStmt{X: x} }

func BlockOf(stmts ...Stmt) *Block { return &Block{Stmts: stmts} }

func If(cond Expr, then Stmt, els Stmt) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: els}
}

func Break() *BranchStmt { return &BranchStmt{} }

func Return(x Expr) *ReturnStmt { return &ReturnStmt{Result: x} }

func Declare(typeName string, v *VariableBinding, init Expr) *LocalVarDecl {
	return &LocalVarDecl{
		TypeName: typeName,
		Type:     v.Type,
		Vars:     []*VarDeclarator{{Name: v.Name, Var: v, Init: init}},
	}
}

// QuoteString returns the Java source spelling of s.
func QuoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '\'' {
			b.WriteRune(r)
			continue
		}
		b.WriteString(escapeRune(r))
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteChar returns the Java source spelling of the char r.
func QuoteChar(r rune) string {
	if r == '"' {
		return `'"'`
	}
	return "'" + escapeRune(r) + "'"
}

func escapeRune(r rune) string {
	switch r {
	case '\b':
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\f':
		return `\f`
	case '\r':
		return `\r`
	case '"':
		return `\"`
	case '\'':
		return `\'`
	case '\\':
		return `\\`
	}
	if r < 0x20 || r == 0x7f {
		return fmt.Sprintf(`\u%04x`, r)
	}
	return string(r)
}
