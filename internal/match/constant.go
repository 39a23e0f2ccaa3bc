package match

import (
	"go/constant"
	"go/token"
	"math"
	"strings"

	"github.com/autorefactor/autorefactor/internal/jast"
)

// typed is a constant together with its Java type.
type typed struct {
	v constant.Value
	t *jast.TypeBinding
}

// Constant returns the compile-time value of e. Booleans, integers (chars
// included, as their code unit), floating point numbers and strings are
// supported. ok is false when any operand is not constant or the operation
// cannot be evaluated (division by zero, floating point formatting).
func Constant(e jast.Expr) (constant.Value, bool) {
	tv, ok := fold(e)
	if !ok {
		return nil, false
	}
	return tv.v, true
}

// BoolConstant returns the value of a constant boolean expression.
func BoolConstant(e jast.Expr) (value, ok bool) {
	v, ok := Constant(e)
	if !ok || v.Kind() != constant.Bool {
		return false, false
	}
	return constant.BoolVal(v), true
}

// IntConstant returns the value of a constant integral expression.
func IntConstant(e jast.Expr) (int64, bool) {
	v, ok := Constant(e)
	if !ok || v.Kind() != constant.Int {
		return 0, false
	}
	return constant.Int64Val(v)
}

// StringConstant returns the value of a constant String expression.
func StringConstant(e jast.Expr) (string, bool) {
	v, ok := Constant(e)
	if !ok || v.Kind() != constant.String {
		return "", false
	}
	return constant.StringVal(v), true
}

// fold evaluates e. Results the go/constant package cannot represent, such
// as an overflow to infinity, are not constant.
func fold(e jast.Expr) (typed, bool) {
	tv, ok := evaluate(e)
	if !ok || tv.v == nil || tv.v.Kind() == constant.Unknown {
		return typed{}, false
	}
	return tv, true
}

func evaluate(e jast.Expr) (typed, bool) {
	switch e := e.(type) {
	case *jast.Literal:
		return literal(e)
	case *jast.ParenExpr:
		return fold(e.X)
	case *jast.Ident:
		return variable(e.Var)
	case *jast.FieldAccess:
		return variable(e.Var)
	case *jast.UnaryExpr:
		return unary(e)
	case *jast.BinaryExpr:
		x, ok := fold(e.X)
		if !ok {
			return typed{}, false
		}
		y, ok := fold(e.Y)
		if !ok {
			return typed{}, false
		}
		return binary(e.Op, x, y)
	case *jast.CondExpr:
		c, ok := fold(e.Cond)
		if !ok || c.v.Kind() != constant.Bool {
			return typed{}, false
		}
		if constant.BoolVal(c.v) {
			return fold(e.Then)
		}
		return fold(e.Else)
	case *jast.CastExpr:
		x, ok := fold(e.X)
		if !ok || e.Type == nil {
			return typed{}, false
		}
		return convert(x, e.Type)
	}
	return typed{}, false
}

func variable(v *jast.VariableBinding) (typed, bool) {
	if v == nil || v.Constant == nil || v.Constant.Kind() == constant.Unknown {
		return typed{}, false
	}
	t := v.Type
	if t == nil {
		return typed{}, false
	}
	return typed{v.Constant, t}, true
}

func literal(l *jast.Literal) (typed, bool) {
	raw := strings.ReplaceAll(l.Raw, "_", "")
	switch l.LitKind {
	case jast.BoolLit:
		return typed{constant.MakeBool(raw == "true"), jast.Boolean}, true
	case jast.IntLit, jast.LongLit:
		t, bits := jast.Int, uint(32)
		if l.LitKind == jast.LongLit {
			raw = strings.TrimRight(raw, "lL")
			t, bits = jast.Long, 64
		}
		if strings.HasPrefix(raw, "0") && len(raw) > 1 && !strings.ContainsAny(raw[1:2], "xXbB") {
			raw = "0o" + raw[1:]
		}
		v := constant.MakeFromLiteral(raw, token.INT, 0)
		if v.Kind() != constant.Int {
			return typed{}, false
		}
		if !isDecimal(raw) {
			v = wrap(v, bits)
		}
		return typed{v, t}, true
	case jast.FloatLit, jast.DoubleLit:
		t := jast.Double
		if l.LitKind == jast.FloatLit || strings.HasSuffix(raw, "f") || strings.HasSuffix(raw, "F") {
			t = jast.Float
		}
		raw = strings.TrimRight(raw, "fFdD")
		if strings.HasPrefix(raw, ".") {
			raw = "0" + raw
		}
		v := constant.MakeFromLiteral(raw, token.FLOAT, 0)
		if v.Kind() == constant.Unknown {
			return typed{}, false
		}
		return convert(typed{v, jast.Double}, t)
	case jast.CharLit:
		r, ok := jast.CharValue(l.Raw)
		if !ok {
			return typed{}, false
		}
		return typed{constant.MakeInt64(int64(r)), jast.Char}, true
	case jast.StringLit:
		s, err := jast.Unquote(l.Raw)
		if err != nil {
			return typed{}, false
		}
		return typed{constant.MakeString(s), jast.StringType}, true
	}
	return typed{}, false
}

func isDecimal(raw string) bool {
	return !(len(raw) > 1 && raw[0] == '0')
}

// wrap reduces an integer to the two's complement range of the given width.
func wrap(v constant.Value, bits uint) constant.Value {
	mod := constant.Shift(constant.MakeInt64(1), token.SHL, bits)
	v = constant.BinaryOp(v, token.REM, mod)
	if constant.Sign(v) < 0 {
		v = constant.BinaryOp(v, token.ADD, mod)
	}
	half := constant.Shift(constant.MakeInt64(1), token.SHL, bits-1)
	if constant.Compare(v, token.GEQ, half) {
		v = constant.BinaryOp(v, token.SUB, mod)
	}
	return v
}

func unsigned(v constant.Value, bits uint) constant.Value {
	if constant.Sign(v) < 0 {
		v = constant.BinaryOp(v, token.ADD, constant.Shift(constant.MakeInt64(1), token.SHL, bits))
	}
	return v
}

func width(t *jast.TypeBinding) uint {
	switch t.QualifiedName {
	case "byte":
		return 8
	case "short", "char":
		return 16
	case "long":
		return 64
	}
	return 32
}

func unary(e *jast.UnaryExpr) (typed, bool) {
	x, ok := fold(e.X)
	if !ok {
		return typed{}, false
	}
	switch e.Op {
	case jast.Not:
		if x.v.Kind() != constant.Bool {
			return typed{}, false
		}
		return typed{constant.UnaryOp(token.NOT, x.v, 0), jast.Boolean}, true
	case jast.Plus, jast.Neg, jast.BitNot:
		if !jast.IsNumericType(x.t) {
			return typed{}, false
		}
		t := jast.PromoteNumeric(x.t, jast.Int)
		switch e.Op {
		case jast.Plus:
			return convert(x, t)
		case jast.Neg:
			if jast.IsFloatingType(t) {
				return typed{constant.UnaryOp(token.SUB, constant.ToFloat(x.v), 0), t}, true
			}
			return typed{wrap(constant.UnaryOp(token.SUB, x.v, 0), width(t)), t}, true
		default:
			if jast.IsFloatingType(t) {
				return typed{}, false
			}
			return typed{wrap(constant.UnaryOp(token.XOR, x.v, 0), width(t)), t}, true
		}
	}
	return typed{}, false
}

func binary(op jast.BinaryOp, x, y typed) (typed, bool) {
	if op == jast.Add && (jast.IsStringType(x.t) || jast.IsStringType(y.t)) {
		xs, ok1 := stringify(x)
		ys, ok2 := stringify(y)
		if !ok1 || !ok2 {
			return typed{}, false
		}
		return typed{constant.MakeString(xs + ys), jast.StringType}, true
	}

	if jast.IsBooleanType(x.t) && jast.IsBooleanType(y.t) {
		var tok token.Token
		switch op {
		case jast.LAnd, jast.And:
			tok = token.LAND
		case jast.LOr, jast.Or:
			tok = token.LOR
		case jast.Xor, jast.Neq:
			return typed{constant.MakeBool(constant.BoolVal(x.v) != constant.BoolVal(y.v)), jast.Boolean}, true
		case jast.Eql:
			return typed{constant.MakeBool(constant.BoolVal(x.v) == constant.BoolVal(y.v)), jast.Boolean}, true
		default:
			return typed{}, false
		}
		return typed{constant.BinaryOp(x.v, tok, y.v), jast.Boolean}, true
	}

	if jast.IsStringType(x.t) && jast.IsStringType(y.t) && (op == jast.Eql || op == jast.Neq) {
		// compile-time constant strings are interned
		eq := constant.Compare(x.v, token.EQL, y.v)
		return typed{constant.MakeBool(eq == (op == jast.Eql)), jast.Boolean}, true
	}

	if !jast.IsNumericType(x.t) || !jast.IsNumericType(y.t) {
		return typed{}, false
	}

	switch op {
	case jast.Shl, jast.Shr, jast.UShr:
		return shift(op, x, y)
	}

	t := jast.PromoteNumeric(x.t, y.t)
	xv, yv := x.v, y.v
	if jast.IsFloatingType(t) {
		xv, yv = constant.ToFloat(xv), constant.ToFloat(yv)
	}

	if op.IsComparison() {
		tok := map[jast.BinaryOp]token.Token{
			jast.Lss: token.LSS, jast.Leq: token.LEQ, jast.Gtr: token.GTR,
			jast.Geq: token.GEQ, jast.Eql: token.EQL, jast.Neq: token.NEQ,
		}[op]
		return typed{constant.MakeBool(constant.Compare(xv, tok, yv)), jast.Boolean}, true
	}

	var tok token.Token
	switch op {
	case jast.Add:
		tok = token.ADD
	case jast.Sub:
		tok = token.SUB
	case jast.Mul:
		tok = token.MUL
	case jast.Quo, jast.Rem:
		if constant.Sign(yv) == 0 {
			return typed{}, false
		}
		switch {
		case jast.IsFloatingType(t) && op == jast.Rem:
			return typed{}, false
		case jast.IsFloatingType(t):
			tok = token.QUO
		case op == jast.Quo:
			tok = token.QUO_ASSIGN // truncated integer division
		default:
			tok = token.REM
		}
	case jast.And, jast.Or, jast.Xor:
		if jast.IsFloatingType(t) {
			return typed{}, false
		}
		tok = map[jast.BinaryOp]token.Token{jast.And: token.AND, jast.Or: token.OR, jast.Xor: token.XOR}[op]
	default:
		return typed{}, false
	}
	if tok == token.QUO_ASSIGN {
		return typed{wrap(constant.BinaryOp(xv, token.QUO_ASSIGN, yv), width(t)), t}, true
	}
	v := constant.BinaryOp(xv, tok, yv)
	if jast.IsFloatingType(t) {
		return convert(typed{v, jast.Double}, t)
	}
	return typed{wrap(v, width(t)), t}, true
}

func shift(op jast.BinaryOp, x, y typed) (typed, bool) {
	if !jast.IsIntegralType(x.t) || !jast.IsIntegralType(y.t) {
		return typed{}, false
	}
	t := jast.PromoteNumeric(x.t, jast.Int)
	bits := width(t)
	n, ok := constant.Int64Val(y.v)
	if !ok {
		return typed{}, false
	}
	s := uint(n & int64(bits-1))
	var v constant.Value
	switch op {
	case jast.Shl:
		v = constant.Shift(x.v, token.SHL, s)
	case jast.Shr:
		v = constant.Shift(x.v, token.SHR, s)
	default:
		v = constant.Shift(unsigned(x.v, bits), token.SHR, s)
	}
	return typed{wrap(v, bits), t}, true
}

// convert applies a primitive conversion, or the identity for String.
func convert(x typed, t *jast.TypeBinding) (typed, bool) {
	if jast.IsStringType(t) {
		if !jast.IsStringType(x.t) {
			return typed{}, false
		}
		return x, true
	}
	t = jast.AsPrimitive(t)
	switch {
	case t.Is("boolean"):
		if x.v.Kind() != constant.Bool {
			return typed{}, false
		}
		return typed{x.v, t}, true
	case t.Is("float"):
		f, _ := constant.Float32Val(constant.ToFloat(x.v))
		if math.IsInf(float64(f), 0) {
			return typed{}, false
		}
		return typed{constant.MakeFloat64(float64(f)), t}, true
	case t.Is("double"):
		f, _ := constant.Float64Val(constant.ToFloat(x.v))
		if math.IsInf(f, 0) {
			return typed{}, false
		}
		return typed{constant.MakeFloat64(f), t}, true
	case jast.IsIntegralType(t):
		v := x.v
		if v.Kind() == constant.Unknown {
			return typed{}, false
		}
		if v.Kind() == constant.Float {
			f, _ := constant.Float64Val(v)
			if math.IsNaN(f) {
				return typed{}, false
			}
			v = saturate(math.Trunc(f), t)
		}
		if v.Kind() != constant.Int {
			return typed{}, false
		}
		v = wrap(v, width(t))
		if t.Is("char") {
			v = unsigned(v, 16)
		}
		return typed{v, t}, true
	}
	return typed{}, false
}

func saturate(f float64, t *jast.TypeBinding) constant.Value {
	if t.Is("long") {
		switch {
		case f >= math.MaxInt64:
			return constant.MakeInt64(math.MaxInt64)
		case f <= math.MinInt64:
			return constant.MakeInt64(math.MinInt64)
		}
		return constant.MakeInt64(int64(f))
	}
	switch {
	case f >= math.MaxInt32:
		return constant.MakeInt64(math.MaxInt32)
	case f <= math.MinInt32:
		return constant.MakeInt64(math.MinInt32)
	}
	return constant.MakeInt64(int64(f))
}

// stringify renders a constant as string conversion does. Floating point
// values are refused.
func stringify(x typed) (string, bool) {
	switch {
	case jast.IsStringType(x.t):
		return constant.StringVal(x.v), true
	case x.t.Is("char"):
		n, _ := constant.Int64Val(x.v)
		return string(rune(n)), true
	case x.v.Kind() == constant.Bool:
		if constant.BoolVal(x.v) {
			return "true", true
		}
		return "false", true
	case x.v.Kind() == constant.Int:
		return x.v.ExactString(), true
	}
	return "", false
}
