package jast

var boxes = map[string]string{
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"char":    "java.lang.Character",
	"short":   "java.lang.Short",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
}

var unboxes = func() map[string]*TypeBinding {
	m := make(map[string]*TypeBinding, len(boxes))
	for prim, box := range boxes {
		m[box] = primitives[prim]
	}
	return m
}()

// BoxedName returns the qualified name of the wrapper class of a primitive.
func BoxedName(t *TypeBinding) (string, bool) {
	if t == nil || !t.Primitive {
		return "", false
	}
	name, ok := boxes[t.QualifiedName]
	return name, ok
}

// UnboxedType returns the primitive type wrapped by a box class.
func UnboxedType(t *TypeBinding) (*TypeBinding, bool) {
	if t == nil {
		return nil, false
	}
	p, ok := unboxes[t.QualifiedName]
	return p, ok
}

// IsBoxedType reports whether t is one of the eight wrapper classes.
func IsBoxedType(t *TypeBinding) bool {
	_, ok := UnboxedType(t)
	return ok
}

// AsPrimitive returns t, unboxed when t is a wrapper class.
func AsPrimitive(t *TypeBinding) *TypeBinding {
	if p, ok := UnboxedType(t); ok {
		return p
	}
	return t
}

func IsNumericType(t *TypeBinding) bool {
	t = AsPrimitive(t)
	if t == nil || !t.Primitive {
		return false
	}
	switch t.QualifiedName {
	case "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func IsIntegralType(t *TypeBinding) bool {
	return IsNumericType(t) && !IsFloatingType(t)
}

func IsFloatingType(t *TypeBinding) bool {
	t = AsPrimitive(t)
	return t.Is("float") || t.Is("double")
}

func IsBooleanType(t *TypeBinding) bool {
	return AsPrimitive(t).Is("boolean")
}

func IsStringType(t *TypeBinding) bool {
	return t.Is("java.lang.String")
}

// PromoteNumeric applies binary numeric promotion.
func PromoteNumeric(x, y *TypeBinding) *TypeBinding {
	x, y = AsPrimitive(x), AsPrimitive(y)
	switch {
	case x.Is("double") || y.Is("double"):
		return Double
	case x.Is("float") || y.Is("float"):
		return Float
	case x.Is("long") || y.Is("long"):
		return Long
	}
	return Int
}

// BinaryResultType returns the static type of x op y, or nil when the
// operand types are not known well enough.
func BinaryResultType(op BinaryOp, x, y *TypeBinding) *TypeBinding {
	switch op {
	case Lss, Leq, Gtr, Geq, Eql, Neq, LAnd, LOr:
		return Boolean
	case Add:
		if IsStringType(x) || IsStringType(y) {
			return StringType
		}
	case And, Or, Xor:
		if IsBooleanType(x) && IsBooleanType(y) {
			return Boolean
		}
	case Shl, Shr, UShr:
		if !IsIntegralType(x) {
			return nil
		}
		if AsPrimitive(x).Is("long") {
			return Long
		}
		return Int
	}
	if IsNumericType(x) && IsNumericType(y) {
		return PromoteNumeric(x, y)
	}
	return nil
}
