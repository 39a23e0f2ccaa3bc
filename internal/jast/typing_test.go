package jast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxing(t *testing.T) {
	t.Parallel()
	name, ok := BoxedName(Int)
	assert.True(t, ok)
	assert.Equal(t, "java.lang.Integer", name)

	_, ok = BoxedName(StringType)
	assert.False(t, ok)
	_, ok = BoxedName(Void)
	assert.False(t, ok)

	integer := &TypeBinding{QualifiedName: "java.lang.Integer"}
	p, ok := UnboxedType(integer)
	assert.True(t, ok)
	assert.Same(t, Int, p)
	assert.True(t, IsBoxedType(integer))
	assert.False(t, IsBoxedType(Int))
	assert.Same(t, Int, AsPrimitive(integer))
	assert.Same(t, StringType, AsPrimitive(StringType))
}

func TestTypePredicates(t *testing.T) {
	t.Parallel()
	boxedDouble := &TypeBinding{QualifiedName: "java.lang.Double"}

	assert.True(t, IsNumericType(Char))
	assert.True(t, IsNumericType(boxedDouble))
	assert.False(t, IsNumericType(Boolean))
	assert.False(t, IsNumericType(nil))

	assert.True(t, IsIntegralType(Long))
	assert.False(t, IsIntegralType(boxedDouble))
	assert.True(t, IsFloatingType(boxedDouble))
	assert.True(t, IsBooleanType(&TypeBinding{QualifiedName: "java.lang.Boolean"}))
	assert.True(t, IsStringType(StringType))
	assert.False(t, IsStringType(ObjectType))
}

func TestBinaryResultType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		op   BinaryOp
		x, y *TypeBinding
		want *TypeBinding
	}{
		{"Compare", Lss, Int, Double, Boolean},
		{"Logical", LAnd, Boolean, Boolean, Boolean},
		{"Concat", Add, StringType, Int, StringType},
		{"ConcatRight", Add, Char, StringType, StringType},
		{"IntPromotion", Add, Byte, Short, Int},
		{"LongPromotion", Mul, Int, Long, Long},
		{"FloatPromotion", Sub, Long, Float, Float},
		{"DoublePromotion", Quo, Float, Double, Double},
		{"BoolAnd", And, Boolean, Boolean, Boolean},
		{"BitAnd", And, Int, Int, Int},
		{"ShiftKeepsLeft", Shl, Long, Int, Long},
		{"ShiftNarrow", Shr, Byte, Long, Int},
		{"ShiftFloat", Shl, Double, Int, nil},
		{"Unknown", Add, ObjectType, Int, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, BinaryResultType(tc.op, tc.x, tc.y))
		})
	}
}

func TestIsSubtypeOf(t *testing.T) {
	t.Parallel()
	list := &TypeBinding{QualifiedName: "java.util.List", Supers: []*TypeBinding{
		{QualifiedName: "java.util.Collection", Supers: []*TypeBinding{ObjectType}},
	}}
	arrayList := &TypeBinding{QualifiedName: "java.util.ArrayList", Supers: []*TypeBinding{list}}

	assert.True(t, arrayList.IsSubtypeOf("java.util.ArrayList"))
	assert.True(t, arrayList.IsSubtypeOf("java.util.Collection"))
	assert.True(t, arrayList.IsSubtypeOf("java.lang.Object"))
	assert.False(t, list.IsSubtypeOf("java.util.ArrayList"))
	assert.False(t, (*TypeBinding)(nil).IsSubtypeOf("java.lang.Object"))

	cyclic := &TypeBinding{QualifiedName: "A"}
	cyclic.Supers = []*TypeBinding{cyclic}
	assert.False(t, cyclic.IsSubtypeOf("B"))
}
