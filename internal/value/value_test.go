package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberValAddPromotion(t *testing.T) {
	assert.Equal(t, Int64(5), Int64(2).Add(Int64(3)))
	assert.Equal(t, Float64(5.5), Int64(2).Add(Float64(3.5)))
	assert.Equal(t, Float64(5.5), Float64(2.5).Add(Int64(3)))
}

func TestNumberValEqualDistinguishesKind(t *testing.T) {
	assert.True(t, Int64(3).Equal(Int64(3)))
	assert.True(t, Float64(3.0).Equal(Float64(3.0)))
	assert.False(t, Int64(3).Equal(Float64(3.0)), "an integer and an equal-valued float are not equal")
}

func TestValueSetOverwritesInPlace(t *testing.T) {
	obj := EmptyObject()
	obj.Set("a", StringValue("first"))
	obj.Set("b", StringValue("second"))
	obj.Set("a", StringValue("updated"))

	assert.Len(t, obj.Obj, 2, "overwriting an existing key must not append")
	assert.Equal(t, "a", obj.Obj[0].Key, "original position is preserved")

	v, ok := obj.Field("a")
	assert.True(t, ok)
	assert.Equal(t, "updated", v.Str)
}

func TestValueSetOnNonObjectPanics(t *testing.T) {
	v := StringValue("x")
	assert.Panics(t, func() { v.Set("a", NullValue()) })
}

func TestValueFieldOnNonObject(t *testing.T) {
	_, ok := StringValue("x").Field("a")
	assert.False(t, ok)
}

func TestValueElementOutOfRange(t *testing.T) {
	arr := EmptyArray()
	arr.Arr = append(arr.Arr, NumberValue(Int64(1)))
	_, ok := arr.Element(5)
	assert.False(t, ok)
	_, ok = arr.Element(-1)
	assert.False(t, ok)
	v, ok := arr.Element(0)
	assert.True(t, ok)
	assert.True(t, v.Equal(NumberValue(Int64(1))))
}

func TestValueEqualObjectOrderIndependent(t *testing.T) {
	a := EmptyObject()
	a.Set("x", NumberValue(Int64(1)))
	a.Set("y", NumberValue(Int64(2)))

	b := EmptyObject()
	b.Set("y", NumberValue(Int64(2)))
	b.Set("x", NumberValue(Int64(1)))

	assert.True(t, a.Equal(b))
}

func TestValueEqualObjectDifferentSize(t *testing.T) {
	a := EmptyObject()
	a.Set("x", NumberValue(Int64(1)))

	b := EmptyObject()
	b.Set("x", NumberValue(Int64(1)))
	b.Set("y", NumberValue(Int64(2)))

	assert.False(t, a.Equal(b))
}

func TestValueEqualArrayPositional(t *testing.T) {
	a := EmptyArray()
	a.Arr = []Value{NumberValue(Int64(1)), NumberValue(Int64(2))}
	b := EmptyArray()
	b.Arr = []Value{NumberValue(Int64(2)), NumberValue(Int64(1))}
	assert.False(t, a.Equal(b), "array equality is positional")
}

func TestValueEqualDifferentKinds(t *testing.T) {
	assert.False(t, NullValue().Equal(BoolValue(false)))
}
