package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualScalars(t *testing.T) {
	assert.True(t, Equal(Binary("abc"), Binary("abc")))
	assert.False(t, Equal(Binary("abc"), Binary("abd")))
	assert.True(t, Equal(Integer(42), Integer(42)))
	assert.False(t, Equal(Integer(42), Float(42)))
	assert.True(t, Equal(Float(1.5), Float(1.5)))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.True(t, Equal(Atom("ok"), Atom("ok")))
	assert.True(t, Equal(String("hi"), String("hi")))
	assert.False(t, Equal(String("hi"), Binary("hi")))
}

func TestEqualCompound(t *testing.T) {
	a := List{Integer(1), Atom("x"), Tuple{Bool(true), Binary("y")}}
	b := List{Integer(1), Atom("x"), Tuple{Bool(true), Binary("y")}}
	c := List{Integer(1), Atom("x"), Tuple{Bool(false), Binary("y")}}
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))

	p1 := PropList{{Key: Atom("k"), Value: Integer(1)}}
	p2 := PropList{{Key: Atom("k"), Value: Integer(1)}}
	p3 := PropList{{Key: Atom("k"), Value: Integer(2)}}
	assert.True(t, Equal(p1, p2))
	assert.False(t, Equal(p1, p3))

	r1 := Record{Name: "point", Fields: []Term{Integer(3), Integer(4)}}
	r2 := Record{Name: "point", Fields: []Term{Integer(3), Integer(4)}}
	r3 := Record{Name: "point", Fields: []Term{Integer(3), Integer(5)}}
	assert.True(t, Equal(r1, r2))
	assert.False(t, Equal(r1, r3))
}

func TestEqualDifferentVariantsNeverEqual(t *testing.T) {
	assert.False(t, Equal(List{Integer(1)}, Tuple{Integer(1)}))
	assert.False(t, Equal(PropList{}, List{}))
}
