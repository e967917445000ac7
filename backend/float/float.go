// Package float implements plaintext float64 values, used to debug real-valued
// circuits such as the sign-based comparisons.
package float

import (
	"fmt"
	"math"
)

// Context constructs float64 values.
type Context struct {
	Budget int
}

// NewContext returns a new [Context] with the given depth budget (0 for unbounded).
func NewContext(budget int) *Context {
	return &Context{Budget: budget}
}

// FromScalar returns c as a float64 value.
func (ctx *Context) FromScalar(c int64) (Number, error) {
	return Number{v: float64(c)}, nil
}

// FromFloat returns c as a value.
func (ctx *Context) FromFloat(c float64) Number {
	return Number{v: c}
}

// FromFloats returns the values of cs.
func (ctx *Context) FromFloats(cs []float64) (xs []Number) {
	xs = make([]Number, len(cs))
	for i := range cs {
		xs[i] = Number{v: cs[i]}
	}
	return
}

// RingSize returns 0: float64 values are unbounded.
func (ctx *Context) RingSize() uint64 {
	return 0
}

// DepthBudget returns the depth budget of the context.
func (ctx *Context) DepthBudget() int {
	return ctx.Budget
}

// Number is a float64 value.
type Number struct {
	v float64
}

// Value returns the float64 value.
func (x Number) Value() float64 {
	return x.v
}

func (x Number) Add(op Number) (Number, error) {
	return Number{v: x.v + op.v}, nil
}

func (x Number) Sub(op Number) (Number, error) {
	return Number{v: x.v - op.v}, nil
}

func (x Number) Mul(op Number) (Number, error) {
	return Number{v: x.v * op.v}, nil
}

func (x Number) AddScalar(c int64) (Number, error) {
	return Number{v: x.v + float64(c)}, nil
}

func (x Number) MulScalar(c int64) (Number, error) {
	return Number{v: x.v * float64(c)}, nil
}

func (x Number) AddFloat(c float64) (Number, error) {
	return Number{v: x.v + c}, nil
}

func (x Number) MulFloat(c float64) (Number, error) {
	return Number{v: x.v * c}, nil
}

func (x Number) Neg() (Number, error) {
	return Number{v: -x.v}, nil
}

// ToScalar returns the value. It returns an error if the value is not finite.
func (x Number) ToScalar() (float64, error) {
	if math.IsNaN(x.v) || math.IsInf(x.v, 0) {
		return 0, fmt.Errorf("cannot ToScalar: value is not finite: %v", x.v)
	}
	return x.v, nil
}

// RingSize returns 0.
func (x Number) RingSize() uint64 {
	return 0
}

// IsPlaintext returns true.
func (x Number) IsPlaintext() bool {
	return true
}

func (x Number) String() string {
	return fmt.Sprintf("%g", x.v)
}
