// Package depth implements a decorator recording the multiplicative and additive
// circuit depth of any [number.Number] through every operation.
//
// The rules are:
//
//   - Mul: mul = max(a.mul, b.mul) + 1, add = max(a.add, b.add)
//   - Add, Sub: add = max(a.add, b.add) + 1, mul = max(a.mul, b.mul)
//   - MulScalar: mul + 1, whatever the scalar
//   - AddScalar, Neg: add + 1
//
// Values created by a [Context] bounded by a depth budget fail with
// [number.ErrDepthExhausted] as soon as a multiplication would exceed it.
package depth

import (
	"fmt"
	"sync/atomic"

	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/utils"
)

// Counter counts the operations performed on the values of a [Context].
// It is safe for concurrent use.
type Counter struct {
	muls    atomic.Int64
	adds    atomic.Int64
	scalars atomic.Int64
}

// Muls returns the number of value-value multiplications.
func (c *Counter) Muls() int64 {
	if c == nil {
		return 0
	}
	return c.muls.Load()
}

// Adds returns the number of value-value additions and subtractions.
func (c *Counter) Adds() int64 {
	if c == nil {
		return 0
	}
	return c.adds.Load()
}

// Scalars returns the number of scalar additions, scalar multiplications and negations.
func (c *Counter) Scalars() int64 {
	if c == nil {
		return 0
	}
	return c.scalars.Load()
}

// Reset sets all counts to zero.
func (c *Counter) Reset() {
	if c == nil {
		return
	}
	c.muls.Store(0)
	c.adds.Store(0)
	c.scalars.Store(0)
}

func (c *Counter) String() string {
	return fmt.Sprintf("muls=%d adds=%d scalars=%d", c.Muls(), c.Adds(), c.Scalars())
}

type opKind int

const (
	opMul opKind = iota
	opAdd
	opScalar
)

func (c *Counter) inc(kind opKind) {
	if c == nil {
		return
	}
	switch kind {
	case opMul:
		c.muls.Add(1)
	case opAdd:
		c.adds.Add(1)
	default:
		c.scalars.Add(1)
	}
}

// Context wraps a [number.Context] so that the values it constructs track their depth.
type Context[T number.Number[T]] struct {
	ctx     number.Context[T]
	counter *Counter
}

// NewContext returns a new [Context] wrapping ctx. The budget of the values is
// ctx.DepthBudget().
func NewContext[T number.Number[T]](ctx number.Context[T]) *Context[T] {
	return &Context[T]{ctx: ctx, counter: new(Counter)}
}

// Unwrap returns the wrapped context.
func (ctx *Context[T]) Unwrap() number.Context[T] {
	return ctx.ctx
}

// Counter returns the operation counter shared by all the values of the context.
func (ctx *Context[T]) Counter() *Counter {
	return ctx.counter
}

// FromScalar returns a fresh value of depth 0 encoding c.
func (ctx *Context[T]) FromScalar(c int64) (Number[T], error) {
	v, err := ctx.ctx.FromScalar(c)
	if err != nil {
		return Number[T]{}, err
	}
	return ctx.Wrap(v), nil
}

// Wrap returns v as a fresh value of depth 0.
func (ctx *Context[T]) Wrap(v T) Number[T] {
	return Number[T]{value: v, budget: ctx.ctx.DepthBudget(), counter: ctx.counter}
}

// WrapAll calls [Context.Wrap] on each element of vs.
func (ctx *Context[T]) WrapAll(vs []T) (xs []Number[T]) {
	xs = make([]Number[T], len(vs))
	for i := range vs {
		xs[i] = ctx.Wrap(vs[i])
	}
	return
}

// RingSize returns the ring size of the wrapped context.
func (ctx *Context[T]) RingSize() uint64 {
	return ctx.ctx.RingSize()
}

// DepthBudget returns the depth budget of the wrapped context.
func (ctx *Context[T]) DepthBudget() int {
	return ctx.ctx.DepthBudget()
}

// Number is a value of type T annotated with its circuit depth.
type Number[T number.Number[T]] struct {
	value   T
	mul     int
	add     int
	budget  int
	counter *Counter
}

// Value returns the wrapped value.
func (x Number[T]) Value() T {
	return x.value
}

// MulDepth returns the multiplicative depth of x.
func (x Number[T]) MulDepth() int {
	return x.mul
}

// AddDepth returns the additive depth of x.
func (x Number[T]) AddDepth() int {
	return x.add
}

func (x Number[T]) derive(v T, mul, add int) Number[T] {
	return Number[T]{value: v, mul: mul, add: add, budget: x.budget, counter: x.counter}
}

func (x Number[T]) checkBudget(mul int) error {
	if x.budget > 0 && mul > x.budget {
		return fmt.Errorf("depth %d > budget %d: %w", mul, x.budget, number.ErrDepthExhausted)
	}
	return nil
}

// Add returns x + op.
func (x Number[T]) Add(op Number[T]) (Number[T], error) {
	v, err := x.value.Add(op.value)
	if err != nil {
		return Number[T]{}, err
	}
	x.counter.inc(opAdd)
	return x.derive(v, utils.Max(x.mul, op.mul), utils.Max(x.add, op.add)+1), nil
}

// Sub returns x - op.
func (x Number[T]) Sub(op Number[T]) (Number[T], error) {
	v, err := x.value.Sub(op.value)
	if err != nil {
		return Number[T]{}, err
	}
	x.counter.inc(opAdd)
	return x.derive(v, utils.Max(x.mul, op.mul), utils.Max(x.add, op.add)+1), nil
}

// Mul returns x * op.
func (x Number[T]) Mul(op Number[T]) (Number[T], error) {
	mul := utils.Max(x.mul, op.mul) + 1
	if err := x.checkBudget(mul); err != nil {
		return Number[T]{}, fmt.Errorf("cannot Mul: %w", err)
	}
	v, err := x.value.Mul(op.value)
	if err != nil {
		return Number[T]{}, err
	}
	x.counter.inc(opMul)
	return x.derive(v, mul, utils.Max(x.add, op.add)), nil
}

// AddScalar returns x + c.
func (x Number[T]) AddScalar(c int64) (Number[T], error) {
	v, err := x.value.AddScalar(c)
	if err != nil {
		return Number[T]{}, err
	}
	x.counter.inc(opScalar)
	return x.derive(v, x.mul, x.add+1), nil
}

// MulScalar returns x * c.
func (x Number[T]) MulScalar(c int64) (Number[T], error) {
	if err := x.checkBudget(x.mul + 1); err != nil {
		return Number[T]{}, fmt.Errorf("cannot MulScalar: %w", err)
	}
	v, err := x.value.MulScalar(c)
	if err != nil {
		return Number[T]{}, err
	}
	x.counter.inc(opScalar)
	return x.derive(v, x.mul+1, x.add), nil
}

// Neg returns -x.
func (x Number[T]) Neg() (Number[T], error) {
	v, err := x.value.Neg()
	if err != nil {
		return Number[T]{}, err
	}
	x.counter.inc(opScalar)
	return x.derive(v, x.mul, x.add+1), nil
}

// AddFloat returns x + c if the wrapped value is real-valued.
func (x Number[T]) AddFloat(c float64) (Number[T], error) {
	r, ok := any(x.value).(number.Real[T])
	if !ok {
		return Number[T]{}, fmt.Errorf("cannot AddFloat: %T is not real-valued: %w", x.value, number.ErrUnsupported)
	}
	v, err := r.AddFloat(c)
	if err != nil {
		return Number[T]{}, err
	}
	x.counter.inc(opScalar)
	return x.derive(v, x.mul, x.add+1), nil
}

// MulFloat returns x * c if the wrapped value is real-valued.
func (x Number[T]) MulFloat(c float64) (Number[T], error) {
	r, ok := any(x.value).(number.Real[T])
	if !ok {
		return Number[T]{}, fmt.Errorf("cannot MulFloat: %T is not real-valued: %w", x.value, number.ErrUnsupported)
	}
	if err := x.checkBudget(x.mul + 1); err != nil {
		return Number[T]{}, fmt.Errorf("cannot MulFloat: %w", err)
	}
	v, err := r.MulFloat(c)
	if err != nil {
		return Number[T]{}, err
	}
	x.counter.inc(opScalar)
	return x.derive(v, x.mul+1, x.add), nil
}

// ToScalar returns the plaintext value of the wrapped value.
func (x Number[T]) ToScalar() (float64, error) {
	return x.value.ToScalar()
}

// RingSize returns the ring size of the wrapped value.
func (x Number[T]) RingSize() uint64 {
	return x.value.RingSize()
}

// IsPlaintext forwards to the wrapped value.
func (x Number[T]) IsPlaintext() bool {
	return number.IsPlaintext(x.value)
}

func (x Number[T]) String() string {
	return fmt.Sprintf("%v [mul=%d add=%d]", any(x.value), x.mul, x.add)
}
