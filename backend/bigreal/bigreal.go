// Package bigreal implements plaintext arbitrary precision real values, used as a
// high precision reference for real-valued circuits.
package bigreal

import (
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/liphe/utils/bignum"
)

// DefaultPrec is the default precision, in bits, of the values.
const DefaultPrec = 256

// Context constructs *big.Float values of a fixed precision.
type Context struct {
	Prec   uint
	Budget int
}

// NewContext returns a new [Context] with the given precision in bits
// (0 for [DefaultPrec]) and depth budget (0 for unbounded).
func NewContext(prec uint, budget int) *Context {
	if prec == 0 {
		prec = DefaultPrec
	}
	return &Context{Prec: prec, Budget: budget}
}

// FromScalar returns c as a value.
func (ctx *Context) FromScalar(c int64) (Number, error) {
	return Number{v: bignum.NewFloat(c, ctx.Prec)}, nil
}

// FromFloat returns c as a value, or an error if c is not finite.
func (ctx *Context) FromFloat(c float64) (Number, error) {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return Number{}, fmt.Errorf("cannot FromFloat: %v is not finite", c)
	}
	return Number{v: bignum.NewFloat(c, ctx.Prec)}, nil
}

// FromBig returns a copy of c as a value.
func (ctx *Context) FromBig(c *big.Float) Number {
	return Number{v: bignum.NewFloat(c, ctx.Prec)}
}

func (ctx *Context) RingSize() uint64 {
	return 0
}

func (ctx *Context) DepthBudget() int {
	return ctx.Budget
}

// Number is an immutable *big.Float value: every operation allocates its result.
type Number struct {
	v *big.Float
}

// Value returns a copy of the underlying value.
func (x Number) Value() *big.Float {
	return new(big.Float).Copy(x.v)
}

func (x Number) prec() uint {
	return x.v.Prec()
}

func (x Number) Add(op Number) (Number, error) {
	return Number{v: new(big.Float).SetPrec(x.prec()).Add(x.v, op.v)}, nil
}

func (x Number) Sub(op Number) (Number, error) {
	return Number{v: new(big.Float).SetPrec(x.prec()).Sub(x.v, op.v)}, nil
}

func (x Number) Mul(op Number) (Number, error) {
	return Number{v: new(big.Float).SetPrec(x.prec()).Mul(x.v, op.v)}, nil
}

func (x Number) AddScalar(c int64) (Number, error) {
	return x.Add(Number{v: bignum.NewFloat(c, x.prec())})
}

func (x Number) MulScalar(c int64) (Number, error) {
	return x.Mul(Number{v: bignum.NewFloat(c, x.prec())})
}

func (x Number) AddFloat(c float64) (Number, error) {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return Number{}, fmt.Errorf("cannot AddFloat: %v is not finite", c)
	}
	return x.Add(Number{v: bignum.NewFloat(c, x.prec())})
}

func (x Number) MulFloat(c float64) (Number, error) {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return Number{}, fmt.Errorf("cannot MulFloat: %v is not finite", c)
	}
	return x.Mul(Number{v: bignum.NewFloat(c, x.prec())})
}

func (x Number) Neg() (Number, error) {
	return Number{v: new(big.Float).SetPrec(x.prec()).Neg(x.v)}, nil
}

// ToScalar returns the nearest float64.
func (x Number) ToScalar() (float64, error) {
	f, _ := x.v.Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("cannot ToScalar: %v overflows float64", x.v)
	}
	return f, nil
}

// Round returns the nearest integer of the value.
func (x Number) Round() *big.Int {
	i, _ := bignum.Round(x.v).Int(nil)
	return i
}

func (x Number) RingSize() uint64 {
	return 0
}

func (x Number) IsPlaintext() bool {
	return true
}

func (x Number) String() string {
	return x.v.Text('g', 20)
}
