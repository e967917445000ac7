// Package zp implements plaintext integers modulo p.
// It is the reference backend of the encrypted algorithms: the same circuit run on
// [Number] and on an encrypted backend of plaintext modulus p must decrypt to the
// same residues.
package zp

import (
	"fmt"

	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/utils"
)

// Context constructs residues modulo P.
type Context struct {
	P      uint64
	Budget int
}

// NewContext returns a new [Context] for the ring Z_p with the given depth budget
// (0 for unbounded). It returns an error if p < 2.
func NewContext(p uint64, budget int) (*Context, error) {
	if p < 2 {
		return nil, fmt.Errorf("cannot NewContext: ring size %d < 2: %w", p, number.ErrInvalidArgument)
	}
	if budget < 0 {
		return nil, fmt.Errorf("cannot NewContext: negative depth budget: %w", number.ErrInvalidArgument)
	}
	return &Context{P: p, Budget: budget}, nil
}

// FromScalar returns c mod p.
func (ctx *Context) FromScalar(c int64) (Number, error) {
	return Number{v: utils.ModInt(c, ctx.P), p: ctx.P}, nil
}

// FromScalars returns the slice of the residues of cs.
func (ctx *Context) FromScalars(cs []int64) (xs []Number) {
	xs = make([]Number, len(cs))
	for i, c := range cs {
		xs[i] = Number{v: utils.ModInt(c, ctx.P), p: ctx.P}
	}
	return
}

// RingSize returns p.
func (ctx *Context) RingSize() uint64 {
	return ctx.P
}

// DepthBudget returns the depth budget of the context.
func (ctx *Context) DepthBudget() int {
	return ctx.Budget
}

// Number is a residue modulo p. The zero value is not a valid Number.
type Number struct {
	v, p uint64
}

// Value returns the residue in [0, p).
func (x Number) Value() uint64 {
	return x.v
}

// Centered returns the representative of the residue in (-p/2, p/2].
func (x Number) Centered() int64 {
	return utils.CenterMod(x.v, x.p)
}

// Add returns x + op mod p.
func (x Number) Add(op Number) (Number, error) {
	if err := number.CheckRing(x.p, op.p); err != nil {
		return Number{}, fmt.Errorf("cannot Add: %w", err)
	}
	return Number{v: utils.AddMod(x.v, op.v, x.p), p: x.p}, nil
}

// Sub returns x - op mod p.
func (x Number) Sub(op Number) (Number, error) {
	if err := number.CheckRing(x.p, op.p); err != nil {
		return Number{}, fmt.Errorf("cannot Sub: %w", err)
	}
	return Number{v: utils.SubMod(x.v, op.v, x.p), p: x.p}, nil
}

// Mul returns x * op mod p.
func (x Number) Mul(op Number) (Number, error) {
	if err := number.CheckRing(x.p, op.p); err != nil {
		return Number{}, fmt.Errorf("cannot Mul: %w", err)
	}
	return Number{v: utils.MulMod(x.v, op.v, x.p), p: x.p}, nil
}

// AddScalar returns x + c mod p.
func (x Number) AddScalar(c int64) (Number, error) {
	return Number{v: utils.AddMod(x.v, utils.ModInt(c, x.p), x.p), p: x.p}, nil
}

// MulScalar returns x * c mod p.
func (x Number) MulScalar(c int64) (Number, error) {
	return Number{v: utils.MulMod(x.v, utils.ModInt(c, x.p), x.p), p: x.p}, nil
}

// Neg returns -x mod p.
func (x Number) Neg() (Number, error) {
	return Number{v: utils.SubMod(0, x.v, x.p), p: x.p}, nil
}

// ToScalar returns the residue in [0, p) as a float64.
func (x Number) ToScalar() (float64, error) {
	return float64(x.v), nil
}

// RingSize returns p.
func (x Number) RingSize() uint64 {
	return x.p
}

// IsPlaintext returns true.
func (x Number) IsPlaintext() bool {
	return true
}

func (x Number) String() string {
	return fmt.Sprintf("%d (mod %d)", x.v, x.p)
}
