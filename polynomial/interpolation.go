package polynomial

import (
	"fmt"

	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/utils"
	"github.com/tuneinsight/liphe/utils/factorization"
)

// MaxModulus is the largest modulus for which full-field interpolation is supported.
// The interpolation costs O(p * |support|) modular multiplications.
const MaxModulus = 1<<16 + 1

// Relation is the relation an indicator polynomial tests against its threshold.
type Relation int

const (
	// LessThan selects the residues x < threshold.
	LessThan = Relation(0)
	// GreaterThan selects the residues x > threshold.
	GreaterThan = Relation(1)
	// EqualTo selects the residue x == threshold.
	EqualTo = Relation(2)
)

func (r Relation) String() string {
	switch r {
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case EqualTo:
		return "=="
	default:
		return fmt.Sprintf("Relation(%d)", int(r))
	}
}

// Holds returns true if x r threshold.
func (r Relation) Holds(x uint64, threshold int64) bool {
	switch r {
	case LessThan:
		return threshold > 0 && x < uint64(threshold)
	case GreaterThan:
		return threshold < 0 || x > uint64(threshold)
	case EqualTo:
		return threshold >= 0 && x == uint64(threshold)
	default:
		return false
	}
}

// Key identifies an indicator polynomial.
type Key struct {
	RingSize  uint64
	Relation  Relation
	Threshold int64
}

func (k Key) String() string {
	return fmt.Sprintf("x%s%d (mod %d)", k.Relation, k.Threshold, k.RingSize)
}

// NewIndicator builds the polynomial P of degree at most p-1 such that, for every
// residue x in [0, p), P(x) = 1 if x key.Relation key.Threshold, else 0.
// The ring size must be prime.
func NewIndicator(key Key) (*Polynomial, error) {

	switch key.Relation {
	case LessThan, GreaterThan, EqualTo:
	default:
		return nil, fmt.Errorf("cannot NewIndicator: unknown relation %s: %w", key.Relation, number.ErrInvalidArgument)
	}

	poly, err := Indicator(key.RingSize, func(x uint64) bool {
		return key.Relation.Holds(x, key.Threshold)
	})

	if err != nil {
		return nil, fmt.Errorf("cannot NewIndicator: %s: %w", key, err)
	}

	return poly, nil
}

// Indicator returns the polynomial over Z_p, p prime, evaluating to 1 on the residues
// selected by set and to 0 elsewhere.
func Indicator(p uint64, set func(x uint64) bool) (*Polynomial, error) {
	return Interpolate(p, func(x uint64) uint64 {
		if set(x) {
			return 1
		}
		return 0
	})
}

// Interpolate returns the unique polynomial P of degree at most p-1 over Z_p,
// p prime, such that P(x) = f(x) mod p for every residue x.
//
// It uses the closed form P(X) = sum_s f(s) * (1 - (X-s)^{p-1}), whose
// coefficients are c_0 = f(0) and c_k = -sum_s f(s) * s^{p-1-k} for k >= 1,
// with 0^0 = 1.
func Interpolate(p uint64, f func(x uint64) uint64) (*Polynomial, error) {

	if p > MaxModulus {
		return nil, fmt.Errorf("cannot Interpolate: modulus %d > %d: %w", p, uint64(MaxModulus), number.ErrInvalidArgument)
	}

	if !factorization.IsPrime(p) {
		return nil, fmt.Errorf("cannot Interpolate: modulus %d is not prime: %w", p, number.ErrInvalidArgument)
	}

	sums := make([]uint64, p) // sums[k] = sum_s f(s) * s^{p-1-k}

	for s := uint64(0); s < p; s++ {

		fs := f(s) % p
		if fs == 0 {
			continue
		}

		pow := uint64(1)
		for k := p - 1; k > 0; k-- {
			sums[k] = utils.AddMod(sums[k], utils.MulMod(fs, pow, p), p)
			pow = utils.MulMod(pow, s, p)
		}
	}

	coeffs := make([]uint64, p)
	coeffs[0] = f(0) % p
	for k := uint64(1); k < p; k++ {
		coeffs[k] = utils.SubMod(0, sums[k], p)
	}

	return &Polynomial{Modulus: p, Coeffs: coeffs}, nil
}

// Lagrange returns the polynomial P of degree at most len(x)-1 over Z_p, p prime,
// such that P(x[i]) = y[i]. The x[i] must be distinct.
func Lagrange(x, y []uint64, p uint64) (*Polynomial, error) {

	if len(x) != len(y) || len(x) == 0 {
		return nil, fmt.Errorf("cannot Lagrange: len(x)=%d != len(y)=%d or empty: %w", len(x), len(y), number.ErrInvalidArgument)
	}

	if !factorization.IsPrime(p) {
		return nil, fmt.Errorf("cannot Lagrange: modulus %d is not prime: %w", p, number.ErrInvalidArgument)
	}

	n := len(x)

	xs := make([]uint64, n)
	seen := map[uint64]bool{}
	for i := range x {
		if xs[i] = x[i] % p; seen[xs[i]] {
			return nil, fmt.Errorf("cannot Lagrange: duplicate point %d: %w", xs[i], number.ErrInvalidArgument)
		}
		seen[xs[i]] = true
	}

	// master = prod_i (X - x[i]), in increasing degree order
	master := make([]uint64, n+1)
	master[0] = 1
	for i := 0; i < n; i++ {
		for j := i + 1; j > 0; j-- {
			master[j] = utils.SubMod(master[j-1], utils.MulMod(master[j], xs[i], p), p)
		}
		master[0] = utils.SubMod(0, utils.MulMod(master[0], xs[i], p), p)
	}

	coeffs := make([]uint64, n)
	basis := make([]uint64, n)

	for i := 0; i < n; i++ {

		// basis = master / (X - x[i]) by synthetic division
		basis[n-1] = master[n]
		for j := n - 1; j > 0; j-- {
			basis[j-1] = utils.AddMod(master[j], utils.MulMod(basis[j], xs[i], p), p)
		}

		// den = basis(x[i]) = prod_{j != i} (x[i] - x[j])
		var den uint64
		for j := n - 1; j >= 0; j-- {
			den = utils.AddMod(utils.MulMod(den, xs[i], p), basis[j], p)
		}

		// y[i] / den
		scale := utils.MulMod(y[i]%p, utils.ModExp(den, p-2, p), p)

		for j := 0; j < n; j++ {
			coeffs[j] = utils.AddMod(coeffs[j], utils.MulMod(basis[j], scale, p), p)
		}
	}

	return &Polynomial{Modulus: p, Coeffs: coeffs}, nil
}
