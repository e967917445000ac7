// Package polynomial implements polynomials over Z_p used as comparison
// indicators: closed-form interpolation of indicator functions, generic power
// basis and baby-step giant-step evaluation on any [number.Number], and a
// process-wide cache of built indicators backed by pluggable stores.
package polynomial

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tuneinsight/lattigo/v6/utils/structs"
	"github.com/zeebo/blake3"

	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/utils"
)

// DigestSize is the size in bytes of a polynomial digest.
const DigestSize = 32

// Polynomial is a polynomial with coefficients in Z_Modulus, stored in
// increasing degree order.
type Polynomial struct {
	Modulus uint64
	Coeffs  structs.Vector[uint64]
}

// NewPolynomial returns a new [Polynomial] with the given coefficients reduced modulo p.
func NewPolynomial(p uint64, coeffs []uint64) (*Polynomial, error) {

	if p < 2 {
		return nil, fmt.Errorf("cannot NewPolynomial: modulus %d < 2: %w", p, number.ErrInvalidArgument)
	}

	if len(coeffs) == 0 {
		coeffs = []uint64{0}
	}

	c := make([]uint64, len(coeffs))
	for i := range coeffs {
		c[i] = coeffs[i] % p
	}

	return &Polynomial{Modulus: p, Coeffs: c}, nil
}

// NewConstant returns the constant polynomial c mod p.
func NewConstant(p uint64, c int64) (*Polynomial, error) {
	return NewPolynomial(p, []uint64{utils.ModInt(c, p)})
}

// Degree returns the index of the highest non-zero coefficient, or 0 for a constant.
func (p Polynomial) Degree() int {
	for i := len(p.Coeffs) - 1; i > 0; i-- {
		if p.Coeffs[i] != 0 {
			return i
		}
	}
	return 0
}

// IsConstant returns the constant coefficient and true if the polynomial has degree 0.
func (p Polynomial) IsConstant() (c uint64, ok bool) {
	if p.Degree() == 0 {
		return p.Coeffs[0], true
	}
	return 0, false
}

// Eval evaluates the polynomial at x mod p using Horner's scheme.
func (p Polynomial) Eval(x uint64) (y uint64) {
	q := p.Modulus
	x %= q
	for i := p.Degree(); i >= 0; i-- {
		y = utils.AddMod(utils.MulMod(y, x, q), p.Coeffs[i], q)
	}
	return
}

// Centered returns the coefficients up to the degree as integers in (-p/2, p/2].
func (p Polynomial) Centered() (coeffs []int64) {
	coeffs = make([]int64, p.Degree()+1)
	for i := range coeffs {
		coeffs[i] = utils.CenterMod(p.Coeffs[i], p.Modulus)
	}
	return
}

// CopyNew returns a deep copy of the polynomial.
func (p Polynomial) CopyNew() *Polynomial {
	return &Polynomial{Modulus: p.Modulus, Coeffs: p.Coeffs.CopyNew()}
}

// Equal returns true if both polynomials have the same modulus and coefficients.
func (p Polynomial) Equal(other *Polynomial) bool {
	return other != nil && p.Modulus == other.Modulus && p.Coeffs.Equal(other.Coeffs)
}

// Digest returns the blake3 digest of the binary serialization of the polynomial.
func (p Polynomial) Digest() (digest [DigestSize]byte, err error) {

	data, err := p.MarshalBinary()
	if err != nil {
		return digest, fmt.Errorf("cannot Digest: %w", err)
	}

	hasher := blake3.New()
	if _, err = hasher.Write(data); err != nil {
		return digest, fmt.Errorf("cannot Digest: %w", err)
	}

	copy(digest[:], hasher.Sum(nil))
	return
}

// MarshalBinary encodes the polynomial into a binary form on a newly allocated slice of bytes.
func (p Polynomial) MarshalBinary() (data []byte, err error) {

	buf := new(bytes.Buffer)

	if err = binary.Write(buf, binary.LittleEndian, p.Modulus); err != nil {
		return nil, err
	}

	var coeffs []byte
	if coeffs, err = p.Coeffs.MarshalBinary(); err != nil {
		return nil, err
	}

	buf.Write(coeffs)

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a slice of bytes generated by [Polynomial.MarshalBinary].
func (p *Polynomial) UnmarshalBinary(data []byte) (err error) {

	if len(data) < 8 {
		return fmt.Errorf("cannot UnmarshalBinary: data too short: %w", number.ErrInvalidArgument)
	}

	p.Modulus = binary.LittleEndian.Uint64(data[:8])

	if p.Modulus < 2 {
		return fmt.Errorf("cannot UnmarshalBinary: modulus %d < 2: %w", p.Modulus, number.ErrInvalidArgument)
	}

	p.Coeffs = nil
	if err = p.Coeffs.UnmarshalBinary(data[8:]); err != nil {
		return fmt.Errorf("cannot UnmarshalBinary: %w", err)
	}

	if len(p.Coeffs) == 0 {
		return fmt.Errorf("cannot UnmarshalBinary: no coefficients: %w", number.ErrInvalidArgument)
	}

	return
}
