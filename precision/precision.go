// Package precision computes statistics about the precision of decrypted results
// against their expected values, in bits: a result within delta of its expected
// value has log2(1/delta) bits of precision.
package precision

import (
	"fmt"
	"math"
	"math/big"

	"github.com/montanaflynn/stats"

	"github.com/tuneinsight/liphe/utils/bignum"
)

// MaxPrecision caps the precision of exact results.
const MaxPrecision = 64.0

// Stats is a struct storing statistics about the precision of a set of results.
type Stats struct {
	MaxDelta  float64
	MeanDelta float64

	MinPrecision    float64
	MeanPrecision   float64
	MedianPrecision float64
	StdPrecision    float64

	// Failures counts the results deviating by 0.5 or more from their expected
	// integer value.
	Failures int

	prec []float64
}

// NewStats returns an empty [Stats].
func NewStats() *Stats {
	return &Stats{}
}

// Update records the precision of have against want.
func (p *Stats) Update(have, want []float64) error {

	if len(have) != len(want) {
		return fmt.Errorf("cannot Update: len(have)=%d != len(want)=%d", len(have), len(want))
	}

	for i := range have {
		p.add(math.Abs(have[i]-want[i]), deltaToPrecision(math.Abs(have[i]-want[i])))
	}

	return nil
}

// UpdateBig records the precision of have against want, computing the bits of
// precision in arbitrary precision so that errors below 2^-1074 are not flushed to zero.
func (p *Stats) UpdateBig(have, want []*big.Float) error {

	if len(have) != len(want) {
		return fmt.Errorf("cannot UpdateBig: len(have)=%d != len(want)=%d", len(have), len(want))
	}

	for i := range have {

		delta := new(big.Float).SetPrec(have[i].Prec()).Sub(have[i], want[i])
		delta.Abs(delta)

		f, _ := delta.Float64()

		prec := MaxPrecision
		if delta.Sign() != 0 {
			prec, _ = bignum.Log2(delta).Float64()
			prec = math.Min(-prec, MaxPrecision)
		}

		p.add(f, prec)
	}

	return nil
}

func (p *Stats) add(delta, prec float64) {

	if delta >= 0.5 {
		p.Failures++
	}

	if delta > p.MaxDelta {
		p.MaxDelta = delta
	}

	p.MeanDelta += delta
	p.prec = append(p.prec, prec)
}

// Len returns the number of recorded results.
func (p *Stats) Len() int {
	return len(p.prec)
}

// Finalize computes the aggregated statistics. It must be called after the last
// update and before reading the fields.
func (p *Stats) Finalize() {

	if len(p.prec) == 0 {
		return
	}

	data := stats.Float64Data(p.prec)

	p.MinPrecision, _ = data.Min()
	p.MeanPrecision, _ = data.Mean()
	p.MedianPrecision, _ = data.Median()
	p.StdPrecision, _ = data.StandardDeviation()
	p.MeanDelta /= float64(len(p.prec))
}

func (p *Stats) String() string {
	return fmt.Sprintf("MIN=%.2f AVG=%.2f MED=%.2f STD=%.2f (bits) MAX_DELTA=%g FAILURES=%d/%d",
		p.MinPrecision, p.MeanPrecision, p.MedianPrecision, p.StdPrecision, p.MaxDelta, p.Failures, len(p.prec))
}

func deltaToPrecision(delta float64) float64 {
	if delta == 0 {
		return MaxPrecision
	}
	return math.Min(math.Log2(1/delta), MaxPrecision)
}
