package search

import (
	"fmt"
	"math"

	"github.com/tuneinsight/liphe/compare"
	"github.com/tuneinsight/liphe/number"
)

// ExtractOptions configures [ExtractBits].
type ExtractOptions struct {
	// Check enables the validity check of every extracted contribution when the
	// values are inspectable (see [number.Inspector]).
	Check bool
	// Tolerance is the maximum deviation of a contribution b_i * 2^i from 0 or 2^i.
	// Defaults to 0.5.
	Tolerance float64
}

// ExtractBits decomposes x in [0, 2^k) into k values b_0, ..., b_{k-1} equal to
// 0 or 1, with x = sum_i b_i * 2^i. The bits are extracted from the most
// significant one: b_i = x >= 2^i, then x -= b_i * 2^i.
// The output is in increasing order of significance.
//
// With opts.Check, a contribution deviating by more than the tolerance from both
// 0 and 2^i aborts the extraction with an error wrapping [number.ErrComputationInvalid]:
// the comparator was not precise enough for the input and the result must be discarded.
func ExtractBits[T number.Number[T]](cmp compare.Comparator[T], x T, k int, opts ExtractOptions) (bits []T, err error) {

	if k < 1 || k > 62 {
		return nil, fmt.Errorf("cannot ExtractBits: invalid number of bits %d: %w", k, number.ErrInvalidArgument)
	}

	if rs := x.RingSize(); rs != 0 && uint64(1)<<uint(k) > rs {
		return nil, fmt.Errorf("cannot ExtractBits: 2^%d > ring size %d: %w", k, rs, number.ErrInvalidArgument)
	}

	tol := opts.Tolerance
	if tol <= 0 {
		tol = 0.5
	}

	bits = make([]T, k)

	for i := k - 1; i >= 0; i-- {

		pow := int64(1) << uint(i)

		if bits[i], err = cmp.GreaterEqual(x, pow); err != nil {
			return nil, fmt.Errorf("cannot ExtractBits: bit %d: %w", i, err)
		}

		if i == 0 {
			break
		}

		var contribution T
		if contribution, err = bits[i].MulScalar(pow); err != nil {
			return nil, fmt.Errorf("cannot ExtractBits: bit %d: %w", i, err)
		}

		if opts.Check {
			if err = checkContribution(contribution, pow, tol); err != nil {
				return nil, fmt.Errorf("cannot ExtractBits: bit %d: %w", i, err)
			}
		}

		if x, err = x.Sub(contribution); err != nil {
			return nil, fmt.Errorf("cannot ExtractBits: bit %d: %w", i, err)
		}
	}

	if opts.Check {
		if err = checkContribution(bits[0], 1, tol); err != nil {
			return nil, fmt.Errorf("cannot ExtractBits: bit 0: %w", err)
		}
	}

	return
}

func checkContribution[T number.Number[T]](c T, pow int64, tol float64) (err error) {

	if !number.IsPlaintext(c) {
		return nil
	}

	var v float64
	if v, err = c.ToScalar(); err != nil {
		return
	}

	if math.Abs(v) > tol && math.Abs(v-float64(pow)) > tol {
		return fmt.Errorf("contribution %v deviates from both 0 and %d: %w", v, pow, number.ErrComputationInvalid)
	}

	return nil
}

// LeadingBit finds, without decrypting, the position of the most significant set
// bit of x in [0, 2^k). The bits of x are extracted most significant first and
// fed to [FirstNonZero]: the returned index encodes j, the rank of the leading
// bit from the top, so that its position is k-1-j. found is the indicator x != 0;
// when it is 0 the index is 0.
func LeadingBit[T number.Number[T]](ctx number.Context[T], cmp compare.Comparator[T], x T, k int, opts ExtractOptions) (index []T, found T, err error) {

	var bits []T
	if bits, err = ExtractBits(cmp, x, k, opts); err != nil {
		return nil, found, fmt.Errorf("cannot LeadingBit: %w", err)
	}

	msbFirst := make([]T, k)
	for i := range bits {
		msbFirst[k-1-i] = bits[i]
	}

	if index, err = FirstNonZeroSlice(ctx, cmp, msbFirst); err != nil {
		return nil, found, fmt.Errorf("cannot LeadingBit: %w", err)
	}

	if found, err = cmp.IsNonZero(x); err != nil {
		return nil, found, fmt.Errorf("cannot LeadingBit: %w", err)
	}

	return
}
