// Package search implements branch-free searches over encrypted sequences: the
// position of the first non-zero element of a sequence of encrypted bits, bit
// extraction, and their composition into a leading-bit search.
package search

import (
	"fmt"

	"github.com/tuneinsight/liphe/compare"
	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/tournament"
	"github.com/tuneinsight/liphe/utils"
)

// zeroTest is the zero indicator of a tournament slot, valid as long as the slot
// holds the value written at stamp.
type zeroTest[T any] struct {
	value T
	stamp uint64
	valid bool
}

// FirstNonZero computes, without decrypting, the binary decomposition of the index
// of the first element equal to 1 in a sequence of values equal to 0 or 1.
// out[bit] receives bit bit of the index; len(out) must be large enough to
// represent every index of the sequence. If no element is 1, every out[bit] is 0.
//
// The elements already seen are kept in a sum tournament, so the "no 1 before i"
// test of element i is a product over at most log2(i)+1 slots: the raw complement
// of slot 0 and a zero test of each higher slot, computed once per slot content.
// Each element thus costs O(log n) multiplications and the depth grows as
// O(log log n) on top of the depth of one zero test.
//
// For a bounded ring, the sums must not wrap around: a slot holding 2^L bits can
// only be zero-tested if 2^L is smaller than the ring size.
func FirstNonZero[T number.Number[T]](ctx number.Context[T], cmp compare.Comparator[T], it Iterator[T], out []T) (err error) {

	k := len(out)
	if k > 63 {
		return fmt.Errorf("cannot FirstNonZero: %d output bits > 63: %w", k, number.ErrInvalidArgument)
	}

	ringSize := ctx.RingSize()

	bins := tournament.New[T](tournament.ADD)

	outputs := make([]*tournament.Tournament[T], k)
	for bit := range outputs {
		outputs[bit] = tournament.New[T](tournament.ADD)
	}

	tests := make([]zeroTest[T], 64)

	isZero := func(level int) (y T, err error) {

		stamp := bins.Stamp(level)

		if t := tests[level]; t.valid {
			if t.stamp != stamp {
				return y, fmt.Errorf("zero test of level %d computed at %d, slot written at %d: %w", level, t.stamp, stamp, number.ErrInvariantViolation)
			}
			return t.value, nil
		}

		if ringSize != 0 && uint64(1)<<level >= ringSize {
			return y, fmt.Errorf("slot %d sums up to %d bits >= ring size %d: %w", level, uint64(1)<<level, ringSize, number.ErrInvalidArgument)
		}

		var slot T
		if slot, err = bins.Number(level); err != nil {
			return
		}

		if y, err = cmp.IsZero(slot); err != nil {
			return
		}

		tests[level] = zeroTest[T]{value: y, stamp: stamp, valid: true}

		return
	}

	var i uint64
	for ; it.Next(); i++ {

		x := it.Value()

		if i>>uint(k) != 0 {
			return fmt.Errorf("cannot FirstNonZero: index %d does not fit in %d bits: %w", i, k, number.ErrInvalidArgument)
		}

		if i > 0 {

			mul := tournament.New[T](tournament.MUL)

			for level := 0; level < bins.Levels(); level++ {

				if bins.IsSlotEmpty(level) {
					continue
				}

				var none T
				if level == 0 {
					var slot T
					if slot, err = bins.Number(0); err != nil {
						return fmt.Errorf("cannot FirstNonZero: %w", err)
					}
					if none, err = number.OneMinus(slot); err != nil {
						return fmt.Errorf("cannot FirstNonZero: element %d: %w", i, err)
					}
				} else if none, err = isZero(level); err != nil {
					return fmt.Errorf("cannot FirstNonZero: element %d: %w", i, err)
				}

				if err = mul.Add(none); err != nil {
					return fmt.Errorf("cannot FirstNonZero: element %d: %w", i, err)
				}
			}

			if err = mul.Add(x); err != nil {
				return fmt.Errorf("cannot FirstNonZero: element %d: %w", i, err)
			}

			var first T
			if first, err = mul.UniteAll(); err != nil {
				return fmt.Errorf("cannot FirstNonZero: element %d: %w", i, err)
			}

			for bit := 0; bit < k; bit++ {
				if utils.BitSet(i, bit) {
					if err = outputs[bit].Add(first); err != nil {
						return fmt.Errorf("cannot FirstNonZero: element %d: bit %d: %w", i, bit, err)
					}
				}
			}
		}

		if err = bins.Add(x); err != nil {
			return fmt.Errorf("cannot FirstNonZero: element %d: %w", i, err)
		}

		// A slot emptied by the carry will hold a different sum when refilled.
		for level := range tests {
			if bins.IsSlotEmpty(level) {
				tests[level] = zeroTest[T]{}
			}
		}
	}

	if err = it.Err(); err != nil {
		return fmt.Errorf("cannot FirstNonZero: element %d: %w", i, err)
	}

	for bit := range out {

		if outputs[bit].Count() == 0 {
			if out[bit], err = number.Zero(ctx); err != nil {
				return fmt.Errorf("cannot FirstNonZero: %w", err)
			}
			continue
		}

		if out[bit], err = outputs[bit].UniteAll(); err != nil {
			return fmt.Errorf("cannot FirstNonZero: bit %d: %w", bit, err)
		}
	}

	return
}

// FirstNonZeroSlice runs [FirstNonZero] on bits with an output of ceil(log2(len(bits))) values.
func FirstNonZeroSlice[T number.Number[T]](ctx number.Context[T], cmp compare.Comparator[T], bits []T) (out []T, err error) {

	if len(bits) == 0 {
		return nil, fmt.Errorf("cannot FirstNonZeroSlice: empty input: %w", number.ErrInvalidArgument)
	}

	out = make([]T, utils.CeilLog2(len(bits)))

	if err = FirstNonZero(ctx, cmp, NewSliceIterator(bits), out); err != nil {
		return nil, err
	}

	return
}

// DecodeIndex reads back the index encoded by the output of [FirstNonZero].
// Each value must decode to 0 or 1 within 0.5, else the error wraps
// [number.ErrComputationInvalid].
func DecodeIndex[T number.Number[T]](out []T) (index uint64, err error) {

	for bit := range out {

		var b uint64
		if b, err = decodeBit(out[bit]); err != nil {
			return 0, fmt.Errorf("cannot DecodeIndex: bit %d: %w", bit, err)
		}

		index |= b << uint(bit)
	}

	return
}

func decodeBit[T number.Number[T]](x T) (b uint64, err error) {

	var v float64
	if v, err = x.ToScalar(); err != nil {
		return
	}

	switch {
	case v > -0.5 && v < 0.5:
		return 0, nil
	case v > 0.5 && v < 1.5:
		return 1, nil
	default:
		return 0, fmt.Errorf("%v is not a bit: %w", v, number.ErrComputationInvalid)
	}
}
