// Package tournament implements a binomial tournament: a reducer which combines a
// stream of values under an associative operator in the pattern of a binary counter,
// so that every value takes part in at most log2(n) combinations and the depth of
// the reduced value is logarithmic in the number of inputs.
package tournament

import (
	"fmt"
	"math/bits"

	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/utils"
)

// Operator is the associative operator of a [Tournament].
type Operator int

const (
	// ADD combines values by addition.
	ADD = Operator(0)
	// MUL combines values by multiplication.
	MUL = Operator(1)
)

func (op Operator) String() string {
	switch op {
	case ADD:
		return "ADD"
	case MUL:
		return "MUL"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}

// Tournament accumulates values of type T. Slot i holds the combination of 2^i
// inputs and is occupied iff bit i of the number of inputs is set.
type Tournament[T number.Number[T]] struct {
	op     Operator
	count  uint64
	slots  []T
	stamps []uint64
}

// New returns an empty [Tournament] combining values with op.
func New[T number.Number[T]](op Operator) *Tournament[T] {
	return &Tournament[T]{op: op}
}

// Operator returns the operator of the tournament.
func (t *Tournament[T]) Operator() Operator {
	return t.op
}

// Count returns the number of values added since the creation or the last reset.
func (t *Tournament[T]) Count() uint64 {
	return t.count
}

// Levels returns the number of levels spanned by the current count.
func (t *Tournament[T]) Levels() int {
	return bits.Len64(t.count)
}

// IsSlotEmpty returns true iff bit level of the count is zero.
func (t *Tournament[T]) IsSlotEmpty(level int) bool {
	return level < 0 || level >= 64 || !utils.BitSet(t.count, level)
}

// Number returns the value stored at the given level.
// It returns an error wrapping [number.ErrInvalidArgument] if the slot is empty.
func (t *Tournament[T]) Number(level int) (v T, err error) {
	if t.IsSlotEmpty(level) {
		return v, fmt.Errorf("cannot Number: slot %d is empty: %w", level, number.ErrInvalidArgument)
	}
	return t.slots[level], nil
}

// Stamp returns the count right after the value currently stored at the given
// level was written, or 0 if the slot is empty. Two reads of a slot with the same
// stamp are reads of the same value.
func (t *Tournament[T]) Stamp(level int) uint64 {
	if t.IsSlotEmpty(level) {
		return 0
	}
	return t.stamps[level]
}

// Add inserts v. Starting from level 0, v is combined with every occupied slot it
// meets and carried upward, exactly as an increment ripples through a binary counter,
// until it lands in the first empty slot.
// On error, the tournament is left unchanged.
func (t *Tournament[T]) Add(v T) (err error) {

	carry := v
	level := 0
	for ; utils.BitSet(t.count, level); level++ {
		if carry, err = t.combine(t.slots[level], carry); err != nil {
			return fmt.Errorf("cannot Add: level %d: %w", level, err)
		}
	}

	for len(t.slots) <= level {
		var zero T
		t.slots = append(t.slots, zero)
		t.stamps = append(t.stamps, 0)
	}

	// Levels below the landing slot have been merged into it.
	var zero T
	for i := 0; i < level; i++ {
		t.slots[i] = zero
		t.stamps[i] = 0
	}

	t.count++
	t.slots[level] = carry
	t.stamps[level] = t.count

	return
}

// UniteAll combines all occupied slots, lowest level first, into a single value.
// The tournament is not modified: repeated calls return equivalent values.
// It returns an error wrapping [number.ErrInvalidArgument] if the tournament is empty.
func (t *Tournament[T]) UniteAll() (acc T, err error) {

	if t.count == 0 {
		return acc, fmt.Errorf("cannot UniteAll: tournament is empty: %w", number.ErrInvalidArgument)
	}

	first := true
	for level := 0; level < t.Levels(); level++ {

		if t.IsSlotEmpty(level) {
			continue
		}

		if first {
			acc, first = t.slots[level], false
			continue
		}

		if acc, err = t.combine(acc, t.slots[level]); err != nil {
			return acc, fmt.Errorf("cannot UniteAll: level %d: %w", level, err)
		}
	}

	return
}

// Reset empties the tournament.
func (t *Tournament[T]) Reset() {
	t.count = 0
	t.slots = t.slots[:0]
	t.stamps = t.stamps[:0]
}

func (t *Tournament[T]) combine(a, b T) (T, error) {
	switch t.op {
	case ADD:
		return a.Add(b)
	case MUL:
		return a.Mul(b)
	default:
		var zero T
		return zero, fmt.Errorf("unknown operator %s: %w", t.op, number.ErrInvalidArgument)
	}
}
