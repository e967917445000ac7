package zp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/liphe/number"
)

func TestNumber(t *testing.T) {

	ctx, err := NewContext(17, 0)
	require.NoError(t, err)

	a, err := ctx.FromScalar(-3)
	require.NoError(t, err)
	require.Equal(t, uint64(14), a.Value())
	require.Equal(t, int64(-3), a.Centered())

	b, err := ctx.FromScalar(5)
	require.NoError(t, err)

	t.Run("Arithmetic", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		require.Equal(t, uint64(2), sum.Value())

		diff, err := b.Sub(a)
		require.NoError(t, err)
		require.Equal(t, uint64(8), diff.Value())

		prod, err := a.Mul(b)
		require.NoError(t, err)
		require.Equal(t, uint64(2), prod.Value()) // -15 = 2 mod 17

		neg, err := b.Neg()
		require.NoError(t, err)
		require.Equal(t, uint64(12), neg.Value())

		s, err := b.MulScalar(-1)
		require.NoError(t, err)
		require.Equal(t, neg, s)

		s, err = b.AddScalar(20)
		require.NoError(t, err)
		require.Equal(t, uint64(8), s.Value())
	})

	t.Run("RingMismatch", func(t *testing.T) {
		other, err := NewContext(19, 0)
		require.NoError(t, err)
		c, err := other.FromScalar(5)
		require.NoError(t, err)

		_, err = b.Add(c)
		require.ErrorIs(t, err, number.ErrRingMismatch)
		require.ErrorIs(t, err, number.ErrInvalidArgument)
		_, err = b.Mul(c)
		require.ErrorIs(t, err, number.ErrRingMismatch)
	})

	t.Run("InvalidContext", func(t *testing.T) {
		_, err := NewContext(1, 0)
		require.ErrorIs(t, err, number.ErrInvalidArgument)
		_, err = NewContext(17, -1)
		require.ErrorIs(t, err, number.ErrInvalidArgument)
	})

	require.True(t, number.IsPlaintext(a))
	require.Equal(t, uint64(17), a.RingSize())
}
