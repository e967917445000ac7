package number_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/liphe/backend/zp"
	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/utils"
)

func TestPower(t *testing.T) {

	ctx, err := zp.NewContext(257, 0)
	require.NoError(t, err)

	for _, e := range []uint64{1, 2, 3, 4, 7, 8, 15, 16} {
		t.Run(fmt.Sprintf("e=%d", e), func(t *testing.T) {
			for _, c := range []int64{0, 1, 2, 3, 100, 256} {

				x, err := ctx.FromScalar(c)
				require.NoError(t, err)

				have, err := number.Power(x, e)
				require.NoError(t, err)

				want := x
				for i := uint64(1); i < e; i++ {
					want, err = want.Mul(x)
					require.NoError(t, err)
				}

				require.Equal(t, want, have)
				require.Equal(t, utils.ModExp(uint64(c), e, 257), have.Value())
			}
		})
	}

	t.Run("ZeroExponent", func(t *testing.T) {
		x, err := ctx.FromScalar(3)
		require.NoError(t, err)
		_, err = number.Power(x, 0)
		require.ErrorIs(t, err, number.ErrInvalidArgument)
	})
}

func TestPowerMod(t *testing.T) {

	ctx, err := zp.NewContext(17, 0)
	require.NoError(t, err)

	for c := int64(0); c < 17; c++ {
		x, err := ctx.FromScalar(c)
		require.NoError(t, err)

		// 32 = 0 mod 16 is replaced by 16, so that zero stays zero
		y, err := number.PowerMod(x, 32, 16)
		require.NoError(t, err)

		if c == 0 {
			require.Equal(t, uint64(0), y.Value())
		} else {
			require.Equal(t, uint64(1), y.Value())
		}

		z, err := number.PowerMod(x, 19, 16)
		require.NoError(t, err)
		require.Equal(t, utils.ModExp(uint64(c), 3, 17), z.Value())
	}

	x, err := ctx.FromScalar(2)
	require.NoError(t, err)
	_, err = number.PowerMod(x, 3, 0)
	require.ErrorIs(t, err, number.ErrInvalidArgument)
}

func TestHelpers(t *testing.T) {

	ctx, err := zp.NewContext(17, 0)
	require.NoError(t, err)

	xs := ctx.FromScalars([]int64{1, 2, 3, 4, 5})

	sum, err := number.Sum(xs)
	require.NoError(t, err)
	require.Equal(t, uint64(15), sum.Value())

	prod, err := number.Product(xs)
	require.NoError(t, err)
	require.Equal(t, uint64(120%17), prod.Value())

	_, err = number.Sum([]zp.Number{})
	require.ErrorIs(t, err, number.ErrInvalidArgument)
	_, err = number.Product([]zp.Number{})
	require.ErrorIs(t, err, number.ErrInvalidArgument)

	one, err := number.One[zp.Number](ctx)
	require.NoError(t, err)
	zero, err := number.Zero[zp.Number](ctx)
	require.NoError(t, err)

	c, err := number.OneMinus(one)
	require.NoError(t, err)
	require.Equal(t, zero, c)

	c, err = number.OneMinus(zero)
	require.NoError(t, err)
	require.Equal(t, one, c)

	_, _, ok := number.Depth(one)
	require.False(t, ok)
}
