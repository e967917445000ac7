package depth_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/liphe/backend/float"
	"github.com/tuneinsight/liphe/backend/zp"
	"github.com/tuneinsight/liphe/depth"
	"github.com/tuneinsight/liphe/number"
)

func TestDepthRules(t *testing.T) {

	zctx, err := zp.NewContext(257, 0)
	require.NoError(t, err)

	ctx := depth.NewContext[zp.Number](zctx)

	a, err := ctx.FromScalar(3)
	require.NoError(t, err)
	b, err := ctx.FromScalar(5)
	require.NoError(t, err)

	require.Equal(t, 0, a.MulDepth())
	require.Equal(t, 0, a.AddDepth())

	ab, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, 1, ab.MulDepth())
	require.Equal(t, 0, ab.AddDepth())
	require.Equal(t, uint64(15), ab.Value().Value())

	s, err := ab.Add(a)
	require.NoError(t, err)
	require.Equal(t, 1, s.MulDepth())
	require.Equal(t, 1, s.AddDepth())

	s, err = s.Sub(b)
	require.NoError(t, err)
	require.Equal(t, 2, s.AddDepth())

	m, err := s.MulScalar(1)
	require.NoError(t, err)
	require.Equal(t, 2, m.MulDepth())
	require.Equal(t, 2, m.AddDepth())

	n, err := m.Neg()
	require.NoError(t, err)
	require.Equal(t, 3, n.AddDepth())

	n, err = n.AddScalar(7)
	require.NoError(t, err)
	require.Equal(t, 4, n.AddDepth())
	require.Equal(t, 2, n.MulDepth())

	require.Equal(t, int64(1), ctx.Counter().Muls())
	require.Equal(t, int64(2), ctx.Counter().Adds())
	require.Equal(t, int64(3), ctx.Counter().Scalars())

	mul, add, ok := number.Depth(n)
	require.True(t, ok)
	require.Equal(t, 2, mul)
	require.Equal(t, 4, add)

	require.True(t, n.IsPlaintext())

	ctx.Counter().Reset()
	require.Equal(t, int64(0), ctx.Counter().Muls())
}

func TestChain(t *testing.T) {

	zctx, err := zp.NewContext(257, 0)
	require.NoError(t, err)

	for _, k := range []int{1, 2, 5, 10} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			ctx := depth.NewContext[zp.Number](zctx)
			x, err := ctx.FromScalar(2)
			require.NoError(t, err)
			acc := x
			for i := 0; i < k; i++ {
				acc, err = acc.Mul(x)
				require.NoError(t, err)
			}
			require.Equal(t, k, acc.MulDepth())
		})
	}
}

func TestBalancedProduct(t *testing.T) {

	zctx, err := zp.NewContext(257, 0)
	require.NoError(t, err)

	ctx := depth.NewContext[zp.Number](zctx)

	for k := 0; k < 5; k++ {
		leaves := make([]depth.Number[zp.Number], 1<<k)
		for i := range leaves {
			leaves[i], err = ctx.FromScalar(int64(i + 1))
			require.NoError(t, err)
		}
		p, err := number.Product(leaves)
		require.NoError(t, err)
		require.Equal(t, k, p.MulDepth())
	}
}

func TestPowerDepth(t *testing.T) {

	zctx, err := zp.NewContext(257, 0)
	require.NoError(t, err)

	ctx := depth.NewContext[zp.Number](zctx)
	x, err := ctx.FromScalar(3)
	require.NoError(t, err)

	for e, want := range map[uint64]int{1: 0, 2: 1, 4: 2, 8: 3, 256: 8} {
		y, err := number.Power(x, e)
		require.NoError(t, err)
		require.Equal(t, want, y.MulDepth(), "e=%d", e)
	}
}

func TestBudget(t *testing.T) {

	zctx, err := zp.NewContext(257, 2)
	require.NoError(t, err)

	ctx := depth.NewContext[zp.Number](zctx)
	require.Equal(t, 2, ctx.DepthBudget())

	x, err := ctx.FromScalar(2)
	require.NoError(t, err)

	y, err := x.Mul(x)
	require.NoError(t, err)
	y, err = y.Mul(y)
	require.NoError(t, err)
	require.Equal(t, 2, y.MulDepth())

	_, err = y.Mul(x)
	require.ErrorIs(t, err, number.ErrDepthExhausted)

	_, err = y.MulScalar(3)
	require.ErrorIs(t, err, number.ErrDepthExhausted)

	// Additions are free
	_, err = y.Add(x)
	require.NoError(t, err)
}

func TestRealForwarding(t *testing.T) {

	zctx, err := zp.NewContext(257, 0)
	require.NoError(t, err)
	x, err := depth.NewContext[zp.Number](zctx).FromScalar(2)
	require.NoError(t, err)
	_, err = x.AddFloat(0.5)
	require.ErrorIs(t, err, number.ErrUnsupported)

	fctx := depth.NewContext[float.Number](float.NewContext(0))
	f, err := fctx.FromScalar(2)
	require.NoError(t, err)
	f, err = f.MulFloat(0.25)
	require.NoError(t, err)
	v, err := f.ToScalar()
	require.NoError(t, err)
	require.Equal(t, 0.5, v)
	require.Equal(t, 1, f.MulDepth())
}
