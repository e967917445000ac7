package compare_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/liphe/backend/float"
	"github.com/tuneinsight/liphe/backend/zp"
	"github.com/tuneinsight/liphe/compare"
	"github.com/tuneinsight/liphe/depth"
	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/polynomial"
)

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// testOrdering checks every comparison of the comparator against the host on all residues mod p.
func testOrdering(t *testing.T, cmp compare.Comparator[zp.Number], ctx *zp.Context) {

	p := int64(ctx.RingSize())

	ops := []struct {
		name string
		f    func(x zp.Number, c int64) (zp.Number, error)
		want func(x, c int64) bool
	}{
		{"Equal", cmp.Equal, func(x, c int64) bool { return x == c }},
		{"NotEqual", cmp.NotEqual, func(x, c int64) bool { return x != c }},
		{"LessThan", cmp.LessThan, func(x, c int64) bool { return x < c }},
		{"LessEqual", cmp.LessEqual, func(x, c int64) bool { return x <= c }},
		{"GreaterThan", cmp.GreaterThan, func(x, c int64) bool { return x > c }},
		{"GreaterEqual", cmp.GreaterEqual, func(x, c int64) bool { return x >= c }},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			for c := int64(-2); c <= p+1; c++ {
				for x := int64(0); x < p; x++ {
					xz, err := ctx.FromScalar(x)
					require.NoError(t, err)
					y, err := op.f(xz, c)
					require.NoError(t, err)
					require.Equal(t, b2u(op.want(x, c)), y.Value(), "x=%d c=%d", x, c)
				}
			}
		})
	}

	t.Run("Values", func(t *testing.T) {
		half := (p - 1) / 2
		for a := int64(0); a < p; a++ {
			for b := int64(0); b < p; b++ {

				az, err := ctx.FromScalar(a)
				require.NoError(t, err)
				bz, err := ctx.FromScalar(b)
				require.NoError(t, err)

				eq, err := cmp.EqualValues(az, bz)
				require.NoError(t, err)
				require.Equal(t, b2u(a == b), eq.Value())

				ne, err := compare.NotEqualValues(cmp, az, bz)
				require.NoError(t, err)
				require.Equal(t, b2u(a != b), ne.Value())

				if d := a - b; d < -half || d > half {
					continue
				}

				lt, err := cmp.LessValues(az, bz)
				require.NoError(t, err)
				require.Equal(t, b2u(a < b), lt.Value(), "a=%d b=%d", a, b)

				gt, err := compare.GreaterValues(cmp, az, bz)
				require.NoError(t, err)
				require.Equal(t, b2u(a > b), gt.Value())

				le, err := compare.LessEqualValues(cmp, az, bz)
				require.NoError(t, err)
				require.Equal(t, b2u(a <= b), le.Value())

				ge, err := compare.GreaterEqualValues(cmp, az, bz)
				require.NoError(t, err)
				require.Equal(t, b2u(a >= b), ge.Value())
			}
		}
	})
}

func TestNative(t *testing.T) {
	ctx, err := zp.NewContext(17, 0)
	require.NoError(t, err)
	testOrdering(t, compare.NewNative[zp.Number](ctx), ctx)
}

func TestPolynomial(t *testing.T) {

	for _, p := range []uint64{3, 17} {
		t.Run(fmt.Sprintf("p=%d", p), func(t *testing.T) {
			ctx, err := zp.NewContext(p, 0)
			require.NoError(t, err)

			cmp, err := compare.NewPolynomial[zp.Number](ctx, polynomial.NewCache())
			require.NoError(t, err)

			testOrdering(t, cmp, ctx)
		})
	}

	t.Run("EdgeThresholds", func(t *testing.T) {

		ctx, err := zp.NewContext(17, 0)
		require.NoError(t, err)

		cache := polynomial.NewCache()
		cmp, err := compare.NewPolynomial[zp.Number](ctx, cache)
		require.NoError(t, err)

		x, err := ctx.FromScalar(5)
		require.NoError(t, err)

		for _, tc := range []struct {
			f    func(zp.Number, int64) (zp.Number, error)
			c    int64
			want uint64
		}{
			{cmp.LessThan, 0, 0},
			{cmp.LessThan, -3, 0},
			{cmp.LessThan, 17, 1},
			{cmp.GreaterThan, 16, 0},
			{cmp.GreaterThan, -1, 1},
			{cmp.LessEqual, 16, 1},
			{cmp.GreaterEqual, 0, 1},
			{cmp.Equal, 17, 0},
			{cmp.Equal, -1, 0},
		} {
			y, err := tc.f(x, tc.c)
			require.NoError(t, err)
			require.Equal(t, tc.want, y.Value())
		}

		require.Equal(t, 0, cache.Len())

		// The same threshold reuses the cached polynomial
		_, err = cmp.LessThan(x, 4)
		require.NoError(t, err)
		_, err = cmp.LessEqual(x, 3)
		require.NoError(t, err)
		require.Equal(t, polynomial.Stats{Hits: 1, Misses: 1, Builds: 1}, cache.Stats())
	})

	t.Run("InvalidRing", func(t *testing.T) {
		ctx, err := zp.NewContext(16, 0)
		require.NoError(t, err)
		_, err = compare.NewPolynomial[zp.Number](ctx, polynomial.NewCache())
		require.ErrorIs(t, err, number.ErrInvalidArgument)

		ctx, err = zp.NewContext(17, 0)
		require.NoError(t, err)
		_, err = compare.NewPolynomial[zp.Number](ctx, nil)
		require.ErrorIs(t, err, number.ErrInvalidArgument)
	})
}

func TestEuler(t *testing.T) {

	t.Run("Prime", func(t *testing.T) {

		zctx, err := zp.NewContext(17, 0)
		require.NoError(t, err)

		ctx := depth.NewContext[zp.Number](zctx)
		cmp, err := compare.NewEuler[depth.Number[zp.Number]](ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(16), cmp.Phi())

		for r := int64(0); r < 17; r++ {
			x, err := ctx.FromScalar(r)
			require.NoError(t, err)

			nz, err := cmp.IsNonZero(x)
			require.NoError(t, err)
			require.Equal(t, b2u(r != 0), nz.Value().Value())
			require.Equal(t, 4, nz.MulDepth())

			z, err := cmp.IsZero(x)
			require.NoError(t, err)
			require.Equal(t, b2u(r == 0), z.Value().Value())

			eq, err := cmp.Equal(x, 5)
			require.NoError(t, err)
			require.Equal(t, b2u(r == 5), eq.Value().Value())

			ne, err := cmp.NotEqual(x, 5)
			require.NoError(t, err)
			require.Equal(t, b2u(r != 5), ne.Value().Value())
		}

		a, err := ctx.FromScalar(3)
		require.NoError(t, err)
		b, err := ctx.FromScalar(20)
		require.NoError(t, err)
		eq, err := cmp.EqualValues(a, b)
		require.NoError(t, err)
		require.Equal(t, uint64(1), eq.Value().Value())

		_, err = cmp.LessThan(a, 3)
		require.ErrorIs(t, err, number.ErrUnsupported)
		_, err = cmp.GreaterEqual(a, 3)
		require.ErrorIs(t, err, number.ErrUnsupported)
		_, err = cmp.LessValues(a, b)
		require.ErrorIs(t, err, number.ErrUnsupported)
	})

	t.Run("Composite", func(t *testing.T) {

		ctx, err := zp.NewContext(10, 0)
		require.NoError(t, err)

		cmp, err := compare.NewEuler[zp.Number](ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(4), cmp.Phi())

		for _, r := range []int64{1, 3, 7, 9} {
			x, err := ctx.FromScalar(r)
			require.NoError(t, err)
			y, err := cmp.IsNonZero(x)
			require.NoError(t, err)
			require.Equal(t, uint64(1), y.Value())
		}

		for _, r := range []int64{2, 4, 5, 6, 8} {
			x, err := ctx.FromScalar(r)
			require.NoError(t, err)
			_, err = cmp.IsNonZero(x)
			require.ErrorIs(t, err, number.ErrInvalidArgument)
		}
	})

	t.Run("InvalidRing", func(t *testing.T) {
		_, err := compare.NewEuler[float.Number](float.NewContext(0))
		require.ErrorIs(t, err, number.ErrInvalidArgument)
	})

	t.Run("RingMismatch", func(t *testing.T) {
		c17, err := zp.NewContext(17, 0)
		require.NoError(t, err)
		c19, err := zp.NewContext(19, 0)
		require.NoError(t, err)
		cmp, err := compare.NewEuler[zp.Number](c17)
		require.NoError(t, err)
		x, err := c19.FromScalar(3)
		require.NoError(t, err)
		_, err = cmp.IsZero(x)
		require.ErrorIs(t, err, number.ErrRingMismatch)
	})
}

func TestSign(t *testing.T) {

	ctx := float.NewContext(0)

	cmp, err := compare.NewSign[float.Number](ctx, 32, 0)
	require.NoError(t, err)
	require.Positive(t, cmp.Iterations)

	check := func(t *testing.T, want bool, y float.Number) {
		require.InDelta(t, float64(b2u(want)), y.Value(), 1e-3)
	}

	for x := int64(-10); x <= 10; x++ {
		for c := int64(-5); c <= 5; c++ {

			xf, err := ctx.FromScalar(x)
			require.NoError(t, err)

			y, err := cmp.LessThan(xf, c)
			require.NoError(t, err)
			check(t, x < c, y)

			y, err = cmp.LessEqual(xf, c)
			require.NoError(t, err)
			check(t, x <= c, y)

			y, err = cmp.GreaterThan(xf, c)
			require.NoError(t, err)
			check(t, x > c, y)

			y, err = cmp.GreaterEqual(xf, c)
			require.NoError(t, err)
			check(t, x >= c, y)

			y, err = cmp.Equal(xf, c)
			require.NoError(t, err)
			check(t, x == c, y)

			cf, err := ctx.FromScalar(c)
			require.NoError(t, err)
			y, err = cmp.LessValues(xf, cf)
			require.NoError(t, err)
			check(t, x < c, y)
		}
	}

	t.Run("Depth", func(t *testing.T) {
		dctx := depth.NewContext[float.Number](ctx)
		dcmp, err := compare.NewSign[depth.Number[float.Number]](dctx, 32, 10)
		require.NoError(t, err)
		x, err := dctx.FromScalar(3)
		require.NoError(t, err)
		y, err := dcmp.LessThan(x, 5)
		require.NoError(t, err)
		require.InDelta(t, 1, y.Value().Value(), 0.1)
		// scaling, 10 iterations of two levels, final scaling
		require.Equal(t, 22, y.MulDepth())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := compare.NewSign[float.Number](ctx, 0.5, 0)
		require.ErrorIs(t, err, number.ErrInvalidArgument)
		_, err = compare.NewSign[float.Number](ctx, math.NaN(), 0)
		require.ErrorIs(t, err, number.ErrInvalidArgument)
	})

	require.Greater(t, compare.SignIterations(1024, 20), compare.SignIterations(16, 20))
}
