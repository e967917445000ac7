package float

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/liphe/number"
)

func TestNumber(t *testing.T) {

	ctx := NewContext(0)
	require.Equal(t, uint64(0), ctx.RingSize())

	a, err := ctx.FromScalar(3)
	require.NoError(t, err)
	b := ctx.FromFloat(0.5)

	c, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, 1.5, c.Value())

	c, err = c.AddFloat(-2)
	require.NoError(t, err)
	c, err = c.Neg()
	require.NoError(t, err)
	v, err := c.ToScalar()
	require.NoError(t, err)
	require.Equal(t, 0.5, v)

	p, err := number.Power(a, 3)
	require.NoError(t, err)
	require.Equal(t, 27.0, p.Value())

	_, err = ctx.FromFloat(math.Inf(1)).ToScalar()
	require.Error(t, err)
}
