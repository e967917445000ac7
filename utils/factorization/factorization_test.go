package factorization_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/liphe/utils/factorization"
)

const (
	prime uint64 = 0x1fffffffffe00001
)

func TestIsPrime(t *testing.T) {
	// 2^64 - 59 is prime
	require.True(t, factorization.IsPrime(0xffffffffffffffc5))
	require.True(t, factorization.IsPrime(257))
	require.True(t, factorization.IsPrime(prime))
	// 2^64 - 1 is not prime
	require.False(t, factorization.IsPrime(0xffffffffffffffff))
	require.False(t, factorization.IsPrime(1))
	require.False(t, factorization.IsPrime(256))
}

func TestPrimes(t *testing.T) {
	primes := factorization.Primes()
	require.Equal(t, []uint64{2, 3, 5, 7, 11, 13}, primes[:6])
	require.Equal(t, uint64(65521), primes[len(primes)-1])
}

func TestGetFactors(t *testing.T) {

	t.Run("Small", func(t *testing.T) {
		require.Empty(t, factorization.GetFactors(1))
		require.Equal(t, []factorization.Factor{{2, 2}, {3, 1}, {5, 1}}, factorization.GetFactors(60))
		require.Equal(t, []factorization.Factor{{257, 1}}, factorization.GetFactors(257))
	})

	t.Run("Large", func(t *testing.T) {
		m := prime - 1
		require.True(t, checkFactorization(m, factorization.GetFactors(m)))
	})

	t.Run("SemiPrime", func(t *testing.T) {
		// product of two primes larger than the trial division table
		p, q := uint64(1000003), uint64(1000033)
		require.Equal(t, []factorization.Factor{{p, 1}, {q, 1}}, factorization.GetFactors(p*q))
	})

	t.Run("PollardRho", func(t *testing.T) {
		m := uint64(1000003) * 1000033
		d := factorization.GetFactorPollardRho(m)
		require.NotEqual(t, uint64(1), d)
		require.NotEqual(t, m, d)
		require.Zero(t, m%d)
	})
}

func TestTotient(t *testing.T) {
	for m, phi := range map[uint64]uint64{0: 0, 1: 1, 2: 1, 9: 6, 10: 4, 257: 256, 65536: 32768} {
		require.Equal(t, phi, factorization.Totient(m), "m=%d", m)
	}
	require.True(t, factorization.IsPrimePower(81))
	require.False(t, factorization.IsPrimePower(10))
	require.True(t, factorization.Coprime(9, 10))
	require.False(t, factorization.Coprime(6, 10))
}

func checkFactorization(p uint64, factors []factorization.Factor) bool {
	for _, factor := range factors {
		for i := 0; i < factor.Multiplicity; i++ {
			if p%factor.Prime != 0 {
				return false
			}
			p /= factor.Prime
		}
	}
	return p == 1
}
