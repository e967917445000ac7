// Package factorization implements the small number-theoretic utilities needed to
// reason about ring sizes: a prime table, primality testing, factorization into
// prime/multiplicity pairs and Euler's totient.
package factorization

import (
	"math/big"
	"sort"
	"sync"

	"github.com/tuneinsight/liphe/utils"
)

// Factor is a prime factor together with its multiplicity.
type Factor struct {
	Prime        uint64
	Multiplicity int
}

// tableBound is the bound of the trial division table.
const tableBound = 1 << 16

var (
	tableOnce sync.Once
	table     []uint64
)

// Primes returns the table of all primes smaller than 2^16.
// The table is computed once and shared; callers must not modify it.
func Primes() []uint64 {
	tableOnce.Do(func() {
		sieve := make([]bool, tableBound)
		for i := 2; i < tableBound; i++ {
			if !sieve[i] {
				table = append(table, uint64(i))
				for j := i * i; j < tableBound; j += i {
					sieve[j] = true
				}
			}
		}
	})
	return table
}

// IsPrime applies the Baillie-PSW primality test on x.
func IsPrime(x uint64) bool {
	return new(big.Int).SetUint64(x).ProbablyPrime(0)
}

// GetFactors returns the prime factors of m, sorted in increasing order, with their
// multiplicity. GetFactors(0) and GetFactors(1) return an empty slice.
func GetFactors(m uint64) (factors []Factor) {

	if m < 2 {
		return nil
	}

	count := map[uint64]int{}

	for _, p := range Primes() {
		if p*p > m {
			break
		}
		for m%p == 0 {
			count[p]++
			m /= p
		}
	}

	if m > 1 {
		// m has no factor smaller than 2^16, so it is either prime
		// or a product of large primes.
		stack := []uint64{m}
		for len(stack) != 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if IsPrime(n) {
				count[n]++
				continue
			}

			d := GetFactorPollardRho(n)
			stack = append(stack, d, n/d)
		}
	}

	factors = make([]Factor, 0, len(count))
	for p, k := range count {
		factors = append(factors, Factor{Prime: p, Multiplicity: k})
	}

	sort.Slice(factors, func(i, j int) bool {
		return factors[i].Prime < factors[j].Prime
	})

	return
}

// GetFactorPollardRho returns a non-trivial factor of the composite m using
// Pollard's rho algorithm with Floyd's cycle detection.
// The output is undefined if m is prime.
func GetFactorPollardRho(m uint64) (d uint64) {

	if m&1 == 0 {
		return 2
	}

	for c := uint64(1); ; c++ {

		f := func(x uint64) uint64 {
			return utils.AddMod(utils.MulMod(x, x, m), c%m, m)
		}

		x, y := uint64(2), uint64(2)
		d = 1

		for d == 1 {
			x = f(x)
			y = f(f(y))
			if x > y {
				d = utils.GCD(x-y, m)
			} else {
				d = utils.GCD(y-x, m)
			}
		}

		if d != m {
			return d
		}
	}
}

// Totient returns Euler's totient phi(m), the number of integers in [1, m]
// coprime to m. Totient(0) = 0 and Totient(1) = 1.
func Totient(m uint64) (phi uint64) {

	if m == 0 {
		return 0
	}

	phi = m
	for _, f := range GetFactors(m) {
		phi -= phi / f.Prime
	}

	return
}

// Coprime returns true if gcd(x, m) = 1.
func Coprime(x, m uint64) bool {
	return utils.GCD(x, m) == 1
}

// IsPrimePower returns true if m = p^k for a prime p and k >= 1.
func IsPrimePower(m uint64) bool {
	return len(GetFactors(m)) == 1
}
