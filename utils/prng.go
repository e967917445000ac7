package utils

import (
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/blake2b"
)

// PRNG is a deterministic source of random bytes.
type PRNG interface {
	Clock() uint64
	Seed(seed []byte)
	Read(sum []byte) (n int, err error)
}

// KeyedPRNG is a structure storing the parameters used to deterministically generate
// sequences of random bytes using the hash function blake2b. Two instances seeded with
// the same key and seed produce the same sequence, which is what the tests and the
// command line tool rely on to regenerate inputs.
type KeyedPRNG struct {
	clock uint64
	seed  []byte
	xof   blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key, else set key=nil.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, err
	}
	return &KeyedPRNG{xof: xof}, nil
}

// Clock returns the number of reads performed since the last seeding.
func (prng *KeyedPRNG) Clock() uint64 {
	return prng.clock
}

// Seed resets the current state of the prng (without changing the
// optional key) and seeds it with the given bytes.
func (prng *KeyedPRNG) Seed(seed []byte) {
	prng.xof.Reset()
	prng.seed = make([]byte, len(seed))
	copy(prng.seed, seed)
	if _, err := prng.xof.Write(seed); err != nil {
		// blake2b.XOF.Write only fails after a read without reset.
		panic(err)
	}
	prng.clock = 0
}

// Read reads len(sum) bytes from the prng on sum.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	if n, err = prng.xof.Read(sum); err != nil {
		return
	}
	prng.clock++
	return
}

// Uint64 returns the next 8 bytes of the prng as an uint64.
func (prng *KeyedPRNG) Uint64() (uint64, error) {
	var b [8]byte
	if _, err := prng.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// Uniform returns a value uniformly distributed in [0, max).
func (prng *KeyedPRNG) Uniform(max uint64) (uint64, error) {

	if max == 0 {
		return 0, errors.New("cannot Uniform: max is zero")
	}

	// Rejection sampling on the largest multiple of max.
	limit := ^uint64(0) - (^uint64(0) % max)
	for {
		x, err := prng.Uint64()
		if err != nil {
			return 0, err
		}
		if x < limit {
			return x % max, nil
		}
	}
}

// Bits returns n pseudo-random bits where each bit is set with
// probability 1/density (density >= 1).
func (prng *KeyedPRNG) Bits(n int, density uint64) (bits []uint64, err error) {

	if density == 0 {
		return nil, errors.New("cannot Bits: density is zero")
	}

	bits = make([]uint64, n)
	for i := range bits {
		var x uint64
		if x, err = prng.Uniform(density); err != nil {
			return nil, err
		}
		if x == 0 {
			bits[i] = 1
		}
	}

	return
}
