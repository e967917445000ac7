// Package number defines the numeric capability every plaintext or encrypted value
// must provide for the generic algorithms of liphe (exponentiation, comparison,
// tournament reduction and encrypted search) to run on it.
//
// Operators are exposed as named methods returning a new value and an error:
// values are immutable, and an operation between values of different rings or
// contexts fails with an error wrapping [ErrRingMismatch] instead of producing a
// silently wrong result.
package number

// Number is the arithmetic capability of a plaintext or encrypted scalar of type T.
//
// T is the concrete value type itself, so that a generic function written as
//
//	func F[T number.Number[T]](x T) (T, error)
//
// can combine values of T without knowing the backend.
type Number[T any] interface {
	// Add returns the receiver plus op.
	Add(op T) (T, error)
	// Sub returns the receiver minus op.
	Sub(op T) (T, error)
	// Mul returns the receiver times op.
	Mul(op T) (T, error)
	// AddScalar returns the receiver plus the integer constant c.
	AddScalar(c int64) (T, error)
	// MulScalar returns the receiver times the integer constant c.
	MulScalar(c int64) (T, error)
	// Neg returns the additive inverse of the receiver.
	Neg() (T, error)
	// ToScalar returns the plaintext value of the receiver.
	// Encrypted backends decrypt, which is only possible when they hold the secret key.
	ToScalar() (float64, error)
	// RingSize returns the modulus of the ring the value lives in, or 0 if the
	// value is real-valued (unbounded).
	RingSize() uint64
}

// Context constructs values of type T. Every construction site takes the context
// explicitly: no key material is ever installed globally.
type Context[T any] interface {
	// FromScalar returns a new value encoding the integer c.
	FromScalar(c int64) (T, error)
	// RingSize returns the ring size of the values constructed by the context.
	RingSize() uint64
	// DepthBudget returns the maximum multiplicative depth values of this context
	// can sustain, or 0 if unbounded.
	DepthBudget() int
}

// DepthReporter is implemented by values that track their circuit depth.
type DepthReporter interface {
	MulDepth() int
	AddDepth() int
}

// Inspector is implemented by values that can tell whether their content is
// available in the clear, in which case preconditions on the content can be
// checked before computing.
type Inspector interface {
	IsPlaintext() bool
}

// Real is implemented by real-valued backends which accept non-integer constants.
type Real[T any] interface {
	Number[T]
	AddFloat(c float64) (T, error)
	MulFloat(c float64) (T, error)
}

// IsPlaintext returns true if x implements [Inspector] and reports its content as
// available in the clear.
func IsPlaintext(x any) bool {
	if i, ok := x.(Inspector); ok {
		return i.IsPlaintext()
	}
	return false
}

// Depth returns the multiplicative and additive depth of x if it implements
// [DepthReporter], else ok is false.
func Depth(x any) (mul, add int, ok bool) {
	if d, isReporter := x.(DepthReporter); isReporter {
		return d.MulDepth(), d.AddDepth(), true
	}
	return 0, 0, false
}
