// Package heint implements encrypted integer values modulo a plaintext modulus t
// with the BGV scheme of lattigo. Each value is a batched ciphertext: scalars are
// broadcast to every slot and every operation acts slot-wise, so any algorithm
// written against number.Number runs on MaxSlots inputs at once.
//
// The context holds the secret key: ToScalar and DecryptVector decrypt. This is a
// single-party debug and benchmark backend.
package heint

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"

	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/utils"
)

// ParametersLiteral is the JSON-serializable description of a [Context].
type ParametersLiteral struct {
	// BGV are the scheme parameters. The plaintext modulus is the ring size of the values.
	BGV bgv.ParametersLiteral
	// Budget caps the multiplicative depth reported by the context (0 for MaxLevel).
	Budget int `json:",omitempty"`
}

// TestParametersLiteral are insecure parameters with t = 257 and 12 levels, used
// for the sole purpose of fast testing.
var TestParametersLiteral = ParametersLiteral{
	BGV: bgv.ParametersLiteral{
		LogN:             10,
		LogQ:             []int{60, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45},
		LogP:             []int{61, 61},
		PlaintextModulus: 0x101,
	},
}

// Context generates the keys and holds the objects needed to encrypt, evaluate
// and decrypt values.
type Context struct {
	params    bgv.Parameters
	budget    int
	encoder   *bgv.Encoder
	encryptor *rlwe.Encryptor
	decryptor *rlwe.Decryptor
	evaluator *bgv.Evaluator
}

// NewContext compiles the parameters and generates a fresh key pair and
// relinearization key.
func NewContext(literal ParametersLiteral) (ctx *Context, err error) {

	var params bgv.Parameters
	if params, err = bgv.NewParametersFromLiteral(literal.BGV); err != nil {
		return nil, fmt.Errorf("cannot NewContext: %w: %w", number.ErrInvalidArgument, err)
	}

	if literal.Budget < 0 || literal.Budget > params.MaxLevel() {
		return nil, fmt.Errorf("cannot NewContext: budget %d not in [0, %d]: %w", literal.Budget, params.MaxLevel(), number.ErrInvalidArgument)
	}

	budget := literal.Budget
	if budget == 0 {
		budget = params.MaxLevel()
	}

	kgen := rlwe.NewKeyGenerator(params)
	sk, pk := kgen.GenKeyPairNew()

	return &Context{
		params:    params,
		budget:    budget,
		encoder:   bgv.NewEncoder(params),
		encryptor: rlwe.NewEncryptor(params, pk),
		decryptor: rlwe.NewDecryptor(params, sk),
		evaluator: bgv.NewEvaluator(params, rlwe.NewMemEvaluationKeySet(kgen.GenRelinearizationKeyNew(sk))),
	}, nil
}

// Parameters returns the compiled BGV parameters.
func (ctx *Context) Parameters() bgv.Parameters {
	return ctx.params
}

// Slots returns the number of values encrypted in a ciphertext.
func (ctx *Context) Slots() int {
	return ctx.params.MaxSlots()
}

// FromScalar encrypts c mod t in every slot.
func (ctx *Context) FromScalar(c int64) (Number, error) {
	values := make([]uint64, ctx.Slots())
	cmod := utils.ModInt(c, ctx.params.PlaintextModulus())
	for i := range values {
		values[i] = cmod
	}
	return ctx.EncryptVector(values)
}

// EncryptVector encrypts values mod t, one per slot. Missing slots are zero.
func (ctx *Context) EncryptVector(values []uint64) (x Number, err error) {

	if len(values) > ctx.Slots() {
		return x, fmt.Errorf("cannot EncryptVector: %d values > %d slots: %w", len(values), ctx.Slots(), number.ErrInvalidArgument)
	}

	t := ctx.params.PlaintextModulus()
	reduced := make([]uint64, len(values))
	for i := range values {
		reduced[i] = values[i] % t
	}

	pt := bgv.NewPlaintext(ctx.params, ctx.params.MaxLevel())
	if err = ctx.encoder.Encode(reduced, pt); err != nil {
		return x, fmt.Errorf("cannot EncryptVector: %w", err)
	}

	var ct *rlwe.Ciphertext
	if ct, err = ctx.encryptor.EncryptNew(pt); err != nil {
		return x, fmt.Errorf("cannot EncryptVector: %w", err)
	}

	return Number{ctx: ctx, ct: ct}, nil
}

// DecryptVector decrypts and decodes every slot of x.
func (ctx *Context) DecryptVector(x Number) (values []uint64, err error) {

	if x.ct == nil {
		return nil, fmt.Errorf("cannot DecryptVector: empty value: %w", number.ErrInvalidArgument)
	}

	values = make([]uint64, ctx.Slots())
	if err = ctx.encoder.Decode(ctx.decryptor.DecryptNew(x.ct), values); err != nil {
		return nil, fmt.Errorf("cannot DecryptVector: %w", err)
	}

	return
}

// RingSize returns the plaintext modulus t.
func (ctx *Context) RingSize() uint64 {
	return ctx.params.PlaintextModulus()
}

// DepthBudget returns the number of multiplications a fresh value can go through.
func (ctx *Context) DepthBudget() int {
	return ctx.budget
}

// Number is a BGV ciphertext. Every operation allocates a new ciphertext.
type Number struct {
	ctx *Context
	ct  *rlwe.Ciphertext
}

// Ciphertext returns the underlying ciphertext. It must not be modified.
func (x Number) Ciphertext() *rlwe.Ciphertext {
	return x.ct
}

// Level returns the level of the ciphertext.
func (x Number) Level() int {
	return x.ct.Level()
}

func (x Number) check(op string, y Number) error {
	if x.ct == nil || y.ct == nil {
		return fmt.Errorf("cannot %s: empty value: %w", op, number.ErrInvalidArgument)
	}
	if x.ctx != y.ctx {
		return fmt.Errorf("cannot %s: values of different contexts: %w", op, number.ErrRingMismatch)
	}
	return nil
}

func (x Number) Add(op Number) (y Number, err error) {
	if err = x.check("Add", op); err != nil {
		return
	}
	if y.ct, err = x.ctx.evaluator.AddNew(x.ct, op.ct); err != nil {
		return y, fmt.Errorf("cannot Add: %w", err)
	}
	y.ctx = x.ctx
	return
}

func (x Number) Sub(op Number) (y Number, err error) {
	if err = x.check("Sub", op); err != nil {
		return
	}
	if y.ct, err = x.ctx.evaluator.SubNew(x.ct, op.ct); err != nil {
		return y, fmt.Errorf("cannot Sub: %w", err)
	}
	y.ctx = x.ctx
	return
}

// Mul multiplies, relinearizes and rescales: the result is one level below the
// lowest operand.
func (x Number) Mul(op Number) (y Number, err error) {

	if err = x.check("Mul", op); err != nil {
		return
	}

	level := utils.Min(x.ct.Level(), op.ct.Level())
	if level == 0 || x.ctx.params.MaxLevel()-level >= x.ctx.budget {
		return y, fmt.Errorf("cannot Mul: %w", number.ErrDepthExhausted)
	}

	eval := x.ctx.evaluator

	var ct *rlwe.Ciphertext
	if ct, err = eval.MulRelinNew(x.ct, op.ct); err != nil {
		return y, fmt.Errorf("cannot Mul: %w", err)
	}

	if err = eval.Rescale(ct, ct); err != nil {
		return y, fmt.Errorf("cannot Mul: %w", err)
	}

	return Number{ctx: x.ctx, ct: ct}, nil
}

// scalar applies an in-place scalar operation on a copy of x. The scalar
// operations of the evaluator do not carry the scale of their input to a freshly
// allocated output, so the output must start as a copy of x.
func (x Number) scalar(op string, f func(ct *rlwe.Ciphertext) error) (y Number, err error) {
	ct := x.ct.CopyNew()
	if err = f(ct); err != nil {
		return y, fmt.Errorf("cannot %s: %w", op, err)
	}
	return Number{ctx: x.ctx, ct: ct}, nil
}

func (x Number) AddScalar(c int64) (Number, error) {
	return x.scalar("AddScalar", func(ct *rlwe.Ciphertext) error {
		return x.ctx.evaluator.Add(ct, c, ct)
	})
}

// MulScalar multiplies by c mod t. It does not consume a level.
func (x Number) MulScalar(c int64) (Number, error) {
	return x.scalar("MulScalar", func(ct *rlwe.Ciphertext) error {
		return x.ctx.evaluator.Mul(ct, c, ct)
	})
}

func (x Number) Neg() (Number, error) {
	return x.MulScalar(-1)
}

// ToScalar decrypts x and returns its first slot as a residue in [0, t).
func (x Number) ToScalar() (float64, error) {
	values, err := x.ctx.DecryptVector(x)
	if err != nil {
		return 0, fmt.Errorf("cannot ToScalar: %w", err)
	}
	return float64(values[0]), nil
}

func (x Number) RingSize() uint64 {
	return x.ctx.RingSize()
}

// MulDepth returns the number of levels consumed since encryption.
func (x Number) MulDepth() int {
	return x.ctx.params.MaxLevel() - x.ct.Level()
}

// AddDepth is not tracked by ciphertexts and is always 0.
func (x Number) AddDepth() int {
	return 0
}

func (x Number) String() string {
	return fmt.Sprintf("bgv ciphertext (level %d, t=%d)", x.ct.Level(), x.RingSize())
}
