package main

import (
	"context"
	"fmt"
	"math"
	"math/bits"

	"github.com/tuneinsight/liphe/backend/bigreal"
	"github.com/tuneinsight/liphe/backend/float"
	"github.com/tuneinsight/liphe/backend/heint"
	"github.com/tuneinsight/liphe/backend/zp"
	"github.com/tuneinsight/liphe/compare"
	"github.com/tuneinsight/liphe/depth"
	"github.com/tuneinsight/liphe/logging"
	"github.com/tuneinsight/liphe/number"
	"github.com/tuneinsight/liphe/polynomial"
	"github.com/tuneinsight/liphe/precision"
	"github.com/tuneinsight/liphe/search"
	"github.com/tuneinsight/liphe/timing"
	"github.com/tuneinsight/liphe/utils"
)

type env struct {
	cfg    Config
	logger logging.Logger
	timer  *timing.Timer
	prng   *utils.KeyedPRNG
	cache  *polynomial.Cache
}

// report collects the outcome of the instances of a run.
type report struct {
	instances int
	failures  int
	mulDepth  int
	precision *precision.Stats
}

func newReport() *report {
	return &report{precision: precision.NewStats()}
}

func (r *report) log(ctx context.Context, logger logging.Logger) error {

	r.precision.Finalize()

	logger.Info(ctx, "done",
		"instances", r.instances,
		"failures", r.failures,
		"mul_depth", r.mulDepth,
		"precision", r.precision.String(),
	)

	if r.failures != 0 {
		return fmt.Errorf("%d/%d instances returned a wrong result", r.failures, r.instances)
	}

	return nil
}

// record updates the report with the decoded outputs of an instance and their expected values.
func (r *report) record(have []float64, want []uint64, mulDepth int) (err error) {

	r.instances++

	wantF := make([]float64, len(want))
	for i := range want {
		wantF[i] = float64(want[i])
	}

	if err = r.precision.Update(have, wantF); err != nil {
		return fmt.Errorf("cannot record instance %d: %w", r.instances, err)
	}

	for i := range have {
		if math.Abs(have[i]-wantF[i]) >= 0.5 {
			r.failures++
			break
		}
	}

	r.mulDepth = utils.Max(r.mulDepth, mulDepth)

	return
}

func newComparator[T number.Number[T]](name string, ctx number.Context[T], cache *polynomial.Cache) (cmp compare.Comparator[T], err error) {
	switch name {
	case "native":
		cmp = compare.NewNative(ctx)
	case "euler":
		cmp, err = compare.NewEuler(ctx)
	case "polynomial":
		cmp, err = compare.NewPolynomial(ctx, cache)
	default:
		err = fmt.Errorf("unknown comparator %q", name)
	}
	return
}

func (e *env) dispatch(ctx context.Context) (rep *report, err error) {

	cfg := e.cfg

	switch cfg.Backend {

	case "zp":

		var zctx *zp.Context
		if zctx, err = zp.NewContext(cfg.Modulus, 0); err != nil {
			return
		}

		if cfg.Depth {

			dctx := depth.NewContext[zp.Number](zctx)

			var cmp compare.Comparator[depth.Number[zp.Number]]
			if cmp, err = newComparator[depth.Number[zp.Number]](cfg.Comparator, dctx, e.cache); err != nil {
				return
			}

			if rep, err = runScalar[depth.Number[zp.Number]](ctx, e, dctx, cmp); err != nil {
				return
			}

			counter := dctx.Counter()
			e.logger.Info(ctx, "operations", "muls", counter.Muls(), "adds", counter.Adds(), "scalars", counter.Scalars())

			return
		}

		var cmp compare.Comparator[zp.Number]
		if cmp, err = newComparator[zp.Number](cfg.Comparator, zctx, e.cache); err != nil {
			return
		}

		return runScalar[zp.Number](ctx, e, zctx, cmp)

	case "float":

		fctx := float.NewContext(0)

		var cmp *compare.Sign[float.Number]
		if cmp, err = compare.NewSign[float.Number](fctx, e.signBound(), 0); err != nil {
			return
		}

		return runScalar[float.Number](ctx, e, fctx, cmp)

	case "bigreal":

		bctx := bigreal.NewContext(0, 0)

		var cmp *compare.Sign[bigreal.Number]
		if cmp, err = compare.NewSign[bigreal.Number](bctx, e.signBound(), 0); err != nil {
			return
		}

		return runScalar[bigreal.Number](ctx, e, bctx, cmp)

	case "heint":
		return runBatched(ctx, e)

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func (e *env) signBound() float64 {
	if e.cfg.Bound != 0 {
		return e.cfg.Bound
	}
	return math.Exp2(float64(e.cfg.BitWidth))
}

// firstOne returns the index of the first 1 of v, or 0 if there is none.
func firstOne(v []uint64) uint64 {
	for i := range v {
		if v[i] == 1 {
			return uint64(i)
		}
	}
	return 0
}

// leadingRank returns the rank, from the top of k bits, of the leading bit of x, and x != 0.
func leadingRank(x uint64, k int) (rank, found uint64) {
	if x == 0 {
		return 0, 0
	}
	return uint64(k - bits.Len64(x)), 1
}

// expand writes the k low bits of x, followed by tail.
func expand(x uint64, k int, tail ...uint64) (v []uint64) {
	for i := 0; i < k; i++ {
		v = append(v, (x>>uint(i))&1)
	}
	return append(v, tail...)
}

func decodeAll[T number.Number[T]](xs []T) (values []float64, mulDepth int, err error) {
	values = make([]float64, len(xs))
	for i := range xs {
		if values[i], err = xs[i].ToScalar(); err != nil {
			return
		}
		if mul, _, ok := number.Depth(xs[i]); ok {
			mulDepth = utils.Max(mulDepth, mul)
		}
	}
	return
}

func runScalar[T number.Number[T]](ctx context.Context, e *env, nctx number.Context[T], cmp compare.Comparator[T]) (rep *report, err error) {

	cfg := e.cfg
	rep = newReport()

	for trial := 0; trial < cfg.Trials; trial++ {

		var have []float64
		var want []uint64
		var mulDepth int

		switch cfg.Mode {

		case modeFirstNonZero:

			var v []uint64
			if v, err = e.prng.Bits(cfg.Size, cfg.Density); err != nil {
				return
			}

			xs := make([]T, len(v))
			for i := range v {
				if xs[i], err = nctx.FromScalar(int64(v[i])); err != nil {
					return
				}
			}

			var out []T
			stop := e.timer.Start(ctx, cfg.Mode)
			out, err = search.FirstNonZeroSlice(nctx, cmp, xs)
			stop()
			if err != nil {
				return
			}

			if have, mulDepth, err = decodeAll(out); err != nil {
				return
			}

			want = expand(firstOne(v), len(out))

			e.logger.Debug(ctx, "instance", "trial", trial, "bits", v, "want", firstOne(v))

		case modeLeadingBit:

			var x uint64
			if x, err = e.prng.Uniform(1 << uint(cfg.BitWidth)); err != nil {
				return
			}

			var xt T
			if xt, err = nctx.FromScalar(int64(x)); err != nil {
				return
			}

			var index []T
			var found T
			stop := e.timer.Start(ctx, cfg.Mode)
			index, found, err = search.LeadingBit(nctx, cmp, xt, cfg.BitWidth, search.ExtractOptions{Check: cfg.Check})
			stop()
			if err != nil {
				return
			}

			if have, mulDepth, err = decodeAll(append(index, found)); err != nil {
				return
			}

			rank, ok := leadingRank(x, cfg.BitWidth)
			want = expand(rank, len(index), ok)

			e.logger.Debug(ctx, "instance", "trial", trial, "x", x, "rank", rank)
		}

		if err = rep.record(have, want, mulDepth); err != nil {
			return
		}
	}

	return
}

// runBatched runs one instance per slot of a single encrypted computation.
func runBatched(ctx context.Context, e *env) (rep *report, err error) {

	cfg := e.cfg

	literal := heint.TestParametersLiteral
	if cfg.Params != nil {
		literal = *cfg.Params
	} else {
		e.logger.Warn(ctx, "no BGV parameters given, using insecure test parameters")
	}

	var hctx *heint.Context
	if err = e.timer.Time(ctx, "keygen", func() (err error) {
		hctx, err = heint.NewContext(literal)
		return
	}); err != nil {
		return
	}

	slots := hctx.Slots()

	e.logger.Info(ctx, "parameters",
		"logN", hctx.Parameters().LogN(),
		"t", hctx.RingSize(),
		"max_level", hctx.Parameters().MaxLevel(),
		"slots", slots)

	var cmp compare.Comparator[heint.Number]
	if cmp, err = newComparator[heint.Number](cfg.Comparator, hctx, e.cache); err != nil {
		return
	}

	var outputs []heint.Number
	var wants [][]uint64

	switch cfg.Mode {

	case modeFirstNonZero:

		columns := make([][]uint64, cfg.Size)
		xs := make([]heint.Number, cfg.Size)
		for i := range columns {
			if columns[i], err = e.prng.Bits(slots, cfg.Density); err != nil {
				return
			}
			if xs[i], err = hctx.EncryptVector(columns[i]); err != nil {
				return
			}
		}

		stop := e.timer.Start(ctx, cfg.Mode)
		outputs, err = search.FirstNonZeroSlice[heint.Number](hctx, cmp, xs)
		stop()
		if err != nil {
			return
		}

		wants = make([][]uint64, slots)
		for slot := range wants {
			v := make([]uint64, cfg.Size)
			for i := range v {
				v[i] = columns[i][slot]
			}
			wants[slot] = expand(firstOne(v), len(outputs))
		}

	case modeLeadingBit:

		values := make([]uint64, slots)
		for slot := range values {
			if values[slot], err = e.prng.Uniform(1 << uint(cfg.BitWidth)); err != nil {
				return
			}
		}

		var x heint.Number
		if x, err = hctx.EncryptVector(values); err != nil {
			return
		}

		var index []heint.Number
		var found heint.Number
		stop := e.timer.Start(ctx, cfg.Mode)
		index, found, err = search.LeadingBit[heint.Number](hctx, cmp, x, cfg.BitWidth, search.ExtractOptions{})
		stop()
		if err != nil {
			return
		}

		outputs = append(index, found)

		wants = make([][]uint64, slots)
		for slot := range wants {
			rank, ok := leadingRank(values[slot], cfg.BitWidth)
			wants[slot] = expand(rank, len(index), ok)
		}
	}

	decrypted := make([][]uint64, len(outputs))
	mulDepth := 0
	for i := range outputs {
		if decrypted[i], err = hctx.DecryptVector(outputs[i]); err != nil {
			return
		}
		mulDepth = utils.Max(mulDepth, outputs[i].MulDepth())
	}

	rep = newReport()

	for slot := 0; slot < slots; slot++ {

		have := make([]float64, len(outputs))
		for i := range outputs {
			// residues are centered so that t-1 reads as -1
			have[i] = float64(utils.CenterMod(decrypted[i][slot], hctx.RingSize()))
		}

		if err = rep.record(have, wants[slot], mulDepth); err != nil {
			return
		}
	}

	return
}
