// Command liphe runs branch-free searches on plaintext, arbitrary precision or
// encrypted values and checks every result against the host computation.
//
// Usage:
//
//	liphe -config run.json
//	liphe -backend zp -comparator euler -size 32 -depth
//	liphe -mode leading-bit -backend float -comparator sign -bit-width 8
//	liphe -backend heint -params '{"BGV":{"LogN":12,"LogQ":[60,45,45],"LogP":[61],"PlaintextModulus":65537}}'
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tuneinsight/liphe/backend/heint"
	"github.com/tuneinsight/liphe/logging"
	"github.com/tuneinsight/liphe/polynomial"
	"github.com/tuneinsight/liphe/timing"
	"github.com/tuneinsight/liphe/utils"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) (err error) {

	fs := flag.NewFlagSet("liphe", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "path of a JSON configuration file")
	mode := fs.String("mode", "", "first-non-zero or leading-bit")
	backend := fs.String("backend", "", "zp, float, bigreal or heint")
	comparator := fs.String("comparator", "", "native, euler, polynomial or sign")
	modulus := fs.Uint64("modulus", 0, "ring size of the zp backend")
	size := fs.Int("size", 0, "length of the searched sequences")
	density := fs.Uint64("density", 0, "each bit is 1 with probability 1/density")
	bitWidth := fs.Int("bit-width", 0, "number of bits of the leading-bit inputs")
	trials := fs.Int("trials", 0, "number of instances on scalar backends")
	seed := fs.String("seed", "", "seed of the input generator")
	withDepth := fs.Bool("depth", false, "track the circuit depth (zp backend)")
	check := fs.Bool("check", true, "check the extracted bits")
	params := fs.String("params", "", "BGV parameters of the heint backend as a JSON string")
	redisAddr := fs.String("redis", "", "address of a redis server storing the indicator polynomials")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")

	if err = fs.Parse(args); err != nil {
		return
	}

	var cfg Config
	if cfg, err = LoadConfig(*configPath); err != nil {
		return
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "backend":
			cfg.Backend = *backend
		case "comparator":
			cfg.Comparator = *comparator
		case "modulus":
			cfg.Modulus = *modulus
		case "size":
			cfg.Size = *size
		case "density":
			cfg.Density = *density
		case "bit-width":
			cfg.BitWidth = *bitWidth
		case "trials":
			cfg.Trials = *trials
		case "seed":
			cfg.Seed = *seed
		case "depth":
			cfg.Depth = *withDepth
		case "check":
			cfg.Check = *check
		case "redis":
			if cfg.Redis == nil {
				cfg.Redis = &polynomial.RedisConfig{}
			}
			cfg.Redis.Addr = *redisAddr
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	if *params != "" {
		var literal heint.ParametersLiteral
		if err = json.Unmarshal([]byte(*params), &literal); err != nil {
			return fmt.Errorf("invalid -params: %w", err)
		}
		cfg.Params = &literal
	}

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var level slog.Level
	if level, err = logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logger := logging.NewText(stderr, level)
	if cfg.LogFormat == "json" {
		logger = logging.NewJSON(stderr, level)
	}

	opts := []polynomial.CacheOption{}
	if cfg.Check {
		opts = append(opts, polynomial.WithVerification())
	}

	if cfg.Redis != nil {
		var store *polynomial.RedisStore
		if store, err = polynomial.NewRedisStore(*cfg.Redis); err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, polynomial.WithStore(store))
		logger.Info(ctx, "polynomial store", "redis", cfg.Redis.Addr)
	}

	var prng *utils.KeyedPRNG
	if prng, err = utils.NewKeyedPRNG(nil); err != nil {
		return
	}
	prng.Seed([]byte(cfg.Seed))

	e := &env{
		cfg:    cfg,
		logger: logger.With("mode", cfg.Mode, "backend", cfg.Backend, "comparator", cfg.Comparator),
		timer:  timing.NewTimer(logger),
		prng:   prng,
		cache:  polynomial.NewCache(opts...),
	}

	var rep *report
	if rep, err = e.dispatch(ctx); err != nil {
		return
	}

	e.timer.Report(ctx)

	stats := e.cache.Stats()
	e.logger.Info(ctx, "polynomial cache", "hits", stats.Hits, "misses", stats.Misses, "loads", stats.Loads, "builds", stats.Builds)

	return rep.log(ctx, e.logger)
}
