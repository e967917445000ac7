package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tuneinsight/liphe/backend/heint"
	"github.com/tuneinsight/liphe/polynomial"
)

const (
	modeFirstNonZero = "first-non-zero"
	modeLeadingBit   = "leading-bit"
)

// Config is the JSON configuration of a run. Command line flags override it.
type Config struct {
	// Mode is first-non-zero or leading-bit.
	Mode string `json:"mode"`
	// Backend is zp, float, bigreal or heint.
	Backend string `json:"backend"`
	// Comparator is native, euler, polynomial or sign.
	Comparator string `json:"comparator"`
	// Modulus is the ring size of the zp backend.
	Modulus uint64 `json:"modulus"`
	// Size is the length of the searched sequences.
	Size int `json:"size"`
	// Density: each bit of a sequence is 1 with probability 1/Density.
	Density uint64 `json:"density"`
	// BitWidth is the number of bits of the leading-bit inputs.
	BitWidth int `json:"bit_width"`
	// Trials is the number of instances run on scalar backends. The heint backend
	// runs one instance per slot.
	Trials int `json:"trials"`
	// Seed seeds the input generator.
	Seed string `json:"seed"`
	// Depth wraps the zp backend in the depth tracker.
	Depth bool `json:"depth"`
	// Check enables the validity check of extracted bits.
	Check bool `json:"check"`
	// Bound is the input bound of the sign comparator (0 for 2^BitWidth).
	Bound float64 `json:"bound,omitempty"`
	// Params are the BGV parameters of the heint backend. Defaults to insecure
	// test parameters.
	Params *heint.ParametersLiteral `json:"params,omitempty"`
	// Redis enables a shared polynomial store.
	Redis *polynomial.RedisConfig `json:"redis,omitempty"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `json:"log_level"`
	// LogFormat is text or json.
	LogFormat string `json:"log_format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Mode:       modeFirstNonZero,
		Backend:    "zp",
		Comparator: "polynomial",
		Modulus:    257,
		Size:       64,
		Density:    16,
		BitWidth:   6,
		Trials:     8,
		Seed:       "liphe",
		Check:      true,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// LoadConfig reads the JSON file at path on top of [DefaultConfig].
func LoadConfig(path string) (cfg Config, err error) {

	cfg = DefaultConfig()

	if path == "" {
		return
	}

	var data []byte
	if data, err = os.ReadFile(path); err != nil {
		return cfg, fmt.Errorf("cannot LoadConfig: %w", err)
	}

	if err = json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot LoadConfig: %s: %w", path, err)
	}

	return
}

// Validate checks the consistency of the configuration.
func (cfg Config) Validate() error {

	switch cfg.Mode {
	case modeFirstNonZero, modeLeadingBit:
	default:
		return fmt.Errorf("invalid mode %q", cfg.Mode)
	}

	comparators := map[string][]string{
		"zp":      {"native", "euler", "polynomial"},
		"heint":   {"euler", "polynomial"},
		"float":   {"sign"},
		"bigreal": {"sign"},
	}

	valid, ok := comparators[cfg.Backend]
	if !ok {
		return fmt.Errorf("invalid backend %q", cfg.Backend)
	}

	found := false
	for _, c := range valid {
		found = found || c == cfg.Comparator
	}

	if !found {
		return fmt.Errorf("invalid comparator %q for backend %q: valid comparators are %v", cfg.Comparator, cfg.Backend, valid)
	}

	if cfg.Mode == modeLeadingBit && cfg.Comparator == "euler" {
		return fmt.Errorf("mode %q requires an ordering comparator", cfg.Mode)
	}

	if cfg.Mode == modeFirstNonZero && (cfg.Backend == "float" || cfg.Backend == "bigreal") {
		return fmt.Errorf("mode %q requires a bounded ring backend", cfg.Mode)
	}

	if cfg.Size < 1 || cfg.BitWidth < 1 || cfg.BitWidth > 62 || cfg.Trials < 1 || cfg.Density < 1 {
		return fmt.Errorf("size, bit_width, trials and density must be positive (bit_width <= 62)")
	}

	return nil
}
