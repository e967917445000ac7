package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {

	for _, args := range [][]string{
		{"-backend", "zp", "-comparator", "native", "-size", "16"},
		{"-backend", "zp", "-comparator", "euler", "-size", "16", "-depth"},
		{"-backend", "zp", "-comparator", "polynomial", "-modulus", "17", "-size", "16", "-depth"},
		{"-mode", "leading-bit", "-backend", "zp", "-comparator", "polynomial", "-bit-width", "4", "-modulus", "17"},
		{"-mode", "leading-bit", "-backend", "float", "-comparator", "sign", "-bit-width", "5"},
		{"-mode", "leading-bit", "-backend", "bigreal", "-comparator", "sign", "-bit-width", "4", "-trials", "2"},
	} {
		t.Run(filepath.Join(args...), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, run(context.Background(), args, &buf), buf.String())
			require.Contains(t, buf.String(), "failures=0")
		})
	}
}

// The encrypted runs check every slot against the plaintext answer.
func TestRunEncrypted(t *testing.T) {

	// two chained polynomial comparisons over t=257 need about twenty levels
	deep := fmt.Sprintf(`{"BGV":{"LogN":10,"LogQ":[60%s],"LogP":[61,61],"PlaintextModulus":257}}`, strings.Repeat(",45", 24))

	for _, tc := range []struct {
		name string
		args []string
	}{
		{"FirstNonZero/Euler", []string{"-backend", "heint", "-comparator", "euler", "-size", "8"}},
		{"LeadingBit/Polynomial", []string{"-mode", "leading-bit", "-backend", "heint", "-comparator", "polynomial", "-bit-width", "2", "-params", deep}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if testing.Short() {
				t.Skip("skipping encrypted run in short mode")
			}
			var buf bytes.Buffer
			require.NoError(t, run(context.Background(), tc.args, &buf), buf.String())
			require.Contains(t, buf.String(), "failures=0")
		})
	}
}

func TestRunInvalid(t *testing.T) {

	for _, args := range [][]string{
		{"-backend", "zp", "-comparator", "sign"},
		{"-backend", "float", "-comparator", "sign"},
		{"-mode", "leading-bit", "-comparator", "euler"},
		{"-mode", "sort"},
		{"-size", "0"},
		{"-params", "{"},
		{"-log-level", "verbose"},
	} {
		var buf bytes.Buffer
		require.Error(t, run(context.Background(), args, &buf), "%v", args)
	}
}

func TestLoadConfig(t *testing.T) {

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"mode": "leading-bit",
		"backend": "heint",
		"comparator": "polynomial",
		"bit_width": 4,
		"params": {"BGV": {"LogN": 10, "LogQ": [60, 45], "LogP": [61], "PlaintextModulus": 257}, "Budget": 1},
		"redis": {"addr": "localhost:6379", "db": 2}
	}`), 0o600))

	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "heint", cfg.Backend)
	require.Equal(t, 4, cfg.BitWidth)
	require.Equal(t, 1, cfg.Params.Budget)
	require.Equal(t, uint64(257), cfg.Params.BGV.PlaintextModulus)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, 2, cfg.Redis.DB)
	// unset fields keep their default
	require.Equal(t, 8, cfg.Trials)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestReport(t *testing.T) {

	rep := newReport()

	require.NoError(t, rep.record([]float64{1, 0, -1e-3}, []uint64{1, 0, 0}, 3))
	require.NoError(t, rep.record([]float64{0, 1}, []uint64{1, 1}, 2))
	require.Equal(t, 2, rep.instances)
	require.Equal(t, 1, rep.failures)
	require.Equal(t, 3, rep.mulDepth)

	require.Error(t, rep.record([]float64{0, 1}, []uint64{1}, 0))
}
