package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintCost/internal/engine"
	"github.com/piwi3910/PrintCost/internal/model"
)

// runQuote runs the command against an isolated config and preset file.
func runQuote(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	dir := t.TempDir()
	base := []string{
		"-config", filepath.Join(dir, "config.json"),
		"-presets", filepath.Join(dir, "inventory.json"),
		"-log-level", "error",
	}
	var stdout, stderr bytes.Buffer
	code := run(append(base, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseDims(t *testing.T) {
	d, err := parseDims("8x10")
	require.NoError(t, err)
	assert.Equal(t, model.Dim(8, 10), d)

	d, err = parseDims(" 25.5 X 36 ")
	require.NoError(t, err)
	assert.Equal(t, model.Dim(25.5, 36), d)

	for _, bad := range []string{"8", "ax10", "8x", "0x10", "-1x5"} {
		_, err := parseDims(bad)
		assert.ErrorIs(t, err, model.ErrInvalidInput, bad)
	}
}

func TestDecimalFlag(t *testing.T) {
	var v decimal.Decimal
	f := &decimalFlag{value: &v}
	require.NoError(t, f.Set("0.05"))
	assert.True(t, f.set)
	assert.Equal(t, "0.05", f.String())
	assert.Error(t, f.Set("five"))

	var zero *decimalFlag
	assert.Equal(t, "", zero.String())
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg := model.DefaultAppConfig()
	job, opts, err := parseArgs(nil, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, cfg.NewJobSpec(), job)
	assert.False(t, opts.asJSON)
}

func TestParseArgs_CustomOverrides(t *testing.T) {
	cfg := model.DefaultAppConfig()
	job, _, err := parseArgs([]string{
		"-unit", "4x6", "-plate-cost", "120", "-sheet", "20x30",
		"-units", "250", "-colors", "4", "-margin", "35", "-currency", "$",
	}, cfg, &bytes.Buffer{})
	require.NoError(t, err)

	require.True(t, job.Paper.IsCustom())
	assert.Equal(t, model.Dim(4, 6), *job.Paper.Custom)
	require.True(t, job.Plate.IsCustom())
	assert.True(t, job.Plate.Custom.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, model.Dim(20, 30), job.Sheet)
	assert.Equal(t, 250, job.TotalUnits)
	assert.Equal(t, 4, job.NumColors)
	assert.True(t, job.MarginPercent.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, "$", job.Currency)
}

func TestParseArgs_RejectsExtraArguments(t *testing.T) {
	_, _, err := parseArgs([]string{"A4"}, model.DefaultAppConfig(), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_DefaultJob(t *testing.T) {
	code, stdout, stderr := runQuote(t)
	require.Equal(t, exitOK, code, stderr)

	assert.Contains(t, stdout, "Result: 9 units per sheet (Standard). Total: 112 sheets.")
	assert.Contains(t, stdout, "Rs.1,680.00")
	assert.Contains(t, stdout, "Total Job Cost: Rs.3,224.16")
	assert.Contains(t, stdout, "Cost Per Unit:  Rs.3.22")
}

func TestRun_Infeasible(t *testing.T) {
	code, stdout, stderr := runQuote(t, "-unit", "30x40")
	assert.Equal(t, exitInfeasible, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: Unit size is larger than the sheet size.")
}

func TestRun_InvalidInput(t *testing.T) {
	code, _, stderr := runQuote(t, "-units", "0")
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "total units")
}

func TestRun_JSON(t *testing.T) {
	code, stdout, stderr := runQuote(t, "-json", "-colors", "4")
	require.Equal(t, exitOK, code, stderr)

	var q engine.Quotation
	require.NoError(t, json.Unmarshal([]byte(stdout), &q))
	assert.True(t, q.Breakdown.Printing.Equal(decimal.RequireFromString("1022.4")), q.Breakdown.Printing.String())
}

func TestRun_OutDir(t *testing.T) {
	out := t.TempDir()
	code, _, stderr := runQuote(t, "-out", out)
	require.Equal(t, exitOK, code, stderr)

	for _, name := range []string{"quote_A4_1000.csv", "quote_A4_1000.xlsx", "quote_A4_1000.pdf"} {
		info, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}
