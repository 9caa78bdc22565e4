package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintCost/internal/model"
)

func testJob() model.JobSpec {
	job := model.DefaultAppConfig().NewJobSpec()
	job.NumColors = 4
	return job
}

func TestQuote_DefaultJob(t *testing.T) {
	q, err := Quote(testJob(), model.DefaultInventory())
	require.NoError(t, err)

	assert.Equal(t, model.Dim(8.27, 11.69), q.Unit)
	assert.Equal(t, 112, q.Fit.SheetsRequired)
	assertDec(t, "1680", q.Breakdown.Paper, "paper")
	assertDec(t, "1022.4", q.Breakdown.Printing, "printing")
}

func TestQuote_InfeasibleWithholdsCosts(t *testing.T) {
	job := testJob()
	job.Paper = model.CustomPaper(10, 10)
	job.Sheet = model.Dim(5, 5)

	q, err := Quote(job, model.DefaultInventory())
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInfeasibleFit))
	assert.Equal(t, Quotation{}, q, "no partial quotation on infeasible fit")
}

func TestQuote_UnknownPresets(t *testing.T) {
	inv := model.DefaultInventory()

	job := testJob()
	job.Paper = model.PresetPaper("Broadsheet")
	_, err := Quote(job, inv)
	assert.ErrorIs(t, err, model.ErrUnknownPreset)

	job = testJob()
	job.Plate = model.PresetPlate("Offset XL")
	_, err = Quote(job, inv)
	assert.ErrorIs(t, err, model.ErrUnknownPreset)
}

func TestQuote_CustomPlate(t *testing.T) {
	job := testJob()
	job.Plate = model.CustomPlate(dec("120"))

	q, err := Quote(job, model.DefaultInventory())
	require.NoError(t, err)
	assertDec(t, "480", q.Breakdown.PlateCost, "plate")
}

func TestReportRows(t *testing.T) {
	q, err := Quote(testJob(), model.DefaultInventory())
	require.NoError(t, err)

	rows := ReportRows(q)
	require.Len(t, rows, 9)

	assert.Equal(t, "Paper Material", rows[0].Category)
	assert.Equal(t, "112 sheets @ 15/sheet", rows[0].Formula)
	assert.Equal(t, "Plate(Rota) + (4 colors * 112 sheets * 0.05)", rows[1].Formula)
	assert.Equal(t, "(4 ops * 10) + 0 die-cut", rows[2].Formula)
	assert.Equal(t, "1000 units @ 0.2/unit", rows[3].Formula)
	assert.Equal(t, "20% of expenses", rows[7].Formula)
	assert.Equal(t, "FINAL QUOTE", rows[8].Category)
	assert.True(t, rows[8].Amount.Equal(q.Breakdown.FinalJobCost))
	assert.True(t, rows[6].Amount.Equal(q.Breakdown.TotalExpenses))
}

func TestFitSummary(t *testing.T) {
	fit, err := Fit(model.Dim(8.27, 11.69), model.Dim(25, 36), 1000)
	require.NoError(t, err)
	assert.Equal(t, "9 units per sheet (Standard). Total: 112 sheets.", FitSummary(fit))
}
