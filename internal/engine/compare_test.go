package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintCost/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	inv := model.DefaultInventory()
	scenarios := BuildDefaultScenarios(testJob(), inv)

	// current + rotated sheet + 4 other papers + margin down + margin up
	require.Len(t, scenarios, 8)
	assert.Equal(t, "Current Job", scenarios[0].Name)
	assert.Equal(t, "Sheet 36x25", scenarios[1].Name)
	assert.Equal(t, model.Dim(36, 25), scenarios[1].Spec.Sheet)

	for _, s := range scenarios[2:6] {
		assert.NotEqual(t, "A4", s.Spec.Paper.Name(), "current paper should not be repeated")
	}
	assert.Equal(t, "Margin 10%", scenarios[6].Name)
	assert.Equal(t, "Margin 30%", scenarios[7].Name)
}

func TestBuildDefaultScenarios_ClampsMargin(t *testing.T) {
	job := testJob()
	job.MarginPercent = dec("95")
	job.Sheet = model.Dim(30, 30)

	scenarios := BuildDefaultScenarios(job, model.DefaultInventory())
	for _, s := range scenarios {
		assert.True(t, s.Spec.MarginPercent.LessThanOrEqual(dec("100")), "scenario %s exceeds 100%%", s.Name)
		assert.NotEqual(t, "Sheet 30x30", s.Name, "square sheet has no rotated variant")
	}
}

func TestCompareScenarios(t *testing.T) {
	inv := model.DefaultInventory()
	base := testJob()

	tooBig := base
	tooBig.Paper = model.CustomPaper(40, 40)

	results := CompareScenarios([]ComparisonScenario{
		{Name: "Base", Spec: base},
		{Name: "Too Big", Spec: tooBig},
	}, inv)

	require.Len(t, results, 2)
	assert.True(t, results[0].Feasible())
	assert.Equal(t, 112, results[0].Quotation.Fit.SheetsRequired)
	assert.False(t, results[1].Feasible())
	assert.ErrorIs(t, results[1].Err, model.ErrInfeasibleFit)
}
