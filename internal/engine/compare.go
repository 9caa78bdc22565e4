package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/PrintCost/internal/model"
)

// ComparisonScenario defines a named job variant to compare.
type ComparisonScenario struct {
	Name string
	Spec model.JobSpec
}

// ComparisonResult holds the quotation of one scenario. Err is set, and
// Quotation left empty, when the scenario cannot be quoted.
type ComparisonResult struct {
	Scenario  ComparisonScenario
	Quotation Quotation
	Err       error
}

// Feasible reports whether the scenario produced a quotation.
func (r ComparisonResult) Feasible() bool {
	return r.Err == nil
}

// CompareScenarios quotes each scenario independently, in scenario order.
// This enables side-by-side what-if comparison (other sheet orientation,
// other paper sizes, other margins).
func CompareScenarios(scenarios []ComparisonScenario, inv model.Inventory) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		q, err := Quote(scenario.Spec, inv)
		results = append(results, ComparisonResult{
			Scenario:  scenario,
			Quotation: q,
			Err:       err,
		})
	}
	return results
}

// BuildDefaultScenarios derives what-if alternatives from the current job.
func BuildDefaultScenarios(base model.JobSpec, inv model.Inventory) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Current Job", Spec: base},
	}

	// Scenario: parent sheet fed the other way round
	if base.Sheet.Width != base.Sheet.Height {
		rotated := base
		rotated.Sheet = base.Sheet.Rotate()
		scenarios = append(scenarios, ComparisonScenario{
			Name: fmt.Sprintf("Sheet %gx%g", rotated.Sheet.Width, rotated.Sheet.Height),
			Spec: rotated,
		})
	}

	// Scenario: every other paper preset on the same sheet
	for _, p := range inv.Papers {
		if !base.Paper.IsCustom() && p.Name == base.Paper.Preset {
			continue
		}
		alt := base
		alt.Paper = model.PresetPaper(p.Name)
		scenarios = append(scenarios, ComparisonScenario{
			Name: "Paper " + p.Name,
			Spec: alt,
		})
	}

	// Scenario: margin ten points lower and higher, clamped to 0-100
	ten := decimal.NewFromInt(10)
	if lower := base.MarginPercent.Sub(ten); !lower.IsNegative() {
		alt := base
		alt.MarginPercent = lower
		scenarios = append(scenarios, ComparisonScenario{
			Name: fmt.Sprintf("Margin %s%%", lower),
			Spec: alt,
		})
	}
	if higher := base.MarginPercent.Add(ten); higher.LessThanOrEqual(decimal.NewFromInt(100)) {
		alt := base
		alt.MarginPercent = higher
		scenarios = append(scenarios, ComparisonScenario{
			Name: fmt.Sprintf("Margin %s%%", higher),
			Spec: alt,
		})
	}

	return scenarios
}
