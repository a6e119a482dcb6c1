package check

import (
	"fmt"

	"github.com/rquillo/moldcheck/pkg/analyze"
	"github.com/rquillo/moldcheck/pkg/brep"
)

// MinThicknessCheck flags faces whose thinnest measured wall falls below
// the material's minimum. Faces with no finite thickness samples found
// no measurable wall; they are skipped, not violations.
type MinThicknessCheck struct{}

func (MinThicknessCheck) Name() string             { return "Min Thickness Check" }
func (MinThicknessCheck) RequiredAnalyzer() string { return analyze.ThicknessAnalyzerID }

func (c MinThicknessCheck) Run(results analyze.Results, params Params, rule RuleID) ([]Finding, error) {
	data, ok := results.(analyze.ThicknessResults)
	if !ok {
		return nil, fmt.Errorf("check: %s got unexpected analyzer data %T", c.Name(), results)
	}
	minAllowed, err := params.Require("min_wall_thickness", rule)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	for face, samples := range data {
		if len(samples) == 0 {
			continue
		}
		measured := minOf(samples)
		if measured >= minAllowed {
			continue
		}
		findings = append(findings, Finding{
			Rule:     rule,
			Severity: SeverityError,
			Message: fmt.Sprintf(
				"Minimum thickness violation. Measured: %.2fmm (Limit: %.2fmm).",
				measured, minAllowed),
			Overview: fmt.Sprintf("%.2fmm < %.2fmm", measured, minAllowed),
			Faces:    []*brep.Face{face},
		})
	}
	return findings, nil
}

// MaxThicknessCheck flags faces whose thickest measured wall exceeds the
// material's maximum. Thick sections cool unevenly; the finding is a
// warning about sink marks rather than a hard error.
type MaxThicknessCheck struct{}

func (MaxThicknessCheck) Name() string             { return "Max Thickness Check" }
func (MaxThicknessCheck) RequiredAnalyzer() string { return analyze.ThicknessAnalyzerID }

func (c MaxThicknessCheck) Run(results analyze.Results, params Params, rule RuleID) ([]Finding, error) {
	data, ok := results.(analyze.ThicknessResults)
	if !ok {
		return nil, fmt.Errorf("check: %s got unexpected analyzer data %T", c.Name(), results)
	}
	maxAllowed, err := params.Require("max_wall_thickness", rule)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	for face, samples := range data {
		if len(samples) == 0 {
			continue
		}
		measured := maxOf(samples)
		if measured <= maxAllowed {
			continue
		}
		findings = append(findings, Finding{
			Rule:     rule,
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"Maximum thickness violation. Measured: %.2fmm (Limit: %.2fmm). "+
					"Risk of sink marks.",
				measured, maxAllowed),
			Overview: fmt.Sprintf("%.2fmm > %.2fmm", measured, maxAllowed),
			Faces:    []*brep.Face{face},
		})
	}
	return findings, nil
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
