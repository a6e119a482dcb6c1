package check

import (
	"fmt"
	"math"

	"github.com/rquillo/moldcheck/pkg/analyze"
	"github.com/rquillo/moldcheck/pkg/brep"
)

const (
	// draftTolerance absorbs float noise in the limit comparison.
	draftTolerance = 1e-4
	// flatTolerance is the band around 0° treated as a vertical face.
	flatTolerance = 1e-3
)

// MinDraftAngleCheck flags faces whose measured draft falls below the
// material's minimum. Faces at exactly ±90° are exempt: their normals
// are aligned with the pull, so they are not drafted walls at all.
//
// Three bands get distinct severities: negative draft is a reverse taper
// that mechanically traps the part, near-zero draft is a vertical face
// with no release clearance, and positive-but-insufficient draft is a
// warning.
type MinDraftAngleCheck struct{}

func (MinDraftAngleCheck) Name() string             { return "Draft Checker" }
func (MinDraftAngleCheck) RequiredAnalyzer() string { return analyze.DraftAnalyzerID }

func (c MinDraftAngleCheck) Run(results analyze.Results, params Params, rule RuleID) ([]Finding, error) {
	data, ok := results.(analyze.DraftResults)
	if !ok {
		return nil, fmt.Errorf("check: %s got unexpected analyzer data %T", c.Name(), results)
	}
	minAllowed, err := params.Require("min_draft_angle", rule)
	if err != nil {
		return nil, err
	}

	var findings []Finding
	for face, measured := range data {
		if measured >= minAllowed-draftTolerance {
			continue
		}
		if math.Abs(measured) == 90 {
			continue // aligned with the pull, exempt
		}

		severity := SeverityWarning
		var message string
		switch {
		case measured < -flatTolerance:
			severity = SeverityError
			message = fmt.Sprintf(
				"Reverse taper. Measured draft %.2f° leans against the mold opening; "+
					"the part is mechanically trapped (Limit: %.2f°).",
				measured, minAllowed)
		case math.Abs(measured) <= flatTolerance:
			severity = SeverityError
			message = fmt.Sprintf(
				"Vertical Face. Measured draft %.2f° provides no release clearance "+
					"(Limit: %.2f°).",
				measured, minAllowed)
		default:
			message = fmt.Sprintf(
				"Insufficient draft. Measured: %.2f° (Limit: %.2f°).",
				measured, minAllowed)
		}

		findings = append(findings, Finding{
			Rule:     rule,
			Severity: severity,
			Message:  message,
			Overview: fmt.Sprintf("%.2f° < %.2f°", measured, minAllowed),
			Faces:    []*brep.Face{face},
		})
	}
	return findings, nil
}
