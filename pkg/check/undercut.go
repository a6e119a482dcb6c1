package check

import (
	"fmt"

	"github.com/rquillo/moldcheck/pkg/analyze"
	"github.com/rquillo/moldcheck/pkg/brep"
)

// undercutNoiseTolerance ignores faces whose trapped ratio is within
// sampling noise of zero.
const undercutNoiseTolerance = 0.05

// UndercutCheck flags faces a straight pull cannot expose to either
// mold half. Undercuts either need redesign or expensive sliding mold
// mechanisms, so any face above the noise floor is an error.
type UndercutCheck struct{}

func (UndercutCheck) Name() string             { return "Undercut Check" }
func (UndercutCheck) RequiredAnalyzer() string { return analyze.UndercutAnalyzerID }

func (c UndercutCheck) Run(results analyze.Results, params Params, rule RuleID) ([]Finding, error) {
	data, ok := results.(analyze.UndercutResults)
	if !ok {
		return nil, fmt.Errorf("check: %s got unexpected analyzer data %T", c.Name(), results)
	}

	var findings []Finding
	for face, ratio := range data {
		if ratio <= undercutNoiseTolerance {
			continue
		}
		percentage := ratio * 100
		message := fmt.Sprintf(
			"Undercut detected. %.1f%% of this face is trapped (occluded from "+
				"both mold halves).<div style='margin-top: 8px; font-style: italic;'>"+
				"<b>Suggestions:</b><br>"+
				"1) Remove the overhang or align the feature with the pull direction.<br>"+
				"2) Open a hole beneath/above the feature so a mold half can form it.<br>"+
				"3) If the feature is critical, budget for sliding mechanisms in the mold."+
				"</div>",
			percentage)
		findings = append(findings, Finding{
			Rule:     rule,
			Severity: SeverityError,
			Message:  message,
			Overview: fmt.Sprintf("%.1f%% occlusion", percentage),
			Faces:    []*brep.Face{face},
		})
	}
	return findings, nil
}
