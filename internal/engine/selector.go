package engine

import (
	"sort"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// Score thresholds for the required/suggested partition. The suggested
// boundary is strictly greater than one half: a template with exactly 50%
// of its rules matched is optional, not suggested.
const (
	requiredThreshold  = 1.0
	suggestedThreshold = 0.5
)

// SelectTemplates scores every active template against the responses and
// partitions them into required, suggested, and optional buckets.
//
//   - required:  score >= 1.0, or an always-include rule
//   - suggested: 0.5 < score < 1.0
//   - optional:  everything else (score <= 0.5, manual-only, or no rules)
//
// Inactive templates are excluded before partitioning. Buckets are sorted
// by display name.
func SelectTemplates(templates []ir.Template, rs *ir.ResponseSet) ir.TemplateSelection {
	computed := BuildComputedVars(rs)

	var sel ir.TemplateSelection
	for _, tpl := range templates {
		if !tpl.IsActive {
			continue
		}
		score := ScoreTemplate(tpl, rs, computed)
		switch {
		case score.AlwaysInclude || score.Value >= requiredThreshold:
			sel.Required = append(sel.Required, tpl)
		case !score.ManualOnly && score.Value > suggestedThreshold:
			sel.Suggested = append(sel.Suggested, tpl)
		default:
			sel.Optional = append(sel.Optional, tpl)
		}
	}

	sortByName(sel.Required)
	sortByName(sel.Suggested)
	sortByName(sel.Optional)
	return sel
}

func sortByName(templates []ir.Template) {
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
}
