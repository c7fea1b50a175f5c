package harness

import (
	"fmt"

	"github.com/inkwell-docs/inkwell/internal/ir"
)

// checkAssertion evaluates one assertion against the result, recording a
// failure message when it does not hold.
func checkAssertion(r *Result, index int, a Assertion) {
	switch a.Type {
	case AssertVariableEquals:
		got, ok := r.Variables.Get(a.Variable)
		if !ok {
			r.AddError(fmt.Sprintf("assertions[%d]: variable %q not found", index, a.Variable))
			return
		}
		if got != a.Value {
			r.AddError(fmt.Sprintf("assertions[%d]: variable %q = %q, expected %q", index, a.Variable, got, a.Value))
		}

	case AssertVariableAbsent:
		if got, ok := r.Variables.Get(a.Variable); ok {
			r.AddError(fmt.Sprintf("assertions[%d]: variable %q should be absent, found %q", index, a.Variable, got))
		}

	case AssertSelectionBucket:
		got := bucketOf(r.Selection, a.Template)
		if got != a.Bucket {
			r.AddError(fmt.Sprintf("assertions[%d]: template %q in bucket %q, expected %q", index, a.Template, got, a.Bucket))
		}

	case AssertValidationMissing:
		if !containsName(r.Validation.MissingVariables, a.Variable) {
			r.AddError(fmt.Sprintf("assertions[%d]: variable %q not reported missing", index, a.Variable))
		}

	default:
		r.AddError(fmt.Sprintf("assertions[%d]: unknown assertion type %q", index, a.Type))
	}
}

// bucketOf locates a template id within the selection partition.
func bucketOf(sel ir.TemplateSelection, id string) string {
	for _, tpl := range sel.Required {
		if tpl.ID == id {
			return BucketRequired
		}
	}
	for _, tpl := range sel.Suggested {
		if tpl.ID == id {
			return BucketSuggested
		}
	}
	for _, tpl := range sel.Optional {
		if tpl.ID == id {
			return BucketOptional
		}
	}
	return BucketExcluded
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
