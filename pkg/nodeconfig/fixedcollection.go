package nodeconfig

import (
	"fmt"
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
)

// fixedCollectionNodes are the conditional/branching node families whose
// "rules" parameter is a fixedCollection and regularly gets mis-nested by
// generated or hand-written JSON.
var fixedCollectionNodes = []string{".switch", ".if", ".filter"}

// checkFixedCollectionStructure detects the one-level-too-deep nesting
// mistake in branching-node configurations. The valid shape is
//
//	rules: { values: [ { conditions: ..., outputKey: ... }, ... ] }
//
// and the common mistake wraps the entries in another "conditions" object:
//
//	rules: { conditions: { values: [...] } }
//
// When the checker can mechanically recover the intended flat list it stores
// the corrected parameter under Result.AutoFix.
func checkFixedCollectionStructure(nodeType string, config map[string]any, result *Result) {
	if !isFixedCollectionNode(nodeType) {
		return
	}

	rules, ok := config["rules"].(map[string]any)
	if !ok {
		return
	}

	// Correct shape: rules.values is a flat list of condition entries.
	if values, ok := rules["values"].([]any); ok {
		for i, raw := range values {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			// An entry holding its own "values" list is nested one level
			// deeper than the schema allows.
			if _, nested := entry["values"]; nested {
				result.addError(Issue{
					Type:     models.CodeInvalidStructure,
					Property: "rules",
					Message: fmt.Sprintf(
						"rules.values[%d] nests another values list; entries must be flat {conditions, outputKey} objects", i),
				})
			}
		}

		return
	}

	// Mis-nested shape: rules.conditions.{values|...} instead of rules.values.
	if misNested, ok := rules["conditions"].(map[string]any); ok {
		issue := Issue{
			Type:     models.CodeInvalidStructure,
			Property: "rules",
			Message:  "rules must hold a flat values list of {conditions, outputKey} entries, not a nested conditions object",
			Fix:      "move the condition entries up into rules.values",
		}

		if recovered, ok := recoverRuleEntries(misNested); ok {
			fixed := map[string]any{}
			for k, v := range rules {
				if k != "conditions" {
					fixed[k] = v
				}
			}

			fixed["values"] = recovered
			result.AutoFix = map[string]any{"rules": fixed}
		}

		result.addError(issue)

		return
	}

	result.addError(Issue{
		Type:     models.CodeInvalidStructure,
		Property: "rules",
		Message:  "rules is missing its values list",
	})
}

// recoverRuleEntries extracts the flat entry list from a mis-nested
// conditions object when the intent is unambiguous.
func recoverRuleEntries(misNested map[string]any) ([]any, bool) {
	if values, ok := misNested["values"].([]any); ok {
		return values, true
	}

	// A bare {conditions: {...}, outputKey: ...}-shaped object is a single
	// entry that lost its surrounding list.
	if _, ok := misNested["conditions"]; ok {
		return []any{misNested}, true
	}

	return nil, false
}

func isFixedCollectionNode(nodeType string) bool {
	for _, suffix := range fixedCollectionNodes {
		if strings.HasSuffix(nodeType, suffix) {
			return true
		}
	}

	return false
}
