// Package expression defines the expression-checker boundary consumed by the
// validation engine, plus a syntax-level format checker for template strings.
package expression

import "strings"

// Context describes the node whose parameters are being checked.
type Context struct {
	AvailableNodeNames []string
	CurrentNodeName    string
	HasInputData       bool
	IsInLoop           bool
}

// Issue is one expression-level finding inside a node's parameters.
type Issue struct {
	Severity   string `json:"severity"`
	NodeName   string `json:"nodeName,omitempty"`
	Path       string `json:"path"`
	Expression string `json:"expression,omitempty"`
	Message    string `json:"message"`

	// CorrectedValue is set when the fix is mechanical (e.g. a missing
	// prefix); consumed by the auto-fixer.
	CorrectedValue string `json:"correctedValue,omitempty"`
}

// Checker validates all expressions inside a node's parameter object. The
// engine treats implementations as external collaborators.
type Checker interface {
	CheckNodeExpressions(parameters map[string]any, ctx Context) (errors, warnings []Issue)
}

// CountExpressions recursively counts {{ ... }} occurrences through nested
// values and arrays, for result statistics.
func CountExpressions(value any) int {
	switch v := value.(type) {
	case string:
		return strings.Count(v, "{{")
	case map[string]any:
		total := 0
		for _, nested := range v {
			total += CountExpressions(nested)
		}

		return total
	case []any:
		total := 0
		for _, nested := range v {
			total += CountExpressions(nested)
		}

		return total
	default:
		return 0
	}
}
