package expression

import (
	"fmt"
	"sort"
	"strings"
)

// FormatChecker is the built-in Checker implementation. It validates template
// syntax only: prefix form, brace balance, and references to known nodes. It
// does not evaluate expressions.
type FormatChecker struct{}

// NewFormatChecker creates the default expression checker.
func NewFormatChecker() *FormatChecker {
	return &FormatChecker{}
}

// CheckNodeExpressions walks the parameter tree and reports format-level
// errors and warnings for every string containing template markers.
func (c *FormatChecker) CheckNodeExpressions(parameters map[string]any, ctx Context) ([]Issue, []Issue) {
	var errs, warnings []Issue

	walkStrings(parameters, "", func(path, value string) {
		if !strings.Contains(value, "{{") {
			return
		}

		if !strings.HasPrefix(value, "=") {
			errs = append(errs, Issue{
				Severity:       "error",
				NodeName:       ctx.CurrentNodeName,
				Path:           path,
				Expression:     value,
				Message:        "expression is missing the leading '=' marker",
				CorrectedValue: "=" + value,
			})
		}

		if strings.Count(value, "{{") != strings.Count(value, "}}") {
			errs = append(errs, Issue{
				Severity:   "error",
				NodeName:   ctx.CurrentNodeName,
				Path:       path,
				Expression: value,
				Message:    "unbalanced {{ }} in expression",
			})
		}

		if !ctx.HasInputData && strings.Contains(value, "$json") {
			warnings = append(warnings, Issue{
				Severity:   "warning",
				NodeName:   ctx.CurrentNodeName,
				Path:       path,
				Expression: value,
				Message:    "$json is used but the node has no incoming connection",
			})
		}

		for _, referenced := range referencedNodeNames(value) {
			if !containsString(ctx.AvailableNodeNames, referenced) {
				warnings = append(warnings, Issue{
					Severity:   "warning",
					NodeName:   ctx.CurrentNodeName,
					Path:       path,
					Expression: value,
					Message:    fmt.Sprintf("expression references unknown node %q", referenced),
				})
			}
		}
	})

	return errs, warnings
}

// walkStrings visits every string leaf in a parameter tree in a stable order.
func walkStrings(value any, path string, visit func(path, value string)) {
	switch v := value.(type) {
	case string:
		visit(path, v)
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			walkStrings(v[k], joinPath(path, k), visit)
		}
	case []any:
		for i, nested := range v {
			walkStrings(nested, fmt.Sprintf("%s[%d]", path, i), visit)
		}
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

// referencedNodeNames extracts the names used in $('Node Name') references.
func referencedNodeNames(expr string) []string {
	var names []string

	rest := expr

	for {
		idx := strings.Index(rest, "$('")
		if idx < 0 {
			break
		}

		rest = rest[idx+3:]

		end := strings.Index(rest, "')")
		if end < 0 {
			break
		}

		names = append(names, rest[:end])
		rest = rest[end+2:]
	}

	return names
}

func containsString(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}

	return false
}
