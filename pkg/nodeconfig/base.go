package nodeconfig

import (
	"fmt"
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
)

// validateBase checks required-field presence, type compatibility and
// enumerated-value membership for the filtered property set.
func (v *Validator) validateBase(nodeType string, config map[string]any, properties []models.PropertyDescriptor, result *Result) {
	for i := range properties {
		prop := &properties[i]
		value, present := config[prop.Name]

		if !present || value == nil || value == "" {
			if prop.Required {
				result.addError(Issue{
					Type:     models.CodeMissingRequired,
					Property: prop.Name,
					Message:  fmt.Sprintf("required property %q is missing", prop.Name),
					Fix:      fmt.Sprintf("set %q in the node parameters", prop.Name),
				})
			}

			continue
		}

		if !typeCompatible(prop.Type, value) {
			result.addError(Issue{
				Type:     models.CodeInvalidType,
				Property: prop.Name,
				Message: fmt.Sprintf("property %q expects %s, got %T",
					prop.Name, prop.Type, value),
			})

			continue
		}

		if len(prop.Options) > 0 {
			v.checkEnumeratedValue(nodeType, config, prop, value, result)
		}
	}
}

// checkEnumeratedValue verifies membership in the declared option set. For
// resource and operation the suggestion services supply the top correction.
func (v *Validator) checkEnumeratedValue(nodeType string, config map[string]any, prop *models.PropertyDescriptor, value any, result *Result) {
	str, ok := value.(string)
	if !ok {
		return
	}

	if isExpression(str) {
		// Resolved at runtime; nothing to check statically.
		return
	}

	for _, option := range prop.Options {
		if option.Value == str {
			return
		}
	}

	issue := Issue{
		Type:     models.CodeInvalidValue,
		Property: prop.Name,
		Message: fmt.Sprintf("invalid value %q for property %q, valid values: %s",
			str, prop.Name, strings.Join(prop.OptionValues(), ", ")),
	}

	switch prop.Name {
	case "resource":
		if suggestions := v.resources.SuggestResources(nodeType, str); len(suggestions) > 0 {
			issue.Suggestion = &suggestions[0]
			issue.Fix = fmt.Sprintf("did you mean %q?", suggestions[0].Value)
		}
	case "operation":
		resource, _ := config["resource"].(string)
		if suggestions := v.operations.SuggestOperations(nodeType, resource, str); len(suggestions) > 0 {
			issue.Suggestion = &suggestions[0]
			issue.Fix = fmt.Sprintf("did you mean %q?", suggestions[0].Value)
		}
	}

	result.addError(issue)
}

// typeCompatible checks a decoded JSON value against a declared property
// type. Expression strings bypass the check since their result type is only
// known at runtime.
func typeCompatible(propType string, value any) bool {
	if str, ok := value.(string); ok && isExpression(str) {
		return true
	}

	switch propType {
	case "string", "options", "multiOptions", "dateTime", "color", "json":
		_, ok := value.(string)

		return ok
	case "number":
		_, ok := toFloat(value)

		return ok
	case "boolean":
		_, ok := value.(bool)

		return ok
	case "collection", "fixedCollection", "filter", "resourceLocator":
		switch value.(type) {
		case map[string]any, []any:
			return true
		default:
			return false
		}
	default:
		// Unknown declared types are data, not code; accept them.
		return true
	}
}

func isExpression(s string) bool {
	return strings.HasPrefix(s, "=")
}
