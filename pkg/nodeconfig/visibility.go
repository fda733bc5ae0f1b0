package nodeconfig

import "github.com/flowlint/flowlint/pkg/models"

// filterProperties narrows the declared schema to the properties that
// participate under the given mode.
func filterProperties(properties []models.PropertyDescriptor, config map[string]any, mode Mode) []models.PropertyDescriptor {
	if mode == ModeFull {
		return properties
	}

	var filtered []models.PropertyDescriptor

	for i := range properties {
		prop := &properties[i]

		if !isPropertyVisible(prop, config, properties) {
			continue
		}

		if mode == ModeMinimal && !prop.Required {
			continue
		}

		filtered = append(filtered, *prop)
	}

	return filtered
}

// isPropertyVisible evaluates displayOptions.show/hide against the config.
// Missing config keys fall back to the sibling property's declared default,
// matching how the editor resolves visibility.
func isPropertyVisible(prop *models.PropertyDescriptor, config map[string]any, siblings []models.PropertyDescriptor) bool {
	if prop.DisplayOptions == nil {
		return true
	}

	for field, wanted := range prop.DisplayOptions.Show {
		if !valueMatches(effectiveValue(config, siblings, field), wanted) {
			return false
		}
	}

	for field, unwanted := range prop.DisplayOptions.Hide {
		if valueMatches(effectiveValue(config, siblings, field), unwanted) {
			return false
		}
	}

	return true
}

// effectiveValue resolves a sibling field's current value: the configured
// value when present, otherwise the sibling's declared default.
func effectiveValue(config map[string]any, siblings []models.PropertyDescriptor, field string) any {
	if value, ok := config[field]; ok {
		return value
	}

	for i := range siblings {
		if siblings[i].Name == field {
			return siblings[i].Default
		}
	}

	return nil
}

func valueMatches(value any, candidates []any) bool {
	if value == nil {
		return false
	}

	for _, candidate := range candidates {
		if looselyEqual(value, candidate) {
			return true
		}
	}

	return false
}

// looselyEqual compares JSON-decoded scalars, tolerating int/float64
// mismatches between schema literals and decoded config values.
func looselyEqual(a, b any) bool {
	if a == b {
		return true
	}

	af, aok := toFloat(a)
	bf, bok := toFloat(b)

	return aok && bok && af == bf
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
