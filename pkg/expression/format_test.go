package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountExpressions(t *testing.T) {
	params := map[string]any{
		"url":  "={{ $json.url }}",
		"body": map[string]any{"text": "={{ $json.a }} and {{ $json.b }}"},
		"list": []any{"={{ $json.c }}", 42, true},
		"none": "plain",
	}

	assert.Equal(t, 4, CountExpressions(params))
	assert.Equal(t, 0, CountExpressions(nil))
	assert.Equal(t, 0, CountExpressions(map[string]any{"n": 1.5}))
}

func TestFormatChecker_MissingPrefix(t *testing.T) {
	checker := NewFormatChecker()

	errs, warnings := checker.CheckNodeExpressions(map[string]any{
		"url": "{{ $json.url }}",
	}, Context{CurrentNodeName: "HTTP Request", HasInputData: true})

	require.Len(t, errs, 1)
	assert.Equal(t, "url", errs[0].Path)
	assert.Equal(t, "={{ $json.url }}", errs[0].CorrectedValue)
	assert.Empty(t, warnings)
}

func TestFormatChecker_ValidExpression(t *testing.T) {
	checker := NewFormatChecker()

	errs, warnings := checker.CheckNodeExpressions(map[string]any{
		"url": "={{ $json.url }}",
	}, Context{HasInputData: true})

	assert.Empty(t, errs)
	assert.Empty(t, warnings)
}

func TestFormatChecker_UnbalancedBraces(t *testing.T) {
	checker := NewFormatChecker()

	errs, _ := checker.CheckNodeExpressions(map[string]any{
		"text": "={{ $json.a }",
	}, Context{HasInputData: true})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "unbalanced")
}

func TestFormatChecker_NoInputData(t *testing.T) {
	checker := NewFormatChecker()

	_, warnings := checker.CheckNodeExpressions(map[string]any{
		"text": "={{ $json.name }}",
	}, Context{HasInputData: false})

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "$json")
}

func TestFormatChecker_UnknownNodeReference(t *testing.T) {
	checker := NewFormatChecker()

	_, warnings := checker.CheckNodeExpressions(map[string]any{
		"text": "={{ $('Webhook').item.json.id }}",
	}, Context{AvailableNodeNames: []string{"Set"}, HasInputData: true})

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "Webhook")

	_, warnings = checker.CheckNodeExpressions(map[string]any{
		"text": "={{ $('Webhook').item.json.id }}",
	}, Context{AvailableNodeNames: []string{"Webhook"}, HasInputData: true})

	assert.Empty(t, warnings)
}

func TestFormatChecker_NestedPaths(t *testing.T) {
	checker := NewFormatChecker()

	errs, _ := checker.CheckNodeExpressions(map[string]any{
		"options": map[string]any{
			"headers": []any{
				map[string]any{"value": "{{ $json.token }}"},
			},
		},
	}, Context{HasInputData: true})

	require.Len(t, errs, 1)
	assert.Equal(t, "options.headers[0].value", errs[0].Path)
}
