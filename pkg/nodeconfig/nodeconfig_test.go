package nodeconfig

import (
	"testing"

	"github.com/flowlint/flowlint/pkg/log"
	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/flowlint/flowlint/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) (*Validator, *registry.Registry) {
	t.Helper()

	logger := log.WithModule("test")
	reg := registry.NewDefaultRegistry(logger)

	return NewValidator(
		reg,
		suggest.NewResourceService(reg, logger),
		suggest.NewOperationService(reg, logger),
		logger,
	), reg
}

func propsOf(t *testing.T, reg *registry.Registry, nodeType string) []models.PropertyDescriptor {
	t.Helper()

	desc := reg.GetNode(nodeType)
	require.NotNil(t, desc)

	return desc.Properties
}

func findIssue(issues []Issue, property string) *Issue {
	for i := range issues {
		if issues[i].Property == property {
			return &issues[i]
		}
	}

	return nil
}

func TestValidate_MissingRequired(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.httpRequest", map[string]any{},
		propsOf(t, reg, "n8n-nodes-base.httpRequest"), ModeOperation, ProfileAIFriendly)

	assert.False(t, result.Valid)

	issue := findIssue(result.Errors, "url")
	require.NotNil(t, issue)
	assert.Equal(t, models.CodeMissingRequired, issue.Type)
}

func TestValidate_TypeMismatch(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.httpRequest", map[string]any{
		"url":      42,
		"sendBody": "yes",
	}, propsOf(t, reg, "n8n-nodes-base.httpRequest"), ModeOperation, ProfileAIFriendly)

	assert.False(t, result.Valid)
	require.NotNil(t, findIssue(result.Errors, "url"))
	require.NotNil(t, findIssue(result.Errors, "sendBody"))
	assert.Equal(t, models.CodeInvalidType, findIssue(result.Errors, "url").Type)
}

func TestValidate_ExpressionsBypassTypeChecks(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.httpRequest", map[string]any{
		"url":    "={{ $json.url }}",
		"method": "={{ $json.method }}",
	}, propsOf(t, reg, "n8n-nodes-base.httpRequest"), ModeOperation, ProfileAIFriendly)

	assert.True(t, result.Valid)
}

func TestValidate_InvalidOperationGetsSuggestion(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.googleSheets", map[string]any{
		"resource":   "sheet",
		"operation":  "addRow",
		"documentId": "doc-1",
		"sheetName":  "Sheet1",
	}, propsOf(t, reg, "n8n-nodes-base.googleSheets"), ModeOperation, ProfileAIFriendly)

	assert.False(t, result.Valid)

	issue := findIssue(result.Errors, "operation")
	require.NotNil(t, issue)
	assert.Equal(t, models.CodeInvalidValue, issue.Type)
	require.NotNil(t, issue.Suggestion)
	assert.Equal(t, "append", issue.Suggestion.Value)
}

func TestValidate_InvalidResourceGetsSuggestion(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.slack", map[string]any{
		"resource": "messages",
	}, propsOf(t, reg, "n8n-nodes-base.slack"), ModeOperation, ProfileAIFriendly)

	assert.False(t, result.Valid)

	issue := findIssue(result.Errors, "resource")
	require.NotNil(t, issue)
	require.NotNil(t, issue.Suggestion)
	assert.Equal(t, "message", issue.Suggestion.Value)
}

func TestValidate_OperationModeHidesIrrelevantProperties(t *testing.T) {
	v, reg := newTestValidator(t)

	// With resource=spreadsheet the sheet-scoped documentId requirement
	// must not fire.
	result := v.Validate("n8n-nodes-base.googleSheets", map[string]any{
		"resource": "spreadsheet",
	}, propsOf(t, reg, "n8n-nodes-base.googleSheets"), ModeOperation, ProfileAIFriendly)

	assert.Nil(t, findIssue(result.Errors, "documentId"))
	assert.NotContains(t, result.VisibleProperties, "documentId")
}

func TestValidate_VisibilityUsesDeclaredDefaults(t *testing.T) {
	v, reg := newTestValidator(t)

	// resource defaults to "sheet", so sheet-scoped properties are visible
	// even when resource is not configured.
	result := v.Validate("n8n-nodes-base.googleSheets", map[string]any{},
		propsOf(t, reg, "n8n-nodes-base.googleSheets"), ModeOperation, ProfileAIFriendly)

	assert.NotNil(t, findIssue(result.Errors, "documentId"))
}

func TestValidate_MinimalModeChecksRequiredOnly(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.httpRequest", map[string]any{
		"url":    "https://example.com",
		"method": "TELEPORT",
	}, propsOf(t, reg, "n8n-nodes-base.httpRequest"), ModeMinimal, ProfileAIFriendly)

	// method is not required, so minimal mode never looks at it.
	assert.Nil(t, findIssue(result.Errors, "method"))
	assert.True(t, result.Valid)
}

func TestValidate_SlackFamilyRules(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.slack", map[string]any{
		"resource":  "message",
		"operation": "post",
	}, propsOf(t, reg, "n8n-nodes-base.slack"), ModeOperation, ProfileAIFriendly)

	assert.False(t, result.Valid)
	assert.NotNil(t, findIssue(result.Errors, "channelId"))
	assert.NotNil(t, findIssue(result.Errors, "text"))
}

func TestValidate_MongoDeleteWithoutFilterIsSecurityError(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.mongoDb", map[string]any{
		"operation":  "delete",
		"collection": "users",
		"query":      "{}",
	}, propsOf(t, reg, "n8n-nodes-base.mongoDb"), ModeOperation, ProfileAIFriendly)

	assert.False(t, result.Valid)

	issue := findIssue(result.Errors, "query")
	require.NotNil(t, issue)
	assert.Equal(t, models.CodeSecurity, issue.Type)
}

func TestValidate_PostgresInterpolationWarning(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.postgres", map[string]any{
		"operation": "executeQuery",
		"query":     "SELECT * FROM users WHERE id = ${id}",
	}, propsOf(t, reg, "n8n-nodes-base.postgres"), ModeOperation, ProfileAIFriendly)

	assert.True(t, result.Valid)

	issue := findIssue(result.Warnings, "query")
	require.NotNil(t, issue)
	assert.Equal(t, models.CodeSecurity, issue.Type)
}

func TestValidate_SheetsRangeQualifierWarning(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.googleSheets", map[string]any{
		"resource":   "sheet",
		"operation":  "read",
		"documentId": "doc-1",
		"range":      "A1:B10",
	}, propsOf(t, reg, "n8n-nodes-base.googleSheets"), ModeOperation, ProfileAIFriendly)

	issue := findIssue(result.Warnings, "range")
	require.NotNil(t, issue)
	assert.Contains(t, issue.Message, "Sheet1!A1:B10")
}

func TestValidate_InvalidCronExpression(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.scheduleTrigger", map[string]any{
		"rule": map[string]any{
			"interval": []any{
				map[string]any{"cronExpression": "99 99 * * *"},
			},
		},
	}, propsOf(t, reg, "n8n-nodes-base.scheduleTrigger"), ModeOperation, ProfileAIFriendly)

	assert.False(t, result.Valid)

	issue := findIssue(result.Errors, "rule")
	require.NotNil(t, issue)
	assert.Contains(t, issue.Message, "cron")
}

func TestValidate_ValidCronExpression(t *testing.T) {
	v, reg := newTestValidator(t)

	result := v.Validate("n8n-nodes-base.scheduleTrigger", map[string]any{
		"rule": map[string]any{
			"interval": []any{
				map[string]any{"cronExpression": "*/5 * * * *"},
			},
		},
	}, propsOf(t, reg, "n8n-nodes-base.scheduleTrigger"), ModeOperation, ProfileAIFriendly)

	assert.True(t, result.Valid)
}
