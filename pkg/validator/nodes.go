package validator

import (
	"fmt"
	"strconv"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/nodeconfig"
)

// checkNode runs the per-node passes: namespace form, type resolution,
// version compatibility, error-handling settings, and configuration. A panic
// while checking one node becomes one error for that node and the remaining
// nodes are still validated.
func (v *Validator) checkNode(node *models.Node, profile nodeconfig.Profile, result *models.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("node validation panicked", "node", node.Name, "panic", r)
			result.AddError(models.ValidationIssue{
				Code:     models.CodeInternal,
				NodeID:   node.ID,
				NodeName: node.Name,
				Message:  "node could not be fully validated",
			})
		}
	}()

	if node.Name == "" {
		result.AddError(models.ValidationIssue{
			Code:    models.CodeIdentity,
			NodeID:  node.ID,
			Message: "node has no name; connections reference nodes by name",
		})
	}

	if node.Type == "" {
		result.AddError(models.ValidationIssue{
			Code:     models.CodeResolution,
			NodeID:   node.ID,
			NodeName: node.Name,
			Message:  "node has no type",
		})

		return
	}

	// The short namespace form is a lookup-only alias of the metadata store
	// and is always an error inside a workflow, even when it resolves.
	if models.HasShortNamespace(node.Type) {
		full := models.ExpandShortNamespace(node.Type)
		result.AddError(models.ValidationIssue{
			Code:     models.CodeResolution,
			NodeID:   node.ID,
			NodeName: node.Name,
			Property: "type",
			Message:  fmt.Sprintf("node type %q uses the short namespace form; workflows must use %q", node.Type, full),
			Fix: &models.Suggestion{
				Value:      full,
				Confidence: 1,
				Reason:     "workflows must use the package-qualified form",
				Category:   "namespace",
			},
		})
	}

	desc := v.resolveType(node.Type)
	if desc == nil {
		v.reportUnknownType(node, result)

		return
	}

	v.checkTypeVersion(node, desc, result)
	v.checkErrorHandling(node, result)
	v.checkConfiguration(node, desc, profile, result)
}

func (v *Validator) reportUnknownType(node *models.Node, result *models.ValidationResult) {
	issue := models.ValidationIssue{
		Code:     models.CodeResolution,
		NodeID:   node.ID,
		NodeName: node.Name,
		Property: "type",
		Message:  fmt.Sprintf("unknown node type %q; check the spelling and package prefix", node.Type),
	}

	if suggestions := v.types.FindSimilarNodes(node.Type, maxTypeSuggestions); len(suggestions) > 0 {
		issue.Fix = &suggestions[0]
		issue.Details = map[string]any{"suggestions": suggestions}
	}

	result.AddError(issue)
}

// checkTypeVersion enforces the version contract for versioned types:
// missing is an error, below-latest a warning, above the declared maximum an
// error. Details carry the maximum for the auto-fixer.
func (v *Validator) checkTypeVersion(node *models.Node, desc *models.NodeTypeDescriptor, result *models.ValidationResult) {
	if !desc.IsVersioned {
		return
	}

	issue := models.ValidationIssue{
		NodeID:   node.ID,
		NodeName: node.Name,
		Property: "typeVersion",
		Code:     models.CodeVersion,
		Details:  map[string]any{"maxVersion": desc.Version},
	}

	switch {
	case node.TypeVersion == 0:
		issue.Message = fmt.Sprintf("node type %q is versioned and requires a typeVersion", desc.NodeType)
		result.AddError(issue)
	case node.TypeVersion < 1:
		issue.Message = fmt.Sprintf("typeVersion %s must be at least 1", formatVersion(node.TypeVersion))
		result.AddError(issue)
	case node.TypeVersion > desc.Version:
		issue.Message = fmt.Sprintf("typeVersion %s exceeds maximum supported version %s",
			formatVersion(node.TypeVersion), formatVersion(desc.Version))
		result.AddError(issue)
	case node.TypeVersion < desc.Version:
		issue.Message = fmt.Sprintf("typeVersion %s is outdated; the latest is %s",
			formatVersion(node.TypeVersion), formatVersion(desc.Version))
		result.AddWarning(issue)
	}
}

// checkErrorHandling validates the node-level error-handling fields and
// flags the common mistake of nesting them inside parameters.
func (v *Validator) checkErrorHandling(node *models.Node, result *models.ValidationResult) {
	for _, field := range errorHandlingFields {
		if _, misplaced := node.Parameters[field]; misplaced {
			result.AddError(models.ValidationIssue{
				Code:     models.CodeConfiguration,
				NodeID:   node.ID,
				NodeName: node.Name,
				Property: field,
				Message: fmt.Sprintf(
					"%s is a node-level setting and must not be nested inside parameters; move it next to name and type", field),
			})
		}
	}

	if node.OnError != "" {
		switch node.OnError {
		case models.OnErrorStopWorkflow, models.OnErrorContinueRegularOutput, models.OnErrorContinueErrorOutput:
		default:
			result.AddError(models.ValidationIssue{
				Code:     models.CodeConfiguration,
				NodeID:   node.ID,
				NodeName: node.Name,
				Property: "onError",
				Message: fmt.Sprintf("invalid onError value %q; valid values are %s, %s and %s",
					node.OnError, models.OnErrorStopWorkflow,
					models.OnErrorContinueRegularOutput, models.OnErrorContinueErrorOutput),
			})
		}

		if node.ContinueOnFail {
			result.AddError(models.ValidationIssue{
				Code:     models.CodeConfiguration,
				NodeID:   node.ID,
				NodeName: node.Name,
				Property: "onError",
				Message:  "onError and the legacy continueOnFail are mutually exclusive; keep onError",
			})
		}
	}

	if node.MaxTries != 0 && (node.MaxTries < 1 || node.MaxTries > maxRetryTries) {
		result.AddWarning(models.ValidationIssue{
			Code:     models.CodeConfiguration,
			NodeID:   node.ID,
			NodeName: node.Name,
			Property: "maxTries",
			Message:  fmt.Sprintf("maxTries %d is outside the supported range 1..%d", node.MaxTries, maxRetryTries),
		})
	}

	if node.WaitBetweenTries != 0 && (node.WaitBetweenTries < 0 || node.WaitBetweenTries > maxRetryWaitMS) {
		result.AddWarning(models.ValidationIssue{
			Code:     models.CodeConfiguration,
			NodeID:   node.ID,
			NodeName: node.Name,
			Property: "waitBetweenTries",
			Message:  fmt.Sprintf("waitBetweenTries %dms is outside the supported range 0..%dms", node.WaitBetweenTries, maxRetryWaitMS),
		})
	}

	if !node.RetryOnFail && (node.MaxTries != 0 || node.WaitBetweenTries != 0) {
		result.AddWarning(models.ValidationIssue{
			Code:     models.CodeConfiguration,
			NodeID:   node.ID,
			NodeName: node.Name,
			Property: "retryOnFail",
			Message:  "retry settings have no effect while retryOnFail is off",
		})
	}
}

// checkConfiguration delegates to the operation-aware configuration
// validator and tags its findings with the originating node.
func (v *Validator) checkConfiguration(
	node *models.Node,
	desc *models.NodeTypeDescriptor,
	profile nodeconfig.Profile,
	result *models.ValidationResult,
) {
	cfg := v.config.Validate(desc.NodeType, node.Parameters, desc.Properties, nodeconfig.ModeOperation, profile)

	for _, issue := range cfg.Errors {
		result.AddError(v.configIssue(node, issue, cfg.AutoFix))
	}

	for _, issue := range cfg.Warnings {
		result.AddWarning(v.configIssue(node, issue, nil))
	}

	for _, text := range cfg.Suggestions {
		result.AddSuggestion(node.Name + ": " + text)
	}
}

func (v *Validator) configIssue(node *models.Node, issue nodeconfig.Issue, autofix map[string]any) models.ValidationIssue {
	message := issue.Message
	if issue.Fix != "" {
		message += " (" + issue.Fix + ")"
	}

	mapped := models.ValidationIssue{
		Code:     issue.Type,
		NodeID:   node.ID,
		NodeName: node.Name,
		Property: issue.Property,
		Message:  message,
		Fix:      issue.Suggestion,
	}

	if autofix != nil && issue.Type == models.CodeInvalidStructure {
		mapped.Details = map[string]any{"autofix": autofix}
	}

	return mapped
}

// formatVersion renders a version number without trailing zeros (2, 4.2).
func formatVersion(version float64) string {
	return strconv.FormatFloat(version, 'f', -1, 64)
}
