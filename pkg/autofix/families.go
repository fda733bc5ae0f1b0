package autofix

import (
	"fmt"

	"github.com/flowlint/flowlint/pkg/expression"
	"github.com/flowlint/flowlint/pkg/models"
)

// collectFixes runs every fix family over the findings. Families append
// candidate fixes; filtering and merging happen afterwards.
func (f *Fixer) collectFixes(
	workflow *models.Workflow,
	result *models.ValidationResult,
	expressionIssues []expression.Issue,
) []models.FixOperation {
	var fixes []models.FixOperation

	fixes = append(fixes, expressionFormatFixes(expressionIssues)...)
	fixes = append(fixes, typeVersionFixes(workflow, result)...)
	fixes = append(fixes, errorOutputFixes(result)...)
	fixes = append(fixes, nodeTypeFixes(workflow, result)...)

	return fixes
}

// expressionFormatFixes applies the corrected value the format checker
// computed for mechanical expression mistakes (missing '=' prefix).
func expressionFormatFixes(issues []expression.Issue) []models.FixOperation {
	var fixes []models.FixOperation

	for _, issue := range issues {
		if issue.CorrectedValue == "" {
			continue
		}

		fixes = append(fixes, models.FixOperation{
			Node:        issue.NodeName,
			Field:       "parameters." + issue.Path,
			Type:        models.FixTypeExpressionFormat,
			Before:      issue.Expression,
			After:       issue.CorrectedValue,
			Confidence:  models.FixConfidenceHigh,
			Description: fmt.Sprintf("add the missing '=' expression prefix at %s", issue.Path),
		})
	}

	return fixes
}

// typeVersionFixes clamps out-of-range typeVersions to the metadata store's
// declared maximum, carried on the version error's details.
func typeVersionFixes(workflow *models.Workflow, result *models.ValidationResult) []models.FixOperation {
	var fixes []models.FixOperation

	for _, issue := range result.Errors {
		if issue.Code != models.CodeVersion || issue.Property != "typeVersion" {
			continue
		}

		maxVersion, ok := issue.Details["maxVersion"].(float64)
		if !ok {
			continue
		}

		var before any
		if node := workflow.NodeByName(issue.NodeName); node != nil {
			before = node.TypeVersion
		}

		fixes = append(fixes, models.FixOperation{
			Node:        issue.NodeName,
			Field:       "typeVersion",
			Type:        models.FixTypeTypeVersionCorrection,
			Before:      before,
			After:       maxVersion,
			Confidence:  models.FixConfidenceHigh,
			Description: fmt.Sprintf("set typeVersion to the maximum supported version %v", maxVersion),
		})
	}

	return fixes
}

// errorOutputFixes removes an onError mode that routes to an error output no
// connection consumes.
func errorOutputFixes(result *models.ValidationResult) []models.FixOperation {
	var fixes []models.FixOperation

	for _, issue := range result.Warnings {
		unused, ok := issue.Details["unusedErrorOutput"].(bool)
		if !ok || !unused {
			continue
		}

		fixes = append(fixes, models.FixOperation{
			Node:        issue.NodeName,
			Field:       "onError",
			Type:        models.FixTypeErrorOutputConfig,
			Before:      models.OnErrorContinueErrorOutput,
			After:       nil,
			Confidence:  models.FixConfidenceMedium,
			Description: "remove onError: the node has no error connections to receive the output",
		})
	}

	return fixes
}

// nodeTypeFixes corrects unknown node types, but only when the attached
// suggestion clears the auto-fix confidence floor. Identity changes are
// never applied on medium or low confidence.
func nodeTypeFixes(workflow *models.Workflow, result *models.ValidationResult) []models.FixOperation {
	var fixes []models.FixOperation

	for _, issue := range result.Errors {
		if issue.Code != models.CodeResolution || issue.Fix == nil || !issue.Fix.AutoFixable() {
			continue
		}

		var before any
		if node := workflow.NodeByName(issue.NodeName); node != nil {
			before = node.Type
		}

		fixes = append(fixes, models.FixOperation{
			Node:        issue.NodeName,
			Field:       "type",
			Type:        models.FixTypeNodeTypeCorrection,
			Before:      before,
			After:       issue.Fix.Value,
			Confidence:  models.FixConfidenceHigh,
			Description: fmt.Sprintf("replace the node type with %q (%s)", issue.Fix.Value, issue.Fix.Reason),
		})
	}

	return fixes
}
