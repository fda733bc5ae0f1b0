package validator

import (
	"github.com/flowlint/flowlint/pkg/expression"
	"github.com/flowlint/flowlint/pkg/models"
)

// checkExpressions delegates each node's parameter object to the expression
// checker and folds its findings into the result. Expression occurrences are
// counted for statistics even when no checker is configured.
func (v *Validator) checkExpressions(workflow *models.Workflow, result *models.ValidationResult) {
	names := make([]string, 0, len(workflow.Nodes))
	for _, node := range workflow.Nodes {
		names = append(names, node.Name)
	}

	inboundMain := inboundCounts(workflow, models.PortMain)
	loopAdjacency := buildAdjacency(workflow, models.PortMain)

	for _, node := range enabledNodes(workflow) {
		result.Statistics.ExpressionsValidated += expression.CountExpressions(node.Parameters)

		if v.expr == nil {
			continue
		}

		ctx := expression.Context{
			AvailableNodeNames: names,
			CurrentNodeName:    node.Name,
			HasInputData:       inboundMain[node.Name] > 0,
			IsInLoop:           v.isInLoop(workflow, loopAdjacency, node),
		}

		errs, warns := v.expr.CheckNodeExpressions(node.Parameters, ctx)

		for _, issue := range errs {
			result.AddError(expressionIssue(node, issue))
		}

		for _, issue := range warns {
			result.AddWarning(expressionIssue(node, issue))
		}
	}
}

// isInLoop reports whether the node sits downstream of a loop construct's
// outputs, bounded the same way as the wiring heuristic.
func (v *Validator) isInLoop(workflow *models.Workflow, adjacency map[string][]string, node *models.Node) bool {
	for _, candidate := range workflow.Nodes {
		if candidate.Disabled || !isLoopConstruct(candidate.Type) || candidate.Name == node.Name {
			continue
		}

		if reaches(adjacency, candidate.Name, node.Name, maxLoopSearchDepth) {
			return true
		}
	}

	return false
}

func expressionIssue(node *models.Node, issue expression.Issue) models.ValidationIssue {
	mapped := models.ValidationIssue{
		Code:     models.CodeConfiguration,
		NodeID:   node.ID,
		NodeName: node.Name,
		Property: issue.Path,
		Message:  issue.Message,
	}

	if issue.CorrectedValue != "" {
		mapped.Details = map[string]any{"correctedValue": issue.CorrectedValue}
	}

	return mapped
}
