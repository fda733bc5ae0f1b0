package validator

import (
	"fmt"
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
)

// errorPathNodeThreshold is the workflow size above which having no error
// handling at all is worth a warning.
const errorPathNodeThreshold = 5

// checkPatterns is the best-practice pass: orphans, missing error handling,
// unused error-output modes, overlong linear chains, and tool-less AI
// agents. Everything here is a warning.
func (v *Validator) checkPatterns(workflow *models.Workflow, result *models.ValidationResult) {
	enabled := enabledNodes(workflow)
	inbound := inboundCounts(workflow, models.PortMain, models.PortError, models.PortAITool)
	toolInbound := inboundCounts(workflow, models.PortAITool)

	for _, node := range enabled {
		hasOutbound := len(workflow.Connections[node.Name]) > 0

		if len(enabled) > 1 && !hasOutbound && inbound[node.Name] == 0 && !v.isTriggerNode(node) {
			result.AddWarning(models.ValidationIssue{
				Code:     models.CodePolicy,
				NodeID:   node.ID,
				NodeName: node.Name,
				Message:  "node is not connected to the rest of the workflow",
			})
		}

		if node.OnError == models.OnErrorContinueErrorOutput &&
			len(workflow.Connections[node.Name][models.PortError]) == 0 {
			result.AddWarning(models.ValidationIssue{
				Code:     models.CodePolicy,
				NodeID:   node.ID,
				NodeName: node.Name,
				Property: "onError",
				Message:  "onError routes to the error output but the node has no error connections",
				Details:  map[string]any{"unusedErrorOutput": true},
			})
		}

		if isExternalServiceType(node.Type) && !v.isTriggerNode(node) && !hasErrorHandling(node) {
			result.AddWarning(models.ValidationIssue{
				Code:     models.CodePolicy,
				NodeID:   node.ID,
				NodeName: node.Name,
				Message:  "node calls an external service without error handling; set onError or retryOnFail",
			})
		}

		hasToolConnection := toolInbound[node.Name] > 0 ||
			len(workflow.Connections[node.Name][models.PortAITool]) > 0

		if isAIAgentType(node.Type) && !hasToolConnection {
			result.AddWarning(models.ValidationIssue{
				Code:     models.CodePolicy,
				NodeID:   node.ID,
				NodeName: node.Name,
				Message:  "AI agent has no tool connections; connect at least one tool node via an ai_tool port",
			})
		}
	}

	if len(enabled) > 0 && !v.hasTriggerNode(enabled) {
		result.AddWarning(models.ValidationIssue{
			Code:    models.CodePolicy,
			Message: "workflow has no trigger node; nothing can start an execution",
		})
	}

	if len(enabled) >= errorPathNodeThreshold && !hasAnyErrorHandling(workflow, enabled) {
		result.AddWarning(models.ValidationIssue{
			Code: models.CodePolicy,
			Message: fmt.Sprintf(
				"workflow has %d nodes and no error handling; add error connections or onError settings", len(enabled)),
		})
	}

	if chain := longestChain(workflow); chain > maxLinearChain {
		result.AddWarning(models.ValidationIssue{
			Code: models.CodePolicy,
			Message: fmt.Sprintf(
				"workflow has a linear chain of %d nodes; consider splitting it into sub-workflows", chain),
		})
	}
}

func (v *Validator) hasTriggerNode(enabled []*models.Node) bool {
	for _, node := range enabled {
		if v.isTriggerNode(node) {
			return true
		}
	}

	return false
}

func hasErrorHandling(node *models.Node) bool {
	return node.OnError != "" || node.RetryOnFail || node.ContinueOnFail
}

// hasAnyErrorHandling reports whether the workflow uses error connections or
// node-level error settings anywhere.
func hasAnyErrorHandling(workflow *models.Workflow, enabled []*models.Node) bool {
	for _, node := range enabled {
		if hasErrorHandling(node) {
			return true
		}
	}

	for _, ports := range workflow.Connections {
		if len(ports[models.PortError]) > 0 {
			return true
		}
	}

	return false
}

func isAIAgentType(nodeType string) bool {
	return strings.EqualFold(models.LocalName(nodeType), "agent") &&
		strings.HasPrefix(nodeType, models.LangchainPackagePrefix)
}
