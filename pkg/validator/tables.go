package validator

import (
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
)

// loopConstructTypes are node types whose graph cycles are legitimate by
// design. A cycle passing through one of them is never an error.
var loopConstructTypes = map[string]struct{}{
	models.NodeTypeSplitInBatches: {},
	"n8n-nodes-base.loop":         {},
}

func isLoopConstruct(nodeType string) bool {
	if _, ok := loopConstructTypes[nodeType]; ok {
		return true
	}

	return strings.Contains(strings.ToLower(nodeType), "splitinbatches")
}

// webhookTriggerTypes receive external requests and are the only node types
// allowed to stand alone in a single-node workflow.
var webhookTriggerTypes = map[string]struct{}{
	models.NodeTypeWebhook:                    {},
	"n8n-nodes-base.formTrigger":              {},
	"@n8n/n8n-nodes-langchain.chatTrigger":    {},
	"n8n-nodes-base.emailReadImap":            {},
	"n8n-nodes-base.workflowTrigger":          {},
	"n8n-nodes-base.respondToWebhookTrigger":  {},
	"n8n-nodes-base.webhookWaitingForWebhook": {},
}

func isWebhookTrigger(nodeType string) bool {
	_, ok := webhookTriggerTypes[nodeType]

	return ok
}

// Keyword tables for the loop-wiring heuristic. Matched against lowercased
// node names and local type names; best-effort pattern data, not logic.
var (
	inLoopNameKeywords = []string{
		"process", "batch", "item", "each", "transform", "handle", "loop",
	}
	summaryNameKeywords = []string{
		"summary", "summarize", "aggregate", "final", "complete", "total",
		"report", "finish", "done",
	}
)

// externalServiceKeywords marks node types that call out to other systems and
// therefore warrant error-handling configuration.
var externalServiceKeywords = []string{
	"http", "slack", "email", "gmail", "sheets", "drive", "postgres",
	"mysql", "mongo", "redis", "s3", "api", "openai", "telegram", "discord",
}

func isExternalServiceType(nodeType string) bool {
	lower := strings.ToLower(nodeType)
	for _, keyword := range externalServiceKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

func matchesKeyword(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// errorHandlingFields are node-level settings; finding one inside parameters
// is a common authoring mistake flagged explicitly.
var errorHandlingFields = []string{
	"onError", "continueOnFail", "retryOnFail", "maxTries",
	"waitBetweenTries", "alwaysOutputData", "executeOnce",
}
