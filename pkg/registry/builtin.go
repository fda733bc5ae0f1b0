package registry

import (
	"log/slog"

	"github.com/flowlint/flowlint/pkg/models"
)

// RegisterDefaultNodeTypes seeds the registry with descriptors for the common
// built-in node types, so the engine works without an external metadata store.
func RegisterDefaultNodeTypes(r *Registry) {
	for i := range builtinNodeTypes {
		r.Register(&builtinNodeTypes[i])
	}
}

// NewDefaultRegistry creates a registry pre-seeded with the built-in types.
func NewDefaultRegistry(logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	RegisterDefaultNodeTypes(r)

	return r
}

func options(values ...string) []models.PropertyOption {
	opts := make([]models.PropertyOption, 0, len(values))
	for _, v := range values {
		opts = append(opts, models.PropertyOption{Name: v, Value: v})
	}

	return opts
}

func show(field string, values ...string) *models.DisplayOptions {
	anyValues := make([]any, 0, len(values))
	for _, v := range values {
		anyValues = append(anyValues, v)
	}

	return &models.DisplayOptions{Show: map[string][]any{field: anyValues}}
}

var builtinNodeTypes = []models.NodeTypeDescriptor{
	{
		NodeType:    "n8n-nodes-base.webhook",
		DisplayName: "Webhook",
		Category:    "trigger",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     2,
		IsTrigger:   true,
		Properties: []models.PropertyDescriptor{
			{Name: "path", DisplayName: "Path", Type: "string", Default: ""},
			{Name: "httpMethod", DisplayName: "HTTP Method", Type: "options", Default: "GET",
				Options: options("DELETE", "GET", "HEAD", "PATCH", "POST", "PUT")},
			{Name: "responseMode", DisplayName: "Respond", Type: "options", Default: "onReceived",
				Options: options("onReceived", "lastNode", "responseNode")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.manualTrigger",
		DisplayName: "Manual Trigger",
		Category:    "trigger",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     1,
		IsTrigger:   true,
	},
	{
		NodeType:    "n8n-nodes-base.scheduleTrigger",
		DisplayName: "Schedule Trigger",
		Category:    "trigger",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     1.2,
		IsTrigger:   true,
		Properties: []models.PropertyDescriptor{
			{Name: "rule", DisplayName: "Trigger Rules", Type: "collection"},
		},
	},
	{
		NodeType:    "n8n-nodes-base.httpRequest",
		DisplayName: "HTTP Request",
		Category:    "output",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     4.2,
		Properties: []models.PropertyDescriptor{
			{Name: "method", DisplayName: "Method", Type: "options", Default: "GET",
				Options: options("DELETE", "GET", "HEAD", "OPTIONS", "PATCH", "POST", "PUT")},
			{Name: "url", DisplayName: "URL", Type: "string", Required: true},
			{Name: "authentication", DisplayName: "Authentication", Type: "options", Default: "none",
				Options: options("none", "predefinedCredentialType", "genericCredentialType")},
			{Name: "sendBody", DisplayName: "Send Body", Type: "boolean", Default: false},
			{Name: "options", DisplayName: "Options", Type: "collection"},
		},
	},
	{
		NodeType:    "n8n-nodes-base.set",
		DisplayName: "Edit Fields (Set)",
		Category:    "transform",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     3.4,
		Properties: []models.PropertyDescriptor{
			{Name: "mode", DisplayName: "Mode", Type: "options", Default: "manual",
				Options: options("manual", "raw")},
			{Name: "assignments", DisplayName: "Fields to Set", Type: "fixedCollection",
				DisplayOptions: show("mode", "manual")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.code",
		DisplayName: "Code",
		Category:    "transform",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     2,
		Properties: []models.PropertyDescriptor{
			{Name: "mode", DisplayName: "Mode", Type: "options", Default: "runOnceForAllItems",
				Options: options("runOnceForAllItems", "runOnceForEachItem")},
			{Name: "jsCode", DisplayName: "JavaScript", Type: "string", Required: true},
		},
	},
	{
		NodeType:    "n8n-nodes-base.if",
		DisplayName: "If",
		Category:    "transform",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     2.2,
		Properties: []models.PropertyDescriptor{
			{Name: "conditions", DisplayName: "Conditions", Type: "filter", Required: true},
		},
	},
	{
		NodeType:    "n8n-nodes-base.switch",
		DisplayName: "Switch",
		Category:    "transform",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     3.2,
		Properties: []models.PropertyDescriptor{
			{Name: "mode", DisplayName: "Mode", Type: "options", Default: "rules",
				Options: options("rules", "expression")},
			{Name: "rules", DisplayName: "Routing Rules", Type: "fixedCollection",
				DisplayOptions: show("mode", "rules")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.filter",
		DisplayName: "Filter",
		Category:    "transform",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     2.2,
		Properties: []models.PropertyDescriptor{
			{Name: "conditions", DisplayName: "Conditions", Type: "filter", Required: true},
		},
	},
	{
		NodeType:    "n8n-nodes-base.merge",
		DisplayName: "Merge",
		Category:    "transform",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     3,
		Properties: []models.PropertyDescriptor{
			{Name: "mode", DisplayName: "Mode", Type: "options", Default: "append",
				Options: options("append", "combine", "combineBySql", "chooseBranch")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.splitInBatches",
		DisplayName: "Loop Over Items (Split in Batches)",
		Category:    "transform",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     3,
		Properties: []models.PropertyDescriptor{
			{Name: "batchSize", DisplayName: "Batch Size", Type: "number", Default: 1},
		},
	},
	{
		NodeType:    "n8n-nodes-base.wait",
		DisplayName: "Wait",
		Category:    "flow",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     1.1,
		Properties: []models.PropertyDescriptor{
			{Name: "resume", DisplayName: "Resume", Type: "options", Default: "timeInterval",
				Options: options("timeInterval", "specificTime", "webhook", "form")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.noOp",
		DisplayName: "No Operation, do nothing",
		Category:    "utility",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     1,
	},
	{
		NodeType:    "n8n-nodes-base.stickyNote",
		DisplayName: "Sticky Note",
		Category:    "utility",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     1,
		Properties: []models.PropertyDescriptor{
			{Name: "content", DisplayName: "Content", Type: "string"},
		},
	},
	{
		NodeType:    "n8n-nodes-base.executeWorkflow",
		DisplayName: "Execute Sub-workflow",
		Category:    "flow",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     1.2,
		Properties: []models.PropertyDescriptor{
			{Name: "workflowId", DisplayName: "Workflow", Type: "string", Required: true},
		},
	},
	{
		NodeType:    "n8n-nodes-base.respondToWebhook",
		DisplayName: "Respond to Webhook",
		Category:    "flow",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     1.1,
		Properties: []models.PropertyDescriptor{
			{Name: "respondWith", DisplayName: "Respond With", Type: "options", Default: "firstIncomingItem",
				Options: options("allIncomingItems", "firstIncomingItem", "json", "text", "noData")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.slack",
		DisplayName: "Slack",
		Category:    "output",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     2.3,
		Properties: []models.PropertyDescriptor{
			{Name: "resource", DisplayName: "Resource", Type: "options", Default: "message",
				Options: options("channel", "file", "message", "reaction", "star", "user")},
			{Name: "operation", DisplayName: "Operation", Type: "options", Default: "post",
				Options:        options("post", "update", "delete", "getPermalink", "search"),
				DisplayOptions: show("resource", "message")},
			{Name: "select", DisplayName: "Send Message To", Type: "options",
				Options:        options("channel", "user"),
				DisplayOptions: show("resource", "message")},
			{Name: "channelId", DisplayName: "Channel", Type: "string",
				DisplayOptions: show("resource", "message")},
			{Name: "text", DisplayName: "Message Text", Type: "string",
				DisplayOptions: show("resource", "message")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.googleSheets",
		DisplayName: "Google Sheets",
		Category:    "output",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     4.5,
		Properties: []models.PropertyDescriptor{
			{Name: "resource", DisplayName: "Resource", Type: "options", Default: "sheet",
				Options: options("spreadsheet", "sheet")},
			{Name: "operation", DisplayName: "Operation", Type: "options", Default: "read",
				Options: options("append", "appendOrUpdate", "clear", "create", "delete",
					"read", "remove", "update"),
				DisplayOptions: show("resource", "sheet")},
			{Name: "documentId", DisplayName: "Document", Type: "string", Required: true,
				DisplayOptions: show("resource", "sheet")},
			{Name: "sheetName", DisplayName: "Sheet", Type: "string",
				DisplayOptions: show("resource", "sheet")},
			{Name: "range", DisplayName: "Range", Type: "string",
				DisplayOptions: show("operation", "read", "clear", "update")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.postgres",
		DisplayName: "Postgres",
		Category:    "input",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     2.6,
		Properties: []models.PropertyDescriptor{
			{Name: "operation", DisplayName: "Operation", Type: "options", Default: "executeQuery",
				Options: options("deleteTable", "executeQuery", "insert", "select", "update", "upsert")},
			{Name: "query", DisplayName: "Query", Type: "string",
				DisplayOptions: show("operation", "executeQuery")},
			{Name: "table", DisplayName: "Table", Type: "string",
				DisplayOptions: show("operation", "deleteTable", "insert", "select", "update", "upsert")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.mongoDb",
		DisplayName: "MongoDB",
		Category:    "input",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     1.2,
		Properties: []models.PropertyDescriptor{
			{Name: "operation", DisplayName: "Operation", Type: "options", Default: "find",
				Options: options("aggregate", "delete", "find", "findOneAndReplace",
					"findOneAndUpdate", "insert", "update")},
			{Name: "collection", DisplayName: "Collection", Type: "string", Required: true},
			{Name: "query", DisplayName: "Query (JSON Format)", Type: "string",
				DisplayOptions: show("operation", "aggregate", "delete", "find")},
		},
	},
	{
		NodeType:    "n8n-nodes-base.emailSend",
		DisplayName: "Send Email",
		Category:    "output",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     2.1,
		Properties: []models.PropertyDescriptor{
			{Name: "fromEmail", DisplayName: "From Email", Type: "string", Required: true},
			{Name: "toEmail", DisplayName: "To Email", Type: "string", Required: true},
			{Name: "subject", DisplayName: "Subject", Type: "string"},
		},
	},
	{
		NodeType:    "@n8n/n8n-nodes-langchain.openAi",
		DisplayName: "OpenAI",
		Category:    "ai",
		Package:     "@n8n/n8n-nodes-langchain",
		IsVersioned: true,
		Version:     1.8,
		Properties: []models.PropertyDescriptor{
			{Name: "resource", DisplayName: "Resource", Type: "options", Default: "text",
				Options: options("assistant", "audio", "file", "image", "text")},
			{Name: "operation", DisplayName: "Operation", Type: "options", Default: "message",
				Options:        options("message"),
				DisplayOptions: show("resource", "text")},
			{Name: "modelId", DisplayName: "Model", Type: "string",
				DisplayOptions: show("resource", "text")},
			{Name: "messages", DisplayName: "Messages", Type: "fixedCollection",
				DisplayOptions: show("resource", "text")},
		},
	},
	{
		NodeType:    "@n8n/n8n-nodes-langchain.agent",
		DisplayName: "AI Agent",
		Category:    "ai",
		Package:     "@n8n/n8n-nodes-langchain",
		IsVersioned: true,
		Version:     1.9,
		Properties: []models.PropertyDescriptor{
			{Name: "promptType", DisplayName: "Source for Prompt", Type: "options", Default: "auto",
				Options: options("auto", "define")},
			{Name: "text", DisplayName: "Prompt", Type: "string",
				DisplayOptions: show("promptType", "define")},
		},
	},
	{
		NodeType:    "@n8n/n8n-nodes-langchain.chatTrigger",
		DisplayName: "Chat Trigger",
		Category:    "trigger",
		Package:     "@n8n/n8n-nodes-langchain",
		IsVersioned: true,
		Version:     1.1,
		IsTrigger:   true,
	},
	{
		NodeType:    "@n8n/n8n-nodes-langchain.lmChatOpenAi",
		DisplayName: "OpenAI Chat Model",
		Category:    "ai",
		Package:     "@n8n/n8n-nodes-langchain",
		IsVersioned: true,
		Version:     1,
		Properties: []models.PropertyDescriptor{
			{Name: "model", DisplayName: "Model", Type: "string", Default: "gpt-4o-mini"},
		},
	},
	{
		NodeType:    "@n8n/n8n-nodes-langchain.toolHttpRequest",
		DisplayName: "HTTP Request Tool",
		Category:    "ai",
		Package:     "@n8n/n8n-nodes-langchain",
		IsVersioned: true,
		Version:     1.1,
		IsAITool:    true,
		Properties: []models.PropertyDescriptor{
			{Name: "url", DisplayName: "URL", Type: "string", Required: true},
		},
	},
}
