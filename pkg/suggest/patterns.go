package suggest

// The tables in this file are data, not logic: extending a family or adding a
// known confusion must never require touching the scoring algorithms.

// confusionCategory tells the matcher how to compare the pattern.
type confusionCategory string

const (
	confusionMissingPrefix    confusionCategory = "missing-prefix"    // case-insensitive
	confusionDeprecatedPrefix confusionCategory = "deprecated-prefix" // case-sensitive prefix rewrite
	confusionAIMisrouting     confusionCategory = "ai-misrouting"     // case-insensitive
)

// nodeTypeConfusion is one curated known-mistake entry.
type nodeTypeConfusion struct {
	Pattern    string
	Suggested  string
	Category   confusionCategory
	Confidence float64
	Reason     string
}

// nodeTypeConfusions maps frequently seen wrong identifiers to the intended
// type. Checked before any scoring runs.
var nodeTypeConfusions = []nodeTypeConfusion{
	// Well-known node names written without the package prefix.
	{"webhook", "n8n-nodes-base.webhook", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"httprequest", "n8n-nodes-base.httpRequest", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"http request", "n8n-nodes-base.httpRequest", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"slack", "n8n-nodes-base.slack", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"set", "n8n-nodes-base.set", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"code", "n8n-nodes-base.code", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"if", "n8n-nodes-base.if", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"switch", "n8n-nodes-base.switch", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"merge", "n8n-nodes-base.merge", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"googlesheets", "n8n-nodes-base.googleSheets", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"postgres", "n8n-nodes-base.postgres", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"mongodb", "n8n-nodes-base.mongoDb", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"manualtrigger", "n8n-nodes-base.manualTrigger", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"scheduletrigger", "n8n-nodes-base.scheduleTrigger", confusionMissingPrefix, 0.95, "missing package prefix"},
	{"splitinbatches", "n8n-nodes-base.splitInBatches", confusionMissingPrefix, 0.95, "missing package prefix"},

	// AI and chat nodes routed to the wrong package.
	{"openai", "@n8n/n8n-nodes-langchain.openAi", confusionAIMisrouting, 0.93, "OpenAI nodes live in the langchain package"},
	{"chatgpt", "@n8n/n8n-nodes-langchain.openAi", confusionAIMisrouting, 0.9, "OpenAI nodes live in the langchain package"},
	{"n8n-nodes-base.openAi", "@n8n/n8n-nodes-langchain.openAi", confusionAIMisrouting, 0.93, "OpenAI nodes live in the langchain package"},
	{"agent", "@n8n/n8n-nodes-langchain.agent", confusionAIMisrouting, 0.9, "AI agent nodes live in the langchain package"},
	{"n8n-nodes-base.agent", "@n8n/n8n-nodes-langchain.agent", confusionAIMisrouting, 0.93, "AI agent nodes live in the langchain package"},
	{"chattrigger", "@n8n/n8n-nodes-langchain.chatTrigger", confusionAIMisrouting, 0.9, "chat triggers live in the langchain package"},
	{"n8n-nodes-base.chatTrigger", "@n8n/n8n-nodes-langchain.chatTrigger", confusionAIMisrouting, 0.93, "chat triggers live in the langchain package"},
}

// deprecatedPrefixes rewrites full-package prefixes that are no longer
// published under that name.
var deprecatedPrefixes = map[string]string{
	"n8n-nodes-langchain.": "@n8n/n8n-nodes-langchain.",
}

// categoryKeywords awards category-overlap points during node-type scoring
// when the query mentions the category's vocabulary.
var categoryKeywords = map[string][]string{
	"trigger":   {"trigger", "webhook", "cron", "schedule", "poll"},
	"transform": {"transform", "set", "edit", "filter", "map", "convert"},
	"output":    {"send", "post", "write", "upload", "notify"},
	"input":     {"read", "get", "fetch", "query", "db", "database"},
	"ai":        {"ai", "llm", "chat", "agent", "gpt", "openai", "model"},
	"flow":      {"wait", "loop", "batch", "subworkflow", "respond"},
}

// familyPatterns is one hand-curated wrong-value table, keyed by a node-type
// substring that selects the family.
type familyPatterns struct {
	TypeContains string
	Patterns     map[string]string
}

// familyResourcePatterns corrects common wrong resource values per family.
var familyResourcePatterns = []familyPatterns{
	{"googleDrive", map[string]string{
		"files":     "file",
		"folders":   "folder",
		"directory": "folder",
		"doc":       "file",
	}},
	{"slack", map[string]string{
		"messages": "message",
		"msg":      "message",
		"dm":       "message",
		"channels": "channel",
		"users":    "user",
		"files":    "file",
	}},
	{"postgres", map[string]string{
		"db":      "database",
		"sql":     "database",
		"queries": "database",
		"tables":  "database",
	}},
	{"mongoDb", map[string]string{
		"collections": "collection",
		"documents":   "document",
		"docs":        "document",
	}},
	{"httpRequest", map[string]string{
		"rest": "request",
		"api":  "request",
	}},
	{"googleSheets", map[string]string{
		"sheets":       "sheet",
		"spreadsheets": "spreadsheet",
		"worksheet":    "sheet",
	}},
}

// familyOperationPatterns corrects common wrong operation values per family.
var familyOperationPatterns = []familyPatterns{
	{"slack", map[string]string{
		"send":        "post",
		"sendmessage": "post",
		"postmessage": "post",
		"write":       "post",
	}},
	{"googleSheets", map[string]string{
		"addrow":  "append",
		"add":     "append",
		"write":   "append",
		"insert":  "append",
		"get":     "read",
		"fetch":   "read",
		"getrows": "read",
	}},
	{"postgres", map[string]string{
		"query":  "executeQuery",
		"run":    "executeQuery",
		"sql":    "executeQuery",
		"get":    "select",
		"fetch":  "select",
		"remove": "deleteTable",
	}},
	{"mongoDb", map[string]string{
		"get":    "find",
		"search": "find",
		"query":  "find",
		"remove": "delete",
		"add":    "insert",
	}},
	{"openAi", map[string]string{
		"chat":     "message",
		"complete": "message",
		"generate": "message",
	}},
}

// genericValuePatterns applies to every node family, after the family tables.
var genericValuePatterns = map[string]string{
	"create": "insert",
	"fetch":  "get",
	"remove": "delete",
	"list":   "getAll",
}
