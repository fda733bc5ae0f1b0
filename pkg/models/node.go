package models

import "strings"

// Node is one typed, configurable unit in a workflow graph. A node is
// identified by Name within its workflow; ID is a secondary identity and is
// never a valid connection key.
type Node struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"        validate:"required"`
	Type        string         `json:"type"        validate:"required"`
	TypeVersion float64        `json:"typeVersion,omitempty"`
	Position    [2]float64     `json:"position"`
	Parameters  map[string]any `json:"parameters"`
	Credentials map[string]any `json:"credentials,omitempty"`
	Disabled    bool           `json:"disabled,omitempty"`

	// Error-handling behaviour. Valid only at this level, never inside
	// Parameters. OnError supersedes the legacy ContinueOnFail flag and the
	// two are mutually exclusive.
	OnError          string `json:"onError,omitempty"`
	ContinueOnFail   bool   `json:"continueOnFail,omitempty"`
	RetryOnFail      bool   `json:"retryOnFail,omitempty"`
	MaxTries         int    `json:"maxTries,omitempty"`
	WaitBetweenTries int    `json:"waitBetweenTries,omitempty"`
	AlwaysOutputData bool   `json:"alwaysOutputData,omitempty"`
	ExecuteOnce      bool   `json:"executeOnce,omitempty"`

	Notes       string `json:"notes,omitempty"`
	NotesInFlow bool   `json:"notesInFlow,omitempty"`
}

// Legal values for Node.OnError.
const (
	OnErrorStopWorkflow          = "stopWorkflow"
	OnErrorContinueRegularOutput = "continueRegularOutput"
	OnErrorContinueErrorOutput   = "continueErrorOutput"
)

// Node type namespaces. Workflows must always use the full package-qualified
// form; the short form is a lookup-only alias of the metadata store.
const (
	BasePackagePrefix      = "n8n-nodes-base."
	ShortBasePrefix        = "nodes-base."
	LangchainPackagePrefix = "@n8n/n8n-nodes-langchain."
	ShortLangchainPrefix   = "nodes-langchain."
)

// Canonical node types referenced by the validation rules.
const (
	NodeTypeWebhook        = "n8n-nodes-base.webhook"
	NodeTypeHTTPRequest    = "n8n-nodes-base.httpRequest"
	NodeTypeSplitInBatches = "n8n-nodes-base.splitInBatches"
	NodeTypeStickyNote     = "n8n-nodes-base.stickyNote"
)

// HasShortNamespace reports whether the type uses a short (lookup-only)
// namespace form that is invalid inside a workflow.
func HasShortNamespace(nodeType string) bool {
	return strings.HasPrefix(nodeType, ShortBasePrefix) ||
		strings.HasPrefix(nodeType, ShortLangchainPrefix)
}

// ExpandShortNamespace rewrites a short namespace form to the full
// package-qualified form. Unknown forms are returned unchanged.
func ExpandShortNamespace(nodeType string) string {
	if rest, ok := strings.CutPrefix(nodeType, ShortBasePrefix); ok {
		return BasePackagePrefix + rest
	}

	if rest, ok := strings.CutPrefix(nodeType, ShortLangchainPrefix); ok {
		return LangchainPackagePrefix + rest
	}

	return nodeType
}

// IsBuiltinNodeType reports whether the type belongs to an official package,
// as opposed to a community package.
func IsBuiltinNodeType(nodeType string) bool {
	return strings.HasPrefix(nodeType, BasePackagePrefix) ||
		strings.HasPrefix(nodeType, LangchainPackagePrefix)
}

// LocalName returns the part of the type after the package namespace
// ("n8n-nodes-base.webhook" -> "webhook").
func LocalName(nodeType string) string {
	if idx := strings.LastIndex(nodeType, "."); idx >= 0 {
		return nodeType[idx+1:]
	}

	return nodeType
}
