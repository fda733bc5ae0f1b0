package models

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes, grouped by the error taxonomy.
const (
	CodeStructural       = "structural"
	CodeIdentity         = "identity"
	CodeResolution       = "resolution"
	CodeVersion          = "version"
	CodeConfiguration    = "configuration"
	CodeGraph            = "graph"
	CodePolicy           = "policy"
	CodeInternal         = "internal"
	CodeMissingRequired  = "missing_required"
	CodeInvalidType      = "invalid_type"
	CodeInvalidValue     = "invalid_value"
	CodeInvalidStructure = "invalid_structure"
	CodeSecurity         = "security"
	CodeInefficient      = "inefficient"
	CodeBestPractice     = "best_practice"
)

// ValidationIssue is one finding about a workflow or a single node.
type ValidationIssue struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code,omitempty"`
	NodeID   string         `json:"nodeId,omitempty"`
	NodeName string         `json:"nodeName,omitempty"`
	Property string         `json:"property,omitempty"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`

	// Fix carries the top correction candidate when a suggestion service
	// recognised the mistake. Consumed by the auto-fixer.
	Fix *Suggestion `json:"fix,omitempty"`
}

// ValidationStatistics summarises what one validation call looked at.
type ValidationStatistics struct {
	TotalNodes           int `json:"totalNodes"`
	EnabledNodes         int `json:"enabledNodes"`
	TriggerNodes         int `json:"triggerNodes"`
	ValidConnections     int `json:"validConnections"`
	ExpressionsValidated int `json:"expressionsValidated"`
}

// ValidationResult is the single output of one validation call. Valid is
// always recomputed from Errors after the final pass, never set directly.
type ValidationResult struct {
	Valid       bool                 `json:"valid"`
	Errors      []ValidationIssue    `json:"errors"`
	Warnings    []ValidationIssue    `json:"warnings"`
	Suggestions []string             `json:"suggestions"`
	Statistics  ValidationStatistics `json:"statistics"`
}

// NewValidationResult returns an empty result with allocated slices so the
// JSON form always carries arrays, not nulls.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:      []ValidationIssue{},
		Warnings:    []ValidationIssue{},
		Suggestions: []string{},
	}
}

// AddError appends an error-severity issue.
func (r *ValidationResult) AddError(issue ValidationIssue) {
	issue.Severity = SeverityError
	r.Errors = append(r.Errors, issue)
}

// AddWarning appends a warning-severity issue.
func (r *ValidationResult) AddWarning(issue ValidationIssue) {
	issue.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, issue)
}

// AddSuggestion appends freeform remediation text.
func (r *ValidationResult) AddSuggestion(text string) {
	r.Suggestions = append(r.Suggestions, text)
}

// Recompute derives Valid from the error list.
func (r *ValidationResult) Recompute() {
	r.Valid = len(r.Errors) == 0
}
