// Package nodeconfig validates a single node's parameters against its
// declared property schema, aware of the current resource/operation
// selection and of per-family rules.
package nodeconfig

import (
	"log/slog"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/flowlint/flowlint/pkg/suggest"
)

// Mode selects which properties participate in validation.
type Mode string

const (
	// ModeMinimal checks only properties that are both required and visible.
	ModeMinimal Mode = "minimal"
	// ModeOperation checks properties visible under the current
	// resource/operation/action selection.
	ModeOperation Mode = "operation"
	// ModeFull checks every declared property.
	ModeFull Mode = "full"
)

// Profile is the post-processing policy applied to findings.
type Profile string

const (
	ProfileMinimal    Profile = "minimal"
	ProfileRuntime    Profile = "runtime"
	ProfileAIFriendly Profile = "ai-friendly"
	ProfileStrict     Profile = "strict"
)

// DefaultProfile is used when the caller does not choose one.
const DefaultProfile = ProfileAIFriendly

// ValidProfile reports whether p is one of the closed profile set.
func ValidProfile(p Profile) bool {
	switch p {
	case ProfileMinimal, ProfileRuntime, ProfileAIFriendly, ProfileStrict:
		return true
	default:
		return false
	}
}

// Issue is one finding about a single property or the configuration shape.
type Issue struct {
	Type     string `json:"type"`
	Property string `json:"property,omitempty"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`

	// Suggestion carries the top scored correction when a suggestion
	// service recognised the invalid value.
	Suggestion *models.Suggestion `json:"suggestion,omitempty"`
}

// Result is the enriched outcome of validating one node's configuration.
// Valid is recomputed after all enrichment passes, never cached from the
// base pass.
type Result struct {
	Valid             bool     `json:"valid"`
	Errors            []Issue  `json:"errors"`
	Warnings          []Issue  `json:"warnings"`
	Suggestions       []string `json:"suggestions"`
	VisibleProperties []string `json:"visibleProperties,omitempty"`

	// AutoFix holds a mechanical re-shape of the configuration when the
	// structural checker could derive one.
	AutoFix map[string]any `json:"autofix,omitempty"`
}

func (r *Result) addError(issue Issue) {
	r.Errors = append(r.Errors, issue)
}

func (r *Result) addWarning(issue Issue) {
	r.Warnings = append(r.Warnings, issue)
}

// Validator validates node configurations. It consults the suggestion
// services when a resource or operation value is not in the schema's
// enumerated set.
type Validator struct {
	registry   registry.NodeTypes
	resources  *suggest.ResourceService
	operations *suggest.OperationService
	logger     *slog.Logger
}

// NewValidator creates a configuration validator.
func NewValidator(
	reg registry.NodeTypes,
	resources *suggest.ResourceService,
	operations *suggest.OperationService,
	logger *slog.Logger,
) *Validator {
	return &Validator{
		registry:   reg,
		resources:  resources,
		operations: operations,
		logger:     logger,
	}
}

// Validate checks config against the property schema under the given mode,
// then enriches the result with family rules, the fixed-collection
// structural checker, and the profile policy.
func (v *Validator) Validate(
	nodeType string,
	config map[string]any,
	properties []models.PropertyDescriptor,
	mode Mode,
	profile Profile,
) *Result {
	if config == nil {
		config = map[string]any{}
	}

	if !ValidProfile(profile) {
		profile = DefaultProfile
	}

	result := &Result{
		Errors:      []Issue{},
		Warnings:    []Issue{},
		Suggestions: []string{},
	}

	filtered := filterProperties(properties, config, mode)
	for i := range filtered {
		result.VisibleProperties = append(result.VisibleProperties, filtered[i].Name)
	}

	v.validateBase(nodeType, config, filtered, result)

	applyFamilyRules(nodeType, config, result)
	checkFixedCollectionStructure(nodeType, config, result)

	applyProfile(profile, nodeType, config, result)

	result.Errors = dedupeIssues(result.Errors)
	result.Warnings = dedupeIssues(result.Warnings)
	result.Valid = len(result.Errors) == 0

	return result
}

// dedupeIssues collapses findings that collide on (property, type), keeping
// the more detailed message.
func dedupeIssues(issues []Issue) []Issue {
	type key struct{ property, issueType string }

	seen := map[key]int{}
	deduped := make([]Issue, 0, len(issues))

	for _, issue := range issues {
		k := key{issue.Property, issue.Type}

		idx, exists := seen[k]
		if !exists {
			seen[k] = len(deduped)
			deduped = append(deduped, issue)

			continue
		}

		if len(issue.Message) > len(deduped[idx].Message) {
			kept := deduped[idx]
			if issue.Suggestion == nil {
				issue.Suggestion = kept.Suggestion
			}

			deduped[idx] = issue
		}
	}

	return deduped
}
