package web

import (
	"encoding/json"

	"github.com/flowlint/flowlint/pkg/autofix"
	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/nodeconfig"
	"github.com/flowlint/flowlint/pkg/validator"
)

// ValidateWorkflowRequest is the body of POST /workflows/validate. The
// workflow travels as raw JSON so shape problems surface as validation
// findings, not as a bind failure.
type ValidateWorkflowRequest struct {
	Workflow json.RawMessage `json:"workflow" validate:"required"`
	Profile  string          `json:"profile,omitempty"  validate:"omitempty,oneof=minimal runtime ai-friendly strict"`

	// Pass toggles; nil means "run the pass".
	ValidateNodes       *bool `json:"validateNodes,omitempty"`
	ValidateConnections *bool `json:"validateConnections,omitempty"`
	ValidateExpressions *bool `json:"validateExpressions,omitempty"`
}

func (r *ValidateWorkflowRequest) options() validator.Options {
	opts := validator.DefaultOptions()

	if r.Profile != "" {
		opts.Profile = nodeconfig.Profile(r.Profile)
	}

	if r.ValidateNodes != nil {
		opts.ValidateNodes = *r.ValidateNodes
	}

	if r.ValidateConnections != nil {
		opts.ValidateConnections = *r.ValidateConnections
	}

	if r.ValidateExpressions != nil {
		opts.ValidateExpressions = *r.ValidateExpressions
	}

	return opts
}

// FixWorkflowRequest is the body of POST /workflows/fix.
type FixWorkflowRequest struct {
	Workflow json.RawMessage `json:"workflow" validate:"required"`

	// ApplyFixes switches from preview (fixes only) to apply mode, which also
	// emits update operations.
	ApplyFixes          bool     `json:"applyFixes"`
	FixTypes            []string `json:"fixTypes,omitempty"            validate:"omitempty,dive,oneof=expression-format typeversion-correction error-output-config node-type-correction"`
	ConfidenceThreshold string   `json:"confidenceThreshold,omitempty" validate:"omitempty,oneof=high medium low"`
	MaxFixes            int      `json:"maxFixes,omitempty"            validate:"omitempty,min=1"`
}

func (r *FixWorkflowRequest) config() autofix.Config {
	cfg := autofix.Config{
		ApplyFixes:          r.ApplyFixes,
		ConfidenceThreshold: models.FixConfidence(r.ConfidenceThreshold),
		MaxFixes:            r.MaxFixes,
	}

	for _, t := range r.FixTypes {
		cfg.FixTypes = append(cfg.FixTypes, models.FixType(t))
	}

	return cfg
}

// FixWorkflowResponse pairs the generated fixes with the validation result
// they were derived from.
type FixWorkflowResponse struct {
	Validation *models.ValidationResult `json:"validation"`
	Fixes      *models.AutoFixResult    `json:"fixes"`
}

// NodeTypeSummary is the list form of a node-type descriptor: identity and
// capability flags without the property schemas.
type NodeTypeSummary struct {
	NodeType    string  `json:"nodeType"`
	DisplayName string  `json:"displayName"`
	Category    string  `json:"category,omitempty"`
	Package     string  `json:"package"`
	Version     float64 `json:"version"`
	IsTrigger   bool    `json:"isTrigger,omitempty"`
	IsAITool    bool    `json:"isAITool,omitempty"`
}

func summarizeNodeType(desc models.NodeTypeDescriptor) NodeTypeSummary {
	return NodeTypeSummary{
		NodeType:    desc.NodeType,
		DisplayName: desc.DisplayName,
		Category:    desc.Category,
		Package:     desc.Package,
		Version:     desc.Version,
		IsTrigger:   desc.IsTrigger,
		IsAITool:    desc.IsAITool,
	}
}
