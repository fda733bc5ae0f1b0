// Package validator checks a whole workflow object: shape, identity,
// node-type resolution and versions, per-node configuration, connection
// integrity, cycles, and best-practice patterns. It is the primary entry
// point of the validation engine.
package validator

import (
	"log/slog"

	"github.com/flowlint/flowlint/pkg/expression"
	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/nodeconfig"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/flowlint/flowlint/pkg/suggest"
)

const (
	// maxTypeSuggestions caps corrections attached to an unknown-type error.
	maxTypeSuggestions = 3
	// checklistErrorThreshold is the error count above which a remediation
	// checklist is synthesized.
	checklistErrorThreshold = 3
	// Sane ranges for the node retry settings.
	maxRetryTries  = 5
	maxRetryWaitMS = 5000
)

// Options selects which validation passes run and under which profile.
type Options struct {
	ValidateNodes       bool
	ValidateConnections bool
	ValidateExpressions bool
	Profile             nodeconfig.Profile
}

// DefaultOptions runs every pass under the default profile.
func DefaultOptions() Options {
	return Options{
		ValidateNodes:       true,
		ValidateConnections: true,
		ValidateExpressions: true,
		Profile:             nodeconfig.DefaultProfile,
	}
}

// Validator validates workflows against the node-type metadata store. It
// holds no per-call state; one instance serves concurrent calls.
type Validator struct {
	registry registry.NodeTypes
	config   *nodeconfig.Validator
	types    *suggest.NodeTypeService
	expr     expression.Checker
	logger   *slog.Logger
}

// New creates a workflow validator. expr may be nil when expression checking
// is handled elsewhere.
func New(
	reg registry.NodeTypes,
	config *nodeconfig.Validator,
	types *suggest.NodeTypeService,
	expr expression.Checker,
	logger *slog.Logger,
) *Validator {
	return &Validator{
		registry: reg,
		config:   config,
		types:    types,
		expr:     expr,
		logger:   logger.With("module", "validator"),
	}
}

// ValidateWorkflow runs all requested passes over one workflow and returns a
// single result. It never panics across the API boundary: a recovered panic
// becomes one generic error on the result.
func (v *Validator) ValidateWorkflow(workflow *models.Workflow, opts Options) (result *models.ValidationResult) {
	result = models.NewValidationResult()

	defer func() {
		if r := recover(); r != nil {
			v.logger.Error("validation panicked", "panic", r)
			result.AddError(models.ValidationIssue{
				Code:    models.CodeInternal,
				Message: "validation failed unexpectedly; the workflow could not be fully checked",
			})
			result.Recompute()
		}
	}()

	if !nodeconfig.ValidProfile(opts.Profile) {
		opts.Profile = nodeconfig.DefaultProfile
	}

	if workflow == nil {
		result.AddError(models.ValidationIssue{
			Code:    models.CodeStructural,
			Message: ErrNilWorkflow.Error(),
		})
		result.Recompute()

		return result
	}

	if !v.checkShape(workflow, result) {
		result.Recompute()

		return result
	}

	v.collectStatistics(workflow, result)
	v.checkIdentity(workflow, result)

	if opts.ValidateNodes {
		for _, node := range workflow.Nodes {
			if node.Disabled || node.Type == models.NodeTypeStickyNote {
				continue
			}

			v.checkNode(node, opts.Profile, result)
		}
	}

	if opts.ValidateConnections {
		v.checkConnections(workflow, result)
		v.checkLoopWiring(workflow, result)
		v.checkCycles(workflow, result)
	}

	v.checkPatterns(workflow, result)

	if opts.ValidateExpressions {
		v.checkExpressions(workflow, result)
	}

	v.synthesize(result)
	result.Recompute()

	return result
}

// checkShape is the terminal first pass: a workflow without a nodes list or a
// connections object cannot be validated further. Returns false to stop.
func (v *Validator) checkShape(workflow *models.Workflow, result *models.ValidationResult) bool {
	if workflow.Nodes == nil {
		result.AddError(models.ValidationIssue{
			Code:    models.CodeStructural,
			Message: "workflow has no nodes list",
		})

		return false
	}

	if workflow.Connections == nil {
		result.AddError(models.ValidationIssue{
			Code:    models.CodeStructural,
			Message: "workflow has no connections object",
		})

		return false
	}

	if len(workflow.Nodes) == 0 {
		result.AddWarning(models.ValidationIssue{
			Code:    models.CodeStructural,
			Message: "workflow has no nodes",
		})

		return true
	}

	enabled := enabledNodes(workflow)

	// Disabled nodes still count toward the workflow's size here: a two-node
	// workflow with one node switched off is not a single-node workflow.
	switch {
	case len(workflow.Nodes) == 1 && len(enabled) == 1:
		node := enabled[0]
		if isWebhookTrigger(node.Type) {
			if len(workflow.Connections[node.Name]) == 0 {
				result.AddWarning(models.ValidationIssue{
					Code:     models.CodeStructural,
					NodeID:   node.ID,
					NodeName: node.Name,
					Message:  "webhook trigger has no downstream connections; requests are received but nothing processes them",
				})
			}
		} else {
			result.AddError(models.ValidationIssue{
				Code:     models.CodeStructural,
				NodeID:   node.ID,
				NodeName: node.Name,
				Message:  "single-node workflow cannot run on its own; add at least one more connected node",
			})
		}
	case len(workflow.Nodes) >= 2 && len(enabled) >= 1 && len(workflow.Connections) == 0:
		result.AddError(models.ValidationIssue{
			Code:    models.CodeStructural,
			Message: "workflow has multiple nodes but no connections between them",
		})
		result.AddSuggestion(connectionExample(workflow.Nodes[0].Name, workflow.Nodes[1].Name))
	}

	return true
}

// checkIdentity flags duplicate node names and ids, one error per duplicate.
func (v *Validator) checkIdentity(workflow *models.Workflow, result *models.ValidationResult) {
	seenNames := map[string]bool{}
	seenIDs := map[string]bool{}

	for _, node := range workflow.Nodes {
		if node.Name != "" {
			if seenNames[node.Name] {
				result.AddError(models.ValidationIssue{
					Code:     models.CodeIdentity,
					NodeID:   node.ID,
					NodeName: node.Name,
					Message:  "duplicate node name; names must be unique within a workflow",
				})
			}

			seenNames[node.Name] = true
		}

		if node.ID != "" {
			if seenIDs[node.ID] {
				result.AddError(models.ValidationIssue{
					Code:     models.CodeIdentity,
					NodeID:   node.ID,
					NodeName: node.Name,
					Message:  "duplicate node id",
				})
			}

			seenIDs[node.ID] = true
		}
	}
}

func (v *Validator) collectStatistics(workflow *models.Workflow, result *models.ValidationResult) {
	stats := &result.Statistics
	stats.TotalNodes = len(workflow.Nodes)

	for _, node := range workflow.Nodes {
		if node.Disabled || node.Type == models.NodeTypeStickyNote {
			continue
		}

		stats.EnabledNodes++

		if v.isTriggerNode(node) {
			stats.TriggerNodes++
		}
	}
}

// resolveType tries the literal type, then namespace-normalized variants,
// against the metadata store.
func (v *Validator) resolveType(nodeType string) *models.NodeTypeDescriptor {
	if desc := v.registry.GetNode(nodeType); desc != nil {
		return desc
	}

	if expanded := models.ExpandShortNamespace(nodeType); expanded != nodeType {
		if desc := v.registry.GetNode(expanded); desc != nil {
			return desc
		}
	}

	return nil
}

func (v *Validator) isTriggerNode(node *models.Node) bool {
	if desc := v.resolveType(node.Type); desc != nil {
		return desc.IsTrigger
	}

	return isWebhookTrigger(node.Type) ||
		matchesKeyword(models.LocalName(node.Type), []string{"trigger"})
}

// enabledNodes returns the nodes that participate in validation: not
// disabled and not annotation-only.
func enabledNodes(workflow *models.Workflow) []*models.Node {
	nodes := make([]*models.Node, 0, len(workflow.Nodes))

	for _, node := range workflow.Nodes {
		if node.Disabled || node.Type == models.NodeTypeStickyNote {
			continue
		}

		nodes = append(nodes, node)
	}

	return nodes
}
