// Package autofix turns validation findings into safe, non-conflicting node
// edits. Each supported fix family scans the relevant findings; all edits to
// the same node are merged into one update operation.
package autofix

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/flowlint/flowlint/pkg/expression"
	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/google/uuid"
)

// Config controls which fixes are generated.
type Config struct {
	// ApplyFixes emits apply-ready update operations alongside the fix
	// descriptions. When false the result is a preview: fixes only.
	ApplyFixes bool
	// FixTypes restricts generation to the listed families. Empty means all.
	FixTypes []models.FixType
	// ConfidenceThreshold drops fixes below the given confidence. Zero value
	// keeps everything.
	ConfidenceThreshold models.FixConfidence
	// MaxFixes caps the number of fixes, best confidence first. Zero means
	// unlimited.
	MaxFixes int
}

// Fixer generates fixes from validation results. Stateless between calls.
type Fixer struct {
	registry registry.NodeTypes
	logger   *slog.Logger
}

// New creates a fixer backed by the given metadata store.
func New(reg registry.NodeTypes, logger *slog.Logger) *Fixer {
	return &Fixer{
		registry: reg,
		logger:   logger.With("module", "autofix"),
	}
}

// GenerateFixes scans the validation result and the expression issues for
// correctable findings and returns the filtered, merged fix set.
func (f *Fixer) GenerateFixes(
	workflow *models.Workflow,
	result *models.ValidationResult,
	expressionIssues []expression.Issue,
	cfg Config,
) *models.AutoFixResult {
	fixes := f.collectFixes(workflow, result, expressionIssues)

	fixes = filterByType(fixes, cfg.FixTypes)
	fixes = filterByConfidence(fixes, cfg.ConfidenceThreshold)
	fixes = dedupeFixes(fixes)

	// Best confidence first, then stable by node and field, so the cap keeps
	// the safest edits.
	sort.SliceStable(fixes, func(i, j int) bool {
		if fixes[i].Confidence.Rank() != fixes[j].Confidence.Rank() {
			return fixes[i].Confidence.Rank() > fixes[j].Confidence.Rank()
		}

		if fixes[i].Node != fixes[j].Node {
			return fixes[i].Node < fixes[j].Node
		}

		return fixes[i].Field < fixes[j].Field
	})

	if cfg.MaxFixes > 0 && len(fixes) > cfg.MaxFixes {
		fixes = fixes[:cfg.MaxFixes]
	}

	out := &models.AutoFixResult{
		Operations: []models.UpdateNodeOperation{},
		Fixes:      fixes,
		Stats:      summarizeStats(fixes),
	}

	if cfg.ApplyFixes {
		out.Operations = mergeOperations(workflow, fixes)
	}

	out.Summary = summarize(out.Stats)

	if len(fixes) > 0 {
		f.logger.Debug("generated fixes", "count", len(fixes), "operations", len(out.Operations))
	}

	return out
}

func filterByType(fixes []models.FixOperation, types []models.FixType) []models.FixOperation {
	if len(types) == 0 {
		return fixes
	}

	allowed := map[models.FixType]bool{}
	for _, t := range types {
		allowed[t] = true
	}

	kept := make([]models.FixOperation, 0, len(fixes))

	for _, fix := range fixes {
		if allowed[fix.Type] {
			kept = append(kept, fix)
		}
	}

	return kept
}

func filterByConfidence(fixes []models.FixOperation, threshold models.FixConfidence) []models.FixOperation {
	floor := threshold.Rank()
	if floor == 0 {
		return fixes
	}

	kept := make([]models.FixOperation, 0, len(fixes))

	for _, fix := range fixes {
		if fix.Confidence.Rank() >= floor {
			kept = append(kept, fix)
		}
	}

	return kept
}

// dedupeFixes keeps one fix per (node, field), preferring the higher
// confidence.
func dedupeFixes(fixes []models.FixOperation) []models.FixOperation {
	type key struct{ node, field string }

	seen := map[key]int{}
	deduped := make([]models.FixOperation, 0, len(fixes))

	for _, fix := range fixes {
		k := key{fix.Node, fix.Field}

		idx, exists := seen[k]
		if !exists {
			seen[k] = len(deduped)
			deduped = append(deduped, fix)

			continue
		}

		if fix.Confidence.Rank() > deduped[idx].Confidence.Rank() {
			deduped[idx] = fix
		}
	}

	return deduped
}

// mergeOperations folds all fixes touching the same node into one update
// operation so no node receives conflicting edits.
func mergeOperations(workflow *models.Workflow, fixes []models.FixOperation) []models.UpdateNodeOperation {
	byNode := map[string]*models.UpdateNodeOperation{}

	var order []string

	for _, fix := range fixes {
		op, ok := byNode[fix.Node]
		if !ok {
			op = &models.UpdateNodeOperation{
				ID:       uuid.NewString(),
				Type:     "updateNode",
				NodeName: fix.Node,
				Changes:  map[string]any{},
			}

			if node := workflow.NodeByName(fix.Node); node != nil {
				op.NodeID = node.ID
			}

			byNode[fix.Node] = op
			order = append(order, fix.Node)
		}

		if _, taken := op.Changes[fix.Field]; !taken {
			op.Changes[fix.Field] = fix.After
		}
	}

	operations := make([]models.UpdateNodeOperation, 0, len(order))
	for _, name := range order {
		operations = append(operations, *byNode[name])
	}

	return operations
}

func summarizeStats(fixes []models.FixOperation) models.FixStatistics {
	stats := models.FixStatistics{
		Total:        len(fixes),
		ByType:       map[models.FixType]int{},
		ByConfidence: map[models.FixConfidence]int{},
	}

	for _, fix := range fixes {
		stats.ByType[fix.Type]++
		stats.ByConfidence[fix.Confidence]++
	}

	return stats
}

func summarize(stats models.FixStatistics) string {
	if stats.Total == 0 {
		return "no fixes available"
	}

	types := make([]string, 0, len(stats.ByType))
	for fixType := range stats.ByType {
		types = append(types, string(fixType))
	}

	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("%d %s", stats.ByType[models.FixType(t)], t))
	}

	return fmt.Sprintf("%d fixes: %s", stats.Total, strings.Join(parts, ", "))
}
