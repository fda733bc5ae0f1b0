package suggest

import (
	"log/slog"
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/registry"
)

// OperationService proposes corrections for invalid `operation` values,
// scoped to the current resource when the node type declares one.
type OperationService struct {
	registry registry.NodeTypes
	values   *valueCache
	results  *resultCache
	logger   *slog.Logger
}

// NewOperationService creates an operation suggestion service.
func NewOperationService(reg registry.NodeTypes, logger *slog.Logger) *OperationService {
	s := &OperationService{
		registry: reg,
		results:  newResultCache(),
		logger:   logger,
	}
	s.values = newValueCache(s.loadValidOperations)

	return s
}

// Invalidate drops all cached valid-value lists and results.
func (s *OperationService) Invalidate() {
	s.values.Invalidate()
	s.results.Invalidate()
}

// ValidOperations returns the enumerated operation values for a node type
// under the given resource. Resource may be empty for nodes without one.
func (s *OperationService) ValidOperations(nodeType, resource string) []string {
	return s.values.Get(operationKey(nodeType, resource))
}

// SuggestOperations returns scored corrections for an invalid operation
// value. A value that already matches a valid operation (case-insensitively)
// yields an empty list.
func (s *OperationService) SuggestOperations(nodeType, resource, invalidOperation string) []models.Suggestion {
	valid := s.ValidOperations(nodeType, resource)
	if containsFold(valid, invalidOperation) {
		return []models.Suggestion{}
	}

	cacheKey := "operation|" + operationKey(nodeType, resource) + "|" + invalidOperation
	if cached, ok := s.results.Get(cacheKey); ok {
		return cached
	}

	suggestions := suggestValue(nodeType, invalidOperation, valid, familyOperationPatterns)
	s.results.Put(cacheKey, suggestions)

	return suggestions
}

func operationKey(nodeType, resource string) string {
	return nodeType + "|" + resource
}

// loadValidOperations collects option values from every "operation" property
// whose visibility conditions admit the given resource.
func (s *OperationService) loadValidOperations(key string) []string {
	nodeType, resource, _ := strings.Cut(key, "|")

	desc := s.registry.GetNode(nodeType)
	if desc == nil {
		return nil
	}

	var values []string

	for i := range desc.Properties {
		prop := &desc.Properties[i]
		if prop.Name != "operation" {
			continue
		}

		if !operationAppliesToResource(prop, resource) {
			continue
		}

		values = append(values, prop.OptionValues()...)
	}

	return values
}

func operationAppliesToResource(prop *models.PropertyDescriptor, resource string) bool {
	if prop.DisplayOptions == nil || len(prop.DisplayOptions.Show) == 0 {
		return true
	}

	wanted, constrained := prop.DisplayOptions.Show["resource"]
	if !constrained {
		return true
	}

	if resource == "" {
		// No resource selected: every operation block participates.
		return true
	}

	for _, v := range wanted {
		if str, ok := v.(string); ok && strings.EqualFold(str, resource) {
			return true
		}
	}

	return false
}
