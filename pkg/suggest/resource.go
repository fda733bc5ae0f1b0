package suggest

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/flowlint/flowlint/pkg/similarity"
)

const (
	maxValueSuggestions = 5
	minValueRatio       = 0.6
)

// ResourceService proposes corrections for invalid `resource` values of an
// otherwise-recognized node type.
type ResourceService struct {
	registry registry.NodeTypes
	values   *valueCache
	results  *resultCache
	logger   *slog.Logger
}

// NewResourceService creates a resource suggestion service.
func NewResourceService(reg registry.NodeTypes, logger *slog.Logger) *ResourceService {
	s := &ResourceService{
		registry: reg,
		results:  newResultCache(),
		logger:   logger,
	}
	s.values = newValueCache(s.loadValidResources)

	return s
}

// Invalidate drops all cached valid-value lists and results.
func (s *ResourceService) Invalidate() {
	s.values.Invalidate()
	s.results.Invalidate()
}

// ValidResources returns the enumerated resource values for a node type.
func (s *ResourceService) ValidResources(nodeType string) []string {
	return s.values.Get(nodeType)
}

// SuggestResources returns scored corrections for an invalid resource value.
// A value that already matches a valid resource (case-insensitively) yields
// an empty list.
func (s *ResourceService) SuggestResources(nodeType, invalidResource string) []models.Suggestion {
	valid := s.values.Get(nodeType)
	if containsFold(valid, invalidResource) {
		return []models.Suggestion{}
	}

	cacheKey := "resource|" + nodeType + "|" + invalidResource
	if cached, ok := s.results.Get(cacheKey); ok {
		return cached
	}

	suggestions := suggestValue(nodeType, invalidResource, valid, familyResourcePatterns)
	s.results.Put(cacheKey, suggestions)

	return suggestions
}

func (s *ResourceService) loadValidResources(nodeType string) []string {
	desc := s.registry.GetNode(nodeType)
	if desc == nil {
		return nil
	}

	for i := range desc.Properties {
		if desc.Properties[i].Name == "resource" {
			return desc.Properties[i].OptionValues()
		}
	}

	return nil
}

// suggestValue is the scoring shape shared by the resource and operation
// services: family pattern table, then generic table, then singular/plural,
// then edit distance over the valid set.
func suggestValue(nodeType, invalid string, valid []string, families []familyPatterns) []models.Suggestion {
	byValue := map[string]models.Suggestion{}
	lower := strings.ToLower(invalid)

	record := func(candidate models.Suggestion) {
		if !containsFold(valid, candidate.Value) {
			return
		}

		if existing, ok := byValue[candidate.Value]; !ok || candidate.Confidence > existing.Confidence {
			byValue[candidate.Value] = candidate
		}
	}

	for _, family := range families {
		if !strings.Contains(nodeType, family.TypeContains) {
			continue
		}

		if corrected, ok := family.Patterns[lower]; ok {
			record(models.Suggestion{
				Value:      corrected,
				Confidence: 0.9,
				Reason:     "common mistake for this node",
				Category:   "pattern",
			})
		}
	}

	if corrected, ok := genericValuePatterns[lower]; ok {
		record(models.Suggestion{
			Value:      corrected,
			Confidence: 0.8,
			Reason:     "common mistake",
			Category:   "pattern",
		})
	}

	if singular := Singularize(lower); singular != lower {
		record(models.Suggestion{
			Value:      matchFold(valid, singular),
			Confidence: 0.85,
			Reason:     "singular form of " + invalid,
			Category:   "plural",
		})
	}

	if plural := Pluralize(lower); plural != lower {
		record(models.Suggestion{
			Value:      matchFold(valid, plural),
			Confidence: 0.85,
			Reason:     "plural form of " + invalid,
			Category:   "plural",
		})
	}

	for _, value := range valid {
		ratio := similarity.Ratio(invalid, value)
		if ratio >= minValueRatio {
			record(models.Suggestion{
				Value:      value,
				Confidence: ratio * 0.9,
				Reason:     "similar to valid value " + value,
				Category:   "similarity",
			})
		}
	}

	suggestions := make([]models.Suggestion, 0, len(byValue))
	for _, s := range byValue {
		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}

		return suggestions[i].Value < suggestions[j].Value
	})

	if len(suggestions) > maxValueSuggestions {
		suggestions = suggestions[:maxValueSuggestions]
	}

	return suggestions
}

func containsFold(values []string, needle string) bool {
	for _, v := range values {
		if strings.EqualFold(v, needle) {
			return true
		}
	}

	return false
}

// matchFold returns the canonical casing of needle from values, or needle
// itself when absent (record drops it in that case).
func matchFold(values []string, needle string) string {
	for _, v := range values {
		if strings.EqualFold(v, needle) {
			return v
		}
	}

	return needle
}
