package suggest

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/flowlint/flowlint/pkg/similarity"
)

// Scoring weights for node-type candidates, out of 100.
const (
	nameWeight     = 40
	categoryWeight = 20
	packageWeight  = 15
	patternWeight  = 25

	minNodeTypeScore = 50
	shortQueryLength = 6
)

// NodeTypeService proposes likely intended node types for unrecognized
// identifiers.
type NodeTypeService struct {
	registry registry.NodeTypes
	cache    *typeCache
	logger   *slog.Logger
}

// NewNodeTypeService creates a node-type suggestion service backed by the
// given metadata store.
func NewNodeTypeService(reg registry.NodeTypes, logger *slog.Logger) *NodeTypeService {
	return &NodeTypeService{
		registry: reg,
		cache: newTypeCache(func() ([]models.NodeTypeDescriptor, error) {
			return reg.GetAllNodeTypes(), nil
		}),
		logger: logger,
	}
}

// Invalidate drops the cached node-type list.
func (s *NodeTypeService) Invalidate() {
	s.cache.Invalidate()
}

// Refresh forces a reload of the node-type list.
func (s *NodeTypeService) Refresh() error {
	return s.cache.Refresh()
}

// FindSimilarNodes returns up to limit scored corrections for invalidType,
// best first. A type that resolves in the metadata store needs no suggestion
// and yields an empty list.
func (s *NodeTypeService) FindSimilarNodes(invalidType string, limit int) []models.Suggestion {
	if limit <= 0 {
		limit = 5
	}

	if s.registry.GetNode(invalidType) != nil {
		return []models.Suggestion{}
	}

	if curated, ok := s.checkKnownConfusions(invalidType); ok {
		return []models.Suggestion{curated}
	}

	suggestions := s.scoreAllTypes(invalidType)
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	return suggestions
}

// checkKnownConfusions consults the curated mistake tables. A hit is returned
// only when the suggested type actually resolves in the metadata store.
func (s *NodeTypeService) checkKnownConfusions(invalidType string) (models.Suggestion, bool) {
	lower := strings.ToLower(invalidType)

	for _, entry := range nodeTypeConfusions {
		var matched bool

		switch entry.Category {
		case confusionMissingPrefix, confusionAIMisrouting:
			matched = strings.ToLower(entry.Pattern) == lower
		default:
			matched = entry.Pattern == invalidType
		}

		if matched && s.registry.GetNode(entry.Suggested) != nil {
			return models.Suggestion{
				Value:      entry.Suggested,
				Confidence: entry.Confidence,
				Reason:     entry.Reason,
				Category:   string(entry.Category),
			}, true
		}
	}

	for old, replacement := range deprecatedPrefixes {
		if rest, ok := strings.CutPrefix(invalidType, old); ok {
			candidate := replacement + rest
			if s.registry.GetNode(candidate) != nil {
				return models.Suggestion{
					Value:      candidate,
					Confidence: 0.95,
					Reason:     "package was renamed to " + strings.TrimSuffix(replacement, "."),
					Category:   string(confusionDeprecatedPrefix),
				}, true
			}
		}
	}

	// Case-only mistakes in otherwise fully qualified types.
	for _, desc := range s.cache.Get() {
		if strings.EqualFold(desc.NodeType, invalidType) && desc.NodeType != invalidType {
			return models.Suggestion{
				Value:      desc.NodeType,
				Confidence: 0.95,
				Reason:     "node types are case sensitive",
				Category:   "case-variant",
			}, true
		}
	}

	return models.Suggestion{}, false
}

// scoreAllTypes ranks every known node type against the query.
func (s *NodeTypeService) scoreAllTypes(invalidType string) []models.Suggestion {
	query := similarity.Normalize(models.LocalName(invalidType))

	var suggestions []models.Suggestion

	for _, desc := range s.cache.Get() {
		score := scoreNodeType(query, invalidType, &desc)
		if score < minNodeTypeScore {
			continue
		}

		suggestions = append(suggestions, models.Suggestion{
			Value:      desc.NodeType,
			Confidence: float64(score) / 100,
			Reason:     "similar to " + desc.DisplayName,
			Category:   "similarity",
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}

		return suggestions[i].Value < suggestions[j].Value
	})

	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	return suggestions
}

func scoreNodeType(query, rawQuery string, desc *models.NodeTypeDescriptor) int {
	score := int(float64(nameWeight) * nameScore(query, desc))
	score += int(float64(categoryWeight) * categoryScore(query, desc))
	score += int(float64(packageWeight) * packageScore(rawQuery, desc))
	score += int(float64(patternWeight) * patternScore(query, desc))

	return score
}

// nameScore is the best of type-identifier and display-name similarity, with
// a floor boost for short queries contained in the name.
func nameScore(query string, desc *models.NodeTypeDescriptor) float64 {
	local := similarity.Normalize(models.LocalName(desc.NodeType))
	display := similarity.Normalize(desc.DisplayName)

	score := max(similarity.Ratio(query, local), similarity.Ratio(query, display))

	if len(query) >= 3 && len(query) <= shortQueryLength &&
		(strings.Contains(local, query) || strings.Contains(display, query)) {
		score = max(score, 0.7)
	}

	return score
}

func categoryScore(query string, desc *models.NodeTypeDescriptor) float64 {
	if desc.Category == "" {
		return 0
	}

	if strings.Contains(query, similarity.Normalize(desc.Category)) {
		return 1
	}

	for _, keyword := range categoryKeywords[desc.Category] {
		if strings.Contains(query, keyword) {
			return 0.75
		}
	}

	return 0
}

func packageScore(rawQuery string, desc *models.NodeTypeDescriptor) float64 {
	idx := strings.LastIndex(rawQuery, ".")
	if idx <= 0 {
		return 0
	}

	queryPackage := rawQuery[:idx]
	if queryPackage == desc.Package {
		return 1
	}

	// Short namespace form of the same package still signals intent.
	if models.ExpandShortNamespace(queryPackage+".") == desc.Package+"." {
		return 1
	}

	return 0
}

// patternScore rewards substring containment, prefix matches and small edit
// distances between the query and the local type name.
func patternScore(query string, desc *models.NodeTypeDescriptor) float64 {
	local := similarity.Normalize(models.LocalName(desc.NodeType))
	if query == "" || local == "" {
		return 0
	}

	switch {
	case strings.HasPrefix(local, query):
		if len(query) <= shortQueryLength {
			return 1
		}

		return 0.9
	case strings.Contains(local, query) || strings.Contains(query, local):
		return 0.8
	case similarity.Distance(query, local, 2) <= 2:
		return 0.6
	default:
		return 0
	}
}
