package suggest

import (
	"errors"
	"testing"
	"time"

	"github.com/flowlint/flowlint/pkg/log"
	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	return registry.NewDefaultRegistry(log.WithModule("test"))
}

func TestFindSimilarNodes_ValidTypeNeedsNoSuggestion(t *testing.T) {
	service := NewNodeTypeService(newTestRegistry(t), log.WithModule("test"))

	suggestions := service.FindSimilarNodes("n8n-nodes-base.webhook", 5)
	assert.Empty(t, suggestions)
}

func TestFindSimilarNodes_MissingPrefix(t *testing.T) {
	service := NewNodeTypeService(newTestRegistry(t), log.WithModule("test"))

	suggestions := service.FindSimilarNodes("HttpRequest", 5)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "n8n-nodes-base.httpRequest", suggestions[0].Value)
	assert.GreaterOrEqual(t, suggestions[0].Confidence, 0.9)
}

func TestFindSimilarNodes_CaseVariant(t *testing.T) {
	service := NewNodeTypeService(newTestRegistry(t), log.WithModule("test"))

	suggestions := service.FindSimilarNodes("n8n-nodes-base.HTTPREQUEST", 5)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "n8n-nodes-base.httpRequest", suggestions[0].Value)
	assert.GreaterOrEqual(t, suggestions[0].Confidence, 0.9)
}

func TestFindSimilarNodes_AIMisrouting(t *testing.T) {
	service := NewNodeTypeService(newTestRegistry(t), log.WithModule("test"))

	suggestions := service.FindSimilarNodes("n8n-nodes-base.openAi", 5)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "@n8n/n8n-nodes-langchain.openAi", suggestions[0].Value)
}

func TestFindSimilarNodes_DeprecatedPrefix(t *testing.T) {
	service := NewNodeTypeService(newTestRegistry(t), log.WithModule("test"))

	suggestions := service.FindSimilarNodes("n8n-nodes-langchain.agent", 5)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "@n8n/n8n-nodes-langchain.agent", suggestions[0].Value)
	assert.GreaterOrEqual(t, suggestions[0].Confidence, 0.9)
}

func TestFindSimilarNodes_ScoredFallback(t *testing.T) {
	service := NewNodeTypeService(newTestRegistry(t), log.WithModule("test"))

	suggestions := service.FindSimilarNodes("n8n-nodes-base.htttpRequest", 5)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "n8n-nodes-base.httpRequest", suggestions[0].Value)
}

func TestFindSimilarNodes_RespectsLimit(t *testing.T) {
	service := NewNodeTypeService(newTestRegistry(t), log.WithModule("test"))

	suggestions := service.FindSimilarNodes("n8n-nodes-base.trigger", 2)
	assert.LessOrEqual(t, len(suggestions), 2)
}

func TestFindSimilarNodes_UnrelatedGarbage(t *testing.T) {
	service := NewNodeTypeService(newTestRegistry(t), log.WithModule("test"))

	suggestions := service.FindSimilarNodes("zzz.qqqqqqqqqq", 5)
	assert.Empty(t, suggestions)
}

func TestTypeCache_StaleOnError(t *testing.T) {
	calls := 0
	fail := false

	cache := newTypeCache(func() ([]models.NodeTypeDescriptor, error) {
		calls++
		if fail {
			return nil, errors.New("store down")
		}

		return []models.NodeTypeDescriptor{{NodeType: "n8n-nodes-base.set"}}, nil
	})

	current := time.Now()
	cache.now = func() time.Time { return current }

	require.Len(t, cache.Get(), 1)
	assert.Equal(t, 1, calls)

	// Within TTL: no reload.
	current = current.Add(time.Minute)
	require.Len(t, cache.Get(), 1)
	assert.Equal(t, 1, calls)

	// Past TTL with a failing store: last good snapshot is kept.
	fail = true
	current = current.Add(DefaultCacheTTL + time.Second)
	require.Len(t, cache.Get(), 1)
	assert.Equal(t, 2, calls)

	// Explicit invalidation forces the next Get to reload.
	fail = false
	cache.Invalidate()
	require.Len(t, cache.Get(), 1)
	assert.Equal(t, 3, calls)
}

func TestResultCache_Eviction(t *testing.T) {
	cache := newResultCache()

	for i := 0; i < resultCacheMax+1; i++ {
		cache.Put(string(rune('a'+i%26))+string(rune('0'+i/26)), []models.Suggestion{})
	}

	assert.Len(t, cache.entries, resultCacheKeep)
	assert.Len(t, cache.order, resultCacheKeep)
}
