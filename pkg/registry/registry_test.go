package registry

import (
	"testing"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlint/flowlint/pkg/log"
)

func TestRegistry_GetNode(t *testing.T) {
	r := NewRegistry(log.WithModule("test"))
	r.Register(&models.NodeTypeDescriptor{
		NodeType:    "n8n-nodes-base.webhook",
		DisplayName: "Webhook",
		Package:     "n8n-nodes-base",
		IsVersioned: true,
		Version:     2,
	})

	desc := r.GetNode("n8n-nodes-base.webhook")
	require.NotNil(t, desc)
	assert.Equal(t, "Webhook", desc.DisplayName)
	assert.InDelta(t, 2.0, desc.Version, 0.0001)

	// Lookup is by the exact package-qualified form.
	assert.Nil(t, r.GetNode("nodes-base.webhook"))
	assert.Nil(t, r.GetNode("unknown"))
}

func TestRegistry_GetNodeReturnsCopy(t *testing.T) {
	r := NewRegistry(log.WithModule("test"))
	r.Register(&models.NodeTypeDescriptor{NodeType: "n8n-nodes-base.set", Version: 3})

	first := r.GetNode("n8n-nodes-base.set")
	first.Version = 99

	second := r.GetNode("n8n-nodes-base.set")
	assert.InDelta(t, 3.0, second.Version, 0.0001)
}

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry(log.WithModule("test"))

	all := r.GetAllNodeTypes()
	assert.NotEmpty(t, all)

	// The canonical HTTP request node must resolve with its properties.
	desc := r.GetNode("n8n-nodes-base.httpRequest")
	require.NotNil(t, desc)
	assert.True(t, desc.IsVersioned)

	var urlProp *models.PropertyDescriptor

	for i := range desc.Properties {
		if desc.Properties[i].Name == "url" {
			urlProp = &desc.Properties[i]
		}
	}

	require.NotNil(t, urlProp)
	assert.True(t, urlProp.Required)
}

func TestBuiltinDescriptorsHaveUniqueTypes(t *testing.T) {
	seen := map[string]bool{}
	for _, desc := range builtinNodeTypes {
		assert.False(t, seen[desc.NodeType], "duplicate descriptor %s", desc.NodeType)
		seen[desc.NodeType] = true
	}
}
