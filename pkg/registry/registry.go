// Package registry provides the node-type metadata store consumed by the
// validation engine.
package registry

import (
	"log/slog"
	"sync"

	"github.com/flowlint/flowlint/pkg/models"
)

// NodeTypes is the metadata-store interface. GetNode must accept the
// package-qualified identifier form used inside workflows and returns nil for
// unknown types.
type NodeTypes interface {
	GetNode(nodeType string) *models.NodeTypeDescriptor
	GetAllNodeTypes() []models.NodeTypeDescriptor
}

// Registry is an in-memory NodeTypes implementation. It is safe for
// concurrent readers.
type Registry struct {
	logger *slog.Logger

	mu          sync.RWMutex
	descriptors map[string]*models.NodeTypeDescriptor
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:      logger,
		descriptors: make(map[string]*models.NodeTypeDescriptor),
	}
}

// Register adds or replaces a node-type descriptor.
func (r *Registry) Register(desc *models.NodeTypeDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.descriptors[desc.NodeType] = desc
}

// GetNode returns the descriptor for the given package-qualified type, or nil.
func (r *Registry) GetNode(nodeType string) *models.NodeTypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.descriptors[nodeType]
	if !ok {
		return nil
	}

	// Copy so callers cannot mutate the stored descriptor.
	clone := *desc

	return &clone
}

// GetAllNodeTypes returns every registered descriptor.
func (r *Registry) GetAllNodeTypes() []models.NodeTypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.NodeTypeDescriptor, 0, len(r.descriptors))
	for _, desc := range r.descriptors {
		all = append(all, *desc)
	}

	return all
}
