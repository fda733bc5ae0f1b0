// Package models defines the core domain models for workflow validation
package models

// Workflow is the unit of validation: a named graph of typed nodes joined
// by name-keyed connections.
type Workflow struct {
	Name        string         `json:"name,omitempty"`
	Nodes       []*Node        `json:"nodes"`
	Connections ConnectionMap  `json:"connections"`
	Settings    map[string]any `json:"settings,omitempty"`
	Active      bool           `json:"active,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// NodeByName returns the node with the given name, or nil.
func (w *Workflow) NodeByName(name string) *Node {
	for _, node := range w.Nodes {
		if node.Name == name {
			return node
		}
	}

	return nil
}

// NodeByID returns the node with the given id, or nil.
func (w *Workflow) NodeByID(id string) *Node {
	for _, node := range w.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}

// ConnectionMap maps a source node name to its per-output-port connections.
// Each port ("main", "error", "ai_tool", ...) holds an ordered list of output
// slots, each slot an ordered list of targets.
type ConnectionMap map[string]NodeConnections

// NodeConnections groups a single node's outgoing connections by port name.
type NodeConnections map[string][][]Connection

// Connection is one directed edge: it references the target node by name,
// never by id.
type Connection struct {
	Node  string `json:"node"`
	Type  string `json:"type"`
	Index int    `json:"index"`
}

// Well-known connection port names.
const (
	PortMain   = "main"
	PortError  = "error"
	PortAITool = "ai_tool"
)
