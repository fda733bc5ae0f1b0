package models

// FixType identifies one auto-fix family.
type FixType string

const (
	FixTypeExpressionFormat      FixType = "expression-format"
	FixTypeTypeVersionCorrection FixType = "typeversion-correction"
	FixTypeErrorOutputConfig     FixType = "error-output-config"
	FixTypeNodeTypeCorrection    FixType = "node-type-correction"
)

// FixConfidence grades how safe a fix is to apply unattended.
type FixConfidence string

const (
	FixConfidenceHigh   FixConfidence = "high"
	FixConfidenceMedium FixConfidence = "medium"
	FixConfidenceLow    FixConfidence = "low"
)

// Rank orders confidences for threshold filtering; higher is safer.
func (c FixConfidence) Rank() int {
	switch c {
	case FixConfidenceHigh:
		return 3
	case FixConfidenceMedium:
		return 2
	case FixConfidenceLow:
		return 1
	default:
		return 0
	}
}

// FixOperation describes one proposed edit in human-consumable terms. The
// applicable form of the same edit lives in the paired UpdateNodeOperation.
type FixOperation struct {
	Node        string        `json:"node"`
	Field       string        `json:"field"`
	Type        FixType       `json:"type"`
	Before      any           `json:"before"`
	After       any           `json:"after"`
	Confidence  FixConfidence `json:"confidence"`
	Description string        `json:"description"`
}

// UpdateNodeOperation is one generic node edit, consumable by a separate
// diff-application layer. All fixes touching the same node are merged into a
// single operation.
type UpdateNodeOperation struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"` // always "updateNode"
	NodeName string         `json:"nodeName"`
	NodeID   string         `json:"nodeId,omitempty"`
	Changes  map[string]any `json:"changes"`
}

// FixStatistics summarises a generated fix set.
type FixStatistics struct {
	Total        int                   `json:"total"`
	ByType       map[FixType]int       `json:"byType"`
	ByConfidence map[FixConfidence]int `json:"byConfidence"`
}

// AutoFixResult is the output of one fix-generation call.
type AutoFixResult struct {
	Operations []UpdateNodeOperation `json:"operations"`
	Fixes      []FixOperation        `json:"fixes"`
	Summary    string                `json:"summary"`
	Stats      FixStatistics         `json:"stats"`
}
