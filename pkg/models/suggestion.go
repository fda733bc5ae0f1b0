package models

// AutoFixableConfidence is the floor above which a suggestion is considered
// deterministic enough to apply without user confirmation.
const AutoFixableConfidence = 0.9

// Suggestion is one scored correction candidate for an invalid identifier or
// value. Confidence lies in [0,1].
type Suggestion struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
	Category   string  `json:"category,omitempty"`
}

// AutoFixable reports whether the suggestion clears the auto-fix floor.
func (s Suggestion) AutoFixable() bool {
	return s.Confidence >= AutoFixableConfidence
}
