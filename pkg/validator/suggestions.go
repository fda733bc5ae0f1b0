package validator

import (
	"encoding/json"
	"strconv"

	"github.com/flowlint/flowlint/pkg/models"
)

// connectionExample renders a minimal valid connection map between two named
// nodes, used as remediation text for no-connection workflows.
func connectionExample(source, target string) string {
	example := models.ConnectionMap{
		source: models.NodeConnections{
			models.PortMain: {{{Node: target, Type: models.PortMain, Index: 0}}},
		},
	}

	data, err := json.Marshal(example)
	if err != nil {
		return "connect your nodes through the connections object, keyed by node name"
	}

	return "connect your nodes, for example: " + string(data)
}

// checklistSteps maps error codes to remediation steps, in fix order.
var checklistSteps = []struct {
	code string
	step string
}{
	{models.CodeStructural, "fix the workflow structure (nodes list and connections object)"},
	{models.CodeIdentity, "make node names and ids unique"},
	{models.CodeResolution, "correct unknown or short-form node types"},
	{models.CodeVersion, "set typeVersion within each node type's supported range"},
	{models.CodeGraph, "repair connection endpoints and remove unintended cycles"},
	{models.CodeMissingRequired, "fill in each node's required parameters"},
	{models.CodeInvalidValue, "replace invalid parameter values with the suggested corrections"},
	{models.CodeInvalidStructure, "flatten mis-nested rule structures"},
}

// synthesize deduplicates freeform suggestions and, when the error count
// warrants it, prepends an ordered remediation checklist.
func (v *Validator) synthesize(result *models.ValidationResult) {
	seen := map[string]bool{}
	deduped := make([]string, 0, len(result.Suggestions))

	for _, text := range result.Suggestions {
		if seen[text] {
			continue
		}

		seen[text] = true
		deduped = append(deduped, text)
	}

	result.Suggestions = deduped

	if len(result.Errors) <= checklistErrorThreshold {
		return
	}

	codes := map[string]bool{}
	for _, issue := range result.Errors {
		codes[issue.Code] = true
	}

	checklist := "fix in this order:"
	step := 0

	for _, entry := range checklistSteps {
		if !codes[entry.code] {
			continue
		}

		step++
		checklist += " " + strconv.Itoa(step) + ") " + entry.step + ";"
	}

	if step > 0 {
		result.Suggestions = append([]string{checklist[:len(checklist)-1]}, result.Suggestions...)
	}
}
