package validator

import (
	"encoding/json"
	"fmt"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// workflowSchemaJSON declares the top-level workflow shape: nodes must be a
// sequence, connections a non-array object. Everything finer-grained is
// checked by the Go-level passes.
const workflowSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["nodes", "connections"],
	"properties": {
		"name": {"type": "string"},
		"active": {"type": "boolean"},
		"nodes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "type"],
				"properties": {
					"name": {"type": "string"},
					"type": {"type": "string"},
					"typeVersion": {"type": "number"},
					"parameters": {"type": "object"}
				}
			}
		},
		"connections": {"type": "object"},
		"settings": {"type": "object"},
		"meta": {"type": "object"}
	}
}`

var workflowSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(workflowSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("workflow schema does not compile: %v", err))
	}

	return schema
}()

// ParseWorkflow decodes raw workflow JSON after checking it against the
// declared shape schema. Shape violations come back as structural issues
// alongside ErrInvalidShape; undecodable input yields ErrMalformedJSON.
func ParseWorkflow(raw []byte) (*models.Workflow, []models.ValidationIssue, error) {
	shapeResult, err := workflowSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if !shapeResult.Valid() {
		issues := make([]models.ValidationIssue, 0, len(shapeResult.Errors()))
		for _, shapeErr := range shapeResult.Errors() {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Code:     models.CodeStructural,
				Property: shapeErr.Field(),
				Message:  shapeErr.Description(),
			})
		}

		return nil, issues, ErrInvalidShape
	}

	var workflow models.Workflow
	if err := json.Unmarshal(raw, &workflow); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	return &workflow, nil, nil
}

// ValidateJSON is the raw-bytes entry point: shape check, decode, then the
// full validation pipeline. Shape failures are terminal, matching the first
// pass of ValidateWorkflow.
func (v *Validator) ValidateJSON(raw []byte, opts Options) *models.ValidationResult {
	workflow, issues, err := ParseWorkflow(raw)
	if err != nil {
		result := models.NewValidationResult()

		if len(issues) > 0 {
			result.Errors = append(result.Errors, issues...)
		} else {
			result.AddError(models.ValidationIssue{
				Code:    models.CodeStructural,
				Message: err.Error(),
			})
		}

		result.Recompute()

		return result
	}

	return v.ValidateWorkflow(workflow, opts)
}
