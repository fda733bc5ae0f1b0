package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flowlint/flowlint/pkg/log"
	"github.com/flowlint/flowlint/pkg/models"
	"github.com/flowlint/flowlint/pkg/registry"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp() *fiber.App {
	logger := log.WithModule("test")
	server := NewServer(logger, registry.NewDefaultRegistry(logger))

	return server.App()
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()

	err := resp.Body.Close()
	if err != nil {
		t.Logf("Failed to close response body: %v", err)
	}
}

func TestAPI_RootEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Flowlint API", string(body))
}

func TestAPI_Liveness(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_HealthCheck(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any

	err = json.NewDecoder(resp.Body).Decode(&health)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health["status"])
}

func TestAPI_ValidateWorkflow_Valid(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/workflows/validate", `{
		"workflow": {
			"nodes": [
				{"id": "1", "name": "Webhook", "type": "n8n-nodes-base.webhook",
				 "typeVersion": 2, "parameters": {}}
			],
			"connections": {}
		}
	}`)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.ValidationResult

	err := json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.Warnings, 1)
}

func TestAPI_ValidateWorkflow_InvalidWorkflow(t *testing.T) {
	app := setupTestApp()

	// Short namespace plus a dangling connection target.
	resp := postJSON(t, app, "/workflows/validate", `{
		"workflow": {
			"nodes": [
				{"id": "1", "name": "Webhook", "type": "nodes-base.webhook",
				 "typeVersion": 2, "parameters": {}}
			],
			"connections": {
				"Webhook": {"main": [[{"node": "Ghost", "type": "main", "index": 0}]]}
			}
		}
	}`)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.ValidationResult

	err := json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

func TestAPI_ValidateWorkflow_MissingWorkflow(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/workflows/validate", `{"profile": "strict"}`)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ValidateWorkflow_UnknownProfile(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/workflows/validate", `{
		"workflow": {"nodes": [], "connections": {}},
		"profile": "paranoid"
	}`)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ValidateWorkflow_MalformedBody(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/workflows/validate", `{"workflow": `)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_FixWorkflow_Preview(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/workflows/fix", `{
		"workflow": {
			"nodes": [
				{"id": "1", "name": "Webhook", "type": "n8n-nodes-base.webhook",
				 "typeVersion": 2, "parameters": {}},
				{"id": "2", "name": "Fetch", "type": "n8n-nodes-base.httpRequest",
				 "typeVersion": 4.2,
				 "parameters": {"url": "{{ $json.url }}", "method": "GET"}}
			],
			"connections": {
				"Webhook": {"main": [[{"node": "Fetch", "type": "main", "index": 0}]]}
			}
		}
	}`)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out FixWorkflowResponse

	err := json.NewDecoder(resp.Body).Decode(&out)
	require.NoError(t, err)
	require.NotNil(t, out.Fixes)

	require.Len(t, out.Fixes.Fixes, 1)
	assert.Equal(t, models.FixTypeExpressionFormat, out.Fixes.Fixes[0].Type)
	assert.Equal(t, "={{ $json.url }}", out.Fixes.Fixes[0].After)

	// Preview mode: no update operations.
	assert.Empty(t, out.Fixes.Operations)
}

func TestAPI_FixWorkflow_Apply(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/workflows/fix", `{
		"workflow": {
			"nodes": [
				{"id": "1", "name": "Webhook", "type": "n8n-nodes-base.webhook",
				 "typeVersion": 2, "parameters": {}},
				{"id": "2", "name": "Fetch", "type": "n8n-nodes-base.httpRequest",
				 "typeVersion": 4.2,
				 "parameters": {"url": "{{ $json.url }}", "method": "GET"}}
			],
			"connections": {
				"Webhook": {"main": [[{"node": "Fetch", "type": "main", "index": 0}]]}
			}
		},
		"applyFixes": true
	}`)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out FixWorkflowResponse

	err := json.NewDecoder(resp.Body).Decode(&out)
	require.NoError(t, err)
	require.NotNil(t, out.Fixes)

	require.Len(t, out.Fixes.Operations, 1)
	assert.Equal(t, "updateNode", out.Fixes.Operations[0].Type)
	assert.Equal(t, "Fetch", out.Fixes.Operations[0].NodeName)
	assert.Equal(t, "={{ $json.url }}", out.Fixes.Operations[0].Changes["parameters.url"])
}

func TestAPI_FixWorkflow_InvalidShape(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/workflows/fix", `{"workflow": {"nodes": []}}`)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var problem map[string]any

	err := json.NewDecoder(resp.Body).Decode(&problem)
	require.NoError(t, err)
	assert.Equal(t, "validation_error", problem["type"])
}

func TestAPI_FixWorkflow_UnknownFixType(t *testing.T) {
	app := setupTestApp()

	resp := postJSON(t, app, "/workflows/fix", `{
		"workflow": {"nodes": [], "connections": {}},
		"fixTypes": ["rewrite-everything"]
	}`)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_GetNodeTypes(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodGet, "/node-types", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		NodeTypes  []NodeTypeSummary `json:"nodeTypes"`
		TotalCount int               `json:"total_count"`
	}

	err = json.NewDecoder(resp.Body).Decode(&listing)
	require.NoError(t, err)
	assert.NotEmpty(t, listing.NodeTypes)
	assert.Equal(t, len(listing.NodeTypes), listing.TotalCount)

	// Sorted by identifier.
	for i := 1; i < len(listing.NodeTypes); i++ {
		assert.LessOrEqual(t, listing.NodeTypes[i-1].NodeType, listing.NodeTypes[i].NodeType)
	}
}

func TestAPI_GetNodeTypes_TriggerFilter(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodGet, "/node-types?trigger=true", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		NodeTypes []NodeTypeSummary `json:"nodeTypes"`
	}

	err = json.NewDecoder(resp.Body).Decode(&listing)
	require.NoError(t, err)
	require.NotEmpty(t, listing.NodeTypes)

	for _, summary := range listing.NodeTypes {
		assert.True(t, summary.IsTrigger, summary.NodeType)
	}
}

func TestAPI_GetNodeType(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodGet, "/node-types/n8n-nodes-base.webhook", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var desc models.NodeTypeDescriptor

	err = json.NewDecoder(resp.Body).Decode(&desc)
	require.NoError(t, err)
	assert.Equal(t, "n8n-nodes-base.webhook", desc.NodeType)
	assert.True(t, desc.IsTrigger)
}

func TestAPI_GetNodeType_LangchainIdentifier(t *testing.T) {
	app := setupTestApp()

	// The langchain package prefix contains a slash; the route is a wildcard.
	req := httptest.NewRequest(http.MethodGet, "/node-types/@n8n/n8n-nodes-langchain.agent", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var desc models.NodeTypeDescriptor

	err = json.NewDecoder(resp.Body).Decode(&desc)
	require.NoError(t, err)
	assert.Equal(t, "@n8n/n8n-nodes-langchain.agent", desc.NodeType)
}

func TestAPI_GetNodeType_NotFound(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodGet, "/node-types/n8n-nodes-base.doesNotExist", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_CORS_Headers(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest(http.MethodOptions, "/workflows/validate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := app.Test(req)
	require.NoError(t, err)

	defer closeBody(t, resp)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
