package validator

import (
	"testing"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConnections_IDUsedAsName(t *testing.T) {
	v, _ := newTestValidator(t)

	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("trigger-id", "Manual Trigger", "n8n-nodes-base.manualTrigger", 1),
			testNode("set-id", "Set", "n8n-nodes-base.set", 3.4),
		},
		Connections: models.ConnectionMap{},
	}
	connect(workflow.Connections, "Manual Trigger", "set-id")

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	assert.False(t, result.Valid)

	var idIssue *models.ValidationIssue

	for i := range result.Errors {
		if result.Errors[i].Code == models.CodeGraph {
			idIssue = &result.Errors[i]
		}
	}

	require.NotNil(t, idIssue)
	assert.Contains(t, idIssue.Message, "node id")
	require.NotNil(t, idIssue.Fix)
	assert.Equal(t, "Set", idIssue.Fix.Value)
}

func TestCheckConnections_UnknownTarget(t *testing.T) {
	v, _ := newTestValidator(t)

	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("1", "Manual Trigger", "n8n-nodes-base.manualTrigger", 1),
			testNode("2", "Set", "n8n-nodes-base.set", 3.4),
		},
		Connections: models.ConnectionMap{},
	}
	connect(workflow.Connections, "Manual Trigger", "Ghost")

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	assert.False(t, result.Valid)
	assert.True(t, hasErrorContaining(result, "does not match any node"))
}

func TestCheckConnections_NegativeIndex(t *testing.T) {
	v, _ := newTestValidator(t)

	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("1", "Manual Trigger", "n8n-nodes-base.manualTrigger", 1),
			testNode("2", "Set", "n8n-nodes-base.set", 3.4),
		},
		Connections: models.ConnectionMap{
			"Manual Trigger": {
				models.PortMain: {{{Node: "Set", Type: models.PortMain, Index: -1}}},
			},
		},
	}

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	assert.False(t, result.Valid)
	assert.True(t, hasErrorContaining(result, "negative index"))
}

func TestCheckConnections_DisabledTargetIsWarning(t *testing.T) {
	v, _ := newTestValidator(t)

	disabled := testNode("2", "Set", "n8n-nodes-base.set", 3.4)
	disabled.Disabled = true

	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("1", "Webhook", models.NodeTypeWebhook, 2),
			disabled,
		},
		Connections: models.ConnectionMap{},
	}
	connect(workflow.Connections, "Webhook", "Set")

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	assert.True(t, result.Valid)
	assert.True(t, hasWarningContaining(result, "disabled node"))
}

func TestCheckConnections_CommunityToolTargetIsWarning(t *testing.T) {
	v, reg := newTestValidator(t)

	reg.Register(&models.NodeTypeDescriptor{
		NodeType:    "custom-tools.search",
		DisplayName: "Search Tool",
		Package:     "custom-tools",
		IsVersioned: true,
		Version:     1,
	})

	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("1", "Chat Trigger", "@n8n/n8n-nodes-langchain.chatTrigger", 1.1),
			testNode("2", "Agent", "@n8n/n8n-nodes-langchain.agent", 1.9),
			testNode("3", "Search", "custom-tools.search", 1),
		},
		Connections: models.ConnectionMap{
			"Chat Trigger": {
				models.PortMain: {{{Node: "Agent", Type: models.PortMain, Index: 0}}},
			},
			"Agent": {
				models.PortAITool: {{{Node: "Search", Type: models.PortAITool, Index: 0}}},
			},
		},
	}

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	assert.True(t, hasWarningContaining(result, "community node type"))
}

func TestCheckLoopWiring_SwappedOutputs(t *testing.T) {
	v, _ := newTestValidator(t)

	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("1", "Manual Trigger", "n8n-nodes-base.manualTrigger", 1),
			testNode("2", "Loop", models.NodeTypeSplitInBatches, 3),
			testNode("3", "Process Item", "n8n-nodes-base.noOp", 1),
			testNode("4", "Send Summary", "n8n-nodes-base.noOp", 1),
		},
		Connections: models.ConnectionMap{
			"Manual Trigger": {
				models.PortMain: {{{Node: "Loop", Type: models.PortMain, Index: 0}}},
			},
			// Slot 0 (done) feeds the in-loop step, slot 1 (loop) the summary:
			// the classic swap.
			"Loop": {
				models.PortMain: {
					{{Node: "Process Item", Type: models.PortMain, Index: 0}},
					{{Node: "Send Summary", Type: models.PortMain, Index: 0}},
				},
			},
			"Process Item": {
				models.PortMain: {{{Node: "Loop", Type: models.PortMain, Index: 0}}},
			},
		},
	}

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	assert.True(t, hasWarningContaining(result, "look swapped"))
	assert.True(t, hasWarningContaining(result, "post-loop step"))
}

func TestReaches_DepthCap(t *testing.T) {
	adjacency := map[string][]string{}
	for i := 0; i < 30; i++ {
		adjacency[nodeName(i)] = []string{nodeName(i + 1)}
	}

	assert.True(t, reaches(adjacency, nodeName(0), nodeName(10), maxLoopSearchDepth))
	assert.False(t, reaches(adjacency, nodeName(0), nodeName(25), maxLoopSearchDepth))
}

func nodeName(i int) string {
	return string(rune('a'+i%26)) + string(rune('0'+i/26))
}
