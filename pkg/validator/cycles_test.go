package validator

import (
	"fmt"
	"testing"

	"github.com/flowlint/flowlint/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCycles_PlainCycleIsError(t *testing.T) {
	v, _ := newTestValidator(t)

	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("1", "First", "n8n-nodes-base.set", 3.4),
			testNode("2", "Second", "n8n-nodes-base.set", 3.4),
		},
		Connections: models.ConnectionMap{},
	}
	connect(workflow.Connections, "First", "Second")
	connect(workflow.Connections, "Second", "First")

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	assert.False(t, result.Valid)
	assert.True(t, hasErrorContaining(result, "cycle"))
}

func TestCheckCycles_LoopConstructCycleIsTolerated(t *testing.T) {
	v, _ := newTestValidator(t)

	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("1", "Loop", models.NodeTypeSplitInBatches, 3),
			testNode("2", "Next", "n8n-nodes-base.set", 3.4),
		},
		Connections: models.ConnectionMap{},
	}
	connect(workflow.Connections, "Loop", "Next")
	connect(workflow.Connections, "Next", "Loop")

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	assert.True(t, result.Valid)
	assert.False(t, hasErrorContaining(result, "cycle"))
}

func TestCheckCycles_ReportsEachCycleOnce(t *testing.T) {
	v, _ := newTestValidator(t)

	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("1", "First", "n8n-nodes-base.set", 3.4),
			testNode("2", "Second", "n8n-nodes-base.set", 3.4),
			testNode("3", "Third", "n8n-nodes-base.set", 3.4),
		},
		Connections: models.ConnectionMap{},
	}
	connect(workflow.Connections, "First", "Second")
	connect(workflow.Connections, "Second", "Third")
	connect(workflow.Connections, "Third", "First")

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	cycleErrors := 0

	for _, issue := range result.Errors {
		if issue.Code == models.CodeGraph {
			cycleErrors++
		}
	}

	assert.Equal(t, 1, cycleErrors)
}

func TestLongestChain_WarnsAboveLimit(t *testing.T) {
	v, _ := newTestValidator(t)

	workflow := &models.Workflow{
		Nodes:       []*models.Node{testNode("0", "Manual Trigger", "n8n-nodes-base.manualTrigger", 1)},
		Connections: models.ConnectionMap{},
	}

	previous := "Manual Trigger"

	for i := 1; i <= maxLinearChain+1; i++ {
		name := fmt.Sprintf("Step %d", i)
		workflow.Nodes = append(workflow.Nodes, testNode(fmt.Sprintf("%d", i), name, "n8n-nodes-base.noOp", 1))
		connect(workflow.Connections, previous, name)
		previous = name
	}

	result := v.ValidateWorkflow(workflow, DefaultOptions())

	assert.True(t, hasWarningContaining(result, "linear chain"))
}

func TestLongestChain_IgnoresShortChains(t *testing.T) {
	workflow := &models.Workflow{
		Nodes: []*models.Node{
			testNode("1", "A", "n8n-nodes-base.noOp", 1),
			testNode("2", "B", "n8n-nodes-base.noOp", 1),
			testNode("3", "C", "n8n-nodes-base.noOp", 1),
		},
		Connections: models.ConnectionMap{},
	}
	connect(workflow.Connections, "A", "B")
	connect(workflow.Connections, "B", "C")

	require.Equal(t, 3, longestChain(workflow))
}
