package validator

import (
	"fmt"

	"github.com/flowlint/flowlint/pkg/models"
)

// maxLoopSearchDepth bounds the reachability search used by the loop-wiring
// heuristic so malformed graphs cannot cause runaway traversal.
const maxLoopSearchDepth = 20

// checkConnections validates every edge of the connection map: sources and
// targets must resolve to node names, indices must be non-negative, and a
// few softer conditions surface as warnings.
func (v *Validator) checkConnections(workflow *models.Workflow, result *models.ValidationResult) {
	for sourceName, ports := range workflow.Connections {
		if workflow.NodeByName(sourceName) == nil {
			result.AddError(v.danglingEndpoint(workflow, sourceName, "source"))

			continue
		}

		for portName, slots := range ports {
			for _, slot := range slots {
				for _, conn := range slot {
					v.checkConnection(workflow, sourceName, portName, conn, result)
				}
			}
		}
	}
}

func (v *Validator) checkConnection(
	workflow *models.Workflow,
	sourceName, portName string,
	conn models.Connection,
	result *models.ValidationResult,
) {
	target := workflow.NodeByName(conn.Node)
	if target == nil {
		result.AddError(v.danglingEndpoint(workflow, conn.Node, "target"))

		return
	}

	if conn.Index < 0 {
		result.AddError(models.ValidationIssue{
			Code:     models.CodeGraph,
			NodeName: sourceName,
			Message: fmt.Sprintf("connection from %q to %q has negative index %d",
				sourceName, conn.Node, conn.Index),
		})

		return
	}

	result.Statistics.ValidConnections++

	if target.Disabled {
		result.AddWarning(models.ValidationIssue{
			Code:     models.CodeGraph,
			NodeName: sourceName,
			Message:  fmt.Sprintf("connection from %q targets disabled node %q", sourceName, conn.Node),
		})
	}

	if portName == models.PortAITool && !models.IsBuiltinNodeType(target.Type) {
		result.AddWarning(models.ValidationIssue{
			Code:     models.CodePolicy,
			NodeName: target.Name,
			Message: fmt.Sprintf(
				"ai_tool connection targets community node type %q; verify the node is usable as a tool", target.Type),
		})
	}
}

// danglingEndpoint builds the error for a connection endpoint that matches
// no node name. When the endpoint matches a node id instead, the id-vs-name
// confusion is called out explicitly.
func (v *Validator) danglingEndpoint(workflow *models.Workflow, endpoint, role string) models.ValidationIssue {
	if byID := workflow.NodeByID(endpoint); byID != nil {
		return models.ValidationIssue{
			Code:    models.CodeGraph,
			NodeID:  byID.ID,
			Message: fmt.Sprintf("connection %s %q is a node id; connections reference nodes by name, use %q", role, endpoint, byID.Name),
			Fix: &models.Suggestion{
				Value:      byID.Name,
				Confidence: 1,
				Reason:     "connections reference nodes by name, never by id",
				Category:   "id-as-name",
			},
		}
	}

	return models.ValidationIssue{
		Code:    models.CodeGraph,
		Message: fmt.Sprintf("connection %s %q does not match any node", role, endpoint),
	}
}

// checkLoopWiring inspects batch-splitting nodes for the classic swapped
// outputs mistake: slot 0 is the "done" output, slot 1 the "loop" output,
// and wiring the in-loop processing step to "done" silently skips the loop.
// Both directions are heuristics and surface as warnings only.
func (v *Validator) checkLoopWiring(workflow *models.Workflow, result *models.ValidationResult) {
	adjacency := buildAdjacency(workflow, models.PortMain)

	for _, node := range workflow.Nodes {
		if node.Disabled || !isLoopConstruct(node.Type) {
			continue
		}

		slots := workflow.Connections[node.Name][models.PortMain]
		if len(slots) == 0 {
			continue
		}

		for _, conn := range slots[0] {
			target := workflow.NodeByName(conn.Node)
			if target == nil {
				continue
			}

			if looksLikeInLoopStep(target) && reaches(adjacency, target.Name, node.Name, maxLoopSearchDepth) {
				result.AddWarning(models.ValidationIssue{
					Code:     models.CodeGraph,
					NodeID:   node.ID,
					NodeName: node.Name,
					Message: fmt.Sprintf(
						"%q is wired to the done output of %q but loops back to it; the done and loop outputs look swapped",
						target.Name, node.Name),
					Details: map[string]any{"suspectedSwap": true},
				})
			}
		}

		if len(slots) < 2 {
			continue
		}

		for _, conn := range slots[1] {
			target := workflow.NodeByName(conn.Node)
			if target == nil {
				continue
			}

			if looksLikeSummaryStep(target) && !reaches(adjacency, target.Name, node.Name, maxLoopSearchDepth) {
				result.AddWarning(models.ValidationIssue{
					Code:     models.CodeGraph,
					NodeID:   node.ID,
					NodeName: node.Name,
					Message: fmt.Sprintf(
						"%q on the loop output of %q looks like a post-loop step; check the output wiring",
						target.Name, node.Name),
				})
			}
		}
	}
}

func looksLikeInLoopStep(node *models.Node) bool {
	return matchesKeyword(node.Name, inLoopNameKeywords) ||
		matchesKeyword(models.LocalName(node.Type), inLoopNameKeywords)
}

func looksLikeSummaryStep(node *models.Node) bool {
	return matchesKeyword(node.Name, summaryNameKeywords)
}

// buildAdjacency flattens the connection map into name -> target names over
// the given ports.
func buildAdjacency(workflow *models.Workflow, ports ...string) map[string][]string {
	adjacency := map[string][]string{}

	for sourceName, nodePorts := range workflow.Connections {
		for _, port := range ports {
			for _, slot := range nodePorts[port] {
				for _, conn := range slot {
					adjacency[sourceName] = append(adjacency[sourceName], conn.Node)
				}
			}
		}
	}

	return adjacency
}

// inboundCounts counts incoming edges per node name over the given ports.
func inboundCounts(workflow *models.Workflow, ports ...string) map[string]int {
	counts := map[string]int{}

	for _, nodePorts := range workflow.Connections {
		for _, port := range ports {
			for _, slot := range nodePorts[port] {
				for _, conn := range slot {
					counts[conn.Node]++
				}
			}
		}
	}

	return counts
}

// reaches reports whether "to" is reachable from "from", depth-capped and
// cycle-safe. Iterative with an explicit stack.
func reaches(adjacency map[string][]string, from, to string, maxDepth int) bool {
	type frame struct {
		name  string
		depth int
	}

	visited := map[string]bool{}
	stack := []frame{{from, 0}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.name == to {
			return true
		}

		if current.depth >= maxDepth || visited[current.name] {
			continue
		}

		visited[current.name] = true

		for _, next := range adjacency[current.name] {
			stack = append(stack, frame{next, current.depth + 1})
		}
	}

	return false
}
