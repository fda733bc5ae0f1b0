package validator

import (
	"sort"
	"strings"

	"github.com/flowlint/flowlint/pkg/models"
)

// checkCycles runs a depth-first search with a recursion stack over the main
// and error edges. A back-edge is tolerated only when the cycle passes
// through a loop-construct node; any other cycle is a hard error.
func (v *Validator) checkCycles(workflow *models.Workflow, result *models.ValidationResult) {
	adjacency := buildAdjacency(workflow, models.PortMain, models.PortError)

	const (
		white = iota
		gray
		black
	)

	colors := map[string]int{}
	reported := map[string]bool{}

	var path []string

	var visit func(name string)
	visit = func(name string) {
		colors[name] = gray
		path = append(path, name)

		for _, next := range adjacency[name] {
			switch colors[next] {
			case white:
				visit(next)
			case gray:
				v.reportCycle(workflow, cycleFrom(path, next), reported, result)
			}
		}

		path = path[:len(path)-1]
		colors[name] = black
	}

	// Deterministic traversal order keeps reported cycles stable.
	sources := make([]string, 0, len(adjacency))
	for name := range adjacency {
		sources = append(sources, name)
	}

	sort.Strings(sources)

	for _, name := range sources {
		if colors[name] == white {
			visit(name)
		}
	}
}

// cycleFrom extracts the cycle members from the recursion path, starting at
// the back-edge target.
func cycleFrom(path []string, backEdgeTarget string) []string {
	for i, name := range path {
		if name == backEdgeTarget {
			return append([]string{}, path[i:]...)
		}
	}

	return []string{backEdgeTarget}
}

func (v *Validator) reportCycle(
	workflow *models.Workflow,
	cycle []string,
	reported map[string]bool,
	result *models.ValidationResult,
) {
	for _, name := range cycle {
		node := workflow.NodeByName(name)
		if node != nil && isLoopConstruct(node.Type) {
			return
		}
	}

	// One report per distinct node set, whatever the entry point.
	members := append([]string{}, cycle...)
	sort.Strings(members)

	key := strings.Join(members, "\x00")
	if reported[key] {
		return
	}

	reported[key] = true

	result.AddError(models.ValidationIssue{
		Code:     models.CodeGraph,
		NodeName: cycle[0],
		Message: "workflow contains a cycle: " + strings.Join(append(cycle, cycle[0]), " -> ") +
			"; cycles are only allowed through loop constructs such as splitInBatches",
	})
}

// maxLinearChain is the length above which a straight-line workflow gets a
// readability warning.
const maxLinearChain = 10

// longestChain computes the longest main-edge path starting from nodes with
// no inbound main connection. Memoized; nodes on a cycle contribute zero so
// the computation stays finite on malformed graphs.
func longestChain(workflow *models.Workflow) int {
	adjacency := buildAdjacency(workflow, models.PortMain)
	inbound := inboundCounts(workflow, models.PortMain)

	memo := map[string]int{}
	visiting := map[string]bool{}

	var depth func(name string) int
	depth = func(name string) int {
		if visiting[name] {
			return 0
		}

		if cached, ok := memo[name]; ok {
			return cached
		}

		visiting[name] = true

		best := 0
		for _, next := range adjacency[name] {
			if d := depth(next); d > best {
				best = d
			}
		}

		visiting[name] = false
		memo[name] = best + 1

		return best + 1
	}

	longest := 0

	for _, node := range workflow.Nodes {
		if node.Disabled || inbound[node.Name] > 0 {
			continue
		}

		if d := depth(node.Name); d > longest {
			longest = d
		}
	}

	return longest
}
