package cfgbuild

import (
	"fmt"

	"github.com/morfx-security/govulnscan/internal/engine/model"
)

// CheckInvariants validates the structural invariants the CFG Builder's
// output must satisfy. It is not called on the hot path; callers (mainly
// tests) invoke it to catch a lowering-rule bug before it reaches the
// taint engine.
func CheckInvariants(g *model.Cfg, entryIdx int) error {
	if err := checkEveryNonEntryHasPredecessor(g, entryIdx); err != nil {
		return err
	}
	if err := checkReachableFromEntry(g, entryIdx); err != nil {
		return err
	}
	if err := checkNoDanglingEdges(g); err != nil {
		return err
	}
	return nil
}

// checkEveryNonEntryHasPredecessor is invariant I1.
func checkEveryNonEntryHasPredecessor(g *model.Cfg, entryIdx int) error {
	for i, node := range g.Nodes {
		if i == entryIdx {
			continue
		}
		if node.Kind == model.StmtEntry {
			continue
		}
		if len(g.Predecessors(i)) == 0 {
			return fmt.Errorf("cfgbuild: node %d (%s) has no predecessor", i, node.Kind)
		}
	}
	return nil
}

// checkReachableFromEntry walks forward from entryIdx and reports any node
// never reached, which would indicate a lowering rule dropped a frontier.
func checkReachableFromEntry(g *model.Cfg, entryIdx int) error {
	seen := make([]bool, len(g.Nodes))
	queue := []int{entryIdx}
	seen[entryIdx] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.Successors(cur) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	for i, ok := range seen {
		if !ok {
			return fmt.Errorf("cfgbuild: node %d (%s) unreachable from entry", i, g.Nodes[i].Kind)
		}
	}
	return nil
}

// checkNoDanglingEdges verifies every edge endpoint indexes a real node.
func checkNoDanglingEdges(g *model.Cfg) error {
	n := len(g.Nodes)
	for _, e := range g.Edges {
		if e.Src < 0 || e.Src >= n || e.Dst < 0 || e.Dst >= n {
			return fmt.Errorf("cfgbuild: edge %+v references out-of-range node (have %d nodes)", e, n)
		}
	}
	return nil
}
