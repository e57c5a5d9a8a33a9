package cfgbuild

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

// lowerIf implements: push If node; locate up to two Block children
// (then, else); lower then-branch with [if] as frontier and relabel the
// first then-edge from Seq to True; same for else with False; if no else,
// add a False edge from `if` into the join; return the union of both
// branch frontiers.
func (b *builder) lowerIf(n *sitter.Node, frontier []FE) []FE {
	ifIdx := b.push(model.StmtIf, b.span(n), frontier)
	b.classify(ifIdx, n)

	thenNode := b.childByFieldOrKind(n, b.fields.CondThen, lang.KindBlock)
	thenFrontier := b.lower(thenNode, []FE{{Node: ifIdx, Kind: model.EdgeTrue}})

	result := append([]FE{}, thenFrontier...)

	elseNode := b.ifElseNode(n)
	if elseNode != nil {
		elseFrontier := b.lower(elseNode, []FE{{Node: ifIdx, Kind: model.EdgeFalse}})
		result = append(result, elseFrontier...)
	} else {
		result = append(result, FE{Node: ifIdx, Kind: model.EdgeFalse})
	}
	return result
}

// ifElseNode finds the else-branch block, if any. Prefers the language's
// named else field; falls back to the second Block-kinded named child.
func (b *builder) ifElseNode(n *sitter.Node) *sitter.Node {
	if f := b.fields.CondElse; f != "" {
		if c := n.ChildByFieldName(f); c != nil {
			return c
		}
	}
	seen := 0
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if b.adapter.Lookup(c.Type()) == lang.KindBlock {
			seen++
			if seen == 2 {
				return c
			}
		}
	}
	return nil
}

// classify applies the Grammar Adapter's label rules to an If node's own
// text, per the open question: the whole conditional's head-normalized
// text is matched, which is sufficient for call-like conditions but may
// miss labels hidden inside composite predicates. This is a deliberate,
// documented rule-design choice, not silently extended.
func (b *builder) classify(idx int, n *sitter.Node) {
	if lbl := lang.Classify(b.adapter, b.text(n)); lbl != nil {
		b.g.Nodes[idx].Label = lbl
	}
}

// classifyAssignment classifies an assignment by its right-hand side alone,
// since the left-hand side's variable name would otherwise sit between the
// head-normalized text and the matcher, breaking the segment-boundary
// check every other label rule relies on.
func (b *builder) classifyAssignment(idx int, n *sitter.Node) {
	if _, rhs, ok := b.assignParts(n); ok && rhs != nil {
		if lbl := lang.Classify(b.adapter, b.text(rhs)); lbl != nil {
			b.g.Nodes[idx].Label = lbl
		}
	}
}
