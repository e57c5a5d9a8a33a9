package cfgbuild

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/morfx-security/govulnscan/internal/engine/model"
)

// attachDefUse fills in NodeInfo.Defines/Uses for the node already pushed
// at idx, dispatching on the two structural shapes the adapter's field
// table can describe: an assignment (AssignLHS/AssignRHS) or a
// declaration-with-initializer (DeclPattern/DeclValue). Anything else
// falls back to treating the whole subtree as a use-only expression,
// which is always sound for a dataflow join even if imprecise.
func (b *builder) attachDefUse(idx int, n *sitter.Node) {
	if lhs, rhs, ok := b.assignParts(n); ok {
		def := b.lastIdentifier(lhs)
		uses := b.collectIdentifiers(rhs)
		if def != "" {
			b.g.Nodes[idx].Defines = &def
		}
		b.g.Nodes[idx].Uses = uses
		return
	}

	b.g.Nodes[idx].Uses = b.collectIdentifiers(n)
}

func (b *builder) assignParts(n *sitter.Node) (lhs, rhs *sitter.Node, ok bool) {
	if f := b.fields.AssignLHS; f != "" {
		if l := n.ChildByFieldName(f); l != nil {
			if f2 := b.fields.AssignRHS; f2 != "" {
				if r := n.ChildByFieldName(f2); r != nil {
					return l, r, true
				}
			}
		}
	}
	if f := b.fields.DeclPattern; f != "" {
		if l := n.ChildByFieldName(f); l != nil {
			if f2 := b.fields.DeclValue; f2 != "" {
				if r := n.ChildByFieldName(f2); r != nil {
					return l, r, true
				}
			}
		}
	}
	return nil, nil, false
}

// lastIdentifier returns the text of the last identifier-shaped leaf under
// n, which for a simple LHS like "x" or "x.y" or "a, b" approximates "the
// variable actually being written to" well enough for summary purposes.
func (b *builder) lastIdentifier(n *sitter.Node) string {
	ids := b.collectIdentifiers(n)
	if len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1]
}

// collectIdentifiers walks the subtree rooted at n and returns the text of
// every leaf whose grammar node type names it as an identifier. This is
// necessarily heuristic across ten different grammars, but "identifier" is
// a near-universal leaf type name in tree-sitter grammars.
func (b *builder) collectIdentifiers(n *sitter.Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	var walk func(*sitter.Node)
	walk = func(cur *sitter.Node) {
		if cur.ChildCount() == 0 && strings.Contains(cur.Type(), "identifier") {
			out = append(out, b.text(cur))
		}
		count := int(cur.NamedChildCount())
		for i := 0; i < count; i++ {
			walk(cur.NamedChild(i))
		}
	}
	walk(n)
	return out
}
