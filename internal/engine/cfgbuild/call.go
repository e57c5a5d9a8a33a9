package cfgbuild

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

// pushCall lowers a call-kind node directly: push a Call node, classify it
// against the adapter's label rules using its canonical callee text, and
// attach def/use (a call is a use-only expression unless it is itself the
// RHS of an assignment, which the caller handles separately).
func (b *builder) pushCall(n *sitter.Node, frontier []FE) int {
	idx := b.push(model.StmtCall, b.span(n), frontier)
	callee := b.calleeText(n)
	b.g.Nodes[idx].Callee = &callee
	if lbl := lang.Classify(b.adapter, callee); lbl != nil {
		b.g.Nodes[idx].Label = lbl
	}
	b.g.Nodes[idx].Uses = b.collectIdentifiers(n)
	return idx
}

// calleeText canonicalizes a call's target: plain function/macro calls use
// their named field directly; receiver.method-style calls join the two
// fields with "::" so label rules can match either the bare method name
// (suffix match) or the fully-qualified form.
func (b *builder) calleeText(n *sitter.Node) string {
	if b.fields.CallRecv != "" && b.fields.CallMethod != "" {
		recv := n.ChildByFieldName(b.fields.CallRecv)
		method := n.ChildByFieldName(b.fields.CallMethod)
		if recv != nil && method != nil {
			return b.text(recv) + "::" + b.text(method)
		}
		if method != nil {
			return b.text(method)
		}
	}
	if f := b.fields.CallFn; f != "" {
		if fn := n.ChildByFieldName(f); fn != nil {
			return b.text(fn)
		}
	}
	return b.text(n)
}

// lowerCallWrapper implements the CallWrapper rule: an expression
// statement wrapping either a nested control construct (rare, but some
// grammars let an if/loop appear where a statement is expected) or a bare
// call. It recurses into the first meaningful child it finds, rather than
// pushing its own node, so the callee's own span and canonical name drive
// the pushed node.
func (b *builder) lowerCallWrapper(n *sitter.Node, frontier []FE) []FE {
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		k := b.adapter.Lookup(c.Type())
		switch {
		case k == lang.KindIf, k == lang.KindInfiniteLoop, k == lang.KindWhile, k == lang.KindFor,
			k == lang.KindReturn, k == lang.KindBreak, k == lang.KindContinue:
			return b.lower(c, frontier)
		case k.IsCall():
			idx := b.pushCall(c, frontier)
			return seqFrontier(idx)
		}
	}
	idx := b.push(model.StmtSeq, b.span(n), frontier)
	b.attachDefUse(idx, n)
	return seqFrontier(idx)
}
