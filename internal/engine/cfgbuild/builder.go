// Package cfgbuild lowers a parsed syntax tree into the compact,
// statement-level Control-Flow Graph the taint engine runs over, and
// computes per-function capability-flow summaries as a byproduct.
package cfgbuild

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

// FunctionSummaries is an alias to the shared model type, kept here so
// existing callers can keep writing cfgbuild.FunctionSummaries.
type FunctionSummaries = model.FunctionSummaries

// Result is the output of Build.
type Result struct {
	Cfg       *model.Cfg
	EntryIdx  int
	Summaries FunctionSummaries
}

type builder struct {
	g          *model.Cfg
	source     []byte
	adapter    lang.Adapter
	fields     lang.FieldNames
	globalExit int
	summaries  FunctionSummaries
}

// Build lowers tree into a Cfg, following the table in the CFG Builder
// component design: one recursive pass dispatching on the abstract Kind of
// each node, threading a predecessor frontier.
func Build(tree *sitter.Tree, source []byte, adapter lang.Adapter) Result {
	b := &builder{
		g:         &model.Cfg{},
		source:    source,
		adapter:   adapter,
		fields:    adapter.Fields(),
		summaries: FunctionSummaries{},
	}
	entry := b.g.AddNode(model.NodeInfo{Kind: model.StmtEntry})
	b.globalExit = b.g.AddNode(model.NodeInfo{Kind: model.StmtExit})

	root := tree.RootNode()
	finalFrontier := b.lower(root, seqFrontier(entry))
	b.connectAll(finalFrontier, b.globalExit)

	return Result{Cfg: b.g, EntryIdx: entry, Summaries: b.summaries}
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(b.source)
}

func (b *builder) span(n *sitter.Node) model.Span {
	return model.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

// push appends a new node and connects every frontier entry to it using
// its own carried edge kind, returning the new node's index. This is the
// "push node; connect predecessors" behavior shared by nearly every
// lowering rule.
func (b *builder) push(kind model.StmtKind, span model.Span, frontier []FE) int {
	idx := b.g.AddNode(model.NodeInfo{Kind: kind, Span: span})
	b.connectAll(frontier, idx)
	return idx
}

func (b *builder) connectAll(frontier []FE, dst int) {
	for _, fe := range frontier {
		b.g.AddEdge(fe.Node, dst, fe.Kind)
	}
}

// lower dispatches on the node's abstract Kind and threads frontier
// through the matching lowering rule, returning the new frontier.
func (b *builder) lower(n *sitter.Node, frontier []FE) []FE {
	if n == nil {
		return frontier
	}
	k := b.adapter.Lookup(n.Type())
	switch {
	case k == lang.KindSourceFile || k == lang.KindBlock:
		return b.lowerFold(n, frontier)
	case k == lang.KindFunction:
		return b.lowerFunction(n, frontier)
	case k == lang.KindIf:
		return b.lowerIf(n, frontier)
	case k == lang.KindInfiniteLoop:
		return b.lowerInfiniteLoop(n, frontier)
	case k == lang.KindWhile || k == lang.KindFor:
		return b.lowerBoundedLoop(n, frontier)
	case k == lang.KindReturn:
		idx := b.push(model.StmtReturn, b.span(n), frontier)
		b.attachDefUse(idx, n)
		return nil
	case k == lang.KindBreak:
		b.push(model.StmtBreak, b.span(n), frontier)
		return nil
	case k == lang.KindContinue:
		b.push(model.StmtContinue, b.span(n), frontier)
		return nil
	case k == lang.KindCallWrapper:
		return b.lowerCallWrapper(n, frontier)
	case k.IsCall():
		idx := b.pushCall(n, frontier)
		return seqFrontier(idx)
	case k == lang.KindTrivia:
		return frontier
	case k == lang.KindAssignment:
		idx := b.push(model.StmtSeq, b.span(n), frontier)
		b.attachDefUse(idx, n)
		b.classifyAssignment(idx, n)
		return seqFrontier(idx)
	default:
		idx := b.push(model.StmtSeq, b.span(n), frontier)
		b.attachDefUse(idx, n)
		return seqFrontier(idx)
	}
}

// lowerFold implements "SourceFile, Block: fold children left-to-right,
// threading the frontier."
func (b *builder) lowerFold(n *sitter.Node, frontier []FE) []FE {
	cur := frontier
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		cur = b.lower(child, cur)
	}
	return cur
}

func (b *builder) childByFieldOrKind(n *sitter.Node, field string, wantKind lang.Kind) *sitter.Node {
	if field != "" {
		if c := n.ChildByFieldName(field); c != nil {
			return c
		}
	}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if b.adapter.Lookup(c.Type()) == wantKind {
			return c
		}
	}
	return nil
}

func (b *builder) funcName(n *sitter.Node) string {
	if f := b.fields.FuncName; f != "" {
		if nameNode := n.ChildByFieldName(f); nameNode != nil {
			return b.text(nameNode)
		}
	}
	return ""
}
