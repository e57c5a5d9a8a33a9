package cfgbuild

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
)

// lowerInfiniteLoop implements: push Loop header; lower body with the
// header as frontier; every body-exit gets a Back edge to the header *in
// addition* to keeping its own place in the outgoing frontier, since a
// body that ends in break leaves the loop directly while a body that
// merely falls off the end repeats. This is a deliberate over-approximation:
// break and fall-through are not distinguished here, so the returned
// frontier may carry edges that can never actually be taken post-loop.
func (b *builder) lowerInfiniteLoop(n *sitter.Node, frontier []FE) []FE {
	headerIdx := b.push(model.StmtLoop, b.span(n), frontier)
	b.classify(headerIdx, n)

	body := b.childByFieldOrKind(n, b.fields.LoopBody, lang.KindBlock)
	bodyFrontier := b.lower(body, seqFrontier(headerIdx))

	for _, fe := range bodyFrontier {
		b.g.AddEdge(fe.Node, headerIdx, model.EdgeBack)
	}

	return append(append([]FE{}, bodyFrontier...), FE{Node: headerIdx, Kind: model.EdgeSeq})
}

// lowerBoundedLoop implements the While/For rule: push Loop header; lower
// body with the header as frontier; Back-edge every body-exit to the
// header; unlike the infinite-loop case the loop's own condition check
// governs exit, so the outgoing frontier is the header alone (the
// "condition false" continuation).
func (b *builder) lowerBoundedLoop(n *sitter.Node, frontier []FE) []FE {
	headerIdx := b.push(model.StmtLoop, b.span(n), frontier)
	b.classify(headerIdx, n)

	body := b.childByFieldOrKind(n, b.fields.LoopBody, lang.KindBlock)
	bodyFrontier := b.lower(body, seqFrontier(headerIdx))

	for _, fe := range bodyFrontier {
		b.g.AddEdge(fe.Node, headerIdx, model.EdgeBack)
	}

	return seqFrontier(headerIdx)
}
