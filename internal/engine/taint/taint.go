// Package taint runs the capability-lattice dataflow over a built Control
// Flow Graph: it propagates which escaping obligations a variable's value
// still carries, and reports an unsanitized flow whenever a Sink node
// consumes a value that still owes the capability the sink requires.
package taint

import (
	"sort"
	"strconv"

	"github.com/morfx-security/govulnscan/internal/engine/model"
)

// taintValue is the dataflow fact for one live variable: the capabilities
// its current value still owes an escape for, and the CFG node its taint
// can be traced back to -- the node a downstream sink's diagnostic should
// be anchored at, rather than the sink itself.
type taintValue struct {
	caps   model.Cap
	origin int
}

// env is the dataflow state at one program point: for every live variable,
// its current taintValue.
type env map[string]taintValue

func (e env) clone() env {
	out := make(env, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// join is the lattice join: union the capability bits of every variable
// across both environments, keeping whichever side's origin actually
// carries taint when the two disagree.
func join(a, b env) env {
	out := make(env, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		existing, ok := out[k]
		if !ok {
			out[k] = v
			continue
		}
		merged := taintValue{caps: existing.caps.Union(v.caps)}
		switch {
		case existing.caps != 0:
			merged.origin = existing.origin
		case v.caps != 0:
			merged.origin = v.origin
		default:
			merged.origin = existing.origin
		}
		out[k] = merged
	}
	return out
}

// canonicalHash renders an env deterministically so the worklist can
// detect a fixpoint without repeated map comparisons. Only capability
// bits participate in the fixpoint test: origin refinement after a node's
// caps have stabilized doesn't change which findings fire, only where
// they're anchored, and every reachable node is still visited at least
// once before its first hash is recorded.
func canonicalHash(e env) string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]byte, 0, len(keys)*8)
	for _, k := range keys {
		out = append(out, k...)
		out = append(out, '=')
		out = append(out, byte(e[k].caps), ';')
	}
	return string(out)
}

// Run executes the dataflow to fixpoint starting from entryIdx and returns
// every unsanitized-flow diagnostic found, sorted and deduplicated by the
// caller. summaries lets a call node whose callee matches a known
// user-defined function adopt that function's net capability-flow label
// even when no built-in rule classifies the call text directly.
func Run(cfg *model.Cfg, entryIdx int, summaries model.FunctionSummaries, path string, source []byte) []model.Diagnostic {
	li := model.NewLineIndex(source)

	outEnv := make([]env, len(cfg.Nodes))
	hashes := make([]string, len(cfg.Nodes))

	queue := []int{entryIdx}
	queued := make([]bool, len(cfg.Nodes))
	queued[entryIdx] = true

	var diags []model.Diagnostic
	seenDiag := map[string]bool{}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		queued[cur] = false

		in := mergeIn(cfg, cur, outEnv)
		out, found := step(cfg, cur, in, summaries)
		for _, f := range found {
			d := f.diag
			d.Path = path
			d.Line, d.Column = li.Position(cfg.Nodes[f.anchor].Span.Start)
			key := canonicalDiagKey(d)
			if !seenDiag[key] {
				seenDiag[key] = true
				diags = append(diags, d)
			}
		}

		h := canonicalHash(out)
		if h == hashes[cur] && outEnv[cur] != nil {
			continue
		}
		hashes[cur] = h
		outEnv[cur] = out

		for _, next := range cfg.Successors(cur) {
			if !queued[next] {
				queued[next] = true
				queue = append(queue, next)
			}
		}
	}

	return diags
}

func mergeIn(cfg *model.Cfg, idx int, outEnv []env) env {
	preds := cfg.Predecessors(idx)
	if len(preds) == 0 {
		return env{}
	}
	merged := env{}
	for _, p := range preds {
		if outEnv[p] == nil {
			continue
		}
		merged = join(merged, outEnv[p])
	}
	return merged
}

func canonicalDiagKey(d model.Diagnostic) string {
	return d.ID + "|" + d.Path + "|" + strconv.Itoa(d.Line) + "|" + strconv.Itoa(d.Column)
}
