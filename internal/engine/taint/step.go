package taint

import "github.com/morfx-security/govulnscan/internal/engine/model"

// finding pairs a diagnostic with the CFG node its span should be
// anchored at: the nearest Source node reachable backward from the sink
// that produced it, not the sink itself.
type finding struct {
	diag   model.Diagnostic
	anchor int
}

// step applies one CFG node's transfer function to the incoming
// environment, returning the outgoing environment and any findings the
// node itself produces (a Sink node consuming a still-tainted value).
func step(cfg *model.Cfg, idx int, in env, summaries model.FunctionSummaries) (env, []finding) {
	node := cfg.Nodes[idx]
	out := in.clone()

	label := effectiveLabel(node, summaries)

	usedCaps := model.Cap(0)
	for _, u := range node.Uses {
		usedCaps = usedCaps.Union(in[u].caps)
	}

	var found []finding

	if label != nil {
		switch label.Kind {
		case model.LabelSource:
			if node.Defines != nil {
				prev := out[*node.Defines]
				out[*node.Defines] = taintValue{caps: prev.caps.Union(label.Caps), origin: idx}
			}
			return out, nil
		case model.LabelSanitizer:
			if node.Defines != nil {
				remaining := usedCaps.Without(label.Caps)
				out[*node.Defines] = taintValue{caps: remaining, origin: originOf(node, in, remaining, idx)}
			}
			return out, nil
		case model.LabelSink:
			if usedCaps.Intersect(label.Caps) != 0 {
				found = append(found, finding{
					diag: model.Diagnostic{
						ID:       model.DiagTaintUnsanitisedFlow,
						Severity: model.SeverityHigh,
					},
					anchor: originOf(node, in, label.Caps, idx),
				})
			}
			return out, found
		}
	}

	if node.Defines != nil {
		out[*node.Defines] = taintValue{caps: usedCaps, origin: originOf(node, in, usedCaps, idx)}
	}
	return out, found
}

// originOf reconstructs the nearest Source node behind this node's use of
// caps: the first used variable that still owes one of caps, traced back
// to wherever its own value was produced. Falls back to this node's own
// index when no use carries the relevant capability -- e.g. a capability
// introduced by a cross-function summary with no local Source node to
// point at.
func originOf(node model.NodeInfo, in env, caps model.Cap, fallback int) int {
	for _, u := range node.Uses {
		if v, ok := in[u]; ok && v.caps.Intersect(caps) != 0 {
			return v.origin
		}
	}
	return fallback
}

// effectiveLabel prefers the node's own label (set by a built-in rule
// match during lowering). A call with no rule match falls back to the
// callee's own function summary, so taint propagates across an
// in-repository call boundary without needing an interprocedural CFG.
func effectiveLabel(node model.NodeInfo, summaries model.FunctionSummaries) *model.DataLabel {
	if node.Label != nil {
		return node.Label
	}
	if node.Kind == model.StmtCall && node.Callee != nil {
		if summary, ok := summaries[*node.Callee]; ok {
			return summary.SummaryLabel
		}
	}
	return nil
}
