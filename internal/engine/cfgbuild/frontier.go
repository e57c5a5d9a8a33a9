package cfgbuild

import "github.com/morfx-security/govulnscan/internal/engine/model"

// FE ("frontier edge") is one predecessor awaiting a successor, tagged
// with the edge kind that will be used to connect it once the next node
// is pushed. Most frontier entries carry EdgeSeq; If branches carry
// EdgeTrue/EdgeFalse until they reach their join point.
type FE struct {
	Node int
	Kind model.EdgeKind
}

func seqFrontier(idx int) []FE { return []FE{{Node: idx, Kind: model.EdgeSeq}} }
