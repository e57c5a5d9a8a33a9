package model

// StmtKind is the closed set of statement-level node kinds the CFG builder
// ever emits.
type StmtKind uint8

const (
	StmtEntry StmtKind = iota
	StmtExit
	StmtSeq
	StmtIf
	StmtLoop
	StmtBreak
	StmtContinue
	StmtReturn
	StmtCall
)

func (k StmtKind) String() string {
	switch k {
	case StmtEntry:
		return "Entry"
	case StmtExit:
		return "Exit"
	case StmtSeq:
		return "Seq"
	case StmtIf:
		return "If"
	case StmtLoop:
		return "Loop"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	case StmtReturn:
		return "Return"
	case StmtCall:
		return "Call"
	default:
		return "Unknown"
	}
}

// IsTerminator reports whether control never falls through this node.
func (k StmtKind) IsTerminator() bool {
	switch k {
	case StmtReturn, StmtBreak, StmtContinue:
		return true
	default:
		return false
	}
}

// EdgeKind is the closed set of CFG edge kinds.
type EdgeKind uint8

const (
	EdgeSeq EdgeKind = iota
	EdgeTrue
	EdgeFalse
	EdgeBack
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeSeq:
		return "Seq"
	case EdgeTrue:
		return "True"
	case EdgeFalse:
		return "False"
	case EdgeBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// Span is a byte range into the original source file.
type Span struct {
	Start int
	End   int
}

// NodeInfo is the payload of one CFG node.
type NodeInfo struct {
	Kind    StmtKind
	Span    Span
	Label   *DataLabel
	Defines *string
	Uses    []string
	Callee  *string
}

// Edge is one (src, dst, kind) triple. Nodes reference each other only by
// index, never by pointer, so the graph stays an arena with cheap cloning
// and no cyclic ownership.
type Edge struct {
	Src  int
	Dst  int
	Kind EdgeKind
}

// Cfg is the directed multigraph produced by the CFG builder: one node
// vector and one edge vector, indexed throughout.
type Cfg struct {
	Nodes []NodeInfo
	Edges []Edge

	// adjacency caches, rebuilt lazily by Successors/Predecessors.
	succ [][]int
	pred [][]int
}

// AddNode appends a node and returns its index.
func (g *Cfg) AddNode(n NodeInfo) int {
	g.Nodes = append(g.Nodes, n)
	g.succ = nil
	g.pred = nil
	return len(g.Nodes) - 1
}

// AddEdge appends an edge. Edge-insertion order is observable: the taint
// engine's worklist enumeration order follows it, so callers must insert
// edges in the deterministic order the lowering rules specify.
func (g *Cfg) AddEdge(src, dst int, kind EdgeKind) {
	g.Edges = append(g.Edges, Edge{Src: src, Dst: dst, Kind: kind})
	g.succ = nil
	g.pred = nil
}

func (g *Cfg) ensureAdjacency() {
	if g.succ != nil {
		return
	}
	g.succ = make([][]int, len(g.Nodes))
	g.pred = make([][]int, len(g.Nodes))
	for _, e := range g.Edges {
		g.succ[e.Src] = append(g.succ[e.Src], e.Dst)
		g.pred[e.Dst] = append(g.pred[e.Dst], e.Src)
	}
}

// Successors returns the indices reachable from node i via one edge, in
// edge-insertion order.
func (g *Cfg) Successors(i int) []int {
	g.ensureAdjacency()
	return g.succ[i]
}

// SuccessorEdges returns the edges leaving node i, in insertion order.
func (g *Cfg) SuccessorEdges(i int) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Src == i {
			out = append(out, e)
		}
	}
	return out
}

// Predecessors returns the indices that reach node i via one edge.
func (g *Cfg) Predecessors(i int) []int {
	g.ensureAdjacency()
	return g.pred[i]
}

// FunctionSummary is the compressed per-function capability-flow record
// computed as a byproduct of CFG construction.
type FunctionSummary struct {
	EntryIdx     int
	ExitIdx      int
	SummaryLabel *DataLabel
}

// FunctionSummaries maps a canonical function name to its summary. Shared
// between cfgbuild (which produces it) and taint/store (which consume and
// persist it).
type FunctionSummaries map[string]FunctionSummary
