package cfgbuild_test

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"

	"github.com/morfx-security/govulnscan/internal/engine/cfgbuild"
	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/lang"
	_ "github.com/morfx-security/govulnscan/internal/lang/golang"
)

func parse(t *testing.T, src string) (*sitter.Tree, []byte, lang.Adapter) {
	t.Helper()
	adapter, ok := lang.GetByExtension("go")
	require.True(t, ok)
	source := []byte(src)
	parser := sitter.NewParser()
	parser.SetLanguage(adapter.SitterLanguage())
	tree, err := parser.ParseCtx(nil, nil, source)
	require.NoError(t, err)
	return tree, source, adapter
}

func TestBuildSimpleFunctionHasEntryAndExit(t *testing.T) {
	src := `package main

func greet(name string) string {
	return "hi " + name
}
`
	tree, source, adapter := parse(t, src)
	res := cfgbuild.Build(tree, source, adapter)

	require.NoError(t, cfgbuild.CheckInvariants(res.Cfg, res.EntryIdx))
	require.Contains(t, res.Summaries, "greet")
}

func TestBuildIfElseBranchesJoin(t *testing.T) {
	src := `package main

func pick(ok bool) int {
	if ok {
		return 1
	} else {
		return 2
	}
}
`
	tree, source, adapter := parse(t, src)
	res := cfgbuild.Build(tree, source, adapter)
	require.NoError(t, cfgbuild.CheckInvariants(res.Cfg, res.EntryIdx))

	var ifCount, returnCount int
	for _, n := range res.Cfg.Nodes {
		switch n.Kind {
		case model.StmtIf:
			ifCount++
		case model.StmtReturn:
			returnCount++
		}
	}
	require.Equal(t, 1, ifCount)
	require.GreaterOrEqual(t, returnCount, 2)
}

func TestBuildLoopHasBackEdge(t *testing.T) {
	src := `package main

func sum(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		total = total + i
	}
	return total
}
`
	tree, source, adapter := parse(t, src)
	res := cfgbuild.Build(tree, source, adapter)
	require.NoError(t, cfgbuild.CheckInvariants(res.Cfg, res.EntryIdx))

	var backEdges int
	for _, e := range res.Cfg.Edges {
		if e.Kind == model.EdgeBack {
			backEdges++
		}
	}
	require.GreaterOrEqual(t, backEdges, 1)
}

func TestTaintedSinkIsLabelled(t *testing.T) {
	src := `package main

import "os/exec"

func run() {
	path := os.Getenv("PATH")
	exec.Command("sh", "-c", path).Run()
}
`
	tree, source, adapter := parse(t, src)
	res := cfgbuild.Build(tree, source, adapter)
	require.NoError(t, cfgbuild.CheckInvariants(res.Cfg, res.EntryIdx))

	var sawSource, sawSink bool
	for _, n := range res.Cfg.Nodes {
		if n.Label == nil {
			continue
		}
		switch n.Label.Kind {
		case model.LabelSource:
			sawSource = true
		case model.LabelSink:
			sawSink = true
		}
	}
	require.True(t, sawSource, "expected an Os.Getenv source label")
	require.True(t, sawSink, "expected an exec.Command sink label")
}
