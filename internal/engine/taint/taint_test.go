package taint_test

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"

	"github.com/morfx-security/govulnscan/internal/engine/cfgbuild"
	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/engine/taint"
	"github.com/morfx-security/govulnscan/internal/lang"
	_ "github.com/morfx-security/govulnscan/internal/lang/golang"
)

func build(t *testing.T, src string) cfgbuild.Result {
	t.Helper()
	adapter, ok := lang.GetByExtension("go")
	require.True(t, ok)
	source := []byte(src)
	parser := sitter.NewParser()
	parser.SetLanguage(adapter.SitterLanguage())
	tree, err := parser.ParseCtx(nil, nil, source)
	require.NoError(t, err)
	return cfgbuild.Build(tree, source, adapter)
}

func TestUnsanitizedFlowFromEnvToExec(t *testing.T) {
	src := `package main

import "os/exec"

func run() {
	path := os.Getenv("PATH")
	exec.Command("sh", "-c", path).Run()
}
`
	res := build(t, src)
	diags := taint.Run(res.Cfg, res.EntryIdx, res.Summaries, "run.go", []byte(src))
	require.NotEmpty(t, diags)
	require.Equal(t, model.DiagTaintUnsanitisedFlow, diags[0].ID)
	require.Equal(t, model.SeverityHigh, diags[0].Severity)
	require.Equal(t, 6, diags[0].Line, "diagnostic should anchor at the env-read line, not the sink line")
}

func TestSanitizedFlowProducesNoFinding(t *testing.T) {
	src := `package main

import (
	"os/exec"
	"github.com/some/shellwords"
)

func run() {
	path := os.Getenv("PATH")
	safe := shellwords.Escape(path)
	exec.Command("sh", "-c", safe).Run()
}
`
	res := build(t, src)
	diags := taint.Run(res.Cfg, res.EntryIdx, res.Summaries, "run.go", []byte(src))
	require.Empty(t, diags)
}
