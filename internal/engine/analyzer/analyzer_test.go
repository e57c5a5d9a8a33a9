package analyzer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/morfx-security/govulnscan/internal/engine/analyzer"
	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/engine/patmatch"

	_ "github.com/morfx-security/govulnscan/internal/lang/golang"
)

func TestAnalyzeFileFindsTaintAndPatternDiagnostics(t *testing.T) {
	src := `package main

import (
	"crypto/md5"
	"os"
	"os/exec"
)

func run() {
	path := os.Getenv("PATH")
	exec.Command("sh", "-c", path).Run()
	md5.New()
}
`
	a := analyzer.New(patmatch.DefaultRules())
	res, err := a.AnalyzeFile(context.Background(), "run.go", []byte(src), nil)
	require.NoError(t, err)
	require.False(t, res.Skipped)
	require.Equal(t, "go", res.Language)

	var ids []string
	for _, d := range res.Diagnostics {
		ids = append(ids, d.ID)
	}
	require.Contains(t, ids, model.DiagTaintUnsanitisedFlow)
	require.Contains(t, ids, "weak-hash-md5")
}

func TestAnalyzeFileSkipsBinaryContent(t *testing.T) {
	a := analyzer.New(patmatch.DefaultRules())
	binary := append([]byte("not really go\x00\x00\x00\x00"), make([]byte, 64)...)
	res, err := a.AnalyzeFile(context.Background(), "blob.go", binary, nil)
	require.NoError(t, err)
	require.True(t, res.Skipped)
	require.Equal(t, "binary content", res.SkipReason)
}

func TestAnalyzeFileSkipsBinaryContentWithNulsPastLeadingSample(t *testing.T) {
	a := analyzer.New(patmatch.DefaultRules())
	text := make([]byte, 9000)
	for i := range text {
		text[i] = 'a'
	}
	for i := 8500; i < 9000; i++ {
		text[i] = 0
	}
	res, err := a.AnalyzeFile(context.Background(), "blob.go", text, nil)
	require.NoError(t, err)
	require.True(t, res.Skipped)
	require.Equal(t, "binary content", res.SkipReason)
}

func TestAnalyzeFileSkipsUnsupportedLanguage(t *testing.T) {
	a := analyzer.New(patmatch.DefaultRules())
	res, err := a.AnalyzeFile(context.Background(), "notes.txt", []byte("hello"), nil)
	require.NoError(t, err)
	require.True(t, res.Skipped)
	require.Equal(t, "unsupported language", res.SkipReason)
}

func TestAnalyzeFileReusesParserAcrossCalls(t *testing.T) {
	a := analyzer.New(patmatch.DefaultRules())
	for i := 0; i < 3; i++ {
		_, err := a.AnalyzeFile(context.Background(), "run.go", []byte("package main\nfunc run() {}\n"), nil)
		require.NoError(t, err)
	}
}
