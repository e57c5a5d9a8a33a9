package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/store"
)

func newCache(t *testing.T) *store.Cache {
	t.Helper()
	db, err := store.Connect(filepath.Join(t.TempDir(), "cache.db"), false)
	require.NoError(t, err)
	return store.New(db)
}

func TestShouldScanTracksDigestChanges(t *testing.T) {
	c := newCache(t)

	should, err := c.ShouldScan("a.go", "digest-1", 100)
	require.NoError(t, err)
	require.True(t, should)

	require.NoError(t, c.UpsertFile("a.go", "digest-1", 100, "go"))

	should, err = c.ShouldScan("a.go", "digest-1", 100)
	require.NoError(t, err)
	require.False(t, should)

	should, err = c.ShouldScan("a.go", "digest-2", 100)
	require.NoError(t, err)
	require.True(t, should)
}

func TestShouldScanTracksMtimeChangesAlone(t *testing.T) {
	c := newCache(t)
	require.NoError(t, c.UpsertFile("a.go", "digest-1", 100, "go"))

	should, err := c.ShouldScan("a.go", "digest-1", 100)
	require.NoError(t, err)
	require.False(t, should)

	should, err = c.ShouldScan("a.go", "digest-1", 200)
	require.NoError(t, err)
	require.True(t, should, "an mtime change alone must force a rescan even with an unchanged digest")
}

func TestReplaceIssuesOverwritesPreviousSet(t *testing.T) {
	c := newCache(t)
	require.NoError(t, c.UpsertFile("a.go", "d1", 100, "go"))

	require.NoError(t, c.ReplaceIssues("a.go", []model.Diagnostic{
		{Line: 1, Column: 2, Severity: model.SeverityHigh, ID: "taint-unsanitised-flow"},
	}))
	issues, err := c.GetIssuesFromFile("a.go")
	require.NoError(t, err)
	require.Len(t, issues, 1)

	require.NoError(t, c.ReplaceIssues("a.go", nil))
	issues, err = c.GetIssuesFromFile("a.go")
	require.NoError(t, err)
	require.Empty(t, issues)
}

func TestSummaryRoundTrip(t *testing.T) {
	c := newCache(t)
	label := model.Sink(model.CapShellEscape)
	require.NoError(t, c.UpsertSummary("run", "a.go", model.FunctionSummary{SummaryLabel: &label}))

	summaries, err := c.LoadAllSummaries()
	require.NoError(t, err)
	require.Contains(t, summaries, "run")
	require.Equal(t, model.LabelSink, summaries["run"].SummaryLabel.Kind)
}

func TestDigestIsStableForSameContent(t *testing.T) {
	d1, err := store.Digest([]byte("hello"))
	require.NoError(t, err)
	d2, err := store.Digest([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, d1, d2)

	d3, err := store.Digest([]byte("world"))
	require.NoError(t, err)
	require.NotEqual(t, d1, d3)
}
