package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/orchestrator"
	"github.com/morfx-security/govulnscan/internal/report"
)

func sampleSummary() orchestrator.Summary {
	return orchestrator.Summary{
		FilesScanned: 2,
		FilesCached:  1,
		Diagnostics: []model.Diagnostic{
			{Path: "a.go", Line: 3, Column: 1, Severity: model.SeverityHigh, ID: model.DiagTaintUnsanitisedFlow},
		},
	}
}

func TestWriteConsoleIncludesFindingAndCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleSummary(), "console"))
	out := buf.String()
	require.Contains(t, out, "a.go:3:1")
	require.Contains(t, out, "1 high")
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sampleSummary(), "json"))

	var decoded orchestrator.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, 2, decoded.FilesScanned)
	require.Len(t, decoded.Diagnostics, 1)
}
