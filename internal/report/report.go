// Package report renders a scan Summary to the console or as JSON,
// the two output formats the configuration's Output.Format selects
// between.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/morfx-security/govulnscan/internal/engine/model"
	"github.com/morfx-security/govulnscan/internal/orchestrator"
)

var (
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// Write renders sum to w in the requested format ("json" or anything
// else, which falls back to the console format).
func Write(w io.Writer, sum orchestrator.Summary, format string) error {
	if format == "json" {
		return writeJSON(w, sum)
	}
	writeConsole(w, sum)
	return nil
}

func writeJSON(w io.Writer, sum orchestrator.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}

func writeConsole(w io.Writer, sum orchestrator.Summary) {
	fmt.Fprintf(w, "%s\n", bold("govulnscan results"))
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 40))

	counts := map[model.Severity]int{}
	for _, d := range sum.Diagnostics {
		counts[d.Severity]++
	}

	for _, d := range sum.Diagnostics {
		fmt.Fprintf(w, "%s %s:%d:%d %s\n", severityLabel(d.Severity), d.Path, d.Line, d.Column, d.ID)
	}

	if len(sum.Diagnostics) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d high, %d medium, %d low\n",
		counts[model.SeverityHigh], counts[model.SeverityMedium], counts[model.SeverityLow])
	fmt.Fprintf(w, "%d files scanned, %d cached, %d skipped\n", sum.FilesScanned, sum.FilesCached, sum.FilesSkipped)

	for _, e := range sum.Errors {
		fmt.Fprintf(w, "%s %v\n", red("error:"), e)
	}
}

func severityLabel(s model.Severity) string {
	switch s {
	case model.SeverityHigh:
		return red("[HIGH]")
	case model.SeverityMedium:
		return yellow("[MEDIUM]")
	default:
		return cyan("[LOW]")
	}
}
