// Package report renders scan results to the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/anlumo/bevy-reflect-check/internal/scanner"
)

// Output formats accepted by Write.
const (
	FormatDebug = "debug"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Write renders the scan result to out in the given format.
func Write(out io.Writer, format string, result *scanner.Result) error {
	switch format {
	case FormatDebug:
		return writeDebug(out, result)
	case FormatTable:
		return writeTable(out, result)
	case FormatJSON:
		return writeJSON(out, result)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// writeDebug dumps the canonical finding strings as one quoted slice, the
// format the tool has always printed.
func writeDebug(out io.Writer, result *scanner.Result) error {
	_, err := fmt.Fprintf(out, "%q\n", result.Paths())
	return err
}

func writeTable(out io.Writer, result *scanner.Result) error {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Type", "Kind", "Location"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, f := range result.Findings {
		table.Append([]string{f.Path(), f.Kind, fmt.Sprintf("%s:%d", f.File, f.Line)})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(result.Findings)), "", ""})
	table.Render()
	return nil
}

// jsonFinding adds the canonical path to the serialized finding.
type jsonFinding struct {
	Path string `json:"path"`
	scanner.Finding
}

func writeJSON(out io.Writer, result *scanner.Result) error {
	findings := make([]jsonFinding, len(result.Findings))
	for i, f := range result.Findings {
		findings[i] = jsonFinding{Path: f.Path(), Finding: f}
	}

	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal findings: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}
