package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"edakit/domain/stats"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Format selects how reports are rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat accepts text, markdown (or md), html and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, markdown, html or json)", s)
}

// RenderReport writes one titled report.
func RenderReport(w io.Writer, title string, r stats.TestReport, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, struct {
			Title  string           `json:"title"`
			Report stats.TestReport `json:"report"`
		}{title, r})
	case FormatMarkdown:
		_, err := io.WriteString(w, reportMarkdown(title, r))
		return err
	case FormatHTML:
		_, err := w.Write(toHTML(reportMarkdown(title, r)))
		return err
	default:
		_, err := io.WriteString(w, reportText(title, r))
		return err
	}
}

// RenderSweep writes every item of a sweep run.
func RenderSweep(w io.Writer, res *SweepResult, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, res)
	}

	var b strings.Builder
	if format == FormatText {
		fmt.Fprintf(&b, "Sweep %s: %d tests, %d significant, %d failed (%dms)\n",
			res.RunID, len(res.Items), res.Significant, res.Failed, res.RuntimeMs)
		for _, item := range res.Items {
			if item.Report == nil {
				fmt.Fprintf(&b, "\n=== %s ===\nError:          %s\n", item.Label, item.Error)
				continue
			}
			b.WriteString(reportText(item.Label, *item.Report))
		}
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "# Sweep %s\n\n", res.RunID)
	fmt.Fprintf(&b, "%d tests, %d significant, %d failed.\n\n", len(res.Items), res.Significant, res.Failed)
	b.WriteString("| Test | Method | P-Value | Verdict |\n|---|---|---|---|\n")
	for _, item := range res.Items {
		if item.Report == nil {
			fmt.Fprintf(&b, "| %s | - | - | error: %s |\n", escapeCell(item.Label), escapeCell(item.Error))
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %.5f | %s |\n", escapeCell(item.Label), item.Report.Test, item.Report.PValue, item.Report.Verdict)
	}
	for _, item := range res.Items {
		if item.Report != nil {
			b.WriteString("\n")
			b.WriteString(reportMarkdown(item.Label, *item.Report))
		}
	}

	if format == FormatHTML {
		_, err := w.Write(toHTML(b.String()))
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func reportText(title string, r stats.TestReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== %s ===\n", title)
	if g := r.Groups; g != nil {
		fmt.Fprintf(&b, "%s: n=%d | %s: n=%d\n", g.Label1, g.N1, g.Label2, g.N2)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", warning)
	}
	fmt.Fprintf(&b, "Test Used:      %s\n", r.Test)
	if a, ok := r.Assumption(stats.CheckNormality); ok {
		fmt.Fprintf(&b, "Normality:      %s -> %s\n", a.Reason, passFail(a.Passed))
	}
	fmt.Fprintf(&b, "P-Value:        %.5f\n", r.PValue)
	fmt.Fprintf(&b, "Verdict:        %s\n", r.Verdict)
	if r.Significant && r.Effect != nil {
		label := "Effect Size:"
		if r.Test.IsCategorical() {
			label = "Strength:"
		}
		fmt.Fprintf(&b, "%-16s%s = %.3f (%s)\n", label, r.Effect.Measure, r.Effect.Value, r.Effect.Strength)
	}
	return b.String()
}

func reportMarkdown(title string, r stats.TestReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	b.WriteString("| Field | Value |\n|---|---|\n")
	if g := r.Groups; g != nil {
		fmt.Fprintf(&b, "| %s | n=%d, mean=%.3f |\n", escapeCell(g.Label1), g.N1, g.Mean1)
		fmt.Fprintf(&b, "| %s | n=%d, mean=%.3f |\n", escapeCell(g.Label2), g.N2, g.Mean2)
	}
	if t := r.Table; t != nil {
		fmt.Fprintf(&b, "| Table | %dx%d, n=%d, min expected %.2f |\n", t.Rows, t.Cols, t.Total, t.MinExpected)
	}
	fmt.Fprintf(&b, "| Test | %s |\n", r.Test)
	for _, a := range r.Assumptions {
		fmt.Fprintf(&b, "| Assumption: %s | %s (%s) |\n", a.Check, passFail(a.Passed), escapeCell(a.Reason))
	}
	fmt.Fprintf(&b, "| Statistic | %.4f |\n", r.Statistic)
	fmt.Fprintf(&b, "| P-Value | %.5f |\n", r.PValue)
	fmt.Fprintf(&b, "| Verdict | **%s** |\n", r.Verdict)
	if r.Effect != nil {
		fmt.Fprintf(&b, "| %s | %.3f (%s) |\n", r.Effect.Measure, r.Effect.Value, r.Effect.Strength)
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(&b, "\n> **Warning:** %s\n", warning)
	}
	return b.String()
}

func toHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func passFail(ok bool) string {
	if ok {
		return "Pass"
	}
	return "Fail"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
