// Package report renders enhancement summaries as a markdown change report.
package report

import (
	"embed"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/template"

	"n8nharden/internal/processor"
)

//go:embed templates/report.md.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.md.tmpl").
		Funcs(template.FuncMap{"seconds": Seconds}).
		ParseFS(templateFS, "templates/report.md.tmpl"),
)

// Data is the value the report template is executed with.
type Data struct {
	Summaries       []processor.Summary
	TotalFiles      int
	TotalHTTPNodes  int
	TotalErrorNodes int
	SuccessRate     float64
}

// NewData aggregates the per-file summaries.
func NewData(summaries []processor.Summary) Data {
	d := Data{
		Summaries:   summaries,
		TotalFiles:  len(summaries),
		SuccessRate: SuccessRate(summaries),
	}
	for _, s := range summaries {
		d.TotalHTTPNodes += s.HTTPNodesEnhanced
		d.TotalErrorNodes += s.ErrorNodesAdded
	}
	return d
}

// Generate renders the report for summaries.
func Generate(summaries []processor.Summary) (string, error) {
	var b strings.Builder
	if err := reportTemplate.Execute(&b, NewData(summaries)); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}

// Write renders the report and saves it to path.
func Write(path string, summaries []processor.Summary) (string, error) {
	content, err := Generate(summaries)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return content, nil
}

// SuccessRate is the percentage of summaries without an error, or 0 for an
// empty batch.
func SuccessRate(summaries []processor.Summary) float64 {
	if len(summaries) == 0 {
		return 0
	}
	var ok int
	for _, s := range summaries {
		if !s.Failed() {
			ok++
		}
	}
	return float64(ok) / float64(len(summaries)) * 100
}

// Seconds formats a millisecond count as seconds, always with a fractional
// part: 30000 is "30.0", 1500 is "1.5".
func Seconds(ms int) string {
	s := float64(ms) / 1000
	if s == math.Trunc(s) {
		return strconv.FormatFloat(s, 'f', 1, 64)
	}
	return strconv.FormatFloat(s, 'f', -1, 64)
}
