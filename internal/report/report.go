// Package report renders an analysed project as a Markdown or HTML document.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/sensitivity"
	"github.com/ndewijer/Feasibility-Calculator-Backend/internal/valuation"
)

// Format selects the report output.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat accepts "md", "markdown" and "html". An empty string means Markdown.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// ContentType returns the HTTP content type of the format.
func (f Format) ContentType() string {
	if f == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "text/markdown; charset=utf-8"
}

//go:embed templates/*.tmpl
var templates embed.FS

var reportTemplate = template.Must(
	template.New("report.md.tmpl").Funcs(funcs).ParseFS(templates, "templates/report.md.tmpl"),
)

var funcs = template.FuncMap{
	"money":          Money,
	"pct":            Percent,
	"factor":         func(f float64) string { return strconv.FormatFloat(f, 'f', 4, 64) },
	"years":          func(f float64) string { return fmt.Sprintf("%.2f years", f) },
	"passed":         passed,
	"recommendation": recommendation,
}

// Data is everything a report shows. Sensitivity is optional.
type Data struct {
	Analysis    valuation.Analysis
	Sensitivity *sensitivity.Result
	Generated   time.Time
}

type view struct {
	Analysis    valuation.Analysis
	Sensitivity *sensitivity.Result
	Generated   string
}

// Markdown renders d as a Markdown document.
func Markdown(d Data) (string, error) {
	var b bytes.Buffer
	if err := WriteMarkdown(&b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteMarkdown renders d as Markdown to w.
func WriteMarkdown(w io.Writer, d Data) error {
	v := view{
		Analysis:    d.Analysis,
		Sensitivity: d.Sensitivity,
		Generated:   d.Generated.Format("2006-01-02 15:04"),
	}
	if err := reportTemplate.Execute(w, v); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// WriteHTML renders d as an HTML fragment to w.
func WriteHTML(w io.Writer, d Data) error {
	var md bytes.Buffer
	if err := WriteMarkdown(&md, d); err != nil {
		return err
	}
	if err := markdown.Convert(md.Bytes(), w); err != nil {
		return fmt.Errorf("failed to convert report to HTML: %w", err)
	}
	return nil
}

// Write renders d in the given format.
func Write(w io.Writer, f Format, d Data) error {
	if f == FormatHTML {
		return WriteHTML(w, d)
	}
	return WriteMarkdown(w, d)
}

// Money formats an amount rounded to whole units with thousands separators.
func Money(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return humanize.Comma(int64(math.Round(f)))
}

// Percent formats a percentage with two decimals.
func Percent(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64) + "%"
}

func passed(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

func recommendation(r valuation.Recommendation) string {
	switch r {
	case valuation.RecommendProceed:
		return "feasible, proceed"
	case valuation.RecommendCaution:
		return "marginal, proceed with caution"
	default:
		return "not feasible"
	}
}
