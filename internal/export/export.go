// Package export writes the board to JSON, Markdown or PDF.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/SyrineLarbi/Daily-planner/internal/render"
	"github.com/SyrineLarbi/Daily-planner/internal/richtext"
	"github.com/jung-kurt/gofpdf"
)

// Formats lists the supported export formats
var Formats = []string{"json", "markdown", "pdf"}

// Exporter renders a board snapshot
type Exporter struct {
	tasks []model.Task
	title string
}

// NewExporter creates an exporter over a copy of tasks
func NewExporter(title string, tasks []model.Task) *Exporter {
	cp := make([]model.Task, len(tasks))
	copy(cp, tasks)
	return &Exporter{tasks: cp, title: title}
}

// Export renders the board in format
func (e *Exporter) Export(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(e.tasks, "", "  ")
	case "markdown", "md":
		return e.markdown(), nil
	case "pdf":
		return e.pdf()
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}

func (e *Exporter) markdown() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", e.title)

	for _, card := range render.Board(e.tasks, render.NoDrag) {
		b.WriteString("\n")
		check := " "
		if card.Completed {
			check = "x"
		}
		fmt.Fprintf(&b, "- [%s] **%s**", check, card.Title)
		if card.Start != "" || card.End != "" {
			fmt.Fprintf(&b, " (%s)", card.TimeRange)
		}
		b.WriteString("\n")

		for _, line := range strings.Split(richtext.ToMarkdown(card.Description), "\n") {
			if line != "" {
				fmt.Fprintf(&b, "  %s\n", line)
			}
		}
	}
	return []byte(b.String())
}

func (e *Exporter) pdf() ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so the en dash and bullets survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr(e.title))
	pdf.Ln(14)

	for _, card := range render.Board(e.tasks, render.NoDrag) {
		r, g, bl := hexColor(card.Color)
		pdf.SetTextColor(r, g, bl)
		pdf.SetFont("Arial", "B", 12)
		title := card.Title
		if card.Completed {
			title += " (done)"
		}
		pdf.MultiCell(0, 7, tr(title), "0", "L", false)

		pdf.SetTextColor(90, 90, 90)
		pdf.SetFont("Arial", "", 10)
		if card.Start != "" || card.End != "" {
			pdf.MultiCell(0, 5, tr(card.TimeRange), "0", "L", false)
		}
		for _, line := range card.Lines {
			pdf.MultiCell(0, 5, tr(line), "0", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// hexColor parses #rrggbb or #rgb, falling back to black
func hexColor(s string) (int, int, int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	var r, g, b int
	if len(s) != 6 {
		return 0, 0, 0
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0
	}
	return r, g, b
}
