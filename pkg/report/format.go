package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 45 // Base width for file path
)

// Formatter renders a finalized report for humans or machines
type Formatter interface {
	Format(r *Report) (string, error)
}

// NewFormatter picks a formatter by name ("text" or "json")
func NewFormatter(kind string) (Formatter, error) {
	switch kind {
	case "", "text":
		return &TextFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, errors.Errorf("unknown report format %q (want text or json)", kind)
	}
}

// 📺 TextFormatter renders colored per-file lines and a summary.
// Unchanged files only show up in verbose mode; the interesting
// lines should not drown in them.
type TextFormatter struct {
	Verbose bool
}

func (f *TextFormatter) Format(r *Report) (string, error) {
	var b strings.Builder

	for _, file := range r.Files {
		if file.Status == StatusUnchanged && !f.Verbose {
			continue
		}
		b.WriteString(f.formatFile(file))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf("%s scanned, %s, %s, %s\n",
		color.New(color.Bold).Sprintf("%d", r.Scanned),
		color.New(color.FgBlue).Sprintf("%d changed", r.Changed),
		color.New(color.Faint).Sprintf("%d unchanged", r.Unchanged),
		errColor(r.Errored).Sprintf("%d errored", r.Errored),
	))

	for _, pc := range r.Phases {
		b.WriteString(fmt.Sprintf("%s %s fired on %d file(s)\n",
			color.New(color.FgMagenta).Sprint("◆"),
			color.New(color.Bold).Sprint(pc.Phase),
			pc.Files,
		))
	}

	return b.String(), nil
}

// 📝 formatFile formats one file line for display
func (f *TextFormatter) formatFile(file FileResult) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch file.Status {
	case StatusWritten:
		symbol = '✓'
		symbolColor = color.FgGreen
	case StatusChanged:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case StatusErrored:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	detail := strings.Join(file.FiredPhases, ", ")
	if file.Status == StatusErrored {
		detail = fmt.Sprintf("%s/%s: %s", file.Phase, file.Rule, file.Error)
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, file.Path),
		color.New(color.Faint).Sprint(detail))
}

func errColor(errored int) *color.Color {
	if errored > 0 {
		return color.New(color.FgRed)
	}
	return color.New(color.Faint)
}

// 🤖 JSONFormatter renders the whole report as indented JSON, for CI
// and tooling
type JSONFormatter struct{}

func (f *JSONFormatter) Format(r *Report) (string, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", errors.Errorf("encoding report: %w", err)
	}
	return string(out) + "\n", nil
}
