package report

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Equal runs longer than this collapse to head, marker, tail
const diffContext = 3

// 📐 Diff renders a colored line diff of one file, for previewing
// what a migration would do before letting it write. Line mode keeps
// the output readable on large files; character diffs of source code
// are noise.
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	out.WriteString(color.New(color.Bold).Sprintf("--- a/%s\n", path))
	out.WriteString(color.New(color.Bold).Sprintf("+++ b/%s\n", path))

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			writeLines(&out, d.Text, "-", color.New(color.FgRed))
		case diffmatchpatch.DiffInsert:
			writeLines(&out, d.Text, "+", color.New(color.FgGreen))
		case diffmatchpatch.DiffEqual:
			writeContext(&out, d.Text)
		}
	}
	return out.String()
}

func writeLines(out *strings.Builder, text, prefix string, c *color.Color) {
	for _, line := range splitLines(text) {
		out.WriteString(c.Sprintf("%s %s\n", prefix, line))
	}
}

// writeContext prints short equal runs whole and elides the middle
// of long ones
func writeContext(out *strings.Builder, text string) {
	lines := splitLines(text)
	faint := color.New(color.Faint)

	if len(lines) <= 2*diffContext {
		for _, line := range lines {
			out.WriteString(faint.Sprintf("  %s\n", line))
		}
		return
	}

	for _, line := range lines[:diffContext] {
		out.WriteString(faint.Sprintf("  %s\n", line))
	}
	out.WriteString(faint.Sprintf("  ·· %d lines ··\n", len(lines)-2*diffContext))
	for _, line := range lines[len(lines)-diffContext:] {
		out.WriteString(faint.Sprintf("  %s\n", line))
	}
}

func splitLines(text string) []string {
	trimmed := strings.TrimSuffix(text, "\n")
	if trimmed == "" && text != "" {
		// A pure-newline chunk is one empty line
		return []string{""}
	}
	return strings.Split(trimmed, "\n")
}
