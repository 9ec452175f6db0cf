package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a Markdown report.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	b.WriteString("# Caption Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.GeneratedAt.Format(time.RFC3339))

	b.WriteString("## Source\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	location := s.Source.Location
	if location == "" {
		location = "(inline data)"
	}
	fmt.Fprintf(&b, "| Location | %s |\n", escapeCell(location))
	fmt.Fprintf(&b, "| Format | %s |\n", s.Source.Format)
	fmt.Fprintf(&b, "| Size | %dx%d |\n\n", s.Source.Width, s.Source.Height)

	b.WriteString("## Output\n\n")
	b.WriteString("| Item | Value |\n|------|-------|\n")
	if s.Output.Path != "" {
		fmt.Fprintf(&b, "| Path | %s |\n", escapeCell(s.Output.Path))
	}
	format := s.Output.Format.String()
	if s.Output.Base64 {
		format = "b64/" + format
	}
	fmt.Fprintf(&b, "| Format | %s |\n", format)
	fmt.Fprintf(&b, "| File Size | %s |\n", formatBytes(int64(s.Output.Bytes)))
	fmt.Fprintf(&b, "| Duration | %d ms |\n\n", s.DurationMs)

	b.WriteString("## Boxes\n\n")
	if len(s.Boxes) == 0 {
		b.WriteString("No boxes.\n")
		return b.String()
	}
	b.WriteString("| # | Font | Box | Size | Lines | Text |\n")
	b.WriteString("|---|------|-----|------|-------|------|\n")
	for i, box := range s.Boxes {
		size := fmt.Sprintf("%d", box.Size)
		if box.Requested == 0 {
			size += " (auto)"
		}
		if box.Overflows() {
			size += " overflow"
		}
		fmt.Fprintf(&b, "| %d | %s | %d,%d %dx%d | %s | %d | %s |\n",
			i, box.Font, box.X, box.Y, box.W, box.H, size, len(box.Lines),
			escapeCell(strings.Join(box.Lines, " / ")))
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
