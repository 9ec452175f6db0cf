package summarizer

// Formatter turns a render summary into report text. The CLI writes the
// Markdown form next to the captioned image.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc lets a plain function serve as a Formatter, mainly in tests.
type FormatFunc func(summary *Summary) string

// Format calls f.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

var _ Formatter = (*MarkdownFormatter)(nil)
