package export

import (
	"fmt"
	"strings"
)

// TextContentType is served with plain-text downloads.
const TextContentType = "text/plain; charset=utf-8"

// Field is a labelled line in a TextDocument.
type Field struct {
	Label string
	Value string
}

// TextDocument is a titled block of label/value lines followed by free-form footer lines.
type TextDocument struct {
	Title  string
	Fields []Field
	Footer []string
}

// RenderText lays out the document with the title underlined by '=' characters.
func RenderText(doc TextDocument) []byte {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString(doc.Title)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("=", 28))
		b.WriteString("\n\n")
	}
	for _, f := range doc.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	if len(doc.Footer) > 0 {
		b.WriteByte('\n')
		for _, line := range doc.Footer {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return []byte(b.String())
}
