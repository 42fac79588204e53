package formatter

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/baiacufmt/pkg/justify"
)

// VariableEntry is one documented argument.
type VariableEntry struct {
	Name        string `yaml:"name" toml:"name" json:"name"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

// FormatVariables renders each entry as its name lines followed by its
// description lines, in input order. Names start in the body column and
// descriptions are indented by DetailIndent beneath them. The label is
// laid over the first line so the first name shares a line with it.
// An empty list renders NoParams instead.
func FormatVariables(label string, entries []VariableEntry, tpl Template) string {
	if len(entries) == 0 {
		return FormatDescription(label, tpl.NoParams, tpl)
	}
	name, detail := tpl.nameConfig(), tpl.detailConfig()
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(justify.Justify(e.Name, name))
		b.WriteString(justify.Justify(e.Description, detail))
	}
	return overlay(label, b.String())
}

// FormatDescription justifies text in the body column and lays label over
// the start of the first line. Wrapped lines keep their blank label column.
func FormatDescription(label, text string, tpl Template) string {
	return overlay(label, justify.Justify(text, tpl.nameConfig()))
}

// overlay replaces the first label-width cells of the first line of text
// with label.
func overlay(label, text string) string {
	first, rest, found := strings.Cut(text, "\n")
	lw := runewidth.StringWidth(label)

	cut, skipped := len(first), 0
	for i, r := range first {
		if skipped >= lw {
			cut = i
			break
		}
		skipped += runewidth.RuneWidth(r)
	}

	line := label + first[cut:]
	if !found {
		return line
	}
	return line + "\n" + rest
}
